package components

import "github.com/pthm-cable/squirm/morph"

// Meta bundles creature identity and display attributes.
type Meta struct {
	ID        uint32
	Name      string
	Variant   morph.Variant
	SpawnTick int64

	// Body tint, resolved from the variant at spawn.
	TintR, TintG, TintB uint8
}
