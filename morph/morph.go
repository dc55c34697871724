// Package morph defines creature body-plan variants. A variant is a bitmask
// of flags picked at spawn time; each flag scales some part of the base
// skeleton, gait or skin configuration so a population reads as individuals
// rather than clones.
package morph

import "math/rand"

// Variant is a set of body-plan flags.
type Variant uint32

const (
	// Proportion flags
	Longlegged Variant = 1 << iota // longer bones, wider stance
	Stubby                         // shorter bones, narrow stance

	// Build flags
	Heavyset // larger, heavier joints
	Slender  // smaller, lighter joints

	// Gait flags
	Skittish // quick short steps
	Plodding // slow long steps

	// HighStepper exaggerates the step arc.
	HighStepper
)

// exclusive lists flag pairs that cannot coexist on one creature.
var exclusive = [][2]Variant{
	{Longlegged, Stubby},
	{Heavyset, Slender},
	{Skittish, Plodding},
}

// Has checks whether the set contains a flag.
func (v Variant) Has(other Variant) bool {
	return v&other != 0
}

// Add adds a flag to the set.
func (v Variant) Add(other Variant) Variant {
	return v | other
}

// Remove removes a flag from the set.
func (v Variant) Remove(other Variant) Variant {
	return v &^ other
}

// pickOrder fixes the roll order so a seeded RNG yields the same variant.
var pickOrder = []Variant{
	Longlegged, Stubby, Heavyset, Slender, Skittish, Plodding, HighStepper,
}

// Weights gives the per-flag roll probability (higher = more common).
var Weights = map[Variant]float32{
	Longlegged:  0.20,
	Stubby:      0.15,
	Heavyset:    0.18,
	Slender:     0.18,
	Skittish:    0.15,
	Plodding:    0.12,
	HighStepper: 0.10,
}

// Pick rolls a variant set. Flags are rolled in a fixed order; a flag that
// conflicts with one already chosen is skipped.
func Pick(rng *rand.Rand) Variant {
	var v Variant
	for _, flag := range pickOrder {
		if rng.Float32() >= Weights[flag] {
			continue
		}
		if conflicts(v, flag) {
			continue
		}
		v = v.Add(flag)
	}
	return v
}

// conflicts reports whether adding flag to v would violate an exclusive pair.
func conflicts(v Variant, flag Variant) bool {
	for _, pair := range exclusive {
		if flag == pair[0] && v.Has(pair[1]) {
			return true
		}
		if flag == pair[1] && v.Has(pair[0]) {
			return true
		}
	}
	return false
}

// Multipliers scale the base configuration for one creature.
type Multipliers struct {
	BoneLength  float32 // upper and lower bone lengths
	HipSpan     float32 // hip offset magnitudes
	JointSize   float32 // influence radii and weights
	StepTime    float32 // step duration
	StepTrigger float32 // trigger distance
	StepHeight  float32 // arc height
}

// VariantMultipliers folds a variant set into combined multipliers, starting
// from the identity.
func VariantMultipliers(v Variant) Multipliers {
	m := Multipliers{
		BoneLength:  1,
		HipSpan:     1,
		JointSize:   1,
		StepTime:    1,
		StepTrigger: 1,
		StepHeight:  1,
	}
	if v.Has(Longlegged) {
		m.BoneLength *= 1.25
		m.HipSpan *= 1.15
	}
	if v.Has(Stubby) {
		m.BoneLength *= 0.8
		m.HipSpan *= 0.85
		m.StepHeight *= 0.85
	}
	if v.Has(Heavyset) {
		m.JointSize *= 1.3
		m.StepTime *= 1.15
	}
	if v.Has(Slender) {
		m.JointSize *= 0.8
	}
	if v.Has(Skittish) {
		m.StepTime *= 0.7
		m.StepTrigger *= 0.8
	}
	if v.Has(Plodding) {
		m.StepTime *= 1.4
		m.StepTrigger *= 1.2
	}
	if v.Has(HighStepper) {
		m.StepHeight *= 1.5
	}
	return m
}

// Names returns human-readable flag names for HUD and inspector display.
func Names(v Variant) []string {
	var names []string
	if v.Has(Longlegged) {
		names = append(names, "Longlegged")
	}
	if v.Has(Stubby) {
		names = append(names, "Stubby")
	}
	if v.Has(Heavyset) {
		names = append(names, "Heavyset")
	}
	if v.Has(Slender) {
		names = append(names, "Slender")
	}
	if v.Has(Skittish) {
		names = append(names, "Skittish")
	}
	if v.Has(Plodding) {
		names = append(names, "Plodding")
	}
	if v.Has(HighStepper) {
		names = append(names, "High Stepper")
	}
	if len(names) == 0 {
		names = append(names, "Plain")
	}
	return names
}

// Tint returns the body RGB for a variant set. The first matching build
// flag wins; plain creatures get a neutral slate.
func Tint(v Variant) (r, g, b uint8) {
	switch {
	case v.Has(Heavyset):
		return 214, 153, 92 // ochre
	case v.Has(Slender):
		return 96, 192, 180 // teal
	case v.Has(Longlegged):
		return 166, 128, 214 // violet
	case v.Has(Stubby):
		return 128, 166, 98 // moss
	case v.Has(Skittish):
		return 222, 140, 160 // rose
	default:
		return 140, 156, 178 // slate
	}
}
