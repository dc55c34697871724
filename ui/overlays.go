package ui

import (
	rl "github.com/gen2brain/raylib-go/raylib"
)

// OverlayID uniquely identifies an overlay.
type OverlayID string

// Standard overlay IDs.
const (
	OverlayContour     OverlayID = "contour"
	OverlaySkeleton    OverlayID = "skeleton"
	OverlayFootTargets OverlayID = "foot_targets"
	OverlayStepArcs    OverlayID = "step_arcs"
	OverlayGridBounds  OverlayID = "grid_bounds"
	OverlayFieldHeat   OverlayID = "field_heat"
	OverlayFieldDots   OverlayID = "field_dots"
)

// OverlayDescriptor defines an overlay that can be toggled.
type OverlayDescriptor struct {
	ID          OverlayID   // Unique identifier
	Name        string      // Display name
	Description string      // What this overlay shows
	Key         int32       // Keyboard key to toggle (0 = no key)
	KeyLabel    string      // Key label for display (e.g., "B", "T")
	Category    string      // Grouping (e.g., "creature", "debug")
	Exclusive   []OverlayID // Other overlays to disable when this is enabled
	Default     bool        // Enabled at startup
}

// OverlayRegistry manages overlay state and metadata.
type OverlayRegistry struct {
	descriptors []OverlayDescriptor
	byID        map[OverlayID]OverlayDescriptor
	enabled     map[OverlayID]bool
	order       []OverlayID // Maintains insertion order for display
}

// NewOverlayRegistry creates a registry with default overlays.
func NewOverlayRegistry() *OverlayRegistry {
	reg := &OverlayRegistry{
		byID:    make(map[OverlayID]OverlayDescriptor),
		enabled: make(map[OverlayID]bool),
	}
	reg.registerDefaults()
	return reg
}

// registerDefaults adds standard overlays.
func (r *OverlayRegistry) registerDefaults() {
	// Creature overlays
	r.Register(OverlayDescriptor{
		ID:          OverlayContour,
		Name:        "Skin Contour",
		Description: "Draw the marching-squares body outline",
		Key:         rl.KeyC,
		KeyLabel:    "C",
		Category:    "creature",
		Default:     true,
	})

	r.Register(OverlayDescriptor{
		ID:          OverlaySkeleton,
		Name:        "Skeleton",
		Description: "Draw bones and joints under the skin",
		Key:         rl.KeyB,
		KeyLabel:    "B",
		Category:    "creature",
	})

	r.Register(OverlayDescriptor{
		ID:          OverlayFootTargets,
		Name:        "Foot Targets",
		Description: "Show planted feet, swing targets and ideal positions",
		Key:         rl.KeyT,
		KeyLabel:    "T",
		Category:    "creature",
	})

	r.Register(OverlayDescriptor{
		ID:          OverlayStepArcs,
		Name:        "Step Arcs",
		Description: "Trace the lift arc of the active swing",
		Key:         rl.KeyA,
		KeyLabel:    "A",
		Category:    "creature",
	})

	// Debug overlays
	r.Register(OverlayDescriptor{
		ID:          OverlayGridBounds,
		Name:        "Grid Bounds",
		Description: "Outline the per-creature sampling grid",
		Key:         rl.KeyG,
		KeyLabel:    "G",
		Category:    "debug",
	})

	r.Register(OverlayDescriptor{
		ID:          OverlayFieldHeat,
		Name:        "Field Heatmap",
		Description: "Shade grid cells by scalar field strength",
		Key:         rl.KeyH,
		KeyLabel:    "H",
		Category:    "debug",
		Exclusive:   []OverlayID{OverlayFieldDots},
	})

	r.Register(OverlayDescriptor{
		ID:          OverlayFieldDots,
		Name:        "Field Vertices",
		Description: "Mark grid vertices inside and outside the threshold",
		Key:         rl.KeyV,
		KeyLabel:    "V",
		Category:    "debug",
		Exclusive:   []OverlayID{OverlayFieldHeat},
	})
}

// Register adds an overlay to the registry.
func (r *OverlayRegistry) Register(desc OverlayDescriptor) {
	r.descriptors = append(r.descriptors, desc)
	r.byID[desc.ID] = desc
	r.order = append(r.order, desc.ID)
	r.enabled[desc.ID] = desc.Default
}

// Toggle switches an overlay on/off and handles exclusivity.
func (r *OverlayRegistry) Toggle(id OverlayID) bool {
	desc, ok := r.byID[id]
	if !ok {
		return false
	}

	newState := !r.enabled[id]
	r.enabled[id] = newState

	// If enabling, disable exclusive overlays
	if newState {
		for _, excl := range desc.Exclusive {
			r.enabled[excl] = false
		}
	}

	return newState
}

// SetEnabled explicitly sets an overlay's state.
func (r *OverlayRegistry) SetEnabled(id OverlayID, enabled bool) {
	desc, ok := r.byID[id]
	if !ok {
		return
	}

	r.enabled[id] = enabled

	// If enabling, disable exclusive overlays
	if enabled {
		for _, excl := range desc.Exclusive {
			r.enabled[excl] = false
		}
	}
}

// IsEnabled returns whether an overlay is active.
func (r *OverlayRegistry) IsEnabled(id OverlayID) bool {
	return r.enabled[id]
}

// Get returns an overlay descriptor by ID.
func (r *OverlayRegistry) Get(id OverlayID) (OverlayDescriptor, bool) {
	desc, ok := r.byID[id]
	return desc, ok
}

// All returns all registered overlays in registration order.
func (r *OverlayRegistry) All() []OverlayDescriptor {
	return r.descriptors
}

// ByCategory returns overlays filtered by category.
func (r *OverlayRegistry) ByCategory(category string) []OverlayDescriptor {
	var result []OverlayDescriptor
	for _, desc := range r.descriptors {
		if desc.Category == category {
			result = append(result, desc)
		}
	}
	return result
}

// Categories returns all unique categories in order.
func (r *OverlayRegistry) Categories() []string {
	seen := make(map[string]bool)
	var cats []string
	for _, desc := range r.descriptors {
		if !seen[desc.Category] {
			seen[desc.Category] = true
			cats = append(cats, desc.Category)
		}
	}
	return cats
}

// HandleKeyPress checks if a key corresponds to an overlay toggle.
// Returns the overlay ID and new state if a toggle occurred.
func (r *OverlayRegistry) HandleKeyPress(key int32) (OverlayID, bool, bool) {
	for _, desc := range r.descriptors {
		if desc.Key == key {
			newState := r.Toggle(desc.ID)
			return desc.ID, newState, true
		}
	}
	return "", false, false
}

// EnabledOverlays returns a list of currently enabled overlay IDs.
func (r *OverlayRegistry) EnabledOverlays() []OverlayID {
	var result []OverlayID
	for _, id := range r.order {
		if r.enabled[id] {
			result = append(result, id)
		}
	}
	return result
}
