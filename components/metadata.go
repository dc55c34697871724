package components

// FieldDescriptor describes a component field for UI display.
type FieldDescriptor struct {
	ID     string  // unique identifier
	Label  string  // display name
	Format string  // printf format
	Min    float32 // minimum value (for bars)
	Max    float32 // maximum value (for bars)
	IsBar  bool    // render as progress bar
}

// GaitFieldDescriptors returns metadata for Gait fields.
func GaitFieldDescriptors() []FieldDescriptor {
	return []FieldDescriptor{
		{ID: "trigger_distance", Label: "Trigger Dist", Format: "%.1f", Min: 0, Max: 120, IsBar: true},
		{ID: "duration_ticks", Label: "Step Ticks", Format: "%.0f", Min: 1, Max: 60, IsBar: true},
		{ID: "height", Label: "Step Height", Format: "%.1f", Min: 0, Max: 60, IsBar: true},
		{ID: "lead", Label: "Lead", Format: "%.1f", Min: 0, Max: 40, IsBar: true},
	}
}

// GetGaitValue extracts a gait field value by ID.
func GetGaitValue(g *Gait, fieldID string) float32 {
	switch fieldID {
	case "trigger_distance":
		return g.TriggerDistance
	case "duration_ticks":
		return g.DurationTicks
	case "height":
		return g.Height
	case "lead":
		return g.Lead
	default:
		return 0
	}
}

// SkinFieldDescriptors returns metadata for SkinParams fields.
func SkinFieldDescriptors() []FieldDescriptor {
	return []FieldDescriptor{
		{ID: "core_radius", Label: "Core R", Format: "%.1f", Min: 0, Max: 120, IsBar: true},
		{ID: "core_weight", Label: "Core W", Format: "%.2f", Min: 0, Max: 2, IsBar: true},
		{ID: "hip_radius", Label: "Hip R", Format: "%.1f", Min: 0, Max: 120, IsBar: true},
		{ID: "hip_weight", Label: "Hip W", Format: "%.2f", Min: 0, Max: 2, IsBar: true},
		{ID: "knee_radius", Label: "Knee R", Format: "%.1f", Min: 0, Max: 120, IsBar: true},
		{ID: "knee_weight", Label: "Knee W", Format: "%.2f", Min: 0, Max: 2, IsBar: true},
		{ID: "foot_radius", Label: "Foot R", Format: "%.1f", Min: 0, Max: 120, IsBar: true},
		{ID: "foot_weight", Label: "Foot W", Format: "%.2f", Min: 0, Max: 2, IsBar: true},
	}
}

// GetSkinValue extracts a skin field value by ID.
func GetSkinValue(p *SkinParams, fieldID string) float32 {
	switch fieldID {
	case "core_radius":
		return p.Core.Radius
	case "core_weight":
		return p.Core.Weight
	case "hip_radius":
		return p.Hip.Radius
	case "hip_weight":
		return p.Hip.Weight
	case "knee_radius":
		return p.Knee.Radius
	case "knee_weight":
		return p.Knee.Weight
	case "foot_radius":
		return p.Foot.Radius
	case "foot_weight":
		return p.Foot.Weight
	default:
		return 0
	}
}
