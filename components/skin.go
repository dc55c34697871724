package components

// JointParams sizes the metaball influence for one joint type.
type JointParams struct {
	Radius float32
	Weight float32
}

// SkinParams holds the per-creature influence sizing for each joint type.
// Values start from config and are jittered per creature at spawn.
type SkinParams struct {
	Core JointParams
	Hip  JointParams
	Knee JointParams
	Foot JointParams
}

// MaxWeight returns the largest joint weight, the upper bound any usable
// iso-threshold must stay below.
func (p *SkinParams) MaxWeight() float32 {
	max := p.Core.Weight
	for _, w := range [...]float32{p.Hip.Weight, p.Knee.Weight, p.Foot.Weight} {
		if w > max {
			max = w
		}
	}
	return max
}
