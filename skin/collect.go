package skin

import (
	"github.com/pthm-cable/squirm/components"
	"github.com/pthm-cable/squirm/geom"
)

// InfluencesPerLeg is the number of joints each leg contributes.
const InfluencesPerLeg = 3

// CollectInfluences appends one influence per joint into buf and returns
// it: the core first, then hip, knee, foot for each leg in order. The
// order is stable for a given skeleton shape so scratch buffers can be
// sized as 1 + 3*len(Legs).
func CollectInfluences(core geom.Vec2, skel *components.Skeleton, p *components.SkinParams, buf []Influence) []Influence {
	buf = buf[:0]
	buf = append(buf, Influence{Pos: core, Radius: p.Core.Radius, Weight: p.Core.Weight})
	for i := range skel.Legs {
		leg := &skel.Legs[i]
		hip := core.Add(leg.HipOffset)
		buf = append(buf,
			Influence{Pos: hip, Radius: p.Hip.Radius, Weight: p.Hip.Weight},
			Influence{Pos: leg.Knee, Radius: p.Knee.Radius, Weight: p.Knee.Weight},
			Influence{Pos: leg.Foot, Radius: p.Foot.Radius, Weight: p.Foot.Weight},
		)
	}
	return buf
}
