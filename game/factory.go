package game

import (
	"fmt"
	"log/slog"
	"math"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/squirm/components"
	"github.com/pthm-cable/squirm/geom"
	"github.com/pthm-cable/squirm/morph"
	"github.com/pthm-cable/squirm/systems"
)

// namePool supplies display names; the numeric suffix keeps them unique.
var namePool = []string{"Blip", "Wobble", "Squish", "Tozzle", "Mirp", "Fenn", "Gloop", "Nib"}

// spawnPopulation places creatures on a jittered grid inside the wander
// margin so nobody starts pressed against a world edge.
func (g *Game) spawnPopulation() {
	cfg := g.config()
	count := cfg.Population.Count
	margin := float32(cfg.Locomotion.Margin)

	cols := int(math.Ceil(math.Sqrt(float64(count))))
	rows := (count + cols - 1) / cols

	cellW := (g.worldWidth - 2*margin) / float32(cols)
	cellH := (g.worldHeight - 2*margin) / float32(rows)

	for i := 0; i < count; i++ {
		col := i % cols
		row := i / cols
		x := margin + (float32(col)+0.5)*cellW + (g.rng.Float32()-0.5)*cellW*0.5
		y := margin + (float32(row)+0.5)*cellH + (g.rng.Float32()-0.5)*cellH*0.5
		g.spawnCreature(x, y)
	}

	slog.Info("population spawned", "count", count, "seed", g.rngSeed)
}

// spawnCreature creates one creature at the given core position. Body
// proportions start from the config baseline, scaled by the picked
// variant and a per-creature jitter that desyncs stepping across the
// population.
func (g *Game) spawnCreature(x, y float32) ecs.Entity {
	cfg := g.config()

	id := g.nextID
	g.nextID++

	variant := morph.Pick(g.rng)
	mult := morph.VariantMultipliers(variant)

	jitter := func(base float64, m float32) float32 {
		j := 1 + (g.rng.Float32()*2-1)*float32(cfg.Creature.Jitter)
		return float32(base) * m * j
	}

	l1 := jitter(cfg.Creature.BoneUpper, mult.BoneLength)
	l2 := jitter(cfg.Creature.BoneLower, mult.BoneLength)
	hipX := jitter(cfg.Creature.HipSpanX, mult.HipSpan)
	hipY := jitter(cfg.Creature.HipSpanY, mult.HipSpan)

	gait := components.Gait{
		TriggerDistance: jitter(cfg.Gait.TriggerDistance, mult.StepTrigger),
		DurationTicks:   jitter(cfg.Gait.DurationTicks, mult.StepTime),
		Height:          jitter(cfg.Gait.Height, mult.StepHeight),
		Lead:            float32(cfg.Gait.Lead),
	}
	if gait.DurationTicks < 1 {
		gait.DurationTicks = 1
	}

	skinParams := components.SkinParams{
		Core: components.JointParams{Radius: jitter(cfg.Skin.Core.Radius, mult.JointSize), Weight: float32(cfg.Skin.Core.Weight)},
		Hip:  components.JointParams{Radius: jitter(cfg.Skin.Hip.Radius, mult.JointSize), Weight: float32(cfg.Skin.Hip.Weight)},
		Knee: components.JointParams{Radius: jitter(cfg.Skin.Knee.Radius, mult.JointSize), Weight: float32(cfg.Skin.Knee.Weight)},
		Foot: components.JointParams{Radius: jitter(cfg.Skin.Foot.Radius, mult.JointSize), Weight: float32(cfg.Skin.Foot.Weight)},
	}

	skel := components.Skeleton{
		Legs: []components.Leg{
			{ID: "FL", HipOffset: geom.Vec2{X: -hipX, Y: -hipY}, L1: l1, L2: l2},
			{ID: "FR", HipOffset: geom.Vec2{X: hipX, Y: -hipY}, L1: l1, L2: l2},
			{ID: "BL", HipOffset: geom.Vec2{X: -hipX, Y: hipY}, L1: l1, L2: l2},
			{ID: "BR", HipOffset: geom.Vec2{X: hipX, Y: hipY}, L1: l1, L2: l2},
		},
		StepOrder: append([]int(nil), cfg.Gait.Order...),
	}
	for i := range skel.Legs {
		skel.Legs[i].BendRight = skel.Legs[i].HipOffset.X > 0
	}

	// Feet start at their rest targets, knees solved from there
	core := geom.Vec2{X: x, Y: y}
	for i := range skel.Legs {
		skel.Legs[i].Foot = systems.IdealFootPosition(core, geom.Vec2{}, &skel, i, gait.Lead)
	}
	systems.SolveSkeleton(core, &skel)

	pos := components.Position{X: x, Y: y}
	vel := components.Velocity{}
	tintR, tintG, tintB := morph.Tint(variant)
	meta := components.Meta{
		ID:        id,
		Name:      fmt.Sprintf("%s-%02d", namePool[g.rng.Intn(len(namePool))], id),
		Variant:   variant,
		SpawnTick: g.tick,
		TintR:     tintR,
		TintG:     tintG,
		TintB:     tintB,
	}

	entity := g.creatureMapper.NewEntity(&pos, &vel, &skel, &gait, &skinParams, &meta)
	g.creatureCount++
	g.lifetimeTracker.Register(id, g.tick)

	return entity
}
