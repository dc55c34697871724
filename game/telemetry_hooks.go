package game

import (
	"fmt"
	"log/slog"

	"github.com/pthm-cable/squirm/components"
	"github.com/pthm-cable/squirm/systems"
	"github.com/pthm-cable/squirm/telemetry"
)

// flushTelemetry closes the stats window when due, emits the window to
// every configured sink, and checks for bookmark-worthy anomalies.
func (g *Game) flushTelemetry() {
	if !g.collector.ShouldFlush(g.tick) {
		return
	}

	creatures := 0
	steppingNow := 0
	query := g.creatureFilter.Query()
	for query.Next() {
		_, _, skel, _, _, meta := query.Get()
		creatures++
		steppingNow += skel.SteppingCount()
		g.lifetimeTracker.UpdateAliveTime(meta.ID, g.tick, g.dt)
	}

	stats := g.collector.Flush(g.tick, creatures, steppingNow)
	g.lastStats = stats
	perfStats := g.perfCollector.Stats()

	if g.statsCallback != nil {
		g.statsCallback(stats)
	}

	if g.logStats {
		stats.LogStats()
		perfStats.LogStats()
	}

	if err := g.outputManager.WriteTelemetry(stats); err != nil {
		slog.Error("telemetry write failed", "error", err)
	}
	if err := g.outputManager.WritePerf(perfStats, stats.WindowEndTick); err != nil {
		slog.Error("perf write failed", "error", err)
	}

	for _, bm := range g.bookmarkDetector.Check(stats) {
		if g.logStats {
			bm.LogBookmark()
		}
		if err := g.outputManager.WriteBookmark(bm); err != nil {
			slog.Error("bookmark write failed", "error", err)
		}
		if g.snapshotDir != "" {
			g.saveSnapshot(&bm)
		}
	}
}

// saveSnapshot captures the full population pose and writes it to the
// snapshot directory. The bookmark is optional context for why the
// snapshot was taken.
func (g *Game) saveSnapshot(bookmark *telemetry.Bookmark) {
	snapshot := g.createSnapshot(bookmark)
	path, err := telemetry.SaveSnapshot(snapshot, g.snapshotDir)
	if err != nil {
		slog.Error("snapshot save failed", "error", err)
		return
	}
	slog.Info("snapshot saved", "path", path, "tick", g.tick, "creatures", len(snapshot.Creatures))
}

// createSnapshot serializes every creature's pose and lifetime stats.
func (g *Game) createSnapshot(bookmark *telemetry.Bookmark) *telemetry.Snapshot {
	snapshot := &telemetry.Snapshot{
		Version:     telemetry.SnapshotVersion,
		RNGSeed:     g.rngSeed,
		Tick:        g.tick,
		WorldWidth:  g.worldWidth,
		WorldHeight: g.worldHeight,
		Bookmark:    bookmark,
	}

	query := g.creatureFilter.Query()
	for query.Next() {
		pos, vel, skel, gait, skinp, meta := query.Get()
		cs := telemetry.CaptureCreature(meta, pos, vel, skel, gait, skinp, g.lifetimeTracker.Get(meta.ID))
		snapshot.Creatures = append(snapshot.Creatures, cs)
	}

	return snapshot
}

// restoreSnapshot rebuilds the population from a saved snapshot file.
// Knees are recomputed by the IK pass rather than restored.
func (g *Game) restoreSnapshot(path string) error {
	snapshot, err := telemetry.LoadSnapshot(path)
	if err != nil {
		return fmt.Errorf("load snapshot: %w", err)
	}

	if snapshot.WorldWidth != g.worldWidth || snapshot.WorldHeight != g.worldHeight {
		slog.Warn("snapshot world size differs",
			"snapshot_w", snapshot.WorldWidth, "snapshot_h", snapshot.WorldHeight,
			"world_w", g.worldWidth, "world_h", g.worldHeight)
	}

	var maxID uint32
	for _, cs := range snapshot.Creatures {
		var (
			meta  components.Meta
			pos   components.Position
			vel   components.Velocity
			skel  components.Skeleton
			gait  components.Gait
			skinp components.SkinParams
		)
		telemetry.RestoreCreature(cs, &meta, &pos, &vel, &skel, &gait, &skinp)
		systems.SolveSkeleton(pos.Vec(), &skel)

		g.creatureMapper.NewEntity(&pos, &vel, &skel, &gait, &skinp, &meta)

		g.lifetimeTracker.Register(meta.ID, meta.SpawnTick)
		if cs.Lifetime != nil {
			*g.lifetimeTracker.Get(meta.ID) = *cs.Lifetime.FromJSON()
		}

		if meta.ID > maxID {
			maxID = meta.ID
		}
	}

	g.nextID = maxID + 1
	g.creatureCount = len(snapshot.Creatures)
	g.tick = snapshot.Tick

	slog.Info("snapshot restored",
		"path", path,
		"tick", snapshot.Tick,
		"creatures", len(snapshot.Creatures),
		"seed", snapshot.RNGSeed)
	return nil
}
