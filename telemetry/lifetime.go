package telemetry

// LifetimeStats tracks per-creature statistics over its lifetime.
type LifetimeStats struct {
	SpawnTick int64
	AliveSec  float32

	// Gait
	StepsStarted   int
	StepsCompleted int

	// Movement
	DistanceTraveled float32

	// IK strain: worst target distance over chain reach, and how often
	// targets landed beyond reach
	MaxStretchRatio float32
	StretchClamps   int
}

// LifetimeTracker manages per-creature lifetime statistics.
type LifetimeTracker struct {
	stats map[uint32]*LifetimeStats
}

// NewLifetimeTracker creates a new lifetime tracker.
func NewLifetimeTracker() *LifetimeTracker {
	return &LifetimeTracker{
		stats: make(map[uint32]*LifetimeStats),
	}
}

// Register creates lifetime stats for a new creature.
func (lt *LifetimeTracker) Register(creatureID uint32, spawnTick int64) {
	lt.stats[creatureID] = &LifetimeStats{
		SpawnTick: spawnTick,
	}
}

// Get returns the lifetime stats for a creature, or nil if not found.
func (lt *LifetimeTracker) Get(creatureID uint32) *LifetimeStats {
	return lt.stats[creatureID]
}

// Remove removes a creature's stats and returns them.
func (lt *LifetimeTracker) Remove(creatureID uint32) *LifetimeStats {
	stats := lt.stats[creatureID]
	delete(lt.stats, creatureID)
	return stats
}

// RecordStep increments the started step count.
func (lt *LifetimeTracker) RecordStep(creatureID uint32) {
	if s := lt.stats[creatureID]; s != nil {
		s.StepsStarted++
	}
}

// RecordStepsCompleted adds planted steps.
func (lt *LifetimeTracker) RecordStepsCompleted(creatureID uint32, n int) {
	if s := lt.stats[creatureID]; s != nil {
		s.StepsCompleted += n
	}
}

// RecordTravel adds core movement distance.
func (lt *LifetimeTracker) RecordTravel(creatureID uint32, dist float32) {
	if s := lt.stats[creatureID]; s != nil {
		s.DistanceTraveled += dist
	}
}

// RecordStretch tracks the worst stretch ratio; ratios above 1 mean the
// IK target was beyond reach and count as clamps.
func (lt *LifetimeTracker) RecordStretch(creatureID uint32, ratio float32) {
	if s := lt.stats[creatureID]; s != nil {
		if ratio > s.MaxStretchRatio {
			s.MaxStretchRatio = ratio
		}
		if ratio > 1 {
			s.StretchClamps++
		}
	}
}

// UpdateAliveTime updates the alive time based on current tick.
func (lt *LifetimeTracker) UpdateAliveTime(creatureID uint32, currentTick int64, dt float32) {
	if s := lt.stats[creatureID]; s != nil {
		s.AliveSec = float32(currentTick-s.SpawnTick) * dt
	}
}

// All returns all tracked stats (for snapshots).
func (lt *LifetimeTracker) All() map[uint32]*LifetimeStats {
	return lt.stats
}

// Count returns the number of tracked creatures.
func (lt *LifetimeTracker) Count() int {
	return len(lt.stats)
}
