package game

import (
	"log/slog"
	"math/rand"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/squirm/camera"
	"github.com/pthm-cable/squirm/components"
	"github.com/pthm-cable/squirm/config"
	"github.com/pthm-cable/squirm/renderer"
	"github.com/pthm-cable/squirm/skin"
	"github.com/pthm-cable/squirm/systems"
	"github.com/pthm-cable/squirm/telemetry"
	"github.com/pthm-cable/squirm/ui"
)

// Panel layout
const (
	inspectorWidth = 300
	sidePanelWidth = 260
	panelMargin    = 10
)

// Options configures a game instance.
type Options struct {
	Seed           int64
	LogStats       bool
	StatsWindowSec float64
	SnapshotDir    string
	OutputDir      string
	Headless       bool
	StepsPerUpdate int
	LoadSnapshot   string

	// Config overrides the global config when set. Tuning runs use this
	// to evaluate candidate parameters without touching config.Cfg().
	Config *config.Config

	// StatsCallback receives every flushed stats window.
	StatsCallback func(stats telemetry.WindowStats)
}

// Game holds the complete simulation state.
type Game struct {
	world *ecs.World
	rng   *rand.Rand

	// Creature mappers - the 6 components every creature carries
	creatureMapper *ecs.Map6[
		components.Position,
		components.Velocity,
		components.Skeleton,
		components.Gait,
		components.SkinParams,
		components.Meta,
	]
	creatureFilter *ecs.Filter6[
		components.Position,
		components.Velocity,
		components.Skeleton,
		components.Gait,
		components.SkinParams,
		components.Meta,
	]

	// Individual component mappers for lookups
	posMap  *ecs.Map1[components.Position]
	velMap  *ecs.Map1[components.Velocity]
	skelMap *ecs.Map1[components.Skeleton]
	gaitMap *ecs.Map1[components.Gait]
	skinMap *ecs.Map1[components.SkinParams]
	metaMap *ecs.Map1[components.Meta]

	// Wander driver shared by the whole population
	locomotion *systems.Locomotion

	// Contour extraction
	extractor skin.Extractor
	parallel  *parallelState

	// Telemetry
	collector        *telemetry.Collector
	perfCollector    *telemetry.PerfCollector
	bookmarkDetector *telemetry.BookmarkDetector
	lifetimeTracker  *telemetry.LifetimeTracker
	outputManager    *telemetry.OutputManager
	statsCallback    func(stats telemetry.WindowStats)
	lastStats        telemetry.WindowStats

	// Rendering and UI (nil in headless mode)
	camera           *camera.Camera
	background       *renderer.BackgroundRenderer
	creatureRenderer *renderer.CreatureRenderer
	overlays         *ui.OverlayRegistry
	hud              *ui.HUD
	perfPanel        *ui.PerfPanel
	inspector        *ui.Inspector
	controlsPanel    *ui.ControlsPanel
	quickStats       *ui.QuickStatsPanel
	tunerPanel       *ui.TunerPanel
	tunerState       ui.TunerState

	// Selection
	selected    ecs.Entity
	hasSelected bool
	following   bool

	// State
	tick           int64
	dt             float32
	paused         bool
	stepOnce       bool
	showPerf       bool
	stepsPerUpdate int
	nextID         uint32
	creatureCount  int

	rngSeed     int64
	logStats    bool
	snapshotDir string
	headless    bool

	screenWidth, screenHeight float32
	worldWidth, worldHeight   float32

	cfg *config.Config
}

// config returns the active configuration, preferring the per-instance
// override used by tuning runs.
func (g *Game) config() *config.Config {
	if g.cfg != nil {
		return g.cfg
	}
	return config.Cfg()
}

// NewGame creates a game with default options.
func NewGame() *Game {
	return NewGameWithOptions(Options{})
}

// NewGameWithOptions creates a new game instance.
func NewGameWithOptions(opts Options) *Game {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Cfg()
	}

	seed := opts.Seed
	if seed == 0 {
		seed = 42
	}

	stepsPerUpdate := opts.StepsPerUpdate
	if stepsPerUpdate < 1 {
		stepsPerUpdate = 1
	}

	statsWindowSec := opts.StatsWindowSec
	if statsWindowSec <= 0 {
		statsWindowSec = cfg.Telemetry.WindowSec
	}

	dt := float32(1.0) / float32(cfg.Window.TargetFPS)

	world := ecs.NewWorld()

	g := &Game{
		world: world,
		rng:   rand.New(rand.NewSource(seed)),
		creatureMapper: ecs.NewMap6[
			components.Position,
			components.Velocity,
			components.Skeleton,
			components.Gait,
			components.SkinParams,
			components.Meta,
		](world),
		creatureFilter: ecs.NewFilter6[
			components.Position,
			components.Velocity,
			components.Skeleton,
			components.Gait,
			components.SkinParams,
			components.Meta,
		](world),
		posMap:  ecs.NewMap1[components.Position](world),
		velMap:  ecs.NewMap1[components.Velocity](world),
		skelMap: ecs.NewMap1[components.Skeleton](world),
		gaitMap: ecs.NewMap1[components.Gait](world),
		skinMap: ecs.NewMap1[components.SkinParams](world),
		metaMap: ecs.NewMap1[components.Meta](world),

		dt:             dt,
		stepsPerUpdate: stepsPerUpdate,
		rngSeed:        seed,
		logStats:       opts.LogStats,
		snapshotDir:    opts.SnapshotDir,
		headless:       opts.Headless,
		statsCallback:  opts.StatsCallback,
		cfg:            opts.Config,

		screenWidth:  cfg.Derived.ScreenW32,
		screenHeight: cfg.Derived.ScreenH32,
		worldWidth:   cfg.Derived.WorldW32,
		worldHeight:  cfg.Derived.WorldH32,
	}

	g.locomotion = systems.NewLocomotion(
		seed,
		g.worldWidth, g.worldHeight,
		float32(cfg.Locomotion.Margin),
		float32(cfg.Locomotion.WanderScale),
		cfg.Locomotion.WanderSpeed,
	)

	g.extractor = skin.Extractor{
		CellSize: float32(cfg.Skin.CellSize),
		Iso:      float32(cfg.Skin.Iso),
		Padding:  float32(cfg.Skin.Padding),
	}
	g.parallel = newParallelState()

	g.collector = telemetry.NewCollector(statsWindowSec, dt)
	g.perfCollector = telemetry.NewPerfCollector(cfg.Window.TargetFPS * 2)
	g.bookmarkDetector = telemetry.NewBookmarkDetector(8)
	g.lifetimeTracker = telemetry.NewLifetimeTracker()

	om, err := telemetry.NewOutputManager(opts.OutputDir)
	if err != nil {
		slog.Error("failed to initialize output directory", "dir", opts.OutputDir, "error", err)
	} else if om != nil {
		g.outputManager = om
		if err := om.WriteConfig(cfg); err != nil {
			slog.Error("failed to write config snapshot", "error", err)
		}
		if g.snapshotDir == "" {
			g.snapshotDir = om.SnapshotDir()
		}
	}

	if !opts.Headless {
		g.camera = camera.New(
			g.screenWidth, g.screenHeight,
			g.worldWidth, g.worldHeight,
			float32(cfg.Camera.MinZoom), float32(cfg.Camera.MaxZoom),
		)
		g.background = renderer.NewBackgroundRenderer()
		g.creatureRenderer = renderer.NewCreatureRenderer()
		g.overlays = ui.NewOverlayRegistry()
		g.hud = ui.NewHUD()
		g.perfPanel = ui.NewPerfPanel(panelMargin, int32(g.screenHeight)-190)
		g.inspector = ui.NewInspector(int32(g.screenWidth)-inspectorWidth-panelMargin, panelMargin, inspectorWidth)
		g.controlsPanel = ui.NewControlsPanel(panelMargin, 110, sidePanelWidth)
		g.controlsPanel.SetVisible(true)
		g.quickStats = ui.NewQuickStatsPanel(panelMargin, 110, sidePanelWidth)
		g.tunerPanel = ui.NewTunerPanel(int32(g.screenWidth)-inspectorWidth-panelMargin, panelMargin, inspectorWidth)
		g.resetTunerState()
	}

	if opts.LoadSnapshot != "" {
		if err := g.restoreSnapshot(opts.LoadSnapshot); err != nil {
			slog.Error("failed to load snapshot, spawning fresh population",
				"path", opts.LoadSnapshot, "error", err)
			g.spawnPopulation()
		}
	} else {
		g.spawnPopulation()
	}

	// First frame needs contours before any tick has run
	if !opts.Headless {
		g.updateContours()
	}

	return g
}

// Update advances the simulation by the current speed multiplier and
// handles input. Called once per frame in windowed mode.
func (g *Game) Update() {
	g.handleInput()

	steps := g.stepsPerUpdate
	if g.paused {
		steps = 0
		if g.stepOnce {
			steps = 1
			g.stepOnce = false
		}
	}

	for i := 0; i < steps; i++ {
		// Only the last step's pose is drawn; skip extraction until then
		g.simulationStep(i == steps-1)
	}

	if g.following && g.hasSelected {
		if pos := g.posMap.Get(g.selected); pos != nil {
			g.camera.Follow(pos.X, pos.Y)
		}
	}
}

// UpdateHeadless advances the simulation without any input or rendering.
func (g *Game) UpdateHeadless() {
	for i := 0; i < g.stepsPerUpdate; i++ {
		// No draw pass exists; sample extraction once per stats window
		// so the skin columns stay meaningful
		g.simulationStep(g.collector.ShouldFlush(g.tick + 1))
	}
}

// Tick returns the current simulation tick.
func (g *Game) Tick() int64 {
	return g.tick
}

// CreatureCount returns the number of spawned creatures.
func (g *Game) CreatureCount() int {
	return g.creatureCount
}

// WorldSize returns the world dimensions in world units.
func (g *Game) WorldSize() (w, h float32) {
	return g.worldWidth, g.worldHeight
}

// ExtractContours rebuilds every creature's contour immediately. Headless
// callers use this to sample a pose outside the draw cadence.
func (g *Game) ExtractContours() {
	g.updateContours()
}

// ForEachContour calls fn with every creature's latest extracted contour.
// Only valid after ExtractContours or a drawn frame.
func (g *Game) ForEachContour(fn func(meta *components.Meta, segments []skin.Segment)) {
	p := g.parallel
	for i := range p.jobs {
		if i >= len(p.results) {
			break
		}
		fn(p.jobs[i].Meta, p.results[i].Segments)
	}
}

// Unload releases resources and reports lifetime totals.
func (g *Game) Unload() {
	g.parallel.stopWorkers()

	if g.logStats {
		g.logLifetimeSummary()
	}

	if g.outputManager != nil {
		if err := g.outputManager.Close(); err != nil {
			slog.Error("failed to close output files", "error", err)
		}
	}
}

// logLifetimeSummary emits one line per creature plus a population total.
func (g *Game) logLifetimeSummary() {
	var totalSteps, totalClamps int
	var totalDistance float32

	query := g.creatureFilter.Query()
	for query.Next() {
		_, _, _, _, _, meta := query.Get()
		stats := g.lifetimeTracker.Get(meta.ID)
		if stats == nil {
			continue
		}
		g.lifetimeTracker.UpdateAliveTime(meta.ID, g.tick, g.dt)

		slog.Info("creature_lifetime",
			"id", meta.ID,
			"name", meta.Name,
			"alive_sec", stats.AliveSec,
			"steps_started", stats.StepsStarted,
			"steps_completed", stats.StepsCompleted,
			"distance", stats.DistanceTraveled,
			"max_stretch", stats.MaxStretchRatio,
			"stretch_clamps", stats.StretchClamps,
		)

		totalSteps += stats.StepsCompleted
		totalClamps += stats.StretchClamps
		totalDistance += stats.DistanceTraveled
	}

	slog.Info("population_lifetime",
		"creatures", g.creatureCount,
		"ticks", g.tick,
		"steps_completed", totalSteps,
		"stretch_clamps", totalClamps,
		"distance", totalDistance,
	)
}
