package game

import (
	"runtime"
	"sync"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/squirm/components"
	"github.com/pthm-cable/squirm/geom"
	"github.com/pthm-cable/squirm/skin"
)

// parallelThreshold is the minimum creature count to use the worker pool.
// Below this, single-threaded extraction beats the dispatch overhead.
const parallelThreshold = 64

// extractJob captures read-only state for one creature's extraction.
// Component pointers stay valid through the compute phase because no
// structural ECS change happens while workers run.
type extractJob struct {
	Entity ecs.Entity
	Core   geom.Vec2
	Vel    geom.Vec2
	Skel   *components.Skeleton
	Gait   *components.Gait
	Params *components.SkinParams
	Meta   *components.Meta
}

// extractResult holds one creature's contour. Each slot keeps its grid
// and segment buffer across ticks so steady state allocates nothing.
type extractResult struct {
	Grid     skin.Grid
	Segments []skin.Segment
	OK       bool
}

// workerScratch holds per-worker reusable buffers.
type workerScratch struct {
	Influences []skin.Influence
}

// workChunk is a range of jobs for one worker.
type workChunk struct {
	start, end int
}

// parallelState holds the persistent extraction worker pool.
type parallelState struct {
	jobs       []extractJob
	results    []extractResult
	scratches  []workerScratch
	numWorkers int

	workChan chan workChunk
	doneChan chan struct{}
	stopChan chan struct{}
	wg       sync.WaitGroup
	running  bool
}

func newParallelState() *parallelState {
	numWorkers := runtime.GOMAXPROCS(0)
	scratches := make([]workerScratch, numWorkers)
	for i := range scratches {
		scratches[i].Influences = make([]skin.Influence, 0, 32)
	}
	return &parallelState{
		numWorkers: numWorkers,
		scratches:  scratches,
		jobs:       make([]extractJob, 0, 64),
	}
}

// startWorkers launches persistent worker goroutines.
func (p *parallelState) startWorkers(g *Game) {
	if p.running {
		return
	}

	p.workChan = make(chan workChunk, p.numWorkers)
	p.doneChan = make(chan struct{}, p.numWorkers)
	p.stopChan = make(chan struct{})
	p.running = true

	for i := 0; i < p.numWorkers; i++ {
		p.wg.Add(1)
		go p.worker(g, i)
	}
}

// stopWorkers signals all workers to exit and waits for them.
func (p *parallelState) stopWorkers() {
	if !p.running {
		return
	}

	close(p.stopChan)
	p.wg.Wait()
	close(p.workChan)
	close(p.doneChan)
	p.running = false
}

// worker runs in a goroutine, processing chunks until stopped.
func (p *parallelState) worker(g *Game, workerID int) {
	defer p.wg.Done()
	scratch := &p.scratches[workerID]

	for {
		select {
		case <-p.stopChan:
			return
		case chunk, ok := <-p.workChan:
			if !ok {
				return
			}
			g.extractChunk(chunk.start, chunk.end, scratch)
			p.doneChan <- struct{}{}
		}
	}
}

// totalSegments sums the latest extraction's segment counts.
func (p *parallelState) totalSegments() int {
	total := 0
	for i := range p.jobs {
		if i >= len(p.results) {
			break
		}
		total += len(p.results[i].Segments)
	}
	return total
}

// updateContours rebuilds every creature's contour segments in three
// phases: snapshot the jobs single-threaded, compute into per-slot
// results, then record telemetry single-threaded.
func (g *Game) updateContours() {
	p := g.parallel
	p.jobs = p.jobs[:0]

	query := g.creatureFilter.Query()
	for query.Next() {
		pos, vel, skel, gait, params, meta := query.Get()
		p.jobs = append(p.jobs, extractJob{
			Entity: query.Entity(),
			Core:   pos.Vec(),
			Vel:    vel.Vec(),
			Skel:   skel,
			Gait:   gait,
			Params: params,
			Meta:   meta,
		})
	}

	n := len(p.jobs)
	if n == 0 {
		return
	}

	for len(p.results) < n {
		p.results = append(p.results, extractResult{})
	}

	if n < parallelThreshold {
		g.extractChunk(0, n, &p.scratches[0])
	} else {
		g.extractParallel(n)
	}

	for i := 0; i < n; i++ {
		res := &p.results[i]
		if !res.OK {
			continue
		}
		g.collector.RecordExtraction(len(res.Segments), res.Grid.Cols*res.Grid.Rows)
	}
}

// extractParallel dispatches chunks to the worker pool.
func (g *Game) extractParallel(n int) {
	if !g.parallel.running {
		g.parallel.startWorkers(g)
	}

	numWorkers := g.parallel.numWorkers
	chunkSize := (n + numWorkers - 1) / numWorkers

	chunksDispatched := 0
	for w := 0; w < numWorkers; w++ {
		start := w * chunkSize
		end := start + chunkSize
		if end > n {
			end = n
		}
		if start >= end {
			continue
		}

		g.parallel.workChan <- workChunk{start: start, end: end}
		chunksDispatched++
	}

	for i := 0; i < chunksDispatched; i++ {
		<-g.parallel.doneChan
	}
}

// extractChunk processes a range of jobs. Each job writes only its own
// result slot, so workers never contend.
func (g *Game) extractChunk(i0, i1 int, scratch *workerScratch) {
	for i := i0; i < i1; i++ {
		job := &g.parallel.jobs[i]
		res := &g.parallel.results[i]

		scratch.Influences = skin.CollectInfluences(job.Core, job.Skel, job.Params, scratch.Influences[:0])
		res.Segments = g.extractor.Extract(scratch.Influences, &res.Grid, res.Segments)
		res.OK = res.Grid.Cols > 0 && res.Grid.Rows > 0
	}
}
