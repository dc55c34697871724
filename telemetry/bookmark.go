package telemetry

import (
	"fmt"
	"log/slog"
)

// BookmarkType identifies the type of bookmark.
type BookmarkType string

const (
	BookmarkStretchSpike   BookmarkType = "stretch_spike"
	BookmarkOvershootSpike BookmarkType = "overshoot_spike"
	BookmarkSegmentSurge   BookmarkType = "segment_surge"
	BookmarkStepStarvation BookmarkType = "step_starvation"
)

// Detection thresholds.
const (
	stretchSpikeMultiplier   = 2.0
	stretchSpikeMinClamps    = 8
	overshootSpikeMultiplier = 1.5
	overshootSpikeMinSteps   = 5
	segmentSurgeMultiplier   = 2.0
	segmentSurgeMinSegments  = 50.0
	starvationWindows        = 3
)

// Bookmark represents an automatically flagged window.
type Bookmark struct {
	Type        BookmarkType
	Tick        int64
	Description string
}

// LogBookmark logs the bookmark using slog.
func (b Bookmark) LogBookmark() {
	slog.Info("bookmark",
		"type", string(b.Type),
		"tick", b.Tick,
		"description", b.Description,
	)
}

// BookmarkDetector flags anomalous stats windows: IK stretch spikes,
// unusual trigger overshoot, contour complexity surges, and creatures
// that stop stepping entirely.
type BookmarkDetector struct {
	// Rolling history (circular buffer)
	history     []WindowStats
	historySize int
	historyIdx  int
	historyFull bool

	starvedWindows int
}

// NewBookmarkDetector creates a detector with the given history size.
func NewBookmarkDetector(historySize int) *BookmarkDetector {
	if historySize < 5 {
		historySize = 5
	}
	return &BookmarkDetector{
		history:     make([]WindowStats, historySize),
		historySize: historySize,
	}
}

// Check analyzes the latest stats and returns any triggered bookmarks.
func (bd *BookmarkDetector) Check(stats WindowStats) []Bookmark {
	var bookmarks []Bookmark

	if bd.historyFull || bd.historyIdx > 0 {
		if b := bd.checkStretchSpike(stats); b != nil {
			bookmarks = append(bookmarks, *b)
		}
		if b := bd.checkOvershootSpike(stats); b != nil {
			bookmarks = append(bookmarks, *b)
		}
		if b := bd.checkSegmentSurge(stats); b != nil {
			bookmarks = append(bookmarks, *b)
		}
	}

	// Starvation needs no rolling baseline
	if b := bd.checkStepStarvation(stats); b != nil {
		bookmarks = append(bookmarks, *b)
	}

	bd.addToHistory(stats)

	return bookmarks
}

func (bd *BookmarkDetector) addToHistory(stats WindowStats) {
	bd.history[bd.historyIdx] = stats
	bd.historyIdx = (bd.historyIdx + 1) % bd.historySize
	if bd.historyIdx == 0 {
		bd.historyFull = true
	}
}

func (bd *BookmarkDetector) getHistory() []WindowStats {
	if bd.historyFull {
		return bd.history
	}
	return bd.history[:bd.historyIdx]
}

func (bd *BookmarkDetector) checkStretchSpike(stats WindowStats) *Bookmark {
	history := bd.getHistory()
	if len(history) < 3 {
		return nil
	}
	if stats.StretchClamps < stretchSpikeMinClamps {
		return nil
	}

	var total int
	for _, h := range history {
		total += h.StretchClamps
	}
	avg := float64(total) / float64(len(history))

	if float64(stats.StretchClamps) <= avg*stretchSpikeMultiplier {
		return nil
	}

	return &Bookmark{
		Type:        BookmarkStretchSpike,
		Tick:        stats.WindowEndTick,
		Description: fmt.Sprintf("Stretch clamps %d vs rolling average %.1f", stats.StretchClamps, avg),
	}
}

func (bd *BookmarkDetector) checkOvershootSpike(stats WindowStats) *Bookmark {
	history := bd.getHistory()
	if len(history) < 3 {
		return nil
	}
	if stats.StepsStarted < overshootSpikeMinSteps {
		return nil
	}

	var total float64
	for _, h := range history {
		total += h.OvershootMean
	}
	avg := total / float64(len(history))
	if avg == 0 {
		return nil
	}

	if stats.OvershootMean <= avg*overshootSpikeMultiplier {
		return nil
	}

	return &Bookmark{
		Type:        BookmarkOvershootSpike,
		Tick:        stats.WindowEndTick,
		Description: fmt.Sprintf("Overshoot mean %.2f is %.1fx average (%.2f)", stats.OvershootMean, stats.OvershootMean/avg, avg),
	}
}

func (bd *BookmarkDetector) checkSegmentSurge(stats WindowStats) *Bookmark {
	history := bd.getHistory()
	if len(history) < 3 {
		return nil
	}
	if stats.SegmentsMean < segmentSurgeMinSegments {
		return nil
	}

	var total float64
	for _, h := range history {
		total += h.SegmentsMean
	}
	avg := total / float64(len(history))
	if avg == 0 {
		return nil
	}

	if stats.SegmentsMean <= avg*segmentSurgeMultiplier {
		return nil
	}

	return &Bookmark{
		Type:        BookmarkSegmentSurge,
		Tick:        stats.WindowEndTick,
		Description: fmt.Sprintf("Contour segments %.0f is %.1fx average (%.0f)", stats.SegmentsMean, stats.SegmentsMean/avg, avg),
	}
}

func (bd *BookmarkDetector) checkStepStarvation(stats WindowStats) *Bookmark {
	if stats.Creatures == 0 || stats.StepsStarted > 0 {
		bd.starvedWindows = 0
		return nil
	}

	bd.starvedWindows++
	if bd.starvedWindows != starvationWindows {
		// trigger exactly once when the streak is reached
		return nil
	}

	return &Bookmark{
		Type:        BookmarkStepStarvation,
		Tick:        stats.WindowEndTick,
		Description: fmt.Sprintf("No steps for %d windows with %d creatures", starvationWindows, stats.Creatures),
	}
}
