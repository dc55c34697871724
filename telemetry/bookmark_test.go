package telemetry

import "testing"

func hasBookmark(bookmarks []Bookmark, typ BookmarkType) bool {
	for _, bm := range bookmarks {
		if bm.Type == typ {
			return true
		}
	}
	return false
}

func TestBookmarkDetector_StretchSpike(t *testing.T) {
	bd := NewBookmarkDetector(10)

	// Quiet baseline
	for i := 0; i < 5; i++ {
		bd.Check(WindowStats{
			WindowEndTick: int64(i * 600),
			Creatures:     6,
			StepsStarted:  20,
			StretchClamps: 2,
		})
	}

	// Spike well past 2x the rolling average
	bookmarks := bd.Check(WindowStats{
		WindowEndTick: 3600,
		Creatures:     6,
		StepsStarted:  20,
		StretchClamps: 10,
	})

	if !hasBookmark(bookmarks, BookmarkStretchSpike) {
		t.Error("expected stretch_spike bookmark")
	}
}

func TestBookmarkDetector_StretchSpikeIgnoresSmallCounts(t *testing.T) {
	bd := NewBookmarkDetector(10)

	for i := 0; i < 5; i++ {
		bd.Check(WindowStats{WindowEndTick: int64(i * 600), Creatures: 6, StepsStarted: 20, StretchClamps: 1})
	}

	// 6 clamps is 6x the average but below the absolute floor
	bookmarks := bd.Check(WindowStats{WindowEndTick: 3600, Creatures: 6, StepsStarted: 20, StretchClamps: 6})

	if hasBookmark(bookmarks, BookmarkStretchSpike) {
		t.Error("stretch_spike fired below the minimum clamp count")
	}
}

func TestBookmarkDetector_OvershootSpike(t *testing.T) {
	bd := NewBookmarkDetector(10)

	for i := 0; i < 4; i++ {
		bd.Check(WindowStats{
			WindowEndTick: int64(i * 600),
			Creatures:     6,
			StepsStarted:  10,
			OvershootMean: 2.0,
		})
	}

	bookmarks := bd.Check(WindowStats{
		WindowEndTick: 2400,
		Creatures:     6,
		StepsStarted:  10,
		OvershootMean: 4.0, // 2x the 2.0 average, above the 1.5x threshold
	})

	if !hasBookmark(bookmarks, BookmarkOvershootSpike) {
		t.Error("expected overshoot_spike bookmark")
	}
}

func TestBookmarkDetector_SegmentSurge(t *testing.T) {
	bd := NewBookmarkDetector(10)

	for i := 0; i < 4; i++ {
		bd.Check(WindowStats{
			WindowEndTick: int64(i * 600),
			Creatures:     6,
			StepsStarted:  10,
			SegmentsMean:  60,
		})
	}

	bookmarks := bd.Check(WindowStats{
		WindowEndTick: 2400,
		Creatures:     6,
		StepsStarted:  10,
		SegmentsMean:  150,
	})

	if !hasBookmark(bookmarks, BookmarkSegmentSurge) {
		t.Error("expected segment_surge bookmark")
	}
}

func TestBookmarkDetector_StepStarvation(t *testing.T) {
	bd := NewBookmarkDetector(10)

	starved := WindowStats{Creatures: 6, StepsStarted: 0}

	for i := 0; i < 2; i++ {
		if bookmarks := bd.Check(starved); hasBookmark(bookmarks, BookmarkStepStarvation) {
			t.Fatalf("starvation fired after only %d windows", i+1)
		}
	}

	// Third consecutive starved window triggers, exactly once.
	if bookmarks := bd.Check(starved); !hasBookmark(bookmarks, BookmarkStepStarvation) {
		t.Error("expected step_starvation bookmark at the third window")
	}
	if bookmarks := bd.Check(starved); hasBookmark(bookmarks, BookmarkStepStarvation) {
		t.Error("step_starvation fired twice for the same streak")
	}
}

func TestBookmarkDetector_StarvationResetsOnActivity(t *testing.T) {
	bd := NewBookmarkDetector(10)

	starved := WindowStats{Creatures: 6, StepsStarted: 0}
	active := WindowStats{Creatures: 6, StepsStarted: 12}

	bd.Check(starved)
	bd.Check(starved)
	bd.Check(active)

	// Streak restarted: two more starved windows must not trigger yet.
	bd.Check(starved)
	if bookmarks := bd.Check(starved); hasBookmark(bookmarks, BookmarkStepStarvation) {
		t.Error("starvation streak survived an active window")
	}
}
