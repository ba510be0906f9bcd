package telemetry

import (
	"fmt"
	"log/slog"
)

// BookmarkType identifies the type of bookmark.
type BookmarkType string

const (
	BookmarkExtinction        BookmarkType = "extinction"
	BookmarkPredatorsExtinct  BookmarkType = "predators_extinct"
	BookmarkHerbivoresExtinct BookmarkType = "herbivores_extinct"
	BookmarkPopulationCrash   BookmarkType = "population_crash"
)

// Bookmark represents an automatically triggered bookmark.
type Bookmark struct {
	Type        BookmarkType `csv:"type"`
	Tick        int          `csv:"tick"`
	Description string       `csv:"description"`
}

// LogBookmark logs the bookmark using slog.
func (b Bookmark) LogBookmark() {
	slog.Info("bookmark",
		"type", string(b.Type),
		"tick", b.Tick,
		"description", b.Description,
	)
}

// BookmarkDetector detects interesting moments in the simulation.
// CheckPopulation runs every tick for extinctions; Check runs per stats window.
type BookmarkDetector struct {
	// Rolling window history (circular buffer)
	history     []WindowStats
	historySize int
	historyIdx  int
	historyFull bool

	crashDrop    float64 // fraction of the recent peak
	crashMinDrop int

	// Last per-tick counts
	seen          bool
	lastPredators int
	lastHerbs     int
}

// NewBookmarkDetector creates a detector with the given window history size
// and crash thresholds.
func NewBookmarkDetector(historySize int, crashDrop float64, crashMinDrop int) *BookmarkDetector {
	if historySize < 2 {
		historySize = 2
	}
	return &BookmarkDetector{
		history:      make([]WindowStats, historySize),
		historySize:  historySize,
		crashDrop:    crashDrop,
		crashMinDrop: crashMinDrop,
	}
}

// CheckPopulation compares the class counts with the previous tick and
// reports extinctions. Each extinction fires once, on the tick the count
// reaches zero.
func (bd *BookmarkDetector) CheckPopulation(tick, predators, herbivores int) []Bookmark {
	if !bd.seen {
		bd.seen = true
		bd.lastPredators, bd.lastHerbs = predators, herbivores
		return nil
	}

	var bookmarks []Bookmark
	if bd.lastPredators > 0 && predators == 0 {
		bookmarks = append(bookmarks, Bookmark{
			Type:        BookmarkPredatorsExtinct,
			Tick:        tick,
			Description: fmt.Sprintf("Predators died out (%d herbivores remain)", herbivores),
		})
	}
	if bd.lastHerbs > 0 && herbivores == 0 {
		bookmarks = append(bookmarks, Bookmark{
			Type:        BookmarkHerbivoresExtinct,
			Tick:        tick,
			Description: fmt.Sprintf("Herbivores died out (%d predators remain)", predators),
		})
	}
	if bd.lastPredators+bd.lastHerbs > 0 && predators+herbivores == 0 {
		bookmarks = append(bookmarks, Bookmark{
			Type:        BookmarkExtinction,
			Tick:        tick,
			Description: "All organisms died",
		})
	}

	bd.lastPredators, bd.lastHerbs = predators, herbivores
	return bookmarks
}

// Check analyzes the latest window stats and returns any triggered bookmarks.
func (bd *BookmarkDetector) Check(stats WindowStats) []Bookmark {
	var bookmarks []Bookmark

	if b := bd.checkPopulationCrash(stats); b != nil {
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

func (bd *BookmarkDetector) checkPopulationCrash(stats WindowStats) *Bookmark {
	peak := 0
	for _, h := range bd.getHistory() {
		if p := h.Population(); p > peak {
			peak = p
		}
	}
	if peak == 0 {
		return nil
	}

	current := stats.Population()
	dropPercent := 1.0 - float64(current)/float64(peak)
	if dropPercent > bd.crashDrop && peak-current >= bd.crashMinDrop {
		// Forget the old peak so one crash fires once
		bd.historyIdx = 0
		bd.historyFull = false

		return &Bookmark{
			Type:        BookmarkPopulationCrash,
			Tick:        stats.WindowEndTick,
			Description: fmt.Sprintf("Population crashed %.0f%% from peak %d to %d", dropPercent*100, peak, current),
		}
	}

	return nil
}
