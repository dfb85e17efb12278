package ui

import (
	"fmt"
	"image/color"

	"github.com/Garsondee/Salvo-Sense/internal/game"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

const (
	feedPanelWidth = 320
	feedMaxEntries = 60
	feedLineHeight = 11
	feedHighlight  = 3 // newest entries drawn with a highlight row
)

// feedCategories are the SimLog categories worth showing on screen.
var feedCategories = map[string]bool{
	"fire":   true,
	"launch": true,
	"hit":    true,
	"damage": true,
	"level":  true,
	"phase":  true,
}

// FeedEntry is a single line in the event feed.
type FeedEntry struct {
	Tick    int
	Label   string // actor label, e.g. "P3", "M12", "kestrel"
	Side    string
	Message string
}

// EventFeed is a bounded ring buffer of recent simulation events rendered
// beside the battlefield. It reads the engine's SimLog incrementally.
type EventFeed struct {
	entries []FeedEntry
	head    int
	count   int
	cursor  int // next SimLog index to read
}

// NewEventFeed creates an empty feed with a fixed capacity.
func NewEventFeed() *EventFeed {
	return &EventFeed{
		entries: make([]FeedEntry, feedMaxEntries),
	}
}

// Add appends an entry, overwriting the oldest once full.
func (f *EventFeed) Add(tick int, label, side, msg string) {
	f.entries[f.head] = FeedEntry{
		Tick:    tick,
		Label:   label,
		Side:    side,
		Message: msg,
	}
	f.head = (f.head + 1) % feedMaxEntries
	if f.count < feedMaxEntries {
		f.count++
	}
}

// Pull copies every displayable entry logged since the last call. A log
// that shrank was reset, so reading starts over and the buffer is cleared.
func (f *EventFeed) Pull(log *game.SimLog) {
	if log == nil {
		return
	}
	if log.Len() < f.cursor {
		f.Clear()
	}
	for _, e := range log.Since(f.cursor) {
		if !feedCategories[e.Category] {
			continue
		}
		f.Add(e.Tick, e.Actor, e.Side, fmt.Sprintf("%s %s", e.Key, e.Value))
	}
	f.cursor = log.Len()
}

// Clear drops every entry and rewinds the log cursor.
func (f *EventFeed) Clear() {
	f.head, f.count, f.cursor = 0, 0, 0
}

// Len returns the number of buffered entries.
func (f *EventFeed) Len() int { return f.count }

// Recent returns entries in chronological order (oldest first).
func (f *EventFeed) Recent() []FeedEntry {
	result := make([]FeedEntry, f.count)
	for i := 0; i < f.count; i++ {
		idx := (f.head - f.count + i + feedMaxEntries) % feedMaxEntries
		result[i] = f.entries[idx]
	}
	return result
}

func sideColor(side string) color.RGBA {
	switch side {
	case "player":
		return color.RGBA{R: 80, G: 200, B: 120, A: 255}
	case "opfor":
		return color.RGBA{R: 220, G: 80, B: 70, A: 255}
	default:
		return color.RGBA{R: 170, G: 170, B: 170, A: 255}
	}
}

// Draw renders the feed panel at panelX, newest entries at the bottom.
func (f *EventFeed) Draw(screen *ebiten.Image, panelX int, panelH int) {
	px := float32(panelX)
	vector.FillRect(screen, px, 0, feedPanelWidth, float32(panelH), color.RGBA{R: 10, G: 12, B: 16, A: 248}, false)
	vector.StrokeLine(screen, px, 0, px, float32(panelH), 1.0, color.RGBA{R: 50, G: 60, B: 80, A: 255}, false)

	vector.FillRect(screen, px, 0, feedPanelWidth, 16, color.RGBA{R: 20, G: 26, B: 36, A: 255}, false)
	ebitenutil.DebugPrintAt(screen, "EVENT FEED", panelX+8, 2)
	vector.StrokeLine(screen, px, 16, px+feedPanelWidth, 16, 1.0, color.RGBA{R: 50, G: 70, B: 100, A: 200}, false)

	entries := f.Recent()
	maxVisible := (panelH - 24) / feedLineHeight
	if len(entries) > maxVisible {
		entries = entries[len(entries)-maxVisible:]
	}

	y := 20
	for i, e := range entries {
		if i >= len(entries)-feedHighlight {
			vector.FillRect(screen, px+2, float32(y), feedPanelWidth-4, feedLineHeight, color.RGBA{R: 30, G: 36, B: 50, A: 160}, false)
		}
		vector.FillRect(screen, px+5, float32(y+3), 3, 5, sideColor(e.Side), false)
		line := fmt.Sprintf("%5d [%s] %s", e.Tick, e.Label, e.Message)
		ebitenutil.DebugPrintAt(screen, line, panelX+12, y)
		y += feedLineHeight
	}
}
