package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/Garsondee/Salvo-Sense/internal/game"
	"github.com/gdamore/tcell/v2"
)

func main() {
	seed := flag.Int64("seed", time.Now().UnixNano(), "RNG seed")
	configPath := flag.String("config", "", "optional tuning YAML")
	fireEvery := flag.Int("fire-every", 40, "autopilot shot cadence in ticks")
	frameMs := flag.Int("frame-ms", 16, "milliseconds per frame")
	flag.Parse()

	tuning := game.DefaultTuning()
	if *configPath != "" {
		t, err := game.LoadTuning(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
		tuning = t
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	v := newViewer(screen, game.New(game.WithSeed(*seed), game.WithTuning(tuning)), *fireEvery)
	v.run(time.Duration(*frameMs) * time.Millisecond)
	screen.Fini()

	fmt.Print(v.engine.Report().Format())
}

// run drives the viewer from a ticker plus an event channel until quit.
func (v *viewer) run(frame time.Duration) {
	ticker := time.NewTicker(frame)
	defer ticker.Stop()

	eventChan := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := v.screen.PollEvent()
			if ev == nil {
				return
			}
			eventChan <- ev
		}
	}()

	for {
		select {
		case ev := <-eventChan:
			if !v.handleInput(ev) {
				return
			}
		case <-ticker.C:
			v.step()
			v.draw()
		}
	}
}
