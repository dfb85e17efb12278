package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"time"

	"github.com/Garsondee/Salvo-Sense/internal/audio"
	"github.com/Garsondee/Salvo-Sense/internal/feed"
	"github.com/Garsondee/Salvo-Sense/internal/game"
	"github.com/Garsondee/Salvo-Sense/internal/ui"
	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	seed := flag.Int64("seed", time.Now().UnixNano(), "RNG seed for the first session")
	configPath := flag.String("config", "", "optional tuning YAML")
	feedAddr := flag.String("feed", "", "serve the spectator websocket feed on this address (e.g. :8090)")
	feedEvery := flag.Int("feed-every", feed.DefaultEvery, "ticks between spectator frames")
	mute := flag.Bool("mute", false, "disable sound")
	flag.Parse()

	tuning := game.DefaultTuning()
	if *configPath != "" {
		t, err := game.LoadTuning(*configPath)
		if err != nil {
			log.Fatal(err)
		}
		tuning = t
	}
	engine := game.New(game.WithSeed(*seed), game.WithTuning(tuning))

	var opts []ui.Option
	if !*mute {
		player := audio.NewPlayer()
		if err := player.Init(); err != nil {
			log.Printf("audio disabled: %v", err)
		} else {
			defer player.Close()
		}
		opts = append(opts, ui.WithSound(player))
	}

	if *feedAddr != "" {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		hub := feed.NewHub()
		go hub.Run(ctx)

		mux := http.NewServeMux()
		mux.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
			feed.ServeWs(hub, w, r)
		})
		go func() {
			log.Printf("spectator feed on ws://%s/ws", *feedAddr)
			if err := http.ListenAndServe(*feedAddr, mux); err != nil {
				log.Printf("feed server: %v", err)
			}
		}()
		opts = append(opts, ui.WithPublisher(feed.NewPublisher(hub, *feedEvery)))
	}

	g := ui.New(engine, opts...)
	w, h := g.Size()
	ebiten.SetWindowTitle("Salvo Sense")
	ebiten.SetWindowSize(w, h)
	if err := ebiten.RunGame(g); err != nil {
		log.Fatal(err)
	}
}
