// Command chessboard serves a local browser board backed by the chess
// rules engine.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/mway1/chess"
	"github.com/mway1/chess/internal/server"
)

type Config struct {
	Addr    string
	Preset  string
	Logging bool
}

var config Config

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	var err = run()
	if err != nil {
		log.Println(err)
		os.Exit(1)
	}
}

func run() error {
	flag.StringVar(&config.Addr, "addr", "127.0.0.1:3000", "Listen address")
	flag.StringVar(&config.Preset, "preset", "", "Preset for new sessions")
	flag.BoolVar(&config.Logging, "log", true, "Log requests")
	flag.Parse()

	log.Printf("%+v", config)

	if config.Preset != "" {
		if _, err := chess.PresetByName(config.Preset); err != nil {
			return err
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app := server.New(server.NewStore(), server.Config{
		DefaultPreset: config.Preset,
		Logging:       config.Logging,
	})

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return app.Listen(config.Addr)
	})

	g.Go(func() error {
		<-ctx.Done()
		log.Println("shutting down")
		return app.Shutdown()
	})

	return g.Wait()
}
