package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/urfave/cli"

	"truethick/internal/api"
	"truethick/internal/config"
	"truethick/internal/session"
)

func main() {
	app := cli.NewApp()
	app.Name = "truethick-server"
	app.Usage = "serve the TrueThick orientation and intercept API"
	app.Flags = []cli.Flag{
		cli.StringFlag{
			Name:  "config",
			Usage: "path to YAML config file",
		},
		cli.StringFlag{
			Name:  "listen",
			Usage: "listen address (overrides config)",
		},
	}
	app.Action = run

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func run(c *cli.Context) error {
	cfg := config.Default()
	if path := c.GlobalString("config"); path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return err
		}
		cfg = loaded
	}
	if addr := c.GlobalString("listen"); addr != "" {
		cfg.Server.Listen = addr
	}

	eng := session.New(session.Config{Defaults: cfg.WorksheetDefaults()})
	server := api.NewServer(eng)

	httpServer := &http.Server{
		Addr:    cfg.Server.Listen,
		Handler: server.Handler(),
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		if err := eng.Run(ctx); err != nil && err != context.Canceled {
			log.Printf("session engine error: %v", err)
		}
	}()

	go func() {
		log.Printf("Starting HTTP server on %s", cfg.Server.Listen)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("HTTP server error: %v", err)
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	log.Println("Shutting down...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(),
		time.Duration(cfg.Server.ShutdownTimeoutMS)*time.Millisecond)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Printf("HTTP server shutdown error: %v", err)
	}

	cancel()

	log.Println("Shutdown complete")
	return nil
}
