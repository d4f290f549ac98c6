package main

import (
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/ESikich/TopDownRPG/internal/engine"
	"github.com/ESikich/TopDownRPG/internal/server"
	"github.com/ESikich/TopDownRPG/internal/version"
	"github.com/ESikich/TopDownRPG/pkg/logger"
)

func init() {
	logger.Init()
}

func main() {
	var seed int64
	var port string
	flag.Int64Var(&seed, "seed", 0, "World seed (0 for random)")
	flag.StringVar(&port, "port", "", "Listen port (overrides RPG_PORT)")
	flag.Parse()

	logger.Log.Info("Starting dungeon server...")
	logger.Log.Info(version.String())

	cfg := engine.NewConfig()
	if seed != 0 {
		cfg.Seed = seed
		logger.Log.Infof("Using explicit seed: %d", seed)
	} else {
		logger.Log.Infof("Using random seed: %d", cfg.Seed)
	}

	if port == "" {
		port = os.Getenv("RPG_PORT")
	}
	if port == "" {
		port = "8080"
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	srv := server.New(cfg, port)
	go func() {
		if err := srv.Run(); err != nil {
			logger.Log.Fatal("Server start error:", err)
		}
	}()

	<-stop
	logger.Log.Info("Shutting down.")
}
