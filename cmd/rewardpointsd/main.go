package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"rewardpoints/config"
	"rewardpoints/core/events"
	"rewardpoints/core/state"
	"rewardpoints/native/points"
	"rewardpoints/observability/logging"
	"rewardpoints/observability/metrics"
	"rewardpoints/rpc"
	"rewardpoints/storage"
)

func main() {
	configFile := flag.String("config", "./config.toml", "Path to the configuration file")
	flag.Parse()

	env := strings.TrimSpace(os.Getenv("REWARDPOINTS_ENV"))
	logger := logging.Setup("rewardpointsd", env)

	cfg, err := config.Load(*configFile)
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	owner, err := cfg.Owner()
	if err != nil {
		logger.Error("Invalid owner address", slog.Any("error", err))
		os.Exit(1)
	}

	db, err := storage.NewLevelDB(cfg.DataDir)
	if err != nil {
		panic(fmt.Sprintf("Failed to open database: %v", err))
	}
	defer db.Close()

	engine, err := points.NewEngine(state.NewManager(db), owner)
	if err != nil {
		logger.Error("Failed to open engine", slog.Any("error", err))
		os.Exit(1)
	}

	eventLog := events.NewLog()
	engine.SetEmitter(events.MultiEmitter{eventLog, metrics.Points()})

	logger.Info("engine ready",
		slog.String("network", cfg.NetworkName),
		slog.String("owner", cfg.OwnerAddress),
		slog.String("data_dir", cfg.DataDir),
	)

	server := rpc.NewServer(engine, eventLog, logger)
	if err := server.Start(cfg.RPCAddress); err != nil {
		logger.Error("RPC server stopped", slog.Any("error", err))
		os.Exit(1)
	}
}
