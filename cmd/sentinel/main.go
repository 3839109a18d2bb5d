package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"EchoSentinel/internal/config"
	"EchoSentinel/internal/engine"
	"EchoSentinel/internal/loader"
	"EchoSentinel/internal/notifier"
	"EchoSentinel/internal/recorder"
	"EchoSentinel/internal/scheduler"

	"github.com/joho/godotenv"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("[INFO] EchoSentinel starting...")

	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	// Load config
	cfgPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("[FATAL] load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("[FATAL] config validation: %v", err)
	}

	// Init loader
	var ld loader.Loader
	if cfg.Data.LocationsPath != "" {
		ld = loader.NewJSONFileLoader(cfg.Data.LocationsPath)
	} else {
		ld = &loader.MockLoader{Chains: cfg.Data.MockChains, PerChain: cfg.Data.MockPerChain}
	}
	log.Printf("[INFO] location source: %s", ld.Name())

	nodes, err := ld.Load()
	if err != nil {
		log.Fatalf("[FATAL] load locations: %v", err)
	}
	log.Printf("[INFO] loaded %d locations", len(nodes))

	// Init engine
	eng, err := engine.New(nodes, cfg.Propagation)
	if err != nil {
		log.Fatalf("[FATAL] init engine: %v", err)
	}

	// Init notifier
	var notif notifier.Notifier
	if cfg.Webhook.URL != "" {
		notif = notifier.NewWebhookNotifier(cfg.Webhook.URL)
	} else {
		notif = notifier.NewLogNotifier()
	}

	// Init recorder
	var rec recorder.Recorder
	if cfg.Database.SQLitePath != "" {
		sr, err := recorder.NewSQLiteRecorder(cfg.Database.SQLitePath)
		if err != nil {
			log.Printf("[WARN] init sqlite recorder failed, using noop: %v", err)
			rec = recorder.NewNoopRecorder()
		} else {
			rec = sr
			defer sr.Close()
		}
	} else {
		rec = recorder.NewNoopRecorder()
	}

	// Context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Init scheduler
	sched := scheduler.NewScheduler(ctx, eng, notif, rec, cfg.Signals.Brands, cfg.Signals.Trials)
	if err := sched.RegisterAll(cfg.Schedule.DailyCron, cfg.Schedule.WeeklyCron, cfg.Schedule.MonthlyCron); err != nil {
		log.Fatalf("[FATAL] register cron tasks: %v", err)
	}
	sched.Start()
	defer sched.Stop()

	// Optional: run immediately on start
	if os.Getenv("RUN_ON_START") == "true" {
		log.Println("[INFO] RUN_ON_START enabled, executing signal sweep now")
		go sched.RunSweepNow()
	}

	log.Println("[INFO] EchoSentinel is running. Press Ctrl+C to stop.")

	// Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Println("[INFO] shutdown signal received, stopping...")
	cancel()
	log.Println("[INFO] EchoSentinel stopped")
}
