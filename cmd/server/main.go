// Package main - Entry point for the stacksafe API server
package main

import (
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"stacksafe/adapters/storage"
	"stacksafe/api"
	"stacksafe/core/engine"
	"stacksafe/core/kb"
	"stacksafe/internal/config"
	"stacksafe/internal/logging"
)

const version = "0.1.0"

func main() {
	addr := flag.String("addr", "", "server address (overrides config)")
	cfgFile := flag.String("config", "", "config file path")
	flag.Parse()

	cfg := config.Get()
	if *cfgFile != "" {
		loaded, err := config.Load(*cfgFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
		config.Set(loaded)
		cfg = loaded
	}
	if err := logging.Initialize(cfg.Logging); err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing logging: %v\n", err)
	}
	defer logging.Sync()

	// The knowledge base loads once at startup and is shared immutably by
	// every analysis for the rest of the process lifetime.
	knowledgeBase, err := kb.Load(cfg.KnowledgeBase.OverlayDir)
	if err != nil {
		logging.Fatal("failed to load knowledge base", zap.Error(err))
	}
	logging.Info("knowledge base loaded",
		zap.String("version", knowledgeBase.Version()),
		zap.Int("rules", knowledgeBase.Stats().Rules))

	analyzer := engine.NewAnalyzer(knowledgeBase, engine.Config{})

	var store *storage.HistoryStore
	if cfg.History.Enabled {
		store, err = storage.NewHistoryStore(cfg.History.DatabasePath)
		if err != nil {
			logging.Fatal("failed to open history store", zap.Error(err))
		}
		defer store.Close()
	}

	listenAddr := cfg.Server.Addr
	if *addr != "" {
		listenAddr = *addr
	}

	server := api.NewServerWithStore(version, analyzer, store)
	logging.Info("server starting", zap.String("addr", listenAddr), zap.String("version", version))
	if err := server.ListenAndServe(listenAddr); err != nil {
		logging.Fatal("server failed", zap.Error(err))
	}
}
