package main

import (
	"flag"
	"fmt"
	"net/http"
	"os"

	"go.uber.org/zap"

	"accessdesk/internal/config"
	"accessdesk/internal/logging"
	"accessdesk/internal/mockapi"
)

func main() {
	envPath := flag.String("env", "", "Path to a .env file")
	adminEmail := flag.String("admin-email", "admin@example.com", "Email of the seeded admin account")
	adminPassword := flag.String("admin-password", "changeme", "Password of the seeded admin account")
	flag.Parse()

	cfg, err := config.New(*envPath)
	if err != nil {
		fmt.Println("Error:", err)
		os.Exit(1)
	}

	logger, err := logging.NewStdoutLogger(cfg.LogLevel)
	if err != nil {
		fmt.Println("Error:", err)
		os.Exit(1)
	}
	defer logger.Sync()

	store := mockapi.NewStore(*adminEmail, *adminPassword)
	if cfg.MockSeed {
		store.Seed()
		logger.Info("seeded fixture data", zap.String("user_id", store.SeededUserID()))
	}

	server := mockapi.NewServer(store, cfg.MockJWTSecret, logger)
	logger.Info("mock api listening",
		zap.String("addr", cfg.MockListenAddr),
		zap.String("admin", *adminEmail),
	)
	if err := http.ListenAndServe(cfg.MockListenAddr, server.NewRouter()); err != nil {
		logger.Fatal("serve", zap.Error(err))
	}
}
