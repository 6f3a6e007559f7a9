package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"accessdesk/internal/api"
	"accessdesk/internal/config"
	"accessdesk/internal/logging"
	"accessdesk/internal/session"
	"accessdesk/internal/ui"
)

func main() {
	cmd := flag.String("cmd", "console", "Command: login|logout|console")
	serverFlag := flag.String("server", "", "Override server base URL (e.g. https://api.example.com)")
	envPath := flag.String("env", "", "Path to a .env file")
	flag.Parse()

	cfg, err := config.New(*envPath)
	if err != nil {
		fmt.Println("Error:", err)
		os.Exit(1)
	}
	if *serverFlag != "" {
		cfg.ServerURL = strings.TrimRight(*serverFlag, "/")
	}

	logger, err := logging.NewFileLogger(cfg.LogFile, cfg.LogLevel)
	if err != nil {
		fmt.Println("Error:", err)
		os.Exit(1)
	}
	defer logger.Sync()

	store := session.NewStore(cfg.CredentialFile, cfg.MasterKeyFile)

	switch *cmd {
	case "login":
		err = loginFlow(cfg, store, logger)
	case "logout":
		err = store.Clear()
		if err == nil {
			fmt.Println("Logged out.")
		}
	case "console":
		err = consoleFlow(cfg, store, logger)
	default:
		err = fmt.Errorf("unknown command %q", *cmd)
	}
	if err != nil {
		fmt.Println("Error:", err)
		os.Exit(1)
	}
}

func loginFlow(cfg config.Config, store *session.Store, logger *zap.Logger) error {
	reader := bufio.NewReader(os.Stdin)

	fmt.Print("Email: ")
	email, err := reader.ReadString('\n')
	if err != nil {
		return err
	}
	fmt.Print("Password: ")
	password, err := reader.ReadString('\n')
	if err != nil {
		return err
	}

	client := api.New(cfg.ServerURL, api.Anonymous, cfg.HTTPTimeout, logger)
	ctx, cancel := context.WithTimeout(context.Background(), cfg.HTTPTimeout)
	defer cancel()

	creds, err := client.Login(ctx, strings.TrimSpace(email), strings.TrimSpace(password))
	if err != nil {
		if errors.Is(err, api.ErrUnauthorized) {
			return errors.New("invalid email or password")
		}
		return err
	}
	if err := store.Save(creds); err != nil {
		return fmt.Errorf("save credentials: %w", err)
	}
	fmt.Println("Logged in.")
	return nil
}

func consoleFlow(cfg config.Config, store *session.Store, logger *zap.Logger) error {
	creds, err := store.Load()
	if err != nil {
		if errors.Is(err, session.ErrNoCredentials) {
			return errors.New("not logged in, run with -cmd login first")
		}
		return err
	}

	client := api.New(cfg.ServerURL, creds, cfg.HTTPTimeout, logger)
	program := tea.NewProgram(ui.New(client, logger), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("run console: %w", err)
	}
	return nil
}
