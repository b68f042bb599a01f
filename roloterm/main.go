package main

import (
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"rolodex/internal/config"
	"rolodex/internal/remote"
	"rolodex/internal/remote/memory"
	"rolodex/internal/remote/redis"
	"rolodex/internal/views"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Error loading configuration: %v\n", err)
		os.Exit(1)
	}

	logger, err := newLogger(cfg.LogFile)
	if err != nil {
		fmt.Printf("Error opening log file: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	collection, err := newCollection(cfg, logger)
	if err != nil {
		fmt.Printf("Error connecting to the contacts store: %v\n", err)
		os.Exit(1)
	}

	app := views.NewAppModel(cfg, collection, logger)

	p := tea.NewProgram(app, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		fmt.Printf("Error running application: %v\n", err)
		os.Exit(1)
	}
}

// newLogger writes structured logs to a file. The terminal belongs to the
// UI, so nothing may log to stderr while the program runs.
func newLogger(logFile string) (*zap.Logger, error) {
	if err := os.MkdirAll(filepath.Dir(logFile), 0o755); err != nil {
		return nil, err
	}

	logConfig := zap.NewProductionConfig()
	logConfig.OutputPaths = []string{logFile}
	logConfig.ErrorOutputPaths = []string{logFile}

	return logConfig.Build()
}

func newCollection(cfg *config.Config, logger *zap.Logger) (remote.Collection, error) {
	switch cfg.RemoteDriver {
	case config.DriverMemory:
		logger.Info("using in-memory contacts store")
		return memory.New(), nil
	default:
		logger.Info("connecting to redis", zap.String("addr", cfg.RedisAddr))
		return redis.New(redis.Config{
			Addr:      cfg.RedisAddr,
			Password:  cfg.RedisPassword,
			DB:        cfg.RedisDB,
			KeyPrefix: cfg.KeyPrefix,
			Timeout:   cfg.Timeout,
		}, logger)
	}
}
