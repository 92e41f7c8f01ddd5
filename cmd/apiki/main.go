package main

import (
	"fmt"
	"os"

	"github.com/apiki-hq/apiki/internal/cli"
	"github.com/apiki-hq/apiki/internal/config"
	"github.com/apiki-hq/apiki/internal/logger"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "apiki: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	if _, err := logger.Init(cfg.LogLevel); err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer logger.Close()

	return cli.Execute(cfg)
}
