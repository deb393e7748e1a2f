package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/hugohenrick/erp-multinegocio/internal/config"
	"github.com/hugohenrick/erp-multinegocio/internal/infrastructure/database"
	"github.com/hugohenrick/erp-multinegocio/pkg/logger"
)

// Uso:
//
//	migration [-config arquivo] up
//	migration [-config arquivo] down [-steps N]
//	migration [-config arquivo] version
func main() {
	configPath := flag.String("config", "", "arquivo de configuração opcional")
	steps := flag.Int("steps", 1, "quantidade de migrações a reverter com down")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Erro ao carregar configuração: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Options{Level: cfg.Log.Level, Format: cfg.Log.Format})

	command := flag.Arg(0)
	if command == "" {
		command = "up"
	}

	if err := run(command, *steps, cfg.DatabaseURL(), log); err != nil {
		log.Error("Falha na migração", "command", command, "error", err)
		os.Exit(1)
	}
}

func run(command string, steps int, databaseURL string, log logger.Logger) error {
	switch command {
	case "up":
		return database.RunMigrations(databaseURL, log)
	case "down":
		if steps < 1 {
			return fmt.Errorf("steps deve ser ao menos 1")
		}
		return database.RollbackMigrations(databaseURL, steps, log)
	case "version":
		version, dirty, err := database.MigrationVersion(databaseURL)
		if err != nil {
			return err
		}
		log.Info("Versão do schema", "version", version, "dirty", dirty)
		return nil
	}
	return fmt.Errorf("comando desconhecido %q: use up, down ou version", command)
}
