package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/hugohenrick/erp-multinegocio/internal/config"
	"github.com/hugohenrick/erp-multinegocio/pkg/logger"
)

func main() {
	configPath := flag.String("config", os.Getenv("CONFIG_FILE"), "arquivo de configuração opcional")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Erro ao carregar configuração: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Options{Level: cfg.Log.Level, Format: cfg.Log.Format})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app, err := NewApp(ctx, cfg, log)
	if err != nil {
		log.Error("Falha ao iniciar aplicação", "error", err)
		os.Exit(1)
	}

	err = app.Start(ctx)
	app.Close()
	if err != nil {
		log.Error("Servidor encerrado com erro", "error", err)
		os.Exit(1)
	}
}
