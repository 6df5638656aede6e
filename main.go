package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"shoppingagent/app/config"
	"shoppingagent/app/server"
	"shoppingagent/app/service/agent"
	"shoppingagent/app/service/dialogue"
	"shoppingagent/app/service/eventlog"
	"shoppingagent/app/service/session"
	"shoppingagent/app/util/mylog"

	"github.com/gofiber/fiber/v2/log"
	"github.com/samber/do"
)

func main() {
	di := do.New()
	defer di.Shutdown()
	defer log.Info("Waiting for services to finish...")

	mylog.Preinit()

	appCtx, cancel := context.WithCancel(context.Background())
	defer cancel()
	do.ProvideValue(di, appCtx)

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config load failed: %v", err)
	}
	do.ProvideValue(di, cfg)

	if err = mylog.Init(cfg); err != nil {
		log.Fatalf("logging init failed: %v", err)
	}

	do.Provide(di, eventlog.New)
	do.Provide(di, agent.New)
	do.Provide(di, session.NewManager)
	do.Provide(di, dialogue.New)
	do.Provide(di, server.New)

	slog.Info("Service started")

	go func() {
		sigint := make(chan os.Signal, 1)
		signal.Notify(sigint, os.Interrupt)
		<-sigint

		log.Info("Shutting down...")

		cancel()
	}()

	if err = do.MustInvoke[*server.Server](di).Run(appCtx); err != nil {
		log.Errorf("server stopped: %v", err)
	}
}
