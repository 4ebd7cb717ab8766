package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/yatishb23/expense-tracker-frontend/internal/clients/expenses"
	"github.com/yatishb23/expense-tracker-frontend/internal/clients/identity"
	"github.com/yatishb23/expense-tracker-frontend/internal/config"
	"github.com/yatishb23/expense-tracker-frontend/internal/logger"
	"github.com/yatishb23/expense-tracker-frontend/internal/model/session"
)

func main() {
	_ = godotenv.Load()
	defer logger.Sync()

	conf, err := config.New()
	if err != nil {
		logger.Fatal("failed to init config", zap.Error(err))
	}

	if addr := conf.Metrics().Addr(); addr != "" {
		go serveMetrics(addr)
	}

	backend := expenses.New(conf.Backend())
	users := identity.New(conf.Backend())
	sessions := session.NewManager(users, backend)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	runLoop(ctx, sessions, conf.App())
}

func serveMetrics(addr string) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	if err := http.ListenAndServe(addr, mux); err != nil {
		logger.Error("metrics listener stopped", zap.Error(err))
	}
}
