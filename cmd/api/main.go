package main

import (
	"context"
	"net/http"
	"os"

	"shawarma/pkg/config"
	"shawarma/pkg/logger"
	"shawarma/pkg/menu"
	"shawarma/pkg/metrics"
	"shawarma/pkg/order"
	"shawarma/pkg/order/memory"
	"shawarma/pkg/otel"
)

// @title Yerevan Shawarma API
// @version 1.0.0
// @description API for ordering delicious shawarma
// @host localhost:8000
// @BasePath /
func main() {
	log := logger.New(os.Stdout, logger.LevelInfo, "shawarma", otel.GetTraceID)
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		log.Error(ctx, "load config", "error", err)
		os.Exit(1)
	}

	tp, shutdown, err := otel.InitTracing(log, otel.Config{ServiceName: "shawarma", Host: cfg.OTELHost, Probability: 1.0})
	if err != nil {
		log.Error(ctx, "init tracing", "error", err)
		os.Exit(1)
	}
	defer shutdown(ctx)

	catalog := menu.Default()
	svc := order.NewService(memory.New(), catalog, cfg.PrepDelay, log)
	a := &api{
		svc:     svc,
		catalog: catalog,
		log:     log,
		tracer:  tp.Tracer("shawarma"),
	}
	r := newRouter(a, metrics.New("shawarma"))

	log.Info(ctx, "listening", "addr", cfg.Addr)
	if err := http.ListenAndServe(cfg.Addr, r); err != nil {
		log.Error(ctx, "server closed", "error", err)
	}
}
