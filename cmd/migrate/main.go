// cmd/migrate — 独立迁移入口 (部署脚本用)。
package main

import (
	"context"
	"os"

	"github.com/multi-agent/kernel-console/internal/config"
	"github.com/multi-agent/kernel-console/internal/database"
	"github.com/multi-agent/kernel-console/pkg/logger"
)

func main() {
	ctx := context.Background()
	cfg := config.Load()
	logger.Init(cfg.LogEnv)

	if cfg.PostgresConnStr == "" {
		logger.Error("POSTGRES_CONNECTION_STRING not set")
		os.Exit(1)
	}

	pool, err := database.NewPool(ctx, cfg)
	if err != nil {
		logger.Fatal("database init failed", logger.Any(logger.FieldError, err))
	}
	defer pool.Close()

	dir := "./migrations"
	if len(os.Args) > 1 {
		dir = os.Args[1]
	}
	if err := database.Migrate(ctx, pool, dir); err != nil {
		logger.Fatal("migration failed", logger.Any(logger.FieldError, err))
	}
	logger.Info("migrations applied", logger.FieldPath, dir)
}
