// cmd/console — 运行状态控制台主入口。
package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/multi-agent/kernel-console/internal/config"
	"github.com/multi-agent/kernel-console/internal/consoleapi"
	"github.com/multi-agent/kernel-console/internal/database"
	"github.com/multi-agent/kernel-console/internal/journal"
	"github.com/multi-agent/kernel-console/internal/kernel"
	"github.com/multi-agent/kernel-console/internal/runview"
	"github.com/multi-agent/kernel-console/pkg/logger"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg := config.Load()
	logger.Init(cfg.LogEnv)
	if cfg.LogDir != "" {
		if err := logger.InitWithFile(cfg.LogDir); err != nil {
			logger.Warn("file logging unavailable", logger.FieldError, err)
		}
		defer logger.ShutdownFileHandler()
	}

	// 事件持久化可选: 未配置数据库时只保留内存投影
	var sink runview.EventSink
	var journalStore *journal.RunEventStore
	if cfg.PostgresConnStr != "" {
		pool, err := database.NewPool(ctx, cfg)
		if err != nil {
			logger.Fatal("database init failed", logger.Any(logger.FieldError, err))
		}
		defer pool.Close()

		if err := database.Migrate(ctx, pool, "./migrations"); err != nil {
			logger.Fatal("migration failed", logger.Any(logger.FieldError, err))
		}
		journalStore = journal.NewRunEventStore(pool)
		sink = journalStore
	}

	kc := kernel.NewClient(cfg.KernelBaseURL, cfg.KernelEventsURL,
		time.Duration(cfg.KernelTimeoutSec)*time.Second)
	mgr := runview.NewManagerSized(cfg.EventLogCap, cfg.StreamBufferCap)
	loader := runview.NewLoader(kc, mgr, sink)

	srv := consoleapi.NewServer(consoleapi.Deps{
		Manager: mgr,
		Kernel:  kc,
		Journal: journalStore,
	})

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		loader.Load(gctx)
		return nil
	})
	g.Go(func() error {
		return srv.ListenAndServe(gctx, cfg.ListenAddr)
	})

	if err := g.Wait(); err != nil {
		logger.Fatal("console failed", logger.Any(logger.FieldError, err))
	}
	logger.Info("console stopped")
}
