// Package consoleapi 提供运行状态控制台 HTTP/WebSocket 服务。
//
// 只读投影接口 + kernel 控制命令转发。所有读接口返回投影器的
// 深拷贝快照, 写路径全部经由 kernel 往返。
package consoleapi

import (
	"context"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/multi-agent/kernel-console/internal/journal"
	"github.com/multi-agent/kernel-console/internal/kernel"
	"github.com/multi-agent/kernel-console/internal/runview"
	apperrors "github.com/multi-agent/kernel-console/pkg/errors"
	"github.com/multi-agent/kernel-console/pkg/logger"
	"github.com/multi-agent/kernel-console/pkg/util"
)

// Server 控制台 HTTP 服务。
type Server struct {
	router   *gin.Engine
	mgr      *runview.Manager
	kc       *kernel.Client
	journal  *journal.RunEventStore
	hub      *wsHub
	upgrader websocket.Upgrader
}

// Deps 服务器依赖注入。Journal 可为 nil (未配置数据库时)。
type Deps struct {
	Manager *runview.Manager
	Kernel  *kernel.Client
	Journal *journal.RunEventStore
}

// NewServer 创建控制台服务并接管投影器的事件推送。
func NewServer(deps Deps) *Server {
	s := &Server{
		router:  gin.Default(),
		mgr:     deps.Manager,
		kc:      deps.Kernel,
		journal: deps.Journal,
		hub:     newWSHub(),
		upgrader: websocket.Upgrader{
			CheckOrigin: func(*http.Request) bool { return true },
		},
	}
	s.mgr.SetOnApply(s.hub.BroadcastEvent)
	s.registerRoutes()
	return s
}

// Engine 返回 Gin 引擎 (测试用)。
func (s *Server) Engine() *gin.Engine { return s.router }

func (s *Server) registerRoutes() {
	api := s.router.Group("/api")
	{
		api.GET("/health", s.health)
		api.GET("/state", s.getState)
		api.GET("/chat", s.getChat)
		api.GET("/tools", s.getTools)
		api.GET("/events", s.getEvents)
		api.GET("/logs", s.getLogs)
		api.GET("/events/history", s.getEventHistory)

		run := api.Group("/run")
		{
			run.POST("/start", s.runStart)
			run.POST("/pause", s.runPause)
			run.POST("/resume", s.runResume)
			run.POST("/stop", s.runStop)
			run.POST("/continue", s.runContinue)
			run.POST("/input", s.runInput)
		}

		api.POST("/plan", s.updatePlan)
		api.POST("/plan/status", s.updatePlanStatus)
	}
	s.router.GET("/ws", s.handleWS)
}

// ListenAndServe 启动 HTTP 服务, ctx 取消时优雅关闭。
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		BaseContext:       func(_ net.Listener) context.Context { return ctx },
		ReadHeaderTimeout: 10 * time.Second,
	}

	// 优雅关闭: 给活跃连接 5 秒完成处理
	util.SafeGo(func() {
		<-ctx.Done()
		logger.Info("console: shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Warn("console: shutdown error", logger.FieldError, err)
			return
		}
		s.hub.Close()
		logger.Info("console: shutdown completed")
	})

	logger.Info("console: listening", logger.FieldAddr, addr)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return apperrors.Wrap(err, "Server.ListenAndServe", "listen")
	}
	return nil
}
