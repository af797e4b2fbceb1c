// handler.go — 控制台 API handlers。
//
// 读路径: 投影器快照; 写路径: kernel 命令 + RunState 整体替换。
package consoleapi

import (
	"context"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/multi-agent/kernel-console/internal/kernel"
)

func (s *Server) health(c *gin.Context) {
	success(c, gin.H{"status": "ok", "kernel": s.kc.BaseURL()})
}

// ========================================
// 读接口 — 投影快照
// ========================================

func (s *Server) getState(c *gin.Context) {
	success(c, s.mgr.Snapshot())
}

func (s *Server) getChat(c *gin.Context) {
	success(c, s.mgr.ChatTimeline())
}

func (s *Server) getTools(c *gin.Context) {
	success(c, s.mgr.FlatToolCalls())
}

func (s *Server) getEvents(c *gin.Context) {
	success(c, s.mgr.EventLog())
}

func (s *Server) getLogs(c *gin.Context) {
	success(c, s.mgr.DiagnosticLog())
}

// getEventHistory 从数据库读取某 run 的持久化事件 (游标分页)。
func (s *Server) getEventHistory(c *gin.Context) {
	if s.journal == nil {
		notFound(c, "event journal not configured")
		return
	}
	runID := strings.TrimSpace(c.Query("runId"))
	if runID == "" {
		badRequest(c, "missing_run_id", "runId query parameter is required")
		return
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))
	before, _ := strconv.ParseInt(c.DefaultQuery("before", "0"), 10, 64)

	items, err := s.journal.ListByRun(c.Request.Context(), runID, limit, before)
	if err != nil {
		serverError(c, err)
		return
	}
	total, err := s.journal.CountByRun(c.Request.Context(), runID)
	if err != nil {
		serverError(c, err)
		return
	}
	success(c, gin.H{"items": items, "total": total})
}

// ========================================
// 写接口 — kernel 控制命令
// ========================================

// runCommand 执行 kernel 命令并将返回的 RunState 折叠进投影器。
func (s *Server) runCommand(c *gin.Context, op func(ctx context.Context) (*kernel.RunState, error)) {
	state, err := op(c.Request.Context())
	if err != nil {
		kernelError(c, err)
		return
	}
	if state != nil {
		s.mgr.ReplaceRun(state)
	}
	success(c, state)
}

func (s *Server) runStart(c *gin.Context) {
	var req struct {
		Goal string `json:"goal"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid_body", err.Error())
		return
	}
	if strings.TrimSpace(req.Goal) == "" {
		badRequest(c, "missing_goal", "goal is required")
		return
	}
	s.runCommand(c, func(ctx context.Context) (*kernel.RunState, error) {
		return s.kc.Start(ctx, req.Goal)
	})
}

func (s *Server) runPause(c *gin.Context)    { s.runCommand(c, s.kc.Pause) }
func (s *Server) runResume(c *gin.Context)   { s.runCommand(c, s.kc.Resume) }
func (s *Server) runStop(c *gin.Context)     { s.runCommand(c, s.kc.Stop) }
func (s *Server) runContinue(c *gin.Context) { s.runCommand(c, s.kc.Continue) }

func (s *Server) runInput(c *gin.Context) {
	var req struct {
		Content string `json:"content"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid_body", err.Error())
		return
	}
	if strings.TrimSpace(req.Content) == "" {
		badRequest(c, "missing_content", "content is required")
		return
	}
	s.runCommand(c, func(ctx context.Context) (*kernel.RunState, error) {
		return s.kc.UserInput(ctx, req.Content)
	})
}

func (s *Server) updatePlan(c *gin.Context) {
	var req struct {
		Plan kernel.Plan `json:"plan"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid_body", err.Error())
		return
	}
	s.runCommand(c, func(ctx context.Context) (*kernel.RunState, error) {
		return s.kc.UpdatePlan(ctx, req.Plan)
	})
}

func (s *Server) updatePlanStatus(c *gin.Context) {
	var req struct {
		StepID string `json:"stepId"`
		Status string `json:"status"`
		Done   bool   `json:"done"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid_body", err.Error())
		return
	}
	if strings.TrimSpace(req.StepID) == "" {
		badRequest(c, "missing_step_id", "stepId is required")
		return
	}
	s.runCommand(c, func(ctx context.Context) (*kernel.RunState, error) {
		return s.kc.UpdatePlanStatus(ctx, req.StepID, req.Status, req.Done)
	})
}
