// client.go — kernel HTTP 客户端: 快照拉取 + 控制命令。
//
// 每个控制命令同步返回最新 RunState, 调用方将其按
// "整体替换 Run State" 的路径折叠进投影器。
package kernel

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	apperrors "github.com/multi-agent/kernel-console/pkg/errors"
	"github.com/multi-agent/kernel-console/pkg/util"
)

// Client talks to the kernel over HTTP (commands + snapshot) and
// WebSocket (event subscription, see subscribe.go).
type Client struct {
	baseURL   string
	eventsURL string
	http      *http.Client
}

// NewClient 创建 kernel 客户端。
func NewClient(baseURL, eventsURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		baseURL:   util.FirstNonEmpty(baseURL, "http://127.0.0.1:7466"),
		eventsURL: util.FirstNonEmpty(eventsURL, "ws://127.0.0.1:7466/events"),
		http:      &http.Client{Timeout: timeout},
	}
}

// State fetches the current RunState snapshot (bootstrap path).
func (c *Client) State(ctx context.Context) (*RunState, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/state", nil)
	if err != nil {
		return nil, apperrors.Wrap(err, "KernelClient.State", "build request")
	}
	return c.doRunState(req, "KernelClient.State")
}

// Start begins a fresh run with the given goal.
func (c *Client) Start(ctx context.Context, goal string) (*RunState, error) {
	return c.command(ctx, "KernelClient.Start", "/run/start", map[string]any{"goal": goal})
}

// Pause suspends the run loop after the current step.
func (c *Client) Pause(ctx context.Context) (*RunState, error) {
	return c.command(ctx, "KernelClient.Pause", "/run/pause", nil)
}

// Resume continues a paused run.
func (c *Client) Resume(ctx context.Context) (*RunState, error) {
	return c.command(ctx, "KernelClient.Resume", "/run/resume", nil)
}

// Stop aborts the run.
func (c *Client) Stop(ctx context.Context) (*RunState, error) {
	return c.command(ctx, "KernelClient.Stop", "/run/stop", nil)
}

// Continue resumes after an AWAITING_USER pause without new input.
func (c *Client) Continue(ctx context.Context) (*RunState, error) {
	return c.command(ctx, "KernelClient.Continue", "/run/continue", nil)
}

// UserInput feeds a user reply into the run loop.
func (c *Client) UserInput(ctx context.Context, content string) (*RunState, error) {
	return c.command(ctx, "KernelClient.UserInput", "/run/input", map[string]any{"content": content})
}

// UpdatePlan replaces the kernel's plan wholesale.
func (c *Client) UpdatePlan(ctx context.Context, plan Plan) (*RunState, error) {
	return c.command(ctx, "KernelClient.UpdatePlan", "/plan", map[string]any{"plan": plan})
}

// UpdatePlanStatus patches a single plan step's status.
func (c *Client) UpdatePlanStatus(ctx context.Context, stepID, status string, done bool) (*RunState, error) {
	return c.command(ctx, "KernelClient.UpdatePlanStatus", "/plan/status", map[string]any{
		"stepId": stepID,
		"status": status,
		"done":   done,
	})
}

func (c *Client) command(ctx context.Context, op, path string, body map[string]any) (*RunState, error) {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return nil, apperrors.Wrap(err, op, "encode body")
		}
		reader = bytes.NewReader(raw)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, reader)
	if err != nil {
		return nil, apperrors.Wrap(err, op, "build request")
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return c.doRunState(req, op)
}

func (c *Client) doRunState(req *http.Request, op string) (*RunState, error) {
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, apperrors.Wrap(fmt.Errorf("%w: %v", apperrors.ErrKernelUnavailable, err), op, "kernel request")
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		// 读取响应体前 512 字节作为错误上下文
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, apperrors.Newf(op, "kernel returned %d: %s", resp.StatusCode, string(snippet))
	}

	var state RunState
	if err := json.NewDecoder(resp.Body).Decode(&state); err != nil {
		return nil, apperrors.Wrap(err, op, "decode run state")
	}
	return &state, nil
}

// BaseURL returns the configured kernel HTTP endpoint.
func (c *Client) BaseURL() string { return c.baseURL }

// String implements fmt.Stringer for logging.
func (c *Client) String() string {
	return fmt.Sprintf("kernel{http=%s ws=%s}", c.baseURL, c.eventsURL)
}
