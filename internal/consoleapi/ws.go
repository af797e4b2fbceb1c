// ws.go — WebSocket 推送 hub。
//
// 每个客户端一个带缓冲 channel + 写协程。慢客户端丢弃消息,
// 不阻塞投影器的 Apply 路径。
package consoleapi

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/multi-agent/kernel-console/internal/kernel"
	"github.com/multi-agent/kernel-console/pkg/logger"
)

const wsSendBuffer = 64

type wsHub struct {
	mu      sync.RWMutex
	clients map[string]chan []byte
	closed  bool
}

func newWSHub() *wsHub {
	return &wsHub{clients: make(map[string]chan []byte)}
}

// BroadcastEvent 广播一条 kernel 事件 (投影器 Apply 后回调)。
func (h *wsHub) BroadcastEvent(evt kernel.Event) {
	raw, err := json.Marshal(gin.H{"type": "kernel_event", "event": evt})
	if err != nil {
		return
	}
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, ch := range h.clients {
		select {
		case ch <- raw:
		default:
		}
	}
}

func (h *wsHub) register(id string) (chan []byte, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return nil, false
	}
	ch := make(chan []byte, wsSendBuffer)
	h.clients[id] = ch
	return ch, true
}

// unregister 移除客户端。不关闭 channel — 写协程经 conn 错误退出。
func (h *wsHub) unregister(id string) {
	h.mu.Lock()
	delete(h.clients, id)
	h.mu.Unlock()
}

// Close 停止接收新客户端。
func (h *wsHub) Close() {
	h.mu.Lock()
	h.closed = true
	h.clients = make(map[string]chan []byte)
	h.mu.Unlock()
}

// handleWS 升级连接: 先推全量快照, 之后增量推送每条事件。
func (s *Server) handleWS(c *gin.Context) {
	conn, err := s.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logger.Warn("console: ws upgrade failed", logger.FieldError, err)
		return
	}

	clientID := fmt.Sprintf("ws-%d", time.Now().UnixNano())
	ch, ok := s.hub.register(clientID)
	if !ok {
		_ = conn.Close()
		return
	}
	logger.Info("console: ws client connected", logger.FieldConn, clientID)

	snapshot, err := json.Marshal(gin.H{"type": "snapshot", "view": s.mgr.Snapshot()})
	if err == nil {
		_ = conn.WriteMessage(websocket.TextMessage, snapshot)
	}

	// 读协程只为感知断连, 收到的消息一律忽略
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	defer func() {
		s.hub.unregister(clientID)
		_ = conn.Close()
		logger.Info("console: ws client disconnected", logger.FieldConn, clientID)
	}()

	for {
		select {
		case <-done:
			return
		case <-c.Request.Context().Done():
			return
		case msg := <-ch:
			if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		}
	}
}
