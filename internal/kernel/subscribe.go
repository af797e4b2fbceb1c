// subscribe.go — WebSocket 事件订阅: 一次 dial + 常驻读循环。
package kernel

import (
	"context"
	"net"
	"time"

	"github.com/gorilla/websocket"

	apperrors "github.com/multi-agent/kernel-console/pkg/errors"
	"github.com/multi-agent/kernel-console/pkg/logger"
	"github.com/multi-agent/kernel-console/pkg/util"
)

const subscribeHandshakeTimeout = 5 * time.Second

// Subscribe dials the kernel event channel once and delivers events to
// handler in arrival order from a dedicated goroutine. The handler runs to
// completion before the next event is read — no reentrancy.
//
// There is no retry: a dial failure is returned so the caller can log and
// swallow it; a read failure ends the loop with a warning. Either way the
// projector stays usable with whatever state it already holds.
func (c *Client) Subscribe(ctx context.Context, handler func(Event)) error {
	if handler == nil {
		return apperrors.New("KernelClient.Subscribe", "handler is required")
	}

	dialer := websocket.Dialer{
		HandshakeTimeout: subscribeHandshakeTimeout,
		NetDialContext:   (&net.Dialer{Timeout: subscribeHandshakeTimeout}).DialContext,
	}
	conn, _, err := dialer.DialContext(ctx, c.eventsURL, nil)
	if err != nil {
		return apperrors.Wrap(err, "KernelClient.Subscribe", "dial event channel")
	}

	logger.Info("kernel: event channel subscribed", logger.FieldURL, c.eventsURL)
	util.SafeGo(func() { c.readLoop(ctx, conn, handler) })
	return nil
}

func (c *Client) readLoop(ctx context.Context, conn *websocket.Conn, handler func(Event)) {
	defer conn.Close()

	// ctx 取消时关闭连接, 解除 ReadJSON 阻塞。
	util.SafeGo(func() {
		<-ctx.Done()
		_ = conn.Close()
	})

	for {
		var evt Event
		if err := conn.ReadJSON(&evt); err != nil {
			if ctx.Err() != nil {
				return
			}
			logger.Warn("kernel: event channel closed", logger.FieldError, err)
			return
		}
		handler(evt)
	}
}
