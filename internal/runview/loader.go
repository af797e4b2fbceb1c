package runview

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/multi-agent/kernel-console/internal/kernel"
	"github.com/multi-agent/kernel-console/pkg/logger"
)

// EventSink receives every live event before it is applied. Used to
// journal the stream; failures never block projection.
type EventSink interface {
	Record(ctx context.Context, evt kernel.Event) error
}

// Loader performs the one-shot bootstrap: fetch the current run state,
// seed the timeline from persisted history if the stream has not already
// produced entries, then attach the live subscription. Every step is
// best-effort; a dead kernel leaves an empty but usable projection.
type Loader struct {
	client *kernel.Client
	mgr    *Manager
	sink   EventSink
	once   sync.Once
}

func NewLoader(client *kernel.Client, mgr *Manager, sink EventSink) *Loader {
	return &Loader{client: client, mgr: mgr, sink: sink}
}

// Load runs the bootstrap exactly once. Subsequent calls are no-ops.
func (l *Loader) Load(ctx context.Context) {
	l.once.Do(func() { l.load(ctx) })
}

func (l *Loader) load(ctx context.Context) {
	state, err := l.client.State(ctx)
	if err != nil {
		logger.Warnw("kernel snapshot unavailable, starting empty",
			logger.FieldError, err)
	} else if state != nil {
		l.mgr.ReplaceRun(state)
		l.seedHistory(state)
	}

	if err := l.client.Subscribe(ctx, l.onEvent); err != nil {
		logger.Warnw("kernel event subscription failed",
			logger.FieldError, err,
			logger.FieldURL, l.client.String())
	}
}

func (l *Loader) seedHistory(state *kernel.RunState) {
	if len(state.Messages) == 0 {
		return
	}
	ids := make([]string, len(state.Messages))
	for i := range ids {
		ids[i] = uuid.NewString()
	}
	// Synthetic timestamps keep history ordered ahead of live entries.
	base := time.Now().UnixMilli() - int64(len(state.Messages))
	l.mgr.SeedHistory(state.Messages, ids, base)
}

func (l *Loader) onEvent(evt kernel.Event) {
	if l.sink != nil {
		if err := l.sink.Record(context.Background(), evt); err != nil {
			logger.Warnw("event journal write failed",
				logger.FieldError, err,
				logger.FieldEventID, evt.ID,
				logger.FieldEventType, evt.Type)
		}
	}
	l.mgr.Apply(evt)
}
