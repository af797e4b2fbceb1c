// run_event.go — run_events 表 CRUD (kernel 事件流持久化)。
//
// 每条 kernel 事件原样落库, 供事后回放与排查。写入失败不阻塞投影。
package journal

import (
	"context"
	"encoding/json"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/multi-agent/kernel-console/internal/kernel"
)

// RunEvent 一条已持久化的 kernel 事件。
type RunEvent struct {
	ID        int64           `db:"id" json:"id"`
	EventID   string          `db:"event_id" json:"eventId"`
	RunID     string          `db:"run_id" json:"runId"`
	Seq       int64           `db:"seq" json:"seq"`
	EventType string          `db:"event_type" json:"eventType"`
	EventTs   int64           `db:"event_ts" json:"eventTs"`
	Payload   json.RawMessage `db:"payload" json:"payload,omitempty"`
	CreatedAt time.Time       `db:"created_at" json:"createdAt"`
}

// RunEventStore run_events 存储。
type RunEventStore struct{ BaseStore }

// NewRunEventStore 创建。
func NewRunEventStore(pool *pgxpool.Pool) *RunEventStore {
	return &RunEventStore{NewBaseStore(pool)}
}

const reCols = "id, event_id, run_id, seq, event_type, event_ts, payload, created_at"

// Record 写入单条 kernel 事件 (实现 runview.EventSink)。
func (s *RunEventStore) Record(ctx context.Context, evt kernel.Event) error {
	payload := evt.Payload
	if len(payload) == 0 {
		payload = json.RawMessage("{}")
	}
	_, err := s.pool.Exec(ctx,
		`INSERT INTO run_events (event_id, run_id, seq, event_type, event_ts, payload, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		evt.ID, evt.RunID, int64(evt.Seq), evt.Type, evt.Ts, payload, time.Now())
	return err
}

// ListByRun 按 runID 查询事件 (最新在前, 支持游标分页)。
//
//	before=0 → 从最新开始; before>0 → id < before
func (s *RunEventStore) ListByRun(ctx context.Context, runID string, limit int, before int64) ([]RunEvent, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}

	var sql string
	var args []any
	if before > 0 {
		sql = "SELECT " + reCols + " FROM run_events WHERE run_id=$1 AND id < $2 ORDER BY id DESC LIMIT $3"
		args = []any{runID, before, limit}
	} else {
		sql = "SELECT " + reCols + " FROM run_events WHERE run_id=$1 ORDER BY id DESC LIMIT $2"
		args = []any{runID, limit}
	}

	rows, err := s.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	return collectRows[RunEvent](rows)
}

// CountByRun 统计某 run 的事件总数。
func (s *RunEventStore) CountByRun(ctx context.Context, runID string) (int64, error) {
	var count int64
	err := s.pool.QueryRow(ctx,
		"SELECT COUNT(*) FROM run_events WHERE run_id=$1", runID).Scan(&count)
	return count, err
}

// DeleteByRun 删除某 run 的所有事件。
func (s *RunEventStore) DeleteByRun(ctx context.Context, runID string) error {
	_, err := s.pool.Exec(ctx, "DELETE FROM run_events WHERE run_id=$1", runID)
	return err
}
