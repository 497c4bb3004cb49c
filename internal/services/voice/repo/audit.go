package repo

import (
	"context"
	"sync"
	"time"

	"residences/internal/platform/logger"
	"residences/internal/platform/metrics"
	"residences/internal/platform/store"
	"residences/internal/services/voice/domain"
)

// AuditTable is the ClickHouse table resolutions are appended to
const AuditTable = "voice_resolutions"

// AuditTableDDL creates AuditTable, auditRow follows its column order
const AuditTableDDL = `
create table if not exists voice_resolutions (
  at           DateTime64(3, 'UTC'),
  request_id   String,
  residence_id String,
  user_id      String,
  transcript   String,
  kind         LowCardinality(String),
  outcome      LowCardinality(String),
  field        LowCardinality(String),
  resident_id  String,
  task_id      String,
  options      UInt8,
  locale       LowCardinality(String),
  elapsed_ms   Float64
)
engine = MergeTree
partition by toYYYYMM(at)
order by (residence_id, at)
`

// NopAudit discards events, used when ClickHouse is not configured
type NopAudit struct{}

// Record does nothing
func (NopAudit) Record(context.Context, domain.AuditEvent) error { return nil }

// AuditOptions tunes the ClickHouse sink
type AuditOptions struct {
	// Buffer is the queue size, events beyond it are dropped
	Buffer int
	// Batch is the number of rows sent per insert
	Batch int
	// Interval flushes a partial batch
	Interval time.Duration
	Metrics  *metrics.Metrics
}

// ClickhouseAudit batches events in the background and inserts them into AuditTable
// Record never blocks, a full queue drops the event and counts the failure
type ClickhouseAudit struct {
	ch     store.Clickhouse
	opt    AuditOptions
	log    *logger.Logger
	events chan domain.AuditEvent

	stop chan struct{}
	done chan struct{}
	once sync.Once
}

// NewClickhouseAudit starts the flush loop, call Close to drain it
func NewClickhouseAudit(ch store.Clickhouse, opt AuditOptions) *ClickhouseAudit {
	if ch == nil {
		panic("voice audit requires a non nil Clickhouse")
	}
	if opt.Buffer <= 0 {
		opt.Buffer = 1024
	}
	if opt.Batch <= 0 {
		opt.Batch = 200
	}
	if opt.Interval <= 0 {
		opt.Interval = 2 * time.Second
	}
	a := &ClickhouseAudit{
		ch:     ch,
		opt:    opt,
		log:    logger.Named("voice.audit"),
		events: make(chan domain.AuditEvent, opt.Buffer),
		stop:   make(chan struct{}),
		done:   make(chan struct{}),
	}
	go a.loop()
	return a
}

// Record queues ev for the next batch
func (a *ClickhouseAudit) Record(_ context.Context, ev domain.AuditEvent) error {
	select {
	case <-a.stop:
		a.fail(1)
		return nil
	default:
	}
	select {
	case a.events <- ev:
	default:
		a.fail(1)
	}
	return nil
}

// Close stops the loop after flushing queued events
func (a *ClickhouseAudit) Close() error {
	a.once.Do(func() { close(a.stop) })
	<-a.done
	return nil
}

func (a *ClickhouseAudit) loop() {
	defer close(a.done)
	t := time.NewTicker(a.opt.Interval)
	defer t.Stop()

	batch := make([][]any, 0, a.opt.Batch)
	flush := func() {
		if len(batch) == 0 {
			return
		}
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		err := a.ch.Insert(ctx, AuditTable, batch)
		cancel()
		if err != nil {
			a.log.Error().Err(err).Int("rows", len(batch)).Msg("audit insert failed")
			a.fail(len(batch))
		}
		batch = batch[:0]
	}

	for {
		select {
		case ev := <-a.events:
			batch = append(batch, auditRow(ev))
			if len(batch) >= a.opt.Batch {
				flush()
			}
		case <-t.C:
			flush()
		case <-a.stop:
			for {
				select {
				case ev := <-a.events:
					batch = append(batch, auditRow(ev))
					if len(batch) >= a.opt.Batch {
						flush()
					}
				default:
					flush()
					return
				}
			}
		}
	}
}

func (a *ClickhouseAudit) fail(n int) {
	if a.opt.Metrics != nil {
		a.opt.Metrics.AuditFailures.Add(float64(n))
	}
}

// auditRow orders values as the table columns
func auditRow(ev domain.AuditEvent) []any {
	opts := ev.Options
	if opts > 255 {
		opts = 255
	}
	return []any{
		ev.At.UTC(),
		ev.RequestID,
		ev.ResidenceID,
		ev.UserID,
		ev.Transcript,
		ev.Kind,
		string(ev.Outcome),
		ev.Field,
		ev.ResidentID,
		ev.TaskID,
		uint8(opts),
		ev.Locale,
		float64(ev.Elapsed.Microseconds()) / 1000,
	}
}

// EnsureAuditTable creates AuditTable when it does not exist
func EnsureAuditTable(ctx context.Context, ch store.Clickhouse) error {
	return ch.Exec(ctx, AuditTableDDL)
}
