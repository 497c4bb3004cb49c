package store

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rs/zerolog"

	"residences/internal/platform/config"
	perr "residences/internal/platform/errors"
	"residences/internal/platform/store/pg"
	kit "residences/internal/platform/testkit"
)

// fakeRows iterates a fixed table
type fakeRows struct {
	data [][]any
	i    int
	err  error
	cols []string
}

func (r *fakeRows) Next() bool {
	r.i++
	return r.i <= len(r.data)
}
func (r *fakeRows) Scan(dest ...any) error {
	row := r.data[r.i-1]
	for i := range dest {
		switch d := dest[i].(type) {
		case *string:
			*d = row[i].(string)
		case *int:
			*d = row[i].(int)
		}
	}
	return nil
}
func (r *fakeRows) Err() error        { return r.err }
func (r *fakeRows) Close()            {}
func (r *fakeRows) Columns() []string { return r.cols }

type tag int64

func (t tag) String() string      { return "" }
func (t tag) RowsAffected() int64 { return int64(t) }

type fakeQ struct {
	rows     *fakeRows
	affected int64
	err      error
}

func (f *fakeQ) Exec(context.Context, string, ...any) (CommandTag, error) {
	return tag(f.affected), f.err
}
func (f *fakeQ) Query(context.Context, string, ...any) (Rows, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.rows, nil
}
func (f *fakeQ) QueryRow(context.Context, string, ...any) Row {
	f.rows.Next()
	return f.rows
}

func scanName(r Row) (string, error) {
	var s string
	return s, r.Scan(&s)
}

func TestOne(t *testing.T) {
	ctx := context.Background()

	got, err := One(ctx, &fakeQ{rows: &fakeRows{data: [][]any{{"Ana"}}}}, scanName, "q")
	if err != nil || got != "Ana" {
		t.Fatalf("One = %q, %v", got, err)
	}
	if _, err := One(ctx, &fakeQ{rows: &fakeRows{}}, scanName, "q"); !perr.IsCode(err, perr.ErrorCodeNotFound) {
		t.Fatalf("empty err = %v", err)
	}
	if _, err := One(ctx, &fakeQ{rows: &fakeRows{data: [][]any{{"a"}, {"b"}}}}, scanName, "q"); !errors.Is(err, ErrTooManyRows) {
		t.Fatalf("many err = %v", err)
	}
	boom := errors.New("boom")
	if _, err := One(ctx, &fakeQ{rows: &fakeRows{err: boom}}, scanName, "q"); !errors.Is(err, boom) {
		t.Fatalf("rows err = %v", err)
	}
}

func TestMany_And_Scalar(t *testing.T) {
	ctx := context.Background()
	q := &fakeQ{rows: &fakeRows{data: [][]any{{"Ana"}, {"Luis"}}}}
	got, err := Many(ctx, q, scanName, "q")
	if err != nil || strings.Join(got, ",") != "Ana,Luis" {
		t.Fatalf("Many = %v, %v", got, err)
	}

	n, err := Scalar[int](ctx, &fakeQ{rows: &fakeRows{data: [][]any{{3}}}}, "select count(*)")
	if err != nil || n != 3 {
		t.Fatalf("Scalar = %d, %v", n, err)
	}
}

func TestExecOne(t *testing.T) {
	ctx := context.Background()
	if err := ExecOne(ctx, &fakeQ{affected: 1}, "u"); err != nil {
		t.Fatalf("one: %v", err)
	}
	if err := ExecOne(ctx, &fakeQ{affected: 0}, "u"); !perr.IsCode(err, perr.ErrorCodeNotFound) {
		t.Fatalf("zero: %v", err)
	}
	if err := ExecOne(ctx, &fakeQ{affected: 11}, "u"); err == nil {
		t.Fatal("eleven rows should fail")
	}
}

// pgx level fakes for the tracer path
type recTracer struct{ evs []pg.QueryEvent }

func (r *recTracer) OnQuery(_ context.Context, ev pg.QueryEvent) { r.evs = append(r.evs, ev) }

type stubPgx struct{ err error }

func (s stubPgx) Exec(context.Context, string, ...any) (pgconn.CommandTag, error) {
	return pgconn.NewCommandTag("UPDATE 1"), s.err
}
func (s stubPgx) Query(context.Context, string, ...any) (pgx.Rows, error) { return nil, s.err }
func (s stubPgx) QueryRow(context.Context, string, ...any) pgx.Row        { return nil }

func TestTraced_Emits(t *testing.T) {
	ctx := context.Background()
	rec := &recTracer{}
	tr := traced{q: stubPgx{}, tracer: rec, slow: time.Hour}

	ct, err := tr.Exec(ctx, "update residents set name = $1", "Ana")
	if err != nil || ct.RowsAffected() != 1 {
		t.Fatalf("Exec = %v, %v", ct, err)
	}
	tr.QueryRow(ctx, "select 1")
	if len(rec.evs) != 2 || rec.evs[0].Args[0] != "Ana" || rec.evs[0].Slow {
		t.Fatalf("events = %+v", rec.evs)
	}

	boom := errors.New("boom")
	tr = traced{q: stubPgx{err: boom}, tracer: rec}
	if _, err := tr.Query(ctx, "select"); !errors.Is(err, boom) {
		t.Fatalf("Query err = %v", err)
	}
	if last := rec.evs[len(rec.evs)-1]; !errors.Is(last.Err, boom) || last.Slow {
		t.Fatalf("last event = %+v", last)
	}

	kit.MustNotPanic(t, func() { _, _ = traced{q: stubPgx{}}.Exec(ctx, "x") })
}

// backend fakes for Guard and Close
type fakePG struct {
	fakeQ
	pingErr error
	closed  bool
}

func (f *fakePG) Tx(_ context.Context, fn func(RowQuerier) error) error { return fn(f) }
func (f *fakePG) Ping(context.Context) error                            { return f.pingErr }
func (f *fakePG) Close() error {
	f.closed = true
	return nil
}

type fakeCH struct {
	pingErr  error
	closeErr error
	closed   bool
}

func (f *fakeCH) Insert(context.Context, string, [][]any) error { return nil }
func (f *fakeCH) Exec(context.Context, string, ...any) error    { return nil }
func (f *fakeCH) Query(context.Context, string, ...any) (Rows, error) {
	return &fakeRows{}, nil
}
func (f *fakeCH) Ping(context.Context) error { return f.pingErr }
func (f *fakeCH) Close() error {
	f.closed = true
	return f.closeErr
}

func TestGuard(t *testing.T) {
	ctx := context.Background()
	var nilStore *Store
	if err := nilStore.Guard(ctx); err == nil {
		t.Fatal("nil store should fail")
	}
	if err := (&Store{}).Guard(ctx); err != nil {
		t.Fatalf("empty store: %v", err)
	}

	s := &Store{PG: &fakePG{pingErr: errors.New("down")}, CH: &fakeCH{pingErr: errors.New("gone")}}
	err := s.Guard(ctx)
	if err == nil {
		t.Fatal("expected errors")
	}
	kit.MustContain(t, err.Error(), "pg: down")
	kit.MustContain(t, err.Error(), "ch: gone")
}

func TestClose(t *testing.T) {
	p, c := &fakePG{}, &fakeCH{closeErr: errors.New("ch close")}
	s := &Store{PG: p, CH: c}
	if err := s.Close(context.Background()); err == nil || !strings.Contains(err.Error(), "ch close") {
		t.Fatalf("Close err = %v", err)
	}
	if !p.closed || !c.closed {
		t.Fatal("backends not closed")
	}
	if err := (&Store{}).Close(context.Background()); err != nil {
		t.Fatalf("empty Close = %v", err)
	}
}

func TestOpen_NothingEnabled(t *testing.T) {
	s, err := Open(context.Background(), Config{}, WithLogger(zerolog.Nop()))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if s.PG != nil || s.CH != nil {
		t.Fatal("backends should stay nil")
	}
	opt := func(*Store) error { return errors.New("bad option") }
	if _, err := Open(context.Background(), Config{}, opt); err == nil {
		t.Fatal("option error should surface")
	}
}

func TestFromEnv(t *testing.T) {
	t.Setenv("SERVICE_PGSQL_DBURL", "postgres://localhost/residences")
	t.Setenv("SERVICE_PGSQL_MAX_CONNS", "9")
	t.Setenv("SERVICE_PGSQL_LOG_SQL", "true")

	cfg := FromEnv(config.New(), "residences", "api")
	if !cfg.PG.Enabled || cfg.PG.URL != "postgres://localhost/residences" || cfg.PG.MaxConns != 9 || !cfg.PG.LogSQL {
		t.Fatalf("pg = %+v", cfg.PG)
	}
	if cfg.CH.Enabled {
		t.Fatal("clickhouse should be off without a DBURL")
	}

	t.Setenv("SERVICE_CLICKHOUSE_DBURL", "clickhouse://localhost:9000/residences")
	cfg = FromEnv(config.New(), "residences", "voice")
	if !cfg.CH.Enabled || cfg.CH.Role != "voice" || cfg.AppName != "residences" {
		t.Fatalf("ch = %+v", cfg.CH)
	}
}
