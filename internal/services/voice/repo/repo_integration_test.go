//go:build integration_pg

package repo

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"residences/internal/core/vitals"
	perr "residences/internal/platform/errors"
	"residences/internal/platform/store"
	"residences/internal/platform/store/pg/pgtest"
	"residences/internal/services/voice/domain"
)

const schema = `
create type user_role_enum as enum ('superadmin', 'manager', 'professional');
create type measurement_type_enum as enum ('bp', 'spo2', 'weight', 'temperature');

create table "user" (
  id uuid primary key,
  role user_role_enum not null,
  deleted_at timestamptz
);
create table user_residence (user_id uuid not null, residence_id uuid not null);
create table floor (id uuid primary key, name text not null, deleted_at timestamptz);
create table room (id uuid primary key, floor_id uuid not null, name text not null, deleted_at timestamptz);
create table bed (id uuid primary key, room_id uuid not null, name text not null, deleted_at timestamptz);
create table resident (
  id uuid primary key,
  residence_id uuid not null,
  full_name text not null,
  bed_id uuid,
  deleted_at timestamptz,
  created_at timestamptz not null default now()
);
create table task_template (
  id uuid primary key,
  residence_id uuid not null,
  name text not null,
  status1 text, status2 text, status3 text, status4 text, status5 text, status6 text,
  deleted_at timestamptz,
  created_at timestamptz not null default now()
);
create table task_application (
  id uuid primary key,
  residence_id uuid not null,
  resident_id uuid not null,
  task_template_id uuid not null,
  applied_by uuid not null,
  applied_at timestamptz not null,
  selected_status_index int,
  selected_status_text text
);
create table measurement (
  id uuid primary key,
  residence_id uuid not null,
  resident_id uuid not null,
  recorded_by uuid not null,
  source text not null,
  type measurement_type_enum not null,
  systolic int, diastolic int, pulse_bpm int, spo2 int,
  weight_kg numeric(5,2), temperature_c numeric(4,1),
  taken_at timestamptz not null
);
`

type fixture struct {
	residence, other string
	admin, nurse     string
	juan, ana        string
	bano             string
}

func seed(t *testing.T, ctx context.Context, db store.TxRunner) fixture {
	t.Helper()
	f := fixture{
		residence: uuid.NewString(), other: uuid.NewString(),
		admin: uuid.NewString(), nurse: uuid.NewString(),
		juan: uuid.NewString(), ana: uuid.NewString(),
		bano: uuid.NewString(),
	}
	floor, room, bed := uuid.NewString(), uuid.NewString(), uuid.NewString()
	stmts := []struct {
		sql  string
		args []any
	}{
		{`insert into "user" (id, role) values ($1, 'superadmin'), ($2, 'professional')`, []any{f.admin, f.nurse}},
		{`insert into user_residence (user_id, residence_id) values ($1, $2)`, []any{f.nurse, f.residence}},
		{`insert into floor (id, name) values ($1, 'Planta 1')`, []any{floor}},
		{`insert into room (id, floor_id, name) values ($1, $2, '101')`, []any{room, floor}},
		{`insert into bed (id, room_id, name) values ($1, $2, 'A')`, []any{bed, room}},
		{`insert into resident (id, residence_id, full_name, bed_id, created_at) values
		  ($1, $3, 'Juan Pérez', $4, now() - interval '1 day'),
		  ($2, $3, 'Ana Ruiz', null, now())`, []any{f.juan, f.ana, f.residence, bed}},
		{`insert into resident (id, residence_id, full_name, deleted_at) values ($1, $2, 'Gone Resident', now())`,
			[]any{uuid.NewString(), f.residence}},
		{`insert into resident (id, residence_id, full_name) values ($1, $2, 'Other Home')`,
			[]any{uuid.NewString(), f.other}},
		{`insert into task_template (id, residence_id, name, status1, status3) values ($1, $2, 'Baño', 'Completado', 'Pendiente')`,
			[]any{f.bano, f.residence}},
		{`insert into task_template (id, residence_id, name) values ($1, $2, 'Paseo')`, []any{uuid.NewString(), f.residence}},
	}
	for _, s := range stmts {
		if _, err := db.Exec(ctx, s.sql, s.args...); err != nil {
			t.Fatalf("seed %q: %v", s.sql, err)
		}
	}
	return f
}

func TestRepo_Integration(t *testing.T) {
	dsn := pgtest.Start(t, pgtest.WithInitSQL(schema))

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	st, err := store.Open(ctx, store.Config{
		AppName: "residences-test",
		PG:      store.PGConfig{Enabled: true, URL: dsn, MaxConns: 2, ConnectRetries: 10, PingTimeout: 5 * time.Second},
	})
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer func() { _ = st.Close(ctx) }()

	f := seed(t, ctx, st.PG)
	r := NewPG().Bind(st.PG)

	t.Run("directories", func(t *testing.T) {
		res, err := r.ListResidents(ctx, f.residence)
		if err != nil {
			t.Fatalf("ListResidents: %v", err)
		}
		if len(res) != 2 || res[0].FullName != "Juan Pérez" || res[1].FullName != "Ana Ruiz" {
			t.Fatalf("residents = %+v", res)
		}
		if res[0].RoomName != "101" || res[0].BedName != "A" || res[0].FloorName != "Planta 1" || res[1].RoomName != "" {
			t.Fatalf("locations = %+v", res)
		}

		tasks, err := r.ListTaskTemplates(ctx, f.residence)
		if err != nil {
			t.Fatalf("ListTaskTemplates: %v", err)
		}
		if len(tasks) != 2 || tasks[0].Statuses[0] != "Completado" || tasks[0].Statuses[1] != "" {
			t.Fatalf("tasks = %+v", tasks)
		}
		if got := tasks[0].Labels(); len(got) != 2 || got[1].Index != 3 {
			t.Fatalf("labels = %+v", got)
		}
	})

	t.Run("access", func(t *testing.T) {
		if err := r.CanAccess(ctx, f.admin, f.other); err != nil {
			t.Fatalf("superadmin: %v", err)
		}
		if err := r.CanAccess(ctx, f.nurse, f.residence); err != nil {
			t.Fatalf("linked: %v", err)
		}
		if err := r.CanAccess(ctx, f.nurse, f.other); !perr.IsCode(err, perr.ErrorCodeForbidden) {
			t.Fatalf("unlinked: %v", err)
		}
		if err := r.CanAccess(ctx, uuid.NewString(), f.residence); !perr.IsCode(err, perr.ErrorCodeForbidden) {
			t.Fatalf("unknown: %v", err)
		}
	})

	t.Run("records", func(t *testing.T) {
		tmpl, err := r.TaskTemplate(ctx, f.residence, f.bano)
		if err != nil || tmpl.Name != "Baño" {
			t.Fatalf("TaskTemplate = %+v, %v", tmpl, err)
		}
		if _, err := r.TaskTemplate(ctx, f.other, f.bano); !perr.IsCode(err, perr.ErrorCodeNotFound) {
			t.Fatalf("foreign template: %v", err)
		}
		if err := r.ResidentExists(ctx, f.residence, f.juan); err != nil {
			t.Fatalf("ResidentExists: %v", err)
		}
		if err := r.ResidentExists(ctx, f.other, f.juan); !perr.IsCode(err, perr.ErrorCodeNotFound) {
			t.Fatalf("foreign resident: %v", err)
		}

		idx, text := 1, "Completado"
		app := domain.TaskApplication{
			ID: uuid.NewString(), ResidenceID: f.residence, ResidentID: f.juan,
			TaskTemplateID: f.bano, AppliedBy: f.nurse, StatusIndex: &idx, StatusText: &text,
		}
		err = st.PG.Tx(ctx, func(q store.RowQuerier) error {
			return NewPG().Bind(q).InsertTaskApplication(ctx, app)
		})
		if err != nil {
			t.Fatalf("InsertTaskApplication: %v", err)
		}

		app.ID, app.ResidenceID = uuid.NewString(), f.other
		if err := r.InsertTaskApplication(ctx, app); !perr.IsCode(err, perr.ErrorCodeNotFound) {
			t.Fatalf("cross tenant application: %v", err)
		}

		w := 71.5
		m := domain.MeasurementRecord{
			ID: uuid.NewString(), ResidenceID: f.residence, ResidentID: f.ana, RecordedBy: f.nurse,
			Reading: vitals.Reading{Type: vitals.Weight, WeightKg: &w},
			TakenAt: time.Now().UTC(),
		}
		if err := r.InsertMeasurement(ctx, m); err != nil {
			t.Fatalf("InsertMeasurement: %v", err)
		}
		var source string
		var kg float64
		if err := st.PG.QueryRow(ctx, `select source, weight_kg::float8 from measurement where id = $1`, m.ID).
			Scan(&source, &kg); err != nil {
			t.Fatalf("read back: %v", err)
		}
		if source != "voice" || kg != 71.5 {
			t.Fatalf("measurement = %s %v", source, kg)
		}
	})
}
