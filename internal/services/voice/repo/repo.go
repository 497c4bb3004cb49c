// Package repo provides postgres access for voice resolution: residence
// directories, caller access and the records confirmed commands write
package repo

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"residences/internal/modkit/repokit"
	perr "residences/internal/platform/errors"
	"residences/internal/platform/store"
	"residences/internal/services/voice/domain"
)

// Repo is the persistence surface of the voice service
type Repo interface {
	domain.Directory
	domain.Access
	domain.Records
}

type (
	// PG binds the repo to the pool or an open transaction
	PG struct{}
	// queries implements Repo
	queries struct{ q repokit.Queryer }
)

// NewPG returns the postgres binder
func NewPG() repokit.Binder[Repo] { return PG{} }

// Bind wires a Queryer to the repo
func (PG) Bind(q repokit.Queryer) Repo { return &queries{q: q} }

func (r *queries) ListResidents(ctx context.Context, residenceID string) ([]domain.ResidentEntry, error) {
	const sql = `
select r.id::text, r.full_name,
       coalesce(b.id::text, ''), coalesce(b.name, ''),
       coalesce(rm.id::text, ''), coalesce(rm.name, ''),
       coalesce(f.name, '')
from resident r
left join bed b on b.id = r.bed_id and b.deleted_at is null
left join room rm on rm.id = b.room_id and rm.deleted_at is null
left join floor f on f.id = rm.floor_id and f.deleted_at is null
where r.residence_id = $1
and r.deleted_at is null
order by r.created_at, r.id
`
	out, err := store.Many(ctx, r.q, func(row store.Row) (domain.ResidentEntry, error) {
		var e domain.ResidentEntry
		err := row.Scan(&e.ID, &e.FullName, &e.BedID, &e.BedName, &e.RoomID, &e.RoomName, &e.FloorName)
		return e, err
	}, sql, residenceID)
	return out, perr.FromPostgres(err, "list residents")
}

const taskColumns = `t.id::text, t.name,
       coalesce(t.status1, ''), coalesce(t.status2, ''), coalesce(t.status3, ''),
       coalesce(t.status4, ''), coalesce(t.status5, ''), coalesce(t.status6, '')`

func scanTask(row store.Row) (domain.TaskEntry, error) {
	var e domain.TaskEntry
	s := &e.Statuses
	err := row.Scan(&e.ID, &e.Name, &s[0], &s[1], &s[2], &s[3], &s[4], &s[5])
	return e, err
}

func (r *queries) ListTaskTemplates(ctx context.Context, residenceID string) ([]domain.TaskEntry, error) {
	sql := `
select ` + taskColumns + `
from task_template t
where t.residence_id = $1
and t.deleted_at is null
order by t.created_at, t.id
`
	out, err := store.Many(ctx, r.q, scanTask, sql, residenceID)
	return out, perr.FromPostgres(err, "list task templates")
}

func (r *queries) TaskTemplate(ctx context.Context, residenceID, templateID string) (domain.TaskEntry, error) {
	sql := `
select ` + taskColumns + `
from task_template t
where t.id = $2
and t.residence_id = $1
and t.deleted_at is null
`
	e, err := store.One(ctx, r.q, scanTask, sql, residenceID, templateID)
	if perr.IsCode(err, perr.ErrorCodeNotFound) {
		return e, perr.WithField(perr.NotFoundf("task template not found"), "task_template_id")
	}
	return e, perr.FromPostgres(err, "load task template")
}

func (r *queries) ResidentExists(ctx context.Context, residenceID, residentID string) error {
	const sql = `
select exists (
  select 1 from resident r
  where r.id = $2
  and r.residence_id = $1
  and r.deleted_at is null
)
`
	ok, err := store.Scalar[bool](ctx, r.q, sql, residenceID, residentID)
	if err != nil {
		return perr.FromPostgres(err, "check resident")
	}
	if !ok {
		return perr.WithField(perr.NotFoundf("resident not found"), "resident_id")
	}
	return nil
}

// CanAccess lets superadmins into any residence and everyone else into the
// residences they are linked to
func (r *queries) CanAccess(ctx context.Context, userID, residenceID string) error {
	const sql = `
select u.role::text,
       exists (
         select 1 from user_residence ur
         where ur.user_id = u.id
         and ur.residence_id = $2
       )
from "user" u
where u.id = $1
and u.deleted_at is null
`
	var (
		role   string
		linked bool
	)
	err := r.q.QueryRow(ctx, sql, userID, residenceID).Scan(&role, &linked)
	switch {
	case errors.Is(err, pgx.ErrNoRows):
		return perr.Forbiddenf("unknown user")
	case err != nil:
		return perr.FromPostgres(err, "check residence access")
	case role == "superadmin" || linked:
		return nil
	default:
		return perr.Forbiddenf("no access to this residence")
	}
}

// InsertTaskApplication re-checks that resident and template belong to the residence
func (r *queries) InsertTaskApplication(ctx context.Context, a domain.TaskApplication) error {
	const sql = `
insert into task_application (
  id, residence_id, resident_id, task_template_id, applied_by, applied_at,
  selected_status_index, selected_status_text
)
select $1, $2, $3, $4, $5, now(), $6, $7
where exists (
  select 1 from resident r
  where r.id = $3 and r.residence_id = $2 and r.deleted_at is null
)
and exists (
  select 1 from task_template t
  where t.id = $4 and t.residence_id = $2 and t.deleted_at is null
)
`
	err := store.ExecOne(ctx, r.q, sql,
		a.ID, a.ResidenceID, a.ResidentID, a.TaskTemplateID, a.AppliedBy, a.StatusIndex, a.StatusText)
	if perr.IsCode(err, perr.ErrorCodeNotFound) {
		return perr.NotFoundf("resident or task template not found in residence")
	}
	return perr.FromPostgres(err, "insert task application")
}

// InsertMeasurement writes a voice sourced measurement
func (r *queries) InsertMeasurement(ctx context.Context, m domain.MeasurementRecord) error {
	const sql = `
insert into measurement (
  id, residence_id, resident_id, recorded_by, source, type,
  systolic, diastolic, pulse_bpm, spo2, weight_kg, temperature_c, taken_at
)
select $1, $2, $3, $4, 'voice', $5::measurement_type_enum,
       $6, $7, $8, $9, $10, $11, $12
where exists (
  select 1 from resident r
  where r.id = $3 and r.residence_id = $2 and r.deleted_at is null
)
`
	v := m.Reading
	err := store.ExecOne(ctx, r.q, sql,
		m.ID, m.ResidenceID, m.ResidentID, m.RecordedBy, string(v.Type),
		v.Systolic, v.Diastolic, v.PulseBPM, v.SpO2, v.WeightKg, v.TemperatureC, m.TakenAt)
	if perr.IsCode(err, perr.ErrorCodeNotFound) {
		return perr.NotFoundf("resident not found in residence")
	}
	return perr.FromPostgres(err, "insert measurement")
}
