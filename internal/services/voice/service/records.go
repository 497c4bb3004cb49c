package service

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"residences/internal/core/vitals"
	"residences/internal/modkit/repokit"
	perr "residences/internal/platform/errors"
	"residences/internal/platform/logger"
	pstrings "residences/internal/platform/strings"
	"residences/internal/services/voice/domain"
)

// record labels
const (
	recordTask        = "task_application"
	recordMeasurement = "measurement"
)

// ApplyTask commits a confirmed task assignment
// a status index resolves to the template's label at write time
func (s *Svc) ApplyTask(ctx context.Context, in domain.ApplyTaskInput) (domain.Applied, error) {
	if err := s.checkAccess(ctx, domain.ParseInput{ResidenceID: in.ResidenceID, UserID: in.UserID}); err != nil {
		return domain.Applied{}, err
	}
	if in.StatusIndex != nil && (*in.StatusIndex < 1 || *in.StatusIndex > domain.StatusSlots) {
		return domain.Applied{}, perr.WithField(
			perr.InvalidArgf("status index must be between 1 and %d", domain.StatusSlots), "status_index")
	}

	a := domain.TaskApplication{
		ID:             uuid.NewString(),
		ResidenceID:    in.ResidenceID,
		ResidentID:     in.ResidentID,
		TaskTemplateID: in.TaskTemplateID,
		AppliedBy:      in.UserID,
		StatusIndex:    in.StatusIndex,
	}
	err := s.inTx(ctx, func(q repokit.Queryer) error {
		r := s.binder.Bind(q)
		if a.StatusIndex != nil {
			t, err := r.TaskTemplate(ctx, a.ResidenceID, a.TaskTemplateID)
			if err != nil {
				return err
			}
			label := strings.TrimSpace(t.Statuses[*a.StatusIndex-1])
			if label == "" {
				return perr.WithField(
					perr.InvalidArgf("task %s has no status %d", t.Name, *a.StatusIndex), "status_index")
			}
			a.StatusText = &label
		}
		return r.InsertTaskApplication(ctx, a)
	})
	if err != nil {
		return domain.Applied{}, err
	}

	s.opt.Metrics.RecordsWritten.WithLabelValues(recordTask).Inc()
	logger.C(ctx).Info().
		Str("id", a.ID).
		Str("resident_id", a.ResidentID).
		Str("task_template_id", a.TaskTemplateID).
		Str("status", pstrings.Deref(a.StatusText)).
		Msg("task applied")
	return domain.Applied{ID: a.ID}, nil
}

// RecordMeasurement commits a confirmed measurement with source voice
func (s *Svc) RecordMeasurement(ctx context.Context, in domain.MeasurementInput) (domain.Applied, error) {
	if err := s.checkAccess(ctx, domain.ParseInput{ResidenceID: in.ResidenceID, UserID: in.UserID}); err != nil {
		return domain.Applied{}, err
	}
	reading, err := measurementReading(in)
	if err != nil {
		return domain.Applied{}, err
	}

	m := domain.MeasurementRecord{
		ID:          uuid.NewString(),
		ResidenceID: in.ResidenceID,
		ResidentID:  in.ResidentID,
		RecordedBy:  in.UserID,
		Reading:     reading,
		TakenAt:     s.opt.Now().UTC(),
	}
	if in.TakenAt != nil {
		m.TakenAt = in.TakenAt.UTC()
	}
	err = s.inTx(ctx, func(q repokit.Queryer) error {
		return s.binder.Bind(q).InsertMeasurement(ctx, m)
	})
	if err != nil {
		return domain.Applied{}, err
	}

	s.opt.Metrics.RecordsWritten.WithLabelValues(recordMeasurement).Inc()
	logger.C(ctx).Info().
		Str("id", m.ID).
		Str("resident_id", m.ResidentID).
		Str("type", string(reading.Type)).
		Msg("measurement recorded")
	return domain.Applied{ID: m.ID}, nil
}

// txAttempts bounds retries of a write that lost a serialization race
const txAttempts = 3

// inTx runs fn in a transaction, retrying contention failures
func (s *Svc) inTx(ctx context.Context, fn func(repokit.Queryer) error) error {
	var err error
	for i := 1; i <= txAttempts; i++ {
		if err = s.db.Tx(ctx, fn); err == nil || !perr.IsRetryable(err) {
			return err
		}
		logger.C(ctx).Warn().Err(err).Int("attempt", i).Msg("retrying write")
	}
	return err
}

// measurementReading keeps the values of the declared type, requires the
// mandatory ones and checks the plausibility table
func measurementReading(in domain.MeasurementInput) (vitals.Reading, error) {
	typ, ok := vitals.ParseType(in.Type)
	if !ok {
		return vitals.Reading{}, perr.WithField(perr.InvalidArgf("unknown measurement type %q", in.Type), "type")
	}

	r := vitals.Reading{Type: typ}
	var missing string
	switch typ {
	case vitals.BloodPressure:
		r.Systolic, r.Diastolic, r.PulseBPM = in.Systolic, in.Diastolic, in.PulseBPM
		switch {
		case r.Systolic == nil:
			missing = string(vitals.FieldSystolic)
		case r.Diastolic == nil:
			missing = string(vitals.FieldDiastolic)
		}
	case vitals.OxygenSaturation:
		r.SpO2, r.PulseBPM = in.SpO2, in.PulseBPM
		if r.SpO2 == nil {
			missing = string(vitals.FieldSpO2)
		}
	case vitals.Weight:
		r.WeightKg = in.WeightKg
		if r.WeightKg == nil {
			missing = string(vitals.FieldWeight)
		}
	case vitals.Temperature:
		r.TemperatureC = in.TemperatureC
		if r.TemperatureC == nil {
			missing = string(vitals.FieldTemperature)
		}
	}
	if missing != "" {
		return r, perr.WithField(perr.InvalidArgf("%s is required for type %s", missing, typ), missing)
	}

	if re := vitals.Validate(r); re != nil {
		return r, perr.WithField(perr.InvalidArgf("%s", re.Error()), string(re.Field))
	}
	return r, nil
}
