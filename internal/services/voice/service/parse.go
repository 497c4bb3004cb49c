package service

import (
	"context"
	"fmt"
	"math"
	"strings"

	"residences/internal/core/confirm"
	"residences/internal/core/fuzzy"
	"residences/internal/core/normalize"
	"residences/internal/core/segment"
	"residences/internal/core/vitals"
	"residences/internal/services/voice/domain"

	"golang.org/x/sync/errgroup"
)

// outcome messages
const (
	msgNameRequired     = segment.MsgNameNotIdentified
	msgFullNameRequired = "at least first and last name required"
	msgTaskRequired     = "task name not identified"
)

// outcome fields
const (
	fieldResident = "resident"
	fieldTask     = "task"
	fieldStatus   = "status"
	fieldType     = "type"
	fieldValue    = "value"
)

// ParseTask resolves a task assignment transcript
func (s *Svc) ParseTask(ctx context.Context, in domain.ParseInput) (domain.Outcome, error) {
	start := s.opt.Now()
	out, err := s.parseTask(ctx, in)
	s.observe(ctx, domain.TranscriptTask, in, out, err, start)
	return out, err
}

// ParseMeasurement resolves a measurement transcript
func (s *Svc) ParseMeasurement(ctx context.Context, in domain.ParseInput) (domain.Outcome, error) {
	start := s.opt.Now()
	out, err := s.parseMeasurement(ctx, in)
	s.observe(ctx, domain.TranscriptMeasurement, in, out, err, start)
	return out, err
}

func (s *Svc) parseTask(ctx context.Context, in domain.ParseInput) (domain.Outcome, error) {
	if err := s.checkAccess(ctx, in); err != nil {
		return domain.Outcome{}, err
	}

	seg := s.seg.Task(in.Transcript)
	if out, ok := checkName(seg.Name); !ok {
		return out, nil
	}

	var (
		residents []domain.ResidentEntry
		tasks     []domain.TaskEntry
		haveTasks bool
	)
	if s.opt.Concurrent && seg.Task != "" {
		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() (err error) {
			residents, err = s.residents(gctx, in.ResidenceID)
			return err
		})
		g.Go(func() (err error) {
			tasks, err = s.tasks(gctx, in.ResidenceID)
			return err
		})
		if err := g.Wait(); err != nil {
			return domain.Outcome{}, err
		}
		haveTasks = true
	} else {
		var err error
		if residents, err = s.residents(ctx, in.ResidenceID); err != nil {
			return domain.Outcome{}, err
		}
	}

	resident, out, ok := s.matchResident(seg.Name, residents)
	if !ok {
		return out, nil
	}

	if strings.TrimSpace(seg.Task) == "" {
		return invalid(msgTaskRequired, fieldTask), nil
	}
	if !haveTasks {
		var err error
		if tasks, err = s.tasks(ctx, in.ResidenceID); err != nil {
			return domain.Outcome{}, err
		}
	}

	res := fuzzy.Resolve(seg.Task, tasks, func(t domain.TaskEntry) string { return t.Name }, s.opt.Match)
	switch res.Kind {
	case fuzzy.NotFound:
		return domain.Outcome{
			Kind:     domain.KindTaskNotFound,
			Message:  fmt.Sprintf("no task matches %q", seg.Task),
			Field:    fieldTask,
			Resident: resident,
		}, nil
	case fuzzy.Ambiguous:
		opts := make([]domain.Option, len(res.Options))
		for i, m := range res.Options {
			opts[i] = domain.Option{ID: m.Item.ID, Label: m.Label, Score: round(m.Score)}
		}
		return domain.Outcome{
			Kind:     domain.KindTaskAmbiguous,
			Message:  fmt.Sprintf("several tasks match %q", seg.Task),
			Field:    fieldTask,
			Options:  opts,
			Resident: resident,
		}, nil
	}
	task := res.Best.Item
	taskRef := &domain.TaskRef{ID: task.ID, Name: task.Name}

	labels := task.Labels()
	var status *domain.StatusLabel
	if seg.Status != "" && len(labels) > 0 {
		sres := fuzzy.Resolve(seg.Status, labels, func(l domain.StatusLabel) string { return l.Label }, s.opt.StatusMatch)
		switch sres.Kind {
		case fuzzy.NotFound:
			valid := make([]string, len(labels))
			for i, l := range labels {
				valid[i] = l.Label
			}
			return domain.Outcome{
				Kind: domain.KindStatusValidationError,
				Message: fmt.Sprintf("status %q is not valid for task %s (valid: %s)",
					seg.Status, task.Name, strings.Join(valid, ", ")),
				Field:    fieldStatus,
				Resident: resident,
				Task:     taskRef,
			}, nil
		case fuzzy.Ambiguous:
			opts := make([]domain.Option, len(sres.Options))
			for i, m := range sres.Options {
				opts[i] = domain.Option{Label: m.Label, Score: round(m.Score), Index: m.Item.Index}
			}
			return domain.Outcome{
				Kind:     domain.KindStatusAmbiguous,
				Message:  fmt.Sprintf("several statuses of task %s match %q", task.Name, seg.Status),
				Field:    fieldStatus,
				Options:  opts,
				Resident: resident,
				Task:     taskRef,
			}, nil
		}
		best := sres.Best.Item
		status = &best
	}

	statusLabel := ""
	if status != nil {
		statusLabel = status.Label
	}
	return domain.Outcome{
		Kind:     domain.KindSuccess,
		Resident: resident,
		Task:     taskRef,
		Status:   status,
		Confirmation: confirm.New(s.locale(in.Locale)).
			Task(resident.FullName, task.Name, statusLabel, len(labels) > 0),
	}, nil
}

func (s *Svc) parseMeasurement(ctx context.Context, in domain.ParseInput) (domain.Outcome, error) {
	if err := s.checkAccess(ctx, in); err != nil {
		return domain.Outcome{}, err
	}

	seg := s.seg.Measurement(in.Transcript)
	if seg.Err != "" {
		return invalid(seg.Err, segmentField(seg.Err)), nil
	}
	if out, ok := checkName(seg.Name); !ok {
		return out, nil
	}

	residents, err := s.residents(ctx, in.ResidenceID)
	if err != nil {
		return domain.Outcome{}, err
	}
	resident, out, ok := s.matchResident(seg.Name, residents)
	if !ok {
		return out, nil
	}

	reading := seg.Reading
	if re := vitals.Validate(reading); re != nil {
		return domain.Outcome{
			Kind:        domain.KindValueOutOfRange,
			Message:     re.Error(),
			Field:       string(re.Field),
			Resident:    resident,
			Measurement: &reading,
		}, nil
	}

	return domain.Outcome{
		Kind:         domain.KindSuccess,
		Resident:     resident,
		Measurement:  &reading,
		Confirmation: confirm.New(s.locale(in.Locale)).Measurement(resident.FullName, reading),
	}, nil
}

// checkName applies the name presence and two word rules shared by both paths
func checkName(name string) (domain.Outcome, bool) {
	switch n := normalize.Words(name); {
	case n == 0:
		return invalid(msgNameRequired, fieldResident), false
	case n < 2:
		return invalid(msgFullNameRequired, fieldResident), false
	}
	return domain.Outcome{}, true
}

func (s *Svc) matchResident(name string, residents []domain.ResidentEntry) (*domain.ResidentRef, domain.Outcome, bool) {
	res := fuzzy.Resolve(name, residents, func(r domain.ResidentEntry) string { return r.FullName }, s.opt.Match)
	switch res.Kind {
	case fuzzy.NotFound:
		return nil, domain.Outcome{
			Kind:    domain.KindResidentNotFound,
			Message: fmt.Sprintf("no resident matches %q", name),
			Field:   fieldResident,
		}, false
	case fuzzy.Ambiguous:
		opts := make([]domain.Option, len(res.Options))
		for i, m := range res.Options {
			opts[i] = domain.Option{
				ID:        m.Item.ID,
				Label:     m.Label,
				Score:     round(m.Score),
				RoomName:  m.Item.RoomName,
				BedName:   m.Item.BedName,
				FloorName: m.Item.FloorName,
			}
		}
		return nil, domain.Outcome{
			Kind:    domain.KindResidentAmbiguous,
			Message: fmt.Sprintf("several residents match %q", name),
			Field:   fieldResident,
			Options: opts,
		}, false
	}
	r := res.Best.Item
	return &domain.ResidentRef{
		ID:        r.ID,
		FullName:  r.FullName,
		RoomName:  r.RoomName,
		BedName:   r.BedName,
		FloorName: r.FloorName,
	}, domain.Outcome{}, true
}

func (s *Svc) residents(ctx context.Context, residenceID string) ([]domain.ResidentEntry, error) {
	xs, err := s.binder.Bind(s.db).ListResidents(ctx, residenceID)
	s.observeDirectory("residents", len(xs), err)
	return xs, err
}

func (s *Svc) tasks(ctx context.Context, residenceID string) ([]domain.TaskEntry, error) {
	xs, err := s.binder.Bind(s.db).ListTaskTemplates(ctx, residenceID)
	s.observeDirectory("tasks", len(xs), err)
	return xs, err
}

func invalid(msg, field string) domain.Outcome {
	return domain.Outcome{Kind: domain.KindValidationError, Message: msg, Field: field}
}

func segmentField(msg string) string {
	switch msg {
	case segment.MsgTypeNotIdentified:
		return fieldType
	case segment.MsgNoNameMarker, segment.MsgNameNotIdentified:
		return fieldResident
	}
	return fieldValue
}

// round keeps one decimal for display
func round(score float64) float64 { return math.Round(score*10) / 10 }
