package service

import (
	"context"
	"time"

	"residences/internal/core/confirm"
	perr "residences/internal/platform/errors"
	"residences/internal/platform/logger"
	pnet "residences/internal/platform/net"
	"residences/internal/services/voice/domain"
)

const outcomeError = "error"

// observe logs, counts and audits one resolution
// infra errors are logged and counted but never audited
func (s *Svc) observe(ctx context.Context, kind string, in domain.ParseInput, out domain.Outcome, err error, start time.Time) {
	elapsed := s.opt.Now().Sub(start)
	m := s.opt.Metrics
	m.VoiceDuration.WithLabelValues(kind).Observe(elapsed.Seconds())

	log := logger.C(ctx)
	if err != nil {
		m.VoiceOutcomes.WithLabelValues(kind, outcomeError).Inc()
		ev := log.Error()
		if perr.IsCode(err, perr.ErrorCodeForbidden) || perr.IsCode(err, perr.ErrorCodeUnauthorized) {
			ev = log.Warn()
		}
		ev.Err(err).Str("transcript_kind", kind).Dur("elapsed", elapsed).Msg("voice resolution failed")
		return
	}

	m.VoiceOutcomes.WithLabelValues(kind, string(out.Kind)).Inc()
	ev := log.Debug()
	if out.Kind.Success() {
		ev = log.Info()
	}
	ev.Str("transcript_kind", kind).
		Str("outcome", string(out.Kind)).
		Str("field", out.Field).
		Int("options", len(out.Options)).
		Dur("elapsed", elapsed).
		Msg("voice resolution")

	aev := domain.AuditEvent{
		At:          start.UTC(),
		RequestID:   pnet.RequestID(ctx),
		ResidenceID: in.ResidenceID,
		UserID:      in.UserID,
		Transcript:  in.Transcript,
		Kind:        kind,
		Outcome:     out.Kind,
		Field:       out.Field,
		Options:     len(out.Options),
		Locale:      confirm.Locale(s.locale(in.Locale)).String(),
		Elapsed:     elapsed,
	}
	if out.Resident != nil {
		aev.ResidentID = out.Resident.ID
	}
	if out.Task != nil {
		aev.TaskID = out.Task.ID
	}
	if err := s.opt.Audit.Record(ctx, aev); err != nil {
		log.Warn().Err(err).Msg("voice audit record failed")
	}
}

func (s *Svc) observeDirectory(name string, size int, err error) {
	if err != nil {
		s.opt.Metrics.DirectoryFetchErrors.WithLabelValues(name).Inc()
		return
	}
	s.opt.Metrics.DirectorySize.WithLabelValues(name).Observe(float64(size))
}
