// Package service provides the voice resolution service implementation
package service

import (
	"context"
	"time"

	"residences/internal/core/fuzzy"
	"residences/internal/core/lexicon"
	"residences/internal/core/segment"
	"residences/internal/modkit/repokit"
	perr "residences/internal/platform/errors"
	"residences/internal/platform/metrics"
	"residences/internal/services/voice/domain"
	"residences/internal/services/voice/repo"
)

// Options tune the resolution pipeline, zero values fall back to defaults
type Options struct {
	Audit       domain.Audit
	Lexicon     *lexicon.Lexicon
	Match       fuzzy.Options
	StatusMatch fuzzy.Options
	Metrics     *metrics.Metrics
	Locale      string
	// Concurrent fetches the resident and task directories in parallel
	Concurrent bool
	Now        func() time.Time
}

// Svc implements domain.ServicePort
type Svc struct {
	db     repokit.TxRunner
	binder repokit.Binder[repo.Repo]
	seg    *segment.Segmenter
	opt    Options
}

var _ domain.ServicePort = (*Svc)(nil)

// New constructs the voice service
func New(db repokit.TxRunner, binder repokit.Binder[repo.Repo], opt Options) *Svc {
	if db == nil {
		panic("voice.Service requires a non-nil TxRunner")
	}
	if binder == nil {
		panic("voice.Service requires a non-nil Repo binder")
	}
	if opt.Lexicon == nil {
		opt.Lexicon = lexicon.MustLoad()
	}
	if opt.Audit == nil {
		opt.Audit = repo.NopAudit{}
	}
	if opt.Metrics == nil {
		opt.Metrics = metrics.Default()
	}
	if opt.Now == nil {
		opt.Now = time.Now
	}
	return &Svc{
		db:     db,
		binder: binder,
		seg:    segment.New(opt.Lexicon),
		opt:    opt,
	}
}

// checkAccess is step one of both pipelines, a denial is an error not an outcome
func (s *Svc) checkAccess(ctx context.Context, in domain.ParseInput) error {
	if in.UserID == "" {
		return perr.Unauthorizedf("missing user")
	}
	if in.ResidenceID == "" {
		return perr.WithField(perr.InvalidArgf("missing residence"), "residence_id")
	}
	return s.binder.Bind(s.db).CanAccess(ctx, in.UserID, in.ResidenceID)
}

func (s *Svc) locale(in string) string {
	if in != "" {
		return in
	}
	return s.opt.Locale
}
