package module

import (
	"time"

	"residences/internal/core/fuzzy"
	"residences/internal/platform/config"
)

// Options configures the voice module
type Options struct {
	Cutoff           float64
	Margin           float64
	MaxOptions       int
	StatusCutoff     float64
	StatusKeywords   []string
	Locale           string
	Concurrent       bool
	StatementTimeout time.Duration
	AuditCreateTable bool
	AuditBuffer      int
	AuditBatch       int
	AuditInterval    time.Duration
}

// FromConfig reads options from config.Conf
func FromConfig(cfg config.Conf) Options {
	vf := cfg.Prefix("CORE_VOICE_")
	return Options{
		Cutoff:           vf.MayFloat64("CUTOFF", fuzzy.DefaultCutoff),
		Margin:           vf.MayFloat64("MARGIN", fuzzy.DefaultMargin),
		MaxOptions:       vf.MayInt("MAX_OPTIONS", fuzzy.DefaultMaxOptions),
		StatusCutoff:     vf.MayFloat64("STATUS_CUTOFF", fuzzy.DefaultCutoff),
		StatusKeywords:   vf.MayCSV("STATUS_KEYWORDS", nil),
		Locale:           vf.MayEnum("LOCALE", "en", "en", "es"),
		Concurrent:       vf.MayBool("CONCURRENT", true),
		StatementTimeout: vf.MayDuration("STATEMENT_TIMEOUT", 2*time.Second),
		AuditCreateTable: vf.MayBool("AUDIT_CREATE_TABLE", false),
		AuditBuffer:      vf.MayInt("AUDIT_BUFFER", 1024),
		AuditBatch:       vf.MayInt("AUDIT_BATCH", 200),
		AuditInterval:    vf.MayDuration("AUDIT_INTERVAL", 2*time.Second),
	}
}

func (o Options) match() fuzzy.Options {
	return fuzzy.Options{Cutoff: o.Cutoff, Margin: o.Margin, MaxOptions: o.MaxOptions}
}

func (o Options) statusMatch() fuzzy.Options {
	return fuzzy.Options{Cutoff: o.StatusCutoff, Margin: o.Margin, MaxOptions: o.MaxOptions}
}
