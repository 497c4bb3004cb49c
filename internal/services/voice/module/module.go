// Package module wires voice resolution into the API using modkit
package module

import (
	"context"
	"time"

	"residences/internal/core/lexicon"
	"residences/internal/modkit"
	"residences/internal/modkit/httpkit"
	"residences/internal/modkit/repokit"
	"residences/internal/platform/logger"
	"residences/internal/platform/metrics"
	"residences/internal/platform/net/middleware"
	"residences/internal/services/voice/domain"
	voicehttp "residences/internal/services/voice/http"
	"residences/internal/services/voice/repo"
	"residences/internal/services/voice/service"
)

// ResidenceParam is the path parameter every voice route is scoped by
const ResidenceParam = "residenceID"

// Ports exposed by the voice module
type Ports struct {
	Service domain.ServicePort
}

// Injected are ports a caller may hand in through modkit.WithPorts
type Injected struct {
	// Audit replaces the configured audit sink
	Audit domain.Audit
}

// Module implements modkit.Module
type Module struct {
	b     modkit.Built
	ports Ports
	audit domain.Audit
}

// New constructs the voice module, deps.PG is required
// audit events go to ClickHouse when deps.CH is set
func New(deps modkit.Deps, opts ...modkit.Option) *Module {
	if deps.PG == nil {
		panic("voice module: postgres is required")
	}
	o := FromConfig(deps.Cfg)
	b := modkit.Build("voice", "/residences/{"+ResidenceParam+"}/voice", opts...)

	m := &Module{b: b}
	if in, ok := modkit.PortsAs[Injected](b); ok && in.Audit != nil {
		m.audit = in.Audit
	} else {
		m.audit = newAudit(deps, o)
	}

	lex := lexicon.MustLoad().WithStatusKeywords(o.StatusKeywords)
	db := repokit.WithBeginHooks(deps.PG, repokit.StatementTimeout(o.StatementTimeout))
	svc := service.New(db, repo.NewPG(), service.Options{
		Audit:       m.audit,
		Lexicon:     lex,
		Match:       o.match(),
		StatusMatch: o.statusMatch(),
		Metrics:     deps.Metrics,
		Locale:      o.Locale,
		Concurrent:  o.Concurrent,
	})
	m.ports = Ports{Service: svc}
	return m
}

func newAudit(deps modkit.Deps, o Options) domain.Audit {
	if deps.CH == nil {
		return repo.NopAudit{}
	}
	log := logger.Named("voice")
	if o.AuditCreateTable {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := repo.EnsureAuditTable(ctx, deps.CH); err != nil {
			log.Error().Err(err).Str("table", repo.AuditTable).Msg("audit table create failed")
		}
	}
	m := deps.Metrics
	if m == nil {
		m = metrics.Default()
	}
	log.Info().Str("table", repo.AuditTable).Int("batch", o.AuditBatch).Msg("voice audit to clickhouse")
	return repo.NewClickhouseAudit(deps.CH, repo.AuditOptions{
		Buffer:   o.AuditBuffer,
		Batch:    o.AuditBatch,
		Interval: o.AuditInterval,
		Metrics:  m,
	})
}

// Name implements modkit.Module
func (m *Module) Name() string { return m.b.Name }

// Prefix returns the route prefix
func (m *Module) Prefix() string { return m.b.Prefix }

// Ports implements modkit.Module
func (m *Module) Ports() any { return m.ports }

// MountRoutes implements modkit.Module
// the residence scope runs after the module middleware so auth sees the request first
func (m *Module) MountRoutes(r httpkit.Router) {
	b := m.b
	b.Mw = append(append([]middleware.Middleware(nil), m.b.Mw...),
		middleware.AllowJSON(),
		httpkit.ResidenceScope(ResidenceParam),
	)
	b.Mount(r, func(sr httpkit.Router) {
		voicehttp.Register(sr, m.ports.Service)
	})
}

// Close flushes pending audit events
func (m *Module) Close() error {
	if c, ok := m.audit.(interface{ Close() error }); ok {
		return c.Close()
	}
	return nil
}
