package modkit

import (
	"residences/internal/modkit/repokit"
	"residences/internal/platform/config"
	"residences/internal/platform/logger"
	"residences/internal/platform/metrics"
	"residences/internal/platform/store"
)

// Deps holds the shared dependencies handed to every module
// PG and CH are nil when the backend is disabled, Metrics may be nil in tests
type Deps struct {
	Log     logger.Logger
	Cfg     config.Conf
	PG      repokit.TxRunner
	CH      store.Clickhouse
	Metrics *metrics.Metrics
}

// DepsFrom builds Deps from an opened store
func DepsFrom(st *store.Store, cfg config.Conf, log logger.Logger, m *metrics.Metrics) Deps {
	d := Deps{Log: log, Cfg: cfg, Metrics: m}
	if st != nil {
		d.PG = st.PG
		d.CH = st.CH
	}
	return d
}
