package storefront

import "github.com/prometheus/client_golang/prometheus"

type domainMetrics struct {
	redirects      *prometheus.CounterVec
	mutations      *prometheus.CounterVec
	configReplaced prometheus.Counter
	unlocks        *prometheus.CounterVec
}

func newDomainMetrics(reg prometheus.Registerer) *domainMetrics {
	m := &domainMetrics{
		redirects: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "storefront_redirects_total",
				Help: "Outbound marketplace redirects",
			},
			[]string{"kind", "brand"},
		),
		mutations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "storefront_catalog_mutations_total",
				Help: "Persisted catalog mutations",
			},
			[]string{"op"},
		),
		configReplaced: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "storefront_config_replacements_total",
				Help: "Persisted site config replacements",
			},
		),
		unlocks: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "storefront_admin_unlock_attempts_total",
				Help: "Admin code submissions",
			},
			[]string{"result"},
		),
	}

	reg.MustRegister(m.redirects, m.mutations, m.configReplaced, m.unlocks)
	return m
}

func (m *domainMetrics) upserted() { m.mutations.WithLabelValues("upsert").Inc() }
func (m *domainMetrics) removed()  { m.mutations.WithLabelValues("remove").Inc() }
func (m *domainMetrics) replaced() { m.configReplaced.Inc() }

func (m *domainMetrics) unlock(ok bool) {
	result := "failure"
	if ok {
		result = "success"
	}
	m.unlocks.WithLabelValues(result).Inc()
}
