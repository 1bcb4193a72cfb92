package server

import (
	"github.com/Nascom/sulu/internal/domain"
	"github.com/prometheus/client_golang/prometheus"
)

type metrics struct {
	listsRendered *prometheus.CounterVec
	itemsPerPage  prometheus.Histogram
	searches      prometheus.Counter
}

func newMetrics(reg prometheus.Registerer) *metrics {
	m := &metrics{
		listsRendered: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "sulu_lists_rendered_total",
			Help: "Number of list representations rendered, by relation.",
		}, []string{"rel"}),
		itemsPerPage: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "sulu_list_items_per_page",
			Help:    "Number of items embedded in rendered list representations.",
			Buckets: prometheus.ExponentialBuckets(1, 2, 10),
		}),
		searches: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "sulu_website_searches_total",
			Help: "Number of website searches executed.",
		}),
	}
	reg.MustRegister(m.listsRendered, m.itemsPerPage, m.searches)
	return m
}

func (m *metrics) observeList(collection *domain.PagedCollection) {
	m.listsRendered.WithLabelValues(collection.Rel()).Inc()
	m.itemsPerPage.Observe(float64(len(collection.Items())))
}
