package metric

import (
	"github.com/prometheus/client_golang/prometheus"
)

type CartMetrics struct {
	AddsTotal              *prometheus.CounterVec
	InsufficientStockTotal prometheus.Counter
}

func NewCartMetrics(registry *prometheus.Registry) *CartMetrics {
	m := &CartMetrics{
		AddsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "cart",
				Name:      "add_to_cart_total",
				Help:      "Total add-to-cart operations by result",
			},
			[]string{"result"},
		),
		InsufficientStockTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: "cart",
				Name:      "insufficient_stock_total",
				Help:      "Add-to-cart operations rejected by the stock check",
			},
		),
	}
	registry.MustRegister(m.AddsTotal, m.InsufficientStockTotal)
	return m
}
