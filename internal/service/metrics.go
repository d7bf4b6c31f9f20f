package service

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	recipeWrites = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "foodgram",
		Name:      "recipe_writes_total",
		Help:      "Recipes created, updated or deleted.",
	}, []string{"operation"})

	relationToggles = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "foodgram",
		Name:      "relation_toggles_total",
		Help:      "Favorite and shopping cart changes by kind, operation and outcome.",
	}, []string{"kind", "operation", "outcome"})

	shoppingListLines = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "foodgram",
		Name:      "shopping_list_lines",
		Help:      "Number of lines in downloaded shopping lists.",
		Buckets:   []float64{0, 1, 5, 10, 20, 50, 100},
	})
)
