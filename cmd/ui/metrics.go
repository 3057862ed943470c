package main

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	downloadsServed = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "libpro_downloads_total",
		Help: "The number of download redirects served",
	}, []string{"source"})
	viewsRecorded = promauto.NewCounter(prometheus.CounterOpts{
		Name: "libpro_views_total",
		Help: "The number of preview views recorded",
	})
	uploadsReceived = promauto.NewCounter(prometheus.CounterOpts{
		Name: "libpro_uploads_total",
		Help: "The number of user uploaded books",
	})
	feedEvents = promauto.NewCounter(prometheus.CounterOpts{
		Name: "libpro_feed_events_total",
		Help: "The number of simulated downloads on the live feed",
	})
)
