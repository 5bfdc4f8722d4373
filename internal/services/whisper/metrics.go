package whisper

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	encryptsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "whisper_encrypts_total",
			Help: "Envelopes sealed, by outcome",
		},
		[]string{"outcome"},
	)

	decryptsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "whisper_decrypts_total",
			Help: "Envelopes opened, by outcome",
		},
		[]string{"outcome"},
	)

	replayRejectsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "whisper_replay_rejections_total",
			Help: "Envelopes rejected by the replay cache",
		},
	)
)
