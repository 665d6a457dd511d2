package casino

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// playsTotal counts play attempts by outcome
	playsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "casino_plays_total",
		Help: "Play attempts by outcome",
	}, []string{"outcome"})

	// rewardTotal accumulates every reward paid out
	rewardTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "casino_reward_total",
		Help: "Sum of rewards paid out across all casinos",
	})

	// gamesStarted counts Start calls by budget kind
	gamesStarted = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "casino_games_started_total",
		Help: "Games started by budget kind",
	}, []string{"budget"})
)
