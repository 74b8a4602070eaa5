// services/scheduler.go
package services

import (
	"context"
	"math/rand"
	"time"

	"darkzone-stats-server/models"
	"darkzone-stats-server/realtime"

	"github.com/go-co-op/gocron/v2"
)

// GoldBroadcastInterval is how often perturbed spawn rates go out.
const GoldBroadcastInterval = 30 * time.Second

const goldSampleSize = 5

// EventGoldUpdate is the event name on the updates channel.
const EventGoldUpdate = "gold-update"

type GoldUpdate struct {
	Map          string  `json:"map"`
	Location     string  `json:"location"`
	NewSpawnRate float64 `json:"newSpawnRate"`
}

type GoldUpdateEvent struct {
	Timestamp time.Time    `json:"timestamp"`
	Updates   []GoldUpdate `json:"updates"`
}

// StartGoldBroadcast runs the live gold volatility simulation: every tick a
// random sample of gold locations gets a perturbed spawn rate pushed to the
// updates channel. The perturbation is ephemeral — nothing is written back
// to the store. A failed tick is logged and the next tick runs normally.
func (s *StatsService) StartGoldBroadcast(hub *realtime.Hub, interval time.Duration) {
	sched, _ := gocron.NewScheduler()
	sched.Start()

	_, _ = sched.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(func() {
			s.goldTick(hub)
		}),
	)
}

func (s *StatsService) goldTick(hub *realtime.Hub) {
	ctx, cancel := queryContext(context.Background())
	defer cancel()

	var locations []models.GoldLocation
	err := s.DB.WithContext(ctx).
		Order("RANDOM()").Limit(goldSampleSize).
		Find(&locations).Error
	if err != nil {
		s.logger.WithError(err).Error("gold update tick failed")
		return
	}
	if len(locations) == 0 {
		return
	}

	event := GoldUpdateEvent{Timestamp: time.Now()}
	for _, loc := range locations {
		event.Updates = append(event.Updates, GoldUpdate{
			Map:          loc.MapName,
			Location:     loc.LocationName,
			NewSpawnRate: perturbSpawnRate(loc.SpawnRate),
		})
	}

	hub.Broadcast(realtime.ChannelUpdates, EventGoldUpdate, event)
}

// perturbSpawnRate nudges a rate by a uniform step in [-5, +5], clamped to
// the 0..100 scale.
func perturbSpawnRate(rate float64) float64 {
	next := rate + float64(rand.Intn(11)-5)
	if next < 0 {
		return 0
	}
	if next > 100 {
		return 100
	}
	return next
}
