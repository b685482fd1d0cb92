package scheduler

import (
	"context"
	"log"
	"time"

	"github.com/go-co-op/gocron"

	"weather-lookup/internal/weather"
)

// Refresher periodically re-fetches weather for every saved request so the
// stored stats and summary payloads stay current.
type Refresher struct {
	scheduler *gocron.Scheduler
	service   *weather.Service
	interval  time.Duration
}

// New creates a new Refresher.
func New(service *weather.Service, interval time.Duration) *Refresher {
	return &Refresher{
		scheduler: gocron.NewScheduler(time.UTC),
		service:   service,
		interval:  interval,
	}
}

// Start schedules the periodic refresh job and starts the underlying
// scheduler. A non-positive interval disables the refresher.
func (r *Refresher) Start() error {
	if r.interval <= 0 {
		log.Println("refresher: disabled; saved requests will not be refreshed")
		return nil
	}

	_, err := r.scheduler.Every(r.interval).Do(func() {
		log.Println("refresher: refreshing saved weather requests")

		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		defer cancel()

		if err := r.service.RefreshSavedRequests(ctx); err != nil {
			log.Printf("refresher: refresh run failed: %v", err)
			return
		}
		log.Println("refresher: completed refresh run")
	})
	if err != nil {
		return err
	}

	r.scheduler.StartAsync()
	return nil
}

// Stop stops the scheduler and cancels any future jobs.
func (r *Refresher) Stop() {
	if r.scheduler != nil {
		r.scheduler.Stop()
	}
}
