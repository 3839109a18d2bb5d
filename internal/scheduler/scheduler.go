package scheduler

import (
	"context"
	"fmt"
	"log"

	"EchoSentinel/internal/engine"
	"EchoSentinel/internal/model"
	"EchoSentinel/internal/notifier"
	"EchoSentinel/internal/recorder"
	"EchoSentinel/internal/strategy"

	"github.com/robfig/cron/v3"
)

// Scheduler manages the periodic health check and signal sweep.
type Scheduler struct {
	Cron     *cron.Cron
	Engine   *engine.Engine
	Notifier notifier.Notifier
	Recorder recorder.Recorder
	Brands   []string
	Trials   int
	Ctx      context.Context
}

// NewScheduler creates a new Scheduler.
func NewScheduler(ctx context.Context, e *engine.Engine, n notifier.Notifier, rec recorder.Recorder, brands []string, trials int) *Scheduler {
	return &Scheduler{
		Cron:     cron.New(cron.WithSeconds()),
		Engine:   e,
		Notifier: n,
		Recorder: rec,
		Brands:   brands,
		Trials:   trials,
		Ctx:      ctx,
	}
}

// RegisterAll registers the daily health check, the weekly signal
// sweep, and the monthly deep Monte Carlo sweep.
func (s *Scheduler) RegisterAll(dailyCron, weeklyCron, monthlyCron string) error {
	if _, err := s.Cron.AddFunc(dailyCron, s.healthTask); err != nil {
		return fmt.Errorf("register daily health task: %w", err)
	}
	if _, err := s.Cron.AddFunc(weeklyCron, s.signalSweep); err != nil {
		return fmt.Errorf("register weekly signal task: %w", err)
	}
	if _, err := s.Cron.AddFunc(monthlyCron, s.deepSweep); err != nil {
		return fmt.Errorf("register monthly sweep task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	log.Println("[INFO] scheduler started")
}

// Stop stops the cron scheduler gracefully.
func (s *Scheduler) Stop() {
	s.Cron.Stop()
	log.Println("[INFO] scheduler stopped")
}

// RunSweepNow executes the signal sweep immediately (manual trigger / RUN_ON_START).
func (s *Scheduler) RunSweepNow() {
	s.signalSweep()
}

func (s *Scheduler) healthTask() {
	log.Println("[INFO] running daily health check")
	health, err := s.Engine.SystemHealth()
	if err != nil {
		log.Printf("[ERROR] health check: %v", err)
		return
	}

	if err := s.Recorder.RecordHealth(health); err != nil {
		log.Printf("[ERROR] record health: %v", err)
	}

	log.Printf("[INFO] system health: %s (risk %.2f)", health.Status, health.RiskScore)
	if health.Status == model.HealthAtRisk {
		s.trySend(notifier.FormatHealth(health))
	}
}

func (s *Scheduler) signalSweep() {
	log.Println("[INFO] running signal sweep")

	// Whole network first, then each watched brand.
	scopes := append([]string{""}, s.Brands...)
	for _, brand := range scopes {
		sig, err := strategy.Generate(s.Engine, brand, s.Trials)
		if err != nil {
			log.Printf("[ERROR] signal for brand %q: %v", brand, err)
			continue
		}

		if err := s.Recorder.RecordSignal(sig); err != nil {
			log.Printf("[ERROR] record signal: %v", err)
		}
		s.trySend(notifier.FormatSignal(sig))

		// Drill into the most critical location of the scope with the
		// configured default perturbation.
		if len(sig.CriticalNodes) > 0 {
			cfg := s.Engine.Config()
			res, err := s.Engine.ComputeEchoByID(sig.CriticalNodes[0].ID, cfg.DefaultSteps, cfg.DefaultPerturbation)
			if err != nil {
				log.Printf("[ERROR] echo for critical location: %v", err)
				continue
			}
			if err := s.Recorder.RecordEcho(res); err != nil {
				log.Printf("[ERROR] record echo: %v", err)
			}
		}
	}
}

// deepSweep runs a full-size Monte Carlo over the whole network and
// archives the distribution.
func (s *Scheduler) deepSweep() {
	log.Println("[INFO] running monthly deep sweep")
	res, err := s.Engine.RunMonteCarlo(engine.SampleOptions{Trials: s.Engine.Config().DefaultTrials})
	if err != nil {
		log.Printf("[ERROR] deep sweep: %v", err)
		return
	}

	if err := s.Recorder.RecordMonteCarlo(res); err != nil {
		log.Printf("[ERROR] record monte carlo run: %v", err)
	}
	s.trySend(notifier.FormatMonteCarlo(res))
}

func (s *Scheduler) trySend(text string) {
	if err := s.Notifier.SendWithRetry(s.Ctx, text, 3); err != nil {
		log.Printf("[ERROR] send notification: %v", err)
	}
}
