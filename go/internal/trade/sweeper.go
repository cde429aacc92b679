package trade

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"
)

// DefaultSweepInterval is used when the config leaves the interval unset
const DefaultSweepInterval = time.Minute

type sweepRunner interface {
	Sweep(ctx context.Context) ([]ExpiredTrade, error)
}

// Sweeper periodically expires pending trades that stopped being valid
type Sweeper struct {
	app      sweepRunner
	clock    clockwork.Clock
	interval time.Duration

	mu       sync.Mutex
	running  bool
	stopChan chan struct{}
	wg       sync.WaitGroup
}

// NewSweeper creates a sweeper that runs app.Sweep every interval
func NewSweeper(app sweepRunner, clock clockwork.Clock, interval time.Duration) *Sweeper {
	if interval <= 0 {
		interval = DefaultSweepInterval
	}
	return &Sweeper{
		app:      app,
		clock:    clock,
		interval: interval,
	}
}

// Start sweeps once immediately and then on every tick until Stop is called
// or ctx is done
func (s *Sweeper) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running {
		return fmt.Errorf("trade sweeper already running")
	}
	s.running = true
	s.stopChan = make(chan struct{})

	s.wg.Add(1)
	go s.run(ctx, s.stopChan)

	log.Info().Dur("interval", s.interval).Msg("trade sweeper started")
	return nil
}

// Stop halts the loop and waits for an in-flight sweep to finish
func (s *Sweeper) Stop() error {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return fmt.Errorf("trade sweeper not running")
	}
	s.running = false
	close(s.stopChan)
	s.mu.Unlock()

	s.wg.Wait()
	log.Info().Msg("trade sweeper stopped")
	return nil
}

func (s *Sweeper) run(ctx context.Context, stop <-chan struct{}) {
	defer s.wg.Done()

	ticker := s.clock.NewTicker(s.interval)
	defer ticker.Stop()

	s.sweep(ctx)

	for {
		select {
		case <-ctx.Done():
			return
		case <-stop:
			return
		case <-ticker.Chan():
			s.sweep(ctx)
		}
	}
}

func (s *Sweeper) sweep(ctx context.Context) {
	expired, err := s.app.Sweep(ctx)
	if err != nil {
		log.Error().Err(err).Int("expired", len(expired)).Msg("trade sweep failed")
		return
	}
	if len(expired) == 0 {
		log.Debug().Msg("trade sweep found nothing to expire")
		return
	}
	log.Info().Int("expired", len(expired)).Msg("trade sweep expired trades")
}
