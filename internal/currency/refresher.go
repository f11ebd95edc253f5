package currency

import (
	"context"
	"sync"
	"time"

	"github.com/Dheirav/SaleSnipe-sub001/internal/system"
	"github.com/Dheirav/SaleSnipe-sub001/pkg/logger"
)

var _ system.Service = (*Refresher)(nil)

// Refresher periodically refetches the rate table so long-running clients
// do not serve rates from a stale fetch. Display-currency changes still
// trigger their own immediate refresh; this is a safety net, off by default.
type Refresher struct {
	converter *Converter
	log       *logger.Logger
	interval  time.Duration

	mu      sync.Mutex
	cancel  context.CancelFunc
	wg      sync.WaitGroup
	running bool
}

// NewRefresher creates a lifecycle-managed rate refresher.
func NewRefresher(converter *Converter, interval time.Duration, log *logger.Logger) *Refresher {
	if log == nil {
		log = logger.NewDefault("currency-refresher")
	}
	if interval <= 0 {
		interval = time.Hour
	}
	return &Refresher{
		converter: converter,
		log:       log,
		interval:  interval,
	}
}

func (r *Refresher) Name() string { return "currency-refresher" }

func (r *Refresher) Start(ctx context.Context) error {
	r.mu.Lock()
	if r.running {
		r.mu.Unlock()
		return nil
	}
	runCtx, cancel := context.WithCancel(ctx)
	r.cancel = cancel
	r.running = true
	r.mu.Unlock()

	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		ticker := time.NewTicker(r.interval)
		defer ticker.Stop()

		for {
			select {
			case <-runCtx.Done():
				return
			case <-ticker.C:
				r.tick(runCtx)
			}
		}
	}()

	r.log.Info("rate refresher started")
	return nil
}

func (r *Refresher) Stop(ctx context.Context) error {
	r.mu.Lock()
	if !r.running {
		r.mu.Unlock()
		return nil
	}
	cancel := r.cancel
	r.running = false
	r.cancel = nil
	r.mu.Unlock()

	if cancel != nil {
		cancel()
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		r.wg.Wait()
	}()

	select {
	case <-done:
	case <-ctx.Done():
		return ctx.Err()
	}

	r.log.Info("rate refresher stopped")
	return nil
}

func (r *Refresher) tick(ctx context.Context) {
	if r.converter == nil {
		return
	}
	ctx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()

	if err := r.converter.Refresh(ctx); err != nil {
		r.log.WithError(err).Warn("periodic rate refresh failed")
	}
}
