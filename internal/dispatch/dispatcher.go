package dispatch

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/mcrbroker/carsearch/internal/models"
	"github.com/mcrbroker/carsearch/internal/ratelimit"
	"github.com/mcrbroker/carsearch/internal/suppliers"
)

type Config struct {
	Timeout     time.Duration
	RateLimiter *ratelimit.GroupLimiter
}

// Dispatcher fans one availability call out per eligible supplier group.
// Every group settles independently; a failed group contributes zero
// offers and is never re-invoked from this layer.
type Dispatcher struct {
	registry *suppliers.Registry
	config   Config
	log      *slog.Logger
}

// Result is the merged outcome after the join barrier.
type Result struct {
	Offers          []models.Offer
	GroupsQueried   int
	GroupsSucceeded int
	GroupsFailed    int
	FailedGroups    []string
}

func NewDispatcher(registry *suppliers.Registry, config Config, log *slog.Logger) *Dispatcher {
	return &Dispatcher{
		registry: registry,
		config:   config,
		log:      log,
	}
}

// Dispatch runs every group call concurrently and merges the results only
// after all of them have settled. Slots are per-group; nothing shared is
// written during the parallel phase.
func (d *Dispatcher) Dispatch(ctx context.Context, params map[int]suppliers.SearchParams) *Result {
	execs := d.registry.Executions(params)
	if len(execs) == 0 {
		d.log.Info("no supplier groups to execute")
		return &Result{Offers: []models.Offer{}}
	}

	dispatchCtx, cancel := context.WithTimeout(ctx, d.config.Timeout)
	defer cancel()

	type groupResult struct {
		group  string
		offers []models.Offer
		err    error
	}

	resultCh := make(chan groupResult, len(execs))
	var wg sync.WaitGroup

	for _, e := range execs {
		wg.Add(1)
		go func(e suppliers.Execution) {
			defer wg.Done()

			if d.config.RateLimiter != nil {
				if err := d.config.RateLimiter.Wait(dispatchCtx, e.Group.Key); err != nil {
					resultCh <- groupResult{group: e.Group.Key, err: err}
					return
				}
			}

			start := time.Now()
			offers, err := e.Group.Adapter.GetAvailability(dispatchCtx, e.Params)
			if err != nil {
				resultCh <- groupResult{group: e.Group.Key, err: err}
				return
			}
			d.log.Info("group loader ok",
				"group", e.Group.Key, "provider", e.ProviderID,
				"ms", time.Since(start).Milliseconds(), "count", len(offers))
			resultCh <- groupResult{group: e.Group.Key, offers: offers}
		}(e)
	}

	go func() {
		wg.Wait()
		close(resultCh)
	}()

	result := &Result{
		Offers:        make([]models.Offer, 0),
		GroupsQueried: len(execs),
	}
	for gr := range resultCh {
		if gr.err != nil {
			d.log.Error("group loader failed", "group", gr.group, "err", gr.err)
			result.GroupsFailed++
			result.FailedGroups = append(result.FailedGroups, gr.group)
			continue
		}
		result.GroupsSucceeded++
		result.Offers = append(result.Offers, gr.offers...)
	}

	return result
}
