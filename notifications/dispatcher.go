// Package notifications delivers reminder payloads to registered browser
// push subscriptions.
package notifications

import (
	"context"
	"errors"
	"sync"

	"lifeos/types"

	mapset "github.com/deckarep/golang-set/v2"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// DeliveryStatus classifies the outcome of one send attempt.
type DeliveryStatus int

const (
	StatusDelivered DeliveryStatus = iota
	StatusTransientFailure
	StatusPermanentFailure
)

func (s DeliveryStatus) String() string {
	switch s {
	case StatusDelivered:
		return "delivered"
	case StatusTransientFailure:
		return "transient_failure"
	case StatusPermanentFailure:
		return "permanent_failure"
	default:
		return "unknown"
	}
}

// DeliveryResult is the outcome for a single subscription.
type DeliveryResult struct {
	Endpoint string
	Status   DeliveryStatus
	Err      error
}

// DispatchResult aggregates a whole fan-out.
//
// DeadEndpoints lists subscriptions the push service reported permanently
// gone. The dispatcher only reports them; deleting them from the store is
// the caller's responsibility.
type DispatchResult struct {
	Delivered     int
	Transient     int
	DeadEndpoints []string
	Results       []DeliveryResult
}

// maxConcurrentSends caps the delivery fan-out so a large subscriber list
// cannot exhaust sockets.
const maxConcurrentSends = 16

// Dispatcher fans a payload out to every subscription concurrently.
type Dispatcher struct {
	Transport Transport
	Logger    *zap.SugaredLogger
}

func NewDispatcher(transport Transport, logger *zap.SugaredLogger) *Dispatcher {
	return &Dispatcher{
		Transport: transport,
		Logger:    logger,
	}
}

// Dispatch sends payload to every subscription and classifies each outcome.
// A transient failure is logged and skipped, never retried within this
// dispatch. Dispatch itself never returns an error: partial delivery is the
// contract.
func (d *Dispatcher) Dispatch(ctx context.Context, payload []byte, subs []types.PushSubscription) DispatchResult {
	var (
		mu      sync.Mutex
		results = make([]DeliveryResult, 0, len(subs))
	)

	dead := mapset.NewSet[string]()
	seen := mapset.NewSet[string]()

	g := errgroup.Group{}
	g.SetLimit(maxConcurrentSends)

	for i := range subs {
		sub := subs[i]

		// A browser occasionally re-registers the same endpoint; only
		// one send per endpoint per dispatch.
		if !seen.Add(sub.Endpoint) {
			continue
		}

		g.Go(func() error {
			err := d.Transport.Send(ctx, sub, payload)

			res := DeliveryResult{Endpoint: sub.Endpoint, Err: err}

			switch {
			case err == nil:
				res.Status = StatusDelivered
			case errors.Is(err, ErrEndpointGone):
				res.Status = StatusPermanentFailure
				dead.Add(sub.Endpoint)
				d.Logger.Infow("Pruning dead push endpoint", "endpoint", sub.Endpoint)
			default:
				res.Status = StatusTransientFailure
				d.Logger.Errorw("Error pushing notification", "error", err, "endpoint", sub.Endpoint)
			}

			mu.Lock()
			results = append(results, res)
			mu.Unlock()

			return nil
		})
	}

	g.Wait()

	out := DispatchResult{
		Results:       results,
		DeadEndpoints: dead.ToSlice(),
	}

	for _, res := range results {
		switch res.Status {
		case StatusDelivered:
			out.Delivered++
		case StatusTransientFailure:
			out.Transient++
		}
	}

	return out
}
