package sblapi

import (
	"context"

	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// Leg is one call of a fan-out
type Leg struct {
	Name     string
	Required bool
	Run      func(ctx context.Context) error
}

// Required marks a leg whose failure fails the whole fan-out
func Required(name string, run func(ctx context.Context) error) Leg {
	return Leg{Name: name, Required: true, Run: run}
}

// Optional marks a leg whose failure is logged and otherwise ignored
func Optional(name string, run func(ctx context.Context) error) Leg {
	return Leg{Name: name, Run: run}
}

// Into adapts a typed endpoint call so its data lands in dst on success.
// On failure dst keeps its zero value.
func Into[T any](dst *T, call func(ctx context.Context) (*Response[T], error)) func(ctx context.Context) error {
	return func(ctx context.Context) error {
		res, err := call(ctx)
		if err != nil {
			return err
		}
		*dst = res.Data
		return nil
	}
}

// FanOut runs every leg concurrently. Each leg gets its own timeout from the
// client, so one slow leg never cancels another. FanOut returns the first
// required failure as soon as it happens and leaves the remaining legs to
// finish on their own, so callers must not read the other legs' results after
// an error. Otherwise it waits for every leg; optional failures are only logged.
func FanOut(ctx context.Context, legs ...Leg) error {
	failed := make(chan error, 1)
	var g errgroup.Group
	for _, leg := range legs {
		g.Go(func() error {
			err := leg.Run(ctx)
			if err == nil {
				return nil
			}
			if leg.Required {
				select {
				case failed <- err:
				default:
				}
				return err
			}
			log.WithFields(log.Fields{
				"leg": leg.Name,
			}).WithError(err).Warn("Optional API call failed, continuing without it")
			return nil
		})
	}

	done := make(chan error, 1)
	go func() { done <- g.Wait() }()

	select {
	case err := <-failed:
		return err
	case err := <-done:
		return err
	}
}
