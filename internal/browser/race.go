package browser

import (
	"context"
	"fmt"
	"time"

	"github.com/chromedp/chromedp"
)

// Signal names one of the competing outcomes of a submission.
type Signal string

// SignalNone means no condition fired before every budget ran out. It is a
// soft outcome: the caller decides whether it is fatal.
const SignalNone Signal = ""

// Condition is one entrant in a FirstVisible race, with its own wait budget.
// Independent budgets keep a slow success path from being misclassified as a
// failure whose budget is shorter.
type Condition struct {
	Signal   Signal
	Selector string
	Timeout  time.Duration
}

// FirstVisible waits for the first of the conditions to become visible and
// reports which one fired. Each condition stops being checked once its own
// budget elapses; when all have expired, SignalNone is returned with a
// warning logged, never an error.
func (d *Driver) FirstVisible(conditions []Condition) (Signal, error) {
	if len(conditions) == 0 {
		return SignalNone, nil
	}

	start := time.Now()

	longest := time.Duration(0)
	for _, condition := range conditions {
		if condition.Timeout > longest {
			longest = condition.Timeout
		}
	}

	for time.Since(start) < longest {
		for _, condition := range conditions {
			if time.Since(start) > condition.Timeout {
				continue
			}

			visible, err := d.visibleNow(condition.Selector)
			if err != nil {
				return SignalNone, fmt.Errorf("race check %q: %w", condition.Selector, err)
			}

			if visible {
				d.logger.Info().
					Str("signal", string(condition.Signal)).
					Str("selector", condition.Selector).
					Msg("race condition fired")

				return condition.Signal, nil
			}
		}

		select {
		case <-d.ctx.Done():
			return SignalNone, d.ctx.Err()
		case <-time.After(pollInterval):
		}
	}

	d.logger.Warn().
		Float64("waited", time.Since(start).Seconds()).
		Msg("no race condition fired before timeout")

	return SignalNone, nil
}

// visibleNow is an instantaneous visibility check, no waiting.
func (d *Driver) visibleNow(selector string) (bool, error) {
	ctx, cancel := context.WithTimeout(d.ctx, 2*time.Second)
	defer cancel()

	var visible bool
	if err := chromedp.Run(ctx, chromedp.Evaluate(visibleExpr(selector, true), &visible)); err != nil {
		return false, err
	}

	return visible, nil
}
