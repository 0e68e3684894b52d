package browser

import (
	"context"
	"fmt"
	"time"

	"github.com/chromedp/chromedp"
)

// Polling assertions. Each retries its condition until the wait budget
// elapses; failure comes back as an error for the calling spec to fail on,
// with the usual screenshot attached.

func (d *Driver) AssertVisible(selector string) error {
	if err := d.pollTrue(visibleExpr(selector, true), d.waitTimeout); err != nil {
		d.failureShot(selector)
		return fmt.Errorf("assert %q visible: %w", selector, ErrElementNotFound)
	}

	d.logger.Info().Str("selector", selector).Msg("verified element is visible")

	return nil
}

func (d *Driver) AssertNotVisible(selector string) error {
	if err := d.pollTrue(visibleExpr(selector, false), d.waitTimeout); err != nil {
		d.failureShot(selector)
		return fmt.Errorf("assert %q not visible: element stayed visible", selector)
	}

	d.logger.Info().Str("selector", selector).Msg("verified element is not visible")

	return nil
}

func (d *Driver) AssertEnabled(selector string) error {
	expr := fmt.Sprintf(
		`(() => { const el = document.querySelector(%q); return !!el && !el.disabled; })()`,
		selector)

	if err := d.pollTrue(expr, d.waitTimeout); err != nil {
		d.failureShot(selector)
		return fmt.Errorf("assert %q enabled: element missing or disabled", selector)
	}

	d.logger.Info().Str("selector", selector).Msg("verified element is enabled")

	return nil
}

func (d *Driver) AssertDisabled(selector string) error {
	expr := fmt.Sprintf(
		`(() => { const el = document.querySelector(%q); return !!el && el.disabled === true; })()`,
		selector)

	if err := d.pollTrue(expr, d.waitTimeout); err != nil {
		d.failureShot(selector)
		return fmt.Errorf("assert %q disabled: element missing or enabled", selector)
	}

	d.logger.Info().Str("selector", selector).Msg("verified element is disabled")

	return nil
}

func (d *Driver) AssertTextContains(selector, expected string) error {
	expr := fmt.Sprintf(
		`(() => { const el = document.querySelector(%q); return !!el && el.textContent.includes(%q); })()`,
		selector, expected)

	if err := d.pollTrue(expr, d.waitTimeout); err != nil {
		d.failureShot(selector)
		return fmt.Errorf("assert %q contains text %q: condition not met", selector, expected)
	}

	d.logger.Info().
		Str("selector", selector).
		Str("expected", expected).
		Msg("verified element text")

	return nil
}

// AssertPageContains checks the whole document for a text fragment, the way
// specs verify rendered copy ("Booking Confirmed", price totals).
func (d *Driver) AssertPageContains(expected string) error {
	expr := fmt.Sprintf(`document.body && document.body.textContent.includes(%q)`, expected)

	if err := d.pollTrue(expr, d.waitTimeout); err != nil {
		d.failureShot("page-text")
		return fmt.Errorf("assert page contains %q: condition not met", expected)
	}

	d.logger.Info().Str("expected", expected).Msg("verified page text")

	return nil
}

func (d *Driver) pollTrue(expr string, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(d.ctx, timeout)
	defer cancel()

	return chromedp.Run(ctx, chromedp.Poll(expr, nil, chromedp.WithPollingInterval(pollInterval)))
}

func visibleExpr(selector string, want bool) string {
	check := fmt.Sprintf(
		`(() => {
			const el = document.querySelector(%q);
			return !!el && el.getClientRects().length > 0 && getComputedStyle(el).visibility !== 'hidden';
		})()`,
		selector)

	if want {
		return check
	}

	return "!" + check
}
