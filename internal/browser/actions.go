package browser

import (
	"context"
	"fmt"
	"time"

	"github.com/almoelda/restful-booker-automation/internal/tools/slowlog"
	"github.com/chromedp/cdproto/cdp"
	"github.com/chromedp/chromedp"
	"github.com/chromedp/chromedp/kb"
)

// WaitForElement polls until the selector is visible or the budget elapses.
// This is the single choke point every interaction goes through; on timeout
// it captures a screenshot keyed by the selector and reports
// ErrElementNotFound.
func (d *Driver) WaitForElement(selector string, timeout ...time.Duration) error {
	budget := d.waitTimeout
	if len(timeout) > 0 {
		budget = timeout[0]
	}

	err := slowlog.Timed(d.slow, "wait:"+selector, func() error {
		ctx, cancel := context.WithTimeout(d.ctx, budget)
		defer cancel()

		return chromedp.Run(ctx, chromedp.WaitVisible(selector, chromedp.ByQuery))
	})
	if err != nil {
		d.logger.Error().Str("selector", selector).Err(err).Msg("element did not become visible")
		d.failureShot(selector)

		return fmt.Errorf("wait for %q: %w", selector, ErrElementNotFound)
	}

	return nil
}

// Click scrolls the element into view and clicks it, with stabilization
// delays on both sides so asynchronous UI updates settle.
func (d *Driver) Click(selector string) error {
	if err := d.WaitForElement(selector); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(d.ctx, d.waitTimeout)
	defer cancel()

	err := chromedp.Run(ctx,
		chromedp.ScrollIntoView(selector, chromedp.ByQuery),
		chromedp.Sleep(stabilizeDelay),
		chromedp.Click(selector, chromedp.ByQuery),
		chromedp.Sleep(stabilizeDelay),
	)
	if err != nil {
		d.failureShot(selector)
		return fmt.Errorf("click %q: %w", selector, err)
	}

	d.logger.Info().Str("selector", selector).Msg("clicked element")

	return nil
}

// Fill focuses the input, clears it, types the value and dispatches change
// and blur so reactive frameworks observe the update.
func (d *Driver) Fill(selector, value string) error {
	if err := d.WaitForElement(selector); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(d.ctx, d.waitTimeout)
	defer cancel()

	err := chromedp.Run(ctx,
		chromedp.Focus(selector, chromedp.ByQuery),
		chromedp.Clear(selector, chromedp.ByQuery),
		chromedp.SendKeys(selector, value, chromedp.ByQuery),
		chromedp.Evaluate(dispatchChangeAndBlur(selector), nil),
	)
	if err != nil {
		d.failureShot(selector)
		return fmt.Errorf("fill %q: %w", selector, err)
	}

	d.logger.Info().Str("selector", selector).Str("value", value).Msg("filled input")

	return nil
}

// SelectOption picks a value from a select element.
func (d *Driver) SelectOption(selector, value string) error {
	if err := d.WaitForElement(selector); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(d.ctx, d.waitTimeout)
	defer cancel()

	err := chromedp.Run(ctx,
		chromedp.SetValue(selector, value, chromedp.ByQuery),
		chromedp.Evaluate(dispatchChangeAndBlur(selector), nil),
	)
	if err != nil {
		d.failureShot(selector)
		return fmt.Errorf("select option %q in %q: %w", value, selector, err)
	}

	d.logger.Info().Str("selector", selector).Str("option", value).Msg("selected option")

	return nil
}

// Text returns the text content of the element.
func (d *Driver) Text(selector string) (string, error) {
	if err := d.WaitForElement(selector); err != nil {
		return "", err
	}

	var text string

	ctx, cancel := context.WithTimeout(d.ctx, d.waitTimeout)
	defer cancel()

	if err := chromedp.Run(ctx, chromedp.Text(selector, &text, chromedp.ByQuery)); err != nil {
		d.failureShot(selector)
		return "", fmt.Errorf("read text of %q: %w", selector, err)
	}

	return text, nil
}

// Value returns the current value of an input element.
func (d *Driver) Value(selector string) (string, error) {
	if err := d.WaitForElement(selector); err != nil {
		return "", err
	}

	var value string

	ctx, cancel := context.WithTimeout(d.ctx, d.waitTimeout)
	defer cancel()

	if err := chromedp.Run(ctx, chromedp.Value(selector, &value, chromedp.ByQuery)); err != nil {
		d.failureShot(selector)
		return "", fmt.Errorf("read value of %q: %w", selector, err)
	}

	return value, nil
}

// IsVisible is the non-throwing probe: absence within the probe budget is a
// false, never an error.
func (d *Driver) IsVisible(selector string, timeout ...time.Duration) bool {
	budget := d.probeTimeout
	if len(timeout) > 0 {
		budget = timeout[0]
	}

	ctx, cancel := context.WithTimeout(d.ctx, budget)
	defer cancel()

	err := chromedp.Run(ctx, chromedp.WaitVisible(selector, chromedp.ByQuery))

	return err == nil
}

// IsEnabled reports whether the element lacks the disabled attribute.
func (d *Driver) IsEnabled(selector string) (bool, error) {
	if err := d.WaitForElement(selector); err != nil {
		return false, err
	}

	var (
		value string
		found bool
	)

	ctx, cancel := context.WithTimeout(d.ctx, d.waitTimeout)
	defer cancel()

	err := chromedp.Run(ctx, chromedp.AttributeValue(selector, "disabled", &value, &found, chromedp.ByQuery))
	if err != nil {
		return false, fmt.Errorf("read disabled attribute of %q: %w", selector, err)
	}

	return !found, nil
}

// ScrollTo brings the element into the viewport.
func (d *Driver) ScrollTo(selector string) error {
	if err := d.WaitForElement(selector); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(d.ctx, d.waitTimeout)
	defer cancel()

	if err := chromedp.Run(ctx, chromedp.ScrollIntoView(selector, chromedp.ByQuery)); err != nil {
		return fmt.Errorf("scroll to %q: %w", selector, err)
	}

	d.logger.Info().Str("selector", selector).Msg("scrolled to element")

	return nil
}

// Hover dispatches a mouseover to the element.
func (d *Driver) Hover(selector string) error {
	if err := d.WaitForElement(selector); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(d.ctx, d.waitTimeout)
	defer cancel()

	js := fmt.Sprintf(
		`(() => { const el = document.querySelector(%q); if (el) { el.dispatchEvent(new MouseEvent('mouseover', {bubbles: true})); } })()`,
		selector)

	if err := chromedp.Run(ctx, chromedp.Evaluate(js, nil)); err != nil {
		return fmt.Errorf("hover %q: %w", selector, err)
	}

	d.logger.Info().Str("selector", selector).Msg("hovered over element")

	return nil
}

// DoubleClick double-clicks the element.
func (d *Driver) DoubleClick(selector string) error {
	if err := d.WaitForElement(selector); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(d.ctx, d.waitTimeout)
	defer cancel()

	if err := chromedp.Run(ctx, chromedp.DoubleClick(selector, chromedp.ByQuery)); err != nil {
		d.failureShot(selector)
		return fmt.Errorf("double click %q: %w", selector, err)
	}

	d.logger.Info().Str("selector", selector).Msg("double clicked element")

	return nil
}

// RightClick clicks the element with the secondary button.
func (d *Driver) RightClick(selector string) error {
	if err := d.WaitForElement(selector); err != nil {
		return err
	}

	var nodes []*cdp.Node

	ctx, cancel := context.WithTimeout(d.ctx, d.waitTimeout)
	defer cancel()

	err := chromedp.Run(ctx, chromedp.Nodes(selector, &nodes, chromedp.ByQuery))
	if err != nil || len(nodes) == 0 {
		d.failureShot(selector)
		return fmt.Errorf("right click %q: %w", selector, err)
	}

	if err := chromedp.Run(ctx, chromedp.MouseClickNode(nodes[0], chromedp.Button("right"))); err != nil {
		d.failureShot(selector)
		return fmt.Errorf("right click %q: %w", selector, err)
	}

	d.logger.Info().Str("selector", selector).Msg("right clicked element")

	return nil
}

// PressKey sends a named key ("Tab", "Escape", "Enter") or a literal rune to
// the focused element.
func (d *Driver) PressKey(key string) error {
	ctx, cancel := context.WithTimeout(d.ctx, d.waitTimeout)
	defer cancel()

	if err := chromedp.Run(ctx, chromedp.KeyEvent(namedKey(key))); err != nil {
		return fmt.Errorf("press key %q: %w", key, err)
	}

	d.logger.Info().Str("key", key).Msg("pressed key")

	return nil
}

func namedKey(key string) string {
	switch key {
	case "Tab":
		return kb.Tab
	case "Escape":
		return kb.Escape
	case "Enter":
		return kb.Enter
	case "Backspace":
		return kb.Backspace
	default:
		return key
	}
}

// TypeText types into the focused element with a small per-character delay.
func (d *Driver) TypeText(text string) error {
	ctx, cancel := context.WithTimeout(d.ctx, d.waitTimeout)
	defer cancel()

	for _, r := range text {
		err := chromedp.Run(ctx,
			chromedp.KeyEvent(string(r)),
			chromedp.Sleep(20*time.Millisecond),
		)
		if err != nil {
			return fmt.Errorf("type text: %w", err)
		}
	}

	d.logger.Info().Str("text", text).Msg("typed text")

	return nil
}

// UploadFile attaches a local file to a file input.
func (d *Driver) UploadFile(selector, path string) error {
	if err := d.WaitForElement(selector); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(d.ctx, d.waitTimeout)
	defer cancel()

	if err := chromedp.Run(ctx, chromedp.SetUploadFiles(selector, []string{path}, chromedp.ByQuery)); err != nil {
		d.failureShot(selector)
		return fmt.Errorf("upload file to %q: %w", selector, err)
	}

	d.logger.Info().Str("selector", selector).Str("path", path).Msg("uploaded file")

	return nil
}

// Count returns how many elements currently match the selector. Zero matches
// is a valid answer, not an error.
func (d *Driver) Count(selector string) (int, error) {
	var nodes []*cdp.Node

	ctx, cancel := context.WithTimeout(d.ctx, d.waitTimeout)
	defer cancel()

	err := chromedp.Run(ctx, chromedp.Nodes(selector, &nodes, chromedp.ByQueryAll, chromedp.AtLeast(0)))
	if err != nil {
		return 0, fmt.Errorf("count %q: %w", selector, err)
	}

	return len(nodes), nil
}

// TextOfAll returns the text content of every element matching the selector,
// read fresh on each call.
func (d *Driver) TextOfAll(selector string) ([]string, error) {
	ctx, cancel := context.WithTimeout(d.ctx, d.waitTimeout)
	defer cancel()

	var texts []string

	js := fmt.Sprintf(
		`Array.from(document.querySelectorAll(%q)).map(el => el.textContent.trim())`,
		selector)

	if err := chromedp.Run(ctx, chromedp.Evaluate(js, &texts)); err != nil {
		return nil, fmt.Errorf("read texts of %q: %w", selector, err)
	}

	return texts, nil
}

// ClickByText clicks the first element of the given tag whose text contains
// the needle.
func (d *Driver) ClickByText(text, tag string) error {
	if tag == "" {
		tag = "*"
	}

	ctx, cancel := context.WithTimeout(d.ctx, d.waitTimeout)
	defer cancel()

	js := fmt.Sprintf(
		`(() => {
			const el = Array.from(document.querySelectorAll(%q)).find(e => e.textContent.includes(%q));
			if (!el) { return false; }
			el.click();
			return true;
		})()`,
		tag, text)

	var clicked bool
	if err := chromedp.Run(ctx, chromedp.Evaluate(js, &clicked)); err != nil {
		return fmt.Errorf("click element with text %q: %w", text, err)
	}

	if !clicked {
		d.failureShot("text-" + text)
		return fmt.Errorf("click element with text %q: %w", text, ErrElementNotFound)
	}

	d.logger.Info().Str("text", text).Msg("clicked element by text")

	return nil
}

func dispatchChangeAndBlur(selector string) string {
	return fmt.Sprintf(
		`(() => {
			const el = document.querySelector(%q);
			if (el) {
				el.dispatchEvent(new Event('input', {bubbles: true}));
				el.dispatchEvent(new Event('change', {bubbles: true}));
				el.blur();
			}
		})()`,
		selector)
}
