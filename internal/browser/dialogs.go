package browser

import (
	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
)

// HandleDialogs registers a session-lifetime listener that auto-accepts or
// auto-dismisses every native dialog (alert/confirm). Registration is
// idempotent: repeated calls do not stack handlers, so a single dialog is
// never answered twice.
func (d *Driver) HandleDialogs(accept bool) {
	d.dialogMu.Lock()
	defer d.dialogMu.Unlock()

	if d.dialogsHandled {
		return
	}
	d.dialogsHandled = true

	chromedp.ListenTarget(d.ctx, func(ev interface{}) {
		event, ok := ev.(*page.EventJavascriptDialogOpening)
		if !ok {
			return
		}

		d.logger.Info().
			Str("message", event.Message).
			Bool("accept", accept).
			Msg("dialog appeared")

		go func() {
			action := page.HandleJavaScriptDialog(accept)
			if err := chromedp.Run(d.ctx, action); err != nil {
				d.logger.Warn().Err(err).Msg("dialog could not be handled")
			}
		}()
	})
}
