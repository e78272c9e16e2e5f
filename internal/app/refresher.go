package app

import (
	"context"
	"time"

	"github.com/rosterhq/roster/internal/state"
	"github.com/rosterhq/roster/internal/user"
)

const defaultSessionRefresh = 10 * time.Minute

// StartSessionRefresher launches a background goroutine that re-hydrates
// the session at a fixed cadence so the server keeps the auth cookies
// fresh. It returns immediately. Refreshes are skipped while the user is
// anonymous or a request is already in flight; the hydrate verb keeps its
// failures out of the message channel, so a dropped session surfaces only
// on the next real action.
func StartSessionRefresher(ctx context.Context, store *state.Store[user.User], d *Dispatcher, interval time.Duration) {
	if interval <= 0 {
		interval = defaultSessionRefresh
	}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
			}
			// A hydrate replaces the current record wholesale, so never
			// refresh over staged edits.
			cur := store.Snapshot().Records.Current
			if cur.ID() == "" || !cur.Meta().Idle() {
				continue
			}
			d.HydrateApp(ctx, "")
		}
	}()
}
