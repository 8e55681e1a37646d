package admin

import (
	"context"

	"nearfix-client/internal/api"
	"nearfix-client/internal/common/errors"
	"nearfix-client/internal/common/logger"
	"nearfix-client/internal/common/metrics"
	"nearfix-client/internal/common/validation"
)

type Tab string

const (
	TabStats         Tab = "stats"
	TabVerifications Tab = "verifications"
	TabUsers         Tab = "users"
)

const pageSize = 10

// Console drives the admin's three views. Each tab fetches on activation
// rather than polling; moderation actions refetch the pending queue so
// the list always reflects the server.
type Console struct {
	admin  *api.AdminClient
	logger logger.Logger

	tab Tab

	stats *api.AdminStats

	pending     []api.PendingProvider
	pendingPage int
	pendingOf   int

	users     []api.User
	usersPage int
	usersOf   int

	loading bool
	errMsg  string
}

func NewConsole(admin *api.AdminClient, log logger.Logger) *Console {
	return &Console{admin: admin, logger: log, tab: TabStats}
}

func (c *Console) Tab() Tab                       { return c.tab }
func (c *Console) Stats() *api.AdminStats         { return c.stats }
func (c *Console) Pending() []api.PendingProvider { return c.pending }
func (c *Console) Users() []api.User              { return c.users }
func (c *Console) Loading() bool                  { return c.loading }
func (c *Console) Error() string                  { return c.errMsg }

// PendingPage reports the current page and total pages of the
// verification queue; UsersPage does the same for the user list.
func (c *Console) PendingPage() (page, of int) { return c.pendingPage, c.pendingOf }
func (c *Console) UsersPage() (page, of int)   { return c.usersPage, c.usersOf }

// Activate switches to a tab and fetches its data.
func (c *Console) Activate(ctx context.Context, tab Tab) {
	c.tab = tab
	metrics.ScreenRefreshesTotal.WithLabelValues("admin_" + string(tab)).Inc()

	switch tab {
	case TabStats:
		c.loadStats(ctx)
	case TabVerifications:
		c.loadPending(ctx, 0)
	case TabUsers:
		c.loadUsers(ctx, 0)
	}
}

func (c *Console) loadStats(ctx context.Context) {
	c.loading = true
	stats, err := c.admin.Stats(ctx)
	c.loading = false

	if err != nil {
		c.errMsg = errors.UserMessage(err)
		return
	}
	c.stats = stats
	c.errMsg = ""
}

func (c *Console) loadPending(ctx context.Context, page int) {
	c.loading = true
	result, err := c.admin.PendingProviders(ctx, page, pageSize)
	c.loading = false

	if err != nil {
		c.errMsg = errors.UserMessage(err)
		return
	}
	c.pending = result.Items
	c.pendingPage = result.Page
	c.pendingOf = result.TotalPages
	c.errMsg = ""
}

func (c *Console) loadUsers(ctx context.Context, page int) {
	c.loading = true
	result, err := c.admin.Users(ctx, page, pageSize)
	c.loading = false

	if err != nil {
		c.errMsg = errors.UserMessage(err)
		return
	}
	c.users = result.Items
	c.usersPage = result.Page
	c.usersOf = result.TotalPages
	c.errMsg = ""
}

// NextPage and PrevPage page the active list tab; the stats tab has no
// pages and both are no-ops there.
func (c *Console) NextPage(ctx context.Context) {
	switch c.tab {
	case TabVerifications:
		if c.pendingPage+1 < c.pendingOf {
			c.loadPending(ctx, c.pendingPage+1)
		}
	case TabUsers:
		if c.usersPage+1 < c.usersOf {
			c.loadUsers(ctx, c.usersPage+1)
		}
	}
}

func (c *Console) PrevPage(ctx context.Context) {
	switch c.tab {
	case TabVerifications:
		if c.pendingPage > 0 {
			c.loadPending(ctx, c.pendingPage-1)
		}
	case TabUsers:
		if c.usersPage > 0 {
			c.loadUsers(ctx, c.usersPage-1)
		}
	}
}

// Verify approves a pending provider and refetches the current queue
// page so the entry disappears.
func (c *Console) Verify(ctx context.Context, providerID int64) error {
	if err := c.admin.VerifyProvider(ctx, providerID); err != nil {
		c.errMsg = errors.UserMessage(err)
		return err
	}

	c.logger.Info("provider verified", map[string]interface{}{
		"providerId": providerID,
	})
	c.loadPending(ctx, c.pendingPage)
	return nil
}

// Reject declines a pending provider with a mandatory reason, then
// refetches the queue.
func (c *Console) Reject(ctx context.Context, providerID int64, reason string) error {
	if result := validation.Required("reason", "Rejection reason", reason); !result.Valid {
		c.errMsg = result.First()
		return errors.NewValidationError("reason", result.First())
	}

	if err := c.admin.RejectProvider(ctx, providerID, reason); err != nil {
		c.errMsg = errors.UserMessage(err)
		return err
	}

	c.logger.Info("provider rejected", map[string]interface{}{
		"providerId": providerID,
	})
	c.loadPending(ctx, c.pendingPage)
	return nil
}
