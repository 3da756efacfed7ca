// Package digest sends periodic wishlist reminder emails. Users with an
// empty wishlist are skipped; a failure for one user never aborts the run.
package digest

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sharvari/wardrobe-backend/internal/domain"
	"github.com/sharvari/wardrobe-backend/internal/email"
	"github.com/sharvari/wardrobe-backend/internal/metrics"
	"github.com/sharvari/wardrobe-backend/internal/repository"
)

type Digest struct {
	users  repository.UserRepository
	email  email.Sender
	logger *slog.Logger
}

func New(users repository.UserRepository, emailSender email.Sender, logger *slog.Logger) *Digest {
	return &Digest{
		users:  users,
		email:  emailSender,
		logger: logger.With("component", "digest"),
	}
}

// Start registers Run on the given cron schedule and blocks until ctx is
// cancelled.
func (d *Digest) Start(ctx context.Context, schedule string) error {
	c := cron.New()
	_, err := c.AddFunc(schedule, func() {
		if err := d.Run(ctx); err != nil {
			d.logger.Error("digest run", "error", err)
		}
	})
	if err != nil {
		return fmt.Errorf("cron schedule %q: %w", schedule, err)
	}

	c.Start()
	d.logger.Info("digest scheduled", "cron", schedule)

	<-ctx.Done()
	stopCtx := c.Stop()
	<-stopCtx.Done()
	return nil
}

// Run sends one reminder email per user holding wishlist items.
func (d *Digest) Run(ctx context.Context) error {
	start := time.Now()
	defer func() {
		metrics.DigestRunDuration.Observe(time.Since(start).Seconds())
	}()

	withItems, err := d.users.ListWithWishlist(ctx)
	if err != nil {
		return fmt.Errorf("load wishlists: %w", err)
	}

	var sent, failed int
	for _, uw := range withItems {
		if len(uw.Items) == 0 {
			continue
		}
		if err := d.email.Send(ctx, uw.User.Email, reminderSubject, reminderBody(uw.User, uw.Items)); err != nil {
			d.logger.Warn("reminder email", "user_id", uw.User.ID, "error", err)
			metrics.DigestEmailsTotal.WithLabelValues("failure").Inc()
			failed++
			continue
		}
		metrics.DigestEmailsTotal.WithLabelValues("success").Inc()
		sent++
	}

	d.logger.Info("digest run complete", "sent", sent, "failed", failed)
	return nil
}

const reminderSubject = "Still thinking it over? Your wishlist is waiting"

func reminderBody(u *domain.User, items []domain.WishlistItem) string {
	var b strings.Builder
	fmt.Fprintf(&b, "<p>Hi %s,</p><p>You have %d item(s) saved:</p><ul>", u.FirstName, len(items))
	for _, item := range items {
		fmt.Fprintf(&b, "<li>%s, ₹%.2f</li>", item.Name, item.Price)
	}
	b.WriteString("</ul><p>They tend not to stay in stock forever.</p>")
	return b.String()
}
