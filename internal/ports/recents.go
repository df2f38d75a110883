package ports

import (
	"context"
	"time"
)

// RecentTitle is a previously submitted title lookup
type RecentTitle struct {
	Title       string
	SubmittedAt time.Time
}

// RecentTitles remembers the titles a user asked for
type RecentTitles interface {
	Remember(ctx context.Context, title string) error
	// Last returns the most recent title, or "" when none was recorded
	Last(ctx context.Context) (string, error)
	List(ctx context.Context, limit int) ([]RecentTitle, error)
	Close() error
}
