package domain

import "context"

// Fetcher retrieves remote resources for the downloaders
type Fetcher interface {
	// Fetch returns the body of url; non-2xx statuses are errors
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// Notifier delivers desktop notifications about finished tasks
type Notifier interface {
	NotifyCompleted(title, message string)
	NotifyFailed(title, message string)
}
