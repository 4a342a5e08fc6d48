package domain

import "context"

// Notifier sends operational notifications to administrators
type Notifier interface {
	Notify(ctx context.Context, message string) error
}
