// Package notification provides desktop notification utilities.
package notification

import (
	"fmt"

	"github.com/gen2brain/beeep"
	"github.com/xvierd/discipline-tracker/internal/config"
	"github.com/xvierd/discipline-tracker/internal/domain"
	"github.com/xvierd/discipline-tracker/internal/ports"
)

// Title is the heading of every completion notification.
const Title = "Session complete"

// Notifier handles desktop notifications.
type Notifier struct {
	cfg    *config.NotificationConfig
	notify func(title, message string) error
}

var _ ports.Notifier = (*Notifier)(nil)

// New creates a new notifier with the given configuration.
func New(cfg *config.NotificationConfig) *Notifier {
	return &Notifier{cfg: cfg, notify: desktopNotify}
}

// Notify displays a desktop notification if enabled.
func (n *Notifier) Notify(title, message string) error {
	if !n.IsEnabled() {
		return nil
	}
	return n.notify(title, message)
}

func desktopNotify(title, message string) error {
	return beeep.Notify(title, message, "")
}

// NotifyCompletion announces the end of a phase and what comes next.
func (n *Notifier) NotifyCompletion(c domain.Completion) error {
	return n.Notify(Title, Message(c))
}

// Message is the body text for a completion.
func Message(c domain.Completion) string {
	if c.WasWork() {
		return fmt.Sprintf("Work session #%d finished. Time for a %s.", c.WorkSessions, c.Next.Label())
	}
	return fmt.Sprintf("%s over. Back to work.", c.Ended.Label())
}

// IsEnabled returns true if notifications are enabled.
func (n *Notifier) IsEnabled() bool {
	return n.cfg != nil && n.cfg.Enabled
}
