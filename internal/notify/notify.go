// Package notify provides cross-platform desktop notification support.
// It uses native notification mechanisms on macOS (osascript) and Linux
// (notify-send). Notification settings live in the config package; this
// package only delivers.
package notify

import "time"

// Notifier defines the interface for sending desktop notifications.
type Notifier interface {
	// Send sends a notification with the given title and message.
	Send(title, message string) error

	// SendWithSound sends a notification with sound.
	SendWithSound(title, message string) error

	// IsSupported returns true if notifications are supported on this platform.
	IsSupported() bool
}

type noopNotifier struct{}

func (n *noopNotifier) Send(title, message string) error {
	return nil
}

func (n *noopNotifier) SendWithSound(title, message string) error {
	return nil
}

func (n *noopNotifier) IsSupported() bool {
	return false
}

// New creates a platform-specific notifier.
// Returns a no-op notifier if the platform doesn't support notifications.
func New() Notifier {
	n := newPlatformNotifier()
	if n == nil || !n.IsSupported() {
		return &noopNotifier{}
	}
	return n
}

// MilestoneTracker remembers which session milestones have already fired
// so that each one notifies at most once per session.
type MilestoneTracker struct {
	fired map[int]bool
}

// NewMilestoneTracker creates an empty tracker.
func NewMilestoneTracker() *MilestoneTracker {
	return &MilestoneTracker{fired: make(map[int]bool)}
}

// Reset clears fired milestones. Call when a new session starts.
func (m *MilestoneTracker) Reset() {
	m.fired = make(map[int]bool)
}

// Due returns the milestones (in minutes) that elapsed has crossed and that
// have not fired yet, marking them fired.
func (m *MilestoneTracker) Due(elapsed time.Duration, milestones []int) []int {
	var due []int
	mins := int(elapsed.Minutes())
	for _, milestone := range milestones {
		if milestone <= 0 || m.fired[milestone] {
			continue
		}
		if mins >= milestone {
			m.fired[milestone] = true
			due = append(due, milestone)
		}
	}
	return due
}
