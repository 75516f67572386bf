package gate

import "fmt"

const (
	lockedLabel   = "Click để xem video"
	unlockedLabel = "Xem video"
)

// Labeler picks the overlay button text for a state.
type Labeler interface {
	Label(s ClickState) string
}

// StaticLabeler shows the same call to action on every locked step.
type StaticLabeler struct{}

func (StaticLabeler) Label(s ClickState) string {
	if s.Terminal() {
		return unlockedLabel
	}
	return lockedLabel
}

// ProgressLabeler counts the final "watch" click as a step, so a phone sees
// 1/3 and 2/3 and a desktop sees 1/2.
type ProgressLabeler struct{}

func (ProgressLabeler) Label(s ClickState) string {
	if s.Terminal() {
		return unlockedLabel
	}
	count := s.Count
	if count < 0 {
		count = 0
	}
	return fmt.Sprintf("%s (%d/%d)", lockedLabel, count+1, TerminalCount(s.Device)+1)
}

func NewLabeler(progress bool) Labeler {
	if progress {
		return ProgressLabeler{}
	}
	return StaticLabeler{}
}
