package gate

// MobileMaxWidth is the widest viewport still treated as a phone.
const MobileMaxWidth = 768

type DeviceClass string

const (
	Mobile  DeviceClass = "mobile"
	Desktop DeviceClass = "desktop"
)

// DeviceClassForWidth is recomputed from the live viewport on every request
// and never stored alongside the click count.
func DeviceClassForWidth(width int) DeviceClass {
	if width <= MobileMaxWidth {
		return Mobile
	}
	return Desktop
}

type Action string

const (
	ActionTiktok Action = "tiktok"
	ActionShopee Action = "shopee"
	ActionPlay   Action = "play"
)

// IsNavigation reports whether the action opens an external link.
func (a Action) IsNavigation() bool {
	return a == ActionTiktok || a == ActionShopee
}

type ClickState struct {
	Count  int
	Device DeviceClass
}

type Decision struct {
	ShowOverlay bool
	Next        Action
	Label       string
}

// TerminalCount is the click count at which the videos unlock.
func TerminalCount(device DeviceClass) int {
	if device == Mobile {
		return 2
	}
	return 1
}

func (s ClickState) Terminal() bool {
	return s.Count >= TerminalCount(s.Device)
}

func nextAction(s ClickState) Action {
	switch {
	case s.Terminal():
		return ActionPlay
	case s.Count <= 0:
		return ActionTiktok
	default:
		return ActionShopee
	}
}

// Engine maps click state to what the visitor sees. It holds no state of its
// own; the Labeler only chooses the overlay button text.
type Engine struct {
	labeler Labeler
}

func NewEngine(labeler Labeler) *Engine {
	return &Engine{labeler: labeler}
}

func (e *Engine) Decide(s ClickState) Decision {
	return Decision{
		ShowOverlay: !s.Terminal(),
		Next:        nextAction(s),
		Label:       e.labeler.Label(s),
	}
}

// Advance applies one overlay click. A non-terminal state moves forward by
// exactly one and yields the link to open; a terminal state is returned as-is
// with ActionPlay.
func (e *Engine) Advance(s ClickState) (ClickState, Action) {
	action := nextAction(s)
	if action == ActionPlay {
		return s, ActionPlay
	}
	count := s.Count
	if count < 0 {
		count = 0
	}
	return ClickState{Count: count + 1, Device: s.Device}, action
}
