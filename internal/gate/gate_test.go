package gate

import "testing"

func TestDeviceClassForWidth(t *testing.T) {
	tests := []struct {
		width int
		want  DeviceClass
	}{
		{320, Mobile},
		{768, Mobile},
		{769, Desktop},
		{1920, Desktop},
		{0, Mobile},
	}

	for _, tt := range tests {
		if got := DeviceClassForWidth(tt.width); got != tt.want {
			t.Errorf("DeviceClassForWidth(%d) = %s, want %s", tt.width, got, tt.want)
		}
	}
}

func TestDecide_Table(t *testing.T) {
	engine := NewEngine(StaticLabeler{})
	tests := []struct {
		name        string
		state       ClickState
		showOverlay bool
		next        Action
	}{
		{"mobile 0", ClickState{0, Mobile}, true, ActionTiktok},
		{"mobile 1", ClickState{1, Mobile}, true, ActionShopee},
		{"mobile 2", ClickState{2, Mobile}, false, ActionPlay},
		{"mobile 7", ClickState{7, Mobile}, false, ActionPlay},
		{"desktop 0", ClickState{0, Desktop}, true, ActionTiktok},
		{"desktop 1", ClickState{1, Desktop}, false, ActionPlay},
		{"desktop 5", ClickState{5, Desktop}, false, ActionPlay},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := engine.Decide(tt.state)
			if d.ShowOverlay != tt.showOverlay {
				t.Errorf("expected showOverlay=%v, got %v", tt.showOverlay, d.ShowOverlay)
			}
			if d.Next != tt.next {
				t.Errorf("expected next=%s, got %s", tt.next, d.Next)
			}
		})
	}
}

func TestDecide_TerminalAlwaysPlays(t *testing.T) {
	engine := NewEngine(ProgressLabeler{})
	for _, device := range []DeviceClass{Mobile, Desktop} {
		for count := TerminalCount(device); count < TerminalCount(device)+20; count++ {
			d := engine.Decide(ClickState{Count: count, Device: device})
			if d.ShowOverlay || d.Next != ActionPlay {
				t.Fatalf("%s count %d: expected unlocked play, got %+v", device, count, d)
			}
		}
	}
}

func TestDecide_DoesNotMutateState(t *testing.T) {
	engine := NewEngine(StaticLabeler{})
	state := ClickState{Count: 1, Device: Mobile}

	first := engine.Decide(state)
	for i := 0; i < 5; i++ {
		if got := engine.Decide(state); got != first {
			t.Fatalf("decision changed between calls: %+v vs %+v", first, got)
		}
	}
	if state.Count != 1 || state.Device != Mobile {
		t.Errorf("state mutated: %+v", state)
	}
}

func TestAdvance_MobileSequence(t *testing.T) {
	engine := NewEngine(StaticLabeler{})
	state := ClickState{Device: Mobile}

	state, action := engine.Advance(state)
	if action != ActionTiktok || state.Count != 1 {
		t.Fatalf("first click: got %s count %d", action, state.Count)
	}
	if !engine.Decide(state).ShowOverlay {
		t.Error("overlay should remain after first mobile click")
	}

	state, action = engine.Advance(state)
	if action != ActionShopee || state.Count != 2 {
		t.Fatalf("second click: got %s count %d", action, state.Count)
	}
	if engine.Decide(state).ShowOverlay {
		t.Error("overlay should disappear after second mobile click")
	}

	state, action = engine.Advance(state)
	if action != ActionPlay || state.Count != 2 {
		t.Fatalf("third click: got %s count %d", action, state.Count)
	}
}

func TestAdvance_DesktopSingleClickUnlocks(t *testing.T) {
	engine := NewEngine(StaticLabeler{})

	state, action := engine.Advance(ClickState{Device: Desktop})
	if action != ActionTiktok {
		t.Fatalf("expected tiktok, got %s", action)
	}
	if engine.Decide(state).ShowOverlay {
		t.Error("overlay should disappear after the desktop click")
	}

	_, action = engine.Advance(state)
	if action == ActionShopee {
		t.Error("desktop must never be offered shopee")
	}
}

func TestAdvance_NeverDecreasesCount(t *testing.T) {
	engine := NewEngine(StaticLabeler{})
	for _, device := range []DeviceClass{Mobile, Desktop} {
		state := ClickState{Device: device}
		for i := 0; i < 6; i++ {
			next, action := engine.Advance(state)
			if next.Count < state.Count {
				t.Fatalf("%s: count decreased from %d to %d", device, state.Count, next.Count)
			}
			if action.IsNavigation() && next.Count != state.Count+1 {
				t.Fatalf("%s: navigation must increment exactly once", device)
			}
			if !action.IsNavigation() && next != state {
				t.Fatalf("%s: play must not change state", device)
			}
			state = next
		}
	}
}

func TestAdvance_NegativeCountStartsFromZero(t *testing.T) {
	engine := NewEngine(StaticLabeler{})
	state, action := engine.Advance(ClickState{Count: -3, Device: Mobile})
	if action != ActionTiktok || state.Count != 1 {
		t.Errorf("expected tiktok and count 1, got %s and %d", action, state.Count)
	}
}

func TestLabels(t *testing.T) {
	tests := []struct {
		name    string
		labeler Labeler
		state   ClickState
		want    string
	}{
		{"static locked", StaticLabeler{}, ClickState{1, Mobile}, "Click để xem video"},
		{"static unlocked", StaticLabeler{}, ClickState{1, Desktop}, "Xem video"},
		{"progress mobile 0", ProgressLabeler{}, ClickState{0, Mobile}, "Click để xem video (1/3)"},
		{"progress mobile 1", ProgressLabeler{}, ClickState{1, Mobile}, "Click để xem video (2/3)"},
		{"progress mobile unlocked", ProgressLabeler{}, ClickState{2, Mobile}, "Xem video"},
		{"progress desktop 0", ProgressLabeler{}, ClickState{0, Desktop}, "Click để xem video (1/2)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.labeler.Label(tt.state); got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestNewLabeler(t *testing.T) {
	if _, ok := NewLabeler(true).(ProgressLabeler); !ok {
		t.Error("expected ProgressLabeler when progress is enabled")
	}
	if _, ok := NewLabeler(false).(StaticLabeler); !ok {
		t.Error("expected StaticLabeler when progress is disabled")
	}
}
