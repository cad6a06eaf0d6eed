package input

import (
	"errors"
	"testing"

	"github.com/gdamore/tcell/v2"
)

func newSimScreen(t *testing.T) tcell.SimulationScreen {
	t.Helper()
	s := tcell.NewSimulationScreen("UTF-8")
	if err := s.Init(); err != nil {
		t.Fatalf("init simulation screen: %v", err)
	}
	return s
}

func TestScreenKeysTranslatesKeys(t *testing.T) {
	s := newSimScreen(t)
	defer s.Fini()
	keys := NewScreenKeys(s, nil)

	s.InjectKey(tcell.KeyRune, 'd', tcell.ModNone)
	s.InjectKey(tcell.KeyLeft, 0, tcell.ModNone)
	s.InjectKey(tcell.KeyCtrlC, 0, tcell.ModNone)

	want := []Key{Char('d'), {Code: KeyLeft}, {Code: KeyInterrupt}}
	for _, w := range want {
		k, err := keys.ReadKey()
		if err != nil {
			t.Fatalf("ReadKey: %v", err)
		}
		if k != w {
			t.Fatalf("got %v, want %v", k, w)
		}
	}
}

func TestScreenKeysMouseGoesToDevices(t *testing.T) {
	s := newSimScreen(t)
	defer s.Fini()
	q := NewDeviceQueue()
	keys := NewScreenKeys(s, q)

	s.InjectMouse(1, 1, tcell.Button1, tcell.ModNone)
	s.InjectMouse(1, 1, tcell.ButtonNone, tcell.ModNone)
	s.InjectKey(tcell.KeyRune, 'w', tcell.ModNone)

	k, err := keys.ReadKey()
	if err != nil || k != Char('w') {
		t.Fatalf("expected 'w', got %v (%v)", k, err)
	}
	got := q.Poll()
	want := []DeviceEvent{
		{Kind: DeviceConnected, Device: ScreenDevice},
		{Kind: ButtonPressed, Device: "mouse", Button: "mouse1"},
		{Kind: ButtonReleased, Device: "mouse", Button: "mouse1"},
	}
	if len(got) != len(want) {
		t.Fatalf("expected %d device events, got %+v", len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("event %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestScreenKeysAsButtons(t *testing.T) {
	s := newSimScreen(t)
	defer s.Fini()
	q := NewDeviceQueue()
	keys := NewScreenKeys(s, q)
	keys.KeysAsButtons = true
	q.Poll()

	s.InjectKey(tcell.KeyRune, 'a', tcell.ModNone)
	s.InjectKey(tcell.KeyCtrlC, 0, tcell.ModNone)

	k, err := keys.ReadKey()
	if err != nil || k.Code != KeyInterrupt {
		t.Fatalf("expected interrupt through ReadKey, got %v (%v)", k, err)
	}
	got := q.Poll()
	if len(got) != 2 || got[0].Kind != ButtonPressed || got[1].Kind != ButtonReleased ||
		got[0].Button != "a" || got[1].Button != "a" {
		t.Fatalf("expected press and release for 'a', got %+v", got)
	}

	state := NewButtonState()
	state.Begin()
	for _, ev := range got {
		state.Apply(ev)
	}
	if !state.JustPressed("a") || state.Pressed("a") {
		t.Fatal("a typed key should be an edge, not a held button")
	}
}

func TestScreenKeysClosedAfterFini(t *testing.T) {
	s := newSimScreen(t)
	q := NewDeviceQueue()
	keys := NewScreenKeys(s, q)
	s.Fini()

	if _, err := keys.ReadKey(); !errors.Is(err, ErrSourceClosed) {
		t.Fatalf("expected ErrSourceClosed, got %v", err)
	}
	got := q.Poll()
	if last := got[len(got)-1]; last.Kind != DeviceDisconnected {
		t.Fatalf("expected trailing disconnect event, got %+v", got)
	}
}
