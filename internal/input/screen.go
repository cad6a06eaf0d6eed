package input

import "github.com/gdamore/tcell/v2"

// ScreenDevice is the device name used for the terminal behind a tcell screen.
const ScreenDevice = "terminal"

var mouseButtons = [...]struct {
	mask tcell.ButtonMask
	name Button
}{
	{tcell.Button1, "mouse1"},
	{tcell.Button2, "mouse2"},
	{tcell.Button3, "mouse3"},
}

// ScreenKeys reads keys from a tcell screen. ReadKey blocks in PollEvent, so
// it is meant to run on the Bridge's reader goroutine. Mouse buttons and
// connection changes go to the device queue instead of the key stream.
type ScreenKeys struct {
	screen  tcell.Screen
	devices *DeviceQueue
	mouse   tcell.ButtonMask

	// KeysAsButtons routes key presses to the device queue as a press
	// followed by a release of the same button.
	// Interrupt always goes through ReadKey so the loop can still be stopped.
	KeysAsButtons bool
}

// NewScreenKeys wraps screen and reports the terminal as connected.
// devices may be nil when device events are not wanted.
func NewScreenKeys(screen tcell.Screen, devices *DeviceQueue) *ScreenKeys {
	s := &ScreenKeys{screen: screen, devices: devices}
	s.push(DeviceEvent{Kind: DeviceConnected, Device: ScreenDevice})
	return s
}

// ReadKey blocks until the screen delivers a key. It returns ErrSourceClosed
// once the screen has been finalized.
func (s *ScreenKeys) ReadKey() (Key, error) {
	for {
		switch ev := s.screen.PollEvent().(type) {
		case nil:
			s.push(DeviceEvent{Kind: DeviceDisconnected, Device: ScreenDevice})
			return Key{}, ErrSourceClosed
		case *tcell.EventResize:
			s.screen.Sync()
		case *tcell.EventMouse:
			s.mouseEdges(ev.Buttons())
		case *tcell.EventKey:
			key := translateKey(ev)
			if s.KeysAsButtons && s.devices != nil && key.Code != KeyInterrupt {
				// Terminals report no key-up, so each key is a press and an
				// immediate release: an edge, never a held button.
				b := KeyButton(key)
				s.push(DeviceEvent{Kind: ButtonPressed, Device: ScreenDevice, Button: b})
				s.push(DeviceEvent{Kind: ButtonReleased, Device: ScreenDevice, Button: b})
				continue
			}
			return key, nil
		}
	}
}

func (s *ScreenKeys) mouseEdges(buttons tcell.ButtonMask) {
	for _, b := range mouseButtons {
		now, was := buttons&b.mask != 0, s.mouse&b.mask != 0
		switch {
		case now && !was:
			s.push(DeviceEvent{Kind: ButtonPressed, Device: "mouse", Button: b.name})
		case was && !now:
			s.push(DeviceEvent{Kind: ButtonReleased, Device: "mouse", Button: b.name})
		}
	}
	s.mouse = buttons
}

func (s *ScreenKeys) push(ev DeviceEvent) {
	if s.devices != nil {
		s.devices.Push(ev)
	}
}

func translateKey(ev *tcell.EventKey) Key {
	switch ev.Key() {
	case tcell.KeyRune:
		if r := ev.Rune(); ev.Modifiers()&tcell.ModCtrl != 0 && (r == 'c' || r == 'C') {
			return Key{Code: KeyInterrupt}
		}
		return Char(ev.Rune())
	case tcell.KeyUp:
		return Key{Code: KeyUp}
	case tcell.KeyDown:
		return Key{Code: KeyDown}
	case tcell.KeyLeft:
		return Key{Code: KeyLeft}
	case tcell.KeyRight:
		return Key{Code: KeyRight}
	case tcell.KeyEnter:
		return Key{Code: KeyEnter}
	case tcell.KeyEscape:
		return Key{Code: KeyEscape}
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		return Key{Code: KeyBackspace}
	case tcell.KeyTab:
		return Key{Code: KeyTab}
	case tcell.KeyCtrlC:
		return Key{Code: KeyInterrupt}
	}
	return Key{Code: KeyUnknown}
}

// KeyButton names the button a key maps to in ButtonState.
func KeyButton(k Key) Button {
	if k.Code == KeyRune {
		return Button(string(k.Rune))
	}
	return Button(k.String())
}
