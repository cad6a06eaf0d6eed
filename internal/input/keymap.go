package input

// Movement maps a key to a one-cell step. ok is false for keys that do not
// move the player.
func Movement(k Key) (dx, dy int, ok bool) {
	switch k.Code {
	case KeyUp:
		return 0, -1, true
	case KeyDown:
		return 0, 1, true
	case KeyLeft:
		return -1, 0, true
	case KeyRight:
		return 1, 0, true
	case KeyRune:
		return runeMovement(k.Rune)
	}
	return 0, 0, false
}

func runeMovement(r rune) (dx, dy int, ok bool) {
	switch r {
	case 'a', 'h':
		return -1, 0, true
	case 'd', 'l':
		return 1, 0, true
	case 'w', 'k':
		return 0, -1, true
	case 's', 'j':
		return 0, 1, true
	}
	return 0, 0, false
}
