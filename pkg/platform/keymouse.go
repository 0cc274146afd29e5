// pkg/platform/keymouse.go
// Copyright(c) 2024 gpxview contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package platform

// Key is a backend-independent identifier for the keys that gpxview
// responds to.
type Key int

const (
	KeyNone Key = iota
	KeyUpArrow
	KeyDownArrow
	KeyLeftArrow
	KeyRightArrow
	KeyEscape
	KeyA // KeyA through KeyZ are contiguous
	KeyB
	KeyC
	KeyD
	KeyE
	KeyF
	KeyG
	KeyH
	KeyI
	KeyJ
	KeyK
	KeyL
	KeyM
	KeyN
	KeyO
	KeyP
	KeyQ
	KeyR
	KeyS
	KeyT
	KeyU
	KeyV
	KeyW
	KeyX
	KeyY
	KeyZ
)

// KeyForRune returns the Key for an ASCII letter, ignoring case, or
// KeyNone.
func KeyForRune(r rune) Key {
	switch {
	case r >= 'a' && r <= 'z':
		return KeyA + Key(r-'a')
	case r >= 'A' && r <= 'Z':
		return KeyA + Key(r-'A')
	default:
		return KeyNone
	}
}

func (k Key) String() string {
	switch {
	case k == KeyUpArrow:
		return "Up"
	case k == KeyDownArrow:
		return "Down"
	case k == KeyLeftArrow:
		return "Left"
	case k == KeyRightArrow:
		return "Right"
	case k == KeyEscape:
		return "Escape"
	case k >= KeyA && k <= KeyZ:
		return string(rune('A' + int(k-KeyA)))
	default:
		return "None"
	}
}

type MouseButton int

const (
	MouseButtonPrimary MouseButton = iota
	MouseButtonSecondary
	MouseButtonTertiary
	MouseButtonCount
)
