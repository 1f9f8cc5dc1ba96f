package inkwell

import (
	"strings"
	"unicode/utf8"
)

// parseInput parses one chunk of terminal input into key events.
// Handles:
// - Runs of printable characters -> one KeyEvent{Key: KeyRune, Input: run}
// - Control characters (0x00-0x1F) -> named keys or Ctrl+letter
// - CSI sequences (\x1b[...) -> arrow keys, function keys with modifiers
// - SS3 sequences (\x1bO...) -> some function keys
// - Meta+key: \x1b + printable -> KeyRune with ModMeta
func parseInput(data []byte) []KeyEvent {
	var (
		events []KeyEvent
		run    strings.Builder
	)
	emit := func(e KeyEvent) {
		if run.Len() > 0 {
			events = append(events, KeyEvent{Key: KeyRune, Input: run.String()})
			run.Reset()
		}
		if e.Key != KeyNone {
			events = append(events, e)
		}
	}

	i := 0
	for i < len(data) {
		b := data[i]

		if b == 0x1b {
			if i+1 >= len(data) {
				emit(KeyEvent{Key: KeyEscape})
				i++
				continue
			}

			next := data[i+1]
			switch next {
			case '[':
				key, mod, consumed := parseCSISequence(data[i:])
				if consumed > 0 {
					emit(KeyEvent{Key: key, Mod: mod})
					i += consumed
					continue
				}
			case 'O':
				if i+2 < len(data) {
					if key := parseSS3(data[i+2]); key != KeyNone {
						emit(KeyEvent{Key: key})
						i += 3
						continue
					}
				}
			default:
				if next >= 0x20 && next < 0x7f {
					emit(KeyEvent{Key: KeyRune, Input: string(rune(next)), Mod: ModMeta})
					i += 2
					continue
				}
			}
			// Unknown or incomplete sequence
			emit(KeyEvent{Key: KeyEscape})
			i++
			continue
		}

		if b < 0x20 {
			emit(controlToKey(b))
			i++
			continue
		}

		// DEL is backspace on most terminals
		if b == 0x7f {
			emit(KeyEvent{Key: KeyBackspace})
			i++
			continue
		}

		r, size := utf8.DecodeRune(data[i:])
		if r == utf8.RuneError && size == 1 {
			i++
			continue
		}
		run.WriteRune(r)
		i += size
	}
	emit(KeyEvent{})

	return events
}

// controlToKey converts a control character (0x00-0x1F) to an event.
func controlToKey(b byte) KeyEvent {
	switch b {
	case 0x00: // Ctrl+Space or Ctrl+@
		return KeyEvent{Key: KeyRune, Mod: ModCtrl, Input: " "}
	case 0x08: // Ctrl+H, backspace on some terminals
		return KeyEvent{Key: KeyBackspace}
	case 0x09:
		return KeyEvent{Key: KeyTab}
	case 0x0d:
		return KeyEvent{Key: KeyEnter}
	case 0x1b:
		return KeyEvent{Key: KeyEscape}
	}
	if b >= 0x01 && b <= 0x1a {
		return KeyEvent{Key: KeyRune, Mod: ModCtrl, Input: string(rune('a' + b - 1))}
	}
	return KeyEvent{}
}

// parseCSISequence parses a CSI escape sequence starting at data[0].
// Returns the key, modifier, and number of bytes consumed.
// Returns (KeyNone, ModNone, 0) if parsing fails.
func parseCSISequence(data []byte) (Key, Modifier, int) {
	if len(data) < 3 || data[0] != 0x1b || data[1] != '[' {
		return KeyNone, ModNone, 0
	}

	var params []int
	current := 0
	hasParam := false

	for i := 2; i < len(data); i++ {
		b := data[i]
		switch {
		case b >= '0' && b <= '9':
			current = current*10 + int(b-'0')
			hasParam = true
		case b == ';':
			params = append(params, current)
			current = 0
			hasParam = false
		case b >= 0x40 && b <= 0x7e:
			if hasParam {
				params = append(params, current)
			}
			key, mod := parseCSI(params, b)
			return key, mod, i + 1
		default:
			return KeyNone, ModNone, 0
		}
	}

	// Incomplete sequence
	return KeyNone, ModNone, 0
}

var csiTilde = map[int]Key{
	1: KeyHome, 2: KeyInsert, 3: KeyDelete, 4: KeyEnd, 5: KeyPageUp, 6: KeyPageDown,
	11: KeyF1, 12: KeyF2, 13: KeyF3, 14: KeyF4, 15: KeyF5,
	17: KeyF6, 18: KeyF7, 19: KeyF8, 20: KeyF9, 21: KeyF10, 23: KeyF11, 24: KeyF12,
}

// parseCSI maps a complete CSI sequence to a key.
func parseCSI(params []int, final byte) (Key, Modifier) {
	mod := ModNone

	// xterm-style: CSI 1;mod X
	if len(params) >= 2 {
		mod = decodeModifier(params[1])
	}

	switch final {
	case '~':
		if len(params) == 0 {
			return KeyNone, ModNone
		}
		if key, ok := csiTilde[params[0]]; ok {
			return key, mod
		}
		return KeyNone, ModNone
	case 'Z':
		// Backtab
		return KeyTab, ModShift
	}
	if key := parseSS3(final); key != KeyNone {
		return key, mod
	}
	return KeyNone, ModNone
}

// parseSS3 parses the final byte shared by SS3 and short CSI sequences.
func parseSS3(b byte) Key {
	switch b {
	case 'P':
		return KeyF1
	case 'Q':
		return KeyF2
	case 'R':
		return KeyF3
	case 'S':
		return KeyF4
	case 'A':
		return KeyUp
	case 'B':
		return KeyDown
	case 'C':
		return KeyRight
	case 'D':
		return KeyLeft
	case 'H':
		return KeyHome
	case 'F':
		return KeyEnd
	}
	return KeyNone
}

// decodeModifier decodes the xterm modifier parameter:
// 1 + (shift ? 1 : 0) + (meta ? 2 : 0) + (ctrl ? 4 : 0).
func decodeModifier(param int) Modifier {
	if param <= 1 {
		return ModNone
	}

	flags := param - 1
	var mod Modifier
	if flags&1 != 0 {
		mod |= ModShift
	}
	if flags&2 != 0 {
		mod |= ModMeta
	}
	if flags&4 != 0 {
		mod |= ModCtrl
	}
	return mod
}
