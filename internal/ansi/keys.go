package ansi

// Key is a logical key decoded from raw terminal input
type Key int

// Keys recognised by ParseKey. KeyNone means the data is content to insert.
const (
	KeyNone Key = iota
	KeyEnter
	KeyEscape
	KeyBackspace
	KeyTab
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyDelete
)

var keyNames = map[Key]string{
	KeyNone:      "none",
	KeyEnter:     "enter",
	KeyEscape:    "escape",
	KeyBackspace: "backspace",
	KeyTab:       "tab",
	KeyUp:        "up",
	KeyDown:      "down",
	KeyLeft:      "left",
	KeyRight:     "right",
	KeyDelete:    "delete",
}

func (k Key) String() string {
	if name, ok := keyNames[k]; ok {
		return name
	}
	return "unknown"
}

// ParseKey classifies one keypress worth of raw data. Only the leading byte is
// inspected, plus a two byte lookahead after ESC.
func ParseKey(data string) Key {
	if data == "" {
		return KeyNone
	}
	switch data[0] {
	case '\r':
		return KeyEnter
	case 0x1b:
		if len(data) < 3 {
			return KeyEscape
		}
		switch data[1:3] {
		case "[A":
			return KeyUp
		case "[B":
			return KeyDown
		case "[C":
			return KeyRight
		case "[D":
			return KeyLeft
		case "[3":
			return KeyDelete
		}
		return KeyEscape
	case 0x7f:
		return KeyBackspace
	case '\t':
		return KeyTab
	}
	return KeyNone
}
