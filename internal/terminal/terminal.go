package terminal

import (
	"unicode/utf8"

	rl "github.com/gen2brain/raylib-go/raylib"
)

const (
	BarHeight        = 40
	prompt           = "> "
	fontSize         = 20
	padding          = 8
	maxLinesOnScreen = 14
	lineHeight       = fontSize + 4
	maxLineLen       = 200
)

var (
	barColor    = rl.NewColor(40, 40, 40, 255)
	lineColor   = rl.NewColor(80, 80, 80, 255)
	historyBg   = rl.NewColor(24, 24, 24, 240)
	historyText = rl.LightGray
)

// Terminal is the console bar at the bottom of the viewer. TAB shows and hides it. While open
// it owns the keyboard: typed lines go to Exec and the history comes from Lines.
type Terminal struct {
	exec     func(line string) error
	lines    func() []string
	inputBuf string
	open     bool
}

// New returns a closed console that runs submitted lines with exec and shows lines() above
// the input bar.
func New(exec func(line string) error, lines func() []string) *Terminal {
	return &Terminal{exec: exec, lines: lines}
}

// IsOpen reports whether the console is visible and capturing input.
func (t *Terminal) IsOpen() bool {
	return t.open
}

// Input returns the line being typed.
func (t *Terminal) Input() string {
	return t.inputBuf
}

// Update handles TAB, typing, paste, backspace and enter. It returns true when a line was
// submitted, so the caller knows the scene may have changed. Call once per frame.
func (t *Terminal) Update() bool {
	if rl.IsKeyPressed(rl.KeyTab) {
		t.open = !t.open
		return false
	}
	if !t.open {
		return false
	}
	if rl.IsKeyPressed(rl.KeyV) && (rl.IsKeyDown(rl.KeyLeftControl) || rl.IsKeyDown(rl.KeyRightControl) || rl.IsKeyDown(rl.KeyLeftSuper) || rl.IsKeyDown(rl.KeyRightSuper)) {
		t.insert(rl.GetClipboardText())
	} else {
		for c := rl.GetCharPressed(); c != 0; c = rl.GetCharPressed() {
			t.insert(string(rune(c)))
		}
	}
	if rl.IsKeyPressed(rl.KeyBackspace) || rl.IsKeyPressedRepeat(rl.KeyBackspace) {
		t.backspace()
	}
	if rl.IsKeyPressed(rl.KeyEnter) || rl.IsKeyPressed(rl.KeyKpEnter) {
		return t.submit()
	}
	return false
}

func (t *Terminal) insert(s string) {
	t.inputBuf += s
}

func (t *Terminal) backspace() {
	if t.inputBuf == "" {
		return
	}
	_, size := utf8.DecodeLastRuneInString(t.inputBuf)
	t.inputBuf = t.inputBuf[:len(t.inputBuf)-size]
}

// submit runs the input line. Errors are already logged by exec, so they only end up in the
// history.
func (t *Terminal) submit() bool {
	if t.inputBuf == "" {
		return false
	}
	line := t.inputBuf
	t.inputBuf = ""
	_ = t.exec(line)
	return true
}

// Visible returns the history lines that fit above the bar, each cut to a drawable length.
func Visible(lines []string, n int) []string {
	start := 0
	if len(lines) > n {
		start = len(lines) - n
	}
	out := make([]string, 0, len(lines)-start)
	for _, l := range lines[start:] {
		if len(l) > maxLineLen {
			l = l[:maxLineLen-3] + "..."
		}
		out = append(out, l)
	}
	return out
}

// Draw draws the input bar and the recent history when open.
func (t *Terminal) Draw() {
	if !t.open {
		return
	}
	screenW := int32(rl.GetScreenWidth())
	barY := int32(rl.GetScreenHeight()) - BarHeight

	chatHeight := int32(maxLinesOnScreen * lineHeight)
	chatY := barY - chatHeight
	if chatY < 0 {
		chatHeight, chatY = barY, 0
	}
	if chatHeight > 0 {
		rl.DrawRectangle(0, chatY, screenW, chatHeight, historyBg)
	}
	for i, line := range Visible(t.lines(), maxLinesOnScreen) {
		rl.DrawText(line, padding, chatY+int32(i*lineHeight)+padding, fontSize, historyText)
	}

	rl.DrawRectangle(0, barY, screenW, BarHeight, barColor)
	rl.DrawRectangle(0, barY, screenW, 1, lineColor)
	rl.DrawText(prompt+t.inputBuf+"|", padding, barY+padding, fontSize, rl.White)
}
