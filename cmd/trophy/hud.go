package main

import (
	"fmt"
	"io"
	"os"

	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/colorprofile"
	"github.com/charmbracelet/x/ansi"
	"github.com/mattn/go-runewidth"
)

var hudStyle = lipgloss.NewStyle().
	Foreground(lipgloss.Color("230")).
	Background(lipgloss.Color("235")).
	Padding(0, 1)

// hud draws the frame-rate/poly-count/scene-name overlay on the bottom row
// of the terminal, after the frame itself is composed, so it never
// interferes with §6's per-cell color-change protocol above it. It is
// wrapped in a colorprofile.Writer so the overlay degrades gracefully on a
// terminal that can't do truecolor, while the frame payload itself (an
// unconditional truecolor sequence per §6) bypasses it entirely.
type hud struct {
	w             *colorprofile.Writer
	width, height int
}

func newHUD(out io.Writer, width, height int) *hud {
	return &hud{w: colorprofile.NewWriter(out, os.Environ()), width: width, height: height}
}

func (h *hud) resize(width, height int) {
	h.width, h.height = width, height
}

func (h *hud) draw(sceneName string, fps float64, triCount int) {
	text := fmt.Sprintf("%s  %.0f fps  %d tris", sceneName, fps, triCount)
	if w := runewidth.StringWidth(text); w > h.width-2 && h.width > 2 {
		text = runewidth.Truncate(text, h.width-2, "…")
	}
	fmt.Fprint(h.w, ansi.CursorPosition(h.height, 1))
	fmt.Fprint(h.w, hudStyle.Render(text))
}
