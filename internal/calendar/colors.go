package calendar

import (
	"fmt"
	"strings"
	"sync"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/julianstephens/coursecal/internal/constants"
)

// ColorAssigner hands out palette colors to course codes on first sight and
// remembers them for its own lifetime. It is safe for concurrent use.
type ColorAssigner struct {
	mu       sync.Mutex
	palette  []string
	assigned map[string]string
}

// NewColorAssigner creates an assigner over palette. An empty palette falls
// back to constants.DefaultPalette.
func NewColorAssigner(palette []string) *ColorAssigner {
	if len(palette) == 0 {
		palette = constants.DefaultPalette
	}
	p := make([]string, len(palette))
	copy(p, palette)
	return &ColorAssigner{
		palette:  p,
		assigned: make(map[string]string),
	}
}

// ColorFor returns the color for code, assigning the next palette entry
// (wrapping around) the first time code is seen.
func (a *ColorAssigner) ColorFor(code string) string {
	a.mu.Lock()
	defer a.mu.Unlock()

	if c, ok := a.assigned[code]; ok {
		return c
	}
	c := a.palette[len(a.assigned)%len(a.palette)]
	a.assigned[code] = c
	return c
}

// Len returns how many codes have been assigned a color.
func (a *ColorAssigner) Len() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.assigned)
}

// Reset forgets every assignment.
func (a *ColorAssigner) Reset() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.assigned = make(map[string]string)
}

// Palette returns a copy of the palette in assignment order.
func (a *ColorAssigner) Palette() []string {
	out := make([]string, len(a.palette))
	copy(out, a.palette)
	return out
}

// ParsePalette checks that every entry is a hex color and returns them in
// lowercase "#rrggbb" form. Short forms like "#abc" are expanded.
func ParsePalette(entries []string) ([]string, error) {
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		e = strings.TrimSpace(e)
		if len(e) == 4 && e[0] == '#' {
			e = "#" + strings.Repeat(e[1:2], 2) + strings.Repeat(e[2:3], 2) + strings.Repeat(e[3:4], 2)
		}
		if len(e) != 7 {
			return nil, fmt.Errorf("invalid palette color %q: expected #rrggbb", e)
		}
		c, err := colorful.Hex(e)
		if err != nil {
			return nil, fmt.Errorf("invalid palette color %q: %w", e, err)
		}
		out = append(out, c.Hex())
	}
	return out, nil
}
