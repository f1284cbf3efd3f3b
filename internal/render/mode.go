package render

import (
	"strings"

	"github.com/pkg/errors"
)

// Mode selects how the editor draws the scene.
type Mode int

const (
	Wireframe Mode = iota
	Raytrace
)

func (m Mode) String() string {
	if m == Raytrace {
		return "raytrace"
	}
	return "wireframe"
}

// ParseMode accepts "wireframe"/"frame" and "raytrace"/"ray", case-insensitively.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "wireframe", "frame":
		return Wireframe, nil
	case "raytrace", "ray":
		return Raytrace, nil
	}
	return Wireframe, errors.Errorf("unknown render mode %q", s)
}
