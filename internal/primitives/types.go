package primitives

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"cubetea/internal/shade"
)

// PrimitiveDef is the YAML definition for a default primitive (e.g. assets/primitives/box.yaml).
// Size is used by boxes and Radius by spheres; Prefix names new instances (prefix + count).
type PrimitiveDef struct {
	Type   string     `yaml:"type"`
	Prefix string     `yaml:"prefix,omitempty"`
	Size   [3]float64 `yaml:"size,omitempty"`
	Radius float64    `yaml:"radius,omitempty"`
	Color  string     `yaml:"color,omitempty"`
}

// ParseColor reads "#rrggbb" or "r,g,b".
func ParseColor(s string) (shade.Color, error) {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "#") {
		hex := s[1:]
		if len(hex) != 6 {
			return shade.Color{}, errors.Errorf("color %q: want #rrggbb", s)
		}
		v, err := strconv.ParseUint(hex, 16, 32)
		if err != nil {
			return shade.Color{}, errors.Wrapf(err, "color %q", s)
		}
		return shade.Color{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v)}, nil
	}
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return shade.Color{}, errors.Errorf("color %q: want #rrggbb or r,g,b", s)
	}
	var ch [3]uint8
	for i, p := range parts {
		n, err := strconv.ParseUint(strings.TrimSpace(p), 10, 8)
		if err != nil {
			return shade.Color{}, errors.Wrapf(err, "color %q", s)
		}
		ch[i] = uint8(n)
	}
	return shade.Color{R: ch[0], G: ch[1], B: ch[2]}, nil
}
