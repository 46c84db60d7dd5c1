package materials

import (
	"fmt"
	"strconv"
	"strings"
)

// Color is a linear RGB tint with components in [0,1].
type Color struct {
	R, G, B float32
}

var (
	White = Color{1, 1, 1}
	Black = Color{0, 0, 0}
)

var namedColors = map[string]Color{
	"white":   White,
	"black":   Black,
	"red":     {1, 0, 0},
	"green":   {0, 128.0 / 255, 0},
	"lime":    {0, 1, 0},
	"blue":    {0, 0, 1},
	"yellow":  {1, 1, 0},
	"cyan":    {0, 1, 1},
	"magenta": {1, 0, 1},
	"gray":    {128.0 / 255, 128.0 / 255, 128.0 / 255},
	"grey":    {128.0 / 255, 128.0 / 255, 128.0 / 255},
}

// ParseColor accepts a CSS color name, #rgb or #rrggbb.
func ParseColor(s string) (Color, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if c, ok := namedColors[s]; ok {
		return c, nil
	}
	if !strings.HasPrefix(s, "#") {
		return Color{}, fmt.Errorf("color: unknown %q", s)
	}
	hex := s[1:]
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) != 6 {
		return Color{}, fmt.Errorf("color: bad hex %q", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return Color{}, fmt.Errorf("color: bad hex %q", s)
	}
	return Color{
		R: float32(v>>16&0xff) / 255,
		G: float32(v>>8&0xff) / 255,
		B: float32(v&0xff) / 255,
	}, nil
}

func channel(f float32) uint8 {
	f = min(max(f, 0), 1)
	return uint8(f*255 + 0.5)
}

// Hex formats the color as #rrggbb.
func (c Color) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", channel(c.R), channel(c.G), channel(c.B))
}

// RGBA returns 8-bit components with the given opacity.
func (c Color) RGBA(opacity float32) (r, g, b, a uint8) {
	return channel(c.R), channel(c.G), channel(c.B), channel(opacity)
}

func (c Color) MarshalText() ([]byte, error) {
	return []byte(c.Hex()), nil
}

func (c *Color) UnmarshalText(b []byte) error {
	v, err := ParseColor(string(b))
	if err != nil {
		return err
	}
	*c = v
	return nil
}
