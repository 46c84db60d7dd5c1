package noise

import (
	"image"
	"image/color"
	"time"

	"github.com/chewxy/math32"
)

// Options controls procedural noise texture generation.
// Width/Height are in pixels. Seed == 0 uses a time-based seed.
// Octaves, Frequency, Lacunarity and Gain control the fractal noise shape; Frequency is in
// lattice cells per pixel.
type Options struct {
	Width  int   `yaml:"width" json:"width"`
	Height int   `yaml:"height" json:"height"`
	Seed   int64 `yaml:"seed,omitempty" json:"seed,omitempty"`

	Octaves    int     `yaml:"octaves,omitempty" json:"octaves,omitempty"`
	Frequency  float32 `yaml:"frequency,omitempty" json:"frequency,omitempty"`
	Lacunarity float32 `yaml:"lacunarity,omitempty" json:"lacunarity,omitempty"`
	Gain       float32 `yaml:"gain,omitempty" json:"gain,omitempty"`
}

// DefaultOptions returns a 256x256 texture with soft, medium-scale grain.
func DefaultOptions() Options {
	return Options{
		Width:      256,
		Height:     256,
		Octaves:    4,
		Frequency:  1.0 / 32,
		Lacunarity: 2,
		Gain:       0.5,
	}
}

func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.Width <= 0 {
		o.Width = d.Width
	}
	if o.Height <= 0 {
		o.Height = d.Height
	}
	if o.Octaves <= 0 {
		o.Octaves = d.Octaves
	}
	if o.Frequency <= 0 {
		o.Frequency = d.Frequency
	}
	if o.Lacunarity <= 0 {
		o.Lacunarity = d.Lacunarity
	}
	if o.Gain <= 0 {
		o.Gain = d.Gain
	}
	if o.Seed == 0 {
		o.Seed = time.Now().UnixNano()
	}
	return o
}

// Image renders an opaque noise texture. Red, green and blue are independent noise fields,
// so a distortion pass sampling two channels gets uncorrelated x and y offsets.
func Image(opts Options) *image.RGBA {
	opts = opts.withDefaults()
	img := image.NewRGBA(image.Rect(0, 0, opts.Width, opts.Height))
	for y := 0; y < opts.Height; y++ {
		for x := 0; x < opts.Width; x++ {
			fx := float32(x) * opts.Frequency
			fy := float32(y) * opts.Frequency
			var c [3]uint8
			for ch := range c {
				n := Fractal(fx, fy, opts.Seed+int64(ch)*101, opts.Octaves, opts.Lacunarity, opts.Gain)
				c[ch] = uint8(min(max(n, 0), 1)*255 + 0.5)
			}
			img.SetRGBA(x, y, color.RGBA{c[0], c[1], c[2], 255})
		}
	}
	return img
}

// Fractal sums octaves of value noise, normalized back into [0,1].
func Fractal(x, y float32, seed int64, octaves int, lacunarity, gain float32) float32 {
	var sum, maxAmp float32
	amplitude := float32(1)
	freq := float32(1)
	for i := 0; i < octaves; i++ {
		sum += Value(x*freq, y*freq, int32(seed)+int32(i)) * amplitude
		maxAmp += amplitude
		amplitude *= gain
		freq *= lacunarity
	}
	if maxAmp == 0 {
		return 0
	}
	return sum / maxAmp
}

// Value is smooth value noise in [0,1] on an integer lattice.
func Value(x, y float32, seed int32) float32 {
	x0 := int32(math32.Floor(x))
	y0 := int32(math32.Floor(y))
	sx := smoothStep(x - float32(x0))
	sy := smoothStep(y - float32(y0))

	v00 := hash2D(x0, y0, seed)
	v10 := hash2D(x0+1, y0, seed)
	v01 := hash2D(x0, y0+1, seed)
	v11 := hash2D(x0+1, y0+1, seed)
	return lerp(lerp(v00, v10, sx), lerp(v01, v11, sx), sy)
}

// hash2D maps lattice coordinates to a deterministic value in [0,1].
func hash2D(x, y, seed int32) float32 {
	n := x*374761393 + y*668265263 + seed*362437
	n = (n ^ (n >> 13)) * 1274126177
	n = n ^ (n >> 16)
	const invMaxInt = 1.0 / 2147483647.0
	return float32(n&0x7fffffff) * float32(invMaxInt)
}

func lerp(a, b, t float32) float32 {
	return a + (b-a)*t
}

// smoothStep is cubic easing: 3t^2 - 2t^3.
func smoothStep(t float32) float32 {
	if t <= 0 {
		return 0
	}
	if t >= 1 {
		return 1
	}
	return t * t * (3 - 2*t)
}
