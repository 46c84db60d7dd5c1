package assets

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"svgflow/internal/archive"
	"svgflow/internal/fetch"
	"svgflow/internal/materials"
	"svgflow/internal/noise"
)

// Entry is one texture to load. Path is a file or URL. For flipbooks it is a local
// directory of frames or a .zip archive of them (local or remote), played in name order.
// An entry with Noise set is generated instead of loaded and ignores Path.
type Entry struct {
	Name     string         `yaml:"name" json:"name"`
	Path     string         `yaml:"path,omitempty" json:"path,omitempty"`
	Flip     bool           `yaml:"flip,omitempty" json:"flip,omitempty"`
	Flipbook bool           `yaml:"flipbook,omitempty" json:"flipbook,omitempty"`
	FPS      float32        `yaml:"fps,omitempty" json:"fps,omitempty"`
	Noise    *noise.Options `yaml:"noise,omitempty" json:"noise,omitempty"`
}

// Manifest lists the textures a scene needs.
type Manifest []Entry

// DefaultFPS is the flipbook rate when an entry does not set one.
const DefaultFPS = 24

// Flipbook is an animated texture made of still frames.
type Flipbook struct {
	Frames []image.Image
	FPS    float32
}

// Index is the frame shown after elapsed time; playback loops.
func (f *Flipbook) Index(elapsed time.Duration) int {
	if len(f.Frames) == 0 {
		return 0
	}
	fps := f.FPS
	if fps <= 0 {
		fps = DefaultFPS
	}
	i := int(elapsed.Seconds() * float64(fps))
	return max(i, 0) % len(f.Frames)
}

// Frame is the image shown after elapsed time.
func (f *Flipbook) Frame(elapsed time.Duration) image.Image {
	if len(f.Frames) == 0 {
		return nil
	}
	return f.Frames[f.Index(elapsed)]
}

// Registry holds every decoded texture of a scene. It is filled once by Load; Ready closes
// when loading has finished, successfully or not.
type Registry struct {
	root string

	mu        sync.RWMutex
	images    map[string]image.Image
	flipbooks map[string]*Flipbook
	err       error

	started bool
	ready   chan struct{}
}

// NewRegistry returns an empty registry resolving relative paths against root. It always
// holds a 1x1 white image under materials.WhiteTexture.
func NewRegistry(root string) *Registry {
	white := image.NewRGBA(image.Rect(0, 0, 1, 1))
	white.Set(0, 0, color.White)
	return &Registry{
		root:      root,
		images:    map[string]image.Image{materials.WhiteTexture: white},
		flipbooks: map[string]*Flipbook{},
		ready:     make(chan struct{}),
	}
}

// Load decodes every entry concurrently. It may be called once; the first error cancels
// the remaining work and is also reported by Err.
func (r *Registry) Load(ctx context.Context, m Manifest) error {
	r.mu.Lock()
	if r.started {
		r.mu.Unlock()
		return errors.New("assets: registry already loaded")
	}
	r.started = true
	r.mu.Unlock()

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())
	for _, e := range m {
		g.Go(func() error {
			if e.Noise != nil {
				img := noise.Image(*e.Noise)
				r.mu.Lock()
				r.images[e.Name] = img
				r.mu.Unlock()
				return nil
			}
			if e.Flipbook {
				fb, err := r.loadFlipbook(ctx, e)
				if err != nil {
					return fmt.Errorf("assets: %s: %w", e.Name, err)
				}
				r.mu.Lock()
				r.flipbooks[e.Name] = fb
				r.mu.Unlock()
				return nil
			}
			img, err := loadImage(ctx, r.resolve(e.Path), e.Flip)
			if err != nil {
				return fmt.Errorf("assets: %s: %w", e.Name, err)
			}
			r.mu.Lock()
			r.images[e.Name] = img
			r.mu.Unlock()
			return nil
		})
	}
	err := g.Wait()

	r.mu.Lock()
	r.err = err
	r.mu.Unlock()
	close(r.ready)
	return err
}

func (r *Registry) resolve(path string) string {
	if fetch.IsRemote(path) || filepath.IsAbs(path) || r.root == "" {
		return path
	}
	return filepath.Join(r.root, path)
}

func loadImage(ctx context.Context, src string, flip bool) (image.Image, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := fetch.Get(ctx, src)
	if err != nil {
		return nil, err
	}
	return Decode(data, flip)
}

func (r *Registry) loadFlipbook(ctx context.Context, e Entry) (*Flipbook, error) {
	src := r.resolve(e.Path)
	if archive.IsZip(src) {
		return loadZipFlipbook(ctx, src, e)
	}
	if fetch.IsRemote(src) {
		return nil, fmt.Errorf("flipbook %s: remote frames must be a .zip archive", src)
	}
	entries, err := os.ReadDir(src)
	if err != nil {
		return nil, err
	}
	var names []string
	for _, de := range entries {
		if !de.IsDir() && IsImage(de.Name()) {
			names = append(names, de.Name())
		}
	}
	if len(names) == 0 {
		return nil, fmt.Errorf("flipbook %s: no frames", src)
	}
	sort.Strings(names)
	fb := &Flipbook{Frames: make([]image.Image, len(names)), FPS: e.FPS}
	for i, n := range names {
		img, err := loadImage(ctx, filepath.Join(src, n), e.Flip)
		if err != nil {
			return nil, fmt.Errorf("frame %s: %w", n, err)
		}
		fb.Frames[i] = img
	}
	return fb, nil
}

func loadZipFlipbook(ctx context.Context, src string, e Entry) (*Flipbook, error) {
	data, err := fetch.Get(ctx, src)
	if err != nil {
		return nil, err
	}
	files, err := archive.ReadFiles(data, IsImage)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("flipbook %s: no frames", src)
	}
	fb := &Flipbook{Frames: make([]image.Image, len(files)), FPS: e.FPS}
	for i, f := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		img, err := Decode(f.Data, e.Flip)
		if err != nil {
			return nil, fmt.Errorf("frame %s: %w", f.Name, err)
		}
		fb.Frames[i] = img
	}
	return fb, nil
}

// Ready is closed once Load returns.
func (r *Registry) Ready() <-chan struct{} { return r.ready }

// Err is the outcome of Load. It is nil until Ready is closed.
func (r *Registry) Err() error {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.err
}

// Image returns a still texture by name.
func (r *Registry) Image(name string) (image.Image, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	img, ok := r.images[name]
	return img, ok
}

// Flipbook returns an animated texture by name.
func (r *Registry) Flipbook(name string) (*Flipbook, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	fb, ok := r.flipbooks[name]
	return fb, ok
}

// Names lists every still and animated texture, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, 0, len(r.images)+len(r.flipbooks))
	for n := range r.images {
		out = append(out, n)
	}
	for n := range r.flipbooks {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}
