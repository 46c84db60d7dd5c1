package main

import (
	"context"
	"flag"
	"fmt"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"svgflow/internal/assets"
	"svgflow/internal/commands"
	"svgflow/internal/config"
	"svgflow/internal/curves"
	"svgflow/internal/debug"
	"svgflow/internal/engineconfig"
	"svgflow/internal/env"
	"svgflow/internal/gpu"
	"svgflow/internal/graphics"
	"svgflow/internal/logger"
	"svgflow/internal/scene"
)

// loadScene reads the paths and starts decoding textures. Textures finish in the
// background; the registry's Ready channel reports when.
func loadScene(ctx context.Context, cfg config.Scene, log *logger.Logger) (*scene.Scene, *assets.Registry, error) {
	reg := assets.NewRegistry(cfg.AssetsRoot)
	go func() {
		if err := reg.Load(ctx, cfg.Textures); err != nil {
			log.Logf("assets: %v", err)
		}
	}()

	col, doc, err := curves.LoadPaths(ctx, cfg.Paths, curves.Options{EditPoint: curves.DepthByIndex(cfg.ZOffset)})
	if err != nil {
		return nil, reg, err
	}
	for _, id := range curves.Duplicates(doc.Paths) {
		log.Logf("view: duplicate path id %q, keeping the last one", id)
	}
	scn, err := scene.Build(cfg, col, log)
	if err != nil {
		return nil, reg, err
	}
	return scn, reg, nil
}

func registerView(reg *commands.Registry, log *logger.Logger) {
	fs := flag.NewFlagSet("view", flag.ContinueOnError)
	cfgPath := fs.String("config", env.Get(env.ConfigVar, config.DefaultPath), "scene config (YAML)")
	prefsPath := fs.String("prefs", env.Get(env.PrefsVar, engineconfig.PrefsPath), "viewer preferences (JSON)")

	reg.Register("view", "open the window and play the scene", fs, func([]string) error {
		cfg, err := config.Load(*cfgPath)
		if err != nil {
			return err
		}
		prefs, _ := engineconfig.Load(*prefsPath)
		log.Logf("view: config %s, paths %s", *cfgPath, cfg.Paths)
		return view(cfg, prefs, *prefsPath, log)
	})
}

func view(cfg config.Scene, prefs engineconfig.Prefs, prefsPath string, log *logger.Logger) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	scn, textures, err := loadScene(ctx, cfg, log)
	if err != nil {
		return err
	}
	dbg := debug.New()
	var (
		cache    *gpu.Cache
		composer *graphics.Composer
		start    time.Time
	)

	apply := func() {
		dbg.ShowFPS = prefs.ShowFPS
		dbg.ShowMode = prefs.ShowMode
		scn.ShowAxes = prefs.ShowAxes
		scn.Wireframe = prefs.Wireframe
		if composer != nil {
			composer.Bypass = prefs.NoPost
		}
	}

	setup := func() error {
		<-textures.Ready()
		if err := textures.Err(); err != nil {
			return fmt.Errorf("view: %w", err)
		}
		cache = gpu.NewCache(textures, log)
		scn.Attach(cache)

		mats, err := cfg.MaterialConfigs()
		if err != nil {
			return err
		}
		pass, err := cache.Material("drawing", mats["drawing"])
		if err != nil {
			return err
		}
		composer = graphics.NewComposer(cfg.Width, cfg.Height, cache, pass)
		noise := pass.Program.Textures["tNoise"]
		composer.Noise = func() rl.Texture2D {
			i := 0
			if fb, ok := textures.Flipbook(noise); ok {
				i = fb.Index(time.Since(start))
			}
			return cache.Frame(noise, i)
		}
		start = time.Now()
		apply()
		log.Logf("view: textures %v", textures.Names())
		return nil
	}

	update := func() {
		changed := true
		switch {
		case rl.IsKeyPressed(rl.KeyF1):
			prefs.ShowFPS = !prefs.ShowFPS
		case rl.IsKeyPressed(rl.KeyF2):
			prefs.ShowMode = !prefs.ShowMode
		case rl.IsKeyPressed(rl.KeyF3):
			prefs.ShowAxes = !prefs.ShowAxes
		case rl.IsKeyPressed(rl.KeyF4):
			prefs.Wireframe = !prefs.Wireframe
		case rl.IsKeyPressed(rl.KeyF5):
			prefs.NoPost = !prefs.NoPost
		default:
			changed = false
		}
		if changed {
			apply()
			if err := engineconfig.Save(prefsPath, prefs); err != nil {
				log.Logf("view: save prefs: %v", err)
			}
		}
		scn.Update(time.Now())
	}

	draw := func() {
		composer.Render(scn.Draw)
		dbg.Draw(debug.Status{Mode: scn.Follower.Mode().String(), Offset: scn.Follower.Offset(), Path: cfg.Follow})
	}

	teardown := func() {
		composer.Unload()
		cache.Unload()
	}

	return graphics.Run(graphics.Window{
		Width:   cfg.Width,
		Height:  cfg.Height,
		Title:   "svgflow",
		HighDPI: cfg.PixelDensity > 1,
	}, setup, update, draw, teardown)
}
