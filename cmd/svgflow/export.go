package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"

	"svgflow/internal/commands"
	"svgflow/internal/curves"
	"svgflow/internal/logger"
	"svgflow/internal/tube"
)

type exportCurve struct {
	ID            string           `json:"id"`
	Length        float32          `json:"length"`
	ControlPoints []curves.Point3D `json:"control_points"`
}

type exportFile struct {
	Source string        `json:"source"`
	Width  float32       `json:"width"`
	Height float32       `json:"height"`
	Curves []exportCurve `json:"curves"`
	Tubes  []*tube.Mesh  `json:"tubes"`
}

type exportOptions struct {
	src        string
	zOffset    float64
	lineWidth  float64
	viewHeight float64
	resolution int
}

// export builds every curve and tube of the source and returns them as one document.
func export(ctx context.Context, opts exportOptions, log *logger.Logger) (*exportFile, error) {
	col, doc, err := curves.LoadPaths(ctx, opts.src, curves.Options{EditPoint: curves.DepthByIndex(float32(opts.zOffset))})
	if err != nil {
		return nil, err
	}
	for _, id := range curves.Duplicates(doc.Paths) {
		log.Logf("export: duplicate path id %q, keeping the last one", id)
	}
	style, err := tube.DefaultStyle().Merge(tube.Style{
		LineWidth:      float32(opts.lineWidth),
		ViewportHeight: float32(opts.viewHeight),
		Resolution:     opts.resolution,
	})
	if err != nil {
		return nil, err
	}
	out := &exportFile{Source: opts.src, Width: doc.Width, Height: doc.Height}
	for _, id := range col.IDs() {
		c := col[id]
		m, err := tube.Build(c, style)
		if err != nil {
			return nil, err
		}
		out.Curves = append(out.Curves, exportCurve{ID: id, Length: c.Length(), ControlPoints: c.ControlPoints()})
		out.Tubes = append(out.Tubes, m)
	}
	log.Logf("export: %s: %d curves", opts.src, len(out.Curves))
	return out, nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func registerExport(reg *commands.Registry, log *logger.Logger) {
	fs := flag.NewFlagSet("export", flag.ContinueOnError)
	var opts exportOptions
	fs.StringVar(&opts.src, "src", "", "SVG file or URL")
	out := fs.String("out", "-", "output JSON file, - for stdout")
	fs.Float64Var(&opts.zOffset, "z", 0, "depth step per point")
	fs.Float64Var(&opts.lineWidth, "width", 0, "tube line width in pixels (default 80)")
	fs.Float64Var(&opts.viewHeight, "height", 0, "viewport height in pixels (default 1080)")
	fs.IntVar(&opts.resolution, "resolution", 0, "arc-length segments per tube (default: curve divisions)")

	reg.Register("export", "write curves and tube buffers as JSON", fs, func([]string) error {
		if opts.src == "" {
			return fmt.Errorf("export: -src is required")
		}
		doc, err := export(context.Background(), opts, log)
		if err != nil {
			return err
		}
		if *out == "-" {
			return writeJSON(os.Stdout, doc)
		}
		f, err := os.Create(*out)
		if err != nil {
			return err
		}
		if err := writeJSON(f, doc); err != nil {
			f.Close()
			return err
		}
		return f.Close()
	})
}
