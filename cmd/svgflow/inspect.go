package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"svgflow/internal/commands"
	"svgflow/internal/curves"
	"svgflow/internal/logger"
	"svgflow/internal/svgpath"
)

// inspect prints one row per path: id, subpaths, shapes, outline points and curve length.
func inspect(ctx context.Context, w io.Writer, src string) error {
	col, doc, err := curves.LoadPaths(ctx, src, curves.Options{})
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "%s: %gx%g, %d paths\n", src, doc.Width, doc.Height, len(doc.Paths))
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tELEMENT\tSUBPATHS\tSHAPES\tPOINTS\tLENGTH")
	for _, p := range doc.Paths {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%d\t%d\t%.2f\n", p.ID, p.Element, len(p.Subpaths), len(p.Shapes()), len(p.FirstOutline()), length(col, p))
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	for _, id := range curves.Duplicates(doc.Paths) {
		fmt.Fprintf(w, "duplicate id %q: the last path wins\n", id)
	}
	return nil
}

// length is the length of the curve stored under p's id; duplicate ids share the last one.
func length(col curves.Collection, p svgpath.VectorPath) float32 {
	c, ok := col[p.ID]
	if !ok {
		return 0
	}
	return c.Length()
}

func registerInspect(reg *commands.Registry, log *logger.Logger) {
	fs := flag.NewFlagSet("inspect", flag.ContinueOnError)
	src := fs.String("src", "", "SVG file or URL")
	reg.Register("inspect", "list path ids, point counts and lengths", fs, func([]string) error {
		if *src == "" {
			return fmt.Errorf("inspect: -src is required")
		}
		log.Logf("inspect: %s", *src)
		return inspect(context.Background(), os.Stdout, *src)
	})
}
