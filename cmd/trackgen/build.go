package main

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"os"

	"honnef.co/go/track"
	"honnef.co/go/track/preview"
	"honnef.co/go/track/trackfile"
)

// generate loads the document, builds the track and writes all requested
// outputs.
func generate(o *options, logger *slog.Logger) error {
	doc, err := trackfile.Load(o.in)
	if err != nil {
		return err
	}
	p, err := doc.NewPath()
	if err != nil {
		return fmt.Errorf("%s: %w", o.in, err)
	}
	if o.set["closed"] {
		p.SetClosed(o.closed)
	}
	if o.set["auto"] {
		p.SetAutoSetControlPoints(o.auto)
	}

	tr, err := track.Build(p, o.overrideSettings(doc.TrackSettings()))
	if err != nil {
		return err
	}

	if o.svg != "" {
		err := writeFile(o.svg, func(w io.Writer) error {
			return track.WriteSVGDocument(w, p, tr, track.SVGOptions{MaxPrecision: 4})
		})
		if err != nil {
			return err
		}
	}
	if o.obj != "" {
		if err := writeFile(o.obj, tr.Mesh.WriteOBJ); err != nil {
			return err
		}
	}
	if o.rails != "" {
		err := writeFile(o.rails, func(w io.Writer) error {
			return writeRails(w, tr.Rails)
		})
		if err != nil {
			return err
		}
	}
	if o.png != "" {
		opts := preview.DefaultOptions()
		opts.Width, opts.Height = o.size, o.size
		opts.Supersample = 2
		img, err := preview.Render(tr, p, opts)
		if err != nil {
			return err
		}
		if err := preview.SavePNG(o.png, img); err != nil {
			return err
		}
	}

	logger.Info("built track",
		"file", o.in,
		"segments", p.SegmentCount(),
		"samples", len(tr.Points),
		"texture_repeat", tr.TextureRepeat)
	return nil
}

// writeRails writes one rail per block of lines, each line holding the x and
// y coordinate of one point. Blocks are separated by empty lines.
func writeRails(w io.Writer, rails [][]track.Point) error {
	for i, rail := range rails {
		if i > 0 {
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
		}
		for _, pt := range rail {
			if _, err := fmt.Fprintf(w, "%g %g\n", pt.X, pt.Y); err != nil {
				return err
			}
		}
	}
	return nil
}

func writeFile(name string, fn func(io.Writer) error) (err error) {
	f, err := os.Create(name)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	bw := bufio.NewWriter(f)
	if err := fn(bw); err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	return bw.Flush()
}
