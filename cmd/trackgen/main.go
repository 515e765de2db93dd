// Command trackgen builds race tracks from track documents.
//
// Usage:
//
//	trackgen -new -in track.toml
//	trackgen -in track.toml -svg track.svg -obj track.obj -png track.png
//	trackgen -in track.toml -obj track.obj -watch
//
// Track documents are TOML or YAML files, see package trackfile. Settings
// given on the command line override those of the document, without
// modifying it.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"os/signal"

	"honnef.co/go/track"
	"honnef.co/go/track/trackfile"
)

type options struct {
	in     string
	newDoc bool
	watch  bool
	closed bool
	auto   bool

	svg   string
	obj   string
	png   string
	rails string

	settings track.Settings
	size     int
	verbose  bool

	// set records which flags were given explicitly.
	set map[string]bool
}

func parseFlags(args []string, stderr io.Writer) (*options, error) {
	o := &options{set: map[string]bool{}}
	def := track.DefaultSettings()

	fs := flag.NewFlagSet("trackgen", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&o.in, "in", "", "track document (.toml, .yaml or .yml)")
	fs.BoolVar(&o.newDoc, "new", false, "write a default document to -in and exit")
	fs.BoolVar(&o.watch, "watch", false, "rebuild whenever the document changes")
	fs.BoolVar(&o.closed, "closed", false, "open or close the path before building")
	fs.BoolVar(&o.auto, "auto", false, "enable or disable automatic control points before building")
	fs.StringVar(&o.svg, "svg", "", "write an SVG drawing of the path and track")
	fs.StringVar(&o.obj, "obj", "", "write the road mesh as Wavefront OBJ")
	fs.StringVar(&o.png, "png", "", "write a PNG preview")
	fs.StringVar(&o.rails, "rails", "", "write the rail polylines as text")
	fs.Float64Var(&o.settings.Width, "width", def.Width, "road width")
	fs.Float64Var(&o.settings.Scale, "scale", def.Scale, "scale of mesh and rails")
	fs.Float64Var(&o.settings.Spacing, "spacing", def.Spacing, "distance between samples")
	fs.Float64Var(&o.settings.Resolution, "resolution", def.Resolution, "curve sampling resolution")
	fs.Float64Var(&o.settings.Tiling, "tiling", def.Tiling, "texture tiling")
	fs.IntVar(&o.settings.Rails, "nrails", def.Rails, "number of rail polylines")
	fs.IntVar(&o.size, "size", 512, "size of the PNG preview in pixels")
	fs.BoolVar(&o.verbose, "v", false, "log debug output")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() > 0 {
		return nil, fmt.Errorf("unexpected arguments: %q", fs.Args())
	}
	if o.in == "" {
		return nil, errors.New("missing -in")
	}
	fs.Visit(func(f *flag.Flag) { o.set[f.Name] = true })
	return o, nil
}

// overrideSettings returns s with all settings replaced that were given on
// the command line.
func (o *options) overrideSettings(s track.Settings) track.Settings {
	if o.set["width"] {
		s.Width = o.settings.Width
	}
	if o.set["scale"] {
		s.Scale = o.settings.Scale
	}
	if o.set["spacing"] {
		s.Spacing = o.settings.Spacing
	}
	if o.set["resolution"] {
		s.Resolution = o.settings.Resolution
	}
	if o.set["tiling"] {
		s.Tiling = o.settings.Tiling
	}
	if o.set["nrails"] {
		s.Rails = o.settings.Rails
	}
	return s
}

func run(ctx context.Context, args []string, stderr io.Writer) error {
	o, err := parseFlags(args, stderr)
	if err != nil {
		return err
	}

	level := slog.LevelInfo
	if o.verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))
	track.SetLogger(logger)
	defer track.SetLogger(nil)

	if o.newDoc {
		if _, err := os.Stat(o.in); err == nil {
			return fmt.Errorf("%s already exists", o.in)
		}
		if err := trackfile.Save(o.in, trackfile.Default()); err != nil {
			return err
		}
		logger.Info("wrote default document", "file", o.in)
		return nil
	}

	if o.watch {
		return watch(ctx, o, logger)
	}
	return generate(o, logger)
}

func main() {
	log.SetFlags(0)
	log.SetPrefix("trackgen: ")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := run(ctx, os.Args[1:], os.Stderr); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		log.Fatal(err)
	}
}
