// Package trackfile loads and saves track documents.
//
// A document holds everything needed to rebuild a track: the point buffer of
// the path, its two flags, and the settings for [track.Build]. Documents are
// stored as TOML or YAML, chosen by file extension:
//
//	[path]
//	closed = true
//	auto_control_points = true
//	points = [[-1.0, 0.0], [-0.5, 0.5], [0.5, -0.5], [1.0, 0.0], [1.5, 0.5], [-1.5, -0.5]]
//
//	[settings]
//	width = 1.0
//	spacing = 0.5
//
// Settings that are left out keep their defaults. Unknown keys are errors.
package trackfile

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
	"honnef.co/go/track"
)

// Format is the encoding of a document.
type Format int

const (
	TOML Format = iota + 1
	YAML
)

func (f Format) String() string {
	switch f {
	case TOML:
		return "TOML"
	case YAML:
		return "YAML"
	default:
		return fmt.Sprintf("Format(%d)", int(f))
	}
}

// ErrUnknownFormat is returned for file names whose extension isn't one of
// .toml, .yaml and .yml.
var ErrUnknownFormat = errors.New("unknown document format")

// FormatOf returns the format of a file, based on its extension.
func FormatOf(filename string) (Format, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".toml":
		return TOML, nil
	case ".yaml", ".yml":
		return YAML, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownFormat, filename)
	}
}

// Document is the serialized form of a track.
type Document struct {
	Path     PathSection     `toml:"path" yaml:"path"`
	Settings SettingsSection `toml:"settings" yaml:"settings"`
}

type PathSection struct {
	Closed               bool         `toml:"closed" yaml:"closed"`
	AutoSetControlPoints bool         `toml:"auto_control_points" yaml:"auto_control_points"`
	Points               [][2]float64 `toml:"points" yaml:"points,flow"`
}

type SettingsSection struct {
	Width      float64 `toml:"width" yaml:"width"`
	Scale      float64 `toml:"scale" yaml:"scale"`
	Spacing    float64 `toml:"spacing" yaml:"spacing"`
	Resolution float64 `toml:"resolution" yaml:"resolution"`
	Tiling     float64 `toml:"tiling" yaml:"tiling"`
	Rails      int     `toml:"rails" yaml:"rails"`
}

// New returns the document of a path and its settings.
func New(p *track.Path, s track.Settings) *Document {
	d := p.Data()
	doc := &Document{
		Path: PathSection{
			Closed:               d.Closed,
			AutoSetControlPoints: d.AutoSetControlPoints,
			Points:               make([][2]float64, len(d.Points)),
		},
	}
	for i, pt := range d.Points {
		doc.Path.Points[i] = [2]float64{pt.X, pt.Y}
	}
	doc.SetSettings(s)
	return doc
}

// Default returns the document of a new path centered on the origin, with
// default settings.
func Default() *Document {
	return New(track.NewPath(track.Pt(0, 0)), track.DefaultSettings())
}

// NewPath reconstructs the document's path.
func (doc *Document) NewPath() (*track.Path, error) {
	d := track.PathData{
		Points:               make([]track.Point, len(doc.Path.Points)),
		Closed:               doc.Path.Closed,
		AutoSetControlPoints: doc.Path.AutoSetControlPoints,
	}
	for i, xy := range doc.Path.Points {
		d.Points[i] = track.Pt(xy[0], xy[1])
	}
	return track.FromData(d)
}

// TrackSettings returns the document's settings.
func (doc *Document) TrackSettings() track.Settings {
	s := doc.Settings
	return track.Settings{
		Width:      s.Width,
		Scale:      s.Scale,
		Spacing:    s.Spacing,
		Resolution: s.Resolution,
		Tiling:     s.Tiling,
		Rails:      s.Rails,
	}
}

func (doc *Document) SetSettings(s track.Settings) {
	doc.Settings = SettingsSection{
		Width:      s.Width,
		Scale:      s.Scale,
		Spacing:    s.Spacing,
		Resolution: s.Resolution,
		Tiling:     s.Tiling,
		Rails:      s.Rails,
	}
}

// Validate checks that the document describes a valid path and valid
// settings.
func (doc *Document) Validate() error {
	if _, err := doc.NewPath(); err != nil {
		return fmt.Errorf("path: %w", err)
	}
	if err := doc.TrackSettings().Validate(); err != nil {
		return fmt.Errorf("settings: %w", err)
	}
	return nil
}

// Decode reads a document. Settings missing from the input keep their
// defaults. The decoded document is validated.
func Decode(r io.Reader, f Format) (*Document, error) {
	doc := &Document{}
	doc.SetSettings(track.DefaultSettings())

	var err error
	switch f {
	case TOML:
		dec := toml.NewDecoder(r)
		dec.DisallowUnknownFields()
		err = dec.Decode(doc)
	case YAML:
		dec := yaml.NewDecoder(r)
		dec.KnownFields(true)
		err = dec.Decode(doc)
		if err == io.EOF {
			err = errors.New("empty document")
		}
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownFormat, f)
	}
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", f, err)
	}
	if err := doc.Validate(); err != nil {
		return nil, err
	}
	return doc, nil
}

// Encode writes a document.
func Encode(w io.Writer, doc *Document, f Format) error {
	switch f {
	case TOML:
		return toml.NewEncoder(w).Encode(doc)
	case YAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("%w: %s", ErrUnknownFormat, f)
	}
}

// Load reads the document stored in filename.
func Load(filename string) (*Document, error) {
	f, err := FormatOf(filename)
	if err != nil {
		return nil, err
	}
	b, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	doc, err := Decode(bytes.NewReader(b), f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	track.Logger().Debug("loaded track document",
		"file", filename,
		"points", len(doc.Path.Points),
		"closed", doc.Path.Closed)
	return doc, nil
}

// Save writes doc to filename, replacing any existing file.
func Save(filename string, doc *Document) error {
	f, err := FormatOf(filename)
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := Encode(&buf, doc, f); err != nil {
		return fmt.Errorf("%s: %w", filename, err)
	}
	return os.WriteFile(filename, buf.Bytes(), 0o666)
}
