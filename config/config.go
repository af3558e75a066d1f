// Package config holds the settings of a document and loads them from
// TOML.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// ErrInvalid is wrapped by every semantic validation failure.
var ErrInvalid = errors.New("invalid configuration")

// Config is the top level of a configuration file.
type Config struct {
	Document Document `toml:"document"`
}

// Document configures layout and editing.
type Document struct {
	Wrap         bool     `toml:"wrap"`
	Multiline    bool     `toml:"multiline"`
	Alignment    string   `toml:"alignment"`
	LineEnding   string   `toml:"line_ending"`
	TabStop      int      `toml:"tab_stop"`
	UndoLimit    int      `toml:"undo_limit"`
	PasswordChar string   `toml:"password_char"`
	Margins      Margins  `toml:"margins"`
	Indent       Indent   `toml:"indent"`
	Viewport     Viewport `toml:"viewport"`
}

// Margins are the pixel gaps between the viewport edge and the text.
type Margins struct {
	Left  int `toml:"left"`
	Top   int `toml:"top"`
	Right int `toml:"right"`
}

// Indent is the default indentation of new lines.
type Indent struct {
	First   int `toml:"first"`
	Hanging int `toml:"hanging"`
	Right   int `toml:"right"`
}

// Viewport is the size used when no host supplies one.
type Viewport struct {
	Width  int `toml:"width"`
	Height int `toml:"height"`
}

// Default returns the built in configuration.
func Default() *Config {
	return &Config{
		Document: Document{
			Wrap:       true,
			Multiline:  true,
			Alignment:  "left",
			LineEnding: "lf",
			TabStop:    32,
			UndoLimit:  1000,
			Margins:    Margins{Left: 2, Top: 0, Right: 2},
			Viewport:   Viewport{Width: 640, Height: 480},
		},
	}
}

// ParseError is a syntax or schema error in a configuration file.
type ParseError struct {
	Path   string
	Line   int
	Column int
	Err    error
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("parse error in %s at line %d, column %d: %v", e.Path, e.Line, e.Column, e.Err)
	}
	return fmt.Sprintf("parse error in %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Load reads the file at path over the defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file %s: %w", path, err)
	}
	return parse(path, data)
}

// Parse decodes data over the defaults.
func Parse(data []byte) (*Config, error) {
	return parse("<input>", data)
}

func parse(source string, data []byte) (*Config, error) {
	cfg := Default()
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(cfg); err != nil {
		perr := &ParseError{Path: source, Err: err}
		var derr *toml.DecodeError
		if errors.As(err, &derr) {
			perr.Line, perr.Column = derr.Position()
		}
		return nil, perr
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", source, err)
	}
	return cfg, nil
}

// Validate reports the first setting that cannot be applied.
func (c *Config) Validate() error {
	d := &c.Document
	switch d.Alignment {
	case "", "left", "center", "right":
	default:
		return fmt.Errorf("%w: alignment %q", ErrInvalid, d.Alignment)
	}
	switch d.LineEnding {
	case "", "lf", "crlf", "cr":
	default:
		return fmt.Errorf("%w: line_ending %q", ErrInvalid, d.LineEnding)
	}
	if len([]rune(d.PasswordChar)) > 1 {
		return fmt.Errorf("%w: password_char %q is more than one character", ErrInvalid, d.PasswordChar)
	}
	for _, v := range []struct {
		name string
		n    int
	}{
		{"tab_stop", d.TabStop},
		{"undo_limit", d.UndoLimit},
		{"margins.left", d.Margins.Left},
		{"margins.top", d.Margins.Top},
		{"margins.right", d.Margins.Right},
		{"indent.first", d.Indent.First},
		{"indent.hanging", d.Indent.Hanging},
		{"indent.right", d.Indent.Right},
		{"viewport.width", d.Viewport.Width},
		{"viewport.height", d.Viewport.Height},
	} {
		if v.n < 0 {
			return fmt.Errorf("%w: %s is negative (%d)", ErrInvalid, v.name, v.n)
		}
	}
	return nil
}

// Password returns the substitution glyph or 0 when none is set.
func (d *Document) Password() rune {
	for _, r := range d.PasswordChar {
		return r
	}
	return 0
}
