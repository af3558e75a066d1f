// Reflow lays a text file out at a given width and prints the
// resulting lines, one per output line. Wrap breaks are shown as a
// trailing backslash.
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/rjkroege/richedit/config"
	"github.com/rjkroege/richedit/document"
	"github.com/rjkroege/richedit/draw"
	"go.uber.org/zap"
	"golang.org/x/image/font/basicfont"
)

var (
	configPath = flag.String("config", "", "TOML configuration file")
	width      = flag.Int("width", 0, "viewport width in pixels, or cells without -face")
	nowrap     = flag.Bool("nowrap", false, "turn word wrap off")
	face       = flag.Bool("face", false, "measure with a 7x13 pixel face instead of terminal cells")
	find       = flag.String("find", "", "report the first line holding this text")
	dump       = flag.Bool("dump", false, "dump lines and runs instead of printing the text")
	undo       = flag.Bool("undo", false, "check that undoing the load empties the document")
	verbose    = flag.Bool("v", false, "log layout decisions")
)

func main() {
	flag.Parse()

	logger, err := newLogger(*verbose)
	if err != nil {
		log.Fatalf("can't make logger: %v", err)
	}
	defer logger.Sync()

	cfg := config.Default()
	if *configPath != "" {
		if cfg, err = config.Load(*configPath); err != nil {
			logger.Fatal("bad configuration", zap.Error(err))
		}
	}
	if *width > 0 {
		cfg.Document.Viewport.Width = *width
	}
	if *nowrap {
		cfg.Document.Wrap = false
	}

	text, err := readInput(flag.Arg(0))
	if err != nil {
		logger.Fatal("can't read input", zap.String("file", flag.Arg(0)), zap.Error(err))
	}

	var f draw.Font = draw.CellFont{}
	if *face {
		f = draw.NewFaceFont("basic7x13", basicfont.Face7x13)
	}
	if !*face && *configPath == "" && *width == 0 {
		cfg.Document.Viewport.Width = 80
	}
	if !*face {
		cfg.Document.Margins = config.Margins{}
	}

	doc := document.New(
		document.WithConfig(cfg),
		document.WithFont(f),
		document.WithLogger(logger),
	)
	doc.InsertString(doc.FirstLine(), 0, text)
	logger.Info("loaded",
		zap.Int("chars", doc.CharCount()),
		zap.Int("lines", doc.LineCount()),
		zap.Int("width", doc.Width()),
		zap.Int("height", doc.Height()))

	if *find != "" {
		last := doc.LastLine()
		start, _, ok := doc.Find(*find, document.Marker{Line: doc.FirstLine()}, document.Marker{Line: last, Pos: last.Len()}, 0)
		if !ok {
			fmt.Printf("%q not found\n", *find)
			os.Exit(1)
		}
		fmt.Printf("%q at line %d, position %d\n", *find, start.LineNumber(), start.Pos)
		return
	}

	if *undo {
		if !doc.Undo() || doc.CharCount() != 0 {
			logger.Fatal("undo left text behind", zap.Int("chars", doc.CharCount()))
		}
		doc.Redo()
	}

	if *dump {
		doc.Dump(os.Stdout)
		return
	}
	printLines(os.Stdout, doc)
}

func newLogger(verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	return cfg.Build()
}

func readInput(name string) (string, error) {
	var r io.Reader = os.Stdin
	if name != "" && name != "-" {
		fd, err := os.Open(name)
		if err != nil {
			return "", err
		}
		defer fd.Close()
		r = fd
	}
	b, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	return strings.TrimSuffix(string(b), "\n"), nil
}

func printLines(w io.Writer, doc *document.Document) {
	for l := doc.FirstLine(); l != nil; l = l.Next() {
		mark := ""
		if l.Ending() == document.EndWrap {
			mark = "\\"
		}
		fmt.Fprintf(w, "%s%s\n", l.Text(), mark)
	}
}
