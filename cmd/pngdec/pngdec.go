package main

import (
	"bytes"
	"fmt"
	"image/png"
	"io"
	"os"
	"strings"

	"github.com/unixdj/pngdec"

	"github.com/mattn/go-isatty"
	"github.com/pborman/getopt/v2"
	"github.com/rs/zerolog"
	"golang.org/x/image/bmp"
)

var g = struct {
	fn       string // output filename
	profile  string // ICC profile output filename
	format   string // output type
	strict   bool   // reject unknown critical chunks
	checkCRC bool   // verify checksums
	verbose  bool   // debug logging
}{}

var log zerolog.Logger

func printUsage(w io.Writer) {
	cl := getopt.CommandLine
	fmt.Fprint(w, "PNG decoder\nUsage: ", cl.Program(), " ",
		cl.UsageLine(), ` [file]
If no file is given, the image is read from standard input.

`)
	cl.PrintOptions(w)
}

type opt func()

func (opt) String() string                    { return "" }
func (o opt) Set(string, getopt.Option) error { o(); return nil }

func usage() {
	printUsage(os.Stderr)
	os.Exit(2)
}

func help() {
	printUsage(os.Stdout)
	os.Exit(0)
}

func version() {
	fmt.Println(`pngdec version 0.1.0
Copyright (c) 2024 Vadim Vygonets`)
	os.Exit(0)
}

var formats = []string{"ppm", "png", "bmp", "info", "strip"}

func parseFlags() {
	getopt.SetUsage(usage)
	getopt.Flag(opt(help), 'h', "show this help").SetFlag()
	getopt.Flag(opt(version), 'V', "print version and copyright").SetFlag()
	fno := getopt.Flag(&g.fn, 'o', `output file, or "-" for `+
		`standard output`, "file")
	getopt.Flag(&g.profile, 'p', "write the decompressed ICC "+
		"profile to file", "file")
	getopt.Flag(&g.strict, 's', "reject unknown critical chunks")
	getopt.Flag(&g.checkCRC, 'c', "verify chunk checksums")
	getopt.Flag(&g.verbose, 'v', "log every chunk")
	ff := getopt.Enum('t', formats, "", `output format, one of: `+
		strings.Join(formats, ", ")+
		`; "png" re-encodes with the standard Go encoder, `+
		`"strip" copies the input without ancillary chunks; `+
		`if no -o is given and standard output is a TTY, `+
		`default is info, otherwise ppm`, "type")

	getopt.Parse()
	if len(getopt.Args()) > 1 {
		fmt.Fprintln(os.Stderr, "too many arguments")
		usage()
	}
	g.format = *ff
	if g.format == "" {
		if !fno.Seen() && isatty.IsTerminal(os.Stdout.Fd()) {
			g.format = "info"
		} else {
			g.format = "ppm"
		}
	}
	if g.fn == "-" {
		g.fn = ""
	}
}

func main() {
	parseFlags()
	level := zerolog.InfoLevel
	if g.verbose {
		level = zerolog.DebugLevel
	}
	log = zerolog.New(zerolog.ConsoleWriter{
		Out:     os.Stderr,
		NoColor: !isatty.IsTerminal(os.Stderr.Fd()),
	}).Level(level)

	in := os.Stdin
	name := "<stdin>"
	if args := getopt.Args(); len(args) != 0 {
		name = args[0]
		var err error
		if in, err = os.Open(name); err != nil {
			log.Fatal().Err(err).Msg("")
		}
	}
	data, err := io.ReadAll(in)
	if err != nil {
		log.Fatal().Err(err).Str("file", name).Msg("read failed")
	}
	in.Close()

	if g.format == "strip" {
		write(func(w io.Writer) error {
			return pngdec.Strip(w, bytes.NewReader(data), nil)
		})
		return
	}

	d := pngdec.Decoder{
		Strict:   g.strict,
		CheckCRC: g.checkCRC,
		Logger:   &log,
	}
	img, err := d.Decode(bytes.NewReader(data))
	if err != nil {
		log.Fatal().Err(err).Str("file", name).Msg("decode failed")
	}
	if g.profile != "" {
		b, err := img.Profile.Decompress()
		if err == nil {
			err = os.WriteFile(g.profile, b, 0666)
		}
		if err != nil {
			log.Fatal().Err(err).Str("file", g.profile).Msg("")
		}
	}

	switch g.format {
	case "ppm":
		write(img.EncodePPM)
	case "png":
		write(func(w io.Writer) error { return png.Encode(w, img) })
	case "bmp":
		write(func(w io.Writer) error { return bmp.Encode(w, img) })
	case "info":
		write(func(w io.Writer) error { return info(w, name, img) })
	}
}

func write(encode func(io.Writer) error) {
	var w = os.Stdout
	if g.fn != "" {
		var err error
		if w, err = os.OpenFile(g.fn, os.O_WRONLY|os.O_CREATE|os.O_TRUNC,
			0666); err != nil {
			log.Fatal().Err(err).Msg("")
		}
	}
	err := encode(w)
	if g.fn != "" && err == nil {
		err = w.Close()
	}
	if err != nil {
		log.Fatal().Err(err).Str("format", g.format).Msg("write failed")
	}
}

func info(w io.Writer, name string, img *pngdec.Image) error {
	h := &img.Header
	var b strings.Builder
	fmt.Fprintf(&b, "%s: %dx%d, %d-bit %v, %d bytes per pixel\n",
		name, h.Width, h.Height, h.BitDepth, h.Format, h.BytesPerPixel())
	if p := img.Profile; p != nil {
		fmt.Fprintf(&b, "ICC profile %q, %d bytes compressed\n",
			p.Name, len(p.Compressed))
	}
	for _, c := range img.Chunks {
		kind := "ancillary"
		if c.Type.Critical() {
			kind = "critical"
		}
		fmt.Fprintf(&b, "  %s %9d  %s\n", c.Type, c.Length, kind)
	}
	_, err := io.WriteString(w, b.String())
	return err
}
