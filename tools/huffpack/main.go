// huffpack compresses and decompresses files with the registered byte codecs.
//
// Usage:
//
//	huffpack [-c codec] [-i in] [-o out] [-max n] [-v]      compress
//	huffpack -d [-c codec] [-i in] [-o out] [-v]            decompress
//	huffpack -stats [-i in] [-max n]                        compare codecs
//
// Input defaults to stdin and output to stdout. When decompressing a file
// without -c, the codec is picked from the input file extension.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/cocosip/go-huffman-codec/codec"
	"github.com/cocosip/go-huffman-codec/huffman"
	_ "github.com/cocosip/go-huffman-codec/zstd"
	logging "github.com/op/go-logging"
	"github.com/pkg/errors"
)

const progName = "huffpack"

var log = logging.MustGetLogger(progName)

type config struct {
	decompress bool
	codecName  string
	codecSet   bool
	input      string
	output     string
	stats      bool
	maxInput   int64
	verbose    bool
}

func startLogging(w io.Writer, verbose bool) {
	backend := logging.NewLogBackend(w, progName+": ", 0)
	formatSpec := "%{level:8s} %{module:-12s} | %{message}"
	formatter := logging.MustStringFormatter(formatSpec)
	formatted := logging.NewBackendFormatter(backend, formatter)
	leveled := logging.AddModuleLevel(formatted)
	if verbose {
		leveled.SetLevel(logging.DEBUG, "")
	} else {
		leveled.SetLevel(logging.INFO, "")
	}
	logging.SetBackend(leveled)
}

func parseFlags(args []string, stderr io.Writer) (*config, error) {
	cfg := &config{}

	fs := flag.NewFlagSet(progName, flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.BoolVar(&cfg.decompress, "d", false, "decompress instead of compress")
	fs.StringVar(&cfg.codecName, "c", "huffman", "codec name")
	fs.StringVar(&cfg.input, "i", "", "input file (default stdin)")
	fs.StringVar(&cfg.output, "o", "", "output file (default stdout)")
	fs.BoolVar(&cfg.stats, "stats", false, "print the compressed size of the input for every codec")
	fs.Int64Var(&cfg.maxInput, "max", 0, "maximum input size in bytes (0 = unlimited)")
	fs.BoolVar(&cfg.verbose, "v", false, "debug logging")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() > 0 {
		return nil, errors.Errorf("unexpected arguments: %v", fs.Args())
	}
	if cfg.maxInput < 0 {
		return nil, errors.Wrapf(codec.ErrInvalidParameter, "-max %d", cfg.maxInput)
	}
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "c" {
			cfg.codecSet = true
		}
	})
	return cfg, nil
}

// readInput reads the whole input, refusing more than limit bytes when limit > 0
func readInput(r io.Reader, limit int64) ([]byte, error) {
	if limit > 0 {
		r = io.LimitReader(r, limit+1)
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "read input")
	}
	if limit > 0 && int64(len(data)) > limit {
		return nil, errors.Wrapf(codec.ErrInputTooLarge, "input larger than %d bytes", limit)
	}
	return data, nil
}

// selectCodec resolves the codec to use. Decompressing a file without an
// explicit -c uses the codec registered for the file extension, if any.
func selectCodec(cfg *config) (codec.Codec, error) {
	if cfg.decompress && !cfg.codecSet && cfg.input != "" {
		if c, err := codec.Get(filepath.Ext(cfg.input)); err == nil {
			log.Debugf("codec %s selected from extension of %s", c.Name(), cfg.input)
			return c, nil
		}
	}
	c, err := codec.Get(cfg.codecName)
	if err != nil {
		return nil, errors.Wrapf(err, "codec %q", cfg.codecName)
	}
	return c, nil
}

func printStats(w io.Writer, data []byte, opts codec.Options) error {
	fmt.Fprintf(w, "%-10s %12s %12s %8s %12s\n", "codec", "input", "output", "ratio", "time")
	for _, c := range codec.List() {
		start := time.Now()
		encoded, err := c.Encode(data, opts)
		if err != nil {
			return errors.Wrapf(err, "%s encode", c.Name())
		}
		elapsed := time.Since(start)

		ratio := 0.0
		if len(encoded) > 0 {
			ratio = float64(len(data)) / float64(len(encoded))
		}
		fmt.Fprintf(w, "%-10s %12d %12d %7.2fx %12s\n", c.Name(), len(data), len(encoded), ratio, elapsed)
	}
	return nil
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	cfg, err := parseFlags(args, stderr)
	if err != nil {
		return err
	}
	startLogging(stderr, cfg.verbose)

	in := stdin
	if cfg.input != "" {
		f, err := os.Open(cfg.input)
		if err != nil {
			return errors.Wrap(err, "open input")
		}
		defer f.Close()
		in = f
	}

	limit := cfg.maxInput
	if cfg.decompress {
		limit = 0
	}
	data, err := readInput(in, limit)
	if err != nil {
		return err
	}
	opts := &codec.BaseOptions{MaxInputSize: cfg.maxInput}

	if cfg.stats {
		return printStats(stdout, data, opts)
	}

	c, err := selectCodec(cfg)
	if err != nil {
		return err
	}

	var result []byte
	start := time.Now()
	if cfg.decompress {
		result, err = c.Decode(data)
		if err != nil {
			if errors.Is(err, huffman.ErrCorrupt) {
				return errors.Wrap(err, "corrupt stream")
			}
			return errors.Wrapf(err, "%s decode", c.Name())
		}
	} else {
		result, err = c.Encode(data, opts)
		if err != nil {
			return errors.Wrapf(err, "%s encode", c.Name())
		}
	}
	log.Infof("%s: %d -> %d bytes in %v", c.Name(), len(data), len(result), time.Since(start))

	if cfg.output == "" {
		if _, err := stdout.Write(result); err != nil {
			return errors.Wrap(err, "write output")
		}
		return nil
	}
	if err := os.WriteFile(cfg.output, result, 0o644); err != nil {
		return errors.Wrap(err, "write output")
	}
	return nil
}

func main() {
	if err := run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		fmt.Fprintf(os.Stderr, "%s: %v\n", progName, err)
		os.Exit(1)
	}
}
