package main

import (
	"bytes"
	"encoding/hex"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/mattn/go-isatty"

	jsnore "github.com/lambdamechanic/jsnore"
	"github.com/lambdamechanic/jsnore/anonymize"
	_ "github.com/lambdamechanic/jsnore/source"
)

const version = "0.0.0"

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

const usageText = `jsonymous

Usage:
  jsonymous --help
  jsonymous --version
  jsonymous [--pretty|--compact] [--seed HEX] [--alphabet CHARS] [file]

Options:
`

type options struct {
	format      string
	seed        string
	alphabet    string
	inputFormat string
	help        bool
	version     bool
	file        string
}

func newFlagSet(o *options) *flag.FlagSet {
	fs := flag.NewFlagSet("jsonymous", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.Var(formatFlag{&o.format, "pretty"}, "pretty", "indent output by two spaces")
	fs.Var(formatFlag{&o.format, "compact"}, "compact", "single-line output (default)")
	fs.StringVar(&o.seed, "seed", "", "32 hex digits seeding the generator (random when empty)")
	fs.StringVar(&o.alphabet, "alphabet", "", "characters used in replacements")
	fs.StringVar(&o.inputFormat, "input-format", "auto", "input format: auto, json or yaml")
	fs.BoolVar(&o.help, "h", false, "show help")
	fs.BoolVar(&o.help, "help", false, "show help")
	fs.BoolVar(&o.version, "v", false, "print the version")
	fs.BoolVar(&o.version, "version", false, "print the version")
	return fs
}

func parseArgs(args []string) (*options, *flag.FlagSet, error) {
	o := &options{format: "compact"}
	fs := newFlagSet(o)
	var positional []string
	rest := args
	for {
		if err := fs.Parse(rest); err != nil {
			return nil, nil, err
		}
		rest = fs.Args()
		if len(rest) == 0 {
			break
		}
		positional = append(positional, rest[0])
		rest = rest[1:]
	}
	if o.help || o.version {
		return o, fs, nil
	}
	if len(positional) > 1 {
		return nil, nil, errors.New("only one input file is supported")
	}
	if len(positional) == 1 {
		o.file = positional[0]
	}
	switch o.inputFormat {
	case "auto", "json", "yaml":
	default:
		return nil, nil, fmt.Errorf("invalid --input-format: %s", o.inputFormat)
	}
	return o, fs, nil
}

func (o *options) anonymizeOptions() (anonymize.Options, error) {
	opts := anonymize.Options{Alphabet: o.alphabet}
	if o.seed != "" {
		seed, err := hex.DecodeString(o.seed)
		if err != nil || len(seed) != anonymize.SeedSize {
			return opts, fmt.Errorf("invalid --seed: want %d hex digits", anonymize.SeedSize*2)
		}
		opts.Seed = seed
	}
	return opts, nil
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	o, fs, err := parseArgs(args)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 2
	}
	if o.help {
		printUsage(stdout, fs)
		return 0
	}
	if o.version {
		fmt.Fprintln(stdout, version)
		return 0
	}
	aopts, err := o.anonymizeOptions()
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 2
	}
	an, err := anonymize.New(aopts)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 2
	}

	var data []byte
	if o.file != "" {
		data, err = os.ReadFile(o.file)
	} else if isTerminal(stdin) {
		printUsage(stderr, fs)
		return 2
	} else {
		data, err = io.ReadAll(stdin)
	}
	if err != nil {
		fmt.Fprintf(stderr, "failed to read input: %v\n", err)
		return 1
	}

	var doc any
	if o.isYAML() {
		doc, err = jsnore.LoadYAML(bytes.NewReader(data))
	} else {
		doc, err = jsnore.LoadJSONBytes(data)
	}
	if err != nil {
		fmt.Fprintf(stderr, "invalid input: %v\n", err)
		return 1
	}
	out, err := an.Value(doc)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	if err := jsnore.Encode(stdout, out, o.format == "pretty"); err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	return 0
}

func (o *options) isYAML() bool {
	switch o.inputFormat {
	case "yaml":
		return true
	case "json":
		return false
	}
	ext := strings.ToLower(filepath.Ext(o.file))
	return ext == ".yaml" || ext == ".yml"
}

func isTerminal(r io.Reader) bool {
	f, ok := r.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func printUsage(w io.Writer, fs *flag.FlagSet) {
	fmt.Fprint(w, usageText)
	fs.SetOutput(w)
	fs.PrintDefaults()
	fs.SetOutput(io.Discard)
}

// formatFlag is a boolean flag that selects an output format; the last one
// given wins.
type formatFlag struct {
	format *string
	name   string
}

func (f formatFlag) IsBoolFlag() bool { return true }

func (f formatFlag) String() string { return "" }

func (f formatFlag) Set(s string) error {
	on, err := strconv.ParseBool(s)
	if err != nil {
		return err
	}
	if on {
		*f.format = f.name
	}
	return nil
}
