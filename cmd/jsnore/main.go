package main

import (
	"bytes"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/mattn/go-isatty"
	"gopkg.in/yaml.v3"

	jsnore "github.com/lambdamechanic/jsnore"
	"github.com/lambdamechanic/jsnore/i18n"
	"github.com/lambdamechanic/jsnore/internal/report"
	_ "github.com/lambdamechanic/jsnore/source"
	drvgojson "github.com/lambdamechanic/jsnore/source/gojson"
)

const version = "0.0.0"

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

const usageText = `jsnore

Usage:
  jsnore --help
  jsnore --version
  jsnore --apply-mask <expr> [--pretty|--compact] [file]
  jsnore [--mask] [--min-hits N] [--pretty|--compact] [--report] [file]

Options:
`

type options struct {
	maskOnly    bool
	applyMask   applyMaskFlag
	minHits     int
	format      string
	report      bool
	inputFormat string
	driver      string
	maxDepth    int
	maxBytes    int64
	dupKeys     string
	logLevel    string
	verbose     bool
	lang        string
	config      string
	help        bool
	version     bool
	file        string
}

// fileConfig is the --config document. Unset fields keep the flag defaults.
type fileConfig struct {
	MinHits       *int   `yaml:"min_hits"`
	Format        string `yaml:"format"`
	InputFormat   string `yaml:"input_format"`
	Driver        string `yaml:"driver"`
	MaxDepth      *int   `yaml:"max_depth"`
	MaxBytes      *int64 `yaml:"max_bytes"`
	DuplicateKeys string `yaml:"duplicate_keys"`
	LogLevel      string `yaml:"log_level"`
	Lang          string `yaml:"lang"`
}

// usageError is reported with exit status 2.
type usageError struct{ msg string }

func (e usageError) Error() string { return e.msg }

func usagef(format string, a ...any) error { return usageError{fmt.Sprintf(format, a...)} }

func newFlagSet(o *options) *flag.FlagSet {
	fs := flag.NewFlagSet("jsnore", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.BoolVar(&o.maskOnly, "mask", false, "print the derived mask instead of the slimmed document")
	fs.Var(&o.applyMask, "apply-mask", "project the input through `expr` instead of deriving a mask")
	fs.Var(minHitsFlag{&o.minHits}, "min-hits", "instances a pattern needs before it can be dropped (`N`)")
	fs.Var(formatFlag{&o.format, "pretty"}, "pretty", "indent output by two spaces")
	fs.Var(formatFlag{&o.format, "compact"}, "compact", "single-line output (default)")
	fs.BoolVar(&o.report, "report", false, "write the derivation report to stderr")
	fs.StringVar(&o.inputFormat, "input-format", "auto", "input format: auto, json or yaml")
	fs.StringVar(&o.driver, "driver", "", "JSON driver: go-json or encoding/json")
	fs.IntVar(&o.maxDepth, "max-depth", 0, "reject input nested deeper than this (0 = unlimited)")
	fs.Int64Var(&o.maxBytes, "max-bytes", 0, "reject input larger than this many bytes (0 = unlimited)")
	fs.StringVar(&o.dupKeys, "duplicate-keys", "ignore", "duplicate key policy: ignore, warn or error")
	fs.StringVar(&o.logLevel, "log-level", "warn", "log level: error, warn, info or debug")
	fs.BoolVar(&o.verbose, "V", false, "shorthand for --log-level=debug")
	fs.BoolVar(&o.verbose, "verbose", false, "shorthand for --log-level=debug")
	fs.StringVar(&o.lang, "lang", "en", "message language: en or ja")
	fs.StringVar(&o.config, "config", "", "YAML `file` supplying defaults for the options above")
	fs.BoolVar(&o.help, "h", false, "show help")
	fs.BoolVar(&o.help, "help", false, "show help")
	fs.BoolVar(&o.version, "v", false, "print the version")
	fs.BoolVar(&o.version, "version", false, "print the version")
	return fs
}

// parseArgs accepts flags before and after the input file.
func parseArgs(args []string) (*options, *flag.FlagSet, error) {
	o := &options{minHits: jsnore.DefaultMinHits, format: "compact"}
	fs := newFlagSet(o)
	var positional []string
	rest := args
	for {
		if err := fs.Parse(rest); err != nil {
			return nil, nil, usageError{err.Error()}
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
		return nil, nil, usagef("only one input file is supported")
	}
	if len(positional) == 1 {
		o.file = positional[0]
	}
	if o.maskOnly && o.applyMask.set {
		return nil, nil, usagef("cannot combine --mask with --apply-mask")
	}
	if o.config != "" {
		if err := o.applyConfig(fs); err != nil {
			return nil, nil, err
		}
	}
	if err := o.validate(); err != nil {
		return nil, nil, err
	}
	return o, fs, nil
}

func (o *options) applyConfig(fs *flag.FlagSet) error {
	data, err := os.ReadFile(o.config)
	if err != nil {
		return usagef("read config: %v", err)
	}
	var cfg fileConfig
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return usagef("parse config %s: %v", o.config, err)
	}
	explicit := map[string]bool{}
	fs.Visit(func(f *flag.Flag) { explicit[f.Name] = true })

	if cfg.MinHits != nil && !explicit["min-hits"] {
		if *cfg.MinHits < 0 {
			return usagef("invalid min_hits in config: %d", *cfg.MinHits)
		}
		o.minHits = *cfg.MinHits
	}
	if cfg.Format != "" && !explicit["pretty"] && !explicit["compact"] {
		if cfg.Format != "pretty" && cfg.Format != "compact" {
			return usagef("invalid format in config: %s", cfg.Format)
		}
		o.format = cfg.Format
	}
	setString := func(name, val string, dst *string) {
		if val != "" && !explicit[name] {
			*dst = val
		}
	}
	setString("input-format", cfg.InputFormat, &o.inputFormat)
	setString("driver", cfg.Driver, &o.driver)
	setString("duplicate-keys", cfg.DuplicateKeys, &o.dupKeys)
	setString("log-level", cfg.LogLevel, &o.logLevel)
	setString("lang", cfg.Lang, &o.lang)
	if cfg.MaxDepth != nil && !explicit["max-depth"] {
		o.maxDepth = *cfg.MaxDepth
	}
	if cfg.MaxBytes != nil && !explicit["max-bytes"] {
		o.maxBytes = *cfg.MaxBytes
	}
	return nil
}

func (o *options) validate() error {
	switch o.inputFormat {
	case "auto", "json", "yaml":
	default:
		return usagef("invalid --input-format: %s", o.inputFormat)
	}
	switch o.driver {
	case "", "go-json", "encoding/json":
	default:
		return usagef("invalid --driver: %s", o.driver)
	}
	switch o.dupKeys {
	case "ignore", "warn", "error":
	default:
		return usagef("invalid --duplicate-keys: %s", o.dupKeys)
	}
	if o.maxDepth < 0 || o.maxBytes < 0 {
		return usagef("--max-depth and --max-bytes must not be negative")
	}
	if _, err := o.level(); err != nil {
		return usagef("invalid --log-level: %s", o.logLevel)
	}
	return nil
}

func (o *options) level() (slog.Level, error) {
	if o.verbose {
		return slog.LevelDebug, nil
	}
	var lvl slog.Level
	err := lvl.UnmarshalText([]byte(o.logLevel))
	return lvl, err
}

func (o *options) loadOpt(logger *slog.Logger) jsnore.LoadOpt {
	opt := jsnore.LoadOpt{MaxDepth: o.maxDepth, MaxBytes: o.maxBytes}
	switch o.dupKeys {
	case "warn":
		opt.Strictness.OnDuplicateKey = jsnore.Warn
	case "error":
		opt.Strictness.OnDuplicateKey = jsnore.Error
	}
	switch o.driver {
	case "go-json":
		opt.Driver = drvgojson.Driver()
	case "encoding/json":
		opt.Driver = jsnore.DefaultJSONDriver()
	}
	opt.OnIssue = func(it jsnore.Issue) {
		logger.Warn(i18n.T(it.Code, nil), "code", it.Code, "path", it.Path, "detail", it.Message)
	}
	return opt
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
	i18n.SetLanguage(o.lang)
	lvl, _ := o.level()
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: lvl})).With("component", "jsnore")

	data, code := readInput(o.file, stdin, stdout, stderr, fs)
	if code >= 0 {
		return code
	}
	opt := o.loadOpt(logger)
	var doc any
	if o.isYAML() {
		doc, err = jsnore.LoadYAML(bytes.NewReader(data), opt)
	} else {
		doc, err = jsnore.LoadJSONBytes(data, opt)
	}
	if err != nil {
		printError(stderr, err)
		return 1
	}

	if o.applyMask.set {
		out, err := jsnore.Apply(doc, o.applyMask.expr)
		if err != nil {
			printError(stderr, err)
			return 2
		}
		return encode(stdout, stderr, out, o.format == "pretty")
	}

	rep, err := jsnore.DeriveReport(doc, jsnore.DeriveOpt{MinHits: jsnore.MinHits(o.minHits), Logger: logger})
	if err != nil {
		printError(stderr, err)
		return 1
	}
	if o.report {
		if err := report.Write(stderr, rep); err != nil {
			logger.Error("write report", "err", err)
		}
	}
	if o.maskOnly {
		fmt.Fprintln(stdout, rep.Mask)
		return 0
	}
	slimmed := jsnore.EmptyProjection(doc)
	if rep.Mask != "" {
		if slimmed, err = jsnore.Apply(doc, rep.Mask); err != nil {
			printError(stderr, err)
			return 1
		}
	}
	return encode(stdout, stderr, slimmed, o.format == "pretty")
}

// readInput returns the raw document, or an exit code >= 0 when reading must
// stop.
func readInput(file string, stdin io.Reader, stdout, stderr io.Writer, fs *flag.FlagSet) ([]byte, int) {
	if file != "" {
		data, err := os.ReadFile(file)
		if err != nil {
			fmt.Fprintf(stderr, "failed to read input: %v\n", err)
			return nil, 1
		}
		return data, -1
	}
	if isTerminal(stdin) {
		printUsage(stderr, fs)
		return nil, 2
	}
	data, err := io.ReadAll(stdin)
	if err != nil {
		fmt.Fprintf(stderr, "failed to read input: %v\n", err)
		return nil, 1
	}
	return data, -1
}

func isTerminal(r io.Reader) bool {
	f, ok := r.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func encode(stdout, stderr io.Writer, v any, pretty bool) int {
	if err := jsnore.Encode(stdout, v, pretty); err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	return 0
}

func printUsage(w io.Writer, fs *flag.FlagSet) {
	fmt.Fprint(w, usageText)
	fs.SetOutput(w)
	fs.PrintDefaults()
	fs.SetOutput(io.Discard)
}

func printError(w io.Writer, err error) {
	iss, ok := jsnore.AsIssues(err)
	if !ok {
		fmt.Fprintln(w, err)
		return
	}
	for _, it := range iss {
		printIssue(w, it)
	}
}

// printIssue writes "code at path: localized title: detail".
func printIssue(w io.Writer, it jsnore.Issue) {
	fmt.Fprintf(w, "%s at %s: %s: %s\n", it.Code, it.Path, i18n.T(it.Code, nil), it.Message)
}

type applyMaskFlag struct {
	expr string
	set  bool
}

func (f *applyMaskFlag) String() string { return f.expr }

func (f *applyMaskFlag) Set(s string) error {
	if f.set {
		return errors.New("only one --apply-mask is supported")
	}
	if s == "" {
		return errors.New("missing value for --apply-mask")
	}
	f.expr, f.set = s, true
	return nil
}

type minHitsFlag struct{ n *int }

func (f minHitsFlag) String() string {
	if f.n == nil {
		return ""
	}
	return strconv.Itoa(*f.n)
}

func (f minHitsFlag) Set(s string) error {
	v, err := strconv.Atoi(s)
	if err != nil || v < 0 {
		return errors.New("must be a non-negative integer")
	}
	*f.n = v
	return nil
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
