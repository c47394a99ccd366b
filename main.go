// numgen generates IRC numeric declarations from a YAML numerics list.
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/phobologic/numgen/internal/aggregate"
	"github.com/phobologic/numgen/internal/check"
	"github.com/phobologic/numgen/internal/config"
	"github.com/phobologic/numgen/internal/discover"
	"github.com/phobologic/numgen/internal/logging"
	"github.com/phobologic/numgen/internal/model"
	"github.com/phobologic/numgen/internal/order"
	"github.com/phobologic/numgen/internal/render"
	"github.com/phobologic/numgen/internal/source"
)

var version = "dev"

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// options holds the flags shared by every command.
type options struct {
	configPath string
	verbose    bool

	input     string
	output    string
	target    string
	order     string
	pkg       string
	only      []string
	normalize bool
	noCheck   bool
}

func run(args []string, stdout, stderr io.Writer) error {
	root := newRootCmd(stdout, stderr)
	root.SetArgs(args)
	return root.Execute()
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	opts := &options{}
	var (
		toStdout bool
		ifStale  bool
	)

	cmd := &cobra.Command{
		Use:   "numgen",
		Short: "Generate IRC numeric declarations from a YAML numerics list",
		Long: `numgen reads the "values" list of a numerics YAML file (or every YAML file
in a directory), merges entries that share a name, sorts them by their lowest
numeric value and writes one documented declaration per numeric.

Values are compared as strings by default, so "100" sorts before "20".
Use --order numeric to compare them as integers instead.

The output file defaults to "numerics" plus the target's extension
(numerics.cs, numerics.go).

Each documentation line is written as a whole line, so a section ends with
its last text line and no empty "/// " line follows it. Output is therefore
not byte-for-byte identical to generators that emit one.`,
		Version:       version,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(cmd, opts, toStdout, ifStale, stdout, stderr)
		},
	}
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	pf := cmd.PersistentFlags()
	pf.StringVar(&opts.configPath, "config", config.DefaultPath, "config file path")
	pf.BoolVarP(&opts.verbose, "verbose", "v", false, "enable debug logging")
	pf.StringVarP(&opts.input, "input", "i", "", "input YAML file or directory")
	pf.StringVarP(&opts.output, "output", "o", "", "output file (default numerics.<target extension>)")
	pf.StringVarP(&opts.target, "target", "t", "", "output language (csharp, go)")
	pf.StringVar(&opts.order, "order", "", "value comparison (lexical, numeric)")
	pf.StringVar(&opts.pkg, "package", "", "package clause for the go target")
	pf.StringSliceVar(&opts.only, "only", nil, "comma-separated name prefixes to keep")
	pf.BoolVar(&opts.normalize, "normalize", false, "apply Unicode NFC to documentation text")
	pf.BoolVar(&opts.noCheck, "no-check", false, "skip parsing the rendered output")

	cmd.Flags().BoolVar(&toStdout, "stdout", false, "print the result instead of writing the output file")
	cmd.Flags().BoolVar(&ifStale, "if-stale", false,
		"skip generation when the output is newer than every input and the config file (compares modification times only, so changed flags or NUMGEN_* variables are not detected)")

	cmd.AddCommand(newSpliceCmd(opts, stdout, stderr))
	cmd.AddCommand(newInitCmd(opts, stderr))
	return cmd
}

// loadConfig reads the config file and applies explicitly set flags on top.
func loadConfig(cmd *cobra.Command, opts *options) (*config.Config, error) {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return nil, err
	}
	applyFlags(cmd, opts, cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	cfg.Resolve()
	return cfg, nil
}

// applyFlags copies the flags set on the command line into cfg.
func applyFlags(cmd *cobra.Command, opts *options, cfg *config.Config) {
	flags := cmd.Flags()
	if flags.Changed("input") {
		cfg.Input = opts.input
	}
	if flags.Changed("output") {
		cfg.Output = opts.output
	}
	if flags.Changed("target") {
		cfg.Target = opts.target
	}
	if flags.Changed("order") {
		cfg.Order = opts.order
	}
	if flags.Changed("package") {
		cfg.Package = opts.pkg
	}
	if flags.Changed("only") {
		cfg.Only = opts.only
	}
	if flags.Changed("normalize") {
		cfg.Normalize = opts.normalize
	}
	if flags.Changed("no-check") {
		cfg.Check = !opts.noCheck
	}
}

func runGenerate(cmd *cobra.Command, opts *options, toStdout, ifStale bool, stdout, stderr io.Writer) error {
	cfg, err := loadConfig(cmd, opts)
	if err != nil {
		return err
	}

	log := logging.New(stderr, opts.verbose)
	defer func() { _ = log.Sync() }()

	if ifStale && !toStdout && outputIsFresh(cfg.Output, cfg.Input, opts.configPath) {
		log.Info("output up to date", zap.String("output", cfg.Output))
		return nil
	}

	res, err := generate(cfg, false, log)
	if err != nil {
		return err
	}

	if toStdout {
		_, _ = io.WriteString(stdout, res.Text)
		return nil
	}

	if err := writeFileAtomic(cfg.Output, []byte(res.Text)); err != nil {
		return err
	}

	log.Info("generated numerics",
		zap.String("output", cfg.Output),
		zap.Int("inputs", len(res.Inputs)),
		zap.Int("records", res.Records),
		zap.Int("numerics", len(res.Numerics)))
	return nil
}

// result is a completed, not yet written, generation.
type result struct {
	Inputs   []string
	Records  int
	Numerics []*model.Numeric
	Text     string
}

// generate runs the whole transform in memory. Nothing is written, so any
// error leaves existing output untouched.
func generate(cfg *config.Config, fragment bool, log *zap.Logger) (*result, error) {
	less, err := order.ForName(cfg.Order)
	if err != nil {
		return nil, err
	}
	target, err := render.Lookup(cfg.Target)
	if err != nil {
		return nil, err
	}

	inputs, err := discover.Inputs(cfg.Input)
	if err != nil {
		return nil, fmt.Errorf("discovering inputs: %w", err)
	}

	var records []model.Record
	for _, path := range inputs {
		recs, err := source.ReadFile(path)
		if err != nil {
			return nil, err
		}
		log.Debug("decoded records", zap.String("file", path), zap.Int("records", len(recs)))
		records = append(records, recs...)
	}
	table := aggregate.Build(records, less)

	numerics := table.Numerics()
	order.Sort(numerics, less)
	numerics = order.Select(numerics, cfg.Only)
	log.Debug("merged numerics",
		zap.Int("records", len(records)),
		zap.Int("numerics", table.Len()),
		zap.Int("selected", len(numerics)))

	text := render.Render(numerics, target, render.Options{
		Package:   cfg.Package,
		Normalize: cfg.Normalize,
		Fragment:  fragment,
	})

	if cfg.Check {
		names := make([]string, len(numerics))
		for i, n := range numerics {
			names[i] = n.Name
		}
		if err := check.Verify(cfg.Target, []byte(text), names); err != nil {
			return nil, fmt.Errorf("checking output: %w", err)
		}
	}

	return &result{
		Inputs:   inputs,
		Records:  len(records),
		Numerics: numerics,
		Text:     text,
	}, nil
}

// outputIsFresh reports whether output is newer than every input file and
// the config file, if one exists. Settings given by flags or the environment
// are not compared.
func outputIsFresh(output, input, configPath string) bool {
	outInfo, err := os.Stat(output)
	if err != nil {
		return false
	}

	inputs, err := discover.Inputs(input)
	if err != nil {
		return false
	}
	if _, err := os.Stat(configPath); err == nil {
		inputs = append(inputs, configPath)
	}

	newest, ok := discover.Newest(inputs)
	if !ok {
		return false
	}
	return newest < outInfo.ModTime().UnixNano()
}

// writeFileAtomic writes data to a temporary file beside path and renames it
// into place, so readers never observe a partial file.
func writeFileAtomic(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write temp output: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("rename output: %w", err)
	}
	return nil
}
