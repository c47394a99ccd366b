package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/phobologic/numgen/internal/logging"
)

const (
	sentinelStart = "// numgen:start"
	sentinelEnd   = "// numgen:end"
)

// newSpliceCmd builds the `numgen splice` subcommand, which writes (or
// updates) the generated declarations inside an existing source file.
func newSpliceCmd(opts *options, stdout, stderr io.Writer) *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "splice [flags] FILE",
		Short: "Write the generated declarations into an existing source file",
		Long: `Render the numerics without any file header and place them between the
sentinel comments

  ` + sentinelStart + `
  ` + sentinelEnd + `

in FILE, so the region can be regenerated in place on subsequent runs without
touching surrounding code. The block is appended when the sentinels are absent
and FILE is created if it does not exist.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSplice(cmd, opts, args[0], dryRun, stdout, stderr)
		},
	}
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "print what would be written without modifying the file")
	return cmd
}

func runSplice(cmd *cobra.Command, opts *options, path string, dryRun bool, stdout, stderr io.Writer) error {
	cfg, err := loadConfig(cmd, opts)
	if err != nil {
		return err
	}

	log := logging.New(stderr, opts.verbose)
	defer func() { _ = log.Sync() }()

	res, err := generate(cfg, true, log)
	if err != nil {
		return err
	}

	existing, err := os.ReadFile(path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("reading %s: %w", path, err)
	}
	updated := applySection(string(existing), section(res.Text))

	if dryRun {
		_, _ = fmt.Fprint(stdout, updated)
		return nil
	}

	if err := writeFileAtomic(path, []byte(updated)); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}

	log.Info("spliced numerics", zap.String("file", path), zap.Int("numerics", len(res.Numerics)))
	return nil
}

// section wraps rendered declarations in the sentinel comments.
func section(rendered string) string {
	body := strings.Trim(rendered, "\n")
	if body == "" {
		return sentinelStart + "\n" + sentinelEnd
	}
	return sentinelStart + "\n" + body + "\n" + sentinelEnd
}

// applySection inserts section into content, replacing an existing sentinel
// block if present or appending if not. It is a pure function for easy testing.
func applySection(content, section string) string {
	start := strings.Index(content, sentinelStart)
	end := strings.Index(content, sentinelEnd)

	if start >= 0 && end > start {
		return content[:start] + section + content[end+len(sentinelEnd):]
	}

	// Append, ensuring a blank line separator.
	if len(content) > 0 && !strings.HasSuffix(content, "\n") {
		content += "\n"
	}
	return content + "\n" + section + "\n"
}
