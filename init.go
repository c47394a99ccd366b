package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/phobologic/numgen/internal/config"
)

// newInitCmd builds `numgen init`, which writes a config file holding the
// defaults plus any settings given on the command line.
func newInitCmd(opts *options, stderr io.Writer) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init [flags]",
		Short: "Write a config file with the default settings",
		Long: `Write the default settings, plus any settings given as flags, to the config
file (--config, default .numgen.yaml). An existing file is left alone unless
--force is given. The output path is only written when -o is set; otherwise
it keeps following the target.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInit(cmd, opts, force, stderr)
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing config file")
	return cmd
}

func runInit(cmd *cobra.Command, opts *options, force bool, stderr io.Writer) error {
	path := opts.configPath
	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("%s already exists (use --force to overwrite)", path)
	} else if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("checking %s: %w", path, err)
	}

	cfg := config.DefaultConfig()
	applyFlags(cmd, opts, cfg)
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	if err := cfg.Save(path); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(stderr, "wrote config to %s\n", path)
	return nil
}
