package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	charmlog "github.com/charmbracelet/log"
	"github.com/revi-dev/revi"
	"github.com/revi-dev/revi/chroma"
	"github.com/revi-dev/revi/config"
	"github.com/revi-dev/revi/filediff"
	"github.com/revi-dev/revi/git"
	"github.com/revi-dev/revi/lru"
	"github.com/revi-dev/revi/worddiff"
	"github.com/spf13/cobra"
)

func main() {
	// Set up context with signal handling for graceful shutdown
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	cmd := newRootCmd(os.Stdin, os.Stdout, os.Stderr)
	if err := cmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// newRootCmd builds the command tree. Every subcommand builds its own App
// from configuration before running.
func newRootCmd(stdin io.Reader, stdout, stderr io.Writer) *cobra.Command {
	var (
		configPath string
		debug      bool
	)

	root := &cobra.Command{
		Use:           "revi",
		Short:         "Annotated file diffs for code review",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default $XDG_CONFIG_HOME/revi/config.yaml)")
	root.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "Enable debug logging")

	build := func() (*App, error) {
		cfg, err := config.Load(configPath, debug)
		if err != nil {
			return nil, err
		}
		return newApp(cfg, stdout, stderr)
	}

	root.AddCommand(
		newDiffCmd(build),
		newFilesCmd(build),
		newFingerprintCmd(stdin, stdout),
		newValidateCmd(stdin, stdout),
	)
	return root
}

func newDiffCmd(build func() (*App, error)) *cobra.Command {
	var (
		opts        DiffOptions
		workingTree bool
	)

	cmd := &cobra.Command{
		Use:   "diff [PATH...]",
		Short: "Compute annotated diffs of files",
		Long: `Compute the annotated diff of each PATH between two revisions, or between a
revision and the working tree. Without paths, every changed file is diffed.
Results are written as JSON Lines, or as unified diff text with --format patch.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if workingTree && opts.Head != "" {
				return fmt.Errorf("--head and --working-tree cannot be used together")
			}
			if opts.Head == "" {
				opts.Head = revi.WorkingTree
			}
			root, err := filepath.Abs(opts.RepoRoot)
			if err != nil {
				return err
			}
			opts.RepoRoot = root
			opts.Paths = args

			app, err := build()
			if err != nil {
				return err
			}
			return app.Diff(cmd.Context(), opts)
		},
	}
	cmd.Flags().StringVar(&opts.RepoRoot, "repo", ".", "Repository root")
	cmd.Flags().StringVar(&opts.Base, "base", "HEAD", "Base revision")
	cmd.Flags().StringVar(&opts.Head, "head", "", "Head revision (default: working tree)")
	cmd.Flags().BoolVar(&workingTree, "working-tree", false, "Compare base against the working tree")
	cmd.Flags().BoolVarP(&opts.IgnoreWhitespace, "ignore-whitespace", "w", false, "Ignore whitespace changes")
	cmd.Flags().StringVarP(&opts.Format, "format", "f", FormatJSON, "Output format (json, patch)")
	return cmd
}

func newFilesCmd(build func() (*App, error)) *cobra.Command {
	var repo, base, head string

	cmd := &cobra.Command{
		Use:   "files",
		Short: "List files changed between two revisions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if head == "" {
				head = revi.WorkingTree
			}
			root, err := filepath.Abs(repo)
			if err != nil {
				return err
			}
			app, err := build()
			if err != nil {
				return err
			}
			return app.ListFiles(cmd.Context(), root, base, head)
		},
	}
	cmd.Flags().StringVar(&repo, "repo", ".", "Repository root")
	cmd.Flags().StringVar(&base, "base", "HEAD", "Base revision")
	cmd.Flags().StringVar(&head, "head", "", "Head revision (default: working tree)")
	return cmd
}

func newFingerprintCmd(stdin io.Reader, stdout io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "fingerprint [FILE]",
		Short: "Print the content fingerprint of a file or stdin",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app := &App{Out: stdout}
			if len(args) == 0 {
				return app.Fingerprint(stdin)
			}
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()
			return app.Fingerprint(f)
		},
	}
}

func newValidateCmd(stdin io.Reader, stdout io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "validate [FILE]",
		Short: "Check JSON Lines diff results for structural consistency",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app := &App{Out: stdout}
			if len(args) == 0 {
				return app.Validate(stdin)
			}
			return app.ValidateFile(args[0])
		},
	}
}

// newApp wires the production collaborators.
func newApp(cfg *config.Config, stdout, stderr io.Writer) (*App, error) {
	logger, err := newLogger(cfg.Log.Level, stderr)
	if err != nil {
		return nil, err
	}

	runner := git.NewRunner(git.WithBinary(cfg.Git.Binary))
	service := &filediff.Service{
		Revisions:   runner,
		Highlighter: chroma.NewHighlighter(),
		Languages:   chroma.NewDetector(),
		Words:       worddiff.NewDiffer(),
		Logger:      logger,
	}
	cache, err := lru.NewCache(cfg.Cache.Capacity)
	if err != nil {
		return nil, err
	}

	return &App{
		Out:     stdout,
		Differ:  lru.NewDiffer(service, cache, logger),
		Files:   runner,
		Workers: cfg.Workers,
		Logger:  logger,
	}, nil
}

// newLogger creates a slog logger backed by charmbracelet/log.
func newLogger(level string, w io.Writer) (*slog.Logger, error) {
	lvl, err := charmlog.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level: %w", err)
	}
	charmLogger := charmlog.NewWithOptions(w, charmlog.Options{
		Level:           lvl,
		ReportTimestamp: true,
		TimeFormat:      time.Kitchen,
		Prefix:          "revi",
	})
	return slog.New(charmLogger), nil
}
