package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/conn-castle/compactup/internal/catalogue"
	"github.com/conn-castle/compactup/internal/config"
	"github.com/conn-castle/compactup/internal/console"
	"github.com/conn-castle/compactup/internal/current"
	"github.com/conn-castle/compactup/internal/fetch"
	"github.com/conn-castle/compactup/internal/install"
	"github.com/conn-castle/compactup/internal/layout"
	"github.com/conn-castle/compactup/internal/logging"
	"github.com/conn-castle/compactup/internal/messages"
	"github.com/conn-castle/compactup/internal/platform"
	"github.com/conn-castle/compactup/internal/release"
	"github.com/conn-castle/compactup/internal/root"
	"github.com/conn-castle/compactup/internal/terminal"
	"github.com/conn-castle/compactup/internal/unpack"
)

var (
	getenv          = os.Getenv
	getwd           = os.Getwd
	detectTarget    = platform.Detect
	isTerminal      = terminal.IsInteractive
	isTerminalWrite = terminal.IsTerminalWriter
)

const (
	flagDirectory = "directory"
	flagTarget    = "target"
	flagVerbose   = "verbose"
)

// globalOptions holds persistent flags shared by every command.
type globalOptions struct {
	directory string
	target    platform.Target
	verbose   bool
}

// app is the per-invocation wiring built from flags, environment, and config.
type app struct {
	layout  layout.Layout
	target  platform.Target
	cfg     config.Config
	logger  *log.Logger
	link    *current.Link
	printer *console.Printer
	stderr  io.Writer
}

func newRootCmd(exit func(int)) *cobra.Command {
	opts := &globalOptions{}
	cmd := &cobra.Command{
		Use:           messages.RootUse,
		Short:         messages.RootShort,
		Long:          messages.RootLong,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&opts.directory, flagDirectory, "", messages.RootFlagDirectory)
	flags.Var(&opts.target, flagTarget, messages.RootFlagTarget)
	flags.BoolVarP(&opts.verbose, flagVerbose, "v", false, messages.RootFlagVerbose)
	_ = flags.MarkHidden(flagTarget)

	cmd.AddCommand(
		newCheckCmd(opts),
		newUpdateCmd(opts),
		newListCmd(opts),
		newCleanCmd(opts),
		newCompileCmd(opts, exit),
	)
	return cmd
}

// newApp resolves the root, target, config, and logger for one command.
func (o *globalOptions) newApp(stdout io.Writer, stderr io.Writer) (*app, error) {
	dir, err := root.Resolve(o.directory, getenv)
	if err != nil {
		return nil, err
	}
	l := layout.New(dir)

	target := o.target
	if target == "" {
		target, err = detectTarget()
		if err != nil {
			return nil, err
		}
	}

	cfg, err := config.Load(l.ConfigPath())
	if err != nil {
		return nil, err
	}
	cfg.ApplyEnv(getenv)

	logger := logging.New(stderr, o.verbose || logging.Verbose(getenv(logging.EnvLevel)))
	logger.Debug("resolved root", "dir", dir, "target", target)

	return &app{
		layout:  l,
		target:  target,
		cfg:     cfg,
		logger:  logger,
		link:    current.New(l, logger),
		printer: console.NewPrinter(stdout),
		stderr:  stderr,
	}, nil
}

// source returns the release source, or one that refuses every call when the
// network is disabled.
func (a *app) source() (release.Source, error) {
	if a.cfg.NoNetwork {
		return release.Offline(), nil
	}
	opts := []release.Option{
		release.WithLogger(a.logger),
		release.WithUserAgent(messages.RootUse + "/" + Version),
	}
	if a.cfg.Release.APIURL != "" {
		opts = append(opts, release.WithBaseURL(a.cfg.Release.APIURL))
	}
	if a.cfg.Token != "" {
		opts = append(opts, release.WithToken(a.cfg.Token))
	}
	return release.NewGitHubSource(a.cfg.Release.Owner, a.cfg.Release.Repo, opts...)
}

// progress reports milestones on stderr, animated only on a terminal.
func (a *app) progress() console.Stepper {
	return console.NewProgress(a.stderr, isTerminalWrite(a.stderr))
}

// loadCatalogue fetches the release catalogue behind a progress milestone.
func (a *app) loadCatalogue(ctx context.Context) (*catalogue.Catalogue, error) {
	src, err := a.source()
	if err != nil {
		return nil, err
	}
	var cat *catalogue.Catalogue
	err = a.progress().Step(ctx, messages.InstallStepFetching, func(ctx context.Context) error {
		var err error
		cat, err = catalogue.Load(ctx, src, a.cfg.Release.TagPrefix)
		return err
	})
	if err != nil {
		return nil, err
	}
	return cat, nil
}

// pipeline wires the install pipeline from the resolved configuration.
func (a *app) pipeline() (*install.Pipeline, error) {
	src, err := a.source()
	if err != nil {
		return nil, err
	}
	return &install.Pipeline{
		Layout:     a.layout,
		Target:     a.target,
		Source:     src,
		TagPrefix:  a.cfg.Release.TagPrefix,
		Downloader: fetch.NewHTTPDownloader(a.cfg.DownloadTimeout(), a.cfg.Download.MaxBytes, a.logger),
		Unpacker:   unpack.NewCommand(a.cfg.Unpack.Program, a.cfg.Unpack.Args, a.logger),
		Link:       a.link,
		Progress:   a.progress(),
		Logger:     a.logger,
	}, nil
}

// wrapErr adds a command-level context line to err.
func wrapErr(format string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf(format, err)
}
