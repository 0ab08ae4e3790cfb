package main

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/conn-castle/compactup/internal/dispatch"
	"github.com/conn-castle/compactup/internal/install"
	"github.com/conn-castle/compactup/internal/messages"
	"github.com/conn-castle/compactup/internal/platform"
	"github.com/conn-castle/compactup/internal/version"
)

var newSystem = func() dispatch.System { return dispatch.RealSystem{} }

func newCompileCmd(opts *globalOptions, exit func(int)) *cobra.Command {
	return &cobra.Command{
		Use:                messages.CompileUse,
		Short:              messages.CompileShort,
		Long:               messages.CompileLong,
		DisableFlagParsing: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			args, err := opts.consumeLeadingFlags(args)
			if err != nil {
				return err
			}
			a, err := opts.newApp(cmd.OutOrStdout(), cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			cwd, err := getwd()
			if err != nil {
				return err
			}
			err = runCompile(cmd.Context(), a, args, cwd, exit)
			if errors.Is(err, dispatch.ErrDispatched) {
				return err
			}
			return wrapErr(messages.CompileFailedFmt, err)
		},
	}
}

// runCompile hands the process to the selected compactc.
func runCompile(ctx context.Context, a *app, args []string, cwd string, exit func(int)) error {
	d := &dispatch.Dispatcher{
		Sys:    newSystem(),
		Layout: a.layout,
		Target: a.target,
		Link:   a.link,
		Logger: a.logger,
	}
	if a.cfg.Compile.AutoInstall {
		d.Ensure = func(ctx context.Context, v version.Version) (string, error) {
			pipeline, err := a.pipeline()
			if err != nil {
				return "", err
			}
			spec := version.Exact(v)
			outcome, err := pipeline.Install(ctx, install.Request{Spec: &spec})
			if err != nil {
				return "", err
			}
			return outcome.Entrypoint, nil
		}
	}
	return d.Exec(ctx, args, cwd, exit)
}

// consumeLeadingFlags applies global flags that precede the compiler
// arguments. Flag parsing is disabled for compile so everything else is
// forwarded untouched.
func (o *globalOptions) consumeLeadingFlags(args []string) ([]string, error) {
	for len(args) > 0 {
		arg := args[0]
		name, value, hasValue := strings.Cut(strings.TrimLeft(arg, "-"), "=")
		switch {
		case arg == "--":
			return args[1:], nil
		case arg == "-v" || arg == "--"+flagVerbose:
			o.verbose = true
			args = args[1:]
			continue
		case !strings.HasPrefix(arg, "--") || (name != flagDirectory && name != flagTarget):
			return args, nil
		}
		if !hasValue {
			if len(args) < 2 {
				return nil, fmt.Errorf(messages.CompileFlagValueRequiredFmt, arg)
			}
			value = args[1]
			args = args[1:]
		}
		args = args[1:]
		if name == flagDirectory {
			o.directory = value
			continue
		}
		target, err := platform.Parse(value)
		if err != nil {
			return nil, err
		}
		o.target = target
	}
	return args, nil
}
