package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/conn-castle/compactup/internal/install"
	"github.com/conn-castle/compactup/internal/messages"
	"github.com/conn-castle/compactup/internal/version"
)

func newUpdateCmd(opts *globalOptions) *cobra.Command {
	var noSetDefault bool
	cmd := &cobra.Command{
		Use:   messages.UpdateUse,
		Short: messages.UpdateShort,
		Long:  messages.UpdateLong,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var spec *version.Spec
			if len(args) == 1 {
				parsed, err := version.ParseSpec(args[0])
				if err != nil {
					return err
				}
				spec = &parsed
			}
			a, err := opts.newApp(cmd.OutOrStdout(), cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			req := install.Request{Spec: spec, Activate: !noSetDefault}
			return wrapErr(messages.UpdateFailedFmt, runUpdate(cmd.Context(), a, req))
		},
	}
	cmd.Flags().BoolVar(&noSetDefault, "no-set-default", false, messages.UpdateFlagNoSetDefault)
	return cmd
}

// runUpdate installs the requested version and reports the outcome.
func runUpdate(ctx context.Context, a *app, req install.Request) error {
	pipeline, err := a.pipeline()
	if err != nil {
		return err
	}
	outcome, err := pipeline.Install(ctx, req)
	if err != nil {
		return err
	}

	p := a.printer
	state := messages.UpdateInstalled
	if outcome.AlreadyInstalled() {
		state = messages.UpdateAlreadyInstalled
	}
	p.Status(outcome.Target, p.Version(outcome.Version), state)
	if outcome.Activated {
		p.Status(outcome.Target, p.Version(outcome.Version), p.Success(messages.UpdateDefault)+".")
	}
	return nil
}
