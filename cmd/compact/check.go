package main

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"github.com/conn-castle/compactup/internal/messages"
)

func newCheckCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   messages.CheckUse,
		Short: messages.CheckShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := opts.newApp(cmd.OutOrStdout(), cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			return wrapErr(messages.CheckFailedFmt, runCheck(cmd.Context(), a))
		},
	}
}

// runCheck compares the active toolchain with the newest published version.
func runCheck(ctx context.Context, a *app) error {
	if err := a.layout.EnsureDirectories(); err != nil {
		return err
	}
	tc, active, err := a.link.Resolve()
	if err != nil {
		return err
	}
	cat, err := a.loadCatalogue(ctx)
	if err != nil {
		return err
	}
	latest, ok := cat.Latest()
	if !ok {
		return errors.New(messages.CheckNoVersionAvailable)
	}

	p := a.printer
	showLatest := true
	if active {
		status := p.Warn(messages.CheckUpdateAvailable)
		if tc.Version.Compare(latest.Version) >= 0 {
			status = p.Success(messages.CheckUpToDate)
			showLatest = false
		}
		p.Status(tc.Target, status, p.Version(tc.Version))
	} else {
		p.Linef("%s.", p.Warn(messages.CheckNoVersionInstalled))
	}
	if showLatest {
		p.Linef(messages.CheckLatestFmt, p.Version(latest.Version))
	}
	return nil
}
