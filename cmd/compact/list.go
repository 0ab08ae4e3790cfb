package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/conn-castle/compactup/internal/install"
	"github.com/conn-castle/compactup/internal/messages"
	"github.com/conn-castle/compactup/internal/version"
)

func newListCmd(opts *globalOptions) *cobra.Command {
	var installed bool
	cmd := &cobra.Command{
		Use:   messages.ListUse,
		Short: messages.ListShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := opts.newApp(cmd.OutOrStdout(), cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			return wrapErr(messages.ListFailedFmt, runList(cmd.Context(), a, installed))
		},
	}
	cmd.Flags().BoolVarP(&installed, "installed", "i", false, messages.ListFlagInstalled)
	return cmd
}

// runList prints remote or locally installed versions in ascending order,
// marking the active one.
func runList(ctx context.Context, a *app, installed bool) error {
	tc, active, err := a.link.Resolve()
	if err != nil {
		return err
	}

	var versions []version.Version
	header := messages.ListAvailableHeader
	if installed {
		header = messages.ListInstalledHeader
		if versions, err = install.InstalledVersions(a.layout); err != nil {
			return err
		}
	} else {
		cat, err := a.loadCatalogue(ctx)
		if err != nil {
			return err
		}
		versions = cat.Versions()
	}

	p := a.printer
	p.Linef("%s\n", p.Artifact(header))
	for _, v := range versions {
		p.ListItem(v, active && v == tc.Version)
	}
	return nil
}
