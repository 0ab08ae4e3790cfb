package main

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/conn-castle/compactup/internal/clean"
	"github.com/conn-castle/compactup/internal/console"
	"github.com/conn-castle/compactup/internal/messages"
)

var newConfirmer = func() console.Confirmer { return console.NewHuhConfirmer() }

func newCleanCmd(opts *globalOptions) *cobra.Command {
	var cleanOpts clean.Options
	var yes bool
	cmd := &cobra.Command{
		Use:   messages.CleanUse,
		Short: messages.CleanShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := opts.newApp(cmd.OutOrStdout(), cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			if !yes {
				confirmed, err := confirmClean(cleanOpts)
				if err != nil {
					return err
				}
				if !confirmed {
					a.printer.Linef("%s", a.printer.Warn(messages.CleanAborted))
					return nil
				}
			}
			return wrapErr(messages.CleanFailedFmt, runClean(a, cleanOpts))
		},
	}
	cmd.Flags().BoolVarP(&cleanOpts.KeepCurrent, "keep-current", "k", false, messages.CleanFlagKeepCurrent)
	cmd.Flags().BoolVar(&cleanOpts.Cache, "cache", false, messages.CleanFlagCache)
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, messages.CleanFlagYes)
	return cmd
}

func confirmClean(opts clean.Options) (bool, error) {
	if !isTerminal() {
		return false, errors.New(messages.CleanRequiresConfirmation)
	}
	desc := messages.CleanConfirmAllDescription
	if opts.KeepCurrent {
		desc = messages.CleanConfirmKeepDescription
	}
	confirmed, err := newConfirmer().Confirm(messages.CleanConfirmTitle, desc)
	if errors.Is(err, console.ErrPromptAborted) {
		return false, nil
	}
	return confirmed, err
}

// runClean removes toolchains and reports each change.
func runClean(a *app, opts clean.Options) error {
	result, err := clean.Run(a.layout, a.link, opts, a.logger)
	if err != nil {
		return err
	}

	p := a.printer
	for _, v := range result.Removed {
		p.Linef("%s -- %s", p.Version(v), messages.CleanRemoved)
	}
	for _, archive := range result.Archives {
		p.Linef(messages.CleanArchiveRemovedFmt, p.Artifact(archive))
	}
	if result.Kept != nil {
		p.Linef("%s -- %s", p.Version(*result.Kept), p.Success(messages.CleanKept))
	}
	if len(result.Removed) == 0 && len(result.Archives) == 0 {
		p.Linef("%s", messages.CleanNothingRemoved)
	}
	return nil
}
