package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vbonduro/trailplan/internal/checklist"
)

func newSessionsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "sessions",
		Short: "List sessions that have a stored checklist, most recent first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			states, err := a.openStore()
			if err != nil {
				return err
			}
			scopes, err := states.Scopes(cmd.Context(), checklist.StorageKey)
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			for _, scope := range scopes {
				raw, err := states.Get(cmd.Context(), scope, checklist.StorageKey)
				if err != nil {
					return err
				}
				fmt.Fprintf(w, "%s\t%d checked\n", scope, checklist.Decode(raw).Len())
			}
			return nil
		},
	}
}

func newForgetCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "forget <session>",
		Short: "Delete the stored checklist of a session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			states, err := a.openStore()
			if err != nil {
				return err
			}
			if err := states.Delete(cmd.Context(), args[0], checklist.StorageKey); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "forgot session %q\n", args[0])
			return nil
		},
	}
}
