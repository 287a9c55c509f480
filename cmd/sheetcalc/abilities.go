package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cory-johannsen/konosuba/internal/game/sheet"
)

func newAbilitiesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "abilities",
		Short: "List ability keys and their localization labels",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			for _, k := range sheet.Abilities {
				fmt.Fprintf(out, "%-12s %s %s\n", k, sheet.ShortName(k), sheet.Label(k))
			}
			return nil
		},
	}
}
