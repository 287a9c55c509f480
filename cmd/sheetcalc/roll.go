package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/cory-johannsen/konosuba/internal/game/dice"
	"github.com/cory-johannsen/konosuba/internal/game/sheet"
)

func newRollCmd(a *app) *cobra.Command {
	var (
		showData bool
		seed     uint64
	)
	cmd := &cobra.Command{
		Use:   "roll <sheet.yaml> <formula>",
		Short: "Roll a dice formula against a sheet",
		Long: `Roll derives the sheet, builds its roll data (running Lua hooks from scripting.dir when set)
and rolls the formula. Formulas reference roll data with @paths, e.g. "2d6+@stats.combat.hitCheck.total".`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := sheet.LoadSheet(args[0])
			if err != nil {
				return err
			}
			if err := sheet.Derive(s); err != nil {
				return fmt.Errorf("deriving %q: %w", s.Name, err)
			}

			src := a.src
			if cmd.Flags().Changed("seed") {
				src = dice.NewSeededSource(seed)
			}
			roller := dice.NewLoggedRoller(src, a.logger)
			var aug sheet.Augmenter = sheet.NopAugmenter{}
			mgr, err := a.scripts(roller)
			if err != nil {
				return err
			}
			if mgr != nil {
				defer mgr.Close()
				aug = mgr
			}

			data, err := sheet.BuildRollData(s, aug)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if showData {
				raw, err := yaml.Marshal(data)
				if err != nil {
					return fmt.Errorf("encoding roll data: %w", err)
				}
				if _, err := out.Write(raw); err != nil {
					return err
				}
			}

			result, err := roller.RollFormula(args[1], data)
			if err != nil {
				return err
			}
			fmt.Fprintln(out, result.String())
			return nil
		},
	}
	cmd.Flags().BoolVar(&showData, "show-data", false, "print the roll data before rolling")
	cmd.Flags().Uint64Var(&seed, "seed", 0, "roll with a reproducible seeded source")
	return cmd
}
