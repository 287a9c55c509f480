package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/cory-johannsen/konosuba/internal/game/sheet"
)

func newDeriveCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "derive [sheet.yaml...]",
		Short: "Print sheets with derived stats filled in",
		Long:  `Derive reads each sheet file (or every sheet in sheets.dir when none are given), computes its derived fields and prints the result as YAML.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			sheets, err := a.loadSheets(args)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for i, s := range sheets {
				if err := sheet.Derive(s); err != nil {
					return fmt.Errorf("deriving %q: %w", s.Name, err)
				}
				a.logger.Debug("derived sheet",
					zap.String("id", s.ID),
					zap.String("name", s.Name),
					zap.String("type", s.Type),
				)
				doc, err := sheet.Encode(s)
				if err != nil {
					return err
				}
				if i > 0 {
					fmt.Fprintln(out, "---")
				}
				if _, err := out.Write(doc); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

func (a *app) loadSheets(paths []string) ([]*sheet.Sheet, error) {
	if len(paths) == 0 {
		return sheet.LoadSheets(a.cfg.Sheets.Dir)
	}
	sheets := make([]*sheet.Sheet, 0, len(paths))
	for _, p := range paths {
		s, err := sheet.LoadSheet(p)
		if err != nil {
			return nil, err
		}
		sheets = append(sheets, s)
	}
	return sheets, nil
}
