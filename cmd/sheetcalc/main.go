// Package main provides sheetcalc, which derives Konosuba character sheet
// stats and rolls formulas against them.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/cory-johannsen/konosuba/internal/config"
	"github.com/cory-johannsen/konosuba/internal/game/dice"
	"github.com/cory-johannsen/konosuba/internal/observability"
	"github.com/cory-johannsen/konosuba/internal/scripting"
)

// app carries the dependencies built from configuration before a command runs.
type app struct {
	configPath string
	cfg        config.Config
	logger     *zap.Logger
	src        dice.Source
}

func newRootCmd(src dice.Source) *cobra.Command {
	a := &app{src: src}
	root := &cobra.Command{
		Use:           "sheetcalc",
		Short:         "Konosuba character sheet calculator",
		Long:          `sheetcalc derives ability scores, combat stats and special checks for Konosuba sheets and rolls dice formulas against them.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd.Flags().Changed("config"))
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}
	root.PersistentFlags().StringVar(&a.configPath, "config", "configs/dev.yaml", "path to configuration file")

	root.AddCommand(newDeriveCmd(a))
	root.AddCommand(newRollCmd(a))
	root.AddCommand(newAbilitiesCmd())
	return root
}

// setup loads configuration and builds the logger. The default config path
// is optional; an explicitly passed one must exist.
func (a *app) setup(explicitConfig bool) error {
	cfg, err := config.Load(a.configPath, !explicitConfig)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	logger, err := observability.NewLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("initializing logger: %w", err)
	}
	a.cfg = cfg
	a.logger = logger
	return nil
}

// scripts returns a loaded scripting manager, or nil when scripting is disabled.
func (a *app) scripts(roller *dice.Roller) (*scripting.Manager, error) {
	if a.cfg.Scripting.Dir == "" {
		return nil, nil
	}
	mgr := scripting.NewManager(roller, a.logger, a.cfg.Scripting.InstructionLimit)
	if err := mgr.Load(a.cfg.Scripting.Dir); err != nil {
		return nil, err
	}
	return mgr, nil
}

func main() {
	if err := newRootCmd(dice.NewCryptoSource()).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
