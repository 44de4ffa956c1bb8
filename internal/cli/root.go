// Package cli implements the command-line interface for cubesolver.
package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/SeamusWaldron/cubesolver/internal/config"
	"github.com/SeamusWaldron/cubesolver/internal/logging"
	"github.com/SeamusWaldron/cubesolver/internal/storage"
)

const version = "0.1.0"

var (
	// Global flags
	cfgFile string
	verbose bool

	cfg    *config.Config
	logger = zap.NewNop()
)

// rootCmd is the base command.
var rootCmd = &cobra.Command{
	Use:   "cubesolver",
	Short: "Layer-by-layer Rubik's Cube solver",
	Long: `cubesolver - solve a 3x3x3 Rubik's Cube from its sticker colors.

Give it the 54 stickers of a scrambled cube and it prints the quarter turns
that solve it, phase by phase: daisy, cross, first layer corners, second
layer edges, last layer cross, last layer permutation.

Solves are kept in a local history database, can be replayed step by step
in the terminal, and the same solver is served over HTTP and websocket.`,
	Version:           version,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: loadConfig,
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logger.Sync()
	},
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfgFile, "config", "", "Config file (default: ./cubesolver.yaml or ~/.cubesolver/cubesolver.yaml)")
	pf.String("db", "", "Database file path (default: ~/.cubesolver/cubesolver.db)")
	pf.String("storage", "", "History storage driver (sqlite, postgres, none)")
	pf.String("log-level", "", "Log level (debug, info, warn, error)")
	pf.String("log-format", "", "Log format (console, json)")
	pf.Int("max-rotations", 0, "Rotation limit per solve")
	pf.BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
}

// flagKeys binds persistent flags onto config keys.
var flagKeys = map[string]string{
	"db":            "storage.path",
	"storage":       "storage.driver",
	"log-level":     "logging.level",
	"log-format":    "logging.format",
	"max-rotations": "solver.max_rotations",
}

func loadConfig(cmd *cobra.Command, args []string) error {
	v := config.New(cfgFile)
	if err := config.Read(v, cfgFile != ""); err != nil {
		return err
	}
	if err := bindFlags(v, cmd); err != nil {
		return err
	}
	if verbose {
		v.Set("logging.level", "debug")
	}

	c, err := config.Decode(v)
	if err != nil {
		return err
	}
	cfg = c

	l, err := logging.New(cfg.Logging)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	logger = l
	logger.Debug("config loaded", zap.String("file", v.ConfigFileUsed()))
	return nil
}

// bindFlags binds only flags that were set, so an empty flag default never
// hides a file or environment value.
func bindFlags(v *viper.Viper, cmd *cobra.Command) error {
	for name, key := range flagKeys {
		f := cmd.Flags().Lookup(name)
		if f == nil || !f.Changed {
			continue
		}
		if err := v.BindPFlag(key, f); err != nil {
			return fmt.Errorf("failed to bind --%s: %w", name, err)
		}
	}
	return nil
}

// openStore opens the configured history store. A nil store means
// history is disabled.
func openStore(ctx context.Context) (storage.Store, error) {
	return storage.OpenStore(ctx, cfg.Storage)
}
