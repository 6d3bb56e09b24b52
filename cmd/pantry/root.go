// Root command for the pantry CLI.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/pantry/internal/jsonfile"
	"github.com/mesh-intelligence/pantry/internal/paths"
	"github.com/mesh-intelligence/pantry/internal/sqlite"
	"github.com/mesh-intelligence/pantry/pkg/types"
)

const version = "0.1.0"

// Global flag values.
var (
	flagConfigDir string
	flagDataFile  string
)

// cfg holds the effective configuration, assembled from config.yaml,
// environment, and flags by PersistentPreRunE.
var cfg types.Config

var rootCmd = &cobra.Command{
	Use:     "pantry",
	Short:   "Pantry is a consumables inventory tracker",
	Long:    "Pantry tracks consumable items in a single JSON document and\nserves them to a browser client over a small REST API.",
	Version: version,
	// Do not print usage on errors returned by subcommands.
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		configDir, err := paths.ResolveConfigDir(flagConfigDir)
		if err != nil {
			return err
		}

		v, err := loadConfig(configDir)
		if err != nil {
			return err
		}

		dataFile, err := paths.ResolveDataFile(flagDataFile, v.GetString(cfgKeyDataFile))
		if err != nil {
			return err
		}

		cfg = types.Config{
			Backend:   v.GetString(cfgKeyBackend),
			DataFile:  dataFile,
			Listen:    v.GetString(cfgKeyListen),
			StaticDir: v.GetString(cfgKeyStaticDir),
		}
		return cfg.Validate()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfigDir, "config-dir", "", "configuration directory (default: platform config dir)")
	rootCmd.PersistentFlags().StringVar(&flagDataFile, "data-file", "", "inventory document path (default: $(CWD)/inventory.json)")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(importCmd)
}

// openStore builds the configured Store backend.
func openStore() (types.Store, error) {
	switch cfg.Backend {
	case types.BackendJSONFile:
		return jsonfile.New(cfg.DataFile), nil
	case types.BackendSQLite:
		return sqlite.Open(cfg.DataFile)
	default:
		return nil, fmt.Errorf("%w: %s", types.ErrBackendUnknown, cfg.Backend)
	}
}
