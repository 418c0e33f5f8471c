package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"flintdb/internal/config"
	"flintdb/internal/db"
	"flintdb/internal/session"
	"flintdb/internal/types"
)

var (
	cfgPath  string
	dataDir  string
	logLevel string
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "flintdb",
		Short:        "Interactive flat-file table store",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			manager, err := db.NewManager(cfg.DataDir)
			if err != nil {
				return err
			}
			return session.New(manager, cmd.InOrStdin(), cmd.OutOrStdout()).Run()
		},
	}

	root.PersistentFlags().StringVar(&cfgPath, "config", "flintdb.yml", "path to the configuration file")
	root.PersistentFlags().StringVar(&dataDir, "data-dir", "", "root data directory (overrides the config file)")
	root.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: debug, info, warning, error, none")

	root.AddCommand(tablesCmd(), exportCmd())
	return root
}

// loadConfig merges the config file with the command-line overrides and
// applies the log level.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, err
	}
	if dataDir != "" {
		cfg.DataDir = dataDir
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}
	types.GlobalLogger.SetLevel(types.ParseLevel(cfg.LogLevel))
	return cfg, nil
}

func tablesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tables <database>",
		Short: "List the tables of a database",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			manager, err := db.NewManager(cfg.DataDir)
			if err != nil {
				return err
			}
			store, err := manager.Connect(args[0])
			if err != nil {
				return err
			}
			tables, err := store.Catalog.List()
			if err != nil {
				return err
			}
			for _, table := range tables {
				fmt.Fprintln(cmd.OutOrStdout(), table)
			}
			return nil
		},
	}
}

func exportCmd() *cobra.Command {
	var outDir string

	cmd := &cobra.Command{
		Use:   "export <database> <table>",
		Short: "Export a table to a Parquet snapshot",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			manager, err := db.NewManager(cfg.DataDir)
			if err != nil {
				return err
			}
			store, err := manager.Connect(args[0])
			if err != nil {
				return err
			}
			if outDir == "" {
				outDir = cfg.ExportDir
			}
			path, err := store.ExportParquet(args[1], outDir)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported to %s\n", path)
			return nil
		},
	}

	cmd.Flags().StringVar(&outDir, "out", "", "destination directory for the Parquet file")
	return cmd
}
