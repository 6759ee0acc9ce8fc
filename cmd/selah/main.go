package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	selah "github.com/selah-app/selah/pkg"
	"github.com/selah-app/selah/pkg/config"
	pkgdb "github.com/selah-app/selah/pkg/db"
)

var (
	dbPath   string
	walMode  bool
	syncMode string
	verbose  bool
)

var rootCmd = &cobra.Command{
	Use:     "selah",
	Short:   "A spiritual journal for meditations and sermons, kept on your own machine.",
	Long:    ``,
	Version: fmt.Sprintf("v%s", selah.Version),
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

var completionShells = []string{"bash", "zsh", "fish", "powershell"}

var completionCmd = &cobra.Command{
	Use:   fmt.Sprintf("completion %s", strings.Join(completionShells, "|")),
	Short: "Generate shell completion scripts",
	Long: `Generate shell completion scripts for selah.

The command prints a completion script to stdout. You can source it in your shell
or install it to the appropriate location for your shell to enable completions permanently.

Examples:

  Bash (current shell):
    $ source <(selah completion bash)

  Bash (persist):
    $ selah completion bash > /etc/bash_completion.d/selah

  Zsh:
    $ selah completion zsh > "${fpath[1]}/_selah"

  Fish:
    $ selah completion fish | source
    $ selah completion fish > ~/.config/fish/completions/selah.fish

  PowerShell:
    PS> selah completion powershell | Out-String | Invoke-Expression`,
	DisableFlagsInUseLine: true,
	ValidArgs:             completionShells,
	Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	RunE: func(cmd *cobra.Command, args []string) error {
		switch args[0] {
		case "bash":
			return rootCmd.GenBashCompletion(cmd.OutOrStdout())
		case "zsh":
			return rootCmd.GenZshCompletion(cmd.OutOrStdout())
		case "fish":
			return rootCmd.GenFishCompletion(cmd.OutOrStdout(), true)
		case "powershell":
			return rootCmd.GenPowerShellCompletion(cmd.OutOrStdout())
		default:
			return fmt.Errorf("unsupported shell: %s", args[0])
		}
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of selah",
	Long:  `All software has versions. This is selah's`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(selah.Version)
	},
}

var dbCmd = &cobra.Command{
	Use:   "db",
	Short: "Manage the selah database",
	Long:  `Provides commands for managing the Selah SQLite database, including schema upgrades.`,
}

var dbUpgradeCmd = &cobra.Command{
	Use:   "upgrade",
	Short: "Upgrade the Selah database schema to the latest version for the journaldb component",
	Long: `Connects to the SQLite database at the specified path (provided with the --db flag) and applies any necessary
schema migrations to bring the journaldb component up to the current application schema version.
If the database does not exist or is uninitialized for this component, it will be created
and initialized with the latest schema for the journaldb component.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if dbPath == "" {
			return errors.New("database path is required")
		}

		fmt.Printf("Attempting to upgrade journaldb component in database at: %s (WAL: %t, Sync: %s)\n", dbPath, walMode, syncMode)

		dbConn, err := pkgdb.OpenDBConnection(dbPath, walMode, syncMode)
		if err != nil {
			return err
		}
		defer dbConn.Close()

		return pkgdb.UpgradeDB(dbConn, dbPath, pkgdb.TargetSchemaVersion)
	},
}

func initCmd() {
	// Environment values act as flag defaults; an explicit flag wins
	cfg := config.LoadConfig()

	// Define persistent DB flags on rootCmd so all commands can use them
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "Path to the database file (uses system-specific default if not provided)")
	rootCmd.PersistentFlags().BoolVar(&walMode, "wal", cfg.EnableWAL, "Enable SQLite WAL (Write-Ahead Logging) mode")
	rootCmd.PersistentFlags().StringVar(&syncMode, "sync", cfg.SyncPragma, "SQLite synchronous pragma (OFF, NORMAL, FULL, EXTRA)")
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", cfg.Verbose, "Enable debug logging")

	dbCmd.AddCommand(dbUpgradeCmd)

	initMeditationsCmd()
	initSermonsCmd()
	initFavoritesCmd()
	initSearchCmd()
	initExportCmd()
	initImportCmd()
	initBackupCmd()
	initSyncCmd()
	initSettingsCmd()
	rootCmd.AddCommand(completionCmd, versionCmd, dbCmd,
		meditationsCmd, sermonsCmd, favoritesCmd, pinCmd, searchCmd,
		exportCmd, importCmd, backupCmd, syncCmd, settingsCmd, mcpCmd, tuiCmd)
}

func main() {
	initCmd()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
