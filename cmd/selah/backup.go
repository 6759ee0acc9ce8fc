package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/selah-app/selah/pkg/backup"
	"github.com/selah-app/selah/pkg/config"
	"github.com/selah-app/selah/pkg/porter"
	"github.com/selah-app/selah/pkg/utils"
)

var backupRootFlag string

var backupCmd = &cobra.Command{
	Use:   "backup",
	Short: "Manage local journal backups",
	Long: `Write timestamped JSON snapshots of the journal under
<root>/SpiritualReflections/Backup, list them, and restore from them.`,
}

// backupBackend builds the filesystem backend from the --root flag, the
// environment, or the default Documents folder.
func backupBackend() *backup.Filesystem {
	root := backupRootFlag
	if root == "" {
		root = config.LoadConfig().BackupRoot
	}
	if root == "" {
		root = utils.GetDefaultBackupRoot()
	}
	return backup.NewFilesystem(root, newLogger())
}

var backupInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create the backup directory tree",
	RunE: func(cmd *cobra.Command, args []string) error {
		b := backupBackend()
		if err := b.EnsureDirectory(); err != nil {
			return err
		}
		fmt.Printf("Backup directory ready: %s\n", b.Dir())
		return nil
	},
}

var backupCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Write a snapshot of the journal",
	RunE: func(cmd *cobra.Command, args []string) error {
		conn, store, err := openStore(cmd.Context())
		if err != nil {
			return err
		}
		defer conn.Close()

		data, err := porter.ExportJSON(store.Meditations(), store.Sermons(), time.Now())
		if err != nil {
			return fmt.Errorf("failed to serialize journal: %w", err)
		}

		name, err := backup.AutoBackup(backupBackend(), data)
		if err != nil {
			return err
		}

		fmt.Printf("Snapshot written: %s\n", name)
		return nil
	},
}

var backupListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored snapshots, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		snapshots, err := backupBackend().ListSnapshots()
		if err != nil {
			return err
		}

		if len(snapshots) == 0 {
			fmt.Println("No snapshots found.")
			return nil
		}

		for _, s := range snapshots {
			fmt.Printf("%s  %d bytes  %s\n", s.Name, s.Size, s.ModTime.Format(time.RFC3339))
		}
		return nil
	},
}

var backupRestoreCmd = &cobra.Command{
	Use:   "restore [snapshot-name]",
	Short: "Replace the journal with a snapshot's contents",
	Long: `Read the named snapshot and replace both collections with its contents.
The current journal is overwritten; take a fresh snapshot first if in doubt.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		force, _ := cmd.Flags().GetBool("force")
		if !force {
			fmt.Printf("Restoring '%s' overwrites the current journal. Re-run with --force to confirm.\n", args[0])
			return nil
		}

		data, err := backupBackend().ReadSnapshot(args[0])
		if err != nil {
			return err
		}

		conn, store, err := openStore(cmd.Context())
		if err != nil {
			return err
		}
		defer conn.Close()

		preview, err := porter.Restore(cmd.Context(), store, data)
		if err != nil {
			return fmt.Errorf("failed to restore snapshot: %w", err)
		}

		for _, msg := range preview.Errors {
			fmt.Printf("dropped: %s\n", msg)
		}
		fmt.Printf("Restored %d meditations and %d sermons from %s\n",
			len(preview.Meditations), len(preview.Sermons), args[0])
		return nil
	},
}

func initBackupCmd() {
	backupCmd.PersistentFlags().StringVar(&backupRootFlag, "root", "", "Storage root for the backup tree (defaults to the Documents folder)")
	backupRestoreCmd.Flags().Bool("force", false, "Skip the confirmation step")

	backupCmd.AddCommand(backupInitCmd, backupCreateCmd, backupListCmd, backupRestoreCmd)
}
