package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/selah-app/selah/pkg/cloudsync"
	"github.com/selah-app/selah/pkg/config"
	"github.com/selah-app/selah/pkg/porter"
)

var syncEmailFlag string

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Synchronize the journal with the simulated cloud",
	Long: `Connect to the simulated cloud drive and upload the journal. No data
leaves the machine; the payload is mirrored into the local store so a
restore path exists.`,
}

var syncNowCmd = &cobra.Command{
	Use:   "now",
	Short: "Connect and upload the journal",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.LoadConfig()
		email := syncEmailFlag
		if email == "" {
			email = cfg.SyncEmail
		}

		conn, store, err := openStore(cmd.Context())
		if err != nil {
			return err
		}
		defer conn.Close()

		client := cloudsync.NewClient(email, conn, newLogger())
		client.SetDelay(time.Duration(cfg.SyncDelayMs) * time.Millisecond)
		if err := client.Connect(cmd.Context()); err != nil {
			return err
		}

		payload, err := porter.ExportJSON(store.Meditations(), store.Sermons(), time.Now())
		if err != nil {
			return fmt.Errorf("failed to serialize journal: %w", err)
		}

		if err := client.Sync(cmd.Context(), payload); err != nil {
			return err
		}

		fmt.Printf("Synced %d meditations and %d sermons at %s (device %s)\n",
			len(store.Meditations()), len(store.Sermons()),
			client.LastSync().Format(time.RFC3339), client.DeviceID())
		return nil
	},
}

var syncConnectCmd = &cobra.Command{
	Use:   "connect",
	Short: "Check the simulated cloud connection",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.LoadConfig()
		email := syncEmailFlag
		if email == "" {
			email = cfg.SyncEmail
		}

		conn, err := openDB()
		if err != nil {
			return err
		}
		defer conn.Close()

		client := cloudsync.NewClient(email, conn, newLogger())
		client.SetDelay(time.Duration(cfg.SyncDelayMs) * time.Millisecond)
		if err := client.Connect(cmd.Context()); err != nil {
			return err
		}

		fmt.Printf("Connected as %s (device %s)\n", email, client.DeviceID())
		return nil
	},
}

func initSyncCmd() {
	syncCmd.PersistentFlags().StringVar(&syncEmailFlag, "email", "", "Account email for the simulated cloud (or SELAH_SYNC_EMAIL)")

	syncCmd.AddCommand(syncConnectCmd, syncNowCmd)
}
