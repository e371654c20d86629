package cmd

import (
	"context"
	"errors"
	"log"

	"github.com/spf13/cobra"
)

var (
	snapshotOut  string
	snapshotDB   string
	snapshotRole string
)

var snapshotCmd = &cobra.Command{
	Use:   "snapshot",
	Short: "Write a structure-only dump of a configured database",
	RunE: func(cmd *cobra.Command, args []string) error {
		if snapshotOut == "" {
			return errors.New("--out is required")
		}

		cfg, err := GetDBConfig(snapshotRole, snapshotDB)
		if err != nil {
			return err
		}
		dumper, err := dumperFor(cfg)
		if err != nil {
			return err
		}

		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}

		log.Printf("Dumping %s (%s) to %s...", cfg.Name, dumper.Params.Database, snapshotOut)
		if err := dumper.Dump(ctx, snapshotOut); err != nil {
			return err
		}

		// Parse once so a dump the comparer cannot read is noticed now.
		_, err = loadSnapshot(snapshotOut)
		return err
	},
}

func init() {
	RootCmd.AddCommand(snapshotCmd)

	snapshotCmd.Flags().StringVarP(&snapshotOut, "out", "o", "", "Path of the dump file to write")
	snapshotCmd.Flags().StringVar(&snapshotDB, "database", "", "Config entry to dump by name (default: the entry with --role)")
	snapshotCmd.Flags().StringVar(&snapshotRole, "role", RoleSource, "Role of the config entry to dump")
}
