package cmd

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/spf13/cobra"

	"struct-sync/internal/dialect"
)

var (
	listRole    string
	listName    string
	listSchemas bool
)

var databasesCmd = &cobra.Command{
	Use:   "databases",
	Short: "Check the configured server and list its databases",
	RunE: func(cmd *cobra.Command, args []string) error {
		config, err := GetDBConfig(listRole, listName)
		if err != nil {
			return err
		}

		db, d, err := openDB(config)
		if err != nil {
			return err
		}
		defer db.Close()

		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()

		log.Printf("Using Dialect: %s\n", d.Name())
		if err := dialect.CheckConnection(ctx, db, d); err != nil {
			return fmt.Errorf("failed to connect to db: %w", err)
		}
		fmt.Printf("🦅 Connected to %s (%s)\n", config.Name, config.Driver)

		names, err := dialect.ListDatabases(ctx, db, d)
		if err != nil {
			return err
		}
		fmt.Printf("Databases (%d):\n", len(names))
		for _, n := range names {
			fmt.Printf("  %s\n", n)
		}

		if listSchemas {
			schemas, err := dialect.ListSchemas(ctx, db, d)
			if err != nil {
				return err
			}
			fmt.Printf("Schemas (%d):\n", len(schemas))
			for _, n := range schemas {
				fmt.Printf("  %s\n", n)
			}
		}
		return nil
	},
}

func init() {
	RootCmd.AddCommand(databasesCmd)

	databasesCmd.Flags().StringVar(&listRole, "role", "", "Role of the config entry to use (default: active)")
	databasesCmd.Flags().StringVar(&listName, "database", "", "Config entry to use by name")
	databasesCmd.Flags().BoolVar(&listSchemas, "schemas", false, "Also list schemas of the connected database")
}
