package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"struct-sync/internal/schema"
)

var showCmd = &cobra.Command{
	Use:   "show <dump.sql> <schema>[.<object>[.<column|index>]]",
	Short: "Print the DDL of one object from a structure dump",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		res, err := loadSnapshot(args[0])
		if err != nil {
			return err
		}

		kind, ddl, ok := schema.Lookup(res.Schemas, args[1])
		if !ok {
			return fmt.Errorf("object %q not found in %s", args[1], args[0])
		}
		if ddl == "" {
			ddl = fmt.Sprintf("-- %s %s has no DDL of its own", kind, args[1])
		}

		fmt.Printf("-- %s %s\n", kind, args[1])
		if h := highlighter(); h != nil {
			ddl = h.Highlight(ddl)
		}
		fmt.Println(ddl)
		return nil
	},
}

func init() {
	RootCmd.AddCommand(showCmd)
}
