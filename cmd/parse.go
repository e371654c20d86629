package cmd

import (
	"log"
	"os"

	"github.com/spf13/cobra"

	"struct-sync/internal/report"
	"struct-sync/internal/snapshot"
)

var parseFormat string

var parseCmd = &cobra.Command{
	Use:   "parse <dump.sql>",
	Short: "Parse a structure dump and print its object tree",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		res, err := loadSnapshot(args[0])
		if err != nil {
			return err
		}

		if parseFormat == report.FormatTree {
			return report.WriteTree(os.Stdout, res.Schemas, treeOptions(false))
		}
		return report.Export(os.Stdout, res.Schemas, parseFormat)
	},
}

// loadSnapshot parses path and logs what the parser left out.
func loadSnapshot(path string) (*snapshot.Result, error) {
	res, err := snapshot.ParseFile(path)
	if err != nil {
		return nil, err
	}
	logStats(path, res)
	return res, nil
}

func logStats(path string, res *snapshot.Result) {
	st := res.Stats
	total := 0
	for _, n := range st.Statements {
		total += n
	}
	log.Printf("Parsed %s: %d statements, %d schemas (tables=%d views=%d functions=%d procedures=%d alters=%d)",
		path, total, len(res.Schemas),
		st.Statements[snapshot.KindTable], st.Statements[snapshot.KindView],
		st.Statements[snapshot.KindFunction], st.Statements[snapshot.KindProcedure],
		st.Statements[snapshot.KindAlter])

	if st.Unnamed > 0 {
		log.Printf("[SKIP] %d statements without a recognizable name", st.Unnamed)
	}
	if st.DroppedIndexes > 0 {
		log.Printf("[SKIP] %d indexes on tables not defined before them", st.DroppedIndexes)
	}
	if st.DroppedAlters > 0 {
		log.Printf("[SKIP] %d ALTER facts on unknown tables", st.DroppedAlters)
	}
}

func init() {
	RootCmd.AddCommand(parseCmd)

	parseCmd.Flags().StringVarP(&parseFormat, "format", "f", report.FormatTree, "Output format: tree, yaml or json")
}
