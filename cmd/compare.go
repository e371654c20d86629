package cmd

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/gosuri/uiprogress"
	"github.com/spf13/cobra"

	"struct-sync/internal/engine"
	"struct-sync/internal/report"
	"struct-sync/internal/schema"
	"struct-sync/internal/snapshot"
)

var (
	sourcePath    string
	targetPath    string
	targetFromDB  bool
	targetName    string
	compareFormat string
	printScript   bool
	failOnDiff    bool
)

var compareCmd = &cobra.Command{
	Use:   "compare",
	Short: "Compare a source dump against a target dump or database",
	RunE: func(cmd *cobra.Command, args []string) error {
		if sourcePath == "" {
			return errors.New("--source is required")
		}
		if (targetPath == "") == !targetFromDB {
			return errors.New("exactly one of --target or --target-db is required")
		}

		source, err := loadSnapshot(sourcePath)
		if err != nil {
			return err
		}

		var target *snapshot.Result
		if targetFromDB {
			target, err = dumpTarget(cmd.Context())
		} else {
			target, err = loadSnapshot(targetPath)
		}
		if err != nil {
			return err
		}

		start := time.Now()
		compareWithProgress(source.Schemas, target.Schemas)
		log.Printf("Compare Done! Time Elapsed: %s", time.Since(start))

		switch compareFormat {
		case report.FormatTree:
			if err := report.WriteTree(os.Stdout, source.Schemas, treeOptions(true)); err != nil {
				return err
			}
			fmt.Println("\n📊 Summary Report:")
			report.WriteSummary(os.Stdout, source.Schemas)
		default:
			if err := report.Export(os.Stdout, source.Schemas, compareFormat); err != nil {
				return err
			}
		}

		if printScript {
			fmt.Println("\n-- Sync script")
			if err := report.WriteScript(os.Stdout, engine.SyncScript(source.Schemas, target.Schemas), highlighter()); err != nil {
				return err
			}
		}

		if failOnDiff && engine.HasChanges(source.Schemas) {
			n := 0
			for _, r := range engine.Summarize(source.Schemas) {
				if r.Status != schema.Matched {
					n++
				}
			}
			return fmt.Errorf("structures differ: %d objects not matched", n)
		}
		return nil
	},
}

// compareWithProgress runs the comparison behind a progress bar on stderr.
func compareWithProgress(source, target []*schema.Schema) {
	total := engine.CountObjects(source)
	if total == 0 {
		engine.Compare(source, target, nil)
		return
	}

	progress := uiprogress.New()
	progress.SetOut(os.Stderr)
	progress.Start()
	bar := progress.AddBar(total).AppendCompleted().PrependElapsed()
	bar.PrependFunc(func(b *uiprogress.Bar) string {
		return "Comparing: "
	})

	engine.Compare(source, target, func() {
		bar.Incr()
	})

	progress.Stop()
}

// dumpTarget snapshots the target database into a temporary file and parses it.
func dumpTarget(ctx context.Context) (*snapshot.Result, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	cfg, err := GetDBConfig(RoleTarget, targetName)
	if err != nil {
		return nil, err
	}
	dumper, err := dumperFor(cfg)
	if err != nil {
		return nil, err
	}

	path, err := snapshot.TempSnapshotPath("struct-sync-" + cfg.Name)
	if err != nil {
		return nil, err
	}
	defer os.Remove(path)

	log.Printf("Dumping target %s (%s)...", cfg.Name, dumper.Params.Database)
	if err := dumper.Dump(ctx, path); err != nil {
		return nil, err
	}
	return loadSnapshot(path)
}

func init() {
	RootCmd.AddCommand(compareCmd)

	compareCmd.Flags().StringVarP(&sourcePath, "source", "s", "", "Source structure dump")
	compareCmd.Flags().StringVarP(&targetPath, "target", "t", "", "Target structure dump")
	compareCmd.Flags().BoolVar(&targetFromDB, "target-db", false, "Dump the target database from config instead of reading a file")
	compareCmd.Flags().StringVar(&targetName, "database", "", "Config entry to dump with --target-db (default: role target)")
	compareCmd.Flags().StringVarP(&compareFormat, "format", "f", report.FormatTree, "Output format: tree, yaml or json")
	compareCmd.Flags().BoolVar(&printScript, "script", false, "Print DDL that brings the target toward the source")
	compareCmd.Flags().BoolVar(&failOnDiff, "fail-on-diff", false, "Exit non-zero when any object is not matched")
}
