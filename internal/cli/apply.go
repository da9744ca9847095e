package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/akarpov-91/fixtree/internal/loader"
	"github.com/akarpov-91/fixtree/internal/logging"
	"github.com/akarpov-91/fixtree/pkg/fixtree"
)

var applyCmd = &cobra.Command{
	Use:   "apply <fixture.yaml> [target-dir]",
	Short: "Materialize a YAML fixture document",
	Long: `Materialize the tree described by a YAML fixture document.

With a target directory, the tree is created there; the target's parent
is added to the sandbox so any writable location can host the root, but
nothing in the fixture may escape the root itself.

With --temp instead of a target, the tree is created in a fresh
uniquely named directory under the OS temp directory and its path is
printed to stdout. The directory is not removed; it is yours to delete.

Examples:
  fixtree apply fixture.yaml ./out     # Materialize into ./out
  fixtree apply fixture.yaml --temp    # Materialize into a temp root`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runApply,
}

var applyTemp bool

func init() {
	rootCmd.AddCommand(applyCmd)

	applyCmd.Flags().BoolVar(&applyTemp, "temp", false, "Materialize into a fresh temp directory and print its path")
}

func runApply(cmd *cobra.Command, args []string) error {
	log := logging.NewConsoleLogger(getVerboseFlag(cmd))

	tree, err := loader.LoadFile(args[0])
	if err != nil {
		return err
	}

	if applyTemp {
		if len(args) > 1 {
			return fmt.Errorf("--temp and a target directory are mutually exclusive")
		}
		dir, _, err := fixtree.NewTempDir(cmd.Context(), tree, fixtree.WithLogger(log))
		if err != nil {
			return err
		}
		// Path to stdout for pipeline consumption.
		fmt.Fprintln(cmd.OutOrStdout(), dir)
		return nil
	}

	if len(args) < 2 {
		return fmt.Errorf("target directory required (or use --temp)")
	}

	target, err := filepath.Abs(args[1])
	if err != nil {
		return err
	}
	if err := fixtree.Materialize(cmd.Context(), target, tree,
		fixtree.WithLogger(log),
		fixtree.WithAllowedParent(filepath.Dir(target)),
	); err != nil {
		return err
	}
	log.Info("materialized %s into %s", args[0], target)
	return nil
}
