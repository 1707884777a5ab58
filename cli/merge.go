package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/grovevcs/grove/internal/colors"
	"github.com/grovevcs/grove/internal/merge"
)

var mergeCmd = &cobra.Command{
	Use:   "merge <branch>",
	Short: "Merge a branch into the current one",
	Args:  exactArgs(1),
	RunE:  runMerge,
}

func runMerge(cmd *cobra.Command, args []string) error {
	r, err := openRepo()
	if err != nil {
		return err
	}
	defer r.Close()

	engine := merge.NewEngine(r.Graph, r.Store, r.Tree)
	res, err := engine.Merge(r.Index, args[0])
	if err != nil {
		return err
	}

	switch res.Outcome {
	case merge.AlreadyAncestor:
		fmt.Println(colors.InfoText("Given branch is an ancestor of the current branch."))
	case merge.FastForwarded:
		fmt.Println(colors.InfoText("Current branch fast-forwarded."))
	case merge.Merged:
		r.Log.Info("merged branch",
			zap.String("branch", args[0]),
			zap.String("commit", res.Commit.ID),
			zap.Bool("conflict", res.Conflict))
	}
	if res.Conflict {
		fmt.Println(colors.WarningText("Encountered a merge conflict."))
	}
	return r.Save()
}
