package cli

import (
	"github.com/spf13/cobra"

	"github.com/grovevcs/grove/internal/commitgraph"
)

var rmCmd = &cobra.Command{
	Use:   "rm <file>",
	Short: "Unstage a file, or stage its removal if it is tracked",
	Args:  exactArgs(1),
	RunE:  runRm,
}

func runRm(cmd *cobra.Command, args []string) error {
	r, err := openRepo()
	if err != nil {
		return err
	}
	defer r.Close()

	name := args[0]
	unstaged := r.Index.UnstageAddition(name)
	if r.Graph.Head().Tracks(name) {
		if err := r.Graph.RemoveFile(name, r.Index); err != nil {
			return err
		}
	} else if !unstaged {
		return commitgraph.ErrNotTracked
	}
	return r.Save()
}
