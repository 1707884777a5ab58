package cli

import (
	"github.com/spf13/cobra"
)

var branchCmd = &cobra.Command{
	Use:   "branch <name>",
	Short: "Create a branch pointing at the current commit",
	Args:  exactArgs(1),
	RunE:  runBranch,
}

var rmBranchCmd = &cobra.Command{
	Use:   "rm-branch <name>",
	Short: "Delete a branch pointer, leaving its commits in place",
	Args:  exactArgs(1),
	RunE:  runRmBranch,
}

func runBranch(cmd *cobra.Command, args []string) error {
	r, err := openRepo()
	if err != nil {
		return err
	}
	defer r.Close()

	if err := r.Graph.AddBranch(args[0]); err != nil {
		return err
	}
	return r.Save()
}

func runRmBranch(cmd *cobra.Command, args []string) error {
	r, err := openRepo()
	if err != nil {
		return err
	}
	defer r.Close()

	if err := r.Graph.RemoveBranch(args[0]); err != nil {
		return err
	}
	return r.Save()
}
