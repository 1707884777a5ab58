package cli

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var commitCmd = &cobra.Command{
	Use:   "commit <message>",
	Short: "Record the staged changes as a new commit",
	Args: func(cmd *cobra.Command, args []string) error {
		// Zero arguments falls through to the empty-message check, which
		// carries its own message.
		if len(args) > 1 {
			return errIncorrectOperands
		}
		return nil
	},
	RunE: runCommit,
}

func runCommit(cmd *cobra.Command, args []string) error {
	r, err := openRepo()
	if err != nil {
		return err
	}
	defer r.Close()

	var message string
	if len(args) == 1 {
		message = args[0]
	}
	node, err := r.Graph.Commit(r.Index, message)
	if err != nil {
		return err
	}
	r.Log.Info("created commit", zap.String("id", node.ID), zap.String("message", message))
	return r.Save()
}
