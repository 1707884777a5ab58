package cli

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var addCmd = &cobra.Command{
	Use:   "add <file>",
	Short: "Stage a file's current contents for the next commit",
	Args:  exactArgs(1),
	RunE:  runAdd,
}

func runAdd(cmd *cobra.Command, args []string) error {
	r, err := openRepo()
	if err != nil {
		return err
	}
	defer r.Close()

	if err := r.Graph.AddFile(args[0], r.Index); err != nil {
		return err
	}
	r.Log.Debug("staged addition", zap.String("file", args[0]))
	return r.Save()
}
