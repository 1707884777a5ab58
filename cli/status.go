package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show branches and the staged changes",
	Args:  exactArgs(0),
	RunE:  runStatus,
}

func runStatus(cmd *cobra.Command, args []string) error {
	r, err := openRepo()
	if err != nil {
		return err
	}
	defer r.Close()

	fmt.Print(r.Graph.Status(r.Index))
	return nil
}
