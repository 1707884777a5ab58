package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/grovevcs/grove/internal/repo"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create an empty grove repository in the current directory",
	Args:  exactArgs(0),
	RunE:  runInit,
}

func runInit(cmd *cobra.Command, args []string) error {
	dir, err := os.Getwd()
	if err != nil {
		return err
	}
	r, err := repo.Init(dir)
	if err != nil {
		return err
	}
	return r.Close()
}
