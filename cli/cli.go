// Package cli implements the grove command surface. Commands are thin:
// they open the repository, call into the core packages, persist, and
// print. On any validation failure exactly one line is printed and the
// process terminates with a success exit status; failures are not
// distinguished by exit code.
package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/grovevcs/grove/internal/colors"
	"github.com/grovevcs/grove/internal/repo"
)

var rootCmd = &cobra.Command{
	Use:           "grove",
	Short:         "Grove is a local version control system",
	Long:          `Grove tracks snapshots of a directory: stage files, commit them, branch, and merge, all without a remote.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

var errIncorrectOperands = errors.New("Incorrect operands.")

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(colors.Red(err.Error()))
	}
	os.Exit(0)
}

func init() {
	// Repository lifecycle
	rootCmd.AddCommand(initCmd)

	// Staging and commit commands
	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(commitCmd)
	rootCmd.AddCommand(rmCmd)

	// History commands
	rootCmd.AddCommand(logCmd)
	rootCmd.AddCommand(globalLogCmd)
	rootCmd.AddCommand(findCmd)
	rootCmd.AddCommand(statusCmd)

	// Branch and working-tree commands
	rootCmd.AddCommand(checkoutCmd)
	rootCmd.AddCommand(branchCmd)
	rootCmd.AddCommand(rmBranchCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(mergeCmd)
}

// exactArgs is cobra.ExactArgs with the uniform operand message.
func exactArgs(n int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) != n {
			return errIncorrectOperands
		}
		return nil
	}
}

// openRepo opens the repository rooted in the working directory.
func openRepo() (*repo.Repository, error) {
	dir, err := os.Getwd()
	if err != nil {
		return nil, err
	}
	return repo.Open(dir)
}
