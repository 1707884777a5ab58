package cli

import (
	"github.com/spf13/cobra"
)

var checkoutCmd = &cobra.Command{
	Use:   "checkout [<commit>] -- <file> | checkout <branch>",
	Short: "Restore a file from a commit, or switch branches",
	// Flag parsing would swallow the literal "--" operand.
	DisableFlagParsing: true,
	RunE:               runCheckout,
}

func runCheckout(cmd *cobra.Command, args []string) error {
	r, err := openRepo()
	if err != nil {
		return err
	}
	defer r.Close()

	var opErr error
	switch {
	case len(args) == 1:
		opErr = r.Graph.CheckoutBranch(args[0], r.Index)
	case len(args) == 2 && args[0] == "--":
		opErr = r.Graph.CheckoutFile(args[1])
	case len(args) == 3 && args[1] == "--":
		opErr = r.Graph.CheckoutFileAt(args[0], args[2])
	default:
		return errIncorrectOperands
	}
	if opErr != nil {
		return opErr
	}
	return r.Save()
}
