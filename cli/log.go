package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/grovevcs/grove/internal/colors"
	"github.com/grovevcs/grove/internal/commitgraph"
)

var logCmd = &cobra.Command{
	Use:   "log",
	Short: "Show the current branch's history, newest first",
	Args:  exactArgs(0),
	RunE:  runLog,
}

var globalLogCmd = &cobra.Command{
	Use:   "global-log",
	Short: "Show every commit ever created, in no particular order",
	Args:  exactArgs(0),
	RunE:  runGlobalLog,
}

func runLog(cmd *cobra.Command, args []string) error {
	r, err := openRepo()
	if err != nil {
		return err
	}
	defer r.Close()

	printEntries(r.Graph.Log())
	return nil
}

func runGlobalLog(cmd *cobra.Command, args []string) error {
	r, err := openRepo()
	if err != nil {
		return err
	}
	defer r.Close()

	printEntries(r.Graph.GlobalLog())
	return nil
}

func printEntries(entries []commitgraph.LogEntry) {
	for _, e := range entries {
		fmt.Println(colors.SectionHeader("==="))
		fmt.Printf("%s %s\n", colors.Cyan("commit"), colors.Bold(e.ID))
		fmt.Printf("Date: %s\n", colors.Gray(e.Date))
		fmt.Println(e.Message)
		fmt.Println()
	}
}
