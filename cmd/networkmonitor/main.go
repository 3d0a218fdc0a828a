package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// NewRootCmd returns the networkmonitor base command.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "networkmonitor",
		Short: "Subscribe to a transit network's live passenger-event feed",
	}
	cmd.AddCommand(RunCommand())
	return cmd
}
