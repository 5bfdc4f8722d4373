package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// detect <text>: cheap shape check, exit 0 when text looks like an envelope.
func detectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "detect <text>",
		Short: "Check whether text looks like a Whisper envelope",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !wireCtx.Whisper.Detect(args[0]) {
				return fmt.Errorf("not a whisper envelope")
			}
			fmt.Println("whisper envelope detected")
			return nil
		},
	}
}
