package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// rotate: replace the active identity with a fresh key version.
func rotateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rotate",
		Short: "Rotate the active identity to a fresh key version",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requirePassphrase(); err != nil {
				return err
			}
			id, err := wireCtx.Identities.Rotate()
			if err != nil {
				return err
			}
			fmt.Printf("rotated to key version %d\n", id.KeyVersion)
			printKeyMaterial(id)
			return nil
		},
	}
}
