package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// init --name <name>: generate a fresh identity and make it active.
func initCmd() *cobra.Command {
	var name string
	var noSigning bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Generate a new identity",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requirePassphrase(); err != nil {
				return err
			}
			id, err := wireCtx.Identities.Generate(name, !noSigning)
			if err != nil {
				return err
			}
			fmt.Printf("identity %s created (key version %d)\n", id.ID, id.KeyVersion)
			printKeyMaterial(id)
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "display name")
	cmd.Flags().BoolVar(&noSigning, "no-signing-key", false, "skip the signing key pair")
	_ = cmd.MarkFlagRequired("name")
	return cmd
}
