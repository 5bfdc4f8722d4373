package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// identity list|use|archive: manage stored identities beyond the active one.
func identityCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "identity",
		Short: "List and switch stored identities",
	}
	cmd.AddCommand(identityListCmd(), identityUseCmd(), identityArchiveCmd())
	return cmd
}

func identityListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List stored identities",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requirePassphrase(); err != nil {
				return err
			}
			all, err := wireCtx.Identities.List()
			if err != nil {
				return err
			}
			for _, id := range all {
				note := id.Status.String()
				if !id.CanDecrypt() {
					note += ", retired"
				}
				fmt.Printf("%s  %s  v%d  (%s)\n", id.ID, id.DisplayName, id.KeyVersion, note)
			}
			return nil
		},
	}
}

func identityUseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "use <id>",
		Short: "Make a stored identity the active one",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requirePassphrase(); err != nil {
				return err
			}
			id, err := wireCtx.Identities.SetActive(args[0])
			if err != nil {
				return err
			}
			fmt.Printf("%s (v%d) is now active\n", id.DisplayName, id.KeyVersion)
			return nil
		},
	}
}

func identityArchiveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "archive <id>",
		Short: "Archive a stored identity",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requirePassphrase(); err != nil {
				return err
			}
			id, err := wireCtx.Identities.Archive(args[0])
			if err != nil {
				return err
			}
			fmt.Printf("%s (v%d) archived\n", id.DisplayName, id.KeyVersion)
			return nil
		},
	}
}
