package commands

import (
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/memetcircus/whisper-core/internal/domain"
)

// contact add|list|verify|revoke|block|unblock|rotate: manage the contact
// trust model.
func contactCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "contact",
		Short: "Manage contacts and their trust state",
	}
	cmd.AddCommand(
		contactAddCmd(),
		contactListCmd(),
		contactVerifyCmd(),
		contactRevokeCmd(),
		contactBlockCmd(),
		contactRotateCmd(),
	)
	return cmd
}

func contactAddCmd() *cobra.Command {
	var name, key, signingKey, note string
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a contact from their public keys",
		RunE: func(cmd *cobra.Command, args []string) error {
			pub, err := parseAgreementKey(key)
			if err != nil {
				return err
			}
			var sign domain.Ed25519Public
			if signingKey != "" {
				if sign, err = parseSigningKey(signingKey); err != nil {
					return err
				}
			}
			c, err := wireCtx.Contacts.Add(name, pub, sign, note)
			if err != nil {
				return err
			}
			fmt.Printf("contact %s added (%s)\n", c.DisplayName, c.ID)
			fmt.Printf("fingerprint: %s\n", c.ShortFingerprint)
			fmt.Printf("sas words:   %s\n", strings.Join(c.SASWords, " "))
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "display name")
	cmd.Flags().StringVar(&key, "key", "", "agreement public key (base64url)")
	cmd.Flags().StringVar(&signingKey, "signing-key", "", "signing public key (base64url, optional)")
	cmd.Flags().StringVar(&note, "note", "", "free-form note")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("key")
	return cmd
}

func contactListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List contacts",
		RunE: func(cmd *cobra.Command, args []string) error {
			all, err := wireCtx.Contacts.List()
			if err != nil {
				return err
			}
			for _, c := range all {
				flags := c.TrustLevel.String()
				if c.IsBlocked {
					flags += ", blocked"
				}
				if c.NeedsReVerification() {
					flags += ", needs re-verification"
				}
				fmt.Printf("%s  %s  %s  (%s)\n", c.ID, c.DisplayName, c.ShortFingerprint, flags)
			}
			return nil
		},
	}
}

func contactVerifyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "verify <id>",
		Short: "Mark a contact's keys as verified out of band",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := wireCtx.Contacts.Verify(args[0])
			if err != nil {
				return err
			}
			fmt.Printf("%s is now %s\n", c.DisplayName, c.TrustLevel)
			return nil
		},
	}
}

func contactRevokeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "revoke <id>",
		Short: "Revoke trust in a contact's keys",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := wireCtx.Contacts.Revoke(args[0])
			if err != nil {
				return err
			}
			fmt.Printf("%s is now %s\n", c.DisplayName, c.TrustLevel)
			return nil
		},
	}
}

func contactBlockCmd() *cobra.Command {
	var unblock bool
	cmd := &cobra.Command{
		Use:   "block <id>",
		Short: "Block (or unblock) a contact",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := wireCtx.Contacts.SetBlocked(args[0], !unblock)
			if err != nil {
				return err
			}
			if c.IsBlocked {
				fmt.Printf("%s blocked\n", c.DisplayName)
			} else {
				fmt.Printf("%s unblocked\n", c.DisplayName)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&unblock, "unblock", false, "remove the block")
	return cmd
}

func contactRotateCmd() *cobra.Command {
	var key, signingKey string
	cmd := &cobra.Command{
		Use:   "rotate <id>",
		Short: "Record a contact's key rotation (resets trust)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pub, err := parseAgreementKey(key)
			if err != nil {
				return err
			}
			var sign domain.Ed25519Public
			if signingKey != "" {
				if sign, err = parseSigningKey(signingKey); err != nil {
					return err
				}
			}
			c, err := wireCtx.Contacts.RotateKeys(args[0], pub, sign)
			if err != nil {
				return err
			}
			fmt.Printf("%s rotated to key version %d; trust reset to %s\n",
				c.DisplayName, c.KeyVersion, c.TrustLevel)
			fmt.Printf("new fingerprint: %s\n", c.ShortFingerprint)
			return nil
		},
	}
	cmd.Flags().StringVar(&key, "key", "", "new agreement public key (base64url)")
	cmd.Flags().StringVar(&signingKey, "signing-key", "", "new signing public key (base64url, optional)")
	_ = cmd.MarkFlagRequired("key")
	return cmd
}

func parseAgreementKey(s string) (domain.X25519Public, error) {
	var pub domain.X25519Public
	b, err := base64.RawURLEncoding.DecodeString(s)
	if err != nil || len(b) != len(pub) {
		return pub, fmt.Errorf("invalid agreement public key")
	}
	copy(pub[:], b)
	return pub, nil
}

func parseSigningKey(s string) (domain.Ed25519Public, error) {
	var pub domain.Ed25519Public
	b, err := base64.RawURLEncoding.DecodeString(s)
	if err != nil || len(b) != len(pub) {
		return pub, fmt.Errorf("invalid signing public key")
	}
	copy(pub[:], b)
	return pub, nil
}
