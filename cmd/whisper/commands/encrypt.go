package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	whispersvc "github.com/memetcircus/whisper-core/internal/services/whisper"
)

// encrypt <message>: seal a message for a contact or raw key and print the
// envelope for out-of-band delivery.
func encryptCmd() *cobra.Command {
	var toContact, toKey string
	var sign bool

	cmd := &cobra.Command{
		Use:   "encrypt <message>",
		Short: "Encrypt a message into a Whisper envelope",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requirePassphrase(); err != nil {
				return err
			}
			sender, ok, err := wireCtx.Identities.Active()
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("no active identity; run init first")
			}

			var recipient whispersvc.Recipient
			switch {
			case toContact != "":
				c, err := wireCtx.Contacts.Get(toContact)
				if err != nil {
					return err
				}
				recipient = whispersvc.ToContact(c)
			case toKey != "":
				pub, err := parseAgreementKey(toKey)
				if err != nil {
					return err
				}
				recipient = whispersvc.ToRawKey(pub)
			default:
				return fmt.Errorf("one of --to or --to-key is required")
			}

			wire, err := wireCtx.Whisper.Encrypt(cmd.Context(), []byte(args[0]), sender, recipient, sign)
			if err != nil {
				return fmt.Errorf("%s", whispersvc.UserMessage(err))
			}
			fmt.Println(wire)
			return nil
		},
	}
	cmd.Flags().StringVar(&toContact, "to", "", "recipient contact id")
	cmd.Flags().StringVar(&toKey, "to-key", "", "recipient agreement public key (base64url)")
	cmd.Flags().BoolVar(&sign, "sign", false, "attach a signature")
	return cmd
}
