package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/memetcircus/whisper-core/internal/domain"
	whispersvc "github.com/memetcircus/whisper-core/internal/services/whisper"
)

// decrypt <envelope>: open an envelope and report sender attribution.
func decryptCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "decrypt <envelope>",
		Short: "Decrypt a Whisper envelope",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requirePassphrase(); err != nil {
				return err
			}
			pt, attr, err := wireCtx.Whisper.Decrypt(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("%s", whispersvc.UserMessage(err))
			}
			fmt.Printf("%s\n", pt)
			switch attr.Kind {
			case domain.AttributionSigned:
				fmt.Printf("from: %s (signed, %s)\n", attr.ContactName, attr.TrustLevel)
			case domain.AttributionSignedUnknown:
				fmt.Println("from: unknown signer (valid structure, no matching key)")
			case domain.AttributionInvalidSignature:
				fmt.Printf("from: %s (SIGNATURE DID NOT VERIFY)\n", attr.ContactName)
			case domain.AttributionUnsigned:
				fmt.Printf("from: %s (unsigned)\n", attr.ContactName)
			default:
				fmt.Println("from: unknown")
			}
			return nil
		},
	}
}
