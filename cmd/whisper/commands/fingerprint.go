package commands

import (
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/memetcircus/whisper-core/internal/crypto"
	"github.com/memetcircus/whisper-core/internal/domain"
)

// fingerprint: show the active identity's verification material.
func fingerprintCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "fingerprint",
		Short: "Show the active identity's fingerprint and SAS words",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requirePassphrase(); err != nil {
				return err
			}
			id, ok, err := wireCtx.Identities.Active()
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("no active identity; run init first")
			}
			printKeyMaterial(id)
			return nil
		},
	}
}

func printKeyMaterial(id domain.Identity) {
	fmt.Printf("public key:  %s\n", base64.RawURLEncoding.EncodeToString(id.AgreementPub.Slice()))
	if id.HasSigningKey() {
		fmt.Printf("signing key: %s\n", base64.RawURLEncoding.EncodeToString(id.SigningPub.Slice()))
	}
	fmt.Printf("fingerprint: %s\n", crypto.ShortFingerprint(id.Fingerprint))
	fmt.Printf("sas words:   %s\n", strings.Join(crypto.SASWords(id.Fingerprint), " "))
}
