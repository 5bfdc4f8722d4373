package envelope_test

import (
	"bytes"
	"errors"
	"testing"

	"github.com/memetcircus/whisper-core/internal/crypto"
	"github.com/memetcircus/whisper-core/internal/domain"
	"github.com/memetcircus/whisper-core/internal/envelope"
)

func makeRecipient(t *testing.T) (domain.X25519Private, domain.X25519Public) {
	t.Helper()
	priv, pub, err := crypto.GenerateAgreementKeyPair()
	if err != nil {
		t.Fatalf("GenerateAgreementKeyPair: %v", err)
	}
	return priv, pub
}

func TestCreateOpen_RoundTrip(t *testing.T) {
	priv, pub := makeRecipient(t)

	for _, n := range []int{0, 1, 42, 254, 255, 1022, 1024, 4096} {
		pt := make([]byte, n)
		for i := range pt {
			pt[i] = byte(i * 7)
		}
		wire, err := envelope.Create(pt, pub, nil)
		if err != nil {
			t.Fatalf("Create(%d bytes): %v", n, err)
		}
		comp, err := envelope.Parse(wire)
		if err != nil {
			t.Fatalf("Parse(%d bytes): %v", n, err)
		}
		got, _, err := envelope.Open(comp, priv, pub)
		if err != nil {
			t.Fatalf("Open(%d bytes): %v", n, err)
		}
		if !bytes.Equal(got, pt) {
			t.Fatalf("round trip of %d bytes: plaintext mismatch", n)
		}
	}
}

func TestCreate_FreshRandomnessPerEnvelope(t *testing.T) {
	_, pub := makeRecipient(t)
	a, err := envelope.Create([]byte("same plaintext"), pub, nil)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	b, err := envelope.Create([]byte("same plaintext"), pub, nil)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	ca, err := envelope.Parse(a)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	cb, err := envelope.Parse(b)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if ca.EphemeralPub == cb.EphemeralPub {
		t.Fatalf("two envelopes share an ephemeral key")
	}
	if ca.Salt == cb.Salt {
		t.Fatalf("two envelopes share a salt")
	}
	if ca.MessageID == cb.MessageID {
		t.Fatalf("two envelopes share a message id")
	}
}

func TestOpen_WrongKeyFails(t *testing.T) {
	_, pub := makeRecipient(t)
	otherPriv, otherPub := makeRecipient(t)

	wire, err := envelope.Create([]byte("secret"), pub, nil)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	comp, err := envelope.Parse(wire)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if _, _, err := envelope.Open(comp, otherPriv, otherPub); !errors.Is(err, domain.ErrCryptographicFailure) {
		t.Fatalf("Open with wrong key: got %v, want ErrCryptographicFailure", err)
	}
}

func TestOpen_TamperedFieldsFail(t *testing.T) {
	priv, pub := makeRecipient(t)
	wire, err := envelope.Create([]byte("secret"), pub, nil)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	mutations := map[string]func(*envelope.Components){
		"ciphertext": func(c *envelope.Components) { c.Ciphertext[0] ^= 1 },
		"salt":       func(c *envelope.Components) { c.Salt[0] ^= 1 },
		"message id": func(c *envelope.Components) { c.MessageID[0] ^= 1 },
		"timestamp":  func(c *envelope.Components) { c.Timestamp++ },
		"flags":      func(c *envelope.Components) { c.Flags ^= envelope.FlagHasSignature },
		"rkid":       func(c *envelope.Components) { c.RKID[0] ^= 1 },
	}
	for name, mutate := range mutations {
		comp, err := envelope.Parse(wire)
		if err != nil {
			t.Fatalf("Parse: %v", err)
		}
		mutate(&comp)
		if _, _, err := envelope.Open(comp, priv, pub); !errors.Is(err, domain.ErrCryptographicFailure) {
			t.Fatalf("Open after tampering with %s: got %v, want ErrCryptographicFailure", name, err)
		}
	}
}

func TestCreate_SignedEnvelopeVerifies(t *testing.T) {
	priv, pub := makeRecipient(t)
	sigPriv, sigPub, err := crypto.GenerateSigningKeyPair()
	if err != nil {
		t.Fatalf("GenerateSigningKeyPair: %v", err)
	}

	wire, err := envelope.Create([]byte("signed payload"), pub, func(data []byte) ([]byte, error) {
		return crypto.Sign(sigPriv, data), nil
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	comp, err := envelope.Parse(wire)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if !comp.HasSignature() {
		t.Fatalf("signed envelope parsed without signature flag")
	}

	_, context, err := envelope.Open(comp, priv, pub)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if !crypto.Verify(sigPub, envelope.SigningInput(context, comp.Ciphertext), comp.Signature) {
		t.Fatalf("signature over context and ciphertext did not verify")
	}
}

func TestCreate_SignErrorAborts(t *testing.T) {
	_, pub := makeRecipient(t)
	wantErr := errors.New("keystore unavailable")
	if _, err := envelope.Create([]byte("x"), pub, func([]byte) ([]byte, error) {
		return nil, wantErr
	}); !errors.Is(err, wantErr) {
		t.Fatalf("Create with failing signer: got %v, want %v", err, wantErr)
	}
}

// Ciphertext length must reveal only the padding bucket, never the exact
// plaintext size.
func TestCreate_CiphertextLengthIsBucketed(t *testing.T) {
	_, pub := makeRecipient(t)
	a, err := envelope.Create([]byte("hi"), pub, nil)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	b, err := envelope.Create(make([]byte, 200), pub, nil)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	ca, _ := envelope.Parse(a)
	cb, _ := envelope.Parse(b)
	if len(ca.Ciphertext) != len(cb.Ciphertext) {
		t.Fatalf("plaintexts in the same bucket produced different ciphertext lengths: %d vs %d",
			len(ca.Ciphertext), len(cb.Ciphertext))
	}
	if len(ca.Ciphertext) != 256+crypto.Overhead {
		t.Fatalf("small plaintext ciphertext length %d, want %d", len(ca.Ciphertext), 256+crypto.Overhead)
	}
}
