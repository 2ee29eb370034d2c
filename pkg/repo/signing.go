package repo

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"os"
	"strings"

	"github.com/plumbing-vcs/plumb/pkg/object"
	"golang.org/x/crypto/ssh"
)

const signaturePrefix = "sshsig-v1"

// Signer signs canonical object payload bytes and returns an encoded
// signature string suitable for a commit's signature header.
type Signer func(payload []byte) (string, error)

// NewSSHSigner loads an OpenSSH private key and returns a Signer
// producing "sshsig-v1:<format>:<pubkey-b64>:<sig-b64>" signatures.
func NewSSHSigner(keyPath string) (Signer, error) {
	raw, err := os.ReadFile(keyPath)
	if err != nil {
		return nil, fmt.Errorf("read signing key %q: %w", keyPath, err)
	}
	signer, err := ssh.ParsePrivateKey(raw)
	if err != nil {
		return nil, fmt.Errorf("parse signing key %q: %w", keyPath, err)
	}

	pubB64 := base64.StdEncoding.EncodeToString(signer.PublicKey().Marshal())

	return func(payload []byte) (string, error) {
		sig, err := signer.Sign(rand.Reader, payload)
		if err != nil {
			return "", err
		}
		sigB64 := base64.StdEncoding.EncodeToString(sig.Blob)
		return fmt.Sprintf("%s:%s:%s:%s", signaturePrefix, sig.Format, pubB64, sigB64), nil
	}, nil
}

// VerifySignature checks an encoded signature against the payload it
// claims to sign.
func VerifySignature(payload []byte, signature string) error {
	parts := strings.Split(signature, ":")
	if len(parts) != 4 || parts[0] != signaturePrefix {
		return fmt.Errorf("malformed signature: %w", object.ErrInvalidArgument)
	}
	format := parts[1]

	pubRaw, err := base64.StdEncoding.DecodeString(parts[2])
	if err != nil {
		return fmt.Errorf("malformed signature public key: %w", object.ErrInvalidArgument)
	}
	pub, err := ssh.ParsePublicKey(pubRaw)
	if err != nil {
		return fmt.Errorf("parse signature public key: %w", err)
	}

	sigRaw, err := base64.StdEncoding.DecodeString(parts[3])
	if err != nil {
		return fmt.Errorf("malformed signature blob: %w", object.ErrInvalidArgument)
	}

	return pub.Verify(payload, &ssh.Signature{Format: format, Blob: sigRaw})
}

// SignCommit signs the commit's canonical payload and attaches the
// resulting signature.
func SignCommit(c *object.Commit, sign Signer) error {
	sig, err := sign(c.SigningPayload())
	if err != nil {
		return fmt.Errorf("sign commit: %w", err)
	}
	return c.SetSignature(sig)
}
