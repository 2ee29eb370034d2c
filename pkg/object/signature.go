package object

import (
	"fmt"
	"strings"
)

// Signature is an identity triple: who, their email, and a unix
// timestamp in seconds.
type Signature struct {
	Name  string
	Email string
	When  int64
}

// Validate rejects signatures that cannot survive the header encoding:
// newlines or control characters in name/email, angle brackets (they
// delimit the email on the wire), and negative timestamps.
func (s Signature) Validate() error {
	if err := validateIdentField("name", s.Name); err != nil {
		return err
	}
	if err := validateIdentField("email", s.Email); err != nil {
		return err
	}
	if s.When < 0 {
		return fmt.Errorf("signature timestamp %d is negative: %w", s.When, ErrInvalidArgument)
	}
	return nil
}

func validateIdentField(field, value string) error {
	if strings.ContainsAny(value, "<>\n\r\x00") {
		return fmt.Errorf("signature %s %q contains reserved characters: %w", field, value, ErrInvalidArgument)
	}
	return nil
}

// String renders the triple in the canonical "Name <email> when" form.
func (s Signature) String() string {
	return fmt.Sprintf("%s <%s> %d", s.Name, s.Email, s.When)
}

// parseSignature is the inverse of Signature.String.
func parseSignature(raw string) (Signature, error) {
	open := strings.Index(raw, " <")
	end := strings.Index(raw, "> ")
	if open < 0 || end < open {
		return Signature{}, fmt.Errorf("malformed signature %q", raw)
	}
	var when int64
	if _, err := fmt.Sscanf(raw[end+2:], "%d", &when); err != nil {
		return Signature{}, fmt.Errorf("malformed signature timestamp in %q: %w", raw, err)
	}
	return Signature{
		Name:  raw[:open],
		Email: raw[open+2 : end],
		When:  when,
	}, nil
}
