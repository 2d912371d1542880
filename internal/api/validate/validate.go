package validate

import (
	"fmt"
	"regexp"
	"strings"
)

var emailRx = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

func Email(v string) error {
	if v == "" {
		return fmt.Errorf("email is required")
	}
	if len(v) > 320 || !emailRx.MatchString(v) {
		return fmt.Errorf("invalid email")
	}
	return nil
}

// ListName checks length only. Names may contain any printable text; the
// duplicate check happens in the service layer against the owner's lists.
func ListName(v string) error {
	v = strings.TrimSpace(v)
	if v == "" {
		return fmt.Errorf("name is required")
	}
	if len(v) > 200 {
		return fmt.Errorf("name exceeds 200 characters")
	}
	return nil
}

func Password(v string) error {
	if len(v) < 8 {
		return fmt.Errorf("password must be at least 8 characters")
	}
	if len(v) > 72 {
		return fmt.Errorf("password exceeds 72 characters")
	}
	return nil
}

func NonEmpty(field, v string) error {
	if v == "" {
		return fmt.Errorf("%s is required", field)
	}
	return nil
}
