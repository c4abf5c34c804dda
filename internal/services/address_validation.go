package services

import (
	"errors"
	"fmt"
	"nyc-route-optimizer/internal/domain"
	"regexp"
	"strings"
	"unicode"
)

const (
	minAddressLength = 5
	maxAddressLength = 200
)

var unsafeAddressChars = regexp.MustCompile(`[<>"']`)

// SanitizeAddress collapses whitespace, strips markup-sensitive characters, and
// truncates to the maximum accepted length.
func SanitizeAddress(address string) string {
	s := strings.Join(strings.Fields(address), " ")
	s = unsafeAddressChars.ReplaceAllString(s, "")

	if r := []rune(s); len(r) > maxAddressLength {
		s = string(r[:maxAddressLength])
	}
	return s
}

// ValidateAddressFormat applies cheap local checks before any provider call.
func ValidateAddressFormat(address string) error {
	address = strings.TrimSpace(address)
	if address == "" {
		return domain.Invalidf("address cannot be empty")
	}

	n := len([]rune(address))
	if n < minAddressLength {
		return domain.Invalidf("address %q is too short", address)
	}
	if n > maxAddressLength {
		return domain.Invalidf("address is too long (%d characters)", n)
	}

	var hasDigit, hasLetter bool
	for _, r := range address {
		switch {
		case unicode.IsDigit(r):
			hasDigit = true
		case unicode.IsLetter(r):
			hasLetter = true
		}
	}
	if !hasDigit || !hasLetter {
		return domain.Invalidf("address %q should contain both numbers and letters", address)
	}

	return nil
}

// ValidateRouteEndpoints checks both addresses and rejects a start equal to the end.
func ValidateRouteEndpoints(start, end string) error {
	if err := ValidateAddressFormat(start); err != nil {
		return prefixValidation("start address", err)
	}
	if err := ValidateAddressFormat(end); err != nil {
		return prefixValidation("end address", err)
	}

	if strings.EqualFold(strings.TrimSpace(start), strings.TrimSpace(end)) {
		return domain.Invalidf("start and end addresses cannot be the same")
	}

	return nil
}

func prefixValidation(field string, err error) error {
	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		return domain.Invalidf("%s: %s", field, ve.Msg)
	}
	return fmt.Errorf("%s: %w", field, err)
}
