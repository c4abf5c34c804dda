package services

import (
	"errors"
	"nyc-route-optimizer/internal/domain"
	"strings"
	"testing"
)

func TestSanitizeAddress(t *testing.T) {
	cases := map[string]string{
		"  350   5th Ave \n New York ": "350 5th Ave New York",
		`1 <script>"Main"</script> St`: "1 scriptMain/script St",
		"":                             "",
	}
	for in, want := range cases {
		if got := SanitizeAddress(in); got != want {
			t.Fatalf("SanitizeAddress(%q): expected %q, got %q", in, want, got)
		}
	}

	long := strings.Repeat("1a", 150)
	if got := SanitizeAddress(long); len([]rune(got)) != maxAddressLength {
		t.Fatalf("expected truncation to %d runes, got %d", maxAddressLength, len([]rune(got)))
	}
}

func TestValidateAddressFormat(t *testing.T) {
	valid := []string{"350 5th Ave, New York, NY", "1 Wall St"}
	for _, a := range valid {
		if err := ValidateAddressFormat(a); err != nil {
			t.Fatalf("%q: unexpected error: %v", a, err)
		}
	}

	invalid := []string{"", "   ", "1 A", "Times Square", "12345 67890", strings.Repeat("1a", 101)}
	for _, a := range invalid {
		if err := ValidateAddressFormat(a); !errors.Is(err, domain.ErrInvalidInput) {
			t.Fatalf("%q: expected ErrInvalidInput, got %v", a, err)
		}
	}
}

func TestValidateRouteEndpoints(t *testing.T) {
	if err := ValidateRouteEndpoints("350 5th Ave", "1 Wall St"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := ValidateRouteEndpoints("1 Wall St", " 1 wall st "); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for identical endpoints, got %v", err)
	}
	if err := ValidateRouteEndpoints("bad", "1 Wall St"); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for bad start, got %v", err)
	}
}
