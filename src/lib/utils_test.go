package lib

import "testing"

func TestValidPassword(t *testing.T) {
	cases := []struct {
		password string
		want     bool
	}{
		{"Abcdef1!", true},
		{"longenough2#", true},
		{"short1!", false},      // under 8 chars
		{"abcdefgh!", false},    // no digit
		{"abcdefgh1", false},    // no special character
		{"12345678", false},     // digits only
		{"", false},
		{"pass word1!", true},   // spaces do not count as special
	}
	for _, tc := range cases {
		if got := ValidPassword(tc.password); got != tc.want {
			t.Errorf("ValidPassword(%q) = %v, want %v", tc.password, got, tc.want)
		}
	}
}

func TestNormalizeEmail(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"Ann@Example.COM", "ann@example.com"},
		{"  bob@x.com ", "bob@x.com"},
		{"already@lower.io", "already@lower.io"},
	}
	for _, tc := range cases {
		if got := NormalizeEmail(tc.in); got != tc.want {
			t.Errorf("NormalizeEmail(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
