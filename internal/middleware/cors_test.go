package middleware

import "testing"

func TestNormalizeOrigins(t *testing.T) {
	tests := map[string]string{
		"":                                  "*",
		"*":                                 "*",
		" https://a.example.com/ , ":        "https://a.example.com",
		"https://a.example.com,http://b.io": "https://a.example.com,http://b.io",
	}
	for in, want := range tests {
		if got := normalizeOrigins(in); got != want {
			t.Errorf("normalizeOrigins(%q) = %q, want %q", in, got, want)
		}
	}
}
