package sl

import (
	"errors"
	"testing"
)

func TestSecret(t *testing.T) {
	cases := []struct {
		value string
		want  string
	}{
		{"", "****"},
		{"abc", "****"},
		{"supersecret", "supe****"},
	}
	for _, c := range cases {
		got := Secret("k", c.value).Value.String()
		if got != c.want {
			t.Fatalf("Secret(%q) = %q, want %q", c.value, got, c.want)
		}
	}
}

func TestErr(t *testing.T) {
	if got := Err(errors.New("boom")).Value.String(); got != "boom" {
		t.Fatalf("unexpected error attr: %q", got)
	}
	if got := Err(nil).Value.String(); got != "" {
		t.Fatalf("nil error should be empty, got %q", got)
	}
}
