package utils

import (
	"testing"
)

func TestB2SRoundTrip(t *testing.T) {
	in := []byte("hello world")
	if got := B2S(in); got != "hello world" {
		t.Errorf("B2S = %q", got)
	}
	if got := B2S(S2B("round trip")); got != "round trip" {
		t.Errorf("round trip = %q", got)
	}
}

func TestGenerateRandomString(t *testing.T) {
	a, err := GenerateRandomString(20)
	if err != nil {
		t.Fatalf("err = %v", err)
	}
	b, err := GenerateRandomString(20)
	if err != nil {
		t.Fatalf("err = %v", err)
	}
	if a == "" || a == b {
		t.Errorf("expected distinct non-empty strings, got %q / %q", a, b)
	}
}
