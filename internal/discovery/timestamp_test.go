package discovery

import (
	"testing"
	"time"
)

func TestVersionAppliesTaiOffset(t *testing.T) {
	got := Version(time.Unix(1000, 5))
	if got != "1037:5" {
		t.Fatalf("expected 1037:5, got %s", got)
	}
}

func TestVersionZeroNanoseconds(t *testing.T) {
	got := Version(time.Unix(1700000000, 0))
	if got != "1700000037:0" {
		t.Fatalf("expected 1700000037:0, got %s", got)
	}
}
