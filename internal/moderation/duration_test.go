package moderation

import (
	"errors"
	"testing"
	"time"
)

func TestParseDuration(t *testing.T) {
	d, err := ParseDuration("30m")
	if err != nil {
		t.Fatalf("parse 30m: %v", err)
	}
	if d != 30*time.Minute {
		t.Fatalf("expected 1800s, got %s", d)
	}
}

func TestParseDurationAdditive(t *testing.T) {
	first, err := ParseDuration("1h30m")
	if err != nil {
		t.Fatalf("parse 1h30m: %v", err)
	}
	second, err := ParseDuration("30m1h")
	if err != nil {
		t.Fatalf("parse 30m1h: %v", err)
	}
	if first != second {
		t.Fatalf("expected order independence, got %s vs %s", first, second)
	}

	repeated, err := ParseDuration("1h1h")
	if err != nil {
		t.Fatalf("parse 1h1h: %v", err)
	}
	if repeated != 2*time.Hour {
		t.Fatalf("expected repeated units to add, got %s", repeated)
	}
}

func TestParseDurationIgnoresNoise(t *testing.T) {
	d, err := ParseDuration("about 2h or so")
	if err != nil {
		t.Fatalf("parse with noise: %v", err)
	}
	if d != 2*time.Hour {
		t.Fatalf("expected 2h, got %s", d)
	}
}

func TestParseDurationNoMatch(t *testing.T) {
	for _, input := range []string{"", "abc", "h m d"} {
		if _, err := ParseDuration(input); !errors.Is(err, ErrNoDuration) {
			t.Fatalf("parse %q: expected ErrNoDuration, got %v", input, err)
		}
	}
}

func TestParseDurationRange(t *testing.T) {
	for _, input := range []string{"0s", "29d", "28d1s", "99999999999999999999d"} {
		if _, err := ParseDuration(input); !errors.Is(err, ErrDurationRange) {
			t.Fatalf("parse %q: expected ErrDurationRange, got %v", input, err)
		}
	}
	if d, err := ParseDuration("28d"); err != nil || d != MaxTimeout {
		t.Fatalf("parse 28d: expected %s, got %s (%v)", MaxTimeout, d, err)
	}
}
