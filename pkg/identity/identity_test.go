package identity

import (
	"errors"
	"testing"
)

func TestNormalize_AcceptedEncodings(t *testing.T) {
	const want = ID("add60fd1792f4ab99a53e2f859482c59")

	tests := []struct {
		name string
		raw  string
	}{
		{"hyphenated lower", "add60fd1-792f-4ab9-9a53-e2f859482c59"},
		{"hyphenated upper", "ADD60FD1-792F-4AB9-9A53-E2F859482C59"},
		{"hyphenated mixed", "Add60Fd1-792f-4AB9-9a53-E2F859482c59"},
		{"hex lower", "add60fd1792f4ab99a53e2f859482c59"},
		{"hex upper", "ADD60FD1792F4AB99A53E2F859482C59"},
		{"surrounding whitespace", "  add60fd1-792f-4ab9-9a53-e2f859482c59\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Normalize(tt.raw)
			if err != nil {
				t.Fatalf("Normalize(%q) returned error: %v", tt.raw, err)
			}
			if got != want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.raw, got, want)
			}
		})
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	inputs := []string{
		"add60fd1-792f-4ab9-9a53-e2f859482c59",
		"ADD60FD1792F4AB99A53E2F859482C59",
	}

	for _, raw := range inputs {
		once, err := Normalize(raw)
		if err != nil {
			t.Fatalf("Normalize(%q) returned error: %v", raw, err)
		}
		twice, err := Normalize(once.String())
		if err != nil {
			t.Fatalf("Normalize(Normalize(%q)) returned error: %v", raw, err)
		}
		if once != twice {
			t.Errorf("normalization is not idempotent: %q != %q", once, twice)
		}
	}
}

func TestNormalize_RejectsMalformed(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"empty", ""},
		{"too short", "add60fd1"},
		{"too long", "add60fd1792f4ab99a53e2f859482c59ff"},
		{"non-hex characters", "zdd60fd1-792f-4ab9-9a53-e2f859482c59"},
		{"arbitrary text", "not-a-uuid"},
		{"numeric id", "12345"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Normalize(tt.raw)
			if err == nil {
				t.Fatalf("Normalize(%q) = %q, want error", tt.raw, got)
			}
			if !errors.Is(err, ErrMalformed) {
				t.Errorf("Normalize(%q) error = %v, want ErrMalformed", tt.raw, err)
			}
		})
	}
}

func TestEqual(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		want bool
	}{
		{"same encoding", "add60fd1792f4ab99a53e2f859482c59", "add60fd1792f4ab99a53e2f859482c59", true},
		{"hex vs hyphenated", "add60fd1792f4ab99a53e2f859482c59", "add60fd1-792f-4ab9-9a53-e2f859482c59", true},
		{"case mismatch", "ADD60FD1-792F-4AB9-9A53-E2F859482C59", "add60fd1792f4ab99a53e2f859482c59", true},
		{"different users", "add60fd1792f4ab99a53e2f859482c59", "11111111222233334444555555555555", false},
		{"left malformed", "garbage", "add60fd1792f4ab99a53e2f859482c59", false},
		{"right malformed", "add60fd1792f4ab99a53e2f859482c59", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Equal(tt.a, tt.b); got != tt.want {
				t.Errorf("Equal(%q, %q) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestID_Hyphenated(t *testing.T) {
	id := ID("add60fd1792f4ab99a53e2f859482c59")
	want := "add60fd1-792f-4ab9-9a53-e2f859482c59"
	if got := id.Hyphenated(); got != want {
		t.Errorf("Hyphenated() = %q, want %q", got, want)
	}
}

func TestNew_ProducesCanonicalForm(t *testing.T) {
	id := New()
	normalized, err := Normalize(id.String())
	if err != nil {
		t.Fatalf("New() produced non-normalizable id %q: %v", id, err)
	}
	if normalized != id {
		t.Errorf("New() = %q is not canonical (normalizes to %q)", id, normalized)
	}
}
