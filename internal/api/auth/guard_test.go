package auth

import "testing"

func TestAuthorize(t *testing.T) {
	tests := []struct {
		name   string
		caller string
		owner  string
		want   Decision
	}{
		{
			name:   "exact canonical match",
			caller: "add60fd1792f4ab99a53e2f859482c59",
			owner:  "add60fd1792f4ab99a53e2f859482c59",
			want:   Allow,
		},
		{
			name:   "hex caller owns hyphenated resource",
			caller: "add60fd1792f4ab99a53e2f859482c59",
			owner:  "add60fd1-792f-4ab9-9a53-e2f859482c59",
			want:   Allow,
		},
		{
			name:   "upper-case stored owner",
			caller: "add60fd1792f4ab99a53e2f859482c59",
			owner:  "ADD60FD1-792F-4AB9-9A53-E2F859482C59",
			want:   Allow,
		},
		{
			name:   "different identities",
			caller: "add60fd1792f4ab99a53e2f859482c59",
			owner:  "11111111222233334444555555555555",
			want:   Deny,
		},
		{
			name:   "malformed caller",
			caller: "user-123",
			owner:  "add60fd1792f4ab99a53e2f859482c59",
			want:   Deny,
		},
		{
			name:   "malformed owner",
			caller: "add60fd1792f4ab99a53e2f859482c59",
			owner:  "",
			want:   Deny,
		},
		{
			name:   "both malformed and equal still denied",
			caller: "not-an-id",
			owner:  "not-an-id",
			want:   Deny,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Authorize(tt.caller, tt.owner); got != tt.want {
				t.Errorf("Authorize(%q, %q) = %v, want %v", tt.caller, tt.owner, got, tt.want)
			}
		})
	}
}
