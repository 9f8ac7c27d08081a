package core

import (
	"errors"
	"testing"
)

func TestParseScope(t *testing.T) {
	tests := []struct {
		token   string
		want    Scope
		wantErr bool
	}{
		{token: "c2c", want: ScopeDirect},
		{token: "group", want: ScopeGroup},
		{token: "channel", want: ScopeChannel},
		{token: "dm", wantErr: true},
		{token: "", wantErr: true},
		{token: "Group", wantErr: true}, // tokens are case-sensitive
	}

	for _, tt := range tests {
		t.Run(tt.token, func(t *testing.T) {
			got, err := ParseScope(tt.token)
			if tt.wantErr {
				if !errors.Is(err, ErrUnknownScope) {
					t.Fatalf("expected ErrUnknownScope, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestScopeString_RoundTrip(t *testing.T) {
	for _, s := range []Scope{ScopeDirect, ScopeGroup, ScopeChannel} {
		got, err := ParseScope(s.String())
		if err != nil {
			t.Fatalf("round trip failed for %v: %v", s, err)
		}
		if got != s {
			t.Errorf("round trip changed %v to %v", s, got)
		}
	}
}
