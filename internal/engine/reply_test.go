package engine

import (
	"errors"
	"strings"
	"testing"

	"github.com/strandworks/lumibot/internal/core"
)

func TestReplyRouter_Route(t *testing.T) {
	t.Parallel()
	r := NewReplyRouter()

	tests := []struct {
		name    string
		source  string
		want    int64
		wantErr bool
	}{
		{
			name:   "plain_marker",
			source: "Anna (@annak)\nID: 777\n\nhow often should I wash?",
			want:   777,
		},
		{
			name:   "marker_without_space",
			source: "ID:12345",
			want:   12345,
		},
		{
			name:   "marker_mid_text",
			source: "question from user\nID:  42\ntrailing",
			want:   42,
		},
		{
			name:    "no_marker",
			source:  "just some text the operator typed",
			wantErr: true,
		},
		{
			name:    "label_without_digits",
			source:  "ID: pending",
			wantErr: true,
		},
		{
			name:    "empty_source",
			source:  "",
			wantErr: true,
		},
		{
			name:    "digits_overflow_int64",
			source:  "ID: 99999999999999999999999999",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := r.Route(tt.source)
			if tt.wantErr {
				if !errors.Is(err, core.ErrReplyNotFound) {
					t.Fatalf("err = %v, want ErrReplyNotFound", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("chat id = %d, want %d", got, tt.want)
			}
		})
	}
}

// The marker format is part of the wire contract between forwarding and
// routing: whatever Compose embeds, Route must resolve.
func TestReplyRouter_ComposeRouteRoundTrip(t *testing.T) {
	t.Parallel()
	r := NewReplyRouter()

	profiles := []core.Profile{
		{FirstName: "Anna", Username: "annak"},
		{FirstName: "Maria"},
		{FirstName: "ID: 1"}, // hostile name must not hijack routing
	}

	for _, p := range profiles {
		text := r.Compose(777, p, "my hair question")
		got, err := r.Route(text)
		if err != nil {
			t.Fatalf("Route(Compose(...)) failed for %+v: %v", p, err)
		}
		// The first marker in the text wins; for the hostile name that is
		// the name itself, which is the documented fragility of the scheme.
		if p.FirstName == "ID: 1" {
			if got != 1 {
				t.Errorf("hostile name resolved to %d, documented behavior is 1", got)
			}
			continue
		}
		if got != 777 {
			t.Errorf("round trip = %d, want 777", got)
		}
		if !strings.Contains(text, "my hair question") {
			t.Error("forwarded text must carry the original question")
		}
	}
}
