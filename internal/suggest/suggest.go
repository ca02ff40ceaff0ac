package suggest

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/five82/podium/internal/draw"
)

// Suggestion is one proposed topic with its two opposing sides.
type Suggestion struct {
	Title string `json:"title"`
	SideA string `json:"sideA"`
	SideB string `json:"sideB"`
}

// Generator proposes topics for a category. An unavailable generator and
// one with nothing to offer both return an empty slice.
type Generator interface {
	Suggest(ctx context.Context, category string) []Suggestion
}

// Nop never suggests anything. It stands in when no API key is configured.
type Nop struct{}

func (Nop) Suggest(context.Context, string) []Suggestion { return nil }

// Validate parses an untrusted JSON array of suggestions. Entries with a
// blank title or side are dropped; a malformed payload yields nothing.
func Validate(raw []byte) []Suggestion {
	var entries []json.RawMessage
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil
	}
	out := make([]Suggestion, 0, len(entries))
	for _, e := range entries {
		var s Suggestion
		if err := json.Unmarshal(e, &s); err != nil {
			continue
		}
		s.Title = strings.TrimSpace(s.Title)
		s.SideA = strings.TrimSpace(s.SideA)
		s.SideB = strings.TrimSpace(s.SideB)
		if s.Title == "" || s.SideA == "" || s.SideB == "" {
			continue
		}
		out = append(out, s)
	}
	return out
}

// ToFields converts suggestions into topic fields for a bulk add.
func ToFields(in []Suggestion) []draw.TopicFields {
	if len(in) == 0 {
		return nil
	}
	out := make([]draw.TopicFields, len(in))
	for i, s := range in {
		out[i] = draw.TopicFields{Title: s.Title, SideA: s.SideA, SideB: s.SideB}
	}
	return out
}
