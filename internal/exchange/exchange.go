// Package exchange reads and writes topic lists as YAML documents so a
// slot can be prepared in an editor or moved between machines.
package exchange

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/five82/podium/internal/draw"
)

// ErrMissingTitle rejects an import document with an untitled entry.
var ErrMissingTitle = errors.New("topic without title")

// Document is the YAML layout of one exported slot.
type Document struct {
	Slot   string  `yaml:"slot,omitempty"`
	Topics []Entry `yaml:"topics"`
}

// Entry is one topic in a Document.
type Entry struct {
	Title string `yaml:"title"`
	SideA string `yaml:"side_a,omitempty"`
	SideB string `yaml:"side_b,omitempty"`
	Used  bool   `yaml:"used,omitempty"`
}

// Export writes the slot's topics, newest first, as YAML.
func Export(w io.Writer, slot draw.Slot) error {
	doc := Document{Slot: slot.Name, Topics: make([]Entry, 0, len(slot.Topics))}
	for _, t := range slot.Topics {
		doc.Topics = append(doc.Topics, Entry{
			Title: t.Title,
			SideA: t.SideA,
			SideB: t.SideB,
			Used:  t.IsUsed,
		})
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("export topics: %w", err)
	}
	return enc.Close()
}

// Import parses a YAML document into topic fields in document order. The
// used flag is ignored; imported topics always start in the pool.
func Import(r io.Reader) ([]draw.TopicFields, error) {
	var doc Document
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("import topics: %w", err)
	}

	out := make([]draw.TopicFields, 0, len(doc.Topics))
	for i, e := range doc.Topics {
		title := strings.TrimSpace(e.Title)
		if title == "" {
			return nil, fmt.Errorf("import topics: entry %d: %w", i+1, ErrMissingTitle)
		}
		out = append(out, draw.TopicFields{
			Title: title,
			SideA: strings.TrimSpace(e.SideA),
			SideB: strings.TrimSpace(e.SideB),
		})
	}
	return out, nil
}
