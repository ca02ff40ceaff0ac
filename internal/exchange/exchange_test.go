package exchange

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/five82/podium/internal/draw"
)

func TestExport(t *testing.T) {
	slot := draw.NewSlot(1, "Finals")
	slot.Topics = []draw.Topic{
		{ID: "b", Title: "Newer", SideA: "yes", SideB: "no", IsUsed: true},
		{ID: "a", Title: "Older"},
	}

	var buf bytes.Buffer
	require.NoError(t, Export(&buf, slot))
	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "slot: Finals\ntopics:\n"), out)

	var doc Document
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &doc))
	assert.Equal(t, Document{Slot: "Finals", Topics: []Entry{
		{Title: "Newer", SideA: "yes", SideB: "no", Used: true},
		{Title: "Older"},
	}}, doc)
}

func TestImport(t *testing.T) {
	got, err := Import(strings.NewReader(`
slot: ignored
topics:
  - title: "  First "
    side_a: pro
    side_b: con
    used: true
  - title: Second
`))
	require.NoError(t, err)
	assert.Equal(t, []draw.TopicFields{
		{Title: "First", SideA: "pro", SideB: "con"},
		{Title: "Second"},
	}, got)
}

func TestImport_ExportRoundTrip(t *testing.T) {
	slot := draw.NewSlot(0, "")
	slot.BulkAdd([]draw.TopicFields{{Title: "A", SideA: "1"}, {Title: "B", SideB: "2"}})

	var buf bytes.Buffer
	require.NoError(t, Export(&buf, slot))
	got, err := Import(&buf)
	require.NoError(t, err)
	assert.Equal(t, []draw.TopicFields{{Title: "A", SideA: "1"}, {Title: "B", SideB: "2"}}, got)
}

func TestImport_Errors(t *testing.T) {
	_, err := Import(strings.NewReader("topics:\n  - title: ok\n  - side_a: orphan\n"))
	require.ErrorIs(t, err, ErrMissingTitle)
	assert.Contains(t, err.Error(), "entry 2")

	_, err = Import(strings.NewReader("topics:\n  - title: x\n    colour: red\n"))
	assert.Error(t, err, "unknown fields are rejected")

	_, err = Import(strings.NewReader("topics: [\n"))
	assert.Error(t, err)
}

func TestImport_EmptyDocument(t *testing.T) {
	got, err := Import(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, got)
}
