package suggest

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"

	"github.com/five82/podium/internal/draw"
)

type fakeModels struct {
	text     string
	err      error
	model    string
	prompt   string
	config   *genai.GenerateContentConfig
	deadline bool
}

func (f *fakeModels) GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	f.model = model
	f.config = config
	_, f.deadline = ctx.Deadline()
	if len(contents) > 0 && len(contents[0].Parts) > 0 {
		f.prompt = contents[0].Parts[0].Text
	}
	if f.err != nil {
		return nil, f.err
	}
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content: &genai.Content{Parts: []*genai.Part{{Text: f.text}}},
		}},
	}, nil
}

func TestValidate(t *testing.T) {
	raw := `[
		{"title":" Cats ","sideA":"for","sideB":"against"},
		{"title":"","sideA":"x","sideB":"y"},
		{"title":"No sides","sideA":"  ","sideB":"y"},
		{"title":"Missing B","sideA":"x"},
		{"title":42},
		{"title":"Dogs","sideA":"a","sideB":"b","extra":true}
	]`
	got := Validate([]byte(raw))
	assert.Equal(t, []Suggestion{
		{Title: "Cats", SideA: "for", SideB: "against"},
		{Title: "Dogs", SideA: "a", SideB: "b"},
	}, got)
}

func TestValidate_Malformed(t *testing.T) {
	for _, raw := range []string{"", "{", `{"title":"x"}`, "null", "[]"} {
		assert.Empty(t, Validate([]byte(raw)), raw)
	}
}

func TestToFields(t *testing.T) {
	assert.Nil(t, ToFields(nil))
	got := ToFields([]Suggestion{{Title: "t", SideA: "a", SideB: "b"}})
	assert.Equal(t, []draw.TopicFields{{Title: "t", SideA: "a", SideB: "b"}}, got)
}

func TestNop(t *testing.T) {
	assert.Empty(t, Nop{}.Suggest(context.Background(), "anything"))
}

func TestGemini_Suggest(t *testing.T) {
	fake := &fakeModels{text: `[{"title":"T","sideA":"A","sideB":"B"}]`}
	g := newGemini(fake, GeminiConfig{Model: "m", Count: 4, Timeout: time.Second}, nil)

	got := g.Suggest(context.Background(), " space travel ")
	require.Len(t, got, 1)
	assert.Equal(t, "T", got[0].Title)

	assert.Equal(t, "m", fake.model)
	assert.Equal(t, Prompt("space travel", 4), fake.prompt)
	assert.Contains(t, fake.prompt, "4 interesting debate topics about space travel")
	assert.True(t, fake.deadline, "request must be bounded")
	require.NotNil(t, fake.config)
	assert.Equal(t, "application/json", fake.config.ResponseMIMEType)
	assert.Equal(t, genai.TypeArray, fake.config.ResponseSchema.Type)
	assert.ElementsMatch(t, []string{"title", "sideA", "sideB"}, fake.config.ResponseSchema.Items.Required)
}

func TestGemini_FailuresYieldEmpty(t *testing.T) {
	tests := []struct {
		name string
		fake *fakeModels
	}{
		{"transport error", &fakeModels{err: errors.New("unavailable")}},
		{"not json", &fakeModels{text: "sorry, I can't"}},
		{"all invalid", &fakeModels{text: `[{"title":"x"}]`}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			g := newGemini(tc.fake, GeminiConfig{}, nil)
			assert.Empty(t, g.Suggest(context.Background(), "law"))
		})
	}
}

func TestGemini_BlankCategorySkipsRequest(t *testing.T) {
	fake := &fakeModels{}
	g := newGemini(fake, GeminiConfig{}, nil)
	assert.Empty(t, g.Suggest(context.Background(), "   "))
	assert.Empty(t, fake.model)
}

func TestGemini_Defaults(t *testing.T) {
	g := newGemini(&fakeModels{}, GeminiConfig{}, nil)
	assert.Equal(t, defaultModel, g.model)
	assert.Equal(t, defaultCount, g.count)
	assert.Equal(t, defaultTimeout, g.timeout)
}

func TestNewGemini_RequiresKey(t *testing.T) {
	_, err := NewGemini(context.Background(), GeminiConfig{APIKey: " "}, nil)
	assert.Error(t, err)
}
