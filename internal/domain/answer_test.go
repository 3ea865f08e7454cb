package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validAnswer() *StructuredAnswer {
	return &StructuredAnswer{
		Category: CategoryUnity,
		SubTasks: []SubTask{
			{Title: "Install the XR Interaction Toolkit"},
			{Title: "Add an XR Origin to the scene"},
		},
		Snippet: &CodeSnippet{Language: LangCSharp, Code: "public class A {}"},
		BestPractices: []string{
			"Validate teleport destinations",
		},
		DocLinks: []DocLink{
			{Title: "XR Manual", URL: "https://docs.unity3d.com/Manual/XR.html", Source: "Unity Official"},
		},
		Difficulty: DifficultyEstimate{Level: DifficultyMedium, EstimatedTime: "45 minutes"},
	}
}

func TestStructuredAnswerValidate(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*StructuredAnswer)
		wantField string
	}{
		{
			name:   "valid answer passes",
			mutate: func(_ *StructuredAnswer) {},
		},
		{
			name:      "missing subtasks",
			mutate:    func(a *StructuredAnswer) { a.SubTasks = nil },
			wantField: "subtasks",
		},
		{
			name:      "subtask without title",
			mutate:    func(a *StructuredAnswer) { a.SubTasks[0].Title = "" },
			wantField: "subtasks[0].title",
		},
		{
			name:      "missing category",
			mutate:    func(a *StructuredAnswer) { a.Category = "" },
			wantField: "category",
		},
		{
			name:      "unknown category",
			mutate:    func(a *StructuredAnswer) { a.Category = "godot" },
			wantField: "category",
		},
		{
			name:      "missing difficulty level",
			mutate:    func(a *StructuredAnswer) { a.Difficulty.Level = "" },
			wantField: "difficulty.level",
		},
		{
			name:      "unknown difficulty level",
			mutate:    func(a *StructuredAnswer) { a.Difficulty.Level = "extreme" },
			wantField: "difficulty.level",
		},
		{
			name:      "missing estimated time",
			mutate:    func(a *StructuredAnswer) { a.Difficulty.EstimatedTime = "" },
			wantField: "difficulty.estimatedtime",
		},
		{
			name:      "malformed doc link URL",
			mutate:    func(a *StructuredAnswer) { a.DocLinks[0].URL = "not a url" },
			wantField: "documentation_links[0].url",
		},
		{
			name:      "relative doc link URL",
			mutate:    func(a *StructuredAnswer) { a.DocLinks[0].URL = "/Manual/XR.html" },
			wantField: "documentation_links[0].url",
		},
		{
			name:      "snippet without code",
			mutate:    func(a *StructuredAnswer) { a.Snippet = &CodeSnippet{Language: LangCSharp} },
			wantField: "snippet.code",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := validAnswer()
			tt.mutate(a)

			err := a.Validate()
			if tt.wantField == "" {
				assert.NoError(t, err)
				return
			}

			require.Error(t, err)
			var schemaErr *SchemaError
			require.ErrorAs(t, err, &schemaErr)
			assert.Equal(t, tt.wantField, schemaErr.Field)
		})
	}
}

func TestStructuredAnswerValidateNil(t *testing.T) {
	var a *StructuredAnswer
	err := a.Validate()
	require.Error(t, err)
}

func TestMergeDocLinks(t *testing.T) {
	t.Run("union by URL is idempotent", func(t *testing.T) {
		a := validAnswer()
		incoming := []DocLink{
			{Title: "XR Manual duplicate", URL: "https://docs.unity3d.com/Manual/XR.html"},
			{Title: "Locomotion", URL: "https://docs.unity3d.com/locomotion.html"},
		}

		a.MergeDocLinks(incoming)
		require.Len(t, a.DocLinks, 2)
		// Existing entry wins over the incoming duplicate.
		assert.Equal(t, "XR Manual", a.DocLinks[0].Title)

		a.MergeDocLinks(incoming)
		assert.Len(t, a.DocLinks, 2)
	})

	t.Run("empty merge is a no-op", func(t *testing.T) {
		a := validAnswer()
		before := len(a.DocLinks)
		a.MergeDocLinks(nil)
		assert.Len(t, a.DocLinks, before)
	})

	t.Run("malformed URLs are dropped", func(t *testing.T) {
		a := validAnswer()
		a.MergeDocLinks([]DocLink{{URL: "not a url"}, {URL: "ftp://example.com/x"}})
		assert.Len(t, a.DocLinks, 1)
	})

	t.Run("merge never invalidates a valid answer", func(t *testing.T) {
		a := validAnswer()
		require.NoError(t, a.Validate())
		a.MergeDocLinks([]DocLink{
			{URL: "https://example.com/a"},
			{URL: "garbage"},
			{URL: "https://example.com/a"},
		})
		assert.NoError(t, a.Validate())
	})
}

func TestAddBestPractice(t *testing.T) {
	a := validAnswer()
	a.AddBestPractice("Validate teleport destinations") // exact duplicate
	a.AddBestPractice("Use fade transitions")
	a.AddBestPractice("Use fade transitions")

	assert.Equal(t, []string{
		"Validate teleport destinations",
		"Use fade transitions",
	}, a.BestPractices)
}

func TestSnippetLanguageFor(t *testing.T) {
	assert.Equal(t, LangCSharp, SnippetLanguageFor(CategoryUnity))
	assert.Equal(t, LangCPP, SnippetLanguageFor(CategoryUnreal))
	assert.Equal(t, LangHLSL, SnippetLanguageFor(CategoryShader))
	assert.Equal(t, LangText, SnippetLanguageFor(CategoryGeneral))
	assert.Equal(t, LangText, SnippetLanguageFor(Category("unknown")))
}

func TestQueryValidate(t *testing.T) {
	tests := []struct {
		name    string
		query   Query
		wantErr bool
	}{
		{name: "normal question", query: Query{Text: "How do I add teleport locomotion?"}},
		{name: "empty text", query: Query{Text: ""}, wantErr: true},
		{name: "whitespace only", query: Query{Text: "   \t\n"}, wantErr: true},
		{name: "preference alone is not enough", query: Query{PreferredBackend: "local"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.query.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidQuery)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
