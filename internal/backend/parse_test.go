package backend

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codexr/codexr/internal/domain"
)

const wireAnswer = `{
	"subtasks": ["Install the XR package", "Configure the rig"],
	"code_snippet": "public class Rig : MonoBehaviour {}",
	"best_practices": ["Test on device"],
	"difficulty": "medium",
	"documentation_links": ["https://docs.unity3d.com/Manual/"],
	"estimated_time": "1 hour"
}`

func TestParseAnswer(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{
			name:    "bare JSON object",
			content: wireAnswer,
		},
		{
			name:    "leading and trailing whitespace",
			content: "\n\n  " + wireAnswer + "  \n",
		},
		{
			name:    "fenced json block",
			content: "Here is the answer:\n```json\n" + wireAnswer + "\n```\nHope that helps!",
		},
		{
			name:    "unlabeled fence",
			content: "```\n" + wireAnswer + "\n```",
		},
		{
			name:    "prose around a brace window",
			content: "The plan is as follows. " + wireAnswer + " Good luck.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			answer, err := ParseAnswer(tt.content, domain.CategoryUnity)
			require.NoError(t, err)

			require.Len(t, answer.SubTasks, 2)
			assert.Equal(t, "Install the XR package", answer.SubTasks[0].Title)
			require.NotNil(t, answer.Snippet)
			assert.Equal(t, domain.LangCSharp, answer.Snippet.Language)
			assert.Equal(t, []string{"Test on device"}, answer.BestPractices)
			assert.Equal(t, domain.DifficultyMedium, answer.Difficulty.Level)
			assert.Equal(t, "1 hour", answer.Difficulty.EstimatedTime)
			require.Len(t, answer.DocLinks, 1)
			assert.Equal(t, "https://docs.unity3d.com/Manual/", answer.DocLinks[0].URL)
			assert.Equal(t, domain.CategoryUnity, answer.Category)
		})
	}
}

func TestParseAnswerUnparsable(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "empty string", content: ""},
		{name: "plain prose", content: "I cannot answer that."},
		{name: "broken braces", content: "} not json {"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseAnswer(tt.content, domain.CategoryGeneral)
			assert.ErrorIs(t, err, ErrUnparsableAnswer)
		})
	}
}

func TestParseAnswerDropsBlankEntries(t *testing.T) {
	content := `{"subtasks": ["Do the work", "", "   "], "best_practices": ["", "Ship it", "Ship it"]}`

	answer, err := ParseAnswer(content, domain.CategoryGeneral)
	require.NoError(t, err)
	assert.Len(t, answer.SubTasks, 1)
	assert.Equal(t, []string{"Ship it"}, answer.BestPractices)
	assert.Nil(t, answer.Snippet)
}

func TestParseAnswerIgnoresUnknownFields(t *testing.T) {
	content := `{"subtasks": ["Step"], "estimated_time": "5m", "difficulty": "easy", "confidence": 0.9}`

	answer, err := ParseAnswer(content, domain.CategoryGeneral)
	require.NoError(t, err)
	assert.Equal(t, domain.DifficultyEasy, answer.Difficulty.Level)
}

func TestCoerceDifficulty(t *testing.T) {
	tests := []struct {
		raw  string
		want domain.Difficulty
	}{
		{"easy", domain.DifficultyEasy},
		{"Easy", domain.DifficultyEasy},
		{"  MEDIUM ", domain.DifficultyMedium},
		{"moderate", domain.DifficultyMedium},
		{"hard", domain.DifficultyHard},
		{"Difficult", domain.DifficultyHard},
		{"impossible", domain.Difficulty("impossible")},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.want, coerceDifficulty(tt.raw))
		})
	}
}
