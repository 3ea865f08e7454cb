package classify

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/codexr/codexr/internal/domain"
)

func TestClassify(t *testing.T) {
	c := New()

	tests := []struct {
		name  string
		query string
		want  domain.Category
	}{
		{
			name:  "unity teleport question",
			query: "How do I add teleport locomotion in Unity VR?",
			want:  domain.CategoryUnity,
		},
		{
			name:  "unreal multiplayer question",
			query: "How do I set up multiplayer in Unreal VR?",
			want:  domain.CategoryUnreal,
		},
		{
			name:  "shader occlusion question",
			query: "Which shader works best for AR occlusion?",
			want:  domain.CategoryShader,
		},
		{
			name:  "no platform keywords",
			query: "What headset should I buy for my project?",
			want:  domain.CategoryGeneral,
		},
		{
			name:  "case insensitive",
			query: "UNITY GAMEOBJECT PREFAB setup",
			want:  domain.CategoryUnity,
		},
		{
			name:  "highest score wins across categories",
			query: "Port a Unity scene with prefabs and a MonoBehaviour to an Unreal level",
			want:  domain.CategoryUnity,
		},
		{
			name:  "shader keywords dominate",
			query: "hlsl vertex fragment lighting texture uv",
			want:  domain.CategoryShader,
		},
		{
			name:  "empty string",
			query: "",
			want:  domain.CategoryGeneral,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, c.Classify(tt.query))
		})
	}
}

func TestClassifyDeterminism(t *testing.T) {
	c := New()
	query := "unity shader material with c# and hlsl"

	first := c.Classify(query)
	for range 10 {
		assert.Equal(t, first, c.Classify(query))
	}
}

func TestClassifyPriorityOnTie(t *testing.T) {
	c := New()

	// "oculus" appears in both the unity and unreal keyword sets; a
	// one-keyword tie must resolve to the higher-priority set.
	assert.Equal(t, domain.CategoryUnity, c.Classify("oculus setup guide"))
}

func TestClassifyShaderNeverGeneral(t *testing.T) {
	c := New()

	shaderQueries := []string{
		"shader",
		"how to write a shader",
		"hlsl lighting",
		"vertex and fragment stages",
	}
	for _, q := range shaderQueries {
		assert.NotEqual(t, domain.CategoryGeneral, c.Classify(q), "query %q", q)
	}
}
