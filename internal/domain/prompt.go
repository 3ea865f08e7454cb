package domain

import (
	"fmt"
	"strings"
)

// answerFormat is the JSON contract model backends are instructed to emit.
// It matches the wire shape ParseAnswer accepts.
const answerFormat = `{
    "subtasks": ["Step 1: ...", "Step 2: ...", "Step 3: ..."],
    "code_snippet": "// complete working code here",
    "best_practices": ["Tip 1", "Tip 2"],
    "difficulty": "easy|medium|hard",
    "documentation_links": ["https://..."],
    "estimated_time": "30 minutes"
}`

// categoryFocus holds the per-category instruction appended to the prompt.
var categoryFocus = map[Category]string{
	CategoryUnity:   "Focus on Unity and the XR Interaction Toolkit. Code must be C#.",
	CategoryUnreal:  "Focus on Unreal Engine VR development. Code must be C++ or Blueprint-adjacent C++.",
	CategoryShader:  "Focus on shader authoring. Code must be HLSL or ShaderLab.",
	CategoryGeneral: "Focus on general AR/VR development practices.",
}

// RenderPrompt builds the category-specific generation prompt for a query.
// The same prompt contract is shared by every model backend so their raw
// output can be parsed uniformly.
func RenderPrompt(query string, category Category) string {
	focus, ok := categoryFocus[category]
	if !ok {
		focus = categoryFocus[CategoryGeneral]
	}

	var b strings.Builder
	b.WriteString("You are a helpful AR/VR coding assistant. Generate a JSON response for this query.\n\n")
	fmt.Fprintf(&b, "Query: %s\nCategory: %s\n\n", query, category)
	b.WriteString("Respond with valid JSON in exactly this format:\n")
	b.WriteString(answerFormat)
	b.WriteString("\n\n")
	b.WriteString(focus)
	b.WriteString(" Provide complete, working code.")
	return b.String()
}
