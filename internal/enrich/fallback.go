package enrich

import "github.com/codexr/codexr/internal/domain"

// fallbackTable holds curated documentation links served when the live
// search fails or comes back empty.
var fallbackTable = map[domain.Category][]domain.DocLink{
	domain.CategoryUnity: {
		{
			Title:   "Unity XR Documentation",
			URL:     "https://docs.unity3d.com/Manual/XR.html",
			Snippet: "Official Unity XR development documentation covering VR and AR.",
			Source:  "Unity Official",
		},
		{
			Title:   "XR Interaction Toolkit",
			URL:     "https://docs.unity3d.com/Packages/com.unity.xr.interaction.toolkit@2.5/manual/",
			Snippet: "Unity package for building VR and AR interactive experiences.",
			Source:  "Unity Official",
		},
	},
	domain.CategoryUnreal: {
		{
			Title:   "Unreal Engine VR Development",
			URL:     "https://docs.unrealengine.com/5.3/en-US/vr-development-in-unreal-engine/",
			Snippet: "Official documentation for VR development in Unreal Engine.",
			Source:  "Unreal Official",
		},
	},
	domain.CategoryShader: {
		{
			Title:   "Unity Shader Documentation",
			URL:     "https://docs.unity3d.com/Manual/Shaders.html",
			Snippet: "Complete guide to writing shaders in Unity using ShaderLab and HLSL.",
			Source:  "Unity Official",
		},
	},
	domain.CategoryGeneral: {
		{
			Title:   "VR Development Best Practices",
			URL:     "https://developer.oculus.com/documentation/unity/unity-conf-settings/",
			Snippet: "General guidelines and best practices for VR application development.",
			Source:  "Web",
		},
	},
}

// fallbackLinks returns the curated links for the category; unknown
// categories get the general set.
func fallbackLinks(category domain.Category) []domain.DocLink {
	if links, ok := fallbackTable[category]; ok {
		return links
	}
	return fallbackTable[domain.CategoryGeneral]
}
