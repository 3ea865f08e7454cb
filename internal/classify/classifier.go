// Package classify assigns a platform category to raw query text.
// Classification is deterministic keyword matching; no model call is made
// and classification never fails.
package classify

import (
	"strings"

	"github.com/codexr/codexr/internal/domain"
)

// keywordSet pairs a category with the terms that vote for it.
type keywordSet struct {
	category domain.Category
	keywords []string
}

// keywordSets are checked in fixed priority order; a query matching several
// categories with equal score resolves to the earliest entry.
var keywordSets = []keywordSet{
	{
		category: domain.CategoryUnity,
		keywords: []string{
			"unity", "c#", "gameobject", "transform", "monobehaviour",
			"prefab", "scene", "xr toolkit", "oculus", "vive",
		},
	},
	{
		category: domain.CategoryUnreal,
		keywords: []string{
			"unreal", "ue4", "ue5", "c++", "blueprint", "pawn", "actor",
			"component", "world", "level", "steam vr", "oculus",
		},
	},
	{
		category: domain.CategoryShader,
		keywords: []string{
			"shader", "hlsl", "material", "vertex", "fragment", "surface",
			"lighting", "texture", "uv", "normal", "glsl",
		},
	},
}

// Classifier maps free-text queries to categories. The zero value is not
// usable; construct with New.
type Classifier struct {
	sets []keywordSet
}

// New returns a classifier over the fixed keyword sets.
func New() *Classifier {
	return &Classifier{sets: keywordSets}
}

// Classify scores the lower-cased query against each keyword set and
// returns the highest-scoring category. Ties resolve to the higher-priority
// set; a query matching nothing classifies as general. Always succeeds.
func (c *Classifier) Classify(query string) domain.Category {
	lower := strings.ToLower(query)

	best := domain.CategoryGeneral
	bestScore := 0
	for _, set := range c.sets {
		score := 0
		for _, kw := range set.keywords {
			if strings.Contains(lower, kw) {
				score++
			}
		}
		// Strict > keeps earlier (higher-priority) sets on ties.
		if score > bestScore {
			best = set.category
			bestScore = score
		}
	}
	return best
}
