package backend

import (
	"context"
	"fmt"
	"strings"

	"github.com/codexr/codexr/internal/domain"
)

// NameDeterministic identifies the canned-answer backend. It is the
// default backend and the guaranteed fallback: it never fails, never
// suspends, and its payloads always pass schema validation.
const NameDeterministic = "deterministic"

// Deterministic serves pre-authored answers selected by query keywords
// first and category second.
type Deterministic struct{}

// NewDeterministic returns the canned-answer backend.
func NewDeterministic() *Deterministic { return &Deterministic{} }

// Name returns the canonical backend identifier.
func (d *Deterministic) Name() string { return NameDeterministic }

// Generate selects a canned payload. A fresh copy is returned on every
// call so callers can mutate their answer freely.
func (d *Deterministic) Generate(_ context.Context, req *Request) (*Response, error) {
	lower := strings.ToLower(req.Query)

	var answer *domain.StructuredAnswer
	switch {
	case strings.Contains(lower, "teleport") && strings.Contains(lower, "unity"):
		answer = unityTeleportAnswer()
	case strings.Contains(lower, "multiplayer") && strings.Contains(lower, "unreal"):
		answer = unrealMultiplayerAnswer()
	case strings.Contains(lower, "shader") && strings.Contains(lower, "occlusion"):
		answer = shaderOcclusionAnswer()
	default:
		answer = genericAnswer(req.Query, req.Category)
	}

	answer.Source = domain.SourceDeterministic
	return &Response{Answer: answer}, nil
}

func unityTeleportAnswer() *domain.StructuredAnswer {
	return &domain.StructuredAnswer{
		Category: domain.CategoryUnity,
		SubTasks: []domain.SubTask{
			{Title: "Install XR Interaction Toolkit package via Package Manager"},
			{Title: "Create XR Origin (VR) prefab in your scene"},
			{Title: "Add Teleportation Provider component to XR Origin"},
			{Title: "Create teleportation areas using Teleportation Area prefab"},
			{Title: "Configure Input Actions for teleportation"},
		},
		Snippet: &domain.CodeSnippet{
			Language: domain.LangCSharp,
			Code: `// TeleportationManager.cs
using UnityEngine;
using UnityEngine.XR.Interaction.Toolkit;

public class TeleportationManager : MonoBehaviour
{
    [SerializeField] private TeleportationProvider teleportationProvider;
    [SerializeField] private LineRenderer lineRenderer;

    void Start()
    {
        if (teleportationProvider == null)
            teleportationProvider = FindObjectOfType<TeleportationProvider>();
    }

    public void RequestTeleport(TeleportRequest request)
    {
        teleportationProvider.QueueTeleportRequest(request);
    }
}`,
		},
		BestPractices: []string{
			"Always validate teleport destinations to avoid placing users inside objects",
			"Use smooth locomotion as a fallback for users with motion sensitivity",
			"Implement audio/visual feedback for successful teleportations",
			"Consider using fade transitions to reduce motion sickness",
		},
		DocLinks: []domain.DocLink{
			{
				Title:  "Locomotion",
				URL:    "https://docs.unity3d.com/Packages/com.unity.xr.interaction.toolkit@2.5/manual/locomotion.html",
				Source: "Unity Official",
			},
			{
				Title:  "Teleportation Provider",
				URL:    "https://docs.unity3d.com/Packages/com.unity.xr.interaction.toolkit@2.5/manual/teleportation-provider.html",
				Source: "Unity Official",
			},
		},
		Difficulty: domain.DifficultyEstimate{
			Level:         domain.DifficultyMedium,
			EstimatedTime: "45 minutes",
		},
	}
}

func unrealMultiplayerAnswer() *domain.StructuredAnswer {
	return &domain.StructuredAnswer{
		Category: domain.CategoryUnreal,
		SubTasks: []domain.SubTask{
			{Title: "Enable multiplayer plugins in Project Settings"},
			{Title: "Create dedicated server build configuration"},
			{Title: "Implement network replication for VR components"},
			{Title: "Set up player state synchronization"},
			{Title: "Test with multiple clients"},
		},
		Snippet: &domain.CodeSnippet{
			Language: domain.LangCPP,
			Code: `// VRPlayerCharacter.cpp
#include "VRPlayerCharacter.h"
#include "Net/UnrealNetwork.h"

void AVRPlayerCharacter::GetLifetimeReplicatedProps(TArray<FLifetimeProperty>& OutLifetimeProps) const
{
    Super::GetLifetimeReplicatedProps(OutLifetimeProps);

    DOREPLIFETIME(AVRPlayerCharacter, HeadTransform);
    DOREPLIFETIME(AVRPlayerCharacter, LeftHandTransform);
    DOREPLIFETIME(AVRPlayerCharacter, RightHandTransform);
}

void AVRPlayerCharacter::ServerUpdateVRTransforms_Implementation(
    FTransform NewHeadTransform,
    FTransform NewLeftHand,
    FTransform NewRightHand)
{
    HeadTransform = NewHeadTransform;
    LeftHandTransform = NewLeftHand;
    RightHandTransform = NewRightHand;
}`,
		},
		BestPractices: []string{
			"Use compression for frequent VR transform updates",
			"Implement client-side prediction for smooth movement",
			"Consider network culling for distant players",
			"Handle VR-specific disconnection scenarios gracefully",
		},
		DocLinks: []domain.DocLink{
			{
				Title:  "Networking and Multiplayer",
				URL:    "https://docs.unrealengine.com/5.3/en-US/networking-and-multiplayer-in-unreal-engine/",
				Source: "Unreal Official",
			},
			{
				Title:  "VR Development",
				URL:    "https://docs.unrealengine.com/5.3/en-US/vr-development-in-unreal-engine/",
				Source: "Unreal Official",
			},
		},
		Difficulty: domain.DifficultyEstimate{
			Level:         domain.DifficultyHard,
			EstimatedTime: "3-4 hours",
		},
	}
}

func shaderOcclusionAnswer() *domain.StructuredAnswer {
	return &domain.StructuredAnswer{
		Category: domain.CategoryShader,
		SubTasks: []domain.SubTask{
			{Title: "Create occlusion shader using depth buffer comparison"},
			{Title: "Implement proper depth testing for AR objects"},
			{Title: "Add support for real-world geometry occlusion"},
			{Title: "Optimize for mobile AR platforms"},
			{Title: "Test with various lighting conditions"},
		},
		Snippet: &domain.CodeSnippet{
			Language: domain.LangHLSL,
			Code: `// AROcclusion.shader
Shader "Custom/AROcclusion"
{
    Properties
    {
        _MainTex ("Texture", 2D) = "white" {}
        _OcclusionStrength ("Occlusion Strength", Range(0,1)) = 1.0
    }

    SubShader
    {
        Tags { "RenderType"="Transparent" "Queue"="Geometry-1" }

        Pass
        {
            ZWrite On
            ZTest LEqual
            ColorMask 0

            CGPROGRAM
            #pragma vertex vert
            #pragma fragment frag

            struct appdata
            {
                float4 vertex : POSITION;
            };

            struct v2f
            {
                float4 vertex : SV_POSITION;
            };

            v2f vert (appdata v)
            {
                v2f o;
                o.vertex = UnityObjectToClipPos(v.vertex);
                return o;
            }

            fixed4 frag (v2f i) : SV_Target
            {
                return fixed4(0,0,0,0);
            }
            ENDCG
        }
    }
}`,
		},
		BestPractices: []string{
			"Use depth-only rendering for better performance",
			"Consider using stencil buffer for complex occlusion scenarios",
			"Test on target mobile devices for performance validation",
			"Implement fallback for devices without depth camera",
		},
		DocLinks: []domain.DocLink{
			{
				Title:  "Depth Textures",
				URL:    "https://docs.unity3d.com/Manual/SL-DepthTextures.html",
				Source: "Unity Official",
			},
			{
				Title:  "AR Occlusion Manager",
				URL:    "https://docs.unity3d.com/Packages/com.unity.xr.arfoundation@4.2/manual/occlusion-manager.html",
				Source: "Unity Official",
			},
		},
		Difficulty: domain.DifficultyEstimate{
			Level:         domain.DifficultyHard,
			EstimatedTime: "2-3 hours",
		},
	}
}

func genericAnswer(query string, category domain.Category) *domain.StructuredAnswer {
	if !category.Valid() {
		category = domain.CategoryGeneral
	}
	return &domain.StructuredAnswer{
		Category: category,
		SubTasks: []domain.SubTask{
			{Title: fmt.Sprintf("Analyze the %s development requirements for: %s", category, query)},
			{Title: "Research relevant documentation and examples"},
			{Title: "Implement the core functionality step by step"},
			{Title: "Test and debug the implementation thoroughly"},
			{Title: "Optimize for your target platform and use case"},
		},
		Snippet: &domain.CodeSnippet{
			Language: domain.SnippetLanguageFor(category),
			Code: fmt.Sprintf(`// %s implementation for: %s
// This is a generic template - provide more specific details for a complete solution

using UnityEngine;  // or appropriate includes for your platform

public class GeneratedSolution : MonoBehaviour
{
    void Start()
    {
        // Initialize your %s implementation here
        Debug.Log("Implementing: %s");
    }

    void Update()
    {
        // Add your main logic here
    }
}`, category, query, category, query),
		},
		BestPractices: []string{
			fmt.Sprintf("Follow %s-specific development guidelines and conventions", category),
			"Test on your target devices regularly during development",
			"Keep performance optimization in mind from the start",
			"Document your code for future reference and team collaboration",
		},
		DocLinks: []domain.DocLink{
			{Title: "Unity Manual", URL: "https://docs.unity3d.com/Manual/", Source: "Unity Official"},
			{Title: "Unreal Engine Documentation", URL: "https://docs.unrealengine.com/", Source: "Unreal Official"},
			{Title: "Meta Quest Documentation", URL: "https://developer.oculus.com/documentation/", Source: "Web"},
		},
		Difficulty: domain.DifficultyEstimate{
			Level:         domain.DifficultyMedium,
			EstimatedTime: "1-2 hours",
		},
	}
}
