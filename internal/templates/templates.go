// Package templates renders a prompt into one of four fixed structures. Every
// renderer is faithful by construction: output contains only words from the
// original prompt plus fixed structural scaffolding, so restructuring can
// never smuggle in requirements the user did not state.
package templates

import (
	"fmt"

	"promptforge/internal/types"
)

// RenderContext carries everything a renderer may consult.
type RenderContext struct {
	Prompt    string
	Semantics types.PromptSemantics
	Headings  Headings
}

// RenderResult is one rendered template plus the renderer's own quality
// estimate.
type RenderResult struct {
	Content      string
	QualityScore int // 0-100
}

// Renderer restructures a prompt into one template shape.
type Renderer interface {
	Type() types.TemplateType
	IsSuitable(RenderContext) bool
	Render(RenderContext) (RenderResult, error)
}

// ForType returns the renderer for a template type. The switch is closed on
// purpose: adding a template type must add a renderer here or generation for
// it fails loudly.
func ForType(t types.TemplateType) (Renderer, error) {
	switch t {
	case types.TemplateTaskIO:
		return taskIORenderer{}, nil
	case types.TemplateEnumerated:
		return enumeratedRenderer{}, nil
	case types.TemplateSequential:
		return sequentialRenderer{}, nil
	case types.TemplateMinimal:
		return minimalRenderer{}, nil
	default:
		return nil, fmt.Errorf("no renderer for template type %q", t)
	}
}
