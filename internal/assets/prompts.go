// Package assets provides embedded static assets for the application.
//
// Prompt templates are stored as text files under prompts/ and embedded at compile time.
// The platform manifest (platforms.yaml) lists the target platforms in display order
// and points each one at its system prompt file.
package assets

import (
	"bytes"
	"embed"
	"text/template"
)

// PlatformManifest is the default platform registry manifest.
//
//go:embed platforms.yaml
var PlatformManifest []byte

// Prompts holds the per-platform system prompts referenced by PlatformManifest.
//
//go:embed prompts/*.txt
var Prompts embed.FS

// PromptsDir is the directory inside Prompts that promptFile entries are relative to.
const PromptsDir = "prompts"

// --- Dynamic prompt templates ---

//go:embed prompts/description-user.txt
var descriptionUserTemplate string

//go:embed prompts/video-analysis.txt
var videoAnalysisTemplate string

// Pre-parsed templates. template.Must panics on malformed templates,
// catching errors at program startup rather than at call time.
var (
	descriptionUserTmpl = template.Must(template.New("description-user").Parse(descriptionUserTemplate))
	videoAnalysisTmpl   = template.Must(template.New("video-analysis").Parse(videoAnalysisTemplate))
)

// PromptData holds the dynamic data injected into prompt templates.
type PromptData struct {
	PlatformName string
	SystemPrompt string
	Description  string
}

// RenderDescriptionUserPrompt renders the user message that wraps a scene
// description for the text completion provider.
func RenderDescriptionUserPrompt(platformName, description string) string {
	return renderTemplate(descriptionUserTmpl, PromptData{
		PlatformName: platformName,
		Description:  description,
	})
}

// RenderVideoAnalysisPrompt renders the instruction sent alongside an uploaded
// video. The platform's system prompt is embedded so the analysis output follows
// the same structure as the text path.
func RenderVideoAnalysisPrompt(platformName, systemPrompt string) string {
	return renderTemplate(videoAnalysisTmpl, PromptData{
		PlatformName: platformName,
		SystemPrompt: systemPrompt,
	})
}

// renderTemplate executes a pre-parsed template with the given data.
func renderTemplate(tmpl *template.Template, data PromptData) string {
	var buf bytes.Buffer
	// Template execution errors are not expected with our simple templates,
	// but we handle them gracefully by returning whatever was rendered.
	_ = tmpl.Execute(&buf, data)
	return buf.String()
}
