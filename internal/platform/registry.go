// Package platform holds the registry of target video-generation platforms
// and their prompt templates.
//
// The registry is loaded once at startup (from the embedded manifest or an
// override YAML file) and is read-only afterwards, so a single *Registry can be
// shared by every request handler without locking.
package platform

import (
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/nickytooth/promptcrafting-ai/internal/assets"
	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"
)

// Template describes one target platform.
type Template struct {
	ID           string
	DisplayName  string
	SystemPrompt string
}

// Summary is the public view of a platform returned by GET /api/platforms.
type Summary struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Registry is an ordered, immutable set of platform templates.
type Registry struct {
	order []string
	byID  map[string]Template
}

// manifest is the on-disk YAML layout.
type manifest struct {
	Platforms []manifestEntry `yaml:"platforms"`
}

type manifestEntry struct {
	ID           string `yaml:"id"`
	Name         string `yaml:"name"`
	SystemPrompt string `yaml:"systemPrompt"`
	PromptFile   string `yaml:"promptFile"`
}

// NewRegistry builds a registry from templates in the given order.
// IDs must be non-empty and unique.
func NewRegistry(templates ...Template) (*Registry, error) {
	if len(templates) == 0 {
		return nil, fmt.Errorf("platform registry is empty")
	}
	r := &Registry{
		order: make([]string, 0, len(templates)),
		byID:  make(map[string]Template, len(templates)),
	}
	for _, t := range templates {
		if t.ID == "" {
			return nil, fmt.Errorf("platform id is required")
		}
		if t.DisplayName == "" {
			return nil, fmt.Errorf("platform %q: name is required", t.ID)
		}
		if strings.TrimSpace(t.SystemPrompt) == "" {
			return nil, fmt.Errorf("platform %q: system prompt is required", t.ID)
		}
		if _, dup := r.byID[t.ID]; dup {
			return nil, fmt.Errorf("duplicate platform id %q", t.ID)
		}
		r.order = append(r.order, t.ID)
		r.byID[t.ID] = t
	}
	return r, nil
}

// LoadDefault loads the registry from the embedded manifest.
func LoadDefault() (*Registry, error) {
	promptFS, err := fs.Sub(assets.Prompts, assets.PromptsDir)
	if err != nil {
		return nil, fmt.Errorf("failed to access embedded prompts: %w", err)
	}
	return parse(assets.PlatformManifest, promptFS)
}

// LoadFile loads the registry from a YAML file on disk. promptFile entries
// are resolved relative to the manifest's directory.
func LoadFile(manifestPath string) (*Registry, error) {
	data, err := os.ReadFile(manifestPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read platform manifest: %w", err)
	}
	return parse(data, os.DirFS(filepath.Dir(manifestPath)))
}

// Load returns the registry from manifestPath, or the embedded default when
// manifestPath is empty.
func Load(manifestPath string) (*Registry, error) {
	if manifestPath == "" {
		return LoadDefault()
	}
	log.Info().Str("path", manifestPath).Msg("Loading platform manifest override")
	return LoadFile(manifestPath)
}

func parse(data []byte, promptFS fs.FS) (*Registry, error) {
	var m manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to parse platform manifest: %w", err)
	}

	templates := make([]Template, 0, len(m.Platforms))
	for _, e := range m.Platforms {
		systemPrompt := e.SystemPrompt
		if e.PromptFile != "" {
			if systemPrompt != "" {
				return nil, fmt.Errorf("platform %q: set either systemPrompt or promptFile, not both", e.ID)
			}
			b, err := fs.ReadFile(promptFS, path.Clean(e.PromptFile))
			if err != nil {
				return nil, fmt.Errorf("platform %q: failed to read prompt file: %w", e.ID, err)
			}
			systemPrompt = string(b)
		}
		templates = append(templates, Template{
			ID:           e.ID,
			DisplayName:  e.Name,
			SystemPrompt: strings.TrimSpace(systemPrompt),
		})
	}

	r, err := NewRegistry(templates...)
	if err != nil {
		return nil, err
	}
	log.Debug().Strs("platforms", r.order).Msg("Platform registry loaded")
	return r, nil
}

// List returns every platform in registry order.
func (r *Registry) List() []Summary {
	out := make([]Summary, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, Summary{ID: id, Name: r.byID[id].DisplayName})
	}
	return out
}

// Lookup returns the template for id. Matching is exact and case-sensitive.
func (r *Registry) Lookup(id string) (Template, bool) {
	t, ok := r.byID[id]
	return t, ok
}

// IDs returns the registered platform ids in order.
func (r *Registry) IDs() []string {
	return append([]string(nil), r.order...)
}
