package platform

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func TestLoadDefault(t *testing.T) {
	r, err := LoadDefault()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []Summary{
		{ID: "veo-3.1", Name: "Veo 3.1"},
		{ID: "sora-2", Name: "Sora 2"},
	}
	if got := r.List(); !reflect.DeepEqual(got, want) {
		t.Errorf("List() = %v, want %v", got, want)
	}

	veo, ok := r.Lookup("veo-3.1")
	if !ok {
		t.Fatal("expected veo-3.1 to be registered")
	}
	if !strings.Contains(veo.SystemPrompt, "5-part formula") {
		t.Errorf("veo system prompt not loaded from embedded file: %q", veo.SystemPrompt)
	}

	sora, ok := r.Lookup("sora-2")
	if !ok {
		t.Fatal("expected sora-2 to be registered")
	}
	if !strings.Contains(sora.SystemPrompt, "Sora 2") {
		t.Errorf("sora system prompt not loaded from embedded file: %q", sora.SystemPrompt)
	}
}

func TestListIsStable(t *testing.T) {
	r, err := LoadDefault()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	first := r.List()
	for i := 0; i < 20; i++ {
		if got := r.List(); !reflect.DeepEqual(got, first) {
			t.Fatalf("List() changed between calls: %v vs %v", got, first)
		}
	}
}

func TestLookupExactMatch(t *testing.T) {
	r, err := LoadDefault()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	tests := []struct {
		id   string
		want bool
	}{
		{"veo-3.1", true},
		{"sora-2", true},
		{"VEO-3.1", false},
		{"Sora-2", false},
		{" sora-2", false},
		{"sora", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			if _, ok := r.Lookup(tt.id); ok != tt.want {
				t.Errorf("Lookup(%q) ok = %v, want %v", tt.id, ok, tt.want)
			}
		})
	}
}

func TestNewRegistryRejectsInvalid(t *testing.T) {
	tests := []struct {
		name      string
		templates []Template
	}{
		{"empty", nil},
		{"missing id", []Template{{DisplayName: "X", SystemPrompt: "p"}}},
		{"missing name", []Template{{ID: "x", SystemPrompt: "p"}}},
		{"blank prompt", []Template{{ID: "x", DisplayName: "X", SystemPrompt: "  "}}},
		{"duplicate", []Template{
			{ID: "x", DisplayName: "X", SystemPrompt: "p"},
			{ID: "x", DisplayName: "X2", SystemPrompt: "p"},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewRegistry(tt.templates...); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "kling.txt"), []byte("Kling instructions\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	manifest := `platforms:
  - id: kling-2
    name: Kling 2
    promptFile: kling.txt
  - id: inline
    name: Inline
    systemPrompt: |
      Inline instructions
`
	path := filepath.Join(dir, "platforms.yaml")
	if err := os.WriteFile(path, []byte(manifest), 0o600); err != nil {
		t.Fatal(err)
	}

	r, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := r.IDs(); !reflect.DeepEqual(got, []string{"kling-2", "inline"}) {
		t.Errorf("IDs() = %v", got)
	}
	k, _ := r.Lookup("kling-2")
	if k.SystemPrompt != "Kling instructions" {
		t.Errorf("unexpected kling prompt %q", k.SystemPrompt)
	}
	in, _ := r.Lookup("inline")
	if in.SystemPrompt != "Inline instructions" {
		t.Errorf("unexpected inline prompt %q", in.SystemPrompt)
	}
}

func TestLoadFileBothPromptSources(t *testing.T) {
	dir := t.TempDir()
	manifest := `platforms:
  - id: x
    name: X
    systemPrompt: a
    promptFile: b.txt
`
	path := filepath.Join(dir, "platforms.yaml")
	if err := os.WriteFile(path, []byte(manifest), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadFile(path); err == nil {
		t.Error("expected error when both systemPrompt and promptFile are set")
	}
}

func TestLoadFileMissing(t *testing.T) {
	if _, err := LoadFile(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing manifest")
	}
}
