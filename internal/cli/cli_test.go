package cli

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/nickytooth/promptcrafting-ai/internal/platform"
	"github.com/nickytooth/promptcrafting-ai/internal/prompt"
	"github.com/nickytooth/promptcrafting-ai/internal/upload"
)

func TestReadVideoFile(t *testing.T) {
	dir := t.TempDir()
	write := func(name string, size int) string {
		p := filepath.Join(dir, name)
		if err := os.WriteFile(p, bytes.Repeat([]byte{1}, size), 0600); err != nil {
			t.Fatal(err)
		}
		return p
	}

	data, mimeType, err := ReadVideoFile(write("clip.MP4", 1024))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if mimeType != "video/mp4" || len(data) != 1024 {
		t.Errorf("got mime %q, %d bytes", mimeType, len(data))
	}

	if _, _, err := ReadVideoFile(write("clip.mkv", 10)); !errors.Is(err, upload.ErrUnsupportedType) {
		t.Errorf("expected unsupported type, got %v", err)
	}
	if _, _, err := ReadVideoFile(write("big.webm", int(upload.MaxVideoSize)+1)); !errors.Is(err, upload.ErrTooLarge) {
		t.Errorf("expected too large, got %v", err)
	}
	if _, _, err := ReadVideoFile(filepath.Join(dir, "missing.mp4")); err == nil {
		t.Error("expected error for missing file")
	}
	if _, _, err := ReadVideoFile(dir); err == nil {
		t.Error("expected error for directory")
	}
}

var testPlatforms = []platform.Summary{
	{ID: "veo-3.1", Name: "Veo 3.1"},
	{ID: "sora-2", Name: "Sora 2"},
}

func TestPromptForPlatform(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"\n", "veo-3.1"},
		{"", "veo-3.1"},
		{"2\n", "sora-2"},
		{"sora-2\n", "sora-2"},
		{"9\n", "9"},
	}

	for _, tt := range tests {
		var out bytes.Buffer
		got, err := PromptForPlatform(strings.NewReader(tt.input), &out, testPlatforms)
		if err != nil {
			t.Fatalf("input %q: unexpected error: %v", tt.input, err)
		}
		if got != tt.want {
			t.Errorf("input %q: got %q, want %q", tt.input, got, tt.want)
		}
		if !strings.Contains(out.String(), "2) Sora 2 (sora-2)") {
			t.Errorf("platform list not printed: %q", out.String())
		}
	}

	if _, err := PromptForPlatform(strings.NewReader("1\n"), &bytes.Buffer{}, nil); err == nil {
		t.Error("expected error with no platforms")
	}
}

func TestPromptForDescription(t *testing.T) {
	in := strings.NewReader("A cat on a skateboard\nat sunset\n\nignored\n")
	got, err := PromptForDescription(in, &bytes.Buffer{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "A cat on a skateboard\nat sunset" {
		t.Errorf("got %q", got)
	}
}

func TestWriteResult(t *testing.T) {
	r := &prompt.Result{Prompt: "Wide shot of a harbor", Platform: "Sora 2"}

	var text bytes.Buffer
	if err := WriteResult(&text, r, 65*time.Second, false); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(text.String(), "Sora 2 prompt (1:05)") || !strings.Contains(text.String(), "Wide shot of a harbor") {
		t.Errorf("unexpected text output %q", text.String())
	}

	var js bytes.Buffer
	if err := WriteResult(&js, r, 0, true); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(js.String(), `"prompt": "Wide shot of a harbor"`) {
		t.Errorf("unexpected JSON output %q", js.String())
	}
}

func TestWritePlatforms(t *testing.T) {
	var buf bytes.Buffer
	if err := WritePlatforms(&buf, testPlatforms, false); err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 || !strings.HasPrefix(lines[0], "veo-3.1") {
		t.Errorf("unexpected output %q", buf.String())
	}
}

func TestFormatDurationShort(t *testing.T) {
	tests := map[time.Duration]string{
		0:                "0:00",
		5 * time.Second:  "0:05",
		90 * time.Second: "1:30",
		time.Hour + 2*time.Minute + 3*time.Second: "1:02:03",
	}
	for d, want := range tests {
		if got := FormatDurationShort(d); got != want {
			t.Errorf("FormatDurationShort(%v) = %q, want %q", d, got, want)
		}
	}
}
