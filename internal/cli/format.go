package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/nickytooth/promptcrafting-ai/internal/platform"
	"github.com/nickytooth/promptcrafting-ai/internal/prompt"
)

// WriteResult prints a generated prompt, as JSON when asJSON is set.
func WriteResult(w io.Writer, r *prompt.Result, elapsed time.Duration, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(r)
	}
	_, err := fmt.Fprintf(w, "\n=== %s prompt (%s) ===\n\n%s\n", r.Platform, FormatDurationShort(elapsed), r.Prompt)
	return err
}

// WritePlatforms prints the registered platforms, one per line.
func WritePlatforms(w io.Writer, platforms []platform.Summary, asJSON bool) error {
	if asJSON {
		return json.NewEncoder(w).Encode(platforms)
	}
	for _, p := range platforms {
		if _, err := fmt.Fprintf(w, "%-10s %s\n", p.ID, p.Name); err != nil {
			return err
		}
	}
	return nil
}

// FormatDurationShort formats a duration as M:SS, or H:MM:SS past an hour.
func FormatDurationShort(d time.Duration) string {
	totalSeconds := int(d.Seconds())
	hours := totalSeconds / 3600
	minutes := (totalSeconds % 3600) / 60
	seconds := totalSeconds % 60

	if hours > 0 {
		return fmt.Sprintf("%d:%02d:%02d", hours, minutes, seconds)
	}
	return fmt.Sprintf("%d:%02d", minutes, seconds)
}
