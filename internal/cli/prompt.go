package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/ncruces/zenity"

	"github.com/nickytooth/promptcrafting-ai/internal/platform"
)

// ErrCanceled is returned when the user dismisses an interactive prompt.
var ErrCanceled = errors.New("canceled")

// PromptForDescription reads a scene description from in. Input ends at
// the first empty line or EOF.
func PromptForDescription(in io.Reader, out io.Writer) (string, error) {
	fmt.Fprintln(out, "Describe the video scene (finish with an empty line):")

	var lines []string
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			break
		}
		lines = append(lines, line)
	}
	if err := scanner.Err(); err != nil {
		return "", fmt.Errorf("read description: %w", err)
	}
	return strings.Join(lines, "\n"), nil
}

// PromptForPlatform lists the platforms and reads a choice, either its
// number or its id. An empty answer picks the first platform.
func PromptForPlatform(in io.Reader, out io.Writer, platforms []platform.Summary) (string, error) {
	if len(platforms) == 0 {
		return "", errors.New("no platforms registered")
	}
	for i, p := range platforms {
		fmt.Fprintf(out, "  %d) %s (%s)\n", i+1, p.Name, p.ID)
	}
	fmt.Fprintf(out, "Platform [%s]: ", platforms[0].ID)

	input, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("read platform: %w", err)
	}
	input = strings.TrimSpace(input)
	if input == "" {
		return platforms[0].ID, nil
	}
	var n int
	if _, err := fmt.Sscanf(input, "%d", &n); err == nil && n >= 1 && n <= len(platforms) {
		return platforms[n-1].ID, nil
	}
	return input, nil
}

// SelectVideoFile opens a native file picker restricted to supported
// video types.
func SelectVideoFile() (string, error) {
	path, err := zenity.SelectFile(
		zenity.Title("Select a video clip"),
		zenity.FileFilters{
			{
				Name:     "Video files",
				Patterns: []string{"*.mp4", "*.webm", "*.mov", "*.avi"},
			},
		},
	)
	if err != nil {
		if errors.Is(err, zenity.ErrCanceled) {
			return "", ErrCanceled
		}
		return "", fmt.Errorf("file picker failed: %w", err)
	}
	return path, nil
}
