// Package export writes the fortune script out as subtitle files, so the
// clip can be captioned in an editor without retyping the script.
package export

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/asticode/go-astisub"

	"github.com/dokkaebi/sajucut/internal/files"
)

// sectionMarker matches the structural tags of a fortune script, e.g.
// [제목] or [클로징]. They are stage directions, not spoken lines.
var sectionMarker = regexp.MustCompile(`^\[[^\]]+\]\s*`)

const (
	// cueBase is the minimum on-screen time for any line.
	cueBase = 1200 * time.Millisecond
	// cuePerRune approximates Korean narration pace.
	cuePerRune = 140 * time.Millisecond
	maxCue     = 7 * time.Second
)

// Cue is one timed subtitle line.
type Cue struct {
	StartAt time.Duration
	EndAt   time.Duration
	Text    string
}

// BuildCues lays the script lines out on a sequential timeline, pacing each
// cue by its length.
func BuildCues(script string) []Cue {
	var cues []Cue
	at := time.Duration(0)
	for _, line := range SpokenLines(script) {
		d := cueBase + time.Duration(utf8.RuneCountInString(line))*cuePerRune
		if d > maxCue {
			d = maxCue
		}
		cues = append(cues, Cue{StartAt: at, EndAt: at + d, Text: line})
		at += d
	}
	return cues
}

// SpokenLines strips section markers and blank lines, keeping only text a
// narrator would read.
func SpokenLines(script string) []string {
	var lines []string
	for _, raw := range strings.Split(script, "\n") {
		line := strings.TrimSpace(sectionMarker.ReplaceAllString(strings.TrimSpace(raw), ""))
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

// WriteSRT renders the script as an SRT file at path. The write is atomic,
// so a crash never leaves a half-written subtitle file.
func WriteSRT(path, script string) error {
	cues := BuildCues(script)
	if len(cues) == 0 {
		return fmt.Errorf("script has no spoken lines to export")
	}

	subs := astisub.NewSubtitles()
	for _, cue := range cues {
		subs.Items = append(subs.Items, &astisub.Item{
			StartAt: cue.StartAt,
			EndAt:   cue.EndAt,
			Lines: []astisub.Line{
				{Items: []astisub.LineItem{{Text: cue.Text}}},
			},
		})
	}

	var buf bytes.Buffer
	if err := subs.WriteToSRT(&buf); err != nil {
		return fmt.Errorf("failed to render subtitles: %w", err)
	}
	if err := files.AtomicWrite(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("failed to save subtitles: %w", err)
	}
	return nil
}
