package export

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const sampleScript = "[제목] 2026년 재물운 대박\n" +
	"[본문] 78년생, 92년생 여러분, 재물길이 열립니다.\n" +
	"\n" +
	"[미션] 복돼지를 두 번 터치하세요.\n" +
	"[클로징] 구독으로 복을 나눠주세요."

func TestSpokenLines(t *testing.T) {
	lines := SpokenLines(sampleScript)
	if len(lines) != 4 {
		t.Fatalf("lines = %d, want 4: %q", len(lines), lines)
	}
	for i, line := range lines {
		if strings.Contains(line, "[") {
			t.Errorf("line %d kept a section marker: %q", i, line)
		}
	}
	if lines[0] != "2026년 재물운 대박" {
		t.Errorf("first line = %q", lines[0])
	}
}

func TestBuildCues(t *testing.T) {
	cues := BuildCues(sampleScript)
	if len(cues) != 4 {
		t.Fatalf("cues = %d, want 4", len(cues))
	}
	// Timeline is sequential and gap-free.
	for i, cue := range cues {
		if cue.EndAt <= cue.StartAt {
			t.Errorf("cue %d has non-positive duration", i)
		}
		if i > 0 && cue.StartAt != cues[i-1].EndAt {
			t.Errorf("cue %d starts at %v, previous ended at %v", i, cue.StartAt, cues[i-1].EndAt)
		}
	}
	// A longer line holds the screen longer.
	if cues[1].EndAt-cues[1].StartAt <= cues[2].EndAt-cues[2].StartAt {
		t.Error("longer line did not get a longer cue")
	}

	if got := BuildCues("[제목]\n\n  "); got != nil {
		t.Errorf("empty script produced cues: %v", got)
	}
}

func TestWriteSRT(t *testing.T) {
	t.Run("writes a valid srt file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "fortune.srt")
		if err := WriteSRT(path, sampleScript); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		content, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("failed to read output: %v", err)
		}
		text := string(content)
		if !strings.Contains(text, "00:00:00,000 -->") {
			t.Errorf("output missing timecodes:\n%s", text)
		}
		if !strings.Contains(text, "78년생") {
			t.Errorf("output missing script text:\n%s", text)
		}
	})

	t.Run("rejects empty script", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "empty.srt")
		if err := WriteSRT(path, "[제목]\n"); err == nil {
			t.Fatal("expected error for script with no spoken lines")
		}
		if _, statErr := os.Stat(path); !os.IsNotExist(statErr) {
			t.Error("file was created despite error")
		}
	})
}
