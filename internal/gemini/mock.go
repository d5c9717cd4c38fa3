package gemini

import (
	"context"
	"time"
)

// MockAnalyzer returns a canned analysis without touching the network.
type MockAnalyzer struct {
	// Result is returned when Err is nil. When both are nil a plausible
	// fortune-shorts analysis is synthesized.
	Result *Analysis
	Err    error
	// Delay simulates remote latency while staying cancellable.
	Delay time.Duration

	Calls int
}

var _ Analyzer = (*MockAnalyzer)(nil)

func (m *MockAnalyzer) Analyze(ctx context.Context, image []byte, mimeType string) (*Analysis, error) {
	m.Calls++
	if m.Delay > 0 {
		select {
		case <-time.After(m.Delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if m.Err != nil {
		return nil, m.Err
	}
	if m.Result != nil {
		return m.Result, nil
	}
	return &Analysis{
		SuggestedTitle:      "2026 황금 돼지 재물운",
		Hook:                "황금 돼지가 화면을 가득 채우며 등장",
		VisualStyle:         "고화질 3D 렌더링, 금빛 파티클",
		Pacing:              "초반 3초 강렬, 이후 차분한 나레이션",
		TextOverlayStrategy: "출생년도 자막을 화면 하단에 순차 표시",
		EngagementFactor:    "해당 년생 시청자의 댓글 참여 유도",
		FortuneScript: "[제목] 2026년 재물운 대박\n" +
			"[본문] 78년생, 84년생, 92년생, 02년생 여러분, 막혔던 재물길이 열립니다.\n" +
			"[미션] 황금 돼지를 두 번 터치하고 복을 받아가세요.\n" +
			"[클로징] 좋아요와 구독으로 복을 나눠주세요.",
	}, nil
}
