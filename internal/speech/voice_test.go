package speech

import "testing"

func TestSelectKoreanVoice(t *testing.T) {
	t.Run("prefers korean female marker", func(t *testing.T) {
		voices := []Voice{
			{Name: "Alex", Language: "en-US"},
			{Name: "Minsu", Language: "ko-KR"},
			{Name: "Yuna", Language: "ko-KR"},
		}
		v, ok := SelectKoreanVoice(voices)
		if !ok || v.Name != "Yuna" {
			t.Fatalf("got %+v ok=%v, want Yuna", v, ok)
		}
	})

	t.Run("hangul female marker", func(t *testing.T) {
		voices := []Voice{
			{Name: "KSS 여성", Language: "ko-KR"},
		}
		v, ok := SelectKoreanVoice(voices)
		if !ok || v.Name != "KSS 여성" {
			t.Fatalf("got %+v ok=%v", v, ok)
		}
	})

	t.Run("falls back to first korean voice", func(t *testing.T) {
		voices := []Voice{
			{Name: "Amy", Language: "en-US"},
			{Name: "Minsu", Language: "ko-KR"},
			{Name: "Jisu", Language: "ko-KR"},
		}
		v, ok := SelectKoreanVoice(voices)
		if !ok || v.Name != "Minsu" {
			t.Fatalf("got %+v ok=%v, want Minsu", v, ok)
		}
	})

	t.Run("language prefix match includes plain ko", func(t *testing.T) {
		v, ok := SelectKoreanVoice([]Voice{{Name: "Heami", Language: "ko"}})
		if !ok || v.Name != "Heami" {
			t.Fatalf("got %+v ok=%v", v, ok)
		}
	})

	t.Run("no korean voice", func(t *testing.T) {
		if _, ok := SelectKoreanVoice([]Voice{{Name: "Amy", Language: "en-US"}}); ok {
			t.Fatal("expected no match")
		}
	})

	t.Run("empty list", func(t *testing.T) {
		if _, ok := SelectKoreanVoice(nil); ok {
			t.Fatal("expected no match")
		}
	})
}

func TestEncodeWAV(t *testing.T) {
	samples := []float32{0, 0.5, -0.5, 2.0, -2.0}
	wav := encodeWAV(samples, 22050)

	if string(wav[:4]) != "RIFF" || string(wav[8:12]) != "WAVE" {
		t.Fatalf("bad container header: %q %q", wav[:4], wav[8:12])
	}
	// 44-byte header plus 2 bytes per sample.
	if want := 44 + len(samples)*2; len(wav) != want {
		t.Fatalf("len = %d, want %d", len(wav), want)
	}
	// Out-of-range samples clip instead of wrapping.
	last := int16(wav[len(wav)-2]) | int16(wav[len(wav)-1])<<8
	if last != -32768 {
		t.Errorf("clipped negative sample = %d, want -32768", last)
	}
}
