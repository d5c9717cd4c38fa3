package speech

import "strings"

// Voice describes one installed synthesis voice.
type Voice struct {
	Name     string
	Language string
}

// femaleNameMarkers identify Korean female voices across the engines seen in
// the wild. Yuna is the macOS Korean voice, Heami the Windows one.
var femaleNameMarkers = []string{"female", "여성", "yuna", "heami"}

// SelectKoreanVoice picks the voice used for fortune narration: a Korean
// female voice when one exists, otherwise any Korean voice, otherwise none.
func SelectKoreanVoice(voices []Voice) (Voice, bool) {
	var firstKorean *Voice
	for i, v := range voices {
		if !strings.HasPrefix(strings.ToLower(v.Language), "ko") {
			continue
		}
		if firstKorean == nil {
			firstKorean = &voices[i]
		}
		lower := strings.ToLower(v.Name)
		for _, marker := range femaleNameMarkers {
			if strings.Contains(lower, marker) {
				return v, true
			}
		}
	}
	if firstKorean != nil {
		return *firstKorean, true
	}
	return Voice{}, false
}
