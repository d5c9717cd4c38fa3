package veo

import (
	"fmt"

	"github.com/dokkaebi/sajucut/internal/script"
)

const (
	pigFocalObject  = "a massive, glowing Golden Fortune Pig statue at the bottom center"
	toadFocalObject = "a majestic, ruby-eyed Golden Fortune Toad statue at the bottom center"
)

const videoPromptTemplate = `High-quality 9:16 vertical cinematic video.
SCENE: A mysterious deep space universe background with glowing blue and purple nebulas.
MOTION: Diverse golden statues of the 12 Chinese zodiac animals (Dragon, Tiger, Snake, etc.) are falling gracefully like golden rain from the top to the bottom of the screen.
SUBJECT: At the bottom, %s is sitting on a pile of gold coins, glowing intensely.
VISUAL STYLE: Photorealistic 3D animation, golden glowing light, luxury atmosphere, sparkles and particles.
NO TEXT: Ensure no text is visible in the video.`

// buildVideoPrompt returns the fixed scene prompt. Only the focal statue
// varies: scripts that mention a fortune pig get the pig, everything else
// gets the golden toad.
func buildVideoPrompt(fortuneScript string) string {
	focal := toadFocalObject
	if script.ContainsPigMotif(fortuneScript) {
		focal = pigFocalObject
	}
	return fmt.Sprintf(videoPromptTemplate, focal)
}
