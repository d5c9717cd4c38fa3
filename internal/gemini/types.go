package gemini

// Analysis is the structured result of one screenshot analysis. The field
// set mirrors the response schema sent to the model; all seven fields are
// required strings.
type Analysis struct {
	SuggestedTitle      string `json:"suggestedTitle"`
	Hook                string `json:"hook"`
	VisualStyle         string `json:"visualStyle"`
	Pacing              string `json:"pacing"`
	TextOverlayStrategy string `json:"textOverlayStrategy"`
	EngagementFactor    string `json:"engagementFactor"`
	FortuneScript       string `json:"suggestedFortuneScript"`
}

// UsageMetadata holds token usage information, filled from the API response
// rather than the JSON payload.
type UsageMetadata struct {
	PromptTokenCount     int
	CandidatesTokenCount int
	TotalTokenCount      int
}
