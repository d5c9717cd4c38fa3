package metadata

// AnalysisModel describes a Gemini vision model usable for screenshot analysis.
type AnalysisModel struct {
	ID    string
	Label string
}

// VideoModel describes a Veo model usable for background generation.
// PaidTierOnly mirrors the upstream policy: video generation requires a
// billing-enabled API key.
type VideoModel struct {
	ID           string
	Label        string
	PaidTierOnly bool
}

var AnalysisModels = []AnalysisModel{
	{
		ID:    "gemini-3-pro-preview",
		Label: "Gemini 3 Pro (preview)",
	},
	{
		ID:    "gemini-3-flash-preview",
		Label: "Gemini 3 Flash (preview)",
	},
}

var VideoModels = []VideoModel{
	{
		ID:           "veo-3.1-fast-generate-preview",
		Label:        "Veo 3.1 Fast (preview)",
		PaidTierOnly: true,
	},
	{
		ID:           "veo-3.1-generate-preview",
		Label:        "Veo 3.1 (preview)",
		PaidTierOnly: true,
	},
}

const (
	DefaultAnalysisModel = "gemini-3-pro-preview"
	DefaultVideoModel    = "veo-3.1-fast-generate-preview"
)

func AnalysisModelIDs() []string {
	ids := make([]string, 0, len(AnalysisModels))
	for _, m := range AnalysisModels {
		ids = append(ids, m.ID)
	}
	return ids
}

func VideoModelIDs() []string {
	ids := make([]string, 0, len(VideoModels))
	for _, m := range VideoModels {
		ids = append(ids, m.ID)
	}
	return ids
}

// IsPaidTierOnly reports whether the given video model needs a billing-enabled key.
// Unknown models are treated as paid: the upstream policy applies to every Veo model today.
func IsPaidTierOnly(modelID string) bool {
	for _, m := range VideoModels {
		if m.ID == modelID {
			return m.PaidTierOnly
		}
	}
	return true
}
