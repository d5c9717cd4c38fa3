package metadata

import "testing"

func TestModelRegistries(t *testing.T) {
	if len(AnalysisModelIDs()) != len(AnalysisModels) {
		t.Fatal("analysis ID list out of sync with registry")
	}
	if len(VideoModelIDs()) != len(VideoModels) {
		t.Fatal("video ID list out of sync with registry")
	}

	found := false
	for _, id := range AnalysisModelIDs() {
		if id == DefaultAnalysisModel {
			found = true
		}
	}
	if !found {
		t.Fatalf("default analysis model %q missing from registry", DefaultAnalysisModel)
	}
}

func TestIsPaidTierOnly(t *testing.T) {
	if !IsPaidTierOnly(DefaultVideoModel) {
		t.Fatal("default video model must require a paid-tier key")
	}
	if !IsPaidTierOnly("veo-99-imaginary") {
		t.Fatal("unknown video models should be treated as paid-tier")
	}
}
