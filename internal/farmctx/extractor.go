package farmctx

import (
	"strings"

	"github.com/omkarP-bit/Dreamers-AgriTech/internal/core"
)

// Extractor mines farmer messages for context slots using plain substring
// matching against its vocabulary.
type Extractor struct {
	vocab *Vocabulary
}

func NewExtractor(vocab *Vocabulary) *Extractor {
	if vocab == nil {
		vocab = DefaultVocabulary()
	}
	return &Extractor{vocab: vocab}
}

// Update scans message and writes matched values into ctx. A slot is only
// touched when the matched value differs from what is already stored, so
// repeating known facts never invalidates the context. Returns the slots
// that changed. The current crop is never extracted from free text.
func (e *Extractor) Update(fc *FarmerContext, message string) []string {
	lower := strings.ToLower(message)
	var changed []string

	if soil, ok := firstMatch(lower, e.vocab.Soils); ok && fc.SoilType != soil {
		fc.SoilType = soil
		changed = append(changed, SlotSoilType)
	}

	if loc, ok := firstMatch(lower, e.vocab.Locations); ok && fc.Location != loc {
		fc.Location = loc
		changed = append(changed, SlotLocation)
	}

	if strings.Contains(lower, string(core.FarmerGreenhouse)) {
		if fc.FarmerType != string(core.FarmerGreenhouse) {
			fc.FarmerType = string(core.FarmerGreenhouse)
			changed = append(changed, SlotFarmerType)
		}
	} else if strings.Contains(lower, string(core.FarmerTraditional)) {
		if fc.FarmerType != string(core.FarmerTraditional) {
			fc.FarmerType = string(core.FarmerTraditional)
			changed = append(changed, SlotFarmerType)
		}
	}

	if crop, ok := firstMatch(lower, e.vocab.Crops); ok && fc.PreviousCrop != crop {
		fc.PreviousCrop = crop
		changed = append(changed, SlotPreviousCrop)
	}

	return changed
}

func firstMatch(haystack string, terms []string) (string, bool) {
	for _, t := range terms {
		if strings.Contains(haystack, t) {
			return t, true
		}
	}
	return "", false
}
