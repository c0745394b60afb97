package orchestrator

import (
	"fmt"
	"strings"

	"github.com/pkoukk/tiktoken-go"

	"github.com/omkarP-bit/Dreamers-AgriTech/internal/core"
	"github.com/omkarP-bit/Dreamers-AgriTech/internal/farmctx"
)

// maxPromptTokens bounds the assembled task message. History is trimmed
// oldest-first when the budget is exceeded; the question itself is never
// trimmed.
const maxPromptTokens = 6000

// buildTaskMessage assembles what every advisor sees for one round: known
// farmer facts, the recent transcript window, the phase and the question.
func buildTaskMessage(fc *farmctx.FarmerContext, history []core.Entry, phase core.Phase, farmerMessage string) string {
	for {
		msg := renderTaskMessage(fc, history, phase, farmerMessage)
		if len(history) == 0 || countTokens(msg) <= maxPromptTokens {
			return msg
		}
		history = history[1:]
	}
}

func renderTaskMessage(fc *farmctx.FarmerContext, history []core.Entry, phase core.Phase, farmerMessage string) string {
	var parts []string
	bar := strings.Repeat("=", 60)

	if !fc.Empty() {
		parts = append(parts,
			bar,
			"FARMER INFORMATION (already provided, do NOT ask again):",
			bar)
		for _, slot := range farmctx.Slots() {
			if v := fc.Get(slot); v != "" {
				parts = append(parts, fmt.Sprintf("  - %s: %s", titleSlot(slot), v))
			}
		}
		parts = append(parts,
			"",
			"IMPORTANT: Do NOT ask for information already provided above!",
			bar,
			"")
	}

	if len(history) > 1 {
		parts = append(parts, "RECENT CONVERSATION HISTORY:", strings.Repeat("-", 60))
		for _, e := range history {
			parts = append(parts, fmt.Sprintf("%s: %s", e.Speaker, e.Text))
		}
		parts = append(parts, strings.Repeat("-", 60), "")
	}

	parts = append(parts, fmt.Sprintf("CURRENT CROP PHASE: %s", phase), "")

	context := strings.Join(parts, "\n")
	return fmt.Sprintf("%s\nFARMER'S CURRENT QUESTION:\n%s", context, farmerMessage)
}

// titleSlot turns "soil_type" into "Soil Type".
func titleSlot(slot string) string {
	words := strings.Split(slot, "_")
	for i, w := range words {
		if w != "" {
			words[i] = strings.ToUpper(w[:1]) + w[1:]
		}
	}
	return strings.Join(words, " ")
}

func countTokens(text string) int {
	enc, err := tiktoken.GetEncoding("cl100k_base")
	if err != nil {
		// Offline fallback: a conservative character heuristic.
		return len(text) / 3
	}
	return len(enc.Encode(text, nil, nil))
}
