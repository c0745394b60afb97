package orchestrator

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/omkarP-bit/Dreamers-AgriTech/internal/core"
	"github.com/omkarP-bit/Dreamers-AgriTech/internal/participants"
)

// fakeClient routes replies by advisor, identified through the charter text
// in the system message.
type fakeClient struct {
	mu       sync.Mutex
	calls    map[string]int
	reply    func(agent string, call int, history []core.Message, tools []core.Tool) (core.Message, error)
	lastSeen map[string][]core.Message
}

func newFakeClient(reply func(agent string, call int, history []core.Message, tools []core.Tool) (core.Message, error)) *fakeClient {
	return &fakeClient{
		calls:    make(map[string]int),
		reply:    reply,
		lastSeen: make(map[string][]core.Message),
	}
}

func agentFromSystem(history []core.Message) string {
	system := history[0].Content
	switch {
	case strings.Contains(system, "Pre-Sowing Agricultural Expert"):
		return participants.PreSowingAgent
	case strings.Contains(system, "Growth Monitoring Expert"):
		return participants.GrowthAgent
	case strings.Contains(system, "Harvest & Market Expert"):
		return participants.HarvestAgent
	}
	return "unknown"
}

func (f *fakeClient) Chat(_ context.Context, history []core.Message, tools []core.Tool) (core.Message, error) {
	agent := agentFromSystem(history)

	f.mu.Lock()
	f.calls[agent]++
	call := f.calls[agent]
	f.lastSeen[agent] = history
	f.mu.Unlock()

	return f.reply(agent, call, history, tools)
}

func textReply(text string) func(string, int, []core.Message, []core.Tool) (core.Message, error) {
	return func(string, int, []core.Message, []core.Tool) (core.Message, error) {
		return core.Message{Role: core.RoleAssistant, Content: text}, nil
	}
}

func newTestOrchestrator(t *testing.T, client core.ModelClient, phase core.Phase) *Orchestrator {
	t.Helper()
	return New(Config{
		SessionID:  "test-session",
		Phase:      phase,
		FarmerType: core.FarmerTraditional,
		Client:     client,
	})
}

func TestProcessMessageSelectsRelevantAgent(t *testing.T) {
	replies := map[string]string{
		participants.PreSowingAgent: "For your region the usual options are wheat, moong dal or maize depending on soil.",
		participants.GrowthAgent:    "Yellow leaves usually mean nitrogen deficiency. I recommend applying urea at 50kg per acre.",
		participants.HarvestAgent:   "Harvest looks far off for now, keep monitoring the crop and check back closer to maturity.",
	}
	client := newFakeClient(func(agent string, _ int, _ []core.Message, _ []core.Tool) (core.Message, error) {
		return core.Message{Role: core.RoleAssistant, Content: replies[agent]}, nil
	})

	o := newTestOrchestrator(t, client, core.PhaseGrowth)
	result := o.ProcessMessage(context.Background(), "My plant leaves are turning yellow, what is wrong?")

	require.True(t, result.Success)
	assert.Equal(t, participants.GrowthAgent, result.SelectedAgent)
	assert.Equal(t, replies[participants.GrowthAgent], result.FinalResponse)
	assert.Len(t, result.Candidates, 3)
	assert.Equal(t, core.PhaseGrowth, result.Phase)
}

func TestProcessMessageAppendsTranscript(t *testing.T) {
	client := newFakeClient(textReply("A reasonably detailed advisory reply that clears the short answer penalty."))
	o := newTestOrchestrator(t, client, core.PhasePreSowing)

	o.ProcessMessage(context.Background(), "Which crop should I sow this season?")
	assert.Len(t, o.History(), 4) // farmer plus one candidate per advisor

	o.ProcessMessage(context.Background(), "What about wheat specifically?")
	assert.Len(t, o.History(), 8)
}

func TestProcessMessageFallbackOnEmptyRound(t *testing.T) {
	// Every advisor declines to answer; the round yields no candidates.
	client := newFakeClient(textReply(""))
	o := newTestOrchestrator(t, client, core.PhasePreSowing)

	result := o.ProcessMessage(context.Background(), "hello")

	require.True(t, result.Success)
	assert.Equal(t, "I'm processing your request. Could you provide more details?", result.FinalResponse)
	assert.Equal(t, core.SpeakerSystem, result.SelectedAgent)
	assert.Empty(t, result.Candidates)
	// The farmer's message still lands in the transcript.
	assert.Len(t, o.History(), 1)
}

func TestProcessMessageSkipsFailingAdvisor(t *testing.T) {
	client := newFakeClient(func(agent string, _ int, _ []core.Message, _ []core.Tool) (core.Message, error) {
		if agent == participants.PreSowingAgent {
			return core.Message{}, errors.New("model unavailable")
		}
		return core.Message{Role: core.RoleAssistant, Content: "A full advisory answer long enough to avoid the brevity penalty."}, nil
	})
	o := newTestOrchestrator(t, client, core.PhaseGrowth)

	result := o.ProcessMessage(context.Background(), "How is my crop doing?")

	require.True(t, result.Success)
	require.Len(t, result.Candidates, 2)
	assert.Equal(t, participants.GrowthAgent, result.Candidates[0].Agent)
	assert.Equal(t, participants.HarvestAgent, result.Candidates[1].Agent)
}

func TestProcessMessageExtractsContext(t *testing.T) {
	client := newFakeClient(textReply("Sandy soil in Punjab after wheat points toward moong dal for the coming season."))
	o := newTestOrchestrator(t, client, core.PhasePreSowing)

	result := o.ProcessMessage(context.Background(), "I have sandy soil in Punjab, last season I grew wheat")

	assert.Equal(t, "sandy", result.Context["soil_type"])
	assert.Equal(t, "punjab", result.Context["location"])
	assert.Equal(t, "wheat", result.Context["previous_crop"])

	// The next task message carries the facts so advisors stop asking.
	o.ProcessMessage(context.Background(), "So which one should I pick?")
	history := client.lastSeen[participants.PreSowingAgent]
	require.Len(t, history, 2)
	assert.Contains(t, history[1].Content, "Soil Type: sandy")
	assert.Contains(t, history[1].Content, "do NOT ask again")
}

func TestProcessMessageRunsToolCalls(t *testing.T) {
	client := newFakeClient(func(agent string, call int, history []core.Message, _ []core.Tool) (core.Message, error) {
		if agent == participants.PreSowingAgent && call == 1 {
			return core.Message{
				Role: core.RoleAssistant,
				ToolCalls: []core.ToolCall{{
					ID:   "call_1",
					Type: "function",
					Function: core.FunctionCall{
						Name:      "get_market_prices",
						Arguments: `{}`,
					},
				}},
			}, nil
		}
		if agent == participants.PreSowingAgent {
			// Second hop must see the tool result appended to the thread.
			require.Equal(t, core.RoleTool, history[len(history)-1].Role)
			require.Equal(t, "call_1", history[len(history)-1].ToolCallID)

			var payload map[string]any
			require.NoError(t, json.Unmarshal([]byte(history[len(history)-1].Content), &payload))
			return core.Message{Role: core.RoleAssistant, Content: "Based on current mandi prices I recommend considering moong dal this season."}, nil
		}
		return core.Message{Role: core.RoleAssistant, Content: "Another advisor's plain reply, detailed enough to be considered for selection."}, nil
	})

	o := newTestOrchestrator(t, client, core.PhasePreSowing)
	result := o.ProcessMessage(context.Background(), "Which crop should I plant?")

	require.True(t, result.Success)
	require.Len(t, result.Candidates, 3)
	assert.Contains(t, result.Candidates[0].Text, "moong dal")
	assert.Equal(t, 2, client.calls[participants.PreSowingAgent])
}

func TestUpdatePhase(t *testing.T) {
	o := newTestOrchestrator(t, newFakeClient(textReply("x")), core.PhasePreSowing)

	require.NoError(t, o.UpdatePhase(context.Background(), "harvest"))
	assert.Equal(t, core.PhaseHarvest, o.Phase())

	err := o.UpdatePhase(context.Background(), "flowering")
	require.ErrorIs(t, err, core.ErrInvalidPhase)
	assert.Equal(t, core.PhaseHarvest, o.Phase(), "failed update must not change the phase")
}

func TestAgentsReportActivePhase(t *testing.T) {
	o := newTestOrchestrator(t, newFakeClient(textReply("x")), core.PhaseGrowth)

	agents := o.Agents()
	require.Len(t, agents, 3)
	assert.Equal(t, participants.PreSowingAgent, agents[0].Name)
	assert.False(t, agents[0].Active)
	assert.True(t, agents[1].Active)
	assert.False(t, agents[2].Active)
}

func TestReset(t *testing.T) {
	client := newFakeClient(textReply("A reply with enough substance to count as a real candidate answer."))
	o := newTestOrchestrator(t, client, core.PhasePreSowing)

	o.ProcessMessage(context.Background(), "I farm clay soil near Nashik")
	require.NotEmpty(t, o.History())
	require.Equal(t, "clay", o.Context()["soil_type"])

	require.NoError(t, o.Reset(context.Background()))

	assert.Empty(t, o.History())
	ctx := o.Context()
	assert.NotContains(t, ctx, "soil_type")
	assert.NotContains(t, ctx, "location")
	assert.Equal(t, string(core.FarmerTraditional), ctx["farmer_type"], "farmer type survives a reset")
	assert.Equal(t, core.PhasePreSowing, o.Phase())
}

func TestProcessMessageDeterministicSelection(t *testing.T) {
	replies := map[string]string{
		participants.PreSowingAgent: "Consider soil testing before committing to any crop for the next cycle.",
		participants.GrowthAgent:    "Watch irrigation closely during the first month, water stress shows up late.",
		participants.HarvestAgent:   "Current mandi prices for wheat are strong, selling within two weeks looks sensible.",
	}
	client := newFakeClient(func(agent string, _ int, _ []core.Message, _ []core.Tool) (core.Message, error) {
		return core.Message{Role: core.RoleAssistant, Content: replies[agent]}, nil
	})

	var selected []string
	for i := 0; i < 3; i++ {
		o := newTestOrchestrator(t, client, core.PhaseHarvest)
		result := o.ProcessMessage(context.Background(), "When should I sell at the market for best price?")
		selected = append(selected, result.SelectedAgent)
	}
	assert.Equal(t, participants.HarvestAgent, selected[0])
	assert.Equal(t, selected[0], selected[1])
	assert.Equal(t, selected[1], selected[2])
}
