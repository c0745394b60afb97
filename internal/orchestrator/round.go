package orchestrator

import (
	"context"
	"time"

	"github.com/omkarP-bit/Dreamers-AgriTech/internal/core"
	"github.com/omkarP-bit/Dreamers-AgriTech/internal/participants"
	"github.com/omkarP-bit/Dreamers-AgriTech/pkg/log"
	"github.com/omkarP-bit/Dreamers-AgriTech/pkg/retry"
)

// maxToolHops bounds how many tool round-trips one advisor gets per turn.
const maxToolHops = 4

// Round runs one rotation: every advisor gets the same task message and
// drafts at most one candidate. A failing or empty advisor is skipped, it
// never aborts the rotation.
type Round struct {
	client  core.ModelClient
	retrier *retry.Retrier
	timeout time.Duration
}

func NewRound(client core.ModelClient, timeout time.Duration) *Round {
	return &Round{
		client:  client,
		retrier: retry.NewDefaultRetrier(),
		timeout: timeout,
	}
}

// Run collects candidates in rotation order.
func (r *Round) Run(ctx context.Context, pool *participants.Pool, taskMessage string) []core.Candidate {
	logger := log.FromCtx(ctx)

	var candidates []core.Candidate
	for _, p := range pool.Rotation() {
		text, err := r.generate(ctx, p, taskMessage)
		if err != nil {
			logger.Warn().Err(err).Str("agent", p.Name).Msg("advisor failed, skipping candidate")
			continue
		}
		if text == "" {
			logger.Debug().Str("agent", p.Name).Msg("advisor returned empty reply, skipping candidate")
			continue
		}
		candidates = append(candidates, core.Candidate{Agent: p.Name, Text: text})
	}
	return candidates
}

// generate drafts one advisor's reply, executing tool calls until the model
// settles on text or the hop budget runs out.
func (r *Round) generate(ctx context.Context, p *participants.Participant, taskMessage string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	history := []core.Message{
		{Role: core.RoleSystem, Content: p.Instructions},
		{Role: core.RoleUser, Content: taskMessage},
	}
	tools := p.Tools.Tools()

	for hop := 0; hop <= maxToolHops; hop++ {
		var reply core.Message
		err := r.retrier.Do(ctx, func() error {
			var chatErr error
			reply, chatErr = r.client.Chat(ctx, history, tools)
			return chatErr
		})
		if err != nil {
			return "", err
		}

		if len(reply.ToolCalls) == 0 {
			return reply.Content, nil
		}

		history = append(history, reply)
		for _, call := range reply.ToolCalls {
			result := p.Tools.Invoke(ctx, call.Function.Name, call.Function.Arguments)
			history = append(history, core.Message{
				Role:       core.RoleTool,
				Content:    result,
				ToolCallID: call.ID,
			})
		}
	}

	// Hop budget exhausted while the model kept asking for tools; use
	// whatever content the last reply carried.
	return "", nil
}
