package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/chzyer/readline"

	"github.com/omkarP-bit/Dreamers-AgriTech/internal/config"
	"github.com/omkarP-bit/Dreamers-AgriTech/internal/core"
	"github.com/omkarP-bit/Dreamers-AgriTech/internal/orchestrator"
	"github.com/omkarP-bit/Dreamers-AgriTech/internal/service/ui"
	"github.com/omkarP-bit/Dreamers-AgriTech/pkg/log"
)

const defaultSessionID = "cli-local"

type ReadLine struct {
	cfg      *config.AppConfig
	sessions *orchestrator.SessionStore
	router   core.CmdRouter
	rl       *readline.Instance
}

func NewReadLine(sessions *orchestrator.SessionStore, router core.CmdRouter, cfg *config.AppConfig) (*ReadLine, error) {
	// Ensure runtime directory exists
	if err := os.MkdirAll(cfg.RuntimePath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create runtime directory: %w", err)
	}

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          ">>> ",
		HistoryFile:     filepath.Join(cfg.RuntimePath, "input_history"),
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return nil, err
	}

	return &ReadLine{
		cfg:      cfg,
		sessions: sessions,
		router:   router,
		rl:       rl,
	}, nil
}

func (r *ReadLine) Start(ctx context.Context) error {
	logger := log.FromCtx(ctx)
	logger.Info().Msg("Farm advisory chat started. Type 'exit' to quit, /agents to meet the team.")

	for {
		// Check context before blocking read
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		line, err := r.rl.Readline()
		if err != nil {
			if err == readline.ErrInterrupt {
				if len(line) == 0 {
					return nil // Exit on Ctrl+C
				}
				continue
			} else if err == io.EOF {
				return nil
			}
			return err
		}

		line = strings.TrimSpace(line)
		if line == "exit" {
			return nil
		}
		if line == "" {
			continue
		}

		if reply, handled := r.router.Execute(ctx, defaultSessionID, line); handled {
			fmt.Fprintf(r.rl.Stdout(), "%s\n", reply)
			continue
		}

		result, err := r.sessions.Process(ctx, defaultSessionID, line)
		if err != nil {
			logger.Error().Err(err).Msg("failed to load session")
			fmt.Fprintf(r.rl.Stdout(), "Error: %v\n", err)
			continue
		}
		r.render(result)
	}
}

func (r *ReadLine) render(result core.Result) {
	if config.IsDebug() {
		for _, c := range result.Candidates {
			fmt.Fprintf(r.rl.Stdout(), "%s\n", ui.DebateStyle.Render(fmt.Sprintf("[%s] %s", c.Agent, c.Text)))
		}
	}

	fmt.Fprintf(r.rl.Stdout(), "%s %s\n",
		ui.AgentStyle.Render(result.SelectedAgent+":"),
		result.FinalResponse)
}

func (r *ReadLine) Shutdown(ctx context.Context) error {
	if r.rl != nil {
		return r.rl.Close()
	}
	return nil
}
