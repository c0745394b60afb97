package core

import "context"

// ModelClient is the text-completion service boundary. An empty reply is a
// normal reply; errors are reported distinctly.
type ModelClient interface {
	Chat(ctx context.Context, history []Message, tools []Tool) (Message, error)
}
