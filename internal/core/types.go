package core

import (
	"encoding/json"
	"time"
)

const (
	AppName    = "Dreamers AgriTech"
	AppVersion = "0.1.0"
)

const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleTool      = "tool"
)

// Speakers that can appear in the conversation log besides the advisors.
const (
	SpeakerFarmer = "Farmer"
	SpeakerSystem = "System"
)

type Function struct {
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Parameters  json.RawMessage `json:"parameters"` // JSON Schema
}

type Tool struct {
	Type     string   `json:"type"`
	Function Function `json:"function"`
}

type ToolCall struct {
	ID       string       `json:"id"`
	Type     string       `json:"type"`
	Function FunctionCall `json:"function"`
}

type FunctionCall struct {
	Name      string `json:"name"`
	Arguments string `json:"arguments"`
}

type Message struct {
	Role       string     `json:"role"`
	Content    string     `json:"content"`
	ToolCalls  []ToolCall `json:"tool_calls,omitempty"`
	ToolCallID string     `json:"tool_call_id,omitempty"`
}

// Entry is one immutable record of the conversation log.
type Entry struct {
	Speaker   string            `json:"speaker"`
	Text      string            `json:"text"`
	Timestamp time.Time         `json:"timestamp"`
	Metadata  map[string]string `json:"metadata,omitempty"`
}

// Candidate is one advisor's reply for a single round. It only lives between
// the round and the selector; afterwards it survives as a log entry.
type Candidate struct {
	Agent string `json:"agent"`
	Text  string `json:"text"`
}

// Result is what the inbound caller gets back for one farmer message.
type Result struct {
	FinalResponse string            `json:"final_response"`
	SelectedAgent string            `json:"selected_agent"`
	Candidates    []Candidate       `json:"agent_debate"`
	Context       map[string]string `json:"farmer_context"`
	Phase         Phase             `json:"phase"`
	Success       bool              `json:"success"`
	Error         string            `json:"error,omitempty"`
}
