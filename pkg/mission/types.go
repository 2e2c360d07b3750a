// Package mission implements the four-stage mission pipeline: analyze,
// plan, execute, finalize. Each mission run owns a fresh context and a fresh
// graph; the only shared state between concurrent runs is the read-only
// council registry and the append-only Pinkas.
package mission

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/sanhedrin-ai/sanhedrin/pkg/agent"
)

// Type enumerates the supported mission types.
type Type string

const (
	TypePrayerDistribution Type = "PRAYER_DISTRIBUTION"
	TypeResearch           Type = "RESEARCH"
	TypeContentCreation    Type = "CONTENT_CREATION"
)

// ErrUnsupportedType is returned for mission types outside the enumerated
// set. This is a configuration error: it fails before any agent is invoked
// and is never retried.
var ErrUnsupportedType = errors.New("unsupported mission type")

// UnsupportedTypeError carries the offending type and unwraps to
// ErrUnsupportedType.
type UnsupportedTypeError struct {
	Type string
}

func (e *UnsupportedTypeError) Error() string {
	return fmt.Sprintf("unsupported mission type %q", e.Type)
}

func (e *UnsupportedTypeError) Unwrap() error {
	return ErrUnsupportedType
}

// ParseType validates a mission type string.
func ParseType(s string) (Type, error) {
	switch Type(s) {
	case TypePrayerDistribution, TypeResearch, TypeContentCreation:
		return Type(s), nil
	default:
		return "", &UnsupportedTypeError{Type: s}
	}
}

// Stage names, in execution order. These appear verbatim in history entries
// and audit records.
const (
	StageAnalyze  = "analyze_request"
	StagePlan     = "plan_actions"
	StageExecute  = "execute_core_agent"
	StageFinalize = "finalize_message"
)

// HistoryEntry records one agent invocation in execution order.
type HistoryEntry struct {
	Stage  string `json:"stage"`
	Agent  string `json:"agent"`
	Result string `json:"result"`
}

// Context is the mutable record threaded through the graph. It is owned
// exclusively by a single mission run and discarded after the runner
// extracts its summary.
type Context struct {
	ID      string
	Type    Type
	UserID  string
	Payload map[string]interface{}

	// Typed is the schema-validated payload decoded at the runner boundary.
	Typed interface{}

	// PrimaryAgent selected by routing before the graph runs.
	PrimaryAgent string

	// Per-stage namespaces. A stage writes only to its own namespace.
	Analysis  map[string]*agent.Response
	Plan      map[string]*agent.Response
	Execution map[string]*agent.Response

	// Results maps "stage/agent" keys to the full responses.
	Results map[string]*agent.Response

	FinalMessage string

	// History is append-only and reflects actual execution order.
	History []HistoryEntry
}

// NewContext builds a fresh mission context.
func NewContext(missionType Type, userID string, payload map[string]interface{}) *Context {
	return &Context{
		ID:        uuid.NewString(),
		Type:      missionType,
		UserID:    userID,
		Payload:   payload,
		Analysis:  make(map[string]*agent.Response),
		Plan:      make(map[string]*agent.Response),
		Execution: make(map[string]*agent.Response),
		Results:   make(map[string]*agent.Response),
	}
}

// record appends a history entry and indexes the full response.
func (c *Context) record(stage string, resp *agent.Response) {
	c.History = append(c.History, HistoryEntry{
		Stage:  stage,
		Agent:  resp.Agent,
		Result: resp.Result,
	})
	c.Results[stage+"/"+resp.Agent] = resp
}

// Status of a completed mission run.
type Status string

const (
	StatusSuccess Status = "success"
	StatusFailed  Status = "failed"
)

// Result is the envelope returned to callers. Callers always receive a
// well-formed envelope, never a raw error.
type Result struct {
	Status  Status      `json:"status"`
	Summary string      `json:"summary"`
	Data    *ResultData `json:"data,omitempty"`
}

// ResultData is the success payload. It is absent on failure: partial
// context is deliberately not surfaced.
type ResultData struct {
	MissionID    string                     `json:"mission_id"`
	MissionType  Type                       `json:"mission_type"`
	PrimaryAgent string                     `json:"primary_agent"`
	FinalMessage string                     `json:"final_message,omitempty"`
	Analysis     map[string]*agent.Response `json:"analysis"`
	Plan         map[string]*agent.Response `json:"plan"`
	Execution    map[string]*agent.Response `json:"execution"`
	History      []HistoryEntry             `json:"history"`
}
