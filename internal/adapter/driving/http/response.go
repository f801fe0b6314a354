package httphandler

import (
	"encoding/json"
	"net/http"

	"github.com/ericfisherdev/approverhover/internal/domain/model"
)

// writeJSON marshals v to JSON and writes it to the response with the given
// status code. If marshaling fails, a 500 error is written instead.
func writeJSON(w http.ResponseWriter, status int, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"internal server error"}`))
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(data)
}

// writeError writes a JSON error response with the given status code and message.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

// errorResponse is the standard error response body.
type errorResponse struct {
	Error string `json:"error"`
}

// HoverResponse is the JSON representation of a resolved hover.
type HoverResponse struct {
	Kind        string        `json:"kind"`
	Message     string        `json:"message"`
	Markdown    string        `json:"markdown"`
	Commit      string        `json:"commit,omitempty"`
	PullRequest int           `json:"pull_request,omitempty"`
	Approvers   []string      `json:"approvers"`
	Range       RangeResponse `json:"range"`
}

// RangeResponse anchors the hover; start and end are the hovered position.
type RangeResponse struct {
	Start PositionResponse `json:"start"`
	End   PositionResponse `json:"end"`
}

// PositionResponse is a 0-based editor position.
type PositionResponse struct {
	Line      int `json:"line"`
	Character int `json:"character"`
}

// HealthResponse is the JSON body of the health endpoint.
type HealthResponse struct {
	Status string `json:"status"`
	Time   string `json:"time"`
}

func toHoverResponse(result model.HoverResult, pos Position) HoverResponse {
	approvers := result.Approvers
	if approvers == nil {
		approvers = []string{}
	}

	p := PositionResponse{Line: pos.Line, Character: pos.Character}

	return HoverResponse{
		Kind:        string(result.Kind),
		Message:     result.Message(),
		Markdown:    result.Markdown(),
		Commit:      result.Commit.String(),
		PullRequest: result.PRNumber,
		Approvers:   approvers,
		Range:       RangeResponse{Start: p, End: p},
	}
}
