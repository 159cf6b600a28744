package models

// ChatRequest is one user turn as sent by the chat client.
type ChatRequest struct {
	Text          string             `json:"text"`                     // user's message
	LastSuggested *PendingSuggestion `json:"last_suggested,omitempty"` // echoed back from the previous response
}

// ChatResponse is what the assistant answers for one turn. When a slot is
// pending, its fields are also flattened next to the reply.
type ChatResponse struct {
	Response      string             `json:"response"`
	LastSuggested *PendingSuggestion `json:"last_suggested"`

	SuggestedTime string `json:"suggested_time,omitempty"`
	Summary       string `json:"summary,omitempty"`
	Duration      int    `json:"duration,omitempty"`
}

// NewChatResponse builds the wire response for a reply and the suggestion the
// client has to carry into the next turn.
func NewChatResponse(reply string, suggestion *PendingSuggestion) ChatResponse {
	resp := ChatResponse{Response: reply, LastSuggested: suggestion}
	if suggestion != nil {
		resp.SuggestedTime = suggestion.SuggestedTime
		resp.Summary = suggestion.Summary
		resp.Duration = suggestion.Duration
	}
	return resp
}
