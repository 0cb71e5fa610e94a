package domain

// SessionClaims is the participant identity carried by a session token.
// Identity proper is an external concern; the token only needs enough to
// attribute actions and enforce the interactive/view-only gate.
type SessionClaims struct {
	ParticipantID string          `json:"participant_id"`
	Name          string          `json:"name"`
	Type          ParticipantType `json:"type"`
}

// Interactive reports whether this session may trigger mutating meeting
// actions (donate, skip, advance).
func (c SessionClaims) Interactive() bool {
	return c.Type == ParticipantTypeInteractive
}
