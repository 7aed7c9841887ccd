package models

// MutationResult is the uniform outcome shape for mutation actions. Every
// rejection carries a fixed user-safe message; nothing on these paths is
// surfaced as a Go error to the transport layer.
type MutationResult struct {
	Ok    bool   `json:"ok"`
	Error string `json:"error,omitempty"`
}

// Failure builds a rejected result with a user-facing message.
func Failure(msg string) *MutationResult {
	return &MutationResult{Ok: false, Error: msg}
}

// Success builds an accepted result.
func Success() *MutationResult {
	return &MutationResult{Ok: true}
}
