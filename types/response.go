package types

// ErrorResponse is the JSON shape of every error reply.
type ErrorResponse struct {
	Error string `json:"error"`
}

// MessageResponse is returned by delete endpoints.
type MessageResponse struct {
	Message string `json:"message"`
}
