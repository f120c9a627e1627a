package models

type ErrorBody struct {
	Error string `json:"error"`
}

type MessageBody struct {
	Message string `json:"message"`
}

// Error response helper
func ErrorResponse(err string) ErrorBody {
	return ErrorBody{Error: err}
}

// Confirmation response helper
func MessageResponse(msg string) MessageBody {
	return MessageBody{Message: msg}
}
