package models

// Response is the envelope for simple outcomes. Success is omitted when false
// so errors render as {"error": "..."}.
type Response struct {
	Success bool        `json:"success,omitempty"`
	Message string      `json:"message,omitempty"`
	Error   string      `json:"error,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

func SuccessResponse(data interface{}, message string) Response {
	return Response{
		Success: true,
		Message: message,
		Data:    data,
	}
}

func ErrorResponse(err string) Response {
	return Response{
		Error: err,
	}
}

// MessageResponse is used by the root health route.
type MessageResponse struct {
	Message string `json:"message"`
}
