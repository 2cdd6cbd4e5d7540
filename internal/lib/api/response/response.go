package response

type Response struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Message string      `json:"message,omitempty"`
}

func Ok(data interface{}) Response {
	return Response{
		Success: true,
		Data:    data,
	}
}

func Error(message string) Response {
	return Response{
		Success: false,
		Message: message,
	}
}

// ErrorWith carries structured details, e.g. the fields that failed validation.
func ErrorWith(message string, data interface{}) Response {
	return Response{
		Success: false,
		Data:    data,
		Message: message,
	}
}
