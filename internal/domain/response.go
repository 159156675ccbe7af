package domain

type SuccessResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    any    `json:"data"`
}

func NewSuccessResponse(data any, message string) SuccessResponse {
	if message == "" {
		message = "OK"
	}
	return SuccessResponse{Success: true, Message: message, Data: data}
}
