package dto

// APIResponse is the envelope every successful response is wrapped in.
type APIResponse struct {
	Status  bool   `json:"status" example:"true"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// Results wraps a single resource or a plain list under "results".
type Results struct {
	Results any `json:"results"`
}

// ErrorResponse is returned for every failed request.
type ErrorResponse struct {
	Status  bool   `json:"status" example:"false"`
	Code    int    `json:"code"`
	Error   string `json:"error"`
	Message string `json:"message"`
	// Details maps request fields to validation messages.
	Details map[string]string `json:"details,omitempty"`
}

func NewAPIResponse(message string, results any) APIResponse {
	return APIResponse{Status: true, Message: message, Data: Results{Results: results}}
}
