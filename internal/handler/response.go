package handler

type Response struct {
	Status  string      `json:"status"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

func NewSuccessResponse(data interface{}) *Response {
	return &Response{
		Status: "success",
		Data:   data,
	}
}

func NewErrorResponse(message string) *Response {
	return &Response{
		Status:  "error",
		Message: message,
	}
}

// ListData wraps collection payloads so clients get a stable shape for
// paging.
type ListData struct {
	Items interface{} `json:"items"`
	Count int         `json:"count"`
}

func NewListResponse(items interface{}, count int) *Response {
	return &Response{
		Status: "success",
		Data:   ListData{Items: items, Count: count},
	}
}
