package models

// Page is the paginated envelope shared by the HTTP API and local evaluation.
// List endpoints serve it as the whole body, without a success flag.
type Page[T any] struct {
	Data       []T `json:"data"`
	Total      int `json:"total"`
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	TotalPages int `json:"totalPages"`
}

// ApiResponse is the {success, data, message} envelope; failures use {success:false, error}.
type ApiResponse[T any] struct {
	Success bool   `json:"success"`
	Data    T      `json:"data,omitempty"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
	Code    string `json:"code,omitempty"`
}

func Success[T any](data T, message string) ApiResponse[T] {
	return ApiResponse[T]{Success: true, Data: data, Message: message}
}

func Failure(message, code string) ApiResponse[any] {
	return ApiResponse[any]{Success: false, Error: message, Code: code}
}
