// Package ctypes holds the wire types shared by the HTTP modules: the
// response envelope, the error payload shapes the reducer understands, and
// the toast notice format.
package ctypes

// Application error codes carried in the response envelope.
const (
	CodeOK = iota
	CodeBindingError
	CodeValidationError
	CodeNotFound
	CodeStorageError
	CodeInternalError
)

type Response struct {
	Code    int     `json:"code"`
	Message string  `json:"message"`
	Data    any     `json:"data,omitempty"`
	Debug   *string `json:"debug,omitempty"`
}

func NewResponse(code int, msg string, data any) Response {
	return Response{
		Code:    code,
		Message: msg,
		Data:    data,
	}
}

func NewErrorResponse(code int, msg string, debug string) Response {
	return Response{
		Code:    code,
		Message: msg,
		Debug:   &debug,
	}
}
