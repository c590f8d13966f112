package ctypes

// ErrorDetail is one human-readable error message.
type ErrorDetail struct {
	Message string `json:"message"`
}

// ErrorPayload is the failure body returned by the API. Its field names
// match the shapes uierr.Reduce classifies, so clients can hand a decoded
// payload straight to the reducer.
type ErrorPayload struct {
	Message     string                   `json:"message,omitempty"`
	PageErrors  []ErrorDetail            `json:"pageErrors,omitempty"`
	FieldErrors map[string][]ErrorDetail `json:"fieldErrors,omitempty"`
}

func PageErrors(messages ...string) ErrorPayload {
	details := make([]ErrorDetail, 0, len(messages))
	for _, m := range messages {
		details = append(details, ErrorDetail{Message: m})
	}
	return ErrorPayload{PageErrors: details}
}

func FieldErrors(fields map[string][]string) ErrorPayload {
	out := make(map[string][]ErrorDetail, len(fields))
	for field, messages := range fields {
		details := make([]ErrorDetail, 0, len(messages))
		for _, m := range messages {
			details = append(details, ErrorDetail{Message: m})
		}
		out[field] = details
	}
	return ErrorPayload{FieldErrors: out}
}
