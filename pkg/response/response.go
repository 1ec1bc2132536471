package response

// JSONResponse is the error envelope used by middleware, mirroring the
// success envelopes produced by fres in the handlers.
type JSONResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

func Error(code, message string, data any) JSONResponse {
	return JSONResponse{
		Code:    code,
		Message: message,
		Data:    data,
	}
}
