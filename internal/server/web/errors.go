package web

import "github.com/graphql-go/graphql/gqlerrors"

// formattedError is the error envelope the API exposes to clients.
type formattedError struct {
	Message string   `json:"message"`
	Status  int      `json:"status"`
	Data    []string `json:"data,omitempty"`
}

// formatErrors reshapes executor errors into the public envelope, pulling the
// status code and validation details out of the error extensions. Errors
// without a tagged origin (syntax or validation failures raised by the
// executor itself) default to 500.
func formatErrors(errs []gqlerrors.FormattedError) []formattedError {
	out := make([]formattedError, 0, len(errs))
	for _, e := range errs {
		fe := formattedError{Message: e.Message, Status: 500}
		if status, ok := e.Extensions["status"].(int); ok {
			fe.Status = status
		}
		if data, ok := e.Extensions["data"].([]string); ok {
			fe.Data = data
		}
		out = append(out, fe)
	}
	return out
}
