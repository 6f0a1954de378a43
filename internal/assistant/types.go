package assistant

import "fmt"

// QueryError represents a failure while querying the language-model API.
// Assistant failures are never fatal to the core: callers surface the
// message and move on.
type QueryError struct {
	// Op is the operation that failed (e.g. "ask", "decode").
	Op string

	// Err is the underlying error.
	Err error
}

// Error implements the error interface.
func (e *QueryError) Error() string {
	return fmt.Sprintf("assistant %s: %v", e.Op, e.Err)
}

// Unwrap implements the errors.Unwrap interface.
func (e *QueryError) Unwrap() error {
	return e.Err
}

// generateRequest is the wire shape of a Gemini generateContent request.
type generateRequest struct {
	Contents []content `json:"contents"`
}

type content struct {
	Role  string `json:"role"`
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

// generateResponse is the subset of the Gemini response the client reads.
type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []part `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}
