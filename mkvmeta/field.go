package mkvmeta

// FieldError is the in-document stand-in for a single failed binding
// query. It marshals to {"error": <message>}.
type FieldError struct {
	Error string `json:"error"`
}

// Try runs one binding query and folds a failure into the document
// instead of propagating it: on success the value is used as the JSON
// field, on failure a FieldError takes its place.
func Try[T any](fn func() (T, error)) any {
	v, err := fn()
	if err != nil {
		return FieldError{Error: err.Error()}
	}
	return v
}
