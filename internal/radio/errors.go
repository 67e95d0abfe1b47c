package radio

import "fmt"

// FetchKind classifies directory failures so the session can phrase its
// status line accordingly.
type FetchKind int

const (
	// FetchNetwork covers unreachable hosts, timeouts and transport errors.
	FetchNetwork FetchKind = iota
	// FetchDecode covers responses that are not the JSON we expect.
	FetchDecode
	// FetchServer covers non-success HTTP statuses.
	FetchServer
)

func (k FetchKind) String() string {
	switch k {
	case FetchNetwork:
		return "network"
	case FetchDecode:
		return "decode"
	case FetchServer:
		return "server"
	}
	return "unknown"
}

// FetchError wraps a directory failure with its kind.
type FetchError struct {
	Kind FetchKind
	Err  error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("directory %s error: %v", e.Kind, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

func newFetchError(kind FetchKind, err error) *FetchError {
	return &FetchError{Kind: kind, Err: err}
}
