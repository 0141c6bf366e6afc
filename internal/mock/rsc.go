package mock

import "io"

// noopRSC wraps an io.ReadSeeker with a no-op Close so mocks can hand out
// in-memory readers where the port wants a ReadSeekCloser.
type noopRSC struct {
	io.ReadSeeker
}

func (noopRSC) Close() error { return nil }
