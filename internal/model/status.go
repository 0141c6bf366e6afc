package model

import "fmt"

// MediaType classifies what kind of pipeline a descriptor goes through.
type MediaType string

const (
	MediaTypeImage    MediaType = "image"
	MediaTypeVideo    MediaType = "video"
	MediaTypeDocument MediaType = "document"
)

func (t MediaType) IsValid() bool {
	switch t {
	case MediaTypeImage, MediaTypeVideo, MediaTypeDocument:
		return true
	}
	return false
}

// Status is the descriptor lifecycle state. All writes to it go through
// the repository Transition call, gated on the legal edges below.
type Status string

const (
	StatusPending    Status = "pending"
	StatusUploaded   Status = "uploaded"
	StatusProcessing Status = "processing"
	StatusReady      Status = "ready"
	StatusFailed     Status = "failed"
)

func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusUploaded, StatusProcessing, StatusReady, StatusFailed:
		return true
	}
	return false
}

// legalTransitions enumerates every edge of the lifecycle. A fresh upload of
// the same logical media never re-enters an existing row; it allocates a new
// descriptor. ready → uploaded and failed → uploaded are only reachable
// through an explicit re-ingest, which bumps the variant version.
var legalTransitions = map[Status][]Status{
	StatusPending:    {StatusUploaded},
	StatusUploaded:   {StatusProcessing, StatusFailed},
	StatusProcessing: {StatusReady, StatusFailed},
	StatusFailed:     {StatusProcessing, StatusUploaded},
	StatusReady:      {StatusUploaded},
}

// CanTransition reports whether from → to is a legal lifecycle edge.
func CanTransition(from, to Status) bool {
	for _, t := range legalTransitions[from] {
		if t == to {
			return true
		}
	}
	return false
}

// ValidateTransition returns a descriptive error for illegal edges.
func ValidateTransition(from, to Status) error {
	if !from.IsValid() {
		return fmt.Errorf("unknown status %q", from)
	}
	if !to.IsValid() {
		return fmt.Errorf("unknown status %q", to)
	}
	if !CanTransition(from, to) {
		return fmt.Errorf("illegal status transition %q → %q", from, to)
	}
	return nil
}
