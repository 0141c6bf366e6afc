package model

// Purpose identifies what a derived variant is used for. The set is closed:
// unknown keys are rejected at every read and write of the variants column.
type Purpose string

const (
	PurposeThumb  Purpose = "thumb"
	PurposeFeed   Purpose = "feed"
	PurposeFull   Purpose = "full"
	Purpose480p   Purpose = "480p"
	Purpose720p   Purpose = "720p"
	PurposePoster Purpose = "poster"
)

// AllPurposes is the enumeration order used for cache invalidation, so that
// invalidation never has to pattern-scan the keyspace.
var AllPurposes = []Purpose{
	PurposeThumb,
	PurposeFeed,
	PurposeFull,
	Purpose480p,
	Purpose720p,
	PurposePoster,
}

func (p Purpose) IsValid() bool {
	switch p {
	case PurposeThumb, PurposeFeed, PurposeFull, Purpose480p, Purpose720p, PurposePoster:
		return true
	}
	return false
}

// ImagePurposes are the variants the image pipeline produces.
var ImagePurposes = []Purpose{PurposeThumb, PurposeFeed, PurposeFull}

// VideoPurposes are the transcoded renditions the video pipeline produces;
// poster is added separately from the extracted frame.
var VideoPurposes = []Purpose{Purpose480p, Purpose720p}
