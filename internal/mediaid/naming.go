package mediaid

import (
	"fmt"
	"regexp"
	"strconv"

	"github.com/linkhive/media-pipeline-go/internal/model"
)

// Blob names are deterministic in (media ID, purpose, version) so that a
// replayed job overwrites the same object instead of leaking a new one.
//
// Originals:  {prefix}_{media_id}_v{version}.{ext}
// Variants:   {prefix}_{media_id}_{purpose}_v{version}.{ext}

func prefixFor(mt model.MediaType) string {
	switch mt {
	case model.MediaTypeVideo:
		return "video"
	case model.MediaTypeDocument:
		return "document"
	default:
		return "image"
	}
}

// OriginalBlobName composes the private-bucket name of an original upload.
func OriginalBlobName(mt model.MediaType, id ID, version int, ext string) string {
	return fmt.Sprintf("%s_%s_v%d.%s", prefixFor(mt), id, version, ext)
}

// BlobPrefix returns the prefix shared by every blob of one media id,
// across purposes and versions. Sweeping a bucket by this prefix catches
// derived blobs left behind by earlier versions after a re-ingest.
func BlobPrefix(mt model.MediaType, id ID) string {
	return fmt.Sprintf("%s_%s_", prefixFor(mt), id)
}

// VariantBlobName composes the public-bucket name of a derived variant.
// Image-class purposes (thumb, feed, full, poster) are always WebP; the
// transcoded renditions (480p, 720p) are MP4.
func VariantBlobName(mt model.MediaType, id ID, purpose model.Purpose, version int) string {
	ext := "webp"
	if purpose == model.Purpose480p || purpose == model.Purpose720p {
		ext = "mp4"
	}
	return fmt.Sprintf("%s_%s_%s_v%d.%s", prefixFor(mt), id, purpose, version, ext)
}

var originalRe = regexp.MustCompile(`^(image|video|document)_([0-9a-f]{24})_v([1-9][0-9]*)\.([a-z0-9]+)$`)

// ParseOriginalBlobName splits an original blob name back into its parts.
func ParseOriginalBlobName(name string) (model.MediaType, ID, int, string, error) {
	m := originalRe.FindStringSubmatch(name)
	if m == nil {
		return "", "", 0, "", fmt.Errorf("mediaid: %q is not a valid original blob name", name)
	}
	version, err := strconv.Atoi(m[3])
	if err != nil {
		return "", "", 0, "", fmt.Errorf("mediaid: bad version in %q: %w", name, err)
	}
	return model.MediaType(m[1]), ID(m[2]), version, m[4], nil
}
