package media

import (
	"context"
	"fmt"
	"time"

	"github.com/linkhive/media-pipeline-go/internal/logger"
	"github.com/linkhive/media-pipeline-go/internal/mediaid"
	"github.com/linkhive/media-pipeline-go/internal/port"
)

type ticketMinterSrv struct {
	strg          port.BlobStorage
	privateBucket string
	genMediaID    port.MediaIDGen
	genUploadID   port.UploadIDGen
	limits        Limits
}

// compile-time check: *ticketMinterSrv must satisfy port.TicketMinter
var _ port.TicketMinter = (*ticketMinterSrv)(nil)

// NewTicketMinter constructs the upload broker.
func NewTicketMinter(strg port.BlobStorage, privateBucket string, genMediaID port.MediaIDGen, genUploadID port.UploadIDGen, limits Limits) port.TicketMinter {
	return &ticketMinterSrv{strg: strg, privateBucket: privateBucket, genMediaID: genMediaID, genUploadID: genUploadID, limits: limits}
}

// MintUploadTicket validates the upload intent and returns a signed,
// write-only URL bound to a canonical blob name. No descriptor row is
// created here: abandoned tickets would otherwise accumulate pending rows.
func (s *ticketMinterSrv) MintUploadTicket(ctx context.Context, in port.MintTicketInput) (port.UploadTicket, error) {
	mediaType, err := MediaTypeForMime(in.MimeType)
	if err != nil {
		return port.UploadTicket{}, fmt.Errorf("mime type %q: %w", in.MimeType, ErrUnsupportedMedia)
	}

	if in.DeclaredSize > 0 && in.DeclaredSize > s.limits.Cap(mediaType) {
		return port.UploadTicket{}, fmt.Errorf("declared size %d exceeds cap %d: %w", in.DeclaredSize, s.limits.Cap(mediaType), ErrTooLarge)
	}

	ext, err := MimeTypeToExtension(in.MimeType)
	if err != nil {
		return port.UploadTicket{}, err
	}

	id := s.genMediaID()
	blobName := mediaid.OriginalBlobName(mediaType, id, 1, ext)

	url, err := s.strg.PresignedUploadURL(ctx, s.privateBucket, blobName, in.MimeType, s.limits.SignedURLTTL)
	if err != nil {
		return port.UploadTicket{}, fmt.Errorf("presign upload for %q: %w", blobName, err)
	}

	expiresAt := time.Now().UTC().Add(s.limits.SignedURLTTL)
	logger.Infof(ctx, "minted upload ticket for media %s (%s, %s)", id, mediaType, in.MimeType)

	return port.UploadTicket{
		UploadID:         s.genUploadID(),
		SignedURL:        url,
		BlobName:         blobName,
		MediaID:          id,
		MediaType:        mediaType,
		MimeType:         in.MimeType,
		ExpiresAt:        expiresAt,
		ExpiresInSeconds: int(s.limits.SignedURLTTL / time.Second),
	}, nil
}
