package mock

import (
	"context"

	"github.com/linkhive/media-pipeline-go/internal/model"
	"github.com/linkhive/media-pipeline-go/internal/port"
)

// TicketMinter implements the mint use case for tests.
type TicketMinter struct {
	Out port.UploadTicket
	Err error

	Called bool
	In     port.MintTicketInput
}

func (m *TicketMinter) MintUploadTicket(ctx context.Context, in port.MintTicketInput) (port.UploadTicket, error) {
	m.Called = true
	m.In = in
	if m.Err != nil {
		return port.UploadTicket{}, m.Err
	}
	return m.Out, nil
}

// UploadCompleter implements the completion use case for tests.
type UploadCompleter struct {
	Out port.CompleteUploadOutput
	Err error

	Called bool
	In     port.CompleteUploadInput
}

func (m *UploadCompleter) CompleteUpload(ctx context.Context, in port.CompleteUploadInput) (port.CompleteUploadOutput, error) {
	m.Called = true
	m.In = in
	if m.Err != nil {
		return port.CompleteUploadOutput{}, m.Err
	}
	return m.Out, nil
}

// DescriptorGetter implements the descriptor read use case for tests.
type DescriptorGetter struct {
	Out *port.GetDescriptorOutput
	Err error

	Called bool
	IDIn   int64
}

func (m *DescriptorGetter) GetDescriptor(ctx context.Context, id int64) (*port.GetDescriptorOutput, error) {
	m.Called = true
	m.IDIn = id
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Out, nil
}

// VariantGetter implements the variant URL use case for tests.
type VariantGetter struct {
	Out string
	Err error

	Called    bool
	IDIn      int64
	PurposeIn model.Purpose
}

func (m *VariantGetter) GetVariantURL(ctx context.Context, id int64, purpose model.Purpose) (string, error) {
	m.Called = true
	m.IDIn = id
	m.PurposeIn = purpose
	if m.Err != nil {
		return "", m.Err
	}
	return m.Out, nil
}

// StatusGetter implements the status polling use case for tests.
type StatusGetter struct {
	Out port.StatusOutput
	Err error

	Called bool
}

func (m *StatusGetter) GetStatus(ctx context.Context, id int64) (port.StatusOutput, error) {
	m.Called = true
	if m.Err != nil {
		return port.StatusOutput{}, m.Err
	}
	return m.Out, nil
}

// MediaDeleter implements the delete use case for tests.
type MediaDeleter struct {
	Err error

	Called bool
	IDIn   int64
}

func (m *MediaDeleter) DeleteMedia(ctx context.Context, id int64) error {
	m.Called = true
	m.IDIn = id
	return m.Err
}

// Reingester implements the re-ingest use case for tests.
type Reingester struct {
	Err error

	Called  bool
	IDIn    int64
	OwnerIn string
}

func (m *Reingester) Reingest(ctx context.Context, id int64, owner string) error {
	m.Called = true
	m.IDIn = id
	m.OwnerIn = owner
	return m.Err
}

// PostMediaLister implements the by-post lookup for tests.
type PostMediaLister struct {
	Out []*model.MediaDescriptor
	Err error

	Called bool
	PostIn int64
}

func (m *PostMediaLister) ListPostMedia(ctx context.Context, postID int64) ([]*model.MediaDescriptor, error) {
	m.Called = true
	m.PostIn = postID
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Out, nil
}

// ImagePipeline implements the image pipeline for worker handler tests.
type ImagePipeline struct {
	Err error

	Called bool
	EnvIn  port.JobEnvelope
}

func (m *ImagePipeline) ProcessImage(ctx context.Context, env port.JobEnvelope) error {
	m.Called = true
	m.EnvIn = env
	return m.Err
}

// VideoPipeline implements the video pipeline for worker handler tests.
type VideoPipeline struct {
	Err error

	Called bool
	EnvIn  port.JobEnvelope
}

func (m *VideoPipeline) ProcessVideo(ctx context.Context, env port.JobEnvelope) error {
	m.Called = true
	m.EnvIn = env
	return m.Err
}

// DocumentPipeline implements the document pipeline for worker handler tests.
type DocumentPipeline struct {
	Err error

	Called bool
	EnvIn  port.JobEnvelope
}

func (m *DocumentPipeline) ProcessDocument(ctx context.Context, env port.JobEnvelope) error {
	m.Called = true
	m.EnvIn = env
	return m.Err
}
