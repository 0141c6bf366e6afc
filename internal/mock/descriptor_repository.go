package mock

import (
	"context"

	"github.com/linkhive/media-pipeline-go/internal/model"
)

// DescriptorRepo implements repository operations for tests.
type DescriptorRepo struct {
	Record     *model.MediaDescriptor
	ByPostOut  []*model.MediaDescriptor
	InsertedID int64

	GetErr        error
	GetByBlobErr  error
	GetByPostErr  error
	InsertErr     error
	TransitionErr error
	SetReadyErr   error
	SetFailedErr  error
	ReingestErr   error
	DeleteErr     error

	GetCalled        bool
	GetByBlobCalled  bool
	GetByPostCalled  bool
	Inserted         *model.MediaDescriptor
	TransitionCalled bool
	TransitionFrom   []model.Status
	TransitionTo     model.Status
	ReadyVariants    model.Variants
	ReadyMeta        model.ReadyMetadata
	SetReadyCalled   bool
	SetFailedCalled  bool
	FailedFrom       []model.Status
	FailedReason     string
	ReingestCalled   bool
	DeleteCalled     bool
	DeletedID        int64
}

func (m *DescriptorRepo) InsertPending(ctx context.Context, d *model.MediaDescriptor) error {
	m.Inserted = d
	if m.InsertErr != nil {
		return m.InsertErr
	}
	if m.InsertedID != 0 {
		d.ID = m.InsertedID
	}
	d.Status = model.StatusPending
	return nil
}

func (m *DescriptorRepo) Transition(ctx context.Context, id int64, from []model.Status, to model.Status) error {
	m.TransitionCalled = true
	m.TransitionFrom = from
	m.TransitionTo = to
	if m.TransitionErr != nil {
		return m.TransitionErr
	}
	if m.Record != nil {
		m.Record.Status = to
	}
	return nil
}

func (m *DescriptorRepo) SetReady(ctx context.Context, id int64, variants model.Variants, meta model.ReadyMetadata) error {
	m.SetReadyCalled = true
	m.ReadyVariants = variants
	m.ReadyMeta = meta
	if m.SetReadyErr != nil {
		return m.SetReadyErr
	}
	if m.Record != nil {
		m.Record.Status = model.StatusReady
		m.Record.Variants = variants
	}
	return nil
}

func (m *DescriptorRepo) SetFailed(ctx context.Context, id int64, from []model.Status, reason string) error {
	m.SetFailedCalled = true
	m.FailedFrom = from
	m.FailedReason = reason
	if m.SetFailedErr != nil {
		return m.SetFailedErr
	}
	if m.Record != nil {
		m.Record.Status = model.StatusFailed
		m.Record.ProcessingError = &reason
	}
	return nil
}

func (m *DescriptorRepo) Reingest(ctx context.Context, id int64) error {
	m.ReingestCalled = true
	if m.ReingestErr != nil {
		return m.ReingestErr
	}
	if m.Record != nil {
		m.Record.Status = model.StatusUploaded
		m.Record.Version++
	}
	return nil
}

func (m *DescriptorRepo) GetByID(ctx context.Context, id int64) (*model.MediaDescriptor, error) {
	m.GetCalled = true
	if m.GetErr != nil {
		return nil, m.GetErr
	}
	return m.Record, nil
}

func (m *DescriptorRepo) GetByBlobName(ctx context.Context, owner, blobName string) (*model.MediaDescriptor, error) {
	m.GetByBlobCalled = true
	if m.GetByBlobErr != nil {
		return nil, m.GetByBlobErr
	}
	return m.Record, nil
}

func (m *DescriptorRepo) GetByPost(ctx context.Context, postID int64) ([]*model.MediaDescriptor, error) {
	m.GetByPostCalled = true
	if m.GetByPostErr != nil {
		return nil, m.GetByPostErr
	}
	return m.ByPostOut, nil
}

func (m *DescriptorRepo) Delete(ctx context.Context, id int64) error {
	m.DeleteCalled = true
	m.DeletedID = id
	return m.DeleteErr
}
