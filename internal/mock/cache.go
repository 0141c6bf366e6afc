package mock

import (
	"context"
	"time"

	"github.com/linkhive/media-pipeline-go/internal/model"
)

// Cache implements cache behaviour for tests.
type Cache struct {
	// stored values
	DescriptorOut []byte
	EtagOut       string
	VariantURLOut string
	ProfileURLOut string

	// errors
	GetDescriptorErr error
	GetEtagErr       error
	GetVariantErr    error
	GetProfileErr    error
	InvalidateErr    error

	// call flags and captured inputs
	GetDescriptorCalled bool
	GetEtagCalled       bool
	SetDescriptorCalled bool
	SetEtagCalled       bool
	GetVariantCalled    bool
	SetVariantCalled    bool
	GetProfileCalled    bool
	SetProfileCalled    bool
	InvalidateCalled    bool
	InvalidatedID       int64
	InvalidatedOwner    string
	SetVariantPurpose   model.Purpose
	SetVariantURLIn     string
	SetProfileOwner     string
}

func (c *Cache) GetDescriptor(ctx context.Context, id int64) ([]byte, error) {
	c.GetDescriptorCalled = true
	if c.GetDescriptorErr != nil {
		return nil, c.GetDescriptorErr
	}
	return c.DescriptorOut, nil
}

func (c *Cache) GetEtagDescriptor(ctx context.Context, id int64) (string, error) {
	c.GetEtagCalled = true
	if c.GetEtagErr != nil {
		return "", c.GetEtagErr
	}
	return c.EtagOut, nil
}

func (c *Cache) SetDescriptor(ctx context.Context, id int64, data []byte, ttl time.Duration) {
	c.SetDescriptorCalled = true
	c.DescriptorOut = data
}

func (c *Cache) SetEtagDescriptor(ctx context.Context, id int64, etag string, ttl time.Duration) {
	c.SetEtagCalled = true
	c.EtagOut = etag
}

func (c *Cache) GetVariantURL(ctx context.Context, id int64, purpose model.Purpose) (string, error) {
	c.GetVariantCalled = true
	if c.GetVariantErr != nil {
		return "", c.GetVariantErr
	}
	return c.VariantURLOut, nil
}

func (c *Cache) SetVariantURL(ctx context.Context, id int64, purpose model.Purpose, url string, ttl time.Duration) {
	c.SetVariantCalled = true
	c.SetVariantPurpose = purpose
	c.SetVariantURLIn = url
}

func (c *Cache) GetProfileURL(ctx context.Context, owner string, purpose model.Purpose) (string, error) {
	c.GetProfileCalled = true
	if c.GetProfileErr != nil {
		return "", c.GetProfileErr
	}
	return c.ProfileURLOut, nil
}

func (c *Cache) SetProfileURL(ctx context.Context, owner string, purpose model.Purpose, url string, ttl time.Duration) {
	c.SetProfileCalled = true
	c.SetProfileOwner = owner
}

func (c *Cache) InvalidateDescriptor(ctx context.Context, id int64, owner string) error {
	c.InvalidateCalled = true
	c.InvalidatedID = id
	c.InvalidatedOwner = owner
	return c.InvalidateErr
}
