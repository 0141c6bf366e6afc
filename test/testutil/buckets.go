package testutil

import (
	"context"
	"fmt"

	"github.com/minio/minio-go/v7"
)

const (
	PrivateBucket = "media-private"
	PublicBucket  = "media-public"
)

type TestBuckets struct {
	Client  *minio.Client
	Cleanup func() error
}

// SetupTestBuckets (re)creates the private and public pipeline buckets and
// returns a cleanup that empties and drops them again.
func SetupTestBuckets(client *minio.Client) (*TestBuckets, error) {
	buckets := []string{PrivateBucket, PublicBucket}
	ctx := context.Background()

	for _, b := range buckets {
		emptyBucket(ctx, client, b)
		// leftover bucket from an earlier run is fine to reuse
		if err := client.MakeBucket(ctx, b, minio.MakeBucketOptions{}); err != nil {
			exists, err2 := client.BucketExists(ctx, b)
			if err2 != nil || !exists {
				return nil, fmt.Errorf("could not create bucket %q: %w", b, err)
			}
		}
	}

	cleanup := func() error {
		for _, b := range buckets {
			emptyBucket(ctx, client, b)
			if err := client.RemoveBucket(ctx, b); err != nil {
				return fmt.Errorf("could not remove bucket %q: %w", b, err)
			}
		}
		return nil
	}

	return &TestBuckets{
		Client:  client,
		Cleanup: cleanup,
	}, nil
}

func emptyBucket(ctx context.Context, client *minio.Client, bucket string) {
	exists, err := client.BucketExists(ctx, bucket)
	if err != nil || !exists {
		return
	}
	for obj := range client.ListObjects(ctx, bucket, minio.ListObjectsOptions{Recursive: true}) {
		if obj.Err != nil {
			continue
		}
		_ = client.RemoveObject(ctx, bucket, obj.Key, minio.RemoveObjectOptions{})
	}
}
