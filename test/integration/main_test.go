package integration

import (
	"fmt"
	"os"
	"testing"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/linkhive/media-pipeline-go/internal/storage"
	"github.com/linkhive/media-pipeline-go/test/testutil"
)

var (
	GlobalStrg        *storage.MinioStorage
	GlobalMinioClient *minio.Client
)

func TestMain(m *testing.M) {
	code := func() int {
		dbCleanup, err := setupMySQL()
		if err != nil {
			fmt.Fprintf(os.Stderr, "DB setup failed: %v\n", err)
			return 1
		}
		defer dbCleanup()

		minioCleanup, err := setupMinIO()
		if err != nil {
			fmt.Fprintf(os.Stderr, "MinIO setup failed: %v\n", err)
			return 1
		}
		defer minioCleanup()

		return m.Run()
	}()

	os.Exit(code)
}

func setupMySQL() (cleanup func(), err error) {
	if os.Getenv("TEST_DB_DSN") != "" {
		// CI provided it; nothing to clean up
		return func() {}, nil
	}

	mdb, err := testutil.StartMySQLContainer()
	if err != nil {
		return nil, err
	}

	os.Setenv("TEST_DB_DSN", mdb.DSN)

	return mdb.Cleanup, nil
}

func setupMinIO() (cleanup func(), err error) {
	if os.Getenv("TEST_MINIO_ENDPOINT") != "" {
		// CI path: build the clients against the provided instance
		endpoint := os.Getenv("TEST_MINIO_ENDPOINT")
		access := os.Getenv("TEST_MINIO_ACCESS_KEY")
		secret := os.Getenv("TEST_MINIO_SECRET_KEY")
		useSSL := os.Getenv("TEST_MINIO_USE_SSL") == "true"

		strg, err := storage.NewStorage(endpoint, access, secret, useSSL, "")
		if err != nil {
			return nil, err
		}
		client, err := minio.New(endpoint, &minio.Options{
			Creds:  credentials.NewStaticV4(access, secret, ""),
			Secure: useSSL,
		})
		if err != nil {
			return nil, err
		}

		GlobalStrg = strg
		GlobalMinioClient = client

		return func() {}, nil
	}

	// local path: start a container
	mi, err := testutil.StartMinIOContainer()
	if err != nil {
		return nil, err
	}

	GlobalStrg = mi.Strg
	GlobalMinioClient = mi.Client

	return mi.Cleanup, nil
}

type errorResponse struct {
	Error string `json:"error"`
}
