package utils

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// ObjectStorage uploads and deletes resource file blobs in a public-read
// MinIO bucket.
type ObjectStorage struct {
	client    *minio.Client
	bucket    string
	publicURL string
}

func NewObjectStorage(endpoint, accessKey, secretKey, bucket, publicURL string) (*ObjectStorage, error) {
	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: false,
	})
	if err != nil {
		return nil, err
	}

	ctx := context.Background()

	exists, err := client.BucketExists(ctx, bucket)
	if err != nil {
		return nil, err
	}

	if !exists {
		if err := client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, err
		}

		// Resource files are served directly to the browser.
		publicPolicy := `{
			"Version": "2012-10-17",
			"Statement": [
				{
					"Action": ["s3:GetObject"],
					"Effect": "Allow",
					"Principal": "*",
					"Resource": "arn:aws:s3:::` + bucket + `/*"
				}
			]
		}`

		if err := client.SetBucketPolicy(ctx, bucket, publicPolicy); err != nil {
			return nil, err
		}
	}

	return &ObjectStorage{client: client, bucket: bucket, publicURL: publicURL}, nil
}

// Upload stores the blob under a collision-free object key and returns the
// key together with its public URL.
func (s *ObjectStorage) Upload(ctx context.Context, reader io.Reader, size int64, contentType, filename string) (objectKey, url string, err error) {
	objectKey = fmt.Sprintf("resources/%d_%s", time.Now().UnixNano(), filename)
	_, err = s.client.PutObject(ctx, s.bucket, objectKey, reader, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", "", err
	}

	url = fmt.Sprintf("%s/%s/%s",
		strings.TrimRight(s.publicURL, "/"),
		s.bucket,
		objectKey,
	)
	return objectKey, url, nil
}

func (s *ObjectStorage) Remove(ctx context.Context, objectKey string) error {
	return s.client.RemoveObject(ctx, s.bucket, objectKey, minio.RemoveObjectOptions{})
}
