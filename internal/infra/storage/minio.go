package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/pulse-cx/insight/internal/domain/reviews"
)

// Store archives raw review batches as JSON objects in a MinIO bucket,
// keyed by task id.
type Store struct {
	client     *minio.Client
	bucketName string
	region     string
}

// New connects to MinIO and makes sure the bucket exists.
func New(ctx context.Context, endpoint, region, bucket, accessKey, secretKey string, useSSL bool) (*Store, error) {
	cli, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSSL,
		Region: region,
	})
	if err != nil {
		return nil, err
	}

	exists, err := cli.BucketExists(ctx, bucket)
	if err != nil {
		return nil, err
	}
	if !exists {
		if err := cli.MakeBucket(ctx, bucket, minio.MakeBucketOptions{Region: region}); err != nil {
			return nil, err
		}
	}

	return &Store{client: cli, bucketName: bucket, region: region}, nil
}

// Client exposes the underlying client for health probes.
func (s *Store) Client() *minio.Client { return s.client }

// rawBatch is the archived document shape.
type rawBatch struct {
	TaskID       string           `json:"task_id"`
	StoreName    string           `json:"store_name"`
	Address      string           `json:"address"`
	ReviewsCount int              `json:"reviews_count"`
	Reviews      []reviews.Review `json:"reviews"`
}

// ArchiveRawBatch implements reviews.Archive. Returns the object key.
func (s *Store) ArchiveRawBatch(ctx context.Context, taskID, storeName, address string, revs []reviews.Review) (string, error) {
	doc := rawBatch{
		TaskID:       taskID,
		StoreName:    storeName,
		Address:      address,
		ReviewsCount: len(revs),
		Reviews:      revs,
	}
	body, err := json.Marshal(doc)
	if err != nil {
		return "", err
	}

	key := fmt.Sprintf("raw-reviews/%s.json", taskID)
	_, err = s.client.PutObject(ctx, s.bucketName, key, bytes.NewReader(body), int64(len(body)), minio.PutObjectOptions{
		ContentType: "application/json",
	})
	if err != nil {
		return "", err
	}
	return key, nil
}
