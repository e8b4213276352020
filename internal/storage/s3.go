package storage

import (
	"bytes"
	"context"
	"io"
	"strconv"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

type s3Store struct {
	client *s3.Client
}

func NewS3(client *s3.Client) ObjectStore {
	return &s3Store{client: client}
}

func (s *s3Store) Get(ctx context.Context, bucket, key string) ([]byte, error) {
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, readErr(err)
	}
	defer out.Body.Close()
	body, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, readErr(err)
	}
	return body, nil
}

func (s *s3Store) Put(ctx context.Context, bucket, key string, body []byte, contentType string, meta ObjectMeta) error {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(body),
		ContentType: aws.String(contentType),
		Metadata: map[string]string{
			"customerId":  meta.CustomerID,
			"locationId":  meta.LocationID,
			"month":       meta.Month,
			"recordCount": strconv.Itoa(meta.RecordCount),
		},
	})
	if err != nil {
		return writeErr(err)
	}
	return nil
}
