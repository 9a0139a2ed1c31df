package s3

import (
	"bytes"
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
	"strings"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	awss3 "github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"review-backend/internal/shared/util"
)

// Store keeps snapshots in an S3 bucket under an optional key prefix.
type Store struct {
	client *awss3.Client
	bucket string
	prefix string
	sse    bool
}

type Options struct {
	Bucket string
	Prefix string
	Region string
	// SSE enables server-side encryption with AES256.
	SSE bool
}

func NewStore(ctx context.Context, opts Options) (*Store, error) {
	if strings.TrimSpace(opts.Bucket) == "" {
		return nil, fmt.Errorf("s3 bucket is required")
	}
	loadOpts := []func(*awsconfig.LoadOptions) error{}
	if opts.Region != "" {
		loadOpts = append(loadOpts, awsconfig.WithRegion(opts.Region))
	}
	cfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	return &Store{
		client: awss3.NewFromConfig(cfg),
		bucket: opts.Bucket,
		prefix: normalizePrefix(opts.Prefix),
		sse:    opts.SSE,
	}, nil
}

func (s *Store) Save(ctx context.Context, userID string, name string, r io.Reader) (string, int64, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", 0, fmt.Errorf("read object: %w", err)
	}

	key := util.HashUserKey(userID) + "/" + randomID() + "_" + util.SanitizeFileName(name)
	input := &awss3.PutObjectInput{
		Bucket:      &s.bucket,
		Key:         strPtr(s.applyPrefix(key)),
		Body:        bytes.NewReader(data),
		ContentType: strPtr("text/plain; charset=utf-8"),
	}
	if s.sse {
		input.ServerSideEncryption = types.ServerSideEncryptionAes256
	}
	if _, err := s.client.PutObject(ctx, input); err != nil {
		return "", 0, fmt.Errorf("put object: %w", err)
	}
	return key, int64(len(data)), nil
}

func (s *Store) Open(ctx context.Context, storageKey string) (io.ReadCloser, error) {
	out, err := s.client.GetObject(ctx, &awss3.GetObjectInput{
		Bucket: &s.bucket,
		Key:    strPtr(s.applyPrefix(storageKey)),
	})
	if err != nil {
		return nil, fmt.Errorf("get object: %w", err)
	}
	return out.Body, nil
}

func (s *Store) applyPrefix(key string) string {
	if s.prefix == "" {
		return key
	}
	return s.prefix + key
}

func normalizePrefix(p string) string {
	p = strings.Trim(strings.TrimSpace(p), "/")
	if p == "" {
		return ""
	}
	return p + "/"
}

func randomID() string {
	b := make([]byte, 8)
	if _, err := rand.Read(b); err != nil {
		return "00000000"
	}
	return hex.EncodeToString(b)
}

func strPtr(s string) *string { return &s }
