package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
	"github.com/h2non/filetype"

	"purelife/pkg/logger"
	"purelife/pkg/utils"
)

const (
	DefaultMaxImageBytes int64 = 5 * 1024 * 1024
	productImageFolder         = "products"
)

var allowedImageTypes = map[string]bool{
	"jpg":  true,
	"png":  true,
	"gif":  true,
	"webp": true,
}

// ImageUpload is an uploaded image as read off the request.
type ImageUpload struct {
	Filename string
	Size     int64
	Content  io.Reader
}

// FileStorage stores product images and hands back a reference that can be
// served to clients and later passed to Delete.
type FileStorage interface {
	SaveProductImage(ctx context.Context, upload ImageUpload) (string, error)
	DeleteProductImage(ctx context.Context, ref string) error
	// Owns reports whether ref was produced by this storage.
	Owns(ref string) bool
}

type checkedImage struct {
	data        []byte
	ext         string
	contentType string
}

// checkImage enforces the size limit, rejects path tricks in the name and
// sniffs the bytes for JPEG, PNG, GIF or WebP.
func checkImage(upload ImageUpload, maxBytes int64) (*checkedImage, error) {
	if upload.Content == nil || upload.Size == 0 || upload.Filename == "" {
		return nil, utils.ErrEmptyFile
	}
	if strings.Contains(upload.Filename, "..") {
		return nil, utils.ErrInvalidFilename
	}
	if upload.Size > maxBytes {
		return nil, utils.ErrFileTooLarge
	}

	data, err := io.ReadAll(io.LimitReader(upload.Content, maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read upload: %w", err)
	}
	if int64(len(data)) > maxBytes {
		return nil, utils.ErrFileTooLarge
	}
	if len(data) == 0 {
		return nil, utils.ErrEmptyFile
	}

	kind, err := filetype.Match(data)
	if err != nil || !allowedImageTypes[kind.Extension] {
		return nil, utils.ErrInvalidFileType
	}

	return &checkedImage{data: data, ext: kind.Extension, contentType: kind.MIME.Value}, nil
}

func newImageName(ext string) string {
	return uuid.NewString() + "." + ext
}

type LocalFileStorage struct {
	rootDir      string
	publicPrefix string
	maxBytes     int64
}

func NewLocalFileStorage(rootDir, publicPrefix string, maxBytes int64) *LocalFileStorage {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxImageBytes
	}
	return &LocalFileStorage{
		rootDir:      rootDir,
		publicPrefix: strings.TrimRight(publicPrefix, "/"),
		maxBytes:     maxBytes,
	}
}

func (l *LocalFileStorage) SaveProductImage(ctx context.Context, upload ImageUpload) (string, error) {
	img, err := checkImage(upload, l.maxBytes)
	if err != nil {
		return "", err
	}

	dir := filepath.Join(l.rootDir, productImageFolder)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create upload dir: %w", err)
	}

	name := newImageName(img.ext)
	if err := os.WriteFile(filepath.Join(dir, name), img.data, 0o644); err != nil {
		return "", fmt.Errorf("write image: %w", err)
	}

	logger.WithComponent("storage").Info("image stored", "name", name, "size", len(img.data))
	return l.publicPrefix + "/" + productImageFolder + "/" + name, nil
}

// DeleteProductImage ignores references it does not own and files already gone.
func (l *LocalFileStorage) DeleteProductImage(ctx context.Context, ref string) error {
	if !l.Owns(ref) {
		return nil
	}
	name := path.Base(ref)
	if name == "." || name == "/" || strings.Contains(name, "..") {
		return utils.ErrInvalidFilename
	}

	err := os.Remove(filepath.Join(l.rootDir, productImageFolder, name))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("delete image: %w", err)
	}
	return nil
}

func (l *LocalFileStorage) Owns(ref string) bool {
	return strings.HasPrefix(ref, l.publicPrefix+"/"+productImageFolder+"/")
}

// S3API is the part of the S3 client used for images.
type S3API interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
}

type S3FileStorage struct {
	client        S3API
	bucket        string
	keyPrefix     string
	publicBaseURL string
	maxBytes      int64
}

func NewS3FileStorage(client S3API, bucket, region, keyPrefix, publicBaseURL string, maxBytes int64) *S3FileStorage {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxImageBytes
	}
	if publicBaseURL == "" {
		publicBaseURL = fmt.Sprintf("https://%s.s3.%s.amazonaws.com", bucket, region)
	}
	return &S3FileStorage{
		client:        client,
		bucket:        bucket,
		keyPrefix:     strings.Trim(keyPrefix, "/"),
		publicBaseURL: strings.TrimRight(publicBaseURL, "/"),
		maxBytes:      maxBytes,
	}
}

func (s *S3FileStorage) key(name string) string {
	if s.keyPrefix == "" {
		return name
	}
	return s.keyPrefix + "/" + name
}

func (s *S3FileStorage) SaveProductImage(ctx context.Context, upload ImageUpload) (string, error) {
	img, err := checkImage(upload, s.maxBytes)
	if err != nil {
		return "", err
	}

	key := s.key(newImageName(img.ext))
	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(img.data),
		ContentType: aws.String(img.contentType),
	})
	if err != nil {
		return "", fmt.Errorf("upload image to bucket %s: %w", s.bucket, err)
	}

	logger.WithComponent("storage").Info("image uploaded", "bucket", s.bucket, "key", key)
	return s.publicBaseURL + "/" + key, nil
}

func (s *S3FileStorage) DeleteProductImage(ctx context.Context, ref string) error {
	if !s.Owns(ref) {
		return nil
	}
	key := strings.TrimPrefix(ref, s.publicBaseURL+"/")
	if strings.Contains(key, "..") {
		return utils.ErrInvalidFilename
	}

	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("delete image from bucket %s: %w", s.bucket, err)
	}
	return nil
}

func (s *S3FileStorage) Owns(ref string) bool {
	return strings.HasPrefix(ref, s.publicBaseURL+"/"+s.key(""))
}
