package services

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"purelife/pkg/utils"
)

var pngHeader = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0, 0, 0, 0x0d, 'I', 'H', 'D', 'R'}

func pngUpload(name string) ImageUpload {
	return ImageUpload{Filename: name, Size: int64(len(pngHeader)), Content: bytes.NewReader(pngHeader)}
}

func TestCheckImage(t *testing.T) {
	tests := []struct {
		name    string
		upload  ImageUpload
		max     int64
		wantErr error
	}{
		{"png", pngUpload("a.png"), 1024, nil},
		{"empty", ImageUpload{Filename: "a.png"}, 1024, utils.ErrEmptyFile},
		{"no name", ImageUpload{Size: 3, Content: strings.NewReader("abc")}, 1024, utils.ErrEmptyFile},
		{"path traversal", ImageUpload{Filename: "../a.png", Size: 3, Content: strings.NewReader("abc")}, 1024, utils.ErrInvalidFilename},
		{"declared too large", ImageUpload{Filename: "a.png", Size: 2048, Content: strings.NewReader("abc")}, 1024, utils.ErrFileTooLarge},
		{"actually too large", ImageUpload{Filename: "a.png", Size: 1, Content: bytes.NewReader(pngHeader)}, 8, utils.ErrFileTooLarge},
		{"not an image", ImageUpload{Filename: "a.png", Size: 11, Content: strings.NewReader("hello world")}, 1024, utils.ErrInvalidFileType},
		{"pdf renamed", ImageUpload{Filename: "a.jpg", Size: 8, Content: strings.NewReader("%PDF-1.4")}, 1024, utils.ErrInvalidFileType},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img, err := checkImage(tt.upload, tt.max)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "png", img.ext)
			assert.Equal(t, "image/png", img.contentType)
		})
	}
}

func TestLocalFileStorage(t *testing.T) {
	root := t.TempDir()
	storage := NewLocalFileStorage(root, "/uploads/", 0)
	ctx := context.Background()

	ref, err := storage.SaveProductImage(ctx, pngUpload("label.png"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(ref, "/uploads/products/"))
	assert.True(t, strings.HasSuffix(ref, ".png"))
	assert.True(t, storage.Owns(ref))

	onDisk := filepath.Join(root, "products", filepath.Base(ref))
	data, err := os.ReadFile(onDisk)
	require.NoError(t, err)
	assert.Equal(t, pngHeader, data)

	require.NoError(t, storage.DeleteProductImage(ctx, ref))
	_, err = os.Stat(onDisk)
	assert.True(t, errors.Is(err, os.ErrNotExist))

	assert.NoError(t, storage.DeleteProductImage(ctx, ref), "already gone")
	assert.NoError(t, storage.DeleteProductImage(ctx, "https://cdn.example.com/a.png"), "foreign refs are ignored")
	assert.False(t, storage.Owns("https://cdn.example.com/a.png"))
}

type fakeS3 struct {
	puts    map[string][]byte
	types   map[string]string
	deletes []string
	err     error
}

func (f *fakeS3) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	body, _ := io.ReadAll(in.Body)
	f.puts[aws.ToString(in.Key)] = body
	f.types[aws.ToString(in.Key)] = aws.ToString(in.ContentType)
	return &s3.PutObjectOutput{}, nil
}

func (f *fakeS3) DeleteObject(_ context.Context, in *s3.DeleteObjectInput, _ ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.deletes = append(f.deletes, aws.ToString(in.Key))
	return &s3.DeleteObjectOutput{}, nil
}

func TestS3FileStorage(t *testing.T) {
	ctx := context.Background()

	t.Run("save and delete", func(t *testing.T) {
		client := &fakeS3{puts: map[string][]byte{}, types: map[string]string{}}
		storage := NewS3FileStorage(client, "purelife-media", "ap-northeast-1", "/products/", "", 0)

		ref, err := storage.SaveProductImage(ctx, pngUpload("label.png"))
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(ref, "https://purelife-media.s3.ap-northeast-1.amazonaws.com/products/"))

		key := strings.TrimPrefix(ref, "https://purelife-media.s3.ap-northeast-1.amazonaws.com/")
		assert.Equal(t, pngHeader, client.puts[key])
		assert.Equal(t, "image/png", client.types[key])

		require.NoError(t, storage.DeleteProductImage(ctx, ref))
		assert.Equal(t, []string{key}, client.deletes)

		require.NoError(t, storage.DeleteProductImage(ctx, "/uploads/products/local.png"))
		assert.Len(t, client.deletes, 1)
	})

	t.Run("custom public url", func(t *testing.T) {
		client := &fakeS3{puts: map[string][]byte{}, types: map[string]string{}}
		storage := NewS3FileStorage(client, "bucket", "us-east-1", "", "https://cdn.example.com/", 0)

		ref, err := storage.SaveProductImage(ctx, pngUpload("label.png"))
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(ref, "https://cdn.example.com/"))
		assert.True(t, storage.Owns(ref))
	})

	t.Run("client failure", func(t *testing.T) {
		client := &fakeS3{err: errors.New("access denied")}
		storage := NewS3FileStorage(client, "bucket", "us-east-1", "", "", 0)

		_, err := storage.SaveProductImage(ctx, pngUpload("label.png"))
		assert.ErrorContains(t, err, "access denied")
	})
}
