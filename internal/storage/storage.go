// Package storage keeps uploaded visit media on local disk or in S3.
package storage

import (
	"context"
	"io"

	"github.com/google/uuid"

	"medisupply.com/portal/internal/shared/slug"
)

type PutInput struct {
	Key         string // object key; MediaKey when empty
	Filename    string
	ContentType string
	Size        int64
}

type PutResult struct {
	Key string
	URL string
}

type Storage interface {
	Put(ctx context.Context, r io.Reader, in PutInput) (PutResult, error)
	Delete(ctx context.Context, key string) error
}

// MediaKey returns media/<uuid>-<slugged filename>.
func MediaKey(filename string) string {
	return "media/" + uuid.NewString() + "-" + slug.FileName(filename)
}

func keyFor(in PutInput) string {
	if in.Key != "" {
		return in.Key
	}
	return MediaKey(in.Filename)
}
