package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

var errKeyOutsideBase = errors.New("storage: key escapes base directory")

type Local struct {
	BaseDir   string
	URLPrefix string
}

func NewLocal(baseDir, urlPrefix string) *Local {
	return &Local{BaseDir: baseDir, URLPrefix: urlPrefix}
}

func (l *Local) Put(ctx context.Context, r io.Reader, in PutInput) (PutResult, error) {
	_ = ctx

	key, dstPath, err := l.path(keyFor(in))
	if err != nil {
		return PutResult{}, err
	}
	if err := os.MkdirAll(filepath.Dir(dstPath), 0o755); err != nil {
		return PutResult{}, err
	}

	f, err := os.OpenFile(dstPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return PutResult{}, err
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		return PutResult{}, err
	}

	url := strings.TrimRight(l.URLPrefix, "/") + "/" + key
	return PutResult{Key: key, URL: url}, nil
}

func (l *Local) Delete(ctx context.Context, key string) error {
	_ = ctx
	_, p, err := l.path(key)
	if err != nil {
		return err
	}
	return os.Remove(p)
}

// path roots key under BaseDir and returns the cleaned key with its path.
func (l *Local) path(key string) (string, string, error) {
	clean := filepath.Clean("/" + filepath.FromSlash(key))
	p := filepath.Join(l.BaseDir, clean)
	rel, err := filepath.Rel(l.BaseDir, p)
	if err != nil || rel == "." || strings.HasPrefix(rel, "..") {
		return "", "", errKeyOutsideBase
	}
	return filepath.ToSlash(rel), p, nil
}

func (l *Local) String() string { return fmt.Sprintf("local(%s)", l.BaseDir) }
