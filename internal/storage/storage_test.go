package storage

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appconfig "medisupply.com/portal/internal/config"
)

var mediaKeyRe = regexp.MustCompile(`^media/[0-9a-f-]{36}-informe-visita\.jpg$`)

func TestMediaKey(t *testing.T) {
	assert.Regexp(t, mediaKeyRe, MediaKey("Informe Visita.JPG"))
}

func TestLocalPutAndDelete(t *testing.T) {
	dir := t.TempDir()
	l := NewLocal(dir, "/uploads/")

	res, err := l.Put(context.Background(), strings.NewReader("img"), PutInput{Filename: "Informe Visita.jpg"})
	require.NoError(t, err)
	assert.Regexp(t, mediaKeyRe, res.Key)
	assert.Equal(t, "/uploads/"+res.Key, res.URL)

	b, err := os.ReadFile(filepath.Join(dir, filepath.FromSlash(res.Key)))
	require.NoError(t, err)
	assert.Equal(t, "img", string(b))

	require.NoError(t, l.Delete(context.Background(), res.Key))
	_, err = os.Stat(filepath.Join(dir, filepath.FromSlash(res.Key)))
	assert.True(t, os.IsNotExist(err))
}

func TestLocalKeyCannotEscape(t *testing.T) {
	dir := t.TempDir()
	l := NewLocal(dir, "/uploads")

	res, err := l.Put(context.Background(), strings.NewReader("x"), PutInput{Key: "../../etc/passwd"})
	require.NoError(t, err)
	_, statErr := os.Stat(filepath.Join(dir, "etc", "passwd"))
	assert.NoError(t, statErr)
	assert.Equal(t, "etc/passwd", res.Key)

	_, err = l.Put(context.Background(), strings.NewReader("x"), PutInput{Key: "/"})
	assert.ErrorIs(t, err, errKeyOutsideBase)
}

type fakeS3 struct {
	puts    []string
	deletes []string
	body    string
}

func (f *fakeS3) PutObject(ctx context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	f.puts = append(f.puts, *in.Key)
	b, _ := io.ReadAll(in.Body)
	f.body = string(b)
	return &s3.PutObjectOutput{}, nil
}

func (f *fakeS3) DeleteObject(ctx context.Context, in *s3.DeleteObjectInput, _ ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
	f.deletes = append(f.deletes, *in.Key)
	return &s3.DeleteObjectOutput{}, nil
}

func TestS3PutUsesMediaKey(t *testing.T) {
	fake := &fakeS3{}
	s := &S3{Client: fake, Bucket: "media", PublicBaseURL: "https://cdn.example.com"}

	res, err := s.Put(context.Background(), strings.NewReader("video"), PutInput{Filename: "informe visita.jpg", ContentType: "image/jpeg"})
	require.NoError(t, err)
	assert.Regexp(t, mediaKeyRe, res.Key)
	assert.Equal(t, "https://cdn.example.com/"+res.Key, res.URL)
	assert.Equal(t, []string{res.Key}, fake.puts)
	assert.Equal(t, "video", fake.body)

	require.NoError(t, s.Delete(context.Background(), res.Key))
	assert.Equal(t, []string{res.Key}, fake.deletes)
}

func TestFromConfig(t *testing.T) {
	res, err := FromConfig(context.Background(), appconfig.Media{Driver: "local", LocalDir: t.TempDir(), LocalURL: "/uploads"})
	require.NoError(t, err)
	assert.Equal(t, "local", res.Driver)

	_, err = FromConfig(context.Background(), appconfig.Media{Driver: "s3"})
	assert.Error(t, err)

	_, err = FromConfig(context.Background(), appconfig.Media{Driver: "ftp"})
	assert.Error(t, err)
}
