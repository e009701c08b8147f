package s3store

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"barkbuddy/internal/ports/images"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeS3 struct {
	puts    []*s3.PutObjectInput
	body    []byte
	deletes []string
	putErr  error
}

func (f *fakeS3) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	if f.putErr != nil {
		return nil, f.putErr
	}
	f.puts = append(f.puts, in)
	f.body, _ = io.ReadAll(in.Body)
	return &s3.PutObjectOutput{}, nil
}

func (f *fakeS3) DeleteObject(_ context.Context, in *s3.DeleteObjectInput, _ ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
	f.deletes = append(f.deletes, aws.ToString(in.Key))
	return &s3.DeleteObjectOutput{}, nil
}

func fixedStore(f *fakeS3, base string) *Store {
	s := newStore(f, Options{Region: "us-east-1", Bucket: "bark-images", PublicBaseURL: base})
	s.now = func() time.Time { return time.UnixMilli(1700000000123) }
	s.newID = func() string { return "u1" }
	return s
}

func TestStore_PutsUnderPrefixWithTimestamp(t *testing.T) {
	f := &fakeS3{}
	s := fixedStore(f, "")

	ref, err := s.Store(context.Background(), images.Upload{
		Filename:    "my rex.jpg",
		ContentType: "image/jpeg",
		Data:        []byte("jpeg"),
	})
	require.NoError(t, err)

	require.Len(t, f.puts, 1)
	assert.Equal(t, "images/1700000000123-u1-my-rex.jpg", aws.ToString(f.puts[0].Key))
	assert.Equal(t, "bark-images", aws.ToString(f.puts[0].Bucket))
	assert.Equal(t, "image/jpeg", aws.ToString(f.puts[0].ContentType))
	assert.Equal(t, []byte("jpeg"), f.body)
	assert.Equal(t, "https://bark-images.s3.us-east-1.amazonaws.com/images/1700000000123-u1-my-rex.jpg", ref.URL)
	assert.Empty(t, ref.Data)
}

func TestStore_SameNameSameMillisecondGetDistinctKeys(t *testing.T) {
	f := &fakeS3{}
	s := newStore(f, Options{Region: "us-east-1", Bucket: "bark-images"})
	s.now = func() time.Time { return time.UnixMilli(1700000000123) }

	a, err := s.Store(context.Background(), images.Upload{Filename: "photo.jpg", Data: []byte("a")})
	require.NoError(t, err)
	b, err := s.Store(context.Background(), images.Upload{Filename: "photo.jpg", Data: []byte("b")})
	require.NoError(t, err)

	require.Len(t, f.puts, 2)
	assert.NotEqual(t, aws.ToString(f.puts[0].Key), aws.ToString(f.puts[1].Key))
	assert.NotEqual(t, a.URL, b.URL)

	// borrar uno no toca el otro
	require.NoError(t, s.Delete(context.Background(), a))
	assert.Equal(t, []string{aws.ToString(f.puts[0].Key)}, f.deletes)
}

func TestStore_DeleteOnlyOwnObjects(t *testing.T) {
	f := &fakeS3{}
	s := fixedStore(f, "https://cdn.barkbuddydog.com/")

	require.NoError(t, s.Delete(context.Background(), images.Ref{URL: "https://cdn.barkbuddydog.com/images/1-rex.jpg"}))
	require.NoError(t, s.Delete(context.Background(), images.Ref{URL: "https://elsewhere.example/rex.jpg"}))

	assert.Equal(t, []string{"images/1-rex.jpg"}, f.deletes)
}

func TestStore_PutFailureIsUpstream(t *testing.T) {
	s := fixedStore(&fakeS3{putErr: errors.New("access denied")}, "")

	_, err := s.Store(context.Background(), images.Upload{Filename: "a.png", Data: []byte("x")})
	assert.ErrorIs(t, err, images.ErrUpstream)
}

func TestStore_ResolveRedirects(t *testing.T) {
	s := fixedStore(&fakeS3{}, "")
	res, err := s.Resolve(context.Background(), images.Ref{URL: "https://x/y.png"})
	require.NoError(t, err)
	assert.Equal(t, "https://x/y.png", res.RedirectURL)

	_, err = s.Resolve(context.Background(), images.Ref{})
	assert.ErrorIs(t, err, images.ErrNoImage)
}
