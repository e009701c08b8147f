package cloudinarystore

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"barkbuddy/internal/ports/images"

	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeUploader struct {
	params    uploader.UploadParams
	data      []byte
	destroyed []string
	err       error
}

func (f *fakeUploader) Upload(_ context.Context, file interface{}, params uploader.UploadParams) (*uploader.UploadResult, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.params = params
	f.data, _ = io.ReadAll(file.(io.Reader))
	return &uploader.UploadResult{
		PublicID:  params.Folder + "/" + params.PublicID,
		SecureURL: "https://res.cloudinary.com/bark/image/upload/v1/" + params.Folder + "/" + params.PublicID + ".jpg",
	}, nil
}

func (f *fakeUploader) Destroy(_ context.Context, params uploader.DestroyParams) (*uploader.DestroyResult, error) {
	f.destroyed = append(f.destroyed, params.PublicID)
	return &uploader.DestroyResult{Result: "ok"}, nil
}

func TestStore_UploadAndDeleteRoundTrip(t *testing.T) {
	f := &fakeUploader{}
	s := newStore(f, "/barkbuddy/")
	s.now = func() time.Time { return time.UnixMilli(42) }
	s.newID = func() string { return "u1" }

	ref, err := s.Store(context.Background(), images.Upload{Filename: "rex.jpg", ContentType: "image/jpeg", Data: []byte("img")})
	require.NoError(t, err)

	assert.Equal(t, "barkbuddy", f.params.Folder)
	assert.Equal(t, "42-u1-rex", f.params.PublicID)
	assert.Equal(t, []byte("img"), f.data)
	assert.Equal(t, "https://res.cloudinary.com/bark/image/upload/v1/barkbuddy/42-u1-rex.jpg", ref.URL)

	require.NoError(t, s.Delete(context.Background(), ref))
	assert.Equal(t, []string{"barkbuddy/42-u1-rex"}, f.destroyed)
}

func TestStore_SameNameSameMillisecondGetDistinctPublicIDs(t *testing.T) {
	f := &fakeUploader{}
	s := newStore(f, "barkbuddy")
	s.now = func() time.Time { return time.UnixMilli(42) }

	a, err := s.Store(context.Background(), images.Upload{Filename: "photo.jpg", Data: []byte("a")})
	require.NoError(t, err)
	first := f.params.PublicID
	b, err := s.Store(context.Background(), images.Upload{Filename: "photo.jpg", Data: []byte("b")})
	require.NoError(t, err)

	assert.NotEqual(t, first, f.params.PublicID)
	assert.NotEqual(t, a.URL, b.URL)
}

func TestStore_UploadErrorIsUpstream(t *testing.T) {
	s := newStore(&fakeUploader{err: errors.New("timeout")}, "")
	_, err := s.Store(context.Background(), images.Upload{Filename: "a.png", Data: []byte("x")})
	assert.ErrorIs(t, err, images.ErrUpstream)
}

func TestPublicIDFromURL(t *testing.T) {
	cases := []struct {
		in   string
		want string
		ok   bool
	}{
		{"https://res.cloudinary.com/c/image/upload/v1712345678/barkbuddy/1-rex.jpg", "barkbuddy/1-rex", true},
		{"https://res.cloudinary.com/c/image/upload/rex.png", "rex", true},
		{"https://res.cloudinary.com/c/image/upload/", "", false},
		{"https://example.com/rex.png", "", false},
		{"not a url", "", false},
	}
	for _, tc := range cases {
		got, ok := publicIDFromURL(tc.in)
		assert.Equal(t, tc.ok, ok, tc.in)
		assert.Equal(t, tc.want, got, tc.in)
	}
}
