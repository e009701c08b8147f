package cloudinarystore

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"path"
	"strings"
	"time"

	"barkbuddy/internal/ports/images"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

type uploadAPI interface {
	Upload(ctx context.Context, file interface{}, params uploader.UploadParams) (*uploader.UploadResult, error)
	Destroy(ctx context.Context, params uploader.DestroyParams) (*uploader.DestroyResult, error)
}

type Options struct {
	CloudName string
	APIKey    string
	APISecret string
	Folder    string
}

type Store struct {
	api    uploadAPI
	folder string
	now    func() time.Time
	newID  func() string
}

func New(opts Options) (*Store, error) {
	cld, err := cloudinary.NewFromParams(opts.CloudName, opts.APIKey, opts.APISecret)
	if err != nil {
		return nil, errors.Wrap(err, "init cloudinary")
	}
	return newStore(&cld.Upload, opts.Folder), nil
}

func newStore(api uploadAPI, folder string) *Store {
	return &Store{
		api:    api,
		folder: strings.Trim(strings.TrimSpace(folder), "/"),
		now:    time.Now,
		newID:  uuid.NewString,
	}
}

func (s *Store) Mode() images.Mode { return images.ModeURL }

func (s *Store) Store(ctx context.Context, up images.Upload) (images.Ref, error) {
	// public id = <epoch ms>-<uuid>-<nombre sin extensión>; Cloudinary agrega la extensión.
	base := strings.TrimSuffix(path.Base(up.Filename), path.Ext(up.Filename))
	if base == "" || base == "." || base == "/" {
		base = "upload"
	}
	publicID := fmt.Sprintf("%d-%s-%s", s.now().UnixMilli(), s.newID(), base)

	res, err := s.api.Upload(ctx, bytes.NewReader(up.Data), uploader.UploadParams{
		Folder:   s.folder,
		PublicID: publicID,
	})
	if err != nil {
		return images.Ref{}, errors.Wrapf(images.ErrUpstream, "cloudinary upload: %v", err)
	}
	if res == nil || res.Error.Message != "" {
		msg := "empty response"
		if res != nil {
			msg = res.Error.Message
		}
		return images.Ref{}, errors.Wrapf(images.ErrUpstream, "cloudinary upload: %s", msg)
	}

	return images.Ref{URL: res.SecureURL, ContentType: up.ContentType}, nil
}

func (s *Store) Resolve(_ context.Context, ref images.Ref) (images.Resolved, error) {
	if ref.URL == "" {
		return images.Resolved{}, images.ErrNoImage
	}
	return images.Resolved{RedirectURL: ref.URL}, nil
}

func (s *Store) Delete(ctx context.Context, ref images.Ref) error {
	publicID, ok := publicIDFromURL(ref.URL)
	if !ok {
		return nil
	}
	res, err := s.api.Destroy(ctx, uploader.DestroyParams{PublicID: publicID})
	if err != nil {
		return errors.Wrapf(images.ErrUpstream, "cloudinary destroy %s: %v", publicID, err)
	}
	if res != nil && res.Error.Message != "" {
		return errors.Wrapf(images.ErrUpstream, "cloudinary destroy %s: %s", publicID, res.Error.Message)
	}
	return nil
}

// publicIDFromURL: https://res.cloudinary.com/<cloud>/image/upload/v123/<folder>/<id>.jpg => <folder>/<id>
func publicIDFromURL(raw string) (string, bool) {
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return "", false
	}
	parts := strings.Split(strings.Trim(u.Path, "/"), "/")

	i := 0
	for i < len(parts) && parts[i] != "upload" {
		i++
	}
	if i >= len(parts)-1 {
		return "", false
	}
	rest := parts[i+1:]

	// version opcional (v1712345678)
	if len(rest) > 1 && isVersion(rest[0]) {
		rest = rest[1:]
	}
	last := rest[len(rest)-1]
	rest[len(rest)-1] = strings.TrimSuffix(last, path.Ext(last))
	id := strings.Join(rest, "/")
	return id, id != ""
}

func isVersion(seg string) bool {
	if len(seg) < 2 || seg[0] != 'v' {
		return false
	}
	for _, r := range seg[1:] {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
