package s3store

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"barkbuddy/internal/ports/images"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// objectAPI es el subconjunto de *s3.Client que usamos (permite fakes en tests).
type objectAPI interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	DeleteObject(ctx context.Context, in *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
}

type Options struct {
	Region        string
	Bucket        string
	KeyPrefix     string // default "images"
	PublicBaseURL string // opcional (CloudFront, etc.)
}

type Store struct {
	client  objectAPI
	bucket  string
	prefix  string
	baseURL string
	now     func() time.Time
	newID   func() string
}

// New carga credenciales con la cadena default de AWS (env, profile, IAM role).
func New(ctx context.Context, opts Options) (*Store, error) {
	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(opts.Region))
	if err != nil {
		return nil, errors.Wrap(err, "load aws config")
	}
	return newStore(s3.NewFromConfig(cfg), opts), nil
}

func newStore(client objectAPI, opts Options) *Store {
	prefix := strings.Trim(strings.TrimSpace(opts.KeyPrefix), "/")
	if prefix == "" {
		prefix = "images"
	}
	base := strings.TrimRight(strings.TrimSpace(opts.PublicBaseURL), "/")
	if base == "" {
		base = fmt.Sprintf("https://%s.s3.%s.amazonaws.com", opts.Bucket, opts.Region)
	}
	return &Store{
		client:  client,
		bucket:  opts.Bucket,
		prefix:  prefix,
		baseURL: base,
		now:     time.Now,
		newID:   uuid.NewString,
	}
}

func (s *Store) Mode() images.Mode { return images.ModeURL }

func (s *Store) Store(ctx context.Context, up images.Upload) (images.Ref, error) {
	ct := strings.TrimSpace(up.ContentType)
	if ct == "" {
		ct = http.DetectContentType(up.Data)
	}

	// <prefix>/<epoch ms>-<uuid>-<filename>
	key := fmt.Sprintf("%s/%d-%s-%s", s.prefix, s.now().UnixMilli(), s.newID(), safeName(up.Filename))

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(up.Data),
		ContentType: aws.String(ct),
	})
	if err != nil {
		return images.Ref{}, errors.Wrapf(images.ErrUpstream, "s3 put %s: %v", key, err)
	}

	return images.Ref{URL: s.baseURL + "/" + key, ContentType: ct}, nil
}

func (s *Store) Resolve(_ context.Context, ref images.Ref) (images.Resolved, error) {
	if ref.URL == "" {
		return images.Resolved{}, images.ErrNoImage
	}
	return images.Resolved{RedirectURL: ref.URL}, nil
}

func (s *Store) Delete(ctx context.Context, ref images.Ref) error {
	key, ok := s.keyFromURL(ref.URL)
	if !ok {
		// No es un objeto nuestro (p.ej. URL externa); nada que borrar.
		return nil
	}
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return errors.Wrapf(images.ErrUpstream, "s3 delete %s: %v", key, err)
	}
	return nil
}

func (s *Store) keyFromURL(u string) (string, bool) {
	if !strings.HasPrefix(u, s.baseURL+"/") {
		return "", false
	}
	key := strings.TrimPrefix(u, s.baseURL+"/")
	return key, key != ""
}

func safeName(name string) string {
	name = strings.TrimSpace(name)
	if i := strings.LastIndexAny(name, `/\`); i >= 0 {
		name = name[i+1:]
	}
	if name == "" {
		return "upload"
	}
	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '.', r == '-', r == '_':
			b.WriteRune(r)
		default:
			b.WriteByte('-')
		}
	}
	return b.String()
}
