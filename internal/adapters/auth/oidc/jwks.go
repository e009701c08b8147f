package oidc

import (
	"context"
	"strings"
	"time"

	"barkbuddy/internal/platform/httpclient"
	"barkbuddy/internal/platform/logger"

	"github.com/MicahParks/keyfunc/v3"
	"github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"
)

const defaultKeysRefresh = 10 * time.Minute

var ErrJWKSURLEmpty = errors.New("jwks url is empty")

type KeysOptions struct {
	URL     string
	HTTP    *httpclient.Client // opcional
	Refresh time.Duration      // intervalo de refresh en segundo plano
	Log     logger.Logger
}

// NewKeys descarga el JWKS del issuer y lo refresca en segundo plano hasta que ctx se cancela.
// Un refresh fallido solo se loguea: se siguen usando las llaves ya cargadas.
// Un kid desconocido dispara un refetch con rate limit.
func NewKeys(ctx context.Context, opts KeysOptions) (jwt.Keyfunc, error) {
	u := strings.TrimSpace(opts.URL)
	if u == "" {
		return nil, ErrJWKSURLEmpty
	}
	if opts.HTTP == nil {
		opts.HTTP = httpclient.New(5 * time.Second)
	}
	if opts.Refresh <= 0 {
		opts.Refresh = defaultKeysRefresh
	}
	log := opts.Log
	if log == nil {
		log = logger.Nop()
	}

	kf, err := keyfunc.NewDefaultOverrideCtx(ctx, []string{u}, keyfunc.Override{
		Client:          opts.HTTP.HTTP,
		HTTPTimeout:     opts.HTTP.HTTP.Timeout,
		RefreshInterval: opts.Refresh,
		RefreshErrorHandlerFunc: func(u string) func(ctx context.Context, err error) {
			return func(_ context.Context, err error) {
				log.Warn("jwks refresh failed, keeping cached keys", map[string]any{
					"url":   u,
					"error": err,
				})
			}
		},
	})
	if err != nil {
		return nil, errors.Wrap(err, "init jwks")
	}
	return kf.Keyfunc, nil
}
