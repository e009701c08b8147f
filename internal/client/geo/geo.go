package geo

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"barkbuddy/internal/platform/httpclient"
)

const DefaultTimeout = 10 * time.Second

var ErrUnavailable = errors.New("location unavailable")

type Coords struct {
	Latitude  float64
	Longitude float64
}

// Locator obtiene la posición actual del usuario.
type Locator interface {
	Locate(ctx context.Context) (Coords, error)
}

// Locate hace una sola consulta con timeout. Si falla devuelve ok=false y el error
// para que el llamador lo informe; el flujo sigue sin coordenadas.
func Locate(ctx context.Context, l Locator, timeout time.Duration) (Coords, bool, error) {
	if l == nil {
		return Coords{}, false, ErrUnavailable
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	type result struct {
		c   Coords
		err error
	}
	ch := make(chan result, 1)
	go func() {
		c, err := l.Locate(ctx)
		ch <- result{c, err}
	}()

	select {
	case r := <-ch:
		if r.err != nil {
			if !errors.Is(r.err, ErrUnavailable) {
				r.err = fmt.Errorf("%w: %v", ErrUnavailable, r.err)
			}
			return Coords{}, false, r.err
		}
		if !valid(r.c) {
			return Coords{}, false, fmt.Errorf("%w: coordinates out of range", ErrUnavailable)
		}
		return r.c, true, nil
	case <-ctx.Done():
		return Coords{}, false, fmt.Errorf("%w: %v", ErrUnavailable, ctx.Err())
	}
}

func valid(c Coords) bool {
	return c.Latitude >= -90 && c.Latitude <= 90 && c.Longitude >= -180 && c.Longitude <= 180
}

// Fixed devuelve siempre las mismas coordenadas (flags --lat/--lng).
type Fixed Coords

func (f Fixed) Locate(context.Context) (Coords, error) { return Coords(f), nil }

const DefaultIPLookupURL = "https://ipapi.co/json/"

// IPLocator estima la posición por IP pública.
type IPLocator struct {
	client *httpclient.Client
	url    string
}

func NewIPLocator(client *httpclient.Client, url string) *IPLocator {
	if client == nil {
		client = httpclient.New(DefaultTimeout)
	}
	if url == "" {
		url = DefaultIPLookupURL
	}
	return &IPLocator{client: client, url: url}
}

func (l *IPLocator) Locate(ctx context.Context) (Coords, error) {
	var out struct {
		Latitude  *float64 `json:"latitude"`
		Longitude *float64 `json:"longitude"`
	}
	if err := l.client.DoJSON(ctx, http.MethodGet, l.url, nil, nil, &out); err != nil {
		return Coords{}, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if out.Latitude == nil || out.Longitude == nil {
		return Coords{}, fmt.Errorf("%w: lookup returned no coordinates", ErrUnavailable)
	}
	return Coords{Latitude: *out.Latitude, Longitude: *out.Longitude}, nil
}
