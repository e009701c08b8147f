package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"barkbuddy/internal/platform/httpclient"

	"github.com/google/go-querystring/query"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
)

var (
	ErrUnauthorized = errors.New("unauthorized")
	ErrNotFound     = errors.New("not found")
)

// OAuthConfig habilita el grant client_credentials (p.ej. Auth0 machine-to-machine).
type OAuthConfig struct {
	ClientID     string
	ClientSecret string
	TokenURL     string
	Audience     string
	Scopes       []string
}

type Options struct {
	BaseURL string
	Timeout time.Duration

	// Autenticación, en orden de prioridad: Token estático, OAuth, DebugUserID (solo dev).
	Token       string
	OAuth       *OAuthConfig
	DebugUserID string
}

// Client es el cliente REST tipado de BarkBuddy.
type Client struct {
	http      *httpclient.Client
	tokens    oauth2.TokenSource
	debugUser string
}

func New(ctx context.Context, opts Options) (*Client, error) {
	hc, err := httpclient.NewWithBaseURL(opts.BaseURL, opts.Timeout)
	if err != nil {
		return nil, err
	}
	if hc.BaseURL == "" {
		return nil, errors.New("api: base url is required")
	}

	c := &Client{http: hc, debugUser: strings.TrimSpace(opts.DebugUserID)}

	switch {
	case strings.TrimSpace(opts.Token) != "":
		c.tokens = oauth2.StaticTokenSource(&oauth2.Token{AccessToken: strings.TrimSpace(opts.Token)})
	case opts.OAuth != nil:
		cc := clientcredentials.Config{
			ClientID:     opts.OAuth.ClientID,
			ClientSecret: opts.OAuth.ClientSecret,
			TokenURL:     opts.OAuth.TokenURL,
			Scopes:       opts.OAuth.Scopes,
		}
		if opts.OAuth.Audience != "" {
			cc.EndpointParams = url.Values{"audience": {opts.OAuth.Audience}}
		}
		// cachea el token y pide uno nuevo solo cuando vence
		c.tokens = cc.TokenSource(ctx)
	}
	return c, nil
}

func (c *Client) ListDogs(ctx context.Context) ([]Dog, error) {
	var out []Dog
	err := c.doJSON(ctx, http.MethodGet, "/api/dogs", nil, &out)
	return out, err
}

func (c *Client) MyDogs(ctx context.Context) ([]Dog, error) {
	var out []Dog
	err := c.doJSON(ctx, http.MethodGet, "/api/dogs/my-dogs", nil, &out)
	return out, err
}

func (c *Client) CountDogs(ctx context.Context) (int, error) {
	var out struct {
		Count int `json:"count"`
	}
	if err := c.doJSON(ctx, http.MethodGet, "/api/dogs/count", nil, &out); err != nil {
		return 0, err
	}
	return out.Count, nil
}

func (c *Client) GetDog(ctx context.Context, id string) (Dog, error) {
	var out Dog
	err := c.doJSON(ctx, http.MethodGet, "/api/dogs/"+url.PathEscape(id), nil, &out)
	return out, err
}

// CreateDog envía el formulario como multipart (con imagen opcional).
func (c *Client) CreateDog(ctx context.Context, in DogInput, img *Image) (Dog, error) {
	var out Dog
	err := c.doForm(ctx, http.MethodPost, "/api/dogs", in, img, &out)
	return out, err
}

func (c *Client) UpdateDog(ctx context.Context, id string, in DogInput, img *Image) (Dog, error) {
	var out Dog
	err := c.doForm(ctx, http.MethodPut, "/api/dogs/"+url.PathEscape(id), in, img, &out)
	return out, err
}

func (c *Client) DeleteDog(ctx context.Context, id string) error {
	return c.doJSON(ctx, http.MethodDelete, "/api/dogs/"+url.PathEscape(id), nil, nil)
}

func (c *Client) AddSighting(ctx context.Context, dogID string, latitude, longitude float64) (Location, error) {
	var out Location
	in := map[string]float64{"latitude": latitude, "longitude": longitude}
	err := c.doJSON(ctx, http.MethodPost, "/locations/"+url.PathEscape(dogID), in, &out)
	return out, err
}

func (c *Client) ListSightings(ctx context.Context, dogID string) ([]Location, error) {
	var out []Location
	err := c.doJSON(ctx, http.MethodGet, "/locations/"+url.PathEscape(dogID), nil, &out)
	return out, err
}

func (c *Client) Trail(ctx context.Context, dogID string) (Trail, error) {
	var out Trail
	err := c.doJSON(ctx, http.MethodGet, "/locations/"+url.PathEscape(dogID)+"/trail", nil, &out)
	return out, err
}

func (c *Client) Breeds(ctx context.Context) ([]Breed, error) {
	var out []Breed
	err := c.doJSON(ctx, http.MethodGet, "/api/breeds", nil, &out)
	return out, err
}

func (c *Client) BreedNames(ctx context.Context) ([]string, error) {
	var out []string
	err := c.doJSON(ctx, http.MethodGet, "/api/breeds/names", nil, &out)
	return out, err
}

func (c *Client) doJSON(ctx context.Context, method, path string, in, out any) error {
	headers, err := c.authHeaders()
	if err != nil {
		return err
	}
	return mapError(c.http.DoJSON(ctx, method, path, headers, in, out))
}

func (c *Client) doForm(ctx context.Context, method, path string, in DogInput, img *Image, out any) error {
	fields, err := query.Values(in)
	if err != nil {
		return fmt.Errorf("api: encode form: %w", err)
	}
	headers, err := c.authHeaders()
	if err != nil {
		return err
	}

	var files []httpclient.FilePart
	if img != nil {
		files = append(files, httpclient.FilePart{
			Field:       "image",
			Filename:    img.Filename,
			ContentType: img.ContentType,
			Data:        img.Data,
		})
	}
	return mapError(c.http.DoMultipart(ctx, method, path, headers, fields, files, out))
}

func (c *Client) authHeaders() (map[string]string, error) {
	if c.tokens != nil {
		tok, err := c.tokens.Token()
		if err != nil {
			return nil, fmt.Errorf("api: get token: %w", err)
		}
		return map[string]string{"Authorization": "Bearer " + tok.AccessToken}, nil
	}
	if c.debugUser != "" {
		return map[string]string{"X-Debug-User-ID": c.debugUser}, nil
	}
	return nil, nil
}

// mapError traduce 401/404 a sentinels; el mensaje del server se conserva.
func mapError(err error) error {
	if err == nil {
		return nil
	}
	var he *httpclient.HTTPError
	if !errors.As(err, &he) {
		return err
	}
	switch he.StatusCode {
	case http.StatusUnauthorized:
		return fmt.Errorf("%w: %s", ErrUnauthorized, he.Message())
	case http.StatusNotFound:
		return fmt.Errorf("%w: %s", ErrNotFound, he.Message())
	default:
		return fmt.Errorf("api: %s (status %d)", he.Message(), he.StatusCode)
	}
}

// String, Int, Bool y Float arman punteros para DogInput.
func String(v string) *string  { return &v }
func Int(v int) *int           { return &v }
func Bool(v bool) *bool        { return &v }
func Float(v float64) *float64 { return &v }
