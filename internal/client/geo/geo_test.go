package geo

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"barkbuddy/internal/platform/httpclient"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type slowLocator struct{}

func (slowLocator) Locate(ctx context.Context) (Coords, error) {
	<-ctx.Done()
	return Coords{}, ctx.Err()
}

func TestLocate_Fixed(t *testing.T) {
	c, ok, err := Locate(context.Background(), Fixed{Latitude: 1.5, Longitude: -2}, time.Second)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, Coords{Latitude: 1.5, Longitude: -2}, c)
}

func TestLocate_TimeoutIsTolerated(t *testing.T) {
	start := time.Now()
	_, ok, err := Locate(context.Background(), slowLocator{}, 20*time.Millisecond)
	assert.False(t, ok)
	assert.ErrorIs(t, err, ErrUnavailable)
	assert.Less(t, time.Since(start), time.Second)
}

func TestLocate_RejectsOutOfRange(t *testing.T) {
	_, ok, err := Locate(context.Background(), Fixed{Latitude: 120}, time.Second)
	assert.False(t, ok)
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestIPLocator(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"ip":"1.2.3.4","latitude":-34.61,"longitude":-58.38}`))
	}))
	defer ts.Close()

	c, ok, err := Locate(context.Background(), NewIPLocator(httpclient.New(time.Second), ts.URL), time.Second)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, -34.61, c.Latitude)
	assert.Equal(t, -58.38, c.Longitude)
}

func TestIPLocator_MissingCoordinates(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"error":true,"reason":"RateLimited"}`))
	}))
	defer ts.Close()

	_, ok, err := Locate(context.Background(), NewIPLocator(nil, ts.URL), time.Second)
	assert.False(t, ok)
	assert.ErrorIs(t, err, ErrUnavailable)
}
