package locations

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testRepo struct {
	items []Location
	dogs  map[string]bool
}

func (r *testRepo) Create(_ context.Context, l Location) error {
	if !r.dogs[l.DogID] {
		return ErrDogNotFound
	}
	r.items = append(r.items, l)
	return nil
}

func (r *testRepo) ListByDog(_ context.Context, dogID string) ([]Location, error) {
	out := make([]Location, 0)
	for _, l := range r.items {
		if l.DogID == dogID {
			out = append(out, l)
		}
	}
	return out, nil
}

func f(v float64) *float64 { return &v }

func newTestService() (*Service, *testRepo) {
	repo := &testRepo{dogs: map[string]bool{"dog-1": true}}
	svc := NewService(repo)
	svc.now = func() time.Time { return time.Date(2025, 5, 1, 12, 0, 0, 0, time.UTC) }
	return svc, repo
}

func TestAdd_ValidatesRanges(t *testing.T) {
	svc, repo := newTestService()
	ctx := context.Background()

	cases := map[string]AddInput{
		"lat too high": {Latitude: f(90.1), Longitude: f(0)},
		"lon too low":  {Latitude: f(0), Longitude: f(-180.01)},
		"missing lat":  {Longitude: f(0)},
		"missing lon":  {Latitude: f(0)},
		"missing both": {},
	}
	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := svc.Add(ctx, "dog-1", in)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
	assert.Empty(t, repo.items)

	l, err := svc.Add(ctx, "dog-1", AddInput{Latitude: f(-90), Longitude: f(180)})
	require.NoError(t, err)
	assert.Equal(t, svc.now(), l.Timestamp, "timestamp defaults to now")
	assert.NotEmpty(t, l.ID)
}

func TestAdd_UnknownDog(t *testing.T) {
	svc, _ := newTestService()
	_, err := svc.Add(context.Background(), "ghost", AddInput{Latitude: f(1), Longitude: f(1)})
	assert.ErrorIs(t, err, ErrDogNotFound)
}

func TestListForDog_CreationOrder(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()
	clock := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return clock }

	for _, lat := range []float64{5, 1, 3} {
		clock = clock.Add(time.Minute)
		_, err := svc.Add(ctx, "dog-1", AddInput{Latitude: f(lat), Longitude: f(0)})
		require.NoError(t, err)
	}

	items, err := svc.ListForDog(ctx, "dog-1")
	require.NoError(t, err)
	require.Len(t, items, 3)
	assert.Equal(t, []float64{5, 1, 3}, []float64{items[0].Latitude, items[1].Latitude, items[2].Latitude})
	assert.True(t, items[0].Timestamp.Before(items[2].Timestamp), "timestamp is the creation time")
}

func TestRecord_SatisfiesSightingRecorder(t *testing.T) {
	svc, repo := newTestService()
	require.NoError(t, svc.Record(context.Background(), "dog-1", 40.4, -3.7))
	require.Len(t, repo.items, 1)
	assert.Equal(t, 40.4, repo.items[0].Latitude)

	assert.ErrorIs(t, svc.Record(context.Background(), "dog-1", 100, 0), ErrInvalidInput)
}

func TestTrail_EncodesPolyline(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	empty, err := svc.Trail(ctx, "dog-1")
	require.NoError(t, err)
	assert.Equal(t, 0, empty.Points)
	assert.Nil(t, empty.First)

	// Ejemplo de la documentación del algoritmo de Google.
	pts := [][2]float64{{38.5, -120.2}, {40.7, -120.95}, {43.252, -126.453}}
	for _, p := range pts {
		_, err := svc.Add(ctx, "dog-1", AddInput{Latitude: f(p[0]), Longitude: f(p[1])})
		require.NoError(t, err)
	}

	tr, err := svc.Trail(ctx, "dog-1")
	require.NoError(t, err)
	assert.Equal(t, "_p~iF~ps|U_ulLnnqC_mqNvxq`@", tr.Polyline)
	assert.Equal(t, 3, tr.Points)
	assert.Equal(t, 38.5, tr.First.Latitude)
	assert.Equal(t, 43.252, tr.Last.Latitude)
}
