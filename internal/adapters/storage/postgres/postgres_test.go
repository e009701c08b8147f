package postgres

import (
	"context"
	"os"
	"testing"
	"time"

	"barkbuddy/internal/domain/dogs"
	"barkbuddy/internal/domain/locations"
	"barkbuddy/internal/ports/images"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLooksLikeUUID(t *testing.T) {
	assert.True(t, looksLikeUUID(uuid.NewString()))
	assert.True(t, looksLikeUUID("6F9619FF-8B86-D011-B42D-00C04FC964FF"))
	assert.False(t, looksLikeUUID("dog-1"))
	assert.False(t, looksLikeUUID("6f9619ff-8b86-d011-b42d-00c04fc964fz"))
	assert.False(t, looksLikeUUID("6f9619ff08b86-d011-b42d-00c04fc964ff"))
}

func TestImageColumns(t *testing.T) {
	url, data, ct := imageColumns(images.Ref{})
	assert.False(t, url.Valid)
	assert.Nil(t, data)
	assert.False(t, ct.Valid)

	url, data, ct = imageColumns(images.Ref{URL: "https://x/y.png", ContentType: "image/png"})
	assert.Equal(t, "https://x/y.png", url.String)
	assert.Nil(t, data)
	assert.Equal(t, "image/png", ct.String)

	url, data, _ = imageColumns(images.Ref{Data: []byte{1}, ContentType: "image/png"})
	assert.False(t, url.Valid)
	assert.Equal(t, []byte{1}, data)
}

// Integración contra un Postgres real: BARKBUDDY_TEST_DSN=postgres://... go test ./...
func TestRepos_Integration(t *testing.T) {
	dsn := os.Getenv("BARKBUDDY_TEST_DSN")
	if dsn == "" {
		t.Skip("BARKBUDDY_TEST_DSN not set")
	}
	ctx := context.Background()

	db, err := Open(ctx, dsn, DefaultPoolOptions())
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, Migrate(ctx, db))
	require.NoError(t, Migrate(ctx, db), "schema must be idempotent")

	dr := NewDogsRepo(db)
	lr := NewLocationsRepo(db)

	now := time.Now().UTC().Truncate(time.Microsecond)
	owner := "it-" + uuid.NewString()
	d := dogs.Dog{
		ID:         uuid.NewString(),
		UserID:     owner,
		Name:       "Rex",
		Age:        3,
		Gender:     "Male",
		Color:      "Brown",
		Owner:      dogs.Unknown,
		Breed:      "Labrador",
		Size:       dogs.SizeMedium,
		IsFriendly: true,
		Image:      images.Ref{Data: []byte("img"), ContentType: "image/png"},
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	require.NoError(t, dr.Create(ctx, d))

	got, err := dr.GetByID(ctx, d.ID, owner)
	require.NoError(t, err)
	assert.Equal(t, d.Name, got.Name)
	assert.Equal(t, d.Size, got.Size)
	assert.Equal(t, d.Image.Data, got.Image.Data)

	_, err = dr.GetByID(ctx, d.ID, "someone-else")
	assert.ErrorIs(t, err, dogs.ErrNotFound)

	require.NoError(t, lr.Create(ctx, locations.Location{
		ID:        uuid.NewString(),
		DogID:     d.ID,
		Latitude:  1,
		Longitude: 2,
		Timestamp: now,
		CreatedAt: now,
		UpdatedAt: now,
	}))

	require.NoError(t, dr.Delete(ctx, d.ID, owner))
	items, err := lr.ListByDog(ctx, d.ID)
	require.NoError(t, err)
	assert.Empty(t, items, "locations cascade with the dog")

	err = lr.Create(ctx, locations.Location{ID: uuid.NewString(), DogID: d.ID, Timestamp: now, CreatedAt: now, UpdatedAt: now})
	assert.ErrorIs(t, err, locations.ErrDogNotFound)
}
