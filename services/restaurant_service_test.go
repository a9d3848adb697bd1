package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quickbite/entity"
	"quickbite/pkg/apperr"
	"quickbite/repository"
)

func newRestaurantService(t *testing.T) (*RestaurantService, *testFixtures) {
	t.Helper()
	db := newTestDB(t)
	fx := &testFixtures{
		db:   db,
		rest: seedRestaurant(t, db, "Spice Route"),
	}
	// nil cache: every read goes to the database.
	svc := NewRestaurantService(db, repository.NewRestaurantRepository(db), nil)
	return svc, fx
}

func TestRestaurantList(t *testing.T) {
	svc, fx := newRestaurantService(t)
	closed := seedRestaurant(t, fx.db, "Noodle Bar")
	require.NoError(t, fx.db.Model(&entity.Restaurant{}).
		Where("id = ?", closed.ID).Update("is_open", false).Error)

	t.Run("search matches name case-insensitively", func(t *testing.T) {
		out, err := svc.List("spice", false, 1, 20)
		require.NoError(t, err)
		require.Len(t, out.Restaurants, 1)
		assert.Equal(t, "Spice Route", out.Restaurants[0].Name)
	})

	t.Run("openOnly hides closed restaurants", func(t *testing.T) {
		out, err := svc.List("", true, 1, 20)
		require.NoError(t, err)
		require.Len(t, out.Restaurants, 1)
		assert.Equal(t, fx.rest.ID, out.Restaurants[0].ID)
	})
}

func TestRestaurantOwnership(t *testing.T) {
	svc, fx := newRestaurantService(t)
	ctx := context.Background()
	stranger := seedUser(t, fx.db, "stranger@example.com", entity.RoleRestaurantOwner)

	_, err := svc.Update(ctx, fx.rest.ID, stranger.ID, false, &RestaurantIn{Name: "Hijacked"})
	assert.True(t, apperr.Is(err, apperr.CodeForbidden))

	_, err = svc.AddMenuItem(ctx, fx.rest.ID, stranger.ID, false, &MenuItemIn{Name: "Nope", Price: 100})
	assert.True(t, apperr.Is(err, apperr.CodeForbidden))

	// Admins bypass the ownership check.
	admin := seedUser(t, fx.db, "admin@example.com", entity.RoleAdmin)
	got, err := svc.Update(ctx, fx.rest.ID, admin.ID, true, &RestaurantIn{Name: "Renamed", CuisineTypes: "indian"})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", got.Name)
}

func TestMenuItemEditKeepsID(t *testing.T) {
	svc, fx := newRestaurantService(t)
	ctx := context.Background()
	item := fx.rest.Menu[0]

	updated, err := svc.UpdateMenuItem(ctx, fx.rest.ID, item.ID, fx.rest.OwnerID, false, &MenuItemIn{
		Name:  item.Name,
		Price: item.Price + 1000,
	})
	require.NoError(t, err)
	assert.Equal(t, item.ID, updated.ID)
	assert.Equal(t, item.Price+1000, updated.Price)
}

func TestDeleteMenuItemScopedToRestaurant(t *testing.T) {
	svc, fx := newRestaurantService(t)
	ctx := context.Background()
	other := seedRestaurant(t, fx.db, "Noodle Bar")

	// An item id from another restaurant must not be reachable.
	err := svc.DeleteMenuItem(ctx, fx.rest.ID, other.Menu[0].ID, fx.rest.OwnerID, false)
	assert.True(t, apperr.Is(err, apperr.CodeNotFound))

	require.NoError(t, svc.DeleteMenuItem(ctx, fx.rest.ID, fx.rest.Menu[0].ID, fx.rest.OwnerID, false))
}
