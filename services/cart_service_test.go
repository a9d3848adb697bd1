package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quickbite/entity"
	"quickbite/pkg/apperr"
	"quickbite/repository"
)

func newCartService(t *testing.T) (*CartService, *testFixtures) {
	t.Helper()
	db := newTestDB(t)
	fx := &testFixtures{
		db:   db,
		user: seedUser(t, db, "eater@example.com", entity.RoleUser),
		rest: seedRestaurant(t, db, "Spice Route"),
	}
	svc := NewCartService(db, repository.NewCartRepository(db), repository.NewRestaurantRepository(db))
	return svc, fx
}

func TestCartAdd(t *testing.T) {
	t.Run("creates cart and computes total from menu prices", func(t *testing.T) {
		svc, fx := newCartService(t)
		item := fx.rest.Menu[0]

		cart, err := svc.Add(fx.user.ID, &AddToCartIn{RestaurantID: fx.rest.ID, MenuItemID: item.ID, Quantity: 2})
		require.NoError(t, err)
		require.NotNil(t, cart)
		require.Len(t, cart.Items, 1)
		assert.Equal(t, 2, cart.Items[0].Quantity)
		assert.Equal(t, 2*item.Price, cart.TotalAmount)
	})

	t.Run("merges quantity for an item already in the cart", func(t *testing.T) {
		svc, fx := newCartService(t)
		item := fx.rest.Menu[0]

		_, err := svc.Add(fx.user.ID, &AddToCartIn{RestaurantID: fx.rest.ID, MenuItemID: item.ID, Quantity: 1})
		require.NoError(t, err)
		cart, err := svc.Add(fx.user.ID, &AddToCartIn{RestaurantID: fx.rest.ID, MenuItemID: item.ID, Quantity: 3})
		require.NoError(t, err)

		require.Len(t, cart.Items, 1)
		assert.Equal(t, 4, cart.Items[0].Quantity)
		assert.Equal(t, 4*item.Price, cart.TotalAmount)
	})

	t.Run("sums across distinct lines", func(t *testing.T) {
		svc, fx := newCartService(t)
		a, b := fx.rest.Menu[0], fx.rest.Menu[1]

		_, err := svc.Add(fx.user.ID, &AddToCartIn{RestaurantID: fx.rest.ID, MenuItemID: a.ID, Quantity: 2})
		require.NoError(t, err)
		cart, err := svc.Add(fx.user.ID, &AddToCartIn{RestaurantID: fx.rest.ID, MenuItemID: b.ID, Quantity: 1})
		require.NoError(t, err)

		require.Len(t, cart.Items, 2)
		assert.Equal(t, 2*a.Price+b.Price, cart.TotalAmount)
	})

	t.Run("switching restaurants discards the previous cart", func(t *testing.T) {
		svc, fx := newCartService(t)
		other := seedRestaurant(t, fx.db, "Noodle Bar")

		_, err := svc.Add(fx.user.ID, &AddToCartIn{RestaurantID: fx.rest.ID, MenuItemID: fx.rest.Menu[0].ID, Quantity: 2})
		require.NoError(t, err)

		cart, err := svc.Add(fx.user.ID, &AddToCartIn{RestaurantID: other.ID, MenuItemID: other.Menu[0].ID, Quantity: 1})
		require.NoError(t, err)

		assert.Equal(t, other.ID, cart.RestaurantID)
		require.Len(t, cart.Items, 1)
		assert.Equal(t, other.Menu[0].ID, cart.Items[0].MenuItemID)
		assert.Equal(t, other.Menu[0].Price, cart.TotalAmount)
	})

	t.Run("rejects unknown restaurant and menu item", func(t *testing.T) {
		svc, fx := newCartService(t)

		_, err := svc.Add(fx.user.ID, &AddToCartIn{RestaurantID: 9999, MenuItemID: 1, Quantity: 1})
		assert.True(t, apperr.Is(err, apperr.CodeNotFound))

		_, err = svc.Add(fx.user.ID, &AddToCartIn{RestaurantID: fx.rest.ID, MenuItemID: 9999, Quantity: 1})
		assert.True(t, apperr.Is(err, apperr.CodeNotFound))
	})
}

func TestCartUpdateItem(t *testing.T) {
	t.Run("reprices against the live menu", func(t *testing.T) {
		svc, fx := newCartService(t)
		item := fx.rest.Menu[0]

		_, err := svc.Add(fx.user.ID, &AddToCartIn{RestaurantID: fx.rest.ID, MenuItemID: item.ID, Quantity: 1})
		require.NoError(t, err)

		// Owner raises the price after the item entered the cart.
		require.NoError(t, fx.db.Model(&entity.MenuItem{}).Where("id = ?", item.ID).Update("price", item.Price+5000).Error)

		cart, err := svc.UpdateItem(fx.user.ID, item.ID, 2)
		require.NoError(t, err)
		assert.Equal(t, 2*(item.Price+5000), cart.TotalAmount)
	})

	t.Run("quantity zero removes the line", func(t *testing.T) {
		svc, fx := newCartService(t)
		a, b := fx.rest.Menu[0], fx.rest.Menu[1]

		_, err := svc.Add(fx.user.ID, &AddToCartIn{RestaurantID: fx.rest.ID, MenuItemID: a.ID, Quantity: 1})
		require.NoError(t, err)
		_, err = svc.Add(fx.user.ID, &AddToCartIn{RestaurantID: fx.rest.ID, MenuItemID: b.ID, Quantity: 1})
		require.NoError(t, err)

		cart, err := svc.UpdateItem(fx.user.ID, a.ID, 0)
		require.NoError(t, err)
		require.Len(t, cart.Items, 1)
		assert.Equal(t, b.ID, cart.Items[0].MenuItemID)
		assert.Equal(t, b.Price, cart.TotalAmount)
	})

	t.Run("removing the last line deletes the cart", func(t *testing.T) {
		svc, fx := newCartService(t)
		item := fx.rest.Menu[0]

		_, err := svc.Add(fx.user.ID, &AddToCartIn{RestaurantID: fx.rest.ID, MenuItemID: item.ID, Quantity: 1})
		require.NoError(t, err)

		cart, err := svc.UpdateItem(fx.user.ID, item.ID, 0)
		require.NoError(t, err)
		assert.Nil(t, cart)

		got, err := svc.Get(fx.user.ID)
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("errors on missing cart and missing line", func(t *testing.T) {
		svc, fx := newCartService(t)

		_, err := svc.UpdateItem(fx.user.ID, fx.rest.Menu[0].ID, 1)
		assert.True(t, apperr.Is(err, apperr.CodeNotFound))

		_, err = svc.Add(fx.user.ID, &AddToCartIn{RestaurantID: fx.rest.ID, MenuItemID: fx.rest.Menu[0].ID, Quantity: 1})
		require.NoError(t, err)
		_, err = svc.UpdateItem(fx.user.ID, fx.rest.Menu[1].ID, 1)
		assert.True(t, apperr.Is(err, apperr.CodeNotFound))
	})

	t.Run("rejects negative quantity", func(t *testing.T) {
		svc, fx := newCartService(t)
		_, err := svc.UpdateItem(fx.user.ID, fx.rest.Menu[0].ID, -1)
		assert.True(t, apperr.Is(err, apperr.CodeValidation))
	})
}

func TestCartRemoveItem(t *testing.T) {
	t.Run("drops one line and reprices the rest", func(t *testing.T) {
		svc, fx := newCartService(t)
		a, b := fx.rest.Menu[0], fx.rest.Menu[1]

		_, err := svc.Add(fx.user.ID, &AddToCartIn{RestaurantID: fx.rest.ID, MenuItemID: a.ID, Quantity: 2})
		require.NoError(t, err)
		_, err = svc.Add(fx.user.ID, &AddToCartIn{RestaurantID: fx.rest.ID, MenuItemID: b.ID, Quantity: 1})
		require.NoError(t, err)

		cart, err := svc.RemoveItem(fx.user.ID, a.ID)
		require.NoError(t, err)
		require.Len(t, cart.Items, 1)
		assert.Equal(t, b.Price, cart.TotalAmount)
	})

	t.Run("removing the only line deletes the cart", func(t *testing.T) {
		svc, fx := newCartService(t)
		item := fx.rest.Menu[0]

		_, err := svc.Add(fx.user.ID, &AddToCartIn{RestaurantID: fx.rest.ID, MenuItemID: item.ID, Quantity: 1})
		require.NoError(t, err)

		cart, err := svc.RemoveItem(fx.user.ID, item.ID)
		require.NoError(t, err)
		assert.Nil(t, cart)
	})
}

func TestCartClear(t *testing.T) {
	svc, fx := newCartService(t)

	// Idempotent with no cart present.
	require.NoError(t, svc.Clear(fx.user.ID))

	_, err := svc.Add(fx.user.ID, &AddToCartIn{RestaurantID: fx.rest.ID, MenuItemID: fx.rest.Menu[0].ID, Quantity: 1})
	require.NoError(t, err)
	require.NoError(t, svc.Clear(fx.user.ID))

	got, err := svc.Get(fx.user.ID)
	require.NoError(t, err)
	assert.Nil(t, got)
}
