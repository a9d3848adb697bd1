package services

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quickbite/entity"
	"quickbite/pkg/apperr"
	"quickbite/repository"
)

func newReviewService(t *testing.T) (*ReviewService, *testFixtures) {
	t.Helper()
	db := newTestDB(t)
	fx := &testFixtures{
		db:   db,
		user: seedUser(t, db, "eater@example.com", entity.RoleUser),
		rest: seedRestaurant(t, db, "Spice Route"),
	}
	svc := NewReviewService(db, repository.NewReviewRepository(db), repository.NewRestaurantRepository(db))
	return svc, fx
}

func restaurantRating(t *testing.T, fx *testFixtures) float64 {
	t.Helper()
	var r entity.Restaurant
	require.NoError(t, fx.db.First(&r, fx.rest.ID).Error)
	return r.Rating
}

func TestReviewAggregateRating(t *testing.T) {
	svc, fx := newReviewService(t)
	second := seedUser(t, fx.db, "second@example.com", entity.RoleUser)

	_, err := svc.Create(fx.user.ID, &ReviewIn{RestaurantID: fx.rest.ID, Rating: 5, Comment: "great"})
	require.NoError(t, err)
	assert.Equal(t, 5.0, restaurantRating(t, fx))

	review, err := svc.Create(second.ID, &ReviewIn{RestaurantID: fx.rest.ID, Rating: 2, Comment: "meh"})
	require.NoError(t, err)
	assert.Equal(t, 3.5, restaurantRating(t, fx))

	_, err = svc.Update(review.ID, second.ID, 4, "better on a second visit")
	require.NoError(t, err)
	assert.Equal(t, 4.5, restaurantRating(t, fx))

	require.NoError(t, svc.Delete(review.ID, second.ID))
	assert.Equal(t, 5.0, restaurantRating(t, fx))
}

func TestReviewOwnership(t *testing.T) {
	svc, fx := newReviewService(t)
	stranger := seedUser(t, fx.db, "stranger@example.com", entity.RoleUser)

	review, err := svc.Create(fx.user.ID, &ReviewIn{RestaurantID: fx.rest.ID, Rating: 4})
	require.NoError(t, err)

	_, err = svc.Update(review.ID, stranger.ID, 1, "sabotage")
	assert.True(t, apperr.Is(err, apperr.CodeNotFound))

	err = svc.Delete(review.ID, stranger.ID)
	assert.True(t, apperr.Is(err, apperr.CodeNotFound))
}

func TestReviewValidation(t *testing.T) {
	svc, fx := newReviewService(t)

	_, err := svc.Create(fx.user.ID, &ReviewIn{RestaurantID: 9999, Rating: 4})
	assert.True(t, apperr.Is(err, apperr.CodeNotFound))

	review, err := svc.Create(fx.user.ID, &ReviewIn{RestaurantID: fx.rest.ID, Rating: 3})
	require.NoError(t, err)

	_, err = svc.Update(review.ID, fx.user.ID, 6, "")
	assert.True(t, apperr.Is(err, apperr.CodeValidation))
}

func TestReviewList(t *testing.T) {
	svc, fx := newReviewService(t)
	for i := 0; i < 3; i++ {
		u := seedUser(t, fx.db, fmt.Sprintf("user%d@example.com", i), entity.RoleUser)
		_, err := svc.Create(u.ID, &ReviewIn{RestaurantID: fx.rest.ID, Rating: i + 3})
		require.NoError(t, err)
	}

	out, err := svc.ListByRestaurant(fx.rest.ID, 1, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(3), out.Pagination.Total)
	assert.Equal(t, 2, out.Pagination.Pages)
	assert.Len(t, out.Reviews, 2)
}
