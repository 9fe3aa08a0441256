package usecase_test

import (
	"context"
	"errors"
	"testing"

	"app/internal/domain/model"
	repo "app/internal/repository"
	"app/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestItemUsecase_ListItems(t *testing.T) {
	items := new(ItemRepoMock)
	uc := usecase.NewItemUsecase(items, nil)

	items.On("ListPublic", mock.Anything, repo.ItemListQuery{Page: 2, Limit: 8, Category: "S"}).
		Return([]model.Item{shirt()}, int64(9), nil)

	out, err := uc.ListItems(context.Background(), usecase.ListItemsInput{Page: 2, Limit: 8, Category: "S"})
	assert.NoError(t, err)
	assert.Equal(t, 1, len(out.Items))
	assert.Equal(t, int64(9), out.Total)
	assert.Equal(t, 2, out.Page)
}

func TestItemUsecase_ListItems_InvalidInputs(t *testing.T) {
	items := new(ItemRepoMock)
	uc := usecase.NewItemUsecase(items, nil)

	cases := []struct {
		name string
		in   usecase.ListItemsInput
		msg  string
	}{
		{"page zero", usecase.ListItemsInput{Page: 0, Limit: 8}, "invalid page"},
		{"limit zero", usecase.ListItemsInput{Page: 1, Limit: 0}, "invalid limit"},
		{"limit too large", usecase.ListItemsInput{Page: 1, Limit: 101}, "invalid limit"},
		{"unknown category", usecase.ListItemsInput{Page: 1, Limit: 8, Category: "Z"}, "invalid category"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := uc.ListItems(context.Background(), tc.in)
			assertErrContains(t, err, tc.msg)
		})
	}

	items.AssertNotCalled(t, "ListPublic", mock.Anything, mock.Anything)
}

func TestItemUsecase_GetItemDetail_CacheHit(t *testing.T) {
	items := new(ItemRepoMock)
	c := new(ItemCacheMock)
	uc := usecase.NewItemUsecase(items, c)

	c.On("Get", mock.Anything, "plain-shirt").Return(shirt(), true, nil)

	item, err := uc.GetItemDetail(context.Background(), "plain-shirt")
	assert.NoError(t, err)
	assert.Equal(t, "plain-shirt", item.Slug)

	//ヒット時はDBに行かない
	items.AssertNotCalled(t, "FindBySlug", mock.Anything, mock.Anything)
}

func TestItemUsecase_GetItemDetail_CacheMissFillsCache(t *testing.T) {
	items := new(ItemRepoMock)
	c := new(ItemCacheMock)
	uc := usecase.NewItemUsecase(items, c)

	c.On("Get", mock.Anything, "plain-shirt").Return(model.Item{}, false, nil)
	items.On("FindBySlug", mock.Anything, "plain-shirt").Return(shirt(), nil)
	c.On("Set", mock.Anything, shirt()).Return(nil)

	item, err := uc.GetItemDetail(context.Background(), "plain-shirt")
	assert.NoError(t, err)
	assert.Equal(t, int64(1), item.ID)

	c.AssertExpectations(t)
}

func TestItemUsecase_GetItemDetail_CacheFailureFallsThrough(t *testing.T) {
	items := new(ItemRepoMock)
	c := new(ItemCacheMock)
	uc := usecase.NewItemUsecase(items, c)

	c.On("Get", mock.Anything, "plain-shirt").Return(model.Item{}, false, errors.New("redis down"))
	items.On("FindBySlug", mock.Anything, "plain-shirt").Return(shirt(), nil)
	c.On("Set", mock.Anything, mock.Anything).Return(errors.New("redis down"))

	item, err := uc.GetItemDetail(context.Background(), "plain-shirt")
	assert.NoError(t, err)
	assert.Equal(t, "plain-shirt", item.Slug)
}

func TestItemUsecase_GetItemDetail_NotFound(t *testing.T) {
	items := new(ItemRepoMock)
	uc := usecase.NewItemUsecase(items, nil)

	items.On("FindBySlug", mock.Anything, "nope").Return(model.Item{}, repo.ErrNotFound)

	_, err := uc.GetItemDetail(context.Background(), "nope")
	assertErrContains(t, err, "not found")
}

func TestItemUsecase_GetItemDetail_EmptySlug(t *testing.T) {
	items := new(ItemRepoMock)
	uc := usecase.NewItemUsecase(items, nil)

	_, err := uc.GetItemDetail(context.Background(), "")
	assertErrContains(t, err, "invalid slug")
}
