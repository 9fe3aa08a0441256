package usecase

import (
	"context"
	"net/http"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"golang.org/x/sync/singleflight"
)

// 商品詳細のキャッシュ。実装はredis、無効時はnil。
type ItemCache interface {
	Get(ctx context.Context, slug string) (model.Item, bool, error)
	Set(ctx context.Context, item model.Item) error
}

type ItemUsecase struct {
	items repo.ItemRepository
	cache ItemCache
	sf    singleflight.Group
}

// DI（cacheはnil可）
func NewItemUsecase(items repo.ItemRepository, cache ItemCache) *ItemUsecase {
	return &ItemUsecase{items: items, cache: cache}
}

type ListItemsInput struct {
	Page     int
	Limit    int
	Category string
}

type ItemListOutput struct {
	Items []model.Item `json:"items"`
	Total int64        `json:"total"`
	Page  int          `json:"page"`
	Limit int          `json:"limit"`
}

func (u *ItemUsecase) ListItems(ctx context.Context, in ListItemsInput) (ItemListOutput, error) {
	if in.Page < 1 {
		return ItemListOutput{}, NewHTTPError(http.StatusBadRequest, "invalid page")
	}
	if in.Limit < 1 || in.Limit > 100 {
		return ItemListOutput{}, NewHTTPError(http.StatusBadRequest, "invalid limit")
	}
	switch model.ItemCategory(in.Category) {
	case "", model.CategoryShirt, model.CategorySport, model.CategoryOutwear:
	default:
		return ItemListOutput{}, NewHTTPError(http.StatusBadRequest, "invalid category")
	}

	items, total, err := u.items.ListPublic(ctx, repo.ItemListQuery{
		Page:     in.Page,
		Limit:    in.Limit,
		Category: in.Category,
	})
	if err != nil {
		return ItemListOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return ItemListOutput{
		Items: items,
		Total: total,
		Page:  in.Page,
		Limit: in.Limit,
	}, nil
}

// GetItemDetail はslugで商品を返す。cache-aside＋singleflight。
func (u *ItemUsecase) GetItemDetail(ctx context.Context, slug string) (model.Item, error) {
	if slug == "" {
		return model.Item{}, NewHTTPError(http.StatusBadRequest, "invalid slug")
	}

	if u.cache != nil {
		if item, ok, err := u.cache.Get(ctx, slug); err == nil && ok {
			return item, nil
		}
		//キャッシュ障害は無視してDBへ
	}

	//同じslugへの同時読みは1回のDBアクセスに畳む
	v, err, _ := u.sf.Do(slug, func() (interface{}, error) {
		item, err := u.items.FindBySlug(ctx, slug)
		if err != nil {
			return nil, err
		}
		if u.cache != nil {
			_ = u.cache.Set(ctx, item)
		}
		return item, nil
	})

	if err == repo.ErrNotFound {
		return model.Item{}, NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return model.Item{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return v.(model.Item), nil
}
