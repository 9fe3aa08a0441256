package repository

import (
	"app/internal/domain/model"
	"context"
	"errors"
)

var ErrNotFound = errors.New("not found")

// 一覧検索
type ItemListQuery struct {
	Page     int
	Limit    int
	Category string
}

// 商品カタログの読み取りだけを約束。書き込みはこの層の外。
type ItemRepository interface {
	ListPublic(ctx context.Context, q ItemListQuery) ([]model.Item, int64, error)
	FindBySlug(ctx context.Context, slug string) (model.Item, error)
}
