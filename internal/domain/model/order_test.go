package model_test

import (
	"testing"

	"app/internal/domain/model"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestItem_EffectivePrice(t *testing.T) {
	item := model.Item{Price: decimal.RequireFromString("20.00")}
	assert.True(t, item.EffectivePrice().Equal(decimal.RequireFromString("20.00")))

	sale := decimal.RequireFromString("14.50")
	item.DiscountPrice = &sale
	assert.True(t, item.EffectivePrice().Equal(sale))
}

func TestOrderItem_LineTotal(t *testing.T) {
	oi := model.OrderItem{
		Item:     model.Item{Price: decimal.RequireFromString("9.99")},
		Quantity: 3,
	}
	assert.True(t, oi.LineTotal().Equal(decimal.RequireFromString("29.97")))
}

func TestOrder_Total(t *testing.T) {
	sale := decimal.RequireFromString("14.50")
	order := model.Order{
		Items: []model.OrderItem{
			{Item: model.Item{Price: decimal.RequireFromString("9.99")}, Quantity: 2},
			{Item: model.Item{Price: decimal.RequireFromString("20.00"), DiscountPrice: &sale}, Quantity: 1},
		},
	}
	//2進浮動小数なら19.98+14.50で誤差が出る組み合わせ
	assert.True(t, order.Total().Equal(decimal.RequireFromString("34.48")))
}

func TestOrder_Total_Empty(t *testing.T) {
	assert.True(t, model.Order{}.Total().Equal(decimal.Zero))
}
