package usecase_test

import (
	"context"
	"testing"

	"app/internal/alert"
	"app/internal/domain/model"
	"app/internal/gateway"
	repo "app/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// =====================
// Mocks
// =====================

type ItemRepoMock struct{ mock.Mock }

func (m *ItemRepoMock) ListPublic(ctx context.Context, q repo.ItemListQuery) ([]model.Item, int64, error) {
	args := m.Called(ctx, q)
	items, _ := args.Get(0).([]model.Item)
	return items, args.Get(1).(int64), args.Error(2)
}

func (m *ItemRepoMock) FindBySlug(ctx context.Context, slug string) (model.Item, error) {
	args := m.Called(ctx, slug)
	item, _ := args.Get(0).(model.Item)
	return item, args.Error(1)
}

type OrderRepoMock struct{ mock.Mock }

func (m *OrderRepoMock) GetOrCreateActiveByUserID(ctx context.Context, userID int64) (model.Order, bool, error) {
	args := m.Called(ctx, userID)
	o, _ := args.Get(0).(model.Order)
	return o, args.Bool(1), args.Error(2)
}

func (m *OrderRepoMock) FindActiveByUserID(ctx context.Context, userID int64) (model.Order, error) {
	args := m.Called(ctx, userID)
	o, _ := args.Get(0).(model.Order)
	return o, args.Error(1)
}

func (m *OrderRepoMock) FindActiveByUserIDForUpdate(ctx context.Context, userID int64) (model.Order, error) {
	args := m.Called(ctx, userID)
	o, _ := args.Get(0).(model.Order)
	return o, args.Error(1)
}

func (m *OrderRepoMock) AddItem(ctx context.Context, orderID int64, orderItemID int64) error {
	args := m.Called(ctx, orderID, orderItemID)
	return args.Error(0)
}

func (m *OrderRepoMock) RemoveItem(ctx context.Context, orderID int64, orderItemID int64) error {
	args := m.Called(ctx, orderID, orderItemID)
	return args.Error(0)
}

func (m *OrderRepoMock) SetSettlementKey(ctx context.Context, orderID int64, key string) error {
	args := m.Called(ctx, orderID, key)
	return args.Error(0)
}

func (m *OrderRepoMock) MarkSettled(ctx context.Context, orderID int64, paymentID int64) error {
	args := m.Called(ctx, orderID, paymentID)
	return args.Error(0)
}

type OrderItemRepoMock struct{ mock.Mock }

func (m *OrderItemRepoMock) GetOrCreateActive(ctx context.Context, userID int64, itemID int64) (model.OrderItem, bool, error) {
	args := m.Called(ctx, userID, itemID)
	oi, _ := args.Get(0).(model.OrderItem)
	return oi, args.Bool(1), args.Error(2)
}

func (m *OrderItemRepoMock) UpdateQuantity(ctx context.Context, orderItemID int64, qty int64) error {
	args := m.Called(ctx, orderItemID, qty)
	return args.Error(0)
}

func (m *OrderItemRepoMock) DeleteByID(ctx context.Context, orderItemID int64) error {
	args := m.Called(ctx, orderItemID)
	return args.Error(0)
}

func (m *OrderItemRepoMock) MarkOrderedByIDs(ctx context.Context, orderItemIDs []int64) error {
	args := m.Called(ctx, orderItemIDs)
	return args.Error(0)
}

type PaymentRepoMock struct{ mock.Mock }

func (m *PaymentRepoMock) Create(ctx context.Context, p model.Payment) (int64, error) {
	args := m.Called(ctx, p)
	return args.Get(0).(int64), args.Error(1)
}

type AddressRepoMock struct{ mock.Mock }

func (m *AddressRepoMock) Create(ctx context.Context, a model.BillingAddress) (int64, error) {
	args := m.Called(ctx, a)
	return args.Get(0).(int64), args.Error(1)
}

type GatewayMock struct{ mock.Mock }

func (m *GatewayMock) Charge(ctx context.Context, req gateway.ChargeRequest) (gateway.Charge, error) {
	args := m.Called(ctx, req)
	ch, _ := args.Get(0).(gateway.Charge)
	return ch, args.Error(1)
}

type AlertSinkMock struct{ mock.Mock }

func (m *AlertSinkMock) Publish(ctx context.Context, a alert.Alert) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}

type ItemCacheMock struct{ mock.Mock }

func (m *ItemCacheMock) Get(ctx context.Context, slug string) (model.Item, bool, error) {
	args := m.Called(ctx, slug)
	item, _ := args.Get(0).(model.Item)
	return item, args.Bool(1), args.Error(2)
}

func (m *ItemCacheMock) Set(ctx context.Context, item model.Item) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

// 固定キーを返す採番
type staticIDGen struct{ id string }

func (g *staticIDGen) NewID() string { return g.id }

// =====================
// TransactionManagerのスタブ（そのままfnを呼ぶだけ）
// =====================

type txReposStub struct {
	items      *ItemRepoMock
	orders     *OrderRepoMock
	orderItems *OrderItemRepoMock
	payments   *PaymentRepoMock
	addresses  *AddressRepoMock
}

func (s *txReposStub) Items() repo.ItemRepository               { return s.items }
func (s *txReposStub) Orders() repo.OrderRepository             { return s.orders }
func (s *txReposStub) OrderItems() repo.OrderItemRepository     { return s.orderItems }
func (s *txReposStub) Payments() repo.PaymentRepository         { return s.payments }
func (s *txReposStub) Addresses() repo.BillingAddressRepository { return s.addresses }

type TxManagerStub struct {
	repos *txReposStub
}

func (m *TxManagerStub) WithinTx(ctx context.Context, fn func(r repo.TxRepos) error) error {
	return fn(m.repos)
}

func newTxStub() (*TxManagerStub, *txReposStub) {
	repos := &txReposStub{
		items:      new(ItemRepoMock),
		orders:     new(OrderRepoMock),
		orderItems: new(OrderItemRepoMock),
		payments:   new(PaymentRepoMock),
		addresses:  new(AddressRepoMock),
	}
	return &TxManagerStub{repos: repos}, repos
}

func assertErrContains(t *testing.T, err error, substr string) {
	t.Helper()
	assert.Error(t, err)
	if err != nil {
		assert.Contains(t, err.Error(), substr)
	}
}
