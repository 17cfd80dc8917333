// Package mocks holds testify mocks of the port interfaces.
package mocks

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/nikolayk812/garage-sale/internal/domain"
	"github.com/nikolayk812/garage-sale/internal/port"
	"github.com/stretchr/testify/mock"
)

var (
	_ port.ItemRepository  = (*ItemRepository)(nil)
	_ port.CartRepository  = (*CartRepository)(nil)
	_ port.OrderRepository = (*OrderRepository)(nil)
	_ port.UserRepository  = (*UserRepository)(nil)
	_ port.Catalog         = (*Catalog)(nil)
	_ port.Cache           = (*Cache)(nil)
)

type ItemRepository struct {
	mock.Mock
}

func (m *ItemRepository) CreateItem(ctx context.Context, params domain.ItemParams) (domain.Item, error) {
	args := m.Called(ctx, params)
	return args.Get(0).(domain.Item), args.Error(1)
}

func (m *ItemRepository) UpdateItem(ctx context.Context, itemID uuid.UUID, params domain.ItemParams) (domain.Item, error) {
	args := m.Called(ctx, itemID, params)
	return args.Get(0).(domain.Item), args.Error(1)
}

func (m *ItemRepository) GetItem(ctx context.Context, itemID uuid.UUID) (domain.Item, error) {
	args := m.Called(ctx, itemID)
	return args.Get(0).(domain.Item), args.Error(1)
}

func (m *ItemRepository) DeleteItem(ctx context.Context, itemID uuid.UUID) error {
	args := m.Called(ctx, itemID)
	return args.Error(0)
}

func (m *ItemRepository) ListItems(ctx context.Context, filter domain.ItemFilter, limit, offset int) ([]domain.Item, error) {
	args := m.Called(ctx, filter, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Item), args.Error(1)
}

func (m *ItemRepository) CountItems(ctx context.Context, filter domain.ItemFilter) (int, error) {
	args := m.Called(ctx, filter)
	return args.Int(0), args.Error(1)
}

func (m *ItemRepository) ListFeaturedItems(ctx context.Context, limit int) ([]domain.Item, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Item), args.Error(1)
}

type CartRepository struct {
	mock.Mock
}

func (m *CartRepository) GetOrCreateActive(ctx context.Context, userID uuid.UUID) (domain.Cart, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(domain.Cart), args.Error(1)
}

func (m *CartRepository) GetCart(ctx context.Context, cartID uuid.UUID) (domain.Cart, error) {
	args := m.Called(ctx, cartID)
	return args.Get(0).(domain.Cart), args.Error(1)
}

func (m *CartRepository) AddItem(ctx context.Context, cartID, itemID uuid.UUID) (bool, error) {
	args := m.Called(ctx, cartID, itemID)
	return args.Bool(0), args.Error(1)
}

func (m *CartRepository) RemoveItem(ctx context.Context, cartID, itemID uuid.UUID) (bool, error) {
	args := m.Called(ctx, cartID, itemID)
	return args.Bool(0), args.Error(1)
}

func (m *CartRepository) Checkout(ctx context.Context, cartID uuid.UUID, contact domain.Contact) (domain.Order, error) {
	args := m.Called(ctx, cartID, contact)
	return args.Get(0).(domain.Order), args.Error(1)
}

type OrderRepository struct {
	mock.Mock
}

func (m *OrderRepository) GetOrder(ctx context.Context, orderID uuid.UUID) (domain.Order, error) {
	args := m.Called(ctx, orderID)
	return args.Get(0).(domain.Order), args.Error(1)
}

func (m *OrderRepository) ListOrders(ctx context.Context, userID uuid.UUID) ([]domain.Order, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Order), args.Error(1)
}

type UserRepository struct {
	mock.Mock
}

func (m *UserRepository) CreateUser(ctx context.Context, username, passwordHash string) (domain.User, error) {
	args := m.Called(ctx, username, passwordHash)
	return args.Get(0).(domain.User), args.Error(1)
}

func (m *UserRepository) GetUser(ctx context.Context, userID uuid.UUID) (domain.User, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(domain.User), args.Error(1)
}

func (m *UserRepository) GetUserByUsername(ctx context.Context, username string) (domain.User, error) {
	args := m.Called(ctx, username)
	return args.Get(0).(domain.User), args.Error(1)
}

type Catalog struct {
	mock.Mock
}

func (m *Catalog) List(ctx context.Context, query domain.CatalogQuery) (domain.Page[domain.CatalogRow], error) {
	args := m.Called(ctx, query)
	return args.Get(0).(domain.Page[domain.CatalogRow]), args.Error(1)
}

func (m *Catalog) Featured(ctx context.Context) ([]domain.CatalogRow, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CatalogRow), args.Error(1)
}

type Cache struct {
	mock.Mock
}

func (m *Cache) Set(ctx context.Context, key string, value string, ttl time.Duration) error {
	args := m.Called(ctx, key, value, ttl)
	return args.Error(0)
}

func (m *Cache) Get(ctx context.Context, key string) (string, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Error(1)
}

func (m *Cache) GenerateKey(operation, key string) string {
	return operation + ":" + key
}
