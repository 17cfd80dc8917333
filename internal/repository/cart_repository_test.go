package repository_test

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nikolayk812/garage-sale/internal/domain"
	"github.com/nikolayk812/garage-sale/internal/port"
	"github.com/nikolayk812/garage-sale/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
)

type cartRepositorySuite struct {
	suite.Suite

	repo      port.CartRepository
	items     port.ItemRepository
	users     port.UserRepository
	orders    port.OrderRepository
	pool      *pgxpool.Pool
	container testcontainers.Container
}

// entry point to run the tests in the suite
func TestCartRepositorySuite(t *testing.T) {
	suite.Run(t, new(cartRepositorySuite))
}

// before all tests in the suite
func (suite *cartRepositorySuite) SetupSuite() {
	ctx := suite.T().Context()

	container, connStr, err := startPostgres(ctx)
	suite.Require().NoError(err)
	suite.container = container

	suite.pool, err = pgxpool.New(ctx, connStr)
	suite.Require().NoError(err)

	suite.repo, err = repository.NewCart(suite.pool)
	suite.Require().NoError(err)

	suite.items, err = repository.NewItem(suite.pool)
	suite.Require().NoError(err)

	suite.users, err = repository.NewUser(suite.pool)
	suite.Require().NoError(err)

	suite.orders, err = repository.NewOrder(suite.pool)
	suite.Require().NoError(err)
}

// after all tests in the suite
func (suite *cartRepositorySuite) TearDownSuite() {
	if suite.pool != nil {
		suite.pool.Close()
	}
	if suite.container != nil {
		suite.NoError(testcontainers.TerminateContainer(suite.container))
	}
}

func (suite *cartRepositorySuite) TestGetOrCreateActive() {
	defer suite.deleteAll()

	t := suite.T()
	ctx := t.Context()

	user := createUser(t, suite.users)

	first, err := suite.repo.GetOrCreateActive(ctx, user.ID)
	require.NoError(t, err)

	assert.True(t, first.Active)
	assert.Equal(t, user.ID, first.UserID)
	assert.Zero(t, first.TotalInCents)
	assert.Empty(t, first.Items)

	second, err := suite.repo.GetOrCreateActive(ctx, user.ID)
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)

	_, err = suite.repo.GetOrCreateActive(ctx, uuid.Nil)
	require.EqualError(t, err, "userID is empty")

	_, err = suite.repo.GetOrCreateActive(ctx, uuid.New())
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func (suite *cartRepositorySuite) TestGetOrCreateActiveConcurrent() {
	defer suite.deleteAll()

	t := suite.T()
	ctx := t.Context()

	user := createUser(t, suite.users)

	const workers = 8

	var (
		wg  sync.WaitGroup
		ids = make([]uuid.UUID, workers)
		errs = make([]error, workers)
	)

	for i := range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			cart, err := suite.repo.GetOrCreateActive(ctx, user.ID)
			ids[i], errs[i] = cart.ID, err
		}()
	}
	wg.Wait()

	for i := range workers {
		require.NoError(t, errs[i])
		assert.Equal(t, ids[0], ids[i])
	}

	var active int
	err := suite.pool.QueryRow(ctx, "SELECT count(*) FROM carts WHERE user_id = $1 AND active", user.ID).Scan(&active)
	require.NoError(t, err)
	assert.Equal(t, 1, active)
}

func (suite *cartRepositorySuite) TestAddItem() {
	defer suite.deleteAll()

	tests := []struct {
		name      string
		setup     func(cart domain.Cart) uuid.UUID
		wantAdded bool
		wantTotal int64
		wantLen   int
		wantErr   error
	}{
		{
			name: "add unsold item: ok",
			setup: func(cart domain.Cart) uuid.UUID {
				return createItem(suite.T(), suite.items, 250).ID
			},
			wantAdded: true,
			wantTotal: 250,
			wantLen:   1,
		},
		{
			name: "add zero price item: ok",
			setup: func(cart domain.Cart) uuid.UUID {
				return createItem(suite.T(), suite.items, 0).ID
			},
			wantAdded: true,
			wantTotal: 0,
			wantLen:   1,
		},
		{
			name: "add item twice: no double charge",
			setup: func(cart domain.Cart) uuid.UUID {
				item := createItem(suite.T(), suite.items, 300)
				_, err := suite.repo.AddItem(suite.T().Context(), cart.ID, item.ID)
				require.NoError(suite.T(), err)
				return item.ID
			},
			wantAdded: true,
			wantTotal: 300,
			wantLen:   1,
		},
		{
			name: "add sold item: rejected",
			setup: func(cart domain.Cart) uuid.UUID {
				item := createItem(suite.T(), suite.items, 400)
				markSold(suite.T(), suite.pool, item.ID)
				return item.ID
			},
			wantAdded: false,
			wantTotal: 0,
			wantLen:   0,
		},
		{
			name: "add unknown item: not found",
			setup: func(cart domain.Cart) uuid.UUID {
				return uuid.New()
			},
			wantErr: domain.ErrNotFound,
		},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			t := suite.T()
			ctx := t.Context()

			cart, err := suite.repo.GetOrCreateActive(ctx, createUser(t, suite.users).ID)
			require.NoError(t, err)

			itemID := tt.setup(cart)

			added, err := suite.repo.AddItem(ctx, cart.ID, itemID)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantAdded, added)

			cart, err = suite.repo.GetCart(ctx, cart.ID)
			require.NoError(t, err)

			assert.Equal(t, tt.wantTotal, cart.TotalInCents)
			assert.Len(t, cart.Items, tt.wantLen)
		})
	}
}

func (suite *cartRepositorySuite) TestRemoveItem() {
	defer suite.deleteAll()

	t := suite.T()
	ctx := t.Context()

	cart, err := suite.repo.GetOrCreateActive(ctx, createUser(t, suite.users).ID)
	require.NoError(t, err)

	itemA := createItem(t, suite.items, 12)
	itemB := createItem(t, suite.items, 34)
	notInCart := createItem(t, suite.items, 32)

	for _, item := range []domain.Item{itemA, itemB} {
		added, err := suite.repo.AddItem(ctx, cart.ID, item.ID)
		require.NoError(t, err)
		require.True(t, added)
	}

	removed, err := suite.repo.RemoveItem(ctx, cart.ID, notInCart.ID)
	require.NoError(t, err)
	assert.False(t, removed)

	cart, err = suite.repo.GetCart(ctx, cart.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(46), cart.TotalInCents)

	removed, err = suite.repo.RemoveItem(ctx, cart.ID, itemB.ID)
	require.NoError(t, err)
	assert.True(t, removed)

	cart, err = suite.repo.GetCart(ctx, cart.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(12), cart.TotalInCents)
	require.Len(t, cart.Items, 1)
	assertItem(t, itemA, cart.Items[0].Item)

	removed, err = suite.repo.RemoveItem(ctx, cart.ID, itemB.ID)
	require.NoError(t, err)
	assert.False(t, removed)

	cart, err = suite.repo.GetCart(ctx, cart.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(12), cart.TotalInCents)
}

func (suite *cartRepositorySuite) TestTotalMatchesMembership() {
	defer suite.deleteAll()

	t := suite.T()
	ctx := t.Context()

	cart, err := suite.repo.GetOrCreateActive(ctx, createUser(t, suite.users).ID)
	require.NoError(t, err)

	var items []domain.Item
	for range 5 {
		items = append(items, createItem(t, suite.items, int64(gofakeit.IntRange(0, 10_000))))
	}

	for range 40 {
		item := items[gofakeit.IntRange(0, len(items)-1)]

		if gofakeit.Bool() {
			_, err = suite.repo.AddItem(ctx, cart.ID, item.ID)
		} else {
			_, err = suite.repo.RemoveItem(ctx, cart.ID, item.ID)
		}
		require.NoError(t, err)

		cart, err = suite.repo.GetCart(ctx, cart.ID)
		require.NoError(t, err)

		assert.Equal(t, sumCartPrices(cart), cart.TotalInCents)
		assert.GreaterOrEqual(t, cart.TotalInCents, int64(0))
	}
}

func (suite *cartRepositorySuite) TestPriceEditKeepsCartTotal() {
	defer suite.deleteAll()

	t := suite.T()
	ctx := t.Context()

	cart, err := suite.repo.GetOrCreateActive(ctx, createUser(t, suite.users).ID)
	require.NoError(t, err)

	item := createItem(t, suite.items, 500)

	_, err = suite.repo.AddItem(ctx, cart.ID, item.ID)
	require.NoError(t, err)

	_, err = suite.items.UpdateItem(ctx, item.ID, domain.ItemParams{Name: item.Name, Description: item.Description, PriceInCents: 900})
	require.NoError(t, err)

	removed, err := suite.repo.RemoveItem(ctx, cart.ID, item.ID)
	require.NoError(t, err)
	require.True(t, removed)

	cart, err = suite.repo.GetCart(ctx, cart.ID)
	require.NoError(t, err)
	assert.Zero(t, cart.TotalInCents)
}

func (suite *cartRepositorySuite) TestCheckoutChargesAddedPrice() {
	defer suite.deleteAll()

	t := suite.T()
	ctx := t.Context()

	cart, err := suite.repo.GetOrCreateActive(ctx, createUser(t, suite.users).ID)
	require.NoError(t, err)

	edited := createItem(t, suite.items, 500)
	other := createItem(t, suite.items, 120)

	for _, item := range []domain.Item{edited, other} {
		_, err := suite.repo.AddItem(ctx, cart.ID, item.ID)
		require.NoError(t, err)
	}

	_, err = suite.items.UpdateItem(ctx, edited.ID, domain.ItemParams{Name: edited.Name, Description: edited.Description, PriceInCents: 900})
	require.NoError(t, err)

	order, err := suite.repo.Checkout(ctx, cart.ID, domain.Contact{})
	require.NoError(t, err)

	assert.Equal(t, int64(620), order.TotalInCents)
	assert.Equal(t, order.TotalInCents, sumOrderPrices(order))

	for _, ci := range order.Items {
		if ci.Item.ID == edited.ID {
			assert.Equal(t, int64(500), ci.PriceInCents)
			assert.Equal(t, int64(900), ci.Item.PriceInCents)
		}
	}

	stored, err := suite.orders.GetOrder(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, stored.TotalInCents, sumOrderPrices(stored))
	assertOrder(t, order, stored)
}

func (suite *cartRepositorySuite) TestDeleteItemDetachesFromCarts() {
	defer suite.deleteAll()

	t := suite.T()
	ctx := t.Context()

	cart, err := suite.repo.GetOrCreateActive(ctx, createUser(t, suite.users).ID)
	require.NoError(t, err)

	keep := createItem(t, suite.items, 100)
	drop := createItem(t, suite.items, 284)

	for _, item := range []domain.Item{keep, drop} {
		_, err := suite.repo.AddItem(ctx, cart.ID, item.ID)
		require.NoError(t, err)
	}

	require.NoError(t, suite.items.DeleteItem(ctx, drop.ID))

	cart, err = suite.repo.GetCart(ctx, cart.ID)
	require.NoError(t, err)

	assert.Equal(t, int64(100), cart.TotalInCents)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, keep.ID, cart.Items[0].Item.ID)
}

// create A(100), B(284); add both, remove A, check out
func (suite *cartRepositorySuite) TestCheckout() {
	defer suite.deleteAll()

	t := suite.T()
	ctx := t.Context()

	user := createUser(t, suite.users)

	cart, err := suite.repo.GetOrCreateActive(ctx, user.ID)
	require.NoError(t, err)

	itemA := createItem(t, suite.items, 100)
	itemB := createItem(t, suite.items, 284)

	for _, item := range []domain.Item{itemA, itemB} {
		added, err := suite.repo.AddItem(ctx, cart.ID, item.ID)
		require.NoError(t, err)
		require.True(t, added)
	}

	cart, err = suite.repo.GetCart(ctx, cart.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(384), cart.TotalInCents)

	removed, err := suite.repo.RemoveItem(ctx, cart.ID, itemA.ID)
	require.NoError(t, err)
	require.True(t, removed)

	cart, err = suite.repo.GetCart(ctx, cart.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(284), cart.TotalInCents)

	contact := domain.Contact{FirstName: "John", LastName: "Doe", Email: "john.doe@gmail.com"}

	before := time.Now().Truncate(time.Microsecond)
	order, err := suite.repo.Checkout(ctx, cart.ID, contact)
	after := time.Now()
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, order.ID)
	assert.Equal(t, cart.ID, order.CartID)
	assert.Equal(t, user.ID, order.UserID)
	assert.Equal(t, contact, order.Contact)
	assert.Equal(t, int64(284), order.TotalInCents)
	assert.False(t, order.CreatedAt.Before(before))
	assert.False(t, order.CreatedAt.After(after))

	require.Len(t, order.Items, 1)
	assert.Equal(t, itemB.ID, order.Items[0].Item.ID)
	assert.Equal(t, int64(284), order.Items[0].PriceInCents)
	require.NotNil(t, order.Items[0].Item.SoldAt)
	assert.True(t, order.Items[0].Item.SoldAt.Equal(order.CreatedAt))

	checkedOut, err := suite.repo.GetCart(ctx, cart.ID)
	require.NoError(t, err)
	assert.False(t, checkedOut.Active)

	soldB, err := suite.items.GetItem(ctx, itemB.ID)
	require.NoError(t, err)
	assert.True(t, soldB.IsSold())

	unsoldA, err := suite.items.GetItem(ctx, itemA.ID)
	require.NoError(t, err)
	assert.False(t, unsoldA.IsSold())

	fresh, err := suite.repo.GetOrCreateActive(ctx, user.ID)
	require.NoError(t, err)
	assert.NotEqual(t, cart.ID, fresh.ID)
	assert.True(t, fresh.Active)
	assert.Empty(t, fresh.Items)
	assert.Zero(t, fresh.TotalInCents)

	stored, err := suite.orders.GetOrder(ctx, order.ID)
	require.NoError(t, err)
	assertOrder(t, order, stored)

	orders, err := suite.orders.ListOrders(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assertOrder(t, order, orders[0])
}

func (suite *cartRepositorySuite) TestCheckoutSharesTimestamp() {
	defer suite.deleteAll()

	t := suite.T()
	ctx := t.Context()

	cart, err := suite.repo.GetOrCreateActive(ctx, createUser(t, suite.users).ID)
	require.NoError(t, err)

	for range 4 {
		_, err := suite.repo.AddItem(ctx, cart.ID, createItem(t, suite.items, int64(gofakeit.IntRange(1, 1000))).ID)
		require.NoError(t, err)
	}

	order, err := suite.repo.Checkout(ctx, cart.ID, domain.Contact{})
	require.NoError(t, err)

	require.Len(t, order.Items, 4)
	for _, ci := range order.Items {
		require.NotNil(t, ci.Item.SoldAt)
		assert.True(t, ci.Item.SoldAt.Equal(*order.Items[0].Item.SoldAt))
	}
	assert.Equal(t, domain.Contact{}, order.Contact)
}

func (suite *cartRepositorySuite) TestCheckoutInactiveCart() {
	defer suite.deleteAll()

	t := suite.T()
	ctx := t.Context()

	cart, err := suite.repo.GetOrCreateActive(ctx, createUser(t, suite.users).ID)
	require.NoError(t, err)

	_, err = suite.repo.Checkout(ctx, cart.ID, domain.Contact{})
	require.NoError(t, err)

	_, err = suite.repo.Checkout(ctx, cart.ID, domain.Contact{})
	require.ErrorIs(t, err, domain.ErrCartInactive)

	_, err = suite.repo.AddItem(ctx, cart.ID, createItem(t, suite.items, 1).ID)
	require.ErrorIs(t, err, domain.ErrCartInactive)

	_, err = suite.repo.Checkout(ctx, uuid.New(), domain.Contact{})
	require.ErrorIs(t, err, domain.ErrNotFound)

	_, err = suite.repo.Checkout(ctx, uuid.Nil, domain.Contact{})
	require.EqualError(t, err, "cartID is empty")
}

// first checkout wins when two carts hold the same item
func (suite *cartRepositorySuite) TestCheckoutItemSoldThroughAnotherCart() {
	defer suite.deleteAll()

	t := suite.T()
	ctx := t.Context()

	cartA, err := suite.repo.GetOrCreateActive(ctx, createUser(t, suite.users).ID)
	require.NoError(t, err)
	cartB, err := suite.repo.GetOrCreateActive(ctx, createUser(t, suite.users).ID)
	require.NoError(t, err)

	shared := createItem(t, suite.items, 700)
	own := createItem(t, suite.items, 50)

	for _, cartID := range []uuid.UUID{cartA.ID, cartB.ID} {
		_, err := suite.repo.AddItem(ctx, cartID, shared.ID)
		require.NoError(t, err)
	}
	_, err = suite.repo.AddItem(ctx, cartB.ID, own.ID)
	require.NoError(t, err)

	_, err = suite.repo.Checkout(ctx, cartA.ID, domain.Contact{})
	require.NoError(t, err)

	_, err = suite.repo.Checkout(ctx, cartB.ID, domain.Contact{})
	require.ErrorIs(t, err, domain.ErrItemSold)

	// rolled back: cart B untouched, its own item unsold, no order
	cartB, err = suite.repo.GetCart(ctx, cartB.ID)
	require.NoError(t, err)
	assert.True(t, cartB.Active)
	assert.Equal(t, int64(750), cartB.TotalInCents)

	ownItem, err := suite.items.GetItem(ctx, own.ID)
	require.NoError(t, err)
	assert.False(t, ownItem.IsSold())

	orders, err := suite.orders.ListOrders(ctx, cartB.UserID)
	require.NoError(t, err)
	assert.Empty(t, orders)

	// the sold item can be removed and checkout proceeds
	removed, err := suite.repo.RemoveItem(ctx, cartB.ID, shared.ID)
	require.NoError(t, err)
	require.True(t, removed)

	order, err := suite.repo.Checkout(ctx, cartB.ID, domain.Contact{})
	require.NoError(t, err)
	assert.Equal(t, int64(50), order.TotalInCents)
}

func (suite *cartRepositorySuite) TestCheckoutConcurrent() {
	defer suite.deleteAll()

	t := suite.T()
	ctx := t.Context()

	user := createUser(t, suite.users)

	cart, err := suite.repo.GetOrCreateActive(ctx, user.ID)
	require.NoError(t, err)

	_, err = suite.repo.AddItem(ctx, cart.ID, createItem(t, suite.items, 999).ID)
	require.NoError(t, err)

	const workers = 4

	var (
		wg   sync.WaitGroup
		errs = make([]error, workers)
	)

	for i := range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, errs[i] = suite.repo.Checkout(ctx, cart.ID, domain.Contact{})
		}()
	}
	wg.Wait()

	var succeeded int
	for _, err := range errs {
		if err == nil {
			succeeded++
			continue
		}

		var txErr *domain.TransactionError
		if !errors.As(err, &txErr) {
			assert.ErrorIs(t, err, domain.ErrCartInactive)
		}
	}
	assert.Equal(t, 1, succeeded)

	orders, err := suite.orders.ListOrders(ctx, user.ID)
	require.NoError(t, err)
	assert.Len(t, orders, 1)
}

func (suite *cartRepositorySuite) TestGetOrder() {
	defer suite.deleteAll()

	t := suite.T()

	_, err := suite.orders.GetOrder(t.Context(), uuid.New())
	require.ErrorIs(t, err, domain.ErrNotFound)

	_, err = suite.orders.ListOrders(t.Context(), uuid.Nil)
	require.EqualError(t, err, "userID is empty")
}

func (suite *cartRepositorySuite) deleteAll() {
	suite.NoError(truncateAll(suite.T().Context(), suite.pool))
}

func assertItem(t *testing.T, expected, actual domain.Item) {
	t.Helper()

	diff := cmp.Diff(expected, actual, cmpopts.EquateApproxTime(time.Microsecond))
	assert.Empty(t, diff)
}

func assertOrder(t *testing.T, expected, actual domain.Order) {
	t.Helper()

	opts := cmp.Options{
		cmpopts.EquateApproxTime(time.Microsecond),
		cmpopts.EquateEmpty(),
	}

	diff := cmp.Diff(expected, actual, opts)
	assert.Empty(t, diff)
}
