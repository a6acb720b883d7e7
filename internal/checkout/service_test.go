package checkout

import (
	"context"
	"errors"
	"testing"

	checkoutdb "ms-storefront/internal/checkout/db"
	"ms-storefront/internal/config"
	"ms-storefront/internal/inventory"
	"ms-storefront/internal/logger"
	"ms-storefront/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockCustomerStore struct{ mock.Mock }

func (m *MockCustomerStore) FindCustomerByEmail(ctx context.Context, email string) (*models.Customer, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Customer), args.Error(1)
}

func (m *MockCustomerStore) CreateCustomer(ctx context.Context, customer models.Customer) error {
	return m.Called(ctx, customer).Error(0)
}

type MockOrderStore struct{ mock.Mock }

func (m *MockOrderStore) CreateOrder(ctx context.Context, order models.Order) error {
	return m.Called(ctx, order).Error(0)
}

func (m *MockOrderStore) CreateTicketLineItem(ctx context.Context, item models.TicketLineItem) error {
	return m.Called(ctx, item).Error(0)
}

func (m *MockOrderStore) CreateMerchLineItems(ctx context.Context, items []models.MerchLineItem) error {
	return m.Called(ctx, items).Error(0)
}

func (m *MockOrderStore) GetOrderWithItems(ctx context.Context, id string) (*models.OrderWithItems, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.OrderWithItems), args.Error(1)
}

type MockAvailability struct{ mock.Mock }

func (m *MockAvailability) Check(ctx context.Context, eventID int64, ticketType, tierTitle string, qty int) inventory.Decision {
	args := m.Called(ctx, eventID, ticketType, tierTitle, qty)
	return args.Get(0).(inventory.Decision)
}

func (m *MockAvailability) Tier(ctx context.Context, eventID int64, ticketType, tierTitle string) (*models.InventoryTier, error) {
	args := m.Called(ctx, eventID, ticketType, tierTitle)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.InventoryTier), args.Error(1)
}

func (m *MockAvailability) Reserve(ctx context.Context, eventID int64, ticketType, tierTitle string, qty int) error {
	return m.Called(ctx, eventID, ticketType, tierTitle, qty).Error(0)
}

type MockEventCatalog struct{ mock.Mock }

func (m *MockEventCatalog) GetEvent(ctx context.Context, id int64) (*models.Event, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Event), args.Error(1)
}

type MockMerchCatalog struct{ mock.Mock }

func (m *MockMerchCatalog) GetMerchItem(ctx context.Context, id int64) (*models.MerchItem, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.MerchItem), args.Error(1)
}

type MockSender struct{ mock.Mock }

func (m *MockSender) Send(ctx context.Context, payload models.ConfirmationPayload) models.ConfirmationOutcome {
	args := m.Called(ctx, payload)
	return args.Get(0).(models.ConfirmationOutcome)
}

type MockGuard struct{ mock.Mock }

func (m *MockGuard) Acquire(ctx context.Context, orderID string) (bool, error) {
	args := m.Called(ctx, orderID)
	return args.Bool(0), args.Error(1)
}

func (m *MockGuard) Release(ctx context.Context, orderID string) error {
	return m.Called(ctx, orderID).Error(0)
}

func testConfig() config.CheckoutConfig {
	return config.CheckoutConfig{
		ServiceFeeRate: 0.05,
		MerchTaxRate:   0.08,
		ShippingFee:    5.0,
		SourceTag:      "web-storefront",
		CouponCode:     "MERCH5",
		CouponDiscount: 5.0,
		CouponMinSpend: 30.0,
	}
}

type fixture struct {
	customers *MockCustomerStore
	orders    *MockOrderStore
	inv       *MockAvailability
	events    *MockEventCatalog
	merch     *MockMerchCatalog
	sender    *MockSender
	guard     *MockGuard
	svc       *Service
}

func newFixture() *fixture {
	f := &fixture{
		customers: new(MockCustomerStore),
		orders:    new(MockOrderStore),
		inv:       new(MockAvailability),
		events:    new(MockEventCatalog),
		merch:     new(MockMerchCatalog),
		sender:    new(MockSender),
		guard:     new(MockGuard),
	}
	f.svc = &Service{
		Customers: f.customers,
		Orders:    f.orders,
		Inventory: f.inv,
		Events:    f.events,
		Merch:     f.merch,
		Sender:    f.sender,
		Guard:     f.guard,
		Cfg:       testConfig(),
		Logger:    logger.NewLogger("checkout-test"),
	}
	return f
}

func ticketRequest() models.TicketCheckoutRequest {
	return models.TicketCheckoutRequest{
		OrderID: "order-1",
		Customer: models.CustomerDetails{
			FullName: "Ada Shopper",
			Email:    "ada@example.com",
		},
		EventID:            42,
		TicketType:         models.TicketTypeGeneral,
		TierTitle:          "Early Bird",
		Quantity:           3,
		IncludeFoodService: true,
	}
}

func TestFinalizeTicketOrderHappyPath(t *testing.T) {
	f := newFixture()
	req := ticketRequest()

	f.guard.On("Acquire", mock.Anything, "order-1").Return(true, nil)
	f.inv.On("Check", mock.Anything, int64(42), models.TicketTypeGeneral, "Early Bird", 3).
		Return(inventory.Decision{Admitted: true, Available: 10})
	f.inv.On("Tier", mock.Anything, int64(42), models.TicketTypeGeneral, "Early Bird").
		Return(&models.InventoryTier{UnitPrice: 25.0, AvailableQuantity: 10, Active: true}, nil)
	f.events.On("GetEvent", mock.Anything, int64(42)).
		Return(&models.Event{ID: 42, Title: "Summer Fest", FoodServiceAvailable: true, FoodServicePrice: 15.0}, nil)
	f.customers.On("FindCustomerByEmail", mock.Anything, "ada@example.com").
		Return(&models.Customer{ID: "cust-1", Email: "ada@example.com"}, nil)
	f.orders.On("CreateOrder", mock.Anything, mock.MatchedBy(func(o models.Order) bool {
		return o.OrderID == "order-1" && o.CustomerID == "cust-1" &&
			o.PaymentStatus == models.PaymentCompleted && o.Source == "web-storefront"
	})).Return(nil)
	f.inv.On("Reserve", mock.Anything, int64(42), models.TicketTypeGeneral, "Early Bird", 3).Return(nil)
	f.orders.On("CreateTicketLineItem", mock.Anything, mock.MatchedBy(func(li models.TicketLineItem) bool {
		return li.OrderID == "order-1" && li.Quantity == 3 && li.UnitPrice == 25.0 && li.IncludesFoodService
	})).Return(nil)
	f.sender.On("Send", mock.Anything, mock.Anything).
		Return(models.ConfirmationOutcome{EmailSent: true})

	result := f.svc.FinalizeTicketOrder(context.Background(), req)

	require.Equal(t, StateSucceeded, result.State)
	assert.Equal(t, "order-1", result.OrderID)
	require.NotNil(t, result.Ticket)
	assert.InDelta(t, 75.0, result.Ticket.TicketSubtotal, 0.0001)
	assert.InDelta(t, 45.0, result.Ticket.FoodServiceCost, 0.0001)
	assert.InDelta(t, 120.0, result.Ticket.Subtotal, 0.0001)
	assert.InDelta(t, 126.0, result.Ticket.Total, 0.0001)
	assert.True(t, result.Confirmation.EmailSent)
	require.NotNil(t, result.Snapshot)
	assert.Equal(t, "Summer Fest", result.Snapshot.EventTitle)

	f.orders.AssertExpectations(t)
	f.inv.AssertExpectations(t)
}

func TestFinalizeTicketOrderDenied(t *testing.T) {
	f := newFixture()
	req := ticketRequest()

	f.guard.On("Acquire", mock.Anything, "order-1").Return(true, nil)
	f.guard.On("Release", mock.Anything, "order-1").Return(nil)
	f.inv.On("Check", mock.Anything, int64(42), models.TicketTypeGeneral, "Early Bird", 3).
		Return(inventory.Decision{Reason: inventory.ReasonSoldOut})

	result := f.svc.FinalizeTicketOrder(context.Background(), req)

	assert.Equal(t, StateDenied, result.State)
	assert.Equal(t, inventory.ReasonSoldOut, result.Message)
	f.orders.AssertNotCalled(t, "CreateOrder", mock.Anything, mock.Anything)
	f.guard.AssertCalled(t, "Release", mock.Anything, "order-1")
}

func TestFinalizeTicketOrderCreateOrderFails(t *testing.T) {
	f := newFixture()
	req := ticketRequest()

	f.guard.On("Acquire", mock.Anything, "order-1").Return(true, nil)
	f.guard.On("Release", mock.Anything, "order-1").Return(nil)
	f.inv.On("Check", mock.Anything, int64(42), models.TicketTypeGeneral, "Early Bird", 3).
		Return(inventory.Decision{Admitted: true, Available: 10})
	f.inv.On("Tier", mock.Anything, int64(42), models.TicketTypeGeneral, "Early Bird").
		Return(&models.InventoryTier{UnitPrice: 25.0, Active: true}, nil)
	f.events.On("GetEvent", mock.Anything, int64(42)).
		Return(&models.Event{ID: 42, Title: "Summer Fest", FoodServiceAvailable: true, FoodServicePrice: 15.0}, nil)
	f.customers.On("FindCustomerByEmail", mock.Anything, "ada@example.com").
		Return(&models.Customer{ID: "cust-1"}, nil)
	f.orders.On("CreateOrder", mock.Anything, mock.Anything).Return(errors.New("connection reset"))

	result := f.svc.FinalizeTicketOrder(context.Background(), req)

	assert.Equal(t, StateFailed, result.State)
	assert.Equal(t, MsgOrderFailed, result.Message)
	f.inv.AssertNotCalled(t, "Reserve", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	f.orders.AssertNotCalled(t, "CreateTicketLineItem", mock.Anything, mock.Anything)
}

func TestFinalizeTicketOrderConfirmationFailureStillSucceeds(t *testing.T) {
	f := newFixture()
	req := ticketRequest()

	f.guard.On("Acquire", mock.Anything, "order-1").Return(true, nil)
	f.inv.On("Check", mock.Anything, int64(42), models.TicketTypeGeneral, "Early Bird", 3).
		Return(inventory.Decision{Admitted: true, Available: 10})
	f.inv.On("Tier", mock.Anything, int64(42), models.TicketTypeGeneral, "Early Bird").
		Return(&models.InventoryTier{UnitPrice: 25.0, Active: true}, nil)
	f.events.On("GetEvent", mock.Anything, int64(42)).
		Return(&models.Event{ID: 42, Title: "Summer Fest"}, nil)
	f.customers.On("FindCustomerByEmail", mock.Anything, "ada@example.com").
		Return(&models.Customer{ID: "cust-1"}, nil)
	f.orders.On("CreateOrder", mock.Anything, mock.Anything).Return(nil)
	f.inv.On("Reserve", mock.Anything, int64(42), models.TicketTypeGeneral, "Early Bird", 3).Return(nil)
	f.orders.On("CreateTicketLineItem", mock.Anything, mock.Anything).Return(nil)
	f.sender.On("Send", mock.Anything, mock.Anything).
		Return(models.ConfirmationOutcome{EmailError: true})

	result := f.svc.FinalizeTicketOrder(context.Background(), req)

	assert.Equal(t, StateSucceeded, result.State)
	assert.True(t, result.Confirmation.EmailError)
	assert.False(t, result.Confirmation.EmailSent)
}

func TestFinalizeTicketOrderDuplicateSubmission(t *testing.T) {
	f := newFixture()
	req := ticketRequest()

	f.guard.On("Acquire", mock.Anything, "order-1").Return(false, nil)

	result := f.svc.FinalizeTicketOrder(context.Background(), req)

	assert.Equal(t, StateDenied, result.State)
	assert.Equal(t, MsgDuplicateOrder, result.Message)
	f.inv.AssertNotCalled(t, "Check", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	f.orders.AssertNotCalled(t, "CreateOrder", mock.Anything, mock.Anything)
}

func TestFinalizeTicketOrderCreatesMissingCustomer(t *testing.T) {
	f := newFixture()
	req := ticketRequest()

	f.guard.On("Acquire", mock.Anything, "order-1").Return(true, nil)
	f.inv.On("Check", mock.Anything, int64(42), models.TicketTypeGeneral, "Early Bird", 3).
		Return(inventory.Decision{Admitted: true, Available: 10})
	f.inv.On("Tier", mock.Anything, int64(42), models.TicketTypeGeneral, "Early Bird").
		Return(&models.InventoryTier{UnitPrice: 25.0, Active: true}, nil)
	f.events.On("GetEvent", mock.Anything, int64(42)).
		Return(&models.Event{ID: 42, Title: "Summer Fest"}, nil)
	f.customers.On("FindCustomerByEmail", mock.Anything, "ada@example.com").
		Return(nil, checkoutdb.ErrCustomerNotFound)
	f.customers.On("CreateCustomer", mock.Anything, mock.MatchedBy(func(c models.Customer) bool {
		return c.Email == "ada@example.com" && c.FullName == "Ada Shopper" && c.ID != ""
	})).Return(nil)
	f.orders.On("CreateOrder", mock.Anything, mock.Anything).Return(nil)
	f.inv.On("Reserve", mock.Anything, int64(42), models.TicketTypeGeneral, "Early Bird", 3).Return(nil)
	f.orders.On("CreateTicketLineItem", mock.Anything, mock.Anything).Return(nil)
	f.sender.On("Send", mock.Anything, mock.Anything).
		Return(models.ConfirmationOutcome{SimulatedEmail: true})

	result := f.svc.FinalizeTicketOrder(context.Background(), req)

	assert.Equal(t, StateSucceeded, result.State)
	assert.True(t, result.Confirmation.SimulatedEmail)
	f.customers.AssertExpectations(t)
}

func TestFinalizeMerchOrderWithCoupon(t *testing.T) {
	f := newFixture()
	req := models.MerchCheckoutRequest{
		OrderID: "order-2",
		Customer: models.CustomerDetails{
			FullName: "Ada Shopper",
			Email:    "ada@example.com",
		},
		Lines: []models.MerchCartLine{
			{ItemID: 7, Quantity: 2, Size: "M"},
		},
		DeliveryMethod: models.DeliveryShip,
		CouponCode:     "merch5",
	}

	f.guard.On("Acquire", mock.Anything, "order-2").Return(true, nil)
	f.merch.On("GetMerchItem", mock.Anything, int64(7)).
		Return(&models.MerchItem{ID: 7, Name: "Tour Hoodie", UnitPrice: 20.0, InStock: true}, nil)
	f.customers.On("FindCustomerByEmail", mock.Anything, "ada@example.com").
		Return(&models.Customer{ID: "cust-1"}, nil)
	f.orders.On("CreateOrder", mock.Anything, mock.MatchedBy(func(o models.Order) bool {
		return o.OrderID == "order-2" && o.TotalAmount > 0
	})).Return(nil)
	f.orders.On("CreateMerchLineItems", mock.Anything, mock.MatchedBy(func(items []models.MerchLineItem) bool {
		return len(items) == 1 && items[0].ItemName == "Tour Hoodie" &&
			items[0].UnitPrice == 20.0 && items[0].Size == "M"
	})).Return(nil)
	f.sender.On("Send", mock.Anything, mock.MatchedBy(func(p models.ConfirmationPayload) bool {
		return p.OrderType == models.OrderTypeMerch && p.ItemSummary == "2x Tour Hoodie"
	})).Return(models.ConfirmationOutcome{EmailSent: true})

	result := f.svc.FinalizeMerchOrder(context.Background(), req)

	require.Equal(t, StateSucceeded, result.State)
	require.NotNil(t, result.Merch)
	assert.InDelta(t, 40.0, result.Merch.ItemSubtotal, 0.0001)
	assert.InDelta(t, 5.0, result.Merch.Discount, 0.0001)
	assert.InDelta(t, 35.0, result.Merch.DiscountedSubtotal, 0.0001)
	assert.InDelta(t, 5.0, result.Merch.ShippingFee, 0.0001)
	assert.InDelta(t, 35.0*0.08, result.Merch.Tax, 0.0001)
	assert.InDelta(t, 35.0+5.0+35.0*0.08, result.Merch.Total, 0.0001)
	f.orders.AssertExpectations(t)
}

func TestFinalizeMerchOrderEmptyCart(t *testing.T) {
	f := newFixture()
	f.guard.On("Acquire", mock.Anything, "order-3").Return(true, nil)
	f.guard.On("Release", mock.Anything, "order-3").Return(nil)

	result := f.svc.FinalizeMerchOrder(context.Background(), models.MerchCheckoutRequest{
		OrderID:  "order-3",
		Customer: models.CustomerDetails{Email: "ada@example.com"},
	})

	assert.Equal(t, StateDenied, result.State)
	assert.Equal(t, MsgEmptyCart, result.Message)
	f.orders.AssertNotCalled(t, "CreateOrder", mock.Anything, mock.Anything)
}

func TestGetConfirmationFallsBackToSnapshot(t *testing.T) {
	f := newFixture()
	snapshot := &models.ConfirmationSnapshot{OrderID: "order-9", Total: 42.0}

	f.orders.On("GetOrderWithItems", mock.Anything, "order-9").
		Return(nil, errors.New("not found"))

	view, err := f.svc.GetConfirmation(context.Background(), "order-9", snapshot)

	require.NoError(t, err)
	assert.Equal(t, "snapshot", view.Source)
	assert.Equal(t, snapshot, view.Snapshot)
}

func TestGetConfirmationPrefersStore(t *testing.T) {
	f := newFixture()
	stored := &models.OrderWithItems{Order: models.Order{OrderID: "order-9"}}

	f.orders.On("GetOrderWithItems", mock.Anything, "order-9").Return(stored, nil)

	view, err := f.svc.GetConfirmation(context.Background(), "order-9", &models.ConfirmationSnapshot{})

	require.NoError(t, err)
	assert.Equal(t, "store", view.Source)
	assert.Equal(t, stored, view.Order)
}

func TestClassifyError(t *testing.T) {
	assert.Equal(t, MsgCustomerFailed, classifyError(errors.New("customer create: boom")))
	assert.Equal(t, MsgOrderFailed, classifyError(errors.New("order create: boom")))
	assert.Equal(t, MsgTicketFailed, classifyError(errors.New("reserve tickets: boom")))
	assert.Equal(t, MsgGenericFailed, classifyError(errors.New("connection reset")))
}
