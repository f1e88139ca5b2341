package session

import (
	"sync"
	"testing"
	"time"

	"storefront-service/models"
	"storefront-service/validation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	productSchab = models.Product{
		ID: 1, Name: "Schab wieprzowy", Price: 32.99, Unit: "kg",
		Category: "mięso", Subcategory: "wieprzowina",
		Availability: models.AvailabilityAvailable,
	}
	productZeberka = models.Product{
		ID: 7, Name: "Żeberka wieprzowe", Price: 26.99, Unit: "kg",
		Category: "mięso", Subcategory: "wieprzowina",
		Availability: models.AvailabilityAvailable,
	}
)

type captureNotifier struct {
	mu     sync.Mutex
	events []models.OrderEvent
}

func (n *captureNotifier) Publish(event models.OrderEvent) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, event)
	return nil
}

func (n *captureNotifier) types() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]string, len(n.events))
	for i, e := range n.events {
		out[i] = e.Type
	}
	return out
}

func futureDate() string {
	return time.Now().AddDate(0, 0, 7).Format("2006-01-02")
}

func validInfo() models.CustomerInfo {
	return models.CustomerInfo{
		CustomerName:    "Jan Kowalski",
		CustomerEmail:   "jan.kowalski@example.com",
		CustomerPhone:   "123456789",
		DeliveryAddress: "ul. Gruszowa 5, Potaśnia",
		DeliveryDate:    futureDate(),
	}
}

func TestAddItemMergesQuantities(t *testing.T) {
	s := NewOrderSession("test", nil)

	s.AddItem(productSchab, 1)
	s.AddItem(productSchab, 2)

	items := s.Items()
	require.Len(t, items, 1)
	assert.Equal(t, productSchab.ID, items[0].ProductID)
	assert.Equal(t, 3, items[0].Quantity)
	assert.Equal(t, "98.97", s.Total().StringFixed(2))
}

func TestAddItemPreservesSelectionOrder(t *testing.T) {
	s := NewOrderSession("test", nil)

	s.AddItem(productZeberka, 1)
	s.AddItem(productSchab, 1)
	s.AddItem(productZeberka, 2)

	items := s.Items()
	require.Len(t, items, 2)
	assert.Equal(t, productZeberka.ID, items[0].ProductID)
	assert.Equal(t, productSchab.ID, items[1].ProductID)
	assert.Equal(t, 3, items[0].Quantity)
}

func TestAddItemIgnoresNonPositiveQuantity(t *testing.T) {
	s := NewOrderSession("test", nil)

	s.AddItem(productSchab, 0)
	s.AddItem(productSchab, -3)

	assert.Empty(t, s.Items())
}

func TestSetQuantity(t *testing.T) {
	tests := []struct {
		name     string
		quantity int
		want     int
	}{
		{"replaces in place", 5, 5},
		{"zero is a no-op", 0, 2},
		{"negative is a no-op", -1, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewOrderSession("test", nil)
			s.AddItem(productSchab, 2)

			s.SetQuantity(productSchab.ID, tt.quantity)

			items := s.Items()
			require.Len(t, items, 1)
			assert.Equal(t, tt.want, items[0].Quantity)
		})
	}
}

func TestSetQuantityUnknownProductIsNoop(t *testing.T) {
	s := NewOrderSession("test", nil)
	s.AddItem(productSchab, 2)

	s.SetQuantity(999, 7)

	items := s.Items()
	require.Len(t, items, 1)
	assert.Equal(t, 2, items[0].Quantity)
}

func TestRemoveItemIsIdempotent(t *testing.T) {
	s := NewOrderSession("test", nil)
	s.AddItem(productSchab, 1)
	s.AddItem(productZeberka, 1)

	s.RemoveItem(productSchab.ID)
	s.RemoveItem(productSchab.ID)

	items := s.Items()
	require.Len(t, items, 1)
	assert.Equal(t, productZeberka.ID, items[0].ProductID)
}

func TestTotalRecomputedAfterEveryMutation(t *testing.T) {
	s := NewOrderSession("test", nil)

	assert.Equal(t, "0.00", s.Total().StringFixed(2))

	s.AddItem(productSchab, 1)
	assert.Equal(t, "32.99", s.Total().StringFixed(2))

	s.SetQuantity(productSchab.ID, 2)
	assert.Equal(t, "65.98", s.Total().StringFixed(2))

	s.AddItem(productZeberka, 1)
	assert.Equal(t, "92.97", s.Total().StringFixed(2))

	s.RemoveItem(productSchab.ID)
	assert.Equal(t, "26.99", s.Total().StringFixed(2))
}

func TestAdvanceToReview(t *testing.T) {
	s := NewOrderSession("test", nil)

	err := s.AdvanceToReview()
	assert.ErrorIs(t, err, ErrEmptyCart)
	assert.Equal(t, StageBrowsing, s.Stage())

	s.AddItem(productSchab, 1)
	require.NoError(t, s.AdvanceToReview())
	assert.Equal(t, StageReviewing, s.Stage())

	// 重复调用不报错
	require.NoError(t, s.AdvanceToReview())
	assert.Equal(t, StageReviewing, s.Stage())
}

func TestSubmitRequiresReviewStage(t *testing.T) {
	s := NewOrderSession("test", nil)
	s.AddItem(productSchab, 1)

	_, _, err := s.Submit(validInfo(), validation.ValidateCustomerInfo)
	assert.ErrorIs(t, err, ErrInvalidStage)
	assert.Equal(t, StageBrowsing, s.Stage())
}

func TestSubmitRejectsEmptyCart(t *testing.T) {
	s := NewOrderSession("test", nil)
	s.AddItem(productSchab, 1)
	require.NoError(t, s.AdvanceToReview())
	s.RemoveItem(productSchab.ID)

	_, _, err := s.Submit(validInfo(), validation.ValidateCustomerInfo)
	assert.ErrorIs(t, err, ErrEmptyCart)
	assert.NotEqual(t, StageConfirmed, s.Stage())
	_, found := s.ConfirmedOrder()
	assert.False(t, found)
}

func TestSubmitValidationFailureLeavesStateUnchanged(t *testing.T) {
	s := NewOrderSession("test", nil)
	s.AddItem(productSchab, 1)
	require.NoError(t, s.AdvanceToReview())

	info := validInfo()
	info.CustomerEmail = "not-an-email"

	order, fieldErrors, err := s.Submit(info, validation.ValidateCustomerInfo)
	require.NoError(t, err)
	assert.Nil(t, order)
	assert.Contains(t, fieldErrors, "customer_email")
	assert.Equal(t, StageReviewing, s.Stage())
	_, found := s.ConfirmedOrder()
	assert.False(t, found)
}

func TestSubmitCreatesFrozenSnapshot(t *testing.T) {
	s := NewOrderSession("test", nil)
	s.AddItem(models.Product{ID: 10, Name: "A", Price: 10.00, Unit: "kg"}, 1)
	s.AddItem(models.Product{ID: 11, Name: "B", Price: 5.00, Unit: "kg"}, 3)
	require.NoError(t, s.AdvanceToReview())

	order, fieldErrors, err := s.Submit(validInfo(), validation.ValidateCustomerInfo)
	require.NoError(t, err)
	require.Empty(t, fieldErrors)
	require.NotNil(t, order)

	assert.Equal(t, "25.00", order.TotalAmount)
	assert.NotEmpty(t, order.OrderNumber)
	assert.False(t, order.OrderDate.IsZero())
	assert.Equal(t, StageConfirmed, s.Stage())

	// 快照与后续修改隔离
	s.SetQuantity(10, 99)
	snapshot, found := s.ConfirmedOrder()
	require.True(t, found)
	assert.Equal(t, 1, snapshot.Items[0].Quantity)
	assert.Equal(t, "25.00", snapshot.TotalAmount)
}

func TestConfirmedOrderOnlyInConfirmedStage(t *testing.T) {
	s := NewOrderSession("test", nil)

	_, found := s.ConfirmedOrder()
	assert.False(t, found)

	s.AddItem(productSchab, 1)
	require.NoError(t, s.AdvanceToReview())
	_, found = s.ConfirmedOrder()
	assert.False(t, found)

	_, _, err := s.Submit(validInfo(), validation.ValidateCustomerInfo)
	require.NoError(t, err)
	_, found = s.ConfirmedOrder()
	assert.True(t, found)
}

func TestNoTransitionsOutOfConfirmedExceptReset(t *testing.T) {
	s := NewOrderSession("test", nil)
	s.AddItem(productSchab, 1)
	require.NoError(t, s.AdvanceToReview())
	_, _, err := s.Submit(validInfo(), validation.ValidateCustomerInfo)
	require.NoError(t, err)

	assert.ErrorIs(t, s.AdvanceToReview(), ErrInvalidStage)
	_, _, err = s.Submit(validInfo(), validation.ValidateCustomerInfo)
	assert.ErrorIs(t, err, ErrInvalidStage)
	assert.Equal(t, StageConfirmed, s.Stage())
}

func TestResetClearsEverything(t *testing.T) {
	s := NewOrderSession("test", nil)
	s.AddItem(productSchab, 2)
	require.NoError(t, s.AdvanceToReview())
	_, _, err := s.Submit(validInfo(), validation.ValidateCustomerInfo)
	require.NoError(t, err)

	s.Reset()

	assert.Empty(t, s.Items())
	assert.Equal(t, StageBrowsing, s.Stage())
	assert.Equal(t, "0.00", s.Total().StringFixed(2))
	_, found := s.ConfirmedOrder()
	assert.False(t, found)
}

func TestNotifierReceivesEvents(t *testing.T) {
	notifier := &captureNotifier{}
	s := NewOrderSession("session-1", notifier)

	s.AddItem(productSchab, 1)
	require.NoError(t, s.AdvanceToReview())
	_, _, err := s.Submit(validInfo(), validation.ValidateCustomerInfo)
	require.NoError(t, err)
	s.Reset()

	assert.Equal(t, []string{"item_added", "order_confirmed", "order_reset"}, notifier.types())
	assert.Equal(t, "session-1", notifier.events[0].SessionID)
}

func TestStoreKeepsSessionsIsolated(t *testing.T) {
	store := NewStore(nil)

	a := store.Create()
	b := store.Create()
	require.NotEqual(t, a.ID(), b.ID())

	a.AddItem(productSchab, 1)

	assert.Len(t, a.Items(), 1)
	assert.Empty(t, b.Items())

	got, ok := store.Get(a.ID())
	require.True(t, ok)
	assert.Same(t, a, got)

	assert.Same(t, a, store.GetOrCreate(a.ID()))
}
