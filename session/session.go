package session

import (
	"errors"
	"log"
	"sync"
	"time"

	"storefront-service/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// 订单流程阶段
const (
	StageBrowsing  = "browsing"
	StageReviewing = "reviewing"
	StageConfirmed = "confirmed"
)

var (
	ErrEmptyCart    = errors.New("cart is empty")
	ErrInvalidStage = errors.New("operation not allowed in current stage")
)

// Notifier 把用户通知从状态变更中解耦出来，发送失败不影响订单状态
type Notifier interface {
	Publish(event models.OrderEvent) error
}

type NoopNotifier struct{}

func (NoopNotifier) Publish(models.OrderEvent) error { return nil }

// OrderSession 维护一个浏览会话的购物车、阶段和已确认订单快照
type OrderSession struct {
	mu        sync.Mutex
	id        string
	items     []models.LineItem
	stage     string
	confirmed *models.ConfirmedOrder
	notifier  Notifier
}

func NewOrderSession(id string, notifier Notifier) *OrderSession {
	if notifier == nil {
		notifier = NoopNotifier{}
	}
	return &OrderSession{
		id:       id,
		stage:    StageBrowsing,
		notifier: notifier,
	}
}

func (s *OrderSession) ID() string { return s.id }

func (s *OrderSession) Stage() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stage
}

// Items 返回购物车条目的副本
func (s *OrderSession) Items() []models.LineItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	items := make([]models.LineItem, len(s.items))
	copy(items, s.items)
	return items
}

// AddItem 向购物车添加产品；同一产品重复添加时数量累加，保持首次添加的顺序。
// 数量必须为正数，非法数量由调用方校验，这里直接忽略。
func (s *OrderSession) AddItem(product models.Product, quantity int) {
	if quantity < 1 {
		return
	}

	s.mu.Lock()
	var item models.LineItem
	merged := false
	for i := range s.items {
		if s.items[i].ProductID == product.ID {
			s.items[i].Quantity += quantity
			item = s.items[i]
			merged = true
			break
		}
	}
	if !merged {
		item = models.LineItem{
			ProductID:   product.ID,
			ProductName: product.Name,
			Unit:        product.Unit,
			Quantity:    quantity,
			Price:       product.Price,
		}
		s.items = append(s.items, item)
	}
	total := s.totalLocked()
	s.mu.Unlock()

	if err := s.notifier.Publish(models.OrderEvent{
		SessionID:   s.id,
		Type:        "item_added",
		ProductName: item.ProductName,
		Quantity:    item.Quantity,
		Total:       total.StringFixed(2),
		Occurred:    time.Now(),
	}); err != nil {
		log.Printf("Failed to publish item added event: %v", err)
	}
}

// SetQuantity 原地替换数量；数量小于 1 或产品不在购物车时不做任何操作
func (s *OrderSession) SetQuantity(productID, quantity int) {
	if quantity < 1 {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.items {
		if s.items[i].ProductID == productID {
			s.items[i].Quantity = quantity
			return
		}
	}
}

// RemoveItem 删除条目，重复调用是幂等的
func (s *OrderSession) RemoveItem(productID int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.items {
		if s.items[i].ProductID == productID {
			s.items = append(s.items[:i], s.items[i+1:]...)
			return
		}
	}
}

// Total 每次调用重新计算当前购物车总价，不缓存
func (s *OrderSession) Total() decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.totalLocked()
}

func (s *OrderSession) totalLocked() decimal.Decimal {
	total := decimal.Zero
	for _, item := range s.items {
		total = total.Add(item.Subtotal())
	}
	return total.Round(2)
}

// AdvanceToReview 显式进入表单填写阶段；购物车为空时拒绝。
// 是否在添加产品后自动调用由上层配置决定。
func (s *OrderSession) AdvanceToReview() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch s.stage {
	case StageConfirmed:
		return ErrInvalidStage
	case StageReviewing:
		return nil
	}
	if len(s.items) == 0 {
		return ErrEmptyCart
	}
	s.stage = StageReviewing
	return nil
}

// Submit 验证表单并创建不可变的订单快照。
// 验证失败时返回字段错误映射，会话状态不变。
func (s *OrderSession) Submit(info models.CustomerInfo, validate func(models.CustomerInfo) map[string]string) (*models.ConfirmedOrder, map[string]string, error) {
	s.mu.Lock()
	if s.stage != StageReviewing {
		s.mu.Unlock()
		return nil, nil, ErrInvalidStage
	}
	if len(s.items) == 0 {
		s.mu.Unlock()
		return nil, nil, ErrEmptyCart
	}
	if validate != nil {
		if fieldErrors := validate(info); len(fieldErrors) > 0 {
			s.mu.Unlock()
			return nil, fieldErrors, nil
		}
	}

	// 深拷贝购物车，快照与后续修改完全隔离
	items := make([]models.LineItem, len(s.items))
	copy(items, s.items)

	order := &models.ConfirmedOrder{
		OrderNumber:     uuid.NewString(),
		CustomerName:    info.CustomerName,
		CustomerEmail:   info.CustomerEmail,
		CustomerPhone:   info.CustomerPhone,
		DeliveryAddress: info.DeliveryAddress,
		DeliveryDate:    info.DeliveryDate,
		Notes:           info.Notes,
		Items:           items,
		TotalAmount:     s.totalLocked().StringFixed(2),
		OrderDate:       time.Now(),
	}
	s.confirmed = order
	s.stage = StageConfirmed
	s.mu.Unlock()

	if err := s.notifier.Publish(models.OrderEvent{
		SessionID:   s.id,
		Type:        "order_confirmed",
		OrderNumber: order.OrderNumber,
		Total:       order.TotalAmount,
		Occurred:    time.Now(),
	}); err != nil {
		log.Printf("Failed to publish order confirmed event: %v", err)
	}

	return order, nil, nil
}

// ConfirmedOrder 仅在 Confirmed 阶段返回快照
func (s *OrderSession) ConfirmedOrder() (*models.ConfirmedOrder, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stage != StageConfirmed || s.confirmed == nil {
		return nil, false
	}
	return s.confirmed, true
}

// Reset 清空购物车和快照，回到浏览阶段。之前的订单数据不再保留。
func (s *OrderSession) Reset() {
	s.mu.Lock()
	s.items = nil
	s.confirmed = nil
	s.stage = StageBrowsing
	s.mu.Unlock()

	if err := s.notifier.Publish(models.OrderEvent{
		SessionID: s.id,
		Type:      "order_reset",
		Occurred:  time.Now(),
	}); err != nil {
		log.Printf("Failed to publish order reset event: %v", err)
	}
}
