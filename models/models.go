package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// 产品可用性状态
const (
	AvailabilityAvailable   = "available"
	AvailabilityLow         = "low"
	AvailabilityUnavailable = "unavailable"
)

// Product 只读的目录数据，订单流程不会修改它
type Product struct {
	ID           int     `json:"id"`
	Name         string  `json:"name"`
	Price        float64 `json:"price"`
	Category     string  `json:"category"`
	Subcategory  string  `json:"subcategory"`
	ImageURL     string  `json:"image_url"`
	Availability string  `json:"availability"`
	Unit         string  `json:"unit"`
	Description  string  `json:"description"`
}

// LineItem 购物车中的一个条目，数量始终 >= 1
type LineItem struct {
	ProductID   int     `json:"product_id"`
	ProductName string  `json:"product_name"`
	Unit        string  `json:"unit"`
	Quantity    int     `json:"quantity"`
	Price       float64 `json:"price"`
}

// Subtotal 单价 × 数量，保留两位小数
func (li LineItem) Subtotal() decimal.Decimal {
	return decimal.NewFromFloat(li.Price).Mul(decimal.NewFromInt(int64(li.Quantity))).Round(2)
}

// CustomerInfo 提交订单时验证的表单数据
type CustomerInfo struct {
	CustomerName    string `json:"customer_name" validate:"required,trimmed_min=2"`
	CustomerEmail   string `json:"customer_email" validate:"required,email"`
	CustomerPhone   string `json:"customer_phone" validate:"required,min=9"`
	DeliveryAddress string `json:"delivery_address" validate:"required,min=5"`
	DeliveryDate    string `json:"delivery_date" validate:"required,not_past_date"`
	Notes           string `json:"notes"`
}

// ConfirmedOrder 提交时创建的不可变快照，Items 是购物车的独立副本
type ConfirmedOrder struct {
	OrderNumber     string     `json:"order_number"`
	CustomerName    string     `json:"customer_name"`
	CustomerEmail   string     `json:"customer_email"`
	CustomerPhone   string     `json:"customer_phone"`
	DeliveryAddress string     `json:"delivery_address"`
	DeliveryDate    string     `json:"delivery_date"`
	Notes           string     `json:"notes"`
	Items           []LineItem `json:"items"`
	TotalAmount     string     `json:"total_amount"`
	OrderDate       time.Time  `json:"order_date"`
}

type OrderEvent struct {
	SessionID   string    `json:"session_id"`
	Type        string    `json:"type"` // item_added, order_confirmed, order_reset
	OrderNumber string    `json:"order_number,omitempty"`
	ProductName string    `json:"product_name,omitempty"`
	Quantity    int       `json:"quantity,omitempty"`
	Total       string    `json:"total,omitempty"`
	Occurred    time.Time `json:"occurred"`
}
