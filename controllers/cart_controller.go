package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"storefront-service/catalog"
	"storefront-service/middlewares"
	"storefront-service/models"
	"storefront-service/session"
	"storefront-service/validation"

	"github.com/gin-gonic/gin"
)

var (
	productCatalog   *catalog.Catalog
	stageAutoAdvance bool
)

func SetCatalog(c *catalog.Catalog) {
	productCatalog = c
}

// SetStageAutoAdvance 控制添加产品后是否自动进入表单阶段。
// 由 UI 策略决定，两种前端行为都可以复现。
func SetStageAutoAdvance(enabled bool) {
	stageAutoAdvance = enabled
}

func currentSession(c *gin.Context) (*session.OrderSession, bool) {
	s, ok := middlewares.GetOrderSession(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Session not initialized"})
		return nil, false
	}
	return s, true
}

func AddCartItem(c *gin.Context) {
	defer func() {
		status := c.Writer.Status() >= 200 && c.Writer.Status() < 300
		middlewares.RecordCartOperation("add_item", status)
	}()
	s, ok := currentSession(c)
	if !ok {
		return
	}

	var request struct {
		ProductID int `json:"product_id" binding:"required"`
		Quantity  int `json:"quantity" binding:"required"`
	}
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// 数量在调用方校验，非法数量不会进入会话
	if request.Quantity < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Quantity must be a positive integer"})
		return
	}

	product, found := productCatalog.FindByID(request.ProductID)
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}
	if product.Availability == models.AvailabilityUnavailable {
		c.JSON(http.StatusConflict, gin.H{"error": "Product is unavailable"})
		return
	}

	s.AddItem(product, request.Quantity)

	if stageAutoAdvance {
		// 自动切换失败（比如订单已确认）不影响添加结果
		_ = s.AdvanceToReview()
	}

	c.JSON(http.StatusOK, gin.H{
		"items": s.Items(),
		"total": s.Total().StringFixed(2),
		"stage": s.Stage(),
	})
}

func UpdateCartItem(c *gin.Context) {
	defer func() {
		status := c.Writer.Status() >= 200 && c.Writer.Status() < 300
		middlewares.RecordCartOperation("set_quantity", status)
	}()
	s, ok := currentSession(c)
	if !ok {
		return
	}

	productID, err := strconv.Atoi(c.Param("productId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID"})
		return
	}

	var request struct {
		Quantity int `json:"quantity" binding:"required"`
	}
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if request.Quantity < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Quantity must be at least 1; remove the item instead"})
		return
	}

	s.SetQuantity(productID, request.Quantity)

	c.JSON(http.StatusOK, gin.H{
		"items": s.Items(),
		"total": s.Total().StringFixed(2),
		"stage": s.Stage(),
	})
}

func RemoveCartItem(c *gin.Context) {
	defer func() {
		status := c.Writer.Status() >= 200 && c.Writer.Status() < 300
		middlewares.RecordCartOperation("remove_item", status)
	}()
	s, ok := currentSession(c)
	if !ok {
		return
	}

	productID, err := strconv.Atoi(c.Param("productId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID"})
		return
	}

	// 幂等：条目不存在也返回成功
	s.RemoveItem(productID)

	c.JSON(http.StatusOK, gin.H{
		"items": s.Items(),
		"total": s.Total().StringFixed(2),
		"stage": s.Stage(),
	})
}

func GetCart(c *gin.Context) {
	defer func() {
		status := c.Writer.Status() >= 200 && c.Writer.Status() < 300
		middlewares.RecordCartOperation("view_cart", status)
	}()
	s, ok := currentSession(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"items": s.Items(),
		"total": s.Total().StringFixed(2),
		"stage": s.Stage(),
	})
}

// AdvanceToReview 显式进入表单填写阶段，购物车为空时拒绝
func AdvanceToReview(c *gin.Context) {
	defer func() {
		status := c.Writer.Status() >= 200 && c.Writer.Status() < 300
		middlewares.RecordCartOperation("review", status)
	}()
	s, ok := currentSession(c)
	if !ok {
		return
	}

	if err := s.AdvanceToReview(); err != nil {
		if errors.Is(err, session.ErrEmptyCart) {
			c.JSON(http.StatusConflict, gin.H{"error": "Cart is empty"})
			return
		}
		c.JSON(http.StatusConflict, gin.H{"error": "Order already confirmed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"stage": s.Stage()})
}

func SubmitOrder(c *gin.Context) {
	defer func() {
		status := c.Writer.Status() >= 200 && c.Writer.Status() < 300
		middlewares.RecordCartOperation("submit", status)
	}()
	s, ok := currentSession(c)
	if !ok {
		return
	}

	var info models.CustomerInfo
	if err := c.ShouldBindJSON(&info); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	order, fieldErrors, err := s.Submit(info, validation.ValidateCustomerInfo)
	if err != nil {
		if errors.Is(err, session.ErrEmptyCart) {
			c.JSON(http.StatusConflict, gin.H{"error": "Cart is empty"})
			return
		}
		c.JSON(http.StatusConflict, gin.H{"error": "Order can only be submitted from the review stage"})
		return
	}
	if len(fieldErrors) > 0 {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"errors": fieldErrors})
		return
	}

	c.JSON(http.StatusCreated, order)
}

func GetConfirmedOrder(c *gin.Context) {
	defer func() {
		status := c.Writer.Status() >= 200 && c.Writer.Status() < 300
		middlewares.RecordCartOperation("confirmation", status)
	}()
	s, ok := currentSession(c)
	if !ok {
		return
	}

	order, found := s.ConfirmedOrder()
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "No confirmed order"})
		return
	}

	c.JSON(http.StatusOK, order)
}

// StartNewOrder 丢弃已确认的订单并回到浏览阶段
func StartNewOrder(c *gin.Context) {
	defer func() {
		status := c.Writer.Status() >= 200 && c.Writer.Status() < 300
		middlewares.RecordCartOperation("reset", status)
	}()
	s, ok := currentSession(c)
	if !ok {
		return
	}

	s.Reset()

	c.JSON(http.StatusOK, gin.H{"stage": s.Stage()})
}
