package controllers

import (
	"net/http"

	"storefront-service/catalog"
	"storefront-service/middlewares"

	"github.com/gin-gonic/gin"
)

// ListProducts 按查询参数过滤产品目录
func ListProducts(c *gin.Context) {
	defer func() {
		status := c.Writer.Status() >= 200 && c.Writer.Status() < 300
		middlewares.RecordCartOperation("list_products", status)
	}()

	products := productCatalog.Filter(catalog.FilterOptions{
		Search:       c.Query("q"),
		Category:     c.Query("category"),
		Subcategory:  c.Query("subcategory"),
		Availability: c.Query("availability"),
	})

	c.JSON(http.StatusOK, products)
}

// GetProductFilters 返回从数据派生的筛选项
func GetProductFilters(c *gin.Context) {
	c.JSON(http.StatusOK, productCatalog.FilterValues())
}
