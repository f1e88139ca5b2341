package main

import (
	"log"
	"net/http"

	"storefront-service/catalog"
	"storefront-service/config"
	"storefront-service/consumers"
	"storefront-service/controllers"
	"storefront-service/middlewares"
	"storefront-service/rabbitmq"
	"storefront-service/session"
	"storefront-service/settings"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	// 加载配置
	cfg := config.LoadConfig()

	// 加载产品目录（启动时一次，之后只读）
	productCatalog, err := catalog.Load(cfg)
	if err != nil {
		log.Fatalf("Catalog initialization failed: %v", err)
	}

	// 初始化RabbitMQ，不可用时退化为无通知模式
	var notifier session.Notifier = session.NoopNotifier{}
	rmq, err := rabbitmq.NewRabbitMQ(cfg)
	if err != nil {
		log.Printf("RabbitMQ unavailable, notifications disabled: %v", err)
	} else {
		defer rmq.Close()

		// 设置队列和交换机
		if err := rmq.SetupQueues(); err != nil {
			log.Fatalf("Failed to setup RabbitMQ queues: %v", err)
		}

		// 启动通知消费者
		go consumers.StartNotificationConsumer(rmq.Channel, cfg)

		notifier = rmq
	}

	sessionStore := session.NewStore(notifier)
	settingsStore := settings.NewStore()

	controllers.SetCatalog(productCatalog)
	controllers.SetSettingsStore(settingsStore)
	controllers.SetStageAutoAdvance(cfg.StageAutoAdvance)

	// 创建Gin路由
	r := gin.Default()

	// 应用Prometheus中间件
	r.Use(middlewares.PrometheusMiddleware())

	// 暴露Prometheus指标端点
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// 健康检查端点
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// 需要会话的路由组
	api := r.Group("/api")
	api.Use(middlewares.SessionMiddleware(sessionStore, cfg))
	{
		api.GET("/products", controllers.ListProducts)
		api.GET("/products/filters", controllers.GetProductFilters)

		api.GET("/cart", controllers.GetCart)
		api.POST("/cart/items", controllers.AddCartItem)
		api.PUT("/cart/items/:productId", controllers.UpdateCartItem)
		api.DELETE("/cart/items/:productId", controllers.RemoveCartItem)
		api.POST("/cart/review", controllers.AdvanceToReview)

		api.POST("/order", controllers.SubmitOrder)
		api.GET("/order", controllers.GetConfirmedOrder)
		api.POST("/order/new", controllers.StartNewOrder)

		api.GET("/settings/company", controllers.GetCompanyProfile)
		api.PUT("/settings/company", controllers.UpdateCompanyProfile)
		api.GET("/settings/certifications", controllers.ListCertifications)
		api.POST("/settings/certifications", controllers.AddCertification)
		api.DELETE("/settings/certifications/:index", controllers.RemoveCertification)
		api.GET("/settings/social", controllers.GetSocialLinks)
		api.PUT("/settings/social", controllers.UpdateSocialLinks)
		api.POST("/settings/password", controllers.ChangePassword)
	}

	// 启动服务器
	port := ":" + cfg.ServerPort
	log.Printf("Storefront service starting on port %s", port)
	if err := r.Run(port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
