package consumers

import (
	"encoding/json"
	"log"

	"storefront-service/config"
	"storefront-service/models"

	amqp "github.com/rabbitmq/amqp091-go"
)

// StartNotificationConsumer 消费订单事件并输出用户通知
func StartNotificationConsumer(ch *amqp.Channel, cfg *config.Config) {
	// 消费主订单事件队列
	msgs, err := ch.Consume(
		cfg.OrderQueue,
		"storefront-service", // consumers tag
		false,                // auto-ack
		false,                // exclusive
		false,                // no-local
		false,                // no-wait
		nil,
	)
	if err != nil {
		log.Fatalf("Failed to register consumers: %v", err)
	}

	go func() {
		for msg := range msgs {
			processOrderEvent(msg)
		}
	}()

	// 消费死信队列
	dlqMsgs, err := ch.Consume(
		cfg.DeadLetterQueue,
		"storefront-service-dlq", // consumers tag
		false,                    // auto-ack
		false,                    // exclusive
		false,                    // no-local
		false,                    // no-wait
		nil,
	)
	if err != nil {
		log.Printf("Failed to register DLQ consumers: %v", err)
	}

	go func() {
		for msg := range dlqMsgs {
			processDeadLetterMessage(msg)
		}
	}()
}

func processOrderEvent(msg amqp.Delivery) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("Recovered from panic in event processing: %v", r)
		}
	}()

	var event models.OrderEvent
	if err := json.Unmarshal(msg.Body, &event); err != nil {
		log.Printf("Invalid event format: %s", msg.Body)
		if err := msg.Nack(false, false); err != nil {
			log.Printf("Failed to nack message: %v", err)
		}
		return
	}

	// 这里对应前端的 toast 通知
	switch event.Type {
	case "item_added":
		log.Printf("[notification] session %s: %s (x%d) dodany do zamówienia, suma %s zł",
			event.SessionID, event.ProductName, event.Quantity, event.Total)
	case "order_confirmed":
		log.Printf("[notification] session %s: zamówienie %s potwierdzone, suma %s zł",
			event.SessionID, event.OrderNumber, event.Total)
	case "order_reset":
		log.Printf("[notification] session %s: rozpoczęto nowe zamówienie", event.SessionID)
	default:
		log.Printf("[notification] session %s: unknown event type %q", event.SessionID, event.Type)
	}

	if err := msg.Ack(false); err != nil {
		log.Printf("Failed to ack message: %v", err)
	}
}

func processDeadLetterMessage(msg amqp.Delivery) {
	log.Printf("Dead letter received: %s", msg.Body)
	if err := msg.Ack(false); err != nil {
		log.Printf("Failed to ack dead letter: %v", err)
	}
}
