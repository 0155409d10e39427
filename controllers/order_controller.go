package controllers

import (
	"context"
	"math"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"tmms/database"
	"tmms/middleware"
	"tmms/models"
)

type OrderController struct{}

func NewOrderController() *OrderController {
	return &OrderController{}
}

// orderIDAttempts bounds the regenerate-and-retry loop when the unique index
// reports a collision.
const orderIDAttempts = 3

// newOrderID draws from a random UUID; uniqueness is ultimately enforced by
// the store-level index, not by the generator.
func newOrderID() string {
	hex := strings.ReplaceAll(uuid.NewString(), "-", "")
	return "ORD-" + strings.ToUpper(hex[:12])
}

// Create persists a new order. The client-submitted total is a display hint
// only: the server recomputes the sum of price*quantity and rejects any
// mismatch.
func (o *OrderController) Create(c *gin.Context) {
	user := middleware.CurrentUser(c)

	var input struct {
		Items           []models.OrderItem     `json:"items" binding:"required,min=1,dive"`
		ShippingDetails models.ShippingDetails `json:"shippingDetails" binding:"required"`
		PaymentMethod   string                 `json:"paymentMethod" binding:"required,oneof=cod upi card"`
		TotalAmount     float64                `json:"totalAmount" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid order payload"})
		return
	}

	var computed float64
	for _, item := range input.Items {
		computed += item.Price * float64(item.Quantity)
	}
	// Compare at paise precision so float representation noise does not
	// reject honest totals.
	if math.Round(computed*100) != math.Round(input.TotalAmount*100) {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Order total does not match line items"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	now := time.Now()
	order := models.Order{
		UserID:          user.ID,
		Items:           input.Items,
		TotalAmount:     computed,
		ShippingDetails: input.ShippingDetails,
		PaymentMethod:   input.PaymentMethod,
		PaymentStatus:   models.PaymentPending,
		Status:          models.OrderPending,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	var inserted bool
	for attempt := 0; attempt < orderIDAttempts && !inserted; attempt++ {
		order.ID = primitive.NewObjectID()
		order.OrderID = newOrderID()
		_, err := database.OrderCollection.InsertOne(ctx, order)
		if err == nil {
			inserted = true
			break
		}
		if !mongo.IsDuplicateKeyError(err) {
			log.Error().Err(err).Msg("order insert failed")
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to create order"})
			return
		}
	}
	if !inserted {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to create order"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Order placed successfully",
		"order": gin.H{
			"orderId":     order.OrderID,
			"totalAmount": order.TotalAmount,
			"status":      order.Status,
			"createdAt":   order.CreatedAt,
		},
	})
}

// MyOrders lists the caller's orders, newest first.
func (o *OrderController) MyOrders(c *gin.Context) {
	user := middleware.CurrentUser(c)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := database.OrderCollection.Find(ctx, bson.M{"userId": user.ID}, opts)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch orders"})
		return
	}

	orders := []models.Order{}
	if err := cursor.All(ctx, &orders); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch orders"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"orders": orders})
}

// Get returns one order; ownership is part of the filter, so another user's
// order id behaves exactly like a missing one.
func (o *OrderController) Get(c *gin.Context) {
	user := middleware.CurrentUser(c)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var order models.Order
	err := database.OrderCollection.FindOne(ctx, bson.M{
		"orderId": c.Param("orderId"),
		"userId":  user.ID,
	}).Decode(&order)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Order not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"order": order})
}
