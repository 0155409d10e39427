package controllers

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"tmms/database"
	"tmms/models"
)

// ListAll returns every order, newest first. Admin only.
func (o *OrderController) ListAll(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := database.OrderCollection.Find(ctx, bson.M{}, opts)
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

// GetAny returns any order by id, without an ownership filter. Admin only.
func (o *OrderController) GetAny(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var order models.Order
	err := database.OrderCollection.FindOne(ctx, bson.M{"orderId": c.Param("orderId")}).Decode(&order)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Order not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"order": order})
}

// UpdateStatus moves an order along pending → confirmed → shipped →
// delivered, with cancellation allowed before shipping. Invalid jumps are
// rejected with the offending pair named.
func (o *OrderController) UpdateStatus(c *gin.Context) {
	var input struct {
		Status string `json:"status" binding:"required,oneof=pending confirmed shipped delivered cancelled"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid status value"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var order models.Order
	err := database.OrderCollection.FindOne(ctx, bson.M{"orderId": c.Param("orderId")}).Decode(&order)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Order not found"})
		return
	}

	if !models.CanTransition(order.Status, input.Status) {
		c.JSON(http.StatusBadRequest, gin.H{
			"message": fmt.Sprintf("Cannot change status from %s to %s", order.Status, input.Status),
		})
		return
	}

	// Filter on the current status too, so a concurrent update cannot
	// sneak an order through a transition that was legal a moment ago.
	update := bson.M{"$set": bson.M{"status": input.Status, "updatedAt": time.Now()}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var updated models.Order
	err = database.OrderCollection.FindOneAndUpdate(ctx,
		bson.M{"orderId": order.OrderID, "status": order.Status}, update, opts).Decode(&updated)
	if err != nil {
		c.JSON(http.StatusConflict, gin.H{"message": "Order status changed concurrently, retry"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Order status updated", "order": updated})
}
