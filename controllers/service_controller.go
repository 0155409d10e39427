package controllers

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	"tmms/database"
	"tmms/models"
)

type ServiceController struct{}

func NewServiceController() *ServiceController {
	return &ServiceController{}
}

// Create accepts a public repair-service booking.
func (s *ServiceController) Create(c *gin.Context) {
	var booking models.ServiceBooking
	if err := c.ShouldBindJSON(&booking); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Missing or invalid booking fields"})
		return
	}

	booking.ID = primitive.NewObjectID()
	booking.Email = strings.ToLower(booking.Email)
	booking.Status = models.BookingPending
	booking.CreatedAt = time.Now()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if _, err := database.ServiceBookingCollection.InsertOne(ctx, booking); err != nil {
		log.Error().Err(err).Msg("service booking insert failed")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error while processing your request"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Service booking created successfully",
		"data":    booking,
	})
}

// List returns all service bookings, newest first.
func (s *ServiceController) List(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := database.ServiceBookingCollection.Find(ctx, bson.M{}, opts)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}

	bookings := []models.ServiceBooking{}
	if err := cursor.All(ctx, &bookings); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}

	c.JSON(http.StatusOK, bookings)
}
