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

type ContactController struct{}

func NewContactController() *ContactController {
	return &ContactController{}
}

// Create accepts a public contact message.
func (ct *ContactController) Create(c *gin.Context) {
	var msg models.ContactMessage
	if err := c.ShouldBindJSON(&msg); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Name, email and message are required"})
		return
	}

	msg.ID = primitive.NewObjectID()
	msg.Email = strings.ToLower(msg.Email)
	msg.CreatedAt = time.Now()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if _, err := database.ContactCollection.InsertOne(ctx, msg); err != nil {
		log.Error().Err(err).Msg("contact message insert failed")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error while processing your request"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Message received successfully",
		"data":    msg,
	})
}

// List returns all contact messages, newest first.
func (ct *ContactController) List(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := database.ContactCollection.Find(ctx, bson.M{}, opts)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}

	messages := []models.ContactMessage{}
	if err := cursor.All(ctx, &messages); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}

	c.JSON(http.StatusOK, messages)
}
