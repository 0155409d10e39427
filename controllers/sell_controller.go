package controllers

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	"tmms/database"
	"tmms/models"
	"tmms/storage"
)

const maxSellPhotos = 5

type SellController struct {
	uploads *storage.Uploads
}

func NewSellController(uploads *storage.Uploads) *SellController {
	return &SellController{uploads: uploads}
}

// Create accepts a public sell-request submission: multipart form fields
// plus up to five photos. Missing required fields are reported together.
func (s *SellController) Create(c *gin.Context) {
	required := []string{"name", "email", "phone", "machineType", "brand", "model", "age", "condition", "expectedPrice"}

	var missing []string
	for _, field := range required {
		if strings.TrimSpace(c.PostForm(field)) == "" {
			missing = append(missing, field)
		}
	}
	if len(missing) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"message": fmt.Sprintf("Missing required fields: %s", strings.Join(missing, ", ")),
			"fields":  missing,
		})
		return
	}

	expectedPrice, err := strconv.ParseFloat(c.PostForm("expectedPrice"), 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "expectedPrice must be a number"})
		return
	}

	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid form data"})
		return
	}

	files := form.File["photos"]
	if len(files) > maxSellPhotos {
		c.JSON(http.StatusBadRequest, gin.H{"message": fmt.Sprintf("At most %d photos are allowed", maxSellPhotos)})
		return
	}

	// Validate every file before writing any, so a bad fifth photo does
	// not leave four orphans on disk.
	for _, file := range files {
		if err := s.uploads.Validate(file); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
			return
		}
	}

	photos := []string{}
	for _, file := range files {
		path, err := s.uploads.Save(file, "sell")
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to store photo"})
			return
		}
		photos = append(photos, path)
	}

	request := models.SellRequest{
		ID:            primitive.NewObjectID(),
		Name:          c.PostForm("name"),
		Email:         strings.ToLower(c.PostForm("email")),
		Phone:         c.PostForm("phone"),
		MachineType:   c.PostForm("machineType"),
		Brand:         c.PostForm("brand"),
		Model:         c.PostForm("model"),
		Age:           c.PostForm("age"),
		Condition:     c.PostForm("condition"),
		Description:   c.PostForm("description"),
		ExpectedPrice: expectedPrice,
		Photos:        photos,
		Status:        models.SellPending,
		CreatedAt:     time.Now(),
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if _, err := database.SellRequestCollection.InsertOne(ctx, request); err != nil {
		log.Error().Err(err).Msg("sell request insert failed")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error while processing your request"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Sell request submitted successfully",
		"data":    request,
	})
}

// List returns all sell requests, newest first.
func (s *SellController) List(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := database.SellRequestCollection.Find(ctx, bson.M{}, opts)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}

	requests := []models.SellRequest{}
	if err := cursor.All(ctx, &requests); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}

	c.JSON(http.StatusOK, requests)
}
