package database

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"tmms/config"
)

var Client *mongo.Client
var DB *mongo.Database

var UserCollection *mongo.Collection
var OrderCollection *mongo.Collection
var SellRequestCollection *mongo.Collection
var ServiceBookingCollection *mongo.Collection
var ContactCollection *mongo.Collection

// Connect dials MongoDB and wires up the collection handles. It also creates
// the unique indexes the write paths rely on (duplicate email, duplicate
// order id), so a conflicting insert fails at the store instead of racing.
func Connect(cfg *config.Config) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		return err
	}
	if err := client.Ping(ctx, nil); err != nil {
		return err
	}

	Client = client
	DB = client.Database(cfg.DBName)

	UserCollection = DB.Collection("users")
	OrderCollection = DB.Collection("orders")
	SellRequestCollection = DB.Collection("sellrequests")
	ServiceBookingCollection = DB.Collection("servicebookings")
	ContactCollection = DB.Collection("contacts")

	if err := ensureIndexes(ctx); err != nil {
		return err
	}

	log.Info().Str("db", cfg.DBName).Msg("connected to MongoDB")
	return nil
}

func ensureIndexes(ctx context.Context) error {
	_, err := UserCollection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return err
	}

	_, err = OrderCollection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "orderId", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}

// Disconnect closes the client; used on shutdown.
func Disconnect() {
	if Client == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = Client.Disconnect(ctx)
}
