package db

import (
	"context"
	"log"
	"os"

	"github.com/joho/godotenv"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	UserCollection          *mongo.Collection
	GuideProfilesCollection *mongo.Collection
	LocationsCollection     *mongo.Collection
	BookingsCollection      *mongo.Collection
	PaymentsCollection      *mongo.Collection
	ReviewsCollection       *mongo.Collection
	MessagesCollection      *mongo.Collection
	Client                  *mongo.Client
)

// Initialize MongoDB connection
func init() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found; using system environment")
	}

	uri := os.Getenv("MONGODB_URI")
	if uri == "" {
		uri = "mongodb://localhost:27017"
	}
	dbName := os.Getenv("MONGO_DB")
	if dbName == "" {
		dbName = "tourdb"
	}

	var err error
	Client, err = mongo.Connect(context.TODO(), options.Client().ApplyURI(uri))
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}

	UserCollection = Client.Database(dbName).Collection("users")
	GuideProfilesCollection = Client.Database(dbName).Collection("guideprofiles")
	LocationsCollection = Client.Database(dbName).Collection("locations")
	BookingsCollection = Client.Database(dbName).Collection("bookings")
	PaymentsCollection = Client.Database(dbName).Collection("payments")
	ReviewsCollection = Client.Database(dbName).Collection("reviews")
	MessagesCollection = Client.Database(dbName).Collection("messages")
}
