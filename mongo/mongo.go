package mongo

import (
	"context"

	"github.com/pollhype/slack.pollhype.app/configure"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	log "github.com/sirupsen/logrus"
)

var Database *mongo.Database
var Ctx = context.TODO()

var ErrNoDocuments = mongo.ErrNoDocuments

// Setup connects to mongodb and ensures the indexes the store relies
// on. Called once from main before the server starts taking traffic.
func Setup() {
	clientOptions := options.Client().ApplyURI(configure.Config.GetString("mongo_uri"))
	client, err := mongo.Connect(Ctx, clientOptions)
	if err != nil {
		panic(err)
	}

	err = client.Ping(Ctx, nil)
	if err != nil {
		panic(err)
	}

	Database = client.Database(configure.Config.GetString("mongo_db"))

	_, err = Database.Collection("polls").Indexes().CreateMany(Ctx, []mongo.IndexModel{
		{Keys: bson.M{"creator_id": 1}},
		{Keys: bson.M{"messages.ts": 1}},
	})
	if err != nil {
		log.Errorf("mongodb, err=%v", err)
	}

	unique := true
	_, err = Database.Collection("drafts").Indexes().CreateOne(Ctx, mongo.IndexModel{
		Keys:    bson.M{"user_id": 1},
		Options: &options.IndexOptions{Unique: &unique},
	})
	if err != nil {
		log.Errorf("mongodb, err=%v", err)
	}
}
