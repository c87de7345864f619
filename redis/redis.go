package redis

import (
	"context"

	"github.com/go-redis/redis/v8"
	"github.com/pollhype/slack.pollhype.app/configure"
)

var Ctx = context.Background()

var Client *redis.Client

// Setup connects the shared client. Called once from main before the
// server starts taking traffic.
func Setup() {
	options, err := redis.ParseURL(configure.Config.GetString("redis_uri"))
	if err != nil {
		panic(err)
	}

	Client = redis.NewClient(options)
}

type Message = redis.Message

const ErrNil = redis.Nil

type StringCmd = redis.StringCmd

type Pipeliner = redis.Pipeliner

type PubSub = redis.PubSub
