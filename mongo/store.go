package mongo

import (
	"fmt"
	"time"

	jsoniter "github.com/json-iterator/go"
	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/pollhype/slack.pollhype.app/poll"
	"github.com/pollhype/slack.pollhype.app/redis"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const pollCacheTTL = time.Hour * 6

func pollCacheKey(id primitive.ObjectID) string {
	return fmt.Sprintf("cached:polls:%s", id.Hex())
}

func invalidatePoll(id primitive.ObjectID) {
	if err := redis.Client.Del(redis.Ctx, pollCacheKey(id)).Err(); err != nil && err != redis.ErrNil {
		log.Errorf("redis, err=%v", err)
	}
}

func cachePoll(p *poll.Poll) {
	pollStr, err := json.MarshalToString(p)
	if err != nil {
		log.Errorf("json, err=%v", err)
		return
	}
	if err = redis.Client.Set(redis.Ctx, pollCacheKey(p.ID), pollStr, pollCacheTTL).Err(); err != nil {
		log.Errorf("redis, err=%v", err)
	}
}

// FetchPoll reads a poll through the redis cache. A missing poll is
// (nil, nil) and negative-cached with a "dead" marker so repeated
// lookups of deleted polls stay off mongo.
func FetchPoll(id primitive.ObjectID) (*poll.Poll, error) {
	redisKey := pollCacheKey(id)

	val, err := redis.Client.Get(redis.Ctx, redisKey).Result()
	if err != nil && err != redis.ErrNil {
		log.Errorf("redis, err=%v", err)
		return nil, err
	}

	if val == "dead" {
		return nil, nil
	}

	p := &poll.Poll{}
	if err == redis.ErrNil {
		result := Database.Collection("polls").FindOne(Ctx, bson.M{
			"_id": id,
		})
		err = result.Err()
		if err == ErrNoDocuments {
			if err = redis.Client.Set(redis.Ctx, redisKey, "dead", pollCacheTTL).Err(); err != nil {
				log.Errorf("redis, err=%v", err)
			}
			return nil, nil
		}
		if err == nil {
			err = result.Decode(p)
		}
		if err != nil {
			log.Errorf("mongo, err=%v", err)
			return nil, err
		}
		cachePoll(p)
	} else if err = json.UnmarshalFromString(val, p); err != nil {
		log.Errorf("json, err=%v", err)
		return nil, err
	}

	return p, nil
}

// FindPollByMessage resolves a poll from one of its posted messages.
// Missing is (nil, nil).
func FindPollByMessage(channel, ts string) (*poll.Poll, error) {
	result := Database.Collection("polls").FindOne(Ctx, bson.M{
		"messages": bson.M{"$elemMatch": bson.M{"ts": ts, "channel": channel}},
	})
	err := result.Err()
	if err == ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		log.Errorf("mongo, err=%v", err)
		return nil, err
	}
	p := &poll.Poll{}
	if err = result.Decode(p); err != nil {
		log.Errorf("mongo, err=%v", err)
		return nil, err
	}
	return p, nil
}

func InsertPoll(p *poll.Poll) error {
	res, err := Database.Collection("polls").InsertOne(Ctx, p)
	if err != nil {
		log.Errorf("mongo, err=%v", err)
		return err
	}
	p.ID = res.InsertedID.(primitive.ObjectID)
	cachePoll(p)
	return nil
}

// DeletePoll removes the document and leaves a "dead" marker in the
// cache so stale vote buttons resolve to a clean no-op.
func DeletePoll(id primitive.ObjectID) error {
	_, err := Database.Collection("polls").DeleteOne(Ctx, bson.M{"_id": id})
	if err != nil {
		log.Errorf("mongo, err=%v", err)
		return err
	}
	if err = redis.Client.Set(redis.Ctx, pollCacheKey(id), "dead", pollCacheTTL).Err(); err != nil {
		log.Errorf("redis, err=%v", err)
	}
	return nil
}

func RecentPollsByCreator(userID string, limit int64) ([]poll.Poll, error) {
	opts := options.Find().SetSort(bson.M{"_id": -1}).SetLimit(limit)
	cursor, err := Database.Collection("polls").Find(Ctx, bson.M{"creator_id": userID}, opts)
	if err != nil {
		log.Errorf("mongo, err=%v", err)
		return nil, err
	}
	var polls []poll.Poll
	if err = cursor.All(Ctx, &polls); err != nil {
		log.Errorf("mongo, err=%v", err)
		return nil, err
	}
	return polls, nil
}

// ApplyVoteChange issues the atomic voter-set updates for one toggle.
// Concurrent toggles from different users converge because every step
// is a single-document $pull/$addToSet, never a whole-document write.
func ApplyVoteChange(pollID, choiceID primitive.ObjectID, userID string, change poll.VoteChange) error {
	col := Database.Collection("polls")

	if change.ClearOthers {
		_, err := col.UpdateOne(Ctx, bson.M{"_id": pollID}, bson.M{
			"$pull": bson.M{"choices.$[].voters": userID},
		})
		if err != nil {
			log.Errorf("mongo, err=%v", err)
			return err
		}
	}

	target := bson.M{"_id": pollID, "choices._id": choiceID}
	if change.Add {
		_, err := col.UpdateOne(Ctx, target, bson.M{
			"$addToSet": bson.M{"choices.$.voters": userID},
		})
		if err != nil {
			log.Errorf("mongo, err=%v", err)
			return err
		}
	} else if change.Remove {
		_, err := col.UpdateOne(Ctx, target, bson.M{
			"$pull": bson.M{"choices.$.voters": userID},
		})
		if err != nil {
			log.Errorf("mongo, err=%v", err)
			return err
		}
	}

	invalidatePoll(pollID)
	return nil
}

// SetPollContent overwrites the editable fields after an edit submit.
func SetPollContent(id primitive.ObjectID, question string, choices []poll.Choice, allowAdd bool) error {
	_, err := Database.Collection("polls").UpdateOne(Ctx, bson.M{"_id": id}, bson.M{
		"$set": bson.M{
			"question":                    question,
			"choices":                     choices,
			"allow_others_to_add_options": allowAdd,
		},
	})
	if err != nil {
		log.Errorf("mongo, err=%v", err)
		return err
	}
	invalidatePoll(id)
	return nil
}

func PushChoice(id primitive.ObjectID, c poll.Choice) error {
	_, err := Database.Collection("polls").UpdateOne(Ctx, bson.M{"_id": id}, bson.M{
		"$push": bson.M{"choices": c},
	})
	if err != nil {
		log.Errorf("mongo, err=%v", err)
		return err
	}
	invalidatePoll(id)
	return nil
}

func PullVoterEverywhere(id primitive.ObjectID, userID string) error {
	_, err := Database.Collection("polls").UpdateOne(Ctx, bson.M{"_id": id}, bson.M{
		"$pull": bson.M{"choices.$[].voters": userID},
	})
	if err != nil {
		log.Errorf("mongo, err=%v", err)
		return err
	}
	invalidatePoll(id)
	return nil
}

func PushMessageRef(id primitive.ObjectID, ref poll.MessageRef) error {
	_, err := Database.Collection("polls").UpdateOne(Ctx, bson.M{"_id": id}, bson.M{
		"$push": bson.M{"messages": ref},
	})
	if err != nil {
		log.Errorf("mongo, err=%v", err)
		return err
	}
	invalidatePoll(id)
	return nil
}

// UpsertDraft replaces any prior draft for the user.
func UpsertDraft(d *poll.Draft) error {
	upsert := true
	_, err := Database.Collection("drafts").UpdateOne(Ctx, bson.M{"user_id": d.UserID}, bson.M{
		"$set": bson.M{
			"question":                    d.Question,
			"choices":                     d.Choices,
			"allow_multiple_votes":        d.AllowMultipleVotes,
			"allow_others_to_add_options": d.AllowOthersToAddOptions,
			"channels":                    d.Channels,
		},
	}, &options.UpdateOptions{Upsert: &upsert})
	if err != nil {
		log.Errorf("mongo, err=%v", err)
	}
	return err
}

func FindDraft(userID string) (*poll.Draft, error) {
	result := Database.Collection("drafts").FindOne(Ctx, bson.M{"user_id": userID})
	err := result.Err()
	if err == ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		log.Errorf("mongo, err=%v", err)
		return nil, err
	}
	d := &poll.Draft{}
	if err = result.Decode(d); err != nil {
		log.Errorf("mongo, err=%v", err)
		return nil, err
	}
	return d, nil
}

func DeleteDraft(userID string) error {
	_, err := Database.Collection("drafts").DeleteOne(Ctx, bson.M{"user_id": userID})
	if err != nil {
		log.Errorf("mongo, err=%v", err)
	}
	return err
}
