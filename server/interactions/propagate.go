package interactions

import (
	"fmt"
	"sync"

	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/pollhype/slack.pollhype.app/mongo"
	"github.com/pollhype/slack.pollhype.app/poll"
	"github.com/pollhype/slack.pollhype.app/redis"
	"github.com/pollhype/slack.pollhype.app/slack"
	"github.com/pollhype/slack.pollhype.app/views"
)

// broadcastPoll posts the initial rendering to every target channel,
// one concurrent post per channel, and records a MessageRef per
// successful post. One failing channel never blocks the others, and
// nothing here is retried.
func broadcastPoll(p *poll.Poll) {
	blocks := views.PollBlocks(poll.Render(p, poll.Aggregate(p)))

	wg := sync.WaitGroup{}
	wg.Add(len(p.Channels))
	for _, channel := range p.Channels {
		go func(channel string) {
			defer wg.Done()

			res, err := slack.PostMessage(channel, p.Question, blocks)
			if err != nil {
				log.Errorf("broadcast channel=%s, err=%v", channel, err)
				return
			}

			permalink, err := slack.GetPermalink(res.Channel, res.TS)
			if err != nil {
				// Best effort; the home tab just loses its link.
				log.Errorf("permalink channel=%s, err=%v", channel, err)
			}

			if err = mongo.PushMessageRef(p.ID, poll.MessageRef{
				Channel:   res.Channel,
				TS:        res.TS,
				Permalink: permalink,
			}); err != nil {
				log.Errorf("broadcast channel=%s, err=%v", channel, err)
			}
		}(channel)
	}
	wg.Wait()

	publishUpdate(p.ID)
}

// propagatePoll re-renders the current poll state once and pushes it to
// every previously posted copy. Per-target failures are logged and
// isolated; the mutation that triggered us is already durable. New
// MessageRefs are never created here.
func propagatePoll(id primitive.ObjectID) {
	p, err := mongo.FetchPoll(id)
	if err != nil {
		return
	}
	if p == nil {
		log.Warnf("propagate poll=%s, poll not found", id.Hex())
		return
	}

	dp := poll.Render(p, poll.Aggregate(p))
	blocks := views.PollBlocks(dp)

	wg := sync.WaitGroup{}
	wg.Add(len(p.Messages))
	for _, ref := range p.Messages {
		go func(ref poll.MessageRef) {
			defer wg.Done()
			if err := slack.UpdateMessage(ref.Channel, ref.TS, p.Question, blocks); err != nil {
				log.Errorf("propagate channel=%s, err=%v", ref.Channel, err)
			}
		}(ref)
	}
	wg.Wait()

	publishUpdate(id)
}

// publishUpdate pushes the freshly aggregated state onto the poll's
// event channel for live watchers.
func publishUpdate(id primitive.ObjectID) {
	p, err := mongo.FetchPoll(id)
	if err != nil || p == nil {
		return
	}

	payload, err := json.MarshalToString(poll.Render(p, poll.Aggregate(p)))
	if err != nil {
		log.Errorf("json, err=%v", err)
		return
	}

	event := fmt.Sprintf("events:poll:update:%s", id.Hex())
	if err = redis.Client.Publish(redis.Ctx, event, payload).Err(); err != nil {
		log.Errorf("redis, err=%v", err)
	}
}
