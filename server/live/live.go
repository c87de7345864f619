package live

import (
	"fmt"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	jsoniter "github.com/json-iterator/go"
	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/pollhype/slack.pollhype.app/mongo"
	"github.com/pollhype/slack.pollhype.app/poll"
	"github.com/pollhype/slack.pollhype.app/redis"
	"github.com/pollhype/slack.pollhype.app/utils"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Hub fans poll update events out of redis pubsub to websocket
// watchers. One redis subscription per watched poll, shared by every
// watcher of that poll.
type Hub struct {
	mtx    *sync.Mutex
	subs   map[string][]chan poll.DisplayPayload
	pubsub *redis.PubSub
}

func NewHub() *Hub {
	h := &Hub{
		mtx:    &sync.Mutex{},
		subs:   make(map[string][]chan poll.DisplayPayload),
		pubsub: redis.Client.Subscribe(redis.Ctx),
	}

	go func() {
		ch := h.pubsub.Channel()
		for {
			msg := <-ch
			dp := poll.DisplayPayload{}
			if err := json.UnmarshalFromString(msg.Payload, &dp); err != nil {
				log.Errorf("redis, err=%v", err)
				continue
			}
			wg := sync.WaitGroup{}
			h.mtx.Lock()
			if v, ok := h.subs[msg.Channel]; ok {
				wg.Add(len(v))
				for _, c := range v {
					go func(c chan poll.DisplayPayload) {
						defer wg.Done()
						defer recover()
						c <- dp
					}(c)
				}
			}
			wg.Wait()
			h.mtx.Unlock()
		}
	}()

	return h
}

func eventKey(pollID string) string {
	return fmt.Sprintf("events:poll:update:%s", pollID)
}

func (h *Hub) subscribe(pollID string, ch chan poll.DisplayPayload) error {
	event := eventKey(pollID)
	h.mtx.Lock()
	defer h.mtx.Unlock()
	if v, ok := h.subs[event]; ok {
		h.subs[event] = append(v, ch)
		return nil
	}
	h.subs[event] = []chan poll.DisplayPayload{ch}
	return h.pubsub.Subscribe(redis.Ctx, event)
}

func (h *Hub) unsubscribe(pollID string, ch chan poll.DisplayPayload) error {
	event := eventKey(pollID)
	h.mtx.Lock()
	defer h.mtx.Unlock()
	remaining := filterSlice(h.subs[event], ch)
	if len(remaining) == 0 {
		delete(h.subs, event)
		return h.pubsub.Unsubscribe(redis.Ctx, event)
	}
	h.subs[event] = remaining
	return nil
}

func filterSlice(s []chan poll.DisplayPayload, r chan poll.DisplayPayload) []chan poll.DisplayPayload {
	for i, v := range s {
		if v == r {
			return append(s[:i], s[i+1:]...)
		}
	}
	return s
}

// Mount registers the read-only watch endpoint. A watcher gets the
// current rendering immediately, then a fresh one after every
// propagation, plus heartbeats to keep the connection honest.
func Mount(app fiber.Router, hub *Hub) {
	app.Use("/live", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return c.SendStatus(426)
	})

	app.Get("/live/:poll", websocket.New(func(c *websocket.Conn) {
		id, err := primitive.ObjectIDFromHex(c.Params("poll"))
		if err != nil {
			c.WriteMessage(websocket.TextMessage, utils.S2B("UNKNOWN_POLL"))
			return
		}

		p, err := mongo.FetchPoll(id)
		if err != nil || p == nil {
			c.WriteMessage(websocket.TextMessage, utils.S2B("UNKNOWN_POLL"))
			return
		}

		updates := make(chan poll.DisplayPayload, 16)
		if err = hub.subscribe(id.Hex(), updates); err != nil {
			log.Errorf("redis, err=%v", err)
			return
		}

		closeChan := make(chan struct{})
		mtx := &sync.Mutex{}

		write := func(dp poll.DisplayPayload) bool {
			data, err := json.Marshal(dp)
			if err != nil {
				log.Errorf("json, err=%v", err)
				return true
			}
			mtx.Lock()
			defer mtx.Unlock()
			return c.WriteMessage(websocket.TextMessage, data) == nil
		}

		go func() {
			for {
				select {
				case dp := <-updates:
					if !write(dp) {
						return
					}
				case <-time.After(60 * time.Second):
					mtx.Lock()
					err := c.WriteMessage(websocket.TextMessage, utils.S2B("HEARTBEAT"))
					mtx.Unlock()
					if err != nil {
						return
					}
				case <-closeChan:
					return
				}
			}
		}()

		write(poll.Render(p, poll.Aggregate(p)))

		// Watchers never send anything meaningful; the read loop only
		// detects the connection going away.
		for {
			if _, _, err := c.ReadMessage(); err != nil {
				break
			}
		}

		close(closeChan)
		if err = hub.unsubscribe(id.Hex(), updates); err != nil {
			log.Errorf("redis, err=%v", err)
		}
	}))
}
