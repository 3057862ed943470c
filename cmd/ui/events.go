package main

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/avast/retry-go"
	cloudevents "github.com/cloudevents/sdk-go/v2"
	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/gofrs/uuid"
)

// feedSize is how many entries the live ticker keeps around.
const feedSize = 5

var feedLocations = []string{"Pakistan", "India", "USA", "UK", "Canada", "Australia", "Germany"}

type feedEntry struct {
	Title    string    `json:"title"`
	Location string    `json:"location"`
	Time     time.Time `json:"time"`
}

type liveFeed struct {
	mu      sync.Mutex
	entries []feedEntry
}

func (f *liveFeed) add(e feedEntry) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.entries = append([]feedEntry{e}, f.entries...)
	if len(f.entries) > feedSize {
		f.entries = f.entries[:feedSize]
	}
}

func (f *liveFeed) list() []feedEntry {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]feedEntry, len(f.entries))
	copy(out, f.entries)
	return out
}

// feedLoop periodically fakes a download notification for a random record.
// It never touches the counters.
func (app *uiApp) feedLoop(done chan struct{}) {
	ticker := time.NewTicker(app.cfg.FeedInterval)
	defer ticker.Stop()
	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			book, ok := app.catalog.Random()
			if !ok {
				continue
			}
			app.announceDownload(book.Title)
			feedEvents.Inc()
		}
	}
}

// announceDownload pushes a feed entry and, when a broker is configured,
// publishes it as a cloudevent.
func (app *uiApp) announceDownload(title string) {
	entry := feedEntry{
		Title:    title,
		Location: feedLocations[rand.Intn(len(feedLocations))],
		Time:     time.Now(),
	}
	app.feed.add(entry)

	e, err := newEvent("libpro/ui", "libpro.download", map[string]string{
		"title":    title,
		"location": entry.Location,
	})
	if err != nil {
		app.logger.WithField("err", err).Warning("could not build event")
		return
	}
	if err := app.pushEvent(e); err != nil {
		app.logger.WithField("err", err).Warning("could not publish event")
	}
}

func newEvent(src, ty string, data map[string]string) (cloudevents.Event, error) {
	e := cloudevents.NewEvent()
	e.SetSource(src)
	e.SetType(ty)
	e.SetID(uuid.Must(uuid.NewV4()).String())
	e.SetTime(time.Now())
	err := e.SetData(cloudevents.ApplicationJSON, data)
	return e, err
}

func (app *uiApp) pushEvent(e cloudevents.Event) error {
	if app.mqttClient == nil {
		return nil
	}

	bytes, err := json.Marshal(e)
	if err != nil {
		return err
	}

	topic := fmt.Sprintf("%s/%s/libpro", app.cfg.MQTTTopic, e.Type())

	if token := app.mqttClient.Publish(topic, 0, false, bytes); token.Wait() && token.Error() != nil {
		return token.Error()
	}

	return nil
}

func newMQTTClient(addr, id string) (mqtt.Client, error) {

	opts := mqtt.NewClientOptions().AddBroker(addr).SetClientID(id)
	opts.SetKeepAlive(2 * time.Second)
	opts.SetPingTimeout(2 * time.Second)

	c := mqtt.NewClient(opts)
	err := retry.Do(func() error {
		if token := c.Connect(); token.Wait() && token.Error() != nil {
			return token.Error()
		}
		return nil
	},
		retry.Attempts(5),
		retry.DelayType(retry.BackOffDelay),
		retry.LastErrorOnly(true),
	)
	if err != nil {
		return nil, err
	}

	return c, nil
}
