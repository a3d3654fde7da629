package eventpubsub

import (
	"github.com/asaskevich/EventBus"
	log "github.com/sirupsen/logrus"

	"github.com/strikepick/strikepick/src/models"
)

const TopicSelectionCompleted = "selection:completed"

var bus EventBus.Bus

func Init() {
	bus = EventBus.New()
}

func Subscribe(topic string, callbackFn interface{}) error {
	if bus == nil {
		Init()
	}

	if err := bus.SubscribeAsync(topic, callbackFn, false); err != nil {
		return err
	}

	log.Infof("Subscribed to topic %s", topic)
	return nil
}

// PublishSelectionCompleted pushes a finished result onto the bus. Publishing
// is a no-op until Init has run, so library callers that never wire the bus
// pay nothing.
func PublishSelectionCompleted(result *models.SelectionResult) {
	if bus == nil {
		return
	}

	bus.Publish(TopicSelectionCompleted, result)
}
