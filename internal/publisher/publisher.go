package publisher

import (
	"encoding/json"
	"fmt"
	"log"

	"rotationhub/internal/models"

	mqtt "github.com/eclipse/paho.mqtt.golang"
)

// Publisher pushes active rotation documents to game clients over MQTT.
// Messages are retained so a client that connects later still receives
// the owner's current rotation.
type Publisher struct {
	mqttClient mqtt.Client
}

// NewPublisher creates a publisher on an established MQTT connection.
func NewPublisher(mqttClient mqtt.Client) *Publisher {
	return &Publisher{mqttClient: mqttClient}
}

func activeTopic(userID string) string {
	return fmt.Sprintf("rotations/%s/active", userID)
}

// PublishActive publishes a user's active rotation as a retained message.
func (p *Publisher) PublishActive(rot models.Rotation) error {
	payload, err := json.Marshal(rot)
	if err != nil {
		return err
	}
	topic := activeTopic(rot.UserID)
	log.Printf("PUBLISHER: Publishing active rotation %s to %s", rot.ID, topic)
	token := p.mqttClient.Publish(topic, 1, true, payload)
	token.Wait()
	return token.Error()
}

// ClearActive retracts the retained message for a user, used when the
// active rotation is deleted.
func (p *Publisher) ClearActive(userID string) error {
	token := p.mqttClient.Publish(activeTopic(userID), 1, true, []byte{})
	token.Wait()
	return token.Error()
}

// RepublishAll re-emits every active rotation, recovering retained state
// after a broker restart.
func (p *Publisher) RepublishAll(rotations []models.Rotation) {
	for _, rot := range rotations {
		if err := p.PublishActive(rot); err != nil {
			log.Printf("PUBLISHER: Failed to republish rotation %s: %v", rot.ID, err)
		}
	}
	log.Printf("PUBLISHER: Republished %d active rotations", len(rotations))
}
