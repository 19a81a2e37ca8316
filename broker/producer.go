package broker

import (
	"encoding/json"
	"log"

	"github.com/nats-io/nats.go"
)

var conn *nats.Conn

// InitProducer connects to the NATS server. The application runs without it;
// Publish becomes a no-op when the connection was never established.
func InitProducer(url string) error {
	if url == "" {
		url = nats.DefaultURL
	}

	nc, err := nats.Connect(url,
		nats.MaxReconnects(-1),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			log.Printf("Reconnected to NATS at %s", nc.ConnectedUrl())
		}),
	)
	if err != nil {
		return err
	}

	conn = nc
	log.Println("NATS producer initialized")
	return nil
}

// Publish sends an event on the given subject, fire and forget.
func Publish(subject string, event Event) {
	if conn == nil {
		return
	}

	data, err := json.Marshal(event)
	if err != nil {
		log.Printf("Failed to marshal event %s: %v", event.Event, err)
		return
	}

	if err := conn.Publish(subject, data); err != nil {
		log.Printf("Failed to publish %s to %s: %v", event.Event, subject, err)
	}
}

func CloseProducer() {
	if conn != nil {
		if err := conn.Drain(); err != nil {
			log.Printf("Failed to drain NATS connection: %v", err)
		}
		conn = nil
	}
}
