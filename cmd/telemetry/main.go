package main

import (
	"askai/internal/ask"
	"encoding/json"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/nats-io/nats.go"
)

// Tails the ask telemetry subject and prints the events. Meant for local
// debugging and for forwarding into whatever sink operations wires up.
func main() {
	_ = godotenv.Load()

	natsURL := os.Getenv("NATS_URL")
	if natsURL == "" {
		natsURL = nats.DefaultURL
	}

	nc, err := nats.Connect(natsURL)
	if err != nil {
		log.Fatalf("NATS connect: %v", err)
	}
	defer nc.Drain()

	sub, err := nc.Subscribe(ask.TelemetrySubject, func(msg *nats.Msg) {
		var event ask.TelemetryEvent
		if err := json.Unmarshal(msg.Data, &event); err != nil {
			log.Printf("bad event: %v", err)
			return
		}
		log.Printf("%s session=%s payload=%v", event.Name, event.SessionID, event.Payload)
	})
	if err != nil {
		log.Fatalf("NATS subscribe: %v", err)
	}
	defer sub.Unsubscribe()

	log.Printf("Tailing %s on %s", ask.TelemetrySubject, natsURL)

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop
}
