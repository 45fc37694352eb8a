package push

import (
	"bytes"
	"encoding/json"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"
)

// Notification is the relay payload. The shape matches the Expo push API
// the mobile clients register their tokens with.
type Notification struct {
	To    string `json:"to"`
	Title string `json:"title"`
	Body  string `json:"body"`
}

// Relay posts notifications to the configured push endpoint. Delivery is
// best effort: failures are logged and swallowed, never retried, and never
// fail the operation that triggered them.
type Relay struct {
	url    string
	client *http.Client
}

func NewRelay(url string) *Relay {
	return &Relay{
		url: url,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// Send fires the notification asynchronously and returns immediately.
func (r *Relay) Send(n Notification) {
	if r == nil || r.url == "" || n.To == "" {
		return
	}
	go r.post(n)
}

func (r *Relay) post(n Notification) {
	payload, err := json.Marshal(n)
	if err != nil {
		log.Warn().Err(err).Msg("push: marshal notification")
		return
	}

	resp, err := r.client.Post(r.url, "application/json", bytes.NewReader(payload))
	if err != nil {
		log.Warn().Err(err).Msg("push: relay unreachable")
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		log.Warn().Int("status", resp.StatusCode).Msg("push: relay rejected notification")
	}
}
