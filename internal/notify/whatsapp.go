// README: WhatsApp gateway client for status-change messages.
package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"
)

// WhatsAppGateway posts messages to a WhatsApp Business API style gateway.
// Numbers are sent with the Indian country code prefixed, matching the
// stored 10-digit mobile numbers.
type WhatsAppGateway struct {
	endpoint string
	token    string
	client   *http.Client
}

func NewWhatsAppGateway(endpoint, token string) *WhatsAppGateway {
	return &WhatsAppGateway{
		endpoint: endpoint,
		token:    token,
		client:   &http.Client{Timeout: 10 * time.Second},
	}
}

type whatsAppPayload struct {
	To   string `json:"to"`
	Text string `json:"text"`
}

func (g *WhatsAppGateway) Notify(ctx context.Context, phone, message string) error {
	body, err := json.Marshal(whatsAppPayload{To: "91" + phone, Text: message})
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.endpoint, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if g.token != "" {
		req.Header.Set("Authorization", "Bearer "+g.token)
	}

	resp, err := g.client.Do(req)
	if err != nil {
		return fmt.Errorf("whatsapp gateway: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("whatsapp gateway: status %d", resp.StatusCode)
	}
	log.Printf("whatsapp sent to 91%s", phone)
	return nil
}
