package notify

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestWhatsAppGateway_Notify(t *testing.T) {
	var got whatsAppPayload
	var auth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		body, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(body, &got)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	g := NewWhatsAppGateway(srv.URL, "secret")
	err := g.Notify(context.Background(), "9884912345", "Hi Arun,\nYour Booking ID: PV2345-Arun-0905 is confirmed.\nThank You!")
	if err != nil {
		t.Fatalf("Notify: %v", err)
	}
	if got.To != "919884912345" {
		t.Errorf("to = %q, want country code prefixed", got.To)
	}
	if auth != "Bearer secret" {
		t.Errorf("authorization = %q", auth)
	}
}

func TestWhatsAppGateway_NonSuccessStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	g := NewWhatsAppGateway(srv.URL, "")
	if err := g.Notify(context.Background(), "9884912345", "hello"); err == nil {
		t.Fatal("Notify succeeded against a failing gateway")
	}
}
