// README: Entry point; loads config, wires collaborators and services, starts the HTTP server.
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"droptaxi/internal/config"
	httptransport "droptaxi/internal/http"
	"droptaxi/internal/infra"
	"droptaxi/internal/invoice"
	"droptaxi/internal/maps"
	"droptaxi/internal/modules/booking"
	"droptaxi/internal/modules/pricing"
	"droptaxi/internal/modules/review"
	"droptaxi/internal/modules/user"
	"droptaxi/internal/notify"
	"droptaxi/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fb, err := infra.NewFirebase(ctx, cfg.Firebase.ProjectID, cfg.Firebase.CredentialsFile)
	if err != nil {
		log.Fatalf("firebase init: %v", err)
	}
	defer fb.Close()

	docStore := store.NewFirestoreStore(fb.Firestore(), cfg.Store.Timeout)
	redisClient := infra.NewRedis(cfg.Redis.Addr)

	routeService, err := maps.NewRouteService(cfg.Maps.APIKey)
	if err != nil {
		log.Fatalf("maps init: %v", err)
	}
	router := maps.NewCachedRouter(routeService, redisClient, cfg.Maps.CacheTTL)

	catalog := pricing.DefaultCatalog()
	if cfg.Pricing.RatesFile != "" {
		catalog, err = pricing.LoadCatalog(cfg.Pricing.RatesFile)
		if err != nil {
			log.Fatalf("rates file: %v", err)
		}
		log.Printf("loaded rate catalog %s (%d vehicles)", catalog.Version, len(catalog.Vehicles))
	}

	var notifier notify.Notifier = notify.Nop{}
	if cfg.WhatsApp.Endpoint != "" {
		notifier = notify.NewWhatsAppGateway(cfg.WhatsApp.Endpoint, cfg.WhatsApp.Token)
	}

	pricingSvc := pricing.NewService(catalog, router)
	bookingSvc := booking.NewService(docStore, catalog, notifier)
	reviewSvc := review.NewService(docStore)
	userSvc := user.NewService(docStore)
	invoiceBuilder := invoice.NewBuilder(cfg.Invoice.OperatorName, cfg.Invoice.OperatorPhone, catalog)

	handler := httptransport.NewRouter(httptransport.RouterDeps{
		Verifier: fb,
		Pricing:  pricingSvc,
		Bookings: bookingSvc,
		Reviews:  reviewSvc,
		Users:    userSvc,
		Invoices: invoiceBuilder,
	})

	server := &http.Server{Addr: cfg.HTTP.Addr, Handler: handler}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
	}()

	log.Printf("listening on %s", cfg.HTTP.Addr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal(err)
	}
}
