// Command seed loads demo data into Redis for local development.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/billforge/billforge/internal/business"
	"github.com/billforge/billforge/internal/clients"
	"github.com/billforge/billforge/internal/invoices"
	"github.com/billforge/billforge/internal/platform/kv"
	"github.com/billforge/billforge/internal/shared"
)

func main() {
	addr := getenv("REDIS_ADDR", "127.0.0.1:6379")
	ctx := context.Background()

	store, err := kv.NewRedis(ctx, addr)
	if err != nil {
		log.Fatalf("connect redis: %v", err)
	}

	fmt.Println("→ Seeding business profile...")
	if err := seedBusiness(ctx, store); err != nil {
		log.Fatalf("seed business: %v", err)
	}

	fmt.Println("→ Seeding clients and invoices...")
	if err := seedInvoices(ctx, store); err != nil {
		log.Fatalf("seed invoices: %v", err)
	}

	fmt.Println("Done.")
}

func seedBusiness(ctx context.Context, store kv.Store) error {
	svc := business.NewService(store)
	_, err := svc.Save(ctx, business.Info{
		Name:         "Acme Consulting",
		Email:        "billing@acme.test",
		Address:      "1 Main St",
		PaymentTerms: "net_30",
		LateFee:      5,
	})
	return err
}

func seedInvoices(ctx context.Context, store kv.Store) error {
	clock := shared.SystemClock{}
	clientSvc := clients.NewService(clients.NewRepository(store), clock)
	sequencer := invoices.NewSequencer(store, clock, nil)
	invoiceSvc := invoices.NewService(invoices.NewRepository(store), sequencer, invoices.ServiceConfig{
		ClientSaver: clientSvc,
		Clock:       clock,
	})

	fixtures := []invoices.CreateInput{
		{
			ClientName:  "Globex Corp",
			ClientEmail: "ap@globex.test",
			Currency:    "USD",
			SaveClient:  true,
			TaxRate:     10,
			Items: []invoices.LineItem{
				{Description: "Consulting retainer", Quantity: 1, UnitPrice: 2500},
			},
		},
		{
			ClientName:  "Initech",
			ClientEmail: "accounts@initech.test",
			Currency:    "EUR",
			SaveClient:  true,
			TaxRate:     0,
			Items: []invoices.LineItem{
				{Description: "Platform migration", Quantity: 40, UnitPrice: 120},
				{Description: "On-call support", Quantity: 10, UnitPrice: 95},
			},
		},
	}
	for _, input := range fixtures {
		inv, err := invoiceSvc.Create(ctx, input)
		if err != nil {
			return err
		}
		fmt.Printf("  issued %s for %s\n", inv.Number, inv.ClientName)
		time.Sleep(10 * time.Millisecond)
	}
	return nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
