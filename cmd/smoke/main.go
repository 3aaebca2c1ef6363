package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/rl1809/ops-console/internal/adapter/gateway"
	"github.com/rl1809/ops-console/internal/config"
	"github.com/rl1809/ops-console/internal/core/panel"
)

const (
	totalOrders = 20
	quantity    = 2
	unitPrice   = 100
	payAmount   = 500
)

func main() {
	envFile := flag.String("env", ".env", "optional .env file")
	orders := flag.Int("orders", totalOrders, "concurrent orders to create")
	flag.Parse()

	cfg, err := config.Load(*envFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	log, err := cfg.NewLogger(os.Stderr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()
	client := gateway.New(gateway.Config{BaseURL: cfg.GatewayURL, Timeout: cfg.RequestTimeout, Logger: log})

	failed := false
	failed = !runOrders(ctx, client, log, *orders) || failed
	failed = !runPayment(ctx, client, log) || failed

	if failed {
		os.Exit(1)
	}
}

func runOrders(ctx context.Context, client *gateway.Client, log logrus.FieldLogger, n int) bool {
	ctrl := panel.NewOrdersController(client, log)
	ctrl.SetDraft(panel.OrderDraft{
		UserID:    "1",
		ProductID: "101",
		Quantity:  strconv.Itoa(quantity),
		Price:     strconv.Itoa(unitPrice),
	})

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		created   []string
		failCount atomic.Int32
	)
	start := time.Now()

	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			id, err := ctrl.Submit(ctx)
			if err != nil {
				failCount.Add(1)
				log.WithError(err).Warn("create failed")
				return
			}
			mu.Lock()
			created = append(created, id)
			mu.Unlock()
		}()
	}
	wg.Wait()
	elapsed := time.Since(start)

	fmt.Println("========== ORDER SMOKE RESULTS ==========")
	fmt.Printf("Requested:        %d\n", n)
	fmt.Printf("Created:          %d\n", len(created))
	fmt.Printf("Failed:           %d\n", failCount.Load())
	fmt.Printf("Duration:         %v\n", elapsed)
	fmt.Println("=========================================")

	ok := true
	if len(created) != n {
		fmt.Printf("FAIL: expected %d orders created, got %d\n", n, len(created))
		ok = false
	} else {
		fmt.Printf("PASS: all %d orders created\n", n)
	}

	if err := ctrl.Refresh(ctx); err != nil {
		fmt.Printf("FAIL: re-list after create: %v\n", err)
		return false
	}

	totals := make(map[string]int64)
	for _, row := range ctrl.View().Orders {
		totals[row.ID] = row.TotalAmount
	}

	want := int64(quantity * unitPrice)
	missing, wrong := 0, 0
	for _, id := range created {
		total, found := totals[id]
		switch {
		case !found:
			missing++
		case total != want:
			wrong++
			fmt.Printf("FAIL: order %s total %d, expected %d\n", id, total, want)
		}
	}
	if missing > 0 {
		fmt.Printf("FAIL: %d created orders missing from the list\n", missing)
	}
	if missing == 0 && wrong == 0 {
		fmt.Printf("PASS: every created order lists with total %d\n", want)
	}
	return ok && missing == 0 && wrong == 0
}

func runPayment(ctx context.Context, client *gateway.Client, log logrus.FieldLogger) bool {
	ctrl := panel.NewPaymentsController(client, log)
	orderID := uuid.NewString()
	ctrl.SetDraft(panel.PaymentDraft{OrderID: orderID, Amount: strconv.Itoa(payAmount)})

	if _, err := ctrl.Submit(ctx); err != nil {
		fmt.Printf("FAIL: pay order %s: %v\n", orderID, err)
		return false
	}

	v := ctrl.View()
	switch {
	case v.Payment == nil:
		fmt.Printf("FAIL: payment for %s not found after paying: %s\n", orderID, v.Error)
		return false
	case v.Payment.Amount != payAmount:
		fmt.Printf("FAIL: payment amount %d, expected %d\n", v.Payment.Amount, payAmount)
		return false
	case !v.Payment.Settled:
		fmt.Printf("FAIL: payment status %q is not settled\n", v.Payment.Status)
		return false
	}
	fmt.Printf("PASS: payment for %s recorded %s (%s)\n", orderID, v.Payment.AmountDisplay, v.Payment.Status)
	return true
}
