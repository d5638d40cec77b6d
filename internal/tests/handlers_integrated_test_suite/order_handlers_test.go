package handlers_integrated_test_suite

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"testing"

	handler "github.com/rogerio-castellano/order-tracker/internal/http/handlers"
	"github.com/shopspring/decimal"
)

func TestOrderLifecycle_Postgres(t *testing.T) {
	user := createUser(t, "user")
	product := createProduct(t, "10.10", 10)
	token := login(t, user.Email)

	w := do(http.MethodPost, "/orders", token, map[string]any{"product_id": product.ID, "quantity": 3})
	if w.Code != http.StatusCreated {
		t.Fatalf("create: expected 201, got %d: %s", w.Code, w.Body.String())
	}
	var created handler.DataResponse[handler.OrderResponse]
	if err := json.NewDecoder(w.Body).Decode(&created); err != nil {
		t.Fatalf("decoding: %v", err)
	}
	if !created.Data.TotalPrice.Equal(decimal.RequireFromString("30.30")) {
		t.Errorf("expected total 30.30, got %s", created.Data.TotalPrice)
	}
	if got := stockOf(t, product.ID); got != 7 {
		t.Fatalf("expected stock 7, got %d", got)
	}

	path := fmt.Sprintf("/orders/%d", created.Data.ID)
	if w := do(http.MethodPatch, path, token, map[string]any{"quantity": 8}); w.Code != http.StatusInternalServerError {
		t.Fatalf("oversized update: expected 500, got %d", w.Code)
	}
	if got := stockOf(t, product.ID); got != 7 {
		t.Fatalf("expected rollback to keep stock 7, got %d", got)
	}

	if w := do(http.MethodPatch, path, token, map[string]any{"quantity": 1}); w.Code != http.StatusOK {
		t.Fatalf("update: expected 200, got %d", w.Code)
	}
	if got := stockOf(t, product.ID); got != 9 {
		t.Fatalf("expected stock 9, got %d", got)
	}

	if w := do(http.MethodDelete, path, token, nil); w.Code != http.StatusOK {
		t.Fatalf("delete: expected 200, got %d", w.Code)
	}
	if got := stockOf(t, product.ID); got != 10 {
		t.Fatalf("expected stock 10, got %d", got)
	}
}

func TestConcurrentOrders_NeverOversell(t *testing.T) {
	product := createProduct(t, "1.00", 5)

	const buyers = 10
	tokens := make([]string, buyers)
	for i := range tokens {
		tokens[i] = login(t, createUser(t, "user").Email)
	}

	var wg sync.WaitGroup
	codes := make([]int, buyers)
	for i := range buyers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			w := do(http.MethodPost, "/orders", tokens[i], map[string]any{"product_id": product.ID, "quantity": 1})
			codes[i] = w.Code
		}()
	}
	wg.Wait()

	created := 0
	for _, c := range codes {
		if c == http.StatusCreated {
			created++
		}
	}
	if created != 5 {
		t.Errorf("expected exactly 5 successful orders, got %d", created)
	}
	if got := stockOf(t, product.ID); got != 0 {
		t.Errorf("expected stock 0, got %d", got)
	}
}
