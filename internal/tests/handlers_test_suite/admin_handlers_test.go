package handlers_test_suite

import (
	"fmt"
	"net/http"
	"testing"

	handler "github.com/rogerio-castellano/order-tracker/internal/http/handlers"
)

func TestToggleUserStatusHandler(t *testing.T) {
	env := newTestEnv(t, 10)
	admin := env.login(t, "admin@example.com")
	path := fmt.Sprintf("/admin/users/%d/status", env.bob.ID)

	w := env.do(http.MethodPatch, path, admin, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var resp handler.DataResponse[handler.UserSummary]
	decode(t, w, &resp)
	if resp.Message != "User has been deactivated successfully." || resp.Data.IsActive {
		t.Errorf("unexpected response %+v", resp)
	}

	if w := env.do(http.MethodPost, "/login", "", handler.LoginRequest{Email: "bob@example.com", Password: password}); w.Code != http.StatusForbidden {
		t.Errorf("deactivated login: expected 403, got %d", w.Code)
	}

	w = env.do(http.MethodPatch, path, admin, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	resp = handler.DataResponse[handler.UserSummary]{}
	decode(t, w, &resp)
	if resp.Message != "User has been activated successfully." || !resp.Data.IsActive {
		t.Errorf("unexpected response %+v", resp)
	}

	if w := env.do(http.MethodPatch, "/admin/users/999/status", admin, nil); w.Code != http.StatusNotFound {
		t.Errorf("unknown user: expected 404, got %d", w.Code)
	}
}

func TestListAllOrdersHandler(t *testing.T) {
	env := newTestEnv(t, 10)
	admin := env.login(t, "admin@example.com")
	alice := env.login(t, "alice@example.com")

	if w := env.do(http.MethodGet, "/admin/orders", admin, nil); w.Code != http.StatusNotFound {
		t.Fatalf("empty listing: expected 404, got %d", w.Code)
	}

	kept := env.createOrder(t, alice, 1)
	deleted := env.createOrder(t, alice, 2)
	if w := env.do(http.MethodDelete, orderPath(deleted.ID), alice, nil); w.Code != http.StatusOK {
		t.Fatalf("delete: expected 200, got %d", w.Code)
	}

	w := env.do(http.MethodGet, "/admin/orders", admin, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var resp handler.ListResponse[handler.OrderResponse]
	decode(t, w, &resp)
	if len(resp.Data) != 1 || resp.Data[0].ID != kept.ID {
		t.Errorf("expected only the active order, got %+v", resp.Data)
	}

	w = env.do(http.MethodGet, "/admin/orders?with_trashed=true", admin, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	resp = handler.ListResponse[handler.OrderResponse]{}
	decode(t, w, &resp)
	if resp.Pagination.Total != 2 || len(resp.Data) != 2 {
		t.Fatalf("expected 2 orders with trashed, got %d", len(resp.Data))
	}
	if resp.Data[1].DeletedAt == nil {
		t.Error("expected deleted order to carry deleted_at")
	}
}

func TestGetOrderHandler(t *testing.T) {
	env := newTestEnv(t, 10)
	admin := env.login(t, "admin@example.com")
	order := env.createOrder(t, env.login(t, "bob@example.com"), 2)

	w := env.do(http.MethodGet, fmt.Sprintf("/admin/orders/%d", order.ID), admin, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var resp handler.DataResponse[handler.OrderResponse]
	decode(t, w, &resp)
	if resp.Data.User == nil || resp.Data.User.Email != "bob@example.com" {
		t.Errorf("expected owning user to be loaded, got %+v", resp.Data.User)
	}

	if w := env.do(http.MethodGet, "/admin/orders/999", admin, nil); w.Code != http.StatusNotFound {
		t.Errorf("unknown order: expected 404, got %d", w.Code)
	}
}

func TestAdminDeleteOrderHandler(t *testing.T) {
	env := newTestEnv(t, 10)
	admin := env.login(t, "admin@example.com")
	bob := env.login(t, "bob@example.com")
	order := env.createOrder(t, bob, 4)
	if got := env.stock(t); got != 6 {
		t.Fatalf("expected stock 6 after order, got %d", got)
	}

	path := fmt.Sprintf("/admin/orders/%d", order.ID)
	if w := env.do(http.MethodDelete, path, bob, nil); w.Code != http.StatusForbidden {
		t.Errorf("user on admin route: expected 403, got %d", w.Code)
	}

	w := env.do(http.MethodDelete, path, admin, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if got := env.stock(t); got != 10 {
		t.Errorf("expected stock restored to 10, got %d", got)
	}

	if w := env.do(http.MethodDelete, path, admin, nil); w.Code != http.StatusNotFound {
		t.Errorf("second delete: expected 404, got %d", w.Code)
	}
	if w := env.do(http.MethodGet, "/orders", bob, nil); w.Code != http.StatusOK {
		t.Fatalf("list: expected 200, got %d", w.Code)
	} else {
		var resp handler.ListResponse[handler.OrderResponse]
		decode(t, w, &resp)
		if len(resp.Data) != 0 {
			t.Errorf("expected deleted order hidden from owner, got %d orders", len(resp.Data))
		}
	}
}

func TestProductHandlers(t *testing.T) {
	env := newTestEnv(t, 3)
	admin := env.login(t, "admin@example.com")
	productPath := fmt.Sprintf("/admin/products/%d", env.product.ID)

	w := env.do(http.MethodGet, productPath, admin, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var product handler.DataResponse[handler.ProductResponse]
	decode(t, w, &product)
	if product.Data.Name != "Monitor" || product.Data.Stock != 3 {
		t.Errorf("unexpected product %+v", product.Data)
	}

	if w := env.do(http.MethodGet, "/admin/products/999", admin, nil); w.Code != http.StatusNotFound {
		t.Errorf("unknown product: expected 404, got %d", w.Code)
	}

	w = env.do(http.MethodPatch, productPath+"/stock", admin, map[string]any{"quantity": 7})
	if w.Code != http.StatusOK {
		t.Fatalf("restock: expected 200, got %d", w.Code)
	}
	product = handler.DataResponse[handler.ProductResponse]{}
	decode(t, w, &product)
	if product.Message != "Product stock updated successfully." || product.Data.Stock != 10 {
		t.Errorf("unexpected restock response %+v", product)
	}

	if w := env.do(http.MethodPatch, productPath+"/stock", admin, map[string]any{"quantity": -1}); w.Code != http.StatusUnprocessableEntity {
		t.Errorf("negative restock: expected 422, got %d", w.Code)
	}
	if w := env.do(http.MethodPatch, "/admin/products/999/stock", admin, map[string]any{"quantity": 1}); w.Code != http.StatusNotFound {
		t.Errorf("unknown product restock: expected 404, got %d", w.Code)
	}

	env.createOrder(t, env.login(t, "alice@example.com"), 2)

	w = env.do(http.MethodGet, productPath+"/movements", admin, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("movements: expected 200, got %d", w.Code)
	}
	var movements handler.ListResponse[handler.MovementResponse]
	decode(t, w, &movements)
	if movements.Pagination.Total != 2 || len(movements.Data) != 2 {
		t.Fatalf("expected 2 movements, got %d", len(movements.Data))
	}
	if movements.Data[0].Reason != "order_created" || movements.Data[0].Delta != -2 {
		t.Errorf("unexpected newest movement %+v", movements.Data[0])
	}
	if movements.Data[1].Reason != "restock" || movements.Data[1].Delta != 7 {
		t.Errorf("unexpected oldest movement %+v", movements.Data[1])
	}

	if w := env.do(http.MethodGet, productPath+"/movements?since=yesterday", admin, nil); w.Code != http.StatusBadRequest {
		t.Errorf("bad since: expected 400, got %d", w.Code)
	}
}

// Alice orders, changes the quantity and cancels; the admin then sees the
// cancelled order and the stock is back where it started.
func TestOrderLifecycleScenario(t *testing.T) {
	env := newTestEnv(t, 10)
	alice := env.login(t, "alice@example.com")
	admin := env.login(t, "admin@example.com")

	order := env.createOrder(t, alice, 3)
	if w := env.do(http.MethodPatch, orderPath(order.ID), alice, map[string]any{"quantity": 5}); w.Code != http.StatusOK {
		t.Fatalf("update: expected 200, got %d", w.Code)
	}
	if got := env.stock(t); got != 5 {
		t.Fatalf("expected stock 5, got %d", got)
	}
	if w := env.do(http.MethodDelete, orderPath(order.ID), alice, nil); w.Code != http.StatusOK {
		t.Fatalf("delete: expected 200, got %d", w.Code)
	}
	if got := env.stock(t); got != 10 {
		t.Fatalf("expected stock 10, got %d", got)
	}

	if w := env.do(http.MethodGet, fmt.Sprintf("/admin/orders/%d", order.ID), admin, nil); w.Code != http.StatusNotFound {
		t.Errorf("deleted order lookup: expected 404, got %d", w.Code)
	}

	w := env.do(http.MethodGet, "/admin/orders?with_trashed=1", admin, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var resp handler.ListResponse[handler.OrderResponse]
	decode(t, w, &resp)
	if len(resp.Data) != 1 || resp.Data[0].DeletedAt == nil || resp.Data[0].Quantity != 5 {
		t.Errorf("unexpected trashed listing %+v", resp.Data)
	}
}
