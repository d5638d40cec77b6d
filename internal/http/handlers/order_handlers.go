package handlers

import (
	"errors"
	"net/http"

	"github.com/rogerio-castellano/order-tracker/internal/http/middleware"
	"github.com/rogerio-castellano/order-tracker/internal/pagination"
	"github.com/rogerio-castellano/order-tracker/internal/service"
)

// CreateOrderHandler godoc
// @Summary Place an order
// @Description Creates an order for the caller and takes the quantity out of stock
// @Tags orders
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param order body OrderRequest true "Product and quantity"
// @Success 201 {object} DataResponse[OrderResponse]
// @Failure 422 {object} ValidationErrorResponse
// @Failure 500 {object} MessageResponse "Order creation failed"
// @Router /orders [post]
func (s *Server) CreateOrderHandler(w http.ResponseWriter, r *http.Request) {
	p, _ := middleware.PrincipalFrom(r.Context())

	var req OrderRequest
	if err := readJSON(w, r, &req); err != nil {
		s.respondMessage(w, http.StatusBadRequest, "invalid input")
		return
	}

	errs := ValidationErrors{}
	productID := validateProductID(errs, req.ProductID)
	quantity := validateQuantity(errs, req.Quantity)
	if len(errs["product_id"]) == 0 {
		if _, err := s.catalog.Find(r.Context(), productID); errors.Is(err, service.ErrProductNotFound) {
			errs.add("product_id", msgProductIDNotFound)
		}
	}
	if len(errs) > 0 {
		s.respondValidation(w, errs, "product_id", "quantity")
		return
	}

	order, err := s.orders.Create(r.Context(), p, productID, quantity)
	if err != nil {
		s.logger.Error("order creation failed", "error", err, "user_id", p.UserID, "product_id", productID)
		s.respondMessage(w, http.StatusInternalServerError, "Order creation failed")
		return
	}

	s.respond(w, http.StatusCreated, DataResponse[OrderResponse]{
		Message: "Order created successfully.",
		Data:    toOrderResponse(order),
	})
}

// UpdateOrderHandler godoc
// @Summary Change the quantity of an order
// @Description Adjusts stock by the difference and recomputes the total from the current price
// @Tags orders
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Order ID"
// @Param order body OrderRequest true "New quantity"
// @Success 200 {object} DataResponse[OrderUpdateResult]
// @Failure 403 {object} MessageResponse "Not the owner"
// @Failure 404 {object} MessageResponse "Order not found."
// @Failure 422 {object} ValidationErrorResponse
// @Failure 500 {object} MessageResponse "Order update failed"
// @Router /orders/{id} [patch]
func (s *Server) UpdateOrderHandler(w http.ResponseWriter, r *http.Request) {
	p, _ := middleware.PrincipalFrom(r.Context())

	id, ok := idParam(r)
	if !ok {
		s.respondMessage(w, http.StatusNotFound, "Order not found.")
		return
	}

	var req OrderRequest
	if err := readJSON(w, r, &req); err != nil {
		s.respondMessage(w, http.StatusBadRequest, "invalid input")
		return
	}

	errs := ValidationErrors{}
	quantity := validateQuantity(errs, req.Quantity)
	if req.ProductID != nil {
		validateProductID(errs, req.ProductID)
	}
	if len(errs) > 0 {
		s.respondValidation(w, errs, "product_id", "quantity")
		return
	}

	order, err := s.orders.Update(r.Context(), p, id, quantity)
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			err = service.ErrOrderNotFound
		}
		s.respondError(w, r, err, "Order update failed")
		return
	}

	s.respond(w, http.StatusOK, DataResponse[OrderUpdateResult]{
		Message: "Order updated successfully.",
		Data: OrderUpdateResult{
			OrderID:    order.ID,
			Quantity:   order.Quantity,
			TotalPrice: order.TotalPrice,
		},
	})
}

// DeleteOrderHandler godoc
// @Summary Cancel an order
// @Description Soft-deletes the order and returns its quantity to stock. Owners use /orders, administrators /admin/orders.
// @Tags orders
// @Produce json
// @Security BearerAuth
// @Param id path int true "Order ID"
// @Success 200 {object} MessageResponse
// @Failure 403 {object} MessageResponse "Not the owner"
// @Failure 404 {object} MessageResponse "Order not found."
// @Failure 500 {object} MessageResponse "Order deletion failed"
// @Router /orders/{id} [delete]
// @Router /admin/orders/{id} [delete]
func (s *Server) DeleteOrderHandler(w http.ResponseWriter, r *http.Request) {
	p, _ := middleware.PrincipalFrom(r.Context())

	id, ok := idParam(r)
	if !ok {
		s.respondMessage(w, http.StatusNotFound, "Order not found.")
		return
	}

	if err := s.orders.Delete(r.Context(), p, id); err != nil {
		s.respondError(w, r, err, "Order deletion failed")
		return
	}

	s.respondMessage(w, http.StatusOK, "Order deleted successfully.")
}

// ListOrdersHandler godoc
// @Summary List the caller's orders
// @Tags orders
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number" default(1)
// @Param per_page query int false "Orders per page" default(10)
// @Success 200 {object} ListResponse[OrderResponse]
// @Failure 500 {object} MessageResponse "Failed to fetch orders"
// @Router /orders [get]
func (s *Server) ListOrdersHandler(w http.ResponseWriter, r *http.Request) {
	p, _ := middleware.PrincipalFrom(r.Context())
	page := pageParams(r)

	orders, total, err := s.orders.List(r.Context(), p.UserID, page)
	if err != nil {
		s.respondError(w, r, err, "Failed to fetch orders")
		return
	}

	s.respond(w, http.StatusOK, ListResponse[OrderResponse]{
		Message:    "Orders fetched successfully.",
		Data:       toOrderResponses(orders),
		Pagination: pagination.NewMeta(page, total, len(orders), absoluteURL(r)),
	})
}
