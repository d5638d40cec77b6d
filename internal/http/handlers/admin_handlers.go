package handlers

import (
	"net/http"
	"strconv"

	"github.com/rogerio-castellano/order-tracker/internal/pagination"
)

// ToggleUserStatusHandler godoc
// @Summary Activate or deactivate a user
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Success 200 {object} DataResponse[UserSummary]
// @Failure 404 {object} MessageResponse "User not found."
// @Failure 500 {object} MessageResponse "Failed to update user status"
// @Router /admin/users/{id}/status [patch]
func (s *Server) ToggleUserStatusHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		s.respondMessage(w, http.StatusNotFound, "User not found.")
		return
	}

	user, err := s.users.ToggleActive(r.Context(), id)
	if err != nil {
		s.respondError(w, r, err, "Failed to update user status")
		return
	}

	message := "User has been activated successfully."
	if !user.IsActive {
		message = "User has been deactivated successfully."
	}
	s.respond(w, http.StatusOK, DataResponse[UserSummary]{Message: message, Data: toUserSummary(user)})
}

// ListAllOrdersHandler godoc
// @Summary List every user's orders
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param with_trashed query bool false "Include soft-deleted orders"
// @Param page query int false "Page number" default(1)
// @Param per_page query int false "Orders per page" default(10)
// @Success 200 {object} ListResponse[OrderResponse]
// @Failure 404 {object} MessageResponse "Orders not found."
// @Failure 500 {object} MessageResponse "Failed to fetch orders"
// @Router /admin/orders [get]
func (s *Server) ListAllOrdersHandler(w http.ResponseWriter, r *http.Request) {
	withTrashed, _ := strconv.ParseBool(r.URL.Query().Get("with_trashed"))
	page := pageParams(r)

	orders, total, err := s.orders.ListAll(r.Context(), withTrashed, page)
	if err != nil {
		s.respondError(w, r, err, "Failed to fetch orders")
		return
	}

	if len(orders) == 0 {
		s.respondMessage(w, http.StatusNotFound, "Orders not found.")
		return
	}

	s.respond(w, http.StatusOK, ListResponse[OrderResponse]{
		Message:    "Orders fetched successfully.",
		Data:       toOrderResponses(orders),
		Pagination: pagination.NewMeta(page, total, len(orders), absoluteURL(r)),
	})
}

// GetOrderHandler godoc
// @Summary Get an order with its owner
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path int true "Order ID"
// @Success 200 {object} DataResponse[OrderResponse]
// @Failure 404 {object} MessageResponse "Order not found."
// @Failure 500 {object} MessageResponse "Failed to fetch order"
// @Router /admin/orders/{id} [get]
func (s *Server) GetOrderHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		s.respondMessage(w, http.StatusNotFound, "Order not found.")
		return
	}

	order, err := s.orders.GetByID(r.Context(), id)
	if err != nil {
		s.respondError(w, r, err, "Failed to fetch order")
		return
	}

	s.respond(w, http.StatusOK, DataResponse[OrderResponse]{Data: toOrderResponse(order)})
}
