package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/rogerio-castellano/order-tracker/internal/models"
	"github.com/rogerio-castellano/order-tracker/internal/pagination"
)

// GetProductHandler godoc
// @Summary Get product by ID
// @Tags products
// @Produce json
// @Security BearerAuth
// @Param id path int true "Product ID"
// @Success 200 {object} DataResponse[ProductResponse]
// @Failure 404 {object} MessageResponse "Product not found."
// @Failure 500 {object} MessageResponse "Internal error"
// @Router /admin/products/{id} [get]
func (s *Server) GetProductHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		s.respondMessage(w, http.StatusNotFound, "Product not found.")
		return
	}

	product, err := s.catalog.Find(r.Context(), id)
	if err != nil {
		s.respondError(w, r, err, "An error occurred while retrieving the product.")
		return
	}

	s.respond(w, http.StatusOK, DataResponse[ProductResponse]{Data: toProductResponse(product)})
}

// UpdateProductStockHandler godoc
// @Summary Add units to a product's stock
// @Tags products
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Product ID"
// @Param stock body StockRequest true "Units to add"
// @Success 200 {object} DataResponse[ProductResponse]
// @Failure 404 {object} MessageResponse "Product not found."
// @Failure 422 {object} ValidationErrorResponse
// @Failure 500 {object} MessageResponse "Internal error"
// @Router /admin/products/{id}/stock [patch]
func (s *Server) UpdateProductStockHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		s.respondMessage(w, http.StatusNotFound, "Product not found.")
		return
	}

	var req StockRequest
	if err := readJSON(w, r, &req); err != nil {
		s.respondMessage(w, http.StatusBadRequest, "invalid input")
		return
	}

	errs := ValidationErrors{}
	quantity := validateQuantity(errs, req.Quantity)
	if len(errs) > 0 {
		s.respondValidation(w, errs, "quantity")
		return
	}

	product, err := s.catalog.Restock(r.Context(), id, quantity)
	if err != nil {
		s.respondError(w, r, err, "An error occurred while updating the stock.")
		return
	}

	s.respond(w, http.StatusOK, DataResponse[ProductResponse]{
		Message: "Product stock updated successfully.",
		Data:    toProductResponse(product),
	})
}

// GetMovementsHandler godoc
// @Summary Get product stock movements
// @Tags products
// @Produce json
// @Security BearerAuth
// @Param id path int true "Product ID"
// @Param since query string false "Filter movements from this timestamp (RFC3339)"
// @Param until query string false "Filter movements until this timestamp (RFC3339)"
// @Param page query int false "Page number" default(1)
// @Param per_page query int false "Movements per page" default(10)
// @Success 200 {object} ListResponse[MovementResponse]
// @Failure 400 {object} MessageResponse "Invalid input"
// @Failure 404 {object} MessageResponse "Product not found."
// @Failure 500 {object} MessageResponse "Internal error"
// @Router /admin/products/{id}/movements [get]
func (s *Server) GetMovementsHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		s.respondMessage(w, http.StatusNotFound, "Product not found.")
		return
	}

	since, err := timeParam(r, "since")
	if err != nil {
		s.respondMessage(w, http.StatusBadRequest, "invalid since date format")
		return
	}
	until, err := timeParam(r, "until")
	if err != nil {
		s.respondMessage(w, http.StatusBadRequest, "invalid until date format")
		return
	}

	page := pageParams(r)
	movements, total, err := s.catalog.Movements(r.Context(), id, since, until, page)
	if err != nil {
		s.respondError(w, r, err, "could not retrieve movements")
		return
	}

	s.respond(w, http.StatusOK, ListResponse[MovementResponse]{
		Message:    "Movements fetched successfully.",
		Data:       toMovementResponses(movements),
		Pagination: pagination.NewMeta(page, total, len(movements), absoluteURL(r)),
	})
}

// timeParam parses an optional RFC3339 query parameter.
func timeParam(r *http.Request, name string) (*time.Time, error) {
	v := r.URL.Query().Get(name)
	if v == "" {
		return nil, nil
	}

	// An unescaped "+" in the offset arrives as a space.
	if len(v) == len(time.RFC3339) && v[len(v)-6] == ' ' {
		v = v[:len(v)-6] + "+" + v[len(v)-5:]
	}

	ts, err := time.Parse(time.RFC3339, strings.TrimSpace(v))
	if err != nil {
		return nil, err
	}
	return &ts, nil
}

func toMovementResponses(movements []models.Movement) []MovementResponse {
	resp := make([]MovementResponse, len(movements))
	for i, m := range movements {
		resp[i] = MovementResponse{
			ID:        m.ID,
			ProductID: m.ProductID,
			OrderID:   m.OrderID,
			Delta:     m.Delta,
			Reason:    m.Reason,
			CreatedAt: m.CreatedAt.Format(time.RFC3339),
		}
	}
	return resp
}
