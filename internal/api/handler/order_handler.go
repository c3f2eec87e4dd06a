package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/agencyops/crm-system/internal/api/metrics"
	"github.com/agencyops/crm-system/internal/core/domain"
	"github.com/agencyops/crm-system/internal/core/ports"
)

// OrderHandler handles HTTP requests for orders.
type OrderHandler struct {
	service ports.OrderService
}

func NewOrderHandler(service ports.OrderService) *OrderHandler {
	return &OrderHandler{service: service}
}

type createOrderRequest struct {
	ClientID    int         `json:"clientId" validate:"required,gt=0"`
	Title       string      `json:"title" validate:"required"`
	Description string      `json:"description"`
	TweetURL    string      `json:"tweetUrl" validate:"omitempty,url"`
	Status      string      `json:"status" validate:"omitempty,oneof=pending active completed canceled"`
	Value       float64     `json:"value" validate:"gte=0"`
	OrderDate   domain.Date `json:"orderDate"`
}

type updateOrderRequest struct {
	ClientID    *int         `json:"clientId" validate:"omitempty,gt=0"`
	Title       *string      `json:"title" validate:"omitempty,min=1"`
	Description *string      `json:"description"`
	TweetURL    *string      `json:"tweetUrl" validate:"omitempty,url"`
	Status      *string      `json:"status" validate:"omitempty,oneof=pending active completed canceled"`
	Value       *float64     `json:"value" validate:"omitempty,gte=0"`
	OrderDate   *domain.Date `json:"orderDate"`
}

// List handles GET /api/orders. An optional clientId query parameter
// restricts the listing to one client's orders.
//
// @Summary      List orders
// @Tags         orders
// @Produce      json
// @Security     BearerAuth
// @Param        clientId  query     int  false  "Filter by client id"
// @Success      200       {array}   ports.OrderView
// @Failure      400       {object}  errorResponse
// @Failure      401       {object}  errorResponse
// @Router       /api/orders [get]
func (h *OrderHandler) List(c echo.Context) error {
	var filter ports.OrderFilter
	if raw := c.QueryParam("clientId"); raw != "" {
		clientID, err := strconv.Atoi(raw)
		if err != nil || clientID <= 0 {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid clientId filter")
		}
		filter.ClientID = clientID
	}

	orders, err := h.service.List(c.Request().Context(), filter)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, orders)
}

// Get handles GET /api/orders/:id.
//
// @Summary      Get an order
// @Tags         orders
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Order id"
// @Success      200  {object}  ports.OrderView
// @Failure      404  {object}  errorResponse
// @Router       /api/orders/{id} [get]
func (h *OrderHandler) Get(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	order, err := h.service.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, order)
}

// Create handles POST /api/orders.
//
// @Summary      Create an order
// @Tags         orders
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createOrderRequest  true  "Order fields"
// @Success      201   {object}  domain.Order
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Router       /api/orders [post]
func (h *OrderHandler) Create(c echo.Context) error {
	var req createOrderRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	order, err := h.service.Create(c.Request().Context(), ports.CreateOrderInput{
		ClientID:    req.ClientID,
		Title:       req.Title,
		Description: req.Description,
		TweetURL:    req.TweetURL,
		Status:      domain.OrderStatus(req.Status),
		Value:       req.Value,
		OrderDate:   req.OrderDate,
	})
	if err != nil {
		return err
	}

	metrics.RecordsCreatedTotal.WithLabelValues("order").Inc()
	return c.JSON(http.StatusCreated, order)
}

// Update handles PUT /api/orders/:id.
//
// @Summary      Update an order
// @Tags         orders
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int                 true  "Order id"
// @Param        body  body      updateOrderRequest  true  "Fields to change"
// @Success      200   {object}  domain.Order
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /api/orders/{id} [put]
func (h *OrderHandler) Update(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var req updateOrderRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	var status *domain.OrderStatus
	if req.Status != nil {
		s := domain.OrderStatus(*req.Status)
		status = &s
	}

	order, err := h.service.Update(c.Request().Context(), id, ports.UpdateOrderInput{
		ClientID:    req.ClientID,
		Title:       req.Title,
		Description: req.Description,
		TweetURL:    req.TweetURL,
		Status:      status,
		Value:       req.Value,
		OrderDate:   req.OrderDate,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, order)
}

// Delete handles DELETE /api/orders/:id.
//
// @Summary      Delete an order
// @Tags         orders
// @Security     BearerAuth
// @Param        id  path  int  true  "Order id"
// @Success      204
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/orders/{id} [delete]
func (h *OrderHandler) Delete(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	if err := h.service.Delete(c.Request().Context(), id); err != nil {
		return err
	}
	metrics.RecordsDeletedTotal.WithLabelValues("order").Inc()
	return c.NoContent(http.StatusNoContent)
}
