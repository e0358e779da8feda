// Package http contains the echo handlers exposing the fulfillment core
// over REST. Handlers translate between transport DTOs and the command/query
// layer and map the error taxonomy onto HTTP status codes; no business rules
// live here.
package http

import (
	"errors"
	"net/http"
	"time"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

// storeHeader carries the caller's store scope. Session and authentication
// are outside the core; upstream middleware is expected to have resolved the
// store already.
const storeHeader = "X-Store-ID"

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	createOrderHandler    commands.CreateOrderCommandHandler
	editOrderHandler      commands.EditOrderCommandHandler
	deleteOrderHandler    commands.DeleteOrderCommandHandler
	createDeliveryHandler commands.CreateDeliveryCommandHandler
	editDeliveryHandler   commands.EditDeliveryCommandHandler
	deleteDeliveryHandler commands.DeleteDeliveryCommandHandler
	recalculateHandler    commands.RecalculateStatisticsCommandHandler

	remainingQuantityHandler  queries.GetRemainingQuantityQueryHandler
	orderStatusHandler        queries.GetOrderStatusQueryHandler
	statisticsHandler         queries.GetStatisticsQueryHandler
	customerOrdersHandler     queries.GetCustomerOrdersQueryHandler
	customerDeliveriesHandler queries.GetCustomerDeliveriesQueryHandler
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(
	createOrderHandler commands.CreateOrderCommandHandler,
	editOrderHandler commands.EditOrderCommandHandler,
	deleteOrderHandler commands.DeleteOrderCommandHandler,
	createDeliveryHandler commands.CreateDeliveryCommandHandler,
	editDeliveryHandler commands.EditDeliveryCommandHandler,
	deleteDeliveryHandler commands.DeleteDeliveryCommandHandler,
	recalculateHandler commands.RecalculateStatisticsCommandHandler,
	remainingQuantityHandler queries.GetRemainingQuantityQueryHandler,
	orderStatusHandler queries.GetOrderStatusQueryHandler,
	statisticsHandler queries.GetStatisticsQueryHandler,
	customerOrdersHandler queries.GetCustomerOrdersQueryHandler,
	customerDeliveriesHandler queries.GetCustomerDeliveriesQueryHandler,
) *Server {
	return &Server{
		createOrderHandler:        createOrderHandler,
		editOrderHandler:          editOrderHandler,
		deleteOrderHandler:        deleteOrderHandler,
		createDeliveryHandler:     createDeliveryHandler,
		editDeliveryHandler:       editDeliveryHandler,
		deleteDeliveryHandler:     deleteDeliveryHandler,
		recalculateHandler:        recalculateHandler,
		remainingQuantityHandler:  remainingQuantityHandler,
		orderStatusHandler:        orderStatusHandler,
		statisticsHandler:         statisticsHandler,
		customerOrdersHandler:     customerOrdersHandler,
		customerDeliveriesHandler: customerDeliveriesHandler,
	}
}

// RegisterRoutes attaches every endpoint to the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api/v1")

	api.GET("/order-lines/:id/remaining", s.GetRemainingQuantity)
	api.GET("/orders/:id/status", s.GetOrderStatus)
	api.PUT("/orders/:id", s.EditOrder)
	api.DELETE("/orders/:id", s.DeleteOrder)

	api.GET("/customers/:id/orders", s.GetCustomerOrders)
	api.POST("/customers/:id/orders", s.CreateOrder)
	api.GET("/customers/:id/deliveries", s.GetCustomerDeliveries)
	api.POST("/customers/:id/deliveries", s.CreateDelivery)
	api.GET("/customers/:id/statistics", s.GetStatistics)

	api.PUT("/deliveries/:id", s.EditDelivery)
	api.DELETE("/deliveries/:id", s.DeleteDelivery)

	api.POST("/stores/:id/statistics/recalculate", s.RecalculateStatistics)

	e.GET("/health", s.Health)
}

// ErrorResponse is the uniform error payload.
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// AllocationRequestDTO is one requested allocation within a delivery payload.
type AllocationRequestDTO struct {
	OrderLineID string          `json:"orderLineId"`
	ProductName string          `json:"productName"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	Quantity    int             `json:"quantity"`
}

// DeliveryRequest is the payload of delivery create and edit calls.
type DeliveryRequest struct {
	DeliveryDate time.Time              `json:"deliveryDate"`
	Note         string                 `json:"note"`
	Allocations  []AllocationRequestDTO `json:"allocations"`
}

// OrderLineRequestDTO is one requested line within an order payload. LineID
// is set on edits to reference an existing line.
type OrderLineRequestDTO struct {
	LineID      string          `json:"lineId,omitempty"`
	ProductName string          `json:"productName"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	Quantity    int             `json:"quantity"`
}

// OrderRequest is the payload of order create and edit calls.
type OrderRequest struct {
	OrderDate time.Time             `json:"orderDate"`
	Note      string                `json:"note"`
	Lines     []OrderLineRequestDTO `json:"lines"`
}

// CreatedResponse reports the identifier of a newly created resource.
type CreatedResponse struct {
	ID string `json:"id"`
}

// GetRemainingQuantity handles GET /api/v1/order-lines/:id/remaining.
func (s *Server) GetRemainingQuantity(ctx echo.Context) error {
	storeID, lineID, err := s.scopedID(ctx)
	if err != nil {
		return badRequest(ctx, err)
	}

	query, err := queries.NewGetRemainingQuantityQuery(storeID, lineID)
	if err != nil {
		return badRequest(ctx, err)
	}

	response, err := s.remainingQuantityHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return mapError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, map[string]any{
		"orderLineId": response.OrderLineID.String(),
		"quantity":    response.Quantity,
		"delivered":   response.Delivered,
		"remaining":   response.Remaining,
	})
}

// GetOrderStatus handles GET /api/v1/orders/:id/status.
func (s *Server) GetOrderStatus(ctx echo.Context) error {
	storeID, orderID, err := s.scopedID(ctx)
	if err != nil {
		return badRequest(ctx, err)
	}

	query, err := queries.NewGetOrderStatusQuery(storeID, orderID)
	if err != nil {
		return badRequest(ctx, err)
	}

	response, err := s.orderStatusHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return mapError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, map[string]any{
		"orderId": response.OrderID.String(),
		"status":  response.Status,
	})
}

// CreateOrder handles POST /api/v1/customers/:id/orders.
func (s *Server) CreateOrder(ctx echo.Context) error {
	storeID, customerID, err := s.scopedID(ctx)
	if err != nil {
		return badRequest(ctx, err)
	}

	var request OrderRequest
	if err = ctx.Bind(&request); err != nil {
		return badRequest(ctx, errors.New("invalid request body"))
	}

	lines, err := orderLineRequests(request.Lines)
	if err != nil {
		return badRequest(ctx, err)
	}

	cmd, err := commands.NewCreateOrderCommand(storeID, customerID, request.OrderDate, request.Note, lines)
	if err != nil {
		return badRequest(ctx, err)
	}

	orderID, err := s.createOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return mapError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, CreatedResponse{ID: orderID.String()})
}

// EditOrder handles PUT /api/v1/orders/:id.
func (s *Server) EditOrder(ctx echo.Context) error {
	storeID, orderID, err := s.scopedID(ctx)
	if err != nil {
		return badRequest(ctx, err)
	}

	var request OrderRequest
	if err = ctx.Bind(&request); err != nil {
		return badRequest(ctx, errors.New("invalid request body"))
	}

	lines, err := orderLineRequests(request.Lines)
	if err != nil {
		return badRequest(ctx, err)
	}

	cmd, err := commands.NewEditOrderCommand(storeID, orderID, request.OrderDate, request.Note, lines)
	if err != nil {
		return badRequest(ctx, err)
	}

	if err = s.editOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return mapError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// DeleteOrder handles DELETE /api/v1/orders/:id.
func (s *Server) DeleteOrder(ctx echo.Context) error {
	storeID, orderID, err := s.scopedID(ctx)
	if err != nil {
		return badRequest(ctx, err)
	}

	cmd, err := commands.NewDeleteOrderCommand(storeID, orderID)
	if err != nil {
		return badRequest(ctx, err)
	}

	if err = s.deleteOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return mapError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// CreateDelivery handles POST /api/v1/customers/:id/deliveries.
func (s *Server) CreateDelivery(ctx echo.Context) error {
	storeID, customerID, err := s.scopedID(ctx)
	if err != nil {
		return badRequest(ctx, err)
	}

	var request DeliveryRequest
	if err = ctx.Bind(&request); err != nil {
		return badRequest(ctx, errors.New("invalid request body"))
	}

	allocations, err := allocationRequests(request.Allocations)
	if err != nil {
		return badRequest(ctx, err)
	}

	cmd, err := commands.NewCreateDeliveryCommand(storeID, customerID, request.DeliveryDate, request.Note, allocations)
	if err != nil {
		return badRequest(ctx, err)
	}

	deliveryID, err := s.createDeliveryHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return mapError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, CreatedResponse{ID: deliveryID.String()})
}

// EditDelivery handles PUT /api/v1/deliveries/:id.
func (s *Server) EditDelivery(ctx echo.Context) error {
	storeID, deliveryID, err := s.scopedID(ctx)
	if err != nil {
		return badRequest(ctx, err)
	}

	var request DeliveryRequest
	if err = ctx.Bind(&request); err != nil {
		return badRequest(ctx, errors.New("invalid request body"))
	}

	allocations, err := allocationRequests(request.Allocations)
	if err != nil {
		return badRequest(ctx, err)
	}

	cmd, err := commands.NewEditDeliveryCommand(storeID, deliveryID, request.DeliveryDate, request.Note, allocations)
	if err != nil {
		return badRequest(ctx, err)
	}

	if err = s.editDeliveryHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return mapError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// DeleteDelivery handles DELETE /api/v1/deliveries/:id.
func (s *Server) DeleteDelivery(ctx echo.Context) error {
	storeID, deliveryID, err := s.scopedID(ctx)
	if err != nil {
		return badRequest(ctx, err)
	}

	cmd, err := commands.NewDeleteDeliveryCommand(storeID, deliveryID)
	if err != nil {
		return badRequest(ctx, err)
	}

	if err = s.deleteDeliveryHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return mapError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// GetCustomerOrders handles GET /api/v1/customers/:id/orders.
func (s *Server) GetCustomerOrders(ctx echo.Context) error {
	storeID, customerID, err := s.scopedID(ctx)
	if err != nil {
		return badRequest(ctx, err)
	}

	query, err := queries.NewGetCustomerOrdersQuery(storeID, customerID)
	if err != nil {
		return badRequest(ctx, err)
	}

	orders, err := s.customerOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return mapError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, orders)
}

// GetCustomerDeliveries handles GET /api/v1/customers/:id/deliveries.
func (s *Server) GetCustomerDeliveries(ctx echo.Context) error {
	storeID, customerID, err := s.scopedID(ctx)
	if err != nil {
		return badRequest(ctx, err)
	}

	query, err := queries.NewGetCustomerDeliveriesQuery(storeID, customerID)
	if err != nil {
		return badRequest(ctx, err)
	}

	deliveries, err := s.customerDeliveriesHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return mapError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, deliveries)
}

// GetStatistics handles GET /api/v1/customers/:id/statistics.
func (s *Server) GetStatistics(ctx echo.Context) error {
	storeID, customerID, err := s.scopedID(ctx)
	if err != nil {
		return badRequest(ctx, err)
	}

	query, err := queries.NewGetStatisticsQuery(storeID, customerID)
	if err != nil {
		return badRequest(ctx, err)
	}

	response, err := s.statisticsHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return mapError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, map[string]any{
		"customerId":      response.CustomerID.String(),
		"averageLeadTime": response.AverageLeadTime,
		"totalSales":      response.TotalSales,
		"updatedAt":       response.UpdatedAt,
	})
}

// RecalculateStatistics handles POST /api/v1/stores/:id/statistics/recalculate.
// The store in the path must match the caller's scope.
func (s *Server) RecalculateStatistics(ctx echo.Context) error {
	storeID, pathStoreID, err := s.scopedID(ctx)
	if err != nil {
		return badRequest(ctx, err)
	}
	if !storeID.IsEqual(pathStoreID) {
		return mapError(ctx, errs.NewObjectOutOfScopeError("store", pathStoreID.String()))
	}

	cmd, err := commands.NewRecalculateStatisticsCommand(storeID)
	if err != nil {
		return badRequest(ctx, err)
	}

	refreshed, err := s.recalculateHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return mapError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, map[string]any{"refreshed": refreshed})
}

// Health handles GET /health.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, map[string]string{"status": "healthy"})
}

// scopedID extracts the store scope from the header and the resource ID from
// the path.
func (s *Server) scopedID(ctx echo.Context) (kernel.UUID, kernel.UUID, error) {
	storeID, err := kernel.UUIDFromString(ctx.Request().Header.Get(storeHeader))
	if err != nil {
		return kernel.UUID{}, kernel.UUID{}, errs.NewValueIsRequiredErrorWithCause(storeHeader, err)
	}

	id, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return kernel.UUID{}, kernel.UUID{}, errs.NewValueIsInvalidErrorWithCause("id", err)
	}

	return storeID, id, nil
}

func allocationRequests(dtos []AllocationRequestDTO) ([]commands.AllocationRequest, error) {
	requests := make([]commands.AllocationRequest, 0, len(dtos))
	for _, dto := range dtos {
		orderLineID, err := kernel.UUIDFromString(dto.OrderLineID)
		if err != nil {
			return nil, errs.NewValueIsInvalidErrorWithCause("orderLineId", err)
		}
		request, err := commands.NewAllocationRequest(orderLineID, dto.ProductName, dto.UnitPrice, dto.Quantity)
		if err != nil {
			return nil, err
		}
		requests = append(requests, request)
	}
	return requests, nil
}

func orderLineRequests(dtos []OrderLineRequestDTO) ([]commands.OrderLineRequest, error) {
	requests := make([]commands.OrderLineRequest, 0, len(dtos))
	for _, dto := range dtos {
		var request commands.OrderLineRequest
		var err error
		if dto.LineID == "" {
			request, err = commands.NewOrderLineRequest(dto.ProductName, dto.UnitPrice, dto.Quantity)
		} else {
			var lineID kernel.UUID
			lineID, err = kernel.UUIDFromString(dto.LineID)
			if err != nil {
				return nil, errs.NewValueIsInvalidErrorWithCause("lineId", err)
			}
			request, err = commands.NewExistingOrderLineRequest(lineID, dto.ProductName, dto.UnitPrice, dto.Quantity)
		}
		if err != nil {
			return nil, err
		}
		requests = append(requests, request)
	}
	return requests, nil
}

func badRequest(ctx echo.Context, err error) error {
	return ctx.JSON(http.StatusBadRequest, ErrorResponse{
		Code:    http.StatusBadRequest,
		Message: err.Error(),
	})
}

// mapError translates the error taxonomy onto HTTP status codes: validation
// errors to 400, missing objects to 404, scope violations to 403, everything
// else to 500.
func mapError(ctx echo.Context, err error) error {
	code := http.StatusInternalServerError

	switch {
	case errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		code = http.StatusBadRequest
	case errors.Is(err, errs.ErrObjectNotFound):
		code = http.StatusNotFound
	case errors.Is(err, errs.ErrObjectOutOfScope):
		code = http.StatusForbidden
	}

	return ctx.JSON(code, ErrorResponse{
		Code:    code,
		Message: err.Error(),
	})
}
