// Package http exposes the settlement engine over a JSON API.
// It coordinates between HTTP handlers and application use cases and maps
// domain errors onto HTTP status codes.
package http

import (
	"errors"
	"net/http"
	"time"

	"settlement/internal/core/application/usecases/commands"
	"settlement/internal/core/application/usecases/queries"
	"settlement/internal/core/domain/model/delivery"
	"settlement/internal/core/domain/model/kernel"
	"settlement/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Server implements the HTTP handlers for the delivery settlement API.
type Server struct {
	// Command handlers
	createDeliveryHandler    commands.CreateDeliveryCommandHandler
	markInProgressHandler    commands.MarkDeliveryInProgressCommandHandler
	markCompletedHandler     commands.MarkDeliveryCompletedCommandHandler
	confirmDeliveryHandler   commands.ConfirmDeliveryCommandHandler
	denyDeliveryHandler      commands.DenyDeliveryCommandHandler
	cancelDeliveryHandler    commands.CancelDeliveryCommandHandler
	recordNonDeliveryHandler commands.RecordNonDeliveryCommandHandler
	setDeliveryItemsHandler  commands.SetDeliveryItemsCommandHandler
	centerConfirmHandler     commands.CenterConfirmCommandHandler
	submitSurveyHandler      commands.SubmitSurveyCommandHandler

	// Query handlers
	outstandingShortfallsHandler queries.GetOutstandingShortfallsQueryHandler
	walletStatementHandler       queries.GetWalletStatementQueryHandler
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(
	createDeliveryHandler commands.CreateDeliveryCommandHandler,
	markInProgressHandler commands.MarkDeliveryInProgressCommandHandler,
	markCompletedHandler commands.MarkDeliveryCompletedCommandHandler,
	confirmDeliveryHandler commands.ConfirmDeliveryCommandHandler,
	denyDeliveryHandler commands.DenyDeliveryCommandHandler,
	cancelDeliveryHandler commands.CancelDeliveryCommandHandler,
	recordNonDeliveryHandler commands.RecordNonDeliveryCommandHandler,
	setDeliveryItemsHandler commands.SetDeliveryItemsCommandHandler,
	centerConfirmHandler commands.CenterConfirmCommandHandler,
	submitSurveyHandler commands.SubmitSurveyCommandHandler,
	outstandingShortfallsHandler queries.GetOutstandingShortfallsQueryHandler,
	walletStatementHandler queries.GetWalletStatementQueryHandler,
) *Server {
	return &Server{
		createDeliveryHandler:        createDeliveryHandler,
		markInProgressHandler:        markInProgressHandler,
		markCompletedHandler:         markCompletedHandler,
		confirmDeliveryHandler:       confirmDeliveryHandler,
		denyDeliveryHandler:          denyDeliveryHandler,
		cancelDeliveryHandler:        cancelDeliveryHandler,
		recordNonDeliveryHandler:     recordNonDeliveryHandler,
		setDeliveryItemsHandler:      setDeliveryItemsHandler,
		centerConfirmHandler:         centerConfirmHandler,
		submitSurveyHandler:          submitSurveyHandler,
		outstandingShortfallsHandler: outstandingShortfallsHandler,
		walletStatementHandler:       walletStatementHandler,
	}
}

// RegisterRoutes attaches all API routes to the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api/v1")

	api.POST("/deliveries", s.CreateDelivery)
	api.POST("/deliveries/:id/start", s.StartDelivery)
	api.POST("/deliveries/:id/complete", s.CompleteDelivery)
	api.POST("/deliveries/:id/confirm", s.ConfirmDelivery)
	api.POST("/deliveries/:id/deny", s.DenyDelivery)
	api.POST("/deliveries/:id/cancel", s.CancelDelivery)
	api.POST("/deliveries/:id/non-delivery", s.RecordNonDelivery)
	api.PUT("/deliveries/:id/items", s.SetDeliveryItems)
	api.POST("/deliveries/:id/center-confirm", s.CenterConfirm)
	api.POST("/deliveries/:id/survey", s.SubmitSurvey)

	api.GET("/customers/:id/shortfalls", s.GetOutstandingShortfalls)
	api.GET("/wallets/:ownerId", s.GetWalletStatement)
}

// ErrorResponse is the JSON error body returned by every failed request.
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// NewDeliveryRequest is the body of POST /deliveries.
type NewDeliveryRequest struct {
	OrderID      string    `json:"order_id"`
	DriverID     string    `json:"driver_id"`
	DeliveryDate time.Time `json:"delivery_date"`
}

// ReasonRequest is the body of deny, cancel and non-delivery requests.
type ReasonRequest struct {
	Reason string `json:"reason"`
}

// CompleteDeliveryRequest is the body of POST /deliveries/:id/complete.
type CompleteDeliveryRequest struct {
	LicensePlate string `json:"license_plate"`
}

// ItemRequest is one weighed entry of PUT /deliveries/:id/items.
type ItemRequest struct {
	CategoryID string `json:"category_id"`
	Weight     string `json:"weight"`
}

// SetItemsRequest is the body of PUT /deliveries/:id/items.
type SetItemsRequest struct {
	Items []ItemRequest `json:"items"`
}

// CenterConfirmRequest is the body of POST /deliveries/:id/center-confirm.
type CenterConfirmRequest struct {
	DriverID string `json:"driver_id"`
}

// SettlementResponse is the result of a successful settlement.
type SettlementResponse struct {
	TotalWeight    string             `json:"total_weight"`
	CustomerAmount string             `json:"customer_amount"`
	DriverAmount   string             `json:"driver_amount"`
	VisitCount     int                `json:"visit_count"`
	Currency       string             `json:"currency"`
	Shortfall      *ShortfallResponse `json:"shortfall,omitempty"`
}

// ShortfallResponse describes a shortfall recorded during settlement.
type ShortfallResponse struct {
	Magnitude      string `json:"magnitude"`
	EstimatedRange string `json:"estimated_range"`
}

// AnswerRequest is one answer of POST /deliveries/:id/survey.
type AnswerRequest struct {
	QuestionID string `json:"question_id"`
	Text       string `json:"text"`
}

// SubmitSurveyRequest is the body of POST /deliveries/:id/survey.
type SubmitSurveyRequest struct {
	CustomerID string          `json:"customer_id"`
	Answers    []AnswerRequest `json:"answers"`
}

// CreateDelivery handles POST /api/v1/deliveries - schedules a new pickup.
func (s *Server) CreateDelivery(ctx echo.Context) error {
	var request NewDeliveryRequest
	if err := ctx.Bind(&request); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	orderID, err := kernel.UUIDFromString(request.OrderID)
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	driverID, err := kernel.UUIDFromString(request.DriverID)
	if err != nil {
		return badRequest(ctx, "Invalid driver id")
	}

	cmd, err := commands.NewCreateDeliveryCommand(orderID, driverID, request.DeliveryDate)
	if err != nil {
		return badRequest(ctx, "Invalid delivery data: "+err.Error())
	}

	if handleErr := s.createDeliveryHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return respondError(ctx, handleErr)
	}

	return ctx.NoContent(http.StatusCreated)
}

// StartDelivery handles POST /api/v1/deliveries/:id/start.
func (s *Server) StartDelivery(ctx echo.Context) error {
	deliveryID, err := pathUUID(ctx, "id")
	if err != nil {
		return badRequest(ctx, "Invalid delivery id")
	}

	cmd, err := commands.NewMarkDeliveryInProgressCommand(deliveryID)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if handleErr := s.markInProgressHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return respondError(ctx, handleErr)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// CompleteDelivery handles POST /api/v1/deliveries/:id/complete.
func (s *Server) CompleteDelivery(ctx echo.Context) error {
	deliveryID, err := pathUUID(ctx, "id")
	if err != nil {
		return badRequest(ctx, "Invalid delivery id")
	}

	var request CompleteDeliveryRequest
	if err = ctx.Bind(&request); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewMarkDeliveryCompletedCommand(deliveryID, request.LicensePlate)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if handleErr := s.markCompletedHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return respondError(ctx, handleErr)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// ConfirmDelivery handles POST /api/v1/deliveries/:id/confirm.
func (s *Server) ConfirmDelivery(ctx echo.Context) error {
	deliveryID, err := pathUUID(ctx, "id")
	if err != nil {
		return badRequest(ctx, "Invalid delivery id")
	}

	cmd, err := commands.NewConfirmDeliveryCommand(deliveryID)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if handleErr := s.confirmDeliveryHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return respondError(ctx, handleErr)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// DenyDelivery handles POST /api/v1/deliveries/:id/deny.
func (s *Server) DenyDelivery(ctx echo.Context) error {
	deliveryID, err := pathUUID(ctx, "id")
	if err != nil {
		return badRequest(ctx, "Invalid delivery id")
	}

	var request ReasonRequest
	if err = ctx.Bind(&request); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewDenyDeliveryCommand(deliveryID, request.Reason)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if handleErr := s.denyDeliveryHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return respondError(ctx, handleErr)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// CancelDelivery handles POST /api/v1/deliveries/:id/cancel.
func (s *Server) CancelDelivery(ctx echo.Context) error {
	deliveryID, err := pathUUID(ctx, "id")
	if err != nil {
		return badRequest(ctx, "Invalid delivery id")
	}

	var request ReasonRequest
	if err = ctx.Bind(&request); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewCancelDeliveryCommand(deliveryID, request.Reason)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if handleErr := s.cancelDeliveryHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return respondError(ctx, handleErr)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// RecordNonDelivery handles POST /api/v1/deliveries/:id/non-delivery.
func (s *Server) RecordNonDelivery(ctx echo.Context) error {
	deliveryID, err := pathUUID(ctx, "id")
	if err != nil {
		return badRequest(ctx, "Invalid delivery id")
	}

	var request ReasonRequest
	if err = ctx.Bind(&request); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewRecordNonDeliveryCommand(deliveryID, request.Reason)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if handleErr := s.recordNonDeliveryHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return respondError(ctx, handleErr)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// SetDeliveryItems handles PUT /api/v1/deliveries/:id/items - replaces the
// delivery's weighed item set.
func (s *Server) SetDeliveryItems(ctx echo.Context) error {
	deliveryID, err := pathUUID(ctx, "id")
	if err != nil {
		return badRequest(ctx, "Invalid delivery id")
	}

	var request SetItemsRequest
	if err = ctx.Bind(&request); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	items := make([]commands.ItemInput, 0, len(request.Items))
	for _, entry := range request.Items {
		categoryID, categoryErr := kernel.UUIDFromString(entry.CategoryID)
		if categoryErr != nil {
			return badRequest(ctx, "Invalid category id: "+entry.CategoryID)
		}

		weight, weightErr := kernel.NewWeightFromString(entry.Weight)
		if weightErr != nil {
			return badRequest(ctx, "Invalid weight: "+entry.Weight)
		}

		items = append(items, commands.ItemInput{CategoryID: categoryID, Weight: weight})
	}

	cmd, err := commands.NewSetDeliveryItemsCommand(deliveryID, items)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if handleErr := s.setDeliveryItemsHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return respondError(ctx, handleErr)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// CenterConfirm handles POST /api/v1/deliveries/:id/center-confirm - settles
// the delivery and returns the computed amounts.
func (s *Server) CenterConfirm(ctx echo.Context) error {
	deliveryID, err := pathUUID(ctx, "id")
	if err != nil {
		return badRequest(ctx, "Invalid delivery id")
	}

	var request CenterConfirmRequest
	if err = ctx.Bind(&request); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	driverID, err := kernel.UUIDFromString(request.DriverID)
	if err != nil {
		return badRequest(ctx, "Invalid driver id")
	}

	cmd, err := commands.NewCenterConfirmCommand(deliveryID, driverID)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	result, err := s.centerConfirmHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return respondError(ctx, err)
	}

	response := SettlementResponse{
		TotalWeight:    result.TotalWeight,
		CustomerAmount: result.CustomerAmount.StringFixed(2),
		DriverAmount:   result.DriverAmount.StringFixed(2),
		VisitCount:     result.VisitCount,
		Currency:       result.Currency,
	}
	if result.Shortfall != nil {
		response.Shortfall = &ShortfallResponse{
			Magnitude:      result.Shortfall.Magnitude.StringFixed(2),
			EstimatedRange: result.Shortfall.EstimatedRange,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// SubmitSurvey handles POST /api/v1/deliveries/:id/survey.
func (s *Server) SubmitSurvey(ctx echo.Context) error {
	deliveryID, err := pathUUID(ctx, "id")
	if err != nil {
		return badRequest(ctx, "Invalid delivery id")
	}

	var request SubmitSurveyRequest
	if err = ctx.Bind(&request); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	customerID, err := kernel.UUIDFromString(request.CustomerID)
	if err != nil {
		return badRequest(ctx, "Invalid customer id")
	}

	answers := make([]commands.AnswerInput, 0, len(request.Answers))
	for _, entry := range request.Answers {
		questionID, questionErr := kernel.UUIDFromString(entry.QuestionID)
		if questionErr != nil {
			return badRequest(ctx, "Invalid question id: "+entry.QuestionID)
		}

		answers = append(answers, commands.AnswerInput{QuestionID: questionID, Text: entry.Text})
	}

	cmd, err := commands.NewSubmitSurveyCommand(deliveryID, customerID, answers)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if handleErr := s.submitSurveyHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return respondError(ctx, handleErr)
	}

	return ctx.NoContent(http.StatusCreated)
}

// OutstandingShortfallResponse is one open shortfall record of a customer.
type OutstandingShortfallResponse struct {
	ID              string    `json:"id"`
	DeliveryID      *string   `json:"delivery_id,omitempty"`
	EstimatedRange  string    `json:"estimated_range"`
	MinimumWeight   string    `json:"minimum_weight"`
	DeliveredWeight string    `json:"delivered_weight"`
	Amount          string    `json:"amount"`
	CreatedAt       time.Time `json:"created_at"`
}

// GetOutstandingShortfalls handles GET /api/v1/customers/:id/shortfalls.
func (s *Server) GetOutstandingShortfalls(ctx echo.Context) error {
	customerID, err := pathUUID(ctx, "id")
	if err != nil {
		return badRequest(ctx, "Invalid customer id")
	}

	query, err := queries.NewGetOutstandingShortfallsQuery(customerID)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	shortfalls, err := s.outstandingShortfallsHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err)
	}

	response := make([]OutstandingShortfallResponse, len(shortfalls))
	for i, record := range shortfalls {
		var recordDeliveryID *string
		if record.DeliveryID != nil {
			id := record.DeliveryID.String()
			recordDeliveryID = &id
		}

		response[i] = OutstandingShortfallResponse{
			ID:              record.ID.String(),
			DeliveryID:      recordDeliveryID,
			EstimatedRange:  record.EstimatedRange,
			MinimumWeight:   record.MinimumWeight.String(),
			DeliveredWeight: record.DeliveredWeight.String(),
			Amount:          record.Amount.StringFixed(2),
			CreatedAt:       record.CreatedAt,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// WalletTransactionResponse is one ledger entry of a wallet statement.
type WalletTransactionResponse struct {
	ID          string    `json:"id"`
	Amount      string    `json:"amount"`
	Currency    string    `json:"currency"`
	Type        string    `json:"type"`
	Status      string    `json:"status"`
	Description string    `json:"description"`
	Reference   string    `json:"reference"`
	CreatedAt   time.Time `json:"created_at"`
}

// WalletStatementResponse is the body of GET /api/v1/wallets/:ownerId.
type WalletStatementResponse struct {
	WalletID     string                      `json:"wallet_id"`
	OwnerID      string                      `json:"owner_id"`
	Balance      string                      `json:"balance"`
	Transactions []WalletTransactionResponse `json:"transactions"`
}

// GetWalletStatement handles GET /api/v1/wallets/:ownerId.
func (s *Server) GetWalletStatement(ctx echo.Context) error {
	ownerID, err := pathUUID(ctx, "ownerId")
	if err != nil {
		return badRequest(ctx, "Invalid owner id")
	}

	query, err := queries.NewGetWalletStatementQuery(ownerID)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	statement, err := s.walletStatementHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err)
	}

	transactions := make([]WalletTransactionResponse, len(statement.Transactions))
	for i, tx := range statement.Transactions {
		transactions[i] = WalletTransactionResponse{
			ID:          tx.ID.String(),
			Amount:      tx.Amount.StringFixed(2),
			Currency:    tx.Currency,
			Type:        tx.Type,
			Status:      tx.Status,
			Description: tx.Description,
			Reference:   tx.Reference,
			CreatedAt:   tx.CreatedAt,
		}
	}

	return ctx.JSON(http.StatusOK, WalletStatementResponse{
		WalletID:     statement.WalletID.String(),
		OwnerID:      statement.OwnerID.String(),
		Balance:      statement.Balance.StringFixed(2),
		Transactions: transactions,
	})
}

// pathUUID parses a UUID path parameter.
func pathUUID(ctx echo.Context, name string) (kernel.UUID, error) {
	return kernel.UUIDFromString(ctx.Param(name))
}

func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, ErrorResponse{
		Code:    http.StatusBadRequest,
		Message: message,
	})
}

// respondError maps application and domain errors onto HTTP status codes.
func respondError(ctx echo.Context, err error) error {
	status := http.StatusInternalServerError

	switch {
	case errors.Is(err, delivery.ErrInvalidStateTransition),
		errors.Is(err, commands.ErrSurveyAlreadySubmitted):
		status = http.StatusConflict
	case errors.Is(err, errs.ErrObjectNotFound):
		status = http.StatusNotFound
	case errors.Is(err, commands.ErrUnknownCategory),
		errors.Is(err, commands.ErrUnknownQuestion),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsOutOfRange),
		errors.Is(err, commands.ErrReasonIsRequired),
		errors.Is(err, commands.ErrDeliveryDateIsRequired),
		errors.Is(err, commands.ErrItemsAreRequired),
		errors.Is(err, commands.ErrAnswersAreRequired):
		status = http.StatusBadRequest
	case errors.Is(err, commands.ErrSettlementCommitFailed):
		status = http.StatusServiceUnavailable
	}

	return ctx.JSON(status, ErrorResponse{
		Code:    status,
		Message: err.Error(),
	})
}
