package http

import (
	"errors"
	"net/http"
	"time"

	"tolkbook/internal/core/application/usecases/commands"
	"tolkbook/internal/core/application/usecases/queries"
	"tolkbook/internal/core/domain/model/job"
	"tolkbook/internal/core/domain/model/kernel"
	"tolkbook/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Server exposes the booking API over HTTP.
// It coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	createJobHandler     commands.CreateJobCommandHandler
	updateJobHandler     commands.UpdateJobCommandHandler
	acceptJobHandler     commands.AcceptJobCommandHandler
	acceptJobByIDHandler commands.AcceptJobCommandHandler
	cancelJobHandler     commands.CancelJobCommandHandler
	startJobHandler      commands.StartJobCommandHandler
	endJobHandler        commands.EndJobCommandHandler
	notCallHandler       commands.CustomerNotCallCommandHandler
	reopenJobHandler     commands.ReopenJobCommandHandler
	resendPushHandler    commands.ResendNotificationCommandHandler
	resendSMSHandler     commands.ResendNotificationCommandHandler
	setJobContactHandler commands.SetJobContactCommandHandler

	// Query handlers
	getPotentialJobsHandler queries.GetPotentialJobsQueryHandler
	listJobsHandler         queries.ListJobsQueryHandler
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(
	createJobHandler commands.CreateJobCommandHandler,
	updateJobHandler commands.UpdateJobCommandHandler,
	acceptJobHandler commands.AcceptJobCommandHandler,
	acceptJobByIDHandler commands.AcceptJobCommandHandler,
	cancelJobHandler commands.CancelJobCommandHandler,
	startJobHandler commands.StartJobCommandHandler,
	endJobHandler commands.EndJobCommandHandler,
	notCallHandler commands.CustomerNotCallCommandHandler,
	reopenJobHandler commands.ReopenJobCommandHandler,
	resendPushHandler commands.ResendNotificationCommandHandler,
	resendSMSHandler commands.ResendNotificationCommandHandler,
	setJobContactHandler commands.SetJobContactCommandHandler,
	getPotentialJobsHandler queries.GetPotentialJobsQueryHandler,
	listJobsHandler queries.ListJobsQueryHandler,
) *Server {
	return &Server{
		createJobHandler:        createJobHandler,
		updateJobHandler:        updateJobHandler,
		acceptJobHandler:        acceptJobHandler,
		acceptJobByIDHandler:    acceptJobByIDHandler,
		cancelJobHandler:        cancelJobHandler,
		startJobHandler:         startJobHandler,
		endJobHandler:           endJobHandler,
		notCallHandler:          notCallHandler,
		reopenJobHandler:        reopenJobHandler,
		resendPushHandler:       resendPushHandler,
		resendSMSHandler:        resendSMSHandler,
		setJobContactHandler:    setJobContactHandler,
		getPotentialJobsHandler: getPotentialJobsHandler,
		listJobsHandler:         listJobsHandler,
	}
}

// RegisterRoutes mounts the booking API under /api/v1.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api/v1")

	g.GET("/jobs", s.ListJobs)
	g.POST("/jobs", s.CreateJob)
	g.GET("/jobs/potential", s.GetPotentialJobs)
	g.POST("/jobs/accept", s.AcceptJob)
	g.PUT("/jobs/:id", s.UpdateJob)
	g.POST("/jobs/:id/accept", s.AcceptJobByID)
	g.POST("/jobs/:id/cancel", s.CancelJob)
	g.POST("/jobs/:id/start", s.StartJob)
	g.POST("/jobs/:id/end", s.EndJob)
	g.POST("/jobs/:id/not-carried-out", s.CustomerNotCall)
	g.POST("/jobs/:id/reopen", s.ReopenJob)
	g.POST("/jobs/:id/resend-push", s.ResendPush)
	g.POST("/jobs/:id/resend-sms", s.ResendSMS)
	g.PUT("/jobs/:id/contact", s.SetJobContact)
}

// CreateJob handles POST /api/v1/jobs - registers a new booking.
func (s *Server) CreateJob(ctx echo.Context) error {
	var req CreateJobRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	customerID, err := kernel.UUIDFromString(req.CustomerID)
	if err != nil {
		return badRequest(ctx, "Invalid customer id: "+err.Error())
	}
	languageID, err := kernel.UUIDFromString(req.LanguageID)
	if err != nil {
		return badRequest(ctx, "Invalid language id: "+err.Error())
	}

	jobID := kernel.NewUUID()
	cmd, err := commands.NewCreateJobCommand(jobID, customerID, commands.CreateJobDetails{
		LanguageID:      languageID,
		Immediate:       req.Immediate,
		Due:             req.Due,
		Duration:        req.Duration,
		Gender:          job.Gender(req.Gender),
		Certified:       job.Certification(req.Certified),
		PhoneBooking:    req.PhoneBooking,
		PhysicalBooking: req.PhysicalBooking,
		Town:            req.Town,
		ByAdmin:         req.ByAdmin,
		UserEmail:       req.UserEmail,
		Reference:       req.Reference,
		Address:         req.Address,
		Instructions:    req.Instructions,
	})
	if err != nil {
		return badRequest(ctx, "Invalid booking data: "+err.Error())
	}

	result, err := s.createJobHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return mapError(ctx, err, "Failed to create booking")
	}
	if !result.IsSuccess() {
		return ctx.JSON(http.StatusUnprocessableEntity, operationResponse(result))
	}

	return ctx.JSON(http.StatusCreated, CreateJobResponse{ID: jobID.String()})
}

// UpdateJob handles PUT /api/v1/jobs/:id - applies an admin edit.
func (s *Server) UpdateJob(ctx echo.Context) error {
	jobID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid booking id: "+err.Error())
	}

	var req UpdateJobRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	changes := commands.UpdateJobChanges{
		Due:           req.Due,
		AdminComments: req.AdminComments,
		Reference:     req.Reference,
		SessionTime:   req.SessionTime,
	}
	if req.Status != nil {
		status, err := job.StatusFromString(*req.Status)
		if err != nil {
			return badRequest(ctx, "Invalid status: "+err.Error())
		}
		changes.RequestedStatus = &status
	}
	if req.TranslatorID != nil {
		translatorID, err := kernel.UUIDFromString(*req.TranslatorID)
		if err != nil {
			return badRequest(ctx, "Invalid translator id: "+err.Error())
		}
		changes.TranslatorID = &translatorID
	}
	if req.LanguageID != nil {
		languageID, err := kernel.UUIDFromString(*req.LanguageID)
		if err != nil {
			return badRequest(ctx, "Invalid language id: "+err.Error())
		}
		changes.LanguageID = &languageID
	}

	cmd, err := commands.NewUpdateJobCommand(jobID, changes)
	if err != nil {
		return badRequest(ctx, "Invalid edit data: "+err.Error())
	}

	result, err := s.updateJobHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return mapError(ctx, err, "Failed to update booking")
	}
	return ctx.JSON(http.StatusOK, operationResponse(result))
}

// AcceptJob handles POST /api/v1/jobs/accept - a translator accepts a
// booking addressed in the request body.
func (s *Server) AcceptJob(ctx echo.Context) error {
	var req AcceptJobRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	jobID, err := kernel.UUIDFromString(req.JobID)
	if err != nil {
		return badRequest(ctx, "Invalid booking id: "+err.Error())
	}
	return s.accept(ctx, s.acceptJobHandler, jobID, req.TranslatorID)
}

// AcceptJobByID handles POST /api/v1/jobs/:id/accept.
func (s *Server) AcceptJobByID(ctx echo.Context) error {
	jobID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid booking id: "+err.Error())
	}

	var req AcceptJobRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}
	return s.accept(ctx, s.acceptJobByIDHandler, jobID, req.TranslatorID)
}

func (s *Server) accept(ctx echo.Context, handler commands.AcceptJobCommandHandler, jobID kernel.UUID, rawTranslatorID string) error {
	translatorID, err := kernel.UUIDFromString(rawTranslatorID)
	if err != nil {
		return badRequest(ctx, "Invalid translator id: "+err.Error())
	}

	cmd, err := commands.NewAcceptJobCommand(jobID, translatorID)
	if err != nil {
		return badRequest(ctx, "Invalid accept data: "+err.Error())
	}

	result, err := handler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return mapError(ctx, err, "Failed to accept booking")
	}
	if !result.IsSuccess() && result.Code == commands.CodeJobTaken {
		return ctx.JSON(http.StatusConflict, operationResponse(result))
	}
	if !result.IsSuccess() {
		return ctx.JSON(http.StatusOK, operationResponse(result))
	}

	return ctx.JSON(http.StatusOK, AcceptJobResponse{
		Status:        string(result.Status),
		Code:          result.Code,
		Message:       result.Message,
		PotentialJobs: s.refreshedFeed(ctx, translatorID),
	})
}

// refreshedFeed returns the translator's remaining acceptable bookings for
// the accept response. The accept itself already committed, so a feed
// failure degrades to an empty list instead of failing the request.
func (s *Server) refreshedFeed(ctx echo.Context, translatorID kernel.UUID) []JobSummary {
	query, err := queries.NewGetPotentialJobsQuery(translatorID)
	if err != nil {
		return []JobSummary{}
	}
	feed, err := s.getPotentialJobsHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return []JobSummary{}
	}
	return feedSummary(feed)
}

// CancelJob handles POST /api/v1/jobs/:id/cancel.
func (s *Server) CancelJob(ctx echo.Context) error {
	jobID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid booking id: "+err.Error())
	}

	var req ActorRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}
	actorID, err := kernel.UUIDFromString(req.UserID)
	if err != nil {
		return badRequest(ctx, "Invalid user id: "+err.Error())
	}

	cmd, err := commands.NewCancelJobCommand(jobID, actorID)
	if err != nil {
		return badRequest(ctx, "Invalid cancel data: "+err.Error())
	}

	result, err := s.cancelJobHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return mapError(ctx, err, "Failed to cancel booking")
	}
	return ctx.JSON(http.StatusOK, operationResponse(result))
}

// StartJob handles POST /api/v1/jobs/:id/start - the assigned translator
// marks the session as started.
func (s *Server) StartJob(ctx echo.Context) error {
	jobID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid booking id: "+err.Error())
	}

	var req ActorRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}
	translatorID, err := kernel.UUIDFromString(req.UserID)
	if err != nil {
		return badRequest(ctx, "Invalid user id: "+err.Error())
	}

	cmd, err := commands.NewStartJobCommand(jobID, translatorID)
	if err != nil {
		return badRequest(ctx, "Invalid start data: "+err.Error())
	}

	result, err := s.startJobHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return mapError(ctx, err, "Failed to start session")
	}
	return ctx.JSON(http.StatusOK, operationResponse(result))
}

// EndJob handles POST /api/v1/jobs/:id/end - either party ends the session.
func (s *Server) EndJob(ctx echo.Context) error {
	jobID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid booking id: "+err.Error())
	}

	var req ActorRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}
	triggeredBy, err := kernel.UUIDFromString(req.UserID)
	if err != nil {
		return badRequest(ctx, "Invalid user id: "+err.Error())
	}

	cmd, err := commands.NewEndJobCommand(jobID, triggeredBy)
	if err != nil {
		return badRequest(ctx, "Invalid end data: "+err.Error())
	}

	result, err := s.endJobHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return mapError(ctx, err, "Failed to end session")
	}
	return ctx.JSON(http.StatusOK, operationResponse(result))
}

// CustomerNotCall handles POST /api/v1/jobs/:id/not-carried-out - flags a
// booking where the customer reports the session never happened.
func (s *Server) CustomerNotCall(ctx echo.Context) error {
	jobID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid booking id: "+err.Error())
	}

	cmd, err := commands.NewCustomerNotCallCommand(jobID)
	if err != nil {
		return badRequest(ctx, "Invalid booking id: "+err.Error())
	}

	result, err := s.notCallHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return mapError(ctx, err, "Failed to flag booking")
	}
	return ctx.JSON(http.StatusOK, operationResponse(result))
}

// ReopenJob handles POST /api/v1/jobs/:id/reopen - an admin puts a
// booking back on the market.
func (s *Server) ReopenJob(ctx echo.Context) error {
	jobID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid booking id: "+err.Error())
	}

	var req ActorRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}
	actorID, err := kernel.UUIDFromString(req.UserID)
	if err != nil {
		return badRequest(ctx, "Invalid user id: "+err.Error())
	}

	cmd, err := commands.NewReopenJobCommand(jobID, actorID)
	if err != nil {
		return badRequest(ctx, "Invalid reopen data: "+err.Error())
	}

	reopenedID, err := s.reopenJobHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return mapError(ctx, err, "Failed to reopen booking")
	}
	return ctx.JSON(http.StatusOK, ReopenJobResponse{ID: reopenedID.String()})
}

// ResendPush handles POST /api/v1/jobs/:id/resend-push.
func (s *Server) ResendPush(ctx echo.Context) error {
	return s.resend(ctx, s.resendPushHandler, "Failed to resend push notifications")
}

// ResendSMS handles POST /api/v1/jobs/:id/resend-sms.
func (s *Server) ResendSMS(ctx echo.Context) error {
	return s.resend(ctx, s.resendSMSHandler, "Failed to resend SMS notifications")
}

func (s *Server) resend(ctx echo.Context, handler commands.ResendNotificationCommandHandler, failMessage string) error {
	jobID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid booking id: "+err.Error())
	}

	cmd, err := commands.NewResendNotificationCommand(jobID)
	if err != nil {
		return badRequest(ctx, "Invalid booking id: "+err.Error())
	}

	result, err := handler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return mapError(ctx, err, failMessage)
	}
	return ctx.JSON(http.StatusOK, operationResponse(result))
}

// SetJobContact handles PUT /api/v1/jobs/:id/contact.
func (s *Server) SetJobContact(ctx echo.Context) error {
	jobID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid booking id: "+err.Error())
	}

	var req SetJobContactRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewSetJobContactCommand(jobID, req.Email, req.Reference, req.Address, req.Instructions, req.Town)
	if err != nil {
		return badRequest(ctx, "Invalid contact data: "+err.Error())
	}

	if err := s.setJobContactHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return mapError(ctx, err, "Failed to update contact details")
	}
	return ctx.NoContent(http.StatusNoContent)
}

// GetPotentialJobs handles GET /api/v1/jobs/potential - the pending
// bookings a translator is eligible to accept.
func (s *Server) GetPotentialJobs(ctx echo.Context) error {
	translatorID, err := kernel.UUIDFromString(ctx.QueryParam("translator_id"))
	if err != nil {
		return badRequest(ctx, "Invalid translator id: "+err.Error())
	}

	query, err := queries.NewGetPotentialJobsQuery(translatorID)
	if err != nil {
		return badRequest(ctx, "Invalid feed query: "+err.Error())
	}

	feed, err := s.getPotentialJobsHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return mapError(ctx, err, "Failed to retrieve bookings")
	}
	return ctx.JSON(http.StatusOK, feedSummary(feed))
}

func feedSummary(feed []queries.GetPotentialJobsQueryResponse) []JobSummary {
	response := make([]JobSummary, len(feed))
	for i, item := range feed {
		response[i] = JobSummary{
			ID:              item.ID.String(),
			Language:        item.Language,
			Due:             item.Due,
			Duration:        item.Duration,
			Immediate:       item.Immediate,
			PhoneBooking:    item.PhoneBooking,
			PhysicalBooking: item.PhysicalBooking,
			Town:            item.Town,
			JobType:         item.JobType,
		}
	}
	return response
}

// ListJobs handles GET /api/v1/jobs - the admin booking listing.
func (s *Server) ListJobs(ctx echo.Context) error {
	filters, err := listFiltersFromQuery(ctx)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	superadmin := ctx.QueryParam("superadmin") == "true"
	query, err := queries.NewListJobsQuery(superadmin, ctx.QueryParam("consumer_type"), filters)
	if err != nil {
		return badRequest(ctx, "Invalid listing query: "+err.Error())
	}

	rows, err := s.listJobsHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return mapError(ctx, err, "Failed to retrieve bookings")
	}

	response := make([]JobSummary, len(rows))
	for i, row := range rows {
		response[i] = JobSummary{
			ID:              row.ID.String(),
			CustomerID:      row.CustomerID.String(),
			Language:        row.Language,
			Status:          row.Status,
			Due:             row.Due,
			Duration:        row.Duration,
			Immediate:       row.Immediate,
			PhoneBooking:    row.PhoneBooking,
			PhysicalBooking: row.PhysicalBooking,
			Town:            row.Town,
			JobType:         row.JobType,
			Flagged:         row.Flagged,
			CreatedAt:       row.CreatedAt,
			WillExpireAt:    row.WillExpireAt,
		}
	}
	return ctx.JSON(http.StatusOK, response)
}

func operationResponse(result commands.Result) OperationResponse {
	return OperationResponse{
		Status:  string(result.Status),
		Code:    result.Code,
		Message: result.Message,
	}
}

func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, ErrorResponse{
		Code:    http.StatusBadRequest,
		Message: message,
	})
}

func mapError(ctx echo.Context, err error, fallback string) error {
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		return ctx.JSON(http.StatusNotFound, ErrorResponse{
			Code:    http.StatusNotFound,
			Message: err.Error(),
		})
	case errors.Is(err, errs.ErrValidation):
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    http.StatusBadRequest,
			Message: err.Error(),
		})
	case errors.Is(err, errs.ErrConflict), errors.Is(err, errs.ErrTransitionRejected):
		return ctx.JSON(http.StatusConflict, ErrorResponse{
			Code:    http.StatusConflict,
			Message: err.Error(),
		})
	default:
		return ctx.JSON(http.StatusInternalServerError, ErrorResponse{
			Code:    http.StatusInternalServerError,
			Message: fallback,
		})
	}
}

// listFiltersFromQuery parses the optional narrowing filters from the
// query string.
func listFiltersFromQuery(ctx echo.Context) (queries.ListJobsFilters, error) {
	var filters queries.ListJobsFilters

	if raw := ctx.QueryParams()["status"]; len(raw) > 0 {
		filters.Statuses = raw
	}
	for _, raw := range ctx.QueryParams()["language_id"] {
		id, err := kernel.UUIDFromString(raw)
		if err != nil {
			return filters, errors.New("Invalid language id: " + err.Error())
		}
		filters.LanguageIDs = append(filters.LanguageIDs, id)
	}
	if raw := ctx.QueryParam("customer_id"); raw != "" {
		id, err := kernel.UUIDFromString(raw)
		if err != nil {
			return filters, errors.New("Invalid customer id: " + err.Error())
		}
		filters.CustomerID = &id
	}
	if raw := ctx.QueryParam("due_after"); raw != "" {
		t, err := parseQueryTime(raw)
		if err != nil {
			return filters, errors.New("Invalid due_after: " + err.Error())
		}
		filters.DueAfter = &t
	}
	if raw := ctx.QueryParam("due_before"); raw != "" {
		t, err := parseQueryTime(raw)
		if err != nil {
			return filters, errors.New("Invalid due_before: " + err.Error())
		}
		filters.DueBefore = &t
	}
	filters.JobType = ctx.QueryParam("job_type")
	if raw := ctx.QueryParam("flagged"); raw != "" {
		flagged := raw == "true"
		filters.Flagged = &flagged
	}
	return filters, nil
}

func parseQueryTime(raw string) (time.Time, error) {
	return time.Parse(time.RFC3339, raw)
}
