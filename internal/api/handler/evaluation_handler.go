package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/hrpulse/evaluation-system/internal/api/metrics"
	"github.com/hrpulse/evaluation-system/internal/core/domain"
	"github.com/hrpulse/evaluation-system/internal/core/ports"
)

// EvaluationHandler handles HTTP requests for the evaluation workflow.
type EvaluationHandler struct {
	workflow ports.WorkflowService
	queries  ports.EvaluationQueries
}

func NewEvaluationHandler(workflow ports.WorkflowService, queries ports.EvaluationQueries) *EvaluationHandler {
	return &EvaluationHandler{workflow: workflow, queries: queries}
}

// SubmitSelf handles POST /v1/evaluations/:id/self-evaluate.
//
// @Summary      Submit the acting user's self-evaluation
// @Tags         evaluations
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Evaluation id"
// @Success      200  {object}  evaluationResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Failure      422  {object}  errorResponse
// @Router       /v1/evaluations/{id}/self-evaluate [post]
func (h *EvaluationHandler) SubmitSelf(c echo.Context) error {
	actorID, tenantID, _, err := ctxClaims(c)
	if err != nil {
		return err
	}

	eval, err := h.workflow.SubmitSelfEvaluation(c.Request().Context(), ports.SubmitSelfInput{
		TenantID:     tenantID,
		EvaluationID: c.Param("id"),
		ActorID:      actorID,
	})
	if err != nil {
		return opError("self_evaluate", err)
	}

	metrics.WorkflowTransitionsTotal.WithLabelValues("self_evaluate").Inc()
	return c.JSON(http.StatusOK, toEvaluationResponse(eval))
}

// SubmitEvaluator handles POST /v1/evaluations/:id/evaluate.
//
// @Summary      Submit the assigned evaluator's review
// @Tags         evaluations
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string         true  "Evaluation id"
// @Param        body  body      reviewRequest  true  "Grade and comment"
// @Success      200   {object}  evaluationResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/evaluations/{id}/evaluate [post]
func (h *EvaluationHandler) SubmitEvaluator(c echo.Context) error {
	actorID, tenantID, _, err := ctxClaims(c)
	if err != nil {
		return err
	}

	var req reviewRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	eval, err := h.workflow.SubmitEvaluatorEvaluation(c.Request().Context(), ports.ReviewInput{
		TenantID:     tenantID,
		EvaluationID: c.Param("id"),
		ActorID:      actorID,
		Grade:        req.Grade,
		Comment:      req.Comment,
	})
	if err != nil {
		return opError("evaluate", err)
	}

	metrics.WorkflowTransitionsTotal.WithLabelValues("evaluate").Inc()
	return c.JSON(http.StatusOK, toEvaluationResponse(eval))
}

// Approve handles POST /v1/evaluations/:id/approve.
//
// @Summary      Approve the evaluation as the facility manager
// @Tags         evaluations
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string         true  "Evaluation id"
// @Param        body  body      reviewRequest  true  "Grade and comment"
// @Success      200   {object}  evaluationResponse
// @Failure      404   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/evaluations/{id}/approve [post]
func (h *EvaluationHandler) Approve(c echo.Context) error {
	actorID, tenantID, _, err := ctxClaims(c)
	if err != nil {
		return err
	}

	var req reviewRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	eval, err := h.workflow.ApproveByManager(c.Request().Context(), ports.ReviewInput{
		TenantID:     tenantID,
		EvaluationID: c.Param("id"),
		ActorID:      actorID,
		Grade:        req.Grade,
		Comment:      req.Comment,
	})
	if err != nil {
		return opError("approve", err)
	}

	metrics.WorkflowTransitionsTotal.WithLabelValues("approve").Inc()
	return c.JSON(http.StatusOK, toEvaluationResponse(eval))
}

// Reject handles POST /v1/evaluations/:id/reject.
// The rollback target depends on who rejects: a director or admin sends the
// evaluation back through the director path, a manager through the manager
// path.
//
// @Summary      Send the evaluation back a stage
// @Tags         evaluations
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string         true  "Evaluation id"
// @Param        body  body      rejectRequest  true  "Optional reason"
// @Success      200   {object}  evaluationResponse
// @Failure      404   {object}  errorResponse
// @Router       /v1/evaluations/{id}/reject [post]
func (h *EvaluationHandler) Reject(c echo.Context) error {
	_, tenantID, role, err := ctxClaims(c)
	if err != nil {
		return err
	}

	var req rejectRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	in := ports.RejectInput{
		TenantID:     tenantID,
		EvaluationID: c.Param("id"),
		Reason:       req.Reason,
	}

	var eval *domain.Evaluation
	if domain.RoleFromString(role).AtLeast(domain.RoleDirector) {
		eval, err = h.workflow.RejectByDirector(c.Request().Context(), in)
	} else {
		eval, err = h.workflow.RejectByManager(c.Request().Context(), in)
	}
	if err != nil {
		return opError("reject", err)
	}

	metrics.WorkflowTransitionsTotal.WithLabelValues("reject").Inc()
	return c.JSON(http.StatusOK, toEvaluationResponse(eval))
}

// SubmitDirector handles POST /v1/evaluations/:id/director-evaluate.
//
// @Summary      Submit the director's review
// @Tags         evaluations
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string         true  "Evaluation id"
// @Param        body  body      reviewRequest  true  "Grade and comment"
// @Success      200   {object}  evaluationResponse
// @Failure      404   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/evaluations/{id}/director-evaluate [post]
func (h *EvaluationHandler) SubmitDirector(c echo.Context) error {
	actorID, tenantID, _, err := ctxClaims(c)
	if err != nil {
		return err
	}

	var req reviewRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	eval, err := h.workflow.SubmitDirectorEvaluation(c.Request().Context(), ports.ReviewInput{
		TenantID:     tenantID,
		EvaluationID: c.Param("id"),
		ActorID:      actorID,
		Grade:        req.Grade,
		Comment:      req.Comment,
	})
	if err != nil {
		return opError("director_evaluate", err)
	}

	metrics.WorkflowTransitionsTotal.WithLabelValues("director_evaluate").Inc()
	return c.JSON(http.StatusOK, toEvaluationResponse(eval))
}

// Finalize handles POST /v1/evaluations/:id/finalize.
//
// @Summary      Confirm and finalize the evaluation
// @Tags         evaluations
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Evaluation id"
// @Success      200  {object}  evaluationResponse
// @Failure      404  {object}  errorResponse
// @Failure      422  {object}  errorResponse
// @Router       /v1/evaluations/{id}/finalize [post]
func (h *EvaluationHandler) Finalize(c echo.Context) error {
	_, tenantID, _, err := ctxClaims(c)
	if err != nil {
		return err
	}

	eval, err := h.workflow.FinalizeEvaluation(c.Request().Context(), ports.FinalizeInput{
		TenantID:     tenantID,
		EvaluationID: c.Param("id"),
	})
	if err != nil {
		return opError("finalize", err)
	}

	metrics.WorkflowTransitionsTotal.WithLabelValues("finalize").Inc()
	return c.JSON(http.StatusOK, toEvaluationResponse(eval))
}

// ListMine handles GET /v1/evaluations/mine.
//
// @Summary      List the acting user's own evaluations
// @Tags         evaluations
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  evaluationListResponse
// @Router       /v1/evaluations/mine [get]
func (h *EvaluationHandler) ListMine(c echo.Context) error {
	actorID, tenantID, _, err := ctxClaims(c)
	if err != nil {
		return err
	}

	evals, err := h.queries.ListMine(c.Request().Context(), tenantID, actorID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toEvaluationListResponse(evals))
}

// ListPending handles GET /v1/evaluations/pending, the evaluator's work queue.
//
// @Summary      List evaluations awaiting the acting user as evaluator
// @Tags         evaluations
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  evaluationListResponse
// @Router       /v1/evaluations/pending [get]
func (h *EvaluationHandler) ListPending(c echo.Context) error {
	actorID, tenantID, _, err := ctxClaims(c)
	if err != nil {
		return err
	}

	evals, err := h.queries.ListPending(c.Request().Context(), tenantID, actorID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toEvaluationListResponse(evals))
}

// Counts handles GET /v1/evaluations/counts, the dashboard counters.
//
// @Summary      Dashboard counters for the acting user's role
// @Tags         evaluations
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  countsResponse
// @Router       /v1/evaluations/counts [get]
func (h *EvaluationHandler) Counts(c echo.Context) error {
	actorID, tenantID, _, err := ctxClaims(c)
	if err != nil {
		return err
	}

	counts, err := h.queries.Counts(c.Request().Context(), tenantID, actorID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, countsResponse{
		PendingEvaluations: counts.PendingEvaluations,
		ManagerPending:     counts.ManagerPending,
		DirectorPending:    counts.DirectorPending,
		FinalizePending:    counts.FinalizePending,
	})
}

// opError records the failure in metrics and passes the error through to the
// central error handler for status mapping.
func opError(operation string, err error) error {
	metrics.WorkflowErrorsTotal.WithLabelValues(operation, errReason(err)).Inc()
	return err
}

func errReason(err error) string {
	switch {
	case errors.Is(err, domain.ErrEvaluationNotFound), errors.Is(err, domain.ErrUserNotFound):
		return "not_found"
	case errors.Is(err, domain.ErrInvalidState):
		return "invalid_state"
	case errors.Is(err, domain.ErrForbidden):
		return "forbidden"
	case errors.Is(err, domain.ErrConflict):
		return "conflict"
	default:
		return "internal"
	}
}
