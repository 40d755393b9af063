package training

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	"github.com/seirrozyx11/sikadVoltz-sub000/internal/telemetry/tracing"
	"github.com/seirrozyx11/sikadVoltz-sub000/pkg"
)

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=training_test

type trainingService interface {
	GeneratePlan(ctx context.Context, profile Profile, goal Goal, now time.Time) (*Plan, error)
	CheckIn(ctx context.Context, accountID string, now time.Time) (*CheckInResult, error)
	CompleteSession(ctx context.Context, accountID string, date time.Time, hours float64, intensity Intensity, now time.Time) (*Plan, error)
	RescheduleSession(ctx context.Context, accountID string, fromDate, toDate time.Time, reason string) (*Plan, error)
	ResetPlan(ctx context.Context, profile Profile, now time.Time) (*Plan, error)
	Status(ctx context.Context, accountID string, now time.Time) (*StatusSnapshot, error)
	ActivePlan(ctx context.Context, accountID string) (*Plan, error)
}

type Handler struct {
	service trainingService
	now     func() time.Time
}

func NewHandler(service trainingService) *Handler {
	return &Handler{
		service: service,
		now:     time.Now,
	}
}

type GeneratePlanRequest struct {
	Profile Profile `json:"profile"`
	Goal    Goal    `json:"goal"`
}

type CompleteSessionRequest struct {
	Date      time.Time `json:"date"`
	Hours     float64   `json:"hours"`
	Intensity Intensity `json:"intensity"`
}

type RescheduleSessionRequest struct {
	FromDate time.Time `json:"fromDate"`
	ToDate   time.Time `json:"toDate"`
	Reason   string    `json:"reason"`
}

func (handler *Handler) HandleGeneratePlan(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.training.generatePlan")
	defer span.End()

	if r.Header.Get("Content-Type") != "application/json" {
		http.Error(w, "invalid content type", http.StatusBadRequest)
		return
	}

	var req GeneratePlanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Tracef("generate plan, unmarshal json params: %s", err)
		http.Error(w, "generate plan failed", http.StatusBadRequest)
		return
	}

	if req.Profile.AccountID == "" {
		http.Error(w, "error, account id empty", http.StatusBadRequest)
		return
	}

	plan, err := handler.service.GeneratePlan(ctx, req.Profile, req.Goal, handler.now())
	if err != nil {
		log.Errorf("failed to generate plan for [%s]: %s", req.Profile.AccountID, err)
		writeDomainError(w, err)
		return
	}

	writeJSON(w, plan)
}

func (handler *Handler) HandleActivePlan(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.training.activePlan")
	defer span.End()

	accountID := mux.Vars(r)["accountId"]
	plan, err := handler.service.ActivePlan(ctx, accountID)
	if err != nil {
		log.Tracef("get active plan [%s]: %s", accountID, err)
		writeDomainError(w, err)
		return
	}

	writeJSON(w, plan)
}

func (handler *Handler) HandleCheckIn(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.training.checkIn")
	defer span.End()

	accountID := mux.Vars(r)["accountId"]
	result, err := handler.service.CheckIn(ctx, accountID, handler.now())
	if err != nil {
		log.Errorf("check-in failed [%s]: %s", accountID, err)
		writeDomainError(w, err)
		return
	}

	log.Debugf(
		"check-in for [%s]: %d newly missed",
		accountID, len(result.Detection.NewlyMissed),
	)
	writeJSON(w, result)
}

func (handler *Handler) HandleStatus(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.training.status")
	defer span.End()

	accountID := mux.Vars(r)["accountId"]
	snapshot, err := handler.service.Status(ctx, accountID, handler.now())
	if err != nil {
		log.Tracef("get status [%s]: %s", accountID, err)
		writeDomainError(w, err)
		return
	}

	writeJSON(w, snapshot)
}

func (handler *Handler) HandleCompleteSession(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.training.completeSession")
	defer span.End()

	accountID := mux.Vars(r)["accountId"]

	var req CompleteSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Tracef("complete session, unmarshal json params: %s", err)
		http.Error(w, "complete session failed", http.StatusBadRequest)
		return
	}

	if req.Date.IsZero() {
		req.Date = handler.now()
	}
	if req.Intensity == "" {
		req.Intensity = IntensityModerate
	}

	plan, err := handler.service.CompleteSession(ctx, accountID, req.Date, req.Hours, req.Intensity, handler.now())
	if err != nil {
		log.Errorf("complete session failed [%s]: %s", accountID, err)
		writeDomainError(w, err)
		return
	}

	writeJSON(w, plan)
}

func (handler *Handler) HandleRescheduleSession(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.training.rescheduleSession")
	defer span.End()

	accountID := mux.Vars(r)["accountId"]

	var req RescheduleSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Tracef("reschedule session, unmarshal json params: %s", err)
		http.Error(w, "reschedule session failed", http.StatusBadRequest)
		return
	}

	if req.FromDate.IsZero() || req.ToDate.IsZero() {
		http.Error(w, "error, from and to dates required", http.StatusBadRequest)
		return
	}

	plan, err := handler.service.RescheduleSession(ctx, accountID, req.FromDate, req.ToDate, req.Reason)
	if err != nil {
		log.Errorf("reschedule session failed [%s]: %s", accountID, err)
		writeDomainError(w, err)
		return
	}

	writeJSON(w, plan)
}

func (handler *Handler) HandleResetPlan(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.training.resetPlan")
	defer span.End()

	accountID := mux.Vars(r)["accountId"]

	var profile Profile
	if err := json.NewDecoder(r.Body).Decode(&profile); err != nil {
		log.Tracef("reset plan, unmarshal json params: %s", err)
		http.Error(w, "reset plan failed", http.StatusBadRequest)
		return
	}
	profile.AccountID = accountID

	plan, err := handler.service.ResetPlan(ctx, profile, handler.now())
	if err != nil {
		log.Errorf("reset plan failed [%s]: %s", accountID, err)
		writeDomainError(w, err)
		return
	}

	writeJSON(w, plan)
}

func writeJSON(w http.ResponseWriter, payload any) {
	payloadJson, err := json.Marshal(payload)
	if err != nil {
		log.Errorf("failed to marshal response: %s", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, payloadJson)
}

// writeDomainError maps domain error kinds onto HTTP statuses. All of them
// are recoverable caller-side; nothing here crashes the process.
func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrPlanNotFound), errors.Is(err, ErrSessionNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, ErrProfileIncomplete),
		errors.Is(err, ErrUnsafeDeficit),
		errors.Is(err, ErrUnsafeDuration):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, ErrUnsafeRedistribution),
		errors.Is(err, ErrNoPendingSessions),
		errors.Is(err, ErrInvalidTransition):
		http.Error(w, err.Error(), http.StatusConflict)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}
