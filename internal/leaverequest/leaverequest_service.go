package leaverequest

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"go-leaveflow/internal/audit"
	"go-leaveflow/internal/domain"
	"go-leaveflow/internal/employee"
	"go-leaveflow/internal/events"
	leaveerrors "go-leaveflow/internal/leaverequest/errors"
	"go-leaveflow/internal/messaging/kafka"
	"go-leaveflow/internal/shared/contextutil"
	"go-leaveflow/internal/workflow"
)

const (
	auditActionSubmit   = "SUBMIT"
	auditActionApprove  = "APPROVE"
	auditActionReject   = "REJECT"
	auditActionWithdraw = "WITHDRAW"
)

//go:generate mockgen -source=leaverequest_service.go -destination=mock/leaverequest_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, companyID, actorID string, req CreateLeaveRequest) (LeaveRequestResponse, error)
	GetAll(ctx context.Context, companyID string) ([]LeaveRequestResponse, error)
	GetByID(ctx context.Context, companyID, id string) (LeaveRequestResponse, error)
	// SubmitDecision is the single write path every review surface goes
	// through: it validates turn order, eligibility and reconciliation,
	// applies the decision to the chain and persists the outcome with an
	// audit entry and an outbox event, all in one transaction.
	SubmitDecision(ctx context.Context, companyID, actorID, id string, role domain.Role, req DecisionRequest) (LeaveRequestResponse, error)
	Withdraw(ctx context.Context, companyID, actorID, id string, req WithdrawRequest) (LeaveRequestResponse, error)
	History(ctx context.Context, companyID, id string) ([]HistoryEntryResponse, error)
}

type service struct {
	db        *sql.DB
	repo      Repository
	employees employee.Service
	auditRepo audit.Repository
	outbox    kafka.OutboxRepository
	logger    *zap.Logger
}

func NewService(
	db *sql.DB,
	repo Repository,
	employees employee.Service,
	auditRepo audit.Repository,
	logger ...*zap.Logger,
) Service {
	return NewServiceWithOutbox(db, repo, employees, auditRepo, nil, logger...)
}

func NewServiceWithOutbox(
	db *sql.DB,
	repo Repository,
	employees employee.Service,
	auditRepo audit.Repository,
	outboxRepo kafka.OutboxRepository,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("leaverequest.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leaverequest.service")
	}
	return &service{
		db:        db,
		repo:      repo,
		employees: employees,
		auditRepo: auditRepo,
		outbox:    outboxRepo,
		logger:    l,
	}
}

func (s *service) Create(ctx context.Context, companyID, actorID string, req CreateLeaveRequest) (LeaveRequestResponse, error) {
	s.logger.Debug("create leave request",
		zap.String("company_id", companyID),
		zap.String("actor_id", actorID),
		zap.String("employee_id", req.EmployeeID),
		zap.String("leave_type", req.LeaveType),
	)

	companyUUID, err := uuid.Parse(companyID)
	if err != nil {
		return LeaveRequestResponse{}, leaveerrors.ErrInvalidCompanyID
	}
	createdByUUID, err := uuid.Parse(actorID)
	if err != nil {
		return LeaveRequestResponse{}, leaveerrors.ErrInvalidActorID
	}
	employeeUUID, err := uuid.Parse(req.EmployeeID)
	if err != nil {
		return LeaveRequestResponse{}, leaveerrors.ErrInvalidEmployeeID
	}
	leaveType := domain.LeaveType(req.LeaveType)
	if !leaveType.IsValid() {
		return LeaveRequestResponse{}, leaveerrors.ErrInvalidLeaveType
	}
	startDate, err := parseDate(req.StartDate)
	if err != nil {
		return LeaveRequestResponse{}, err
	}
	endDate, err := parseDate(req.EndDate)
	if err != nil {
		return LeaveRequestResponse{}, err
	}
	if startDate.After(endDate) {
		return LeaveRequestResponse{}, leaveerrors.ErrInvalidDateRange
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("create leave request begin tx failed", zap.Error(err))
		return LeaveRequestResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	belongs, err := s.employees.BelongsToCompany(ctx, companyID, req.EmployeeID)
	if err != nil {
		s.logger.Error("create leave request company check failed", zap.Error(err))
		return LeaveRequestResponse{}, err
	}
	if !belongs {
		return LeaveRequestResponse{}, leaveerrors.ErrEmployeeNotInCompany
	}

	overlap, err := qtx.HasOverlappingPeriod(ctx, companyID, req.EmployeeID, startDate, endDate, nil)
	if err != nil {
		s.logger.Error("create leave request overlap check failed", zap.Error(err))
		return LeaveRequestResponse{}, err
	}
	if overlap {
		s.logger.Warn("create leave request overlap detected",
			zap.String("company_id", companyID),
			zap.String("employee_id", req.EmployeeID),
		)
		return LeaveRequestResponse{}, leaveerrors.ErrLeaveOverlap
	}

	requestID := uuid.New()
	steps, err := workflow.BuildChain(requestID, leaveType)
	if err != nil {
		return LeaveRequestResponse{}, leaveerrors.ErrInvalidLeaveType
	}

	now := time.Now().UTC()
	totalDays := int(endDate.Sub(startDate).Hours()/24) + 1
	request := &domain.LeaveRequest{
		ID:          requestID,
		CompanyID:   companyUUID,
		EmployeeID:  employeeUUID,
		LeaveType:   leaveType,
		StartDate:   startDate,
		EndDate:     endDate,
		TotalDays:   totalDays,
		Reason:      req.Reason,
		Documents:   req.Documents,
		Status:      domain.StatusPending,
		CurrentStep: 0,
		Steps:       steps,
		CreatedBy:   createdByUUID,
		Version:     1,
		AppliedAt:   now,
	}

	if err := qtx.Create(ctx, request); err != nil {
		s.logger.Error("create leave request persist failed", zap.Error(err))
		return LeaveRequestResponse{}, err
	}

	if err := s.appendAudit(ctx, tx, request, createdByUUID, "", auditActionSubmit, req.Reason, now); err != nil {
		return LeaveRequestResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("create leave request commit failed", zap.Error(err))
		return LeaveRequestResponse{}, err
	}
	s.logger.Info("leave request created",
		zap.String("request_id", requestID.String()),
		zap.String("company_id", companyID),
		zap.String("leave_type", string(leaveType)),
		zap.Int("chain_length", len(steps)),
	)

	return mapToResponse(request), nil
}

func (s *service) GetAll(ctx context.Context, companyID string) ([]LeaveRequestResponse, error) {
	requests, err := s.repo.FindAllByCompany(ctx, companyID)
	if err != nil {
		return nil, err
	}
	resp := make([]LeaveRequestResponse, len(requests))
	for i := range requests {
		resp[i] = mapToResponse(&requests[i])
	}
	return resp, nil
}

func (s *service) GetByID(ctx context.Context, companyID, id string) (LeaveRequestResponse, error) {
	request, err := s.repo.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LeaveRequestResponse{}, leaveerrors.ErrRequestNotFound
		}
		return LeaveRequestResponse{}, err
	}
	return mapToResponse(request), nil
}

func (s *service) SubmitDecision(ctx context.Context, companyID, actorID, id string, role domain.Role, req DecisionRequest) (LeaveRequestResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("submit decision",
		zap.String("request_id", rid),
		zap.String("leave_request_id", id),
		zap.String("company_id", companyID),
		zap.String("actor_id", actorID),
		zap.String("role", string(role)),
		zap.String("decision", req.Decision),
	)

	if _, err := uuid.Parse(companyID); err != nil {
		return LeaveRequestResponse{}, leaveerrors.ErrInvalidCompanyID
	}
	actorUUID, err := uuid.Parse(actorID)
	if err != nil {
		return LeaveRequestResponse{}, leaveerrors.ErrInvalidActorID
	}
	if !role.IsValid() {
		return LeaveRequestResponse{}, leaveerrors.ErrInvalidRole
	}
	decision := domain.Decision(req.Decision)
	if !decision.IsValid() {
		return LeaveRequestResponse{}, leaveerrors.ErrInvalidRole
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("submit decision begin tx failed", zap.Error(err))
		return LeaveRequestResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	// The row lock serializes concurrent approvers: whoever loses the
	// race re-reads the post-decision chain and fails CanAct below.
	request, err := qtx.FindByIDForUpdate(ctx, companyID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LeaveRequestResponse{}, leaveerrors.ErrRequestNotFound
		}
		return LeaveRequestResponse{}, err
	}

	profile, err := s.employees.GetProfile(ctx, companyID, request.EmployeeID.String())
	if err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return LeaveRequestResponse{}, leaveerrors.ErrEmployeeNotFound
		}
		return LeaveRequestResponse{}, err
	}

	if !workflow.CanAct(request, role) {
		s.logger.Warn("submit decision not actionable",
			zap.String("leave_request_id", id),
			zap.String("role", string(role)),
			zap.String("status", string(request.Status)),
			zap.Int("current_step", request.CurrentStep),
		)
		return LeaveRequestResponse{}, leaveerrors.ErrNotYourTurn
	}

	if decision == domain.DecisionApprove {
		if res := workflow.CheckEligibility(request.LeaveType, profile); !res.Eligible {
			s.logger.Warn("submit decision blocked by eligibility",
				zap.String("leave_request_id", id),
				zap.String("leave_type", string(request.LeaveType)),
				zap.String("reason", res.Reason),
			)
			return LeaveRequestResponse{}, leaveerrors.Ineligible(res.Reason)
		}

		if workflow.IsFinalFinancialApprover(request.LeaveType, role) {
			if err := s.reconcile(request, req); err != nil {
				return LeaveRequestResponse{}, err
			}
		}
	}

	expectedVersion := request.Version
	now := time.Now().UTC()
	err = workflow.ApplyDecision(request, role, decision, workflow.DecisionMeta{
		ActorID:   actorUUID,
		Comment:   req.Comment,
		DecidedAt: now,
	})
	if err != nil {
		if errors.Is(err, workflow.ErrNotActionable) {
			return LeaveRequestResponse{}, leaveerrors.ErrNotYourTurn
		}
		return LeaveRequestResponse{}, err
	}

	if err := qtx.Save(ctx, request, expectedVersion); err != nil {
		if errors.Is(err, ErrStaleVersion) {
			return LeaveRequestResponse{}, leaveerrors.ErrConcurrentDecision
		}
		s.logger.Error("submit decision persist failed",
			zap.String("leave_request_id", id),
			zap.Error(err),
		)
		return LeaveRequestResponse{}, err
	}

	action := auditActionApprove
	if decision == domain.DecisionReject {
		action = auditActionReject
	}
	if err := s.appendAudit(ctx, tx, request, actorUUID, role, action, req.Comment, now); err != nil {
		return LeaveRequestResponse{}, err
	}
	if err := s.enqueueDecisionEvent(ctx, tx, request, role, decision, now); err != nil {
		return LeaveRequestResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("submit decision commit failed",
			zap.String("leave_request_id", id),
			zap.Error(err),
		)
		return LeaveRequestResponse{}, err
	}
	s.logger.Info("decision applied",
		zap.String("leave_request_id", id),
		zap.String("role", string(role)),
		zap.String("decision", string(decision)),
		zap.String("status", string(request.Status)),
	)

	return mapToResponse(request), nil
}

// reconcile validates and fixes the paid/unpaid split (and the medical
// category) on the request. Missing split values count as zero so the
// mismatch error reports the real shortfall.
func (s *service) reconcile(request *domain.LeaveRequest, req DecisionRequest) error {
	paid, unpaid := 0, 0
	if req.PaidDays != nil {
		paid = *req.PaidDays
	}
	if req.UnpaidDays != nil {
		unpaid = *req.UnpaidDays
	}
	var category *domain.LeaveCategory
	if req.LeaveCategory != nil {
		c := domain.LeaveCategory(*req.LeaveCategory)
		category = &c
	}

	if err := workflow.ValidateReconciliation(request.LeaveType, request.TotalDays, paid, unpaid, category); err != nil {
		var failures []error
		var mismatch *workflow.DaysMismatchError
		if errors.As(err, &mismatch) {
			failures = append(failures, leaveerrors.DaysMismatch(mismatch.Allocated, mismatch.Required))
		}
		if errors.Is(err, workflow.ErrMissingCategory) {
			failures = append(failures, leaveerrors.ErrMissingCategory)
		}
		return errors.Join(failures...)
	}

	request.PaidDays = &paid
	request.UnpaidDays = &unpaid
	request.LeaveCategory = category
	return nil
}

func (s *service) Withdraw(ctx context.Context, companyID, actorID, id string, req WithdrawRequest) (LeaveRequestResponse, error) {
	s.logger.Debug("withdraw leave request",
		zap.String("leave_request_id", id),
		zap.String("company_id", companyID),
		zap.String("actor_id", actorID),
	)

	if _, err := uuid.Parse(companyID); err != nil {
		return LeaveRequestResponse{}, leaveerrors.ErrInvalidCompanyID
	}
	actorUUID, err := uuid.Parse(actorID)
	if err != nil {
		return LeaveRequestResponse{}, leaveerrors.ErrInvalidActorID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("withdraw begin tx failed", zap.Error(err))
		return LeaveRequestResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	request, err := qtx.FindByIDForUpdate(ctx, companyID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LeaveRequestResponse{}, leaveerrors.ErrRequestNotFound
		}
		return LeaveRequestResponse{}, err
	}
	if request.EmployeeID != actorUUID && request.CreatedBy != actorUUID {
		return LeaveRequestResponse{}, leaveerrors.ErrNotRequestOwner
	}
	if request.Status.IsTerminal() {
		return LeaveRequestResponse{}, leaveerrors.ErrNotYourTurn
	}

	expectedVersion := request.Version
	now := time.Now().UTC()
	request.Status = domain.StatusWithdrawn

	if err := qtx.Save(ctx, request, expectedVersion); err != nil {
		if errors.Is(err, ErrStaleVersion) {
			return LeaveRequestResponse{}, leaveerrors.ErrConcurrentDecision
		}
		return LeaveRequestResponse{}, err
	}
	if err := s.appendAudit(ctx, tx, request, actorUUID, "", auditActionWithdraw, req.Comment, now); err != nil {
		return LeaveRequestResponse{}, err
	}
	if err := s.enqueueDecisionEvent(ctx, tx, request, "", "", now); err != nil {
		return LeaveRequestResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("withdraw commit failed", zap.Error(err))
		return LeaveRequestResponse{}, err
	}
	s.logger.Info("leave request withdrawn",
		zap.String("leave_request_id", id),
	)

	return mapToResponse(request), nil
}

func (s *service) History(ctx context.Context, companyID, id string) ([]HistoryEntryResponse, error) {
	if _, err := s.GetByID(ctx, companyID, id); err != nil {
		return nil, err
	}

	entries, err := s.auditRepo.ListByRequest(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	resp := make([]HistoryEntryResponse, len(entries))
	for i, e := range entries {
		resp[i] = HistoryEntryResponse{
			ActorID:    e.ActorID.String(),
			Role:       string(e.Role),
			Action:     e.Action,
			Comment:    e.Comment,
			OccurredAt: e.OccurredAt.Format(time.RFC3339),
		}
	}
	return resp, nil
}

func (s *service) appendAudit(
	ctx context.Context,
	tx *sql.Tx,
	request *domain.LeaveRequest,
	actorID uuid.UUID,
	role domain.Role,
	action, comment string,
	occurredAt time.Time,
) error {
	if s.auditRepo == nil {
		return nil
	}
	entry := &audit.Entry{
		ID:             uuid.New(),
		CompanyID:      request.CompanyID,
		LeaveRequestID: request.ID,
		ActorID:        actorID,
		Role:           role,
		Action:         action,
		Comment:        comment,
		OccurredAt:     occurredAt,
	}
	if err := s.auditRepo.WithTx(tx).Append(ctx, entry); err != nil {
		s.logger.Error("append audit entry failed",
			zap.String("leave_request_id", request.ID.String()),
			zap.Error(err),
		)
		return err
	}
	return nil
}

// enqueueDecisionEvent records the transition in the transactional
// outbox; the relay worker publishes it to Kafka after commit.
func (s *service) enqueueDecisionEvent(
	ctx context.Context,
	tx *sql.Tx,
	request *domain.LeaveRequest,
	role domain.Role,
	decision domain.Decision,
	occurredAt time.Time,
) error {
	if s.outbox == nil {
		return nil
	}
	eventType := events.EventTypeFor(request.Status)
	if eventType == "" {
		return nil
	}

	payload, err := json.Marshal(events.LeaveDecisionEvent{
		EventType:  eventType,
		RequestID:  request.ID.String(),
		CompanyID:  request.CompanyID.String(),
		EmployeeID: request.EmployeeID.String(),
		LeaveType:  request.LeaveType,
		Role:       role,
		Decision:   decision,
		Status:     request.Status,
		OccurredAt: occurredAt,
	})
	if err != nil {
		return err
	}

	return s.outbox.WithTx(tx).Create(ctx, kafka.OutboxEvent{
		ID:            uuid.New().String(),
		RequestID:     contextutil.GetRequestID(ctx),
		AggregateType: "leave_request",
		AggregateID:   request.ID.String(),
		EventType:     eventType,
		Topic:         events.LeaveDecisionTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	})
}

func parseDate(v string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", v)
	if err != nil {
		return time.Time{}, leaveerrors.ErrInvalidDateFormat
	}
	return t, nil
}

func mapToResponse(r *domain.LeaveRequest) LeaveRequestResponse {
	steps := make([]ApprovalStepResponse, len(r.Steps))
	for i, step := range r.Steps {
		sr := ApprovalStepResponse{
			StepOrder: step.StepOrder,
			Role:      string(step.Role),
			Status:    string(step.Status),
			Comment:   step.Comment,
		}
		if step.ActedBy != nil {
			v := step.ActedBy.String()
			sr.ActedBy = &v
		}
		if step.ActedAt != nil {
			v := step.ActedAt.Format(time.RFC3339)
			sr.ActedAt = &v
		}
		steps[i] = sr
	}

	resp := LeaveRequestResponse{
		ID:          r.ID.String(),
		CompanyID:   r.CompanyID.String(),
		EmployeeID:  r.EmployeeID.String(),
		LeaveType:   string(r.LeaveType),
		StartDate:   r.StartDate.Format("2006-01-02"),
		EndDate:     r.EndDate.Format("2006-01-02"),
		TotalDays:   r.TotalDays,
		Reason:      r.Reason,
		Documents:   r.Documents,
		Status:      string(r.Status),
		CurrentStep: r.CurrentStep,
		Steps:       steps,
		PaidDays:    r.PaidDays,
		UnpaidDays:  r.UnpaidDays,
		CreatedBy:   r.CreatedBy.String(),
		AppliedAt:   r.AppliedAt.Format(time.RFC3339),
	}
	if r.LeaveCategory != nil {
		v := string(*r.LeaveCategory)
		resp.LeaveCategory = &v
	}
	return resp
}
