package leaverequest

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/CodiWebSite/poni-connect-sub002/internal/balance"
	"github.com/CodiWebSite/poni-connect-sub002/internal/calendar"
	"github.com/CodiWebSite/poni-connect-sub002/internal/department"
	"github.com/CodiWebSite/poni-connect-sub002/internal/domain"
	"github.com/CodiWebSite/poni-connect-sub002/internal/employee"
	"github.com/CodiWebSite/poni-connect-sub002/internal/events"
	leaverequesterrors "github.com/CodiWebSite/poni-connect-sub002/internal/leaverequest/errors"
	"github.com/CodiWebSite/poni-connect-sub002/internal/messaging/kafka"
	"github.com/CodiWebSite/poni-connect-sub002/internal/shared/contextutil"
	"github.com/CodiWebSite/poni-connect-sub002/internal/shared/counter"
	"github.com/CodiWebSite/poni-connect-sub002/internal/signature"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	dateLayout              = "2006-01-02"
	counterTypeLeaveRequest = "leave_request"
)

//go:generate mockgen -source=leaverequest_service.go -destination=mock/leaverequest_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, actor Actor, req CreateLeaveRequest) (LeaveRequestResponse, error)
	GetAll(ctx context.Context, actor Actor, canReadAll bool) ([]LeaveRequestResponse, error)
	GetByID(ctx context.Context, actor Actor, canReadAll bool, id string) (LeaveRequestResponse, error)
	Sign(ctx context.Context, actor Actor, id string, req SignLeaveRequest) (LeaveRequestResponse, error)
	Approve(ctx context.Context, actor Actor, id string, req ApproveLeaveRequest) (ApprovalResult, error)
	Reject(ctx context.Context, actor Actor, id string, req RejectLeaveRequest) (LeaveRequestResponse, error)
	Delete(ctx context.Context, actor Actor, id string) error
}

type service struct {
	db          *sql.DB
	repo        Repository
	employees   employee.Repository
	departments department.Repository
	calendarSvc calendar.Service
	balanceSvc  balance.Service
	signatures  signature.Service
	counters    counter.Repository
	outbox      kafka.OutboxRepository
	logger      *zap.Logger
}

func NewService(
	db *sql.DB,
	repo Repository,
	employees employee.Repository,
	departments department.Repository,
	calendarSvc calendar.Service,
	balanceSvc balance.Service,
	signatures signature.Service,
	counters counter.Repository,
	outbox kafka.OutboxRepository,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("leaverequest.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leaverequest.service")
	}
	return &service{
		db:          db,
		repo:        repo,
		employees:   employees,
		departments: departments,
		calendarSvc: calendarSvc,
		balanceSvc:  balanceSvc,
		signatures:  signatures,
		counters:    counters,
		outbox:      outbox,
		logger:      l,
	}
}

func (s *service) Create(ctx context.Context, actor Actor, req CreateLeaveRequest) (LeaveRequestResponse, error) {
	s.logger.Debug("create leave request",
		zap.String("actor_user_id", actor.UserID),
		zap.String("start_date", req.StartDate),
		zap.String("end_date", req.EndDate),
	)

	actorUUID, err := uuid.Parse(actor.UserID)
	if err != nil {
		return LeaveRequestResponse{}, leaverequesterrors.ErrInvalidActorID
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
		return LeaveRequestResponse{}, leaverequesterrors.ErrInvalidDateRange
	}

	emp, err := s.employees.FindByUserID(ctx, actor.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LeaveRequestResponse{}, leaverequesterrors.ErrNoEmployeeRecord
		}
		return LeaveRequestResponse{}, err
	}

	workingDays, err := s.calendarSvc.WorkingDays(ctx, startDate, endDate)
	if err != nil {
		s.logger.Error("create leave request working days failed", zap.Error(err))
		return LeaveRequestResponse{}, err
	}

	year := startDate.Year()
	requestNumber, err := s.counters.GetNextValue(ctx, counterTypeLeaveRequest, strconv.Itoa(year))
	if err != nil {
		s.logger.Error("create leave request number allocation failed", zap.Error(err))
		return LeaveRequestResponse{}, err
	}

	l := &LeaveRequest{
		ID:                  uuid.New(),
		RequestNumber:       requestNumber,
		Year:                year,
		EmployeeID:          emp.ID,
		CreatedBy:           actorUUID,
		StartDate:           startDate,
		EndDate:             endDate,
		WorkingDays:         workingDays,
		ReplacementName:     req.ReplacementName,
		ReplacementPosition: req.ReplacementPosition,
		Status:              StatusDraft,
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("create leave request begin tx failed", zap.Error(err))
		return LeaveRequestResponse{}, err
	}
	defer tx.Rollback()

	if err := s.repo.WithTx(tx).Create(ctx, l); err != nil {
		s.logger.Error("create leave request persist failed", zap.Error(err))
		return LeaveRequestResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return LeaveRequestResponse{}, err
	}

	s.logger.Info("leave request created",
		zap.String("request_id", l.ID.String()),
		zap.Int64("request_number", l.RequestNumber),
		zap.Int("working_days", l.WorkingDays),
	)
	return mapToResponse(*l), nil
}

func (s *service) GetAll(ctx context.Context, actor Actor, canReadAll bool) ([]LeaveRequestResponse, error) {
	var (
		requests []LeaveRequest
		err      error
	)
	if canReadAll {
		requests, err = s.repo.FindAll(ctx)
	} else {
		requests, err = s.repo.FindAllByCreator(ctx, actor.UserID)
	}
	if err != nil {
		return nil, err
	}

	resp := make([]LeaveRequestResponse, len(requests))
	for i, l := range requests {
		resp[i] = mapToResponse(l)
	}
	return resp, nil
}

func (s *service) GetByID(ctx context.Context, actor Actor, canReadAll bool, id string) (LeaveRequestResponse, error) {
	l, err := s.findByID(ctx, id)
	if err != nil {
		return LeaveRequestResponse{}, err
	}
	if !canReadAll && l.CreatedBy.String() != actor.UserID {
		return LeaveRequestResponse{}, leaverequesterrors.ErrNotFound
	}
	return mapToResponse(*l), nil
}

// Sign applies the employee's signature and submits the request to the
// department head. Re-signing is rejected, never overwritten.
func (s *service) Sign(ctx context.Context, actor Actor, id string, req SignLeaveRequest) (LeaveRequestResponse, error) {
	l, err := s.findByID(ctx, id)
	if err != nil {
		return LeaveRequestResponse{}, err
	}
	if l.CreatedBy.String() != actor.UserID {
		return LeaveRequestResponse{}, leaverequesterrors.ErrNotRequestOwner
	}
	if l.EmployeeSignature.Signed() {
		return LeaveRequestResponse{}, leaverequesterrors.ErrAlreadySigned
	}
	if !isAllowedStatusTransition(l.Status, StatusPendingDeptHead) {
		return LeaveRequestResponse{}, leaverequesterrors.ErrInvalidTransition
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("sign leave request begin tx failed", zap.Error(err))
		return LeaveRequestResponse{}, err
	}
	defer tx.Rollback()

	// Stored in the transition tx: a lost status race rolls the image
	// back with it.
	sigRef, err := s.signatures.WithTx(tx).Store(ctx, actor.UserID, req.Signature)
	if err != nil {
		return LeaveRequestResponse{}, err
	}

	fromStatus := l.Status
	l.Status = StatusPendingDeptHead
	l.EmployeeSignature = SignedNow(sigRef)

	updated, err := s.repo.WithTx(tx).TransitionFrom(ctx, l, fromStatus)
	if err != nil {
		s.logger.Error("sign leave request persist failed", zap.String("request_id", id), zap.Error(err))
		return LeaveRequestResponse{}, err
	}
	if !updated {
		return LeaveRequestResponse{}, s.classifyLostUpdate(ctx, id, fromStatus)
	}

	if err := s.enqueueLifecycleEvent(ctx, tx, l, events.LeaveRequestSubmitted, nil); err != nil {
		return LeaveRequestResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return LeaveRequestResponse{}, err
	}

	s.logger.Info("leave request signed and submitted",
		zap.String("request_id", id),
		zap.String("actor_user_id", actor.UserID),
	)
	return mapToResponse(*l), nil
}

// Approve is the only place the employee's used-day counter moves, and it
// moves exactly once per request: the status compare-and-swap and the
// atomic increment share one transaction.
func (s *service) Approve(ctx context.Context, actor Actor, id string, req ApproveLeaveRequest) (ApprovalResult, error) {
	actorEmployeeUUID, err := uuid.Parse(actor.EmployeeID)
	if err != nil {
		return ApprovalResult{}, leaverequesterrors.ErrInvalidActorID
	}

	l, err := s.findByID(ctx, id)
	if err != nil {
		return ApprovalResult{}, err
	}
	if !isAllowedStatusTransition(l.Status, StatusApproved) {
		return ApprovalResult{}, leaverequesterrors.ErrInvalidTransition
	}
	if l.DeptHeadSignature.Signed() {
		return ApprovalResult{}, leaverequesterrors.ErrAlreadySigned
	}

	emp, err := s.employees.FindByID(ctx, l.EmployeeID.String())
	if err != nil {
		return ApprovalResult{}, err
	}

	if err := s.guardDecision(ctx, actor, emp); err != nil {
		return ApprovalResult{}, err
	}

	bal, err := s.balanceSvc.ForEmployee(ctx, l.EmployeeID.String(), l.Year)
	if err != nil {
		return ApprovalResult{}, err
	}
	insufficient := !bal.CanApprove(l.WorkingDays)
	if insufficient {
		s.logger.Warn("approving with insufficient balance",
			zap.String("request_id", id),
			zap.String("employee_id", l.EmployeeID.String()),
			zap.Int("remaining_days", bal.RemainingDays),
			zap.Int("working_days", l.WorkingDays),
			zap.String("approved_by", actor.EmployeeID),
		)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("approve leave request begin tx failed", zap.Error(err))
		return ApprovalResult{}, err
	}
	defer tx.Rollback()

	sigRef, err := s.signatures.WithTx(tx).Store(ctx, actor.UserID, req.Signature)
	if err != nil {
		return ApprovalResult{}, err
	}

	fromStatus := l.Status
	l.Status = StatusApproved
	l.DeptHeadSignature = SignedNow(sigRef)
	l.DeptHeadID = &actorEmployeeUUID

	updated, err := s.repo.WithTx(tx).TransitionFrom(ctx, l, fromStatus)
	if err != nil {
		s.logger.Error("approve leave request persist failed", zap.String("request_id", id), zap.Error(err))
		return ApprovalResult{}, err
	}
	if !updated {
		return ApprovalResult{}, s.classifyLostUpdate(ctx, id, fromStatus)
	}

	if err := s.employees.WithTx(tx).IncrementUsedLeaveDays(ctx, l.EmployeeID.String(), l.WorkingDays); err != nil {
		s.logger.Error("approve leave request balance increment failed", zap.String("request_id", id), zap.Error(err))
		return ApprovalResult{}, err
	}

	if err := s.enqueueLifecycleEvent(ctx, tx, l, events.LeaveRequestApproved, nil); err != nil {
		return ApprovalResult{}, err
	}

	if err := tx.Commit(); err != nil {
		return ApprovalResult{}, err
	}

	s.balanceSvc.Invalidate(ctx, l.EmployeeID.String(), l.Year)

	s.logger.Info("leave request approved",
		zap.String("request_id", id),
		zap.String("dept_head_id", actor.EmployeeID),
		zap.Int("working_days", l.WorkingDays),
		zap.Bool("insufficient_balance", insufficient),
	)
	return ApprovalResult{
		Request:             mapToResponse(*l),
		RemainingDays:       bal.RemainingDays - l.WorkingDays,
		InsufficientBalance: insufficient,
	}, nil
}

func (s *service) Reject(ctx context.Context, actor Actor, id string, req RejectLeaveRequest) (LeaveRequestResponse, error) {
	actorEmployeeUUID, err := uuid.Parse(actor.EmployeeID)
	if err != nil {
		return LeaveRequestResponse{}, leaverequesterrors.ErrInvalidActorID
	}

	reason := strings.TrimSpace(req.RejectionReason)
	if reason == "" {
		return LeaveRequestResponse{}, leaverequesterrors.ErrRejectionReasonRequired
	}

	l, err := s.findByID(ctx, id)
	if err != nil {
		return LeaveRequestResponse{}, err
	}
	if !isAllowedStatusTransition(l.Status, StatusRejected) {
		return LeaveRequestResponse{}, leaverequesterrors.ErrInvalidTransition
	}

	emp, err := s.employees.FindByID(ctx, l.EmployeeID.String())
	if err != nil {
		return LeaveRequestResponse{}, err
	}

	if err := s.guardDecision(ctx, actor, emp); err != nil {
		return LeaveRequestResponse{}, err
	}

	now := time.Now().UTC()
	fromStatus := l.Status
	l.Status = StatusRejected
	l.RejectedBy = &actorEmployeeUUID
	l.RejectedAt = &now
	l.RejectionReason = &reason

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("reject leave request begin tx failed", zap.Error(err))
		return LeaveRequestResponse{}, err
	}
	defer tx.Rollback()

	updated, err := s.repo.WithTx(tx).TransitionFrom(ctx, l, fromStatus)
	if err != nil {
		s.logger.Error("reject leave request persist failed", zap.String("request_id", id), zap.Error(err))
		return LeaveRequestResponse{}, err
	}
	if !updated {
		return LeaveRequestResponse{}, s.classifyLostUpdate(ctx, id, fromStatus)
	}

	if err := s.enqueueLifecycleEvent(ctx, tx, l, events.LeaveRequestRejected, &reason); err != nil {
		return LeaveRequestResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return LeaveRequestResponse{}, err
	}

	s.logger.Info("leave request rejected",
		zap.String("request_id", id),
		zap.String("rejected_by", actor.EmployeeID),
	)
	return mapToResponse(*l), nil
}

// Delete removes a request that never reached a decision. Deleting an
// approved request would leave used_leave_days inflated with no matching
// record, so final states cannot be deleted.
func (s *service) Delete(ctx context.Context, actor Actor, id string) error {
	l, err := s.findByID(ctx, id)
	if err != nil {
		return err
	}
	if l.CreatedBy.String() != actor.UserID {
		return leaverequesterrors.ErrNotRequestOwner
	}
	if l.IsFinal() {
		return leaverequesterrors.ErrDeleteFinalState
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("leave request deleted",
		zap.String("request_id", id),
		zap.String("actor_user_id", actor.UserID),
	)
	return nil
}

// guardDecision allows heads of the employee's department and
// super-admin overrides. Headship comes from the assignment table, never
// from department-name matching.
func (s *service) guardDecision(ctx context.Context, actor Actor, emp *employee.Employee) error {
	if actor.Role == domain.RoleSuperAdmin {
		return nil
	}
	if emp.DepartmentID == nil {
		return leaverequesterrors.ErrNotDepartmentHead
	}
	isHead, err := s.departments.IsHeadOf(ctx, emp.DepartmentID.String(), actor.EmployeeID)
	if err != nil {
		return err
	}
	if !isHead {
		return leaverequesterrors.ErrNotDepartmentHead
	}
	return nil
}

func (s *service) findByID(ctx context.Context, id string) (*LeaveRequest, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, leaverequesterrors.ErrInvalidRequestID
	}
	l, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, leaverequesterrors.ErrNotFound
		}
		return nil, err
	}
	return l, nil
}

// classifyLostUpdate distinguishes a request that raced past us from one
// that vanished. Both surface as retry-or-conflict to the caller.
func (s *service) classifyLostUpdate(ctx context.Context, id, expectedStatus string) error {
	current, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return leaverequesterrors.ErrNotFound
		}
		return leaverequesterrors.ErrConcurrentModification
	}
	if current.Status != expectedStatus {
		return leaverequesterrors.ErrInvalidTransition
	}
	return leaverequesterrors.ErrConcurrentModification
}

func (s *service) enqueueLifecycleEvent(ctx context.Context, tx *sql.Tx, l *LeaveRequest, eventType string, reason *string) error {
	emp, err := s.employees.FindByID(ctx, l.EmployeeID.String())
	if err != nil {
		return err
	}

	evt := events.LeaveRequestLifecycleEvent{
		EventType:     eventType,
		RequestID:     l.ID.String(),
		RequestNumber: l.RequestNumber,
		EmployeeID:    l.EmployeeID.String(),
		EmployeeName:  emp.FullName,
		SubmittedBy:   l.CreatedBy.String(),
		StartDate:     l.StartDate.Format(dateLayout),
		EndDate:       l.EndDate.Format(dateLayout),
		WorkingDays:   l.WorkingDays,
		Status:        l.Status,
		OccurredAt:    time.Now().UTC(),
	}
	if emp.DepartmentID != nil {
		evt.DepartmentID = emp.DepartmentID.String()
	}
	if reason != nil {
		evt.RejectionReason = *reason
	}

	payload, err := json.Marshal(evt)
	if err != nil {
		return err
	}

	outboxEvent := kafka.OutboxEvent{
		ID:            uuid.New().String(),
		RequestID:     contextutil.GetRequestID(ctx),
		AggregateType: "leave_request",
		AggregateID:   l.ID.String(),
		EventType:     eventType,
		Topic:         events.LeaveRequestLifecycleTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	}
	if err := s.outbox.WithTx(tx).Create(ctx, outboxEvent); err != nil {
		s.logger.Error("enqueue lifecycle event failed",
			zap.String("request_id", l.ID.String()),
			zap.String("event_type", eventType),
			zap.Error(err),
		)
		return err
	}
	return nil
}

func parseDate(v string) (time.Time, error) {
	t, err := time.Parse(dateLayout, v)
	if err != nil {
		return time.Time{}, leaverequesterrors.ErrInvalidDateFormat
	}
	return t, nil
}

func mapToResponse(l LeaveRequest) LeaveRequestResponse {
	resp := LeaveRequestResponse{
		ID:                  l.ID.String(),
		RequestNumber:       l.RequestNumber,
		Year:                l.Year,
		EmployeeID:          l.EmployeeID.String(),
		CreatedBy:           l.CreatedBy.String(),
		StartDate:           l.StartDate.Format(dateLayout),
		EndDate:             l.EndDate.Format(dateLayout),
		WorkingDays:         l.WorkingDays,
		ReplacementName:     l.ReplacementName,
		ReplacementPosition: l.ReplacementPosition,
		Status:              l.Status,
	}
	if l.EmployeeSignature.Signed() {
		v := l.EmployeeSignature.SignedAt.Format(time.RFC3339)
		resp.EmployeeSignedAt = &v
	}
	if l.DeptHeadSignature.Signed() {
		v := l.DeptHeadSignature.SignedAt.Format(time.RFC3339)
		resp.DeptHeadSignedAt = &v
	}
	if l.DeptHeadID != nil {
		v := l.DeptHeadID.String()
		resp.DeptHeadID = &v
	}
	if l.RejectedBy != nil {
		v := l.RejectedBy.String()
		resp.RejectedBy = &v
	}
	if l.RejectedAt != nil {
		v := l.RejectedAt.Format(time.RFC3339)
		resp.RejectedAt = &v
	}
	resp.RejectionReason = l.RejectionReason
	return resp
}
