package notification

import (
	"context"
	"fmt"
	"time"

	"github.com/CodiWebSite/poni-connect-sub002/internal/auth"
	"github.com/CodiWebSite/poni-connect-sub002/internal/department"
	"github.com/CodiWebSite/poni-connect-sub002/internal/domain"
	"github.com/CodiWebSite/poni-connect-sub002/internal/employee"
	"github.com/CodiWebSite/poni-connect-sub002/internal/leaverequest"
	"github.com/CodiWebSite/poni-connect-sub002/internal/mailer"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	// how long a request may sit with the department head before the
	// first reminder and before the escalation to HR
	ReminderAfter   = 3 * 24 * time.Hour
	EscalationAfter = 5 * 24 * time.Hour
)

// ReminderSweeper nags about leave requests stuck in the approval queue.
// One sweep per day is expected; the per-day dedup on notification rows
// makes extra sweeps harmless.
type ReminderSweeper struct {
	requests    leaverequest.Repository
	employees   employee.Repository
	departments department.Repository
	users       auth.Repository
	repo        Repository
	mail        mailer.Mailer
	logger      *zap.Logger
}

func NewReminderSweeper(
	requests leaverequest.Repository,
	employees employee.Repository,
	departments department.Repository,
	users auth.Repository,
	repo Repository,
	mail mailer.Mailer,
	logger ...*zap.Logger,
) *ReminderSweeper {
	l := zap.L().Named("notification.reminder")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("notification.reminder")
	}
	return &ReminderSweeper{
		requests:    requests,
		employees:   employees,
		departments: departments,
		users:       users,
		repo:        repo,
		mail:        mail,
		logger:      l,
	}
}

func (s *ReminderSweeper) Run(ctx context.Context) error {
	now := time.Now().UTC()

	stale, err := s.requests.FindStalePending(ctx, now.Add(-ReminderAfter))
	if err != nil {
		return err
	}

	reminded, escalated := 0, 0
	for _, l := range stale {
		age := now.Sub(l.UpdatedAt)

		if err := s.remindHeads(ctx, &l, now); err != nil {
			s.logger.Error("reminder failed", zap.String("request_id", l.ID.String()), zap.Error(err))
			continue
		}
		reminded++

		if age >= EscalationAfter {
			if err := s.escalate(ctx, &l, now); err != nil {
				s.logger.Error("escalation failed", zap.String("request_id", l.ID.String()), zap.Error(err))
				continue
			}
			escalated++
		}
	}

	s.logger.Info("reminder sweep finished",
		zap.Int("stale_requests", len(stale)),
		zap.Int("reminded", reminded),
		zap.Int("escalated", escalated),
	)
	return nil
}

func (s *ReminderSweeper) remindHeads(ctx context.Context, l *leaverequest.LeaveRequest, now time.Time) error {
	done, err := s.repo.ExistsForDay(ctx, l.ID.String(), TypeReminder, now)
	if err != nil || done {
		return err
	}

	emp, err := s.employees.FindByID(ctx, l.EmployeeID.String())
	if err != nil {
		return err
	}
	if emp.DepartmentID == nil {
		return nil
	}
	headIDs, err := s.departments.HeadEmployeeIDs(ctx, emp.DepartmentID.String())
	if err != nil {
		return err
	}

	title := "Cerere de concediu in asteptare"
	message := fmt.Sprintf("Cererea de concediu nr. %d a lui %s asteapta aprobarea din %s.",
		l.RequestNumber, emp.FullName, l.UpdatedAt.Format("2006-01-02"))

	relatedID := l.ID
	var emails []string
	for _, headID := range headIDs {
		user, err := s.users.GetByEmployeeID(ctx, headID)
		if err != nil {
			continue
		}
		if err := s.repo.Create(ctx, &Notification{
			ID:          uuid.New(),
			RecipientID: user.ID,
			Type:        TypeReminder,
			Title:       title,
			Message:     message,
			RelatedID:   &relatedID,
		}); err != nil {
			return err
		}
		if user.Email != "" {
			emails = append(emails, user.Email)
		}
	}

	s.sendMail(ctx, emails, title, message)
	return nil
}

func (s *ReminderSweeper) escalate(ctx context.Context, l *leaverequest.LeaveRequest, now time.Time) error {
	done, err := s.repo.ExistsForDay(ctx, l.ID.String(), TypeEscalation, now)
	if err != nil || done {
		return err
	}

	emp, err := s.employees.FindByID(ctx, l.EmployeeID.String())
	if err != nil {
		return err
	}

	admins, err := s.users.ListByRoles(ctx, domain.RoleHR, domain.RoleSuperAdmin)
	if err != nil {
		return err
	}

	title := "Escaladare: cerere de concediu blocata"
	message := fmt.Sprintf("Cererea de concediu nr. %d a lui %s este neaprobata de peste 5 zile.",
		l.RequestNumber, emp.FullName)

	relatedID := l.ID
	var emails []string
	for _, admin := range admins {
		if err := s.repo.Create(ctx, &Notification{
			ID:          uuid.New(),
			RecipientID: admin.ID,
			Type:        TypeEscalation,
			Title:       title,
			Message:     message,
			RelatedID:   &relatedID,
		}); err != nil {
			return err
		}
		if admin.Email != "" {
			emails = append(emails, admin.Email)
		}
	}

	s.sendMail(ctx, emails, title, message)
	return nil
}

func (s *ReminderSweeper) sendMail(ctx context.Context, to []string, subject, body string) {
	if len(to) == 0 {
		return
	}
	if err := s.mail.Send(ctx, to, subject, body); err != nil {
		s.logger.Warn("reminder mail failed", zap.Strings("to", to), zap.Error(err))
	}
}
