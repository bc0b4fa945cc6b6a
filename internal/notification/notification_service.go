package notification

import (
	"context"
	"errors"
	"fmt"

	"github.com/CodiWebSite/poni-connect-sub002/internal/auth"
	"github.com/CodiWebSite/poni-connect-sub002/internal/department"
	"github.com/CodiWebSite/poni-connect-sub002/internal/events"
	"github.com/CodiWebSite/poni-connect-sub002/internal/mailer"
	notificationerrors "github.com/CodiWebSite/poni-connect-sub002/internal/notification/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=notification_service.go -destination=mock/notification_service_mock.go -package=mock
type Service interface {
	ListForUser(ctx context.Context, userID string, unreadOnly bool) ([]NotificationResponse, error)
	MarkRead(ctx context.Context, userID, id string) error

	// NotifySubmitted fans a submission out to the heads of the
	// employee's department.
	NotifySubmitted(ctx context.Context, evt events.LeaveRequestLifecycleEvent) error
	// NotifyDecided informs the submitter about an approval or
	// a rejection.
	NotifyDecided(ctx context.Context, evt events.LeaveRequestLifecycleEvent) error
}

type service struct {
	repo        Repository
	users       auth.Repository
	departments department.Repository
	mail        mailer.Mailer
	logger      *zap.Logger
}

func NewService(
	repo Repository,
	users auth.Repository,
	departments department.Repository,
	mail mailer.Mailer,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("notification.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("notification.service")
	}
	return &service{
		repo:        repo,
		users:       users,
		departments: departments,
		mail:        mail,
		logger:      l,
	}
}

func (s *service) ListForUser(ctx context.Context, userID string, unreadOnly bool) ([]NotificationResponse, error) {
	notifications, err := s.repo.ListByRecipient(ctx, userID, unreadOnly)
	if err != nil {
		return nil, err
	}

	resp := make([]NotificationResponse, len(notifications))
	for i, n := range notifications {
		resp[i] = mapToResponse(n)
	}
	return resp, nil
}

func (s *service) MarkRead(ctx context.Context, userID, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return notificationerrors.ErrInvalidID
	}

	n, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notificationerrors.ErrNotFound
		}
		return err
	}
	if n.RecipientID.String() != userID {
		return notificationerrors.ErrNotRecipient
	}

	return s.repo.MarkRead(ctx, id)
}

func (s *service) NotifySubmitted(ctx context.Context, evt events.LeaveRequestLifecycleEvent) error {
	if evt.DepartmentID == "" {
		s.logger.Warn("submitted request has no department, nobody to notify",
			zap.String("request_id", evt.RequestID),
		)
		return nil
	}

	headIDs, err := s.departments.HeadEmployeeIDs(ctx, evt.DepartmentID)
	if err != nil {
		return err
	}
	if len(headIDs) == 0 {
		s.logger.Warn("department has no head, submission unrouted",
			zap.String("request_id", evt.RequestID),
			zap.String("department_id", evt.DepartmentID),
		)
		return nil
	}

	title := "Cerere de concediu noua"
	message := fmt.Sprintf("%s a trimis cererea de concediu nr. %d (%s - %s, %d zile lucratoare) spre aprobare.",
		evt.EmployeeName, evt.RequestNumber, evt.StartDate, evt.EndDate, evt.WorkingDays)

	return s.notifyEmployees(ctx, headIDs, TypeLeaveSubmitted, title, message, evt.RequestID)
}

func (s *service) NotifyDecided(ctx context.Context, evt events.LeaveRequestLifecycleEvent) error {
	submitterID, err := uuid.Parse(evt.SubmittedBy)
	if err != nil {
		s.logger.Error("lifecycle event carries invalid submitter id",
			zap.String("request_id", evt.RequestID),
			zap.String("submitted_by", evt.SubmittedBy),
		)
		return nil
	}

	var (
		notifType string
		title     string
		message   string
	)
	switch evt.EventType {
	case events.LeaveRequestApproved:
		notifType = TypeLeaveApproved
		title = "Cerere de concediu aprobata"
		message = fmt.Sprintf("Cererea de concediu nr. %d (%s - %s) a fost aprobata.",
			evt.RequestNumber, evt.StartDate, evt.EndDate)
	case events.LeaveRequestRejected:
		notifType = TypeLeaveRejected
		title = "Cerere de concediu respinsa"
		message = fmt.Sprintf("Cererea de concediu nr. %d (%s - %s) a fost respinsa. Motiv: %s",
			evt.RequestNumber, evt.StartDate, evt.EndDate, evt.RejectionReason)
	default:
		s.logger.Warn("unexpected lifecycle event type", zap.String("event_type", evt.EventType))
		return nil
	}

	relatedID, err := uuid.Parse(evt.RequestID)
	if err != nil {
		return nil
	}

	n := &Notification{
		ID:          uuid.New(),
		RecipientID: submitterID,
		Type:        notifType,
		Title:       title,
		Message:     message,
		RelatedID:   &relatedID,
	}
	if err := s.repo.Create(ctx, n); err != nil {
		return err
	}

	user, err := s.users.GetByID(ctx, submitterID)
	if err == nil && user.Email != "" {
		s.sendMail(ctx, []string{user.Email}, title, message)
	}
	return nil
}

// notifyEmployees resolves employee ids to portal users, writes one
// notification row per user and mails them in a single message.
func (s *service) notifyEmployees(ctx context.Context, employeeIDs []string, notifType, title, message, requestID string) error {
	relatedID, err := uuid.Parse(requestID)
	if err != nil {
		return nil
	}

	var emails []string
	for _, employeeID := range employeeIDs {
		user, err := s.users.GetByEmployeeID(ctx, employeeID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				s.logger.Warn("head has no portal account",
					zap.String("employee_id", employeeID),
				)
				continue
			}
			return err
		}

		n := &Notification{
			ID:          uuid.New(),
			RecipientID: user.ID,
			Type:        notifType,
			Title:       title,
			Message:     message,
			RelatedID:   &relatedID,
		}
		if err := s.repo.Create(ctx, n); err != nil {
			return err
		}
		if user.Email != "" {
			emails = append(emails, user.Email)
		}
	}

	s.sendMail(ctx, emails, title, message)
	return nil
}

// Mail failures are logged and swallowed; in-portal rows are the source
// of truth for delivery.
func (s *service) sendMail(ctx context.Context, to []string, subject, body string) {
	if len(to) == 0 {
		return
	}
	if err := s.mail.Send(ctx, to, subject, body); err != nil {
		s.logger.Warn("notification mail failed",
			zap.Strings("to", to),
			zap.String("subject", subject),
			zap.Error(err),
		)
	}
}
