package notification_test

import (
	"context"
	"database/sql"
	"encoding/json"
	"testing"
	"time"

	"github.com/CodiWebSite/poni-connect-sub002/internal/auth"
	"github.com/CodiWebSite/poni-connect-sub002/internal/department"
	"github.com/CodiWebSite/poni-connect-sub002/internal/domain"
	"github.com/CodiWebSite/poni-connect-sub002/internal/employee"
	"github.com/CodiWebSite/poni-connect-sub002/internal/events"
	"github.com/CodiWebSite/poni-connect-sub002/internal/leaverequest"
	"github.com/CodiWebSite/poni-connect-sub002/internal/notification"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type fakeNotificationRepository struct {
	created []*notification.Notification
}

func (f *fakeNotificationRepository) Create(ctx context.Context, n *notification.Notification) error {
	if n.CreatedAt.IsZero() {
		n.CreatedAt = time.Now().UTC()
	}
	f.created = append(f.created, n)
	return nil
}
func (f *fakeNotificationRepository) ListByRecipient(ctx context.Context, recipientID string, unreadOnly bool) ([]notification.Notification, error) {
	return nil, nil
}
func (f *fakeNotificationRepository) FindByID(ctx context.Context, id string) (*notification.Notification, error) {
	for _, n := range f.created {
		if n.ID.String() == id {
			return n, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}
func (f *fakeNotificationRepository) MarkRead(ctx context.Context, id string) error { return nil }
func (f *fakeNotificationRepository) ExistsForDay(ctx context.Context, relatedID, notifType string, day time.Time) (bool, error) {
	dayStart := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)
	for _, n := range f.created {
		if n.RelatedID != nil && n.RelatedID.String() == relatedID && n.Type == notifType &&
			!n.CreatedAt.Before(dayStart) && n.CreatedAt.Before(dayStart.Add(24*time.Hour)) {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeNotificationRepository) countByType(notifType string) int {
	count := 0
	for _, n := range f.created {
		if n.Type == notifType {
			count++
		}
	}
	return count
}

type fakeRequestsRepository struct {
	stale []leaverequest.LeaveRequest
}

func (f *fakeRequestsRepository) WithTx(tx *sql.Tx) leaverequest.Repository { return f }
func (f *fakeRequestsRepository) Create(ctx context.Context, l *leaverequest.LeaveRequest) error {
	return nil
}
func (f *fakeRequestsRepository) FindByID(ctx context.Context, id string) (*leaverequest.LeaveRequest, error) {
	return nil, gorm.ErrRecordNotFound
}
func (f *fakeRequestsRepository) FindAll(ctx context.Context) ([]leaverequest.LeaveRequest, error) {
	return nil, nil
}
func (f *fakeRequestsRepository) FindAllByCreator(ctx context.Context, userID string) ([]leaverequest.LeaveRequest, error) {
	return nil, nil
}
func (f *fakeRequestsRepository) FindStalePending(ctx context.Context, pendingSince time.Time) ([]leaverequest.LeaveRequest, error) {
	var out []leaverequest.LeaveRequest
	for _, l := range f.stale {
		if !l.UpdatedAt.After(pendingSince) {
			out = append(out, l)
		}
	}
	return out, nil
}
func (f *fakeRequestsRepository) TransitionFrom(ctx context.Context, l *leaverequest.LeaveRequest, fromStatus string) (bool, error) {
	return false, nil
}
func (f *fakeRequestsRepository) Delete(ctx context.Context, id string) error { return nil }

type fakeEmployeesRepository struct {
	employees map[string]*employee.Employee
}

func (f *fakeEmployeesRepository) WithTx(tx *sql.Tx) employee.Repository { return f }
func (f *fakeEmployeesRepository) Create(ctx context.Context, e *employee.Employee) error {
	return nil
}
func (f *fakeEmployeesRepository) FindAll(ctx context.Context) ([]employee.Employee, error) {
	return nil, nil
}
func (f *fakeEmployeesRepository) FindByID(ctx context.Context, id string) (*employee.Employee, error) {
	if e, ok := f.employees[id]; ok {
		return e, nil
	}
	return nil, gorm.ErrRecordNotFound
}
func (f *fakeEmployeesRepository) FindByUserID(ctx context.Context, userID string) (*employee.Employee, error) {
	return nil, gorm.ErrRecordNotFound
}
func (f *fakeEmployeesRepository) Update(ctx context.Context, e *employee.Employee) error { return nil }
func (f *fakeEmployeesRepository) Delete(ctx context.Context, id string) error            { return nil }
func (f *fakeEmployeesRepository) IncrementUsedLeaveDays(ctx context.Context, id string, days int) error {
	return nil
}

type fakeDepartmentsRepository struct {
	headsByDept map[string][]string
}

func (f *fakeDepartmentsRepository) WithTx(tx *sql.Tx) department.Repository { return f }
func (f *fakeDepartmentsRepository) Create(ctx context.Context, d *department.Department) error {
	return nil
}
func (f *fakeDepartmentsRepository) FindAll(ctx context.Context) ([]department.Department, error) {
	return nil, nil
}
func (f *fakeDepartmentsRepository) FindByID(ctx context.Context, id string) (*department.Department, error) {
	return nil, gorm.ErrRecordNotFound
}
func (f *fakeDepartmentsRepository) Delete(ctx context.Context, id string) error { return nil }
func (f *fakeDepartmentsRepository) AssignHead(ctx context.Context, a *department.HeadAssignment) error {
	return nil
}
func (f *fakeDepartmentsRepository) UnassignHead(ctx context.Context, departmentID, employeeID string) error {
	return nil
}
func (f *fakeDepartmentsRepository) HeadEmployeeIDs(ctx context.Context, departmentID string) ([]string, error) {
	return f.headsByDept[departmentID], nil
}
func (f *fakeDepartmentsRepository) IsHeadOf(ctx context.Context, departmentID, employeeID string) (bool, error) {
	for _, h := range f.headsByDept[departmentID] {
		if h == employeeID {
			return true, nil
		}
	}
	return false, nil
}

type fakeUsersRepository struct {
	byEmployeeID map[string]*auth.User
	byRole       map[string][]auth.User
}

func (f *fakeUsersRepository) Create(ctx context.Context, user *auth.User) error { return nil }
func (f *fakeUsersRepository) GetByEmail(ctx context.Context, email string) (*auth.User, error) {
	return nil, gorm.ErrRecordNotFound
}
func (f *fakeUsersRepository) GetByID(ctx context.Context, id uuid.UUID) (*auth.User, error) {
	for _, u := range f.byEmployeeID {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}
func (f *fakeUsersRepository) GetByEmployeeID(ctx context.Context, employeeID string) (*auth.User, error) {
	if u, ok := f.byEmployeeID[employeeID]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}
func (f *fakeUsersRepository) ListByRoles(ctx context.Context, roles ...string) ([]auth.User, error) {
	var out []auth.User
	for _, role := range roles {
		out = append(out, f.byRole[role]...)
	}
	return out, nil
}

type fakeMailer struct {
	sent [][]string
}

func (f *fakeMailer) Send(ctx context.Context, to []string, subject, body string) error {
	f.sent = append(f.sent, to)
	return nil
}

type sweeperFixture struct {
	sweeper     *notification.ReminderSweeper
	requests    *fakeRequestsRepository
	employees   *fakeEmployeesRepository
	departments *fakeDepartmentsRepository
	users       *fakeUsersRepository
	repo        *fakeNotificationRepository
	mail        *fakeMailer
}

func newSweeperFixture() *sweeperFixture {
	f := &sweeperFixture{
		requests:    &fakeRequestsRepository{},
		employees:   &fakeEmployeesRepository{employees: map[string]*employee.Employee{}},
		departments: &fakeDepartmentsRepository{headsByDept: map[string][]string{}},
		users:       &fakeUsersRepository{byEmployeeID: map[string]*auth.User{}, byRole: map[string][]auth.User{}},
		repo:        &fakeNotificationRepository{},
		mail:        &fakeMailer{},
	}
	f.sweeper = notification.NewReminderSweeper(
		f.requests, f.employees, f.departments, f.users, f.repo, f.mail,
	)
	return f
}

func (f *sweeperFixture) addStaleRequest(age time.Duration) *leaverequest.LeaveRequest {
	deptID := uuid.New()
	emp := &employee.Employee{ID: uuid.New(), FullName: "Ion Vasile", DepartmentID: &deptID}
	f.employees.employees[emp.ID.String()] = emp

	headEmployeeID := uuid.New().String()
	f.departments.headsByDept[deptID.String()] = []string{headEmployeeID}
	f.users.byEmployeeID[headEmployeeID] = &auth.User{
		ID:    uuid.New(),
		Email: "sef@example.com",
		Role:  domain.RoleDepartmentHead,
	}

	l := leaverequest.LeaveRequest{
		ID:            uuid.New(),
		RequestNumber: 7,
		EmployeeID:    emp.ID,
		Status:        leaverequest.StatusPendingDeptHead,
		UpdatedAt:     time.Now().UTC().Add(-age),
	}
	f.requests.stale = append(f.requests.stale, l)
	return &l
}

func TestReminderSweeper_Run(t *testing.T) {
	ctx := context.Background()

	t.Run("three day old request reminds the head", func(t *testing.T) {
		f := newSweeperFixture()
		f.addStaleRequest(notification.ReminderAfter + time.Hour)

		assert.NoError(t, f.sweeper.Run(ctx))

		assert.Equal(t, 1, f.repo.countByType(notification.TypeReminder))
		assert.Zero(t, f.repo.countByType(notification.TypeEscalation))
		assert.Len(t, f.mail.sent, 1)
	})

	t.Run("five day old request also escalates", func(t *testing.T) {
		f := newSweeperFixture()
		f.addStaleRequest(notification.EscalationAfter + time.Hour)
		f.users.byRole[domain.RoleHR] = []auth.User{
			{ID: uuid.New(), Email: "hr@example.com", Role: domain.RoleHR},
		}

		assert.NoError(t, f.sweeper.Run(ctx))

		assert.Equal(t, 1, f.repo.countByType(notification.TypeReminder))
		assert.Equal(t, 1, f.repo.countByType(notification.TypeEscalation))
	})

	t.Run("a second sweep the same day adds nothing", func(t *testing.T) {
		f := newSweeperFixture()
		f.addStaleRequest(notification.ReminderAfter + time.Hour)

		assert.NoError(t, f.sweeper.Run(ctx))
		before := len(f.repo.created)

		assert.NoError(t, f.sweeper.Run(ctx))

		assert.Equal(t, before, len(f.repo.created))
	})

	t.Run("fresh requests stay quiet", func(t *testing.T) {
		f := newSweeperFixture()
		f.addStaleRequest(24 * time.Hour)

		assert.NoError(t, f.sweeper.Run(ctx))

		assert.Empty(t, f.repo.created)
	})
}

func TestConsumer_HandleLifecycleMessage(t *testing.T) {
	ctx := context.Background()

	newService := func(f *sweeperFixture) notification.Service {
		return notification.NewService(f.repo, f.users, f.departments, f.mail)
	}

	t.Run("submitted event notifies department heads", func(t *testing.T) {
		f := newSweeperFixture()
		deptID := uuid.New()
		headEmployeeID := uuid.New().String()
		f.departments.headsByDept[deptID.String()] = []string{headEmployeeID}
		f.users.byEmployeeID[headEmployeeID] = &auth.User{ID: uuid.New(), Email: "sef@example.com"}

		consumer := notification.NewConsumer(newService(f))

		payload, err := json.Marshal(events.LeaveRequestLifecycleEvent{
			EventType:    events.LeaveRequestSubmitted,
			RequestID:    uuid.New().String(),
			EmployeeName: "Ion Vasile",
			DepartmentID: deptID.String(),
			SubmittedBy:  uuid.New().String(),
			WorkingDays:  4,
		})
		assert.NoError(t, err)

		assert.NoError(t, consumer.HandleLifecycleMessage(ctx, payload))
		assert.Equal(t, 1, f.repo.countByType(notification.TypeLeaveSubmitted))
	})

	t.Run("rejected event notifies the submitter with the reason", func(t *testing.T) {
		f := newSweeperFixture()
		consumer := notification.NewConsumer(newService(f))

		submitter := uuid.New()
		payload, err := json.Marshal(events.LeaveRequestLifecycleEvent{
			EventType:       events.LeaveRequestRejected,
			RequestID:       uuid.New().String(),
			SubmittedBy:     submitter.String(),
			RejectionReason: "overlaps audit week",
		})
		assert.NoError(t, err)

		assert.NoError(t, consumer.HandleLifecycleMessage(ctx, payload))
		assert.Equal(t, 1, f.repo.countByType(notification.TypeLeaveRejected))
		assert.Equal(t, submitter, f.repo.created[0].RecipientID)
		assert.Contains(t, f.repo.created[0].Message, "overlaps audit week")
	})

	t.Run("garbage payloads are dropped", func(t *testing.T) {
		f := newSweeperFixture()
		consumer := notification.NewConsumer(newService(f))

		assert.NoError(t, consumer.HandleLifecycleMessage(ctx, []byte("not json")))
		assert.Empty(t, f.repo.created)
	})
}
