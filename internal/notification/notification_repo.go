package notification

import (
	"context"
	"time"

	"gorm.io/gorm"
)

//go:generate mockgen -source=notification_repo.go -destination=mock/notification_repo_mock.go -package=mock
type Repository interface {
	Create(ctx context.Context, n *Notification) error
	ListByRecipient(ctx context.Context, recipientID string, unreadOnly bool) ([]Notification, error)
	FindByID(ctx context.Context, id string) (*Notification, error)
	MarkRead(ctx context.Context, id string) error
	// ExistsForDay reports whether a notification of the given type about
	// the given request was already created on the given calendar day.
	ExistsForDay(ctx context.Context, relatedID, notifType string, day time.Time) (bool, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, n *Notification) error {
	return r.db.WithContext(ctx).Create(n).Error
}

func (r *repository) ListByRecipient(ctx context.Context, recipientID string, unreadOnly bool) ([]Notification, error) {
	q := r.db.WithContext(ctx).Where("recipient_id = ?", recipientID)
	if unreadOnly {
		q = q.Where("read_at IS NULL")
	}

	var notifications []Notification
	err := q.Order("created_at DESC").Find(&notifications).Error
	return notifications, err
}

func (r *repository) FindByID(ctx context.Context, id string) (*Notification, error) {
	var n Notification
	err := r.db.WithContext(ctx).First(&n, "id = ?", id).Error
	return &n, err
}

func (r *repository) MarkRead(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Model(&Notification{}).
		Where("id = ?", id).
		Where("read_at IS NULL").
		Update("read_at", time.Now().UTC()).Error
}

func (r *repository) ExistsForDay(ctx context.Context, relatedID, notifType string, day time.Time) (bool, error) {
	dayStart := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)
	dayEnd := dayStart.Add(24 * time.Hour)

	var count int64
	err := r.db.WithContext(ctx).
		Model(&Notification{}).
		Where("related_id = ?", relatedID).
		Where("type = ?", notifType).
		Where("created_at >= ? AND created_at < ?", dayStart, dayEnd).
		Count(&count).Error
	return count > 0, err
}
