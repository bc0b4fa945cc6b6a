package signature

import (
	"time"

	"github.com/google/uuid"
)

// Image is an opaque hand-drawn or uploaded signature payload. The
// lifecycle engine only ever stores and references it; content is never
// inspected beyond basic shape checks at upload.
type Image struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UploadedBy  uuid.UUID `gorm:"type:uuid;not null"`
	ContentType string    `gorm:"type:varchar(60);not null"`
	Data        []byte    `gorm:"type:bytea;not null"`

	CreatedAt time.Time
}
