package signature

import (
	"context"
	"database/sql"

	"gorm.io/gorm"
)

//go:generate mockgen -source=signature_repo.go -destination=mock/signature_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, img *Image) error
	FindByID(ctx context.Context, id string) (*Image, error)
}

type repository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: r.db, tx: tx}
}

func (r *repository) Create(ctx context.Context, img *Image) error {
	if r.tx != nil {
		_, err := r.tx.ExecContext(ctx, `
INSERT INTO signature_images (id, uploaded_by, content_type, data, created_at)
VALUES ($1, $2, $3, $4, NOW())`,
			img.ID, img.UploadedBy, img.ContentType, img.Data,
		)
		return err
	}
	return r.db.WithContext(ctx).Create(img).Error
}

func (r *repository) FindByID(ctx context.Context, id string) (*Image, error) {
	var img Image
	err := r.db.WithContext(ctx).First(&img, "id = ?", id).Error
	return &img, err
}
