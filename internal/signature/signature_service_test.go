package signature_test

import (
	"context"
	"database/sql"
	"testing"

	"github.com/CodiWebSite/poni-connect-sub002/internal/signature"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type fakeImageRepository struct {
	created []*signature.Image
}

func (f *fakeImageRepository) WithTx(tx *sql.Tx) signature.Repository { return f }
func (f *fakeImageRepository) Create(ctx context.Context, img *signature.Image) error {
	f.created = append(f.created, img)
	return nil
}
func (f *fakeImageRepository) FindByID(ctx context.Context, id string) (*signature.Image, error) {
	return nil, sql.ErrNoRows
}

func TestSignatureService_Store(t *testing.T) {
	ctx := context.Background()
	uploader := uuid.New().String()

	t.Run("stores a data URL image", func(t *testing.T) {
		repo := &fakeImageRepository{}
		svc := signature.NewService(repo)

		ref, err := svc.Store(ctx, uploader, "data:image/png;base64,aGVsbG8=")

		assert.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, ref)
		if assert.Len(t, repo.created, 1) {
			assert.Equal(t, "image/png", repo.created[0].ContentType)
			assert.Equal(t, []byte("hello"), repo.created[0].Data)
		}
	})

	t.Run("rejects non-image payloads", func(t *testing.T) {
		svc := signature.NewService(&fakeImageRepository{})

		for _, payload := range []string{
			"",
			"hello",
			"data:text/plain;base64,aGVsbG8=",
			"data:image/png;base64,",
			"data:image/png,aGVsbG8=",
		} {
			_, err := svc.Store(ctx, uploader, payload)
			assert.ErrorIs(t, err, signature.ErrInvalidPayload, payload)
		}
	})

	t.Run("rejects a malformed uploader id", func(t *testing.T) {
		svc := signature.NewService(&fakeImageRepository{})

		_, err := svc.Store(ctx, "not-a-uuid", "data:image/png;base64,aGVsbG8=")
		assert.ErrorIs(t, err, signature.ErrInvalidPayload)
	})
}

func TestSignatureRepository_CreateInTx(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	assert.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO signature_images").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectRollback()

	tx, err := db.BeginTx(context.Background(), nil)
	assert.NoError(t, err)

	repo := signature.NewRepository(nil).WithTx(tx)
	err = repo.Create(context.Background(), &signature.Image{
		ID:          uuid.New(),
		UploadedBy:  uuid.New(),
		ContentType: "image/png",
		Data:        []byte("hello"),
	})
	assert.NoError(t, err)

	// Rolling back the transaction takes the image row with it.
	assert.NoError(t, tx.Rollback())
	assert.NoError(t, mock.ExpectationsWereMet())
}
