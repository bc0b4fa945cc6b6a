package signature

import (
	"context"
	"database/sql"
	"encoding/base64"
	"net/http"
	"strings"

	"github.com/CodiWebSite/poni-connect-sub002/internal/shared/apperror"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Stored payloads are capped at 1 MiB; a signature capture canvas never
// legitimately produces more.
const maxPayloadBytes = 1 << 20

var (
	ErrInvalidPayload = apperror.New(
		apperror.CodeValidation,
		"signature payload must be a base64 data URL image",
		http.StatusBadRequest,
	)
	ErrPayloadTooLarge = apperror.New(
		apperror.CodeValidation,
		"signature payload exceeds the allowed size",
		http.StatusBadRequest,
	)
)

//go:generate mockgen -source=signature_service.go -destination=mock/signature_service_mock.go -package=mock
type Service interface {
	// WithTx binds Store to a caller-owned transaction, so a stored image
	// shares the fate of the state change that references it.
	WithTx(tx *sql.Tx) Service
	// Store persists an opaque signature image and returns its reference.
	Store(ctx context.Context, uploadedBy string, dataURL string) (uuid.UUID, error)
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("signature.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("signature.service")
	}
	return &service{repo: repo, logger: l}
}

func (s *service) WithTx(tx *sql.Tx) Service {
	return &service{repo: s.repo.WithTx(tx), logger: s.logger}
}

func (s *service) Store(ctx context.Context, uploadedBy string, dataURL string) (uuid.UUID, error) {
	uploaderUUID, err := uuid.Parse(uploadedBy)
	if err != nil {
		return uuid.Nil, ErrInvalidPayload
	}

	contentType, data, err := decodeDataURL(dataURL)
	if err != nil {
		return uuid.Nil, err
	}

	img := &Image{
		ID:          uuid.New(),
		UploadedBy:  uploaderUUID,
		ContentType: contentType,
		Data:        data,
	}
	if err := s.repo.Create(ctx, img); err != nil {
		s.logger.Error("store signature failed", zap.Error(err))
		return uuid.Nil, err
	}

	s.logger.Debug("signature stored",
		zap.String("signature_id", img.ID.String()),
		zap.String("uploaded_by", uploadedBy),
		zap.Int("bytes", len(data)),
	)
	return img.ID, nil
}

// decodeDataURL accepts "data:image/png;base64,...." payloads as produced
// by the signature canvas.
func decodeDataURL(dataURL string) (string, []byte, error) {
	rest, ok := strings.CutPrefix(dataURL, "data:")
	if !ok {
		return "", nil, ErrInvalidPayload
	}

	meta, encoded, ok := strings.Cut(rest, ",")
	if !ok {
		return "", nil, ErrInvalidPayload
	}

	contentType, encoding, ok := strings.Cut(meta, ";")
	if !ok || encoding != "base64" || !strings.HasPrefix(contentType, "image/") {
		return "", nil, ErrInvalidPayload
	}

	if len(encoded) > maxPayloadBytes*4/3 {
		return "", nil, ErrPayloadTooLarge
	}

	data, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil || len(data) == 0 {
		return "", nil, ErrInvalidPayload
	}
	return contentType, data, nil
}
