package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/acolin/asso-ledger/internal/apperr"
	"github.com/acolin/asso-ledger/internal/model"
	"github.com/acolin/asso-ledger/pkg/logger"
)

type InvoiceRepository interface {
	Create(ctx context.Context, invoice *model.Invoice) (*model.Invoice, error)
	Get(ctx context.Context, id int64) (*model.Invoice, error)
	List(ctx context.Context, entryID *int64) ([]*model.Invoice, error)
	Delete(ctx context.Context, id int64) error
}

type EntryGetter interface {
	Get(ctx context.Context, id int64) (*model.Entry, error)
}

// BlobStore holds the invoice bytes. SignedURL returns a time-limited link a
// browser can follow without a session token.
type BlobStore interface {
	Put(ctx context.Context, key string, contentType string, data []byte) error
	SignedURL(key string, fileName string) (string, error)
	Delete(ctx context.Context, key string) error
}

var invoiceContentTypes = map[string]string{
	"application/pdf": ".pdf",
	"image/jpeg":      ".jpg",
	"image/png":       ".png",
}

// InvoiceService attaches uploaded factures to ledger entries.
type InvoiceService struct {
	invoiceRepo InvoiceRepository
	entries     EntryGetter
	store       BlobStore
	maxBytes    int64
}

func NewInvoiceService(invoiceRepo InvoiceRepository, entries EntryGetter, store BlobStore, maxBytes int64) *InvoiceService {
	return &InvoiceService{
		invoiceRepo: invoiceRepo,
		entries:     entries,
		store:       store,
		maxBytes:    maxBytes,
	}
}

func (s *InvoiceService) Upload(ctx context.Context, actor model.Actor, entryID int64, fileName, contentType string, data []byte) (*model.Invoice, error) {
	if !actor.Role.CanWrite() {
		return nil, fmt.Errorf("%w: role %s cannot upload invoices", apperr.ErrPermission, actor.Role)
	}
	ext, ok := invoiceContentTypes[strings.ToLower(contentType)]
	if !ok {
		return nil, fmt.Errorf("%w: unsupported invoice content type %q", apperr.ErrValidation, contentType)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: empty upload", apperr.ErrValidation)
	}
	if s.maxBytes > 0 && int64(len(data)) > s.maxBytes {
		return nil, fmt.Errorf("%w: invoice exceeds %d bytes", apperr.ErrValidation, s.maxBytes)
	}
	if _, err := s.entries.Get(ctx, entryID); err != nil {
		return nil, err
	}

	fileName = strings.TrimSpace(fileName)
	if fileName == "" {
		fileName = "facture" + ext
	}

	key := uuid.NewString() + ext
	if err := s.store.Put(ctx, key, contentType, data); err != nil {
		return nil, fmt.Errorf("store invoice: %w", err)
	}

	created, err := s.invoiceRepo.Create(ctx, &model.Invoice{
		EntryID:     entryID,
		FileName:    fileName,
		ContentType: strings.ToLower(contentType),
		Size:        int64(len(data)),
		ObjectKey:   key,
		CreatedBy:   actor.ProfileID,
	})
	if err != nil {
		// best effort; an orphaned blob is harmless, an invoice row without
		// bytes is not
		if delErr := s.store.Delete(ctx, key); delErr != nil {
			logger.Warn("failed to clean up invoice blob", "key", key, "error", delErr)
		}
		return nil, err
	}
	return created, nil
}

// SignedURL returns a short-lived download link for the invoice bytes.
func (s *InvoiceService) SignedURL(ctx context.Context, id int64) (string, error) {
	invoice, err := s.invoiceRepo.Get(ctx, id)
	if err != nil {
		return "", err
	}
	return s.store.SignedURL(invoice.ObjectKey, invoice.FileName)
}

func (s *InvoiceService) List(ctx context.Context, entryID *int64) ([]*model.Invoice, error) {
	return s.invoiceRepo.List(ctx, entryID)
}

func (s *InvoiceService) Delete(ctx context.Context, actor model.Actor, id int64) error {
	if actor.Role != model.RoleAdmin {
		return fmt.Errorf("%w: only admins delete invoices", apperr.ErrPermission)
	}
	invoice, err := s.invoiceRepo.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.invoiceRepo.Delete(ctx, id); err != nil {
		return err
	}
	if err := s.store.Delete(ctx, invoice.ObjectKey); err != nil {
		logger.Warn("invoice row deleted but blob removal failed", "key", invoice.ObjectKey, "error", err)
	}
	return nil
}
