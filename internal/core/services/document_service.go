package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path"
	"time"

	"github.com/google/uuid"

	"github.com/NotariaHQ/notaria_backend/internal/apperrors"
	"github.com/NotariaHQ/notaria_backend/internal/core/domain"
	portsrepo "github.com/NotariaHQ/notaria_backend/internal/core/ports/repositories"
	portssvc "github.com/NotariaHQ/notaria_backend/internal/core/ports/services"
	"github.com/NotariaHQ/notaria_backend/internal/dto"
	"github.com/NotariaHQ/notaria_backend/internal/middleware"
)

// documentService owns document submission: storing uploads, snapshotting the
// catalog price and opening the workflow at pending.
type documentService struct {
	documentRepo portsrepo.DocumentRepositoryFacade
	catalogRepo  portsrepo.CatalogReader
	workflowSvc  portssvc.WorkflowSvcFacade
	storage      portssvc.FileStorageClient
	mailer       portssvc.Mailer
}

// NewDocumentService creates a new DocumentService.
func NewDocumentService(
	documentRepo portsrepo.DocumentRepositoryFacade,
	catalogRepo portsrepo.CatalogReader,
	workflowSvc portssvc.WorkflowSvcFacade,
	storage portssvc.FileStorageClient,
	mailer portssvc.Mailer,
) portssvc.DocumentSvcFacade {
	return &documentService{
		documentRepo: documentRepo,
		catalogRepo:  catalogRepo,
		workflowSvc:  workflowSvc,
		storage:      storage,
		mailer:       mailer,
	}
}

// Ensure documentService implements the portssvc.DocumentSvcFacade interface
var _ portssvc.DocumentSvcFacade = (*documentService)(nil)

// CreateDocument validates the referenced service, uploads every file,
// persists the document with the price snapshot and creates the initial
// pending status. The notification email is best-effort: its failure is
// returned as a warning, never as an error.
func (s *documentService) CreateDocument(ctx context.Context, req dto.CreateDocumentRequest, creatorUserID string) (*domain.Document, string, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if len(req.Files) == 0 {
		return nil, "", fmt.Errorf("%w: at least one file is required", apperrors.ErrValidation)
	}

	service, err := s.catalogRepo.FindServiceByID(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, "", fmt.Errorf("service %s not found: %w", req.ServiceID, err)
		}
		logger.Error("Failed to load notarization service", slog.String("service_id", req.ServiceID), slog.String("error", err.Error()))
		return nil, "", fmt.Errorf("failed to load service: %w", apperrors.ErrInternal)
	}

	field, err := s.catalogRepo.FindFieldByID(ctx, service.FieldID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, "", fmt.Errorf("field %s not found: %w", service.FieldID, err)
		}
		logger.Error("Failed to load notarization field", slog.String("field_id", service.FieldID), slog.String("error", err.Error()))
		return nil, "", fmt.Errorf("failed to load field: %w", apperrors.ErrInternal)
	}

	documentID := uuid.NewString()

	files := make([]domain.DocumentFile, 0, len(req.Files))
	for _, f := range req.Files {
		storagePath := path.Join(documentID, f.FileName)
		url, err := s.storage.StoreFile(ctx, f.Content, f.ContentType, storagePath)
		if err != nil {
			logger.Error("Failed to store document file",
				slog.String("document_id", documentID),
				slog.String("file_name", f.FileName),
				slog.String("error", err.Error()))
			return nil, "", fmt.Errorf("failed to store file %s: %w", f.FileName, apperrors.ErrInternal)
		}
		files = append(files, domain.DocumentFile{FileName: f.FileName, FileURL: url})
	}

	now := time.Now().UTC()
	doc := domain.Document{
		DocumentID: documentID,
		UserID:     creatorUserID,
		Files:      files,
		Requester: domain.RequesterInfo{
			CitizenID:   req.Requester.CitizenID,
			PhoneNumber: req.Requester.PhoneNumber,
			Email:       req.Requester.Email,
		},
		FieldID:            field.FieldID,
		FieldName:          field.Name,
		ServiceID:          service.ServiceID,
		ServiceName:        service.Name,
		ServiceDescription: service.Description,
		ServicePrice:       service.Price,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.documentRepo.SaveDocument(ctx, doc); err != nil {
		logger.Error("Failed to save document", slog.String("document_id", documentID), slog.String("error", err.Error()))
		return nil, "", fmt.Errorf("failed to save document: %w", apperrors.ErrInternal)
	}

	if _, err := s.workflowSvc.CreateStatus(ctx, documentID); err != nil {
		logger.Error("Failed to create initial status", slog.String("document_id", documentID), slog.String("error", err.Error()))
		return nil, "", fmt.Errorf("failed to open workflow for document %s: %w", documentID, apperrors.ErrInternal)
	}

	warning := ""
	if s.mailer != nil {
		if mailErr := s.mailer.SendEmail(ctx, doc.Requester.Email, "Notarization request received",
			fmt.Sprintf("Your notarization request %s for %q has been received and is pending review.", documentID, service.Name)); mailErr != nil {
			logger.Warn("Failed to send submission notification",
				slog.String("document_id", documentID),
				slog.String("error", mailErr.Error()))
			warning = "document created, but the confirmation email could not be sent"
		}
	}

	logger.Info("Document created",
		slog.String("document_id", documentID),
		slog.String("service_id", service.ServiceID),
		slog.Int("file_count", len(files)))
	return &doc, warning, nil
}

// GetDocument retrieves a document by id.
func (s *documentService) GetDocument(ctx context.Context, documentID string) (*domain.Document, error) {
	doc, err := s.documentRepo.FindDocumentByID(ctx, documentID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			middleware.GetLoggerFromCtx(ctx).Error("Failed to find document", slog.String("document_id", documentID), slog.String("error", err.Error()))
		}
		return nil, fmt.Errorf("failed to find document %s: %w", documentID, err)
	}
	return doc, nil
}
