package services_test

// Shared mock repositories and clients for the service test suites.

import (
	"context"
	"time"

	"github.com/NotariaHQ/notaria_backend/internal/core/domain"
	portssvc "github.com/NotariaHQ/notaria_backend/internal/core/ports/services"
	"github.com/stretchr/testify/mock"
)

// --- Mock StatusRepository ---
type MockStatusRepository struct {
	mock.Mock
}

func (m *MockStatusRepository) FindStatusByDocumentID(ctx context.Context, documentID string) (*domain.StatusEntry, error) {
	args := m.Called(ctx, documentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.StatusEntry), args.Error(1)
}

func (m *MockStatusRepository) FindApproveHistoryByDocumentID(ctx context.Context, documentID string) ([]domain.ApproveHistoryRecord, error) {
	args := m.Called(ctx, documentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ApproveHistoryRecord), args.Error(1)
}

func (m *MockStatusRepository) SaveStatusEntry(ctx context.Context, entry domain.StatusEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockStatusRepository) TransitionStatus(ctx context.Context, documentID string, from, to domain.DocumentStatus, actorUserID string, at time.Time) error {
	args := m.Called(ctx, documentID, from, to, actorUserID, at)
	return args.Error(0)
}

// --- Mock DocumentRepository ---
type MockDocumentRepository struct {
	mock.Mock
}

func (m *MockDocumentRepository) FindDocumentByID(ctx context.Context, documentID string) (*domain.Document, error) {
	args := m.Called(ctx, documentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Document), args.Error(1)
}

func (m *MockDocumentRepository) FindDocumentsByStatuses(ctx context.Context, statuses []domain.DocumentStatus) ([]domain.DocumentWithStatus, error) {
	args := m.Called(ctx, statuses)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.DocumentWithStatus), args.Error(1)
}

func (m *MockDocumentRepository) SaveDocument(ctx context.Context, doc domain.Document) error {
	args := m.Called(ctx, doc)
	return args.Error(0)
}

func (m *MockDocumentRepository) AttachPayment(ctx context.Context, documentID, paymentID, checkoutURL string) error {
	args := m.Called(ctx, documentID, paymentID, checkoutURL)
	return args.Error(0)
}

// --- Mock SignatureRepository ---
type MockSignatureRepository struct {
	mock.Mock
}

func (m *MockSignatureRepository) FindSignatureRequestByDocumentID(ctx context.Context, documentID string) (*domain.SignatureRequest, error) {
	args := m.Called(ctx, documentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SignatureRequest), args.Error(1)
}

func (m *MockSignatureRepository) SaveSignatureRequest(ctx context.Context, req domain.SignatureRequest) error {
	args := m.Called(ctx, req)
	return args.Error(0)
}

func (m *MockSignatureRepository) UpdateSignatureImage(ctx context.Context, documentID, signatureImage string, updatedBy string, at time.Time) error {
	args := m.Called(ctx, documentID, signatureImage, updatedBy, at)
	return args.Error(0)
}

func (m *MockSignatureRepository) MarkStaffApproved(ctx context.Context, documentID, actorUserID string, at time.Time) error {
	args := m.Called(ctx, documentID, actorUserID, at)
	return args.Error(0)
}

// --- Mock PaymentRepository ---
type MockPaymentRepository struct {
	mock.Mock
}

func (m *MockPaymentRepository) SavePayment(ctx context.Context, payment domain.Payment) error {
	args := m.Called(ctx, payment)
	return args.Error(0)
}

func (m *MockPaymentRepository) UpdateCheckoutURL(ctx context.Context, paymentID, checkoutURL string) error {
	args := m.Called(ctx, paymentID, checkoutURL)
	return args.Error(0)
}

func (m *MockPaymentRepository) FindPaymentByID(ctx context.Context, paymentID string) (*domain.Payment, error) {
	args := m.Called(ctx, paymentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Payment), args.Error(1)
}

// --- Mock CatalogRepository ---
type MockCatalogRepository struct {
	mock.Mock
}

func (m *MockCatalogRepository) FindFieldByID(ctx context.Context, fieldID string) (*domain.NotarizationField, error) {
	args := m.Called(ctx, fieldID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.NotarizationField), args.Error(1)
}

func (m *MockCatalogRepository) FindServiceByID(ctx context.Context, serviceID string) (*domain.NotarizationService, error) {
	args := m.Called(ctx, serviceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.NotarizationService), args.Error(1)
}

func (m *MockCatalogRepository) ListFields(ctx context.Context) ([]domain.NotarizationField, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.NotarizationField), args.Error(1)
}

func (m *MockCatalogRepository) ListServicesByField(ctx context.Context, fieldID string) ([]domain.NotarizationService, error) {
	args := m.Called(ctx, fieldID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.NotarizationService), args.Error(1)
}

func (m *MockCatalogRepository) SaveField(ctx context.Context, field domain.NotarizationField) error {
	args := m.Called(ctx, field)
	return args.Error(0)
}

func (m *MockCatalogRepository) SaveService(ctx context.Context, service domain.NotarizationService) error {
	args := m.Called(ctx, service)
	return args.Error(0)
}

// --- Mock WorkflowService ---
type MockWorkflowService struct {
	mock.Mock
}

func (m *MockWorkflowService) GetStatus(ctx context.Context, documentID string) (*domain.StatusEntry, error) {
	args := m.Called(ctx, documentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.StatusEntry), args.Error(1)
}

func (m *MockWorkflowService) ListByRole(ctx context.Context, role domain.StaffRole) ([]domain.DocumentWithStatus, error) {
	args := m.Called(ctx, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.DocumentWithStatus), args.Error(1)
}

func (m *MockWorkflowService) GetApproveHistory(ctx context.Context, documentID string) ([]domain.ApproveHistoryRecord, error) {
	args := m.Called(ctx, documentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ApproveHistoryRecord), args.Error(1)
}

func (m *MockWorkflowService) CreateStatus(ctx context.Context, documentID string) (*domain.StatusEntry, error) {
	args := m.Called(ctx, documentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.StatusEntry), args.Error(1)
}

func (m *MockWorkflowService) Advance(ctx context.Context, documentID string, action domain.WorkflowAction, actorRole domain.StaffRole, actorUserID string) (*domain.StatusEntry, error) {
	args := m.Called(ctx, documentID, action, actorRole, actorUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.StatusEntry), args.Error(1)
}

func (m *MockWorkflowService) FinalizeToCompleted(ctx context.Context, documentID string, actorUserID string) error {
	args := m.Called(ctx, documentID, actorUserID)
	return args.Error(0)
}

// --- Mock outbound clients ---

type MockPaymentGateway struct {
	mock.Mock
}

func (m *MockPaymentGateway) CreateCheckoutLink(ctx context.Context, req portssvc.CreateCheckoutLinkRequest) (string, error) {
	args := m.Called(ctx, req)
	return args.String(0), args.Error(1)
}

type MockFileStorage struct {
	mock.Mock
}

func (m *MockFileStorage) StoreFile(ctx context.Context, data []byte, contentType string, path string) (string, error) {
	args := m.Called(ctx, data, contentType, path)
	return args.String(0), args.Error(1)
}

type MockMailer struct {
	mock.Mock
}

func (m *MockMailer) SendEmail(ctx context.Context, to, subject, body string) error {
	args := m.Called(ctx, to, subject, body)
	return args.Error(0)
}
