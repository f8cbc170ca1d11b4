package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/NotariaHQ/notaria_backend/internal/apperrors"
	"github.com/NotariaHQ/notaria_backend/internal/core/domain"
	portsrepo "github.com/NotariaHQ/notaria_backend/internal/core/ports/repositories"
	portssvc "github.com/NotariaHQ/notaria_backend/internal/core/ports/services"
	"github.com/NotariaHQ/notaria_backend/internal/middleware"
	"github.com/NotariaHQ/notaria_backend/internal/utils"
	"github.com/shopspring/decimal"
)

var (
	ErrSignatureImageMissing = errors.New("signature image is required")
	ErrRequesterNotApproved  = errors.New("requester must approve before staff")
	ErrAlreadyPaid           = errors.New("document already has a payment")
)

// orderCodeAttempts bounds the uniqueness retry loop for gateway order codes.
const orderCodeAttempts = 3

// signatureService coordinates the two-party sign-off required while a
// document sits in digitalSignature status, and finalizes the document once
// both parties have signed.
type signatureService struct {
	signatureRepo portsrepo.SignatureRepositoryFacade
	documentRepo  portsrepo.DocumentRepositoryFacade
	paymentRepo   portsrepo.PaymentRepositoryFacade
	workflowSvc   portssvc.WorkflowSvcFacade
	gateway       portssvc.PaymentGatewayClient
	mailer        portssvc.Mailer

	returnURL string
	cancelURL string
}

// NewSignatureService creates a new SignatureService.
func NewSignatureService(
	signatureRepo portsrepo.SignatureRepositoryFacade,
	documentRepo portsrepo.DocumentRepositoryFacade,
	paymentRepo portsrepo.PaymentRepositoryFacade,
	workflowSvc portssvc.WorkflowSvcFacade,
	gateway portssvc.PaymentGatewayClient,
	mailer portssvc.Mailer,
	returnURL, cancelURL string,
) portssvc.SignatureSvcFacade {
	return &signatureService{
		signatureRepo: signatureRepo,
		documentRepo:  documentRepo,
		paymentRepo:   paymentRepo,
		workflowSvc:   workflowSvc,
		gateway:       gateway,
		mailer:        mailer,
		returnURL:     returnURL,
		cancelURL:     cancelURL,
	}
}

// Ensure signatureService implements the portssvc.SignatureSvcFacade interface
var _ portssvc.SignatureSvcFacade = (*signatureService)(nil)

// requireDigitalSignature checks that the document is currently in the
// signature stage; every sign-off call demands it.
func (s *signatureService) requireDigitalSignature(ctx context.Context, documentID string) error {
	entry, err := s.workflowSvc.GetStatus(ctx, documentID)
	if err != nil {
		return err
	}
	if entry.Status != domain.StatusDigitalSignature {
		return fmt.Errorf("%w: document %s is %s, expected %s", apperrors.ErrConflict, documentID, entry.Status, domain.StatusDigitalSignature)
	}
	return nil
}

// ApproveByRequester records the citizen's signature. The first call creates
// the signature request with the requester approved and timestamped; repeat
// calls only replace the stored image and never re-timestamp the approval.
func (s *signatureService) ApproveByRequester(ctx context.Context, documentID string, userID string, amount decimal.Decimal, signatureImage string) (*domain.SignatureRequest, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.requireDigitalSignature(ctx, documentID); err != nil {
		return nil, err
	}

	existing, err := s.signatureRepo.FindSignatureRequestByDocumentID(ctx, documentID)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		logger.Error("Failed to look up signature request", slog.String("document_id", documentID), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to look up signature request: %w", apperrors.ErrInternal)
	}

	now := time.Now().UTC()

	if existing != nil {
		// Idempotent re-submission: only the image changes.
		if err := s.signatureRepo.UpdateSignatureImage(ctx, documentID, signatureImage, userID, now); err != nil {
			logger.Error("Failed to update signature image", slog.String("document_id", documentID), slog.String("error", err.Error()))
			return nil, fmt.Errorf("failed to update signature image: %w", apperrors.ErrInternal)
		}
		existing.SignatureImage = signatureImage
		logger.Info("Signature image replaced", slog.String("document_id", documentID))
		return existing, nil
	}

	if signatureImage == "" {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrValidation, ErrSignatureImageMissing)
	}

	request := domain.SignatureRequest{
		SignatureID:    uuid.NewString(),
		DocumentID:     documentID,
		Amount:         amount,
		SignatureImage: signatureImage,
		UserApproval:   domain.Approval{Approved: true, ApprovedAt: &now},
		StaffApproval:  domain.Approval{Approved: false},
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.signatureRepo.SaveSignatureRequest(ctx, request); err != nil {
		logger.Error("Failed to save signature request", slog.String("document_id", documentID), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to save signature request: %w", apperrors.ErrInternal)
	}

	logger.Info("Signature request created", slog.String("document_id", documentID), slog.String("signature_id", request.SignatureID))
	return &request, nil
}

// ApproveByStaff records the secretary's counter-signature. Only after the
// payment checkout is created and the document is finalized to completed is
// the staff approval flag persisted, so a failure in the middle leaves the
// request staff-unapproved and the call retryable. A failed notification
// email is returned as a warning, never as an error.
func (s *signatureService) ApproveByStaff(ctx context.Context, documentID string, actorUserID string) (*domain.Payment, string, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.requireDigitalSignature(ctx, documentID); err != nil {
		return nil, "", err
	}

	request, err := s.signatureRepo.FindSignatureRequestByDocumentID(ctx, documentID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Staff approval attempted before requester signed", slog.String("document_id", documentID))
			return nil, "", fmt.Errorf("no signature request for document %s: %w", documentID, err)
		}
		logger.Error("Failed to look up signature request", slog.String("document_id", documentID), slog.String("error", err.Error()))
		return nil, "", fmt.Errorf("failed to look up signature request: %w", apperrors.ErrInternal)
	}

	// Ordering invariant: the citizen signs first.
	if !request.UserApproval.Approved {
		return nil, "", fmt.Errorf("%w: %w", apperrors.ErrConflict, ErrRequesterNotApproved)
	}

	doc, err := s.documentRepo.FindDocumentByID(ctx, documentID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, "", fmt.Errorf("document %s not found: %w", documentID, err)
		}
		logger.Error("Failed to load document for staff approval", slog.String("document_id", documentID), slog.String("error", err.Error()))
		return nil, "", fmt.Errorf("failed to load document: %w", apperrors.ErrInternal)
	}

	// Idempotency guard against double-charging.
	if doc.PaymentID != nil {
		return nil, "", fmt.Errorf("%w: %w", apperrors.ErrValidation, ErrAlreadyPaid)
	}

	payment, err := s.createPayment(ctx, doc, actorUserID)
	if err != nil {
		return nil, "", err
	}

	checkoutURL, err := s.gateway.CreateCheckoutLink(ctx, portssvc.CreateCheckoutLinkRequest{
		OrderCode:   payment.OrderCode,
		Amount:      payment.Amount,
		Description: documentID,
		ReturnURL:   s.returnURL,
		CancelURL:   s.cancelURL,
	})
	if err != nil {
		logger.Error("Payment gateway checkout creation failed",
			slog.String("document_id", documentID),
			slog.Int64("order_code", payment.OrderCode),
			slog.String("error", err.Error()))
		return nil, "", fmt.Errorf("failed to create checkout link: %w", apperrors.ErrInternal)
	}
	payment.CheckoutURL = checkoutURL

	if err := s.paymentRepo.UpdateCheckoutURL(ctx, payment.PaymentID, checkoutURL); err != nil {
		logger.Error("Failed to store checkout URL on payment", slog.String("payment_id", payment.PaymentID), slog.String("error", err.Error()))
		return nil, "", fmt.Errorf("failed to store checkout URL: %w", apperrors.ErrInternal)
	}

	if err := s.documentRepo.AttachPayment(ctx, documentID, payment.PaymentID, checkoutURL); err != nil {
		logger.Error("Failed to attach payment to document", slog.String("document_id", documentID), slog.String("error", err.Error()))
		return nil, "", fmt.Errorf("failed to attach payment to document: %w", apperrors.ErrInternal)
	}

	if err := s.workflowSvc.FinalizeToCompleted(ctx, documentID, actorUserID); err != nil {
		return nil, "", err
	}

	// Persist the staff flag last: if anything above failed the request must
	// not read as approved.
	now := time.Now().UTC()
	if err := s.signatureRepo.MarkStaffApproved(ctx, documentID, actorUserID, now); err != nil {
		// The document is already completed and paid for; losing the flag
		// here needs manual reconciliation, so log loudly.
		logger.Error("Failed to mark staff approval after finalization",
			slog.String("document_id", documentID),
			slog.String("payment_id", payment.PaymentID),
			slog.String("error", err.Error()))
		return nil, "", fmt.Errorf("failed to record staff approval: %w", apperrors.ErrInternal)
	}

	warning := ""
	if s.mailer != nil {
		if mailErr := s.mailer.SendEmail(ctx, doc.Requester.Email, "Notarization completed",
			fmt.Sprintf("Your document %s has been approved. Complete payment at: %s", documentID, checkoutURL)); mailErr != nil {
			logger.Warn("Failed to send approval notification", slog.String("document_id", documentID), slog.String("error", mailErr.Error()))
			warning = "document approved, but the notification email could not be sent"
		}
	}

	logger.Info("Staff approval completed",
		slog.String("document_id", documentID),
		slog.String("payment_id", payment.PaymentID),
		slog.Int64("order_code", payment.OrderCode))
	return payment, warning, nil
}

// createPayment inserts the pending payment row, retrying a bounded number of
// times when the random order code collides with an existing one.
func (s *signatureService) createPayment(ctx context.Context, doc *domain.Document, actorUserID string) (*domain.Payment, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	now := time.Now().UTC()

	var lastErr error
	for attempt := 0; attempt < orderCodeAttempts; attempt++ {
		orderCode, err := utils.GenerateOrderCode()
		if err != nil {
			return nil, fmt.Errorf("failed to generate order code: %w", apperrors.ErrInternal)
		}

		payment := domain.Payment{
			PaymentID:   uuid.NewString(),
			OrderCode:   orderCode,
			Amount:      doc.ServicePrice,
			Description: doc.DocumentID,
			ReturnURL:   s.returnURL,
			CancelURL:   s.cancelURL,
			Status:      domain.PaymentPending,
			UserID:      doc.UserID,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     actorUserID,
				LastUpdatedAt: now,
				LastUpdatedBy: actorUserID,
			},
		}

		err = s.paymentRepo.SavePayment(ctx, payment)
		if err == nil {
			return &payment, nil
		}
		if !errors.Is(err, apperrors.ErrDuplicate) {
			logger.Error("Failed to save payment", slog.String("document_id", doc.DocumentID), slog.String("error", err.Error()))
			return nil, fmt.Errorf("failed to save payment: %w", apperrors.ErrInternal)
		}
		logger.Warn("Order code collision, retrying", slog.Int64("order_code", orderCode), slog.Int("attempt", attempt+1))
		lastErr = err
	}

	return nil, fmt.Errorf("failed to allocate unique order code after %d attempts: %w (%v)", orderCodeAttempts, apperrors.ErrInternal, lastErr)
}

// GetSignatureRequest retrieves the sign-off state of a document.
func (s *signatureService) GetSignatureRequest(ctx context.Context, documentID string) (*domain.SignatureRequest, error) {
	request, err := s.signatureRepo.FindSignatureRequestByDocumentID(ctx, documentID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			middleware.GetLoggerFromCtx(ctx).Error("Failed to fetch signature request", slog.String("document_id", documentID), slog.String("error", err.Error()))
		}
		return nil, fmt.Errorf("failed to fetch signature request for document %s: %w", documentID, err)
	}
	return request, nil
}
