package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/NotariaHQ/notaria_backend/internal/apperrors"
	"github.com/NotariaHQ/notaria_backend/internal/core/domain"
	portssvc "github.com/NotariaHQ/notaria_backend/internal/core/ports/services"
	"github.com/NotariaHQ/notaria_backend/internal/core/services"
	"github.com/NotariaHQ/notaria_backend/internal/utils"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

const (
	testReturnURL = "https://example.test/success"
	testCancelURL = "https://example.test/cancel"
)

// --- Test Suite ---
type SignatureServiceTestSuite struct {
	suite.Suite
	mockSignatureRepo *MockSignatureRepository
	mockDocumentRepo  *MockDocumentRepository
	mockPaymentRepo   *MockPaymentRepository
	mockWorkflow      *MockWorkflowService
	mockGateway       *MockPaymentGateway
	mockMailer        *MockMailer
	service           portssvc.SignatureSvcFacade
}

func (suite *SignatureServiceTestSuite) SetupTest() {
	suite.mockSignatureRepo = new(MockSignatureRepository)
	suite.mockDocumentRepo = new(MockDocumentRepository)
	suite.mockPaymentRepo = new(MockPaymentRepository)
	suite.mockWorkflow = new(MockWorkflowService)
	suite.mockGateway = new(MockPaymentGateway)
	suite.mockMailer = new(MockMailer)
	suite.service = services.NewSignatureService(
		suite.mockSignatureRepo,
		suite.mockDocumentRepo,
		suite.mockPaymentRepo,
		suite.mockWorkflow,
		suite.mockGateway,
		suite.mockMailer,
		testReturnURL,
		testCancelURL,
	)
}

func (suite *SignatureServiceTestSuite) expectStatus(documentID string, status domain.DocumentStatus) {
	suite.mockWorkflow.On("GetStatus", mock.Anything, documentID).
		Return(&domain.StatusEntry{DocumentID: documentID, Status: status}, nil).Once()
}

// --- ApproveByRequester ---

func (suite *SignatureServiceTestSuite) TestApproveByRequester_CreatesRequest() {
	ctx := context.Background()
	documentID := uuid.NewString()
	userID := uuid.NewString()
	amount := decimal.NewFromInt(100)

	suite.expectStatus(documentID, domain.StatusDigitalSignature)
	suite.mockSignatureRepo.On("FindSignatureRequestByDocumentID", ctx, documentID).
		Return(nil, apperrors.ErrNotFound).Once()
	suite.mockSignatureRepo.On("SaveSignatureRequest", ctx, mock.MatchedBy(func(r domain.SignatureRequest) bool {
		return r.DocumentID == documentID &&
			r.SignatureImage == "img" &&
			r.UserApproval.Approved && r.UserApproval.ApprovedAt != nil &&
			!r.StaffApproval.Approved && r.StaffApproval.ApprovedAt == nil &&
			r.Amount.Equal(amount)
	})).Return(nil).Once()

	request, err := suite.service.ApproveByRequester(ctx, documentID, userID, amount, "img")

	suite.Require().NoError(err)
	suite.Require().NotNil(request)
	suite.True(request.UserApproval.Approved)
	suite.False(request.StaffApproval.Approved)
	suite.mockSignatureRepo.AssertExpectations(suite.T())
}

func (suite *SignatureServiceTestSuite) TestApproveByRequester_WrongStatus_Conflict() {
	ctx := context.Background()
	documentID := uuid.NewString()

	suite.expectStatus(documentID, domain.StatusProcessing)

	request, err := suite.service.ApproveByRequester(ctx, documentID, uuid.NewString(), decimal.NewFromInt(100), "img")

	suite.Require().Error(err)
	suite.Nil(request)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.mockSignatureRepo.AssertNotCalled(suite.T(), "SaveSignatureRequest", mock.Anything, mock.Anything)
}

func (suite *SignatureServiceTestSuite) TestApproveByRequester_EmptyImageOnCreate_Validation() {
	ctx := context.Background()
	documentID := uuid.NewString()

	suite.expectStatus(documentID, domain.StatusDigitalSignature)
	suite.mockSignatureRepo.On("FindSignatureRequestByDocumentID", ctx, documentID).
		Return(nil, apperrors.ErrNotFound).Once()

	request, err := suite.service.ApproveByRequester(ctx, documentID, uuid.NewString(), decimal.NewFromInt(100), "")

	suite.Require().Error(err)
	suite.Nil(request)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockSignatureRepo.AssertNotCalled(suite.T(), "SaveSignatureRequest", mock.Anything, mock.Anything)
}

// Re-signing replaces the image and must not touch the original approval timestamp.
func (suite *SignatureServiceTestSuite) TestApproveByRequester_Resign_UpdatesImageOnly() {
	ctx := context.Background()
	documentID := uuid.NewString()
	userID := uuid.NewString()
	approvedAt := time.Now().UTC().Add(-time.Hour)
	existing := &domain.SignatureRequest{
		SignatureID:    uuid.NewString(),
		DocumentID:     documentID,
		Amount:         decimal.NewFromInt(100),
		SignatureImage: "old-img",
		UserApproval:   domain.Approval{Approved: true, ApprovedAt: &approvedAt},
	}

	suite.expectStatus(documentID, domain.StatusDigitalSignature)
	suite.mockSignatureRepo.On("FindSignatureRequestByDocumentID", ctx, documentID).
		Return(existing, nil).Once()
	suite.mockSignatureRepo.On("UpdateSignatureImage", ctx, documentID, "new-img", userID, mock.AnythingOfType("time.Time")).
		Return(nil).Once()

	request, err := suite.service.ApproveByRequester(ctx, documentID, userID, decimal.NewFromInt(100), "new-img")

	suite.Require().NoError(err)
	suite.Equal("new-img", request.SignatureImage)
	suite.Equal(&approvedAt, request.UserApproval.ApprovedAt)
	suite.mockSignatureRepo.AssertNotCalled(suite.T(), "SaveSignatureRequest", mock.Anything, mock.Anything)
	suite.mockSignatureRepo.AssertExpectations(suite.T())
}

// --- ApproveByStaff ---

func (suite *SignatureServiceTestSuite) signedRequest(documentID string) *domain.SignatureRequest {
	approvedAt := time.Now().UTC().Add(-time.Minute)
	return &domain.SignatureRequest{
		SignatureID:    uuid.NewString(),
		DocumentID:     documentID,
		Amount:         decimal.NewFromInt(100),
		SignatureImage: "img",
		UserApproval:   domain.Approval{Approved: true, ApprovedAt: &approvedAt},
	}
}

func (suite *SignatureServiceTestSuite) pendingDocument(documentID string) *domain.Document {
	return &domain.Document{
		DocumentID:   documentID,
		UserID:       uuid.NewString(),
		Requester:    domain.RequesterInfo{Email: "requester@example.test"},
		ServicePrice: decimal.NewFromInt(250),
	}
}

func (suite *SignatureServiceTestSuite) TestApproveByStaff_CompletesSignOff() {
	ctx := context.Background()
	documentID := uuid.NewString()
	actorUserID := uuid.NewString()
	doc := suite.pendingDocument(documentID)
	checkoutURL := "https://pay.example.test/checkout/abc"

	suite.expectStatus(documentID, domain.StatusDigitalSignature)
	suite.mockSignatureRepo.On("FindSignatureRequestByDocumentID", ctx, documentID).
		Return(suite.signedRequest(documentID), nil).Once()
	suite.mockDocumentRepo.On("FindDocumentByID", ctx, documentID).Return(doc, nil).Once()

	var savedPayment domain.Payment
	suite.mockPaymentRepo.On("SavePayment", ctx, mock.MatchedBy(func(p domain.Payment) bool {
		savedPayment = p
		return p.Status == domain.PaymentPending &&
			p.Amount.Equal(doc.ServicePrice) &&
			p.Description == documentID &&
			p.OrderCode >= 1 && p.OrderCode <= utils.MaxOrderCode
	})).Return(nil).Once()

	suite.mockGateway.On("CreateCheckoutLink", ctx, mock.MatchedBy(func(r portssvc.CreateCheckoutLinkRequest) bool {
		return r.Amount.Equal(doc.ServicePrice) && r.ReturnURL == testReturnURL && r.CancelURL == testCancelURL
	})).Return(checkoutURL, nil).Once()

	suite.mockPaymentRepo.On("UpdateCheckoutURL", ctx, mock.AnythingOfType("string"), checkoutURL).Return(nil).Once()
	suite.mockDocumentRepo.On("AttachPayment", ctx, documentID, mock.AnythingOfType("string"), checkoutURL).Return(nil).Once()
	suite.mockWorkflow.On("FinalizeToCompleted", ctx, documentID, actorUserID).Return(nil).Once()
	suite.mockSignatureRepo.On("MarkStaffApproved", ctx, documentID, actorUserID, mock.AnythingOfType("time.Time")).Return(nil).Once()
	suite.mockMailer.On("SendEmail", ctx, doc.Requester.Email, mock.AnythingOfType("string"), mock.AnythingOfType("string")).Return(nil).Once()

	payment, warning, err := suite.service.ApproveByStaff(ctx, documentID, actorUserID)

	suite.Require().NoError(err)
	suite.Require().NotNil(payment)
	suite.Empty(warning)
	suite.Equal(checkoutURL, payment.CheckoutURL)
	suite.Equal(savedPayment.OrderCode, payment.OrderCode)
	suite.mockSignatureRepo.AssertExpectations(suite.T())
	suite.mockPaymentRepo.AssertExpectations(suite.T())
	suite.mockDocumentRepo.AssertExpectations(suite.T())
	suite.mockWorkflow.AssertExpectations(suite.T())
	suite.mockGateway.AssertExpectations(suite.T())
}

func (suite *SignatureServiceTestSuite) TestApproveByStaff_BeforeRequester_NotFound() {
	ctx := context.Background()
	documentID := uuid.NewString()

	suite.expectStatus(documentID, domain.StatusDigitalSignature)
	suite.mockSignatureRepo.On("FindSignatureRequestByDocumentID", ctx, documentID).
		Return(nil, apperrors.ErrNotFound).Once()

	payment, _, err := suite.service.ApproveByStaff(ctx, documentID, uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(payment)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockPaymentRepo.AssertNotCalled(suite.T(), "SavePayment", mock.Anything, mock.Anything)
}

func (suite *SignatureServiceTestSuite) TestApproveByStaff_RequesterNotApproved_Conflict() {
	ctx := context.Background()
	documentID := uuid.NewString()
	request := suite.signedRequest(documentID)
	request.UserApproval = domain.Approval{Approved: false}

	suite.expectStatus(documentID, domain.StatusDigitalSignature)
	suite.mockSignatureRepo.On("FindSignatureRequestByDocumentID", ctx, documentID).
		Return(request, nil).Once()

	payment, _, err := suite.service.ApproveByStaff(ctx, documentID, uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(payment)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.mockPaymentRepo.AssertNotCalled(suite.T(), "SavePayment", mock.Anything, mock.Anything)
}

func (suite *SignatureServiceTestSuite) TestApproveByStaff_AlreadyPaid_Validation() {
	ctx := context.Background()
	documentID := uuid.NewString()
	doc := suite.pendingDocument(documentID)
	paymentID := uuid.NewString()
	doc.PaymentID = &paymentID

	suite.expectStatus(documentID, domain.StatusDigitalSignature)
	suite.mockSignatureRepo.On("FindSignatureRequestByDocumentID", ctx, documentID).
		Return(suite.signedRequest(documentID), nil).Once()
	suite.mockDocumentRepo.On("FindDocumentByID", ctx, documentID).Return(doc, nil).Once()

	payment, _, err := suite.service.ApproveByStaff(ctx, documentID, uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(payment)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockPaymentRepo.AssertNotCalled(suite.T(), "SavePayment", mock.Anything, mock.Anything)
}

func (suite *SignatureServiceTestSuite) TestApproveByStaff_WrongStatus_Conflict() {
	ctx := context.Background()
	documentID := uuid.NewString()

	suite.expectStatus(documentID, domain.StatusCompleted)

	payment, _, err := suite.service.ApproveByStaff(ctx, documentID, uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(payment)
	suite.ErrorIs(err, apperrors.ErrConflict)
}

// Order code collisions are retried with a fresh code before giving up.
func (suite *SignatureServiceTestSuite) TestApproveByStaff_OrderCodeCollision_Retries() {
	ctx := context.Background()
	documentID := uuid.NewString()
	actorUserID := uuid.NewString()
	doc := suite.pendingDocument(documentID)
	checkoutURL := "https://pay.example.test/checkout/xyz"

	suite.expectStatus(documentID, domain.StatusDigitalSignature)
	suite.mockSignatureRepo.On("FindSignatureRequestByDocumentID", ctx, documentID).
		Return(suite.signedRequest(documentID), nil).Once()
	suite.mockDocumentRepo.On("FindDocumentByID", ctx, documentID).Return(doc, nil).Once()

	suite.mockPaymentRepo.On("SavePayment", ctx, mock.AnythingOfType("domain.Payment")).
		Return(apperrors.ErrDuplicate).Twice()
	suite.mockPaymentRepo.On("SavePayment", ctx, mock.AnythingOfType("domain.Payment")).
		Return(nil).Once()

	suite.mockGateway.On("CreateCheckoutLink", ctx, mock.Anything).Return(checkoutURL, nil).Once()
	suite.mockPaymentRepo.On("UpdateCheckoutURL", ctx, mock.AnythingOfType("string"), checkoutURL).Return(nil).Once()
	suite.mockDocumentRepo.On("AttachPayment", ctx, documentID, mock.AnythingOfType("string"), checkoutURL).Return(nil).Once()
	suite.mockWorkflow.On("FinalizeToCompleted", ctx, documentID, actorUserID).Return(nil).Once()
	suite.mockSignatureRepo.On("MarkStaffApproved", ctx, documentID, actorUserID, mock.AnythingOfType("time.Time")).Return(nil).Once()
	suite.mockMailer.On("SendEmail", ctx, doc.Requester.Email, mock.Anything, mock.Anything).Return(nil).Once()

	payment, _, err := suite.service.ApproveByStaff(ctx, documentID, actorUserID)

	suite.Require().NoError(err)
	suite.Require().NotNil(payment)
	suite.mockPaymentRepo.AssertExpectations(suite.T())
}

// A failed notification email after a successful sign-off surfaces as a
// warning so the client knows the requester was not notified.
func (suite *SignatureServiceTestSuite) TestApproveByStaff_MailFailure_Warning() {
	ctx := context.Background()
	documentID := uuid.NewString()
	actorUserID := uuid.NewString()
	doc := suite.pendingDocument(documentID)
	checkoutURL := "https://pay.example.test/checkout/def"

	suite.expectStatus(documentID, domain.StatusDigitalSignature)
	suite.mockSignatureRepo.On("FindSignatureRequestByDocumentID", ctx, documentID).
		Return(suite.signedRequest(documentID), nil).Once()
	suite.mockDocumentRepo.On("FindDocumentByID", ctx, documentID).Return(doc, nil).Once()
	suite.mockPaymentRepo.On("SavePayment", ctx, mock.AnythingOfType("domain.Payment")).Return(nil).Once()
	suite.mockGateway.On("CreateCheckoutLink", ctx, mock.Anything).Return(checkoutURL, nil).Once()
	suite.mockPaymentRepo.On("UpdateCheckoutURL", ctx, mock.AnythingOfType("string"), checkoutURL).Return(nil).Once()
	suite.mockDocumentRepo.On("AttachPayment", ctx, documentID, mock.AnythingOfType("string"), checkoutURL).Return(nil).Once()
	suite.mockWorkflow.On("FinalizeToCompleted", ctx, documentID, actorUserID).Return(nil).Once()
	suite.mockSignatureRepo.On("MarkStaffApproved", ctx, documentID, actorUserID, mock.AnythingOfType("time.Time")).Return(nil).Once()
	suite.mockMailer.On("SendEmail", ctx, doc.Requester.Email, mock.Anything, mock.Anything).
		Return(assert.AnError).Once()

	payment, warning, err := suite.service.ApproveByStaff(ctx, documentID, actorUserID)

	suite.Require().NoError(err)
	suite.Require().NotNil(payment)
	suite.NotEmpty(warning)
	suite.Equal(checkoutURL, payment.CheckoutURL)
	suite.mockSignatureRepo.AssertExpectations(suite.T())
}

// Gateway failure leaves the staff flag unset so the call can be retried.
func (suite *SignatureServiceTestSuite) TestApproveByStaff_GatewayFailure_StaffFlagUntouched() {
	ctx := context.Background()
	documentID := uuid.NewString()
	doc := suite.pendingDocument(documentID)

	suite.expectStatus(documentID, domain.StatusDigitalSignature)
	suite.mockSignatureRepo.On("FindSignatureRequestByDocumentID", ctx, documentID).
		Return(suite.signedRequest(documentID), nil).Once()
	suite.mockDocumentRepo.On("FindDocumentByID", ctx, documentID).Return(doc, nil).Once()
	suite.mockPaymentRepo.On("SavePayment", ctx, mock.AnythingOfType("domain.Payment")).Return(nil).Once()
	suite.mockGateway.On("CreateCheckoutLink", ctx, mock.Anything).Return("", context.DeadlineExceeded).Once()

	payment, _, err := suite.service.ApproveByStaff(ctx, documentID, uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(payment)
	suite.ErrorIs(err, apperrors.ErrInternal)
	suite.mockSignatureRepo.AssertNotCalled(suite.T(), "MarkStaffApproved", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	suite.mockWorkflow.AssertNotCalled(suite.T(), "FinalizeToCompleted", mock.Anything, mock.Anything, mock.Anything)
}

func TestSignatureServiceTestSuite(t *testing.T) {
	suite.Run(t, new(SignatureServiceTestSuite))
}
