package services_test

import (
	"context"
	"testing"

	"github.com/NotariaHQ/notaria_backend/internal/apperrors"
	"github.com/NotariaHQ/notaria_backend/internal/core/domain"
	portssvc "github.com/NotariaHQ/notaria_backend/internal/core/ports/services"
	"github.com/NotariaHQ/notaria_backend/internal/core/services"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Test Suite ---
type WorkflowServiceTestSuite struct {
	suite.Suite
	mockStatusRepo   *MockStatusRepository
	mockDocumentRepo *MockDocumentRepository
	service          portssvc.WorkflowSvcFacade
}

func (suite *WorkflowServiceTestSuite) SetupTest() {
	suite.mockStatusRepo = new(MockStatusRepository)
	suite.mockDocumentRepo = new(MockDocumentRepository)
	suite.service = services.NewWorkflowService(suite.mockStatusRepo, suite.mockDocumentRepo, services.NewDefaultPermissionResolver())
}

// --- Test Cases ---

func (suite *WorkflowServiceTestSuite) TestCreateStatus_Success() {
	ctx := context.Background()
	documentID := uuid.NewString()

	suite.mockStatusRepo.On("SaveStatusEntry", ctx, mock.MatchedBy(func(e domain.StatusEntry) bool {
		return e.DocumentID == documentID && e.Status == domain.StatusPending
	})).Return(nil).Once()

	entry, err := suite.service.CreateStatus(ctx, documentID)

	suite.Require().NoError(err)
	suite.Require().NotNil(entry)
	suite.Equal(domain.StatusPending, entry.Status)
	suite.mockStatusRepo.AssertExpectations(suite.T())
}

func (suite *WorkflowServiceTestSuite) TestCreateStatus_AlreadyExists() {
	ctx := context.Background()
	documentID := uuid.NewString()

	suite.mockStatusRepo.On("SaveStatusEntry", ctx, mock.AnythingOfType("domain.StatusEntry")).Return(apperrors.ErrDuplicate).Once()

	entry, err := suite.service.CreateStatus(ctx, documentID)

	suite.Require().Error(err)
	suite.Nil(entry)
	suite.ErrorIs(err, apperrors.ErrDuplicate)
	suite.mockStatusRepo.AssertExpectations(suite.T())
}

func (suite *WorkflowServiceTestSuite) TestGetStatus_NotFound() {
	ctx := context.Background()
	documentID := uuid.NewString()

	suite.mockStatusRepo.On("FindStatusByDocumentID", ctx, documentID).Return(nil, apperrors.ErrNotFound).Once()

	entry, err := suite.service.GetStatus(ctx, documentID)

	suite.Require().Error(err)
	suite.Nil(entry)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

// Secretary acting while the document is still pending is out of its lane.
func (suite *WorkflowServiceTestSuite) TestAdvance_AcceptAtPendingBySecretary_Forbidden() {
	ctx := context.Background()
	documentID := uuid.NewString()

	suite.mockStatusRepo.On("FindStatusByDocumentID", ctx, documentID).
		Return(&domain.StatusEntry{DocumentID: documentID, Status: domain.StatusPending}, nil).Once()

	entry, err := suite.service.Advance(ctx, documentID, domain.ActionAccept, domain.RoleSecretary, uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(entry)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockStatusRepo.AssertNotCalled(suite.T(), "TransitionStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *WorkflowServiceTestSuite) TestAdvance_AcceptAtVerificationBySecretary() {
	ctx := context.Background()
	documentID := uuid.NewString()
	actorUserID := uuid.NewString()

	suite.mockStatusRepo.On("FindStatusByDocumentID", ctx, documentID).
		Return(&domain.StatusEntry{DocumentID: documentID, Status: domain.StatusVerification}, nil).Once()
	suite.mockStatusRepo.On("TransitionStatus", ctx, documentID, domain.StatusVerification, domain.StatusProcessing, actorUserID, mock.AnythingOfType("time.Time")).
		Return(nil).Once()

	entry, err := suite.service.Advance(ctx, documentID, domain.ActionAccept, domain.RoleSecretary, actorUserID)

	suite.Require().NoError(err)
	suite.Require().NotNil(entry)
	suite.Equal(domain.StatusProcessing, entry.Status)
	suite.Equal(actorUserID, entry.LastUpdatedBy)
	suite.mockStatusRepo.AssertExpectations(suite.T())
}

func (suite *WorkflowServiceTestSuite) TestAdvance_AcceptAtProcessingByNotary() {
	ctx := context.Background()
	documentID := uuid.NewString()
	actorUserID := uuid.NewString()

	suite.mockStatusRepo.On("FindStatusByDocumentID", ctx, documentID).
		Return(&domain.StatusEntry{DocumentID: documentID, Status: domain.StatusProcessing}, nil).Once()
	suite.mockStatusRepo.On("TransitionStatus", ctx, documentID, domain.StatusProcessing, domain.StatusDigitalSignature, actorUserID, mock.AnythingOfType("time.Time")).
		Return(nil).Once()

	entry, err := suite.service.Advance(ctx, documentID, domain.ActionAccept, domain.RoleNotary, actorUserID)

	suite.Require().NoError(err)
	suite.Equal(domain.StatusDigitalSignature, entry.Status)
	suite.mockStatusRepo.AssertExpectations(suite.T())
}

func (suite *WorkflowServiceTestSuite) TestAdvance_AcceptAtCompleted_BadRequest() {
	ctx := context.Background()
	documentID := uuid.NewString()

	suite.mockStatusRepo.On("FindStatusByDocumentID", ctx, documentID).
		Return(&domain.StatusEntry{DocumentID: documentID, Status: domain.StatusCompleted}, nil).Once()

	entry, err := suite.service.Advance(ctx, documentID, domain.ActionAccept, domain.RoleNotary, uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(entry)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.ErrorIs(err, services.ErrNoNextStatus)
}

func (suite *WorkflowServiceTestSuite) TestAdvance_NoStatusEntry_NotFound() {
	ctx := context.Background()
	documentID := uuid.NewString()

	suite.mockStatusRepo.On("FindStatusByDocumentID", ctx, documentID).Return(nil, apperrors.ErrNotFound).Once()

	entry, err := suite.service.Advance(ctx, documentID, domain.ActionAccept, domain.RoleNotary, uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(entry)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *WorkflowServiceTestSuite) TestAdvance_InvalidAction() {
	ctx := context.Background()
	documentID := uuid.NewString()

	suite.mockStatusRepo.On("FindStatusByDocumentID", ctx, documentID).
		Return(&domain.StatusEntry{DocumentID: documentID, Status: domain.StatusVerification}, nil).Once()

	entry, err := suite.service.Advance(ctx, documentID, domain.WorkflowAction("approve"), domain.RoleSecretary, uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(entry)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.ErrorIs(err, services.ErrInvalidAction)
}

func (suite *WorkflowServiceTestSuite) TestAdvance_RejectAtProcessingByNotary() {
	ctx := context.Background()
	documentID := uuid.NewString()
	actorUserID := uuid.NewString()

	suite.mockStatusRepo.On("FindStatusByDocumentID", ctx, documentID).
		Return(&domain.StatusEntry{DocumentID: documentID, Status: domain.StatusProcessing}, nil).Once()
	suite.mockStatusRepo.On("TransitionStatus", ctx, documentID, domain.StatusProcessing, domain.StatusRejected, actorUserID, mock.AnythingOfType("time.Time")).
		Return(nil).Once()

	entry, err := suite.service.Advance(ctx, documentID, domain.ActionReject, domain.RoleNotary, actorUserID)

	suite.Require().NoError(err)
	suite.Equal(domain.StatusRejected, entry.Status)
	suite.mockStatusRepo.AssertExpectations(suite.T())
}

func (suite *WorkflowServiceTestSuite) TestAdvance_RejectAtTerminal_Conflict() {
	ctx := context.Background()
	documentID := uuid.NewString()

	suite.mockStatusRepo.On("FindStatusByDocumentID", ctx, documentID).
		Return(&domain.StatusEntry{DocumentID: documentID, Status: domain.StatusRejected}, nil).Once()

	entry, err := suite.service.Advance(ctx, documentID, domain.ActionReject, domain.RoleNotary, uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(entry)
	suite.ErrorIs(err, apperrors.ErrConflict)
}

// A rejected document is terminal for accepts too: no role's action status
// is rejected, so the role gate refuses every actor.
func (suite *WorkflowServiceTestSuite) TestAdvance_AcceptAfterReject_Forbidden() {
	ctx := context.Background()
	documentID := uuid.NewString()

	for _, role := range []domain.StaffRole{domain.RoleNotary, domain.RoleSecretary} {
		suite.mockStatusRepo.On("FindStatusByDocumentID", ctx, documentID).
			Return(&domain.StatusEntry{DocumentID: documentID, Status: domain.StatusRejected}, nil).Once()

		entry, err := suite.service.Advance(ctx, documentID, domain.ActionAccept, role, uuid.NewString())

		suite.Require().Error(err, "role %s", role)
		suite.Nil(entry)
		suite.ErrorIs(err, apperrors.ErrForbidden)
	}
	suite.mockStatusRepo.AssertNotCalled(suite.T(), "TransitionStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

// Two concurrent accepts: the second loses the compare-and-set.
func (suite *WorkflowServiceTestSuite) TestAdvance_ConcurrentTransition_Conflict() {
	ctx := context.Background()
	documentID := uuid.NewString()
	actorUserID := uuid.NewString()

	suite.mockStatusRepo.On("FindStatusByDocumentID", ctx, documentID).
		Return(&domain.StatusEntry{DocumentID: documentID, Status: domain.StatusProcessing}, nil).Once()
	suite.mockStatusRepo.On("TransitionStatus", ctx, documentID, domain.StatusProcessing, domain.StatusDigitalSignature, actorUserID, mock.AnythingOfType("time.Time")).
		Return(apperrors.ErrConflict).Once()

	entry, err := suite.service.Advance(ctx, documentID, domain.ActionAccept, domain.RoleNotary, actorUserID)

	suite.Require().Error(err)
	suite.Nil(entry)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.mockStatusRepo.AssertExpectations(suite.T())
}

func (suite *WorkflowServiceTestSuite) TestListByRole_Secretary() {
	ctx := context.Background()
	expected := []domain.DocumentWithStatus{
		{Document: domain.Document{DocumentID: uuid.NewString()}, Status: domain.StatusVerification},
	}

	suite.mockDocumentRepo.On("FindDocumentsByStatuses", ctx,
		[]domain.DocumentStatus{domain.StatusVerification, domain.StatusDigitalSignature}).
		Return(expected, nil).Once()

	docs, err := suite.service.ListByRole(ctx, domain.RoleSecretary)

	suite.Require().NoError(err)
	suite.Equal(expected, docs)
	suite.mockDocumentRepo.AssertExpectations(suite.T())
}

func (suite *WorkflowServiceTestSuite) TestListByRole_Requester_Forbidden() {
	ctx := context.Background()

	docs, err := suite.service.ListByRole(ctx, domain.RoleRequester)

	suite.Require().Error(err)
	suite.Nil(docs)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockDocumentRepo.AssertNotCalled(suite.T(), "FindDocumentsByStatuses", mock.Anything, mock.Anything)
}

func (suite *WorkflowServiceTestSuite) TestFinalizeToCompleted_Success() {
	ctx := context.Background()
	documentID := uuid.NewString()
	actorUserID := uuid.NewString()

	suite.mockStatusRepo.On("TransitionStatus", ctx, documentID, domain.StatusDigitalSignature, domain.StatusCompleted, actorUserID, mock.AnythingOfType("time.Time")).
		Return(nil).Once()

	err := suite.service.FinalizeToCompleted(ctx, documentID, actorUserID)

	suite.Require().NoError(err)
	suite.mockStatusRepo.AssertExpectations(suite.T())
}

func (suite *WorkflowServiceTestSuite) TestFinalizeToCompleted_Conflict() {
	ctx := context.Background()
	documentID := uuid.NewString()

	suite.mockStatusRepo.On("TransitionStatus", ctx, documentID, domain.StatusDigitalSignature, domain.StatusCompleted, mock.Anything, mock.AnythingOfType("time.Time")).
		Return(apperrors.ErrConflict).Once()

	err := suite.service.FinalizeToCompleted(ctx, documentID, uuid.NewString())

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)
}

func TestWorkflowServiceTestSuite(t *testing.T) {
	suite.Run(t, new(WorkflowServiceTestSuite))
}
