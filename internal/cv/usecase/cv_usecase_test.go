package usecase_test

import (
	"context"
	"testing"

	"cvforge/internal/cv/domain/model"
	"cvforge/internal/cv/domain/repository"
	"cvforge/internal/cv/usecase"
	apperrors "cvforge/internal/shared/errors"
	"cvforge/internal/shared/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

// Mock CV repository
type mockCVRepository struct {
	mock.Mock
}

func (m *mockCVRepository) Save(ctx context.Context, userID string, data interface{}) (repository.SaveOutcome, error) {
	args := m.Called(ctx, userID, data)
	return args.Get(0).(repository.SaveOutcome), args.Error(1)
}

func (m *mockCVRepository) Get(ctx context.Context, userID string) (*model.CV, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.CV), args.Error(1)
}

type CVUsecaseTestSuite struct {
	suite.Suite
	mockRepo *mockCVRepository
	usecase  *usecase.CVUsecase
}

func (suite *CVUsecaseTestSuite) SetupTest() {
	suite.mockRepo = &mockCVRepository{}
	suite.usecase = usecase.NewCVUsecase(suite.mockRepo, logger.NewLogger())
}

func (suite *CVUsecaseTestSuite) TestSave_FirstSaveCreates() {
	ctx := context.Background()
	payload := map[string]interface{}{"name": "Ada"}

	suite.mockRepo.On("Save", ctx, "user-1", payload).Return(repository.SaveCreated, nil)

	outcome, err := suite.usecase.Save(ctx, "user-1", payload)

	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), repository.SaveCreated, outcome)
}

func (suite *CVUsecaseTestSuite) TestSave_SecondSaveUpdates() {
	ctx := context.Background()
	payload := map[string]interface{}{"name": "Ada", "title": "Engineer"}

	suite.mockRepo.On("Save", ctx, "user-1", payload).Return(repository.SaveUpdated, nil)

	outcome, err := suite.usecase.Save(ctx, "user-1", payload)

	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), repository.SaveUpdated, outcome)
}

func (suite *CVUsecaseTestSuite) TestSave_StoreUnavailable() {
	ctx := context.Background()
	storeErr := apperrors.NewUnavailableError("document store write failed")

	suite.mockRepo.On("Save", ctx, "user-1", mock.Anything).Return(repository.SaveUpdated, storeErr)

	_, err := suite.usecase.Save(ctx, "user-1", nil)

	require.Error(suite.T(), err)
	assert.True(suite.T(), apperrors.IsUnavailable(err))
}

func (suite *CVUsecaseTestSuite) TestGet_ReturnsDocument() {
	ctx := context.Background()
	cv := &model.CV{UserID: "user-1", Data: map[string]interface{}{"name": "Ada"}}

	suite.mockRepo.On("Get", ctx, "user-1").Return(cv, nil)

	got, err := suite.usecase.Get(ctx, "user-1")

	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), "user-1", got.UserID)
}

func (suite *CVUsecaseTestSuite) TestGet_NotFoundIsNotDefaulted() {
	ctx := context.Background()

	suite.mockRepo.On("Get", ctx, "user-1").Return(nil, apperrors.ErrCVNotFound)

	got, err := suite.usecase.Get(ctx, "user-1")

	assert.Nil(suite.T(), got, "no default document for unknown users")
	assert.ErrorIs(suite.T(), err, apperrors.ErrCVNotFound)
}

func (suite *CVUsecaseTestSuite) TestGet_StoreUnavailableIsNotNotFound() {
	ctx := context.Background()
	storeErr := apperrors.NewUnavailableError("document store read failed")

	suite.mockRepo.On("Get", ctx, "user-1").Return(nil, storeErr)

	_, err := suite.usecase.Get(ctx, "user-1")

	require.Error(suite.T(), err)
	assert.True(suite.T(), apperrors.IsUnavailable(err))
	assert.False(suite.T(), apperrors.IsNotFound(err))
}

func TestCVUsecaseTestSuite(t *testing.T) {
	suite.Run(t, new(CVUsecaseTestSuite))
}
