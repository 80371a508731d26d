package services_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/youssefkhaled23/factory-system-backend/internal/apperrors"
	"github.com/youssefkhaled23/factory-system-backend/internal/core/domain"
	portssvc "github.com/youssefkhaled23/factory-system-backend/internal/core/ports/services"
	"github.com/youssefkhaled23/factory-system-backend/internal/core/services"
	"github.com/youssefkhaled23/factory-system-backend/internal/utils"
)

type SessionGuardTestSuite struct {
	suite.Suite
	ctx      context.Context
	repo     *MockUserRepository
	codec    *utils.JWTTokenCodec
	guard    portssvc.SessionGuardSvc
	userID   string
	roleID   string
	loggedIn time.Time
}

func (suite *SessionGuardTestSuite) SetupTest() {
	suite.ctx = context.Background()
	suite.repo = new(MockUserRepository)

	codec, err := utils.NewTokenCodec(utils.TokenCodecConfig{
		AccessSecret:  "guard-access-secret",
		RefreshSecret: "guard-refresh-secret",
	}, nil)
	suite.Require().NoError(err)
	suite.codec = codec

	suite.guard = services.NewSessionGuard(suite.repo, suite.codec)
	suite.userID = uuid.NewString()
	suite.roleID = uuid.NewString()
	suite.loggedIn = time.Now().UTC().Truncate(time.Second)
}

func (suite *SessionGuardTestSuite) token(anchor json.Number) string {
	token, _, err := suite.codec.SignAccessToken(domain.AccessTokenPayload{
		SubjectID:   suite.userID,
		Email:       "operator@factory.com",
		RoleID:      suite.roleID,
		LastLoginAt: anchor,
	}, time.Hour)
	suite.Require().NoError(err)
	return "Bearer " + token
}

func (suite *SessionGuardTestSuite) activeUser(lastLogin *time.Time) *domain.User {
	return &domain.User{
		UserID:      suite.userID,
		Status:      domain.UserStatusActive,
		LastLoginAt: lastLogin,
	}
}

func (suite *SessionGuardTestSuite) assertRejected(header string, kind domain.RejectionKind) {
	identity, err := suite.guard.Authenticate(suite.ctx, header)
	suite.Nil(identity)
	var rejection *domain.Rejection
	suite.Require().ErrorAs(err, &rejection)
	suite.Equal(kind, rejection.Kind, "got %s", rejection.Kind)
	suite.NotEmpty(rejection.Message)
}

func (suite *SessionGuardTestSuite) TestAdmitsCurrentSession() {
	suite.repo.On("FindUserByID", mock.Anything, suite.userID).Return(suite.activeUser(&suite.loggedIn), nil).Once()

	identity, err := suite.guard.Authenticate(suite.ctx, suite.token(domain.AnchorFromTime(suite.loggedIn)))

	suite.Require().NoError(err)
	suite.Equal(&domain.Identity{
		SubjectID:   suite.userID,
		Email:       "operator@factory.com",
		RoleID:      suite.roleID,
		LastLoginAt: suite.loggedIn.UnixMilli(),
	}, identity)
	suite.repo.AssertExpectations(suite.T())
}

func (suite *SessionGuardTestSuite) TestSchemeIsCaseInsensitiveAndTrimmed() {
	suite.repo.On("FindUserByID", mock.Anything, suite.userID).Return(suite.activeUser(&suite.loggedIn), nil).Once()
	raw := suite.token(domain.AnchorFromTime(suite.loggedIn))[len("Bearer "):]

	_, err := suite.guard.Authenticate(suite.ctx, "  bearer   "+raw+"  ")

	suite.NoError(err)
}

func (suite *SessionGuardTestSuite) TestMissingHeader() {
	suite.assertRejected("", domain.RejectMissingToken)
	suite.assertRejected("   ", domain.RejectMissingToken)
	suite.repo.AssertNotCalled(suite.T(), "FindUserByID", mock.Anything, mock.Anything)
}

func (suite *SessionGuardTestSuite) TestMalformedHeader() {
	for _, header := range []string{"Bearer", "Token abc", "Basic dXNlcjpwYXNz", "Bearer a b", "abc"} {
		suite.Run(header, func() {
			suite.assertRejected(header, domain.RejectMalformedHeader)
		})
	}
	suite.repo.AssertNotCalled(suite.T(), "FindUserByID", mock.Anything, mock.Anything)
}

func (suite *SessionGuardTestSuite) TestUnverifiableToken() {
	suite.assertRejected("Bearer not-a-jwt", domain.RejectSessionExpired)

	other, err := utils.NewTokenCodec(utils.TokenCodecConfig{AccessSecret: "other", RefreshSecret: "other-refresh"}, nil)
	suite.Require().NoError(err)
	forged, _, err := other.SignAccessToken(domain.AccessTokenPayload{
		SubjectID:   suite.userID,
		LastLoginAt: domain.AnchorFromTime(suite.loggedIn),
	}, time.Hour)
	suite.Require().NoError(err)
	suite.assertRejected("Bearer "+forged, domain.RejectSessionExpired)
}

func (suite *SessionGuardTestSuite) TestExpiredToken() {
	expiredCodec, err := utils.NewTokenCodec(utils.TokenCodecConfig{
		AccessSecret:  "guard-access-secret",
		RefreshSecret: "guard-refresh-secret",
	}, func() time.Time { return time.Now().Add(-2 * time.Hour) })
	suite.Require().NoError(err)
	token, _, err := expiredCodec.SignAccessToken(domain.AccessTokenPayload{
		SubjectID:   suite.userID,
		LastLoginAt: domain.AnchorFromTime(suite.loggedIn),
	}, time.Hour)
	suite.Require().NoError(err)

	suite.assertRejected("Bearer "+token, domain.RejectSessionExpired)
}

func (suite *SessionGuardTestSuite) TestUnknownUser() {
	suite.repo.On("FindUserByID", mock.Anything, suite.userID).Return(nil, apperrors.ErrNotFound).Once()
	suite.assertRejected(suite.token(domain.AnchorFromTime(suite.loggedIn)), domain.RejectAccountUnverifiable)
}

func (suite *SessionGuardTestSuite) TestInactiveUser() {
	user := suite.activeUser(&suite.loggedIn)
	user.Status = domain.UserStatusInactive
	suite.repo.On("FindUserByID", mock.Anything, suite.userID).Return(user, nil).Once()

	suite.assertRejected(suite.token(domain.AnchorFromTime(suite.loggedIn)), domain.RejectAccountUnverifiable)
}

func (suite *SessionGuardTestSuite) TestStoreFailureIsNotARejection() {
	suite.repo.On("FindUserByID", mock.Anything, suite.userID).Return(nil, assert.AnError).Once()

	identity, err := suite.guard.Authenticate(suite.ctx, suite.token(domain.AnchorFromTime(suite.loggedIn)))

	suite.Nil(identity)
	var rejection *domain.Rejection
	suite.False(errors.As(err, &rejection))
	suite.ErrorIs(err, apperrors.ErrInternal)
}

func (suite *SessionGuardTestSuite) TestLoggedOutUser() {
	suite.repo.On("FindUserByID", mock.Anything, suite.userID).Return(suite.activeUser(nil), nil).Once()
	suite.assertRejected(suite.token(domain.AnchorFromTime(suite.loggedIn)), domain.RejectLoggedOut)
}

func (suite *SessionGuardTestSuite) TestTokenWithoutAnchor() {
	suite.repo.On("FindUserByID", mock.Anything, suite.userID).Return(suite.activeUser(&suite.loggedIn), nil).Once()
	suite.assertRejected(suite.token(""), domain.RejectInvalidToken)
}

func (suite *SessionGuardTestSuite) TestNonPositiveOrFractionalAnchor() {
	for _, anchor := range []json.Number{"0", "-1700000000000", "1.5"} {
		suite.Run(anchor.String(), func() {
			suite.repo.On("FindUserByID", mock.Anything, suite.userID).Return(suite.activeUser(&suite.loggedIn), nil).Once()
			suite.assertRejected(suite.token(anchor), domain.RejectInvalidToken)
		})
	}
}

func (suite *SessionGuardTestSuite) TestStoredAnchorAtEpoch() {
	epoch := time.UnixMilli(0).UTC()
	suite.repo.On("FindUserByID", mock.Anything, suite.userID).Return(suite.activeUser(&epoch), nil).Once()
	suite.assertRejected(suite.token(domain.AnchorFromTime(suite.loggedIn)), domain.RejectInvalidToken)
}

func (suite *SessionGuardTestSuite) TestSupersededSession() {
	later := suite.loggedIn.Add(time.Second)
	suite.repo.On("FindUserByID", mock.Anything, suite.userID).Return(suite.activeUser(&later), nil).Once()

	suite.assertRejected(suite.token(domain.AnchorFromTime(suite.loggedIn)), domain.RejectSupersededSession)
}

func (suite *SessionGuardTestSuite) TestRejectionMessages() {
	suite.Equal("you have been logged in elsewhere, please log in again",
		domain.NewRejection(domain.RejectSupersededSession, nil).Message)
	suite.Equal("you have been logged out, please log in again",
		domain.NewRejection(domain.RejectLoggedOut, nil).Message)
	suite.Equal("your session has expired, please log in again",
		domain.NewRejection(domain.RejectSessionExpired, nil).Message)
}

func TestSessionGuard(t *testing.T) {
	suite.Run(t, new(SessionGuardTestSuite))
}
