package utils_test

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/youssefkhaled23/factory-system-backend/internal/apperrors"
	"github.com/youssefkhaled23/factory-system-backend/internal/core/domain"
	"github.com/youssefkhaled23/factory-system-backend/internal/utils"
)

type TokenCodecTestSuite struct {
	suite.Suite
	now   time.Time
	codec *utils.JWTTokenCodec
}

func (suite *TokenCodecTestSuite) SetupTest() {
	suite.now = time.Date(2025, 3, 14, 9, 26, 53, 0, time.UTC)
	codec, err := utils.NewTokenCodec(utils.TokenCodecConfig{
		AccessSecret:  "access-secret-for-tests",
		RefreshSecret: "refresh-secret-for-tests",
		Issuer:        "factory-test",
	}, func() time.Time { return suite.now })
	suite.Require().NoError(err)
	suite.codec = codec
}

func (suite *TokenCodecTestSuite) accessPayload() domain.AccessTokenPayload {
	return domain.AccessTokenPayload{
		SubjectID:   "2b1f4c5e-0000-4000-8000-000000000001",
		Email:       "worker@factory.com",
		RoleID:      "6c0d1e2f-0000-4000-8000-000000000002",
		LastLoginAt: domain.AnchorFromTime(suite.now),
	}
}

func (suite *TokenCodecTestSuite) TestAccessTokenRoundTrip() {
	payload := suite.accessPayload()

	token, expiresAt, err := suite.codec.SignAccessToken(payload, time.Hour)
	suite.Require().NoError(err)
	suite.Equal(suite.now.Add(time.Hour), expiresAt)

	suite.now = suite.now.Add(59 * time.Minute)
	got, err := suite.codec.VerifyAccessToken(token)
	suite.Require().NoError(err)
	suite.Equal(payload, *got)
}

func (suite *TokenCodecTestSuite) TestRefreshTokenRoundTrip() {
	payload := domain.RefreshTokenPayload{SubjectID: "u-1", Email: "u1@factory.com"}

	token, expiresAt, err := suite.codec.SignRefreshToken(payload, 0)
	suite.Require().NoError(err)
	suite.Equal(suite.now.Add(utils.DefaultRefreshTokenTTL), expiresAt)

	got, err := suite.codec.VerifyRefreshToken(token)
	suite.Require().NoError(err)
	suite.Equal(payload, *got)
}

func (suite *TokenCodecTestSuite) TestSecretsAreNotInterchangeable() {
	access, _, err := suite.codec.SignAccessToken(suite.accessPayload(), time.Hour)
	suite.Require().NoError(err)
	refresh, _, err := suite.codec.SignRefreshToken(domain.RefreshTokenPayload{SubjectID: "u-1", Email: "u1@factory.com"}, time.Hour)
	suite.Require().NoError(err)

	_, err = suite.codec.VerifyRefreshToken(access)
	suite.ErrorIs(err, apperrors.ErrInvalidToken)

	_, err = suite.codec.VerifyAccessToken(refresh)
	suite.ErrorIs(err, apperrors.ErrInvalidToken)
}

func (suite *TokenCodecTestSuite) TestExpiredToken() {
	token, _, err := suite.codec.SignAccessToken(suite.accessPayload(), time.Hour)
	suite.Require().NoError(err)

	suite.now = suite.now.Add(time.Hour + time.Second)
	_, err = suite.codec.VerifyAccessToken(token)
	suite.ErrorIs(err, apperrors.ErrExpiredToken)
	suite.False(errors.Is(err, apperrors.ErrInvalidToken))
}

func (suite *TokenCodecTestSuite) TestDefaultAccessTTL() {
	_, expiresAt, err := suite.codec.SignAccessToken(suite.accessPayload(), 0)
	suite.Require().NoError(err)
	suite.Equal(suite.now.Add(utils.DefaultAccessTokenTTL), expiresAt)
}

func (suite *TokenCodecTestSuite) TestTamperedToken() {
	token, _, err := suite.codec.SignAccessToken(suite.accessPayload(), time.Hour)
	suite.Require().NoError(err)

	parts := strings.Split(token, ".")
	suite.Require().Len(parts, 3)
	sig := []byte(parts[2])
	if sig[0] == 'A' {
		sig[0] = 'B'
	} else {
		sig[0] = 'A'
	}
	tampered := parts[0] + "." + parts[1] + "." + string(sig)

	_, err = suite.codec.VerifyAccessToken(tampered)
	suite.ErrorIs(err, apperrors.ErrInvalidToken)

	_, err = suite.codec.VerifyAccessToken("not-a-jwt")
	suite.ErrorIs(err, apperrors.ErrInvalidToken)
}

func (suite *TokenCodecTestSuite) TestRejectsNoneAlgorithm() {
	claims := jwt.MapClaims{
		"sub": "u-1",
		"iss": "factory-test",
		"exp": suite.now.Add(time.Hour).Unix(),
	}
	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	suite.Require().NoError(err)

	_, err = suite.codec.VerifyAccessToken(unsigned)
	suite.ErrorIs(err, apperrors.ErrInvalidToken)
}

func (suite *TokenCodecTestSuite) TestRejectsForeignIssuer() {
	other, err := utils.NewTokenCodec(utils.TokenCodecConfig{
		AccessSecret:  "access-secret-for-tests",
		RefreshSecret: "refresh-secret-for-tests",
		Issuer:        "someone-else",
	}, func() time.Time { return suite.now })
	suite.Require().NoError(err)

	token, _, err := other.SignAccessToken(suite.accessPayload(), time.Hour)
	suite.Require().NoError(err)

	_, err = suite.codec.VerifyAccessToken(token)
	suite.ErrorIs(err, apperrors.ErrInvalidToken)
}

func (suite *TokenCodecTestSuite) TestEveryTokenIsUnique() {
	payload := domain.RefreshTokenPayload{SubjectID: "u-1", Email: "u1@factory.com"}

	first, _, err := suite.codec.SignRefreshToken(payload, time.Hour)
	suite.Require().NoError(err)
	second, _, err := suite.codec.SignRefreshToken(payload, time.Hour)
	suite.Require().NoError(err)

	suite.NotEqual(first, second)
}

func (suite *TokenCodecTestSuite) TestMissingAnchorIsPreservedAsEmpty() {
	payload := suite.accessPayload()
	payload.LastLoginAt = ""

	token, _, err := suite.codec.SignAccessToken(payload, time.Hour)
	suite.Require().NoError(err)

	got, err := suite.codec.VerifyAccessToken(token)
	suite.Require().NoError(err)
	suite.Empty(got.LastLoginAt)
}

func TestTokenCodec(t *testing.T) {
	suite.Run(t, new(TokenCodecTestSuite))
}

func TestNewTokenCodecRequiresSecrets(t *testing.T) {
	_, err := utils.NewTokenCodec(utils.TokenCodecConfig{AccessSecret: "a"}, nil)
	require.Error(t, err)

	codec, err := utils.NewTokenCodec(utils.TokenCodecConfig{AccessSecret: "a", RefreshSecret: "b"}, nil)
	require.NoError(t, err)
	assert.NotNil(t, codec)
}
