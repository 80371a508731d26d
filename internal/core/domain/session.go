package domain

import (
	"encoding/json"
	"strconv"
	"time"
)

// AccessTokenPayload is what an access token carries.
//
// LastLoginAt is the session anchor as a millisecond epoch, kept in its wire
// form so the guard can tell an absent anchor from an unparsable one.
type AccessTokenPayload struct {
	SubjectID   string
	Email       string
	RoleID      string
	LastLoginAt json.Number
}

// RefreshTokenPayload carries no anchor; refresh tokens are checked against
// the stored hash instead.
type RefreshTokenPayload struct {
	SubjectID string
	Email     string
}

// AnchorFromTime renders a session anchor the way access tokens carry it.
func AnchorFromTime(t time.Time) json.Number {
	return json.Number(strconv.FormatInt(t.UnixMilli(), 10))
}

// TokenPair is the result of a login or a refresh.
type TokenPair struct {
	AccessToken           string
	AccessTokenExpiresAt  time.Time
	RefreshToken          string
	RefreshTokenExpiresAt time.Time
}

// LoginResult bundles the issued tokens with the authenticated user.
type LoginResult struct {
	Tokens TokenPair
	User   User
}

// Identity is the minimal verified caller attached to an admitted request.
type Identity struct {
	SubjectID   string
	Email       string
	RoleID      string
	LastLoginAt int64
}

// RejectionKind tells why the session guard refused a request.
type RejectionKind int

const (
	RejectMissingToken RejectionKind = iota + 1
	RejectMalformedHeader
	RejectSessionExpired
	RejectAccountUnverifiable
	RejectLoggedOut
	RejectInvalidToken
	RejectSupersededSession
)

var rejectionMessages = map[RejectionKind]string{
	RejectMissingToken:        "please log in to continue",
	RejectMalformedHeader:     "please log in to continue",
	RejectSessionExpired:      "your session has expired, please log in again",
	RejectAccountUnverifiable: "your account cannot be verified",
	RejectLoggedOut:           "you have been logged out, please log in again",
	RejectInvalidToken:        "invalid token",
	RejectSupersededSession:   "you have been logged in elsewhere, please log in again",
}

func (k RejectionKind) String() string {
	switch k {
	case RejectMissingToken:
		return "missing_token"
	case RejectMalformedHeader:
		return "malformed_header"
	case RejectSessionExpired:
		return "session_expired"
	case RejectAccountUnverifiable:
		return "account_unverifiable"
	case RejectLoggedOut:
		return "logged_out"
	case RejectInvalidToken:
		return "invalid_token"
	case RejectSupersededSession:
		return "superseded_session"
	default:
		return "unknown"
	}
}

// Rejection is returned by the session guard instead of an identity. Kind is
// for logs; Message is the only thing shown to the caller.
type Rejection struct {
	Kind    RejectionKind
	Message string
	Cause   error
}

func NewRejection(kind RejectionKind, cause error) *Rejection {
	return &Rejection{Kind: kind, Message: rejectionMessages[kind], Cause: cause}
}

func (r *Rejection) Error() string {
	if r.Cause != nil {
		return "session rejected (" + r.Kind.String() + "): " + r.Cause.Error()
	}
	return "session rejected (" + r.Kind.String() + ")"
}

func (r *Rejection) Unwrap() error {
	return r.Cause
}
