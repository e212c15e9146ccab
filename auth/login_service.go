// Package auth runs the server side of the Google login: it turns an
// authorization code into a stored user record.
package auth

import (
	"context"
	"errors"
	"time"

	apperrors "github.com/jrsteele09/go-google-login/internal/errors"
	"github.com/jrsteele09/go-google-login/internal/telemetry"
	"github.com/jrsteele09/go-google-login/provider"
	"github.com/jrsteele09/go-google-login/users"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/jrsteele09/go-google-login/auth"

// LoginService exchanges authorization codes, fetches profiles and keeps the
// user store in step with the provider.
type LoginService struct {
	provider provider.Provider
	users    users.Repo
	nowTime  func() time.Time
	tracer   trace.Tracer
}

// LoginServiceOption defines a function type to modify the LoginService instance.
type LoginServiceOption func(*LoginService)

// WithNowTime sets the now time function (primarily for testing)
func WithNowTime(nowFunc func() time.Time) LoginServiceOption {
	return func(ls *LoginService) {
		ls.nowTime = nowFunc
	}
}

// NewLoginService initializes a LoginService with its required dependencies.
func NewLoginService(p provider.Provider, userRepo users.Repo, options ...LoginServiceOption) (*LoginService, error) {
	if p == nil {
		return nil, errors.New("[NewLoginService] provider is required")
	}
	if userRepo == nil {
		return nil, errors.New("[NewLoginService] users repo is required")
	}

	ls := &LoginService{
		provider: p,
		users:    userRepo,
		nowTime:  time.Now,
		tracer:   telemetry.Tracer(tracerName),
	}
	for _, opt := range options {
		opt(ls)
	}
	return ls, nil
}

// AuthURL is the consent page the browser is redirected to.
func (ls *LoginService) AuthURL() string {
	return ls.provider.AuthURL()
}

// CompleteLogin handles the callback: exchange, profile fetch, upsert.
// The returned user is what was stored.
func (ls *LoginService) CompleteLogin(ctx context.Context, code string) (*users.User, error) {
	ctx, span := ls.tracer.Start(ctx, "auth.CompleteLogin")
	defer span.End()

	user, err := ls.login(ctx, code)
	return user, recordSpan(span, user, err)
}

// ExchangeCode is the stateless variant used by the JSON API. It stores the
// user like CompleteLogin but the caller does not start a session.
func (ls *LoginService) ExchangeCode(ctx context.Context, code string) (*users.User, error) {
	ctx, span := ls.tracer.Start(ctx, "auth.ExchangeCode")
	defer span.End()

	user, err := ls.login(ctx, code)
	return user, recordSpan(span, user, err)
}

// Profile reads the stored record for a session's user.
func (ls *LoginService) Profile(ctx context.Context, userID string) (*users.User, error) {
	ctx, span := ls.tracer.Start(ctx, "auth.Profile")
	defer span.End()

	user, err := ls.users.Get(ctx, userID)
	if err != nil && !apperrors.Is(err, apperrors.ErrUserRecordNotFound) {
		err = apperrors.Join(apperrors.ErrUserStoreFailed, err)
	}
	return user, recordSpan(span, user, err)
}

func (ls *LoginService) login(ctx context.Context, code string) (*users.User, error) {
	if code == "" {
		return nil, apperrors.ErrMissingCode
	}

	token, err := ls.provider.Exchange(ctx, code)
	if err != nil {
		if apperrors.Is(err, apperrors.ErrMissingCode) || apperrors.Is(err, apperrors.ErrTokenExchangeFailed) {
			return nil, err
		}
		return nil, apperrors.Join(apperrors.ErrTokenExchangeFailed, err)
	}

	profile, err := ls.provider.UserInfo(ctx, token)
	if err != nil {
		if apperrors.Is(err, apperrors.ErrProfileFetchFailed) {
			return nil, err
		}
		return nil, apperrors.Join(apperrors.ErrProfileFetchFailed, err)
	}
	if profile == nil || profile.Subject == "" {
		return nil, apperrors.Wrapf(apperrors.ErrProfileFetchFailed, "profile has no subject")
	}

	user := userFromProfile(profile, ls.nowTime())
	if err := ls.users.Upsert(ctx, user); err != nil {
		return nil, apperrors.Join(apperrors.ErrUserStoreFailed, err)
	}
	return user, nil
}

func userFromProfile(p *provider.Profile, now time.Time) *users.User {
	return &users.User{
		ID:          p.Subject,
		DisplayName: p.Name,
		Email:       p.Email,
		AvatarURL:   p.Picture,
		UpdatedAt:   now.UTC(),
	}
}

func recordSpan(span trace.Span, user *users.User, err error) error {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, apperrors.PublicCode(err))
		return err
	}
	if user != nil {
		span.SetAttributes(attribute.String("user.id", user.ID))
	}
	return nil
}
