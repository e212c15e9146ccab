// Package providerfake is an in-process provider.Provider for tests.
package providerfake

import (
	"context"
	"sync"

	apperrors "github.com/jrsteele09/go-google-login/internal/errors"
	"github.com/jrsteele09/go-google-login/provider"
	"golang.org/x/oauth2"
)

var _ provider.Provider = (*FakeProvider)(nil)

// FakeProvider maps codes to profiles. Unknown codes fail the exchange the
// way invalid_grant does.
type FakeProvider struct {
	mu            sync.Mutex
	profiles      map[string]provider.Profile
	UserInfoErr   error
	ExchangeCalls int
	UserInfoCalls int
}

func NewFakeProvider() *FakeProvider {
	return &FakeProvider{profiles: make(map[string]provider.Profile)}
}

// AddCode makes code exchangeable for profile.
func (f *FakeProvider) AddCode(code string, profile provider.Profile) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.profiles[code] = profile
}

func (f *FakeProvider) AuthURL() string {
	return "https://accounts.example.com/o/oauth2/auth?client_id=fake&response_type=code"
}

func (f *FakeProvider) Exchange(_ context.Context, code string) (*oauth2.Token, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ExchangeCalls++
	if code == "" {
		return nil, apperrors.ErrMissingCode
	}
	if _, ok := f.profiles[code]; !ok {
		return nil, apperrors.Wrapf(apperrors.ErrTokenExchangeFailed, "invalid_grant")
	}
	return &oauth2.Token{AccessToken: "access-" + code, TokenType: "Bearer"}, nil
}

func (f *FakeProvider) UserInfo(_ context.Context, token *oauth2.Token) (*provider.Profile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.UserInfoCalls++
	if f.UserInfoErr != nil {
		return nil, f.UserInfoErr
	}
	code := token.AccessToken[len("access-"):]
	p, ok := f.profiles[code]
	if !ok {
		return nil, apperrors.Wrapf(apperrors.ErrProfileFetchFailed, "unknown token")
	}
	return &p, nil
}

// Calls returns the exchange and user-info call counts.
func (f *FakeProvider) Calls() (exchange, userInfo int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.ExchangeCalls, f.UserInfoCalls
}
