package provider

import (
	"context"
	"fmt"
	"net/http"

	apperrors "github.com/jrsteele09/go-google-login/internal/errors"
	"golang.org/x/oauth2"
)

// oauthClient holds the parts shared by every provider: the consent URL and
// the code exchange.
type oauthClient struct {
	cfg    Config
	config oauth2.Config
	http   *http.Client
}

func newOAuthClient(cfg Config, endpoint oauth2.Endpoint) oauthClient {
	// client_id and client_secret always travel in the form body
	endpoint.AuthStyle = oauth2.AuthStyleInParams
	return oauthClient{
		cfg: cfg,
		config: oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURI,
			Scopes:       cfg.Scopes,
			Endpoint:     endpoint,
		},
		http: cfg.httpClient(),
	}
}

func (c oauthClient) authURL() string {
	var opts []oauth2.AuthCodeOption
	if c.cfg.Prompt != "" {
		opts = append(opts, oauth2.SetAuthURLParam("prompt", c.cfg.Prompt))
	}
	return c.config.AuthCodeURL("", opts...)
}

func (c oauthClient) withHTTPClient(ctx context.Context) context.Context {
	return context.WithValue(ctx, oauth2.HTTPClient, c.http)
}

func (c oauthClient) exchange(ctx context.Context, code string) (*oauth2.Token, error) {
	if code == "" {
		return nil, apperrors.ErrMissingCode
	}

	ctx, cancel := context.WithTimeout(ctx, c.cfg.timeout())
	defer cancel()

	token, err := c.config.Exchange(c.withHTTPClient(ctx), code)
	if err != nil {
		var rErr *oauth2.RetrieveError
		if apperrors.As(err, &rErr) && rErr.ErrorCode != "" {
			return nil, apperrors.Join(apperrors.ErrTokenExchangeFailed, fmt.Errorf("provider error %q", rErr.ErrorCode))
		}
		return nil, apperrors.Join(apperrors.ErrTokenExchangeFailed, err)
	}
	if token.AccessToken == "" {
		return nil, apperrors.Wrapf(apperrors.ErrTokenExchangeFailed, "no access token")
	}
	return token, nil
}
