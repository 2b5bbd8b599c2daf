// Package google exchanges Google OAuth authorization codes for user
// identity. It is the application's only contact with the external
// identity provider; sign-in UI flows live entirely on the provider side.
package google

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dealboard/dealboard-backend/internal/auth"
)

var (
	// Made variables for testing purposes
	tokenURL    = "https://oauth2.googleapis.com/token"
	userinfoURL = "https://www.googleapis.com/oauth2/v2/userinfo"
)

// Verifier exchanges Google OAuth authorization codes for user identity.
type Verifier struct {
	clientID     string
	clientSecret string
	redirectURI  string
	httpClient   *http.Client
	log          *slog.Logger
}

// NewVerifier creates a Google OAuth verifier.
func NewVerifier(clientID, clientSecret, redirectURI string, logger *slog.Logger) *Verifier {
	return &Verifier{
		clientID:     clientID,
		clientSecret: clientSecret,
		redirectURI:  redirectURI,
		httpClient:   &http.Client{Timeout: 10 * time.Second},
		log:          logger.With("adapter", "google_oauth"),
	}
}

// tokenResponse represents the response from Google's token endpoint.
type tokenResponse struct {
	AccessToken string `json:"access_token"`
	IDToken     string `json:"id_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
}

// errorResponse represents Google's error response format.
type errorResponse struct {
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description"`
}

// userinfoResponse represents the response from Google's userinfo endpoint.
type userinfoResponse struct {
	ID            string `json:"id"`
	Email         string `json:"email"`
	VerifiedEmail bool   `json:"verified_email"`
	Name          string `json:"name"`
	Picture       string `json:"picture"`
}

// VerifyCode exchanges an authorization code for user identity.
func (v *Verifier) VerifyCode(ctx context.Context, code string) (*auth.OAuthIdentity, error) {
	accessToken, err := v.exchangeCode(ctx, code)
	if err != nil {
		return nil, err
	}

	userinfo, err := v.fetchUserinfo(ctx, accessToken)
	if err != nil {
		return nil, err
	}

	if !userinfo.VerifiedEmail {
		return nil, fmt.Errorf("oauth: email not verified")
	}

	identity := &auth.OAuthIdentity{
		Email:      userinfo.Email,
		ProviderID: userinfo.ID,
	}
	if userinfo.Name != "" {
		identity.Username = &userinfo.Name
	}
	if userinfo.Picture != "" {
		identity.AvatarURL = &userinfo.Picture
	}

	v.log.DebugContext(ctx, "google oauth success", slog.String("email", userinfo.Email))

	return identity, nil
}

// exchangeCode exchanges the authorization code for an access token.
func (v *Verifier) exchangeCode(ctx context.Context, code string) (string, error) {
	data := url.Values{}
	data.Set("grant_type", "authorization_code")
	data.Set("code", code)
	data.Set("client_id", v.clientID)
	data.Set("client_secret", v.clientSecret)
	data.Set("redirect_uri", v.redirectURI)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, tokenURL, strings.NewReader(data.Encode()))
	if err != nil {
		return "", fmt.Errorf("oauth: build token request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := v.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("oauth: token exchange: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", fmt.Errorf("oauth: read token response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var errResp errorResponse
		if json.Unmarshal(body, &errResp) == nil && errResp.Error != "" {
			return "", fmt.Errorf("oauth: token exchange failed: %s (%s)", errResp.Error, errResp.ErrorDescription)
		}
		return "", fmt.Errorf("oauth: token exchange failed with status %d", resp.StatusCode)
	}

	var token tokenResponse
	if err := json.Unmarshal(body, &token); err != nil {
		return "", fmt.Errorf("oauth: decode token response: %w", err)
	}
	if token.AccessToken == "" {
		return "", fmt.Errorf("oauth: empty access token")
	}

	return token.AccessToken, nil
}

// fetchUserinfo retrieves the user's profile with the access token.
func (v *Verifier) fetchUserinfo(ctx context.Context, accessToken string) (*userinfoResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, userinfoURL, nil)
	if err != nil {
		return nil, fmt.Errorf("oauth: build userinfo request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := v.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("oauth: fetch userinfo: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("oauth: read userinfo response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("oauth: userinfo failed with status %d", resp.StatusCode)
	}

	var userinfo userinfoResponse
	if err := json.Unmarshal(body, &userinfo); err != nil {
		return nil, fmt.Errorf("oauth: decode userinfo response: %w", err)
	}
	if userinfo.ID == "" || userinfo.Email == "" {
		return nil, fmt.Errorf("oauth: incomplete userinfo")
	}

	return &userinfo, nil
}
