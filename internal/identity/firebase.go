package identity

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
	"github.com/chorok-lab/carbon-exchange/internal/model"
)

const signInEndpoint = "https://identitytoolkit.googleapis.com/v1/accounts:signInWithPassword"

// FirebaseProvider backs the identity contract with Firebase Auth: user
// creation and token verification go through the Admin SDK, password sign-in
// through the Identity Toolkit REST API (the Admin SDK has no password check).
type FirebaseProvider struct {
	client    *auth.Client
	webAPIKey string
	http      *http.Client
}

func NewFirebaseProvider(ctx context.Context, projectID, webAPIKey string) (*FirebaseProvider, error) {
	app, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: projectID})
	if err != nil {
		return nil, err
	}
	client, err := app.Auth(ctx)
	if err != nil {
		return nil, err
	}
	return &FirebaseProvider{
		client:    client,
		webAPIKey: webAPIKey,
		http:      &http.Client{Timeout: 10 * time.Second},
	}, nil
}

func (p *FirebaseProvider) SignUp(ctx context.Context, email, password, name string, role model.Role) (string, error) {
	params := (&auth.UserToCreate{}).
		Email(email).
		Password(password).
		DisplayName(name)
	user, err := p.client.CreateUser(ctx, params)
	if err != nil {
		if auth.IsEmailAlreadyExists(err) {
			return "", ErrEmailTaken
		}
		return "", fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return user.UID, nil
}

func (p *FirebaseProvider) SignIn(ctx context.Context, email, password string) (string, error) {
	body, err := json.Marshal(map[string]any{
		"email":             email,
		"password":          password,
		"returnSecureToken": true,
	})
	if err != nil {
		return "", err
	}
	url := fmt.Sprintf("%s?key=%s", signInEndpoint, p.webAPIKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := p.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode == http.StatusBadRequest {
		return "", ErrInvalidCredentials
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: sign-in returned %d", ErrUnavailable, resp.StatusCode)
	}
	var out struct {
		IDToken string `json:"idToken"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return out.IDToken, nil
}

func (p *FirebaseProvider) Verify(ctx context.Context, token string) (string, error) {
	// checked-revoked variant so tokens die with SignOut's
	// RevokeRefreshTokens, not at natural expiry
	t, err := p.client.VerifyIDTokenAndCheckRevoked(ctx, token)
	if err != nil {
		return "", ErrInvalidToken
	}
	return t.UID, nil
}

func (p *FirebaseProvider) SignOut(ctx context.Context, uid string) error {
	if err := p.client.RevokeRefreshTokens(ctx, uid); err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return nil
}
