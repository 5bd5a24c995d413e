package utils

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailNotVerified   = errors.New("Email not verified")
)

// IdentityUser is the provider's view of an account. The document store keeps
// everything else about a user; the provider owns only credentials and email.
type IdentityUser struct {
	ID            string
	Email         string
	EmailVerified bool
}

// IdentityClient talks to a GoTrue-compatible identity provider. Sign-in
// returns an HS256 access token signed with a shared secret; the client
// verifies it and takes the subject claim as the user id.
type IdentityClient struct {
	baseURL    string
	serviceKey string
	jwtSecret  string
	http       *http.Client
}

func NewIdentityClient(baseURL, serviceKey, jwtSecret string) *IdentityClient {
	return &IdentityClient{
		baseURL:    baseURL,
		serviceKey: serviceKey,
		jwtSecret:  jwtSecret,
		http:       &http.Client{Timeout: 10 * time.Second},
	}
}

// SignUp provisions a credential and returns the new subject id. The provider
// sends its own verification email as part of the signup flow.
func (c *IdentityClient) SignUp(ctx context.Context, email, password string) (string, error) {
	body, _ := json.Marshal(map[string]string{
		"email":    email,
		"password": password,
	})

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/signup", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	c.setHeaders(req)

	resp, err := c.http.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return "", providerError(resp)
	}

	var out struct {
		ID   string `json:"id"`
		User struct {
			ID string `json:"id"`
		} `json:"user"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", err
	}
	if out.ID != "" {
		return out.ID, nil
	}
	return out.User.ID, nil
}

// SignIn exchanges credentials for an access token and verifies it.
func (c *IdentityClient) SignIn(ctx context.Context, email, password string) (*IdentityUser, error) {
	body, _ := json.Marshal(map[string]string{
		"email":    email,
		"password": password,
	})

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/token?grant_type=password", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	c.setHeaders(req)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusBadRequest || resp.StatusCode == http.StatusUnauthorized {
		return nil, ErrInvalidCredentials
	}
	if resp.StatusCode >= 300 {
		return nil, providerError(resp)
	}

	var out struct {
		AccessToken string `json:"access_token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, err
	}

	return c.verifyAccessToken(out.AccessToken)
}

// GetEmail looks up an account's email by subject id (admin endpoint).
func (c *IdentityClient) GetEmail(ctx context.Context, userID string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/admin/users/"+userID, nil)
	if err != nil {
		return "", err
	}
	c.setHeaders(req)

	resp, err := c.http.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return "", providerError(resp)
	}

	var out struct {
		Email string `json:"email"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", err
	}
	return out.Email, nil
}

// DeleteUser removes the credential (admin endpoint). Used when a secretary
// deletes an account, cascading from the user document.
func (c *IdentityClient) DeleteUser(ctx context.Context, userID string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, c.baseURL+"/admin/users/"+userID, nil)
	if err != nil {
		return err
	}
	c.setHeaders(req)

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return providerError(resp)
	}
	return nil
}

func (c *IdentityClient) verifyAccessToken(tokenString string) (*IdentityUser, error) {
	claims := jwt.MapClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(c.jwtSecret), nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidCredentials
	}

	sub, _ := claims["sub"].(string)
	if sub == "" {
		return nil, ErrInvalidCredentials
	}
	email, _ := claims["email"].(string)

	user := &IdentityUser{ID: sub, Email: email}
	if v, ok := claims["email_verified"].(bool); ok {
		user.EmailVerified = v
	}
	return user, nil
}

func (c *IdentityClient) setHeaders(req *http.Request) {
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("apikey", c.serviceKey)
	req.Header.Set("Authorization", "Bearer "+c.serviceKey)
}

func providerError(resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))

	var out struct {
		Msg     string `json:"msg"`
		Message string `json:"message"`
		Error   string `json:"error_description"`
	}
	if err := json.Unmarshal(body, &out); err == nil {
		for _, m := range []string{out.Msg, out.Message, out.Error} {
			if m != "" {
				return errors.New(m)
			}
		}
	}
	return fmt.Errorf("identity provider returned %d", resp.StatusCode)
}
