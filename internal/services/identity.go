package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"youngchai/internal/utils"
)

var (
	// ErrMissingCredential reports an absent or malformed bearer header.
	ErrMissingCredential = errors.New("missing credential")
	// ErrInvalidCredential reports a credential the provider rejected.
	ErrInvalidCredential = errors.New("invalid credential")
	// ErrProviderUnavailable reports a network failure or 5xx from the
	// identity provider.
	ErrProviderUnavailable = errors.New("identity provider unavailable")
)

// NotAuthorizedError reports a verified identity that is not on the
// allow-list.
type NotAuthorizedError struct {
	Username string
}

func (e *NotAuthorizedError) Error() string {
	return fmt.Sprintf("user %s is not authorized", e.Username)
}

// identityCacheTTL bounds how long a verified token→username pair is
// reused before the provider is asked again.
const identityCacheTTL = 60 * time.Second

// IdentityVerifier exchanges a bearer credential for a verified username
// via the provider's "who am I" endpoint and checks it against the
// configured allow-list. An empty allow-list accepts any verified
// identity; that permissive default is deliberate.
type IdentityVerifier struct {
	apiURL       string
	allowedUsers []string
	client       *http.Client
	cache        *utils.TTLCache
}

func NewIdentityVerifier(apiURL string, allowedUsers []string) *IdentityVerifier {
	cache, err := utils.NewTTLCache(128)
	if err != nil {
		// lru.New only fails on a non-positive size
		log.Fatalf("Failed to create identity cache: %v", err)
	}
	return &IdentityVerifier{
		apiURL:       apiURL,
		allowedUsers: allowedUsers,
		client:       &http.Client{Timeout: 10 * time.Second},
		cache:        cache,
	}
}

type providerUser struct {
	Login string `json:"login"`
}

// Verify resolves the credential to a username and applies the
// allow-list. The allow-list check runs on every call, cached identity or
// not.
func (v *IdentityVerifier) Verify(token string) (string, error) {
	if token == "" {
		return "", ErrMissingCredential
	}

	username, err := v.whoAmI(token)
	if err != nil {
		return "", err
	}

	if err := v.Authorize(username); err != nil {
		return "", err
	}
	return username, nil
}

// Authorize applies the allow-list to an already verified username,
// case-insensitively. A non-empty list without the user is a refusal; an
// empty list lets any verified identity through.
func (v *IdentityVerifier) Authorize(username string) error {
	if len(v.allowedUsers) == 0 {
		return nil
	}
	for _, u := range v.allowedUsers {
		if strings.EqualFold(u, username) {
			return nil
		}
	}
	log.Printf("Admin access denied for user: %s", username)
	return &NotAuthorizedError{Username: username}
}

// whoAmI asks the provider which user the token belongs to, with a short
// per-process cache in front so a burst of moderation actions costs one
// provider round-trip, not one per click.
func (v *IdentityVerifier) whoAmI(token string) (string, error) {
	if cached := v.cache.Get(token); cached != nil {
		return cached.(string), nil
	}

	req, err := http.NewRequest("GET", v.apiURL+"/user", nil)
	if err != nil {
		return "", fmt.Errorf("failed to build provider request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "YoungChai-Admin")

	resp, err := v.client.Do(req)
	if err != nil {
		log.Printf("Identity provider request failed: %v", err)
		return "", ErrProviderUnavailable
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode >= 500:
		return "", ErrProviderUnavailable
	case resp.StatusCode != http.StatusOK:
		return "", ErrInvalidCredential
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", ErrProviderUnavailable
	}

	var user providerUser
	if err := json.Unmarshal(body, &user); err != nil || user.Login == "" {
		return "", ErrInvalidCredential
	}

	v.cache.Set(token, user.Login, identityCacheTTL)
	return user.Login, nil
}
