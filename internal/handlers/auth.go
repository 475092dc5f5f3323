package handlers

import (
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"youngchai/internal/config"
	"youngchai/internal/services"

	"github.com/gin-gonic/gin"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/github"
)

// AuthHandler runs the OAuth login relay for the comments dashboard. The
// dashboard page itself lives in the static site; this endpoint only turns
// a GitHub authorization code into a bearer token for an allow-listed user
// and hands it back via redirect.
type AuthHandler struct {
	oauthConfig *oauth2.Config
	verifier    *services.IdentityVerifier
	apiURL      string
	siteURL     string
	client      *http.Client
}

func NewAuthHandler(cfg *config.Config, verifier *services.IdentityVerifier) *AuthHandler {
	return &AuthHandler{
		oauthConfig: &oauth2.Config{
			ClientID:     cfg.GitHubClientID,
			ClientSecret: cfg.GitHubClientSecret,
			RedirectURL:  cfg.SiteURL + "/auth/admin",
			Scopes:       []string{"read:user"},
			Endpoint:     github.Endpoint,
		},
		verifier: verifier,
		apiURL:   cfg.GitHubAPIURL,
		siteURL:  cfg.SiteURL,
		client:   &http.Client{Timeout: 10 * time.Second},
	}
}

type githubUser struct {
	Login     string `json:"login"`
	AvatarURL string `json:"avatar_url"`
	Name      string `json:"name"`
}

// generateStateToken builds the random state carried through the OAuth
// round-trip.
func generateStateToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.URLEncoding.EncodeToString(b), nil
}

// AdminLogin handles GET /auth/admin. Without a code it starts the OAuth
// dance; with one it exchanges the code, applies the allow-list and
// redirects back to the dashboard with either the token or an error.
func (h *AuthHandler) AdminLogin(c *gin.Context) {
	code := c.Query("code")
	if code == "" {
		state, err := generateStateToken()
		if err != nil {
			JSONError(c, http.StatusInternalServerError, "Failed to generate state token")
			return
		}
		c.Redirect(http.StatusFound, h.oauthConfig.AuthCodeURL(state))
		return
	}

	token, err := h.oauthConfig.Exchange(c.Request.Context(), code)
	if err != nil {
		h.redirectError(c, "OAuth token exchange failed")
		return
	}

	user, err := h.getUserInfo(token.AccessToken)
	if err != nil {
		h.redirectError(c, "Failed to fetch user information")
		return
	}

	if err := h.verifier.Authorize(user.Login); err != nil {
		h.redirectError(c, fmt.Sprintf("Access denied for @%s. You are not authorized.", user.Login))
		return
	}

	userInfo, _ := json.Marshal(user)
	c.Redirect(http.StatusFound, fmt.Sprintf("%s/admin/comments/?token=%s&user=%s",
		h.siteURL, url.QueryEscape(token.AccessToken), url.QueryEscape(string(userInfo))))
}

func (h *AuthHandler) redirectError(c *gin.Context, message string) {
	c.Redirect(http.StatusFound, h.siteURL+"/admin/comments/?error="+url.QueryEscape(message))
}

// getUserInfo fetches the authenticated user's profile for the dashboard
// header.
func (h *AuthHandler) getUserInfo(accessToken string) (*githubUser, error) {
	req, err := http.NewRequest("GET", h.apiURL+"/user", nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "YoungChai-Admin")

	resp, err := h.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to fetch user info: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	var user githubUser
	if err := json.Unmarshal(body, &user); err != nil {
		return nil, err
	}
	return &user, nil
}
