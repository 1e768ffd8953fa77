package handler

import (
	"context"
	crand "crypto/rand"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"qrmenu/config"
	"qrmenu/internal/domain"
	"qrmenu/internal/models"
	"qrmenu/internal/service"

	"github.com/gin-gonic/gin"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

// GoogleUserStore is the slice of the user repository the Google flow
// needs to resolve and link accounts.
type GoogleUserStore interface {
	GetByGoogleID(googleID string) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	Create(*models.User) error
	Save(*models.User) error
}

// GoogleOAuthHandler links Google accounts to users. Phone/OTP remains the
// primary login; Google sign-in is a convenience for returning customers.
type GoogleOAuthHandler struct {
	oauth    *oauth2.Config
	users    GoogleUserStore
	auth     *service.AuthService
	frontend string
}

func NewGoogleOAuthHandler(cfg *config.Config, users GoogleUserStore, auth *service.AuthService) *GoogleOAuthHandler {
	return &GoogleOAuthHandler{
		oauth: &oauth2.Config{
			ClientID:     cfg.OAuth.GoogleClientID,
			ClientSecret: cfg.OAuth.GoogleClientSecret,
			RedirectURL:  cfg.OAuth.GoogleRedirectURL,
			Scopes:       []string{"openid", "email", "profile"},
			Endpoint:     google.Endpoint,
		},
		users:    users,
		auth:     auth,
		frontend: cfg.Server.CORSOrigins[0],
	}
}

const oauthStateCookie = "oauth_state"

// Redirect starts the authorization code flow.
func (h *GoogleOAuthHandler) Redirect(c *gin.Context) {
	state, err := randomState()
	if err != nil {
		fail(c, fmt.Errorf("%w: generate oauth state: %v", domain.ErrInternal, err))
		return
	}
	c.SetCookie(oauthStateCookie, state, int(10*time.Minute.Seconds()), "/", "", false, true)
	c.Redirect(http.StatusTemporaryRedirect, h.oauth.AuthCodeURL(state))
}

type googleUserInfo struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// Callback exchanges the code, resolves or creates the local user, and
// hands a token back to the frontend via the redirect fragment.
func (h *GoogleOAuthHandler) Callback(c *gin.Context) {
	state, err := c.Cookie(oauthStateCookie)
	if err != nil || state == "" || c.Query("state") != state {
		fail(c, fmt.Errorf("%w: oauth state mismatch", domain.ErrAuthentication))
		return
	}
	code := c.Query("code")
	if code == "" {
		fail(c, fmt.Errorf("%w: missing authorization code", domain.ErrValidation))
		return
	}

	token, err := h.oauth.Exchange(c.Request.Context(), code)
	if err != nil {
		fail(c, fmt.Errorf("%w: exchange authorization code: %v", domain.ErrUpstream, err))
		return
	}
	info, err := h.fetchUserInfo(c.Request.Context(), token)
	if err != nil {
		fail(c, fmt.Errorf("%w: fetch google profile: %v", domain.ErrUpstream, err))
		return
	}

	user, err := h.resolveUser(info)
	if err != nil {
		fail(c, err)
		return
	}
	jwt, err := h.auth.IssueToken(user)
	if err != nil {
		fail(c, err)
		return
	}
	c.Redirect(http.StatusTemporaryRedirect, fmt.Sprintf("%s/auth/callback#token=%s", h.frontend, jwt))
}

func (h *GoogleOAuthHandler) fetchUserInfo(ctx context.Context, token *oauth2.Token) (*googleUserInfo, error) {
	client := h.oauth.Client(ctx, token)
	resp, err := client.Get("https://www.googleapis.com/oauth2/v2/userinfo")
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("userinfo status %d", resp.StatusCode)
	}
	var info googleUserInfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return nil, err
	}
	return &info, nil
}

// resolveUser finds the account by Google id, then by email (linking the
// Google id on match), and finally creates a new customer. Accounts created
// this way carry a NULL phone number until the profile is completed, so
// they never trip the unique phone index.
func (h *GoogleOAuthHandler) resolveUser(info *googleUserInfo) (*models.User, error) {
	user, err := h.users.GetByGoogleID(info.ID)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("load user: %w", err)
	}

	if info.Email != "" {
		user, err = h.users.GetByEmail(info.Email)
		if err == nil {
			user.GoogleID = &info.ID
			if err := h.users.Save(user); err != nil {
				return nil, fmt.Errorf("link google account: %w", err)
			}
			return user, nil
		}
		if !errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("load user: %w", err)
		}
	}

	user = &models.User{
		Name:     info.Name,
		GoogleID: &info.ID,
		Role:     domain.RoleCustomer,
	}
	if info.Email != "" {
		user.Email = &info.Email
	}
	if err := h.users.Create(user); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}

func randomState() (string, error) {
	b := make([]byte, 24)
	if _, err := crand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
