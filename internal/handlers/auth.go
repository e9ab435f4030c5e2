package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/avaldezm/task-tracker/internal/constants"
	apierrors "github.com/avaldezm/task-tracker/internal/errors"
	"github.com/avaldezm/task-tracker/internal/oauth"
	"github.com/avaldezm/task-tracker/internal/services"
	"github.com/avaldezm/task-tracker/internal/utils"
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

// AuthHandler coordinates registration, login and the OAuth handshake.
type AuthHandler struct {
	authService *services.AuthService
	providers   oauth.Registry
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *services.AuthService, providers oauth.Registry) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		providers:   providers,
	}
}

// ShowRegister renders the registration form.
func (h *AuthHandler) ShowRegister(c *gin.Context) {
	c.HTML(http.StatusOK, "register.html", gin.H{})
}

// Register creates a new account from the registration form.
func (h *AuthHandler) Register(c *gin.Context) {
	_, err := h.authService.Register(services.RegisterInput{
		Username: c.PostForm("username"),
		Email:    c.PostForm("email"),
		Password: c.PostForm("password"),
	})
	if err != nil {
		switch {
		case errors.Is(err, services.ErrFieldsRequired), errors.Is(err, services.ErrUserExists):
			c.HTML(http.StatusBadRequest, "register.html", gin.H{"error": err.Error()})
		default:
			c.HTML(http.StatusInternalServerError, "register.html", gin.H{"error": "Registration failed, please try again"})
		}
		return
	}

	c.Redirect(http.StatusFound, "/login")
}

// ShowLogin renders the login form.
func (h *AuthHandler) ShowLogin(c *gin.Context) {
	c.HTML(http.StatusOK, "login.html", gin.H{"error": c.Query("error")})
}

// Login authenticates a user and initializes the session. Invalid
// credentials re-render the form with a 400 and no hint about which field
// was wrong.
func (h *AuthHandler) Login(c *gin.Context) {
	user, err := h.authService.Login(services.LoginInput{
		Username: c.PostForm("username"),
		Password: c.PostForm("password"),
	})
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			c.HTML(http.StatusBadRequest, "login.html", gin.H{"error": "Invalid username or password"})
			return
		}
		c.HTML(http.StatusInternalServerError, "login.html", gin.H{"error": "Login failed, please try again"})
		return
	}

	if err := h.establishSession(c, user.ID); err != nil {
		c.HTML(http.StatusInternalServerError, "login.html", gin.H{"error": "Failed to save session"})
		return
	}

	c.Redirect(http.StatusFound, "/tasks/")
}

// Logout removes the authentication session and returns to the login page.
func (h *AuthHandler) Logout(c *gin.Context) {
	session := sessions.Default(c)
	session.Clear()
	if err := session.Save(); err != nil {
		apierrors.InternalError(c, "Failed to logout")
		return
	}

	c.Redirect(http.StatusFound, "/login")
}

// OAuthLogin begins the authorization flow for the named provider.
func (h *AuthHandler) OAuthLogin(c *gin.Context) {
	provider, ok := h.providers.Lookup(c.Param("provider"))
	if !ok {
		apierrors.NotFound(c, "Unknown login provider")
		return
	}

	state, err := utils.RandomToken(24)
	if err != nil {
		apierrors.InternalError(c, "")
		return
	}

	session := sessions.Default(c)
	session.Set(constants.SessionKeyOAuthState, state)

	nonce := ""
	if provider.SupportsNonce() {
		nonce, err = utils.RandomToken(24)
		if err != nil {
			apierrors.InternalError(c, "")
			return
		}
		session.Set(constants.SessionKeyOAuthNonce, nonce)
	}

	if err := session.Save(); err != nil {
		apierrors.InternalError(c, "Failed to save session")
		return
	}

	c.Redirect(http.StatusFound, provider.AuthCodeURL(state, nonce))
}

// OAuthCallback completes the authorization flow: verifies state, exchanges
// the code, fetches the profile and bridges it to a local account. Any
// provider failure returns to the login page without a session.
func (h *AuthHandler) OAuthCallback(c *gin.Context) {
	provider, ok := h.providers.Lookup(c.Param("provider"))
	if !ok {
		apierrors.NotFound(c, "Unknown login provider")
		return
	}

	session := sessions.Default(c)
	expectedState, _ := session.Get(constants.SessionKeyOAuthState).(string)
	session.Delete(constants.SessionKeyOAuthState)
	session.Delete(constants.SessionKeyOAuthNonce)

	if errParam := c.Query("error"); errParam != "" {
		log.Printf("OAuth %s returned error: %s", provider.Name(), errParam)
		h.failOAuth(c, session)
		return
	}

	state := c.Query("state")
	if expectedState == "" || state != expectedState {
		log.Printf("OAuth %s state mismatch", provider.Name())
		h.failOAuth(c, session)
		return
	}

	code := c.Query("code")
	if code == "" {
		h.failOAuth(c, session)
		return
	}

	token, err := provider.Exchange(c.Request.Context(), code)
	if err != nil {
		log.Printf("OAuth %s exchange failed: %v", provider.Name(), err)
		h.failOAuth(c, session)
		return
	}

	profile, err := provider.FetchProfile(c.Request.Context(), token)
	if err != nil {
		log.Printf("OAuth %s profile fetch failed: %v", provider.Name(), err)
		h.failOAuth(c, session)
		return
	}

	user, err := h.authService.EnsureOAuthUser(profile.Email)
	if err != nil {
		log.Printf("OAuth %s account bridge failed: %v", provider.Name(), err)
		h.failOAuth(c, session)
		return
	}

	if err := h.establishSession(c, user.ID); err != nil {
		h.failOAuth(c, session)
		return
	}

	c.Redirect(http.StatusFound, "/tasks/")
}

func (h *AuthHandler) establishSession(c *gin.Context, userID uint64) error {
	session := sessions.Default(c)
	session.Set(constants.ContextKeyUserID, userID)
	return session.Save()
}

// failOAuth persists the cleared flow state and returns to the login page.
func (h *AuthHandler) failOAuth(c *gin.Context, session sessions.Session) {
	if err := session.Save(); err != nil {
		log.Printf("failed to save session: %v", err)
	}
	c.Redirect(http.StatusFound, "/login?error=oauth_failed")
}
