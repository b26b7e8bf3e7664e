package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	userapp "github.com/aryasetia/playgate/internal/application"
	"github.com/aryasetia/playgate/internal/interface/middleware"
	"github.com/aryasetia/playgate/pkg/helpers"
	"github.com/aryasetia/playgate/pkg/response"
	"github.com/aryasetia/playgate/pkg/validation"
)

// UserHandler is the HTTP glue in front of the auth service: it parses
// request fields, calls the service, and attaches tokens as the session
// cookie. All decisions live in the service.
type UserHandler struct {
	Svc     *userapp.Service
	Logger  *logrus.Logger
	Cookies *helpers.CookieManager
}

func NewUserHandler(svc *userapp.Service, logger *logrus.Logger, cookieDomain string, cookieSecure bool) *UserHandler {
	return &UserHandler{Svc: svc, Logger: logger, Cookies: helpers.NewCookie(cookieDomain, cookieSecure)}
}

type registerRequest struct {
	Username string `json:"username" form:"username" binding:"required"`
	Email    string `json:"email" form:"email" binding:"required,email"`
	Password string `json:"password" form:"password" binding:"required"`
}

type loginRequest struct {
	Email    string `json:"email" form:"email" binding:"required,email"`
	Password string `json:"password" form:"password" binding:"required"`
}

type updateProfileRequest struct {
	Username string `json:"username" form:"username" binding:"required"`
	Email    string `json:"email" form:"email" binding:"required,email"`
	Password string `json:"password" form:"password"`
}

func (h *UserHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBind(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "all fields are required", validation.ToDetails(err))
		return
	}

	user, sess, err := h.Svc.Register(c.Request.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		h.fail(c, err)
		return
	}
	h.Cookies.SetSession(c, sess.Token)
	response.Success(c, http.StatusCreated, gin.H{
		"username": user.Username,
		"email":    user.Email,
	}, "registered")
}

func (h *UserHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBind(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "all fields are required", validation.ToDetails(err))
		return
	}

	sess, err := h.Svc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		h.fail(c, err)
		return
	}
	h.Cookies.SetSession(c, sess.Token)
	response.Success(c, http.StatusOK, gin.H{"expires_at": sess.ExpiresAt}, "login successful")
}

// Logout clears the session cookie. The token itself is not tracked
// server-side, so this is purely a client-side discard.
func (h *UserHandler) Logout(c *gin.Context) {
	h.Cookies.Clear(c)
	c.Redirect(http.StatusFound, "/")
}

func (h *UserHandler) GetProfile(c *gin.Context) {
	subject := c.GetString(middleware.CtxSubjectKey)
	u, err := h.Svc.GetProfile(c.Request.Context(), subject)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{
		"username": u.Username,
		"email":    u.Email,
	}, "profile")
}

func (h *UserHandler) UpdateProfile(c *gin.Context) {
	subject := c.GetString(middleware.CtxSubjectKey)
	var req updateProfileRequest
	if err := c.ShouldBind(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "username and email are required", validation.ToDetails(err))
		return
	}

	u, err := h.Svc.UpdateProfile(c.Request.Context(), subject, userapp.UpdateProfileInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{
		"username": u.Username,
		"email":    u.Email,
	}, "profile updated")
}

// Game is the protected landing page the auth flows unlock.
func (h *UserHandler) Game(c *gin.Context) {
	subject := c.GetString(middleware.CtxSubjectKey)
	response.Success(c, http.StatusOK, gin.H{"player": subject}, "welcome")
}

// fail maps service errors to HTTP statuses.
func (h *UserHandler) fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, userapp.ErrValidation):
		response.Error(c, http.StatusBadRequest, err.Error(), nil)
	case errors.Is(err, userapp.ErrEmailTaken):
		response.Error(c, http.StatusBadRequest, err.Error(), nil)
	case errors.Is(err, userapp.ErrUserNotFound):
		response.Error(c, http.StatusNotFound, err.Error(), nil)
	case errors.Is(err, userapp.ErrInvalidCredentials):
		response.Error(c, http.StatusForbidden, err.Error(), nil)
	default:
		if h.Logger != nil {
			h.Logger.WithError(err).Error("auth flow failed")
		}
		response.Error(c, http.StatusInternalServerError, "internal server error", nil)
	}
}
