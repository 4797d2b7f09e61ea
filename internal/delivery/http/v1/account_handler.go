package v1

import (
	"net/http"
	"time"

	"job-board-backend/internal/delivery/http/middleware"
	"job-board-backend/internal/delivery/http/response"
	"job-board-backend/internal/domain"
	"job-board-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

// SessionCookie controls the auth_token cookie set next to every issued token.
type SessionCookie struct {
	TTL    time.Duration
	Secure bool
}

// AccountHandler serves registration and sign-in for one role. The same
// handler is mounted under /seekers and /employers.
type AccountHandler struct {
	role      domain.Role
	accountUC domain.AccountUsecase
	cookie    SessionCookie
}

// NewAccountHandler registers the auth routes of one role on group. Every
// route goes through limit, the strict auth rate limiter.
func NewAccountHandler(group *gin.RouterGroup, limit gin.HandlerFunc, role domain.Role, accountUC domain.AccountUsecase, cookie SessionCookie) {
	handler := &AccountHandler{role: role, accountUC: accountUC, cookie: cookie}

	auth := group.Group("", limit)
	{
		auth.POST("/register", handler.Register)
		auth.POST("/verify-otp", handler.VerifyOTP)
		auth.POST("/resend-otp", handler.ResendOTP)
		auth.POST("/login", handler.Login)
		auth.POST("/google", handler.Google)
		auth.POST("/google/complete", handler.CompleteGoogle)
	}
}

// setSession hands the token to browser clients as an HttpOnly cookie. Those
// clients then go through the CSRF check on writes.
func (h *AccountHandler) setSession(c *gin.Context, token string) {
	if token == "" {
		return
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.AuthCookieName, token, int(h.cookie.TTL.Seconds()), "/", "", h.cookie.Secure, true)
}

type VerifyOTPRequest struct {
	Email string `json:"email"`
	OTP   string `json:"otp"`
}

type ResendOTPRequest struct {
	Email string `json:"email"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type GoogleRequest struct {
	IDToken string `json:"idToken"`
}

// Register godoc
// @Summary      Register an account
// @Description  Creates an unverified account and emails a six digit code. Mounted as /seekers/register and /employers/register.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        role  path      string               true  "seekers or employers"
// @Param        body  body      domain.RegisterInput true  "Registration data"
// @Success      201   {object}  response.Response{data=domain.Account}
// @Failure      400   {object}  response.Response
// @Failure      409   {object}  response.Response
// @Failure      502   {object}  response.Response
// @Router       /{role}/register [post]
func (h *AccountHandler) Register(c *gin.Context) {
	var req domain.RegisterInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest("Invalid request body"))
		return
	}

	account, err := h.accountUC.Register(c.Request.Context(), req)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusCreated, "Registration successful. Check your email for the verification code.", account)
}

// VerifyOTP godoc
// @Summary      Verify registration code
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        role  path      string            true  "seekers or employers"
// @Param        body  body      VerifyOTPRequest  true  "Email and code"
// @Success      200   {object}  response.Response{data=domain.AuthResult}
// @Failure      400   {object}  response.Response
// @Failure      404   {object}  response.Response
// @Router       /{role}/verify-otp [post]
func (h *AccountHandler) VerifyOTP(c *gin.Context) {
	var req VerifyOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest("Invalid request body"))
		return
	}

	result, err := h.accountUC.VerifyRegistration(c.Request.Context(), req.Email, req.OTP)
	if err != nil {
		c.Error(err)
		return
	}
	h.setSession(c, result.Token)

	response.Success(c, http.StatusOK, "Account verified", result)
}

// ResendOTP godoc
// @Summary      Resend verification code
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        role  path      string            true  "seekers or employers"
// @Param        body  body      ResendOTPRequest  true  "Email"
// @Success      200   {object}  response.Response
// @Failure      404   {object}  response.Response
// @Failure      409   {object}  response.Response
// @Router       /{role}/resend-otp [post]
func (h *AccountHandler) ResendOTP(c *gin.Context) {
	var req ResendOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest("Invalid request body"))
		return
	}

	if err := h.accountUC.ResendOTP(c.Request.Context(), req.Email); err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Verification code sent", nil)
}

// Login godoc
// @Summary      Log in with email and password
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        role  path      string        true  "seekers or employers"
// @Param        body  body      LoginRequest  true  "Credentials"
// @Success      200   {object}  response.Response{data=domain.AuthResult}
// @Failure      401   {object}  response.Response
// @Failure      403   {object}  response.Response
// @Failure      429   {object}  response.Response
// @Router       /{role}/login [post]
func (h *AccountHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest("Invalid request body"))
		return
	}

	result, err := h.accountUC.Login(c.Request.Context(), req.Email, req.Password, c.ClientIP())
	if err != nil {
		c.Error(err)
		return
	}
	h.setSession(c, result.Token)

	response.Success(c, http.StatusOK, "Login successful", result)
}

// Google godoc
// @Summary      Continue with Google
// @Description  Signs in an existing Google account, or returns the verified profile when the account still has to be completed.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        role  path      string         true  "seekers or employers"
// @Param        body  body      GoogleRequest  true  "Google ID token"
// @Success      200   {object}  response.Response{data=domain.OAuthResult}
// @Failure      401   {object}  response.Response
// @Failure      409   {object}  response.Response
// @Router       /{role}/google [post]
func (h *AccountHandler) Google(c *gin.Context) {
	var req GoogleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest("Invalid request body"))
		return
	}

	result, err := h.accountUC.ContinueWithGoogle(c.Request.Context(), req.IDToken)
	if err != nil {
		c.Error(err)
		return
	}

	if result.NeedsProfileCompletion {
		response.Success(c, http.StatusOK, "Profile completion required", result)
		return
	}
	h.setSession(c, result.Token)
	response.Success(c, http.StatusOK, "Login successful", result)
}

// CompleteGoogle godoc
// @Summary      Complete a Google registration
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        role  path      string                        true  "seekers or employers"
// @Param        body  body      domain.GoogleCompletionInput  true  "ID token and missing profile fields"
// @Success      201   {object}  response.Response{data=domain.AuthResult}
// @Failure      400   {object}  response.Response
// @Failure      409   {object}  response.Response
// @Router       /{role}/google/complete [post]
func (h *AccountHandler) CompleteGoogle(c *gin.Context) {
	var req domain.GoogleCompletionInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest("Invalid request body"))
		return
	}

	result, err := h.accountUC.CompleteGoogleRegistration(c.Request.Context(), req)
	if err != nil {
		c.Error(err)
		return
	}
	h.setSession(c, result.Token)

	response.Success(c, http.StatusCreated, "Account created", result)
}
