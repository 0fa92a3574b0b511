package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/oakhaven/prepschool/internal/app/models/dto"
	"github.com/oakhaven/prepschool/internal/app/services"
	"github.com/oakhaven/prepschool/internal/middleware"
	"github.com/oakhaven/prepschool/internal/pkg/apperrors"
	"github.com/oakhaven/prepschool/internal/pkg/auth"
)

// AuthController handles staff authentication endpoints
type AuthController struct {
	authService   *services.AuthService
	jwtService    *auth.JWTService
	secureCookies bool
	logger        zerolog.Logger
}

// NewAuthController creates a new AuthController
func NewAuthController(authService *services.AuthService, jwtService *auth.JWTService, secureCookies bool, logger zerolog.Logger) *AuthController {
	return &AuthController{
		authService:   authService,
		jwtService:    jwtService,
		secureCookies: secureCookies,
		logger:        logger,
	}
}

// Login authenticates a staff member and sets the session cookie
// @Summary Staff login
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.StaffLoginRequest true "Credentials"
// @Success 200 {object} dto.APIResponse{data=dto.StaffAuthResponse}
// @Failure 401 {object} dto.APIResponse "Invalid credentials"
// @Router /auth/login [post]
func (c *AuthController) Login(ctx *gin.Context) {
	var req dto.StaffLoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.BindingErrorMessage(err)))
		return
	}

	user, token, err := c.authService.Login(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.setSessionCookie(ctx, token)
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.StaffAuthResponse{Token: token, User: user}))
}

// Logout expires the staff session cookie
// @Summary Staff logout
// @Tags auth
// @Produce json
// @Success 200 {object} dto.APIResponse
// @Router /auth/logout [get]
func (c *AuthController) Logout(ctx *gin.Context) {
	ctx.SetCookie(auth.StaffCookieName, "", -1, "/", "", c.secureCookies, true)
	ctx.JSON(http.StatusOK, dto.NewMessageResponse("Logged out"))
}

// Me returns the authenticated staff member's own record
// @Summary Current staff member
// @Tags auth
// @Produce json
// @Success 200 {object} dto.APIResponse{data=models.StaffUser}
// @Failure 401 {object} dto.APIResponse "Unauthenticated"
// @Router /auth/me [get]
func (c *AuthController) Me(ctx *gin.Context) {
	user := middleware.StaffUserFromContext(ctx)
	if user == nil {
		middleware.HandleAPIError(ctx, apperrors.ErrTokenMissing)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(user))
}

// Register creates the bootstrap staff account. Unauthenticated by design,
// but refused once any staff account exists.
// @Summary Bootstrap first staff account
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.RegisterStaffRequest true "Account fields"
// @Success 201 {object} dto.APIResponse{data=dto.StaffAuthResponse}
// @Failure 403 {object} dto.APIResponse "Staff accounts already exist"
// @Router /auth/register [post]
func (c *AuthController) Register(ctx *gin.Context) {
	var req dto.RegisterStaffRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.BindingErrorMessage(err)))
		return
	}

	user, token, err := c.authService.Bootstrap(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.setSessionCookie(ctx, token)
	c.logger.Info().Str("email", user.Email).Msg("Bootstrap staff account created")
	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(dto.StaffAuthResponse{Token: token, User: user}))
}

// CreateStaff lets an admin provision a new staff account
// @Summary Create a staff account
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.RegisterStaffRequest true "Account fields"
// @Success 201 {object} dto.APIResponse{data=models.StaffUser}
// @Failure 400 {object} dto.APIResponse "Email taken or unknown role"
// @Failure 403 {object} dto.APIResponse "Admin role required"
// @Router /auth/create-staff [post]
func (c *AuthController) CreateStaff(ctx *gin.Context) {
	var req dto.RegisterStaffRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.BindingErrorMessage(err)))
		return
	}

	user, err := c.authService.CreateStaff(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.logger.Info().Str("email", user.Email).Str("role", string(user.Role)).Msg("Staff account created")
	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(user))
}

func (c *AuthController) setSessionCookie(ctx *gin.Context, token string) {
	maxAge := int(c.jwtService.SessionLifetime().Seconds())
	ctx.SetCookie(auth.StaffCookieName, token, maxAge, "/", "", c.secureCookies, true)
}
