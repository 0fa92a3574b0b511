package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/oakhaven/prepschool/internal/app/models/dto"
	"github.com/oakhaven/prepschool/internal/app/services"
	"github.com/oakhaven/prepschool/internal/middleware"
	"github.com/oakhaven/prepschool/internal/pkg/apperrors"
	"github.com/oakhaven/prepschool/internal/pkg/auth"
)

// StudentController handles student portal endpoints
type StudentController struct {
	studentService *services.StudentService
	jwtService     *auth.JWTService
	secureCookies  bool
	logger         zerolog.Logger
}

// NewStudentController creates a new StudentController
func NewStudentController(studentService *services.StudentService, jwtService *auth.JWTService, secureCookies bool, logger zerolog.Logger) *StudentController {
	return &StudentController{
		studentService: studentService,
		jwtService:     jwtService,
		secureCookies:  secureCookies,
		logger:         logger,
	}
}

// Register promotes an application into a student account
// @Summary Register a student account
// @Tags student
// @Accept json
// @Produce json
// @Param request body dto.RegisterStudentRequest true "Registration fields"
// @Success 201 {object} dto.APIResponse{data=dto.StudentAuthResponse}
// @Failure 400 {object} dto.APIResponse "Email taken, mismatch or application claimed"
// @Failure 404 {object} dto.APIResponse "Application not found"
// @Router /student/register [post]
func (c *StudentController) Register(ctx *gin.Context) {
	var req dto.RegisterStudentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.BindingErrorMessage(err)))
		return
	}

	student, token, err := c.studentService.Register(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.setSessionCookie(ctx, token)
	c.logger.Info().Int64("studentId", student.ID).Int64("applicationId", student.ApplicationID).Msg("Student registered")
	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(dto.StudentAuthResponse{Token: token, Student: student}))
}

// Login authenticates a student and sets the session cookie
// @Summary Student login
// @Tags student
// @Accept json
// @Produce json
// @Param request body dto.StudentLoginRequest true "Credentials"
// @Success 200 {object} dto.APIResponse{data=dto.StudentAuthResponse}
// @Failure 401 {object} dto.APIResponse "Invalid credentials"
// @Router /student/login [post]
func (c *StudentController) Login(ctx *gin.Context) {
	var req dto.StudentLoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.BindingErrorMessage(err)))
		return
	}

	student, token, err := c.studentService.Login(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.setSessionCookie(ctx, token)
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.StudentAuthResponse{Token: token, Student: student}))
}

// Logout expires the student session cookie
// @Summary Student logout
// @Tags student
// @Produce json
// @Success 200 {object} dto.APIResponse
// @Router /student/logout [get]
func (c *StudentController) Logout(ctx *gin.Context) {
	ctx.SetCookie(auth.StudentCookieName, "", -1, "/", "", c.secureCookies, true)
	ctx.JSON(http.StatusOK, dto.NewMessageResponse("Logged out"))
}

// ForgotPassword starts the password-reset flow
// @Summary Request a password reset link
// @Tags student
// @Accept json
// @Produce json
// @Param request body dto.ForgotPasswordRequest true "Account email"
// @Success 200 {object} dto.APIResponse
// @Failure 404 {object} dto.APIResponse "No account with that email"
// @Router /student/forgot-password [post]
func (c *StudentController) ForgotPassword(ctx *gin.Context) {
	var req dto.ForgotPasswordRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.BindingErrorMessage(err)))
		return
	}

	if err := c.studentService.ForgotPassword(ctx.Request.Context(), req.Email); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewMessageResponse("Password reset email sent"))
}

// ResetPassword redeems a reset token
// @Summary Reset password with a token
// @Tags student
// @Accept json
// @Produce json
// @Param request body dto.ResetPasswordRequest true "Token and new password"
// @Success 200 {object} dto.APIResponse
// @Failure 400 {object} dto.APIResponse "Invalid or expired token"
// @Router /student/reset-password [post]
func (c *StudentController) ResetPassword(ctx *gin.Context) {
	var req dto.ResetPasswordRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.BindingErrorMessage(err)))
		return
	}

	if err := c.studentService.ResetPassword(ctx.Request.Context(), req.Token, req.Password); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewMessageResponse("Password updated"))
}

// Me returns the authenticated student's own record
// @Summary Current student
// @Tags student
// @Produce json
// @Success 200 {object} dto.APIResponse{data=models.Student}
// @Failure 401 {object} dto.APIResponse "Unauthenticated"
// @Router /student/me [get]
func (c *StudentController) Me(ctx *gin.Context) {
	student := middleware.StudentFromContext(ctx)
	if student == nil {
		middleware.HandleAPIError(ctx, apperrors.ErrTokenMissing)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(student))
}

// Dashboard joins the student with its originating application
// @Summary Student dashboard
// @Tags student
// @Produce json
// @Success 200 {object} dto.APIResponse{data=dto.StudentDashboardResponse}
// @Failure 403 {object} dto.APIResponse "Account not active or pending"
// @Router /student/dashboard [get]
func (c *StudentController) Dashboard(ctx *gin.Context) {
	student := middleware.StudentFromContext(ctx)
	if student == nil {
		middleware.HandleAPIError(ctx, apperrors.ErrTokenMissing)
		return
	}

	resp, err := c.studentService.Dashboard(ctx.Request.Context(), student.ID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp))
}

// UpdateProfile saves the student's editable profile fields. The target id
// always comes from the session, never the body.
// @Summary Update own profile
// @Tags student
// @Accept json
// @Produce json
// @Param request body dto.UpdateStudentProfileRequest true "Profile fields"
// @Success 200 {object} dto.APIResponse{data=models.Student}
// @Router /student/profile [put]
func (c *StudentController) UpdateProfile(ctx *gin.Context) {
	student := middleware.StudentFromContext(ctx)
	if student == nil {
		middleware.HandleAPIError(ctx, apperrors.ErrTokenMissing)
		return
	}

	var req dto.UpdateStudentProfileRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.BindingErrorMessage(err)))
		return
	}

	updated, err := c.studentService.UpdateProfile(ctx.Request.Context(), student.ID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(updated))
}

// UpdateParent replaces one parent entry by its position in the list
// @Summary Update a parent entry
// @Tags student
// @Accept json
// @Produce json
// @Param index path int true "Parent index"
// @Param request body dto.ParentRequest true "Parent fields"
// @Success 200 {object} dto.APIResponse{data=models.Student}
// @Failure 404 {object} dto.APIResponse "No parent at that index"
// @Router /student/parents/{index} [put]
func (c *StudentController) UpdateParent(ctx *gin.Context) {
	student := middleware.StudentFromContext(ctx)
	if student == nil {
		middleware.HandleAPIError(ctx, apperrors.ErrTokenMissing)
		return
	}

	index, err := strconv.Atoi(ctx.Param("index"))
	if err != nil || index < 0 {
		middleware.HandleAPIError(ctx, apperrors.ValidationError("invalid index parameter"))
		return
	}

	var req dto.ParentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.BindingErrorMessage(err)))
		return
	}

	updated, err := c.studentService.UpdateParent(ctx.Request.Context(), student.ID, index, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(updated))
}

// AddParent appends a new parent entry
// @Summary Add a parent entry
// @Tags student
// @Accept json
// @Produce json
// @Param request body dto.ParentRequest true "Parent fields"
// @Success 201 {object} dto.APIResponse{data=models.Student}
// @Router /student/parents [post]
func (c *StudentController) AddParent(ctx *gin.Context) {
	student := middleware.StudentFromContext(ctx)
	if student == nil {
		middleware.HandleAPIError(ctx, apperrors.ErrTokenMissing)
		return
	}

	var req dto.ParentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.BindingErrorMessage(err)))
		return
	}

	updated, err := c.studentService.AddParent(ctx.Request.Context(), student.ID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(updated))
}

// AdminList returns all students for the staff back office
// @Summary List students
// @Tags admin
// @Produce json
// @Success 200 {object} dto.APIResponse{data=[]models.Student}
// @Router /admin/students [get]
func (c *StudentController) AdminList(ctx *gin.Context) {
	students, err := c.studentService.GetAll(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(students))
}

// AdminUpdate saves the staff-editable fields of a student record
// @Summary Update a student record
// @Tags admin
// @Accept json
// @Produce json
// @Param id path int true "Student ID"
// @Param request body dto.UpdateStudentAdminRequest true "Fields to update"
// @Success 200 {object} dto.APIResponse{data=models.Student}
// @Failure 400 {object} dto.APIResponse "Unknown status or identifier taken"
// @Failure 404 {object} dto.APIResponse "Student not found"
// @Router /admin/students/{id} [patch]
func (c *StudentController) AdminUpdate(ctx *gin.Context) {
	id, err := pathID(ctx, "id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	var req dto.UpdateStudentAdminRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.BindingErrorMessage(err)))
		return
	}

	student, err := c.studentService.AdminUpdate(ctx.Request.Context(), id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.logger.Info().Int64("studentId", id).Msg("Student record updated")
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(student))
}

func (c *StudentController) setSessionCookie(ctx *gin.Context, token string) {
	maxAge := int(c.jwtService.SessionLifetime().Seconds())
	ctx.SetCookie(auth.StudentCookieName, token, maxAge, "/", "", c.secureCookies, true)
}
