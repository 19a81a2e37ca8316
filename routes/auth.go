package routes

import (
	"net/http"

	"taskhive/taskhive/database"
	"taskhive/taskhive/middleware"
	"taskhive/taskhive/services"
	"taskhive/taskhive/utils/token"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type registerRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type profileRequest struct {
	Name  string `json:"name"`
	Email string `json:"email" binding:"omitempty,email"`
}

type passwordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required,min=8"`
}

type forgotPasswordRequest struct {
	Email string `json:"email" binding:"required,email"`
}

type resetPasswordRequest struct {
	Password string `json:"password" binding:"required,min=8"`
}

func RegisterAuthRoutes(router *gin.Engine, db *database.Database, authService services.AuthServiceInterface, userService services.UserServiceInterface) {
	group := router.Group("/api/v1/auth")
	{
		group.POST("/register", func(c *gin.Context) { Register(c, db, authService, userService) })
		group.POST("/login", func(c *gin.Context) { Login(c, db, authService) })
		group.POST("/logout", Logout)
		group.POST("/forgot-password", func(c *gin.Context) { ForgotPassword(c, db, userService) })
		group.PUT("/reset-password/:token", func(c *gin.Context) { ResetPassword(c, db, authService, userService) })
		group.GET("/verify-email/:token", func(c *gin.Context) { VerifyEmail(c, db, userService) })
	}

	authed := router.Group("/api/v1/auth", middleware.AuthMiddleware(authService))
	{
		authed.GET("/me", func(c *gin.Context) { Me(c, db, userService) })
		authed.PUT("/profile", func(c *gin.Context) { UpdateProfile(c, db, userService) })
		authed.PUT("/password", func(c *gin.Context) { UpdatePassword(c, db, authService, userService) })
	}
}

// setSessionCookie mirrors the issued token into a cookie for browser
// clients. Logout only clears this cookie; the token itself stays valid until
// it expires.
func setSessionCookie(c *gin.Context, authService services.AuthServiceInterface, tokenString string) {
	c.SetCookie(token.CookieName, tokenString, int(authService.TokenTTL().Seconds()), "/", "", false, true)
}

func Register(c *gin.Context, db *database.Database, authService services.AuthServiceInterface, userService services.UserServiceInterface) {
	var request registerRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		respondBindError(c, err)
		return
	}

	user, err := userService.Register(db, services.RegisterInput{
		Name:     request.Name,
		Email:    request.Email,
		Password: request.Password,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	tokenString, err := authService.GenerateToken(user)
	if err != nil {
		respondError(c, err)
		return
	}

	setSessionCookie(c, authService, tokenString)
	c.JSON(http.StatusCreated, gin.H{"success": true, "token": tokenString, "user": user.Public()})
}

func Login(c *gin.Context, db *database.Database, authService services.AuthServiceInterface) {
	var request loginRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		respondBindError(c, err)
		return
	}

	tokenString, user, err := authService.Login(db, request.Email, request.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	setSessionCookie(c, authService, tokenString)
	c.JSON(http.StatusOK, gin.H{"success": true, "token": tokenString, "user": user.Public()})
}

func Logout(c *gin.Context) {
	c.SetCookie(token.CookieName, "", -1, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Logged out"})
}

func Me(c *gin.Context, db *database.Database, userService services.UserServiceInterface) {
	userID := c.MustGet("userID").(uuid.UUID)

	user, err := userService.GetUserById(db, userID.String())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "user": user.Public()})
}

func UpdateProfile(c *gin.Context, db *database.Database, userService services.UserServiceInterface) {
	var request profileRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		respondBindError(c, err)
		return
	}

	userID := c.MustGet("userID").(uuid.UUID)
	user, err := userService.UpdateProfile(db, userID, services.ProfileInput{
		Name:  request.Name,
		Email: request.Email,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "user": user.Public()})
}

func UpdatePassword(c *gin.Context, db *database.Database, authService services.AuthServiceInterface, userService services.UserServiceInterface) {
	var request passwordRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		respondBindError(c, err)
		return
	}

	userID := c.MustGet("userID").(uuid.UUID)
	user, err := userService.UpdatePassword(db, userID, request.CurrentPassword, request.NewPassword)
	if err != nil {
		respondError(c, err)
		return
	}

	tokenString, err := authService.GenerateToken(user)
	if err != nil {
		respondError(c, err)
		return
	}

	setSessionCookie(c, authService, tokenString)
	c.JSON(http.StatusOK, gin.H{"success": true, "token": tokenString})
}

func ForgotPassword(c *gin.Context, db *database.Database, userService services.UserServiceInterface) {
	var request forgotPasswordRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		respondBindError(c, err)
		return
	}

	if err := userService.ForgotPassword(db, request.Email); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Password reset token sent"})
}

func ResetPassword(c *gin.Context, db *database.Database, authService services.AuthServiceInterface, userService services.UserServiceInterface) {
	var request resetPasswordRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		respondBindError(c, err)
		return
	}

	user, err := userService.ResetPassword(db, c.Param("token"), request.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	tokenString, err := authService.GenerateToken(user)
	if err != nil {
		respondError(c, err)
		return
	}

	setSessionCookie(c, authService, tokenString)
	c.JSON(http.StatusOK, gin.H{"success": true, "token": tokenString})
}

func VerifyEmail(c *gin.Context, db *database.Database, userService services.UserServiceInterface) {
	user, err := userService.VerifyEmail(db, c.Param("token"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Email verified", "user": user.Public()})
}
