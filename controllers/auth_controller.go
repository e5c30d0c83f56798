package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/marktudor11/fitlytics/services"
	"github.com/marktudor11/fitlytics/utils"
)

type AuthController struct {
	Accounts *services.AccountService
}

func NewAuthController(svc *services.AccountService) *AuthController {
	return &AuthController{Accounts: svc}
}

func (h *AuthController) Signup(c *gin.Context) {
	var input services.SignupInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.Accounts.Signup(input)
	if err != nil {
		var fe services.FieldErrors
		if errors.As(err, &fe) {
			c.JSON(http.StatusBadRequest, gin.H{"errors": fe})
			return
		}
		logrus.Errorf("signup failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not create account. Please try again."})
		return
	}

	// The account exists once the transaction committed; a token failure
	// only means the client has to log in manually.
	token, err := utils.GenerateJWT(user.ID, user.Username)
	if err != nil {
		logrus.Errorf("token issue after signup failed for %q: %v", user.Username, err)
		c.JSON(http.StatusCreated, gin.H{
			"message": "Account created but automatic login failed; please log in manually.",
		})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Account created. Welcome!", "token": token})
}

type LoginInput struct {
	Email    string `json:"email" binding:"required"` // email or username
	Password string `json:"password" binding:"required"`
}

func (h *AuthController) Login(c *gin.Context) {
	var input LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.Accounts.Login(input.Email, input.Password)
	if err != nil {
		if !errors.Is(err, services.ErrInvalidCredentials) {
			logrus.Errorf("login failed: %v", err)
		}
		// one generic message for every failure, no account enumeration
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email/username or password."})
		return
	}

	token, err := utils.GenerateJWT(user.ID, user.Username)
	if err != nil {
		logrus.Errorf("token issue failed for %q: %v", user.Username, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not generate token"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token})
}

// Logout exists for interface parity with session-based clients; tokens are
// stateless so there is nothing to revoke server-side.
func (h *AuthController) Logout(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "You've been logged out."})
}
