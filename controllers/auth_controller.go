package controllers

import (
	"context"
	"errors"
	"net/http"
	"net/mail"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"ringback/backend/config"
	"ringback/backend/database"
	"ringback/backend/models"
	"ringback/backend/utils"
)

const minPasswordLen = 8

func Register(cfg config.Config, users UserStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.RegisterRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
			return
		}
		req.Email = strings.ToLower(strings.TrimSpace(req.Email))
		if _, err := mail.ParseAddress(req.Email); err != nil || strings.TrimSpace(req.Name) == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "name and a valid email are required"})
			return
		}
		if len(req.Password) < minPasswordLen || req.Password != req.Confirm {
			c.JSON(http.StatusBadRequest, gin.H{"error": "password mismatch or too short"})
			return
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			zap.L().Error("hash password", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()
		id, err := users.CreateUser(ctx, strings.TrimSpace(req.Name), req.Email, string(hash), strings.TrimSpace(req.Phone))
		if errors.Is(err, database.ErrDuplicate) {
			c.JSON(http.StatusConflict, gin.H{"error": "email already registered"})
			return
		}
		if err != nil {
			zap.L().Error("register user", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}
		issueToken(c, cfg, id)
	}
}

func Login(cfg config.Config, users UserStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.LoginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
			return
		}
		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()
		u, err := users.UserByEmail(ctx, strings.ToLower(strings.TrimSpace(req.Email)))
		if err != nil && !errors.Is(err, database.ErrNotFound) {
			zap.L().Error("login lookup", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}
		if err != nil || bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)) != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
			return
		}
		issueToken(c, cfg, u.ID)
	}
}

func issueToken(c *gin.Context, cfg config.Config, uid int64) {
	token, err := utils.GenerateJWT(cfg.JWTSecret, uid, cfg.JWTTTL)
	if err != nil {
		zap.L().Error("sign token", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token})
}
