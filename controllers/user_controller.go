package controllers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"ringback/backend/access"
	"ringback/backend/database"
	"ringback/backend/middlewares"
)

// Me returns the caller's profile and the area the front end should route to.
func Me(users UserStore, dir access.Directory) gin.HandlerFunc {
	return func(c *gin.Context) {
		uid, _ := middlewares.UserID(c)
		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		u, err := users.UserByID(ctx, uid)
		if errors.Is(err, database.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
			return
		}
		if err != nil {
			zap.L().Error("load user", zap.Int64("user_id", uid), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}
		facts, err := access.LoadFacts(ctx, dir, &uid)
		if err != nil {
			zap.L().Error("load access facts", zap.Int64("user_id", uid), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"user": u, "landing": access.Landing(facts)})
	}
}
