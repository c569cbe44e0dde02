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
	"ringback/backend/industry"
	"ringback/backend/middlewares"
)

var onboardingRequired = gin.H{
	"error":    "access denied",
	"reason":   access.ReasonOnboardingRequired,
	"redirect": access.DestinationOnboarding,
}

func Dashboard(businesses BusinessStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		facts, ok := middlewares.Facts(c)
		if !ok || facts.BusinessID == nil {
			c.JSON(http.StatusForbidden, onboardingRequired)
			return
		}
		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()
		b, err := businesses.BusinessByID(ctx, *facts.BusinessID)
		if errors.Is(err, database.ErrNotFound) {
			c.JSON(http.StatusForbidden, onboardingRequired)
			return
		}
		if err != nil {
			zap.L().Error("load business", zap.Int64("business_id", *facts.BusinessID), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}
		entry, _ := industry.Lookup(industry.Resolve(b.Industry))
		c.JSON(http.StatusOK, gin.H{
			"business":       b,
			"industry":       entry,
			"service_areas":  len(b.ServiceAreas),
			"multi_location": b.MultiLocation,
		})
	}
}
