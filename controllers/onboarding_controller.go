package controllers

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"ringback/backend/access"
	"ringback/backend/database"
	"ringback/backend/industry"
	"ringback/backend/metrics"
	"ringback/backend/middlewares"
	"ringback/backend/models"
	"ringback/backend/setup"
	"ringback/backend/utils"
)

func ListIndustries() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"industries": industry.List()})
	}
}

// SetupBusiness validates the onboarding answers, classifies them and saves
// the caller's business. Automatic setups finish onboarding immediately;
// manual ones wait for an admin.
func SetupBusiness(businesses BusinessStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, err := c.GetRawData()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
			return
		}
		p, err := setup.ValidatePayload(raw)
		var verr *setup.ValidationError
		if errors.As(err, &verr) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body", "details": verr.Problems})
			return
		}
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
			return
		}

		v := setup.Classify(p.Draft())
		verdict := "automatic"
		if v.Manual {
			verdict = "manual"
		}
		metrics.SetupClassifications.WithLabelValues(verdict, string(v.Reason)).Inc()

		uid, _ := middlewares.UserID(c)
		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()
		saved, err := businesses.SaveBusiness(ctx, models.Business{
			OwnerID:             uid,
			Name:                p.BusinessName,
			Industry:            string(industry.Resolve(p.Industry)),
			ServiceAreas:        p.ServiceAreas,
			CustomScript:        p.CustomScript,
			MultiLocation:       p.MultiLocation,
			RequiresManualSetup: v.Manual,
			ManualSetupReason:   string(v.Reason),
			OnboardingComplete:  !v.Manual,
		})
		if errors.Is(err, database.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
			return
		}
		if err != nil {
			zap.L().Error("save business", zap.Int64("user_id", uid), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}

		next := access.DestinationDashboard
		if v.Manual {
			next = "pending_review"
		}
		zap.L().Info("business setup classified",
			zap.Int64("user_id", uid), zap.Int64("business_id", saved.ID),
			zap.Bool("manual", v.Manual), zap.String("reason", string(v.Reason)))
		c.JSON(http.StatusOK, gin.H{
			"business_id":           saved.ID,
			"requires_manual_setup": v.Manual,
			"reason":                v.Reason,
			"onboarding_complete":   saved.OnboardingComplete,
			"next":                  next,
		})
	}
}

func OnboardingStatus(businesses BusinessStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		facts, _ := middlewares.Facts(c)
		resp := gin.H{"business": nil, "onboarding_complete": false, "landing": access.Landing(facts)}
		if facts.BusinessID == nil {
			c.JSON(http.StatusOK, resp)
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()
		b, err := businesses.BusinessByID(ctx, *facts.BusinessID)
		if errors.Is(err, database.ErrNotFound) {
			c.JSON(http.StatusOK, resp)
			return
		}
		if err != nil {
			zap.L().Error("load business", zap.Int64("business_id", *facts.BusinessID), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}
		resp["business"] = b
		resp["onboarding_complete"] = b.OnboardingComplete
		c.JSON(http.StatusOK, resp)
	}
}

// ScriptPreview drafts the missed-call greeting. A nil drafter, or one that
// fails, falls back to the built-in template.
func ScriptPreview(drafter utils.ScriptDrafter) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.ScriptPreviewRequest
		if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.BusinessName) == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "business_name is required"})
			return
		}
		name := strings.TrimSpace(req.BusinessName)
		entry, _ := industry.Lookup(industry.Resolve(req.Industry))

		if drafter != nil {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 30*time.Second)
			defer cancel()
			script, err := drafter.DraftGreeting(ctx, name, entry)
			if err == nil {
				c.JSON(http.StatusOK, gin.H{"script": script, "source": "ai", "industry": entry})
				return
			}
			zap.L().Warn("draft greeting failed, using template", zap.Error(err))
		}
		c.JSON(http.StatusOK, gin.H{"script": utils.TemplateGreeting(name, entry), "source": "template", "industry": entry})
	}
}
