package middlewares

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"ringback/backend/access"
	"ringback/backend/metrics"
)

const factsKey = "access_facts"

var denialStatus = map[access.Reason]int{
	access.ReasonNotAuthenticated:   http.StatusUnauthorized,
	access.ReasonNotAdmin:           http.StatusForbidden,
	access.ReasonOnboardingRequired: http.StatusForbidden,
}

// RequireZone loads the caller's facts, evaluates the zone policy and turns a
// denial into a JSON response carrying the reason and redirect target.
// Fact lookups that fail abort with 500.
func RequireZone(zone access.Zone, dir access.Directory) gin.HandlerFunc {
	return func(c *gin.Context) {
		var uid *int64
		if id, ok := UserID(c); ok {
			uid = &id
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()
		facts, err := access.LoadFacts(ctx, dir, uid)
		if err != nil {
			zap.L().Error("load access facts", zap.String("zone", string(zone)), zap.Error(err))
			metrics.AccessDecisions.WithLabelValues(string(zone), "error", "").Inc()
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}

		d := access.Evaluate(zone, facts)
		if !d.Allowed {
			metrics.AccessDecisions.WithLabelValues(string(zone), "deny", string(d.Reason)).Inc()
			zap.L().Debug("zone denied", zap.String("zone", string(zone)), zap.String("reason", string(d.Reason)))
			status, ok := denialStatus[d.Reason]
			if !ok {
				status = http.StatusForbidden
			}
			c.AbortWithStatusJSON(status, gin.H{
				"error":    "access denied",
				"reason":   d.Reason,
				"redirect": d.Redirect,
			})
			return
		}

		metrics.AccessDecisions.WithLabelValues(string(zone), "allow", "").Inc()
		c.Set(factsKey, facts)
		c.Next()
	}
}

// Facts returns the facts RequireZone evaluated for this request.
func Facts(c *gin.Context) (access.Facts, bool) {
	v, ok := c.Get(factsKey)
	if !ok {
		return access.Facts{}, false
	}
	f, ok := v.(access.Facts)
	return f, ok
}
