package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"ringback/backend/consent"
	"ringback/backend/metrics"
)

// maxOptInBody caps the unauthenticated opt-in body; larger bodies are INVALID_REQUEST.
const maxOptInBody = 4 << 10

// SMSOptIn is the public proof-of-consent endpoint. No authentication.
func SMSOptIn(sink consent.Sink) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxOptInBody)
		body, err := c.GetRawData()
		res := consent.Result{Code: consent.CodeInvalidRequest}
		if err == nil {
			res = consent.Intake(body)
		}
		if !res.OK {
			metrics.OptIns.WithLabelValues(string(res.Code)).Inc()
			c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": res.Code.Message()})
			return
		}

		if sink != nil {
			sub := consent.Submission{
				SourceIP:   c.ClientIP(),
				UserAgent:  c.Request.UserAgent(),
				ReceivedAt: time.Now().UTC(),
			}
			if res.HasPhone {
				phone := res.PhoneNumber
				sub.PhoneNumber = &phone
			}
			ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
			defer cancel()
			if err := sink.RecordOptIn(ctx, sub); err != nil {
				zap.L().Error("record opt-in", zap.Error(err))
				metrics.OptIns.WithLabelValues("STORE_FAILED").Inc()
				c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "Could not record opt-in"})
				return
			}
		}

		metrics.OptIns.WithLabelValues("OK").Inc()
		c.JSON(http.StatusOK, gin.H{"ok": true, "message": res.Code.Message()})
	}
}
