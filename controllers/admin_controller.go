package controllers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"ringback/backend/database"
	"ringback/backend/utils"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

func AdminListBusinesses(businesses BusinessStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		pending, _ := strconv.ParseBool(c.DefaultQuery("pending", "false"))
		ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
		defer cancel()
		list, err := businesses.ListBusinesses(ctx, pending)
		if err != nil {
			zap.L().Error("list businesses", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"businesses": list})
	}
}

// AdminCompleteOnboarding marks a reviewed manual setup as done.
func AdminCompleteOnboarding(businesses BusinessStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseInt(c.Param("id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
			return
		}
		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()
		err = businesses.CompleteOnboarding(ctx, id)
		if errors.Is(err, database.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "business not found"})
			return
		}
		if err != nil {
			zap.L().Error("complete onboarding", zap.Int64("business_id", id), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}
		zap.L().Info("onboarding completed by admin", zap.Int64("business_id", id))
		c.JSON(http.StatusOK, gin.H{"status": "ok", "business_id": id})
	}
}

// AdminExportOptIns streams every stored consent record as an xlsx file.
func AdminExportOptIns(optIns OptInStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 30*time.Second)
		defer cancel()
		records, err := optIns.ListOptIns(ctx)
		if err != nil {
			zap.L().Error("list opt-ins", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}
		f, err := utils.OptInWorkbook(records)
		if err != nil {
			zap.L().Error("build opt-in workbook", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "export error"})
			return
		}
		defer f.Close()
		buf, err := f.WriteToBuffer()
		if err != nil {
			zap.L().Error("write opt-in workbook", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "export error"})
			return
		}
		name := fmt.Sprintf("sms-opt-ins-%s.xlsx", time.Now().UTC().Format("20060102"))
		c.Header("Content-Disposition", `attachment; filename="`+name+`"`)
		c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
	}
}
