// controllers/reminder.go
package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"salonbook-backend/config"
	"salonbook-backend/models"
	"salonbook-backend/services"
	"salonbook-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// RunRemindersResponse is the summary envelope returned by the run trigger.
type RunRemindersResponse struct {
	Success   bool     `json:"success"`
	Message   string   `json:"message,omitempty"`
	Sent      int      `json:"sent"`
	Failed    int      `json:"failed"`
	Errors    []string `json:"errors"`
	Error     string   `json:"error,omitempty"`
	Timestamp string   `json:"timestamp"`
}

type dispatchRunner interface {
	Run(now time.Time) (*services.RunSummary, error)
}

// Indirection over the pipeline so handler tests can stub it out.
var newDispatchRunner = func(tenant config.Tenant) dispatchRunner {
	store := services.NewStore(config.DB, tenant)
	return services.NewDispatchService(store, services.DispatchConfigFromEnv())
}

// RunReminders triggers one synchronous dispatch batch for tomorrow's
// unconfirmed appointments. Individual send failures still produce a 200;
// only a missing configuration or a failing selection query yield a 500.
func RunReminders(c *gin.Context) {
	tenant, err := config.ResolveTenant(c.Query("tenant"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	summary, err := newDispatchRunner(tenant).Run(time.Now())
	timestamp := time.Now().UTC().Format(time.RFC3339)
	if err != nil {
		c.JSON(http.StatusInternalServerError, RunRemindersResponse{
			Success:   false,
			Error:     err.Error(),
			Errors:    []string{},
			Timestamp: timestamp,
		})
		return
	}

	c.JSON(http.StatusOK, RunRemindersResponse{
		Success:   true,
		Message:   fmt.Sprintf("Reminder run completed: %d sent, %d failed", summary.Sent, summary.Failed),
		Sent:      summary.Sent,
		Failed:    summary.Failed,
		Errors:    summary.Errors,
		Timestamp: timestamp,
	})
}

// CreateTemplateInput defines the expected JSON structure
type CreateTemplateInput struct {
	Name      string `json:"name" binding:"required"`
	Body      string `json:"body" binding:"required"`
	IsDefault bool   `json:"isDefault"`
}

// UpdateTemplateInput defines the expected JSON structure
type UpdateTemplateInput struct {
	Name      *string `json:"name"`
	Body      *string `json:"body"`
	IsDefault *bool   `json:"isDefault"`
}

// CreateTemplate creates a new message template
func CreateTemplate(c *gin.Context) {
	var input CreateTemplateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	template := models.MessageTemplate{
		Name:      input.Name,
		Body:      input.Body,
		IsDefault: input.IsDefault,
	}

	err := config.DB.Transaction(func(tx *gorm.DB) error {
		// Only one template may be flagged default.
		if input.IsDefault {
			if err := tx.Model(&models.MessageTemplate{}).
				Where("is_default = ?", true).
				Update("is_default", false).Error; err != nil {
				return err
			}
		}
		return tx.Create(&template).Error
	})
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create template")
		return
	}

	c.JSON(http.StatusCreated, template)
}

// GetTemplates retrieves all message templates
func GetTemplates(c *gin.Context) {
	var templates []models.MessageTemplate
	if err := config.DB.Find(&templates).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve templates")
		return
	}

	c.JSON(http.StatusOK, templates)
}

// UpdateTemplate updates an existing template
func UpdateTemplate(c *gin.Context) {
	templateUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid template ID format")
		return
	}

	var input UpdateTemplateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var template models.MessageTemplate
	if err := config.DB.Where("id = ?", templateUUID).First(&template).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Template not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if input.Name != nil {
		template.Name = *input.Name
	}
	if input.Body != nil {
		template.Body = *input.Body
	}

	err = config.DB.Transaction(func(tx *gorm.DB) error {
		if input.IsDefault != nil && *input.IsDefault && !template.IsDefault {
			if err := tx.Model(&models.MessageTemplate{}).
				Where("is_default = ?", true).
				Update("is_default", false).Error; err != nil {
				return err
			}
		}
		if input.IsDefault != nil {
			template.IsDefault = *input.IsDefault
		}
		return tx.Save(&template).Error
	})
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update template")
		return
	}

	c.JSON(http.StatusOK, template)
}

// DeleteTemplate removes a template
func DeleteTemplate(c *gin.Context) {
	templateUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid template ID format")
		return
	}

	if err := config.DB.Delete(&models.MessageTemplate{}, "id = ?", templateUUID).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete template")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Template deleted"})
}

// PutReminderConfigInput defines the expected JSON structure
type PutReminderConfigInput struct {
	Provider     string `json:"provider" binding:"required,oneof=twilio cloud_api"`
	AccountID    string `json:"accountId" binding:"required"`
	AuthToken    string `json:"authToken" binding:"required"`
	SenderNumber string `json:"senderNumber"`
	BaseURL      string `json:"baseUrl"`
}

// GetReminderConfig returns the active provider configuration with the
// auth secret blanked out
func GetReminderConfig(c *gin.Context) {
	var cfg models.ReminderConfig
	if err := config.DB.Where("is_active = ?", true).First(&cfg).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "No active reminder configuration")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	cfg.AuthToken = ""
	c.JSON(http.StatusOK, cfg)
}

// PutReminderConfig replaces the active provider configuration,
// deactivating any previously active one
func PutReminderConfig(c *gin.Context) {
	var input PutReminderConfigInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	cfg := models.ReminderConfig{
		Provider:     input.Provider,
		AccountID:    input.AccountID,
		AuthToken:    input.AuthToken,
		SenderNumber: input.SenderNumber,
		BaseURL:      input.BaseURL,
		IsActive:     true,
	}

	err := config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.ReminderConfig{}).
			Where("is_active = ?", true).
			Update("is_active", false).Error; err != nil {
			return err
		}
		return tx.Create(&cfg).Error
	})
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to save configuration")
		return
	}

	cfg.AuthToken = ""
	c.JSON(http.StatusOK, cfg)
}
