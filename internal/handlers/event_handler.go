package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/boxoffice/boxoffice/internal/helpers"
	"github.com/boxoffice/boxoffice/internal/middleware"
	"github.com/boxoffice/boxoffice/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CreateEventRequest struct {
	Title       string             `json:"title" binding:"required"`
	Description string             `json:"description"`
	Location    string             `json:"location"`
	StartDate   time.Time          `json:"startDate" binding:"required"`
	EndDate     time.Time          `json:"endDate" binding:"required"`
	Status      models.EventStatus `json:"status"`
	Categories  []string           `json:"categories"`
}

// UpdateEventRequest only touches the fields that are present.
type UpdateEventRequest struct {
	Title       *string             `json:"title"`
	Description *string             `json:"description"`
	Location    *string             `json:"location"`
	StartDate   *time.Time          `json:"startDate"`
	EndDate     *time.Time          `json:"endDate"`
	Status      *models.EventStatus `json:"status"`
	Categories  *[]string           `json:"categories"`
}

func CreateEvent(c *gin.Context) {
	var req CreateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid input. Please check your fields.")
		return
	}
	if req.EndDate.Before(req.StartDate) {
		helpers.RespondWithError(c, http.StatusBadRequest, "End date must not be before start date.")
		return
	}
	if req.Status != "" && !models.ValidEventStatus(req.Status) {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid event status.")
		return
	}

	userID, ok := middleware.GetUserID(c)
	if !ok {
		helpers.RespondWithError(c, http.StatusUnauthorized, "User ID not found in token.")
		return
	}

	db := middleware.GetDB(c)
	if db == nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}

	event := models.Event{
		OrganizerID: userID,
		Title:       req.Title,
		Description: req.Description,
		Location:    req.Location,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		Status:      req.Status,
	}
	err := db.Transaction(func(tx *gorm.DB) error {
		categories, err := resolveCategories(tx, req.Categories)
		if err != nil {
			return err
		}
		event.Categories = categories
		return tx.Create(&event).Error
	})
	if err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to create event.")
		return
	}

	c.JSON(http.StatusCreated, event)
}

func GetEvent(c *gin.Context) {
	eventID, err := helpers.ParseUUIDParam(c, "id")
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid event id.")
		return
	}

	engine := middleware.GetInventory(c)
	if engine == nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Inventory not configured.")
		return
	}

	event, err := engine.Layout(c.Request.Context(), eventID)
	if err != nil {
		helpers.RespondWithEngineError(c, err)
		return
	}

	c.JSON(http.StatusOK, event)
}

func ListEvents(c *gin.Context) {
	db := middleware.GetDB(c)
	if db == nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}

	page, err := helpers.ParsePage(c)
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	query := db.Model(&models.Event{})
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if category := c.Query("category"); category != "" {
		tagged := db.Table("event_categories").
			Select("event_categories.event_id").
			Joins("JOIN categories ON categories.id = event_categories.category_id").
			Where("categories.name = ?", category)
		query = query.Where("id IN (?)", tagged)
	}

	var totalCount int64
	if err := query.Count(&totalCount).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving events.")
		return
	}

	events := []models.Event{}
	err = query.Preload("Categories").Offset(page.Offset()).Limit(page.Limit).Order("created_at DESC").Find(&events).Error
	if err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving events.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"events":      events,
		"total":       totalCount,
		"page":        page.Number,
		"limit":       page.Limit,
		"total_pages": page.TotalPages(totalCount),
	})
}

func UpdateEvent(c *gin.Context) {
	var req UpdateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid input. Please check your fields.")
		return
	}
	if req.Status != nil && !models.ValidEventStatus(*req.Status) {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid event status.")
		return
	}

	db := middleware.GetDB(c)
	if db == nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}

	event, ok := ownedEvent(c, db)
	if !ok {
		return
	}

	if req.Title != nil {
		event.Title = *req.Title
	}
	if req.Description != nil {
		event.Description = *req.Description
	}
	if req.Location != nil {
		event.Location = *req.Location
	}
	if req.StartDate != nil {
		event.StartDate = *req.StartDate
	}
	if req.EndDate != nil {
		event.EndDate = *req.EndDate
	}
	if req.Status != nil {
		event.Status = *req.Status
	}
	if event.EndDate.Before(event.StartDate) {
		helpers.RespondWithError(c, http.StatusBadRequest, "End date must not be before start date.")
		return
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(event).Error; err != nil {
			return err
		}
		if req.Categories == nil {
			return nil
		}
		categories, err := resolveCategories(tx, *req.Categories)
		if err != nil {
			return err
		}
		return tx.Model(event).Association("Categories").Replace(categories)
	})
	if err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to update event.")
		return
	}

	if err := db.Preload("Categories").First(event, "id = ?", event.ID).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving event.")
		return
	}

	c.JSON(http.StatusOK, event)
}

// DeleteEvent removes the event together with its layout, tickets and
// admissions.
func DeleteEvent(c *gin.Context) {
	db := middleware.GetDB(c)
	if db == nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}

	event, ok := ownedEvent(c, db)
	if !ok {
		return
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(event).Association("Categories").Clear(); err != nil {
			return err
		}
		for _, model := range []any{&models.Admission{}, &models.Ticket{}, &models.Seat{}, &models.Zone{}} {
			if err := tx.Where("event_id = ?", event.ID).Delete(model).Error; err != nil {
				return err
			}
		}
		return tx.Delete(event).Error
	})
	if err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to delete event.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Event deleted successfully.",
	})
}

// ownedEvent loads the event named by the :id param and checks that the
// authenticated user organizes it. It writes the error response itself.
func ownedEvent(c *gin.Context, db *gorm.DB) (*models.Event, bool) {
	eventID, err := helpers.ParseUUIDParam(c, "id")
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid event id.")
		return nil, false
	}

	userID, ok := middleware.GetUserID(c)
	if !ok {
		helpers.RespondWithError(c, http.StatusUnauthorized, "User ID not found in token.")
		return nil, false
	}

	var event models.Event
	if err := db.Where("id = ?", eventID).First(&event).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			helpers.RespondWithError(c, http.StatusNotFound, "Event not found.")
			return nil, false
		}
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error finding event.")
		return nil, false
	}

	if event.OrganizerID != userID {
		helpers.RespondWithError(c, http.StatusForbidden, "You don't have permission to modify this event.")
		return nil, false
	}

	return &event, true
}

func requireOwnedEventID(c *gin.Context) (uuid.UUID, bool) {
	db := middleware.GetDB(c)
	if db == nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return uuid.Nil, false
	}
	event, ok := ownedEvent(c, db)
	if !ok {
		return uuid.Nil, false
	}
	return event.ID, true
}
