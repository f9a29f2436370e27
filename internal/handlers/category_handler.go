package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/boxoffice/boxoffice/internal/helpers"
	"github.com/boxoffice/boxoffice/internal/middleware"
	"github.com/boxoffice/boxoffice/internal/models"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type CategoryRequest struct {
	Name string `json:"name" binding:"required,min=2"`
}

func CreateCategory(c *gin.Context) {
	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid input. Please check your fields.")
		return
	}

	db := middleware.GetDB(c)
	if db == nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}

	name := strings.TrimSpace(req.Name)
	taken, err := categoryNameTaken(db, name)
	if err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to create category.")
		return
	}
	if taken {
		helpers.RespondWithError(c, http.StatusConflict, "Category already exists.")
		return
	}

	category := models.Category{Name: name}
	if err := db.Create(&category).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to create category.")
		return
	}

	c.JSON(http.StatusCreated, category)
}

func ListCategories(c *gin.Context) {
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

	query := db.Model(&models.Category{})
	var totalCount int64
	if err := query.Count(&totalCount).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving categories.")
		return
	}

	categories := []models.Category{}
	err = query.Offset(page.Offset()).Limit(page.Limit).Order("name").Find(&categories).Error
	if err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving categories.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"categories":  categories,
		"total":       totalCount,
		"page":        page.Number,
		"limit":       page.Limit,
		"total_pages": page.TotalPages(totalCount),
	})
}

func UpdateCategory(c *gin.Context) {
	categoryID, err := helpers.ParseUUIDParam(c, "id")
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid category id.")
		return
	}

	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid input. Please check your fields.")
		return
	}

	db := middleware.GetDB(c)
	if db == nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}

	var category models.Category
	if err := db.Where("id = ?", categoryID).First(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			helpers.RespondWithError(c, http.StatusNotFound, "Category not found.")
			return
		}
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error finding category.")
		return
	}

	name := strings.TrimSpace(req.Name)
	if name != category.Name {
		taken, err := categoryNameTaken(db, name)
		if err != nil {
			helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to update category.")
			return
		}
		if taken {
			helpers.RespondWithError(c, http.StatusConflict, "Category already exists.")
			return
		}
	}

	category.Name = name
	if err := db.Save(&category).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to update category.")
		return
	}

	c.JSON(http.StatusOK, category)
}

// DeleteCategory detaches the category from its events before removing it.
func DeleteCategory(c *gin.Context) {
	categoryID, err := helpers.ParseUUIDParam(c, "id")
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid category id.")
		return
	}

	db := middleware.GetDB(c)
	if db == nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}

	var deleted int64
	err = db.Transaction(func(tx *gorm.DB) error {
		category := models.Category{ID: categoryID}
		if err := tx.Model(&category).Association("Events").Clear(); err != nil {
			return err
		}
		result := tx.Delete(&category)
		deleted = result.RowsAffected
		return result.Error
	})
	if err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to delete category.")
		return
	}
	if deleted == 0 {
		helpers.RespondWithError(c, http.StatusNotFound, "Category not found.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Category deleted successfully.",
	})
}

func categoryNameTaken(db *gorm.DB, name string) (bool, error) {
	var n int64
	err := db.Model(&models.Category{}).Where("name = ?", name).Count(&n).Error
	return n > 0, err
}

// resolveCategories maps category names onto stored categories, creating
// the ones that do not exist yet. Blank and repeated names are skipped.
func resolveCategories(tx *gorm.DB, names []string) ([]models.Category, error) {
	categories := make([]models.Category, 0, len(names))
	seen := make(map[string]bool, len(names))
	for _, raw := range names {
		name := strings.TrimSpace(raw)
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true

		var category models.Category
		if err := tx.Where(models.Category{Name: name}).FirstOrCreate(&category).Error; err != nil {
			return nil, err
		}
		categories = append(categories, category)
	}
	return categories, nil
}
