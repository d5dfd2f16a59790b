package controllers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/pedrohsouza/marmitex/config"
	"github.com/pedrohsouza/marmitex/models"
	"github.com/pedrohsouza/marmitex/utils"
)

// GetMenu returns the customer-facing dish listing with pagination and search
func GetMenu(c *gin.Context) {
	utils.LogInfo("GetMenu called")

	pagination := utils.NewPagination(c)
	search := c.Query("search")
	categoryID := c.Query("category_id")

	query := config.DB.Model(&models.Dish{}).Where("available = ?", true).Preload("Category")
	if search != "" {
		query = query.Where("name ILIKE ?", "%"+search+"%")
	}
	if categoryID != "" {
		query = query.Where("category_id = ?", categoryID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		utils.LogError("Failed to count dishes: %v", err)
		utils.InternalServerError(c, "Failed to fetch menu", nil)
		return
	}

	var dishes []models.Dish
	if err := query.Order("name asc").Offset(pagination.Offset).Limit(pagination.Limit).Find(&dishes).Error; err != nil {
		utils.LogError("Failed to fetch dishes: %v", err)
		utils.InternalServerError(c, "Failed to fetch menu", nil)
		return
	}

	utils.LogInfo("Fetched %d dishes for menu", len(dishes))
	utils.SuccessWithPagination(c, "Menu retrieved successfully", dishes, total, pagination.Page, pagination.Limit)
}

// GetDish returns a single available dish
func GetDish(c *gin.Context) {
	utils.LogInfo("GetDish called")

	dishID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "Invalid dish ID", nil)
		return
	}

	var dish models.Dish
	if err := config.DB.Preload("Category").Where("id = ? AND available = ?", dishID, true).First(&dish).Error; err != nil {
		utils.LogError("Dish not found: %d", dishID)
		utils.NotFound(c, "Dish not found")
		return
	}

	utils.Success(c, "Dish retrieved successfully", dish)
}

// GetCategories returns the menu categories
func GetCategories(c *gin.Context) {
	utils.LogInfo("GetCategories called")

	var categories []models.Category
	if err := config.DB.Order("name asc").Find(&categories).Error; err != nil {
		utils.LogError("Failed to fetch categories: %v", err)
		utils.InternalServerError(c, "Failed to fetch categories", nil)
		return
	}

	utils.Success(c, "Categories retrieved successfully", categories)
}
