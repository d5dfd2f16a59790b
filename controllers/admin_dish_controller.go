package controllers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/pedrohsouza/marmitex/config"
	"github.com/pedrohsouza/marmitex/models"
	"github.com/pedrohsouza/marmitex/utils"
)

// CreateDishRequest represents the request body for creating a dish
type CreateDishRequest struct {
	Name        string  `json:"name" binding:"required"`
	Description string  `json:"description"`
	Price       float64 `json:"price" binding:"required,gt=0"`
	CategoryID  uint    `json:"category_id" binding:"required"`
	ImageURL    string  `json:"image_url"`
	Stock       int     `json:"stock" binding:"gte=0"`
	Available   *bool   `json:"available"`
}

// UpdateDishRequest represents a partial dish update
type UpdateDishRequest struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price"`
	CategoryID  *uint    `json:"category_id"`
	ImageURL    *string  `json:"image_url"`
	Stock       *int     `json:"stock"`
	Available   *bool    `json:"available"`
}

// AdminListDishes returns all dishes including unavailable ones
func AdminListDishes(c *gin.Context) {
	utils.LogInfo("AdminListDishes called")

	pagination := utils.NewPagination(c)
	query := config.DB.Model(&models.Dish{}).Preload("Category")

	var total int64
	if err := query.Count(&total).Error; err != nil {
		utils.LogError("Failed to count dishes: %v", err)
		utils.InternalServerError(c, "Failed to fetch dishes", nil)
		return
	}

	var dishes []models.Dish
	if err := query.Order("name asc").Offset(pagination.Offset).Limit(pagination.Limit).Find(&dishes).Error; err != nil {
		utils.LogError("Failed to fetch dishes: %v", err)
		utils.InternalServerError(c, "Failed to fetch dishes", nil)
		return
	}

	utils.SuccessWithPagination(c, "Dishes retrieved successfully", dishes, total, pagination.Page, pagination.Limit)
}

// CreateDish creates a new dish
func CreateDish(c *gin.Context) {
	utils.LogInfo("CreateDish called")

	var req CreateDishRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError("Invalid dish creation request: %v", err)
		utils.BadRequest(c, "Invalid request", err.Error())
		return
	}

	var category models.Category
	if err := config.DB.First(&category, req.CategoryID).Error; err != nil {
		utils.LogError("Category not found: %d", req.CategoryID)
		utils.BadRequest(c, "Category not found", nil)
		return
	}

	available := true
	if req.Available != nil {
		available = *req.Available
	}

	dish := models.Dish{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		CategoryID:  req.CategoryID,
		ImageURL:    req.ImageURL,
		Stock:       req.Stock,
		Available:   available,
	}
	if err := config.DB.Create(&dish).Error; err != nil {
		utils.LogError("Failed to create dish: %v", err)
		utils.InternalServerError(c, "Failed to create dish", err.Error())
		return
	}

	utils.LogInfo("Created dish ID: %d", dish.ID)
	utils.Created(c, "Dish created successfully", dish)
}

// UpdateDish partially updates a dish
func UpdateDish(c *gin.Context) {
	utils.LogInfo("UpdateDish called")

	dishID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "Invalid dish ID", nil)
		return
	}

	var dish models.Dish
	if err := config.DB.First(&dish, dishID).Error; err != nil {
		utils.LogError("Dish not found: %d", dishID)
		utils.NotFound(c, "Dish not found")
		return
	}

	var req UpdateDishRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError("Invalid dish update request: %v", err)
		utils.BadRequest(c, "Invalid request", err.Error())
		return
	}

	updates := map[string]interface{}{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Price != nil {
		if *req.Price <= 0 {
			utils.BadRequest(c, "Price must be greater than zero", nil)
			return
		}
		updates["price"] = *req.Price
	}
	if req.CategoryID != nil {
		updates["category_id"] = *req.CategoryID
	}
	if req.ImageURL != nil {
		updates["image_url"] = *req.ImageURL
	}
	if req.Stock != nil {
		if *req.Stock < 0 {
			utils.BadRequest(c, "Stock cannot be negative", nil)
			return
		}
		updates["stock"] = *req.Stock
		// Restocking an item that sold out brings it back to the menu
		if *req.Stock > 0 && req.Available == nil && !dish.Available {
			updates["available"] = true
		}
	}
	if req.Available != nil {
		updates["available"] = *req.Available
	}

	if len(updates) == 0 {
		utils.BadRequest(c, "No fields to update", nil)
		return
	}

	if err := config.DB.Model(&dish).Updates(updates).Error; err != nil {
		utils.LogError("Failed to update dish %d: %v", dishID, err)
		utils.InternalServerError(c, "Failed to update dish", err.Error())
		return
	}

	utils.LogInfo("Updated dish ID: %d", dish.ID)
	utils.Success(c, "Dish updated successfully", dish)
}

// DeleteDish soft-deletes a dish
func DeleteDish(c *gin.Context) {
	utils.LogInfo("DeleteDish called")

	dishID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "Invalid dish ID", nil)
		return
	}

	var dish models.Dish
	if err := config.DB.First(&dish, dishID).Error; err != nil {
		utils.NotFound(c, "Dish not found")
		return
	}

	if err := config.DB.Delete(&dish).Error; err != nil {
		utils.LogError("Failed to delete dish %d: %v", dishID, err)
		utils.InternalServerError(c, "Failed to delete dish", err.Error())
		return
	}

	utils.LogInfo("Deleted dish ID: %d", dishID)
	utils.Success(c, "Dish deleted successfully", nil)
}

// CreateCategory creates a menu category
func CreateCategory(c *gin.Context) {
	utils.LogInfo("CreateCategory called")

	var req struct {
		Name        string `json:"name" binding:"required"`
		Description string `json:"description"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request", err.Error())
		return
	}

	category := models.Category{Name: req.Name, Description: req.Description}
	if err := config.DB.Create(&category).Error; err != nil {
		utils.LogError("Failed to create category: %v", err)
		utils.InternalServerError(c, "Failed to create category", err.Error())
		return
	}

	utils.Created(c, "Category created successfully", category)
}
