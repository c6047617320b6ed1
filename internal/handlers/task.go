package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Fuku-x/connect-app/internal/database"
	"github.com/Fuku-x/connect-app/internal/models"
)

// ListTasks returns the caller's tasks ordered by due date then priority.
// NULL due dates sort last.
func ListTasks(c *gin.Context) {
	userID := c.MustGet("userId").(string)

	var tasks []models.Task
	err := database.DB.
		Where("user_id = ?", userID).
		Order("due_date IS NULL, due_date ASC").
		Order("CASE priority WHEN 'high' THEN 0 WHEN 'medium' THEN 1 ELSE 2 END").
		Find(&tasks).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch tasks"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"tasks": tasks})
}

type TaskInput struct {
	Title       string              `json:"title" binding:"required,max=255"`
	Description string              `json:"description"`
	Status      models.TaskStatus   `json:"status"`
	Priority    models.TaskPriority `json:"priority"`
	DueDate     *time.Time          `json:"due_date"`
}

func CreateTask(c *gin.Context) {
	userID := c.MustGet("userId").(string)

	var input TaskInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if input.Status == "" {
		input.Status = models.TaskTodo
	}
	if input.Priority == "" {
		input.Priority = models.PriorityMedium
	}
	if !models.ValidTaskStatus(input.Status) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Status must be todo, in_progress or done"})
		return
	}
	if !models.ValidTaskPriority(input.Priority) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Priority must be low, medium or high"})
		return
	}

	task := models.Task{
		UserID:      userID,
		Title:       input.Title,
		Description: input.Description,
		Status:      input.Status,
		Priority:    input.Priority,
		DueDate:     input.DueDate,
	}

	if err := database.DB.Create(&task).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create task"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"task": task})
}

func GetTask(c *gin.Context) {
	userID := c.MustGet("userId").(string)

	var task models.Task
	err := database.DB.
		Where("id = ? AND user_id = ?", c.Param("id"), userID).
		First(&task).Error
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"task": task})
}

type TaskUpdateInput struct {
	Title       *string              `json:"title"`
	Description *string              `json:"description"`
	Status      *models.TaskStatus   `json:"status"`
	Priority    *models.TaskPriority `json:"priority"`
	DueDate     *time.Time           `json:"due_date"`
}

func UpdateTask(c *gin.Context) {
	userID := c.MustGet("userId").(string)

	var task models.Task
	err := database.DB.
		Where("id = ? AND user_id = ?", c.Param("id"), userID).
		First(&task).Error
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
		return
	}

	var input TaskUpdateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if input.Title != nil {
		if *input.Title == "" || len(*input.Title) > 255 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Title must be 1-255 characters"})
			return
		}
		task.Title = *input.Title
	}
	if input.Description != nil {
		task.Description = *input.Description
	}
	if input.Status != nil {
		if !models.ValidTaskStatus(*input.Status) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Status must be todo, in_progress or done"})
			return
		}
		task.Status = *input.Status
	}
	if input.Priority != nil {
		if !models.ValidTaskPriority(*input.Priority) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Priority must be low, medium or high"})
			return
		}
		task.Priority = *input.Priority
	}
	if input.DueDate != nil {
		task.DueDate = input.DueDate
	}

	if err := database.DB.Save(&task).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update task"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"task": task})
}

type TaskStatusInput struct {
	Status models.TaskStatus `json:"status" binding:"required"`
}

// UpdateTaskStatus is the kanban drag-and-drop fast path.
func UpdateTaskStatus(c *gin.Context) {
	userID := c.MustGet("userId").(string)

	var input TaskStatusInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "status is required"})
		return
	}
	if !models.ValidTaskStatus(input.Status) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Status must be todo, in_progress or done"})
		return
	}

	var task models.Task
	err := database.DB.
		Where("id = ? AND user_id = ?", c.Param("id"), userID).
		First(&task).Error
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
		return
	}

	task.Status = input.Status
	if err := database.DB.Save(&task).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update task"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"task": task})
}

func DeleteTask(c *gin.Context) {
	userID := c.MustGet("userId").(string)

	result := database.DB.
		Where("id = ? AND user_id = ?", c.Param("id"), userID).
		Delete(&models.Task{})
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete task"})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Task deleted"})
}
