package routes

import (
	"net/http"
	"strconv"

	"taskhive/taskhive/database"
	"taskhive/taskhive/middleware"
	"taskhive/taskhive/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RegisterCategoryRoutes wires the CRUD and statistics endpoints for one task
// category under its registry path. The :id routes sit behind the ownership
// guard, so their handlers receive the already-resolved task.
func RegisterCategoryRoutes[T any, PT services.CategoryTaskPtr[T]](group *gin.RouterGroup, db *database.Database, taskService *services.TaskService[T, PT]) {
	g := group.Group("/" + taskService.Path())

	g.GET("", func(c *gin.Context) { listTasks(c, db, taskService) })
	g.GET("/stats", func(c *gin.Context) { taskStats(c, db, taskService) })
	g.POST("", func(c *gin.Context) { createTask(c, db, taskService) })

	guard := middleware.TaskOwnership[T, PT](db, taskService)
	g.GET("/:id", guard, getTask[T, PT])
	g.PUT("/:id", guard, func(c *gin.Context) { updateTask(c, db, taskService) })
	g.DELETE("/:id", guard, func(c *gin.Context) { deleteTask(c, db, taskService) })
}

// RegisterTaskRoutes registers every task category on the given group.
func RegisterTaskRoutes(group *gin.RouterGroup, db *database.Database) {
	RegisterCategoryRoutes(group, db, services.WorkTaskServiceInstance)
	RegisterCategoryRoutes(group, db, services.FoodTaskServiceInstance)
	RegisterCategoryRoutes(group, db, services.HomeworkTaskServiceInstance)
	RegisterCategoryRoutes(group, db, services.EmailTaskServiceInstance)
	RegisterCategoryRoutes(group, db, services.MeetingTaskServiceInstance)
	RegisterCategoryRoutes(group, db, services.ProjectTaskServiceInstance)
	RegisterCategoryRoutes(group, db, services.HealthTaskServiceInstance)
	RegisterCategoryRoutes(group, db, services.PersonalTaskServiceInstance)
}

func listTasks[T any, PT services.CategoryTaskPtr[T]](c *gin.Context, db *database.Database, taskService *services.TaskService[T, PT]) {
	userID := c.MustGet("userID").(uuid.UUID)

	opts := services.ListOptions{
		Page:      atoiOrDefault(c.Query("page"), 1),
		Limit:     atoiOrDefault(c.Query("limit"), 10),
		SortBy:    c.Query("sort_by"),
		SortOrder: c.Query("sort_order"),
		Status:    c.Query("status"),
		Filters:   map[string]string{},
	}
	for _, col := range taskService.FilterColumns() {
		if val := c.Query(col); val != "" {
			opts.Filters[col] = val
		}
	}

	items, page, err := taskService.List(db, userID, opts)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items, "pagination": page})
}

func createTask[T any, PT services.CategoryTaskPtr[T]](c *gin.Context, db *database.Database, taskService *services.TaskService[T, PT]) {
	task := PT(new(T))
	if err := c.ShouldBindJSON(task); err != nil {
		respondBindError(c, err)
		return
	}

	userID := c.MustGet("userID").(uuid.UUID)
	created, err := taskService.Create(db, task, userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func getTask[T any, PT services.CategoryTaskPtr[T]](c *gin.Context) {
	task := c.MustGet(middleware.ContextTaskKey).(PT)
	c.JSON(http.StatusOK, task)
}

func updateTask[T any, PT services.CategoryTaskPtr[T]](c *gin.Context, db *database.Database, taskService *services.TaskService[T, PT]) {
	patch := PT(new(T))
	if err := c.ShouldBindJSON(patch); err != nil {
		respondBindError(c, err)
		return
	}

	updated, err := taskService.Update(db, c.Param("id"), patch)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func deleteTask[T any, PT services.CategoryTaskPtr[T]](c *gin.Context, db *database.Database, taskService *services.TaskService[T, PT]) {
	if err := taskService.Delete(db, c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Task deleted"})
}

func taskStats[T any, PT services.CategoryTaskPtr[T]](c *gin.Context, db *database.Database, taskService *services.TaskService[T, PT]) {
	userID := c.MustGet("userID").(uuid.UUID)

	period := atoiOrDefault(c.Query("period"), services.DefaultStatsPeriodDays)
	stats, err := taskService.Stats(db, userID, period)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

func atoiOrDefault(s string, def int) int {
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return def
	}
	return n
}
