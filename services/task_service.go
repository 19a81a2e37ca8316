package services

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"time"

	"taskhive/taskhive/broker"
	"taskhive/taskhive/database"
	"taskhive/taskhive/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DefaultStatsPeriodDays is the trailing window the statistics endpoint uses
// when the caller does not pass one.
const DefaultStatsPeriodDays = 30

// CategoryTaskPtr constrains PT to "pointer to a category struct that
// implements CategoryTask". It lets one TaskService serve all eight category
// tables without reflection.
type CategoryTaskPtr[T any] interface {
	*T
	models.CategoryTask
}

// ExtraStatsFunc computes category-specific derived metrics on a query
// already scoped to the owner and the trailing window.
type ExtraStatsFunc func(tx *gorm.DB) (map[string]interface{}, error)

type ListOptions struct {
	Page      int
	Limit     int
	SortBy    string
	SortOrder string
	Status    string
	Filters   map[string]string
}

// Page describes one page of a list result.
type Page struct {
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
	Pages int64 `json:"pages"`
}

type StatsBucket struct {
	Value string `json:"value"`
	Count int64  `json:"count"`
}

type TaskStats struct {
	PeriodDays     int                    `json:"period_days"`
	Total          int64                  `json:"total"`
	Completed      int64                  `json:"completed"`
	CompletionRate float64                `json:"completion_rate"`
	Breakdown      []StatsBucket          `json:"breakdown"`
	Metrics        map[string]interface{} `json:"metrics,omitempty"`
}

// TaskService is the CRUD and statistics service for one task category. One
// instance per category is constructed at startup from the registry.
type TaskService[T any, PT CategoryTaskPtr[T]] struct {
	taskType   models.TaskType
	path       string
	statsDim   string
	filterCols []string
	extraStats ExtraStatsFunc
}

func NewTaskService[T any, PT CategoryTaskPtr[T]](taskType models.TaskType, extraStats ExtraStatsFunc) *TaskService[T, PT] {
	desc, ok := models.Categories[taskType]
	if !ok {
		panic(fmt.Sprintf("unknown task type %q", taskType))
	}
	return &TaskService[T, PT]{
		taskType:   taskType,
		path:       desc.Path,
		statsDim:   desc.StatsDimension,
		filterCols: desc.FilterColumns,
		extraStats: extraStats,
	}
}

func (s *TaskService[T, PT]) Type() models.TaskType { return s.taskType }

// Path is the route segment this category is served under.
func (s *TaskService[T, PT]) Path() string { return s.path }

// FilterColumns lists the category columns the list endpoint accepts as query
// filters.
func (s *TaskService[T, PT]) FilterColumns() []string { return s.filterCols }

// Create persists a new task. Owner and discriminator always come from the
// server side, never from the request body.
func (s *TaskService[T, PT]) Create(db *database.Database, task PT, userID uuid.UUID) (PT, error) {
	base := task.Base()
	base.ID = uuid.New()
	base.UserID = userID
	base.TaskType = s.taskType
	base.ApplyDefaults()

	if err := task.Validate(); err != nil {
		return nil, err
	}

	if err := db.DB.Create(task).Error; err != nil {
		return nil, err
	}

	broker.Publish(broker.TaskSubject, broker.NewEvent(
		broker.TaskCreated, string(s.taskType), base.UserID.String(),
		map[string]interface{}{"task_id": base.ID.String(), "task_type": string(s.taskType), "title": base.Title},
	))

	return task, nil
}

// GetByID resolves a task. A malformed identifier is an input error, distinct
// from an absent row.
func (s *TaskService[T, PT]) GetByID(db *database.Database, id string) (PT, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("%w: malformed task id", ErrInvalidInput)
	}

	var task T
	if err := db.DB.First(PT(&task), "id = ?", uid).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, err
	}
	return PT(&task), nil
}

var sortColumnPattern = regexp.MustCompile(`^[a-z][a-z0-9_]*$`)

// List returns one page of the owner's tasks with optional status and
// category-field filters. Sorting defaults to newest first.
func (s *TaskService[T, PT]) List(db *database.Database, userID uuid.UUID, opts ListOptions) ([]T, Page, error) {
	if opts.Page < 1 {
		opts.Page = 1
	}
	if opts.Limit < 1 {
		opts.Limit = 10
	}
	if opts.Limit > 100 {
		opts.Limit = 100
	}

	scope := func() *gorm.DB {
		q := db.DB.Model(PT(new(T))).Where("user_id = ?", userID)
		if opts.Status != "" {
			q = q.Where("status = ?", opts.Status)
		}
		for col, val := range opts.Filters {
			if s.allowedFilter(col) {
				q = q.Where(fmt.Sprintf("%s = ?", col), val)
			}
		}
		return q
	}

	var total int64
	if err := scope().Count(&total).Error; err != nil {
		return nil, Page{}, err
	}

	sortBy := opts.SortBy
	if !sortColumnPattern.MatchString(sortBy) {
		sortBy = "created_at"
	}
	direction := "DESC"
	if opts.SortOrder == "asc" {
		direction = "ASC"
	}

	items := []T{}
	err := scope().
		Order(sortBy + " " + direction).
		Offset((opts.Page - 1) * opts.Limit).
		Limit(opts.Limit).
		Find(&items).Error
	if err != nil {
		return nil, Page{}, err
	}

	page := Page{
		Page:  opts.Page,
		Limit: opts.Limit,
		Total: total,
		Pages: int64(math.Ceil(float64(total) / float64(opts.Limit))),
	}
	return items, page, nil
}

func (s *TaskService[T, PT]) allowedFilter(col string) bool {
	for _, c := range s.filterCols {
		if c == col {
			return true
		}
	}
	return false
}

// Update applies a partial update; zero-value fields in the patch leave the
// stored values untouched. The merged document must still satisfy the
// category constraints or the whole update is rolled back.
func (s *TaskService[T, PT]) Update(db *database.Database, id string, patch PT) (PT, error) {
	existing, err := s.GetByID(db, id)
	if err != nil {
		return nil, err
	}

	// Owner, identifier and discriminator are immutable.
	patchBase := patch.Base()
	patchBase.ID = uuid.Nil
	patchBase.UserID = uuid.Nil
	patchBase.TaskType = ""
	patchBase.CreatedAt = time.Time{}

	tx := db.DB.Begin()
	if tx.Error != nil {
		return nil, tx.Error
	}

	if err := tx.Model(existing).Updates(patch).Error; err != nil {
		tx.Rollback()
		return nil, err
	}

	var merged T
	if err := tx.First(PT(&merged), "id = ?", existing.Base().ID).Error; err != nil {
		tx.Rollback()
		return nil, err
	}
	if err := PT(&merged).Validate(); err != nil {
		tx.Rollback()
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		tx.Rollback()
		return nil, err
	}

	mergedBase := PT(&merged).Base()
	broker.Publish(broker.TaskSubject, broker.NewEvent(
		broker.TaskUpdated, string(s.taskType), mergedBase.UserID.String(),
		map[string]interface{}{"task_id": mergedBase.ID.String(), "task_type": string(s.taskType), "status": string(mergedBase.Status)},
	))

	return PT(&merged), nil
}

func (s *TaskService[T, PT]) Delete(db *database.Database, id string) error {
	existing, err := s.GetByID(db, id)
	if err != nil {
		return err
	}

	if err := db.DB.Delete(existing).Error; err != nil {
		return err
	}

	base := existing.Base()
	broker.Publish(broker.TaskSubject, broker.NewEvent(
		broker.TaskDeleted, string(s.taskType), base.UserID.String(),
		map[string]interface{}{"task_id": base.ID.String(), "task_type": string(s.taskType)},
	))

	return nil
}

// Stats aggregates the owner's tasks created inside the trailing window:
// totals, completion rate, counts grouped by the category dimension, and any
// category-specific derived metrics.
func (s *TaskService[T, PT]) Stats(db *database.Database, userID uuid.UUID, periodDays int) (TaskStats, error) {
	if periodDays <= 0 {
		periodDays = DefaultStatsPeriodDays
	}
	since := time.Now().UTC().AddDate(0, 0, -periodDays)

	scope := func() *gorm.DB {
		return db.DB.Model(PT(new(T))).Where("user_id = ? AND created_at >= ?", userID, since)
	}

	stats := TaskStats{PeriodDays: periodDays, Breakdown: []StatsBucket{}}

	if err := scope().Count(&stats.Total).Error; err != nil {
		return TaskStats{}, err
	}
	if err := scope().Where("status = ?", models.StatusCompleted).Count(&stats.Completed).Error; err != nil {
		return TaskStats{}, err
	}
	if stats.Total > 0 {
		stats.CompletionRate = float64(stats.Completed) / float64(stats.Total)
	}

	err := scope().
		Select(s.statsDim + " AS value, COUNT(*) AS count").
		Group(s.statsDim).
		Order("count DESC").
		Scan(&stats.Breakdown).Error
	if err != nil {
		return TaskStats{}, err
	}

	if s.extraStats != nil {
		metrics, err := s.extraStats(scope())
		if err != nil {
			return TaskStats{}, err
		}
		stats.Metrics = metrics
	}

	return stats, nil
}
