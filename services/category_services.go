package services

import (
	"taskhive/taskhive/models"

	"gorm.io/gorm"
)

// One service instance per task category, resolved at startup from the
// category registry.
var (
	WorkTaskServiceInstance     = NewTaskService[models.WorkTask, *models.WorkTask](models.TaskTypeWork, workStats)
	FoodTaskServiceInstance     = NewTaskService[models.FoodTask, *models.FoodTask](models.TaskTypeFood, foodStats)
	HomeworkTaskServiceInstance = NewTaskService[models.HomeworkTask, *models.HomeworkTask](models.TaskTypeHomework, homeworkStats)
	EmailTaskServiceInstance    = NewTaskService[models.EmailTask, *models.EmailTask](models.TaskTypeEmail, emailStats)
	MeetingTaskServiceInstance  = NewTaskService[models.MeetingTask, *models.MeetingTask](models.TaskTypeMeeting, meetingStats)
	ProjectTaskServiceInstance  = NewTaskService[models.ProjectTask, *models.ProjectTask](models.TaskTypeProject, projectStats)
	HealthTaskServiceInstance   = NewTaskService[models.HealthTask, *models.HealthTask](models.TaskTypeHealth, healthStats)
	PersonalTaskServiceInstance = NewTaskService[models.PersonalTask, *models.PersonalTask](models.TaskTypePersonal, personalStats)
)

func workStats(tx *gorm.DB) (map[string]interface{}, error) {
	var row struct {
		BillableCount   int64
		BillableMinutes float64
		BillableAmount  float64
		AvgHourlyRate   float64
	}
	err := tx.Where("is_billable = ?", true).
		Select("COUNT(*) AS billable_count, " +
			"COALESCE(SUM(actual_duration), 0) AS billable_minutes, " +
			"COALESCE(SUM(actual_duration / 60.0 * hourly_rate), 0) AS billable_amount, " +
			"COALESCE(AVG(hourly_rate), 0) AS avg_hourly_rate").
		Scan(&row).Error
	if err != nil {
		return nil, err
	}
	return map[string]interface{}{
		"billable_count":  row.BillableCount,
		"billable_hours":  row.BillableMinutes / 60.0,
		"billable_amount": row.BillableAmount,
		"avg_hourly_rate": row.AvgHourlyRate,
	}, nil
}

func foodStats(tx *gorm.DB) (map[string]interface{}, error) {
	var row struct {
		TotalCalories int64
		AvgCalories   float64
		HomemadeCount int64
	}
	err := tx.
		Select("COALESCE(SUM(calories), 0) AS total_calories, " +
			"COALESCE(AVG(calories), 0) AS avg_calories, " +
			"COUNT(CASE WHEN is_homemade THEN 1 END) AS homemade_count").
		Scan(&row).Error
	if err != nil {
		return nil, err
	}
	return map[string]interface{}{
		"total_calories": row.TotalCalories,
		"avg_calories":   row.AvgCalories,
		"homemade_count": row.HomemadeCount,
	}, nil
}

func homeworkStats(tx *gorm.DB) (map[string]interface{}, error) {
	var row struct {
		StudyMinutes int64
		AvgStudyTime float64
	}
	err := tx.
		Select("COALESCE(SUM(study_time), 0) AS study_minutes, " +
			"COALESCE(AVG(study_time), 0) AS avg_study_time").
		Scan(&row).Error
	if err != nil {
		return nil, err
	}
	return map[string]interface{}{
		"study_hours":    float64(row.StudyMinutes) / 60.0,
		"avg_study_time": row.AvgStudyTime,
	}, nil
}

func emailStats(tx *gorm.DB) (map[string]interface{}, error) {
	var row struct {
		UrgentCount   int64
		AwaitingCount int64
	}
	err := tx.
		Select("COUNT(CASE WHEN is_urgent THEN 1 END) AS urgent_count, " +
			"COUNT(CASE WHEN requires_response AND status <> 'completed' THEN 1 END) AS awaiting_count").
		Scan(&row).Error
	if err != nil {
		return nil, err
	}
	return map[string]interface{}{
		"urgent_count":            row.UrgentCount,
		"awaiting_response_count": row.AwaitingCount,
	}, nil
}

func meetingStats(tx *gorm.DB) (map[string]interface{}, error) {
	var row struct {
		TotalMinutes int64
		AvgAttendees float64
	}
	err := tx.
		Select("COALESCE(SUM(duration_minutes), 0) AS total_minutes, " +
			"COALESCE(AVG(attendee_count), 0) AS avg_attendees").
		Scan(&row).Error
	if err != nil {
		return nil, err
	}
	return map[string]interface{}{
		"meeting_hours": float64(row.TotalMinutes) / 60.0,
		"avg_attendees": row.AvgAttendees,
	}, nil
}

func projectStats(tx *gorm.DB) (map[string]interface{}, error) {
	var row struct {
		TotalBudget   float64
		AvgCompletion float64
	}
	err := tx.
		Select("COALESCE(SUM(budget), 0) AS total_budget, " +
			"COALESCE(AVG(completion_pct), 0) AS avg_completion").
		Scan(&row).Error
	if err != nil {
		return nil, err
	}
	return map[string]interface{}{
		"total_budget":   row.TotalBudget,
		"avg_completion": row.AvgCompletion,
	}, nil
}

func healthStats(tx *gorm.DB) (map[string]interface{}, error) {
	var row struct {
		ActiveMinutes  int64
		CaloriesBurned int64
	}
	err := tx.
		Select("COALESCE(SUM(duration_minutes), 0) AS active_minutes, " +
			"COALESCE(SUM(calories_burned), 0) AS calories_burned").
		Scan(&row).Error
	if err != nil {
		return nil, err
	}
	return map[string]interface{}{
		"active_hours":    float64(row.ActiveMinutes) / 60.0,
		"calories_burned": row.CaloriesBurned,
	}, nil
}

func personalStats(tx *gorm.DB) (map[string]interface{}, error) {
	var row struct {
		RecurringCount int64
		TotalBudget    float64
	}
	err := tx.
		Select("COUNT(CASE WHEN is_recurring THEN 1 END) AS recurring_count, " +
			"COALESCE(SUM(budget), 0) AS total_budget").
		Scan(&row).Error
	if err != nil {
		return nil, err
	}
	return map[string]interface{}{
		"recurring_count": row.RecurringCount,
		"total_budget":    row.TotalBudget,
	}, nil
}
