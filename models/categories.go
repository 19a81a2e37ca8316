package models

import "time"

// WorkTask tracks professional work items, optionally billable.
type WorkTask struct {
	TaskBase          `gorm:"embedded"`
	WorkCategory      string  `json:"work_category"`
	EstimatedDuration int     `json:"estimated_duration"`
	ActualDuration    int     `json:"actual_duration"`
	IsBillable        bool    `json:"is_billable"`
	HourlyRate        float64 `json:"hourly_rate"`
	ClientName        string  `json:"client_name"`
	ProjectName       string  `json:"project_name"`
}

func (WorkTask) TableName() string { return "work_tasks" }

func (t *WorkTask) Base() *TaskBase { return &t.TaskBase }

func (t *WorkTask) Validate() error {
	errs := t.validateBase()
	validateEnum(&errs, "work_category", t.WorkCategory,
		"development", "meeting", "report", "planning", "review", "other")
	validateNonNegative(&errs, "estimated_duration", float64(t.EstimatedDuration))
	validateNonNegative(&errs, "actual_duration", float64(t.ActualDuration))
	validateNonNegative(&errs, "hourly_rate", t.HourlyRate)
	if t.IsBillable && t.HourlyRate == 0 {
		errs.add("hourly_rate", "billable tasks require an hourly rate")
	}
	return errs.orNil()
}

// FoodTask tracks meal planning and cooking.
type FoodTask struct {
	TaskBase    `gorm:"embedded"`
	MealType    string `json:"meal_type"`
	Cuisine     string `json:"cuisine"`
	Calories    int    `json:"calories"`
	CookingTime int    `json:"cooking_time"`
	Servings    int    `json:"servings"`
	IsHomemade  bool   `json:"is_homemade"`
}

func (FoodTask) TableName() string { return "food_tasks" }

func (t *FoodTask) Base() *TaskBase { return &t.TaskBase }

func (t *FoodTask) Validate() error {
	errs := t.validateBase()
	validateEnum(&errs, "meal_type", t.MealType, "breakfast", "lunch", "dinner", "snack")
	validateNonNegative(&errs, "calories", float64(t.Calories))
	validateNonNegative(&errs, "cooking_time", float64(t.CookingTime))
	validateNonNegative(&errs, "servings", float64(t.Servings))
	return errs.orNil()
}

// HomeworkTask tracks school assignments.
type HomeworkTask struct {
	TaskBase       `gorm:"embedded"`
	Subject        string `json:"subject"`
	CourseCode     string `json:"course_code"`
	AssignmentType string `json:"assignment_type"`
	Difficulty     string `json:"difficulty"`
	StudyTime      int    `json:"study_time"`
	Grade          string `json:"grade"`
}

func (HomeworkTask) TableName() string { return "homework_tasks" }

func (t *HomeworkTask) Base() *TaskBase { return &t.TaskBase }

func (t *HomeworkTask) Validate() error {
	errs := t.validateBase()
	if t.Subject == "" {
		errs.add("subject", "subject is required")
	}
	validateEnum(&errs, "assignment_type", t.AssignmentType,
		"essay", "problem-set", "reading", "lab", "exam", "project")
	validateEnum(&errs, "difficulty", t.Difficulty, "easy", "medium", "hard")
	validateNonNegative(&errs, "study_time", float64(t.StudyTime))
	return errs.orNil()
}

// EmailTask tracks correspondence that has to be written or answered.
type EmailTask struct {
	TaskBase         `gorm:"embedded"`
	EmailCategory    string     `json:"email_category"`
	Recipient        string     `json:"recipient"`
	IsUrgent         bool       `json:"is_urgent"`
	RequiresResponse bool       `json:"requires_response"`
	FollowUpDate     *time.Time `json:"follow_up_date,omitempty"`
}

func (EmailTask) TableName() string { return "email_tasks" }

func (t *EmailTask) Base() *TaskBase { return &t.TaskBase }

func (t *EmailTask) Validate() error {
	errs := t.validateBase()
	validateEnum(&errs, "email_category", t.EmailCategory,
		"work", "personal", "newsletter", "follow-up")
	return errs.orNil()
}

// MeetingTask tracks meetings to prepare for or attend.
type MeetingTask struct {
	TaskBase        `gorm:"embedded"`
	MeetingType     string `json:"meeting_type"`
	Location        string `json:"location"`
	MeetingLink     string `json:"meeting_link"`
	Organizer       string `json:"organizer"`
	AttendeeCount   int    `json:"attendee_count"`
	DurationMinutes int    `json:"duration_minutes"`
	Agenda          string `json:"agenda"`
}

func (MeetingTask) TableName() string { return "meeting_tasks" }

func (t *MeetingTask) Base() *TaskBase { return &t.TaskBase }

func (t *MeetingTask) Validate() error {
	errs := t.validateBase()
	validateEnum(&errs, "meeting_type", t.MeetingType,
		"standup", "one-on-one", "planning", "review", "client", "all-hands")
	validateNonNegative(&errs, "attendee_count", float64(t.AttendeeCount))
	validateNonNegative(&errs, "duration_minutes", float64(t.DurationMinutes))
	return errs.orNil()
}

// ProjectTask tracks work items inside a longer-running project.
type ProjectTask struct {
	TaskBase        `gorm:"embedded"`
	ProjectName     string  `json:"project_name"`
	Phase           string  `json:"phase"`
	Budget          float64 `json:"budget"`
	TeamSize        int     `json:"team_size"`
	Milestone       string  `json:"milestone"`
	CompletionPct   int     `json:"completion_pct"`
}

func (ProjectTask) TableName() string { return "project_tasks" }

func (t *ProjectTask) Base() *TaskBase { return &t.TaskBase }

func (t *ProjectTask) Validate() error {
	errs := t.validateBase()
	if t.ProjectName == "" {
		errs.add("project_name", "project_name is required")
	}
	validateEnum(&errs, "phase", t.Phase,
		"planning", "design", "development", "testing", "deployment", "maintenance")
	validateNonNegative(&errs, "budget", t.Budget)
	validateNonNegative(&errs, "team_size", float64(t.TeamSize))
	if t.CompletionPct < 0 || t.CompletionPct > 100 {
		errs.add("completion_pct", "must be between 0 and 100")
	}
	return errs.orNil()
}

// HealthTask tracks appointments, exercise and medication.
type HealthTask struct {
	TaskBase        `gorm:"embedded"`
	HealthCategory  string `json:"health_category"`
	DurationMinutes int    `json:"duration_minutes"`
	Intensity       string `json:"intensity"`
	CaloriesBurned  int    `json:"calories_burned"`
	DoctorName      string `json:"doctor_name"`
	MedicationDose  string `json:"medication_dose"`
}

func (HealthTask) TableName() string { return "health_tasks" }

func (t *HealthTask) Base() *TaskBase { return &t.TaskBase }

func (t *HealthTask) Validate() error {
	errs := t.validateBase()
	validateEnum(&errs, "health_category", t.HealthCategory,
		"exercise", "medication", "appointment", "diet", "checkup", "therapy")
	validateEnum(&errs, "intensity", t.Intensity, "low", "moderate", "high")
	validateNonNegative(&errs, "duration_minutes", float64(t.DurationMinutes))
	validateNonNegative(&errs, "calories_burned", float64(t.CaloriesBurned))
	return errs.orNil()
}

// PersonalTask is the catch-all category for everything else.
type PersonalTask struct {
	TaskBase          `gorm:"embedded"`
	PersonalCategory  string  `json:"personal_category"`
	Location          string  `json:"location"`
	Budget            float64 `json:"budget"`
	IsRecurring       bool    `json:"is_recurring"`
	RecurrencePattern string  `json:"recurrence_pattern"`
}

func (PersonalTask) TableName() string { return "personal_tasks" }

func (t *PersonalTask) Base() *TaskBase { return &t.TaskBase }

func (t *PersonalTask) Validate() error {
	errs := t.validateBase()
	validateEnum(&errs, "personal_category", t.PersonalCategory,
		"errand", "hobby", "family", "social", "finance", "travel", "other")
	validateEnum(&errs, "recurrence_pattern", t.RecurrencePattern,
		"daily", "weekly", "monthly", "yearly")
	if t.IsRecurring && t.RecurrencePattern == "" {
		errs.add("recurrence_pattern", "recurring tasks require a recurrence pattern")
	}
	validateNonNegative(&errs, "budget", t.Budget)
	return errs.orNil()
}
