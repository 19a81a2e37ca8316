package models

// CategoryDescriptor holds the static metadata for one task category: the
// route path segment, the column the statistics endpoint groups by, and the
// category columns the list endpoint may filter on.
type CategoryDescriptor struct {
	Type          TaskType
	Path          string
	StatsDimension string
	FilterColumns []string
}

// Categories maps each discriminator value to its descriptor. Resolved once
// at startup; handlers and services never inspect types at runtime.
var Categories = map[TaskType]CategoryDescriptor{
	TaskTypeWork: {
		Type:           TaskTypeWork,
		Path:           "work-tasks",
		StatsDimension: "work_category",
		FilterColumns:  []string{"work_category", "is_billable", "client_name", "project_name", "priority"},
	},
	TaskTypeFood: {
		Type:           TaskTypeFood,
		Path:           "food-tasks",
		StatsDimension: "meal_type",
		FilterColumns:  []string{"meal_type", "cuisine", "is_homemade", "priority"},
	},
	TaskTypeHomework: {
		Type:           TaskTypeHomework,
		Path:           "homework-tasks",
		StatsDimension: "subject",
		FilterColumns:  []string{"subject", "course_code", "assignment_type", "difficulty", "priority"},
	},
	TaskTypeEmail: {
		Type:           TaskTypeEmail,
		Path:           "email-tasks",
		StatsDimension: "email_category",
		FilterColumns:  []string{"email_category", "recipient", "is_urgent", "requires_response", "priority"},
	},
	TaskTypeMeeting: {
		Type:           TaskTypeMeeting,
		Path:           "meeting-tasks",
		StatsDimension: "meeting_type",
		FilterColumns:  []string{"meeting_type", "organizer", "location", "priority"},
	},
	TaskTypeProject: {
		Type:           TaskTypeProject,
		Path:           "project-tasks",
		StatsDimension: "phase",
		FilterColumns:  []string{"project_name", "phase", "milestone", "priority"},
	},
	TaskTypeHealth: {
		Type:           TaskTypeHealth,
		Path:           "health-tasks",
		StatsDimension: "health_category",
		FilterColumns:  []string{"health_category", "intensity", "doctor_name", "priority"},
	},
	TaskTypePersonal: {
		Type:           TaskTypePersonal,
		Path:           "personal-tasks",
		StatsDimension: "personal_category",
		FilterColumns:  []string{"personal_category", "location", "is_recurring", "priority"},
	},
}
