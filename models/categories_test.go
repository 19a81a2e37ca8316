package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func validBase(title string) TaskBase {
	return TaskBase{Title: title, Priority: PriorityMedium, Status: StatusPending}
}

func TestRegistryCoversEveryCategory(t *testing.T) {
	types := []TaskType{
		TaskTypeWork, TaskTypeFood, TaskTypeHomework, TaskTypeEmail,
		TaskTypeMeeting, TaskTypeProject, TaskTypeHealth, TaskTypePersonal,
	}
	assert.Len(t, Categories, len(types))

	paths := map[string]bool{}
	for _, tt := range types {
		desc, ok := Categories[tt]
		assert.True(t, ok, "missing descriptor for %s", tt)
		assert.Equal(t, tt, desc.Type)
		assert.NotEmpty(t, desc.Path)
		assert.NotEmpty(t, desc.StatsDimension)
		assert.False(t, paths[desc.Path], "duplicate path %s", desc.Path)
		paths[desc.Path] = true
	}
}

func TestWorkTaskValidate(t *testing.T) {
	task := WorkTask{
		TaskBase:     validBase("Quarterly report"),
		WorkCategory: "report",
		IsBillable:   true,
		HourlyRate:   90,
	}
	assert.NoError(t, task.Validate())

	task.WorkCategory = "golf"
	assert.Error(t, task.Validate())

	task.WorkCategory = "report"
	task.HourlyRate = 0
	err := task.Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "hourly_rate")

	task.IsBillable = false
	assert.NoError(t, task.Validate())
}

func TestFoodTaskValidate(t *testing.T) {
	task := FoodTask{TaskBase: validBase("Meal prep"), MealType: "dinner", Calories: 600}
	assert.NoError(t, task.Validate())

	task.MealType = "brunch"
	assert.Error(t, task.Validate())

	task.MealType = "lunch"
	task.Calories = -1
	assert.Error(t, task.Validate())
}

func TestHomeworkTaskValidate(t *testing.T) {
	task := HomeworkTask{TaskBase: validBase("Essay draft")}
	err := task.Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "subject")

	task.Subject = "History"
	task.AssignmentType = "essay"
	task.Difficulty = "medium"
	assert.NoError(t, task.Validate())
}

func TestProjectTaskValidate(t *testing.T) {
	task := ProjectTask{TaskBase: validBase("Migrate billing"), ProjectName: "billing-v2", Phase: "development"}
	assert.NoError(t, task.Validate())

	task.CompletionPct = 150
	err := task.Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "completion_pct")
}

func TestPersonalTaskValidate(t *testing.T) {
	task := PersonalTask{TaskBase: validBase("Gym membership"), PersonalCategory: "finance"}
	assert.NoError(t, task.Validate())

	task.IsRecurring = true
	err := task.Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "recurrence_pattern")

	task.RecurrencePattern = "monthly"
	assert.NoError(t, task.Validate())
}

func TestCategoryConstraintIndependentOfBase(t *testing.T) {
	// A task passing every base rule must still fail on its category rules.
	task := HealthTask{TaskBase: validBase("Morning run"), Intensity: "brutal"}

	var errs ValidationErrors
	assert.ErrorAs(t, task.Validate(), &errs)
	assert.Equal(t, "intensity", errs[0].Field)
}

func TestWorkTaskJSONRoundTrip(t *testing.T) {
	task := WorkTask{
		TaskBase:          validBase("Client demo"),
		WorkCategory:      "meeting",
		EstimatedDuration: 90,
		ActualDuration:    105,
		IsBillable:        true,
		HourlyRate:        120.5,
		ClientName:        "Acme",
		ProjectName:       "rollout",
	}

	data, err := json.Marshal(&task)
	assert.NoError(t, err)

	var decoded WorkTask
	assert.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, task.Title, decoded.Title)
	assert.Equal(t, task.WorkCategory, decoded.WorkCategory)
	assert.Equal(t, task.HourlyRate, decoded.HourlyRate)
	assert.Equal(t, task.ClientName, decoded.ClientName)
}
