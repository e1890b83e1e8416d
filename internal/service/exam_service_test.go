package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/webpkbmannajah-sudo/e-course-pkbm-annajah/internal/model"
)

func TestBuildQuestion_Defaults(t *testing.T) {
	q := buildQuestion(QuestionInput{
		QuestionText: "unset weight and type",
		Choices: []ChoiceInput{
			{ChoiceText: "a", IsCorrect: true},
			{ChoiceText: "b"},
		},
	}, 3)

	assert.Equal(t, 1.0, q.Weight)
	assert.Equal(t, model.QuestionTypeMCQ, q.QuestionType)
	assert.Equal(t, 3, q.OrderNumber)
	require.Len(t, q.Choices, 2)
	assert.True(t, q.Choices[0].IsCorrect)
	assert.False(t, q.Choices[1].IsCorrect)
}

func TestBuildQuestion_ExplicitValues(t *testing.T) {
	q := buildQuestion(QuestionInput{
		ID:           "q-7",
		QuestionText: "essay",
		OrderNumber:  5,
		Weight:       2.5,
		QuestionType: model.QuestionTypeEssay,
		Choices: []ChoiceInput{
			{ID: "c-1", ChoiceText: "kept id"},
		},
	}, 0)

	assert.Equal(t, "q-7", q.ID)
	assert.Equal(t, 2.5, q.Weight)
	assert.Equal(t, model.QuestionTypeEssay, q.QuestionType)
	assert.Equal(t, 5, q.OrderNumber)
	require.Len(t, q.Choices, 1)
	assert.Equal(t, "c-1", q.Choices[0].ID)
}

func TestObjectName(t *testing.T) {
	name := ObjectName("materials", "Modul Matematika.pdf")

	assert.Contains(t, name, "materials/")
	assert.Contains(t, name, ".pdf")
	// unique per call
	assert.NotEqual(t, name, ObjectName("materials", "Modul Matematika.pdf"))
}

func TestObjectNameFromURL(t *testing.T) {
	assert.Equal(t, "materials/abc.pdf", ObjectNameFromURL("/uploads/materials/abc.pdf"))
	assert.Equal(t, "materials/abc.pdf", ObjectNameFromURL("http://host:8080/uploads/materials/abc.pdf"))
	assert.Equal(t, "bare/path.pdf", ObjectNameFromURL("/bare/path.pdf"))
}
