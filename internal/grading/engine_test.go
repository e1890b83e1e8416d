package grading

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/webpkbmannajah-sudo/e-course-pkbm-annajah/internal/model"
)

func mcq(id, text string, weight float64, choices ...model.Choice) model.Question {
	q := model.Question{
		QuestionText: text,
		Weight:       weight,
		QuestionType: model.QuestionTypeMCQ,
		Choices:      choices,
	}
	q.ID = id
	return q
}

func choice(id, text string, correct bool) model.Choice {
	c := model.Choice{ChoiceText: text, IsCorrect: correct}
	c.ID = id
	return c
}

func TestScore_WeightedMix(t *testing.T) {
	questions := []model.Question{
		mcq("q1", "1 + 1 = ?", 1,
			choice("c1", "2", true),
			choice("c2", "3", false),
		),
		mcq("q2", "2 * 3 = ?", 2,
			choice("c3", "5", false),
			choice("c4", "6", true),
		),
	}
	answers := map[string]string{"q1": "c1", "q2": "c3"}

	result := Score(answers, questions)

	assert.Equal(t, 1.0, result.TotalScore)
	assert.Equal(t, 3.0, result.MaxScore)
	assert.Equal(t, 33.33, result.Percentage)
	assert.True(t, result.IsPassed)
	require.Len(t, result.Breakdown, 2)
	assert.True(t, result.Breakdown[0].IsCorrect)
	assert.False(t, result.Breakdown[1].IsCorrect)
}

func TestScore_UnansweredDefaultWeight(t *testing.T) {
	questions := []model.Question{
		mcq("q1", "unanswered", 0, // zero-ish weight falls back to 1.0
			choice("c1", "yes", true),
			choice("c2", "no", false),
		),
	}

	result := Score(map[string]string{}, questions)

	assert.Equal(t, 0.0, result.TotalScore)
	assert.Equal(t, 1.0, result.MaxScore)
	assert.Equal(t, 0.0, result.Percentage)
	require.Len(t, result.Breakdown, 1)
	item := result.Breakdown[0]
	assert.False(t, item.IsCorrect)
	assert.Nil(t, item.SelectedChoiceID)
	assert.Nil(t, item.SelectedChoiceText)
	assert.Equal(t, "c1", item.CorrectChoiceID)
	assert.Equal(t, "yes", item.CorrectChoiceText)
}

func TestScore_EssayExcluded(t *testing.T) {
	essay := model.Question{QuestionText: "explain", Weight: 5, QuestionType: model.QuestionTypeEssay}
	essay.ID = "e1"
	questions := []model.Question{
		essay,
		mcq("q1", "pick one", 2, choice("c1", "a", true)),
	}

	result := Score(map[string]string{"q1": "c1", "e1": "ignored"}, questions)

	require.Len(t, result.Breakdown, 1)
	assert.Equal(t, "q1", result.Breakdown[0].QuestionID)
	assert.Equal(t, 2.0, result.MaxScore)
	assert.Equal(t, 2.0, result.TotalScore)
	assert.Equal(t, 100.0, result.Percentage)
}

func TestScore_NoQuestions(t *testing.T) {
	result := Score(map[string]string{"q1": "c1"}, nil)

	assert.Equal(t, 0.0, result.MaxScore)
	assert.Equal(t, 0.0, result.Percentage)
	assert.True(t, result.IsPassed)
	assert.Empty(t, result.Breakdown)
}

func TestGenerateBreakdown_MalformedData(t *testing.T) {
	t.Run("no correct choice degrades to wrong", func(t *testing.T) {
		questions := []model.Question{
			mcq("q1", "broken", 1,
				choice("c1", "a", false),
				choice("c2", "b", false),
			),
		}
		breakdown := GenerateBreakdown(map[string]string{"q1": "c1"}, questions)

		require.Len(t, breakdown, 1)
		assert.False(t, breakdown[0].IsCorrect)
		assert.Equal(t, "", breakdown[0].CorrectChoiceID)
		assert.Equal(t, "", breakdown[0].CorrectChoiceText)
		require.NotNil(t, breakdown[0].SelectedChoiceText)
		assert.Equal(t, "a", *breakdown[0].SelectedChoiceText)
	})

	t.Run("dangling choice id keeps id, loses text", func(t *testing.T) {
		questions := []model.Question{
			mcq("q1", "q", 1, choice("c1", "a", true)),
		}
		breakdown := GenerateBreakdown(map[string]string{"q1": "ghost"}, questions)

		require.Len(t, breakdown, 1)
		assert.False(t, breakdown[0].IsCorrect)
		require.NotNil(t, breakdown[0].SelectedChoiceID)
		assert.Equal(t, "ghost", *breakdown[0].SelectedChoiceID)
		assert.Nil(t, breakdown[0].SelectedChoiceText)
	})

	t.Run("breakdown preserves question order", func(t *testing.T) {
		questions := []model.Question{
			mcq("q2", "second listed first", 1, choice("c1", "a", true)),
			mcq("q1", "first listed second", 1, choice("c2", "b", true)),
		}
		breakdown := GenerateBreakdown(nil, questions)

		require.Len(t, breakdown, 2)
		assert.Equal(t, "q2", breakdown[0].QuestionID)
		assert.Equal(t, "q1", breakdown[1].QuestionID)
	})
}

func TestWeightedScore_Rounding(t *testing.T) {
	breakdown := []model.ScoreBreakdownItem{
		{Weight: 0.1, IsCorrect: true},
		{Weight: 0.2, IsCorrect: true},
		{Weight: 0.3, IsCorrect: false},
	}

	total, max := WeightedScore(breakdown)

	assert.Equal(t, 0.3, total)
	assert.Equal(t, 0.6, max)
}

func TestScore_PercentageBounds(t *testing.T) {
	cases := []struct {
		name     string
		answers  map[string]string
		expected float64
	}{
		{"all correct", map[string]string{"q1": "c1", "q2": "c3", "q3": "c5"}, 100},
		{"two thirds", map[string]string{"q1": "c1", "q2": "c3"}, 66.67},
		{"one third", map[string]string{"q1": "c1"}, 33.33},
		{"none", nil, 0},
	}

	questions := []model.Question{
		mcq("q1", "a", 1, choice("c1", "x", true), choice("c2", "y", false)),
		mcq("q2", "b", 1, choice("c3", "x", true), choice("c4", "y", false)),
		mcq("q3", "c", 1, choice("c5", "x", true), choice("c6", "y", false)),
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			result := Score(tc.answers, questions)
			assert.Equal(t, tc.expected, result.Percentage)
			assert.GreaterOrEqual(t, result.Percentage, 0.0)
			assert.LessOrEqual(t, result.Percentage, 100.0)
		})
	}
}

func TestScore_Deterministic(t *testing.T) {
	questions := []model.Question{
		mcq("q1", "a", 1.5, choice("c1", "x", true), choice("c2", "y", false)),
		mcq("q2", "b", 2.5, choice("c3", "x", false), choice("c4", "y", true)),
	}
	answers := map[string]string{"q1": "c1", "q2": "c3"}

	first := Score(answers, questions)
	second := Score(answers, questions)

	assert.Equal(t, first, second)
}
