// Package grading computes weighted scores for MCQ exam attempts. It is
// pure: no storage, no clock, total over any well-typed input.
package grading

import (
	"math"

	"github.com/webpkbmannajah-sudo/e-course-pkbm-annajah/internal/model"
)

// Result is the outcome of grading one attempt against one question set.
type Result struct {
	TotalScore float64                    `json:"totalScore"`
	MaxScore   float64                    `json:"maxScore"`
	Percentage float64                    `json:"percentage"`
	IsPassed   bool                       `json:"isPassed"`
	Breakdown  []model.ScoreBreakdownItem `json:"breakdown"`
}

// Score grades an attempt's answers (question_id -> choice_id) against the
// exam's questions. Only MCQ questions participate; essay questions are
// excluded from the breakdown entirely. There is no minimum passing score
// (KKM), so every graded attempt is considered passed.
func Score(answers map[string]string, questions []model.Question) Result {
	breakdown := GenerateBreakdown(answers, questions)
	totalScore, maxScore := WeightedScore(breakdown)

	percentage := 0.0
	if maxScore > 0 {
		percentage = math.Round(totalScore/maxScore*10000) / 100
	}

	return Result{
		TotalScore: totalScore,
		MaxScore:   maxScore,
		Percentage: percentage,
		IsPassed:   true,
		Breakdown:  breakdown,
	}
}

// GenerateBreakdown produces one ScoreBreakdownItem per MCQ question, in the
// question input order. Malformed data never errors: a question without a
// correct choice is unanswerable-correctly (empty correct text), and an
// answer pointing at an unknown choice keeps its id but loses its text.
func GenerateBreakdown(answers map[string]string, questions []model.Question) []model.ScoreBreakdownItem {
	breakdown := make([]model.ScoreBreakdownItem, 0, len(questions))

	for _, q := range questions {
		if q.QuestionType != model.QuestionTypeMCQ {
			continue
		}

		weight := q.Weight
		if weight == 0 {
			weight = 1.0
		}

		var correctChoice *model.Choice
		var selectedChoice *model.Choice
		selectedID, answered := answers[q.ID]
		if selectedID == "" {
			answered = false
		}

		for i := range q.Choices {
			c := &q.Choices[i]
			if c.IsCorrect && correctChoice == nil {
				correctChoice = c
			}
			if answered && c.ID == selectedID {
				selectedChoice = c
			}
		}

		item := model.ScoreBreakdownItem{
			QuestionID:   q.ID,
			QuestionText: q.QuestionText,
			Weight:       weight,
			IsCorrect:    answered && correctChoice != nil && selectedID == correctChoice.ID,
		}
		if answered {
			id := selectedID
			item.SelectedChoiceID = &id
		}
		if selectedChoice != nil {
			text := selectedChoice.ChoiceText
			item.SelectedChoiceText = &text
		}
		if correctChoice != nil {
			item.CorrectChoiceID = correctChoice.ID
			item.CorrectChoiceText = correctChoice.ChoiceText
		}

		breakdown = append(breakdown, item)
	}

	return breakdown
}

// WeightedScore sums the breakdown into (totalScore, maxScore), both rounded
// to two decimal places.
func WeightedScore(breakdown []model.ScoreBreakdownItem) (totalScore, maxScore float64) {
	for _, item := range breakdown {
		maxScore += item.Weight
		if item.IsCorrect {
			totalScore += item.Weight
		}
	}
	return round2(totalScore), round2(maxScore)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
