package controller

import (
	"errors"
	"fmt"

	"github.com/gin-gonic/gin"

	"github.com/webpkbmannajah-sudo/e-course-pkbm-annajah/internal/service"
	"github.com/webpkbmannajah-sudo/e-course-pkbm-annajah/internal/util"
)

type ReportController struct {
	reports *service.ReportService
}

func NewReportController(reports *service.ReportService) *ReportController {
	return &ReportController{reports: reports}
}

// ExamResultsCSV godoc
// @Summary Download every graded result for an exam as CSV
// @Tags reports
// @Produce text/csv
// @Param examId path string true "Exam ID"
// @Success 200 {string} string "CSV file"
// @Failure 404 {object} util.Response
// @Security BearerAuth
// @Router /admin/reports/exams/{examId}/csv [get]
func (ctrl *ReportController) ExamResultsCSV(c *gin.Context) {
	data, fileName, err := ctrl.reports.ExamResultsCSV(c.Param("examId"))
	if err != nil {
		if errors.Is(err, util.ErrExamNotFound) {
			util.NotFound(c, err.Error())
			return
		}
		util.LogInternalError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", fileName))
	c.Data(200, "text/csv", data)
}

// StudentHistoryCSV godoc
// @Summary Download one student's score history as CSV
// @Tags reports
// @Produce text/csv
// @Param userId path string true "User ID"
// @Success 200 {string} string "CSV file"
// @Failure 404 {object} util.Response
// @Security BearerAuth
// @Router /admin/reports/students/{userId}/csv [get]
func (ctrl *ReportController) StudentHistoryCSV(c *gin.Context) {
	data, fileName, err := ctrl.reports.StudentHistoryCSV(c.Param("userId"))
	if err != nil {
		if errors.Is(err, util.ErrUserNotFound) {
			util.NotFound(c, err.Error())
			return
		}
		util.LogInternalError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", fileName))
	c.Data(200, "text/csv", data)
}
