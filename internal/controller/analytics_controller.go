package controller

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/webpkbmannajah-sudo/e-course-pkbm-annajah/internal/service"
	"github.com/webpkbmannajah-sudo/e-course-pkbm-annajah/internal/util"
)

type AnalyticsController struct {
	analytics *service.AnalyticsService
}

func NewAnalyticsController(analytics *service.AnalyticsService) *AnalyticsController {
	return &AnalyticsController{analytics: analytics}
}

// Overview godoc
// @Summary Platform-wide counts and aggregate grading stats
// @Tags analytics
// @Produce json
// @Success 200 {object} util.Response{data=service.PlatformOverview}
// @Security BearerAuth
// @Router /admin/analytics/overview [get]
func (ctrl *AnalyticsController) Overview(c *gin.Context) {
	overview, err := ctrl.analytics.Overview()
	if err != nil {
		util.LogInternalError(c, err)
		return
	}

	util.Success(c, overview)
}

// ExamStatistics godoc
// @Summary Per-exam statistics with score distribution and student results
// @Tags analytics
// @Produce json
// @Param examId path string true "Exam ID"
// @Success 200 {object} util.Response{data=service.ExamStatistics}
// @Failure 404 {object} util.Response
// @Security BearerAuth
// @Router /admin/analytics/exams/{examId} [get]
func (ctrl *AnalyticsController) ExamStatistics(c *gin.Context) {
	stats, err := ctrl.analytics.ExamStatistics(c.Param("examId"))
	if err != nil {
		if errors.Is(err, util.ErrExamNotFound) {
			util.NotFound(c, err.Error())
			return
		}
		util.LogInternalError(c, err)
		return
	}

	util.Success(c, stats)
}

// QuestionDifficulty godoc
// @Summary Per-question correct rates for an exam
// @Tags analytics
// @Produce json
// @Param examId path string true "Exam ID"
// @Success 200 {object} util.Response{data=[]service.QuestionDifficulty}
// @Failure 404 {object} util.Response
// @Security BearerAuth
// @Router /admin/analytics/exams/{examId}/questions [get]
func (ctrl *AnalyticsController) QuestionDifficulty(c *gin.Context) {
	difficulty, err := ctrl.analytics.QuestionDifficulty(c.Param("examId"))
	if err != nil {
		if errors.Is(err, util.ErrExamNotFound) {
			util.NotFound(c, err.Error())
			return
		}
		util.LogInternalError(c, err)
		return
	}

	util.Success(c, difficulty)
}

// StudentPerformance godoc
// @Summary One student's score history and aggregates
// @Tags analytics
// @Produce json
// @Param userId path string true "User ID"
// @Success 200 {object} util.Response{data=service.StudentPerformance}
// @Failure 404 {object} util.Response
// @Security BearerAuth
// @Router /admin/analytics/students/{userId} [get]
func (ctrl *AnalyticsController) StudentPerformance(c *gin.Context) {
	perf, err := ctrl.analytics.StudentPerformance(c.Param("userId"))
	if err != nil {
		if errors.Is(err, util.ErrUserNotFound) {
			util.NotFound(c, err.Error())
			return
		}
		util.LogInternalError(c, err)
		return
	}

	util.Success(c, perf)
}

// TopStudents godoc
// @Summary Students ranked by average percentage
// @Tags analytics
// @Produce json
// @Param limit query int false "Maximum entries (default 10)"
// @Success 200 {object} util.Response{data=[]service.StudentPerformance}
// @Security BearerAuth
// @Router /admin/analytics/top-students [get]
func (ctrl *AnalyticsController) TopStudents(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	ranked, err := ctrl.analytics.TopStudents(limit)
	if err != nil {
		util.LogInternalError(c, err)
		return
	}

	util.Success(c, ranked)
}
