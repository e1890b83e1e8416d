package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/webpkbmannajah-sudo/e-course-pkbm-annajah/internal/model"
	"github.com/webpkbmannajah-sudo/e-course-pkbm-annajah/internal/service"
	"github.com/webpkbmannajah-sudo/e-course-pkbm-annajah/internal/util"
)

type GradingController struct {
	grading *service.GradingService
	scores  *service.ScoreService
}

func NewGradingController(grading *service.GradingService, scores *service.ScoreService) *GradingController {
	return &GradingController{grading: grading, scores: scores}
}

type gradeAttemptRequest struct {
	AttemptID string `json:"attemptId" binding:"required"`
}

// GradeAttempt godoc
// @Summary Grade (or re-grade) one attempt
// @Tags grading
// @Accept json
// @Produce json
// @Param request body gradeAttemptRequest true "Attempt to grade"
// @Success 200 {object} util.Response{data=model.Score}
// @Failure 404 {object} util.Response
// @Failure 502 {object} util.Response
// @Security BearerAuth
// @Router /admin/grading/auto [post]
func (ctrl *GradingController) GradeAttempt(c *gin.Context) {
	var req gradeAttemptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.BadRequest(c, err.Error())
		return
	}

	score, err := ctrl.grading.GradeAttempt(req.AttemptID)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrAttemptNotFound):
			util.NotFound(c, err.Error())
		case errors.Is(err, util.ErrQuestionFetch):
			util.Error(c, http.StatusBadGateway, err.Error())
		case errors.Is(err, util.ErrScorePersist):
			util.LogInternalError(c, err)
		default:
			util.LogInternalError(c, err)
		}
		return
	}

	util.Success(c, score)
}

type gradeExamRequest struct {
	ExamID string `json:"examId" binding:"required"`
}

// GradeExam godoc
// @Summary Grade every attempt of an exam
// @Description Sequentially grades all attempts. Attempts whose results
// @Description could not be persisted are counted as failed; the rest
// @Description succeed independently.
// @Tags grading
// @Accept json
// @Produce json
// @Param request body gradeExamRequest true "Exam to grade"
// @Success 200 {object} util.Response{data=service.BulkGradingOutcome}
// @Failure 404 {object} util.Response
// @Failure 502 {object} util.Response
// @Security BearerAuth
// @Router /admin/grading/bulk [post]
func (ctrl *GradingController) GradeExam(c *gin.Context) {
	var req gradeExamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.BadRequest(c, err.Error())
		return
	}

	outcome, err := ctrl.grading.GradeExam(req.ExamID)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrNoAttempts):
			util.NotFound(c, err.Error())
		case errors.Is(err, util.ErrQuestionFetch):
			util.Error(c, http.StatusBadGateway, err.Error())
		default:
			util.LogInternalError(c, err)
		}
		return
	}

	util.Success(c, outcome)
}

// ListScores godoc
// @Summary List scores for an exam, optionally for one student
// @Tags grading
// @Produce json
// @Param examId path string true "Exam ID"
// @Param userId query string false "Narrow to one student"
// @Success 200 {object} util.Response{data=[]model.Score}
// @Security BearerAuth
// @Router /admin/scores/{examId} [get]
func (ctrl *GradingController) ListScores(c *gin.Context) {
	scores, err := ctrl.scores.ListByExam(c.Param("examId"), c.Query("userId"))
	if err != nil {
		util.LogInternalError(c, err)
		return
	}

	util.Success(c, scores)
}

// ExamScores godoc
// @Summary List scores for an exam; students only see their own
// @Tags grading
// @Produce json
// @Param examId path string true "Exam ID"
// @Param userId query string false "Narrow to one student (admin only)"
// @Success 200 {object} util.Response{data=[]model.Score}
// @Security BearerAuth
// @Router /scores/{examId} [get]
func (ctrl *GradingController) ExamScores(c *gin.Context) {
	claims := util.GetUserFromContext(c)
	if claims == nil {
		util.Unauthorized(c)
		return
	}

	userID := c.Query("userId")
	if claims.Role != model.Admin {
		userID = claims.UserID
	}

	scores, err := ctrl.scores.ListByExam(c.Param("examId"), userID)
	if err != nil {
		util.LogInternalError(c, err)
		return
	}

	util.Success(c, scores)
}

// MyScores godoc
// @Summary List the caller's scores across all exams
// @Tags grading
// @Produce json
// @Success 200 {object} util.Response{data=[]model.Score}
// @Security BearerAuth
// @Router /scores/my [get]
func (ctrl *GradingController) MyScores(c *gin.Context) {
	claims := util.GetUserFromContext(c)
	if claims == nil {
		util.Unauthorized(c)
		return
	}

	scores, err := ctrl.scores.ListByUser(claims.UserID)
	if err != nil {
		util.LogInternalError(c, err)
		return
	}

	util.Success(c, scores)
}
