package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/webpkbmannajah-sudo/e-course-pkbm-annajah/internal/service"
	"github.com/webpkbmannajah-sudo/e-course-pkbm-annajah/internal/util"
)

type AttemptController struct {
	attempts *service.AttemptService
}

func NewAttemptController(attempts *service.AttemptService) *AttemptController {
	return &AttemptController{attempts: attempts}
}

// Submit godoc
// @Summary Submit exam answers
// @Description Stores the attempt and grades it immediately. Submitting an
// @Description already-attempted exam fails with 409 unless retake is set.
// @Tags attempts
// @Accept json
// @Produce json
// @Param request body service.SubmitAttemptRequest true "Answers payload"
// @Success 201 {object} util.Response{data=service.SubmitAttemptResponse}
// @Failure 404 {object} util.Response
// @Failure 409 {object} util.Response
// @Security BearerAuth
// @Router /attempts [post]
func (ctrl *AttemptController) Submit(c *gin.Context) {
	claims := util.GetUserFromContext(c)
	if claims == nil {
		util.Unauthorized(c)
		return
	}

	var req service.SubmitAttemptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.BadRequest(c, err.Error())
		return
	}

	resp, err := ctrl.attempts.Submit(claims.UserID, &req)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrExamNotFound):
			util.NotFound(c, err.Error())
		case errors.Is(err, util.ErrAlreadyAttempted):
			util.Error(c, http.StatusConflict, err.Error())
		default:
			util.LogInternalError(c, err)
		}
		return
	}

	util.Created(c, resp)
}

// GetOwn godoc
// @Summary Get the caller's attempt and score for an exam
// @Tags attempts
// @Produce json
// @Param examId path string true "Exam ID"
// @Success 200 {object} util.Response{data=service.SubmitAttemptResponse}
// @Failure 404 {object} util.Response
// @Security BearerAuth
// @Router /attempts/exam/{examId} [get]
func (ctrl *AttemptController) GetOwn(c *gin.Context) {
	claims := util.GetUserFromContext(c)
	if claims == nil {
		util.Unauthorized(c)
		return
	}

	resp, err := ctrl.attempts.GetOwn(claims.UserID, c.Param("examId"))
	if err != nil {
		if errors.Is(err, util.ErrAttemptNotFound) {
			util.NotFound(c, err.Error())
			return
		}
		util.LogInternalError(c, err)
		return
	}

	util.Success(c, resp)
}

// ListMine godoc
// @Summary List the caller's attempts across all exams
// @Tags attempts
// @Produce json
// @Success 200 {object} util.Response{data=[]model.ExamAttempt}
// @Security BearerAuth
// @Router /attempts/my [get]
func (ctrl *AttemptController) ListMine(c *gin.Context) {
	claims := util.GetUserFromContext(c)
	if claims == nil {
		util.Unauthorized(c)
		return
	}

	attempts, err := ctrl.attempts.ListByUser(claims.UserID)
	if err != nil {
		util.LogInternalError(c, err)
		return
	}

	util.Success(c, attempts)
}

// ListByExam godoc
// @Summary List every attempt for an exam
// @Tags attempts
// @Produce json
// @Param examId path string true "Exam ID"
// @Success 200 {object} util.Response{data=[]model.ExamAttempt}
// @Security BearerAuth
// @Router /admin/attempts/exam/{examId} [get]
func (ctrl *AttemptController) ListByExam(c *gin.Context) {
	attempts, err := ctrl.attempts.ListByExam(c.Param("examId"))
	if err != nil {
		util.LogInternalError(c, err)
		return
	}

	util.Success(c, attempts)
}

// Delete godoc
// @Summary Delete an attempt and its score
// @Tags attempts
// @Produce json
// @Param id path string true "Attempt ID"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Security BearerAuth
// @Router /admin/attempts/{id} [delete]
func (ctrl *AttemptController) Delete(c *gin.Context) {
	if err := ctrl.attempts.Delete(c.Param("id")); err != nil {
		if errors.Is(err, util.ErrAttemptNotFound) {
			util.NotFound(c, err.Error())
			return
		}
		util.LogInternalError(c, err)
		return
	}

	util.Success(c, nil)
}
