package controller

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/webpkbmannajah-sudo/e-course-pkbm-annajah/internal/model"
	"github.com/webpkbmannajah-sudo/e-course-pkbm-annajah/internal/service"
	"github.com/webpkbmannajah-sudo/e-course-pkbm-annajah/internal/util"
)

type ExamController struct {
	exams *service.ExamService
}

func NewExamController(exams *service.ExamService) *ExamController {
	return &ExamController{exams: exams}
}

// List godoc
// @Summary List exams
// @Tags exams
// @Produce json
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Param type query string false "Filter by exam type" Enums(pdf, questions)
// @Success 200 {object} util.Response{data=util.PageResponse}
// @Security BearerAuth
// @Router /exams [get]
func (ctrl *ExamController) List(c *gin.Context) {
	page, limit := pagination(c)
	examType := model.ExamType(c.Query("type"))

	exams, total, err := ctrl.exams.List(page, limit, examType)
	if err != nil {
		util.LogInternalError(c, err)
		return
	}

	util.Success(c, util.PageResponse{List: exams, Total: total, Page: page, Limit: limit})
}

// Get godoc
// @Summary Get an exam with its questions
// @Description Students receive the exam with answer keys stripped; admins
// @Description get the full authoring view.
// @Tags exams
// @Produce json
// @Param id path string true "Exam ID"
// @Success 200 {object} util.Response{data=model.Exam}
// @Failure 404 {object} util.Response
// @Security BearerAuth
// @Router /exams/{id} [get]
func (ctrl *ExamController) Get(c *gin.Context) {
	claims := util.GetUserFromContext(c)

	var exam *model.Exam
	var err error
	if claims != nil && claims.Role == model.Admin {
		exam, err = ctrl.exams.GetByID(c.Param("id"))
	} else {
		exam, err = ctrl.exams.GetForStudent(c.Param("id"))
	}
	if err != nil {
		if errors.Is(err, util.ErrExamNotFound) {
			util.NotFound(c, err.Error())
			return
		}
		util.LogInternalError(c, err)
		return
	}

	util.Success(c, exam)
}

// Create godoc
// @Summary Create a question-based exam
// @Tags exams
// @Accept json
// @Produce json
// @Param request body service.CreateExamRequest true "Exam with questions"
// @Success 201 {object} util.Response{data=model.Exam}
// @Failure 400 {object} util.Response
// @Security BearerAuth
// @Router /admin/exams [post]
func (ctrl *ExamController) Create(c *gin.Context) {
	claims := util.GetUserFromContext(c)

	var req service.CreateExamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.BadRequest(c, err.Error())
		return
	}

	exam, err := ctrl.exams.Create(&req, claims.UserID)
	if err != nil {
		util.LogInternalError(c, err)
		return
	}

	util.Created(c, exam)
}

// CreatePDF godoc
// @Summary Create a PDF-based exam
// @Tags exams
// @Accept multipart/form-data
// @Produce json
// @Param title formData string true "Exam title"
// @Param description formData string false "Description"
// @Param file formData file true "Exam PDF"
// @Success 201 {object} util.Response{data=model.Exam}
// @Failure 400 {object} util.Response
// @Security BearerAuth
// @Router /admin/exams/pdf [post]
func (ctrl *ExamController) CreatePDF(c *gin.Context) {
	claims := util.GetUserFromContext(c)

	title := c.PostForm("title")
	if title == "" {
		util.BadRequest(c, "title is required")
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		util.BadRequest(c, "file is required")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		util.LogInternalError(c, err)
		return
	}
	defer file.Close()

	exam, err := ctrl.exams.CreatePDF(
		c.Request.Context(),
		title,
		c.PostForm("description"),
		fileHeader.Filename,
		file,
		fileHeader.Size,
		fileHeader.Header.Get("Content-Type"),
		claims.UserID,
	)
	if err != nil {
		util.LogInternalError(c, err)
		return
	}

	util.Created(c, exam)
}

// Update godoc
// @Summary Update exam metadata
// @Tags exams
// @Accept json
// @Produce json
// @Param id path string true "Exam ID"
// @Param request body service.UpdateExamRequest true "Fields to update"
// @Success 200 {object} util.Response{data=model.Exam}
// @Failure 404 {object} util.Response
// @Security BearerAuth
// @Router /admin/exams/{id} [put]
func (ctrl *ExamController) Update(c *gin.Context) {
	var req service.UpdateExamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.BadRequest(c, err.Error())
		return
	}

	exam, err := ctrl.exams.Update(c.Param("id"), &req)
	if err != nil {
		if errors.Is(err, util.ErrExamNotFound) {
			util.NotFound(c, err.Error())
			return
		}
		util.LogInternalError(c, err)
		return
	}

	util.Success(c, exam)
}

// Delete godoc
// @Summary Delete an exam with its questions and choices
// @Tags exams
// @Produce json
// @Param id path string true "Exam ID"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Security BearerAuth
// @Router /admin/exams/{id} [delete]
func (ctrl *ExamController) Delete(c *gin.Context) {
	if err := ctrl.exams.Delete(c.Request.Context(), c.Param("id")); err != nil {
		if errors.Is(err, util.ErrExamNotFound) {
			util.NotFound(c, err.Error())
			return
		}
		util.LogInternalError(c, err)
		return
	}

	util.Success(c, nil)
}

// AddQuestion godoc
// @Summary Add a question to an exam
// @Tags exams
// @Accept json
// @Produce json
// @Param id path string true "Exam ID"
// @Param request body service.QuestionInput true "Question with choices"
// @Success 201 {object} util.Response{data=model.Question}
// @Failure 404 {object} util.Response
// @Security BearerAuth
// @Router /admin/exams/{id}/questions [post]
func (ctrl *ExamController) AddQuestion(c *gin.Context) {
	var req service.QuestionInput
	if err := c.ShouldBindJSON(&req); err != nil {
		util.BadRequest(c, err.Error())
		return
	}

	question, err := ctrl.exams.AddQuestion(c.Param("id"), &req)
	if err != nil {
		if errors.Is(err, util.ErrExamNotFound) {
			util.NotFound(c, err.Error())
			return
		}
		util.LogInternalError(c, err)
		return
	}

	util.Created(c, question)
}

// UpdateQuestion godoc
// @Summary Replace a question's text, weight, type and choices
// @Tags exams
// @Accept json
// @Produce json
// @Param id path string true "Exam ID"
// @Param questionId path string true "Question ID"
// @Param request body service.QuestionInput true "Question with choices"
// @Success 200 {object} util.Response{data=model.Question}
// @Security BearerAuth
// @Router /admin/exams/{id}/questions/{questionId} [put]
func (ctrl *ExamController) UpdateQuestion(c *gin.Context) {
	var req service.QuestionInput
	if err := c.ShouldBindJSON(&req); err != nil {
		util.BadRequest(c, err.Error())
		return
	}

	question, err := ctrl.exams.UpdateQuestion(c.Param("id"), c.Param("questionId"), &req)
	if err != nil {
		util.LogInternalError(c, err)
		return
	}

	util.Success(c, question)
}

// DeleteQuestion godoc
// @Summary Delete a question and its choices
// @Tags exams
// @Produce json
// @Param id path string true "Exam ID"
// @Param questionId path string true "Question ID"
// @Success 200 {object} util.Response
// @Security BearerAuth
// @Router /admin/exams/{id}/questions/{questionId} [delete]
func (ctrl *ExamController) DeleteQuestion(c *gin.Context) {
	if err := ctrl.exams.DeleteQuestion(c.Param("questionId")); err != nil {
		util.LogInternalError(c, err)
		return
	}

	util.Success(c, nil)
}
