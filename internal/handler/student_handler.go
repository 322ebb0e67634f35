package handler

import (
	"fmt"
	"net/http"
	"sort"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/schoolsync/gradebook-api/internal/model"
	"github.com/schoolsync/gradebook-api/internal/response"
	"github.com/schoolsync/gradebook-api/internal/service"
	"github.com/schoolsync/gradebook-api/internal/validator"
)

// StudentHandler serves the read-only student endpoints: profiles,
// classwork listings, grouped grades and computed averages.
type StudentHandler struct {
	students  *service.StudentService
	classwork *service.ClassworkService
	grades    *service.GradeService
	baseURL   string
	loc       *time.Location
}

func NewStudentHandler(
	students *service.StudentService,
	classwork *service.ClassworkService,
	grades *service.GradeService,
	baseURL string,
	loc *time.Location,
) *StudentHandler {
	return &StudentHandler{
		students:  students,
		classwork: classwork,
		grades:    grades,
		baseURL:   baseURL,
		loc:       loc,
	}
}

// studentSummary is one row of the student index.
type studentSummary struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Grade         string `json:"grade"`
	GradingPeriod int    `json:"grading_period"`
	School        string `json:"school"`
	StudentURL    string `json:"student_url"`
}

// GetAll godoc
// GET /api/v1/students
func (h *StudentHandler) GetAll(c *gin.Context) {
	profiles := h.students.All()
	records := make([]studentSummary, 0, len(profiles))

	for _, p := range profiles {
		records = append(records, studentSummary{
			ID:            p.ID,
			Name:          p.Name,
			Grade:         p.Grade,
			GradingPeriod: p.GradingPeriod,
			School:        p.Building,
			StudentURL:    fmt.Sprintf("%s/%s", h.baseURL, p.ID),
		})
	}

	response.Success(c, http.StatusOK, gin.H{"students": records})
}

// GetStudent godoc
// GET /api/v1/students/:studentId
func (h *StudentHandler) GetStudent(c *gin.Context) {
	studentID, ok := h.bindStudentID(c)
	if !ok {
		return
	}

	profile, found := h.students.Get(studentID)
	if !found {
		response.Fail(c, http.StatusNotFound, response.ErrNotFound)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"id":                 profile.ID,
		"name":               profile.Name,
		"grade":              profile.Grade,
		"grading_period":     profile.GradingPeriod,
		"building":           profile.Building,
		"homeroom":           profile.Homeroom,
		"courses":            profile.Courses,
		"classwork_url":      fmt.Sprintf("%s/%s/classwork", h.baseURL, studentID),
		"grades_url":         fmt.Sprintf("%s/%s/grades", h.baseURL, studentID),
		"grades_average_url": fmt.Sprintf("%s/%s/grades/average", h.baseURL, studentID),
	})
}

// GetClasswork godoc
// GET /api/v1/students/:studentId/classwork?run_id=&run_date=&all
func (h *StudentHandler) GetClasswork(c *gin.Context) {
	studentID, ok := h.bindStudentID(c)
	if !ok {
		return
	}

	sel := h.periodSelector(c)
	profile, _ := h.students.Get(studentID)

	body := gin.H{
		"student_id":   studentID,
		"student_name": profile.Name,
		"courses":      h.classwork.RecordsForPeriod(studentID, sel),
	}
	if iv, resolved := h.grades.Interval(sel); resolved {
		body["interval"] = iv
	}

	response.Success(c, http.StatusOK, body)
}

// GetGrades godoc
// GET /api/v1/students/:studentId/grades?run_id=&run_date=&all
func (h *StudentHandler) GetGrades(c *gin.Context) {
	studentID, ok := h.bindStudentID(c)
	if !ok {
		return
	}

	sel := h.periodSelector(c)
	profile, _ := h.students.Get(studentID)

	averagesURL := fmt.Sprintf("%s/%s/grades/average", h.baseURL, studentID)
	if raw := c.Request.URL.RawQuery; raw != "" {
		averagesURL += "?" + raw
	}

	response.Success(c, http.StatusOK, gin.H{
		"student_id":         studentID,
		"student_name":       profile.Name,
		"course_grades":      h.grades.Grades(studentID, sel),
		"grades_average_url": averagesURL,
	})
}

// GetGradeAverages godoc
// GET /api/v1/students/:studentId/grades/average?run_id=&run_date=&all&alerts&alerts_score=
func (h *StudentHandler) GetGradeAverages(c *gin.Context) {
	studentID, ok := h.bindStudentID(c)
	if !ok {
		return
	}

	sel := h.periodSelector(c)
	profile, _ := h.students.Get(studentID)

	averages := h.grades.CourseAverages(c.Request.Context(), studentID, sel)
	grades := make([]model.CourseAverage, 0, len(averages))
	for _, avg := range averages {
		grades = append(grades, avg)
	}
	sort.Slice(grades, func(i, j int) bool { return grades[i].CourseID < grades[j].CourseID })

	body := gin.H{
		"student_id":   studentID,
		"student_name": profile.Name,
		"grades":       grades,
	}

	threshold, hasThreshold := validator.SanitizeAlertsScore(c.Query("alerts_score"))
	if _, wantAlerts := c.GetQuery("alerts"); wantAlerts || hasThreshold {
		body["alerts"] = h.classwork.Alerts(studentID, sel, threshold)
	}

	response.Success(c, http.StatusOK, body)
}

// bindStudentID validates the studentId path segment against the district's
// six-digit format. A mismatch is a 400 before the core is ever touched.
func (h *StudentHandler) bindStudentID(c *gin.Context) (string, bool) {
	var param model.StudentIDParam
	if fields := validator.BindURI(c, &param); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrInvalidID, fields)
		return "", false
	}
	return param.StudentID, true
}

// periodSelector builds the period selector from query parameters.
// Precedence: all, run_id, run_date, then the current date. Malformed
// values are ignored rather than rejected so the endpoint degrades to the
// current period.
func (h *StudentHandler) periodSelector(c *gin.Context) model.PeriodSelector {
	if _, all := c.GetQuery("all"); all {
		return model.SelectAll()
	}
	if runID, ok := validator.SanitizeRunID(c.Query("run_id")); ok {
		return model.SelectRun(runID)
	}
	if raw, ok := validator.SanitizeRunDate(c.Query("run_date")); ok {
		if date, parsed := model.ParseSchoolDate(raw, h.loc); parsed {
			return model.SelectDate(date)
		}
	}
	return model.SelectCurrent()
}
