package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"academia/internal/apperr"
	"academia/internal/attendance"
	"academia/internal/auth"
	"academia/internal/courses"
	"academia/internal/httpmiddleware"
	"academia/internal/prediction"
	"academia/internal/students"
)

// code is a student code that clients may send as a JSON string or number.
type code string

func (s *code) UnmarshalJSON(b []byte) error {
	if bytes.Equal(b, []byte("null")) {
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var v string
		if err := json.Unmarshal(b, &v); err != nil {
			return err
		}
		*s = code(v)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*s = code(n.String())
	return nil
}

type markRequest struct {
	StudentID code   `json:"student_id"`
	Status    string `json:"status"`
	CourseID  *int64 `json:"course_id"`
}

type studentRequest struct {
	Name      string `json:"name"`
	StudentID code   `json:"student_id"`
	Email     string `json:"email"`
}

type courseRequest struct {
	Abbreviation string  `json:"abbreviation"`
	Title        string  `json:"title"`
	ProfessorID  *int64  `json:"professor_id"`
	TimeSlot     *string `json:"time_slot"`
	Room         *string `json:"room"`
	Section      *string `json:"section"`
	MaxStudents  *int    `json:"max_students"`
}

// ---------- Dashboard ----------

func (h *Handler) DashboardStats(c *gin.Context) {
	st, err := h.Dashboard.Stats(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, st)
}

// ---------- Attendance ----------

func (h *Handler) ListAttendance(c *gin.Context) {
	records, err := h.Attendance.List(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, records)
}

// MarkAttendance records today's status for a student, replacing an earlier mark from the same day.
func (h *Handler) MarkAttendance(c *gin.Context) {
	var req markRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.fail(c, apperr.Validation("Student ID and status are required"))
		return
	}
	current, _ := auth.CurrentUser(c)
	status, err := h.Attendance.Mark(c.Request.Context(), attendance.MarkInput{
		StudentCode: string(req.StudentID),
		Status:      req.Status,
		CourseID:    req.CourseID,
	}, current)
	if err != nil {
		h.fail(c, err)
		return
	}
	httpmiddleware.AttendanceMarked.WithLabelValues(status).Inc()
	c.JSON(http.StatusOK, gin.H{"message": "Attendance marked successfully"})
}

// ---------- Students ----------

func (h *Handler) ListStudents(c *gin.Context) {
	list, err := h.Students.List(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *Handler) CreateStudent(c *gin.Context) {
	var req studentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.fail(c, apperr.Validation("Name and student ID are required"))
		return
	}
	id, err := h.Students.Create(c.Request.Context(), students.CreateInput{
		Name:      req.Name,
		StudentID: string(req.StudentID),
		Email:     req.Email,
	})
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"message":    "Student added successfully",
		"student_id": id,
	})
}

// ---------- Courses ----------

func (h *Handler) ListCourses(c *gin.Context) {
	list, err := h.Courses.List(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *Handler) CreateCourse(c *gin.Context) {
	var req courseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.fail(c, apperr.Validation("Abbreviation and title are required"))
		return
	}
	id, err := h.Courses.Create(c.Request.Context(), courses.CreateInput{
		Abbreviation: req.Abbreviation,
		Title:        req.Title,
		ProfessorID:  req.ProfessorID,
		TimeSlot:     req.TimeSlot,
		Room:         req.Room,
		Section:      req.Section,
		MaxStudents:  req.MaxStudents,
	})
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"message":   "Course added successfully",
		"course_id": id,
	})
}

// ---------- Calendar ----------

func (h *Handler) CalendarEvents(c *gin.Context) {
	events, err := h.Courses.CalendarEvents(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, events)
}

// ---------- Prediction ----------

func (h *Handler) Predict(c *gin.Context) {
	var in prediction.Input
	if err := c.ShouldBindJSON(&in); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			c.JSON(http.StatusBadRequest, gin.H{
				"message": "Invalid prediction input",
				"errors":  fieldMessages(verrs),
			})
			return
		}
		h.fail(c, apperr.Validation("Invalid prediction input"))
		return
	}
	c.JSON(http.StatusOK, prediction.Score(in, prediction.DefaultWeights))
}

// fieldMessages keys validation failures by JSON field name.
func fieldMessages(verrs validator.ValidationErrors) map[string]string {
	out := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		var msg string
		switch fe.Tag() {
		case "required":
			msg = "is required"
		case "min":
			msg = "must be at least " + fe.Param()
		case "max":
			msg = "must be at most " + fe.Param()
		case "oneof":
			msg = "must be one of " + strings.ReplaceAll(fe.Param(), " ", ", ")
		default:
			msg = "is invalid"
		}
		out[fe.Field()] = msg
	}
	return out
}
