package model

// User is an account that can sign in. The password hash never leaves the users package.
type User struct {
	ID     int64  `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	Avatar string `json:"avatar"`
}

// Student represents an enrolled student.
type Student struct {
	ID        int64   `json:"id"`
	Name      string  `json:"name"`
	StudentID string  `json:"student_id"` // external-facing code, e.g. S123456
	Email     *string `json:"email"`
	Avatar    string  `json:"avatar"`
}

// Course is a taught course, optionally assigned to a professor.
type Course struct {
	ID            int64   `json:"id"`
	Abbreviation  string  `json:"abbreviation"`
	Title         string  `json:"title"`
	TimeSlot      *string `json:"time_slot"`
	Room          *string `json:"room"`
	Section       *string `json:"section"`
	MaxStudents   *int    `json:"max_students"`
	ProfessorName *string `json:"professor_name"`
}

// AttendanceRecord is a single attendance row joined with student and course.
type AttendanceRecord struct {
	ID        int64   `json:"id"`
	Name      string  `json:"name"`
	StudentID string  `json:"student_id"`
	Avatar    string  `json:"avatar"`
	Status    string  `json:"status"`
	Date      string  `json:"date"` // YYYY-MM-DD
	Course    *string `json:"course"`
}

// CalendarEvent is derived from a course that has a time slot.
type CalendarEvent struct {
	ID        int64   `json:"id"`
	Title     string  `json:"title"`
	Time      string  `json:"time"`
	Room      *string `json:"room"`
	Professor *string `json:"professor"`
	Type      string  `json:"type"`
}

// DashboardStats are the headline counts shown on the dashboard.
type DashboardStats struct {
	TotalStudents   int `json:"total_students"`
	TotalCourses    int `json:"total_courses"`
	TodayAttendance int `json:"today_attendance"`
	WeekAttendance  int `json:"week_attendance"`
}
