package pages

import (
	"lmsadmin/internal/tui/app"
)

// AllPages returns all available pages for the TUI. The app must have a
// store.
func AllPages(application *app.App) []app.Page {
	return []app.Page{
		NewDashboardPage(application),
		NewRequestsPage(application),
		NewInstructorsPage(application),
		NewCoursesPage(application),
		NewExamsPage(application),
		NewQuestionsPage(application),
	}
}

// PageIDs contains the IDs of all pages.
const (
	PageDashboard   = "dashboard"
	PageRequests    = "requests"
	PageInstructors = "instructors"
	PageCourses     = "courses"
	PageExams       = "exams"
	PageQuestions   = "questions"
)
