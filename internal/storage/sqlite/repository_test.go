package sqlite

import (
	"context"
	"errors"
	"testing"

	"lmsadmin/internal/domain"
	"lmsadmin/internal/storage"
)

func TestStudentRepository_List(t *testing.T) {
	store := seededStore(t)
	ctx := context.Background()
	repo := store.Students()

	tests := []struct {
		name   string
		filter storage.ListFilter
		want   int
	}{
		{"all", storage.ListFilter{}, 12},
		{"status", storage.ListFilter{Status: "rejected"}, 2},
		{"search email", storage.ListFilter{Search: "maha@"}, 1},
		{"search full name", storage.ListFilter{Search: "أحمد علي"}, 1},
		{"search phone", storage.ListFilter{Search: "000 01"}, 3},
		{"search percent is literal", storage.ListFilter{Search: "%"}, 0},
		{"limit", storage.ListFilter{Limit: 5}, 5},
		{"offset past limit", storage.ListFilter{Limit: 5, Offset: 10}, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			students, err := repo.List(ctx, tt.filter)
			if err != nil {
				t.Fatalf("List failed: %v", err)
			}
			if len(students) != tt.want {
				t.Errorf("got %d students, want %d", len(students), tt.want)
			}

			n, err := repo.Count(ctx, tt.filter)
			if err != nil {
				t.Fatalf("Count failed: %v", err)
			}
			if tt.filter.Limit == 0 && n != tt.want {
				t.Errorf("Count = %d, want %d", n, tt.want)
			}
		})
	}
}

func TestStudentRepository_Order(t *testing.T) {
	store := seededStore(t)
	ctx := context.Background()

	students, err := store.Students().List(ctx, storage.ListFilter{OrderBy: "joined_at", OrderDesc: true, Limit: 1})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(students) != 1 || students[0].Email != "maha@example.com" {
		t.Errorf("expected the latest student first, got %+v", students)
	}

	_, err = store.Students().List(ctx, storage.ListFilter{OrderBy: "password"})
	if !errors.Is(err, storage.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput for unknown sort key, got %v", err)
	}
}

func TestStudentRepository_CourseJoin(t *testing.T) {
	store := seededStore(t)
	ctx := context.Background()

	students, err := store.Students().List(ctx, storage.ListFilter{Search: "reem@"})
	if err != nil || len(students) != 1 {
		t.Fatalf("List failed: %v (%d rows)", err, len(students))
	}
	if students[0].CourseID != "" || students[0].CourseTitle != "" {
		t.Errorf("expected no course, got %q", students[0].CourseTitle)
	}

	students, err = store.Students().List(ctx, storage.ListFilter{Search: "ahmed@"})
	if err != nil || len(students) != 1 {
		t.Fatalf("List failed: %v (%d rows)", err, len(students))
	}
	if students[0].CourseID != "course-go" || students[0].CourseTitle != "أساسيات Go" {
		t.Errorf("unexpected course %q %q", students[0].CourseID, students[0].CourseTitle)
	}
}

func TestStudentRepository_UpdateStatus(t *testing.T) {
	store := seededStore(t)
	ctx := context.Background()
	repo := store.Students()

	students, err := repo.List(ctx, storage.ListFilter{Search: "ahmed@"})
	if err != nil || len(students) != 1 {
		t.Fatalf("List failed: %v", err)
	}
	id := students[0].ID

	if err := repo.UpdateStatus(ctx, id, domain.RequestStatusAccepted); err != nil {
		t.Fatalf("UpdateStatus failed: %v", err)
	}
	got, err := repo.Get(ctx, id)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got.Status != domain.RequestStatusAccepted {
		t.Errorf("Status = %s, want accepted", got.Status)
	}

	if err := repo.UpdateStatus(ctx, id, "archived"); !errors.Is(err, storage.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput, got %v", err)
	}
	if err := repo.UpdateStatus(ctx, "missing", domain.RequestStatusRejected); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestStudentRepository_Delete(t *testing.T) {
	store := seededStore(t)
	ctx := context.Background()
	repo := store.Students()

	students, _ := repo.List(ctx, storage.ListFilter{Search: "ahmed@"})
	if len(students) != 1 {
		t.Fatal("expected seeded student")
	}
	if err := repo.Delete(ctx, students[0].ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, err := repo.Get(ctx, students[0].ID); !storage.IsNotFound(err) {
		t.Errorf("expected ErrNotFound after delete, got %v", err)
	}
	if err := repo.Delete(ctx, students[0].ID); !storage.IsNotFound(err) {
		t.Errorf("expected ErrNotFound on second delete, got %v", err)
	}
}

func TestInstructorRepository(t *testing.T) {
	store := seededStore(t)
	ctx := context.Background()
	repo := store.Instructors()

	khalid, err := repo.Get(ctx, "inst-khalid")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if len(khalid.Courses) != 2 || khalid.Courses[0] != "أساسيات Go" {
		t.Errorf("unexpected courses %v", khalid.Courses)
	}

	omar, err := repo.Get(ctx, "inst-omar")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if omar.CourseList() != "-" {
		t.Errorf("expected no courses, got %q", omar.CourseList())
	}

	list, err := repo.List(ctx, storage.ListFilter{OrderBy: "name"})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(list) != 3 {
		t.Errorf("expected 3 instructors, got %d", len(list))
	}

	// Deleting an instructor unassigns their courses.
	if err := repo.Delete(ctx, "inst-sara"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	course, err := store.Courses().Get(ctx, "course-sql")
	if err != nil {
		t.Fatalf("Get course failed: %v", err)
	}
	if course.InstructorID != "" || course.Instructor() != "-" {
		t.Errorf("expected unassigned course, got %q", course.InstructorID)
	}
}

func TestCourseRepository(t *testing.T) {
	store := seededStore(t)
	ctx := context.Background()
	repo := store.Courses()

	course, err := repo.Get(ctx, "course-go")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if course.InstructorName != "خالد العتيبي" {
		t.Errorf("InstructorName = %q", course.InstructorName)
	}
	if len(course.Modules) != 2 {
		t.Fatalf("expected 2 modules, got %d", len(course.Modules))
	}
	if course.Modules[0].Title != "الأنواع والدوال" || len(course.Modules[0].Lectures) != 2 {
		t.Errorf("unexpected first module %+v", course.Modules[0])
	}
	if course.Modules[0].Lectures[1].Title != "الدوال والأخطاء" {
		t.Errorf("lectures out of order: %+v", course.Modules[0].Lectures)
	}

	list, err := repo.List(ctx, storage.ListFilter{OrderBy: "price", OrderDesc: true})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(list) != 4 || list[0].ID != "course-ml" {
		t.Errorf("expected course-ml first by price, got %v", list[0].ID)
	}
	if list[0].Modules != nil {
		t.Error("List should not load modules")
	}

	n, err := repo.Count(ctx, storage.ListFilter{Search: "سارة"})
	if err != nil {
		t.Fatalf("Count failed: %v", err)
	}
	if n != 1 {
		t.Errorf("expected 1 course by instructor search, got %d", n)
	}

	// Deleting a course removes its enrollments.
	if err := repo.Delete(ctx, "course-go"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	students, err := store.Students().Count(ctx, storage.ListFilter{})
	if err != nil {
		t.Fatalf("Count failed: %v", err)
	}
	if students != 12 {
		t.Errorf("students must survive course deletion, got %d", students)
	}
}

func TestExamRepository(t *testing.T) {
	store := seededStore(t)
	ctx := context.Background()
	repo := store.Exams()

	exam, err := repo.Get(ctx, "exam-go-mid")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if exam.QuestionCount != 2 || len(exam.Questions) != 2 {
		t.Errorf("expected 2 questions, got %d/%d", exam.QuestionCount, len(exam.Questions))
	}
	if exam.Status() != domain.ExamStatusPublished {
		t.Errorf("Status = %s", exam.Status())
	}
	if len(exam.Questions[0].Answers) != 3 || !exam.Questions[0].Answers[0].Correct {
		t.Errorf("unexpected answers %+v", exam.Questions[0].Answers)
	}

	quiz, err := repo.Get(ctx, "exam-quiz")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if quiz.Course() != "غير محدد" {
		t.Errorf("Course() = %q", quiz.Course())
	}

	if err := repo.SetPublished(ctx, "exam-go-mid", false); err != nil {
		t.Fatalf("SetPublished failed: %v", err)
	}
	exam, _ = repo.Get(ctx, "exam-go-mid")
	if exam.Published {
		t.Error("expected exam to be disabled")
	}

	list, err := repo.List(ctx, storage.ListFilter{OrderBy: "questions", OrderDesc: true})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if list[0].ID != "exam-go-mid" {
		t.Errorf("expected exam-go-mid first, got %s", list[0].ID)
	}

	if err := repo.Delete(ctx, "exam-go-mid"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	n, _ := store.Questions().Count(ctx, storage.ListFilter{})
	if n != 1 {
		t.Errorf("expected questions to cascade, got %d left", n)
	}
}

func TestQuestionRepository(t *testing.T) {
	store := seededStore(t)
	ctx := context.Background()
	repo := store.Questions()

	questions, err := repo.List(ctx, storage.ListFilter{ParentID: "exam-go-mid"})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(questions) != 2 {
		t.Fatalf("expected 2 questions, got %d", len(questions))
	}
	if questions[0].Text != "ما الكلمة المفتاحية لتشغيل goroutine؟" {
		t.Errorf("questions out of authored order: %q", questions[0].Text)
	}
	if questions[1].ExamTitle != "اختبار منتصف الفصل" || len(questions[1].Answers) != 2 {
		t.Errorf("unexpected second question %+v", questions[1])
	}

	n, err := repo.Count(ctx, storage.ListFilter{Search: "JOIN"})
	if err != nil {
		t.Fatalf("Count failed: %v", err)
	}
	if n != 0 {
		t.Errorf("answers are not searched, got %d", n)
	}

	q, err := repo.Get(ctx, questions[0].ID)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if q.CorrectAnswers() != 1 {
		t.Errorf("CorrectAnswers = %d", q.CorrectAnswers())
	}

	if err := repo.Delete(ctx, q.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, err := repo.Get(ctx, q.ID); !storage.IsNotFound(err) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

