package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"lmsadmin/internal/storage"
)

// resetOrder lists tables children first.
var resetOrder = []string{
	"answers", "questions", "exams", "enrollments", "students",
	"lectures", "course_modules", "courses", "instructors",
}

// Seed writes f in a single transaction. Nothing is written if any
// record fails.
func (s *Store) Seed(ctx context.Context, f *storage.Fixture, opts storage.SeedOptions) error {
	if err := s.checkOpen(); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if opts.Reset {
		for _, table := range resetOrder {
			if _, err := s.exec(ctx, tx, table, "DELETE FROM "+table); err != nil {
				return fmt.Errorf("failed to reset %s: %w", table, err)
			}
		}
	}

	seeders := []func(context.Context, *sql.Tx, *storage.Fixture) error{
		s.seedInstructors,
		s.seedCourses,
		s.seedStudents,
		s.seedExams,
	}
	for _, seed := range seeders {
		if err := seed(ctx, tx, f); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit seed: %w", err)
	}
	return nil
}

func seedError(kind, name string, err error) error {
	if isConstraintError(err) {
		return fmt.Errorf("%w: %s %q: %v", storage.ErrAlreadyExists, kind, name, err)
	}
	return fmt.Errorf("failed to insert %s %q: %w", kind, name, err)
}

func (s *Store) seedInstructors(ctx context.Context, tx *sql.Tx, f *storage.Fixture) error {
	for _, in := range f.Instructors {
		_, err := s.exec(ctx, tx, "instructors", `
			INSERT INTO instructors (id, first_name, last_name, email, phone, gender, title, description, joined_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			string(in.ID), in.Name.First, in.Name.Last, in.Email, in.Phone, string(in.Gender),
			in.Title, in.Description, formatTime(in.JoinedAt),
		)
		if err != nil {
			return seedError("instructor", in.Name.Full(), err)
		}
	}
	return nil
}

func (s *Store) seedCourses(ctx context.Context, tx *sql.Tx, f *storage.Fixture) error {
	for _, c := range f.Courses {
		_, err := s.exec(ctx, tx, "courses", `
			INSERT INTO courses (id, title, description, start_date, end_date, price, type, instructor_id)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			string(c.ID), c.Title, c.Description, formatTime(c.StartDate), formatTime(c.EndDate),
			c.Price, c.Type, nullString(string(c.InstructorID)),
		)
		if err != nil {
			return seedError("course", c.Title, err)
		}

		for i, m := range c.Modules {
			_, err := s.exec(ctx, tx, "course_modules", `
				INSERT INTO course_modules (id, course_id, position, title, description)
				VALUES (?, ?, ?, ?, ?)`,
				string(m.ID), string(c.ID), i, m.Title, m.Description,
			)
			if err != nil {
				return seedError("module", m.Title, err)
			}

			for j, l := range m.Lectures {
				_, err := s.exec(ctx, tx, "lectures", `
					INSERT INTO lectures (id, module_id, course_id, position, title, scheduled_at)
					VALUES (?, ?, ?, ?, ?, ?)`,
					string(l.ID), string(m.ID), string(c.ID), j, l.Title, formatTime(l.ScheduledAt),
				)
				if err != nil {
					return seedError("lecture", l.Title, err)
				}
			}
		}
	}
	return nil
}

func (s *Store) seedStudents(ctx context.Context, tx *sql.Tx, f *storage.Fixture) error {
	for _, st := range f.Students {
		_, err := s.exec(ctx, tx, "students", `
			INSERT INTO students (id, first_name, last_name, email, phone, gender, status, joined_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			string(st.ID), st.Name.First, st.Name.Last, st.Email, st.Phone, string(st.Gender),
			string(st.Status), formatTime(st.JoinedAt),
		)
		if err != nil {
			return seedError("student", st.Name.Full(), err)
		}

		if st.CourseID == "" {
			continue
		}
		_, err = s.exec(ctx, tx, "enrollments",
			"INSERT INTO enrollments (student_id, course_id, enrolled_at) VALUES (?, ?, ?)",
			string(st.ID), string(st.CourseID), formatTime(st.JoinedAt),
		)
		if err != nil {
			return seedError("enrollment", st.Name.Full(), err)
		}
	}
	return nil
}

func (s *Store) seedExams(ctx context.Context, tx *sql.Tx, f *storage.Fixture) error {
	for _, e := range f.Exams {
		_, err := s.exec(ctx, tx, "exams", `
			INSERT INTO exams (id, title, course_id, duration_minutes, start_date, created_at, published)
			VALUES (?, ?, ?, ?, ?, ?, ?)`,
			string(e.ID), e.Title, nullString(string(e.CourseID)), e.DurationMinutes,
			formatTime(e.StartDate), formatTime(e.CreatedAt), boolToInt(e.Published),
		)
		if err != nil {
			return seedError("exam", e.Title, err)
		}

		for i, q := range e.Questions {
			_, err := s.exec(ctx, tx, "questions",
				"INSERT INTO questions (id, exam_id, position, text, points) VALUES (?, ?, ?, ?, ?)",
				string(q.ID), string(e.ID), i, q.Text, q.Points,
			)
			if err != nil {
				return seedError("question", q.Text, err)
			}

			for j, a := range q.Answers {
				_, err := s.exec(ctx, tx, "answers",
					"INSERT INTO answers (id, question_id, position, text, correct) VALUES (?, ?, ?, ?, ?)",
					string(a.ID), string(q.ID), j, a.Text, boolToInt(a.Correct),
				)
				if err != nil {
					return seedError("answer", a.Text, err)
				}
			}
		}
	}
	return nil
}
