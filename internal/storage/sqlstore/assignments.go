package sqlstore

import (
	"time"

	"github.com/julianstephens/coursecal/internal/models"
)

const assignmentColumns = `id, course_id, title, due_at, status, notes`

// Due dates are stored as epoch milliseconds.
func scanAssignment(row scanner) (models.Assignment, error) {
	var a models.Assignment
	var dueMs int64
	var status string
	if err := row.Scan(&a.ID, &a.CourseID, &a.Title, &dueMs, &status, &a.Notes); err != nil {
		return models.Assignment{}, err
	}
	a.DueAt = time.UnixMilli(dueMs)
	a.Status = models.AssignmentStatus(status)
	return a, nil
}

func (s *Store) AddAssignment(a models.Assignment) error {
	if a.Status == "" {
		a.Status = models.AssignmentTodo
	}
	_, err := s.exec(`
		INSERT INTO assignments (`+assignmentColumns+`) VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			course_id = excluded.course_id, title = excluded.title, due_at = excluded.due_at,
			status = excluded.status, notes = excluded.notes`,
		a.ID, a.CourseID, a.Title, a.DueAt.UnixMilli(), string(a.Status), a.Notes)
	return err
}

func (s *Store) GetAssignment(id string) (models.Assignment, error) {
	a, err := scanAssignment(s.queryRow("SELECT "+assignmentColumns+" FROM assignments WHERE id = ?", id))
	if err != nil {
		return models.Assignment{}, notFound(err, "assignment", id)
	}
	return a, nil
}

func (s *Store) GetAllAssignments() ([]models.Assignment, error) {
	rows, err := s.query("SELECT " + assignmentColumns + " FROM assignments ORDER BY due_at, id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Assignment
	for rows.Next() {
		a, err := scanAssignment(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (s *Store) UpdateAssignment(a models.Assignment) error {
	res, err := s.exec(`
		UPDATE assignments SET course_id = ?, title = ?, due_at = ?, status = ?, notes = ?
		WHERE id = ?`,
		a.CourseID, a.Title, a.DueAt.UnixMilli(), string(a.Status), a.Notes, a.ID)
	if err != nil {
		return err
	}
	return mustAffect(res, "assignment", a.ID)
}

func (s *Store) DeleteAssignment(id string) error {
	res, err := s.exec("DELETE FROM assignments WHERE id = ?", id)
	if err != nil {
		return err
	}
	return mustAffect(res, "assignment", id)
}
