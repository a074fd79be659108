package sqlstore

import (
	"encoding/json"
	"fmt"

	"github.com/julianstephens/coursecal/internal/models"
)

const courseColumns = `id, term_id, code, title, meeting_days, meeting_start, meeting_end, instructor, location`

type scanner interface {
	Scan(dest ...any) error
}

func scanCourse(row scanner) (models.Course, error) {
	var c models.Course
	var days string
	if err := row.Scan(&c.ID, &c.TermID, &c.Code, &c.Title, &days, &c.MeetingStart, &c.MeetingEnd, &c.Instructor, &c.Location); err != nil {
		return models.Course{}, err
	}
	if days != "" {
		if err := json.Unmarshal([]byte(days), &c.MeetingDays); err != nil {
			return models.Course{}, fmt.Errorf("course %s: decoding meeting days: %w", c.ID, err)
		}
	}
	if len(c.MeetingDays) == 0 {
		c.MeetingDays = nil
	}
	return c, nil
}

func (s *Store) AddCourse(c models.Course) error {
	days := c.MeetingDays
	if days == nil {
		days = []string{}
	}
	daysJSON, err := json.Marshal(days)
	if err != nil {
		return err
	}

	_, err = s.exec(`
		INSERT INTO courses (`+courseColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			term_id = excluded.term_id, code = excluded.code, title = excluded.title,
			meeting_days = excluded.meeting_days, meeting_start = excluded.meeting_start,
			meeting_end = excluded.meeting_end, instructor = excluded.instructor,
			location = excluded.location`,
		c.ID, c.TermID, c.Code, c.Title, string(daysJSON), c.MeetingStart, c.MeetingEnd, c.Instructor, c.Location)
	return err
}

func (s *Store) GetCourse(id string) (models.Course, error) {
	c, err := scanCourse(s.queryRow("SELECT "+courseColumns+" FROM courses WHERE id = ?", id))
	if err != nil {
		return models.Course{}, notFound(err, "course", id)
	}
	return c, nil
}

func (s *Store) GetAllCourses() ([]models.Course, error) {
	rows, err := s.query("SELECT " + courseColumns + " FROM courses ORDER BY code, id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var courses []models.Course
	for rows.Next() {
		c, err := scanCourse(rows)
		if err != nil {
			return nil, err
		}
		courses = append(courses, c)
	}
	return courses, rows.Err()
}

func (s *Store) DeleteCourse(id string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	res, err := tx.Exec(s.dialect.Rebind("DELETE FROM courses WHERE id = ?"), id)
	if err != nil {
		return err
	}
	if err := mustAffect(res, "course", id); err != nil {
		return err
	}
	if _, err := tx.Exec(s.dialect.Rebind("DELETE FROM assignments WHERE course_id = ?"), id); err != nil {
		return err
	}
	return tx.Commit()
}
