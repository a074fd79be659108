package sqlstore

import (
	"database/sql"
	"time"

	"github.com/julianstephens/coursecal/internal/models"
)

const eventColumns = `id, title, type, start_at, end_at, color, course_code, location, description, all_day`

func scanEvent(row scanner) (models.OneOffEvent, error) {
	var ev models.OneOffEvent
	var typ string
	var startMs int64
	var endMs sql.NullInt64
	if err := row.Scan(&ev.ID, &ev.Title, &typ, &startMs, &endMs, &ev.Color, &ev.CourseCode, &ev.Location, &ev.Description, &ev.AllDay); err != nil {
		return models.OneOffEvent{}, err
	}
	ev.Type = models.EventType(typ)
	ev.StartTime = time.UnixMilli(startMs)
	if endMs.Valid {
		end := time.UnixMilli(endMs.Int64)
		ev.EndTime = &end
	}
	return ev, nil
}

func (s *Store) AddEvent(ev models.OneOffEvent) error {
	var end sql.NullInt64
	if ev.EndTime != nil {
		end = sql.NullInt64{Int64: ev.EndTime.UnixMilli(), Valid: true}
	}
	_, err := s.exec(`
		INSERT INTO events (`+eventColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			title = excluded.title, type = excluded.type, start_at = excluded.start_at,
			end_at = excluded.end_at, color = excluded.color, course_code = excluded.course_code,
			location = excluded.location, description = excluded.description, all_day = excluded.all_day`,
		ev.ID, ev.Title, string(ev.Type), ev.StartTime.UnixMilli(), end, ev.Color, ev.CourseCode, ev.Location, ev.Description, ev.AllDay)
	return err
}

func (s *Store) GetEvent(id string) (models.OneOffEvent, error) {
	ev, err := scanEvent(s.queryRow("SELECT "+eventColumns+" FROM events WHERE id = ?", id))
	if err != nil {
		return models.OneOffEvent{}, notFound(err, "event", id)
	}
	return ev, nil
}

func (s *Store) GetAllEvents() ([]models.OneOffEvent, error) {
	rows, err := s.query("SELECT " + eventColumns + " FROM events ORDER BY start_at, id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.OneOffEvent
	for rows.Next() {
		ev, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, ev)
	}
	return out, rows.Err()
}

func (s *Store) DeleteEvent(id string) error {
	res, err := s.exec("DELETE FROM events WHERE id = ?", id)
	if err != nil {
		return err
	}
	return mustAffect(res, "event", id)
}
