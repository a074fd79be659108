package courses

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/julianstephens/coursecal/internal/cli"
	"github.com/julianstephens/coursecal/internal/models"
	"github.com/julianstephens/coursecal/internal/storage"
	"github.com/julianstephens/coursecal/internal/utils"
	"github.com/julianstephens/coursecal/internal/validation"
)

type CourseAddCmd struct {
	Code       string `arg:"" help:"Course code, e.g. CS101."`
	Title      string `arg:"" help:"Course title."`
	Term       string `short:"t" help:"ID of the term the course belongs to."`
	Days       string `short:"d" help:"Comma-separated meeting days (Mon,Wed or 1,3)."`
	Start      string `short:"s" help:"Meeting start time (HH:MM)."`
	End        string `short:"e" help:"Meeting end time (HH:MM)."`
	Instructor string `short:"i" help:"Instructor name."`
	Location   string `short:"l" help:"Room or building."`
	ID         string `help:"Explicit course ID (defaults to a UUID)."`
}

func (c *CourseAddCmd) Validate() error {
	if c.Days != "" {
		if _, err := utils.ParseWeekdays(utils.SplitWeekdays(c.Days)); err != nil {
			return fmt.Errorf("invalid --days: %w", err)
		}
	}
	if c.Start != "" && !utils.ValidateTimeFormat(c.Start) {
		return fmt.Errorf("invalid --start time format (expected HH:MM): %s", c.Start)
	}
	if c.End != "" && !utils.ValidateTimeFormat(c.End) {
		return fmt.Errorf("invalid --end time format (expected HH:MM): %s", c.End)
	}
	if (c.Start == "") != (c.End == "") {
		return errors.New("--start and --end must be given together")
	}
	if c.Start != "" && c.Days == "" {
		return errors.New("--days is required when meeting times are given")
	}
	if c.Start != "" {
		start, _ := utils.ParseTimeToMinutes(c.Start) // already validated
		end, _ := utils.ParseTimeToMinutes(c.End)
		if end < start {
			return fmt.Errorf("--end %s is before --start %s", c.End, c.Start)
		}
	}
	return nil
}

func (c *CourseAddCmd) Run(ctx *cli.Context) error {
	if c.Term != "" {
		if _, err := ctx.Store.GetTerm(c.Term); err != nil {
			return cli.NotFound(err, "term", c.Term)
		}
	}

	days, err := utils.NormalizeWeekdays(utils.SplitWeekdays(c.Days))
	if err != nil {
		return err
	}

	course := models.Course{
		ID:           c.ID,
		TermID:       c.Term,
		Code:         strings.TrimSpace(c.Code),
		Title:        c.Title,
		MeetingDays:  days,
		MeetingStart: c.Start,
		MeetingEnd:   c.End,
		Instructor:   c.Instructor,
		Location:     c.Location,
	}
	if course.ID == "" {
		course.ID = uuid.New().String()
	}

	existing, err := ctx.Store.GetAllCourses()
	if err != nil {
		return fmt.Errorf("failed to get courses: %w", err)
	}
	for _, e := range existing {
		if e.Code == course.Code && e.TermID == course.TermID && e.ID != course.ID {
			return fmt.Errorf("course code %s already exists in this term (ID: %s)", course.Code, e.ID)
		}
	}

	if err := ctx.Store.AddCourse(course); err != nil {
		return err
	}
	ctx.Printf("Added course: %s %s (ID: %s)\n", course.Code, course.Title, course.ID)

	// Overlaps are allowed but worth pointing out.
	res := validation.New().ValidateCourses(append(existing, course))
	for _, conflict := range res.Conflicts {
		if conflict.Type == validation.ConflictOverlappingCourses && containsID(conflict.CourseIDs, course.ID) {
			ctx.Printf("Warning: %s\n", conflict.Description)
		}
	}
	return nil
}

func containsID(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

type CourseListCmd struct {
	Term    string `short:"t" help:"Only list courses in this term."`
	ShowIDs bool   `help:"Show course IDs." name:"show-ids"`
}

func (c *CourseListCmd) Run(ctx *cli.Context) error {
	courses, err := ctx.Store.GetAllCourses()
	if err != nil {
		return fmt.Errorf("failed to get courses: %w", err)
	}

	shown := 0
	for _, course := range courses {
		if c.Term != "" && course.TermID != c.Term {
			continue
		}
		if shown == 0 {
			ctx.Println("Courses:")
		}
		shown++

		idStr := ""
		if c.ShowIDs {
			idStr = fmt.Sprintf(" (ID: %s)", course.ID)
		}
		ctx.Printf("  %s %s%s\n", course.Code, course.Title, idStr)
		if course.HasMeetingPattern() {
			ctx.Printf("      %s %s-%s\n", strings.Join(course.MeetingDays, ","), course.MeetingStart, course.MeetingEnd)
		}
		if course.Instructor != "" || course.Location != "" {
			ctx.Printf("      %s\n", strings.Trim(course.Instructor+" @ "+course.Location, " @"))
		}
	}
	if shown == 0 {
		ctx.Println("No courses found")
	}
	return nil
}

type CourseDeleteCmd struct {
	ID string `arg:"" help:"ID of the course to delete. Its assignments are deleted too."`
}

func (c *CourseDeleteCmd) Run(ctx *cli.Context) error {
	course, err := ctx.Store.GetCourse(c.ID)
	if err != nil {
		return cli.NotFound(err, "course", c.ID)
	}
	if err := ctx.Store.DeleteCourse(c.ID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return cli.NotFound(err, "course", c.ID)
		}
		return err
	}
	ctx.Printf("Deleted course: %s %s\n", course.Code, course.Title)
	return nil
}
