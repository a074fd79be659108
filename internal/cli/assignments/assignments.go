package assignments

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/julianstephens/coursecal/internal/calendar"
	"github.com/julianstephens/coursecal/internal/cli"
	"github.com/julianstephens/coursecal/internal/constants"
	"github.com/julianstephens/coursecal/internal/models"
	"github.com/julianstephens/coursecal/internal/utils"
)

type AssignmentAddCmd struct {
	Title  string `arg:"" help:"Assignment title."`
	Due    string `short:"d" help:"Due date (YYYY-MM-DD or 'YYYY-MM-DD HH:MM'). A bare date is due at 23:59." required:""`
	Course string `short:"c" help:"Course ID or code."`
	Notes  string `short:"n" help:"Free-form notes."`
}

func (c *AssignmentAddCmd) Run(ctx *cli.Context) error {
	loc, err := ctx.Location()
	if err != nil {
		return err
	}
	due, dateOnly, err := utils.ParseDateTimeInLocation(c.Due, loc)
	if err != nil {
		return err
	}
	if dateOnly {
		due = utils.AtClock(due, 23, 59, loc)
	}

	a := models.Assignment{
		ID:     uuid.New().String(),
		Title:  c.Title,
		DueAt:  due,
		Status: models.AssignmentTodo,
		Notes:  c.Notes,
	}
	if c.Course != "" {
		course, err := resolveCourse(ctx, c.Course)
		if err != nil {
			return err
		}
		a.CourseID = course.ID
	}

	if err := ctx.Store.AddAssignment(a); err != nil {
		return err
	}
	ctx.Printf("Added assignment: %s due %s (ID: %s)\n", a.Title, a.DueAt.Format(constants.DateTimeFormat), a.ID)
	return nil
}

// resolveCourse accepts a course ID or a case-insensitive course code.
func resolveCourse(ctx *cli.Context, ref string) (models.Course, error) {
	if course, err := ctx.Store.GetCourse(ref); err == nil {
		return course, nil
	}
	courses, err := ctx.Store.GetAllCourses()
	if err != nil {
		return models.Course{}, fmt.Errorf("failed to get courses: %w", err)
	}
	for _, course := range courses {
		if strings.EqualFold(course.Code, ref) {
			return course, nil
		}
	}
	return models.Course{}, fmt.Errorf("course not found: %s", ref)
}

type AssignmentListCmd struct {
	All     bool   `short:"a" help:"Include completed assignments."`
	Course  string `short:"c" help:"Only list assignments for this course ID or code."`
	ShowIDs bool   `help:"Show assignment IDs." name:"show-ids"`
}

func (c *AssignmentListCmd) Run(ctx *cli.Context) error {
	assignments, err := ctx.Store.GetAllAssignments()
	if err != nil {
		return fmt.Errorf("failed to get assignments: %w", err)
	}
	courses, err := ctx.Store.GetAllCourses()
	if err != nil {
		return fmt.Errorf("failed to get courses: %w", err)
	}
	codes := make(map[string]string, len(courses))
	for _, course := range courses {
		codes[course.ID] = course.Code
	}

	var filterID string
	if c.Course != "" {
		course, err := resolveCourse(ctx, c.Course)
		if err != nil {
			return err
		}
		filterID = course.ID
	}

	loc, err := ctx.Location()
	if err != nil {
		return err
	}
	now := ctx.Clock().In(loc)
	shown := 0
	for _, a := range assignments {
		if !c.All && a.Done() {
			continue
		}
		if filterID != "" && a.CourseID != filterID {
			continue
		}
		if shown == 0 {
			ctx.Println("Assignments:")
		}
		shown++

		status := string(calendar.PriorityFor(a.DueAt, now))
		if a.Done() {
			status = "done"
		}
		course := ""
		if code, ok := codes[a.CourseID]; ok {
			course = code + " "
		}
		idStr := ""
		if c.ShowIDs {
			idStr = fmt.Sprintf(" (ID: %s)", a.ID)
		}
		ctx.Printf("  [%s] %s%s - due %s%s\n", status, course, a.Title, a.DueAt.In(loc).Format(constants.DateTimeFormat), idStr)
	}
	if shown == 0 {
		ctx.Println("No assignments found")
	}
	return nil
}

type AssignmentDoneCmd struct {
	ID   string `arg:"" help:"ID of the assignment."`
	Undo bool   `help:"Mark the assignment as not done."`
}

func (c *AssignmentDoneCmd) Run(ctx *cli.Context) error {
	a, err := ctx.Store.GetAssignment(c.ID)
	if err != nil {
		return cli.NotFound(err, "assignment", c.ID)
	}
	a.Status = models.AssignmentDone
	if c.Undo {
		a.Status = models.AssignmentTodo
	}
	if err := ctx.Store.UpdateAssignment(a); err != nil {
		return err
	}
	ctx.Printf("Marked %s as %s\n", a.Title, a.Status)
	return nil
}

type AssignmentDeleteCmd struct {
	ID string `arg:"" help:"ID of the assignment to delete."`
}

func (c *AssignmentDeleteCmd) Run(ctx *cli.Context) error {
	if err := ctx.Store.DeleteAssignment(c.ID); err != nil {
		return cli.NotFound(err, "assignment", c.ID)
	}
	ctx.Printf("Deleted assignment: %s\n", c.ID)
	return nil
}
