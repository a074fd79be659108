package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/julianstephens/coursecal/internal/agenda"
	"github.com/julianstephens/coursecal/internal/models"
	"github.com/julianstephens/coursecal/internal/storage"
	"github.com/julianstephens/coursecal/internal/utils"
)

type Context struct {
	Store storage.Provider
	// Now overrides the wall clock; nil means time.Now.
	Now func() time.Time
	// Out receives command output; nil means os.Stdout.
	Out io.Writer
}

func (c *Context) Clock() time.Time {
	if c.Now != nil {
		return c.Now()
	}
	return time.Now()
}

func (c *Context) Stdout() io.Writer {
	if c.Out != nil {
		return c.Out
	}
	return os.Stdout
}

func (c *Context) Print(args ...interface{}) {
	fmt.Fprint(c.Stdout(), args...)
}

func (c *Context) Printf(format string, args ...interface{}) {
	fmt.Fprintf(c.Stdout(), format, args...)
}

func (c *Context) Println(args ...interface{}) {
	fmt.Fprintln(c.Stdout(), args...)
}

// Settings returns the stored settings with defaults filled in.
func (c *Context) Settings() (models.Settings, error) {
	settings, err := c.Store.GetSettings()
	if err != nil {
		return models.Settings{}, fmt.Errorf("failed to get settings: %w", err)
	}
	models.ApplyDefaultSettings(&settings)
	return settings, nil
}

// Location returns the configured timezone.
func (c *Context) Location() (*time.Location, error) {
	settings, err := c.Settings()
	if err != nil {
		return nil, err
	}
	loc, err := utils.LoadLocation(settings.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", settings.Timezone, err)
	}
	return loc, nil
}

// Feed builds the merged calendar as of the context clock.
func (c *Context) Feed() (*agenda.Feed, error) {
	return agenda.Load(c.Store, c.Clock())
}

// NotFound rewrites storage.ErrNotFound into a message naming the record.
func NotFound(err error, kind, id string) error {
	if errors.Is(err, storage.ErrNotFound) {
		return fmt.Errorf("%s not found: %s", kind, id)
	}
	return err
}
