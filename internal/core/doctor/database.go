package doctor

import (
	"context"
	"fmt"
	"os"

	"github.com/dustin/go-humanize"
)

// SchemaVersioner reports the applied migration version of a database.
type SchemaVersioner interface {
	SchemaVersion(ctx context.Context) (int, error)
	Path() string
}

// DatabaseCheck reports the sqlite file and its schema version.
type DatabaseCheck struct {
	db SchemaVersioner
}

// NewDatabaseCheck creates a database check.
func NewDatabaseCheck(db SchemaVersioner) *DatabaseCheck {
	return &DatabaseCheck{db: db}
}

func (c *DatabaseCheck) Name() string {
	return "Database"
}

func (c *DatabaseCheck) Run(ctx context.Context) Result {
	result := Result{Name: c.Name()}

	path := c.db.Path()
	if info, err := os.Stat(path); err != nil {
		result.Items = append(result.Items, CheckItem{Label: "file", Status: StatusWarn, Detail: err.Error()})
	} else {
		result.Items = append(result.Items, CheckItem{
			Label:  "file",
			Status: StatusPass,
			Detail: fmt.Sprintf("%s (%s)", path, humanize.Bytes(uint64(info.Size()))),
		})
	}

	version, err := c.db.SchemaVersion(ctx)
	if err != nil {
		result.Items = append(result.Items, CheckItem{
			Label:   "schema",
			Status:  StatusFail,
			Detail:  err.Error(),
			Fixable: true,
			Fix:     "tend data recover",
		})
		return result
	}

	result.Items = append(result.Items, CheckItem{
		Label:  "schema",
		Status: StatusPass,
		Detail: fmt.Sprintf("version %d", version),
	})
	return result
}
