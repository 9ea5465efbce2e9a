package doctor

import (
	"context"
	"fmt"

	"github.com/dustin/go-humanize"

	"github.com/colonyops/tend/internal/core/todo"
	"github.com/colonyops/tend/internal/storage"
)

// Snapshots is the part of the persistence gateway the storage check reads.
type Snapshots interface {
	IsAvailable(ctx context.Context) bool
	Stat(ctx context.Context) (storage.Info, error)
	Load(ctx context.Context) (todo.AppData, error)
}

// StorageCheck probes the substrate and decodes the stored snapshot.
type StorageCheck struct {
	snapshots Snapshots
	maxBytes  int64
}

// NewStorageCheck creates a storage check. maxBytes is the configured quota,
// 0 meaning unlimited.
func NewStorageCheck(snapshots Snapshots, maxBytes int64) *StorageCheck {
	return &StorageCheck{snapshots: snapshots, maxBytes: maxBytes}
}

func (c *StorageCheck) Name() string {
	return "Storage"
}

func (c *StorageCheck) Run(ctx context.Context) Result {
	result := Result{Name: c.Name()}

	if !c.snapshots.IsAvailable(ctx) {
		result.Items = append(result.Items, CheckItem{
			Label:  "substrate",
			Status: StatusFail,
			Detail: "probe write failed",
		})
		return result
	}
	result.Items = append(result.Items, CheckItem{Label: "substrate", Status: StatusPass, Detail: "writable"})

	info, err := c.snapshots.Stat(ctx)
	if err != nil {
		result.Items = append(result.Items, CheckItem{Label: "snapshot", Status: StatusFail, Detail: err.Error()})
		return result
	}
	if !info.Exists {
		result.Items = append(result.Items, CheckItem{Label: "snapshot", Status: StatusPass, Detail: "nothing stored yet"})
		return result
	}

	result.Items = append(result.Items, c.sizeItem(info))

	data, err := c.snapshots.Load(ctx)
	if err != nil {
		item := CheckItem{Label: "contents", Status: StatusFail, Detail: err.Error()}
		if todo.KindOf(err) == todo.KindDataCorrupted {
			item.Fixable = true
			item.Fix = "tend data reset"
		}
		result.Items = append(result.Items, item)
		return result
	}

	result.Items = append(result.Items, CheckItem{
		Label:  "contents",
		Status: StatusPass,
		Detail: describe(data),
	})
	return result
}

func (c *StorageCheck) sizeItem(info storage.Info) CheckItem {
	item := CheckItem{
		Label:  "snapshot",
		Status: StatusPass,
		Detail: fmt.Sprintf("%s, updated %s", humanize.Bytes(uint64(info.Bytes)), humanize.Time(info.Entry.UpdatedAt)),
	}

	if c.maxBytes <= 0 {
		return item
	}

	used := float64(info.Bytes) / float64(c.maxBytes)
	item.Detail = fmt.Sprintf("%s of %s quota (%.0f%%)", humanize.Bytes(uint64(info.Bytes)), humanize.Bytes(uint64(c.maxBytes)), used*100)
	if used >= 0.8 {
		item.Status = StatusWarn
		item.Fixable = true
		item.Fix = "raise storage.max_bytes in the config file"
	}
	return item
}

func describe(data todo.AppData) string {
	deleted := len(todo.GetDeletedTodos(data.Todos))
	return fmt.Sprintf("%d todos (%d active, %d completed, %d deleted), %d tags, %d categories",
		len(data.Todos),
		todo.GetActiveTodosCount(data.Todos),
		todo.GetCompletedTodosCount(data.Todos),
		deleted,
		len(data.Tags),
		len(data.Categories),
	)
}
