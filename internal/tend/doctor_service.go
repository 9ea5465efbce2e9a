package tend

import (
	"context"

	"github.com/colonyops/tend/internal/core/doctor"
	"github.com/colonyops/tend/internal/core/todo"
)

// DoctorService runs health checks on the tend setup.
type DoctorService struct {
	app *App
}

// RunChecks executes all doctor checks and returns results. A substrate that
// cannot be opened is reported as a failed check rather than an error.
func (d *DoctorService) RunChecks(ctx context.Context, configPath string) []doctor.Result {
	checks := []doctor.Check{
		doctor.NewConfigCheck(d.app.Config, configPath),
	}

	gw, err := d.app.Gateway(ctx)
	if err != nil {
		checks = append(checks, failedCheck{name: "Storage", label: "substrate", err: err})
		return doctor.RunAll(ctx, checks)
	}

	if database := d.app.DB(); database != nil {
		checks = append(checks, doctor.NewDatabaseCheck(database))
	}
	checks = append(checks, doctor.NewStorageCheck(gw, d.app.Config.Storage.MaxBytes))

	return doctor.RunAll(ctx, checks)
}

// failedCheck reports an error that stopped a check from running.
type failedCheck struct {
	name  string
	label string
	err   error
}

func (c failedCheck) Name() string { return c.name }

func (c failedCheck) Run(context.Context) doctor.Result {
	item := doctor.CheckItem{Label: c.label, Status: doctor.StatusFail, Detail: c.err.Error()}
	if todo.KindOf(c.err) == todo.KindStorageUnavailable {
		item.Fixable = true
		item.Fix = "tend data recover"
	}
	return doctor.Result{Name: c.name, Items: []doctor.CheckItem{item}}
}
