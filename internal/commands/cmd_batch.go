package commands

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/hay-kot/criterio"
	"github.com/urfave/cli/v3"

	"github.com/colonyops/tend/internal/core/logging"
	"github.com/colonyops/tend/internal/core/validate"
	"github.com/colonyops/tend/internal/tend"
	"github.com/colonyops/tend/pkg/iojson"
	"github.com/colonyops/tend/pkg/randid"
)

type BatchCmd struct {
	flags *Flags
	fr    *iojson.FileReader[BatchInput]
}

func NewBatchCmd(flags *Flags) *BatchCmd {
	return &BatchCmd{
		flags: flags,
		fr:    &iojson.FileReader[BatchInput]{},
	}
}

func (cmd *BatchCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:  "batch",
		Usage: "Add multiple todos from JSON input",
		UsageText: `tend batch [options]

Read from stdin:
  echo '{"todos":[{"title":"buy milk","tags":["errands"]}]}' | tend batch

Read from file:
  tend batch -f todos.json`,
		Description: `Adds todos from a JSON document, one at a time and in order.

The whole document is validated before anything is added. Processing stops
after 3 failures; todos not attempted are marked as skipped.

Input JSON schema:
  {
    "todos": [
      {
        "title": "required",
        "description": "optional markdown",
        "priority": "low | medium | high",
        "tags": ["optional", "names"],
        "category": "optional name",
        "scheduled": "optional date"
      }
    ]
  }

Output is JSON with a batch ID and a result for each todo.`,
		Flags: []cli.Flag{
			cmd.fr.Flag(),
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *BatchCmd) run(ctx context.Context, c *cli.Command) error {
	batchID := randid.Prefixed("b-", 6)
	logger := logging.Component("batch").With().Str("batch_id", batchID).Logger()
	w := c.Root().Writer

	input, err := cmd.fr.Read()
	if err != nil {
		logger.Error().Err(err).Msg("failed to read input")
		return iojson.WriteErrorTo(w, fmt.Sprintf("read input: %s", err), "", nil)
	}

	now := time.Now()
	if err := input.Validate(now); err != nil {
		logger.Error().Err(err).Msg("input validation failed")
		return iojson.WriteErrorTo(w, fmt.Sprintf("invalid input: %s", err), "", nil)
	}

	output := BatchOutput{
		BatchID: batchID,
		Results: make([]BatchResult, 0, len(input.Todos)),
	}

	failures := 0
	for i, item := range input.Todos {
		if failures >= maxFailures {
			logger.Warn().Int("index", i).Msg("skipping remaining todos due to failure threshold")
			for j := i; j < len(input.Todos); j++ {
				output.Results = append(output.Results, BatchResult{
					Title:  input.Todos[j].Title,
					Status: StatusSkipped,
				})
			}
			break
		}

		result := cmd.addTodo(ctx, item, now)
		output.Results = append(output.Results, result)

		if result.Status == StatusFailed {
			failures++
			logger.Error().Int("index", i).Str("error", result.Error).Msg("add failed")
		} else {
			logger.Debug().Int("index", i).Str("id", result.ID).Msg("todo added")
		}
	}

	logger.Info().
		Int("total", len(input.Todos)).
		Int("created", countByStatus(output.Results, StatusCreated)).
		Int("failed", countByStatus(output.Results, StatusFailed)).
		Int("skipped", countByStatus(output.Results, StatusSkipped)).
		Msg("batch processing complete")

	return iojson.WriteWith(w, os.Stderr, output)
}

func (cmd *BatchCmd) addTodo(ctx context.Context, item BatchTodo, now time.Time) BatchResult {
	in, err := item.input(now)
	if err != nil {
		return BatchResult{Title: item.Title, Status: StatusFailed, Error: err.Error()}
	}

	created, err := cmd.flags.App.Todos.Add(ctx, in)
	if err != nil {
		return BatchResult{Title: item.Title, Status: StatusFailed, Error: err.Error()}
	}

	return BatchResult{Title: created.Title, ID: created.ID, Status: StatusCreated}
}

const (
	StatusCreated = "created" // StatusCreated indicates the todo was added.
	StatusFailed  = "failed"  // StatusFailed indicates adding the todo failed.
	StatusSkipped = "skipped" // StatusSkipped indicates the todo was not attempted due to failure threshold.
	maxFailures   = 3         // maxFailures is the number of failures before stopping batch processing.
)

// BatchInput is the JSON input schema for batch todo creation.
type BatchInput struct {
	Todos []BatchTodo `json:"todos"`
}

// Validate checks every entry before any todo is added.
func (b BatchInput) Validate(now time.Time) error {
	if len(b.Todos) == 0 {
		return criterio.NewFieldErrors("todos", fmt.Errorf("array is empty"))
	}

	var errs criterio.FieldErrorsBuilder
	for i, item := range b.Todos {
		field := fmt.Sprintf("todos[%d]", i)

		if err := validate.Title(item.Title); err != nil {
			errs = errs.Append(field+".title", err)
		}
		if err := validate.Description(item.Description); err != nil {
			errs = errs.Append(field+".description", err)
		}
		if _, err := parsePriority(item.Priority); err != nil {
			errs = errs.Append(field+".priority", err)
		}
		if _, err := parseDate(item.Scheduled, false, now); err != nil {
			errs = errs.Append(field+".scheduled", err)
		}
	}

	return errs.ToError()
}

// BatchTodo defines a single todo to add.
type BatchTodo struct {
	Title       string   `json:"title"`
	Description string   `json:"description,omitempty"`
	Priority    string   `json:"priority,omitempty"`
	Tags        []string `json:"tags,omitempty"`
	Category    string   `json:"category,omitempty"`
	Scheduled   string   `json:"scheduled,omitempty"`
}

func (b BatchTodo) input(now time.Time) (tend.AddInput, error) {
	priority, err := parsePriority(b.Priority)
	if err != nil {
		return tend.AddInput{}, err
	}

	in := tend.AddInput{
		Title:       b.Title,
		Description: b.Description,
		Priority:    priority,
		Tags:        b.Tags,
		Category:    b.Category,
	}

	at, err := parseDate(b.Scheduled, false, now)
	if err != nil {
		return tend.AddInput{}, err
	}
	if at != "" {
		in.ScheduledAt = &at
	}
	return in, nil
}

// BatchResult is the output for a single add attempt.
type BatchResult struct {
	Title  string `json:"title"`
	ID     string `json:"id,omitempty"`
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

// BatchOutput is the JSON output schema.
type BatchOutput struct {
	BatchID string        `json:"batch_id"`
	Results []BatchResult `json:"results"`
}

func countByStatus(results []BatchResult, status string) int {
	count := 0
	for _, r := range results {
		if r.Status == status {
			count++
		}
	}
	return count
}
