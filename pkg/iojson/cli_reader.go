package iojson

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v3"
	"golang.org/x/term"
)

// FileReader reads a JSON document from the file named by its --file flag,
// or from stdin when the flag is unset.
type FileReader[T any] struct {
	fileFlagValue string
	stdin         io.Reader
}

func (fr *FileReader[T]) Flag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:        "file",
		Aliases:     []string{"f"},
		Usage:       "path to JSON file (reads from stdin if not provided)",
		Destination: &fr.fileFlagValue,
	}
}

// ReadBytes returns the raw document without decoding it.
func (fr *FileReader[T]) ReadBytes() ([]byte, error) {
	if fr.fileFlagValue != "" {
		b, err := os.ReadFile(fr.fileFlagValue)
		if err != nil {
			return nil, fmt.Errorf("read file: %w", err)
		}
		return b, nil
	}

	reader := fr.stdin
	if reader == nil {
		if term.IsTerminal(int(os.Stdin.Fd())) {
			return nil, fmt.Errorf("no input provided (stdin is a terminal); use -f flag or pipe JSON input")
		}
		reader = os.Stdin
	}

	b, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("read stdin: %w", err)
	}
	return b, nil
}

// Read decodes the document into T.
func (fr *FileReader[T]) Read() (T, error) {
	var input T

	b, err := fr.ReadBytes()
	if err != nil {
		return input, err
	}

	if err := json.Unmarshal(b, &input); err != nil {
		return input, fmt.Errorf("decode JSON: %w", err)
	}

	return input, nil
}
