// iojson are utilities for reading and writing JSON IO from a
// command line interface perspective
package iojson

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// Error is the standard error format type that is returned when errors
// happen. Kind is a machine-readable classification, empty when unknown.
type Error struct {
	Message string         `json:"message"`
	Kind    string         `json:"kind,omitempty"`
	Data    map[string]any `json:"data,omitempty"`
}

func jsonError(msg string, jsonErr error) string {
	// Use json.Marshal to properly escape strings
	msgBytes, _ := json.Marshal(msg)
	errBytes, _ := json.Marshal(jsonErr.Error())
	return fmt.Sprintf(`{"message":%s,"data":{"json_error":%s}}`, msgBytes, errBytes)
}

// MarshalError builds the JSON error document. If marshaling fails the
// returned blob carries the marshal error instead, which indicates a bug.
func MarshalError(msg, kind string, data map[string]any) string {
	resp := Error{Message: msg, Kind: kind, Data: data}

	bits, err := json.MarshalIndent(resp, "", "  ")
	if err != nil {
		return jsonError(msg, err)
	}

	return string(bits)
}

// WriteErrorTo writes the JSON error document to w.
func WriteErrorTo(w io.Writer, msg, kind string, data map[string]any) error {
	_, err := fmt.Fprintln(w, MarshalError(msg, kind, data))
	return err
}

// WriteError calls WriteErrorTo with [os.Stderr].
func WriteError(msg, kind string, data map[string]any) error {
	return WriteErrorTo(os.Stderr, msg, kind, data)
}

// WriteWith writes obj as indented JSON to w. Marshal failures are reported
// on ew.
func WriteWith(w io.Writer, ew io.Writer, obj any) error {
	bits, err := json.MarshalIndent(obj, "", "  ")
	if err != nil {
		errStr := jsonError("error marshaling in iojson.Write", err)
		_, err = fmt.Fprintln(ew, errStr)
		return err
	}

	_, err = fmt.Fprintln(w, string(bits))
	return err
}

// Write calls WriteWith with [os.Stdout] and [os.Stderr]
func Write(obj any) error {
	return WriteWith(os.Stdout, os.Stderr, obj)
}

// WriteLine writes obj as a single line of compact JSON, for JSON Lines
// output.
func WriteLine(w io.Writer, obj any) error {
	bits, err := json.Marshal(obj)
	if err != nil {
		return fmt.Errorf("marshal line: %w", err)
	}
	_, err = fmt.Fprintln(w, string(bits))
	return err
}
