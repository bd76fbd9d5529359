package output

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/mrz1836/slip39/pkg/slip39err"
)

// ErrorOutput represents a structured error for JSON output.
type ErrorOutput struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail contains error details.
type ErrorDetail struct {
	Kind     string `json:"kind"`
	Message  string `json:"message"`
	ExitCode int    `json:"exit_code"`
}

// FormatError formats an error for display.
func FormatError(w io.Writer, err error, format Format) error {
	if err == nil {
		return nil
	}

	if format == FormatJSON {
		return formatErrorJSON(w, err)
	}
	return formatErrorText(w, err)
}

// formatErrorJSON outputs error in JSON format.
func formatErrorJSON(w io.Writer, err error) error {
	var se *slip39err.Error
	detail := ErrorDetail{
		Kind:     "general",
		Message:  err.Error(),
		ExitCode: slip39err.ExitCode(err),
	}
	if errors.As(err, &se) {
		detail.Kind = string(se.Kind)
		detail.Message = se.Message
	}

	output := ErrorOutput{Error: detail}
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(output)
}

// formatErrorText outputs error in text format.
func formatErrorText(w io.Writer, err error) error {
	var se *slip39err.Error
	var msg string
	if errors.As(err, &se) {
		msg = fmt.Sprintf("Error [%s]: %s\n", se.Kind, se.Message)
	} else {
		msg = fmt.Sprintf("Error: %s\n", err.Error())
	}

	_, writeErr := w.Write([]byte(msg))
	return writeErr
}

// FormatSuccess formats a success message.
func FormatSuccess(w io.Writer, message string, format Format) error {
	if format == FormatJSON {
		output := map[string]string{"status": "success", "message": message}
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		return encoder.Encode(output)
	}
	_, err := fmt.Fprintln(w, message)
	return err
}
