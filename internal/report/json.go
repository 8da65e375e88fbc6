package report

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/grok-skills/grokkit/internal/checker"
)

// WriteJSON encodes s as indented JSON.
func WriteJSON(w io.Writer, s *checker.Summary) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(s); err != nil {
		return fmt.Errorf("encoding JSON report: %w", err)
	}
	return nil
}

// WriteJSONFile writes the JSON report to path.
func WriteJSONFile(path string, s *checker.Summary) error {
	return writeFile(path, func(w io.Writer) error { return WriteJSON(w, s) })
}

func writeFile(path string, render func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating report %s: %w", path, err)
	}
	if err := render(f); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing report %s: %w", path, err)
	}
	return nil
}
