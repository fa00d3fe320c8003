package outwriter

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/dreamscape/testkit/internal/contract"
)

// writeWithFile handles the common pattern of creating a file, writing to it, and cleaning up.
// It accepts a writer function that takes an io.Writer and returns an error.
func (ow *OutWriter) writeWithFile(outputFile string, writer func(io.Writer) error, successMsg string) error {
	file, err := contract.SelectOutputFile(outputFile)
	if err != nil {
		return fmt.Errorf("cannot create %s: %w", outputFile, err)
	}
	// Only close if it's not stdout
	if file != os.Stdout {
		defer func() { _ = file.Close() }()
	}

	if err := writer(file); err != nil {
		return fmt.Errorf("cannot write %s: %w", outputFile, err)
	}

	if file != os.Stdout && successMsg != "" {
		_, _ = fmt.Fprintf(ow.progress, "%s: %s\n", successMsg, outputFile)
	}
	return nil
}

// writeString writes a rendered document into dir/name.
func (ow *OutWriter) writeString(dir, name, content, successMsg string) error {
	return ow.writeWithFile(filepath.Join(dir, name), func(w io.Writer) error {
		_, err := io.WriteString(w, content)
		return err
	}, successMsg)
}

// writeJSON is a generic JSON encoder that handles indentation consistently.
func writeJSON(w io.Writer, data any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(data); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}
