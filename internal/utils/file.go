package utils

import (
	"fmt"
	"os"
	"strings"
)

// WriteDocument writes the JSON document to path, replacing whatever was there.
func WriteDocument(path, doc string) error {
	if !strings.HasSuffix(doc, "\n") {
		doc += "\n"
	}
	err := os.WriteFile(path, []byte(doc), 0o644)
	if err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}
	return nil
}
