package inputs

import (
	"fmt"
	"io"
	"os"
	"strings"
)

// StdinFile as a Source file reads the value from standard input.
const StdinFile = "-"

var stdin io.Reader = os.Stdin

// Source describes where a text input such as the job description or the
// service token comes from.
type Source struct {
	// Name is used in error messages.
	Name string
	// Value is given inline through configuration or flags.
	Value string
	// File takes precedence over Value when set.
	File string
}

func (s Source) configured() bool {
	return strings.TrimSpace(s.File) != "" || strings.TrimSpace(s.Value) != ""
}

// Load returns the trimmed text of src. It fails when neither File nor Value
// hold anything usable.
func Load(src Source) (string, error) {
	name := strings.TrimSpace(src.Name)
	if name == "" {
		name = "input"
	}

	file := strings.TrimSpace(src.File)
	if file != "" {
		data, err := readFile(file)
		if err != nil {
			return "", fmt.Errorf("reading %s from file %q: %w", name, file, err)
		}
		src.Value = string(data)
		src.File = file
	}

	text := strings.TrimSpace(src.Value)
	if text == "" {
		if src.File != "" {
			return "", fmt.Errorf("%s file %q is empty", name, src.File)
		}
		return "", fmt.Errorf("%s is not configured", name)
	}

	return text, nil
}

// Optional is Load for inputs that may be left out entirely.
func Optional(src Source) (string, error) {
	if !src.configured() {
		return "", nil
	}
	return Load(src)
}

func readFile(path string) ([]byte, error) {
	if path == StdinFile {
		return io.ReadAll(stdin)
	}
	return os.ReadFile(path)
}
