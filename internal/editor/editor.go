// Package editor opens the user's editor on a scratch file to collect a
// reflection.
package editor

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// ErrEmpty is returned by Reflection when the editor leaves nothing behind.
var ErrEmpty = errors.New("reflection is empty")

// commentPrefix marks guide lines that are dropped from the result.
const commentPrefix = "//"

// ResolveEditor determines which editor to use based on config, env vars, and fallback.
func ResolveEditor(configEditor string) string {
	if configEditor != "" {
		return configEditor
	}
	if ed := os.Getenv("EDITOR"); ed != "" {
		return ed
	}
	if ed := os.Getenv("VISUAL"); ed != "" {
		return ed
	}
	return "vi"
}

// Edit opens the given content in an editor and returns the edited content.
// If the user saves unchanged content or an empty file, it returns the original
// content and changed=false.
func Edit(editorCmd string, initialContent string) (content string, changed bool, err error) {
	tmp, err := os.CreateTemp("", "moodlog-*.md")
	if err != nil {
		return "", false, fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.WriteString(initialContent); err != nil {
		tmp.Close()
		return "", false, fmt.Errorf("writing temp file: %w", err)
	}
	tmp.Close()

	parts := strings.Fields(editorCmd)
	if len(parts) == 0 {
		return "", false, fmt.Errorf("empty editor command")
	}

	cmdArgs := append(parts[1:], tmpName)
	cmd := exec.Command(parts[0], cmdArgs...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		return "", false, fmt.Errorf("editor exited with error: %w", err)
	}

	data, err := os.ReadFile(tmpName)
	if err != nil {
		return "", false, fmt.Errorf("reading edited file: %w", err)
	}

	result := string(data)
	if strings.TrimSpace(result) == "" {
		return "", false, nil
	}
	if strings.TrimSpace(result) == strings.TrimSpace(initialContent) {
		return initialContent, false, nil
	}
	return result, true, nil
}

// Guide is the scratch file content shown when collecting a reflection.
func Guide(day string) string {
	return fmt.Sprintf(`%[1]s Reflection for %[2]s
%[1]s What went well? What drained you? Lines starting with %[1]s are ignored.

`, commentPrefix, day)
}

// Reflection edits a guide for day and returns the text the user wrote,
// without guide lines. ErrEmpty means the user wrote nothing.
func Reflection(editorCmd, day string) (string, error) {
	guide := Guide(day)
	content, changed, err := Edit(editorCmd, guide)
	if err != nil {
		return "", err
	}
	if !changed {
		return "", ErrEmpty
	}
	text := StripGuide(content)
	if text == "" {
		return "", ErrEmpty
	}
	return text, nil
}

// StripGuide removes guide lines and surrounding whitespace.
func StripGuide(content string) string {
	var kept []string
	for _, line := range strings.Split(content, "\n") {
		if strings.HasPrefix(strings.TrimSpace(line), commentPrefix) {
			continue
		}
		kept = append(kept, line)
	}
	return strings.TrimSpace(strings.Join(kept, "\n"))
}
