// ABOUTME: $EDITOR integration for writing note content.
// ABOUTME: Round-trips text through a temp file.

package main

import (
	"fmt"
	"os"
	"os/exec"
)

func openEditor(initial string) (string, error) {
	editor := os.Getenv("EDITOR")
	if editor == "" {
		editor = "vim"
	}

	tmpFile, err := os.CreateTemp("", "notes-*.md")
	if err != nil {
		return "", err
	}
	defer func() {
		_ = os.Remove(tmpFile.Name())
	}()

	if initial != "" {
		if _, err := tmpFile.WriteString(initial); err != nil {
			_ = tmpFile.Close()
			return "", fmt.Errorf("failed to write initial content: %w", err)
		}
	}
	if err := tmpFile.Close(); err != nil {
		return "", fmt.Errorf("failed to close temp file: %w", err)
	}

	cmd := exec.Command(editor, tmpFile.Name()) //nolint:gosec // Launching $EDITOR is expected CLI behavior
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		return "", err
	}

	data, err := os.ReadFile(tmpFile.Name())
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// readContent picks content from --content, then --file, then $EDITOR.
func readContent(contentFlag, fileFlag, initial string) (string, error) {
	switch {
	case contentFlag != "":
		return contentFlag, nil
	case fileFlag != "":
		data, err := os.ReadFile(fileFlag) //nolint:gosec // User-specified file path is expected CLI behavior
		if err != nil {
			return "", fmt.Errorf("failed to read file: %w", err)
		}
		return string(data), nil
	default:
		content, err := openEditor(initial)
		if err != nil {
			return "", fmt.Errorf("failed to open editor: %w", err)
		}
		return content, nil
	}
}
