package editor

import (
	"os"
	"os/exec"

	"github.com/examklar/examklar/internal/model"
)

// Editor handles editor resolution and invocation. Card fronts and backs
// can hold multi-line content, so editing goes through a real editor
// rather than a flag.
type Editor struct {
	globalConfig *model.GlobalConfig
}

// NewEditor creates a new Editor.
func NewEditor(globalConfig *model.GlobalConfig) *Editor {
	return &Editor{globalConfig: globalConfig}
}

// Resolve returns the editor command to use.
// Order: global config > $EDITOR > vim
func (e *Editor) Resolve() string {
	if e.globalConfig != nil && e.globalConfig.Editor != "" {
		return e.globalConfig.Editor
	}

	if editor := os.Getenv("EDITOR"); editor != "" {
		return editor
	}

	return "vim"
}

// Edit opens the editor with the given content and returns the edited content.
func (e *Editor) Edit(content string) (string, error) {
	tmpFile, err := os.CreateTemp("", "examklar-edit-*.md")
	if err != nil {
		return "", err
	}
	tmpPath := tmpFile.Name()
	defer os.Remove(tmpPath)

	if _, err := tmpFile.WriteString(content); err != nil {
		tmpFile.Close()
		return "", err
	}
	tmpFile.Close()

	editor := e.Resolve()
	cmd := exec.Command(editor, tmpPath)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		return "", err
	}

	edited, err := os.ReadFile(tmpPath)
	if err != nil {
		return "", err
	}

	return string(edited), nil
}
