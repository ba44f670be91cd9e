// Package patch injects a text payload into an installed extension bundle.
// It locates the newest bundle matching a set of glob patterns, backs it up
// once, and inserts the payload as an escaped JavaScript string fragment in
// front of an anchor.
package patch

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

var (
	ErrNoTarget = errors.New("no patch target found")
	ErrNoBackup = errors.New("backup does not exist")
)

// DefaultAnchor is the opening sentence of the Copilot Chat system prompt.
const DefaultAnchor = "You are an expert AI programming assistant, working with a user in the VS Code editor."

const backupSuffix = ".bak"

// DefaultPatterns returns the install locations of the Copilot Chat bundle
// for VS Code and VS Code Server.
func DefaultPatterns() []string {
	home, _ := os.UserHomeDir()
	return []string{
		filepath.Join(home, ".vscode-server", "extensions", "github.copilot-chat-*", "dist", "extension.js"),
		filepath.Join(home, ".vscode", "extensions", "github.copilot-chat-*", "dist", "extension.js"),
	}
}

// FindAll expands patterns and returns the unique matches, newest version
// first (reverse lexical order).
func FindAll(patterns []string) ([]string, error) {
	seen := make(map[string]bool)
	var files []string
	for _, p := range patterns {
		matches, err := filepath.Glob(p)
		if err != nil {
			return nil, fmt.Errorf("pattern %q: %w", p, err)
		}
		for _, m := range matches {
			if !seen[m] {
				seen[m] = true
				files = append(files, m)
			}
		}
	}
	sort.Sort(sort.Reverse(sort.StringSlice(files)))
	return files, nil
}

// FindTarget returns the newest file matching patterns.
func FindTarget(patterns []string) (string, error) {
	files, err := FindAll(patterns)
	if err != nil {
		return "", err
	}
	if len(files) == 0 {
		return "", fmt.Errorf("%w: checked %s", ErrNoTarget, strings.Join(patterns, ", "))
	}
	return files[0], nil
}

// Check reports whether Apply would change path, without writing anything.
func Check(path, anchor, payload string) (bool, error) {
	_, ok, err := patched(path, anchor, payload)
	return ok, err
}

// Apply inserts the escaped payload before the first occurrence of anchor.
// It returns false without writing when the anchor is missing, the payload
// is empty, or it is already present in either raw or escaped form. The original file is
// copied to path.bak before the first write; an existing backup is kept.
func Apply(path, anchor, payload string) (bool, error) {
	content, ok, err := patched(path, anchor, payload)
	if err != nil || !ok {
		return false, err
	}

	steps := []struct {
		name string
		fn   func() error
	}{
		{"back up target", func() error { return backup(path) }},
		{"write target", func() error { return overwrite(path, content) }},
	}
	for _, s := range steps {
		if err := s.fn(); err != nil {
			return false, fmt.Errorf("%s: %w", s.name, err)
		}
	}
	return true, nil
}

// Restore copies path.bak back over path.
func Restore(path string) error {
	bak := path + backupSuffix
	if _, err := os.Stat(bak); errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("%w: %s", ErrNoBackup, bak)
	}
	return copyFile(bak, path)
}

// EscapeJS escapes text for embedding inside a double-quoted JavaScript
// string literal. Backslashes are escaped first.
func EscapeJS(text string) string {
	return jsEscaper.Replace(text)
}

var jsEscaper = strings.NewReplacer(
	`\`, `\\`,
	`"`, `\"`,
	"\n", `\n`,
	"\r", `\r`,
	"\t", `\t`,
)

func patched(path, anchor, payload string) (string, bool, error) {
	if anchor == "" {
		return "", false, errors.New("anchor must not be empty")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", false, fmt.Errorf("read target: %w", err)
	}
	content := string(data)

	escaped := EscapeJS(payload)
	if payload == "" || strings.Contains(content, escaped) || strings.Contains(content, payload) {
		return "", false, nil // nothing to do or already applied
	}
	i := strings.Index(content, anchor)
	if i < 0 {
		return "", false, nil
	}
	return content[:i] + escaped + content[i:], true, nil
}

func backup(path string) error {
	bak := path + backupSuffix
	if _, err := os.Stat(bak); err == nil {
		return nil // keep the pristine copy
	}
	return copyFile(path, bak)
}

func overwrite(path, content string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	return os.WriteFile(path, []byte(content), info.Mode().Perm())
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return err
	}

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, info.Mode().Perm())
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	if err := out.Close(); err != nil {
		return err
	}
	return os.Chtimes(dst, info.ModTime(), info.ModTime())
}
