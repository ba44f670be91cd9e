// Package document reads conversation logs from disk and writes their
// skeletons back.
package document

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"
)

var (
	ErrInputNotFound   = errors.New("input file does not exist")
	ErrInputUnreadable = errors.New("cannot read input file")
	ErrOutputWrite     = errors.New("cannot write output file")
)

// Format is an output format for the skeleton.
type Format string

const (
	FormatCopilotMD Format = "copilotmd"
	FormatHTML      Format = "html"
)

// ParseFormat validates a --format value. Empty means FormatCopilotMD.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case "", FormatCopilotMD:
		return FormatCopilotMD, nil
	case FormatHTML:
		return FormatHTML, nil
	default:
		return "", fmt.Errorf("unknown format %q (want %s or %s)", s, FormatCopilotMD, FormatHTML)
	}
}

// reservedToken marks the export flavor and stays last in the stem.
const reservedToken = ".copilot"

// Read loads the log at path. Missing files map to ErrInputNotFound; IO
// failures and content that is not valid UTF-8 map to ErrInputUnreadable.
func Read(path string) (string, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return "", fmt.Errorf("%w: %s", ErrInputNotFound, path)
	}
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrInputUnreadable, err)
	}
	if !utf8.Valid(data) {
		return "", fmt.Errorf("%w: %s is not valid UTF-8", ErrInputUnreadable, path)
	}
	return string(data), nil
}

// OutputPath derives the default output path for input. The stem gains a
// ".skeleton" suffix, inserted before a trailing ".copilot" token:
//
//	chat.md          -> chat.skeleton.md
//	chat.copilot.md  -> chat.skeleton.copilot.md
//
// FormatHTML replaces the extension with ".html".
func OutputPath(input string, format Format) string {
	ext := filepath.Ext(input)
	stem := strings.TrimSuffix(input, ext)
	if format == FormatHTML {
		ext = ".html"
	}

	if base := filepath.Base(stem); base != reservedToken && strings.HasSuffix(base, reservedToken) {
		return strings.TrimSuffix(stem, reservedToken) + ".skeleton" + reservedToken + ext
	}
	return stem + ".skeleton" + ext
}

// WriteFile writes data to path atomically, creating parent directories.
// Failures wrap ErrOutputWrite.
func WriteFile(path string, data []byte) error {
	if err := writeAtomic(path, data); err != nil {
		return fmt.Errorf("%w: %w", ErrOutputWrite, err)
	}
	return nil
}

func writeAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, ".skeleton-*.tmp")
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return err
	}
	if err := os.Chmod(tmpPath, 0o644); err != nil {
		os.Remove(tmpPath)
		return err
	}

	return os.Rename(tmpPath, path)
}
