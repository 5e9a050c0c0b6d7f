package utils

import (
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"
	"golang.org/x/text/cases"
)

// TextProcessor provides utilities for normalizing name text
type TextProcessor struct {
	logger *zap.Logger
}

// NewTextProcessor creates a new TextProcessor
func NewTextProcessor(logger *zap.Logger) *TextProcessor {
	return &TextProcessor{
		logger: logger,
	}
}

// FoldName returns the case-folded form of a name token so that comparisons
// are case-insensitive beyond ASCII ("JANE", "Jane" and "jane" fold equal,
// as do "Straße" and "STRASSE").
func (tp *TextProcessor) FoldName(token string) string {
	// A Caser carries internal state, so each call gets its own.
	return cases.Fold().String(strings.TrimSpace(token))
}

// NormalizeSpace trims a display name and collapses internal whitespace runs
// to single spaces
func (tp *TextProcessor) NormalizeSpace(text string) string {
	return strings.Join(strings.Fields(text), " ")
}

// SanitizeUTF8 ensures the string contains only valid UTF-8 characters
func (tp *TextProcessor) SanitizeUTF8(text string) string {
	if utf8.ValidString(text) {
		return text
	}

	// Replace invalid UTF-8 sequences with the Unicode replacement character
	result := make([]rune, 0, len(text))
	for i, r := range text {
		if r == utf8.RuneError {
			_, size := utf8.DecodeRuneInString(text[i:])
			if size == 1 {
				// Skip invalid UTF-8 sequences
				continue
			}
		}
		result = append(result, r)
	}

	tp.logger.Debug("Text sanitized",
		zap.Int("original_size", len(text)),
		zap.Int("sanitized_size", len(string(result))))

	return string(result)
}
