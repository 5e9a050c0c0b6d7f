package core

import (
	"context"
	"fmt"
	"strings"
)

// SplitName partitions a display name into first and last name candidates
// according to the given mode. Tokens are the maximal non-whitespace runs of
// the input, so leading, trailing and repeated whitespace never produce empty
// tokens.
//
// In NameModeOff the result is empty. In NameModeFirst and NameModeLast a
// key is only present when it has a non-empty value. In NameModeDB both keys
// are always present: every token the oracle recognizes joins the first
// name, every other token joins the last name, and either side may end up
// empty. The oracle is only consulted in NameModeDB.
func SplitName(ctx context.Context, displayName string, mode NameMode, oracle FirstNameChecker) (map[string]string, error) {
	parts := make(map[string]string)
	if mode == NameModeOff {
		return parts, nil
	}

	tokens := strings.Fields(displayName)

	switch mode {
	case NameModeFirst:
		if len(tokens) == 0 {
			return parts, nil
		}
		parts[FieldFirstName] = tokens[0]
		if len(tokens) > 1 {
			parts[FieldLastName] = strings.Join(tokens[1:], " ")
		}

	case NameModeLast:
		if len(tokens) == 0 {
			return parts, nil
		}
		parts[FieldLastName] = tokens[len(tokens)-1]
		if len(tokens) > 1 {
			parts[FieldFirstName] = strings.Join(tokens[:len(tokens)-1], " ")
		}

	case NameModeDB:
		if oracle == nil {
			return nil, fmt.Errorf("name mode %q requires a first-name oracle", mode)
		}
		var first, last []string
		for _, token := range tokens {
			known, err := oracle.IsFirstName(ctx, token)
			if err != nil {
				return nil, fmt.Errorf("classifying token: %w", err)
			}
			if known {
				first = append(first, token)
			} else {
				last = append(last, token)
			}
		}
		parts[FieldFirstName] = strings.Join(first, " ")
		parts[FieldLastName] = strings.Join(last, " ")
	}

	return parts, nil
}

// splitAllUnknown is the degraded form of NameModeDB used when the oracle is
// unavailable and the resolver is configured to continue: no token is
// recognized as a first name, so the whole display name lands in the last
// name.
func splitAllUnknown(displayName string) map[string]string {
	return map[string]string{
		FieldFirstName: "",
		FieldLastName:  strings.Join(strings.Fields(displayName), " "),
	}
}
