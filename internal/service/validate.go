package service

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

// colourPattern matches #RGB or #RRGGBB, case-insensitive
var colourPattern = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}){1,2}$`)

func validateColour(value string) error {
	if !colourPattern.MatchString(value) {
		return newValidationError("colour",
			fmt.Sprintf("%s is not a valid hex color code. Format should be #RRGGBB or #RGB.", value))
	}
	return nil
}

func validateCategoryName(value string) error {
	if strings.TrimSpace(value) == "" {
		return newValidationError("name", "This field may not be blank.")
	}
	if len(value) > 100 {
		return newValidationError("name", "Ensure this field has no more than 100 characters.")
	}
	return nil
}

func validateNoteTitle(value string) error {
	if strings.TrimSpace(value) == "" {
		return newValidationError("title", "This field may not be blank.")
	}
	if len(value) > 200 {
		return newValidationError("title", "Ensure this field has no more than 200 characters.")
	}
	return nil
}

func validateNoteContent(value string) error {
	if strings.TrimSpace(value) == "" {
		return newValidationError("content", "This field may not be blank.")
	}
	return nil
}

func parseDate(value string) (time.Time, error) {
	parsed, err := time.Parse(dateLayout, value)
	if err != nil {
		return time.Time{}, newValidationError("date",
			"Date has wrong format. Use this format instead: YYYY-MM-DD.")
	}
	return parsed, nil
}
