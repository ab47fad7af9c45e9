package validation

import (
	"fmt"

	dErrors "enigma/pkg/domain-errors"
)

// MaxBodySize caps JSON request bodies (64 KB). A full question set with
// five hints per question fits comfortably.
const MaxBodySize = 64 * 1024

// Content limits for user-authored text.
const (
	MaxNameLength         = 50
	MaxQuestionTextLength = 500
	MaxAnswerLength       = 100
	MaxHints              = 5
	MaxHintLength         = 200
	MaxHintPasswordLength = 50
	MaxHintRouteLength    = 500
	MaxQuestions          = 100
)

// CheckSliceCount validates that a slice does not exceed the maximum count.
func CheckSliceCount(fieldName string, count, max int) error {
	if count > max {
		return dErrors.New(dErrors.CodeValidation, fmt.Sprintf("too many %s: max %d allowed", fieldName, max))
	}
	return nil
}

// CheckStringLength validates rune length, so accented names are not
// penalised for their UTF-8 width.
func CheckStringLength(fieldName, value string, max int) error {
	if len([]rune(value)) > max {
		return dErrors.New(dErrors.CodeValidation, fmt.Sprintf("%s must be %d characters or less", fieldName, max))
	}
	return nil
}

// CheckEachStringLength applies CheckStringLength to every element.
func CheckEachStringLength(fieldName string, values []string, max int) error {
	for _, v := range values {
		if err := CheckStringLength(fieldName, v, max); err != nil {
			return err
		}
	}
	return nil
}
