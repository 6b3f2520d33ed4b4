package description

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownCategory is returned when no templates exist for a category.
	ErrUnknownCategory = errors.New("unknown description category")

	// ErrEmptyWordList is returned when a placeholder's word list for the
	// category is missing or empty.
	ErrEmptyWordList = errors.New("empty word list")

	// ErrNoWordForTag is returned when the lexicon has no word whose
	// part-of-speech tag starts with the requested tag.
	ErrNoWordForTag = errors.New("no lexicon word for part-of-speech tag")

	// ErrInvalidConfig is returned when the description configuration is unusable.
	ErrInvalidConfig = errors.New("invalid description configuration")
)

// TemplateError reports a failure filling one template.
type TemplateError struct {
	Category    string
	Template    string
	Placeholder string
	Err         error
}

// Error implements the error interface.
func (e *TemplateError) Error() string {
	return fmt.Sprintf("description: category %q template %q placeholder {%s}: %v",
		e.Category, e.Template, e.Placeholder, e.Err)
}

// Unwrap returns the underlying error for error unwrapping.
func (e *TemplateError) Unwrap() error {
	return e.Err
}
