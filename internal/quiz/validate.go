package quiz

import (
	"fmt"
	"strings"
)

// Issue captures one problem found in a bank source.
type Issue struct {
	Field   string
	Message string
}

// ValidationError reports every issue found in a bank source.
type ValidationError struct {
	Issues []Issue
}

func (err *ValidationError) Error() string {
	if err == nil || len(err.Issues) == 0 {
		return ""
	}
	parts := make([]string, 0, len(err.Issues))
	for _, issue := range err.Issues {
		parts = append(parts, fmt.Sprintf("%s: %s", issue.Field, issue.Message))
	}
	return fmt.Sprintf("question bank validation failed: %s", strings.Join(parts, "; "))
}

type issueCollector struct {
	issues []Issue
}

func (c *issueCollector) add(field, message string) {
	c.issues = append(c.issues, Issue{Field: field, Message: message})
}

func (c *issueCollector) result() error {
	if len(c.issues) == 0 {
		return nil
	}
	return &ValidationError{Issues: c.issues}
}

// ValidateEntries checks entries the same way NewBank does but reports all
// problems at once instead of stopping at the first one.
func ValidateEntries(entries []Entry) error {
	c := &issueCollector{}
	for i, e := range entries {
		prefix := fmt.Sprintf("questions[%d]", i)
		if strings.TrimSpace(e.Question) == "" {
			c.add(prefix+".question", "is required")
		}

		if len(e.Answers) != OptionsPerQuestion {
			c.add(prefix+".answers", fmt.Sprintf("must have exactly %d entries, got %d", OptionsPerQuestion, len(e.Answers)))
		}
		for j, a := range e.Answers {
			if strings.TrimSpace(a) == "" {
				c.add(fmt.Sprintf("%s.answers[%d]", prefix, j), "is required")
			}
		}

		if e.CorrectAnswer == "" {
			c.add(prefix+".correctAnswer", "is required")
			continue
		}
		matches := 0
		for _, a := range e.Answers {
			if a == e.CorrectAnswer {
				matches++
			}
		}
		switch {
		case matches == 0:
			c.add(prefix+".correctAnswer", fmt.Sprintf("%q is not one of the answers", e.CorrectAnswer))
		case matches > 1:
			c.add(prefix+".correctAnswer", fmt.Sprintf("%q appears %d times in answers", e.CorrectAnswer, matches))
		}
	}
	return c.result()
}
