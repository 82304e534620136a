package middleware

import (
	"errors"
	"fmt"
	"regexp"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/capitalize-ai/hivemind/internal/analysis/synthesis"
	"github.com/capitalize-ai/hivemind/internal/model"
)

const (
	// MaxContentBytes bounds thought, comment and analyzed text.
	MaxContentBytes = 10000
	// MaxPromptBytes bounds synthesis prompts and each supplied response.
	MaxPromptBytes = 20000
	// MaxQueryBytes bounds search queries.
	MaxQueryBytes = 1000
	// MaxSearchItems bounds the items of a search request.
	MaxSearchItems = 1000

	maxStyleEffects    = 8
	maxStyleValueBytes = 64
)

// thoughtIDPattern accepts generated UUIDs and the short ids of seeded thoughts.
var thoughtIDPattern = regexp.MustCompile(`^[A-Za-z0-9_-]{1,64}$`)

// ValidateContent validates thought, comment or analysis text.
func ValidateContent(content string) error {
	if len(content) == 0 {
		return errors.New("content cannot be empty")
	}
	if len(content) > MaxContentBytes {
		return errors.New("content exceeds maximum length")
	}
	if !utf8.ValidString(content) {
		return errors.New("content must be valid UTF-8")
	}
	return nil
}

// ValidateThoughtID validates a thought ID.
func ValidateThoughtID(id string) error {
	if _, err := uuid.Parse(id); err == nil {
		return nil
	}
	if !thoughtIDPattern.MatchString(id) {
		return errors.New("invalid thought ID format")
	}
	return nil
}

// ValidateQuery validates a search query. An empty query is allowed.
func ValidateQuery(query string) error {
	if len(query) > MaxQueryBytes {
		return errors.New("query exceeds maximum length")
	}
	if !utf8.ValidString(query) {
		return errors.New("query must be valid UTF-8")
	}
	return nil
}

// ValidateSearchItems validates the item count of a search request.
func ValidateSearchItems(count int) error {
	if count > MaxSearchItems {
		return fmt.Errorf("at most %d items can be ranked", MaxSearchItems)
	}
	return nil
}

// ValidatePrompt validates a synthesis prompt.
func ValidatePrompt(prompt string) error {
	if len(prompt) == 0 {
		return errors.New("prompt cannot be empty")
	}
	if len(prompt) > MaxPromptBytes {
		return errors.New("prompt exceeds maximum length")
	}
	if !utf8.ValidString(prompt) {
		return errors.New("prompt must be valid UTF-8")
	}
	return nil
}

// ValidateResponses validates responses supplied for synthesis.
func ValidateResponses(responses []synthesis.Response) error {
	if len(responses) > synthesis.MaxResponses {
		return fmt.Errorf("at most %d responses can be synthesized", synthesis.MaxResponses)
	}
	for _, r := range responses {
		if r.Source == "" {
			return errors.New("response source cannot be empty")
		}
		if len(r.Text) > MaxPromptBytes {
			return fmt.Errorf("response from %s exceeds maximum length", r.Source)
		}
		if !utf8.ValidString(r.Text) {
			return fmt.Errorf("response from %s must be valid UTF-8", r.Source)
		}
	}
	return nil
}

// ValidateStyle validates a visual style.
func ValidateStyle(style *model.VisualStyle) error {
	if style == nil {
		return errors.New("style is required")
	}
	if len(style.Effects) > maxStyleEffects {
		return fmt.Errorf("at most %d effects are allowed", maxStyleEffects)
	}
	for _, v := range append([]string{style.Color, style.Shape, style.Size}, style.Effects...) {
		if len(v) > maxStyleValueBytes {
			return errors.New("style value exceeds maximum length")
		}
	}
	return nil
}
