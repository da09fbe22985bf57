package service

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

// PlanCandidate is one generated practice question before it is resolved
// against the catalog.
type PlanCandidate struct {
	Category string
	Text     string
}

var fencedBlockRe = regexp.MustCompile("(?is)```(?:json)?\\s*(.*?)```")

// extractPayload strips a fenced code block wrapper if present; models often
// wrap structured output in ```json ... ``` fences.
func extractPayload(text string) string {
	if m := fencedBlockRe.FindStringSubmatch(text); m != nil {
		return strings.TrimSpace(m[1])
	}
	return strings.TrimSpace(text)
}

// rawCandidate tolerates both key spellings seen in generator output.
type rawCandidate struct {
	Category     string `json:"category"`
	CategoryName string `json:"category_name"`
	Text         string `json:"text"`
	QuestionText string `json:"question_text"`
}

func (c rawCandidate) category() string {
	if c.Category != "" {
		return c.Category
	}
	return c.CategoryName
}

func (c rawCandidate) text() string {
	if c.Text != "" {
		return c.Text
	}
	return c.QuestionText
}

// parseCandidateBatch parses generator output into candidates. The payload is
// either a bare JSON list of candidate objects or an object with a
// "questions" list of the same shape; both are accepted. Candidates missing a
// category or text survive parsing and are skipped (with a log) during the
// merge, so one malformed entry does not fail the batch.
func parseCandidateBatch(raw string) ([]PlanCandidate, error) {
	payload := extractPayload(raw)
	if payload == "" {
		return nil, fmt.Errorf("empty generator payload")
	}

	var rawList []rawCandidate
	if err := json.Unmarshal([]byte(payload), &rawList); err != nil {
		var wrapper struct {
			Questions []rawCandidate `json:"questions"`
		}
		if err2 := json.Unmarshal([]byte(payload), &wrapper); err2 != nil {
			return nil, fmt.Errorf("unparseable generator payload: %w", err)
		}
		if wrapper.Questions == nil {
			return nil, fmt.Errorf("generator payload has no questions list")
		}
		rawList = wrapper.Questions
	}

	candidates := make([]PlanCandidate, 0, len(rawList))
	for _, rc := range rawList {
		candidates = append(candidates, PlanCandidate{
			Category: strings.TrimSpace(rc.category()),
			Text:     strings.TrimSpace(rc.text()),
		})
	}
	return candidates, nil
}
