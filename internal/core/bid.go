// ABOUTME: BidDocument answers questions over a converted document
// ABOUTME: Long-context Q&A with tolerant parsing of numbered answers
package core

import (
	"context"
	"fmt"
	"strings"

	"github.com/tenderlab/sotr/internal/llm"
)

// FailedAnswer is returned for a question the service could not answer
const FailedAnswer = "Failed to get a response from the LLM."

// Question is one numbered question for a document
type Question struct {
	Number   int    `json:"question_no"`
	Question string `json:"question"`
}

// Answer is the response to one numbered question
type Answer struct {
	Number   int    `json:"question_no"`
	Response string `json:"response"`
}

// BidDocument wraps a converted document's text for question answering
type BidDocument struct {
	content   string
	completer llm.Completer
	maxTokens int
}

// NewBidDocument creates a BidDocument over already-converted text
func NewBidDocument(content string, completer llm.Completer, maxTokens int) *BidDocument {
	if maxTokens <= 0 {
		maxTokens = 1024
	}
	return &BidDocument{content: content, completer: completer, maxTokens: maxTokens}
}

// Query answers a single question against the document content
func (d *BidDocument) Query(ctx context.Context, question string) string {
	systemPrompt := fmt.Sprintf(querySystemPromptFormat, d.content)

	response, err := d.completer.Complete(ctx, systemPrompt, question, d.maxTokens)
	if err != nil || strings.TrimSpace(response) == "" {
		return FailedAnswer
	}
	return strings.TrimSpace(response)
}

// QueryList answers a list of numbered questions in one call. When the call
// fails, every question gets a failure placeholder so the caller always
// receives one answer per question.
func (d *BidDocument) QueryList(ctx context.Context, questions []Question) []Answer {
	if len(questions) == 0 {
		return nil
	}

	systemPrompt := fmt.Sprintf(queryListSystemPromptFormat, d.content)

	var sb strings.Builder
	for _, q := range questions {
		sb.WriteString(fmt.Sprintf("%d. %s\n", q.Number, q.Question))
	}

	response, err := d.completer.Complete(ctx, systemPrompt, sb.String(), d.maxTokens*len(questions))
	if err != nil {
		answers := make([]Answer, len(questions))
		for i, q := range questions {
			answers[i] = Answer{Number: q.Number, Response: FailedAnswer}
		}
		return answers
	}

	return parseNumberedAnswers(response)
}

// parseNumberedAnswers walks the response line by line, starting a new answer
// whenever a line opens with the next question number ("2." or "Question 2:")
// and folding continuation lines into the current answer
func parseNumberedAnswers(response string) []Answer {
	var answers []Answer
	current := 0
	var buf strings.Builder

	flush := func() {
		if current > 0 && strings.TrimSpace(buf.String()) != "" {
			answers = append(answers, Answer{Number: current, Response: strings.TrimSpace(buf.String())})
		}
		buf.Reset()
	}

	for _, line := range strings.Split(response, "\n") {
		line = strings.TrimSpace(line)
		next := current + 1
		if strings.HasPrefix(line, fmt.Sprintf("%d.", next)) || strings.HasPrefix(line, fmt.Sprintf("Question %d:", next)) {
			flush()
			current = next
			if i := strings.Index(line, ":"); i >= 0 && strings.HasPrefix(line, "Question") {
				line = line[i+1:]
			} else {
				line = strings.TrimPrefix(line, fmt.Sprintf("%d.", next))
			}
			buf.WriteString(strings.TrimSpace(line))
			continue
		}
		if buf.Len() > 0 {
			buf.WriteString(" ")
		}
		buf.WriteString(line)
	}
	flush()

	return answers
}
