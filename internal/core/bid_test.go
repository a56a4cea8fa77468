// ABOUTME: Tests for BidDocument long-context question answering
// ABOUTME: Verifies numbered-answer parsing and per-question failure fallback

package core

import (
	"context"
	"strings"
	"testing"
)

func TestQuery(t *testing.T) {
	fake := &fakeCompleter{responses: []*string{resp("  The delivery window is 5 days.  ")}}
	doc := NewBidDocument("document body", fake, 0)

	answer := doc.Query(context.Background(), "What is the delivery window?")
	if answer != "The delivery window is 5 days." {
		t.Errorf("answer = %q", answer)
	}
	if !strings.Contains(fake.prompts[0], "What is the delivery window?") {
		t.Error("question missing from prompt")
	}
}

func TestQuery_Failure(t *testing.T) {
	fake := &fakeCompleter{responses: []*string{nil}}
	doc := NewBidDocument("document body", fake, 0)

	if answer := doc.Query(context.Background(), "anything"); answer != FailedAnswer {
		t.Errorf("answer = %q, want failure placeholder", answer)
	}
}

func TestQueryList(t *testing.T) {
	response := "1. Five days.\n2. Yes, support is included.\nIt runs around the clock."
	fake := &fakeCompleter{responses: []*string{resp(response)}}
	doc := NewBidDocument("document body", fake, 0)

	answers := doc.QueryList(context.Background(), []Question{
		{Number: 1, Question: "How long is delivery?"},
		{Number: 2, Question: "Is support included?"},
	})

	if len(answers) != 2 {
		t.Fatalf("answers = %d, want 2", len(answers))
	}
	if answers[0].Response != "Five days." {
		t.Errorf("answers[0] = %q", answers[0].Response)
	}
	if !strings.Contains(answers[1].Response, "around the clock") {
		t.Errorf("continuation line lost: %q", answers[1].Response)
	}
}

func TestQueryList_QuestionPrefixVariant(t *testing.T) {
	response := "Question 1: Five days.\nQuestion 2: No."
	fake := &fakeCompleter{responses: []*string{resp(response)}}
	doc := NewBidDocument("document body", fake, 0)

	answers := doc.QueryList(context.Background(), []Question{
		{Number: 1, Question: "a"},
		{Number: 2, Question: "b"},
	})

	if len(answers) != 2 {
		t.Fatalf("answers = %d, want 2", len(answers))
	}
	if answers[0].Response != "Five days." || answers[1].Response != "No." {
		t.Errorf("answers = %q, %q", answers[0].Response, answers[1].Response)
	}
}

func TestQueryList_FailureFillsEveryQuestion(t *testing.T) {
	fake := &fakeCompleter{responses: []*string{nil}}
	doc := NewBidDocument("document body", fake, 0)

	questions := []Question{
		{Number: 1, Question: "a"},
		{Number: 2, Question: "b"},
		{Number: 3, Question: "c"},
	}
	answers := doc.QueryList(context.Background(), questions)

	if len(answers) != len(questions) {
		t.Fatalf("answers = %d, want %d", len(answers), len(questions))
	}
	for i, a := range answers {
		if a.Response != FailedAnswer {
			t.Errorf("answers[%d] = %q, want failure placeholder", i, a.Response)
		}
		if a.Number != questions[i].Number {
			t.Errorf("answers[%d].Number = %d, want %d", i, a.Number, questions[i].Number)
		}
	}
}

func TestQueryList_Empty(t *testing.T) {
	fake := &fakeCompleter{}
	doc := NewBidDocument("document body", fake, 0)

	if answers := doc.QueryList(context.Background(), nil); answers != nil {
		t.Errorf("answers = %v, want nil", answers)
	}
	if fake.calls != 0 {
		t.Errorf("completion calls = %d, want 0", fake.calls)
	}
}

func TestParseNumberedAnswers_LeadingNoise(t *testing.T) {
	response := "Here are the answers:\n1. Alpha.\n2. Beta."
	answers := parseNumberedAnswers(response)

	if len(answers) != 2 {
		t.Fatalf("answers = %d, want 2", len(answers))
	}
	if answers[0].Response != "Alpha." {
		t.Errorf("answers[0] = %q", answers[0].Response)
	}
}
