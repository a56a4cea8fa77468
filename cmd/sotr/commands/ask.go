// ABOUTME: CLI command for long-context Q&A over a converted document
// ABOUTME: Sends numbered questions in one call and prints numbered answers
package commands

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/tenderlab/sotr/internal/core"
	"github.com/tenderlab/sotr/internal/storage/sqlite"
)

var (
	askQuestions []string
	askNoArchive bool
)

// NewAskCmd creates the ask command
func NewAskCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ask <pdf|md>",
		Short: "Answer questions about a document",
		Long: `Answer questions about a document using its full text as context.

Multiple questions are numbered and sent in a single call; each answer
comes back tagged with its question number. A failed call yields a
failure note per question rather than an error.`,
		Args: cobra.ExactArgs(1),
		RunE: runAsk,
		Example: `  sotr ask tender.pdf -Q "What is the delivery deadline?"
  sotr ask tender.md -Q "Who bears shipping costs?" -Q "Is on-site support required?"`,
	}

	cmd.Flags().StringArrayVarP(&askQuestions, "question", "Q", nil, "Question to ask (repeatable)")
	_ = cmd.MarkFlagRequired("question")

	cmd.Flags().BoolVar(&askNoArchive, "no-archive", false, "Skip archiving the exchange")

	return cmd
}

func runAsk(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	completer, err := newCompleter(cfg)
	if err != nil {
		return err
	}

	text, err := loadDocument(args[0])
	if err != nil {
		return err
	}

	questions := make([]core.Question, len(askQuestions))
	for i, q := range askQuestions {
		questions[i] = core.Question{Number: i + 1, Question: q}
	}

	doc := core.NewBidDocument(text, completer, cfg.AnswerMaxTokens)

	var answers []core.Answer
	if len(questions) == 1 {
		answers = []core.Answer{{Number: 1, Response: doc.Query(cmd.Context(), questions[0].Question)}}
	} else {
		answers = doc.QueryList(cmd.Context(), questions)
	}

	for _, a := range answers {
		fmt.Fprintf(cmd.OutOrStdout(), "%d. %s\n", a.Number, a.Response)
	}

	if !askNoArchive {
		if err := archiveQueryRun(args[0], questions, answers); err != nil {
			progress("Warning: archiving exchange failed: %v", err)
		}
	}

	return nil
}

func archiveQueryRun(sourceFile string, questions []core.Question, answers []core.Answer) error {
	db, err := sqlite.Open(sqlite.DefaultDBPath())
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	return sqlite.NewRunStore(db).SaveQueryRun(uuid.New().String(), sourceFile, questions, answers)
}
