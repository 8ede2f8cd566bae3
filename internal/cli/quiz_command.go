package cli

import (
	"context"
	"fmt"

	"labkit/internal/services"
)

const quizUsage = "quiz [questions | <a1> <a2> <a3> <a4> <a5>]"

// QuizCommand grades the web basics quiz
type QuizCommand struct {
	app  *App
	quiz *services.Quiz
}

// NewQuizCommand creates a new quiz command handler
func NewQuizCommand(app *App) *QuizCommand {
	return &QuizCommand{app: app, quiz: app.session.Quiz}
}

// Execute prints the questions, or grades the given answers in order
func (c *QuizCommand) Execute(ctx context.Context, args []string) error {
	if len(args) == 0 || args[0] == "questions" {
		c.questions()
		return nil
	}

	p := c.app.presenter
	answers := c.quiz.AnswersFromList(args)
	progress := c.quiz.Progress(answers)
	p.Muted(progress.Text)

	result, err := c.quiz.Grade(answers)
	if err != nil {
		return err
	}
	tone := "negative"
	if result.Passed {
		tone = "positive"
	}
	p.Title(result.Heading)
	p.Line(fmt.Sprintf("Score %d/%d (%s) · %s", result.Score, result.Total, result.PercentText(), p.Tone(tone, result.Tier)))
	for _, d := range result.Details {
		p.Line(fmt.Sprintf("  %s Q%d %s [%s]", p.Check(d.Correct, ""), d.Number, d.Prompt, d.Given))
	}
	p.Muted(result.Feedback)
	return nil
}

func (c *QuizCommand) questions() {
	p := c.app.presenter
	for _, q := range c.quiz.Questions() {
		p.Title(fmt.Sprintf("%d. %s", q.Number, q.Prompt))
		for _, o := range q.Options {
			p.Line(fmt.Sprintf("   %s) %s", o.Key, o.Text))
		}
	}
}
