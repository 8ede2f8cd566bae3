package services

import (
	"fmt"
	"math"
	"strings"

	"labkit/internal/domain"
	"labkit/internal/logging"
	"labkit/internal/validation"
)

// PassMark is the percentage at which a quiz attempt counts as passed.
const PassMark = 60

// Answers maps a question field ("q1".."q5") to the chosen option key.
type Answers map[string]string

// QuizProgress reports how far through the quiz an attempt is.
type QuizProgress struct {
	Answered  int    `json:"answered"`
	Total     int    `json:"total"`
	Percent   int    `json:"percent"`
	CanSubmit bool   `json:"canSubmit"`
	Text      string `json:"text"`
}

// QuestionResult is the graded outcome of one question.
type QuestionResult struct {
	Number  int    `json:"number"`
	Prompt  string `json:"prompt"`
	Given   string `json:"given"`
	Correct bool   `json:"correct"`
}

// QuizResult is a graded attempt.
type QuizResult struct {
	Score      int              `json:"score"`
	Total      int              `json:"total"`
	Percentage float64          `json:"percentage"`
	Tier       string           `json:"tier"`
	Heading    string           `json:"heading"`
	Feedback   string           `json:"feedback"`
	Passed     bool             `json:"passed"`
	Details    []QuestionResult `json:"details"`
}

// PercentText is the rounded percentage, e.g. "80%".
func (r QuizResult) PercentText() string {
	return fmt.Sprintf("%d%%", int(math.Round(r.Percentage)))
}

var quizQuestions = []domain.Question{
	{Number: 1, Prompt: "What does HTML stand for?", Answer: "b", Options: []domain.Option{
		{Key: "a", Text: "Hyperlinks and Text Markup Language"},
		{Key: "b", Text: "HyperText Markup Language"},
		{Key: "c", Text: "Home Tool Markup Language"},
		{Key: "d", Text: "Hyper Transfer Markup Language"},
	}},
	{Number: 2, Prompt: "Which language is used for styling web pages?", Answer: "c", Options: []domain.Option{
		{Key: "a", Text: "HTML"},
		{Key: "b", Text: "JavaScript"},
		{Key: "c", Text: "CSS"},
		{Key: "d", Text: "XML"},
	}},
	{Number: 3, Prompt: "Inside which HTML element do we put JavaScript?", Answer: "c", Options: []domain.Option{
		{Key: "a", Text: "<js>"},
		{Key: "b", Text: "<javascript>"},
		{Key: "c", Text: "<script>"},
		{Key: "d", Text: "<scripting>"},
	}},
	{Number: 4, Prompt: "Which operator is used for strict equality in JavaScript?", Answer: "b", Options: []domain.Option{
		{Key: "a", Text: "=="},
		{Key: "b", Text: "==="},
		{Key: "c", Text: "="},
		{Key: "d", Text: "!="},
	}},
	{Number: 5, Prompt: "What does console.log() do in JavaScript?", Answer: "b", Options: []domain.Option{
		{Key: "a", Text: "Shows an alert box"},
		{Key: "b", Text: "Prints output to the browser console"},
		{Key: "c", Text: "Writes to the page body"},
		{Key: "d", Text: "Logs the user out"},
	}},
}

type quizTier struct {
	name     string
	min      float64
	feedback string
}

// Ordered from highest threshold down; the first match wins.
var quizTiers = []quizTier{
	{"perfect", 100, "Perfect score — outstanding work!"},
	{"excellent", 80, "Excellent! You really know your stuff."},
	{"good", 60, "Good job! A little more practice and you'll ace it."},
	{"fair", 40, "Not bad, but there's room for improvement."},
	{"lowest", 0, "Keep studying — you'll get there!"},
}

// Quiz grades the five-question web basics quiz. It holds no state.
type Quiz struct {
	questions []domain.Question
}

// NewQuiz creates the quiz with its fixed question set.
func NewQuiz() *Quiz {
	return &Quiz{questions: quizQuestions}
}

// Questions returns the questions in order.
func (q *Quiz) Questions() []domain.Question {
	out := make([]domain.Question, len(q.questions))
	copy(out, q.questions)
	return out
}

// AnswersFromList maps positional answers onto q1..qN.
func (q *Quiz) AnswersFromList(list []string) Answers {
	answers := make(Answers, len(list))
	for i, a := range list {
		if i >= len(q.questions) {
			break
		}
		answers[q.questions[i].Field()] = a
	}
	return answers
}

func normalizeAnswer(a string) string {
	return strings.ToLower(strings.TrimSpace(a))
}

// Progress counts answered questions. Submitting is allowed only once all are answered.
func (q *Quiz) Progress(answers Answers) QuizProgress {
	answered := 0
	for _, question := range q.questions {
		if normalizeAnswer(answers[question.Field()]) != "" {
			answered++
		}
	}
	total := len(q.questions)
	return QuizProgress{
		Answered:  answered,
		Total:     total,
		Percent:   answered * 100 / total,
		CanSubmit: answered == total,
		Text:      fmt.Sprintf("%d of %d answered", answered, total),
	}
}

// Grade scores a complete attempt. Every question must be answered.
func (q *Quiz) Grade(answers Answers) (*QuizResult, error) {
	ve := validation.NewValidationError()
	for _, question := range q.questions {
		if normalizeAnswer(answers[question.Field()]) == "" {
			ve.AddRequiredError(question.Field(), fmt.Sprintf("Please answer question %d.", question.Number))
		}
	}
	if err := ve.OrNil(); err != nil {
		return nil, validationFailure(err)
	}

	result := &QuizResult{Total: len(q.questions)}
	for _, question := range q.questions {
		given := normalizeAnswer(answers[question.Field()])
		correct := given == question.Answer
		if correct {
			result.Score++
		}
		result.Details = append(result.Details, QuestionResult{
			Number:  question.Number,
			Prompt:  question.Prompt,
			Given:   given,
			Correct: correct,
		})
	}

	result.Percentage = float64(result.Score) / float64(result.Total) * 100
	result.Passed = result.Percentage >= PassMark
	for _, tier := range quizTiers {
		if result.Percentage >= tier.min {
			result.Tier = tier.name
			result.Feedback = tier.feedback
			break
		}
	}

	switch result.Score {
	case result.Total:
		result.Heading = "All Correct!"
	case 0:
		result.Heading = "No Correct Answers"
	default:
		result.Heading = fmt.Sprintf("%d out of %d Correct", result.Score, result.Total)
	}

	logging.Debugf("quiz: graded %d/%d (%s)\n", result.Score, result.Total, result.Tier)
	return result, nil
}
