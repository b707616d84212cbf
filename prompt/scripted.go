package prompt

import (
	"context"
	"fmt"
	"sync"
)

// Question records one request made to a Scripted provider.
type Question struct {
	Prompt  string   `json:"prompt"`
	Options []string `json:"options,omitempty"`
	Answer  string   `json:"answer"`
}

// Scripted answers questions from a fixed list, in order, whatever is asked.
type Scripted struct {
	mu         sync.Mutex
	answers    []string
	transcript []Question
}

// NewScripted returns a provider that replays answers.
func NewScripted(answers ...string) *Scripted {
	owned := make([]string, len(answers))
	copy(owned, answers)

	return &Scripted{answers: owned}
}

// RequestText returns the next answer.
func (s *Scripted) RequestText(ctx context.Context, prompt string) (string, error) {
	return s.next(ctx, prompt, nil)
}

// RequestChoice returns the next answer. The answer is not checked against
// options; the rule that asked validates it on its next check.
func (s *Scripted) RequestChoice(ctx context.Context, prompt string, options []string) (string, error) {
	return s.next(ctx, prompt, options)
}

// Remaining returns how many answers have not been used.
func (s *Scripted) Remaining() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.answers)
}

// Transcript returns the questions asked so far with the answers given.
func (s *Scripted) Transcript() []Question {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Question, len(s.transcript))
	copy(out, s.transcript)

	return out
}

func (s *Scripted) next(ctx context.Context, prompt string, options []string) (string, error) {
	err := ctx.Err()
	if err != nil {
		return "", fmt.Errorf("%s: %w", prompt, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.answers) == 0 {
		return "", fmt.Errorf("%w: %s", ErrNoMoreAnswers, prompt)
	}

	answer := s.answers[0]
	s.answers = s.answers[1:]
	s.transcript = append(s.transcript, Question{Prompt: prompt, Options: options, Answer: answer})

	return answer, nil
}
