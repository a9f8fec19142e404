package testutils

import (
	"context"
	"sync"

	"github.com/ahrav/go-ballot/infrastructure/console"
	"github.com/ahrav/go-ballot/internal/ports"
)

var _ ports.Prompter = (*ScriptedPrompter)(nil)

// ScriptedPrompter implements the Prompter interface with pre-recorded
// answers for deterministic tests of the questionnaire flow.
// Each queue is consumed in order; an exhausted queue returns
// ports.ErrInputClosed, like a terminal reaching end of input.
type ScriptedPrompter struct {
	mu sync.Mutex

	// Names are returned by DisplayName.
	Names []string
	// Selections are returned by Selection.
	Selections []string
	// Ratings are raw rating lines, parsed like console input.
	Ratings []string
	// Confirms are raw yes/no lines, parsed like console input.
	Confirms []string

	// Requests records every rating request received.
	Requests []ports.RatingRequest
	// Questions records every yes/no question asked.
	Questions []string
	// Notices records informational messages.
	Notices []string
	// Warnings records re-prompt messages.
	Warnings []string
}

// DisplayName implements ports.Prompter.
func (p *ScriptedPrompter) DisplayName(context.Context) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return pop(&p.Names)
}

// Selection implements ports.Prompter.
func (p *ScriptedPrompter) Selection(context.Context, []string) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return pop(&p.Selections)
}

// Rating implements ports.Prompter.
func (p *ScriptedPrompter) Rating(_ context.Context, req ports.RatingRequest) (float64, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.Requests = append(p.Requests, req)
	line, err := pop(&p.Ratings)
	if err != nil {
		return 0, err
	}
	return console.ParseRating(line)
}

// Confirm implements ports.Prompter. Unrecognized answers are skipped the
// way the console prompter asks again.
func (p *ScriptedPrompter) Confirm(_ context.Context, question string, def bool) (bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.Questions = append(p.Questions, question)
	for {
		line, err := pop(&p.Confirms)
		if err != nil {
			return false, err
		}
		answer, err := console.ParseYesNo(line, def)
		if err == nil {
			return answer, nil
		}
		p.Warnings = append(p.Warnings, err.Error())
	}
}

// Notify implements ports.Prompter.
func (p *ScriptedPrompter) Notify(msg string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.Notices = append(p.Notices, msg)
}

// Warn implements ports.Prompter.
func (p *ScriptedPrompter) Warn(msg string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.Warnings = append(p.Warnings, msg)
}

func pop(queue *[]string) (string, error) {
	if len(*queue) == 0 {
		return "", ports.ErrInputClosed
	}
	v := (*queue)[0]
	*queue = (*queue)[1:]
	return v, nil
}

// Repeat returns n copies of line, handy for rating every proposition alike.
func Repeat(line string, n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = line
	}
	return out
}
