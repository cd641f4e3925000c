package services

import (
	"context"
	"fmt"

	"onestop/internal/catalog"
	"onestop/internal/domain"
	"onestop/internal/repos"
	"onestop/internal/validate"
)

const PromptForInput = "Please enter a question."

// Source tells how a reply was produced.
type Source string

const (
	SourceEmpty       Source = "empty"
	SourceShipping    Source = "shipping"
	SourceModel       Source = "model"
	SourceUnavailable Source = "unavailable"
)

type Reply struct {
	Text   string
	Source Source
}

// Generator produces a model answer. It never fails outright: when the
// service is unreachable the text explains that and ok is false.
type Generator interface {
	Answer(ctx context.Context, prompt string) (text string, ok bool)
	Model() string
}

type ChatService struct {
	Catalog     *catalog.Catalog
	History     *repos.ChatRepo
	LLM         Generator
	DefaultSlug string
	// MaxMessageRunes caps the question placed in the prompt; 0 disables the cap.
	MaxMessageRunes int
}

func NewChatService(cat *catalog.Catalog, history *repos.ChatRepo, llm Generator, defaultSlug string, maxRunes int) *ChatService {
	return &ChatService{Catalog: cat, History: history, LLM: llm, DefaultSlug: defaultSlug, MaxMessageRunes: maxRunes}
}

// Ask runs one chat turn. A non-nil error means the exchange could not be
// logged; the reply is still valid and should be shown.
func (s *ChatService) Ask(ctx context.Context, message, slug string) (Reply, error) {
	message, ok := validate.Message(message)
	if !ok {
		return Reply{Text: PromptForInput, Source: SourceEmpty}, nil
	}
	if slug == "" {
		slug = s.DefaultSlug
	}
	p := s.Catalog.Lookup(slug)

	var r Reply
	if text, ok := MatchShipping(message, p); ok {
		r = Reply{Text: text, Source: SourceShipping}
	} else {
		prompt := BuildPrompt(BuildContext(p), truncateRunes(message, s.MaxMessageRunes))
		text, ok := s.LLM.Answer(ctx, prompt)
		r = Reply{Text: text, Source: SourceModel}
		if !ok {
			r.Source = SourceUnavailable
		}
	}

	if _, err := s.History.Append(ctx, slug, message, r.Text, s.LLM.Model()); err != nil {
		return r, fmt.Errorf("log exchange for %s: %w", slug, err)
	}
	return r, nil
}

// Recent returns the latest exchanges for slug, oldest first.
func (s *ChatService) Recent(ctx context.Context, slug string, limit int) ([]domain.Exchange, error) {
	if slug == "" {
		slug = s.DefaultSlug
	}
	return s.History.Recent(ctx, slug, limit)
}

func truncateRunes(s string, n int) string {
	if n <= 0 {
		return s
	}
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
