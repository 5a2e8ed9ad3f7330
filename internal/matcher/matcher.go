// Package matcher encontra a resposta da base de conhecimento para uma mensagem.
package matcher

import (
	"errors"
	"fmt"
	"strings"

	"faqbot/internal/domain"
	"faqbot/internal/utils"
)

// ErrEmptyResponsePool indica um intent casado que não tem respostas.
var ErrEmptyResponsePool = errors.New("intent casado sem respostas")

// Pass identifica a passada que encontrou o intent.
type Pass string

const (
	PassPattern Pass = "pattern"
	PassKeyword Pass = "keyword"
)

// Result descreve um casamento.
type Result struct {
	IntentID string
	Trigger  string
	Pass     Pass
	Response string
}

// Matcher faz a busca em duas passadas: primeiro todos os padrões de todos os intents,
// depois todas as palavras-chave. O primeiro acerto vence, sem pontuação.
type Matcher struct {
	chooser utils.Chooser
}

// New cria um Matcher que sorteia respostas com c.
func New(c utils.Chooser) *Matcher {
	return &Matcher{chooser: c}
}

// Match retorna ok=false quando nada casa.
func (m *Matcher) Match(input string, kb *domain.KnowledgeBase) (Result, bool, error) {
	folded := utils.Fold(input)

	res, ok := scan(kb, PassPattern, func(e domain.IntentEntry) []string { return e.Patterns }, func(p string) bool {
		return strings.Contains(folded, utils.Fold(p))
	})
	if !ok {
		// keywords já vêm em minúsculas e são comparadas como estão
		res, ok = scan(kb, PassKeyword, func(e domain.IntentEntry) []string { return e.Keywords }, func(k string) bool {
			return strings.Contains(folded, k)
		})
	}
	if !ok {
		return Result{}, false, nil
	}

	entry, _ := kb.Get(res.IntentID)
	if len(entry.Responses) == 0 {
		return Result{}, false, fmt.Errorf("%w: %q", ErrEmptyResponsePool, res.IntentID)
	}
	res.Response = utils.Pick(m.chooser, entry.Responses)
	return res, true, nil
}

func scan(kb *domain.KnowledgeBase, pass Pass, triggers func(domain.IntentEntry) []string, hit func(string) bool) (Result, bool) {
	var res Result
	found := false
	kb.Each(func(id string, e domain.IntentEntry) bool {
		for _, t := range triggers(e) {
			if hit(t) {
				res = Result{IntentID: id, Trigger: t, Pass: pass}
				found = true
				return false
			}
		}
		return true
	})
	return res, found
}
