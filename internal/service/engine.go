// Package service produz a resposta do bot para cada mensagem do usuário.
package service

import (
	"context"
	"errors"

	"faqbot/internal/ambiguity"
	"faqbot/internal/domain"
	"faqbot/internal/logging"
	"faqbot/internal/matcher"
	"faqbot/internal/sentiment"
	"faqbot/internal/sessions"
	"faqbot/internal/utils"
)

// Responder responde a uma mensagem. Os erros retornados são apenas de
// consistência interna; falhas esperadas viram texto.
type Responder interface {
	GetResponse(ctx context.Context, input string) (string, error)
}

// ReplyKind diz qual caminho gerou a resposta.
type ReplyKind string

const (
	ReplyMatched ReplyKind = "matched"
	ReplyClarify ReplyKind = "clarify"
	ReplyDefault ReplyKind = "default"
)

// Reply é a resposta com os detalhes de como foi escolhida.
type Reply struct {
	Text     string
	Kind     ReplyKind
	IntentID string
	Score    domain.Score
}

// Options configura o Engine. Só KnowledgeBase é obrigatório.
type Options struct {
	KnowledgeBase        *domain.KnowledgeBase
	Estimator            sentiment.Estimator
	Detector             *ambiguity.Detector
	Chooser              utils.Chooser
	History              *sessions.History
	RecordAssistantTurns bool
}

// Engine é o bot de regras: FAQ, ambiguidade e respostas padrão moduladas por sentimento.
// Não é seguro para uso concorrente; quem compartilhar uma instância precisa serializar as chamadas.
type Engine struct {
	kb              *domain.KnowledgeBase
	estimator       sentiment.Estimator
	detector        *ambiguity.Detector
	chooser         utils.Chooser
	matcher         *matcher.Matcher
	history         *sessions.History
	recordAssistant bool
}

// NewEngine monta um Engine preenchendo os padrões que faltarem.
func NewEngine(opts Options) (*Engine, error) {
	if opts.KnowledgeBase == nil {
		return nil, errors.New("base de conhecimento não informada")
	}
	if opts.Estimator == nil {
		opts.Estimator = sentiment.NewCounting()
	}
	if opts.Detector == nil {
		d, err := ambiguity.New(ambiguity.PolicyStrict)
		if err != nil {
			return nil, err
		}
		opts.Detector = d
	}
	if opts.Chooser == nil {
		opts.Chooser = utils.NewChooser()
	}
	if opts.History == nil {
		opts.History = sessions.NewHistory()
	}
	return &Engine{
		kb:              opts.KnowledgeBase,
		estimator:       opts.Estimator,
		detector:        opts.Detector,
		chooser:         opts.Chooser,
		matcher:         matcher.New(opts.Chooser),
		history:         opts.History,
		recordAssistant: opts.RecordAssistantTurns,
	}, nil
}

// History retorna o histórico da sessão.
func (e *Engine) History() *sessions.History { return e.history }

// GetResponse implementa Responder.
func (e *Engine) GetResponse(ctx context.Context, input string) (string, error) {
	reply, err := e.Respond(ctx, input)
	if err != nil {
		return "", err
	}
	return reply.Text, nil
}

// Respond registra a mensagem, calcula o sentimento uma única vez e escolhe a resposta:
// casamento da FAQ, pedido de esclarecimento ou resposta padrão.
func (e *Engine) Respond(_ context.Context, input string) (Reply, error) {
	e.history.Record(domain.RoleUser, input)
	score := e.estimator.Estimate(input)

	res, ok, err := e.matcher.Match(input, e.kb)
	if err != nil {
		return Reply{}, err
	}

	reply := Reply{Score: score}
	switch {
	case ok:
		reply.Kind = ReplyMatched
		reply.IntentID = res.IntentID
		reply.Text = utils.Compose(e.chooser, res.Response, score)
	case e.detector.IsUnclear(input):
		reply.Kind = ReplyClarify
		reply.Text = utils.BuildClarification(e.chooser)
	default:
		reply.Kind = ReplyDefault
		reply.Text = utils.BuildDefault(e.chooser, score)
	}
	logging.Debugf("Resposta %s (intent=%q, sentimento=%.2f)", reply.Kind, reply.IntentID, score.Value)

	if e.recordAssistant {
		e.history.Record(domain.RoleAssistant, reply.Text)
	}
	return reply, nil
}
