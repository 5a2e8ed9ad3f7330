package service

import (
	"context"
	"errors"
	"fmt"
	"io/fs"

	openai "github.com/sashabaranov/go-openai"

	"faqbot/internal/domain"
	"faqbot/internal/logging"
	"faqbot/internal/sessions"
)

// SystemPrompt inicia toda conversa nova com o modelo.
const SystemPrompt = `You are a helpful AI assistant designed for customer support.
Be friendly, professional, and provide accurate information.
If you don't know something, say so rather than making up an answer.`

const (
	defaultTemperature = 0.7
	defaultMaxTokens   = 150
)

// ChatClient é a parte do cliente go-openai usada aqui.
type ChatClient interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// NewOpenAIClient cria o cliente oficial, opcionalmente apontando para outra base URL.
func NewOpenAIClient(apiKey, baseURL string) *openai.Client {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	return openai.NewClientWithConfig(cfg)
}

// OpenAIOptions configura o OpenAIResponder.
type OpenAIOptions struct {
	Model       string
	ContextPath string
	History     *sessions.History
}

// OpenAIResponder envia o histórico inteiro para o modelo a cada mensagem e
// persiste o contexto depois de cada resposta.
type OpenAIResponder struct {
	client      ChatClient
	model       string
	contextPath string
	history     *sessions.History
}

// NewOpenAIResponder cria o responder. Sem History informado, começa só com o prompt de sistema.
func NewOpenAIResponder(client ChatClient, opts OpenAIOptions) *OpenAIResponder {
	if opts.Model == "" {
		opts.Model = openai.GPT3Dot5Turbo
	}
	if opts.History == nil {
		opts.History = seededHistory()
	}
	return &OpenAIResponder{
		client:      client,
		model:       opts.Model,
		contextPath: opts.ContextPath,
		history:     opts.History,
	}
}

// LoadContext lê o contexto salvo em path. Arquivo ausente gera um histórico novo
// com o prompt de sistema; arquivo malformado é retornado como erro.
func LoadContext(path string) (*sessions.History, error) {
	h, err := sessions.Load(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return seededHistory(), nil
		}
		return nil, err
	}
	logging.Infof("Contexto de conversa carregado de %s (%d turnos)", path, h.Len())
	return h, nil
}

func seededHistory() *sessions.History {
	h := sessions.NewHistory()
	h.Record(domain.RoleSystem, SystemPrompt)
	return h
}

// History retorna o histórico da sessão.
func (r *OpenAIResponder) History() *sessions.History { return r.history }

// GetResponse nunca retorna erro: falhas da API viram uma mensagem de desculpas.
func (r *OpenAIResponder) GetResponse(ctx context.Context, input string) (string, error) {
	r.history.Record(domain.RoleUser, input)

	resp, err := r.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       r.model,
		Messages:    toMessages(r.history.Turns()),
		Temperature: defaultTemperature,
		MaxTokens:   defaultMaxTokens,
	})
	if err == nil && len(resp.Choices) == 0 {
		err = errors.New("resposta sem choices")
	}
	if err != nil {
		logging.Errorf("Erro ao chamar a API OpenAI: %v", err)
		return fmt.Sprintf("I'm sorry, I encountered an error: %v", err), nil
	}

	answer := resp.Choices[0].Message.Content
	r.history.Record(domain.RoleAssistant, answer)
	if err := r.SaveContext(); err != nil {
		logging.Errorf("Erro ao salvar o contexto da conversa: %v", err)
	}
	return answer, nil
}

// SaveContext grava o histórico em ContextPath. Sem caminho, não faz nada.
func (r *OpenAIResponder) SaveContext() error {
	if r.contextPath == "" {
		return nil
	}
	return r.history.Save(r.contextPath)
}

func toMessages(turns []domain.Turn) []openai.ChatCompletionMessage {
	msgs := make([]openai.ChatCompletionMessage, 0, len(turns))
	for _, t := range turns {
		role := openai.ChatMessageRoleUser
		switch t.Role {
		case domain.RoleSystem:
			role = openai.ChatMessageRoleSystem
		case domain.RoleAssistant:
			role = openai.ChatMessageRoleAssistant
		}
		msgs = append(msgs, openai.ChatCompletionMessage{Role: role, Content: t.Content})
	}
	return msgs
}
