package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"faqbot/internal/ambiguity"
	"faqbot/internal/feedback"
	"faqbot/internal/sentiment"
)

// Responder seleciona o motor de respostas.
type Responder string

const (
	ResponderRules  Responder = "rules"
	ResponderOpenAI Responder = "openai"
)

type Config struct {
	KnowledgeBasePath    string             `json:"kb_path"`
	Sentiment            sentiment.Strategy `json:"sentiment_strategy"`
	Ambiguity            ambiguity.Policy   `json:"ambiguity_policy"`
	RecordAssistantTurns bool               `json:"record_assistant_turns"`
	Responder            Responder          `json:"responder"`
	OpenAIKey            string             `json:"-"`
	OpenAIModel          string             `json:"openai_model"`
	OpenAIBaseURL        string             `json:"openai_base_url"`
	ContextPath          string             `json:"context_path"`
	FeedbackSink         feedback.Kind      `json:"feedback_sink"`
	FeedbackPath         string             `json:"feedback_path"`
	DatabaseUrl          string             `json:"-"`
	WebhookURL           string             `json:"feedback_webhook_url"`
	WebhookToken         string             `json:"-"`
	FeedbackProbability  float64            `json:"feedback_probability"`
	LogLevel             string             `json:"log_level"`
}

// Load carrega as variaveis de ambiente, lendo antes o arquivo .env se ele existir.
// Só falha em valores que não podem ser lidos; as combinações ficam para Validate,
// que deve ser chamado depois de aplicar as flags.
func Load(files ...string) (Config, error) {
	if err := godotenv.Load(files...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("erro ao carregar o arquivo .env: %w", err)
	}

	cfg := Config{
		KnowledgeBasePath: getenv("KB_PATH", "faq_knowledge_base.json"),
		Sentiment:         sentiment.Strategy(getenv("SENTIMENT_STRATEGY", string(sentiment.StrategyCounting))),
		Ambiguity:         ambiguity.Policy(getenv("AMBIGUITY_POLICY", string(ambiguity.PolicyStrict))),
		Responder:         Responder(getenv("RESPONDER", string(ResponderRules))),
		OpenAIKey:         os.Getenv("OPENAI_API_KEY"),
		OpenAIModel:       getenv("OPENAI_MODEL", "gpt-3.5-turbo"),
		OpenAIBaseURL:     os.Getenv("OPENAI_BASE_URL"),
		ContextPath:       getenv("CONTEXT_PATH", "conversation_context.json"),
		FeedbackPath:      getenv("FEEDBACK_PATH", "feedback.json"),
		DatabaseUrl:       os.Getenv("DATABASE_URL"),
		WebhookURL:        os.Getenv("FEEDBACK_WEBHOOK_URL"),
		WebhookToken:      os.Getenv("FEEDBACK_WEBHOOK_TOKEN"),
		LogLevel:          getenv("LOG_LEVEL", "info"),
	}

	var err error
	if cfg.RecordAssistantTurns, err = getbool("RECORD_ASSISTANT_TURNS", false); err != nil {
		return Config{}, err
	}
	if cfg.FeedbackProbability, err = getfloat("FEEDBACK_PROBABILITY", 0.1); err != nil {
		return Config{}, err
	}
	if cfg.FeedbackSink, err = feedback.ParseKind(os.Getenv("FEEDBACK_SINK")); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate confere as combinações de valores.
func (c Config) Validate() error {
	switch c.Sentiment {
	case sentiment.StrategyCounting, sentiment.StrategyLexical:
	default:
		return fmt.Errorf("SENTIMENT_STRATEGY inválida: %q", c.Sentiment)
	}
	switch c.Ambiguity {
	case ambiguity.PolicyStrict, ambiguity.PolicyLenient:
	default:
		return fmt.Errorf("AMBIGUITY_POLICY inválida: %q", c.Ambiguity)
	}
	switch c.Responder {
	case ResponderRules:
	case ResponderOpenAI:
		if c.OpenAIKey == "" {
			return errors.New("variavel de ambiente OPENAI_API_KEY nao encontrada")
		}
	default:
		return fmt.Errorf("RESPONDER inválido: %q", c.Responder)
	}
	if c.FeedbackSink == feedback.KindPostgres && c.DatabaseUrl == "" {
		return errors.New("variavel de ambiente DATABASE_URL nao encontrada")
	}
	if c.FeedbackSink == feedback.KindWebhook && c.WebhookURL == "" {
		return errors.New("variavel de ambiente FEEDBACK_WEBHOOK_URL nao encontrada")
	}
	if c.FeedbackProbability < 0 || c.FeedbackProbability > 1 {
		return fmt.Errorf("FEEDBACK_PROBABILITY deve estar entre 0 e 1: %v", c.FeedbackProbability)
	}
	return nil
}

func getenv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func getbool(key string, fallback bool) (bool, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("%s inválida: %w", key, err)
	}
	return b, nil
}

func getfloat(key string, fallback float64) (float64, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("%s inválida: %w", key, err)
	}
	return f, nil
}
