package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"faqbot/internal/ambiguity"
	"faqbot/internal/feedback"
	"faqbot/internal/sentiment"
)

var keys = []string{
	"KB_PATH", "SENTIMENT_STRATEGY", "AMBIGUITY_POLICY", "RECORD_ASSISTANT_TURNS", "RESPONDER",
	"OPENAI_API_KEY", "OPENAI_MODEL", "OPENAI_BASE_URL", "CONTEXT_PATH", "FEEDBACK_SINK",
	"FEEDBACK_PATH", "DATABASE_URL", "FEEDBACK_PROBABILITY", "LOG_LEVEL",
	"FEEDBACK_WEBHOOK_URL", "FEEDBACK_WEBHOOK_TOKEN",
}

// clearEnv remove as variáveis do processo e restaura no fim do teste.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range keys {
		t.Setenv(k, "")
		require.NoError(t, os.Unsetenv(k))
	}
}

func missingEnvFile(t *testing.T) string {
	return filepath.Join(t.TempDir(), ".env")
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(missingEnvFile(t))
	require.NoError(t, err)
	assert.Equal(t, "faq_knowledge_base.json", cfg.KnowledgeBasePath)
	assert.Equal(t, sentiment.StrategyCounting, cfg.Sentiment)
	assert.Equal(t, ambiguity.PolicyStrict, cfg.Ambiguity)
	assert.Equal(t, ResponderRules, cfg.Responder)
	assert.Equal(t, feedback.KindFile, cfg.FeedbackSink)
	assert.Equal(t, "feedback.json", cfg.FeedbackPath)
	assert.Equal(t, "conversation_context.json", cfg.ContextPath)
	assert.Equal(t, 0.1, cfg.FeedbackProbability)
	assert.False(t, cfg.RecordAssistantTurns)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoad_FromEnvironment(t *testing.T) {
	clearEnv(t)
	t.Setenv("KB_PATH", "kb.yaml")
	t.Setenv("SENTIMENT_STRATEGY", "lexical")
	t.Setenv("AMBIGUITY_POLICY", "lenient")
	t.Setenv("RECORD_ASSISTANT_TURNS", "true")
	t.Setenv("FEEDBACK_PROBABILITY", "0")
	t.Setenv("FEEDBACK_SINK", "none")

	cfg, err := Load(missingEnvFile(t))
	require.NoError(t, err)
	assert.Equal(t, "kb.yaml", cfg.KnowledgeBasePath)
	assert.Equal(t, sentiment.StrategyLexical, cfg.Sentiment)
	assert.Equal(t, ambiguity.PolicyLenient, cfg.Ambiguity)
	assert.True(t, cfg.RecordAssistantTurns)
	assert.Equal(t, 0.0, cfg.FeedbackProbability)
	assert.Equal(t, feedback.KindNone, cfg.FeedbackSink)
}

func TestLoad_ReadsDotEnv(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("RESPONDER=openai\nOPENAI_API_KEY=sk-test\n"), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ResponderOpenAI, cfg.Responder)
	assert.Equal(t, "sk-test", cfg.OpenAIKey)
}

func TestLoad_Unparsable(t *testing.T) {
	cases := map[string]map[string]string{
		"sink":        {"FEEDBACK_SINK": "s3"},
		"probability": {"FEEDBACK_PROBABILITY": "often"},
		"bool":        {"RECORD_ASSISTANT_TURNS": "sometimes"},
	}
	for name, env := range cases {
		t.Run(name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range env {
				t.Setenv(k, v)
			}
			_, err := Load(missingEnvFile(t))
			assert.Error(t, err)
		})
	}
}

func TestLoad_LeavesCombinationsToValidate(t *testing.T) {
	clearEnv(t)
	t.Setenv("RESPONDER", "openai")

	cfg, err := Load(missingEnvFile(t))
	require.NoError(t, err)
	assert.Error(t, cfg.Validate())

	cfg.Responder = ResponderRules
	assert.NoError(t, cfg.Validate())
}

func validConfig() Config {
	return Config{
		Sentiment:           sentiment.StrategyCounting,
		Ambiguity:           ambiguity.PolicyStrict,
		Responder:           ResponderRules,
		FeedbackSink:        feedback.KindFile,
		FeedbackProbability: 0.1,
	}
}

func TestValidate(t *testing.T) {
	require.NoError(t, validConfig().Validate())

	cases := map[string]func(*Config){
		"sentiment":          func(c *Config) { c.Sentiment = "bayes" },
		"ambiguity":          func(c *Config) { c.Ambiguity = "paranoid" },
		"responder":          func(c *Config) { c.Responder = "gemini" },
		"openai without key": func(c *Config) { c.Responder = ResponderOpenAI },
		"postgres no url":    func(c *Config) { c.FeedbackSink = feedback.KindPostgres },
		"webhook no url":     func(c *Config) { c.FeedbackSink = feedback.KindWebhook },
		"probability range":  func(c *Config) { c.FeedbackProbability = 1.5 },
		"negative":           func(c *Config) { c.FeedbackProbability = -0.1 },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			cfg := validConfig()
			mutate(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestValidate_CompleteCombinations(t *testing.T) {
	cfg := validConfig()
	cfg.Responder = ResponderOpenAI
	cfg.OpenAIKey = "sk-test"
	cfg.FeedbackSink = feedback.KindPostgres
	cfg.DatabaseUrl = "postgres://localhost/faq"
	assert.NoError(t, cfg.Validate())

	cfg.FeedbackSink = feedback.KindWebhook
	cfg.WebhookURL = "https://hooks.example.com/feedback"
	assert.NoError(t, cfg.Validate())
}
