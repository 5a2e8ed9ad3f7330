package main

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"faqbot/config"
	"faqbot/internal/ambiguity"
	"faqbot/internal/database"
	"faqbot/internal/feedback"
	"faqbot/internal/handler"
	"faqbot/internal/knowledge"
	"faqbot/internal/logging"
	"faqbot/internal/sentiment"
	"faqbot/internal/service"
	"faqbot/internal/sessions"
	"faqbot/internal/utils"
	"faqbot/pkg/webhook"
)

type cliFlags struct {
	kb        string
	sentiment string
	ambiguity string
	responder string
	logLevel  string
	envFile   string
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	flags := &cliFlags{}

	root := &cobra.Command{
		Use:          "faqbot",
		Short:        "Chatbot de FAQ com respostas moduladas por sentimento",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd, flags)
			if err != nil {
				return err
			}
			return runChat(cmd.Context(), cfg, cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&flags.kb, "kb", "", "caminho da base de conhecimento (.json, .yaml)")
	pf.StringVar(&flags.sentiment, "sentiment", "", "estratégia de sentimento: counting|lexical")
	pf.StringVar(&flags.ambiguity, "ambiguity", "", "política de ambiguidade: strict|lenient")
	pf.StringVar(&flags.responder, "responder", "", "motor de respostas: rules|openai")
	pf.StringVar(&flags.logLevel, "log-level", "", "nível de log: debug|info|warn|error")
	pf.StringVar(&flags.envFile, "env-file", ".env", "arquivo .env opcional")

	root.AddCommand(newFeedbackCmd(flags))
	return root
}

func newFeedbackCmd(flags *cliFlags) *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "feedback",
		Short: "Lista os feedbacks mais recentes",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd, flags)
			if err != nil {
				return err
			}
			sink, closeSink, err := openSink(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer closeSink()

			reader, ok := sink.(feedback.Reader)
			if !ok {
				return fmt.Errorf("o sink %q não permite leitura", cfg.FeedbackSink)
			}
			recs, err := reader.Recent(cmd.Context(), limit)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, r := range recs {
				fmt.Fprintf(out, "%s  rating=%d  %q  (%d turnos)\n",
					r.Timestamp.Format("2006-01-02 15:04:05"), r.Rating, r.Feedback, len(r.Conversation))
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 10, "quantidade de registros")
	return cmd
}

// loadConfig lê o ambiente e aplica as flags que foram passadas explicitamente.
func loadConfig(cmd *cobra.Command, flags *cliFlags) (config.Config, error) {
	cfg, err := config.Load(flags.envFile)
	if err != nil {
		return config.Config{}, err
	}

	changed := cmd.Flags().Changed
	if changed("kb") {
		cfg.KnowledgeBasePath = flags.kb
	}
	if changed("sentiment") {
		cfg.Sentiment = sentiment.Strategy(flags.sentiment)
	}
	if changed("ambiguity") {
		cfg.Ambiguity = ambiguity.Policy(flags.ambiguity)
	}
	if changed("responder") {
		cfg.Responder = config.Responder(flags.responder)
	}
	if changed("log-level") {
		cfg.LogLevel = flags.logLevel
	}
	logging.SetLevel(cfg.LogLevel)

	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

type conversational interface {
	service.Responder
	History() *sessions.History
}

func runChat(ctx context.Context, cfg config.Config, in io.Reader, out io.Writer) error {
	responder, err := buildResponder(cfg)
	if err != nil {
		return err
	}

	sink, closeSink, err := openSink(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeSink()

	collector := feedback.NewCollector(sink, responder.History())
	console := handler.NewConsole(responder, in, out, handler.WithFeedback(collector, cfg.FeedbackProbability))
	return console.Run(ctx)
}

func buildResponder(cfg config.Config) (conversational, error) {
	if cfg.Responder == config.ResponderOpenAI {
		history, err := service.LoadContext(cfg.ContextPath)
		if err != nil {
			return nil, err
		}
		client := service.NewOpenAIClient(cfg.OpenAIKey, cfg.OpenAIBaseURL)
		return service.NewOpenAIResponder(client, service.OpenAIOptions{
			Model:       cfg.OpenAIModel,
			ContextPath: cfg.ContextPath,
			History:     history,
		}), nil
	}

	kb, err := knowledge.Load(cfg.KnowledgeBasePath)
	if err != nil {
		return nil, err
	}
	estimator, err := sentiment.New(cfg.Sentiment)
	if err != nil {
		return nil, err
	}
	detector, err := ambiguity.New(cfg.Ambiguity)
	if err != nil {
		return nil, err
	}
	engine, err := service.NewEngine(service.Options{
		KnowledgeBase:        kb,
		Estimator:            estimator,
		Detector:             detector,
		Chooser:              utils.NewChooser(),
		RecordAssistantTurns: cfg.RecordAssistantTurns,
	})
	if err != nil {
		return nil, err
	}
	return engine, nil
}

func openSink(ctx context.Context, cfg config.Config) (feedback.Sink, func(), error) {
	switch cfg.FeedbackSink {
	case feedback.KindPostgres:
		db, err := database.Open(ctx, cfg.DatabaseUrl)
		if err != nil {
			return nil, nil, err
		}
		return feedback.NewPostgresSink(db), closeDB(db), nil
	case feedback.KindWebhook:
		return feedback.NewWebhookSink(webhook.New(cfg.WebhookURL, cfg.WebhookToken)), func() {}, nil
	case feedback.KindNone:
		return feedback.NopSink{}, func() {}, nil
	default:
		return feedback.NewFileSink(cfg.FeedbackPath), func() {}, nil
	}
}

func closeDB(db *sql.DB) func() {
	return func() {
		if err := db.Close(); err != nil {
			logging.Warnf("Erro ao fechar conexão com o banco de dados: %v", err)
		}
	}
}
