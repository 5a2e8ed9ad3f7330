package handler

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand/v2"
	"slices"
	"strings"

	"faqbot/internal/feedback"
	"faqbot/internal/logging"
	"faqbot/internal/service"
)

const (
	botName         = "AI Chatbot"
	welcomeMessage  = "Hello! I'm your AI assistant. Type 'quit' to exit."
	farewellMessage = "Goodbye! Have a great day!"
	feedbackPrompt  = "Was this response helpful? (yes/no)"
	tooLongMessage  = "That message is too long for me. Could you ask it in fewer words?"
)

// MaxInputBytes limita uma mensagem. O resto de uma linha maior é descartado e a
// conversa continua.
const MaxInputBytes = 64 * 1024

var errLineTooLong = errors.New("mensagem maior que MaxInputBytes")

// DefaultQuitWords encerram a conversa. "bye" fica de fora para o intent de despedida
// continuar alcançável.
var DefaultQuitWords = []string{"quit", "exit"}

// Roller sorteia números em [0, 1).
type Roller interface {
	Float64() float64
}

// contextSaver é implementado por responders que persistem o contexto.
type contextSaver interface {
	SaveContext() error
}

// Console conduz a conversa pelo terminal, uma mensagem por vez.
type Console struct {
	responder   service.Responder
	collector   *feedback.Collector
	in          *bufio.Reader
	out         io.Writer
	quitWords   []string
	probability float64
	roller      Roller
}

// Option configura um Console.
type Option func(*Console)

// WithFeedback liga a pergunta de feedback com a probabilidade p após cada resposta.
func WithFeedback(c *feedback.Collector, p float64) Option {
	return func(con *Console) {
		con.collector = c
		con.probability = p
	}
}

// WithQuitWords troca as palavras de saída.
func WithQuitWords(words ...string) Option {
	return func(con *Console) { con.quitWords = words }
}

// WithRoller troca a fonte de aleatoriedade da pergunta de feedback.
func WithRoller(r Roller) Option {
	return func(con *Console) { con.roller = r }
}

// NewConsole cria o loop de conversa sobre in/out.
func NewConsole(r service.Responder, in io.Reader, out io.Writer, opts ...Option) *Console {
	c := &Console{
		responder: r,
		in:        bufio.NewReader(in),
		out:       out,
		quitWords: DefaultQuitWords,
		roller:    rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Run lê mensagens até uma palavra de saída, fim da entrada ou cancelamento do contexto.
// Retorna erros de leitura da entrada ou de consistência interna do responder.
// Uma linha grande demais recebe um aviso e não encerra a conversa.
func (c *Console) Run(ctx context.Context) error {
	defer c.saveContext()

	c.say(welcomeMessage)
	for {
		if err := ctx.Err(); err != nil {
			c.say(farewellMessage)
			return nil
		}

		input, err := c.prompt("\nYou: ")
		if errors.Is(err, errLineTooLong) {
			c.say(tooLongMessage)
			continue
		}
		if err != nil {
			fmt.Fprintln(c.out)
			c.say(farewellMessage)
			if errors.Is(err, io.EOF) {
				return nil
			}
			return fmt.Errorf("erro ao ler a entrada: %w", err)
		}
		if slices.Contains(c.quitWords, strings.ToLower(input)) {
			c.say(farewellMessage)
			return nil
		}

		reply, err := c.responder.GetResponse(ctx, input)
		if err != nil {
			return fmt.Errorf("erro ao gerar resposta: %w", err)
		}
		c.say(reply)

		if c.collector != nil && c.roller.Float64() < c.probability {
			c.askFeedback(ctx)
		}
	}
}

func (c *Console) askFeedback(ctx context.Context) {
	fmt.Fprintln(c.out)
	c.say(feedbackPrompt)
	answer, err := c.prompt("You: ")
	if err != nil {
		return
	}

	var rating int
	switch strings.ToLower(answer) {
	case "yes":
		rating = feedback.RatingHelpful
	case "no":
		rating = feedback.RatingNotHelpful
	default:
		return
	}
	c.say(c.collector.Collect(ctx, strings.ToLower(answer), rating))
}

func (c *Console) prompt(label string) (string, error) {
	fmt.Fprint(c.out, label)
	return c.readLine()
}

// readLine lê até '\n' ou fim da entrada. Uma linha acima de MaxInputBytes é
// consumida até o fim e reportada como errLineTooLong.
func (c *Console) readLine() (string, error) {
	var line []byte
	tooLong := false
	for {
		chunk, err := c.in.ReadSlice('\n')
		if !tooLong && len(line)+len(chunk) <= MaxInputBytes {
			line = append(line, chunk...)
		} else {
			tooLong = true
			line = nil
		}
		if errors.Is(err, bufio.ErrBufferFull) {
			continue
		}
		if err != nil && !(errors.Is(err, io.EOF) && (len(line) > 0 || tooLong)) {
			return "", err
		}
		if tooLong {
			return "", errLineTooLong
		}
		return strings.TrimSpace(string(line)), nil
	}
}

func (c *Console) say(msg string) {
	fmt.Fprintf(c.out, "%s: %s\n", botName, msg)
}

func (c *Console) saveContext() {
	s, ok := c.responder.(contextSaver)
	if !ok {
		return
	}
	if err := s.SaveContext(); err != nil {
		logging.Errorf("Erro ao salvar o contexto da conversa: %v", err)
	}
}
