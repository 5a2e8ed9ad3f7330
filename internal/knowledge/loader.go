// Package knowledge carrega a base de FAQ que alimenta o matcher.
package knowledge

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"gopkg.in/yaml.v3"

	"faqbot/internal/domain"
	"faqbot/internal/logging"
)

// ErrMalformed indica uma base que existe mas não pode ser decodificada.
var ErrMalformed = errors.New("base de conhecimento malformada")

// Format é o formato serializado da base.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatFor escolhe o formato pela extensão do arquivo. Qualquer extensão fora de
// .yaml/.yml é tratada como JSON.
func FormatFor(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// Load lê a base de conhecimento em path.
// Se o arquivo não existir, registra um aviso e retorna Default(). Erros de decodificação
// são retornados embrulhando ErrMalformed; erros de leitura, como path ser um diretório,
// são embrulhados sem ErrMalformed.
func Load(path string) (*domain.KnowledgeBase, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			logging.Warnf("FAQ knowledge base not found at %s. Using default FAQs.", path)
			return Default(), nil
		}
		return nil, fmt.Errorf("erro ao ler a base de conhecimento %s: %w", path, err)
	}

	kb, err := Decode(bytes.NewReader(data), FormatFor(path))
	if err != nil {
		return nil, fmt.Errorf("erro ao carregar %s: %w", path, err)
	}
	logging.Infof("Base de conhecimento carregada de %s com %d intents", path, kb.Len())
	return kb, nil
}

// Decode lê uma base do formato indicado preservando a ordem das chaves.
func Decode(r io.Reader, format Format) (*domain.KnowledgeBase, error) {
	switch format {
	case FormatYAML:
		return decodeYAML(r)
	default:
		return decodeJSON(r)
	}
}

func decodeJSON(r io.Reader) (*domain.KnowledgeBase, error) {
	dec := json.NewDecoder(r)

	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformed, err)
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, fmt.Errorf("%w: a raiz deve ser um objeto", ErrMalformed)
	}

	kb := domain.NewKnowledgeBase()
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrMalformed, err)
		}
		id, _ := tok.(string)

		var entry domain.IntentEntry
		if err := dec.Decode(&entry); err != nil {
			return nil, fmt.Errorf("%w: intent %q: %w", ErrMalformed, id, err)
		}
		if err := validate(id, entry); err != nil {
			return nil, err
		}
		kb.Add(id, entry)
	}

	if _, err := dec.Token(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformed, err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: conteúdo extra após o objeto raiz", ErrMalformed)
	}
	return kb, nil
}

func decodeYAML(r io.Reader) (*domain.KnowledgeBase, error) {
	var doc yaml.Node
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: documento vazio", ErrMalformed)
		}
		return nil, fmt.Errorf("%w: %w", ErrMalformed, err)
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 || doc.Content[0].Kind != yaml.MappingNode {
		return nil, fmt.Errorf("%w: a raiz deve ser um mapa", ErrMalformed)
	}

	root := doc.Content[0]
	kb := domain.NewKnowledgeBase()
	for i := 0; i+1 < len(root.Content); i += 2 {
		key, value := root.Content[i], root.Content[i+1]

		var entry domain.IntentEntry
		if err := value.Decode(&entry); err != nil {
			return nil, fmt.Errorf("%w: intent %q: %w", ErrMalformed, key.Value, err)
		}
		if err := validate(key.Value, entry); err != nil {
			return nil, err
		}
		kb.Add(key.Value, entry)
	}
	return kb, nil
}

func validate(id string, entry domain.IntentEntry) error {
	if id == "" {
		return fmt.Errorf("%w: intent sem nome", ErrMalformed)
	}
	if len(entry.Responses) == 0 {
		return fmt.Errorf("%w: intent %q sem respostas", ErrMalformed, id)
	}
	for _, kw := range entry.Keywords {
		if strings.IndexFunc(kw, unicode.IsUpper) >= 0 {
			logging.Warnf("Intent %q: keyword %q tem letras maiúsculas e nunca vai casar", id, kw)
		}
	}
	return nil
}
