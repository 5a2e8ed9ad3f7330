package sessions

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"faqbot/internal/domain"
)

// ErrMalformedContext indica um arquivo de contexto que não é uma lista de turnos.
var ErrMalformedContext = errors.New("contexto de conversa malformado")

// Save grava todos os turnos como um array JSON. A escrita passa por um arquivo
// temporário para não deixar o contexto pela metade.
func (h *History) Save(path string) error {
	data, err := json.MarshalIndent(h.Turns(), "", "  ")
	if err != nil {
		return fmt.Errorf("erro ao serializar o contexto: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".context-*.json")
	if err != nil {
		return fmt.Errorf("erro ao criar arquivo temporário de contexto: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("erro ao escrever o contexto: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("erro ao fechar o contexto: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("erro ao gravar o contexto em %s: %w", path, err)
	}
	return nil
}

// Load recria um histórico salvo por Save. Arquivo ausente retorna um erro que
// satisfaz errors.Is(err, fs.ErrNotExist).
func Load(path string, opts ...Option) (*History, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("erro ao ler o contexto %s: %w", path, err)
	}

	var turns []domain.Turn
	if err := json.Unmarshal(data, &turns); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedContext, err)
	}

	h := NewHistory(opts...)
	h.turns = turns
	return h, nil
}
