package feedback

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"slices"
	"sync"

	"faqbot/internal/domain"
	"faqbot/internal/logging"
)

// FileSink acrescenta um objeto JSON por linha ao arquivo.
type FileSink struct {
	mu   sync.Mutex
	path string
}

// NewFileSink cria um sink em path. O arquivo é criado na primeira gravação.
func NewFileSink(path string) *FileSink {
	return &FileSink{path: path}
}

// Save grava rec como uma linha.
func (s *FileSink) Save(_ context.Context, rec domain.FeedbackRecord) error {
	line, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrPersistence, err)
	}
	line = append(line, '\n')

	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := os.OpenFile(s.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("%w: erro ao abrir %s: %w", ErrPersistence, s.path, err)
	}
	if _, err := f.Write(line); err != nil {
		f.Close()
		return fmt.Errorf("%w: erro ao escrever em %s: %w", ErrPersistence, s.path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("%w: %w", ErrPersistence, err)
	}
	return nil
}

// Recent lê o arquivo inteiro e retorna as últimas limit linhas válidas, da mais nova
// para a mais antiga. Arquivo ausente não é erro.
func (s *FileSink) Recent(_ context.Context, limit int) ([]domain.FeedbackRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := os.Open(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("erro ao abrir %s: %w", s.path, err)
	}
	defer f.Close()

	var out []domain.FeedbackRecord
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for n := 1; scanner.Scan(); n++ {
		var rec domain.FeedbackRecord
		if err := json.Unmarshal(scanner.Bytes(), &rec); err != nil {
			logging.Warnf("Linha %d de %s ignorada: %v", n, s.path, err)
			continue
		}
		out = append(out, rec)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("erro ao ler %s: %w", s.path, err)
	}

	slices.Reverse(out)
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
