package domain

// IntentEntry representa as regras de gatilho e as respostas de um intent.
// Patterns e Keywords são opcionais: nil ou vazio significa "sem padrões" e o intent
// é simplesmente ignorado na passada correspondente do matcher.
type IntentEntry struct {
	Patterns  []string `json:"patterns,omitempty" yaml:"patterns,omitempty"`
	Keywords  []string `json:"keywords,omitempty" yaml:"keywords,omitempty"`
	Responses []string `json:"responses" yaml:"responses"`
}

// HasPatterns informa se o intent participa da passada de padrões.
func (e IntentEntry) HasPatterns() bool { return len(e.Patterns) > 0 }

// HasKeywords informa se o intent participa da passada de palavras-chave.
func (e IntentEntry) HasKeywords() bool { return len(e.Keywords) > 0 }

// Intent é um par (id, entrada) na ordem de inserção da base.
type Intent struct {
	ID    string
	Entry IntentEntry
}

// KnowledgeBase é um mapa ordenado de intent_id para IntentEntry.
// A ordem de inserção define a ordem de varredura do matcher.
type KnowledgeBase struct {
	intents []Intent
	index   map[string]int
}

// NewKnowledgeBase cria uma base vazia.
func NewKnowledgeBase() *KnowledgeBase {
	return &KnowledgeBase{index: make(map[string]int)}
}

// Add insere ou substitui um intent. Uma substituição mantém a posição original,
// do mesmo jeito que um objeto JSON com chave repetida.
func (kb *KnowledgeBase) Add(id string, entry IntentEntry) {
	entry = cloneEntry(entry)
	if i, ok := kb.index[id]; ok {
		kb.intents[i].Entry = entry
		return
	}
	kb.index[id] = len(kb.intents)
	kb.intents = append(kb.intents, Intent{ID: id, Entry: entry})
}

// Get retorna a entrada de um intent.
func (kb *KnowledgeBase) Get(id string) (IntentEntry, bool) {
	i, ok := kb.index[id]
	if !ok {
		return IntentEntry{}, false
	}
	return cloneEntry(kb.intents[i].Entry), true
}

// Len retorna o número de intents.
func (kb *KnowledgeBase) Len() int { return len(kb.intents) }

// IDs retorna os ids na ordem de inserção.
func (kb *KnowledgeBase) IDs() []string {
	ids := make([]string, len(kb.intents))
	for i, in := range kb.intents {
		ids[i] = in.ID
	}
	return ids
}

// Intents retorna uma cópia dos intents na ordem de inserção.
func (kb *KnowledgeBase) Intents() []Intent {
	out := make([]Intent, len(kb.intents))
	for i, in := range kb.intents {
		out[i] = Intent{ID: in.ID, Entry: cloneEntry(in.Entry)}
	}
	return out
}

// Each percorre os intents em ordem sem copiar. Parar quando fn retornar false.
func (kb *KnowledgeBase) Each(fn func(id string, entry IntentEntry) bool) {
	for _, in := range kb.intents {
		if !fn(in.ID, in.Entry) {
			return
		}
	}
}

func cloneEntry(e IntentEntry) IntentEntry {
	return IntentEntry{
		Patterns:  cloneStrings(e.Patterns),
		Keywords:  cloneStrings(e.Keywords),
		Responses: cloneStrings(e.Responses),
	}
}

func cloneStrings(s []string) []string {
	if s == nil {
		return nil
	}
	return append([]string(nil), s...)
}
