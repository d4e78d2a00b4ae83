package suggest

import (
	"strings"

	"ragclient/internal/domain"
)

// DefaultLimit is the maximum number of suggestions returned.
const DefaultLimit = 5

// DefaultCurated is offered before anything from history.
var DefaultCurated = []string{
	"Who is Daniel Radcliffe and why is he famous?",
	"What did Daniel Radcliffe do when he turned 18?",
	"How much money did Daniel Radcliffe inherit?",
	"What are Daniel Radcliffe's spending habits?",
	"Which movies has Daniel Radcliffe acted in besides Harry Potter?",
	"What is the plot of 'December Boys'?",
	"What is the TV film 'My Boy Jack' about?",
	"When did Daniel Radcliffe debut on stage?",
	"What records did 'Harry Potter and the Order of the Phoenix' break?",
	"How does Daniel Radcliffe deal with fame and media attention?",
	"What is the 'forgotten floor' in Miami-Dade jail?",
	"Why are mentally ill inmates kept on the ninth floor in Miami?",
	"Who is Judge Steven Leifman?",
	"Florida happenings",
	"What are 'avoidable felonies' and how do they happen?",
	"How do police confrontations affect mentally ill suspects?",
	"What is the mental health crisis in US jails?",
	"What crimes do many mentally ill inmates in Miami face?",
	"How does lack of treatment affect inmates with mental illness?",
	"What role does Soledad O'Brien play in covering this story?",
	"What reforms are proposed for handling mentally ill offenders?",
}

// Engine matches partial input against the curated list and query history.
type Engine struct {
	curated []string
	history domain.HistorySource
	limit   int
}

// New builds an Engine. A nil curated list means DefaultCurated; history may
// be nil.
func New(curated []string, history domain.HistorySource, limit int) *Engine {
	if curated == nil {
		curated = DefaultCurated
	}
	if limit <= 0 {
		limit = DefaultLimit
	}
	return &Engine{curated: curated, history: history, limit: limit}
}

// Suggest returns up to limit candidates containing partial, case-insensitive.
// Curated entries come first, then history; duplicates keep their first
// position. An empty partial matches everything.
func (e *Engine) Suggest(partial string) []string {
	needle := strings.ToLower(partial)
	out := make([]string, 0, e.limit)
	for _, candidate := range e.union() {
		if len(out) == e.limit {
			break
		}
		if strings.Contains(strings.ToLower(candidate), needle) {
			out = append(out, candidate)
		}
	}
	return out
}

func (e *Engine) union() []string {
	var hist []string
	if e.history != nil {
		hist = e.history.Load()
	}
	seen := make(map[string]struct{}, len(e.curated)+len(hist))
	all := make([]string, 0, len(e.curated)+len(hist))
	for _, src := range [][]string{e.curated, hist} {
		for _, s := range src {
			if _, ok := seen[s]; ok {
				continue
			}
			seen[s] = struct{}{}
			all = append(all, s)
		}
	}
	return all
}
