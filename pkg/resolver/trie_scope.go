package resolver

import (
	"log"
	"sort"
	"strings"

	"github.com/dghubble/trie"
)

// TrieScope implements Scope using a path trie segmented on "::".  Crate
// export tables are TrieScopes: write-once at load time, read-only after.
type TrieScope struct {
	trie *trie.PathTrie
	subs map[string]Scope
}

// NewTrieScope constructs an empty TrieScope.
func NewTrieScope() *TrieScope {
	return &TrieScope{
		trie: trie.NewPathTrieWithConfig(&trie.PathTrieConfig{
			Segmenter: pathSegmenter,
		}),
		subs: make(map[string]Scope),
	}
}

// GetSymbols implements part of the resolver.Scope interface.
func (r *TrieScope) GetSymbols(prefix string) (symbols []*Symbol) {
	r.trie.Walk(func(key string, value interface{}) error {
		if prefix == "" || key == prefix || strings.HasPrefix(key, prefix+"::") {
			symbols = append(symbols, value.(*Symbol))
		}
		return nil
	})
	sort.Slice(symbols, func(i, j int) bool {
		return symbols[i].Name < symbols[j].Name
	})
	return
}

// GetSymbol implements part of the resolver.Scope interface.
func (r *TrieScope) GetSymbol(name string) (*Symbol, bool) {
	value := r.trie.Get(name)
	if value == nil {
		return nil, false
	}
	return value.(*Symbol), true
}

// GetScope implements part of the resolver.Scope interface.
func (r *TrieScope) GetScope(name string) (Scope, bool) {
	scope, ok := r.subs[name]
	return scope, ok
}

// PutSymbol implements part of the Scope interface.
func (r *TrieScope) PutSymbol(symbol *Symbol) error {
	if symbol.Provider == "" {
		log.Panicf("fatal (missing provider): %+v", symbol)
	}
	key := lastSegment(symbol.Name)
	if existing := r.trie.Get(key); existing != nil {
		return &DuplicateDeclarationError{
			Name:  key,
			Scope: symbol.Provider,
		}
	}
	r.trie.Put(key, symbol)
	return nil
}

// PutScope binds a nested namespace under the given name.
func (r *TrieScope) PutScope(name string, scope Scope) {
	r.subs[name] = scope
}

// String implements the fmt.Stringer interface.
func (r *TrieScope) String() string {
	var names []string
	r.trie.Walk(func(key string, value interface{}) error {
		names = append(names, value.(*Symbol).String())
		return nil
	})
	sort.Strings(names)
	return strings.Join(names, "\n")
}

// pathSegmenter segments string key paths by "::" separators.  For example,
// "a::b::c" -> ("a", 3), ("b", 6), ("c", -1) in successive calls.
func pathSegmenter(path string, start int) (segment string, next int) {
	if len(path) == 0 || start < 0 || start > len(path)-1 {
		return "", -1
	}
	end := strings.Index(path[start:], "::")
	if end == -1 {
		return path[start:], -1
	}
	return path[start : start+end], start + end + 2
}

// lastSegment returns the final "::"-separated segment of a qualified name.
func lastSegment(name string) string {
	if index := strings.LastIndex(name, "::"); index >= 0 {
		return name[index+2:]
	}
	return name
}
