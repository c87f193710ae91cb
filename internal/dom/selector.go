package dom

import (
	"fmt"
	"strings"
	"sync"
)

// selector is a parsed selector list: a node matches when any compound
// matches. Combinators are not supported; the panel only needs compound
// selectors such as `button`, `.row`, `[data-row]` or `a[href].nav`.
type selector []compound

type compound struct {
	tag     string // upper-case, "" or "*" matches any
	id      string
	classes []string
	attrs   []attrTest
}

type attrTest struct {
	name     string
	value    string
	hasValue bool
}

var (
	selectorMu    sync.Mutex
	selectorCache = make(map[string]selector, 16)
)

// maxSelectorCache bounds the parsed selector cache. When exceeded the
// cache is flushed.
const maxSelectorCache = 128

func compile(src string) (selector, error) {
	selectorMu.Lock()
	defer selectorMu.Unlock()
	if s, ok := selectorCache[src]; ok {
		return s, nil
	}
	s, err := parseSelector(src)
	if err != nil {
		return nil, err
	}
	if len(selectorCache) >= maxSelectorCache {
		selectorCache = make(map[string]selector, 16)
	}
	selectorCache[src] = s
	return s, nil
}

func parseSelector(src string) (selector, error) {
	var out selector
	for _, part := range strings.Split(src, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			return nil, fmt.Errorf("empty selector in %q", src)
		}
		c, err := parseCompound(part)
		if err != nil {
			return nil, fmt.Errorf("parse selector %q: %w", src, err)
		}
		out = append(out, c)
	}
	return out, nil
}

func parseCompound(s string) (compound, error) {
	var c compound
	i := 0
	readIdent := func() string {
		start := i
		for i < len(s) && isIdentByte(s[i]) {
			i++
		}
		return s[start:i]
	}

	if i < len(s) && (s[i] == '*' || isIdentByte(s[i])) {
		if s[i] == '*' {
			i++
			c.tag = "*"
		} else {
			c.tag = strings.ToUpper(readIdent())
		}
	}

	for i < len(s) {
		switch s[i] {
		case '#':
			i++
			c.id = readIdent()
			if c.id == "" {
				return c, fmt.Errorf("missing id at %d", i)
			}
		case '.':
			i++
			cls := readIdent()
			if cls == "" {
				return c, fmt.Errorf("missing class at %d", i)
			}
			c.classes = append(c.classes, cls)
		case '[':
			end := strings.IndexByte(s[i:], ']')
			if end < 0 {
				return c, fmt.Errorf("unterminated attribute at %d", i)
			}
			body := s[i+1 : i+end]
			i += end + 1
			t := attrTest{name: strings.TrimSpace(body)}
			if eq := strings.IndexByte(body, '='); eq >= 0 {
				t.name = strings.TrimSpace(body[:eq])
				t.value = strings.Trim(strings.TrimSpace(body[eq+1:]), `"'`)
				t.hasValue = true
			}
			if t.name == "" {
				return c, fmt.Errorf("empty attribute name at %d", i)
			}
			c.attrs = append(c.attrs, t)
		default:
			return c, fmt.Errorf("unexpected %q at %d", s[i], i)
		}
	}
	return c, nil
}

func isIdentByte(b byte) bool {
	return b == '-' || b == '_' ||
		(b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || (b >= '0' && b <= '9')
}

func (s selector) match(n *Node) bool {
	for _, c := range s {
		if c.match(n) {
			return true
		}
	}
	return false
}

func (c compound) match(n *Node) bool {
	if !n.IsElement() {
		return false
	}
	if c.tag != "" && c.tag != "*" && c.tag != n.Tag {
		return false
	}
	if c.id != "" && c.id != n.ID {
		return false
	}
	for _, cls := range c.classes {
		if !n.HasClass(cls) {
			return false
		}
	}
	for _, a := range c.attrs {
		v, ok := n.Attrs[a.name]
		if !ok || (a.hasValue && v != a.value) {
			return false
		}
	}
	return true
}
