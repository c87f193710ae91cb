package click

import (
	"math"
	"strings"

	"github.com/Akashdeep-Patra/modpanel/internal/host"
)

// Default selectors.
const (
	DefaultInteractiveSelector = "button, a, input, select, textarea, label, summary, [role=button], [data-action], .clickable"
	DefaultRowSelector         = "[data-row]"
)

// Score weights. Higher wins.
const (
	scoreInRoot      = 100
	scoreInteractive = 60
	scoreHasAncestor = 25
	scoreInRow       = 5
	scoreTopLevel    = -5
)

// Unresolved is the score of a target that is not an element.
var Unresolved = math.Inf(-1)

// Selectors names the element classes scoring cares about.
type Selectors struct {
	Interactive string
	Row         string
}

func (s Selectors) withDefaults() Selectors {
	if s.Interactive == "" {
		s.Interactive = DefaultInteractiveSelector
	}
	if s.Row == "" {
		s.Row = DefaultRowSelector
	}
	return s
}

// Score rates how plausible it is that n is what the user meant to click.
// Capabilities n or root lack simply contribute nothing.
func Score(n host.Node, root host.Element, sel Selectors) float64 {
	el := host.AsElement(n)
	if el == nil {
		return Unresolved
	}
	sel = sel.withDefaults()

	s := 0.0
	if root != nil {
		if c, ok := root.(host.Container); ok {
			if c.Contains(el) {
				s += scoreInRoot
			} else {
				s -= scoreInRoot
			}
		}
	}
	if m, ok := el.(host.Matcher); ok && m.Matches(sel.Interactive) {
		s += scoreInteractive
	}
	if a, ok := el.(host.Ancestry); ok {
		if a.Closest(sel.Interactive) != nil {
			s += scoreHasAncestor
		}
		if a.Closest(sel.Row) != nil {
			s += scoreInRow
		}
	}
	switch strings.ToUpper(el.TagName()) {
	case "HTML", "BODY":
		s += scoreTopLevel
	}
	return s
}

// Interactive returns the nearest interactive ancestor-or-self of n, or nil.
func Interactive(n host.Node, sel Selectors) host.Element {
	el := host.AsElement(n)
	if el == nil {
		return nil
	}
	sel = sel.withDefaults()
	if a, ok := el.(host.Ancestry); ok {
		return a.Closest(sel.Interactive)
	}
	if m, ok := el.(host.Matcher); ok && m.Matches(sel.Interactive) {
		return el
	}
	return nil
}
