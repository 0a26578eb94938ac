package ngdp

import (
	"fmt"
	"strings"
)

// Kind is the kind of a locator.
type Kind int

// Kind values.
const (
	KindCSS Kind = iota
	KindID
	KindName
	KindModel
	KindOptions
	KindRepeater
)

// String satisfies fmt.Stringer.
func (k Kind) String() string {
	switch k {
	case KindCSS:
		return "css"
	case KindID:
		return "id"
	case KindName:
		return "name"
	case KindModel:
		return "model"
	case KindOptions:
		return "options"
	case KindRepeater:
		return "repeater"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// ngPrefixes are the attribute prefixes Angular accepts for its directives.
var ngPrefixes = [...]string{"ng-", "ng_", "data-ng-", "x-ng-", `ng\:`}

// Locator locates document nodes. A Locator is compiled to a CSS selector
// group, so that every driver can resolve it with querySelectorAll.
//
// Actions given a bare Locator act on its first matching node; see Element for
// other positions.
type Locator struct {
	kind  Kind
	value string
	sel   []string

	// parent is set for locators built with Within.
	parent *Locator
}

// ByCSS locates nodes matching the CSS selector sel.
func ByCSS(sel string) Locator {
	return Locator{kind: KindCSS, value: sel, sel: []string{sel}}
}

// ByID locates nodes by their id attribute. Ids containing dots (for example
// "user.username") are matched as attributes rather than as #id selectors.
func ByID(id string) Locator {
	return Locator{kind: KindID, value: id, sel: []string{attr("id", "=", id)}}
}

// ByName locates form controls by their name attribute.
func ByName(name string) Locator {
	return Locator{kind: KindName, value: name, sel: []string{attr("name", "=", name)}}
}

// ByModel locates nodes bound to the model expression.
func ByModel(model string) Locator {
	return Locator{kind: KindModel, value: model, sel: ngAttr("model", "=", model, "")}
}

// ByOptions locates the option nodes generated by a select's options
// expression.
func ByOptions(options string) Locator {
	return Locator{kind: KindOptions, value: options, sel: ngAttr("options", "=", options, " option")}
}

// ByRepeater locates the nodes generated by a repeat expression. The
// repeater matches any repeat attribute containing the expression, so
// "item in items" matches "item in items | orderBy:'name'".
func ByRepeater(repeater string) Locator {
	sel := ngAttr("repeat", "*=", repeater, "")
	sel = append(sel, ngAttr("repeat-start", "*=", repeater, "")...)
	return Locator{kind: KindRepeater, value: repeater, sel: sel}
}

// Kind returns the locator kind.
func (l Locator) Kind() Kind {
	return l.kind
}

// Within returns a locator for the nodes matching child that are descendants
// of nodes matching l. As with querySelectorAll called on a parent node, the
// leading compound of child may match the parent node itself, so
// ByModel("m").Within(ByOptions("o")) locates the options of the select
// carrying both attributes.
func (l Locator) Within(child Locator) Locator {
	var sel []string
	for _, p := range l.sel {
		for _, c := range child.sel {
			sel = append(sel, p+" "+c)
			if sameElement(c) {
				sel = append(sel, p+c)
			}
		}
	}
	parent := l
	return Locator{kind: child.kind, value: child.value, sel: sel, parent: &parent}
}

// sameElement reports whether the leading compound of the selector c can be
// appended to another compound, ie it does not start with a type selector or
// a combinator.
func sameElement(c string) bool {
	return c != "" && strings.IndexByte("[.#:", c[0]) >= 0
}

// Selector returns the CSS selector group for the locator.
func (l Locator) Selector() string {
	return strings.Join(l.sel, ", ")
}

// String satisfies fmt.Stringer.
func (l Locator) String() string {
	s := fmt.Sprintf("by.%s(%q)", l.kind, l.value)
	if l.parent != nil {
		return l.parent.String() + "." + s
	}
	return s
}

// First returns the element for the first node matching l.
func (l Locator) First() Element {
	return Element{loc: l, pos: 0}
}

// Last returns the element for the last node matching l.
func (l Locator) Last() Element {
	return Element{loc: l, pos: Last}
}

// Nth returns the element for the i-th (zero based) node matching l.
func (l Locator) Nth(i int) Element {
	return Element{loc: l, pos: i}
}

func (l Locator) locator() Locator { return l }
func (l Locator) position() int    { return 0 }

// Last is the position of the last matching node.
const Last = -1

// Element is a single node position within a locator's matches.
type Element struct {
	loc Locator
	pos int
}

// Locator returns the element's locator.
func (e Element) Locator() Locator {
	return e.loc
}

// Position returns the element position: a zero based index, or Last.
func (e Element) Position() int {
	return e.pos
}

// String satisfies fmt.Stringer.
func (e Element) String() string {
	switch e.pos {
	case 0:
		return e.loc.String() + ".first()"
	case Last:
		return e.loc.String() + ".last()"
	}
	return fmt.Sprintf("%v.get(%d)", e.loc, e.pos)
}

func (e Element) locator() Locator { return e.loc }
func (e Element) position() int    { return e.pos }

// Query is either a Locator or an Element.
type Query interface {
	locator() Locator
	position() int
}

func validPosition(q Query) error {
	if p := q.position(); p < Last {
		return fmt.Errorf("%v: %w %d", q, ErrInvalidPosition, p)
	}
	return nil
}

// ngAttr builds the selectors for an Angular directive attribute across all
// accepted prefixes.
func ngAttr(name, op, value, suffix string) []string {
	sel := make([]string, 0, len(ngPrefixes))
	for _, p := range ngPrefixes {
		sel = append(sel, attr(p+name, op, value)+suffix)
	}
	return sel
}

// attr builds an attribute selector with a quoted value.
func attr(name, op, value string) string {
	return "[" + name + op + quote(value) + "]"
}

var quoteReplacer = strings.NewReplacer(`\`, `\\`, `"`, `\"`, "\n", `\a `)

// quote quotes s as a CSS string.
func quote(s string) string {
	return `"` + quoteReplacer.Replace(s) + `"`
}
