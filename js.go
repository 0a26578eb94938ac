package ngdp

import (
	_ "embed"
	"encoding/json"
	"fmt"
)

// Javascript functions shared by the drivers. Each is the source of a single
// anonymous function.
var (
	// ClearJS empties the value of the element passed as its argument and
	// dispatches input and change events. It returns false when the element
	// has no value.
	//go:embed js/clear.js
	ClearJS string

	// SelectOptionJS selects the option element passed as its argument in
	// its enclosing select and dispatches input and change events. It
	// returns false when the argument is not an option of a select.
	//go:embed js/selectOption.js
	SelectOptionJS string

	// NoneVisibleJS returns true when no node matching the selector passed
	// as its argument has a layout box (ie, offsetWidth || offsetHeight ||
	// getClientRects().length).
	//go:embed js/noneVisible.js
	NoneVisibleJS string

	// elementAtJS returns the node at a position within the matches of a
	// selector, with negative positions counting from the end.
	//go:embed js/elementAt.js
	elementAtJS string
)

// ElementExpr returns a Javascript expression evaluating to the node at pos
// among the nodes matching sel, or undefined when there is no such node.
func ElementExpr(sel string, pos int) string {
	return CallExpr(elementAtJS, sel, pos)
}

// CallExpr returns a Javascript expression calling the function source fn
// with the JSON encoded args.
func CallExpr(fn string, args ...interface{}) string {
	s := "(" + fn + ")("
	for i, arg := range args {
		if i > 0 {
			s += ", "
		}
		buf, err := json.Marshal(arg)
		if err != nil {
			panic(fmt.Sprintf("could not encode %T argument: %v", arg, err))
		}
		s += string(buf)
	}
	return s + ")"
}

// ApplyExpr returns a Javascript expression calling the function source fn
// with the value of the Javascript expression expr.
func ApplyExpr(fn, expr string) string {
	return "(" + fn + ")(" + expr + ")"
}
