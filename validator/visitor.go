package validator

import (
	"github.com/nilsbr/gqlcore/ast"
	"github.com/nilsbr/gqlcore/schema"
)

// Action tells Walk how to proceed after a Visitor's Enter or Leave callback
// runs.
type Action int

const (
	// Continue descends into (or resumes after) the current node normally.
	Continue Action = iota

	// Skip stops this Visitor from seeing the rest of the current node's
	// subtree (including the node's own Leave callback), without
	// affecting any other Visitor sharing the same Walk.
	Skip

	// Break halts the entire Walk immediately, for every Visitor.
	Break

	// Replace is reserved for future AST-transforming visitors. No rule in
	// this package returns it, and Walk treats it the same as Continue.
	Replace
)

// Context carries the shared state every validation rule needs: the
// document and schema being checked, the precomputed TypeInfo, the feature
// set gating visibility, and the accumulated error list.
type Context struct {
	Document *ast.Document
	Schema   *schema.Schema
	TypeInfo *TypeInfo
	Features schema.FeatureSet

	errors []*Error
}

func (c *Context) ReportError(err *Error) {
	c.errors = append(c.errors, err)
}

func (c *Context) Errors() []*Error {
	return c.errors
}

// Visitor is a rule's interest in a single-pass traversal of a document.
// Enter and Leave may be nil, meaning "no interest in this event." Both
// receive the Context so they can report errors and consult TypeInfo.
type Visitor struct {
	Enter func(*Context, ast.Node) Action
	Leave func(*Context, ast.Node) Action
}

// Walk drives a single ast.Inspect traversal of c.Document, dispatching
// every node to every visitor's Enter callback and, on the way back out,
// its Leave callback. A visitor that returns Skip stops receiving callbacks
// for the remainder of the current node's subtree (and its own Leave), but
// every other visitor keeps going; this lets unrelated rules share one
// traversal instead of each rescanning the whole document. Any visitor
// returning Break halts the walk for everyone.
func Walk(c *Context, visitors []*Visitor) {
	depth := 0
	skipDepth := make([]int, len(visitors))
	for i := range skipDepth {
		skipDepth[i] = -1
	}
	broken := false

	ast.Inspect(c.Document, func(node ast.Node) bool {
		if broken {
			return false
		}

		if node == nil {
			depth--
			for i, v := range visitors {
				if skipDepth[i] == depth {
					skipDepth[i] = -1
					continue
				}
				if skipDepth[i] >= 0 || v.Leave == nil {
					continue
				}
				if v.Leave(c, node) == Break {
					broken = true
				}
			}
			return true
		}

		for i, v := range visitors {
			if skipDepth[i] >= 0 || v.Enter == nil {
				continue
			}
			switch v.Enter(c, node) {
			case Skip:
				skipDepth[i] = depth
			case Break:
				broken = true
			}
		}
		depth++
		return true
	})
}
