// Package persistedquery defines the abstract contract a host implements to
// resolve a persisted-query id to a previously registered query, without the
// core engine depending on any particular storage backend.
package persistedquery

import (
	"context"

	"github.com/nilsbr/gqlcore/ast"
	"github.com/nilsbr/gqlcore/parser"
	"github.com/nilsbr/gqlcore/schema"
	"github.com/nilsbr/gqlcore/validator"
)

// Kind discriminates the outcome of a Lookup call.
type Kind int

const (
	// Unknown means no query is registered under the requested id. The
	// usual client response is "PersistedQueryNotFound", prompting the
	// client to resend the full query text along with its hash so it can
	// be registered for next time.
	Unknown Kind = iota

	// ParseError means a query was registered under the id, but it failed
	// to parse; this should never happen for a store that validates on
	// registration, but a host-controlled store can't be assumed to.
	ParseError

	// ValidateErrors means the registered query parsed but failed
	// validation against the schema it's being looked up against.
	ValidateErrors

	// Result means a document was found and parsed. It has been validated
	// only if the store validated it itself, in which case Schema is set.
	Result
)

// LookupResult is the outcome of a Lookup call; which of its fields are
// meaningful is selected by Kind.
type LookupResult struct {
	Kind Kind

	// ParseErr is set when Kind is ParseError.
	ParseErr *parser.Error

	// ValidateErrs is set when Kind is ValidateErrors.
	ValidateErrs []*validator.Error

	// Document is set when Kind is Result. Schema is set too when the store
	// validated Document against it; otherwise Schema is nil.
	Schema   *schema.Schema
	Document *ast.Document
}

// Store resolves a persisted-query id to a LookupResult. Implementations are
// free to parse and validate eagerly (at registration time) or lazily (on
// first lookup); either way, Lookup must be safe for concurrent use.
type Store interface {
	Lookup(ctx context.Context, id string) (LookupResult, error)
}
