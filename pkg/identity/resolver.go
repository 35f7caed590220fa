package identity

import (
	"strings"

	"github.com/beevik/etree"
	"github.com/rs/zerolog"

	"github.com/agentstation/fullmeta/pkg/errors"
	"github.com/agentstation/fullmeta/pkg/logging"
)

// Resolver computes identity keys for the children of a metadata document.
type Resolver struct {
	mapping Mapping
	logger  *zerolog.Logger
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithLogger sets the logger used for malformed-element warnings.
func WithLogger(logger *zerolog.Logger) Option {
	return func(r *Resolver) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// NewResolver creates a Resolver for mapping.
func NewResolver(mapping Mapping, opts ...Option) *Resolver {
	r := &Resolver{
		mapping: mapping,
		logger:  logging.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Mapping returns the resolver's tag mapping.
func (r *Resolver) Mapping() Mapping {
	return r.mapping
}

// Check computes the key of e. Elements whose tag is not mergeable return
// the sentinel and a nil error. Mergeable elements without a non-empty
// identifier child return the sentinel and a MalformedElementError.
func (r *Resolver) Check(e *etree.Element) (Key, error) {
	children := e.ChildElements()
	idTag, ok := r.mapping.IdentifierTag(e.Tag, len(children))
	if !ok {
		return Sentinel, nil
	}

	for _, child := range children {
		if child.Tag != idTag {
			continue
		}
		value := strings.TrimSpace(child.Text())
		if value == "" {
			break
		}
		return Key{Tag: e.Tag, Value: value}, nil
	}

	return Sentinel, errors.NewMalformedElementError(e.Tag, idTag, position(e))
}

// Resolve computes the key of e, logging a warning for malformed elements.
// The boolean is false whenever the sentinel is returned.
func (r *Resolver) Resolve(e *etree.Element) (Key, bool) {
	key, err := r.Check(e)
	if err != nil {
		r.logger.Warn().
			Err(err).
			Str("tag", e.Tag).
			Msg("Element has no identifier, treating it as not mergeable")
		return Sentinel, false
	}
	return key, !key.IsSentinel()
}

// SortKey returns the key used to order e among its siblings. It never
// warns: non-mergeable and malformed elements sort as (tag, "").
func (r *Resolver) SortKey(e *etree.Element) Key {
	key, err := r.Check(e)
	if err != nil || key.IsSentinel() {
		return Key{Tag: e.Tag}
	}
	return key
}

// position returns e's index among its parent's child elements, or -1.
func position(e *etree.Element) int {
	parent := e.Parent()
	if parent == nil {
		return -1
	}
	for i, sibling := range parent.ChildElements() {
		if sibling == e {
			return i
		}
	}
	return -1
}
