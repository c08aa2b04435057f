// Package daf is a generic, multi-backend axis-indexed data repository for
// scalars, 1-D vectors, and 2-D matrices, together with a query language
// that slices, filters, chains, and reduces this data.
//
// Repositories are organized under user-defined named axes rather than a
// fixed row/column pair, so a single-cell genomics dataset (cells, genes,
// samples, …) can share one repository without forcing every measurement
// onto two axes. Everything under the hood is organized into small
// dedicated packages:
//
//	storage/    — the closed set of storable scalar kinds and dense/sparse containers
//	layout/     — matrix major/minor axis and the inefficient-access policy
//	naming/     — unique-name allocation, value rendering, error context
//	ops/        — the element-wise and reduction operation registry
//	format/     — the backend contract a storage adapter implements
//	memdb/      — the reference in-process backend
//	repo/       — the validated, lockable Repository facade
//	query/      — the lexer, AST, and evaluator for the query language
//
// daf itself re-exports the handful of names a caller touches most often —
// constructing a repository and running a query against it — the way the
// teacher's root package re-exports its subpackages' entry points.
//
//	r := daf.New("pbmc3k")
//	r.AddAxis("cell", []string{"c1", "c2", "c3"})
//	r.SetVector("cell", "age", ages)
//	result, err := daf.Query(r, "age @ cell & age > 15")
package daf

import (
	"github.com/daf-project/daf/query/ast"
	"github.com/daf-project/daf/query/eval"
	"github.com/daf-project/daf/repo"
)

// New creates an empty in-process Repository named name, backed by the
// reference memdb.Memory backend. It is a thin re-export of repo.New so
// callers who only need the default backend need not import repo directly.
func New(name string) *repo.Repository { return repo.New(name) }

// Parse parses a query string into its typed AST, as described in spec
// §4.H–§4.I. It is a thin re-export of ast.Parse.
func Parse(queryText string) (*ast.Query, error) { return ast.Parse(queryText) }

// Query parses and evaluates queryText against r in one step, returning the
// scalar, vector, or matrix result (spec §4.J). Most callers that do not
// need to cache or inspect the parsed AST should use this instead of
// calling Parse and eval.Query separately.
func Query(r repo.Reader, queryText string) (eval.Result, error) {
	q, err := ast.Parse(queryText)
	if err != nil {
		return eval.Result{}, err
	}

	return eval.Query(r, q)
}
