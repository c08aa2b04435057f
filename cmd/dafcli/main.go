// Command dafcli is a small demonstration binary for the daf repository and
// query engine. It is not part of the core library surface (spec §6 names
// no CLI at the core level); it exists to exercise the public API
// end-to-end the way the teacher's examples package exercises core.Graph,
// using github.com/alecthomas/kong for flag/command parsing.
package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/daf-project/daf"
	"github.com/daf-project/daf/query/ast"
	"github.com/daf-project/daf/repo"
	"github.com/daf-project/daf/storage"
)

// cli is the root command tree. The query and describe subcommands build
// the same demonstration repository from spec §8 scenario 1–2: query runs
// one query against it and prints a summary of the result, describe prints
// the repository's shape. canon only parses a query and prints its
// canonical form.
type cli struct {
	Verbose bool `help:"Enable debug-level logging." short:"v"`

	Query    queryCmd    `cmd:"" help:"Build the demo repository and run one query against it."`
	Canon    canonCmd    `cmd:"" help:"Print a query string's canonical form without evaluating it."`
	Describe describeCmd `cmd:"" help:"Print the demo repository's shape."`
}

type queryCmd struct {
	Expr string `arg:"" help:"Query text, e.g. 'age @ cell & age > 15'."`
}

type canonCmd struct {
	Expr string `arg:"" help:"Query text to canonicalize."`
}

type describeCmd struct{}

func main() {
	var c cli
	ctx := kong.Parse(&c,
		kong.Name("dafcli"),
		kong.Description("Demonstration CLI for the daf axis-indexed data repository."),
		kong.UsageOnError(),
	)

	if c.Verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	err := ctx.Run()
	ctx.FatalIfErrorf(err)
}

// Run executes `dafcli query <expr>`.
func (q *queryCmd) Run() error {
	r := demoRepository()

	result, err := daf.Query(r, q.Expr)
	if err != nil {
		return fmt.Errorf("evaluating %q: %w", q.Expr, err)
	}

	if result.Absent {
		fmt.Println("<absent>")
		return nil
	}

	switch result.Kind {
	case ast.KindScalar:
		fmt.Println(result.Scalar.Present())
	case ast.KindVector:
		fmt.Printf("Vector[%s](len=%d)\n", result.Vector.Kind(), result.Vector.Len())
	case ast.KindMatrix:
		fmt.Printf("Matrix[%s](%dx%d, %s)\n",
			result.Matrix.Kind(), result.Matrix.Rows(), result.Matrix.Cols(), result.Matrix.Form())
	}

	log.Debug().Str("query", q.Expr).Msg("dafcli: query evaluated")

	return nil
}

// Run executes `dafcli canon <expr>`.
func (c *canonCmd) Run() error {
	node, err := daf.Parse(c.Expr)
	if err != nil {
		return fmt.Errorf("parsing %q: %w", c.Expr, err)
	}

	fmt.Println(ast.Canonical(node))

	return nil
}

// Run executes `dafcli describe`.
func (d *describeCmd) Run() error {
	r := demoRepository()
	fmt.Print(r.Describe())

	return nil
}

// demoRepository builds the small repository used throughout spec §8's
// end-to-end scenarios: three cells with an age vector and a type axis
// chained through a color property.
func demoRepository() *repo.Repository {
	r := daf.New("demo")

	must(r.AddAxis("cell", []string{"c1", "c2", "c3"}))
	must(r.SetVector("cell", "age", mustIntArray(64, 10, 20, 30)))

	must(r.AddAxis("type", []string{"T", "B"}))
	must(r.SetVector("cell", "type", mustStringArray("T", "B", "T")))
	must(r.SetVector("type", "color", mustStringArray("red", "blue")))

	return r
}

func must(err error) {
	if err != nil {
		fmt.Fprintln(os.Stderr, "dafcli: demo setup:", err)
		os.Exit(1)
	}
}

func mustIntArray(width int, values ...int64) *storage.Array {
	kind := storage.KindInt64
	switch width {
	case 8:
		kind = storage.KindInt8
	case 16:
		kind = storage.KindInt16
	case 32:
		kind = storage.KindInt32
	}

	a, err := storage.NewArray(kind, len(values))
	must(err)
	for i, v := range values {
		sc, err := storage.NewInt(width, v)
		must(err)
		must(a.Set(i, sc))
	}

	return a
}

func mustStringArray(values ...string) *storage.Array {
	a, err := storage.NewArray(storage.KindString, len(values))
	must(err)
	for i, v := range values {
		must(a.Set(i, storage.NewString(v)))
	}

	return a
}
