// staticlint is the project's multichecker. It bundles a selection of
// go/analysis passes, the staticcheck SA set plus a few S/ST checks,
// go-critic, bodyclose and a local analyzer flagging direct os.Exit calls
// in main.
//
// Run it with:
//
//	staticlint ./...
package main

import (
	"go/ast"

	"github.com/go-critic/go-critic/checkers/analyzer"
	"github.com/timakin/bodyclose/passes/bodyclose"
	"golang.org/x/tools/go/analysis"
	"golang.org/x/tools/go/analysis/multichecker"
	"golang.org/x/tools/go/analysis/passes/nilfunc"
	"golang.org/x/tools/go/analysis/passes/printf"
	"golang.org/x/tools/go/analysis/passes/shadow"
	"golang.org/x/tools/go/analysis/passes/structtag"
	"honnef.co/go/tools/simple"
	"honnef.co/go/tools/staticcheck"
	"honnef.co/go/tools/stylecheck"
)

var osExitCheck = &analysis.Analyzer{
	Name: "osExitCheck",
	Doc:  "reports direct os.Exit calls in the main function of package main",
	Run:  runOsExitCheck,
}

func main() {
	picked := map[string]bool{
		"S1000":  true,
		"S1002":  true,
		"S1005":  true,
		"ST1003": true,
		"ST1005": true,
	}

	checks := []*analysis.Analyzer{
		printf.Analyzer,
		shadow.Analyzer,
		structtag.Analyzer,
		nilfunc.Analyzer,
		bodyclose.Analyzer,
		analyzer.Analyzer,
		osExitCheck,
	}

	for _, a := range staticcheck.Analyzers {
		checks = append(checks, a.Analyzer)
	}
	for _, a := range simple.Analyzers {
		if picked[a.Analyzer.Name] {
			checks = append(checks, a.Analyzer)
		}
	}
	for _, a := range stylecheck.Analyzers {
		if picked[a.Analyzer.Name] {
			checks = append(checks, a.Analyzer)
		}
	}

	multichecker.Main(checks...)
}

func runOsExitCheck(pass *analysis.Pass) (any, error) {
	if pass.Pkg.Name() != "main" {
		return nil, nil
	}

	for _, f := range pass.Files {
		for _, decl := range f.Decls {
			fn, ok := decl.(*ast.FuncDecl)
			if !ok || fn.Name.Name != "main" || fn.Body == nil {
				continue
			}

			ast.Inspect(fn.Body, func(n ast.Node) bool {
				call, ok := n.(*ast.CallExpr)
				if !ok {
					return true
				}
				sel, ok := call.Fun.(*ast.SelectorExpr)
				if !ok {
					return true
				}
				if pkg, ok := sel.X.(*ast.Ident); ok && pkg.Name == "os" && sel.Sel.Name == "Exit" {
					pass.Reportf(call.Pos(), "os.Exit should not be called directly in main")
				}

				return true
			})
		}
	}

	return nil, nil
}
