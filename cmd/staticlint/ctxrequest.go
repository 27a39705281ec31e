package main

import (
	"go/ast"
	"go/types"
	"strings"

	"golang.org/x/tools/go/analysis"
	"golang.org/x/tools/go/analysis/passes/inspect"
	"golang.org/x/tools/go/ast/inspector"
)

// contextlessCalls - функции net/http, выполняющие запрос без контекста
var contextlessCalls = map[string]string{
	"NewRequest": "use http.NewRequestWithContext",
	"Get":        "build the request with http.NewRequestWithContext",
	"Post":       "build the request with http.NewRequestWithContext",
	"Head":       "build the request with http.NewRequestWithContext",
	"PostForm":   "build the request with http.NewRequestWithContext",
}

// CtxRequestAnalyzer находит исходящие HTTP-запросы без контекста.
// Запросы к генератору изображений и скачивание должны отменяться вместе с входящим запросом.
// Тестовые файлы не проверяются.
var CtxRequestAnalyzer = &analysis.Analyzer{
	Name:     "ctxrequest",
	Doc:      "reports outgoing net/http requests created without a context",
	Run:      runCtxRequestCheck,
	Requires: []*analysis.Analyzer{inspect.Analyzer},
}

func runCtxRequestCheck(pass *analysis.Pass) (interface{}, error) {
	insp := pass.ResultOf[inspect.Analyzer].(*inspector.Inspector)

	insp.Preorder([]ast.Node{(*ast.CallExpr)(nil)}, func(node ast.Node) {
		call := node.(*ast.CallExpr)
		if strings.HasSuffix(pass.Fset.Position(call.Pos()).Filename, "_test.go") {
			return
		}
		for name, hint := range contextlessCalls {
			if isPkgCall(pass, call, "net/http", name) {
				pass.Reportf(call.Pos(), "http.%s does not carry a context; %s", name, hint)
				return
			}
		}
	})

	return nil, nil
}

// isPkgCall сообщает, является ли вызов обращением к функции pkgPath.name
func isPkgCall(pass *analysis.Pass, call *ast.CallExpr, pkgPath, name string) bool {
	sel, ok := call.Fun.(*ast.SelectorExpr)
	if !ok || sel.Sel.Name != name {
		return false
	}
	ident, ok := sel.X.(*ast.Ident)
	if !ok {
		return false
	}
	pkgName, ok := pass.TypesInfo.Uses[ident].(*types.PkgName)
	return ok && pkgName.Imported().Path() == pkgPath
}
