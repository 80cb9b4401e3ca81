// Package main запускает multichecker для статического анализа проекта.
//
// Состав:
// - стандартные анализаторы go/analysis/passes
// - все SA-анализаторы staticcheck
// - S1000 и U1000 из staticcheck
// - публичный анализатор bodyclose (незакрытые тела HTTP-ответов)
// - собственный анализатор noexit (запрещает os.Exit в main)
//
// Запуск:
//
//	go run ./cmd/staticlint ./...
package main

import (
	"strings"

	"github.com/timakin/bodyclose/passes/bodyclose"
	"golang.org/x/tools/go/analysis"
	"golang.org/x/tools/go/analysis/multichecker"
	"golang.org/x/tools/go/analysis/passes/nilness"
	"golang.org/x/tools/go/analysis/passes/printf"
	"golang.org/x/tools/go/analysis/passes/shadow"
	"golang.org/x/tools/go/analysis/passes/structtag"
	"honnef.co/go/tools/staticcheck"

	"github.com/Totarae/FlowcodeBatch/cmd/staticlint/noexit"
)

// extraChecks — не-SA проверки staticcheck, которые включаем поименно.
var extraChecks = map[string]bool{
	"S1000": true, // упрощения
	"U1000": true, // неиспользуемый код
}

func main() {
	analyzers := []*analysis.Analyzer{
		shadow.Analyzer,
		structtag.Analyzer,
		nilness.Analyzer,
		printf.Analyzer,
	}

	for _, a := range staticcheck.Analyzers {
		if strings.HasPrefix(a.Analyzer.Name, "SA") || extraChecks[a.Analyzer.Name] {
			analyzers = append(analyzers, a.Analyzer)
		}
	}

	// Для клиента API особенно важны незакрытые тела ответов
	analyzers = append(analyzers, bodyclose.Analyzer)

	analyzers = append(analyzers, noexit.NewAnalyzer())

	multichecker.Main(analyzers...)
}
