package filter

import (
	"sync"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

// Filter is a compiled expression. It is safe for concurrent use.
type Filter struct {
	expression  string
	program     *vm.Program
	helperFuncs map[string]any
}

var (
	defaultCompiler     *Compiler
	defaultCompilerOnce sync.Once
)

// Compile compiles expression with a shared, cached compiler.
func Compile(expression string) (*Filter, error) {
	defaultCompilerOnce.Do(func() {
		defaultCompiler = NewCompiler(WithCache(100))
	})
	return defaultCompiler.Compile(expression)
}

// Expression returns the original expression
func (f *Filter) Expression() string {
	return f.expression
}

// Evaluate runs the filter against record.
func (f *Filter) Evaluate(record Record) (bool, error) {
	result, err := expr.Run(f.program, runtimeEnvironment(f.helperFuncs, record))
	if err != nil {
		return false, &EvaluationError{
			Expression: f.expression,
			Reason:     "failed to evaluate expression",
			Err:        err,
		}
	}

	matched, _ := result.(bool)
	return matched, nil
}

// Match reports whether record passes. Evaluation errors count as no match.
func (f *Filter) Match(record Record) bool {
	matched, err := f.Evaluate(record)
	return err == nil && matched
}

// Apply returns the records that match, in their original order.
func (f *Filter) Apply(records []Record) []Record {
	var out []Record
	for _, record := range records {
		if f.Match(record) {
			out = append(out, record)
		}
	}
	return out
}
