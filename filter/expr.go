package filter

import (
	"maps"
	"strconv"
	"strings"
	"time"

	"github.com/expr-lang/expr"
)

// Option configures a Compiler
type Option func(*Compiler)

// WithCache enables filter caching with the specified size
func WithCache(size int) Option {
	return func(c *Compiler) {
		if size > 0 {
			c.cache = newLRUCache(size)
		}
	}
}

// WithCustomFunctions adds custom helper functions
func WithCustomFunctions(funcs map[string]any) Option {
	return func(c *Compiler) {
		maps.Copy(c.helperFuncs, funcs)
	}
}

// Compiler turns expressions into Filters.
type Compiler struct {
	helperFuncs map[string]any
	cache       *lruCache
}

// NewCompiler creates an expr-based filter compiler
func NewCompiler(opts ...Option) *Compiler {
	c := &Compiler{
		helperFuncs: createHelperFunctions(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Compile compiles an expression into an executable filter
func (c *Compiler) Compile(expression string) (*Filter, error) {
	expression = strings.TrimSpace(expression)
	if expression == "" {
		return nil, &CompilationError{
			Expression: expression,
			Reason:     "empty expression",
		}
	}

	if c.cache != nil {
		if cached, ok := c.cache.get(expression); ok {
			return cached, nil
		}
	}

	// Record fields are not known until evaluation.
	program, err := expr.Compile(expression,
		expr.Env(compileEnvironment(c.helperFuncs)),
		expr.AllowUndefinedVariables(),
		expr.AsBool(),
	)
	if err != nil {
		return nil, &CompilationError{
			Expression: expression,
			Reason:     "failed to compile expression",
			Err:        err,
		}
	}

	f := &Filter{
		expression:  expression,
		program:     program,
		helperFuncs: c.helperFuncs,
	}

	if c.cache != nil {
		c.cache.put(expression, f)
	}

	return f, nil
}

// Clear removes all cached filters
func (c *Compiler) Clear() {
	if c.cache != nil {
		c.cache.clear()
	}
}

// Size returns the number of cached filters
func (c *Compiler) Size() int {
	if c.cache != nil {
		return c.cache.count()
	}
	return 0
}

func createHelperFunctions() map[string]any {
	funcs := make(map[string]any, 16)

	// Date helpers
	funcs["daysSince"] = func(t time.Time) int {
		return int(time.Since(t).Hours() / 24)
	}
	funcs["daysAgo"] = func(days int) time.Time {
		return time.Now().AddDate(0, 0, -days)
	}
	funcs["fromMillis"] = fromMillis
	funcs["parseDate"] = parseDate
	funcs["now"] = time.Now

	// String helpers
	funcs["contains"] = func(str, substr string) bool {
		return strings.Contains(strings.ToLower(str), strings.ToLower(substr))
	}
	funcs["startsWith"] = func(str, prefix string) bool {
		return strings.HasPrefix(strings.ToLower(str), strings.ToLower(prefix))
	}
	funcs["endsWith"] = func(str, suffix string) bool {
		return strings.HasSuffix(strings.ToLower(str), strings.ToLower(suffix))
	}
	funcs["lower"] = strings.ToLower
	funcs["upper"] = strings.ToUpper

	return funcs
}

// compileEnvironment declares helpers plus the record-bound names so calls
// are type checked at compile time.
func compileEnvironment(helpers map[string]any) map[string]any {
	env := make(map[string]any, len(helpers)+2)
	maps.Copy(env, helpers)
	env["record"] = Record{}
	env["has"] = func(string) bool { return false }
	return env
}

// runtimeEnvironment exposes every record field as a variable. Helpers win
// over fields with the same name; such fields stay reachable via record["name"].
func runtimeEnvironment(helpers map[string]any, record Record) map[string]any {
	env := make(map[string]any, len(record)+len(helpers)+2)
	maps.Copy(env, record)
	maps.Copy(env, helpers)
	env["record"] = record
	env["has"] = func(key string) bool {
		v, ok := record[key]
		return ok && v != nil
	}
	return env
}

// fromMillis converts an epoch-milliseconds value, as returned by the API, to a time.
func fromMillis(v any) time.Time {
	var ms int64
	switch n := v.(type) {
	case float64:
		ms = int64(n)
	case int64:
		ms = n
	case int:
		ms = int64(n)
	case string:
		parsed, err := strconv.ParseInt(n, 10, 64)
		if err != nil {
			return time.Time{}
		}
		ms = parsed
	default:
		return time.Time{}
	}
	return time.UnixMilli(ms)
}

func parseDate(s string) time.Time {
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
