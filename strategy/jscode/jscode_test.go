package jscode

import (
	"context"
	"testing"

	"github.com/jeswr/components-go/logging"
	"github.com/jeswr/components-go/strategy"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateInstanceInvokesNamedFunction(t *testing.T) {
	s := New(logging.Discard())
	require.NoError(t, s.LoadModuleScript(`function greet(name) { return "hello " + name; }`))

	v, err := s.CreateInstance(context.Background(), "greet", []any{"world"}, &strategy.Settings{})
	require.NoError(t, err)
	assert.Equal(t, "hello world", v)
}

func TestCreateInstanceUnknownFunction(t *testing.T) {
	s := New(logging.Discard())
	_, err := s.CreateInstance(context.Background(), "missing", nil, &strategy.Settings{})
	assert.Error(t, err)
}

func TestCreateInstanceAsFunctionDefers(t *testing.T) {
	s := New(logging.Discard())
	require.NoError(t, s.LoadModuleScript(`function echo(v) { return v; }`))

	v, err := s.CreateInstance(context.Background(), "echo", []any{"deferred"}, &strategy.Settings{AsFunction: true})
	require.NoError(t, err)
	fn, ok := v.(func() (any, error))
	require.True(t, ok)

	result, err := fn()
	require.NoError(t, err)
	assert.Equal(t, "deferred", result)
}

func TestCreateInstanceSerializationsRendersSource(t *testing.T) {
	s := New(logging.Discard())

	v, err := s.CreateInstance(context.Background(), "greet", []any{"world", []any{int64(1), int64(2)}, map[string]any{"b": "y", "a": "x"}}, &strategy.Settings{Serializations: true})
	require.NoError(t, err)
	assert.Equal(t, jsExpr(`greet("world", [1, 2], {"a": "x", "b": "y"})`), v)
}

func TestCreateInstanceSerializationsNestsRenderedCalls(t *testing.T) {
	s := New(logging.Discard())

	nested, err := s.CreateInstance(context.Background(), "inner", []any{"x"}, &strategy.Settings{Serializations: true})
	require.NoError(t, err)

	outer, err := s.CreateInstance(context.Background(), "outer", []any{nested}, &strategy.Settings{Serializations: true})
	require.NoError(t, err)
	assert.Equal(t, jsExpr(`outer(inner("x"))`), outer)
}

func TestLoadModuleScriptIsIdempotent(t *testing.T) {
	s := New(logging.Discard())
	require.NoError(t, s.LoadModuleScript(`var calls = (typeof calls === "undefined") ? 0 : calls; calls++;`))
	require.NoError(t, s.LoadModuleScript(`var calls = (typeof calls === "undefined") ? 0 : calls; calls++;`))

	v := s.vm.Get("calls")
	assert.Equal(t, int64(1), v.ToInteger())
}

func TestLoadModuleScriptCompileError(t *testing.T) {
	s := New(logging.Discard())
	err := s.LoadModuleScript(`function broken( {`)
	assert.Error(t, err)
}

func TestCoercePrimitiveMirrorsRuntime(t *testing.T) {
	assert.Equal(t, int64(7), coercePrimitive("7", xsdInteger))
	assert.Equal(t, "plain", coercePrimitive("plain", ""))
}
