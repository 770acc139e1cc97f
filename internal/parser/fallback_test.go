package parser_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gstbill/internal/config"
	"gstbill/internal/parser"
	"gstbill/internal/port"
)

// stubParser returns a fixed output or error and counts invocations.
type stubParser struct {
	out   *port.ParseOutput
	err   error
	calls int
}

func (s *stubParser) Parse(ctx context.Context, input port.ParseInput) (*port.ParseOutput, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.out, nil
}

func TestFallbackParser_FirstParserSucceeds(t *testing.T) {
	first := &stubParser{out: &port.ParseOutput{RawJSON: []byte(`{"po":"1"}`), ModelUsed: "a"}}
	second := &stubParser{out: &port.ParseOutput{RawJSON: []byte(`{"po":"2"}`), ModelUsed: "b"}}

	f := parser.NewFallbackParser(
		[]port.DocumentParser{first, second},
		[]string{"first", "second"},
	)

	out, err := f.Parse(context.Background(), port.ParseInput{})
	require.NoError(t, err)
	assert.Equal(t, "a", out.ModelUsed)
	assert.Equal(t, 1, first.calls)
	assert.Equal(t, 0, second.calls)
}

func TestFallbackParser_FallsThroughOnError(t *testing.T) {
	first := &stubParser{err: errors.New("boom")}
	second := &stubParser{out: &port.ParseOutput{RawJSON: []byte(`{}`), ModelUsed: "b"}}

	f := parser.NewFallbackParser(
		[]port.DocumentParser{first, second},
		[]string{"first", "second"},
	)

	out, err := f.Parse(context.Background(), port.ParseInput{})
	require.NoError(t, err)
	assert.Equal(t, "b", out.ModelUsed)
	assert.Equal(t, 1, first.calls)
	assert.Equal(t, 1, second.calls)
}

func TestFallbackParser_AllFail(t *testing.T) {
	first := &stubParser{err: errors.New("first down")}
	second := &stubParser{err: errors.New("second down")}

	f := parser.NewFallbackParser(
		[]port.DocumentParser{first, second},
		[]string{"first", "second"},
	)

	_, err := f.Parse(context.Background(), port.ParseInput{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "all parsers failed")
	assert.Contains(t, err.Error(), "second down")
}

func TestFallbackParser_RateLimitOpensCircuit(t *testing.T) {
	first := &stubParser{err: parser.NewRateLimitError("first", errors.New("429"), 60)}
	second := &stubParser{out: &port.ParseOutput{RawJSON: []byte(`{}`), ModelUsed: "b"}}

	f := parser.NewFallbackParser(
		[]port.DocumentParser{first, second},
		[]string{"first", "second"},
	)

	// First call trips the circuit on the rate-limited provider.
	out, err := f.Parse(context.Background(), port.ParseInput{})
	require.NoError(t, err)
	assert.Equal(t, "b", out.ModelUsed)
	assert.Equal(t, 1, first.calls)

	// Second call skips it entirely.
	_, err = f.Parse(context.Background(), port.ParseInput{})
	require.NoError(t, err)
	assert.Equal(t, 1, first.calls)
	assert.Equal(t, 2, second.calls)
}

func TestFallbackParser_AllRateLimited(t *testing.T) {
	first := &stubParser{err: parser.NewRateLimitError("first", errors.New("429"), 30)}
	second := &stubParser{err: parser.NewRateLimitError("second", errors.New("429"), 90)}

	f := parser.NewFallbackParser(
		[]port.DocumentParser{first, second},
		[]string{"first", "second"},
	)

	_, err := f.Parse(context.Background(), port.ParseInput{})
	require.Error(t, err)

	var rlErr *parser.RateLimitError
	require.ErrorAs(t, err, &rlErr)
	assert.Equal(t, "all", rlErr.Provider)
}

func TestNewParser_UnknownProvider(t *testing.T) {
	_, err := parser.NewParser(&config.ParserProviderConfig{Provider: "does-not-exist"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown parser provider")
}

func TestRegisterProvider_RoundTrip(t *testing.T) {
	stub := &stubParser{out: &port.ParseOutput{ModelUsed: "stub"}}
	parser.RegisterProvider("stub-provider", func(cfg *config.ParserProviderConfig) (port.DocumentParser, error) {
		return stub, nil
	})

	p, err := parser.NewParser(&config.ParserProviderConfig{Provider: "stub-provider"})
	require.NoError(t, err)

	out, err := p.Parse(context.Background(), port.ParseInput{})
	require.NoError(t, err)
	assert.Equal(t, "stub", out.ModelUsed)
}

func TestParseRetryAfterHeader(t *testing.T) {
	assert.Equal(t, 0, parser.ParseRetryAfterHeader(""))
	assert.Equal(t, 0, parser.ParseRetryAfterHeader("soon"))
	assert.Equal(t, 42, parser.ParseRetryAfterHeader("42"))
}
