package codec

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	log "github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"adm/deque"
	"adm/model"
	"adm/state"
)

func newTestCodec() (*Codec, *test.Hook) {
	logger, hook := test.NewNullLogger()
	logger.SetLevel(log.DebugLevel)
	return New(log.NewEntry(logger)), hook
}

func TestWriteLine_Defaults(t *testing.T) {
	c := New(nil)
	line := c.WriteLine(state.NewInitial())
	tokens := strings.Split(line, Separator)
	require.Len(t, tokens, model.FieldCount)
	assert.Equal(t, "0.012", tokens[0])
	assert.Equal(t, "0.055", tokens[8])
	assert.Equal(t, "25.6", tokens[23])
	assert.Equal(t, "35", tokens[36])
	assert.False(t, strings.HasSuffix(line, Separator))
	assert.NotContains(t, line, ",")
}

func TestCodec_RoundTrip(t *testing.T) {
	c, _ := newTestCodec()
	for _, kind := range []model.Kind{model.Initial, model.Influent} {
		r := state.New(kind)
		require.True(t, r.Equal(mustRead(t, c, kind, c.WriteLine(r))), "defaults %s", kind)

		for i := 0; i < model.FieldCount; i++ {
			require.NoError(t, r.SetAt(i, math.Sqrt(float64(i)+0.1)*1e-7))
		}
		require.NoError(t, r.SetAt(5, -1.2345678901234567e300))
		require.NoError(t, r.SetAt(6, 1234567.891))
		require.True(t, r.Equal(mustRead(t, c, kind, c.WriteLine(r))), "values %s", kind)
	}
}

func mustRead(t *testing.T, c *Codec, kind model.Kind, line string) *state.Record {
	t.Helper()
	r, err := c.ReadLine(kind, line)
	require.NoError(t, err)
	return r
}

func TestReadLine_Legacy(t *testing.T) {
	c, hook := newTestCodec()
	tokens := make([]string, model.LegacyInfluentLength)
	for i := range tokens {
		tokens[i] = "1.5"
	}
	tokens[26] = "170.0"
	r, err := c.ReadLine(model.Influent, strings.Join(tokens, ";"))
	require.NoError(t, err)

	assert.Equal(t, 170.0, r.FlowRate())
	assert.Equal(t, 0.0, r.Temperature())
	assert.Equal(t, 0.0, r.MustGet("pH"))
	assert.Equal(t, 1.5, r.MustGet("S_an"))

	var legacyLogged bool
	for _, e := range hook.AllEntries() {
		if e.Level == log.InfoLevel && e.Data["length"] == model.LegacyInfluentLength {
			legacyLogged = true
		}
	}
	assert.True(t, legacyLogged)
}

func TestReadLine_Whitespace(t *testing.T) {
	c := New(nil)
	line := " " + strings.Repeat("1 ; ", model.FieldCount-1) + "2\r\n"
	r, err := c.ReadLine(model.Initial, line)
	require.NoError(t, err)
	v, err := r.At(41)
	require.NoError(t, err)
	assert.Equal(t, 2.0, v)
}

func TestReadLine_Errors(t *testing.T) {
	c, hook := newTestCodec()
	full := strings.TrimSuffix(strings.Repeat("1;", model.FieldCount), ";")
	legacy := strings.TrimSuffix(strings.Repeat("1;", model.LegacyInfluentLength), ";")

	tests := []struct {
		name string
		kind model.Kind
		line string
		want error
	}{
		{"comma decimal", model.Initial, strings.Replace(full, "1", "1,5", 1), state.ErrParseError},
		{"word", model.Influent, "abc;" + legacy, state.ErrParseError},
		{"empty", model.Initial, "", state.ErrParseError},
		{"trailing separator", model.Initial, full + ";", state.ErrParseError},
		{"short", model.Initial, "1;2;3", state.ErrMalformedRecord},
		{"legacy initial", model.Initial, legacy, state.ErrMalformedRecord},
		{"too long", model.Influent, full + ";1", state.ErrMalformedRecord},
		{"nan", model.Initial, "NaN;" + full[2:], state.ErrParseError},
		{"inf", model.Initial, "+Inf;" + full[2:], state.ErrParseError},
		{"infinity", model.Influent, "-infinity;" + legacy[2:], state.ErrParseError},
		{"hex float", model.Initial, "0x1p-2;" + full[2:], state.ErrParseError},
		{"underscore", model.Initial, "1_000;" + full[2:], state.ErrParseError},
		{"overflow", model.Initial, "1e400;" + full[2:], state.ErrParseError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := c.ReadLine(tt.kind, tt.line)
			assert.Nil(t, r)
			assert.True(t, errors.Is(err, tt.want), "got %v", err)
		})
	}
	require.NotNil(t, hook.LastEntry())
	assert.Equal(t, log.WarnLevel, hook.LastEntry().Level)
}

func TestParseLine_FiniteDecimalOnly(t *testing.T) {
	values, err := ParseLine("-1.5e-7; +2 ;.5;3.;0;-0;1E3")
	require.NoError(t, err)
	assert.Equal(t, []float64{-1.5e-7, 2, 0.5, 3, 0, 0, 1000}, values)

	for _, tok := range []string{"NaN", "nan", "Inf", "-Inf", "Infinity", "0x10", "0X1P4", "1_0", "1e309"} {
		_, err := ParseLine(tok)
		assert.True(t, errors.Is(err, state.ErrParseError), tok)
	}
}

func TestFile_RoundTrip(t *testing.T) {
	c, _ := newTestCodec()
	path := filepath.Join(t.TempDir(), "initial.csv")

	r := state.NewInitial()
	r.SetTemperature(37.5)
	require.NoError(t, c.WriteFile(path, r))

	got, err := c.ReadFile(path, model.Initial)
	require.NoError(t, err)
	assert.True(t, r.Equal(got))
}

func TestReadFile_FirstDataLine(t *testing.T) {
	c := New(nil)
	path := filepath.Join(t.TempDir(), "influent.csv")
	first := c.WriteLine(state.NewInfluent())
	content := "\n\n" + first + "\nnot;a;record\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	r, err := c.ReadFile(path, model.Influent)
	require.NoError(t, err)
	assert.True(t, state.NewInfluent().Equal(r))
}

func TestReadFile_Errors(t *testing.T) {
	c := New(nil)
	dir := t.TempDir()

	_, err := c.ReadFile(filepath.Join(dir, "missing.csv"), model.Initial)
	assert.True(t, errors.Is(err, os.ErrNotExist))

	empty := filepath.Join(dir, "empty.csv")
	require.NoError(t, os.WriteFile(empty, []byte("\n  \n"), 0644))
	_, err = c.ReadFile(empty, model.Initial)
	assert.True(t, errors.Is(err, ErrEmptyFile))

	bad := filepath.Join(dir, "bad.csv")
	require.NoError(t, os.WriteFile(bad, []byte("1;2;x\n"), 0644))
	_, err = c.ReadFile(bad, model.Initial)
	assert.True(t, errors.Is(err, state.ErrParseError))
	assert.Contains(t, err.Error(), "bad.csv:1")
}

func TestReadSeries(t *testing.T) {
	c := New(nil)
	path := filepath.Join(t.TempDir(), "series.csv")

	var lines []string
	for i := 0; i < 3; i++ {
		r := state.NewInfluent()
		r.SetFlowRate(float64(100 + i))
		lines = append(lines, c.WriteLine(r))
	}
	legacy := make([]string, model.LegacyInfluentLength)
	for i := range legacy {
		legacy[i] = "0"
	}
	legacy[26] = "170"
	lines = append(lines, strings.Join(legacy, ";"))
	require.NoError(t, os.WriteFile(path, []byte(strings.Join(lines, "\n")), 0644))

	for _, impl := range []string{deque.ImplArray, deque.ImplList} {
		series, err := c.ReadSeries(path, impl, 16)
		require.NoError(t, err, impl)
		require.Equal(t, 4, series.Size(), impl)
		assert.Equal(t, 100.0, series.RemoveFirst().FlowRate(), impl)
		assert.Equal(t, 101.0, series.RemoveFirst().FlowRate(), impl)
		assert.Equal(t, 102.0, series.RemoveFirst().FlowRate(), impl)
		assert.Equal(t, 170.0, series.RemoveFirst().FlowRate(), impl)
	}

	_, err := c.ReadSeries(path, "ring", 16)
	assert.True(t, errors.Is(err, deque.ErrUnknownImpl))
}

func TestReadSeries_Full(t *testing.T) {
	c := New(nil)
	path := filepath.Join(t.TempDir(), "series.csv")
	line := c.WriteLine(state.NewInfluent())
	require.NoError(t, os.WriteFile(path, []byte(strings.Repeat(line+"\n", 9)), 0644))

	// 容量按 8 对齐
	_, err := c.ReadSeries(path, deque.ImplArray, 2)
	assert.True(t, errors.Is(err, ErrSeriesFull))

	series, err := c.ReadSeries(path, deque.ImplArray, 9)
	require.NoError(t, err)
	assert.Equal(t, 9, series.Size())

	// 链表容量不对齐
	_, err = c.ReadSeries(path, deque.ImplList, 8)
	assert.True(t, errors.Is(err, ErrSeriesFull))

	series, err = c.ReadSeries(path, deque.ImplList, 0)
	require.NoError(t, err)
	assert.Equal(t, 9, series.Size())
}

func TestReadFile_RepoData(t *testing.T) {
	c := New(nil)
	tests := []struct {
		file string
		kind model.Kind
	}{
		{"digester_init.csv", model.Initial},
		{"influent.csv", model.Influent},
	}
	for _, tt := range tests {
		r, err := c.ReadFile(filepath.Join("..", "data", tt.file), tt.kind)
		require.NoError(t, err, tt.file)
		assert.True(t, state.New(tt.kind).Equal(r), tt.file)
	}
}
