package errors

import (
	"bytes"
	"fmt"
	"math"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConstructionError(t *testing.T) {
	err := NewConstructionError("A", "minVal must be less than maxVal", []float64{2, 1})

	assert.Equal(t, "pcart: cannot construct variable 'A': minVal must be less than maxVal (got: [2 1])", err.Error())

	// スタックトレースの存在確認
	formatted := fmt.Sprintf("%+v", err)
	assert.True(t, strings.Contains(formatted, "errors_test.go"), "expected stack trace to contain test file name")

	var ce *ConstructionError
	require.True(t, As(err, &ce))
	assert.Equal(t, "A", ce.Variable)
}

func TestNewConsistencyViolation(t *testing.T) {
	err := NewConsistencyViolation("Verify", "masks %#x and %#x overlap", 3, 1)
	assert.Equal(t, "pcart: Verify: consistency violation: masks 0x3 and 0x1 overlap", err.Error())

	var cv *ConsistencyViolation
	require.True(t, As(err, &cv))
	assert.Equal(t, "Verify", cv.Op)
}

func TestNewDataRoutingError(t *testing.T) {
	err := NewDataRoutingError("route", "B", 7, 5)
	assert.Equal(t, "pcart: route: row 7 has value 5 for variable 'B' that matches no category", err.Error())

	var re *DataRoutingError
	require.True(t, As(err, &re))
	assert.Equal(t, 7, re.Row)
	assert.Equal(t, 5.0, re.Value)
}

func TestNewDimensionError(t *testing.T) {
	err := NewDimensionError("OptimizeTree", 4, 3, 1)
	assert.Equal(t, "pcart: OptimizeTree: dimension mismatch on axis 1 (columns). Expected 4, got 3", err.Error())

	var dimErr *DimensionError
	assert.True(t, As(err, &dimErr))
}

func TestWrapKeepsType(t *testing.T) {
	err := Wrap(NewValidationError("parallelism", "must be positive", -1), "loading config")
	assert.Contains(t, err.Error(), "loading config")

	var ve *ValidationError
	require.True(t, As(err, &ve))
	assert.Equal(t, "parallelism", ve.ParamName)
}

func TestMarshalZerologObject(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf)

	logger.Error().Object("err", &DataRoutingError{Op: "route", Variable: "B", Row: 3, Value: 9}).Msg("routing")
	out := buf.String()
	assert.Contains(t, out, `"type":"DataRoutingError"`)
	assert.Contains(t, out, `"row":3`)
}

func TestCheckScore(t *testing.T) {
	assert.NoError(t, CheckScore("leaf", -12.5))
	assert.NoError(t, CheckScore("leaf", math.Inf(-1)))

	err := CheckScore("leaf", math.NaN())
	require.Error(t, err)
	assert.True(t, Is(err, ErrNonFiniteScore))
	assert.True(t, Is(CheckScore("leaf", math.Inf(1)), ErrNonFiniteScore))
}

func TestCheckFinite(t *testing.T) {
	assert.NoError(t, CheckFinite("min", 0, 1))
	err := CheckFinite("min", 0, math.NaN())
	var ve *ValidationError
	require.True(t, As(err, &ve))
	assert.Equal(t, "min", ve.ParamName)
}
