package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vvka-141/pgload/pkg/pgload"
)

func TestInferType(t *testing.T) {
	tests := []struct {
		class string
		want  pgload.ColumnType
	}{
		{"int64", pgload.TypeInteger64},
		{"Int32", pgload.TypeInteger64},
		{"float64", pgload.TypeFloat64},
		{"bool", pgload.TypeBoolean},
		{"datetime64[ns]", pgload.TypeTimestamp},
		{"datetime", pgload.TypeTimestamp},
		{"date", pgload.TypeDate},
		{"string", pgload.TypeText},
		{"object", pgload.TypeText},
		{"", pgload.TypeText},
	}

	for _, tt := range tests {
		t.Run(tt.class, func(t *testing.T) {
			assert.Equal(t, tt.want, InferType(pgload.Column{Label: "x", StorageClass: tt.class}))
		})
	}
}

func TestInferType_SQLMapping(t *testing.T) {
	assert.Equal(t, "BIGINT", InferType(pgload.Column{StorageClass: "int64"}).SQL())
	assert.Equal(t, "DOUBLE PRECISION", InferType(pgload.Column{StorageClass: "float64"}).SQL())
	assert.Equal(t, "TIMESTAMP", InferType(pgload.Column{StorageClass: "datetime64[ns]"}).SQL())
	assert.Equal(t, "TEXT", InferType(pgload.Column{StorageClass: "category"}).SQL())
}
