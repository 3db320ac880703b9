package schema

import (
	"strings"

	"github.com/vvka-141/pgload/pkg/pgload"
)

// storageClassRules is checked in order; the first substring found wins.
// "datetime" must precede "date" since every datetime class contains "date".
var storageClassRules = []struct {
	substr string
	typ    pgload.ColumnType
}{
	{"int", pgload.TypeInteger64},
	{"float", pgload.TypeFloat64},
	{"bool", pgload.TypeBoolean},
	{"datetime", pgload.TypeTimestamp},
	{"date", pgload.TypeDate},
}

// InferType maps a column's storage class to a database type.
// Unrecognized classes map to TEXT.
func InferType(col pgload.Column) pgload.ColumnType {
	class := strings.ToLower(col.StorageClass)
	for _, rule := range storageClassRules {
		if strings.Contains(class, rule.substr) {
			return rule.typ
		}
	}
	return pgload.TypeText
}
