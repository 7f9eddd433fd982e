package main

import (
	"fmt"

	"github.com/jpare/lisp2gc/pkg/types"
)

func parseVariant(s string) (types.Variant, error) {
	switch s {
	case "fixed":
		return types.VariantFixed, nil
	case "realloc":
		return types.VariantRealloc, nil
	default:
		return 0, fmt.Errorf("unknown variant %q: want \"fixed\" or \"realloc\"", s)
	}
}
