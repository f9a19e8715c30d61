package ocap_test

import (
	"context"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"

	"github.com/wetware/ocap"
)

func TestKindOf(t *testing.T) {
	t.Parallel()

	for _, tt := range []struct {
		name string
		err  error
		want ocap.Kind
	}{
		{name: "Nil", err: nil, want: ocap.OK},
		{name: "Plain", err: errors.New("test"), want: ocap.Failed},
		{name: "Canceled", err: context.Canceled, want: ocap.Failed},
		{name: "Failed", err: ocap.Failedf("test"), want: ocap.Failed},
		{name: "Overloaded", err: ocap.Overloadedf("test"), want: ocap.Overloaded},
		{name: "Disconnected", err: ocap.Disconnectedf("test"), want: ocap.Disconnected},
		{name: "Unimplemented", err: ocap.Unimplementedf("test"), want: ocap.Unimplemented},
		{name: "SchemaViolation", err: ocap.ErrSchemaViolation, want: ocap.SchemaViolation},
		{name: "NotInSchema", err: ocap.ErrNotInSchema, want: ocap.SchemaViolation},
		{name: "Wrapped", err: errors.Wrap(ocap.Overloadedf("test"), "context"), want: ocap.Overloaded},
	} {
		assert.Equal(t, tt.want, ocap.KindOf(tt.err), tt.name)
	}

	assert.Equal(t, "ok", ocap.OK.String())
	assert.Equal(t, "schema violation", ocap.SchemaViolation.String())
}
