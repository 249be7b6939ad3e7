package instrumentation

import (
	"context"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNopInstrumentation(t *testing.T) {
	var i Instrumentation = NopInstrumentation{}
	i.QueryParsing(context.Background())(nil, nil)
	i.QueryValidation(context.Background(), nil)(nil)
	i.OperationExecution(context.Background(), "Op")(nil)
	i.FieldResolution(context.Background(), &FieldInfo{FieldName: "field"})(nil, nil)
}

func TestLoggingInstrumentation(t *testing.T) {
	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)
	i := LoggingInstrumentation{Logger: logger}

	i.QueryParsing(context.Background())(nil, nil)
	i.QueryValidation(context.Background(), nil)(nil)
	i.OperationExecution(context.Background(), "Op")(nil)
	i.FieldResolution(context.Background(), &FieldInfo{FieldName: "field"})("value", nil)

	require.Len(t, hook.Entries, 4)
	assert.Equal(t, "field resolved", hook.LastEntry().Message)
}
