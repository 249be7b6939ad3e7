package instrumentation

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/nilsbr/gqlcore/ast"
)

// LoggingInstrumentation logs each stage's duration and outcome through a
// logrus.FieldLogger, at Debug level for field resolution (which can be
// extremely chatty) and Info level for everything else.
type LoggingInstrumentation struct {
	Logger logrus.FieldLogger
}

func (i LoggingInstrumentation) logger() logrus.FieldLogger {
	if i.Logger == nil {
		return logrus.StandardLogger()
	}
	return i.Logger
}

func (i LoggingInstrumentation) QueryParsing(ctx context.Context) func(*ast.Document, error) {
	start := time.Now()
	return func(doc *ast.Document, err error) {
		logger := i.logger().WithField("duration", time.Since(start))
		if err != nil {
			logger.WithField("error", err.Error()).Info("query parsing failed")
			return
		}
		logger.Info("query parsed")
	}
}

func (i LoggingInstrumentation) QueryValidation(ctx context.Context, doc *ast.Document) func([]error) {
	start := time.Now()
	return func(errs []error) {
		logger := i.logger().WithField("duration", time.Since(start))
		if len(errs) > 0 {
			logger.WithField("errorCount", len(errs)).Info("query validation failed")
			return
		}
		logger.Info("query validated")
	}
}

func (i LoggingInstrumentation) OperationExecution(ctx context.Context, operationName string) func([]error) {
	start := time.Now()
	logger := i.logger().WithField("operationName", operationName)
	return func(errs []error) {
		logger = logger.WithField("duration", time.Since(start))
		if len(errs) > 0 {
			logger.WithField("errorCount", len(errs)).Info("operation execution completed with errors")
			return
		}
		logger.Info("operation executed")
	}
}

func (i LoggingInstrumentation) FieldResolution(ctx context.Context, info *FieldInfo) func(interface{}, error) {
	start := time.Now()
	return func(result interface{}, err error) {
		logger := i.logger().WithField("field", info.FieldName).WithField("duration", time.Since(start))
		if err != nil {
			logger.WithField("error", err.Error()).Debug("field resolution failed")
			return
		}
		logger.Debug("field resolved")
	}
}

var _ Instrumentation = LoggingInstrumentation{}
