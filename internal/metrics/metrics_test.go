package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"projimport/internal/diagnostic"
	"projimport/internal/entity"
)

func TestRegister(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New()

	require.NoError(t, m.Register(reg))
	require.Error(t, m.Register(reg), "registering twice must fail")
}

func TestRecord(t *testing.T) {
	m := New()

	m.Record(entity.KindComment, OutcomeProduced)
	m.Record(entity.KindComment, OutcomeProduced)
	m.Record(entity.KindComment, OutcomeDropped)

	assert.InDelta(t, 2, testutil.ToFloat64(m.RecordsTotal.WithLabelValues("comment", OutcomeProduced)), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.RecordsTotal.WithLabelValues("comment", OutcomeDropped)), 0)
}

func TestSink(t *testing.T) {
	m := New()
	var collected diagnostic.Diagnostics

	sink := m.Sink(&collected)
	sink.Report(diagnostic.Diagnostic{
		Severity: diagnostic.SeverityWarning,
		Code:     diagnostic.CodeOptionalDropped,
		Kind:     entity.KindIssue,
	})
	sink.Report(diagnostic.Diagnostic{
		Severity: diagnostic.SeverityWarning,
		Code:     diagnostic.CodeOptionalDropped,
		Kind:     entity.KindIssue,
	})
	m.Sink(nil).Report(diagnostic.Diagnostic{
		Severity: diagnostic.SeverityError,
		Code:     diagnostic.CodeRequiredUnresolved,
		Kind:     entity.KindLabel,
	})

	assert.Equal(t, 2, collected.Len())
	assert.InDelta(t, 2, testutil.ToFloat64(
		m.DiagnosticsTotal.WithLabelValues("issue", "warn", string(diagnostic.CodeOptionalDropped))), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(
		m.DiagnosticsTotal.WithLabelValues("label", "error", string(diagnostic.CodeRequiredUnresolved))), 0)
}
