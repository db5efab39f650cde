package graph

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Engine counters, registered against the global meter provider. They are
// no-ops until the host installs a provider; instruments created before that
// re-bind automatically through the otel global delegate.
var (
	meter = otel.Meter("github.com/loomscript/graphcore/graph")

	mutationCounter, _ = meter.Int64Counter("graphcore.mutations",
		metric.WithDescription("Committed graph mutations by operation kind"))

	rejectionCounter, _ = meter.Int64Counter("graphcore.rule.rejections",
		metric.WithDescription("Mutations rejected by rule validation"))

	indexBuildCounter, _ = meter.Int64Counter("graphcore.index.builds",
		metric.WithDescription("Property indices built after crossing the access threshold"))
)

func countMutation(kind string) {
	mutationCounter.Add(context.Background(), 1,
		metric.WithAttributes(attribute.String("operation", kind)))
}

func countRejection(rule string) {
	rejectionCounter.Add(context.Background(), 1,
		metric.WithAttributes(attribute.String("rule", rule)))
}

func countIndexBuild(property string) {
	indexBuildCounter.Add(context.Background(), 1,
		metric.WithAttributes(attribute.String("property", property)))
}
