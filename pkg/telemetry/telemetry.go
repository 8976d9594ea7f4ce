// Package telemetry sets up OpenTelemetry metrics exported to stdout
package telemetry

import (
	"context"
	"os"
	"time"

	otlpruntime "go.opentelemetry.io/contrib/instrumentation/runtime"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/stdout/stdoutmetric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"

	"github.com/mpapenbr/skirace-standings-go/log"
)

const MeterName = "github.com/mpapenbr/skirace-standings-go"

type Telemetry struct {
	mp *sdkmetric.MeterProvider
}

// Setup installs a global meter provider which periodically writes metrics
// to stderr and starts the go runtime instrumentation.
func Setup(interval time.Duration) (*Telemetry, error) {
	exp, err := stdoutmetric.New(stdoutmetric.WithWriter(os.Stderr))
	if err != nil {
		return nil, err
	}
	mp := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exp,
			sdkmetric.WithInterval(interval))))
	otel.SetMeterProvider(mp)
	err = otlpruntime.Start(otlpruntime.WithMinimumReadMemStatsInterval(time.Second))
	if err != nil {
		log.Warn("Could not start runtime metrics", log.ErrorField(err))
	}
	return &Telemetry{mp: mp}, nil
}

func (t *Telemetry) Shutdown(ctx context.Context) {
	if err := t.mp.Shutdown(ctx); err != nil {
		log.Warn("telemetry shutdown", log.ErrorField(err))
	}
}
