package telemetry

import (
	"context"
	"os"
	"runtime"

	"github.com/shirou/gopsutil/v4/process"
)

const report_perf_stats = "perf-stats"

var perfMeter = Meter("achrip.perf_stats")
var cpuGauge, _ = perfMeter.Float64Gauge("cpu_usage")
var memoryGauge, _ = perfMeter.Int64Gauge("allocated_mb")
var rssGauge, _ = perfMeter.Int64Gauge("rss_mb")

// ReportPerfStats takes a single sample of the process' resource usage and
// reports it to tel and the otel meter.
func ReportPerfStats(ctx context.Context, tel API) {
	var memStats runtime.MemStats
	runtime.ReadMemStats(&memStats)

	allocatedMb := int64(memStats.Alloc / 1_000_000)
	memoryGauge.Record(ctx, allocatedMb)
	tel.ReportCount("allocated-mb", allocatedMb)

	proc, err := process.NewProcessWithContext(ctx, int32(os.Getpid()))
	if err != nil {
		tel.ReportWarning(report_perf_stats, err)
		return
	}

	cpuUsage, err := proc.CPUPercentWithContext(ctx)
	if err != nil {
		tel.ReportWarning(report_perf_stats, err)
	} else {
		cpuGauge.Record(ctx, cpuUsage)
		tel.ReportCount("cpu-percent", int64(cpuUsage))
	}

	mem, err := proc.MemoryInfoWithContext(ctx)
	if err != nil {
		tel.ReportWarning(report_perf_stats, err)
		return
	}
	rssMb := int64(mem.RSS / 1_000_000)
	rssGauge.Record(ctx, rssMb)
	tel.ReportCount("rss-mb", rssMb)
}
