package telemetry

import (
	"strings"
	"sync"
)

// Report is a single call made to a RecorderAPI.
type Report struct {
	Kind   string
	Id     string
	Params []any
	Count  int64
}

// RecorderAPI implements API by keeping every report in memory, it is meant
// for asserting on reports in tests.
type RecorderAPI struct {
	mutex   *sync.Mutex
	reports *[]Report
}

func NewRecorderAPI() RecorderAPI {
	return RecorderAPI{
		mutex:   &sync.Mutex{},
		reports: &[]Report{},
	}
}

func (r RecorderAPI) record(report Report) {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	*r.reports = append(*r.reports, report)
}

func (r RecorderAPI) ReportBroken(id string, params ...any) {
	r.record(Report{Kind: "broken", Id: id, Params: params})
}

func (r RecorderAPI) ReportWarning(id string, params ...any) {
	r.record(Report{Kind: "warning", Id: id, Params: params})
}

func (r RecorderAPI) ReportDebug(msg string, params ...any) {
	r.record(Report{Kind: "debug", Id: msg, Params: params})
}

func (r RecorderAPI) ReportCount(id string, count int64) {
	r.record(Report{Kind: "count", Id: id, Count: count})
}

// Reports returns every report of the given kind whose id ends with suffix.
func (r RecorderAPI) Reports(kind, suffix string) []Report {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	var out []Report
	for _, report := range *r.reports {
		if report.Kind == kind && strings.HasSuffix(report.Id, suffix) {
			out = append(out, report)
		}
	}
	return out
}
