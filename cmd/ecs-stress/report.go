package main

import (
	"fmt"
	"io"
	"runtime"
	"slices"
	"text/template"
	"time"
)

type Report struct {
	Duration   time.Duration
	Entities   int
	Components int
	Systems    int
	RecordSize int

	TotalUpdates   int64
	TotalTime      time.Duration
	Respawned      int64
	Rejected       int64
	Hidden         int64
	UpdateTime     Stats
	EncodeTime     Stats
	DecodeTime     Stats
	GCPauseMetrics bool
	MemStatsStart  runtime.MemStats
	MemStatsEnd    runtime.MemStats
}

// Stats summarizes a series of timings. Call Finalize once sampling is done.
type Stats struct {
	Min     time.Duration
	Max     time.Duration
	Avg     time.Duration
	P95     time.Duration
	Samples []time.Duration
}

func (s *Stats) Finalize() {
	n := len(s.Samples)
	if n == 0 {
		return
	}

	sorted := slices.Sorted(slices.Values(s.Samples))
	var total time.Duration
	for _, d := range sorted {
		total += d
	}
	s.Min = sorted[0]
	s.Max = sorted[n-1]
	s.Avg = total / time.Duration(n)
	s.P95 = sorted[(n*95+99)/100-1]
}

var reportTemplate = template.Must(template.New("report").Funcs(template.FuncMap{
	"mib": func(b uint64) string {
		return fmt.Sprintf("%.2f MiB", float64(b)/(1<<20))
	},
	"delta": func(end, start uint64) string {
		return fmt.Sprintf("%+.2f MiB", (float64(end)-float64(start))/(1<<20))
	},
	"usub": func(a, b uint32) uint32 {
		return a - b
	},
	"ns": func(ns uint64) string {
		return time.Duration(ns).String()
	},
}).Parse(`
# World Stress Test Report

## Run
- **Duration:** {{.Duration}} ({{.TotalUpdates}} frames in {{.TotalTime}})
- **Live Entities:** {{.Entities}} across {{.Components}} component kinds, {{.Systems}} systems
- **Save Record Size:** {{.RecordSize}} bytes

## Frame Time
| avg | p95 | min | max |
|-----|-----|-----|-----|
| {{.UpdateTime.Avg}} | {{.UpdateTime.P95}} | {{.UpdateTime.Min}} | {{.UpdateTime.Max}} |

Churn respawned {{.Respawned}} entities; {{.Rejected}} spawns hit a full world. {{.Hidden}} renderables were stripped.
{{with .EncodeTime}}{{if .Samples}}
## Snapshot Round Trips ({{len .Samples}})
- **Capture + Encode:** avg {{.Avg}}, p95 {{.P95}}, max {{.Max}}
{{- end}}{{end}}
{{- with .DecodeTime}}{{if .Samples}}
- **Decode + Restore:** avg {{.Avg}}, p95 {{.P95}}, max {{.Max}}
{{end}}{{end}}
## Memory
- Heap In Use: {{mib .MemStatsStart.HeapAlloc}} -> {{mib .MemStatsEnd.HeapAlloc}} ({{delta .MemStatsEnd.HeapAlloc .MemStatsStart.HeapAlloc}})
- Allocated:   {{delta .MemStatsEnd.TotalAlloc .MemStatsStart.TotalAlloc}} over the run
- From OS:     {{mib .MemStatsEnd.Sys}}
- GC Cycles:   {{usub .MemStatsEnd.NumGC .MemStatsStart.NumGC}}
{{if .GCPauseMetrics}}
## GC Pauses
- **Total:** {{ns .MemStatsEnd.PauseTotalNs}}
{{end}}`))

func (r *Report) Generate(w io.Writer) error {
	return reportTemplate.Execute(w, r)
}
