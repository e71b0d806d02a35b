package metrics

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gin-gonic/gin"
)

var (
	analysisStartedTotal   atomic.Uint64
	analysisCompletedTotal atomic.Uint64
	analysisFailedTotal    atomic.Uint64
	summaryFailedTotal     atomic.Uint64
	reportsGeneratedTotal  atomic.Uint64
	reportEmailFailedTotal atomic.Uint64
	quizSubmittedTotal     atomic.Uint64
	leadSyncFailedTotal    atomic.Uint64
	httpRequestsTotal      atomic.Uint64

	reportJobsReceivedTotal      atomic.Uint64
	reportJobsCompletedTotal     atomic.Uint64
	reportJobsFailedTotal        atomic.Uint64
	reportJobsUnrecoverableTotal atomic.Uint64

	gapsCriticalTotal atomic.Uint64
	gapsHighTotal     atomic.Uint64
	gapsMediumTotal   atomic.Uint64
	gapsLowTotal      atomic.Uint64

	analysisDuration = newHistogram([]float64{5, 25, 100, 250, 500, 1000, 2000, 5000, 10000, 30000})
	reportDuration   = newHistogram([]float64{50, 100, 250, 500, 1000, 2000, 5000, 10000})
)

// IncAnalysisStarted increments the started counter.
func IncAnalysisStarted() {
	analysisStartedTotal.Add(1)
}

// IncAnalysisCompleted increments the completed counter.
func IncAnalysisCompleted() {
	analysisCompletedTotal.Add(1)
}

// IncAnalysisFailed increments the failed counter.
func IncAnalysisFailed() {
	analysisFailedTotal.Add(1)
}

// IncSummaryFailed counts executive summaries that were skipped after a provider error.
func IncSummaryFailed() {
	summaryFailedTotal.Add(1)
}

// IncReportsGenerated counts rendered reports.
func IncReportsGenerated() {
	reportsGeneratedTotal.Add(1)
}

// IncReportEmailFailed counts report notifications that could not be sent.
func IncReportEmailFailed() {
	reportEmailFailedTotal.Add(1)
}

// IncQuizSubmitted counts stored quiz submissions.
func IncQuizSubmitted() {
	quizSubmittedTotal.Add(1)
}

// IncLeadSyncFailed counts quiz submissions that failed to reach the lead sink.
func IncLeadSyncFailed() {
	leadSyncFailedTotal.Add(1)
}

// IncHTTPRequests counts completed HTTP requests.
func IncHTTPRequests() {
	httpRequestsTotal.Add(1)
}

// IncGap counts a gap produced by an analysis, by severity.
func IncGap(severity string) {
	switch severity {
	case "critical":
		gapsCriticalTotal.Add(1)
	case "high":
		gapsHighTotal.Add(1)
	case "medium":
		gapsMediumTotal.Add(1)
	case "low":
		gapsLowTotal.Add(1)
	}
}

func IncReportJobsReceived()      { reportJobsReceivedTotal.Add(1) }
func IncReportJobsCompleted()     { reportJobsCompletedTotal.Add(1) }
func IncReportJobsFailed()        { reportJobsFailedTotal.Add(1) }
func IncReportJobsUnrecoverable() { reportJobsUnrecoverableTotal.Add(1) }

// ObserveAnalysisDurationMs records an analysis duration in milliseconds.
func ObserveAnalysisDurationMs(value float64) {
	if value < 0 {
		value = 0
	}
	analysisDuration.Observe(value)
}

// ObserveReportDurationMs records a report render duration in milliseconds.
func ObserveReportDurationMs(value float64) {
	if value < 0 {
		value = 0
	}
	reportDuration.Observe(value)
}

// Handler exposes metrics in Prometheus text format.
func Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Content-Type", "text/plain; version=0.0.4")
		c.String(http.StatusOK, Render())
	}
}

// Render renders metrics in Prometheus text format.
func Render() string {
	var buf bytes.Buffer
	writeCounter(&buf, "analysis_started_total", "Total gap analyses started", analysisStartedTotal.Load())
	writeCounter(&buf, "analysis_completed_total", "Total gap analyses completed", analysisCompletedTotal.Load())
	writeCounter(&buf, "analysis_failed_total", "Total gap analyses failed", analysisFailedTotal.Load())
	writeCounter(&buf, "analysis_summary_failed_total", "Executive summaries skipped after provider errors", summaryFailedTotal.Load())
	writeCounter(&buf, "reports_generated_total", "Total reports rendered", reportsGeneratedTotal.Load())
	writeCounter(&buf, "report_email_failed_total", "Report notifications that failed to send", reportEmailFailedTotal.Load())
	writeCounter(&buf, "quiz_submissions_total", "Total quiz submissions stored", quizSubmittedTotal.Load())
	writeCounter(&buf, "lead_sync_failed_total", "Quiz submissions not delivered to the lead sink", leadSyncFailedTotal.Load())
	writeCounter(&buf, "http_requests_total", "Total HTTP requests served", httpRequestsTotal.Load())
	writeCounter(&buf, "report_jobs_received_total", "Report delivery jobs received by the worker", reportJobsReceivedTotal.Load())
	writeCounter(&buf, "report_jobs_completed_total", "Report delivery jobs completed", reportJobsCompletedTotal.Load())
	writeCounter(&buf, "report_jobs_failed_total", "Report delivery jobs failed and left for retry", reportJobsFailedTotal.Load())
	writeCounter(&buf, "report_jobs_unrecoverable_total", "Report delivery jobs deleted as unprocessable", reportJobsUnrecoverableTotal.Load())
	fmt.Fprintf(&buf, "# HELP gaps_total Gaps identified by severity\n# TYPE gaps_total counter\n")
	fmt.Fprintf(&buf, "gaps_total{severity=\"critical\"} %d\n", gapsCriticalTotal.Load())
	fmt.Fprintf(&buf, "gaps_total{severity=\"high\"} %d\n", gapsHighTotal.Load())
	fmt.Fprintf(&buf, "gaps_total{severity=\"medium\"} %d\n", gapsMediumTotal.Load())
	fmt.Fprintf(&buf, "gaps_total{severity=\"low\"} %d\n", gapsLowTotal.Load())
	writeHistogram(&buf, "analysis_duration_ms", "Gap analysis duration in milliseconds", analysisDuration.Snapshot())
	writeHistogram(&buf, "report_render_duration_ms", "Report render duration in milliseconds", reportDuration.Snapshot())
	return buf.String()
}

type histogram struct {
	mu      sync.Mutex
	buckets []float64
	counts  []uint64
	sum     float64
	count   uint64
}

type histogramSnapshot struct {
	buckets []float64
	counts  []uint64
	sum     float64
	count   uint64
}

func newHistogram(buckets []float64) *histogram {
	return &histogram{
		buckets: buckets,
		counts:  make([]uint64, len(buckets)),
	}
}

// Observe records value in the first bucket whose bound covers it; rendering
// accumulates the counts.
func (h *histogram) Observe(value float64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.count++
	h.sum += value
	for i, bound := range h.buckets {
		if value <= bound {
			h.counts[i]++
			return
		}
	}
}

func (h *histogram) Snapshot() histogramSnapshot {
	h.mu.Lock()
	defer h.mu.Unlock()
	return histogramSnapshot{
		buckets: append([]float64(nil), h.buckets...),
		counts:  append([]uint64(nil), h.counts...),
		sum:     h.sum,
		count:   h.count,
	}
}

func writeCounter(buf *bytes.Buffer, name, help string, value uint64) {
	fmt.Fprintf(buf, "# HELP %s %s\n", name, help)
	fmt.Fprintf(buf, "# TYPE %s counter\n", name)
	fmt.Fprintf(buf, "%s %d\n", name, value)
}

func writeHistogram(buf *bytes.Buffer, name, help string, snap histogramSnapshot) {
	fmt.Fprintf(buf, "# HELP %s %s\n", name, help)
	fmt.Fprintf(buf, "# TYPE %s histogram\n", name)
	var cumulative uint64
	for i, bound := range snap.buckets {
		cumulative += snap.counts[i]
		fmt.Fprintf(buf, "%s_bucket{le=\"%s\"} %d\n", name, formatFloat(bound), cumulative)
	}
	fmt.Fprintf(buf, "%s_bucket{le=\"+Inf\"} %d\n", name, snap.count)
	fmt.Fprintf(buf, "%s_sum %s\n", name, formatFloat(snap.sum))
	fmt.Fprintf(buf, "%s_count %d\n", name, snap.count)
}

func formatFloat(value float64) string {
	if value == float64(int64(value)) {
		return strconv.FormatInt(int64(value), 10)
	}
	return strconv.FormatFloat(value, 'f', -1, 64)
}

// SinceMillis returns the elapsed time since start in milliseconds.
func SinceMillis(start time.Time) float64 {
	return float64(time.Since(start)) / float64(time.Millisecond)
}
