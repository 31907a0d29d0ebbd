package metrics

import (
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	. "github.com/smartystreets/goconvey/convey"
)

func TestMetricsManagerCreation(t *testing.T) {
	Convey("Given metrics manager creation", t, func() {
		Convey("When creating with default options on a private registry", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(WithPrometheusRegistry(registry))

			Convey("Then it should be created with the default refresh interval", func() {
				So(manager, ShouldNotBeNil)
				So(manager.RefreshInterval(), ShouldEqual, defaultRefreshInterval)
			})
		})

		Convey("When creating with custom options", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(
				WithNamespace("test"),
				WithSubsystem("board"),
				WithHistogramBuckets([]float64{1, 10, 100}),
				WithRefreshInterval(3*time.Second),
				WithCustomLabels(map[string]string{"env": "test"}),
				WithPrometheusRegistry(registry),
			)
			manager.RecordRun(OutcomeSuccess, 12)

			Convey("Then metric names and labels follow the options", func() {
				So(manager.RefreshInterval(), ShouldEqual, 3*time.Second)
				n, err := testutil.GatherAndCount(registry, "test_board_runs_total")
				So(err, ShouldBeNil)
				So(n, ShouldEqual, 1)
				So(testutil.ToFloat64(manager.runs.WithLabelValues(OutcomeSuccess)), ShouldEqual, 1)
			})
		})
	})
}

func TestMetricsRecording(t *testing.T) {
	Convey("Given a manager on a private registry", t, func() {
		registry := prometheus.NewRegistry()
		m := NewManager(WithPrometheusRegistry(registry))

		Convey("When runs and fetches are recorded", func() {
			m.RecordRun(OutcomeSuccess, 5)
			m.RecordRun(OutcomeFetchFailed, 7)
			m.RecordRun(OutcomeFetchFailed, 9)
			m.RecordFetch(OutcomeBadStatus, 3, 0)
			m.RecordFetch(OutcomeSuccess, 4, 1024)

			Convey("Then counters are split by outcome", func() {
				So(testutil.ToFloat64(m.runs.WithLabelValues(OutcomeSuccess)), ShouldEqual, 1)
				So(testutil.ToFloat64(m.runs.WithLabelValues(OutcomeFetchFailed)), ShouldEqual, 2)
				So(testutil.ToFloat64(m.fetches.WithLabelValues(OutcomeBadStatus)), ShouldEqual, 1)
				So(testutil.ToFloat64(m.fetches.WithLabelValues(OutcomeSuccess)), ShouldEqual, 1)
			})
		})

		Convey("When a successful leaderboard is published", func() {
			m.UpdateLeaderboard(4, map[string]float64{"blocks_won": 10, "crypto_earned": 2.5})

			Convey("Then the gauges hold the last values", func() {
				So(testutil.ToFloat64(m.lastRows), ShouldEqual, 4)
				So(testutil.ToFloat64(m.lastTotals.WithLabelValues("blocks_won")), ShouldEqual, 10)
				So(testutil.ToFloat64(m.lastTotals.WithLabelValues("crypto_earned")), ShouldEqual, 2.5)
			})
		})

		Convey("When HTTP requests are recorded", func() {
			m.RecordHTTPRequest("dashboard", "GET", "200", 1.5)
			m.RecordHTTPRequest("dashboard", "GET", "502", 2.5)

			Convey("Then the exposition contains both status codes", func() {
				expected := `
# HELP minerboard_dashboard_http_requests_total Total number of HTTP requests by endpoint and method
# TYPE minerboard_dashboard_http_requests_total counter
minerboard_dashboard_http_requests_total{endpoint="dashboard",method="GET",status_code="200"} 1
minerboard_dashboard_http_requests_total{endpoint="dashboard",method="GET",status_code="502"} 1
`
				So(testutil.GatherAndCompare(registry, strings.NewReader(expected), "minerboard_dashboard_http_requests_total"), ShouldBeNil)
			})
		})
	})

	Convey("Given a disabled manager", t, func() {
		m := NewManager(WithPrometheusRegistry(prometheus.NewRegistry()), WithMetricsEnabled(false))

		Convey("When recording anything", func() {
			m.RecordRun(OutcomeSuccess, 1)
			m.RecordChartRenderError()
			m.UpdateSystem(1024, 3, 0.5)

			Convey("Then nothing is counted", func() {
				So(testutil.ToFloat64(m.runs.WithLabelValues(OutcomeSuccess)), ShouldEqual, 0)
				So(testutil.ToFloat64(m.chartRenderErrors), ShouldEqual, 0)
				So(testutil.ToFloat64(m.systemGoroutineCount), ShouldEqual, 0)
			})
		})
	})
}

func TestGlobalHelpers(t *testing.T) {
	Convey("Given the global manager", t, func() {
		Convey("Then package helpers should not panic", func() {
			So(func() {
				RecordRun(OutcomeShapeFailed, 1)
				RecordFetch(OutcomeTransportErr, 1, 0)
				UpdateLeaderboard(1, map[string]float64{"hashes_submitted": 1000})
				RecordChartRenderError()
				RecordHTTPRequest("healthz", "GET", "200", 0.2)
				UpdateSystem(2048, 10, 0.1)
			}, ShouldNotPanic)
		})

		Convey("And the registry should expose the dashboard metrics", func() {
			families, err := GetRegistry().Gather()
			So(err, ShouldBeNil)
			names := make([]string, 0, len(families))
			for _, f := range families {
				names = append(names, f.GetName())
			}
			So(names, ShouldContain, "minerboard_dashboard_runs_total")
			So(names, ShouldContain, "minerboard_system_goroutine_count")
			So(SystemRefreshInterval(), ShouldEqual, defaultRefreshInterval)
		})
	})
}
