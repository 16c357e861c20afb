package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	. "github.com/smartystreets/goconvey/convey"
)

// sampleValue returns the counter or gauge value of the first sample of the
// named family whose labels include want.
func sampleValue(name string, want map[string]string) (float64, bool) {
	families, err := GetRegistry().Gather()
	if err != nil {
		return 0, false
	}
	for _, mf := range families {
		if mf.GetName() != name {
			continue
		}
		for _, m := range mf.GetMetric() {
			matched := 0
			for _, l := range m.GetLabel() {
				if v, ok := want[l.GetName()]; ok && v == l.GetValue() {
					matched++
				}
			}
			if matched != len(want) {
				continue
			}
			if c := m.GetCounter(); c != nil {
				return c.GetValue(), true
			}
			if g := m.GetGauge(); g != nil {
				return g.GetValue(), true
			}
		}
	}
	return 0, false
}

func TestMetricsOptions(t *testing.T) {
	Convey("Given metrics options", t, func() {
		Convey("When creating a manager with custom options", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(
				WithNamespace("test_namespace"),
				WithPrometheusRegistry(registry),
			)

			Convey("Then the options should be applied", func() {
				So(manager, ShouldNotBeNil)
				So(manager.namespace, ShouldEqual, "test_namespace")
			})

			Convey("And metrics should be registered on the custom registry", func() {
				manager.datasetResolutions.WithLabelValues("races", "ok").Inc()
				families, err := registry.Gather()
				So(err, ShouldBeNil)

				names := make([]string, 0, len(families))
				for _, mf := range families {
					names = append(names, mf.GetName())
				}
				So(names, ShouldContain, "test_namespace_datasets_resolutions_total")
			})
		})

		Convey("When passing empty values", func() {
			manager := NewManager(
				WithNamespace(""),
				WithPrometheusRegistry(prometheus.NewRegistry()),
			)

			Convey("Then defaults should be kept", func() {
				So(manager.namespace, ShouldEqual, "trailfeed")
				So(manager.subsystem, ShouldEqual, "datasets")
				So(manager.histogramBuckets, ShouldResemble, prometheus.DefBuckets)
				So(manager.customLabels, ShouldNotBeNil)
			})
		})
	})
}

func familyNames(registry *prometheus.Registry) []string {
	families, err := registry.Gather()
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(families))
	for _, mf := range families {
		names = append(names, mf.GetName())
	}
	return names
}

func TestInit(t *testing.T) {
	Convey("Given the global metrics manager", t, func() {
		previous := GetRegistry()
		defer Init()

		Convey("When it is re-initialized with a namespace", func() {
			Init(WithNamespace("trailfeed_edge"))
			RecordResolution("races", "ok")
			names := familyNames(GetRegistry())

			Convey("Then metrics should move to a fresh registry under that namespace", func() {
				So(GetRegistry(), ShouldNotEqual, previous)
				So(names, ShouldContain, "trailfeed_edge_datasets_resolutions_total")
				So(names, ShouldNotContain, "trailfeed_datasets_resolutions_total")
			})

			Convey("Then the runtime and process collectors should be exposed", func() {
				So(names, ShouldContain, "go_goroutines")
			})
		})
	})
}

func TestDatasetMetrics(t *testing.T) {
	Convey("Given the global metrics manager", t, func() {
		Convey("When recording resolutions", func() {
			before, _ := sampleValue("trailfeed_datasets_resolutions_total", map[string]string{"dataset": "races", "outcome": "ok"})
			RecordResolution("races", "ok")
			RecordResolution("races", "ok")
			after, found := sampleValue("trailfeed_datasets_resolutions_total", map[string]string{"dataset": "races", "outcome": "ok"})

			Convey("Then the counter should advance", func() {
				So(found, ShouldBeTrue)
				So(after-before, ShouldEqual, 2.0)
			})
		})

		Convey("When recording bytes served", func() {
			before, _ := sampleValue("trailfeed_datasets_bytes_served_total", map[string]string{"dataset": "runners"})
			RecordBytesServed("runners", 128)
			after, _ := sampleValue("trailfeed_datasets_bytes_served_total", map[string]string{"dataset": "runners"})

			Convey("Then the byte counter should advance by the payload size", func() {
				So(after-before, ShouldEqual, 128.0)
			})
		})

		Convey("When a dataset file is present", func() {
			UpdateDatasetFile("races", true, 2048, 1700000000)

			Convey("Then availability, size and mtime gauges should be set", func() {
				avail, _ := sampleValue("trailfeed_datasets_file_available", map[string]string{"dataset": "races"})
				size, _ := sampleValue("trailfeed_datasets_file_size_bytes", map[string]string{"dataset": "races"})
				mtime, _ := sampleValue("trailfeed_datasets_file_modified_timestamp_seconds", map[string]string{"dataset": "races"})
				So(avail, ShouldEqual, 1.0)
				So(size, ShouldEqual, 2048.0)
				So(mtime, ShouldEqual, 1700000000.0)
			})

			Convey("And when it disappears", func() {
				UpdateDatasetFile("races", false, 0, 0)

				Convey("Then availability and size should drop to zero", func() {
					avail, _ := sampleValue("trailfeed_datasets_file_available", map[string]string{"dataset": "races"})
					size, _ := sampleValue("trailfeed_datasets_file_size_bytes", map[string]string{"dataset": "races"})
					So(avail, ShouldEqual, 0.0)
					So(size, ShouldEqual, 0.0)
				})
			})
		})
	})
}

func TestMetricsRecording(t *testing.T) {
	Convey("Given metrics recording", t, func() {
		Convey("When recording store metrics", func() {
			Convey("Then it should record read latency and errors", func() {
				So(func() {
					RecordStoreReadLatency(0.4)
					RecordStoreReadLatency(12.0)
					RecordStoreReadError("not_found")
					RecordStoreReadError("read_error")
				}, ShouldNotPanic)
			})
		})

		Convey("When recording HTTP metrics", func() {
			Convey("Then it should record requests and durations", func() {
				So(func() {
					RecordHTTPRequest("fetch_data", "GET", "200")
					RecordHTTPRequest("healthz", "GET", "200")
					RecordHTTPRequestDuration("fetch_data", "GET", "200", 1.5)
				}, ShouldNotPanic)
			})
		})

		Convey("When recording error metrics", func() {
			Convey("Then it should record errors by type, endpoint and latency", func() {
				So(func() {
					RecordErrorByType("not_found", "medium")
					RecordErrorByEndpoint("fetch_data", "GET", "client_error")
					RecordErrorLatency("http", "not_found", 3.0)
				}, ShouldNotPanic)
			})
		})

		Convey("When recording system metrics", func() {
			Convey("Then it should update system gauges", func() {
				So(func() {
					UpdateSystemMemoryUsage(1024 * 1024 * 100) // 100MB
					UpdateSystemGoroutineCount(42)
					RecordSystemGCPauseTime(0.5)
				}, ShouldNotPanic)
			})
		})

		Convey("When fetching the registry", func() {
			Convey("Then it should be the custom registry", func() {
				So(GetRegistry(), ShouldEqual, customRegistry)
			})
		})
	})
}
