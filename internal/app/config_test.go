package service_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	service "github.com/okian/radar/internal/app"
	"github.com/okian/radar/internal/adapters/dataset"
	"github.com/okian/radar/internal/config"
	"github.com/okian/radar/internal/domain/generator"
	"github.com/okian/radar/pkg/metrics"
	"github.com/prometheus/client_golang/prometheus"
	. "github.com/smartystreets/goconvey/convey"
)

func TestOptionsFromConfig(t *testing.T) {
	Convey("Given the default configuration", t, func() {
		cfg := config.New()

		Convey("Then the source should be the seeded synthetic series", func() {
			_, ok := service.SourceFromConfig(cfg).(*generator.Synthetic)
			So(ok, ShouldBeTrue)
		})

		Convey("Then the calculator should carry the configured weights", func() {
			cfg.WeightSensing = 0.5
			cfg.ThresholdStrong = 80
			calc := service.CalculatorFromConfig(cfg)
			So(calc.Weights().Sensing, ShouldEqual, 0.5)
			So(calc.Thresholds().Strong, ShouldEqual, 80)
		})

		Convey("Then a service built from it should load every configured year", func() {
			cfg.StartYear, cfg.EndYear = 2000, 2009
			svc := service.New(service.OptionsFromConfig(cfg)...)
			So(svc.Start(context.Background()), ShouldBeNil)
			defer svc.Stop()
			So(svc.Years(context.Background()), ShouldHaveLength, 10)
		})
	})

	Convey("Given a configured dataset path", t, func() {
		path := filepath.Join(t.TempDir(), "radar.csv")
		So(os.WriteFile(path, []byte("year,market_intelligence_index,time_to_market_weeks,decentralization_index\n2020,50,40,60\n"), 0o600), ShouldBeNil)
		cfg := config.New()
		cfg.DatasetPath = path

		Convey("Then the source should read that file", func() {
			src, ok := service.SourceFromConfig(cfg).(*dataset.File)
			So(ok, ShouldBeTrue)
			So(src.Path(), ShouldEqual, path)

			svc := service.New(service.OptionsFromConfig(cfg)...)
			So(svc.Start(context.Background()), ShouldBeNil)
			So(svc.Years(context.Background()), ShouldResemble, []int{2020})
		})
	})
}

func TestMetricsOptionsFromConfig(t *testing.T) {
	Convey("Given a config with metrics tuned", t, func() {
		cfg := config.New()
		cfg.MetricsEnabled = false
		cfg.MetricsRefreshInterval = time.Minute
		cfg.DatasetPath = "radar.csv"

		Convey("When building a manager from its options", func() {
			registry := prometheus.NewRegistry()
			opts := append(service.MetricsOptionsFromConfig(cfg), metrics.WithPrometheusRegistry(registry))
			m := metrics.NewManager(opts...)

			Convey("Then the manager should follow the config", func() {
				So(m.Enabled(), ShouldBeFalse)
				So(m.RefreshInterval(), ShouldEqual, time.Minute)
			})

			Convey("Then series should carry the dataset label", func() {
				m.UpdateDatasetRecords(1)
				families, err := registry.Gather()
				So(err, ShouldBeNil)
				labelled := false
				for _, f := range families {
					for _, metric := range f.GetMetric() {
						for _, lp := range metric.GetLabel() {
							if lp.GetName() == "dataset" && lp.GetValue() == "file" {
								labelled = true
							}
						}
					}
				}
				So(labelled, ShouldBeTrue)
			})
		})
	})
}
