package probe_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/okian/radar/internal/adapters/http/api"
	service "github.com/okian/radar/internal/app"
	"github.com/okian/radar/internal/domain/alignment"
	"github.com/okian/radar/internal/domain/generator"
	"github.com/okian/radar/internal/domain/model"
	"github.com/okian/radar/internal/probe"
	"github.com/okian/radar/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func newTestServer(t *testing.T, calc *alignment.Calculator) *httptest.Server {
	t.Helper()
	svc := service.New(
		service.WithLogger(logger.NewNop()),
		service.WithCalculator(calc),
		service.WithSource(generator.NewSynthetic(generator.WithSeed(7), generator.WithYears(2010, 2023))),
	)
	if err := svc.Start(context.Background()); err != nil {
		t.Fatal(err)
	}
	mux := http.NewServeMux()
	api.NewServer(svc, svc, api.WithLogger(logger.NewNop())).Register(context.Background(), mux)
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestRun(t *testing.T) {
	Convey("Given a service using the default weights", t, func() {
		srv := newTestServer(t, alignment.NewCalculator())

		Convey("When probing with the same weights", func() {
			stats, err := probe.Run(context.Background(), probe.Config{BaseURL: srv.URL, Workers: 3})

			Convey("Then every year should match", func() {
				So(err, ShouldBeNil)
				So(stats.Years, ShouldEqual, 14)
				So(stats.Checked, ShouldEqual, 14)
				So(stats.Matched, ShouldEqual, 14)
				So(stats.Mismatched, ShouldEqual, 0)
				So(stats.Failed, ShouldEqual, 0)
				So(stats.Duration, ShouldBeGreaterThan, 0)
			})
		})

		Convey("When probing with a different weight vector", func() {
			calc := alignment.NewCalculator(alignment.WithWeights(alignment.Weights{Sensing: 1}))
			stats, err := probe.Run(context.Background(), probe.Config{BaseURL: srv.URL, Calculator: calc})

			Convey("Then it should report mismatches in year order", func() {
				So(errors.Is(err, probe.ErrMismatch), ShouldBeTrue)
				So(stats.Mismatched, ShouldBeGreaterThan, 0)
				So(stats.Matched+stats.Mismatched, ShouldEqual, stats.Checked)
				for i := 1; i < len(stats.Mismatches); i++ {
					So(stats.Mismatches[i].Year, ShouldBeGreaterThan, stats.Mismatches[i-1].Year)
				}
			})
		})
	})

	Convey("Given a service that fails its health check", t, func() {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		}))
		defer srv.Close()

		Convey("Then the probe should stop before listing years", func() {
			stats, err := probe.Run(context.Background(), probe.Config{BaseURL: srv.URL})
			So(errors.Is(err, probe.ErrUnhealthy), ShouldBeTrue)
			So(stats.Checked, ShouldEqual, 0)
		})
	})

	Convey("Given a service whose record endpoint is missing", t, func() {
		mux := http.NewServeMux()
		mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {})
		mux.HandleFunc("/years", func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"years":[2020]}`))
		})
		srv := httptest.NewServer(mux)
		defer srv.Close()

		Convey("Then the year should count as failed", func() {
			stats, err := probe.Run(context.Background(), probe.Config{BaseURL: srv.URL})
			So(err, ShouldNotBeNil)
			So(errors.Is(err, probe.ErrMismatch), ShouldBeFalse)
			So(stats.Failed, ShouldEqual, 1)
		})
	})
}

func TestRunMatchesFixtureStatus(t *testing.T) {
	Convey("Given a record on the Strong boundary", t, func() {
		svc := service.New(
			service.WithLogger(logger.NewNop()),
			service.WithSource(generator.NewFixture(
				model.MetricRecord{Year: 2023, MarketIntelligenceIndex: 75, TimeToMarketWeeks: 25, DecentralizationIndex: 75},
			)),
		)
		So(svc.Start(context.Background()), ShouldBeNil)
		mux := http.NewServeMux()
		api.NewServer(svc, svc).Register(context.Background(), mux)
		srv := httptest.NewServer(mux)
		defer srv.Close()

		Convey("Then the remote and local status should agree", func() {
			stats, err := probe.Run(context.Background(), probe.Config{BaseURL: srv.URL})
			So(err, ShouldBeNil)
			So(stats.Matched, ShouldEqual, 1)
		})
	})
}
