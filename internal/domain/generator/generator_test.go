package generator_test

import (
	"context"
	"errors"
	"testing"

	"github.com/okian/radar/internal/domain/generator"
	"github.com/okian/radar/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func TestSynthetic_Records(t *testing.T) {
	Convey("Given a synthetic source with default options", t, func() {
		src := generator.NewSynthetic()
		ctx := context.Background()

		Convey("When generating records", func() {
			records, err := src.Records(ctx)

			Convey("Then it should cover 1998 through 2023", func() {
				So(err, ShouldBeNil)
				So(records, ShouldHaveLength, 26)
				So(records[0].Year, ShouldEqual, 1998)
				So(records[len(records)-1].Year, ShouldEqual, 2023)
				So(src.Seed(), ShouldEqual, generator.DefaultSeed)
			})

			Convey("And every record should pass boundary validation", func() {
				for _, r := range records {
					So(r.Validate(), ShouldBeNil)
				}
			})

			Convey("And the documented floors and clips should hold", func() {
				for _, r := range records {
					So(r.TimeToMarketWeeks, ShouldBeGreaterThanOrEqualTo, 12)
					So(r.EmergingTechDetectionDays, ShouldBeGreaterThanOrEqualTo, 5)
					So(r.PeripheryDeploymentDays, ShouldBeGreaterThanOrEqualTo, 10)
					So(r.InternationalTalent, ShouldBeGreaterThanOrEqualTo, 40000)
					So(r.RnDPercentRevenue, ShouldBeBetweenOrEqual, 9, 13)
					So(r.MarketIntelligenceIndex, ShouldBeBetweenOrEqual, 0, 100)
					So(r.DecentralizationIndex, ShouldBeBetweenOrEqual, 0, 100)
				}
			})

			Convey("And time to market should trend down", func() {
				So(records[len(records)-1].TimeToMarketWeeks, ShouldBeLessThan, records[0].TimeToMarketWeeks)
			})
		})

		Convey("When generating twice", func() {
			first, err1 := src.Records(ctx)
			second, err2 := src.Records(ctx)

			Convey("Then both runs should be identical", func() {
				So(err1, ShouldBeNil)
				So(err2, ShouldBeNil)
				So(second, ShouldResemble, first)
			})
		})
	})

	Convey("Given two sources with the same seed", t, func() {
		a := generator.NewSynthetic(generator.WithSeed(7), generator.WithYears(2000, 2010))
		b := generator.NewSynthetic(generator.WithSeed(7), generator.WithYears(2000, 2010))

		Convey("Then they should agree", func() {
			ra, _ := a.Records(context.Background())
			rb, _ := b.Records(context.Background())
			So(ra, ShouldHaveLength, 11)
			So(rb, ShouldResemble, ra)
		})
	})

	Convey("Given two sources with different seeds", t, func() {
		a := generator.NewSynthetic(generator.WithSeed(1))
		b := generator.NewSynthetic(generator.WithSeed(2))

		Convey("Then they should differ", func() {
			ra, _ := a.Records(context.Background())
			rb, _ := b.Records(context.Background())
			So(rb, ShouldNotResemble, ra)
		})
	})

	Convey("Given a reversed year range", t, func() {
		src := generator.NewSynthetic(generator.WithYears(2010, 2000))

		Convey("Then it should fail with ErrInvalidRange", func() {
			_, err := src.Records(context.Background())
			So(errors.Is(err, generator.ErrInvalidRange), ShouldBeTrue)
		})
	})

	Convey("Given a cancelled context", t, func() {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		Convey("Then generation should stop", func() {
			_, err := generator.NewSynthetic().Records(ctx)
			So(errors.Is(err, context.Canceled), ShouldBeTrue)
		})
	})
}

func TestFixture(t *testing.T) {
	Convey("Given a fixture source", t, func() {
		rec := model.MetricRecord{Year: 2020, MarketIntelligenceIndex: 70, TimeToMarketWeeks: 30, DecentralizationIndex: 60}
		src := generator.NewFixture(rec)

		Convey("When a caller mutates the returned slice", func() {
			first, _ := src.Records(context.Background())
			first[0].Year = 1900
			second, _ := src.Records(context.Background())

			Convey("Then the fixture should be unaffected", func() {
				So(second[0].Year, ShouldEqual, 2020)
			})
		})
	})
}
