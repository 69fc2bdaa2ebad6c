package dataset_test

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/okian/radar/internal/adapters/dataset"
	"github.com/okian/radar/internal/domain/generator"
	"github.com/okian/radar/internal/domain/model"
	"github.com/smartystreets/goconvey/convey"
)

func invalidField(err error) string {
	var ie *model.InvalidInputError
	if errors.As(err, &ie) {
		return ie.Field
	}
	return ""
}

func TestDecodeCSV(t *testing.T) {
	convey.Convey("Given a CSV dataset with good and bad rows", t, func() {
		data := `year,market_intelligence_index,time_to_market_weeks,decentralization_index,notes
2001,70,40,60,fine
2000,85,30,80,unsorted
2002,abc,30,80,bad number
2003,70,-5,60,negative ttm
2004,70,,60,missing ttm
2001,71,41,61,duplicate
`
		res, err := dataset.Decode(context.Background(), strings.NewReader(data), dataset.FormatCSV)

		convey.Convey("Then valid rows should be kept and sorted by year", func() {
			convey.So(err, convey.ShouldBeNil)
			convey.So(res.Records, convey.ShouldHaveLength, 2)
			convey.So(res.Records[0].Year, convey.ShouldEqual, 2000)
			convey.So(res.Records[1].Year, convey.ShouldEqual, 2001)
			convey.So(res.Records[1].MarketIntelligenceIndex, convey.ShouldEqual, 70.0)
		})

		convey.Convey("Then each bad row should be rejected with InvalidInputError", func() {
			convey.So(res.Rejected, convey.ShouldHaveLength, 4)
			for _, r := range res.Rejected {
				convey.So(errors.Is(r.Err, model.ErrInvalidInput), convey.ShouldBeTrue)
			}
			convey.So(res.Rejected[0].Row, convey.ShouldEqual, 3)
			convey.So(invalidField(res.Rejected[0].Err), convey.ShouldEqual, "market_intelligence_index")
			convey.So(invalidField(res.Rejected[1].Err), convey.ShouldEqual, "time_to_market_weeks")
			convey.So(invalidField(res.Rejected[2].Err), convey.ShouldEqual, "time_to_market_weeks")
			convey.So(res.Rejected[3].Err.Error(), convey.ShouldContainSubstring, "duplicate year")
		})
	})

	convey.Convey("Given an empty CSV", t, func() {
		res, err := dataset.Decode(context.Background(), strings.NewReader(""), dataset.FormatCSV)

		convey.Convey("Then it should yield nothing", func() {
			convey.So(err, convey.ShouldBeNil)
			convey.So(res.Records, convey.ShouldBeEmpty)
			convey.So(res.Rejected, convey.ShouldBeEmpty)
		})
	})
}

func TestDecodeJSON(t *testing.T) {
	convey.Convey("Given a JSON dataset", t, func() {
		data := `[
  {"year": 2020, "market_intelligence_index": 85, "time_to_market_weeks": 30, "decentralization_index": 80},
  {"year": 2021, "market_intelligence_index": "high", "time_to_market_weeks": 30, "decentralization_index": 80},
  {"year": 2022, "time_to_market_weeks": 30, "decentralization_index": 80}
]`
		res, err := dataset.Decode(context.Background(), strings.NewReader(data), dataset.FormatJSON)

		convey.Convey("Then typed and missing errors should reject their rows only", func() {
			convey.So(err, convey.ShouldBeNil)
			convey.So(res.Records, convey.ShouldHaveLength, 1)
			convey.So(res.Records[0].Year, convey.ShouldEqual, 2020)
			convey.So(res.Rejected, convey.ShouldHaveLength, 2)
			convey.So(invalidField(res.Rejected[0].Err), convey.ShouldEqual, "market_intelligence_index")
			convey.So(invalidField(res.Rejected[1].Err), convey.ShouldEqual, "market_intelligence_index")
		})
	})

	convey.Convey("Given malformed JSON", t, func() {
		_, err := dataset.Decode(context.Background(), strings.NewReader(`{"year":`), dataset.FormatJSON)

		convey.Convey("Then decoding should fail as a whole", func() {
			convey.So(errors.Is(err, dataset.ErrDecode), convey.ShouldBeTrue)
		})
	})
}

func TestDecodeYAML(t *testing.T) {
	convey.Convey("Given a YAML dataset", t, func() {
		data := `
- year: 2019
  market_intelligence_index: 60
  time_to_market_weeks: 54
  decentralization_index: 40
- year: 2020
  market_intelligence_index: 70
  time_to_market_weeks: lots
  decentralization_index: 50
`
		res, err := dataset.Decode(context.Background(), strings.NewReader(data), dataset.FormatYAML)

		convey.Convey("Then the non-numeric row should be rejected", func() {
			convey.So(err, convey.ShouldBeNil)
			convey.So(res.Records, convey.ShouldHaveLength, 1)
			convey.So(res.Records[0].TimeToMarketWeeks, convey.ShouldEqual, 54.0)
			convey.So(res.Rejected, convey.ShouldHaveLength, 1)
			convey.So(errors.Is(res.Rejected[0].Err, model.ErrInvalidInput), convey.ShouldBeTrue)
		})
	})

	convey.Convey("Given a YAML mapping instead of a sequence", t, func() {
		_, err := dataset.Decode(context.Background(), strings.NewReader("year: 2020\n"), dataset.FormatYAML)

		convey.Convey("Then it should fail to decode", func() {
			convey.So(errors.Is(err, dataset.ErrDecode), convey.ShouldBeTrue)
		})
	})
}

func TestEncodeDecodeFormats(t *testing.T) {
	convey.Convey("Given a synthetic dataset", t, func() {
		ctx := context.Background()
		records, err := generator.NewSynthetic(generator.WithYears(2010, 2014)).Records(ctx)
		convey.So(err, convey.ShouldBeNil)

		for _, format := range []dataset.Format{dataset.FormatJSON, dataset.FormatYAML, dataset.FormatCSV} {
			format := format
			convey.Convey("When writing and reading it back as "+string(format), func() {
				var buf bytes.Buffer
				convey.So(dataset.Encode(ctx, &buf, format, records), convey.ShouldBeNil)
				res, err := dataset.Decode(ctx, &buf, format)

				convey.Convey("Then the records should survive", func() {
					convey.So(err, convey.ShouldBeNil)
					convey.So(res.Rejected, convey.ShouldBeEmpty)
					convey.So(res.Records, convey.ShouldResemble, records)
				})
			})
		}
	})

	convey.Convey("Given an unknown format", t, func() {
		err := dataset.Encode(context.Background(), &bytes.Buffer{}, dataset.Format("xml"), nil)

		convey.Convey("Then it should fail", func() {
			convey.So(errors.Is(err, dataset.ErrUnknownFormat), convey.ShouldBeTrue)
		})
	})
}

func TestParseFormat(t *testing.T) {
	convey.Convey("Given format names and paths", t, func() {
		f, err := dataset.ParseFormat("YML")
		convey.So(err, convey.ShouldBeNil)
		convey.So(f, convey.ShouldEqual, dataset.FormatYAML)

		f, err = dataset.FormatFromPath("/tmp/data.csv")
		convey.So(err, convey.ShouldBeNil)
		convey.So(f, convey.ShouldEqual, dataset.FormatCSV)

		_, err = dataset.FormatFromPath("/tmp/data.parquet")
		convey.So(errors.Is(err, dataset.ErrUnknownFormat), convey.ShouldBeTrue)
	})
}

func TestFileSource(t *testing.T) {
	convey.Convey("Given a dataset file with one bad row", t, func() {
		dir := t.TempDir()
		path := filepath.Join(dir, "metrics.csv")
		content := "year,market_intelligence_index,time_to_market_weeks,decentralization_index\n" +
			"2020,85,30,80\n" +
			"2021,85,0,80\n"
		convey.So(os.WriteFile(path, []byte(content), 0o600), convey.ShouldBeNil)

		src := dataset.NewFile(path)

		convey.Convey("When loading records", func() {
			records, err := src.Records(context.Background())

			convey.Convey("Then it should return the valid year and remember the rejection", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(records, convey.ShouldHaveLength, 1)
				convey.So(src.Path(), convey.ShouldEqual, path)
				rejected := src.Rejected()
				convey.So(rejected, convey.ShouldHaveLength, 1)
				convey.So(errors.Is(rejected[0], model.ErrInvalidInput), convey.ShouldBeTrue)
				convey.So(rejected[0].Error(), convey.ShouldContainSubstring, "row 2")
			})
		})
	})

	convey.Convey("Given a missing file", t, func() {
		_, err := dataset.NewFile("/non/existent/metrics.json").Records(context.Background())

		convey.Convey("Then it should return an error", func() {
			convey.So(err, convey.ShouldNotBeNil)
		})
	})
}
