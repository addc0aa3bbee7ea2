package ingest_test

import (
	"errors"
	"testing"

	"github.com/okian/statusboard/internal/domain/ingest"
	"github.com/okian/statusboard/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func TestParseFilename(t *testing.T) {
	Convey("Given data file names", t, func() {
		Convey("When the name follows <model>_<temperature>.json", func() {
			key, diags, err := ingest.ParseFilename("claude-opus-4_0.7.json")

			Convey("Then model and temperature should be split on the first separator", func() {
				So(err, ShouldBeNil)
				So(diags, ShouldBeEmpty)
				So(key.Model, ShouldEqual, "claude-opus-4")
				So(key.Temperature, ShouldEqual, model.Temperature(0.7))
			})
		})

		Convey("When the temperature is an integer", func() {
			key, _, err := ingest.ParseFilename("gpt-4o_1.json")
			So(err, ShouldBeNil)
			So(key.Temperature, ShouldEqual, model.Temperature(1))
		})

		Convey("When the name has no separator", func() {
			key, diags, err := ingest.ParseFilename("gpt-4o.json")

			Convey("Then a key is still produced with an invalid temperature", func() {
				So(err, ShouldBeNil)
				So(key.Model, ShouldEqual, "gpt-4o")
				So(key.Temperature.Valid(), ShouldBeFalse)
				So(diags, ShouldHaveLength, 1)
				So(diags[0].Action, ShouldEqual, ingest.ActionDefaulted)
				So(diags[0].Field, ShouldEqual, "temperature")
			})
		})

		Convey("When the remainder after the first separator is not a number", func() {
			key, diags, err := ingest.ParseFilename("gpt-4o_0.7_retry.json")

			Convey("Then the temperature should be the invalid sentinel", func() {
				So(err, ShouldBeNil)
				So(key.Model, ShouldEqual, "gpt-4o")
				So(key.Temperature.Valid(), ShouldBeFalse)
				So(diags, ShouldHaveLength, 1)
			})
		})

		Convey("When a version suffix follows the temperature", func() {
			key, diags, err := ingest.ParseFilename("gpt-4o_0.7_v2.json")

			Convey("Then the whole remainder is the temperature segment and it is rejected", func() {
				So(err, ShouldBeNil)
				So(key.Model, ShouldEqual, "gpt-4o")
				So(key.Temperature.Equal(model.Temperature(0.7)), ShouldBeFalse)
				So(key.Temperature.Valid(), ShouldBeFalse)
				So(diags, ShouldHaveLength, 1)
				So(diags[0].Action, ShouldEqual, ingest.ActionDefaulted)
				So(diags[0].Message, ShouldContainSubstring, `"0.7_v2"`)
			})
		})

		Convey("When the temperature spells a non-finite value", func() {
			key, diags, err := ingest.ParseFilename("gpt-4o_NaN.json")
			So(err, ShouldBeNil)
			So(key.Temperature.Valid(), ShouldBeFalse)
			So(diags, ShouldHaveLength, 1)
		})

		Convey("When the suffix differs in case", func() {
			_, _, err := ingest.ParseFilename("gpt-4o_0.7.JSON")
			So(errors.Is(err, ingest.ErrNotJSON), ShouldBeTrue)
		})

		Convey("When the model segment is empty", func() {
			_, _, err := ingest.ParseFilename("_0.7.json")
			So(errors.Is(err, ingest.ErrMalformedName), ShouldBeTrue)
		})
	})
}
