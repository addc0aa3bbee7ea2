package api_test

import (
	"errors"
	"testing"

	"github.com/okian/statusboard/internal/adapters/http/api"
	. "github.com/smartystreets/goconvey/convey"
)

func TestErrors(t *testing.T) {
	Convey("Given an operation error", t, func() {
		cause := errors.New("disk on fire")

		Convey("When it carries both a kind and a cause", func() {
			err := api.WrapKind("api.post_reload", api.ErrReload, cause)

			Convey("Then both should be matchable", func() {
				So(errors.Is(err, api.ErrReload), ShouldBeTrue)
				So(errors.Is(err, cause), ShouldBeTrue)
				So(err.Error(), ShouldEqual, "api.post_reload: reload failed: disk on fire")
			})
		})

		Convey("When it carries only a kind", func() {
			err := api.NewKind("api.get_items", api.ErrBadRequest)
			So(errors.Is(err, api.ErrBadRequest), ShouldBeTrue)
			So(err.Error(), ShouldEqual, "api.get_items: bad request")
		})

		Convey("When wrapping nil", func() {
			So(api.Wrap("api.x", nil), ShouldBeNil)
		})
	})
}
