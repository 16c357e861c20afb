package dataset_test

import (
	"fmt"
	"testing"

	"github.com/okian/trailfeed/internal/domain/dataset"
	. "github.com/smartystreets/goconvey/convey"
)

func TestParse(t *testing.T) {
	Convey("Given the type parameter parser", t, func() {
		Convey("When parsing known keys", func() {
			races, rErr := dataset.Parse("races")
			runners, uErr := dataset.Parse("runners")

			Convey("Then it should return the matching kinds", func() {
				So(rErr, ShouldBeNil)
				So(uErr, ShouldBeNil)
				So(races, ShouldEqual, dataset.Races)
				So(runners, ShouldEqual, dataset.Runners)
			})
		})

		Convey("When parsing unknown keys", func() {
			for _, raw := range []string{"", "foo", "Races", "RUNNERS", " races", "runners ", "race", "runner"} {
				kind, err := dataset.Parse(raw)

				Convey(fmt.Sprintf("Then %q should be rejected as an invalid type", raw), func() {
					So(err, ShouldEqual, dataset.ErrInvalidType)
					So(kind.Valid(), ShouldBeFalse)
				})
			}
		})
	})
}

func TestKind(t *testing.T) {
	Convey("Given the dataset kinds", t, func() {
		Convey("Then String should round-trip through Parse", func() {
			for _, k := range dataset.Kinds() {
				parsed, err := dataset.Parse(k.String())
				So(err, ShouldBeNil)
				So(parsed, ShouldEqual, k)
			}
		})

		Convey("Then the default should be runners", func() {
			So(dataset.Default, ShouldEqual, dataset.Runners)
		})

		Convey("Then the zero value should not be valid", func() {
			var k dataset.Kind
			So(k.Valid(), ShouldBeFalse)
			So(k.String(), ShouldEqual, "unknown")
		})

		Convey("Then Kinds should list races before runners", func() {
			So(dataset.Kinds(), ShouldResemble, []dataset.Kind{dataset.Races, dataset.Runners})
		})
	})
}

func TestErrorMessage(t *testing.T) {
	Convey("Given resolution errors", t, func() {
		Convey("Then each kind should map to its client message", func() {
			So(dataset.ErrorMessage(dataset.ErrInvalidType), ShouldEqual, "Invalid type")
			So(dataset.ErrorMessage(dataset.ErrFileNotFound), ShouldEqual, "File not found")
			So(dataset.ErrorMessage(dataset.ErrRead), ShouldEqual, "Read failed")
		})

		Convey("Then wrapped errors should still match", func() {
			err := fmt.Errorf("resolve races: %w", dataset.ErrFileNotFound)
			So(dataset.ErrorMessage(err), ShouldEqual, "File not found")
		})

		Convey("Then unknown errors should be reported as read failures", func() {
			So(dataset.ErrorMessage(fmt.Errorf("boom")), ShouldEqual, "Read failed")
		})
	})
}
