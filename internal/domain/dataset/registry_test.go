package dataset_test

import (
	"path/filepath"
	"testing"

	"github.com/okian/trailfeed/internal/domain/dataset"
	. "github.com/smartystreets/goconvey/convey"
)

func TestRegistry(t *testing.T) {
	Convey("Given a registry rooted at a data directory", t, func() {
		dir := filepath.Join("srv", "data")
		reg := dataset.NewRegistry(dir)

		Convey("Then it should resolve the default file names", func() {
			races, err := reg.Path(dataset.Races)
			So(err, ShouldBeNil)
			So(races, ShouldEqual, filepath.Join(dir, "cleaned_race.json"))

			runners, err := reg.Path(dataset.Runners)
			So(err, ShouldBeNil)
			So(runners, ShouldEqual, filepath.Join(dir, "cleaned_runner.json"))
		})

		Convey("Then it should expose the base directory", func() {
			So(reg.Dir(), ShouldEqual, dir)
		})

		Convey("Then an unknown kind should be an invalid type", func() {
			_, err := reg.Path(dataset.Kind(42))
			So(err, ShouldEqual, dataset.ErrInvalidType)
		})
	})

	Convey("Given a registry with overridden file names", t, func() {
		reg := dataset.NewRegistry("data",
			dataset.WithFile(dataset.Races, "races-2024.json"),
			dataset.WithFile(dataset.Runners, ""),
			dataset.WithFile(dataset.Kind(0), "ignored.json"),
		)

		Convey("Then the override should apply and empty names should be ignored", func() {
			races, _ := reg.Path(dataset.Races)
			runners, _ := reg.Path(dataset.Runners)
			So(races, ShouldEqual, filepath.Join("data", "races-2024.json"))
			So(runners, ShouldEqual, filepath.Join("data", "cleaned_runner.json"))
		})

		Convey("Then invalid kinds should not be registered", func() {
			_, err := reg.Path(dataset.Kind(0))
			So(err, ShouldEqual, dataset.ErrInvalidType)
		})
	})
}
