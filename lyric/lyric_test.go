package lyric

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/yhkl-dev/EaseCLI/domain"
)

const sample = "[00:11.70]line A\ngarbage\n[01:03.41]line B"

func TestParse(t *testing.T) {
	Convey("Given a lyric blob with one garbage line", t, func() {
		idx := Parse(sample)

		Convey("Only timestamped lines are kept", func() {
			So(idx, ShouldHaveLength, 2)
			So(idx[0], ShouldResemble, domain.LyricLine{StartMS: 11_000, Content: "line A"})
			So(idx[1], ShouldResemble, domain.LyricLine{StartMS: 63_000, Content: "line B"})
		})
	})

	Convey("Given an empty blob", t, func() {
		So(Parse(""), ShouldBeEmpty)
	})

	Convey("Given lines with leading whitespace and long sub-seconds", t, func() {
		idx := Parse("   [00:00.000] intro\n[02:05.123456]tail")

		Convey("The timestamp is still found and sub-seconds are dropped", func() {
			So(idx, ShouldHaveLength, 2)
			So(idx[0].StartMS, ShouldEqual, 0)
			So(idx[0].Content, ShouldEqual, " intro")
			So(idx[1].StartMS, ShouldEqual, 125_000)
		})
	})

	Convey("Given entries out of order", t, func() {
		idx := Parse("[00:30.00]late\n[00:10.00]early")

		Convey("Input order is preserved", func() {
			So(idx[0].Content, ShouldEqual, "late")
			So(idx[1].Content, ShouldEqual, "early")
		})
	})

	Convey("Given an entry without sub-seconds", t, func() {
		So(Parse("[00:10]nope"), ShouldBeEmpty)
	})
}

func TestAt(t *testing.T) {
	Convey("Given the sample index", t, func() {
		idx := Parse(sample)

		So(idx.At(10_000), ShouldEqual, "line A")
		So(idx.At(11_000), ShouldEqual, "line A")
		So(idx.At(62_999), ShouldEqual, "line A")
		So(idx.At(63_000), ShouldEqual, "line B")
		So(idx.At(999_999), ShouldEqual, "line B")
	})

	Convey("Given an empty index", t, func() {
		var idx Index
		So(idx.At(0), ShouldEqual, NoLyric)
		So(idx.Position(0), ShouldEqual, -1)
	})
}

func TestFormatRoundTrip(t *testing.T) {
	Convey("Formatting then parsing keeps the timeline", t, func() {
		idx := Parse("[00:00.50]a\n[00:59.99]b\n[12:34.5]c")
		again := Parse(Format(idx))

		So(again, ShouldResemble, idx)
		So(Format(again), ShouldEqual, "[00:00.000]a\n[00:59.000]b\n[12:34.000]c\n")
	})
}
