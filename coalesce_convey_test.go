package galloc

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestCoalesceBehavior(t *testing.T) {
	Convey("Given an arena with three adjacent chunks", t, func() {
		a, err := mapArena(64 * 1024)
		So(err, ShouldBeNil)

		need := neededTotal(32)
		a.mu.Lock()
		h1 := a.allocLocked(need)
		h2 := a.allocLocked(need)
		h3 := a.allocLocked(need)
		a.mu.Unlock()

		So(h1, ShouldNotEqual, 0)
		So(h2, ShouldNotEqual, 0)
		So(h3, ShouldNotEqual, 0)

		Convey("When the middle chunk is freed alone", func() {
			a.mu.Lock()
			a.freeLocked(h2)
			a.mu.Unlock()

			Convey("Then it has no free neighbor to merge with", func() {
				So(chunkSize(h2), ShouldEqual, need)
				So(a.freeHead, ShouldEqual, h2)
			})

			Convey("Then its right neighbor's PREV_IN_USE bit clears", func() {
				So(chunkPrevInUse(h3), ShouldBeFalse)
			})
		})

		Convey("When the first two chunks are freed left-to-right", func() {
			a.mu.Lock()
			a.freeLocked(h1)
			a.mu.Unlock()
			a.mu.Lock()
			a.freeLocked(h2)
			a.mu.Unlock()

			Convey("Then freeing h2 merges left into h1's chunk", func() {
				So(chunkSize(h1), ShouldEqual, 2*need)
				So(a.freeHead, ShouldEqual, h1)
			})

			Convey("Then h3 reports its left neighbor free", func() {
				So(chunkPrevInUse(h3), ShouldBeFalse)
			})
		})

		Convey("When h3 (the rightmost, bump-adjacent chunk) is freed first", func() {
			a.mu.Lock()
			a.freeLocked(h3)
			a.mu.Unlock()

			Convey("Then it only retracts the bump frontier, never gets linked", func() {
				So(a.bump, ShouldEqual, h3)
				So(a.freeHead, ShouldEqual, uintptr(0))
			})

			Convey("When h2 is freed next", func() {
				a.mu.Lock()
				a.freeLocked(h2)
				a.mu.Unlock()

				Convey("Then it finds h3 sitting at the frontier, not a linked free chunk, and just retracts further", func() {
					So(chunkSize(h2), ShouldEqual, need)
					So(a.freeHead, ShouldEqual, uintptr(0))
					So(a.bump, ShouldEqual, h2)
				})
			})
		})
	})
}
