package residency

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Frames", func() {
	var f *Frames

	BeforeEach(func() {
		f = NewFrames(3)
	})

	It("should start empty", func() {
		Expect(f.Len()).To(Equal(3))
		Expect(f.Occupied()).To(Equal(0))
		Expect(f.Snapshot()).To(Equal([]int{Empty, Empty, Empty}))
		Expect(f.IsEmpty(1)).To(BeTrue())
	})

	It("should find the frame holding a page", func() {
		f.Place(0, 4)
		f.Place(2, 7)

		slot, ok := f.Lookup(7)
		Expect(ok).To(BeTrue())
		Expect(slot).To(Equal(2))

		_, ok = f.Lookup(5)
		Expect(ok).To(BeFalse())
	})

	It("should return the replaced page", func() {
		Expect(f.Place(1, 4)).To(Equal(Empty))
		Expect(f.Place(1, 5)).To(Equal(4))
		Expect(f.Page(1)).To(Equal(5))
		Expect(f.Occupied()).To(Equal(1))
	})

	It("should panic when a page would occupy two frames", func() {
		f.Place(0, 4)

		Expect(func() { f.Place(1, 4) }).To(Panic())
	})

	It("should not share the snapshot with the frames", func() {
		f.Place(0, 4)
		s := f.Snapshot()
		f.Place(0, 5)

		Expect(s[0]).To(Equal(4))
	})

	It("should empty all frames on reset", func() {
		f.Place(0, 4)
		f.Place(1, 5)
		f.Reset()

		Expect(f.Occupied()).To(Equal(0))
	})

	It("should allow zero frames", func() {
		z := NewFrames(0)

		_, ok := z.Lookup(0)
		Expect(ok).To(BeFalse())
		Expect(z.Snapshot()).To(BeEmpty())
	})
})
