package refstring

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("allocate", func() {
	It("should allocate a zeroed reference string", func() {
		refs, err := allocate(3)

		Expect(err).NotTo(HaveOccurred())
		Expect(refs).To(Equal(ReferenceString{0, 0, 0}))
	})

	It("should report a length make rejects", func() {
		refs, err := allocate(-1)

		Expect(err).To(MatchError(ErrAllocationFailure))
		Expect(refs).To(BeNil())
	})
})
