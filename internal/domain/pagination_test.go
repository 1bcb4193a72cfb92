package domain

import (
	"encoding/json"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("TotalPages", func() {
	DescribeTable("rounds up partial pages",
		func(total int64, limit Limit, expected int) {
			Expect(TotalPages(total, limit)).To(Equal(expected))
		},
		Entry("no results", int64(0), Limit(10), 0),
		Entry("a single result", int64(1), Limit(10), 1),
		Entry("exactly two pages", int64(20), Limit(10), 2),
		Entry("one item spilling onto a third page", int64(21), Limit(10), 3),
		Entry("ten results in pages of three", int64(10), Limit(3), 4),
		Entry("page size of one", int64(7), Limit(1), 7),
	)

	When("the limit is unlimited", func() {
		It("always has exactly one page", func() {
			Expect(TotalPages(0, Unlimited)).To(Equal(1))
			Expect(TotalPages(1000, Unlimited)).To(Equal(1))
		})
	})
})

var _ = Describe("ValidatePage", func() {
	It("accepts the first page of an empty result", func() {
		Expect(ValidatePage(1, 10, 0)).To(Succeed())
	})

	It("accepts an unlimited page", func() {
		Expect(ValidatePage(1, Unlimited, 42)).To(Succeed())
	})

	DescribeTable("rejects invalid arguments",
		func(number int, limit Limit, total int64) {
			Expect(ValidatePage(number, limit, total)).To(MatchError(ErrInvalidArgument))
		},
		Entry("page zero", 0, Limit(10), int64(5)),
		Entry("negative page", -1, Limit(10), int64(5)),
		Entry("negative total", 1, Limit(10), int64(-1)),
		Entry("zero limit", 1, Limit(0), int64(5)),
		Entry("negative limit other than unlimited", 1, Limit(-5), int64(5)),
	)
})

var _ = Describe("Limit", func() {
	It("marshals a page size as a number", func() {
		Expect(json.Marshal(Limit(3))).To(MatchJSON(`3`))
	})

	It("marshals unlimited as null", func() {
		Expect(json.Marshal(Unlimited)).To(MatchJSON(`null`))
	})

	It("computes the offset of a page", func() {
		Expect(Limit(10).Offset(1)).To(Equal(0))
		Expect(Limit(10).Offset(3)).To(Equal(20))
	})

	It("finds the page an offset belongs to", func() {
		Expect(Limit(10).PageNumber(0)).To(Equal(1))
		Expect(Limit(10).PageNumber(20)).To(Equal(3))
		Expect(Unlimited.PageNumber(20)).To(Equal(1))
	})

	It("never offsets an unlimited page", func() {
		Expect(Unlimited.Offset(4)).To(Equal(0))
	})

	It("is only valid when positive or unlimited", func() {
		Expect(Limit(1).Valid()).To(BeTrue())
		Expect(Unlimited.Valid()).To(BeTrue())
		Expect(Limit(0).Valid()).To(BeFalse())
		Expect(Limit(-2).Valid()).To(BeFalse())
	})
})
