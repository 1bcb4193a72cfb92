package domain

import (
	"encoding/json"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Set", func() {
	It("marshals to an ordered JSON array", func() {
		Expect(json.Marshal(NewSet("title", "id"))).
			To(MatchJSON(`["id", "title"]`))
	})

	It("unmarshals from JSON array", func() {
		var output Set[string]
		err := json.Unmarshal([]byte(`["title", "id"]`), &output)
		Expect(err).NotTo(HaveOccurred())

		Expect(output).To(Equal(NewSet("title", "id")))
	})

	It("removes duplicates", func() {
		Expect(NewSet("id", "title", "id")).To(Equal(
			NewSet("id", "title"),
		))
	})

	It("compares equal with other sets w/ same elements regardless of ordering", func() {
		Expect(NewSet("id", "title")).To(Equal(
			NewSet("title", "id"),
		))
	})

	It("reports membership", func() {
		set := NewSet("url", "id", "title")
		Expect(set.Contains("title")).To(BeTrue())
		Expect(set.Contains("template")).To(BeFalse())
	})

	Describe("ParseSet", func() {
		It("splits a comma separated list", func() {
			Expect(ParseSet("title, id,,url")).To(Equal(NewSet("id", "title", "url")))
		})

		It("returns nil for a blank list", func() {
			Expect(ParseSet(" , ")).To(BeNil())
			Expect(ParseSet("")).To(BeNil())
		})
	})
})
