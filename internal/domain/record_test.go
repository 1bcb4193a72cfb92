package domain

import (
	"encoding/json"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Record", func() {
	It("can be unmarshalled from an empty JSON object", func() {
		var rec Record
		Expect(json.Unmarshal([]byte("{}"), &rec)).To(Succeed())
		Expect(rec).To(Equal(Record{}))
	})

	It("can be unmarshalled from a JSON object w/ entries", func() {
		var rec Record
		Expect(json.Unmarshal([]byte(`{ "title": "Home" }`), &rec)).To(Succeed())
		Expect(rec).To(Equal(Record{map[string]any{"title": "Home"}}))
	})

	It("treats an empty entry map like a nil one", func() {
		Expect(NewRecord(map[string]any{})).To(Equal(Record{}))
	})

	When("it has entries", func() {
		It("marshalls to JSON object", func() {
			rec := NewRecord(map[string]any{"title": "Home"})
			Expect(json.Marshal(rec)).To(MatchJSON(`{ "title": "Home" }`))
		})

		It("looks up entries by key", func() {
			rec := NewRecord(map[string]any{"title": "Home"})
			value, ok := rec.Get("title")
			Expect(ok).To(BeTrue())
			Expect(value).To(Equal("Home"))
			_, ok = rec.Get("url")
			Expect(ok).To(BeFalse())
		})
	})

	When("nil", func() {
		It("marshalls to empty object JSON value", func() {
			Expect(json.Marshal(Record{})).To(MatchJSON(`{}`))
		})
	})
})
