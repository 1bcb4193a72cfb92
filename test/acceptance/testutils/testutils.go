package testutils

import (
	"fmt"

	"github.com/google/uuid"
	. "github.com/onsi/gomega"
)

const (
	DefaultWebspace = "sulu_io"
	DefaultLocale   = "en"
)

type NewPage struct {
	ID        *uuid.UUID `json:"id,omitempty"`
	Webspace  string     `json:"webspace"`
	Locale    string     `json:"locale"`
	Title     string     `json:"title"`
	URL       string     `json:"url"`
	Template  string     `json:"template,omitempty"`
	Published bool       `json:"published"`
}

func MakeValidPage(title string, n int) NewPage {
	id := GenerateRandomUUID()
	return NewPage{
		ID:        &id,
		Webspace:  DefaultWebspace,
		Locale:    DefaultLocale,
		Title:     title,
		URL:       fmt.Sprintf("/page-%d", n),
		Published: true,
	}
}

func GenerateRandomUUID() uuid.UUID {
	id, err := uuid.NewRandom()
	Expect(err).NotTo(HaveOccurred())
	return id
}
