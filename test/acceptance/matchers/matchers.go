package matchers

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	. "github.com/onsi/gomega"
	"github.com/onsi/gomega/format"
)

func readBody(actual any) ([]byte, error) {
	switch a := actual.(type) {
	case []byte:
		return a, nil
	case string:
		return []byte(a), nil
	case *http.Response:
		defer a.Body.Close()
		return io.ReadAll(a.Body)
	default:
		return nil, fmt.Errorf("expected []byte, string or *http.Response. Got:\n%s", format.Object(actual, 1))
	}
}

func parseJSONObject(actual any) (object map[string]any, err error) {
	data, err := readBody(actual)
	if err != nil {
		return
	}
	err = json.Unmarshal(data, &object)
	if err != nil {
		err = fmt.Errorf("MatchJSONObject failed to parse JSON object from actual value: %w", err)
	}
	return
}

// MatchJSONObject matches a JSON body either against a matcher for the decoded
// object or against the JSON form of a value.
func MatchJSONObject(matchWith any) OmegaMatcher {
	switch matchWith := matchWith.(type) {
	case OmegaMatcher:
		return WithTransform(parseJSONObject, matchWith)
	default:
		jsonString, err := json.Marshal(matchWith)
		if err != nil {
			panic(err)
		}
		return WithTransform(readBody, MatchJSON(jsonString))
	}
}

func links(object map[string]any) map[string]any {
	links, _ := object["_links"].(map[string]any)
	return links
}

func href(link any) any {
	object, _ := link.(map[string]any)
	return object["href"]
}

// HaveLink succeeds when a decoded HAL object links rel to an href matching
// expected, which is either a matcher or the exact href.
func HaveLink(rel string, expected any) OmegaMatcher {
	hrefMatcher, ok := expected.(OmegaMatcher)
	if !ok {
		hrefMatcher = Equal(expected)
	}
	return WithTransform(links, HaveKeyWithValue(rel, WithTransform(href, hrefMatcher)))
}

// HaveNoLink succeeds when a decoded HAL object has no link for rel.
func HaveNoLink(rel string) OmegaMatcher {
	return WithTransform(links, Not(HaveKey(rel)))
}
