package testutils

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	. "github.com/onsi/gomega"
)

type TestClient struct {
	baseURL url.URL
}

func NewTestClient(baseURL url.URL) *TestClient {
	return &TestClient{baseURL: baseURL}
}

func (client *TestClient) endpoint(path ...string) *url.URL {
	return client.baseURL.JoinPath(path...)
}

func (client *TestClient) BaseURL() *url.URL {
	copy := client.baseURL
	return &copy
}

func (client *TestClient) sendRequestWithDefaultHeaders(method string, endpoint *url.URL, body any) (res *http.Response) {
	var reqBody io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		Expect(err).NotTo(HaveOccurred())
		reqBody = bytes.NewBuffer(jsonBody)
	}

	req, err := http.NewRequest(method, endpoint.String(), reqBody)
	Expect(err).NotTo(HaveOccurred())
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	res, err = http.DefaultClient.Do(req)
	Expect(err).NotTo(HaveOccurred())
	return
}

func (client *TestClient) CreatePage(page any) (response *http.Response) {
	return client.sendRequestWithDefaultHeaders("POST", client.endpoint("/api/pages"), page)
}

func (client *TestClient) GetPage(id string) (response *http.Response) {
	return client.sendRequestWithDefaultHeaders("GET", client.endpoint("/api/pages", id), nil)
}

func (client *TestClient) GetPageFields() (response *http.Response) {
	return client.sendRequestWithDefaultHeaders("GET", client.endpoint("/api/pages/fields"), nil)
}

// Get follows a link returned by the API, relative or absolute.
func (client *TestClient) Get(href string) (response *http.Response) {
	uri, err := url.Parse(href)
	Expect(err).NotTo(HaveOccurred())
	endpoint := client.baseURL.JoinPath(uri.Path)
	endpoint.RawQuery = uri.RawQuery
	return client.sendRequestWithDefaultHeaders("GET", endpoint, nil)
}

type ListPagesOptions struct {
	Webspace  string
	Locale    string
	Page      int
	Limit     int
	Fields    string
	SortBy    string
	SortOrder string
	Search    string
}

func (client *TestClient) ListPages(options ListPagesOptions) (response *http.Response) {
	url := client.endpoint("/api/pages")
	query := url.Query()
	// Default to the standard webspace so that the zero value of the options struct keeps tests readable.
	if options.Webspace == "" {
		options.Webspace = DefaultWebspace
	}
	if options.Locale == "" {
		options.Locale = DefaultLocale
	}
	query.Set("webspace", options.Webspace)
	query.Set("locale", options.Locale)
	if options.Page != 0 {
		query.Set("page", fmt.Sprint(options.Page))
	}
	if options.Limit != 0 {
		query.Set("limit", fmt.Sprint(options.Limit))
	}
	for key, value := range map[string]string{
		"fields":    options.Fields,
		"sortBy":    options.SortBy,
		"sortOrder": options.SortOrder,
		"search":    options.Search,
	} {
		if value != "" {
			query.Set(key, value)
		}
	}
	url.RawQuery = query.Encode()

	return client.sendRequestWithDefaultHeaders("GET", url, nil)
}

func (client *TestClient) Search(q string, locale string) (response *http.Response) {
	url := client.endpoint("/search")
	query := url.Query()
	query.Set("q", q)
	if locale != "" {
		query.Set("locale", locale)
	}
	url.RawQuery = query.Encode()
	return client.sendRequestWithDefaultHeaders("GET", url, nil)
}
