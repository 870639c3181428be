package data_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"

	"business-analysis/internal/data"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Client", func() {
	var (
		server *httptest.Server
		client *data.Client
	)

	BeforeEach(func() {
		mux := http.NewServeMux()
		mux.HandleFunc("/records.csv", func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "text/plain")
			_, _ = w.Write([]byte("period,revenue\n2024-01,100\n2024-02,120\n"))
		})
		mux.HandleFunc("/records", func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"records":[{"period":"2024-01","revenue":100}]}`))
		})
		mux.HandleFunc("/limited", func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Retry-After", "30")
			w.WriteHeader(http.StatusTooManyRequests)
		})
		mux.HandleFunc("/private", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusForbidden)
		})
		mux.HandleFunc("/padded", func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"records":[{"revenue":1}]}` + strings.Repeat(" ", 4096)))
		})
		mux.HandleFunc("/padded.csv", func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte("period,revenue\n" + strings.Repeat("2024-01,1\n", 500)))
		})
		server = httptest.NewServer(mux)
		DeferCleanup(server.Close)

		// httptest listens on loopback
		client = data.NewClient()
		client.AllowPrivate = true
	})

	fetchCode := func(err error) string {
		var fetchErr *data.FetchError
		Expect(errors.As(err, &fetchErr)).To(BeTrue(), "expected a fetch error, got %v", err)
		return fetchErr.Code
	}

	It("decodes CSV by extension", func() {
		s, err := client.FetchRecords(context.Background(), server.URL+"/records.csv")
		Expect(err).NotTo(HaveOccurred())
		Expect(s).To(HaveLen(2))
		Expect(s[1].Revenue).To(Equal(120.0))
	})

	It("decodes JSON by content type", func() {
		s, err := client.FetchRecords(context.Background(), server.URL+"/records")
		Expect(err).NotTo(HaveOccurred())
		Expect(s).To(HaveLen(1))
	})

	DescribeTable("maps failures to fetch errors",
		func(path string, status int, code string) {
			_, err := client.FetchRecords(context.Background(), server.URL+path)
			var fetchErr *data.FetchError
			Expect(errors.As(err, &fetchErr)).To(BeTrue())
			Expect(fetchErr.StatusCode).To(Equal(status))
			Expect(fetchErr.Code).To(Equal(code))
		},
		Entry("rate limit", "/limited", http.StatusTooManyRequests, "RATE_LIMIT_EXCEEDED"),
		Entry("forbidden", "/private", http.StatusForbidden, "UNAUTHORIZED"),
		Entry("not found", "/missing", http.StatusNotFound, "NOT_FOUND"),
	)

	It("carries Retry-After", func() {
		_, err := client.FetchRecords(context.Background(), server.URL+"/limited")
		var fetchErr *data.FetchError
		Expect(errors.As(err, &fetchErr)).To(BeTrue())
		Expect(fetchErr.RetryAfter).To(Equal("30"))
	})

	It("rejects non-http URLs", func() {
		_, err := client.FetchRecords(context.Background(), "file:///etc/passwd")
		var fetchErr *data.FetchError
		Expect(errors.As(err, &fetchErr)).To(BeTrue())
		Expect(fetchErr.Code).To(Equal("INVALID_URL"))
	})

	Describe("source restrictions", func() {
		It("refuses the loopback server by default", func() {
			_, err := data.NewClient().FetchRecords(context.Background(), server.URL+"/records")
			Expect(fetchCode(err)).To(Equal("FORBIDDEN_SOURCE"))
		})

		DescribeTable("refuses non-public hosts",
			func(rawURL string) {
				_, err := data.NewClient().FetchRecords(context.Background(), rawURL)
				Expect(fetchCode(err)).To(Equal("FORBIDDEN_SOURCE"))
			},
			Entry("localhost", "http://localhost:8080/records.json"),
			Entry("localhost subdomain", "http://api.localhost/records.json"),
			Entry("loopback v4", "http://127.0.0.1:9/records.json"),
			Entry("loopback v6", "http://[::1]:9/records.json"),
			Entry("link-local metadata", "http://169.254.169.254/latest/meta-data"),
			Entry("private range", "https://10.0.0.5/records.csv"),
			Entry("unspecified", "http://0.0.0.0/records.csv"),
		)
	})

	Describe("size limit", func() {
		It("accepts documents within the limit", func() {
			client.MaxBytes = 1024
			s, err := client.FetchRecords(context.Background(), server.URL+"/records")
			Expect(err).NotTo(HaveOccurred())
			Expect(s).To(HaveLen(1))
		})

		It("rejects oversized JSON", func() {
			client.MaxBytes = 1024
			_, err := client.FetchRecords(context.Background(), server.URL+"/padded")
			Expect(fetchCode(err)).To(Equal("RESPONSE_TOO_LARGE"))
		})

		It("rejects oversized CSV", func() {
			client.MaxBytes = 1024
			_, err := client.FetchRecords(context.Background(), server.URL+"/padded.csv")
			Expect(fetchCode(err)).To(Equal("RESPONSE_TOO_LARGE"))
		})

		It("defaults to a limit", func() {
			Expect(data.NewClient().MaxBytes).To(Equal(data.DefaultMaxFetchBytes))
		})
	})
})
