package anthropic_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/tidwall/gjson"

	"github.com/papercomputeco/parley/pkg/anthropic"
)

var _ = Describe("Client", func() {
	var (
		ctx    context.Context
		up     *upstream
		client *anthropic.Client
	)

	BeforeEach(func() {
		ctx = context.Background()
		up = newUpstream()

		var err error
		client, err = anthropic.New(anthropic.Config{
			APIKey:      "test-key",
			Model:       testModel,
			MaxTokens:   512,
			Temperature: anthropic.Float(0.7),
			BaseURL:     up.URL(),
		}, nil)
		Expect(err).NotTo(HaveOccurred())
	})

	AfterEach(func() {
		up.Close()
	})

	Describe("SendMessage", func() {
		It("returns exactly the reply text", func() {
			res := client.SendMessage(ctx, "hello")
			Expect(res.OK()).To(BeTrue())
			Expect(res.String()).To(Equal("hi"))
			Expect(res.Text).To(Equal("hi"))
		})

		It("sends the required headers", func() {
			client.SendMessage(ctx, "hello")

			_, headers, _ := up.lastRequest()
			Expect(headers.Get("x-api-key")).To(Equal("test-key"))
			Expect(headers.Get("anthropic-version")).To(Equal("2023-06-01"))
			Expect(headers.Get("content-type")).To(Equal("application/json"))
		})

		It("sends a single user message with one text block", func() {
			client.SendMessage(ctx, "hello \"quoted\"\nworld")

			req, _, raw := up.lastRequest()
			Expect(req.Model).To(Equal(testModel))
			Expect(req.MaxTokens).To(Equal(512))
			Expect(req.Temperature).To(Equal(0.7))
			Expect(req.Messages).To(HaveLen(1))
			Expect(req.Messages[0].Role).To(Equal("user"))
			Expect(req.Messages[0].Content).To(HaveLen(1))
			Expect(req.Messages[0].Content[0].Type).To(Equal("text"))
			Expect(req.Messages[0].Content[0].Text).To(Equal("hello \"quoted\"\nworld"))
			Expect(gjson.GetBytes(raw, "messages.0.content.0.source").Exists()).To(BeFalse())
		})

		It("always sends temperature, even when zero", func() {
			zero, err := anthropic.New(anthropic.Config{APIKey: "k", Model: testModel, BaseURL: up.URL()}, nil)
			Expect(err).NotTo(HaveOccurred())

			zero.SendMessage(ctx, "hello")

			_, _, raw := up.lastRequest()
			Expect(gjson.GetBytes(raw, "temperature").Exists()).To(BeTrue())
			Expect(gjson.GetBytes(raw, "temperature").Float()).To(Equal(0.0))
			Expect(gjson.GetBytes(raw, "max_tokens").Int()).To(Equal(int64(anthropic.DefaultMaxTokens)))
		})

		DescribeTable("renders non-200 statuses as error strings",
			func(status int, phrase string) {
				up.respond(status, `{"type":"error","error":{"type":"some_error","message":"provider says no"}}`)

				res := client.SendMessage(ctx, "hello")
				Expect(res.OK()).To(BeFalse())
				Expect(res.String()).To(HavePrefix("Error: "))
				Expect(res.String()).To(ContainSubstring(phrase))
				Expect(res.String()).NotTo(ContainSubstring("provider says no"))
				Expect(res.Err.Kind).To(Equal(anthropic.KindStatus))
				Expect(res.Err.StatusCode).To(Equal(status))
			},
			Entry("400", 400, "Invalid request error"),
			Entry("401", 401, "Authentication error"),
			Entry("403", 403, "Permission error"),
			Entry("404", 404, "Not found error"),
			Entry("429", 429, "Rate limit error"),
			Entry("500", 500, "API error"),
			Entry("529", 529, "Overloaded error"),
			Entry("418", 418, "Unknown error: An unexpected HTTP status code was received."),
		)

		DescribeTable("renders unusable bodies as parse errors",
			func(body string) {
				up.respond(http.StatusOK, body)

				res := client.SendMessage(ctx, "hello")
				Expect(res.String()).To(HavePrefix("Error: Error parsing JSON: "))
				Expect(res.Err.Kind).To(Equal(anthropic.KindParse))
			},
			Entry("missing content", `{"id":"msg_1","type":"message"}`),
			Entry("empty content", `{"content":[]}`),
			Entry("malformed", `{"content":[{"type":"text","text":"hi"`),
		)

		It("reports transport failures as data", func() {
			up.Close()

			res := client.SendMessage(ctx, "hello")
			Expect(res.String()).To(HavePrefix("Error: "))
			Expect(res.Err.Kind).To(Equal(anthropic.KindTransport))
		})

		It("gives up once the timeout elapses", func() {
			release := make(chan struct{})
			slow := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				select {
				case <-r.Context().Done():
				case <-release:
				case <-time.After(500 * time.Millisecond):
				}
			}))
			defer slow.Close()
			defer close(release)

			c, err := anthropic.New(anthropic.Config{
				APIKey:  "k",
				Model:   testModel,
				BaseURL: slow.URL,
				Timeout: 50 * time.Millisecond,
			}, nil)
			Expect(err).NotTo(HaveOccurred())

			start := time.Now()
			res := c.SendMessage(ctx, "hello")
			Expect(time.Since(start)).To(BeNumerically("<", 400*time.Millisecond))
			Expect(res.Err).NotTo(BeNil())
			Expect(res.Err.Kind).To(Equal(anthropic.KindTransport))
		})

		It("honours caller cancellation", func() {
			cancelled, cancel := context.WithCancel(ctx)
			cancel()

			res := client.SendMessage(cancelled, "hello")
			Expect(res.Err).NotTo(BeNil())
			Expect(res.Err.Kind).To(Equal(anthropic.KindTransport))
			Expect(errors.Is(res.Err, context.Canceled)).To(BeTrue())
		})
	})

	Describe("SendMessageWithImage", func() {
		var tmpDir string

		BeforeEach(func() {
			tmpDir = GinkgoT().TempDir()
		})

		It("places the image block before the text block", func() {
			path := filepath.Join(tmpDir, "cat.png")
			Expect(os.WriteFile(path, pngBytes, 0o644)).To(Succeed())

			res := client.SendMessageWithImage(ctx, "what is this?", path)
			Expect(res.String()).To(Equal("hi"))

			req, _, _ := up.lastRequest()
			content := req.Messages[0].Content
			Expect(content).To(HaveLen(2))
			Expect(content[0].Type).To(Equal("image"))
			Expect(content[0].Source).NotTo(BeNil())
			Expect(content[0].Source.Type).To(Equal("base64"))
			Expect(content[0].Source.MediaType).To(Equal("image/png"))
			Expect(content[1].Type).To(Equal("text"))
			Expect(content[1].Text).To(Equal("what is this?"))
		})

		It("accepts an image URL", func() {
			res := client.SendMessageWithImage(ctx, "describe", up.URL()+"/img.png")
			Expect(res.OK()).To(BeTrue())

			req, _, _ := up.lastRequest()
			Expect(req.Messages[0].Content[0].Source.MediaType).To(Equal("image/png"))
		})

		It("does not POST when the local file type is unsupported", func() {
			path := filepath.Join(tmpDir, "notes.txt")
			Expect(os.WriteFile(path, []byte("plain words"), 0o644)).To(Succeed())

			res := client.SendMessageWithImage(ctx, "hello", path)
			Expect(res.String()).To(HavePrefix("Error: Unsupported image type."))
			for _, t := range anthropic.SupportedImageTypes() {
				Expect(res.String()).To(ContainSubstring(t))
			}
			Expect(up.postCount()).To(Equal(0))
		})

		It("does not POST when the URL serves text/html", func() {
			res := client.SendMessageWithImage(ctx, "hello", up.URL()+"/page")
			Expect(res.Err).NotTo(BeNil())
			Expect(res.Err.Kind).To(Equal(anthropic.KindUnsupportedImage))
			Expect(strings.HasPrefix(res.String(), "Error: ")).To(BeTrue())
			Expect(up.postCount()).To(Equal(0))
		})

		It("rejects an empty reference without a POST", func() {
			res := client.SendMessageWithImage(ctx, "hello", "")
			Expect(res.Err).NotTo(BeNil())
			Expect(res.Err.Kind).To(Equal(anthropic.KindImage))
			Expect(up.postCount()).To(Equal(0))
		})
	})

	Describe("Send", func() {
		It("returns the reply and a nil error", func() {
			reply, err := client.Send(ctx, "hello", "")
			Expect(err).NotTo(HaveOccurred())
			Expect(reply).To(Equal("hi"))
		})

		It("returns *Error values for dispatch", func() {
			up.respond(http.StatusTooManyRequests, `{}`)

			_, err := client.Send(ctx, "hello", "")
			var e *anthropic.Error
			Expect(errors.As(err, &e)).To(BeTrue())
			Expect(e.Kind).To(Equal(anthropic.KindStatus))
			Expect(e.StatusCode).To(Equal(http.StatusTooManyRequests))
		})
	})

	Describe("BuildRequest", func() {
		It("builds a text-only request without touching the network", func() {
			req := client.BuildRequest("hi there", nil)
			Expect(req.Messages).To(HaveLen(1))
			Expect(req.Messages[0].Content).To(HaveLen(1))
			Expect(req.Messages[0].Content[0].IsImage()).To(BeFalse())
			Expect(up.postCount()).To(Equal(0))
		})
	})
})
