package whatsapp

import (
	"crypto/hmac"
	"crypto/sha1"
	"encoding/base64"
	"encoding/json"
	"errors"
	"io"
	"mime"
	"net/http"
	"net/url"
	e "remindchat/internal/core/domain/errors"
	"remindchat/internal/core/domain/logging"
	ratelimiter "remindchat/internal/core/domain/rate_limiter"
	"remindchat/internal/core/services"
	inbound "remindchat/internal/core/services/handle_inbound_message"
	"remindchat/internal/http/handlers/response"
	"sort"
	"strings"
)

const (
	SIGNATURE_HEADER = "X-Twilio-Signature"
	MAX_BODY_SIZE    = 64 * 1024
)

// SignatureVerifier checks Twilio webhook signatures. A zero value accepts everything;
// an enabled verifier only accepts signed form posts.
type SignatureVerifier struct {
	AuthToken  string
	WebhookURL string
}

func (v SignatureVerifier) enabled() bool {
	return v.AuthToken != "" && v.WebhookURL != ""
}

// Verify compares the header against base64(HMAC-SHA1(url + sorted key/value pairs)).
func (v SignatureVerifier) Verify(signature string, form url.Values) bool {
	if !v.enabled() {
		return true
	}
	if signature == "" {
		return false
	}
	expected := v.sign(form)
	return hmac.Equal([]byte(signature), []byte(expected))
}

func (v SignatureVerifier) sign(form url.Values) string {
	keys := make([]string, 0, len(form))
	for k := range form {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var payload strings.Builder
	payload.WriteString(v.WebhookURL)
	for _, k := range keys {
		for _, value := range form[k] {
			payload.WriteString(k)
			payload.WriteString(value)
		}
	}

	mac := hmac.New(sha1.New, []byte(v.AuthToken))
	mac.Write([]byte(payload.String()))
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}

type Handler struct {
	log      logging.Logger
	verifier SignatureVerifier
	service  services.Service[inbound.Input, inbound.Result]
}

func New(
	log logging.Logger,
	verifier SignatureVerifier,
	service services.Service[inbound.Input, inbound.Result],
) *Handler {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if service == nil {
		panic(e.NewNilArgumentError("service"))
	}
	return &Handler{log: log, verifier: verifier, service: service}
}

type message struct {
	From string `json:"From"`
	Body string `json:"Body"`
}

func (m *message) FromJSON(r io.Reader) error {
	return json.NewDecoder(r).Decode(m)
}

func (h *Handler) ServeHTTP(rw http.ResponseWriter, r *http.Request) {
	defer response.RenderOK(rw)

	r.Body = http.MaxBytesReader(rw, r.Body, MAX_BODY_SIZE)
	msg, ok := h.parse(r)
	if !ok {
		return
	}

	h.log.Info(r.Context(), "Got WhatsApp message.", logging.Entry("from", msg.From))

	result, err := h.service.Run(r.Context(), inbound.NewInput(msg.From, msg.Body))
	switch {
	case errors.Is(err, ratelimiter.ErrRateLimitExceeded):
		return
	case err != nil:
		logging.Error(r.Context(), h.log, err, logging.Entry("from", msg.From))
		return
	}
	h.log.Info(
		r.Context(),
		"WhatsApp message handled.",
		logging.Entry("from", msg.From),
		logging.Entry("intent", result.Intent),
		logging.Entry("sent", result.Sent),
	)
}

func (h *Handler) parse(r *http.Request) (msg message, ok bool) {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "application/json" {
		// Twilio signs form parameters only, so JSON cannot carry a signature.
		if h.verifier.enabled() {
			h.log.Warning(r.Context(), "WhatsApp JSON message dropped, signature is required.")
			return msg, false
		}
		if err := msg.FromJSON(r.Body); err != nil {
			h.log.Warning(r.Context(), "Could not decode WhatsApp message.", logging.Entry("err", err))
			return msg, false
		}
		return msg, true
	}

	if err := r.ParseForm(); err != nil {
		h.log.Warning(r.Context(), "Could not parse WhatsApp form.", logging.Entry("err", err))
		return msg, false
	}
	if !h.verifier.Verify(r.Header.Get(SIGNATURE_HEADER), r.PostForm) {
		h.log.Warning(
			r.Context(),
			"WhatsApp message dropped, signature is invalid.",
			logging.Entry("from", r.PostForm.Get("From")),
		)
		return msg, false
	}
	return message{From: r.PostForm.Get("From"), Body: r.PostForm.Get("Body")}, true
}
