package requesting

import (
	"bytes"
	"io"
	"net/http"
	"time"

	"github.com/almoelda/restful-booker-automation/internal/schema"
	"github.com/rs/zerolog"
)

type TransportMiddleware func(http.RoundTripper) http.RoundTripper

type InterceptorTransport struct {
	Transport   http.RoundTripper
	Middlewares []TransportMiddleware
}

func (t *InterceptorTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	transport := t.Transport
	for _, middleware := range t.Middlewares {
		transport = middleware(transport)
	}

	return transport.RoundTrip(req)
}

type LoggingTransportMiddleware struct {
	Transport http.RoundTripper
	log       *zerolog.Logger
}

func NewLoggingTransportMiddleware(log *zerolog.Logger) TransportMiddleware {
	return func(rt http.RoundTripper) http.RoundTripper {
		return &LoggingTransportMiddleware{
			log:       log,
			Transport: rt,
		}
	}
}

func (t *LoggingTransportMiddleware) RoundTrip(req *http.Request) (*http.Response, error) {
	startTime := time.Now()

	message := t.log.Info().
		Str("label", "outgoing-request").
		Str("method", req.Method).
		Str("url", req.URL.String())

	defer func() {
		message.
			Float64("duration", time.Since(startTime).Seconds()).
			Msg("")
	}()

	resp, err := t.Transport.RoundTrip(req)
	if err != nil {
		message.Str("error", err.Error())
		return nil, err
	}

	message.Int("code", resp.StatusCode)

	return resp, nil
}

// RecordingTransportMiddleware captures full request/response pairs into a
// Recording so a failed scenario can be replayed from its artifacts. Bodies
// are re-wrapped so downstream readers still see them.
type RecordingTransportMiddleware struct {
	Transport http.RoundTripper
	Recording *schema.Recording
}

func NewRecordingTransportMiddleware(recording *schema.Recording) TransportMiddleware {
	return func(rt http.RoundTripper) http.RoundTripper {
		return &RecordingTransportMiddleware{
			Transport: rt,
			Recording: recording,
		}
	}
}

func (m *RecordingTransportMiddleware) RoundTrip(request *http.Request) (*http.Response, error) {
	startTime := time.Now()

	callName, _ := request.Context().Value(schema.CallNameKey).(string)

	var requestBytes []byte
	if request.Body != nil {
		requestBytes, _ = io.ReadAll(request.Body)
		request.Body.Close()
		request.Body = io.NopCloser(bytes.NewBuffer(requestBytes))
	}

	record := schema.CallRecord{
		Name:           callName,
		StartDateTime:  startTime,
		Method:         request.Method,
		URL:            request.URL.String(),
		RequestBody:    string(requestBytes),
		RequestHeaders: request.Header,
	}

	defer func() {
		record.Duration = time.Since(startTime)
		m.Recording.FinishedCall(record)
	}()

	response, err := m.Transport.RoundTrip(request)
	if err != nil {
		return nil, err
	}

	responseBytes, _ := io.ReadAll(response.Body)
	response.Body.Close()
	response.Body = io.NopCloser(bytes.NewBuffer(responseBytes))

	record.StatusCode = response.StatusCode
	record.ResponseBody = string(responseBytes)
	record.ResponseHeaders = response.Header

	return response, nil
}
