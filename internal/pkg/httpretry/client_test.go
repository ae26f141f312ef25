package httpretry

import (
	"bytes"
	"errors"
	"io"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scriptedDoer returns one canned outcome per attempt.
type scriptedDoer struct {
	statuses []int
	errs     []error
	calls    int
	bodies   []string
}

func (d *scriptedDoer) Do(req *http.Request) (*http.Response, error) {
	i := d.calls
	d.calls++
	if req.Body != nil {
		data, _ := io.ReadAll(req.Body)
		d.bodies = append(d.bodies, string(data))
	}
	if i < len(d.errs) && d.errs[i] != nil {
		return nil, d.errs[i]
	}
	status := http.StatusOK
	if i < len(d.statuses) {
		status = d.statuses[i]
	}
	return &http.Response{StatusCode: status, Body: io.NopCloser(bytes.NewReader(nil))}, nil
}

func fastRetryClient(doer HTTPDoer, maxRetries int) *RetryClient {
	rc := NewRetryClient(doer, maxRetries)
	rc.baseDelay = time.Millisecond
	return rc
}

func TestRetriesTransientStatus(t *testing.T) {
	doer := &scriptedDoer{statuses: []int{500, 503, 200}}
	rc := fastRetryClient(doer, 3)

	req, _ := http.NewRequest(http.MethodGet, "http://example.test/tiktok", nil)
	resp, err := rc.Do(req)

	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 3, doer.calls)
}

func TestClientErrorNotRetried(t *testing.T) {
	doer := &scriptedDoer{statuses: []int{403}}
	rc := fastRetryClient(doer, 3)

	req, _ := http.NewRequest(http.MethodGet, "http://example.test/tiktok", nil)
	resp, err := rc.Do(req)

	require.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Equal(t, 1, doer.calls)
}

func TestFinalAttemptReturnsResponse(t *testing.T) {
	doer := &scriptedDoer{statuses: []int{500, 500, 500}}
	rc := fastRetryClient(doer, 2)

	req, _ := http.NewRequest(http.MethodGet, "http://example.test/tiktok", nil)
	resp, err := rc.Do(req)

	// The caller gets the last response to inspect, not a synthetic error.
	require.NoError(t, err)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.Equal(t, 3, doer.calls)
}

func TestNetworkErrorRetried(t *testing.T) {
	doer := &scriptedDoer{
		errs:     []error{errors.New("connection reset"), nil},
		statuses: []int{0, 200},
	}
	rc := fastRetryClient(doer, 3)

	req, _ := http.NewRequest(http.MethodGet, "http://example.test/tiktok", nil)
	resp, err := rc.Do(req)

	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 2, doer.calls)
}

func TestRequestBodyResetBetweenAttempts(t *testing.T) {
	doer := &scriptedDoer{statuses: []int{503, 200}}
	rc := fastRetryClient(doer, 3)

	req, _ := http.NewRequest(http.MethodPost, "http://example.test/tiktok",
		bytes.NewReader([]byte(`{"q":1}`)))
	_, err := rc.Do(req)

	require.NoError(t, err)
	require.Len(t, doer.bodies, 2)
	assert.Equal(t, `{"q":1}`, doer.bodies[1], "second attempt must see the full body")
}
