package create

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/streamworks/order_pipeline/internal/domain/models"
	internalErrors "github.com/streamworks/order_pipeline/internal/lib/errors"
	"github.com/streamworks/order_pipeline/pkg/logger"
)

type fakeSubmitter struct {
	submitErr error
	calls     []models.Order
}

func (f *fakeSubmitter) Submit(_ context.Context, order models.Order) error {
	f.calls = append(f.calls, order)
	return f.submitErr
}

func doRequest(t *testing.T, submitter *fakeSubmitter, body string) *http.Response {
	t.Helper()

	h := NewHandler(logger.NewDiscardLogger(), submitter)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/orders", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")

	h.Create(rec, req)

	return rec.Result()
}

func TestCreateAccepted(t *testing.T) {
	submitter := &fakeSubmitter{}

	res := doRequest(t, submitter, `{"orderId":"A1","amount":100}`)

	require.Equal(t, http.StatusAccepted, res.StatusCode)
	require.Equal(t, []models.Order{{OrderID: "A1", Amount: 100}}, submitter.calls)
}

func TestCreateValidationRejections(t *testing.T) {
	tCases := []struct {
		name      string
		body      string
		expReason string
	}{
		{
			name:      "empty_order_id",
			body:      `{"orderId":"","amount":50}`,
			expReason: "OrderId is required",
		},
		{
			name:      "zero_amount",
			body:      `{"orderId":"A2","amount":0}`,
			expReason: "Amount must be positive",
		},
	}

	for _, tCase := range tCases {
		t.Run(tCase.name, func(t *testing.T) {
			submitter := &fakeSubmitter{}

			res := doRequest(t, submitter, tCase.body)

			require.Equal(t, http.StatusBadRequest, res.StatusCode)

			data, err := io.ReadAll(res.Body)
			require.NoError(t, err)
			require.Equal(t, tCase.expReason, strings.TrimSpace(string(data)))

			// Rejected before the pipeline: no side effects at all.
			require.Empty(t, submitter.calls)
		})
	}
}

func TestCreateMalformedBody(t *testing.T) {
	submitter := &fakeSubmitter{}

	res := doRequest(t, submitter, `{not json`)

	require.Equal(t, http.StatusBadRequest, res.StatusCode)
	require.Empty(t, submitter.calls)
}

func TestCreatePersistenceFailure(t *testing.T) {
	submitter := &fakeSubmitter{
		submitErr: &internalErrors.PersistenceError{OrderID: "A1", Err: io.ErrUnexpectedEOF},
	}

	res := doRequest(t, submitter, `{"orderId":"A1","amount":100}`)

	require.Equal(t, http.StatusInternalServerError, res.StatusCode)
}

func TestCreatePartialFailureStillAccepted(t *testing.T) {
	submitter := &fakeSubmitter{
		submitErr: &internalErrors.PartialFailure{OrderID: "A1", Err: io.ErrUnexpectedEOF},
	}

	res := doRequest(t, submitter, `{"orderId":"A1","amount":100}`)

	require.Equal(t, http.StatusAccepted, res.StatusCode)
}
