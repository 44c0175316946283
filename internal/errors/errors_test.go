package errors

import (
	"net/http"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
)

func TestMarkedErrorsMatchSentinels(t *testing.T) {
	err := NewError("campaign ramadan-appeal not found").
		WithHint("Campaign not found").
		Mark(ErrNotFound)

	assert.True(t, IsNotFound(err))
	assert.False(t, IsValidation(err))
	assert.Equal(t, ErrCodeNotFound, CodeFromErr(err))
	assert.Equal(t, http.StatusNotFound, HTTPStatusFromErr(err))
}

func TestGateErrorsMapToBadRequest(t *testing.T) {
	gates := []error{
		ErrCampaignInactive,
		ErrSignupNotOpen,
		ErrSignupClosed,
		ErrCampaignEnded,
		ErrAmountOutOfRange,
		ErrAmountNotPreset,
		ErrUpfrontNotAvailable,
	}
	for _, sentinel := range gates {
		err := NewError("rejected").Mark(sentinel)
		assert.Equal(t, http.StatusBadRequest, HTTPStatusFromErr(err))
	}
}

func TestUpstreamErrorsMapToBadGateway(t *testing.T) {
	err := WithError(errors.New("connection refused")).
		WithHint("Unable to reach the content store").
		Mark(ErrIntegration)

	assert.True(t, IsIntegration(err))
	assert.Equal(t, ErrCodeIntegration, CodeFromErr(err))
	assert.Equal(t, http.StatusBadGateway, HTTPStatusFromErr(err))
}

func TestDoublyMarkedErrorResolvesDeterministically(t *testing.T) {
	// A content-store fetch failure carries two marks: the transport layer
	// marks ErrHTTPClient, the repository wraps it and marks
	// ErrIntegration. The outer upstream meaning must win every time.
	transport := NewError("request failed: 503").Mark(ErrHTTPClient)
	err := WithError(transport).
		WithHint("Unable to reach the content store").
		Mark(ErrIntegration)

	for i := 0; i < 500; i++ {
		assert.Equal(t, ErrCodeIntegration, CodeFromErr(err))
		assert.Equal(t, http.StatusBadGateway, HTTPStatusFromErr(err))
	}
}

func TestUnmarkedErrorReportsInternal(t *testing.T) {
	err := errors.New("something broke")

	assert.Equal(t, ErrCodeInternal, CodeFromErr(err))
	assert.Equal(t, http.StatusInternalServerError, HTTPStatusFromErr(err))
}

func TestHintsSurviveWrapping(t *testing.T) {
	inner := NewError("amount 0.5 is out of range").
		WithHint("The daily amount is outside the allowed range for this campaign").
		Mark(ErrAmountOutOfRange)
	outer := WithError(inner).WithMessage("creating checkout").Error()

	assert.Equal(t, ErrCodeAmountOutOfRange, CodeFromErr(outer))
	hints := errors.GetAllHints(outer)
	assert.NotEmpty(t, hints)
}
