package domain_test

import (
	"testing"

	"github.com/NotariaHQ/notaria_backend/internal/core/domain"
	"github.com/stretchr/testify/assert"
)

func TestDocumentStatusNext(t *testing.T) {
	cases := []struct {
		current domain.DocumentStatus
		next    domain.DocumentStatus
		ok      bool
	}{
		{domain.StatusPending, domain.StatusVerification, true},
		{domain.StatusVerification, domain.StatusProcessing, true},
		{domain.StatusProcessing, domain.StatusDigitalSignature, true},
		{domain.StatusDigitalSignature, domain.StatusCompleted, true},
		{domain.StatusCompleted, "", false},
		{domain.StatusRejected, "", false},
		{domain.DocumentStatus("bogus"), "", false},
	}

	for _, tc := range cases {
		next, ok := tc.current.Next()
		assert.Equal(t, tc.ok, ok, "current=%s", tc.current)
		assert.Equal(t, tc.next, next, "current=%s", tc.current)
	}
}

func TestDocumentStatusIsTerminal(t *testing.T) {
	assert.True(t, domain.StatusCompleted.IsTerminal())
	assert.True(t, domain.StatusRejected.IsTerminal())
	assert.False(t, domain.StatusPending.IsTerminal())
	assert.False(t, domain.StatusDigitalSignature.IsTerminal())
}

func TestDocumentStatusIsValid(t *testing.T) {
	assert.True(t, domain.StatusRejected.IsValid())
	assert.True(t, domain.StatusPending.IsValid())
	assert.False(t, domain.DocumentStatus("bogus").IsValid())
	assert.False(t, domain.DocumentStatus("").IsValid())
}
