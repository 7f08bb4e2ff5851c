package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSupportAcknowledgement(t *testing.T) {
	t.Run("ticket id drives the subject line", func(t *testing.T) {
		subject, body := SupportAcknowledgement("Order never arrived", 42)

		assert.Equal(t, "Support ticket #42 received", subject)
		assert.Contains(t, body, "#42")
		assert.Contains(t, body, "Order never arrived")
	})

	t.Run("ticket subject stays out of the subject line", func(t *testing.T) {
		subject, _ := SupportAcknowledgement("Refund request", 7)

		assert.NotContains(t, subject, "Refund request")
	})
}
