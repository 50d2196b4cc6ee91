package mail

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildPasswordReset(t *testing.T) {
	msg := BuildPasswordReset("no-reply@centros.local", "ana@centros.local", "Ana <Pérez>", "http://app/reset?token=abc")

	assert.Equal(t, []string{"ana@centros.local"}, msg.GetHeader("To"))
	assert.Equal(t, []string{"no-reply@centros.local"}, msg.GetHeader("From"))

	var buf bytes.Buffer
	_, err := msg.WriteTo(&buf)
	require.NoError(t, err)
	out := buf.String()
	assert.Contains(t, out, "text/plain")
	assert.Contains(t, out, "text/html")
}
