package diagnostics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalog(t *testing.T) {
	r := Catalog()

	assert.Equal(t, []string{"ssh", "dns", "web", "http", "ftp", "smtp"}, r.Names())

	for _, name := range r.Names() {
		construct, ok := r.Lookup(name)
		require.True(t, ok, name)

		ts := construct()
		assert.Equal(t, name, ts.Name())
		assert.NotEmpty(t, ts.Description())
		assert.NotEmpty(t, r.Describe(name))
	}
}

func TestCatalog_FreshInstancePerConstruct(t *testing.T) {
	r := Catalog()
	construct, _ := r.Lookup("ssh")

	a := construct()
	b := construct()
	require.NotSame(t, a, b)
}

func TestHTTP_RequiresURL(t *testing.T) {
	h := &HTTP{}
	_, err := h.BuildChecks()
	require.Error(t, err)

	h.URL = "http://127.0.0.1/"
	steps, err := h.BuildChecks()
	require.NoError(t, err)
	require.Len(t, steps, 1)
}
