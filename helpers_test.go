package pfam

import (
	"net/http"
	"os"
	"path/filepath"
	"testing"

	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/require"
)

const testBaseURL = "https://pfam.test"

// newTestClient returns a client wired to a mock transport so tests never
// touch the network.
func newTestClient(t *testing.T) (*Client, *httpmock.MockTransport) {
	t.Helper()

	transport := httpmock.NewMockTransport()
	client := NewClient(Config{
		BaseURL:   testBaseURL,
		Transport: transport,
	})
	t.Cleanup(client.Close)

	return client, transport
}

// fixture reads a canned response body from testdata.
func fixture(t *testing.T, name string) string {
	t.Helper()

	data, err := os.ReadFile(filepath.Join("testdata", name))
	require.NoError(t, err, "failed to read fixture %s", name)
	return string(data)
}

// newStringXMLResponder serves body with an XML content type.
func newStringXMLResponder(body string) httpmock.Responder {
	return httpmock.NewStringResponder(200, body).
		HeaderSet(http.Header{"Content-Type": {"text/xml"}})
}

// registerXML maps a URL path onto a fixture served with an XML content type.
func registerXML(t *testing.T, transport *httpmock.MockTransport, path, fixtureName string) {
	t.Helper()

	transport.RegisterResponder("GET", testBaseURL+path, newStringXMLResponder(fixture(t, fixtureName)))
}
