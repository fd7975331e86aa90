package capture

import (
	"context"
	"testing"
	"time"

	"github.com/chromedp/cdproto/network"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOptionsNormalize(t *testing.T) {
	o := Options{URL: "http://127.0.0.1:8080/", OutputPath: "out.png"}
	assert.NoError(t, o.normalize())
	assert.Equal(t, DefaultWidth, o.Width)
	assert.Equal(t, DefaultHeight, o.Height)
	assert.Equal(t, 30*time.Second, o.Timeout)
}

func TestBookingPagePNGRequiresTargets(t *testing.T) {
	assert.Error(t, BookingPagePNG(context.Background(), Options{OutputPath: "out.png"}))
	assert.Error(t, BookingPagePNG(context.Background(), Options{URL: "http://127.0.0.1/"}))
}

func TestBasicAuthHeader(t *testing.T) {
	// RFC 7617 example credentials.
	assert.Equal(t, "Basic QWxhZGRpbjpvcGVuIHNlc2FtZQ==", BasicAuthHeader("Aladdin", "open sesame"))
}

func TestTasksSendHeadersOnlyWhenSet(t *testing.T) {
	var png []byte
	o := Options{URL: "http://127.0.0.1:8080/", OutputPath: "out.png"}
	assert.NoError(t, o.normalize())
	assert.Len(t, o.tasks(&png), 4)

	o.Headers = map[string]string{"Authorization": BasicAuthHeader("shop", "secret")}
	tasks := o.tasks(&png)
	require.Len(t, tasks, 6)
	extra, ok := tasks[2].(*network.SetExtraHTTPHeadersParams)
	require.True(t, ok)
	assert.Equal(t, "Basic c2hvcDpzZWNyZXQ=", extra.Headers["Authorization"])
}
