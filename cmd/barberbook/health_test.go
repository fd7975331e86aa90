package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"barberbook/internal/config"
)

func TestWaitHealthy(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()
	assert.NoError(t, waitHealthy(context.Background(), srv.URL+"/health"))
}

func TestWaitHealthyGivesUp(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 300*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, waitHealthy(ctx, srv.URL+"/health"), errNotHealthy)
}

func TestSnapshotHeaders(t *testing.T) {
	conf := config.DefaultConfig()
	assert.Nil(t, snapshotHeaders(conf))

	conf.BasicAuth = &config.BasicAuthConfig{Username: "shop"}
	assert.Nil(t, snapshotHeaders(conf))

	conf.BasicAuth.Password = "secret"
	assert.Equal(t, map[string]string{"Authorization": "Basic c2hvcDpzZWNyZXQ="}, snapshotHeaders(conf))
}
