package network

import (
	"encoding/json"
	"fmt"
	"io/ioutil"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/require"
	"github.com/ulule/limiter"

	"boscoin.io/congress/lib/common"
)

func TestRecoverMiddleware(t *testing.T) {
	endpoint, err := common.NewEndpointFromString(
		fmt.Sprintf("http://localhost:%s", getPort()),
	)
	require.Nil(t, err)

	network, err := makeTestHTTP2Network(endpoint)
	require.Nil(t, err)
	defer network.Stop()

	handlerURL := UrlPathPrefixAPI + "/test"
	panicMsg := "Don't panic,just use go"
	handler := func(w http.ResponseWriter, r *http.Request) {
		panic(panicMsg)
	}

	VerboseLogs = false
	network.AddMiddleware(RouterNameAPI, RecoverMiddleware(nil))
	network.AddHandler(handlerURL, handler)

	{
		// with normal HTTP2Client
		client, err := common.NewHTTP2Client(
			defaultTimeout,
			defaultIdleTimeout,
			false,
		)
		require.Nil(t, err)

		resp, err := client.Get(endpoint.String()+handlerURL, http.Header{})
		require.Nil(t, err)
		require.Equal(t, 500, resp.StatusCode)
		require.Equal(t, "application/problem+json", resp.Header["Content-Type"][0])

		bs, err := ioutil.ReadAll(resp.Body)
		defer resp.Body.Close()
		require.Nil(t, err)

		var msg map[string]interface{}
		err = json.Unmarshal(bs, &msg)
		require.Nil(t, err)
		require.Equal(t, "panic: "+panicMsg, msg["title"])
	}
}

func TestRateLimitMiddleware(t *testing.T) {
	rule := common.NewRateLimitRule(limiter.Rate{Period: time.Minute, Limit: 3})

	var served int
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		served++
		w.Write([]byte("pong"))
	})

	router := mux.NewRouter()
	router.Use(RateLimitMiddleware(nil, rule))
	router.Handle("/ping", handler)

	ts := httptest.NewServer(router)
	defer ts.Close()

	statuses := []int{}
	for i := 0; i < 5; i++ {
		resp, err := http.Get(ts.URL + "/ping")
		require.NoError(t, err)
		resp.Body.Close()
		statuses = append(statuses, resp.StatusCode)
	}

	require.Equal(t, 3, served)
	require.Equal(t, []int{200, 200, 200, 429, 429}, statuses)
}

func TestRateLimitMiddlewareUnlimited(t *testing.T) {
	rule := common.NewRateLimitRule(limiter.Rate{Period: time.Minute, Limit: 0})

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("pong"))
	})

	router := mux.NewRouter()
	router.Use(RateLimitMiddleware(nil, rule))
	router.Handle("/ping", handler)

	ts := httptest.NewServer(router)
	defer ts.Close()

	for i := 0; i < 10; i++ {
		resp, err := http.Get(ts.URL + "/ping")
		require.NoError(t, err)
		resp.Body.Close()
		require.Equal(t, 200, resp.StatusCode)
	}
}

func TestRateLimitMiddlewareByIPAddress(t *testing.T) {
	rule := common.NewRateLimitRule(limiter.Rate{Period: time.Minute, Limit: 1})
	rule.ByIPAddress["127.0.0.1"] = limiter.Rate{Period: time.Minute, Limit: 0}

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("pong"))
	})

	router := mux.NewRouter()
	router.Use(RateLimitMiddleware(nil, rule))
	router.Handle("/ping", handler)

	ts := httptest.NewServer(router)
	defer ts.Close()

	// The local override lifts the single-request default limit.
	for i := 0; i < 5; i++ {
		resp, err := http.Get(ts.URL + "/ping")
		require.NoError(t, err)
		resp.Body.Close()
		require.Equal(t, 200, resp.StatusCode)
	}
}
