package api

import (
	"bufio"
	"bytes"
	"io/ioutil"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/require"

	"boscoin.io/congress/lib/command"
	"boscoin.io/congress/lib/command/operation"
	"boscoin.io/congress/lib/common"
	"boscoin.io/congress/lib/common/keypair"
	"boscoin.io/congress/lib/errors"
	"boscoin.io/congress/lib/network/httputils"
)

func preparePostServer(handler http.HandlerFunc) *httptest.Server {
	apiHandler := NetworkHandlerAPI{}

	router := mux.NewRouter()
	router.HandleFunc(PostCommandsPattern, func(w http.ResponseWriter, r *http.Request) {
		apiHandler.PostCommandsHandler(w, r, handler)
	}).Methods("POST")

	return httptest.NewServer(router)
}

func TestPostCommandsHandler(t *testing.T) {
	// the real node handler applies the command against the ledger; an
	// echo stands in so the response rewriting can be checked alone
	applied := func(w http.ResponseWriter, r *http.Request) {
		body, _ := ioutil.ReadAll(r.Body)
		w.Write(body)
	}

	ts := preparePostServer(applied)
	defer ts.Close()

	kp, cmd := command.TestMakeCommand(networkID, operation.NewRegisterVoter(keypair.Random().Address()))
	b, err := cmd.Serialize()
	require.NoError(t, err)

	respBody := request(ts, PostCommandsPattern, false, b)
	defer respBody.Close()
	readByte, err := ioutil.ReadAll(bufio.NewReader(respBody))
	require.NoError(t, err)

	recv := make(map[string]interface{})
	common.MustUnmarshalJSON(readByte, &recv)
	require.Equal(t, cmd.GetHash(), recv["hash"])
	require.Equal(t, string(operation.TypeRegisterVoter), recv["type"])
	require.Equal(t, kp.Address(), recv["source"])
	require.Equal(t, "applied", recv["status"])

	l := recv["_links"].(map[string]interface{})
	require.Equal(t, "/api/v1/commands", l["self"].(map[string]interface{})["href"])
}

func TestPostCommandsHandlerError(t *testing.T) {
	// a coded error body coming out of the node handler must be turned
	// into a problem document
	failed := func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(httputils.StatusCode(errors.Unauthorized))
		b, _ := errors.Unauthorized.Serialize()
		w.Write(b)
	}

	ts := preparePostServer(failed)
	defer ts.Close()

	req, _ := http.NewRequest("POST", ts.URL+PostCommandsPattern, bytes.NewReader([]byte("{}")))
	resp, err := ts.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusForbidden, resp.StatusCode)
	require.Equal(t, "application/problem+json", resp.Header.Get("Content-Type"))

	readByte, err := ioutil.ReadAll(resp.Body)
	require.NoError(t, err)
	recv := make(map[string]interface{})
	common.MustUnmarshalJSON(readByte, &recv)
	require.Equal(t, errors.Unauthorized.Message, recv["title"])
	require.True(
		t,
		strings.HasSuffix(
			recv["type"].(string),
			strconv.FormatUint(uint64(errors.Unauthorized.Code), 10),
		),
	)
}

func TestPostCommandsHandlerBypass(t *testing.T) {
	// a response body which is not a coded error passes through untouched
	broken := func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("boom"))
	}

	ts := preparePostServer(broken)
	defer ts.Close()

	req, _ := http.NewRequest("POST", ts.URL+PostCommandsPattern, bytes.NewReader([]byte("{}")))
	resp, err := ts.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusInternalServerError, resp.StatusCode)

	readByte, err := ioutil.ReadAll(resp.Body)
	require.NoError(t, err)
	require.Equal(t, []byte("boom"), readByte)
}
