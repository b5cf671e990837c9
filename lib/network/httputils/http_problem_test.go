package httputils

import (
	"bufio"
	"fmt"
	"io/ioutil"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/require"

	"boscoin.io/congress/lib/common"
	"boscoin.io/congress/lib/errors"
)

func TestProblem(t *testing.T) {

	router := mux.NewRouter()

	statusProblem := NewStatusProblem(http.StatusBadRequest)
	detailedStatusProblem := NewDetailedStatusProblem(http.StatusBadRequest, "paramaters are not enough")
	errorProblem := NewErrorProblem(errors.InvalidOperation, 500)

	router.HandleFunc("/problem_status_default", func(w http.ResponseWriter, r *http.Request) {
		WriteJSON(w, 500, statusProblem)
	})

	router.HandleFunc("/problem_status_with_detail", func(w http.ResponseWriter, r *http.Request) {
		WriteJSON(w, 500, detailedStatusProblem)
	})

	router.HandleFunc("/problem_status_with_detail_instance", func(w http.ResponseWriter, r *http.Request) {
		WriteJSON(w, 500, detailedStatusProblem.SetInstance("http://boscoin.io/httperror/details/1"))
	})

	router.HandleFunc("/problem_with_error", func(w http.ResponseWriter, r *http.Request) {
		WriteJSON(w, 500, errorProblem)
	})

	ts := httptest.NewServer(router)
	defer ts.Close()

	// problem_status_default
	{
		resp, err := http.Get(ts.URL + "/problem_status_default")
		require.NoError(t, err)
		defer resp.Body.Close()
		reader := bufio.NewReader(resp.Body)
		readByte, err := ioutil.ReadAll(reader)
		require.NoError(t, err)
		{
			var f interface{}
			common.MustUnmarshalJSON(readByte, &f)
			m := f.(map[string]interface{})
			p := statusProblem
			require.Equal(t, p.Type, m["type"])
			require.Equal(t, p.Title, m["title"])
			require.Equal(t, float64(p.Status), m["status"])
			require.Empty(t, m["detail"])
			require.Empty(t, m["instance"])
		}
	}

	// problem_status_with_detail
	{
		resp, err := http.Get(ts.URL + "/problem_status_with_detail")
		require.NoError(t, err)
		defer resp.Body.Close()
		reader := bufio.NewReader(resp.Body)
		readByte, err := ioutil.ReadAll(reader)
		require.NoError(t, err)
		{
			var f interface{}
			common.MustUnmarshalJSON(readByte, &f)
			m := f.(map[string]interface{})
			p := detailedStatusProblem
			require.Equal(t, p.Type, m["type"])
			require.Equal(t, p.Title, m["title"])
			require.Equal(t, float64(p.Status), m["status"])
			require.Equal(t, p.Detail, m["detail"])
			require.Empty(t, m["instance"])
		}
	}

	// problem_status_with_detail_instance
	{
		resp, err := http.Get(ts.URL + "/problem_status_with_detail_instance")
		require.NoError(t, err)
		defer resp.Body.Close()
		reader := bufio.NewReader(resp.Body)
		readByte, err := ioutil.ReadAll(reader)
		require.NoError(t, err)
		{
			var f interface{}
			common.MustUnmarshalJSON(readByte, &f)
			m := f.(map[string]interface{})
			p := detailedStatusProblem.SetInstance("http://boscoin.io/httperror/details/1")
			require.Equal(t, p.Type, m["type"])
			require.Equal(t, p.Title, m["title"])
			require.Equal(t, float64(p.Status), m["status"])
			require.Equal(t, p.Detail, m["detail"])
			require.Equal(t, p.Instance, m["instance"])
		}
	}

	// problem_with_error
	{
		resp, err := http.Get(ts.URL + "/problem_with_error")
		require.NoError(t, err)
		defer resp.Body.Close()
		reader := bufio.NewReader(resp.Body)
		readByte, err := ioutil.ReadAll(reader)
		require.NoError(t, err)
		{
			var f interface{}
			common.MustUnmarshalJSON(readByte, &f)
			m := f.(map[string]interface{})
			p := errorProblem
			require.Equal(t, p.Type, m["type"])
			require.Equal(t, p.Title, m["title"])
			require.Equal(t, float64(p.Status), m["status"])
			require.Empty(t, m["detail"])
			require.Empty(t, m["instance"])
		}
	}
}

func TestWriteJSONError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		WriteJSONError(w, errors.Unauthorized)
	}))
	defer ts.Close()

	resp, err := http.Get(ts.URL)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusForbidden, resp.StatusCode)
	require.Equal(t, "application/problem+json", resp.Header.Get("Content-Type"))

	readByte, err := ioutil.ReadAll(resp.Body)
	require.NoError(t, err)

	var f interface{}
	common.MustUnmarshalJSON(readByte, &f)
	m := f.(map[string]interface{})
	require.Equal(t, errors.Unauthorized.Message, m["title"])
	require.Equal(t, fmt.Sprintf("https://boscoin.io/congress/errors/%d", errors.Unauthorized.Code), m["type"])
	require.Equal(t, float64(http.StatusForbidden), m["status"])
}

func TestStatusCode(t *testing.T) {
	require.Equal(t, 403, StatusCode(errors.Unauthorized))
	require.Equal(t, 409, StatusCode(errors.InvalidTransition))
	require.Equal(t, 409, StatusCode(errors.PreconditionNotMet))
	require.Equal(t, 404, StatusCode(errors.NoWinnerAvailable))
	require.Equal(t, 404, StatusCode(errors.VoterDoesNotExist))

	// errors outside the catalog fall back to 500
	require.Equal(t, 500, StatusCode(fmt.Errorf("unmapped")))
}
