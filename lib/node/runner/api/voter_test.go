package api

import (
	"bufio"
	"io/ioutil"
	"net/http"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"boscoin.io/congress/lib/campaign"
	"boscoin.io/congress/lib/common"
	"boscoin.io/congress/lib/common/keypair"
	"boscoin.io/congress/lib/errors"
	"boscoin.io/congress/lib/network/httputils"
)

func TestGetVoterHandler(t *testing.T) {
	ts, lg, admin := prepareAPIServer()
	defer lg.Storage().Close()
	defer ts.Close()

	kp := keypair.Random()
	_, err := lg.AddVoter(admin.Address(), kp.Address())
	require.NoError(t, err)

	{
		// Do a Request
		url := strings.Replace(GetVoterHandlerPattern, "{id}", kp.Address(), -1)
		respBody := request(ts, url, false)
		defer respBody.Close()
		reader := bufio.NewReader(respBody)

		readByte, err := ioutil.ReadAll(reader)
		require.NoError(t, err)
		recv := make(map[string]interface{})
		common.MustUnmarshalJSON(readByte, &recv)

		require.Equal(t, kp.Address(), recv["address"], "address is not same")
		require.Equal(t, true, recv["registered"])
		require.Equal(t, false, recv["voted"])

		l := recv["_links"].(map[string]interface{})
		require.Equal(t, strings.Replace("/api/v1/voters/{id}/choice", "{id}", kp.Address(), -1), l["choice"].(map[string]interface{})["href"])
	}

	{ // unknown address
		unknownKey := keypair.Random()
		url := strings.Replace(GetVoterHandlerPattern, "{id}", unknownKey.Address(), -1)
		req, _ := http.NewRequest("GET", ts.URL+url, nil)
		resp, err := ts.Client().Do(req)
		require.NoError(t, err)
		defer resp.Body.Close()

		require.Equal(t, http.StatusNotFound, resp.StatusCode)
	}
}

// Test that getting an unknown voter returns an error
func TestGetNonExistentVoterHandler(t *testing.T) {
	ts, lg, _ := prepareAPIServer()
	defer lg.Storage().Close()
	defer ts.Close()

	p := httputils.NewErrorProblem(errors.VoterDoesNotExist, httputils.StatusCode(errors.VoterDoesNotExist))

	{
		// Do a Request
		url := strings.Replace(GetVoterHandlerPattern, "{id}", keypair.Random().Address(), -1)
		respBody := request(ts, url, false)
		reader := bufio.NewReader(respBody)
		readByte, err := ioutil.ReadAll(reader)
		require.NoError(t, err)
		pByte := common.MustMarshalJSON(p)
		require.Equal(t, pByte, readByte)
	}
}

func TestGetVotersHandler(t *testing.T) {
	ts, lg, admin := prepareAPIServer()
	defer lg.Storage().Close()
	defer ts.Close()

	numberOfVoters := int(DefaultLimit) + 10
	voters := map[string]*campaign.Voter{}
	for i := 0; i < numberOfVoters; i++ {
		kp := keypair.Random()
		v, err := lg.AddVoter(admin.Address(), kp.Address())
		require.NoError(t, err)
		voters[v.Address] = v
	}

	records := func(readByte []byte) []interface{} {
		recv := make(map[string]interface{})
		common.MustUnmarshalJSON(readByte, &recv)
		return recv["_embedded"].(map[string]interface{})["records"].([]interface{})
	}

	{ // default limit
		respBody := request(ts, GetVotersHandlerPattern, false)
		defer respBody.Close()
		reader := bufio.NewReader(respBody)

		readByte, err := ioutil.ReadAll(reader)
		require.NoError(t, err)

		rs := records(readByte)
		require.Equal(t, int(DefaultLimit), len(rs))
		for _, r := range rs {
			record := r.(map[string]interface{})
			address := record["address"].(string)
			_, registered := voters[address]
			require.True(t, registered)
		}
	}

	{ // with limit
		url := GetVotersHandlerPattern + "?limit=" + strconv.Itoa(numberOfVoters)
		respBody := request(ts, url, false)
		defer respBody.Close()
		reader := bufio.NewReader(respBody)

		readByte, err := ioutil.ReadAll(reader)
		require.NoError(t, err)

		rs := records(readByte)
		require.Equal(t, numberOfVoters, len(rs))
	}

	{ // limit above the maximum
		url := GetVotersHandlerPattern + "?limit=" + strconv.FormatUint(MaxLimit+1, 10)
		req, _ := http.NewRequest("GET", ts.URL+url, nil)
		resp, err := ts.Client().Do(req)
		require.NoError(t, err)
		defer resp.Body.Close()

		require.Equal(t, http.StatusBadRequest, resp.StatusCode)

		readByte, err := ioutil.ReadAll(resp.Body)
		require.NoError(t, err)
		recv := make(map[string]interface{})
		common.MustUnmarshalJSON(readByte, &recv)
		require.True(
			t,
			strings.HasSuffix(
				recv["type"].(string),
				strconv.FormatUint(uint64(errors.PageQueryLimitMaxExceed.Code), 10),
			),
		)
	}

	{ // the two pages together cover the whole set once
		respBody := request(ts, GetVotersHandlerPattern, false)
		reader := bufio.NewReader(respBody)
		readByte, err := ioutil.ReadAll(reader)
		respBody.Close()
		require.NoError(t, err)

		recv := make(map[string]interface{})
		common.MustUnmarshalJSON(readByte, &recv)
		seen := map[string]bool{}
		for _, r := range records(readByte) {
			seen[r.(map[string]interface{})["address"].(string)] = true
		}

		l := recv["_links"].(map[string]interface{})
		next := l["next"].(map[string]interface{})["href"].(string)

		respBody = request(ts, next, false)
		reader = bufio.NewReader(respBody)
		readByte, err = ioutil.ReadAll(reader)
		respBody.Close()
		require.NoError(t, err)

		for _, r := range records(readByte) {
			address := r.(map[string]interface{})["address"].(string)
			require.False(t, seen[address])
			seen[address] = true
		}
		require.Equal(t, numberOfVoters, len(seen))
	}
}

func TestGetVoterChoiceHandler(t *testing.T) {
	ts, lg, admin := prepareAPIServer()
	defer lg.Storage().Close()
	defer ts.Close()

	{ // the choices are sealed until the voting session ends
		kp := keypair.Random()
		_, err := lg.AddVoter(admin.Address(), kp.Address())
		require.NoError(t, err)

		url := strings.Replace(GetVoterChoiceHandlerPattern, "{id}", kp.Address(), -1)
		req, _ := http.NewRequest("GET", ts.URL+url, nil)
		resp, err := ts.Client().Do(req)
		require.NoError(t, err)
		defer resp.Body.Close()

		require.Equal(t, http.StatusConflict, resp.StatusCode)

		readByte, err := ioutil.ReadAll(resp.Body)
		require.NoError(t, err)
		recv := make(map[string]interface{})
		common.MustUnmarshalJSON(readByte, &recv)
		require.True(
			t,
			strings.HasSuffix(
				recv["type"].(string),
				strconv.FormatUint(uint64(errors.InvalidTransition.Code), 10),
			),
		)
	}

	voters, err := campaign.TestDriveLedger(lg, admin.Address(), []string{"water", "power"}, []int{1, 0, 1})
	require.NoError(t, err)

	{ // revealed choice
		url := strings.Replace(GetVoterChoiceHandlerPattern, "{id}", voters[1].Address(), -1)
		respBody := request(ts, url, false)
		defer respBody.Close()
		reader := bufio.NewReader(respBody)

		readByte, err := ioutil.ReadAll(reader)
		require.NoError(t, err)
		recv := make(map[string]interface{})
		common.MustUnmarshalJSON(readByte, &recv)

		require.Equal(t, voters[1].Address(), recv["address"])
		require.Equal(t, float64(0), recv["choice"])

		l := recv["_links"].(map[string]interface{})
		require.Equal(t, "/api/v1/proposals/0", l["proposal"].(map[string]interface{})["href"])
	}

	{ // an address which is not a registered voter
		url := strings.Replace(GetVoterChoiceHandlerPattern, "{id}", keypair.Random().Address(), -1)
		req, _ := http.NewRequest("GET", ts.URL+url, nil)
		resp, err := ts.Client().Do(req)
		require.NoError(t, err)
		defer resp.Body.Close()

		require.Equal(t, http.StatusConflict, resp.StatusCode)

		readByte, err := ioutil.ReadAll(resp.Body)
		require.NoError(t, err)
		recv := make(map[string]interface{})
		common.MustUnmarshalJSON(readByte, &recv)
		require.True(
			t,
			strings.HasSuffix(
				recv["type"].(string),
				strconv.FormatUint(uint64(errors.PreconditionNotMet.Code), 10),
			),
		)
	}
}
