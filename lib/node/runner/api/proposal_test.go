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
	"boscoin.io/congress/lib/errors"
	"boscoin.io/congress/lib/network/httputils"
)

func TestGetProposalHandler(t *testing.T) {
	ts, lg, admin := prepareAPIServer()
	defer lg.Storage().Close()
	defer ts.Close()

	_, err := campaign.TestDriveLedger(lg, admin.Address(), []string{"water", "power"}, []int{0})
	require.NoError(t, err)

	{
		// Do a Request
		url := strings.Replace(GetProposalHandlerPattern, "{id}", "0", -1)
		respBody := request(ts, url, false)
		defer respBody.Close()
		reader := bufio.NewReader(respBody)

		readByte, err := ioutil.ReadAll(reader)
		require.NoError(t, err)
		recv := make(map[string]interface{})
		common.MustUnmarshalJSON(readByte, &recv)

		require.Equal(t, float64(0), recv["index"])
		require.Equal(t, "water", recv["description"])
		require.Equal(t, float64(1), recv["votes"])

		l := recv["_links"].(map[string]interface{})
		require.Equal(t, "/api/v1/proposals/0", l["self"].(map[string]interface{})["href"])
	}

	{ // the id is not a number
		url := strings.Replace(GetProposalHandlerPattern, "{id}", "xyz", -1)
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
				strconv.FormatUint(uint64(errors.BadRequestParameter.Code), 10),
			),
		)
	}
}

// Test that getting an unknown proposal returns an error
func TestGetNonExistentProposalHandler(t *testing.T) {
	ts, lg, _ := prepareAPIServer()
	defer lg.Storage().Close()
	defer ts.Close()

	p := httputils.NewErrorProblem(errors.ProposalDoesNotExist, httputils.StatusCode(errors.ProposalDoesNotExist))

	{
		// Do a Request
		url := strings.Replace(GetProposalHandlerPattern, "{id}", "99", -1)
		respBody := request(ts, url, false)
		reader := bufio.NewReader(respBody)
		readByte, err := ioutil.ReadAll(reader)
		require.NoError(t, err)
		pByte := common.MustMarshalJSON(p)
		require.Equal(t, pByte, readByte)
	}
}

func TestGetProposalsHandler(t *testing.T) {
	ts, lg, admin := prepareAPIServer()
	defer lg.Storage().Close()
	defer ts.Close()

	numberOfProposals := int(DefaultLimit) + 5
	var descriptions []string
	for i := 0; i < numberOfProposals; i++ {
		descriptions = append(descriptions, "proposal "+strconv.Itoa(i))
	}
	_, err := campaign.TestDriveLedger(lg, admin.Address(), descriptions, []int{0})
	require.NoError(t, err)

	records := func(readByte []byte) []interface{} {
		recv := make(map[string]interface{})
		common.MustUnmarshalJSON(readByte, &recv)
		return recv["_embedded"].(map[string]interface{})["records"].([]interface{})
	}

	{ // default limit, the proposals come back in index order
		respBody := request(ts, GetProposalsHandlerPattern, false)
		defer respBody.Close()
		reader := bufio.NewReader(respBody)

		readByte, err := ioutil.ReadAll(reader)
		require.NoError(t, err)

		rs := records(readByte)
		require.Equal(t, int(DefaultLimit), len(rs))
		for i, r := range rs {
			record := r.(map[string]interface{})
			require.Equal(t, float64(i), record["index"])
			require.Equal(t, descriptions[i], record["description"])
		}
	}

	{ // reverse
		url := GetProposalsHandlerPattern + "?reverse=true&limit=5"
		respBody := request(ts, url, false)
		defer respBody.Close()
		reader := bufio.NewReader(respBody)

		readByte, err := ioutil.ReadAll(reader)
		require.NoError(t, err)

		rs := records(readByte)
		require.Equal(t, 5, len(rs))
		for i, r := range rs {
			record := r.(map[string]interface{})
			require.Equal(t, float64(numberOfProposals-1-i), record["index"])
		}
	}

	{ // the next link continues where the first page ended
		respBody := request(ts, GetProposalsHandlerPattern, false)
		reader := bufio.NewReader(respBody)
		readByte, err := ioutil.ReadAll(reader)
		respBody.Close()
		require.NoError(t, err)

		recv := make(map[string]interface{})
		common.MustUnmarshalJSON(readByte, &recv)
		l := recv["_links"].(map[string]interface{})
		next := l["next"].(map[string]interface{})["href"].(string)

		respBody = request(ts, next, false)
		reader = bufio.NewReader(respBody)
		readByte, err = ioutil.ReadAll(reader)
		respBody.Close()
		require.NoError(t, err)

		rs := records(readByte)
		require.Equal(t, numberOfProposals-int(DefaultLimit), len(rs))
		require.Equal(t, float64(DefaultLimit), rs[0].(map[string]interface{})["index"])
	}
}
