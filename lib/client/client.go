package client

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	neturl "net/url"
	"strconv"
	"strings"

	"boscoin.io/congress/lib/common"
	"boscoin.io/congress/lib/common/observer"
	"boscoin.io/congress/lib/node"
)

const (
	UrlPrefixForAPIV1 = "/api/v1"

	UrlCampaign    = "/campaign"
	UrlVoters      = "/voters"
	UrlVoter       = "/voters/{id}"
	UrlVoterChoice = "/voters/{id}/choice"
	UrlProposals   = "/proposals"
	UrlProposal    = "/proposals/{id}"
	UrlWinner      = "/winner"
	UrlCommands    = "/commands"
	UrlSubscribe   = "/subscribe"
	UrlNodeInfo    = "/"
)

type QueryKey string

func (qk QueryKey) String() string {
	return string(qk)
}

const (
	QueryLimit   QueryKey = "limit"
	QueryReverse QueryKey = "reverse"
	QueryCursor  QueryKey = "cursor"
)

type Q struct {
	Key   QueryKey
	Value string
}

type Queries []Q

func (qs Queries) toQueryString() string {
	urlValues := neturl.Values{}
	if len(qs) == 0 {
		return ""
	}
	for _, q := range qs {
		switch q.Key {
		case QueryLimit:
			urlValues.Add(QueryLimit.String(), q.Value)
		case QueryReverse:
			urlValues.Add(QueryReverse.String(), q.Value)
		case QueryCursor:
			urlValues.Add(QueryCursor.String(), q.Value)
		}
	}
	return "?" + urlValues.Encode()
}

type Client struct {
	URL string

	HTTP *common.HTTP2Client
}

func NewClient(url string) *Client {
	httpClient, err := common.NewHTTP2Client(0, 0, true)
	if err != nil {
		panic(err)
	}
	return &Client{
		URL:  url,
		HTTP: httpClient,
	}
}

func (c *Client) toResponse(resp *http.Response, response interface{}) (err error) {
	defer resp.Body.Close()
	decoder := json.NewDecoder(resp.Body)

	if !(resp.StatusCode >= http.StatusOK && resp.StatusCode < http.StatusMultipleChoices) {
		var p Problem
		err = decoder.Decode(&p)
		if err != nil {
			return
		}
		return Error{Problem: p}
	}

	err = decoder.Decode(&response)
	if err != nil {
		return
	}
	return
}

func (c *Client) Get(path string, headers http.Header) (response *http.Response, err error) {
	url := c.URL + UrlPrefixForAPIV1 + path
	return c.HTTP.Get(url, headers)
}

func (c *Client) Post(path string, body []byte, headers http.Header) (response *http.Response, err error) {
	url := c.URL + UrlPrefixForAPIV1 + path
	return c.HTTP.Post(url, body, headers)
}

func (c *Client) LoadCampaign(queries ...Q) (campaign Campaign, err error) {
	url := UrlCampaign
	url += Queries(queries).toQueryString()
	headers := http.Header{}
	headers.Set("Content-Type", "application/json")
	resp, err := c.Get(url, headers)
	if err != nil {
		return
	}
	defer resp.Body.Close()
	err = c.toResponse(resp, &campaign)
	return
}

func (c *Client) LoadVoter(address string, queries ...Q) (voter Voter, err error) {
	url := strings.Replace(UrlVoter, "{id}", address, -1)
	url += Queries(queries).toQueryString()
	headers := http.Header{}
	headers.Set("Content-Type", "application/json")
	resp, err := c.Get(url, headers)
	if err != nil {
		return
	}
	defer resp.Body.Close()
	err = c.toResponse(resp, &voter)
	return
}

func (c *Client) LoadVoters(queries ...Q) (vPage VotersPage, err error) {
	url := UrlVoters
	url += Queries(queries).toQueryString()
	headers := http.Header{}
	headers.Set("Content-Type", "application/json")
	resp, err := c.Get(url, headers)
	if err != nil {
		return
	}
	defer resp.Body.Close()
	err = c.toResponse(resp, &vPage)
	return
}

func (c *Client) LoadVoterChoice(address string, queries ...Q) (choice VoterChoice, err error) {
	url := strings.Replace(UrlVoterChoice, "{id}", address, -1)
	url += Queries(queries).toQueryString()
	headers := http.Header{}
	headers.Set("Content-Type", "application/json")
	resp, err := c.Get(url, headers)
	if err != nil {
		return
	}
	defer resp.Body.Close()
	err = c.toResponse(resp, &choice)
	return
}

func (c *Client) LoadProposal(index uint64, queries ...Q) (proposal Proposal, err error) {
	url := strings.Replace(UrlProposal, "{id}", strconv.FormatUint(index, 10), -1)
	url += Queries(queries).toQueryString()
	headers := http.Header{}
	headers.Set("Content-Type", "application/json")
	resp, err := c.Get(url, headers)
	if err != nil {
		return
	}
	defer resp.Body.Close()
	err = c.toResponse(resp, &proposal)
	return
}

func (c *Client) LoadProposals(queries ...Q) (pPage ProposalsPage, err error) {
	url := UrlProposals
	url += Queries(queries).toQueryString()
	headers := http.Header{}
	headers.Set("Content-Type", "application/json")
	resp, err := c.Get(url, headers)
	if err != nil {
		return
	}
	defer resp.Body.Close()
	err = c.toResponse(resp, &pPage)
	return
}

func (c *Client) LoadWinner(queries ...Q) (winner Winner, err error) {
	url := UrlWinner
	url += Queries(queries).toQueryString()
	headers := http.Header{}
	headers.Set("Content-Type", "application/json")
	resp, err := c.Get(url, headers)
	if err != nil {
		return
	}
	defer resp.Body.Close()
	err = c.toResponse(resp, &winner)
	return
}

func (c *Client) LoadNodeInfo() (nodeInfo node.NodeInfo, err error) {
	headers := http.Header{}
	headers.Set("Content-Type", "application/json")
	resp, err := c.Get(UrlNodeInfo, headers)
	if err != nil {
		return
	}
	defer resp.Body.Close()

	var buf bytes.Buffer
	if _, err = buf.ReadFrom(resp.Body); err != nil {
		return
	}
	if !(resp.StatusCode >= http.StatusOK && resp.StatusCode < http.StatusMultipleChoices) {
		var p Problem
		if err = json.Unmarshal(buf.Bytes(), &p); err != nil {
			return
		}
		err = Error{Problem: p}
		return
	}
	return node.NewNodeInfoFromJSON(buf.Bytes())
}

// SubmitCommand posts a serialized command and decodes the
// acknowledgement the api answers an applied command with.
func (c *Client) SubmitCommand(cmd []byte) (ack CommandPost, err error) {
	url := UrlCommands
	headers := http.Header{}
	headers.Set("Content-Type", "application/json")
	resp, err := c.Post(url, cmd, headers)
	if err != nil {
		return
	}
	defer resp.Body.Close()
	err = c.toResponse(resp, &ack)
	return
}

// Stream subscribes to the ledger events the conditions select and feeds
// every payload line to handler until ctx is done. The payloads are the
// same documents the GET endpoints serve.
func (c *Client) Stream(ctx context.Context, handler func(data []byte) error, conditions ...observer.Conditions) (err error) {
	body, err := json.Marshal(conditions)
	if err != nil {
		return
	}

	var headers = http.Header{}
	headers.Set("Content-Type", "application/json")
	headers.Set("Accept", "text/event-stream")
	resp, err := c.Post(UrlSubscribe, body, headers)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		decoder := json.NewDecoder(resp.Body)
		var p Problem
		if err = decoder.Decode(&p); err != nil {
			return err
		}
		return Error{Problem: p}
	}

	reader := bufio.NewReader(resp.Body)
	for {
		line, err := reader.ReadBytes('\n')
		if err != nil {
			return err
		}

		line = bytes.TrimSpace(line)
		if len(line) == 0 {
			continue
		}
		if err := handler(line); err != nil {
			return err
		}

		select {
		case <-ctx.Done():
			return nil
		default:
		}
	}
}

func (c *Client) StreamCampaign(ctx context.Context, handler func(Campaign)) (err error) {
	handlerFunc := func(b []byte) (err error) {
		var v Campaign
		err = json.Unmarshal(b, &v)
		if err != nil {
			return err
		}
		handler(v)
		return nil
	}
	return c.Stream(ctx, handlerFunc, observer.NewCondition(observer.Camp, observer.All))
}

func (c *Client) StreamVoters(ctx context.Context, handler func(Voter)) (err error) {
	handlerFunc := func(b []byte) (err error) {
		var v Voter
		err = json.Unmarshal(b, &v)
		if err != nil {
			return err
		}
		handler(v)
		return nil
	}
	return c.Stream(ctx, handlerFunc, observer.NewCondition(observer.Vt, observer.All))
}

func (c *Client) StreamVoter(ctx context.Context, address string, handler func(Voter)) (err error) {
	handlerFunc := func(b []byte) (err error) {
		var v Voter
		err = json.Unmarshal(b, &v)
		if err != nil {
			return err
		}
		handler(v)
		return nil
	}
	return c.Stream(ctx, handlerFunc, observer.NewCondition(observer.Vt, observer.Identifier, address))
}

func (c *Client) StreamProposals(ctx context.Context, handler func(Proposal)) (err error) {
	handlerFunc := func(b []byte) (err error) {
		var v Proposal
		err = json.Unmarshal(b, &v)
		if err != nil {
			return err
		}
		handler(v)
		return nil
	}
	return c.Stream(ctx, handlerFunc, observer.NewCondition(observer.Pr, observer.All))
}
