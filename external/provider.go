// Package external wraps the upstream market-data HTTP APIs. Each provider
// normalizes its own response shapes into types.MarketCapSeries at this
// boundary; provider field names never leak past it.
package external

import (
	"context"
	"encoding/json"
	"fmt"
	"io/ioutil"
	"net"
	"net/http"
	"time"

	"github.com/tokenfolio/marketcap-backend/types"
)

// Provider is the uniform capability the aggregator sees. FetchMarketCap
// returns types.ErrNoData both when the source has nothing for the token and
// when it failed transiently; a single provider outage must never abort the
// overall request, so transport and payload failures are logged inside the
// adapter and folded into that one signal.
type Provider interface {
	Name() string
	FetchMarketCap(ctx context.Context, token types.Token, days types.DayRange) (*types.MarketCapSeries, error)
	ClearCache(ctx context.Context)
}

func newHTTPClient() *http.Client {
	netTransport := &http.Transport{
		Dial: (&net.Dialer{
			Timeout: 5 * time.Second,
		}).Dial,
		TLSHandshakeTimeout: 5 * time.Second,
	}
	return &http.Client{
		Timeout:   10 * time.Second,
		Transport: netTransport,
	}
}

func fetchJSON(ctx context.Context, client *http.Client, url string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")

	response, err := client.Do(req)
	if err != nil {
		return err
	}
	defer response.Body.Close()

	if response.StatusCode != http.StatusOK {
		return fmt.Errorf("upstream status %d", response.StatusCode)
	}
	body, err := ioutil.ReadAll(response.Body)
	if err != nil {
		return err
	}
	return json.Unmarshal(body, out)
}
