package price

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/davecgh/go-spew/spew"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// preferredMarket is the venue whose trading pairs win over any other
// pair quoting the same currency.
const preferredMarket = "binance"

// Client looks up cryptocurrency prices on the CoinGecko API. Every
// failure mode (network, bad status, malformed body, no match) is
// reported as unavailable, never as an error to the caller.
type Client struct {
	baseURL string
	http    *http.Client

	idMu    sync.Mutex
	idCache map[string]string
}

// NewClient creates a client for the given API base URL, e.g.
// "https://api.coingecko.com/api/v3".
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 10 * time.Second},
		idCache: make(map[string]string),
	}
}

type coinListEntry struct {
	ID     string `json:"id"`
	Symbol string `json:"symbol"`
}

type tickersResponse struct {
	Tickers []pairTicker `json:"tickers"`
}

type pairTicker struct {
	Target string  `json:"target"`
	Last   float64 `json:"last"`
	Market struct {
		Identifier string `json:"identifier"`
	} `json:"market"`
}

// CoinID resolves a ticker symbol to the provider's coin id. Results
// are cached for the lifetime of the process; the first symbol match in
// provider order wins.
func (c *Client) CoinID(ticker string) (string, bool) {
	ticker = strings.ToLower(ticker)

	c.idMu.Lock()
	id, cached := c.idCache[ticker]
	c.idMu.Unlock()
	if cached {
		return id, true
	}

	var coins []coinListEntry
	if err := c.getJSON("/coins/list", &coins); err != nil {
		log.Errorf("error getting coin list: %v", err)
		return "", false
	}

	for _, coin := range coins {
		if strings.ToLower(coin.Symbol) == ticker {
			c.idMu.Lock()
			c.idCache[ticker] = coin.ID
			c.idMu.Unlock()
			return coin.ID, true
		}
	}
	return "", false
}

// Price returns the current price of a ticker symbol in the given quote
// currency, or unavailable. Worst case it costs three round-trips:
// coin list, trading pairs, simple price.
func (c *Client) Price(ticker, currency string) (float64, bool) {
	coinID, ok := c.CoinID(ticker)
	if !ok {
		return 0, false
	}

	if p, ok := c.pairPrice(coinID, strings.ToUpper(currency)); ok && p > 0 {
		return p, true
	}

	return c.simplePrice(coinID, strings.ToLower(currency))
}

// pairPrice scans the coin's trading pairs for one quoted in target,
// preferring the designated venue and falling back to the first match
// on any venue.
func (c *Client) pairPrice(coinID, target string) (float64, bool) {
	var resp tickersResponse
	if err := c.getJSON("/coins/"+url.PathEscape(coinID)+"/tickers", &resp); err != nil {
		log.Errorf("error fetching trading pairs for %s: %v", coinID, err)
		return 0, false
	}

	if log.IsLevelEnabled(log.DebugLevel) {
		log.Debugf("trading pairs for %s: %s", coinID, spew.Sdump(resp.Tickers))
	}

	for _, t := range resp.Tickers {
		if t.Target == target && t.Market.Identifier == preferredMarket {
			return t.Last, true
		}
	}
	for _, t := range resp.Tickers {
		if t.Target == target {
			return t.Last, true
		}
	}
	return 0, false
}

// simplePrice queries the aggregate price endpoint, the last resort
// when no trading pair quotes the wanted currency.
func (c *Client) simplePrice(coinID, currency string) (float64, bool) {
	path := fmt.Sprintf("/simple/price?ids=%s&vs_currencies=%s",
		url.QueryEscape(coinID), url.QueryEscape(currency))

	var resp map[string]map[string]float64
	if err := c.getJSON(path, &resp); err != nil {
		log.Errorf("error fetching simple price for %s: %v", coinID, err)
		return 0, false
	}

	p, ok := resp[coinID][currency]
	if !ok {
		log.Debugf("simple price response has no %s/%s entry", coinID, currency)
		return 0, false
	}
	return p, true
}

func (c *Client) getJSON(path string, v interface{}) error {
	resp, err := c.http.Get(c.baseURL + path)
	if err != nil {
		return errors.Wrapf(err, "GET %s", path)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return errors.Errorf("GET %s: unexpected status %d", path, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return errors.Wrapf(err, "GET %s: decoding response", path)
	}
	return nil
}
