// Package client implements the HTTP client for the Lighter exchange API.
// It owns nothing cryptographic: transactions are canonicalized by the
// types package and signed by the signer package; this layer only shapes
// JSON, posts forms and reads nonces.
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/eth2030/lighter-signer/log"
	"github.com/eth2030/lighter-signer/signer"
	"github.com/eth2030/lighter-signer/types"
)

// Client talks to one Lighter API endpoint on behalf of one account and
// API key slot.
type Client struct {
	http         *http.Client
	baseURL      string
	km           *signer.KeyManager
	accountIndex int64
	apiKeyIndex  uint8
	chainID      int64
	now          func() time.Time
	log          *log.Logger
}

// Option adjusts a Client at construction time.
type Option func(*Client)

// WithHTTPClient substitutes the underlying http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithChainID overrides the chain id inferred from the base URL.
func WithChainID(chainID int64) Option {
	return func(c *Client) { c.chainID = chainID }
}

// WithLogger substitutes the logger.
func WithLogger(l *log.Logger) Option {
	return func(c *Client) { c.log = l }
}

// withClock substitutes the time source; tests pin deadlines with it.
func withClock(now func() time.Time) Option {
	return func(c *Client) { c.now = now }
}

// New builds a client from a hex private key. The chain id follows the
// base URL: mainnet hosts sign under 304, everything else under 300.
func New(baseURL, privateKeyHex string, accountIndex int64, apiKeyIndex uint8, opts ...Option) (*Client, error) {
	km, err := signer.FromHex(privateKeyHex)
	if err != nil {
		return nil, err
	}
	c := &Client{
		http:         &http.Client{Timeout: 30 * time.Second},
		baseURL:      strings.TrimRight(baseURL, "/"),
		km:           km,
		accountIndex: accountIndex,
		apiKeyIndex:  apiKeyIndex,
		chainID:      types.ChainIDTestnet,
		now:          time.Now,
		log:          log.Default().Module("client"),
	}
	if strings.Contains(baseURL, "mainnet") {
		c.chainID = types.ChainIDMainnet
	}
	for _, o := range opts {
		o(c)
	}
	c.km.SetChainID(c.chainID)
	return c, nil
}

// ChainID returns the chain id transactions are signed under.
func (c *Client) ChainID() int64 { return c.chainID }

// KeyManager exposes the client's key manager, e.g. to print the public
// key or mint tokens out of band.
func (c *Client) KeyManager() *signer.KeyManager { return c.km }

// apiError is the failure shape the exchange returns.
type apiError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// NextNonce asks the exchange for the next nonce of this account's API
// key slot.
func (c *Client) NextNonce(ctx context.Context) (int64, error) {
	u := fmt.Sprintf("%s/api/v1/nextNonce?account_index=%d&api_key_index=%d",
		c.baseURL, c.accountIndex, c.apiKeyIndex)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return 0, err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return 0, fmt.Errorf("client: nextNonce: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, err
	}
	var out struct {
		Nonce *int64 `json:"nonce"`
	}
	if err := json.Unmarshal(body, &out); err != nil || out.Nonce == nil {
		return 0, fmt.Errorf("client: nextNonce: unexpected response %q", body)
	}
	return *out.Nonce, nil
}

// SendTx posts a signed transaction. txInfo must already contain the
// base64 signature under "Sig"; priceProtection is forwarded as-is.
func (c *Client) SendTx(ctx context.Context, txType uint8, txInfo map[string]any, priceProtection bool) (json.RawMessage, error) {
	infoJSON, err := json.Marshal(txInfo)
	if err != nil {
		return nil, err
	}

	form := url.Values{}
	form.Set("tx_type", strconv.Itoa(int(txType)))
	form.Set("tx_info", string(infoJSON))
	form.Set("price_protection", strconv.FormatBool(priceProtection))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/api/v1/sendTx", strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	c.log.Debug("sendTx", "tx_type", txType)
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("client: sendTx: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		var ae apiError
		if json.Unmarshal(body, &ae) == nil && ae.Message != "" {
			return nil, fmt.Errorf("client: sendTx: %s (code %d)", ae.Message, ae.Code)
		}
		return nil, fmt.Errorf("client: sendTx: status %d", resp.StatusCode)
	}
	return json.RawMessage(body), nil
}

// AuthToken mints an auth token valid for ttl from now.
func (c *Client) AuthToken(ttl time.Duration) (string, error) {
	deadline := c.now().Unix() + int64(ttl/time.Second)
	return c.km.CreateAuthToken(deadline, c.accountIndex, c.apiKeyIndex)
}

// expiredAt returns the default signing deadline for a transaction
// submitted now.
func (c *Client) expiredAt() int64 {
	return c.now().Unix() + types.DefaultTxLifetimeSeconds
}
