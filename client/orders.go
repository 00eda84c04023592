package client

import (
	"context"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"

	"github.com/eth2030/lighter-signer/types"
)

// OrderParams are the caller-facing knobs for CreateOrder.
type OrderParams struct {
	MarketIndex      uint8
	ClientOrderIndex uint64
	BaseAmount       int64
	Price            int64
	IsAsk            bool
	Type             uint8
	TimeInForce      uint8
	ReduceOnly       bool
	TriggerPrice     int64
	OrderExpiry      int64
}

// boolToInt renders booleans the way the exchange's JSON expects.
func boolToInt(v bool) int {
	if v {
		return 1
	}
	return 0
}

// signAndWire canonicalizes tx, signs it under the client's chain id and
// returns the wire payload with the base64 signature attached.
func (c *Client) signAndWire(tx types.Transaction, payload map[string]any) (map[string]any, error) {
	sig, err := c.km.SignTransaction(tx)
	if err != nil {
		return nil, err
	}
	payload["Sig"] = base64.StdEncoding.EncodeToString(sig[:])
	return payload, nil
}

// CreateOrder signs and submits a new order.
func (c *Client) CreateOrder(ctx context.Context, p OrderParams) (json.RawMessage, error) {
	nonce, err := c.NextNonce(ctx)
	if err != nil {
		return nil, err
	}
	tx := &types.CreateOrder{
		TxHeader: types.TxHeader{
			Nonce:        nonce,
			ExpiredAt:    c.expiredAt(),
			AccountIndex: c.accountIndex,
			ApiKeyIndex:  c.apiKeyIndex,
		},
		MarketIndex:      p.MarketIndex,
		ClientOrderIndex: p.ClientOrderIndex,
		BaseAmount:       p.BaseAmount,
		Price:            p.Price,
		IsAsk:            p.IsAsk,
		Type:             p.Type,
		TimeInForce:      p.TimeInForce,
		ReduceOnly:       p.ReduceOnly,
		TriggerPrice:     p.TriggerPrice,
		OrderExpiry:      p.OrderExpiry,
	}
	payload := map[string]any{
		"AccountIndex":     tx.AccountIndex,
		"ApiKeyIndex":      tx.ApiKeyIndex,
		"MarketIndex":      tx.MarketIndex,
		"ClientOrderIndex": tx.ClientOrderIndex,
		"BaseAmount":       tx.BaseAmount,
		"Price":            tx.Price,
		"IsAsk":            boolToInt(tx.IsAsk),
		"Type":             tx.Type,
		"TimeInForce":      tx.TimeInForce,
		"ReduceOnly":       boolToInt(tx.ReduceOnly),
		"TriggerPrice":     tx.TriggerPrice,
		"OrderExpiry":      tx.OrderExpiry,
		"ExpiredAt":        tx.ExpiredAt,
		"Nonce":            tx.Nonce,
	}
	payload, err = c.signAndWire(tx, payload)
	if err != nil {
		return nil, err
	}
	return c.SendTx(ctx, types.TxTypeCreateOrder, payload, true)
}

// CreateMarketOrder submits an immediate-or-cancel market order at the
// given worst acceptable execution price.
func (c *Client) CreateMarketOrder(ctx context.Context, marketIndex uint8, clientOrderIndex uint64, baseAmount, avgExecutionPrice int64, isAsk bool) (json.RawMessage, error) {
	return c.CreateOrder(ctx, OrderParams{
		MarketIndex:      marketIndex,
		ClientOrderIndex: clientOrderIndex,
		BaseAmount:       baseAmount,
		Price:            avgExecutionPrice,
		IsAsk:            isAsk,
		Type:             types.OrderTypeMarket,
		TimeInForce:      types.TifImmediateOrCancel,
	})
}

// CancelOrder signs and submits a cancellation of one resting order.
func (c *Client) CancelOrder(ctx context.Context, marketIndex uint8, orderIndex int64) (json.RawMessage, error) {
	nonce, err := c.NextNonce(ctx)
	if err != nil {
		return nil, err
	}
	tx := &types.CancelOrder{
		TxHeader: types.TxHeader{
			Nonce:        nonce,
			ExpiredAt:    c.expiredAt(),
			AccountIndex: c.accountIndex,
			ApiKeyIndex:  c.apiKeyIndex,
		},
		MarketIndex: marketIndex,
		OrderIndex:  orderIndex,
	}
	payload := map[string]any{
		"AccountIndex": tx.AccountIndex,
		"ApiKeyIndex":  tx.ApiKeyIndex,
		"MarketIndex":  tx.MarketIndex,
		"Index":        tx.OrderIndex,
		"ExpiredAt":    tx.ExpiredAt,
		"Nonce":        tx.Nonce,
	}
	payload, err = c.signAndWire(tx, payload)
	if err != nil {
		return nil, err
	}
	return c.SendTx(ctx, types.TxTypeCancelOrder, payload, true)
}

// CancelAllOrders signs and submits a cancel-all with the given cancel-all
// time-in-force and schedule time.
func (c *Client) CancelAllOrders(ctx context.Context, timeInForce uint8, scheduledTime int64) (json.RawMessage, error) {
	nonce, err := c.NextNonce(ctx)
	if err != nil {
		return nil, err
	}
	tx := &types.CancelAllOrders{
		TxHeader: types.TxHeader{
			Nonce:        nonce,
			ExpiredAt:    c.expiredAt(),
			AccountIndex: c.accountIndex,
			ApiKeyIndex:  c.apiKeyIndex,
		},
		TimeInForce: timeInForce,
		Time:        scheduledTime,
	}
	payload := map[string]any{
		"AccountIndex": tx.AccountIndex,
		"ApiKeyIndex":  tx.ApiKeyIndex,
		"TimeInForce":  tx.TimeInForce,
		"Time":         tx.Time,
		"ExpiredAt":    tx.ExpiredAt,
		"Nonce":        tx.Nonce,
	}
	payload, err = c.signAndWire(tx, payload)
	if err != nil {
		return nil, err
	}
	return c.SendTx(ctx, types.TxTypeCancelAllOrders, payload, true)
}

// ChangePubKey rotates this API key slot to a new 40-byte public key.
func (c *Client) ChangePubKey(ctx context.Context, newPubKey [types.KeyLength]byte) (json.RawMessage, error) {
	nonce, err := c.NextNonce(ctx)
	if err != nil {
		return nil, err
	}
	tx := &types.ChangePubKey{
		TxHeader: types.TxHeader{
			Nonce:        nonce,
			ExpiredAt:    c.expiredAt(),
			AccountIndex: c.accountIndex,
			ApiKeyIndex:  c.apiKeyIndex,
		},
		PubKey: newPubKey,
	}
	payload := map[string]any{
		"AccountIndex": tx.AccountIndex,
		"ApiKeyIndex":  tx.ApiKeyIndex,
		"PubKey":       hex.EncodeToString(newPubKey[:]),
		"ExpiredAt":    tx.ExpiredAt,
		"Nonce":        tx.Nonce,
	}
	payload, err = c.signAndWire(tx, payload)
	if err != nil {
		return nil, err
	}
	return c.SendTx(ctx, types.TxTypeChangePubKey, payload, false)
}

// CreateSubAccount opens a new sub-account under this account.
func (c *Client) CreateSubAccount(ctx context.Context) (json.RawMessage, error) {
	nonce, err := c.NextNonce(ctx)
	if err != nil {
		return nil, err
	}
	tx := &types.CreateSubAccount{
		TxHeader: types.TxHeader{
			Nonce:        nonce,
			ExpiredAt:    c.expiredAt(),
			AccountIndex: c.accountIndex,
			ApiKeyIndex:  c.apiKeyIndex,
		},
	}
	payload := map[string]any{
		"AccountIndex": tx.AccountIndex,
		"ApiKeyIndex":  tx.ApiKeyIndex,
		"ExpiredAt":    tx.ExpiredAt,
		"Nonce":        tx.Nonce,
	}
	payload, err = c.signAndWire(tx, payload)
	if err != nil {
		return nil, err
	}
	return c.SendTx(ctx, types.TxTypeCreateSubAccount, payload, false)
}
