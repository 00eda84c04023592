package types

import "github.com/eth2030/lighter-signer/crypto"

// Transaction type codes, as assigned by the exchange.
const (
	TxTypeChangePubKey     uint8 = 8
	TxTypeCreateSubAccount uint8 = 9
	TxTypeCreateOrder      uint8 = 14
	TxTypeCancelOrder      uint8 = 15
	TxTypeCancelAllOrders  uint8 = 16
)

// Chain identifiers.
const (
	ChainIDMainnet int64 = 304
	ChainIDTestnet int64 = 300
)

// Order type codes.
const (
	OrderTypeLimit           uint8 = 0
	OrderTypeMarket          uint8 = 1
	OrderTypeStopLoss        uint8 = 2
	OrderTypeStopLossLimit   uint8 = 3
	OrderTypeTakeProfit      uint8 = 4
	OrderTypeTakeProfitLimit uint8 = 5
	OrderTypeTWAP            uint8 = 6
)

// Time-in-force codes for orders.
const (
	TifImmediateOrCancel uint8 = 0
	TifGoodTillTime      uint8 = 1
	TifPostOnly          uint8 = 2
	TifFillOrKill        uint8 = 3
)

// Time-in-force codes for cancel-all.
const (
	CancelAllTifImmediate uint8 = 0
	CancelAllTifScheduled uint8 = 1
	CancelAllTifAbort     uint8 = 2
)

// DefaultTxLifetimeSeconds is added to the current time to form ExpiredAt
// when the caller does not supply a deadline.
const DefaultTxLifetimeSeconds int64 = 599

// KeyLength is the byte length of keys and compressed points.
const KeyLength = 40

// Transaction is a signable Lighter transaction variant. Fields returns
// the canonical field sequence in the variant's declared order, without
// the type-code and chain-id bracketing (SigningHash adds those).
type Transaction interface {
	TxType() uint8
	Fields() FieldSeq
}

// SigningHash canonicalizes tx under the given chain id and hashes it to
// the 40-byte Fp5 signing message.
func SigningHash(tx Transaction, chainID int64) crypto.Fp5 {
	return HashTransaction(tx.TxType(), tx.Fields(), chainID)
}

// TxHeader carries the fields common to every transaction variant, in
// their declared order: nonce, deadline, account, api key slot.
type TxHeader struct {
	Nonce        int64
	ExpiredAt    int64
	AccountIndex int64
	ApiKeyIndex  uint8
}

func (h TxHeader) headerFields() FieldSeq {
	return FieldSeq{
		I64(h.Nonce),
		I64(h.ExpiredAt),
		I64(h.AccountIndex),
		U8(h.ApiKeyIndex),
	}
}

// CreateOrder places a new order on a market (type 14).
type CreateOrder struct {
	TxHeader
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

func (tx *CreateOrder) TxType() uint8 { return TxTypeCreateOrder }

func (tx *CreateOrder) Fields() FieldSeq {
	return append(tx.headerFields(),
		U8(tx.MarketIndex),
		U64(tx.ClientOrderIndex),
		I64(tx.BaseAmount),
		I64(tx.Price),
		Bool(tx.IsAsk),
		U8(tx.Type),
		U8(tx.TimeInForce),
		Bool(tx.ReduceOnly),
		I64(tx.TriggerPrice),
		I64(tx.OrderExpiry),
	)
}

// CancelOrder cancels a single resting order by index (type 15).
type CancelOrder struct {
	TxHeader
	MarketIndex uint8
	OrderIndex  int64
}

func (tx *CancelOrder) TxType() uint8 { return TxTypeCancelOrder }

func (tx *CancelOrder) Fields() FieldSeq {
	return append(tx.headerFields(),
		U8(tx.MarketIndex),
		I64(tx.OrderIndex),
	)
}

// CancelAllOrders cancels every resting order, immediately or at a
// scheduled time (type 16).
type CancelAllOrders struct {
	TxHeader
	TimeInForce uint8
	Time        int64
}

func (tx *CancelAllOrders) TxType() uint8 { return TxTypeCancelAllOrders }

func (tx *CancelAllOrders) Fields() FieldSeq {
	return append(tx.headerFields(),
		U8(tx.TimeInForce),
		I64(tx.Time),
	)
}

// ChangePubKey rotates the API key slot to a new public key (type 8).
type ChangePubKey struct {
	TxHeader
	PubKey [KeyLength]byte
}

func (tx *ChangePubKey) TxType() uint8 { return TxTypeChangePubKey }

func (tx *ChangePubKey) Fields() FieldSeq {
	return append(tx.headerFields(), Bytes40(tx.PubKey))
}

// CreateSubAccount opens a fresh sub-account (type 9). It carries only the
// common header.
type CreateSubAccount struct {
	TxHeader
}

func (tx *CreateSubAccount) TxType() uint8 { return TxTypeCreateSubAccount }

func (tx *CreateSubAccount) Fields() FieldSeq {
	return tx.headerFields()
}
