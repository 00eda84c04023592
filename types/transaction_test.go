package types

import (
	"encoding/hex"
	"testing"

	"github.com/eth2030/lighter-signer/crypto"
)

// TestHashTransactionVector pins the canonical digest of a create-order
// field sequence under chain id 300.
func TestHashTransactionVector(t *testing.T) {
	fields := FieldSeq{
		I64(1),      // account index
		U8(0),       // market index
		U64(12345),  // client order index
		I64(1000),   // base amount
		I64(450000), // price
		Bool(false), // is ask
		U8(0),       // order type
		U8(1),       // time in force
		Bool(false), // reduce only
		I64(0),      // trigger price
	}
	want := crypto.Fp5FromUint64Array([5]uint64{
		12621149700336390602, 3599718959338220955, 12306422119453936261,
		6017470644514312460, 12852993352357143529,
	})
	got := HashTransaction(TxTypeCreateOrder, fields, ChainIDTestnet)
	if !got.Equal(want) {
		t.Fatalf("digest = %v, want %v", got, want)
	}

	b := got.Bytes()
	const wantHex = "ca119461c85427af9bed974652c5f43185ca0f26b731c9aa0cd19d54ab598253e963b41b5b015fb2"
	if hex.EncodeToString(b[:]) != wantHex {
		t.Fatalf("digest bytes = %x", b)
	}
}

// TestHashTransactionBracketing checks the type code and chain id actually
// enter the digest.
func TestHashTransactionBracketing(t *testing.T) {
	fields := FieldSeq{I64(1)}
	base := HashTransaction(TxTypeCreateOrder, fields, ChainIDTestnet)
	if HashTransaction(TxTypeCancelOrder, fields, ChainIDTestnet).Equal(base) {
		t.Fatal("type code must change the digest")
	}
	if HashTransaction(TxTypeCreateOrder, fields, ChainIDMainnet).Equal(base) {
		t.Fatal("chain id must change the digest")
	}
}

// TestFieldCasts checks the integer cast rules: bool to 0/1, u8
// zero-extended, i64 through two's complement.
func TestFieldCasts(t *testing.T) {
	limbs := FieldSeq{
		Bool(true),
		Bool(false),
		U8(0xff),
		I64(-1),
		U64(1 << 63),
	}.CanonicalLimbs()

	if limbs[0] != crypto.NewGoldilocks(1) || limbs[1] != crypto.NewGoldilocks(0) {
		t.Fatalf("bool limbs wrong: %v %v", limbs[0], limbs[1])
	}
	if limbs[2] != crypto.NewGoldilocks(255) {
		t.Fatalf("u8 limb wrong: %v", limbs[2])
	}
	if limbs[3] != crypto.GoldilocksFromI64(-1) {
		t.Fatalf("i64 limb wrong: %v", limbs[3])
	}
	if limbs[4] != crypto.NewGoldilocks(1<<63) {
		t.Fatalf("u64 limb wrong: %v", limbs[4])
	}
}

// TestBytes40Chunking checks a 40-byte key splits into five little-endian
// limbs in order.
func TestBytes40Chunking(t *testing.T) {
	var key [40]byte
	for i := range key {
		key[i] = byte(i)
	}
	limbs := FieldSeq{Bytes40(key)}.CanonicalLimbs()
	if len(limbs) != 5 {
		t.Fatalf("got %d limbs, want 5", len(limbs))
	}
	// First chunk is bytes 00..07 little-endian.
	if limbs[0] != crypto.NewGoldilocks(0x0706050403020100) {
		t.Fatalf("limb 0 = %v", limbs[0])
	}
	if limbs[4] != crypto.NewGoldilocks(0x2726252423222120) {
		t.Fatalf("limb 4 = %v", limbs[4])
	}
}

// TestBytesPadding checks a short byte field zero-pads its final chunk.
func TestBytesPadding(t *testing.T) {
	limbs := FieldSeq{Bytes([]byte{0xaa, 0xbb, 0xcc})}.CanonicalLimbs()
	if len(limbs) != 1 {
		t.Fatalf("got %d limbs, want 1", len(limbs))
	}
	if limbs[0] != crypto.NewGoldilocks(0x0000000000ccbbaa) {
		t.Fatalf("limb = %v", limbs[0])
	}
}

// TestVariantSchemas checks each variant emits its declared field order
// and the right element count.
func TestVariantSchemas(t *testing.T) {
	hdr := TxHeader{Nonce: 7, ExpiredAt: 99, AccountIndex: 3, ApiKeyIndex: 2}

	cases := []struct {
		tx     Transaction
		txType uint8
		limbs  int
	}{
		{&CreateOrder{TxHeader: hdr}, TxTypeCreateOrder, 14},
		{&CancelOrder{TxHeader: hdr}, TxTypeCancelOrder, 6},
		{&CancelAllOrders{TxHeader: hdr}, TxTypeCancelAllOrders, 6},
		{&ChangePubKey{TxHeader: hdr}, TxTypeChangePubKey, 9},
		{&CreateSubAccount{TxHeader: hdr}, TxTypeCreateSubAccount, 4},
	}
	for _, tc := range cases {
		if tc.tx.TxType() != tc.txType {
			t.Fatalf("tx type = %d, want %d", tc.tx.TxType(), tc.txType)
		}
		limbs := tc.tx.Fields().CanonicalLimbs()
		if len(limbs) != tc.limbs {
			t.Fatalf("type %d: %d limbs, want %d", tc.txType, len(limbs), tc.limbs)
		}
		// Header leads in declared order: nonce, expired_at, account, slot.
		if limbs[0] != crypto.NewGoldilocks(7) || limbs[1] != crypto.NewGoldilocks(99) ||
			limbs[2] != crypto.NewGoldilocks(3) || limbs[3] != crypto.NewGoldilocks(2) {
			t.Fatalf("type %d: header limbs wrong: %v", tc.txType, limbs[:4])
		}
	}
}

// TestSigningHashDeterminism checks identical transactions hash equal and
// a field change moves the digest.
func TestSigningHashDeterminism(t *testing.T) {
	tx := &CreateOrder{
		TxHeader:         TxHeader{Nonce: 1, ExpiredAt: 2, AccountIndex: 3, ApiKeyIndex: 4},
		MarketIndex:      1,
		ClientOrderIndex: 42,
		BaseAmount:       100,
		Price:            200,
	}
	h1 := SigningHash(tx, ChainIDTestnet)
	h2 := SigningHash(tx, ChainIDTestnet)
	if !h1.Equal(h2) {
		t.Fatal("hash not deterministic")
	}

	tx2 := *tx
	tx2.Price = 201
	if SigningHash(&tx2, ChainIDTestnet).Equal(h1) {
		t.Fatal("price change must move the digest")
	}
}
