package blockchain

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"golang.org/x/time/rate"

	"memeforge.backend/internal/config"
	domainerrors "memeforge.backend/internal/domain/errors"
)

// TokenBalanceView is the token-account balance snapshot attached to a
// transaction, before or after execution.
type TokenBalanceView struct {
	AccountIndex uint16
	Mint         string
	Owner        string
	Amount       string // raw integer amount in base units
	Decimals     uint8
}

// TransactionView is the chain-independent projection of a finalized
// transaction that payment verification works against.
type TransactionView struct {
	Signature         string
	Err               interface{}
	BlockTime         time.Time
	AccountKeys       []string
	PreBalances       []uint64 // lamports, indexed like AccountKeys
	PostBalances      []uint64
	PreTokenBalances  []TokenBalanceView
	PostTokenBalances []TokenBalanceView
}

// Failed reports whether the transaction errored on chain.
func (v *TransactionView) Failed() bool {
	return v.Err != nil
}

// SolanaClient wraps the Solana JSON-RPC client used for payment
// verification.
type SolanaClient struct {
	client *rpc.Client
}

// NewSolanaClient creates a rate-limited Solana RPC client
func NewSolanaClient(cfg config.SolanaConfig) *SolanaClient {
	limited := rpc.NewWithLimiter(cfg.RPCURL, rate.Every(time.Second), cfg.RPCRateLimit)
	return &SolanaClient{client: rpc.NewWithCustomRPCClient(limited)}
}

// FetchTransaction fetches a finalized transaction by signature and
// projects it into a TransactionView. A malformed signature or a
// signature unknown to the cluster both map to ErrTransactionNotFound.
func (c *SolanaClient) FetchTransaction(ctx context.Context, signature string) (*TransactionView, error) {
	sig, err := solana.SignatureFromBase58(signature)
	if err != nil {
		return nil, domainerrors.ErrTransactionNotFound
	}

	var maxVersion uint64 = 0
	out, err := c.client.GetTransaction(ctx, sig, &rpc.GetTransactionOpts{
		Encoding:                       solana.EncodingBase64,
		Commitment:                     rpc.CommitmentFinalized,
		MaxSupportedTransactionVersion: &maxVersion,
	})
	if err != nil {
		if errors.Is(err, rpc.ErrNotFound) {
			return nil, domainerrors.ErrTransactionNotFound
		}
		return nil, fmt.Errorf("get transaction: %w", err)
	}
	if out == nil || out.Meta == nil {
		return nil, domainerrors.ErrTransactionNotFound
	}

	tx, err := out.Transaction.GetTransaction()
	if err != nil {
		return nil, fmt.Errorf("decode transaction: %w", err)
	}

	view := &TransactionView{
		Signature:    signature,
		Err:          out.Meta.Err,
		PreBalances:  out.Meta.PreBalances,
		PostBalances: out.Meta.PostBalances,
	}
	if out.BlockTime != nil {
		view.BlockTime = out.BlockTime.Time()
	}
	for _, key := range tx.Message.AccountKeys {
		view.AccountKeys = append(view.AccountKeys, key.String())
	}
	view.PreTokenBalances = toTokenBalanceViews(out.Meta.PreTokenBalances)
	view.PostTokenBalances = toTokenBalanceViews(out.Meta.PostTokenBalances)

	return view, nil
}

func toTokenBalanceViews(balances []rpc.TokenBalance) []TokenBalanceView {
	var views []TokenBalanceView
	for _, b := range balances {
		v := TokenBalanceView{
			AccountIndex: b.AccountIndex,
			Mint:         b.Mint.String(),
		}
		if b.Owner != nil {
			v.Owner = b.Owner.String()
		}
		if b.UiTokenAmount != nil {
			v.Amount = b.UiTokenAmount.Amount
			v.Decimals = b.UiTokenAmount.Decimals
		}
		views = append(views, v)
	}
	return views
}
