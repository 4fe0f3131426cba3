package historyDecoder

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/ledgerscope/txdecoder/pkg/assets"
	"github.com/ledgerscope/txdecoder/pkg/ethereum"
	"go.uber.org/zap"
)

// BaseDecoderTools bundles the collaborators every decode function needs:
// token metadata, tracked-address recognition and sequence index assignment.
// One instance is shared by all modules; it carries no per-transaction state.
type BaseDecoderTools struct {
	logger  *zap.Logger
	tokens  assets.TokenStore
	scanner AccountScanner
}

func NewBaseDecoderTools(
	logger *zap.Logger,
	tokens assets.TokenStore,
	scanner AccountScanner,
) *BaseDecoderTools {
	return &BaseDecoderTools{
		logger:  logger,
		tokens:  tokens,
		scanner: scanner,
	}
}

// GetSequenceIndex derives the sequence index for an event triggered by the
// given log. Index 0 is reserved for the fee event, so log-triggered events
// start at logIndex+1. Events synthesized in addition to a log's primary
// event take the following indices to preserve their relative order.
func (b *BaseDecoderTools) GetSequenceIndex(log *ethereum.EventLog) uint64 {
	return log.LogIndex + 1
}

func (b *BaseDecoderTools) IsTrackedAddress(address common.Address) bool {
	return b.scanner.IsTrackedAddress(address)
}

func (b *BaseDecoderTools) ResolveToken(address common.Address) (*assets.Token, bool) {
	return b.tokens.ResolveToken(address)
}

func (b *BaseDecoderTools) NativeToken() *assets.Token {
	return b.tokens.NativeToken()
}

func (b *BaseDecoderTools) Logger() *zap.Logger {
	return b.logger
}
