// Package illuvium decodes Illuvium staking pool and sILV2 migration logs.
//
// The v1 core pools emit three relevant events:
//
//	Staked(address indexed by, address indexed from, uint256 amount)
//	Unstaked(address indexed by, address indexed to, uint256 amount)
//	YieldClaimed(address indexed by, address indexed from, bool sILV, uint256 amount)
//
// Staked and Unstaked correlate with a token transfer decoded earlier in the
// same receipt and reclassify it. YieldClaimed encodes two mutually exclusive
// outcomes in its first data word: 1 means the yield was paid out as freshly
// minted sILV (the mint transfer is reclassified to a reward), 0 means the
// yield was paid as ILV and immediately restaked into the ILV pool (two
// events are synthesized, no transfer exists). Any other value of the flag is
// outside its domain and the log is rejected.
//
// The sILV2 merkle distributor emits LogClaim when sILV1 holders migrate;
// the sILV2 mint transfer is reclassified to a migration.
package illuvium

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ledgerscope/txdecoder/internal/types/numbers"
	"github.com/ledgerscope/txdecoder/pkg/assets"
	"github.com/ledgerscope/txdecoder/pkg/ethereum"
	"github.com/ledgerscope/txdecoder/pkg/historyDecoder"
	"github.com/ledgerscope/txdecoder/pkg/historyDecoder/modules/tokenTransfers"
	"github.com/ledgerscope/txdecoder/pkg/historyEvents"
	"github.com/ledgerscope/txdecoder/pkg/utils"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

const (
	ModuleName = "IlluviumModule"

	// CounterpartyIlluvium tags every event this module produces.
	CounterpartyIlluvium = "illuvium"

	unknownPoolName = "Unknown"
)

// Contract addresses on Ethereum mainnet.
var (
	ILVCorePoolV1          = common.HexToAddress("0x25121EDDf746c884ddE4619b573A7B10714E2a36")
	ILVETHCorePoolV1       = common.HexToAddress("0x8B4d8443a0229349A9892D4F7CbE89eF5f843F72")
	SILV2MerkleDistributor = common.HexToAddress("0xA904f27b1DE7e82Ba587677eE1f5af0AD0A8c79A")
)

// Event signatures.
var (
	StakedSignature       = common.HexToHash("0x5dac0c1b1112564a045ba943c9d50270893e8e826c49be8e7073adc713ab7bd7")
	UnstakedSignature     = common.HexToHash("0xd8654fcc8cf5b36d30b3f5e4688fc78118e6d68de60b9994e09902268b57c3e3")
	YieldClaimedSignature = common.HexToHash("0x5033fdcf01566fb38fe1493114b856ff2a5d1c7875a6fafdacd1d320a012806a")
	LogClaimSignature     = common.HexToHash("0x51223fdc0a25891366fb358b4af9fe3c381b1566e287c61a29d01c8a173fe4f4")
)

// Tokens this module deals with.
var (
	TokenILV = &assets.Token{
		Identifier: "ILV",
		Symbol:     "ILV",
		Address:    common.HexToAddress("0x767FE9EDC9E0dF98E07454847909b5E959D7ca0E"),
		Decimals:   18,
	}
	TokenSILVV1 = &assets.Token{
		Identifier: "sILV",
		Symbol:     "sILV",
		Address:    common.HexToAddress("0x398AeA1c9ceb7dE800284bb399A15e0Efe5A9EC2"),
		Decimals:   18,
	}
	TokenSILV2 = &assets.Token{
		Identifier: "sILV2",
		Symbol:     "sILV2",
		Address:    common.HexToAddress("0x7E77dCb127F99ECe88230a64Db8d595F31F1b068"),
		Decimals:   18,
	}
	TokenSLPILVETH = &assets.Token{
		Identifier: "SLP-ILV-ETH",
		Symbol:     "SLP",
		Address:    common.HexToAddress("0x6a091a3406E0073C3CD6340122143009aDac0EDa"),
		Decimals:   18,
	}
)

// Tokens returns every token the module references, for seeding a token
// store.
func Tokens() []*assets.Token {
	return []*assets.Token{TokenILV, TokenSILVV1, TokenSILV2, TokenSLPILVETH}
}

// poolNames qualifies notes text per pool deployment. Non-authoritative, so
// an unmapped address resolves to an explicit unknown label instead of
// failing.
var poolNames = map[common.Address]string{
	ILVCorePoolV1:    "ILV",
	ILVETHCorePoolV1: "ILV/ETH",
}

// depositTokens maps each pool to the token it stakes.
var depositTokens = map[common.Address]*assets.Token{
	ILVCorePoolV1:    TokenILV,
	ILVETHCorePoolV1: TokenSLPILVETH,
}

type IlluviumModule struct {
	base   *historyDecoder.BaseDecoderTools
	logger *zap.Logger
}

func NewIlluviumModule(
	base *historyDecoder.BaseDecoderTools,
	logger *zap.Logger,
) *IlluviumModule {
	return &IlluviumModule{
		base:   base,
		logger: logger,
	}
}

func (m *IlluviumModule) Name() string {
	return ModuleName
}

func (m *IlluviumModule) AddressesToDecoders() map[common.Address][]historyDecoder.DecodeFunction {
	return map[common.Address][]historyDecoder.DecodeFunction{
		ILVCorePoolV1:          {m.decodeCorePoolV1Event},
		ILVETHCorePoolV1:       {m.decodeCorePoolV1Event},
		SILV2MerkleDistributor: {m.decodeSILV2Claim},
	}
}

func (m *IlluviumModule) Counterparties() []string {
	return []string{CounterpartyIlluvium}
}

func poolName(address common.Address) string {
	if name, ok := poolNames[address]; ok {
		return name
	}
	return unknownPoolName
}

func (m *IlluviumModule) decodeCorePoolV1Event(
	lg *ethereum.EventLog,
	tx *ethereum.Transaction,
	eventsSoFar *historyDecoder.EventsArena,
	allLogs []*ethereum.EventLog,
	actionItems []*historyDecoder.ActionItem,
) (*historyEvents.HistoryEvent, []*historyDecoder.ActionItem, error) {
	sig := lg.Signature()
	if sig != StakedSignature && sig != UnstakedSignature && sig != YieldClaimedSignature {
		return nil, nil, nil
	}
	if len(lg.Topics) < 2 {
		return nil, nil, errors.Wrapf(historyDecoder.ErrMalformedLog,
			"pool log %d has %d topics", lg.LogIndex, len(lg.Topics))
	}
	user := utils.TopicToAddress(lg.Topics[1])

	switch sig {
	case StakedSignature:
		m.reclassifyStake(lg, user, eventsSoFar)
		return nil, nil, nil
	case UnstakedSignature:
		m.reclassifyUnstake(lg, user, eventsSoFar)
		return nil, nil, nil
	default:
		return m.decodeYieldClaim(lg, tx, user, eventsSoFar)
	}
}

// reclassifyStake rewrites the user's spend of the pool's deposit token into
// a staking deposit. The transfer and the Staked log describe the same
// movement; rewriting in place avoids double counting.
func (m *IlluviumModule) reclassifyStake(
	lg *ethereum.EventLog,
	user common.Address,
	eventsSoFar *historyDecoder.EventsArena,
) {
	depositToken := depositTokens[lg.Address]
	for _, event := range eventsSoFar.Events() {
		if !event.Asset.Equal(depositToken) ||
			event.LocationLabel != user.String() ||
			event.EventType != historyEvents.EventTypeSpend ||
			event.EventSubType != historyEvents.EventSubTypeNone {
			continue
		}
		amount := event.Balance.Amount
		event.EventType = historyEvents.EventTypeStaking
		event.EventSubType = historyEvents.EventSubTypeDepositAsset
		event.Counterparty = CounterpartyIlluvium
		event.Notes = fmt.Sprintf("Stake %s %s in the %s pool", amount.String(), depositToken.Symbol, poolName(lg.Address))
		event.ExtraData = map[string]string{
			"staked_amount": amount.String(),
			"asset":         depositToken.Symbol,
		}
	}
}

func (m *IlluviumModule) reclassifyUnstake(
	lg *ethereum.EventLog,
	user common.Address,
	eventsSoFar *historyDecoder.EventsArena,
) {
	depositToken := depositTokens[lg.Address]
	for _, event := range eventsSoFar.Events() {
		if !event.Asset.Equal(depositToken) ||
			event.LocationLabel != user.String() ||
			event.EventType != historyEvents.EventTypeReceive ||
			event.EventSubType != historyEvents.EventSubTypeNone {
			continue
		}
		amount := event.Balance.Amount
		event.EventType = historyEvents.EventTypeStaking
		event.EventSubType = historyEvents.EventSubTypeRemoveAsset
		event.Counterparty = CounterpartyIlluvium
		event.Notes = fmt.Sprintf("Unstake %s %s from the %s pool", amount.String(), depositToken.Symbol, poolName(lg.Address))
		event.ExtraData = map[string]string{
			"unstaked_amount": amount.String(),
			"asset":           depositToken.Symbol,
		}
	}
}

// decodeYieldClaim handles YieldClaimed. The first data word is the branch
// discriminant: 1 pays the yield as minted sILV, 0 pays it as ILV locked
// straight back into the ILV pool. Exactly one branch's events may appear.
func (m *IlluviumModule) decodeYieldClaim(
	lg *ethereum.EventLog,
	tx *ethereum.Transaction,
	user common.Address,
	eventsSoFar *historyDecoder.EventsArena,
) (*historyEvents.HistoryEvent, []*historyDecoder.ActionItem, error) {
	flag, err := utils.DataWordToBig(lg.Data, 0)
	if err != nil {
		return nil, nil, errors.Wrap(historyDecoder.ErrMalformedLog, err.Error())
	}
	raw, err := utils.DataWordToBig(lg.Data, 1)
	if err != nil {
		return nil, nil, errors.Wrap(historyDecoder.ErrMalformedLog, err.Error())
	}

	switch {
	case flag.Cmp(common.Big1) == 0:
		// Yield minted as sILV; the mint transfer earlier in the receipt is
		// the actual movement.
		for _, event := range eventsSoFar.Events() {
			if !event.Asset.Equal(TokenSILVV1) ||
				event.LocationLabel != user.String() ||
				event.EventType != historyEvents.EventTypeReceive ||
				event.EventSubType != historyEvents.EventSubTypeNone {
				continue
			}
			amount := event.Balance.Amount
			event.EventType = historyEvents.EventTypeReceive
			event.EventSubType = historyEvents.EventSubTypeReward
			event.Counterparty = CounterpartyIlluvium
			event.Notes = fmt.Sprintf("Claim %s %s", amount.String(), TokenSILVV1.Symbol)
			event.ExtraData = map[string]string{
				"claimed_amount": amount.String(),
				"asset":          TokenSILVV1.Symbol,
			}
		}
		return nil, nil, nil

	case flag.Sign() == 0:
		// Yield paid as ILV and auto-staked; no transfer log exists, so both
		// events are synthesized from the raw amount.
		amount, err := numbers.NormalizeAmount(raw, TokenILV.Decimals)
		if err != nil {
			return nil, nil, err
		}
		baseIndex := m.base.GetSequenceIndex(lg)

		eventsSoFar.Append(&historyEvents.HistoryEvent{
			EventIdentifier: tx.Hash.String(),
			SequenceIndex:   baseIndex,
			Timestamp:       tx.TimestampMs(),
			Location:        historyEvents.LocationFromChainId(tx.ChainId),
			LocationLabel:   user.String(),
			Asset:           TokenILV,
			Balance:         historyEvents.NewBalance(amount),
			EventType:       historyEvents.EventTypeReceive,
			EventSubType:    historyEvents.EventSubTypeReward,
			Counterparty:    CounterpartyIlluvium,
			Notes:           fmt.Sprintf("Claim %s %s", amount.String(), TokenILV.Symbol),
			ExtraData: map[string]string{
				"claimed_amount": amount.String(),
				"asset":          TokenILV.Symbol,
			},
		})
		eventsSoFar.Append(&historyEvents.HistoryEvent{
			EventIdentifier: tx.Hash.String(),
			SequenceIndex:   baseIndex + 1,
			Timestamp:       tx.TimestampMs(),
			Location:        historyEvents.LocationFromChainId(tx.ChainId),
			LocationLabel:   user.String(),
			Asset:           TokenILV,
			Balance:         historyEvents.NewBalance(amount),
			EventType:       historyEvents.EventTypeStaking,
			EventSubType:    historyEvents.EventSubTypeDepositAsset,
			Counterparty:    CounterpartyIlluvium,
			Notes:           fmt.Sprintf("Stake %s %s in the %s pool", amount.String(), TokenILV.Symbol, poolName(ILVCorePoolV1)),
			ExtraData: map[string]string{
				"staked_amount": amount.String(),
				"asset":         TokenILV.Symbol,
			},
		})
		return nil, nil, nil

	default:
		return nil, nil, errors.Wrapf(historyDecoder.ErrUnknownFlagValue,
			"YieldClaimed sILV flag: %s", flag.String())
	}
}

// decodeSILV2Claim handles the sILV2 merkle distributor's LogClaim. The
// claimed sILV2 is minted by a transfer in the same receipt; that mint is a
// migration from sILV1, not income. When the mint has not been decoded yet an
// action item defers the rewrite until its transfer appears.
func (m *IlluviumModule) decodeSILV2Claim(
	lg *ethereum.EventLog,
	tx *ethereum.Transaction,
	eventsSoFar *historyDecoder.EventsArena,
	allLogs []*ethereum.EventLog,
	actionItems []*historyDecoder.ActionItem,
) (*historyEvents.HistoryEvent, []*historyDecoder.ActionItem, error) {
	if lg.Signature() != LogClaimSignature {
		return nil, nil, nil
	}

	for _, event := range eventsSoFar.Events() {
		if !event.Asset.Equal(TokenSILV2) ||
			event.EventType != historyEvents.EventTypeReceive ||
			event.EventSubType != historyEvents.EventSubTypeNone {
			continue
		}
		rewriteToMigration(event)
		return nil, nil, nil
	}

	// Mint not seen yet; rewrite it when its transfer shows up.
	m.logger.Sugar().Debugw("sILV2 mint not decoded yet, deferring rewrite",
		zap.Uint64("logIndex", lg.LogIndex),
	)
	item := &historyDecoder.ActionItem{
		Action:           historyDecoder.ActionTransform,
		Address:          &TokenSILV2.Address,
		Signature:        &tokenTransfers.TransferSignature,
		Asset:            TokenSILV2,
		FromEventType:    historyEvents.EventTypeReceive,
		FromEventSubType: historyEvents.EventSubTypeNone,
		Transform:        rewriteToMigration,
	}
	return nil, []*historyDecoder.ActionItem{item}, nil
}

func rewriteToMigration(event *historyEvents.HistoryEvent) {
	amount := event.Balance.Amount
	event.EventType = historyEvents.EventTypeMigrate
	event.EventSubType = historyEvents.EventSubTypeReceive
	event.Counterparty = CounterpartyIlluvium
	event.Notes = fmt.Sprintf("Migrated %s %s from sILV1", amount.String(), TokenSILV2.Symbol)
}
