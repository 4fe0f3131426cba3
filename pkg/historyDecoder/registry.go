package historyDecoder

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"
	orderedmap "github.com/wk8/go-ordered-map/v2"
	"go.uber.org/zap"
)

// Registry aggregates the installed decoder modules into one address-keyed
// decode-function table. It is the only component with global knowledge of
// all protocols. Registration happens at startup; afterwards the registry is
// an immutable snapshot safe to share across concurrent decoder instances.
type Registry struct {
	logger *zap.Logger

	// decoders preserves registration order so shared addresses run their
	// functions in a deterministic sequence
	decoders *orderedmap.OrderedMap[common.Address, []DecodeFunction]
	// rules apply to every log regardless of address
	rules []DecodeFunction
	// counterparties maps each protocol tag to the module that owns it
	counterparties map[string]string
}

func NewRegistry(logger *zap.Logger) *Registry {
	return &Registry{
		logger:         logger,
		decoders:       orderedmap.New[common.Address, []DecodeFunction](),
		rules:          make([]DecodeFunction, 0),
		counterparties: make(map[string]string),
	}
}

// Register installs a module. Multiple modules may claim the same contract
// address: their decode-function lists are concatenated in registration
// order, which is intentional and supported for shared pool contracts. Two
// modules claiming the same counterparty tag is an inconsistent registry and
// fails with ErrRegistryCollision; a module re-declaring its own tag is a
// no-op.
func (r *Registry) Register(module DecoderModule) error {
	for _, tag := range module.Counterparties() {
		owner, ok := r.counterparties[tag]
		if ok && owner != module.Name() {
			return errors.Wrapf(ErrRegistryCollision,
				"tag '%s' claimed by '%s' and '%s'", tag, owner, module.Name())
		}
		r.counterparties[tag] = module.Name()
	}

	for address, fns := range module.AddressesToDecoders() {
		existing, ok := r.decoders.Get(address)
		if ok {
			r.logger.Sugar().Debugw("Address claimed by multiple decoder modules",
				zap.String("address", address.String()),
				zap.String("module", module.Name()),
			)
			r.decoders.Set(address, append(existing, fns...))
			continue
		}
		r.decoders.Set(address, fns)
	}

	if ruleModule, ok := module.(RuleDecoderModule); ok {
		r.rules = append(r.rules, ruleModule.DecodingRules()...)
	}

	r.logger.Sugar().Infow("Registered decoder module",
		zap.String("module", module.Name()),
		zap.Strings("counterparties", module.Counterparties()),
	)
	return nil
}

// Resolve returns the ordered decode functions claimed for an address, or an
// empty list when the address is unclaimed.
func (r *Registry) Resolve(address common.Address) []DecodeFunction {
	fns, ok := r.decoders.Get(address)
	if !ok {
		return nil
	}
	return fns
}

// DecodingRules returns the address-independent decode rules in registration
// order.
func (r *Registry) DecodingRules() []DecodeFunction {
	return r.rules
}

// Counterparties returns the union of all registered protocol tags.
func (r *Registry) Counterparties() []string {
	tags := make([]string, 0, len(r.counterparties))
	for tag := range r.counterparties {
		tags = append(tags, tag)
	}
	return tags
}
