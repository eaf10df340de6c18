// Package dispatcher routes contract calls to registered handlers. Handlers can
// be shadowed per call site with Mock and restored with Reset.
package dispatcher

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"sort"
	"sync"
	"time"

	"content-ledger/pkg/logger"
	"content-ledger/services/ledger/internal/chain"
	"content-ledger/services/ledger/internal/entity"

	"github.com/google/uuid"
	"golang.org/x/crypto/sha3"
)

const maxCallLog = 1000

// HandlerFunc implements one contract function. A nil value with a nil error
// is a write that returns nothing.
type HandlerFunc func(ctx context.Context, call entity.Call) (interface{}, error)

// CallRecorder persists the audit trail of dispatched calls.
type CallRecorder interface {
	Create(ctx context.Context, record *entity.CallRecord) error
}

type Dispatcher struct {
	mu       sync.RWMutex
	handlers map[string]HandlerFunc
	mocks    map[string]HandlerFunc
	calls    []entity.CallRecord

	chain    chain.Chain
	recorder CallRecorder
	logger   *logger.Logger
}

// New returns a dispatcher without handlers. recorder may be nil.
func New(ch chain.Chain, recorder CallRecorder, log *logger.Logger) *Dispatcher {
	return &Dispatcher{
		handlers: make(map[string]HandlerFunc),
		mocks:    make(map[string]HandlerFunc),
		chain:    ch,
		recorder: recorder,
		logger:   log,
	}
}

func route(contract, function string) string {
	return contract + "." + function
}

// Register installs the default implementation of contract.function.
func (d *Dispatcher) Register(contract, function string, handler HandlerFunc) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.handlers[route(contract, function)] = handler
}

// Mock shadows contract.function until Reset. The route does not need a
// registered default.
func (d *Dispatcher) Mock(contract, function string, handler HandlerFunc) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.mocks[route(contract, function)] = handler
}

// Reset drops every override and clears the in-memory call log.
func (d *Dispatcher) Reset() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.mocks = make(map[string]HandlerFunc)
	d.calls = nil
}

func (d *Dispatcher) lookup(contract, function string) (HandlerFunc, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	key := route(contract, function)
	if h, ok := d.mocks[key]; ok {
		return h, true
	}
	h, ok := d.handlers[key]
	return h, ok
}

// Call runs the handler for call and never returns a Go error: every failure
// is folded into the result code.
func (d *Dispatcher) Call(ctx context.Context, call entity.Call) entity.Result {
	var result entity.Result

	handler, ok := d.lookup(call.Contract, call.Function)
	if !ok {
		result = entity.Fail(entity.ErrCodeNotFound)
	} else if value, err := handler(ctx, call); err != nil {
		code := entity.CodeOf(err)
		if code == entity.ErrCodeInternal {
			d.logger.Error("[DISPATCH] %s.%s failed: %v", call.Contract, call.Function, err)
		}
		result = entity.Fail(code)
	} else {
		result = entity.Ok(value)
	}

	d.record(ctx, call, result)
	return result
}

func (d *Dispatcher) record(ctx context.Context, call entity.Call, result entity.Result) {
	height, err := d.chain.Height(ctx)
	if err != nil {
		d.logger.Warn("[DISPATCH] Failed to read block height: %v", err)
	}

	record := entity.CallRecord{
		TxID:        txID(call),
		Contract:    call.Contract,
		Function:    call.Function,
		Sender:      call.Sender,
		Args:        call.Args,
		Success:     result.Success,
		BlockHeight: height,
		CreatedAt:   time.Now().UTC(),
	}
	if !result.Success {
		record.ErrorCode = result.Error
	}

	if d.recorder != nil {
		if err := d.recorder.Create(ctx, &record); err != nil {
			d.logger.Error("[DISPATCH] Failed to persist call %s: %v", record.TxID, err)
		}
	}

	d.mu.Lock()
	d.calls = append(d.calls, record)
	if len(d.calls) > maxCallLog {
		d.calls = d.calls[len(d.calls)-maxCallLog:]
	}
	d.mu.Unlock()

	d.logger.Info("[DISPATCH] %s %s.%s from %s success=%t", record.TxID, call.Contract, call.Function, call.Sender, result.Success)
}

// Calls returns the in-memory log, oldest first.
func (d *Dispatcher) Calls() []entity.CallRecord {
	d.mu.RLock()
	defer d.mu.RUnlock()
	out := make([]entity.CallRecord, len(d.calls))
	copy(out, d.calls)
	return out
}

// Routes lists every callable contract.function, defaults and overrides alike.
func (d *Dispatcher) Routes() []string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	seen := make(map[string]struct{}, len(d.handlers)+len(d.mocks))
	for k := range d.handlers {
		seen[k] = struct{}{}
	}
	for k := range d.mocks {
		seen[k] = struct{}{}
	}
	routes := make([]string, 0, len(seen))
	for k := range seen {
		routes = append(routes, k)
	}
	sort.Strings(routes)
	return routes
}

// txID is the keccak-256 digest of the call plus a random nonce, so identical
// calls still get distinct ids.
func txID(call entity.Call) string {
	payload, _ := json.Marshal(call)
	h := sha3.NewLegacyKeccak256()
	h.Write(payload)
	h.Write([]byte(uuid.NewString()))
	return "0x" + hex.EncodeToString(h.Sum(nil))
}
