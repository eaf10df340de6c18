package entity

import (
	"encoding/json"
	"time"
)

const (
	ContractContentNFT   = "content-nft"
	ContractSubscription = "subscription"
)

// Call names a contract function together with the principal invoking it.
type Call struct {
	Contract string        `json:"contract"`
	Function string        `json:"function"`
	Sender   string        `json:"sender"`
	Args     []interface{} `json:"args"`
}

// Result is the outcome of a dispatched call. A nil Value means the function
// returns nothing; a typed nil (such as a nil *SubscriptionView) is an explicit
// null and is kept on the wire.
type Result struct {
	Success bool
	Value   interface{}
	Error   ErrorCode
}

func (r Result) MarshalJSON() ([]byte, error) {
	out := map[string]interface{}{"success": r.Success}
	if r.Value != nil {
		out["value"] = r.Value
	}
	if !r.Success {
		out["error"] = r.Error
	}
	return json.Marshal(out)
}

func Ok(value interface{}) Result {
	return Result{Success: true, Value: value}
}

func Fail(code ErrorCode) Result {
	return Result{Success: false, Error: code}
}

// CallRecord is the audit trail entry kept for every dispatched call.
type CallRecord struct {
	ID          string        `json:"id"`
	TxID        string        `json:"tx_id"`
	Contract    string        `json:"contract"`
	Function    string        `json:"function"`
	Sender      string        `json:"sender"`
	Args        []interface{} `json:"args"`
	Success     bool          `json:"success"`
	ErrorCode   ErrorCode     `json:"error_code,omitempty"`
	BlockHeight uint64        `json:"block_height"`
	CreatedAt   time.Time     `json:"created_at"`
}
