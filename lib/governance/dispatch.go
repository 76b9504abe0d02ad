package governance

import (
	"encoding/json"
	"sort"

	logging "github.com/inconshreveable/log15"

	"oceandao.io/gov/lib/common"
	"oceandao.io/gov/lib/common/observer"
)

// Message is one follow-on action emitted by the governance module: a
// deposit refund, a withdrawal payout or an execute-data entry of a passed
// poll. The host owns the wire format; this module only orders and emits.
type Message struct {
	Target  string          `json:"target"`
	Payload json.RawMessage `json:"payload"`
	Funds   common.Amount   `json:"funds"`
}

func (m Message) String() string {
	return string(common.MustJSONMarshal(m))
}

type Dispatcher interface {
	Dispatch(Message) error
}

// LogDispatcher records every emitted message to the log and the dispatch
// observer hub; the host replaces it with a real message router.
type LogDispatcher struct {
	log logging.Logger
}

func NewLogDispatcher() *LogDispatcher {
	return &LogDispatcher{log: log.New("component", "dispatcher")}
}

func (d *LogDispatcher) Dispatch(m Message) error {
	d.log.Info("dispatch",
		"id", common.GenerateUUID(),
		"target", m.Target,
		"funds", m.Funds,
		"payload", string(m.Payload),
	)
	observer.DispatchObserver.Trigger(observer.ResourceDispatch, m)
	return nil
}

// NewTransferPayload builds the token-contract transfer message used for
// deposit refunds and withdrawal payouts.
func NewTransferPayload(recipient string, amount common.Amount) json.RawMessage {
	return common.MustJSONMarshal(map[string]interface{}{
		"transfer": map[string]interface{}{
			"recipient": recipient,
			"amount":    amount,
		},
	})
}

// sortedExecuteData orders a poll's actions by their `order` field; ties
// keep their original list position.
func sortedExecuteData(data []ExecuteData) []ExecuteData {
	sorted := make([]ExecuteData, len(data))
	copy(sorted, data)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Order < sorted[j].Order
	})
	return sorted
}
