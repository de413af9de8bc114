package radix

import (
	"encoding/json"

	"github.com/bytedance/sonic"
)

// ScalarValue holds a scalar programmatic value (string, number or bool) as text.
// Composite values (tuples, arrays) and null decode to the empty value instead of failing
// the whole response.
type ScalarValue string

func (v *ScalarValue) UnmarshalJSON(b []byte) error {
	if len(b) == 0 {
		return nil
	}
	switch b[0] {
	case '"':
		var s string
		if err := sonic.Unmarshal(b, &s); err != nil {
			return err
		}
		*v = ScalarValue(s)
	case '{', '[', 'n':
		*v = ""
	default:
		*v = ScalarValue(b)
	}
	return nil
}

func (v ScalarValue) String() string {
	return string(v)
}

type LedgerState struct {
	Network                string `json:"network"`
	StateVersion           int64  `json:"state_version"`
	ProposerRoundTimestamp string `json:"proposer_round_timestamp"`
	Epoch                  int64  `json:"epoch"`
	Round                  int64  `json:"round"`
}

// /state/entity/details

type EntityDetailsRequest struct {
	Addresses        []string `json:"addresses"`
	AggregationLevel string   `json:"aggregation_level"`
}

type EntityDetailsResponse struct {
	LedgerState *LedgerState        `json:"ledger_state"`
	Items       []EntityDetailsItem `json:"items"`
}

type EntityDetailsItem struct {
	Address           string             `json:"address"`
	FungibleResources *FungibleResources `json:"fungible_resources"`
	Details           *EntityDetails     `json:"details"`
}

type FungibleResources struct {
	TotalCount int64                     `json:"total_count"`
	NextCursor string                    `json:"next_cursor"`
	Items      []FungibleResourceBalance `json:"items"`
}

type FungibleResourceBalance struct {
	AggregationLevel string      `json:"aggregation_level"`
	ResourceAddress  string      `json:"resource_address"`
	Amount           ScalarValue `json:"amount"`
}

type EntityDetails struct {
	Type          string          `json:"type"`
	PackageAddr   string          `json:"package_address"`
	BlueprintName string          `json:"blueprint_name"`
	State         *ComponentState `json:"state"`
}

type ComponentState struct {
	Kind     string              `json:"kind"`
	TypeName string              `json:"type_name"`
	Fields   []ProgrammaticField `json:"fields"`
}

// ProgrammaticField is one named field of a component state tuple.
type ProgrammaticField struct {
	Kind      string      `json:"kind"`
	TypeName  string      `json:"type_name"`
	FieldName string      `json:"field_name"`
	Value     ScalarValue `json:"value"`
}

// StateFields returns the component state fields of the item, nil when absent.
func (i EntityDetailsItem) StateFields() []ProgrammaticField {
	if i.Details == nil || i.Details.State == nil {
		return nil
	}
	return i.Details.State.Fields
}

// FungibleBalances returns the fungible resource holdings of the item, nil when absent.
func (i EntityDetailsItem) FungibleBalances() []FungibleResourceBalance {
	if i.FungibleResources == nil {
		return nil
	}
	return i.FungibleResources.Items
}

// /state/key-value-store/keys

type KeyValueStoreKeysRequest struct {
	KeyValueStoreAddress string `json:"key_value_store_address"`
}

type KeyValueStoreKeysResponse struct {
	LedgerState *LedgerState           `json:"ledger_state"`
	TotalCount  *int64                 `json:"total_count"`
	NextCursor  *string                `json:"next_cursor"`
	Items       []KeyValueStoreKeyItem `json:"items"`
}

type KeyValueStoreKeyItem struct {
	Key                       KeyValueStoreKey `json:"key"`
	LastUpdatedAtStateVersion int64            `json:"last_updated_at_state_version"`
}

type KeyValueStoreKey struct {
	RawHex           string            `json:"raw_hex"`
	ProgrammaticJSON ProgrammaticValue `json:"programmatic_json"`
}

type ProgrammaticValue struct {
	Kind     string      `json:"kind"`
	TypeName string      `json:"type_name"`
	Value    ScalarValue `json:"value"`
}

// /state/entity/page/metadata

type EntityMetadataPageRequest struct {
	Address string `json:"address"`
}

type EntityMetadataPageResponse struct {
	LedgerState *LedgerState   `json:"ledger_state"`
	Address     string         `json:"address"`
	TotalCount  *int64         `json:"total_count"`
	NextCursor  *string        `json:"next_cursor"`
	Items       []MetadataItem `json:"items"`
}

type MetadataItem struct {
	Key                       string        `json:"key"`
	Value                     MetadataValue `json:"value"`
	IsLocked                  bool          `json:"is_locked"`
	LastUpdatedAtStateVersion int64         `json:"last_updated_at_state_version"`
}

type MetadataValue struct {
	RawHex string             `json:"raw_hex"`
	Typed  TypedMetadataValue `json:"typed"`
}

type TypedMetadataValue struct {
	Type  string      `json:"type"`
	Value ScalarValue `json:"value"`
}

// transactions

type TransactionStatusRequest struct {
	IntentHash string `json:"intent_hash"`
}

type TransactionStatusResponse struct {
	LedgerState             *LedgerState `json:"ledger_state"`
	Status                  string       `json:"status"`
	IntentStatus            string       `json:"intent_status"`
	IntentStatusDescription string       `json:"intent_status_description"`
	ErrorMessage            string       `json:"error_message"`
}

// TransactionOptIns selects optional parts of committed transaction payloads.
type TransactionOptIns struct {
	RawHex                 bool `json:"raw_hex"`
	ReceiptStateChanges    bool `json:"receipt_state_changes,omitempty"`
	ReceiptFeeSummary      bool `json:"receipt_fee_summary,omitempty"`
	ReceiptEvents          bool `json:"receipt_events,omitempty"`
	AffectedGlobalEntities bool `json:"affected_global_entities,omitempty"`
}

type TransactionCommittedDetailsRequest struct {
	IntentHash string            `json:"intent_hash"`
	OptIns     TransactionOptIns `json:"opt_ins"`
}

type TransactionCommittedDetailsResponse struct {
	LedgerState *LedgerState             `json:"ledger_state"`
	Transaction CommittedTransactionInfo `json:"transaction"`
}

type StreamTransactionsRequest struct {
	LimitPerPage int               `json:"limit_per_page"`
	Order        string            `json:"order,omitempty"`
	OptIns       TransactionOptIns `json:"opt_ins"`
}

type StreamTransactionsResponse struct {
	LedgerState *LedgerState               `json:"ledger_state"`
	NextCursor  *string                    `json:"next_cursor"`
	Items       []CommittedTransactionInfo `json:"items"`
}

type CommittedTransactionInfo struct {
	StateVersion           int64               `json:"state_version"`
	Epoch                  int64               `json:"epoch"`
	Round                  int64               `json:"round"`
	TransactionStatus      string              `json:"transaction_status"`
	IntentHash             string              `json:"intent_hash"`
	FeePaid                ScalarValue         `json:"fee_paid"`
	ConfirmedAt            string              `json:"confirmed_at"`
	Receipt                *TransactionReceipt `json:"receipt"`
	AffectedGlobalEntities []string            `json:"affected_global_entities"`
}

// TransactionReceipt keeps the opted-in state changes and fee summary as raw programmatic JSON.
type TransactionReceipt struct {
	Status       string          `json:"status"`
	ErrorMessage string          `json:"error_message,omitempty"`
	StateUpdates json.RawMessage `json:"state_updates,omitempty"`
	FeeSummary   json.RawMessage `json:"fee_summary,omitempty"`
	Events       []Event         `json:"events"`
}

// Event is one receipt event; emitter and data are kept as raw programmatic JSON.
type Event struct {
	Name    string          `json:"name"`
	Emitter json.RawMessage `json:"emitter,omitempty"`
	Data    json.RawMessage `json:"data,omitempty"`
}

// ReceiptEvents returns the receipt events of the transaction, nil when the receipt is absent.
func (t CommittedTransactionInfo) ReceiptEvents() []Event {
	if t.Receipt == nil {
		return nil
	}
	return t.Receipt.Events
}
