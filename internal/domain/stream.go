package domain

import "encoding/json"

// Stream names по умолчанию (переопределяются SYNC_OUTBOX_STREAM / SYNC_ACK_STREAM)
const (
	StreamRecordsSync = "stream:records:sync"
	StreamRecordsAck  = "stream:records:ack"
)

// SyncEnvelope - исходящее сообщение outbox с одной записью
type SyncEnvelope struct {
	Collection Collection      `json:"collection"`
	RecordID   string          `json:"record_id"`
	Payload    json.RawMessage `json:"payload"`
	QueuedAt   int64           `json:"queued_at"`
}

// SyncAckStatus - ответ удалённой стороны
type SyncAckStatus string

const (
	SyncAckAccepted SyncAckStatus = "accepted"
	SyncAckRejected SyncAckStatus = "rejected"
)

// SyncAck - входящее подтверждение или отказ по одной записи
type SyncAck struct {
	Collection Collection    `json:"collection"`
	RecordID   string        `json:"record_id"`
	Status     SyncAckStatus `json:"status"`
	Reason     string        `json:"reason,omitempty"`
}

// StreamMessage - сообщение из Redis Stream
type StreamMessage struct {
	ID   string
	Data string
}
