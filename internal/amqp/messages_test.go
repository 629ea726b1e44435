package amqp

import "testing"

func TestRecordSyncMessageRoundTrip(t *testing.T) {
	msg := NewRecordSyncMessage(KindExpense, 42)
	body, err := msg.ToJSON()
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	got, err := RecordSyncMessageFromJSON(body)
	if err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got.Kind != KindExpense || got.ID != 42 {
		t.Fatalf("got %+v", got)
	}
	if got.EnqueuedAt.IsZero() {
		t.Fatalf("enqueued timestamp missing")
	}
}

func TestRecordSyncMessageValidate(t *testing.T) {
	cases := []RecordSyncMessage{
		{Kind: "budget", ID: 1},
		{Kind: KindIncome, ID: 0},
		{Kind: KindIncome, ID: -3},
		{Kind: "", ID: 5},
	}
	for i, m := range cases {
		if err := m.Validate(); err == nil {
			t.Fatalf("case %d expected error", i)
		}
	}
}

func TestRecordSyncMessageFromJSONRejectsGarbage(t *testing.T) {
	if _, err := RecordSyncMessageFromJSON([]byte("{not json")); err == nil {
		t.Fatalf("expected error")
	}
	if _, err := RecordSyncMessageFromJSON([]byte(`{"kind":"income","id":0}`)); err == nil {
		t.Fatalf("expected validation error")
	}
}
